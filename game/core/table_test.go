package core

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/common/gerror"
)

var testLevel = TableLevel{MinPlayers: 2, MaxPlayers: 5, MinBuyIn: 10000, MaxBuyIn: 100000, SmallBlind: 1000, BigBlind: 2000}

func newTestTable(t *testing.T, db *fakeGameDB, sender sceneSender) *Table {
	tb := NewTable("t1", testLevel, db, sender, nil)
	assert.NoError(t, tb.Start())
	return tb
}

// the first player gets seated but the table keeps waiting
func TestTable_FirstJoinWaits(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	scene, err := tb.Join(newFakeAccount("u1", "playerone"))
	assert.Equal(t, gerror.ErrNotEnoughPlayers, err)
	assert.Equal(t, StatusWaiting, scene.Status)
	assert.Len(t, scene.Players, 1)
	assert.Nil(t, scene.Players[0].Cards)
	assert.Equal(t, "", scene.RoundName)

	// the waiting state got persisted
	c := db.lastCommit()
	assert.Equal(t, StatusWaiting, c.Table.Status)
	assert.Len(t, c.Seats, 1)
	assert.Empty(t, c.BankDebits)
}

// joining twice never creates a second seat
func TestTable_JoinIdempotent(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	a := newFakeAccount("u1", "playerone")
	_, err := tb.Join(a)
	assert.Equal(t, gerror.ErrNotEnoughPlayers, err)
	commits := len(db.commits)

	scene, err := tb.Join(a)
	assert.Equal(t, gerror.ErrNotEnoughPlayers, err)
	assert.Len(t, scene.Players, 1)
	// nothing new was written either
	assert.Len(t, db.commits, commits)
}

/*

the second join of a heads-up table triggers the whole start transition:
buy-in debits, fresh deck, two cards each, roles, blinds, pot

*/
func TestTable_StartHeadsUp(t *testing.T) {
	db := newFakeDB()
	sender := newFakeSceneSender()
	tb := newTestTable(t, db, sender)
	defer tb.Stop()

	a1 := newFakeAccount("u1", "playerone")
	a2 := newFakeAccount("u2", "playertwo")
	db.banks["u1"] = a1.bank
	db.banks["u2"] = a2.bank

	_, err := tb.Join(a1)
	assert.Equal(t, gerror.ErrNotEnoughPlayers, err)

	scene, err := tb.Join(a2)
	assert.NoError(t, err)
	assert.Equal(t, StatusStarted, scene.Status)
	assert.Equal(t, "Deal", scene.RoundName)
	assert.Equal(t, "bet", scene.BetName)
	assert.Equal(t, uint64(3000), scene.Pot)
	assert.Len(t, scene.Players, 2)

	// viewer is u2: the dealer's cards are masked, own hand visible
	p1 := scene.Players[0]
	p2 := scene.Players[1]
	assert.Equal(t, "playerone", p1.Username)
	assert.True(t, p1.Dealer)
	assert.True(t, p1.IsBigBlind)
	assert.False(t, p1.IsSmallBlind)
	assert.False(t, p1.CurrentPlayer)
	assert.Equal(t, uint64(100000-2000), p1.Chips)
	assert.Equal(t, uint64(2000), p1.Bet)
	assert.Nil(t, p1.Cards)

	assert.False(t, p2.Dealer)
	assert.True(t, p2.IsSmallBlind)
	assert.True(t, p2.CurrentPlayer)
	assert.Equal(t, uint64(100000-1000), p2.Chips)
	assert.Equal(t, uint64(1000), p2.Bet)
	assert.Len(t, p2.Cards, 2)

	// buy-in moved out of both banks
	assert.Equal(t, uint64(100000-10000), db.banks["u1"])
	assert.Equal(t, uint64(100000-10000), db.banks["u2"])

	// conservation: 2 cards per hand plus the rest of the deck is 52,
	// and the persisted deck holds none of the dealt cards
	c := db.lastCommit()
	assert.Equal(t, StatusStarted, c.Table.Status)
	assert.Len(t, c.Table.Deck, 52-2*2)
	seen := map[string]bool{}
	for _, w := range c.Table.Deck {
		seen[w] = true
	}
	for _, s := range c.Seats {
		assert.Len(t, s.Cards, 2)
		for _, w := range s.Cards {
			assert.False(t, seen[w])
			seen[w] = true
		}
	}
	assert.Len(t, seen, 52)

	// every seated player got pushed their own masked scene
	s1 := sender.sceneOf("u1")
	assert.Len(t, s1.Players[0].Cards, 2)
	assert.Nil(t, s1.Players[1].Cards)
	s2 := sender.sceneOf("u2")
	assert.Nil(t, s2.Players[0].Cards)
	assert.Len(t, s2.Players[1].Cards, 2)
}

// the projection is pure, reading never mutates
func TestTable_GetSceneStable(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	tb.Join(newFakeAccount("u1", "playerone"))
	tb.Join(newFakeAccount("u2", "playertwo"))

	first := tb.GetScene("u1")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tb.GetScene("u1"))
	}
	// an outsider sees everything but cards
	outside := tb.GetScene("nobody")
	assert.Nil(t, outside.Players[0].Cards)
	assert.Nil(t, outside.Players[1].Cards)
	assert.Equal(t, StatusStarted, outside.Status)
}

// seats taken after the start wait for the next deal
func TestTable_LateJoin(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	tb.Join(newFakeAccount("u1", "playerone"))
	tb.Join(newFakeAccount("u2", "playertwo"))

	scene, err := tb.Join(newFakeAccount("u3", "playerthree"))
	assert.NoError(t, err)
	assert.Equal(t, StatusStarted, scene.Status)
	assert.Len(t, scene.Players, 3)
	assert.Len(t, scene.Players[2].Cards, 0)
	assert.False(t, scene.Players[2].Dealer)

	// the deck wasn't touched again
	c := db.lastCommit()
	assert.Len(t, c.Table.Deck, 52-2*2)
	assert.Empty(t, c.BankDebits)
}

func TestTable_Full(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	for i := 0; i < testLevel.MaxPlayers; i++ {
		id := fmt.Sprintf("u%v", i)
		_, err := tb.Join(newFakeAccount(id, id))
		if i+1 < testLevel.MinPlayers {
			assert.Equal(t, gerror.ErrNotEnoughPlayers, err)
		} else {
			assert.NoError(t, err)
		}
	}

	scene, err := tb.Join(newFakeAccount("late", "late"))
	assert.Equal(t, gerror.ErrTableFull, err)
	assert.Nil(t, scene)
	assert.Len(t, tb.GetScene("u0").Players, testLevel.MaxPlayers)
}

// a refused store commit leaves the table exactly as it was
func TestTable_StoreFailureRollsBack(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	tb.Join(newFakeAccount("u1", "playerone"))

	db.failNext = true
	_, err := tb.Join(newFakeAccount("u2", "playertwo"))
	assert.Error(t, err)
	assert.NotEqual(t, gerror.ErrNotEnoughPlayers, err)

	scene := tb.GetScene("u1")
	assert.Equal(t, StatusWaiting, scene.Status)
	assert.Len(t, scene.Players, 1)
	assert.Equal(t, uint64(0), scene.Pot)

	// the same join goes through once the store is back
	scene, err = tb.Join(newFakeAccount("u2", "playertwo"))
	assert.NoError(t, err)
	assert.Equal(t, StatusStarted, scene.Status)
	assert.Len(t, scene.Players, 2)
}

/*

simultaneous joins all funnel through the table goroutine: exactly one
of them trips the start transition, nobody gets seated twice and nobody
slips past maxplayers

*/
func TestTable_ConcurrentJoins(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	defer tb.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	errs := map[error]int{}
	for i := 0; i < testLevel.MaxPlayers+2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("u%v", i)
			_, err := tb.Join(newFakeAccount(id, id))
			mu.Lock()
			errs[err]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, errs[gerror.ErrTableFull])

	scene := tb.GetScene("u0")
	assert.Equal(t, StatusStarted, scene.Status)
	assert.Len(t, scene.Players, testLevel.MaxPlayers)

	// only the starting commit dealt cards and debited banks
	started := 0
	for _, c := range db.commits {
		if len(c.BankDebits) > 0 {
			started++
		}
	}
	assert.Equal(t, 1, started)
}

// a table comes back from the store with deck, hands and roles intact
func TestTable_Restore(t *testing.T) {
	db := newFakeDB()
	tb := newTestTable(t, db, nil)
	tb.Join(newFakeAccount("u1", "playerone"))
	tb.Join(newFakeAccount("u2", "playertwo"))
	want := tb.GetScene("u1")
	assert.NoError(t, tb.Stop())

	tb2 := NewTable("t1", testLevel, db, nil, nil)
	assert.NoError(t, tb2.Start())
	defer tb2.Stop()

	assert.Equal(t, want, tb2.GetScene("u1"))

	// still no second seat for a restored player
	scene, err := tb2.Join(newFakeAccount("u1", "playerone"))
	assert.NoError(t, err)
	assert.Len(t, scene.Players, 2)
}
