package game

import (
	"errors"
	"sync"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
)

type fakeAccountGetter struct {
	// K token, V account
	accounts map[string]*Account
}

func newFakeAccountGetter() *fakeAccountGetter {
	return &fakeAccountGetter{accounts: map[string]*Account{
		"token-1": NewAccount("u1", "playerone", 100000),
		"token-2": NewAccount("u2", "playertwo", 100000),
		"token-3": NewAccount("u3", "playerthree", 100000),
		"token-4": NewAccount("u4", "playerfour", 100000),
		"token-5": NewAccount("u5", "playerfive", 100000),
		"token-6": NewAccount("u6", "playersix", 100000),
	}}
}

func (g *fakeAccountGetter) GetAccountByToken(token string) abstracts.Account {
	if a, ok := g.accounts[token]; ok {
		return a
	}
	return nil
}

type fakeGameDB struct {
	mu       sync.Mutex
	commits  []abstracts.GameCommit
	failNext bool
}

func (db *fakeGameDB) Commit(c abstracts.GameCommit) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.failNext {
		db.failNext = false
		return errors.New("store unavailable")
	}
	db.commits = append(db.commits, c)
	return nil
}

func (db *fakeGameDB) LoadGame(tableID string) (*abstracts.TableRecord, []abstracts.SeatRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := len(db.commits) - 1; i >= 0; i-- {
		if db.commits[i].Table.TableID == tableID {
			t := db.commits[i].Table
			return &t, db.commits[i].Seats, nil
		}
	}
	return nil, nil, nil
}
