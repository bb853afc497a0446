package core

import (
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/common/gerror"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/metrics"
)

const (
	StatusWaiting = "waiting"
	StatusStarted = "started"

	// round/bet labels shown once the first deal happened
	roundNameDeal = "Deal"
	betNameBet    = "bet"
)

type sceneSender interface {
	// push a freshly rendered scene to one seated player
	SendScene(accountID string, scene *abstracts.TableScene)
}

func NewTable(id string, level TableLevel, db abstracts.GameDB, sender sceneSender, rng *rand.Rand) *Table {
	return &Table{
		id: id, level: level, db: db, sender: sender, rng: rng,
		status:    StatusWaiting,
		joinChan:  make(chan joinMsg, 1),
		sceneChan: make(chan sceneMsg, 1),
	}
}

/*

the table owns all mutable game state

one goroutine runs loop() and is the only writer, requests come in over
channels with a reply channel each. That loop is the per-table critical
section: two joins can never both see count == minplayers-1, and a scene
read can never observe a half-dealt table. Tables don't share anything,
so different tables run fully independent.

*/
type Table struct {
	id    string
	level TableLevel

	status  string
	players []*Player
	deck    *Deck
	pot     uint64
	// empty until the first deal
	roundName string
	betName   string

	db     abstracts.GameDB
	sender sceneSender
	rng    *rand.Rand

	joinChan  chan joinMsg
	sceneChan chan sceneMsg
	stopChan  chan struct{}
}

func (t *Table) loop() {
	for {
		select {
		case msg := <-t.joinChan:
			t.doJoin(msg)
		case msg := <-t.sceneChan:
			t.doGetScene(msg)
		case <-t.stopChan:
			return
		}
	}
}

type joinMsg struct {
	account    abstracts.Account
	resultChan chan joinResult
}

type joinResult struct {
	scene *abstracts.TableScene
	err   error
}

type sceneMsg struct {
	accountID  string
	resultChan chan *abstracts.TableScene
}

/*

seat an account

already seated is a no-op that just renders the current state. A full
table is refused. Otherwise the account is appended in join order, and if
that brings the count to minplayers the whole start transition (buy-in
debits, fresh deck, two cards each, roles, blinds) happens in the same
commit, nothing in between is observable.

All mutation is staged on copies and only swapped in after the store
accepted the commit, so a store failure leaves the table untouched.

*/
func (t *Table) doJoin(msg joinMsg) {
	a := msg.account
	if t.playerByID(a.ID()) != nil {
		log.L.Debug("account already seated, render current state", zap.String("uid", a.ID()), zap.String("table", t.id))
		msg.resultChan <- joinResult{scene: t.sceneFor(a.ID()), err: t.softState()}
		return
	}
	if len(t.players) >= t.level.MaxPlayers {
		msg.resultChan <- joinResult{err: gerror.ErrTableFull}
		return
	}

	staged := make([]*Player, 0, len(t.players)+1)
	for _, p := range t.players {
		staged = append(staged, p.clone())
	}
	staged = append(staged, newPlayer(a, len(staged)))

	status := t.status
	deck := t.deck
	pot := t.pot
	roundName, betName := t.roundName, t.betName
	debits := map[string]uint64{}

	starting := status == StatusWaiting && len(staged) >= t.level.MinPlayers
	if starting {
		deck = newShuffledDeck(t.rng)
		for _, p := range staged {
			cs, err := deck.popFront(2)
			if err != nil {
				// can't happen while dealing is capped by maxplayers
				log.L.Error("deck underflow while dealing", zap.String("table", t.id), zap.Error(err))
				msg.resultChan <- joinResult{err: err}
				return
			}
			p.gotCards(cs)
			debits[p.id] = t.level.MinBuyIn
		}
		pot = assignSeats(staged, t.level.SmallBlind, t.level.BigBlind)
		status = StatusStarted
		roundName, betName = roundNameDeal, betNameBet
	}
	// a join on a started table only takes the seat, the new player
	// waits for the next deal to get cards and buy in

	commit := abstracts.GameCommit{
		Table:      t.record(status, deck, pot, roundName, betName),
		Seats:      seatRecords(t.id, staged),
		BankDebits: debits,
	}
	if err := t.db.Commit(commit); err != nil {
		log.L.Error("commit join failed", zap.String("table", t.id), zap.String("uid", a.ID()), zap.Error(err))
		msg.resultChan <- joinResult{err: errors.Wrap(err, "persist table state")}
		return
	}

	t.players = staged
	t.status = status
	t.deck = deck
	t.pot = pot
	t.roundName, t.betName = roundName, betName

	if starting {
		log.L.Info("table started", zap.String("table", t.id), zap.Int("players", len(t.players)))
		metrics.StartedTables.Inc()
		t.pushScenes()
	}
	msg.resultChan <- joinResult{scene: t.sceneFor(a.ID()), err: t.softState()}
}

// every seated player gets their own masked scene pushed
func (t *Table) pushScenes() {
	if t.sender == nil {
		return
	}
	for _, p := range t.players {
		t.sender.SendScene(p.id, t.sceneFor(p.id))
	}
}

// the not-enough-players case is a soft result, the seat is kept and the
// caller just sees the table still waiting
func (t *Table) softState() error {
	if t.status == StatusWaiting {
		return gerror.ErrNotEnoughPlayers
	}
	return nil
}

func (t *Table) playerByID(id string) *Player {
	for _, p := range t.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (t *Table) doGetScene(msg sceneMsg) {
	msg.resultChan <- t.sceneFor(msg.accountID)
}

func (t *Table) record(status string, deck *Deck, pot uint64, roundName, betName string) abstracts.TableRecord {
	r := abstracts.TableRecord{
		TableID:    t.id,
		Status:     status,
		MinPlayers: t.level.MinPlayers,
		MaxPlayers: t.level.MaxPlayers,
		MinBuyIn:   t.level.MinBuyIn,
		MaxBuyIn:   t.level.MaxBuyIn,
		SmallBlind: t.level.SmallBlind,
		BigBlind:   t.level.BigBlind,
		Pot:        pot,
		RoundName:  roundName,
		BetName:    betName,
	}
	if deck != nil {
		r.Deck = deck.wholes()
	}
	return r
}

func seatRecords(tableID string, players []*Player) []abstracts.SeatRecord {
	result := make([]abstracts.SeatRecord, len(players))
	for i, p := range players {
		result[i] = p.record(tableID)
	}
	return result
}

// rebuild a table from its persisted rows, seats must come in join order
func (t *Table) restore(rec *abstracts.TableRecord, seats []abstracts.SeatRecord) error {
	if rec.Status != StatusWaiting && rec.Status != StatusStarted {
		return errors.Errorf("unknown table status: %v", rec.Status)
	}
	deck, err := deckFromWholes(rec.Deck)
	if err != nil {
		return err
	}
	players := make([]*Player, len(seats))
	for i, s := range seats {
		if players[i], err = playerFromRecord(s); err != nil {
			return err
		}
	}
	t.status = rec.Status
	t.pot = rec.Pot
	t.roundName, t.betName = rec.RoundName, rec.BetName
	t.players = players
	if len(rec.Deck) > 0 {
		t.deck = deck
	}
	return nil
}

// Join blocks until the table goroutine handled the request. The scene in
// the result is rendered for the joining account. gerror.ErrNotEnoughPlayers
// and gerror.ErrTableFull are soft outcomes, anything else is a fault.
func (t *Table) Join(a abstracts.Account) (*abstracts.TableScene, error) {
	result := make(chan joinResult)
	t.joinChan <- joinMsg{account: a, resultChan: result}
	r := <-result
	return r.scene, r.err
}

func (t *Table) GetScene(accountID string) *abstracts.TableScene {
	result := make(chan *abstracts.TableScene)
	t.sceneChan <- sceneMsg{accountID: accountID, resultChan: result}
	return <-result
}

func (t *Table) ID() string {
	return t.id
}

func (t *Table) Start() error {
	if t.stopChan != nil {
		return errors.New("already started")
	}
	rec, seats, err := t.db.LoadGame(t.id)
	if err != nil {
		return err
	}
	if rec != nil {
		if err = t.restore(rec, seats); err != nil {
			return err
		}
		log.L.Info("table restored from store", zap.String("table", t.id), zap.String("status", t.status), zap.Int("players", len(t.players)))
	}
	t.stopChan = make(chan struct{})
	go t.loop()

	return nil
}

func (t *Table) Stop() error {
	if t.stopChan == nil {
		return errors.New("not started")
	}
	close(t.stopChan)
	t.stopChan = nil

	return nil
}
