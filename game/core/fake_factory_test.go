package core

import (
	"errors"
	"sync"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
)

type fakeAccount struct {
	id       string
	username string
	bank     uint64
}

func (a *fakeAccount) ID() string       { return a.id }
func (a *fakeAccount) Username() string { return a.username }
func (a *fakeAccount) Bank() uint64     { return a.bank }

func newFakeAccount(id string, username string) *fakeAccount {
	return &fakeAccount{id: id, username: username, bank: 100000}
}

func newFakeDB() *fakeGameDB {
	return &fakeGameDB{banks: map[string]uint64{}}
}

type fakeGameDB struct {
	mu       sync.Mutex
	commits  []abstracts.GameCommit
	failNext bool
	banks    map[string]uint64
}

func (db *fakeGameDB) Commit(c abstracts.GameCommit) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.failNext {
		db.failNext = false
		return errors.New("store unavailable")
	}
	db.commits = append(db.commits, c)
	for id, amount := range c.BankDebits {
		db.banks[id] -= amount
	}
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

func (db *fakeGameDB) lastCommit() *abstracts.GameCommit {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.commits) == 0 {
		return nil
	}
	return &db.commits[len(db.commits)-1]
}

type fakeSceneSender struct {
	mu     sync.Mutex
	scenes map[string]*abstracts.TableScene
}

func newFakeSceneSender() *fakeSceneSender {
	return &fakeSceneSender{scenes: map[string]*abstracts.TableScene{}}
}

func (s *fakeSceneSender) SendScene(accountID string, scene *abstracts.TableScene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes[accountID] = scene
}

func (s *fakeSceneSender) sceneOf(accountID string) *abstracts.TableScene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenes[accountID]
}
