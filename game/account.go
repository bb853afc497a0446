package game

import (
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/msg_server"
)

// AccountGetter resolves the Authorization token of a request to a seated
// identity. Token issuance and verification live with the auth service,
// the room only ever sees resolved accounts.
type AccountGetter interface {
	GetAccountByToken(token string) abstracts.Account
}

func NewAccount(id string, username string, bank uint64) *Account {
	return &Account{id: id, username: username, bank: bank}
}

// resolved account snapshot handed to the engine
type Account struct {
	id       string
	username string
	bank     uint64
}

func (a *Account) ID() string       { return a.id }
func (a *Account) Username() string { return a.username }
func (a *Account) Bank() uint64     { return a.bank }

// adapter so the ws hand shake can use the same token resolution
type wsAccountGetter struct {
	accounts AccountGetter
}

func (g *wsAccountGetter) GetUserByToken(token string) msg_server.AbsUser {
	if a := g.accounts.GetAccountByToken(token); a != nil {
		return a
	}
	return nil
}
