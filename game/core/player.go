package core

import (
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
)

// newPlayer seats an account. The table stack is seeded from the bank
// balance at seating time, the buy-in itself is only debited when the
// game starts.
func newPlayer(a abstracts.Account, joinOrder int) *Player {
	return &Player{
		id:        a.ID(),
		username:  a.Username(),
		bank:      a.Bank(),
		joinOrder: joinOrder,
		chips:     a.Bank(),
	}
}

type Player struct {
	id       string
	username string
	// bank snapshot taken when the account sat down
	bank      uint64
	joinOrder int

	chips uint64
	// current-round wager
	bet   uint64
	cards []Card

	folded bool
	allIn  bool
	talked bool

	dealer        bool
	smallBlind    bool
	bigBlind      bool
	currentPlayer bool
}

func (p *Player) ID() string {
	return p.id
}

func (p *Player) Username() string {
	return p.username
}

// postBlind takes the forced bet out of the stack. A stack shorter than
// the blind goes all in for what it has instead of failing the start.
func (p *Player) postBlind(amount uint64) uint64 {
	if amount >= p.chips {
		log.L.Debug("short stack posts blind all in", zap.String("player", p.id), zap.Uint64("chips", p.chips), zap.Uint64("blind", amount))
		amount = p.chips
		p.allIn = true
	}
	p.chips -= amount
	p.bet = amount
	return amount
}

func (p *Player) gotCards(cs []Card) {
	p.cards = append(p.cards, cs...)
}

// copy for staging a mutation, committed back only after the store took it
func (p *Player) clone() *Player {
	np := *p
	np.cards = append([]Card{}, p.cards...)
	return &np
}

func (p *Player) record(tableID string) abstracts.SeatRecord {
	var cards []string
	for _, c := range p.cards {
		cards = append(cards, c.whole)
	}
	return abstracts.SeatRecord{
		TableID:       tableID,
		AccountID:     p.id,
		Username:      p.username,
		JoinOrder:     p.joinOrder,
		Bank:          p.bank,
		Chips:         p.chips,
		Bet:           p.bet,
		Cards:         cards,
		Folded:        p.folded,
		AllIn:         p.allIn,
		Talked:        p.talked,
		Dealer:        p.dealer,
		SmallBlind:    p.smallBlind,
		BigBlind:      p.bigBlind,
		CurrentPlayer: p.currentPlayer,
	}
}

func playerFromRecord(r abstracts.SeatRecord) (*Player, error) {
	p := &Player{
		id:            r.AccountID,
		username:      r.Username,
		bank:          r.Bank,
		joinOrder:     r.JoinOrder,
		chips:         r.Chips,
		bet:           r.Bet,
		folded:        r.Folded,
		allIn:         r.AllIn,
		talked:        r.Talked,
		dealer:        r.Dealer,
		smallBlind:    r.SmallBlind,
		bigBlind:      r.BigBlind,
		currentPlayer: r.CurrentPlayer,
	}
	for _, w := range r.Cards {
		c, err := CardFromWhole(w)
		if err != nil {
			return nil, err
		}
		p.cards = append(p.cards, c)
	}
	return p, nil
}
