package core

import (
	"math/rand"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/common/gerror"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/util"
)

// the pristine cards, every table's deck is a shuffled copy of these.
// never written after init, so concurrent reads are fine
var originCards = makeDeckOfCards()

// the card heap of one game, rebuilt fresh at every start
type Deck struct {
	cards []Card
}

// rng may be nil, then a time-seeded source is used. Tests inject a
// fixed seed to make the shuffle reproducible.
func newShuffledDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = util.NewRand()
	}
	d := &Deck{cards: append([]Card{}, originCards...)}
	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	log.L.Debug("deck shuffled")
	return d
}

// restore a deck from its persisted form
func deckFromWholes(wholes []string) (*Deck, error) {
	d := &Deck{cards: make([]Card, len(wholes))}
	for i, w := range wholes {
		c, err := CardFromWhole(w)
		if err != nil {
			return nil, err
		}
		d.cards[i] = c
	}
	return d, nil
}

// deal n cards off the top. Dealing is gated by maxplayers so underflow
// can only mean a bug upstream.
func (d *Deck) popFront(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, gerror.ErrInsufficientCards
	}
	popped := append([]Card{}, d.cards[0:n]...)
	d.cards = d.cards[n:]
	return popped, nil
}

func (d *Deck) remaining() int {
	return len(d.cards)
}

func (d *Deck) wholes() []string {
	result := make([]string, len(d.cards))
	for i, c := range d.cards {
		result[i] = c.whole
	}
	return result
}
