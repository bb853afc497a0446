package core

import (
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
)

/*

per-viewer projection of the table

pure over (table state, viewer id): calling it any number of times gives
the same scene until the table mutates. Only the viewer's own seat carries
cards, every other seat renders cards as null no matter the game state,
and the deck itself never leaves the table.

*/
func (t *Table) sceneFor(viewerID string) *abstracts.TableScene {
	scene := &abstracts.TableScene{
		Status:     t.status,
		SmallBlind: t.level.SmallBlind,
		BigBlind:   t.level.BigBlind,
		MinPlayers: t.level.MinPlayers,
		MaxPlayers: t.level.MaxPlayers,
		MinBuyIn:   t.level.MinBuyIn,
		MaxBuyIn:   t.level.MaxBuyIn,
		Pot:        t.pot,
		RoundName:  t.roundName,
		BetName:    t.betName,
	}
	for _, p := range t.players {
		scene.Players = append(scene.Players, toPlayerScene(viewerID, p))
	}
	return scene
}

func toPlayerScene(viewerID string, p *Player) *abstracts.PlayerScene {
	ps := &abstracts.PlayerScene{
		Username:      p.username,
		Dealer:        p.dealer,
		Chips:         p.chips,
		Bet:           p.bet,
		Folded:        p.folded,
		AllIn:         p.allIn,
		Talked:        p.talked,
		IsBigBlind:    p.bigBlind,
		IsSmallBlind:  p.smallBlind,
		CurrentPlayer: p.currentPlayer,
	}
	// hole cards are only visible to their owner
	if p.id == viewerID {
		for _, c := range p.cards {
			ps.Cards = append(ps.Cards, c.whole)
		}
	}
	return ps
}
