package core

import (
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
)

/*

role assignment over the ordered roster, run once at game start

join-order index 0 is the dealer. Heads up the dealer also posts the big
blind and the other seat the small blind, with more players small and big
blind sit directly after the dealer. First to act is the seat after the
big blind, wrapping, which heads up lands on the small blind.

*/
func assignSeats(players []*Player, smallBlind uint64, bigBlind uint64) (pot uint64) {
	n := len(players)
	players[0].dealer = true

	var sb, bb int
	if n == 2 {
		// heads-up rule: dealer posts the big blind
		bb = 0
		sb = 1
	} else {
		sb = 1
		bb = 2
	}
	players[sb].smallBlind = true
	players[bb].bigBlind = true

	pot += players[sb].postBlind(smallBlind)
	pot += players[bb].postBlind(bigBlind)

	cur := bb + 1
	if cur >= n {
		cur = 0
	}
	players[cur].currentPlayer = true

	log.L.Debug("seats assigned",
		zap.String("dealer", players[0].id),
		zap.String("small blind", players[sb].id),
		zap.String("big blind", players[bb].id),
		zap.String("first to act", players[cur].id))
	return pot
}
