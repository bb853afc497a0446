package core

var TableLevels = map[int]TableLevel{
	1: {MinPlayers: 2, MaxPlayers: 5, MinBuyIn: 10000, MaxBuyIn: 100000, SmallBlind: 1000, BigBlind: 2000},
	2: {MinPlayers: 2, MaxPlayers: 5, MinBuyIn: 10000 * 10, MaxBuyIn: 100000 * 10, SmallBlind: 1000 * 10, BigBlind: 2000 * 10},
	3: {MinPlayers: 2, MaxPlayers: 9, MinBuyIn: 10000 * 100, MaxBuyIn: 100000 * 100, SmallBlind: 1000 * 100, BigBlind: 2000 * 100},
}

type TableLevel struct {
	// game starts the moment this many are seated
	MinPlayers int
	MaxPlayers int
	// the buy-in debited from each bank at start
	MinBuyIn uint64
	MaxBuyIn uint64
	// forced bets, big blind is posted by the dealer when heads up
	SmallBlind uint64
	BigBlind   uint64
}
