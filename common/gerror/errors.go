package gerror

import "errors"

// business errors go back to the caller as a normal low-severity response,
// invariant errors mean the engine refused to apply a mutation
var (
	// the string is part of the wire contract, clients match on it
	ErrNotEnoughPlayers = errors.New("Not enough players")

	ErrTableFull     = errors.New("table is full")
	ErrAlreadySeated = errors.New("account already seated at this table")

	ErrInsufficientCards = errors.New("not enough cards left in deck")
	ErrInsufficientChips = errors.New("not enough chips to post blind")
)
