package abstracts

// Account is the identity the auth collaborator resolved for a request.
// The engine never checks credentials itself, it trusts what it gets here.
type Account interface {
	ID() string
	Username() string
	// bank balance outside any table, buy-ins are debited from it
	Bank() uint64
}

// GameDB persists one table and its seat roster. Commit must apply all rows
// of one commit together, a partial write may not stay behind.
type GameDB interface {
	Commit(c GameCommit) error
	// LoadGame returns nil table when the table id is unknown
	LoadGame(tableID string) (*TableRecord, []SeatRecord, error)
}
