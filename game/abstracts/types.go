package abstracts

const (
	// c - s
	MsgTypeGetScene = 0x10
	// s - c
	MsgTypeErr = 0x20
	// s - c
	MsgTypeSuccess = 0x21
	// s - c
	MsgTypeTableScene = 0x22
)

type ErrResp struct {
	ErrCode int    `json:"err_code"`
	Info    string `json:"info"`
}

type SuccessResp struct {
	Info string `json:"info"`
}

// GameCommit is everything one table mutation writes: the table row, the
// full seat roster and the bank debits taken for buy-ins.
type GameCommit struct {
	Table TableRecord
	Seats []SeatRecord
	// K account id, V amount to take from the bank
	BankDebits map[string]uint64
}

type TableRecord struct {
	TableID    string   `bson:"tableid"`
	Status     string   `bson:"status"`
	MinPlayers int      `bson:"minplayers"`
	MaxPlayers int      `bson:"maxplayers"`
	MinBuyIn   uint64   `bson:"minbuyin"`
	MaxBuyIn   uint64   `bson:"maxbuyin"`
	SmallBlind uint64   `bson:"smallblind"`
	BigBlind   uint64   `bson:"bigblind"`
	Deck       []string `bson:"deck"`
	Pot        uint64   `bson:"pot"`
	RoundName  string   `bson:"roundname"`
	BetName    string   `bson:"betname"`
}

// account row as the auth/user collaborator keeps it
type AccountRecord struct {
	AccountID string `bson:"accountid"`
	Username  string `bson:"username"`
	Bank      uint64 `bson:"bank"`
	Token     string `bson:"token"`
}

// one row per (table, account)
type SeatRecord struct {
	TableID       string   `bson:"tableid"`
	AccountID     string   `bson:"accountid"`
	Username      string   `bson:"username"`
	JoinOrder     int      `bson:"joinorder"`
	Bank          uint64   `bson:"bank"`
	Chips         uint64   `bson:"chips"`
	Bet           uint64   `bson:"bet"`
	Cards         []string `bson:"cards"`
	Folded        bool     `bson:"folded"`
	AllIn         bool     `bson:"allin"`
	Talked        bool     `bson:"talked"`
	Dealer        bool     `bson:"dealer"`
	SmallBlind    bool     `bson:"smallblind"`
	BigBlind      bool     `bson:"bigblind"`
	CurrentPlayer bool     `bson:"currentplayer"`
}

/*

per-viewer snapshot of the table

field names are the wire contract, clients read them as-is. Cards is only
filled for the viewer's own seat and the raw deck never appears here.

*/
type TableScene struct {
	Status     string         `json:"status"`
	SmallBlind uint64         `json:"smallblind"`
	BigBlind   uint64         `json:"bigblind"`
	MinPlayers int            `json:"minplayers"`
	MaxPlayers int            `json:"maxplayers"`
	MinBuyIn   uint64         `json:"minbuyin"`
	MaxBuyIn   uint64         `json:"maxbuyin"`
	Pot        uint64         `json:"pot"`
	RoundName  string         `json:"roundname"`
	BetName    string         `json:"betname"`
	Players    []*PlayerScene `json:"players"`
}

type PlayerScene struct {
	Username      string   `json:"username"`
	Dealer        bool     `json:"dealer"`
	Chips         uint64   `json:"chips"`
	Bet           uint64   `json:"bet"`
	Folded        bool     `json:"folded"`
	AllIn         bool     `json:"allin"`
	Talked        bool     `json:"talked"`
	Cards         []string `json:"cards"`
	IsBigBlind    bool     `json:"isBigBlind"`
	IsSmallBlind  bool     `json:"isSmallBlind"`
	CurrentPlayer bool     `json:"currentplayer"`
}
