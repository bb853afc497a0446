package game

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/common/mongo"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
)

func NewGameDBByMongo(config *mgo.DialInfo, dbName string) *GameDBByMongo {
	db := &GameDBByMongo{
		config: config,
		dbName: dbName,

		tableTN: "tables",
		seatTN:  "user_table",
		userTN:  "users",
	}

	db.migrate()

	return db
}

// GameDB and account lookup backed by mongo. Mongo has no multi-document
// transactions here, so Commit snapshots the previous rows first and puts
// them back when a later write fails. Commit only ever runs inside one
// table's critical section, so two commits for the same table never race.
type GameDBByMongo struct {
	config *mgo.DialInfo
	dbName string

	tableTN string
	seatTN  string
	userTN  string
}

func (db *GameDBByMongo) Commit(c abstracts.GameCommit) error {
	prevTable, prevSeats, err := db.LoadGame(c.Table.TableID)
	if err != nil {
		return err
	}

	if _, err := db.getDB().C(db.tableTN).Upsert(bson.M{"tableid": c.Table.TableID}, c.Table); err != nil {
		return errors.Wrap(err, "upsert table row")
	}
	for _, s := range c.Seats {
		if _, err := db.getDB().C(db.seatTN).Upsert(bson.M{"tableid": s.TableID, "accountid": s.AccountID}, s); err != nil {
			db.compensate(c.Table.TableID, prevTable, prevSeats, nil)
			return errors.Wrap(err, "upsert seat row")
		}
	}
	applied := map[string]uint64{}
	for accountID, amount := range c.BankDebits {
		err := db.getDB().C(db.userTN).Update(bson.M{"accountid": accountID}, bson.M{"$inc": bson.M{"bank": -int64(amount)}})
		if err != nil {
			db.compensate(c.Table.TableID, prevTable, prevSeats, applied)
			return errors.Wrapf(err, "debit bank of %v", accountID)
		}
		applied[accountID] = amount
	}
	return nil
}

// put the previous rows back after a failed commit. Best effort, anything
// that fails here is only logged, the caller already gets the commit error.
func (db *GameDBByMongo) compensate(tableID string, prevTable *abstracts.TableRecord, prevSeats []abstracts.SeatRecord, debits map[string]uint64) {
	log.L.Warn("rolling back failed table commit", zap.String("table", tableID))
	if _, err := db.getDB().C(db.seatTN).RemoveAll(bson.M{"tableid": tableID}); err != nil {
		log.L.Error("remove seat rows failed during rollback", zap.Error(err))
	}
	for _, s := range prevSeats {
		if err := db.getDB().C(db.seatTN).Insert(s); err != nil {
			log.L.Error("restore seat row failed during rollback", zap.Error(err))
		}
	}
	if prevTable == nil {
		if err := db.getDB().C(db.tableTN).Remove(bson.M{"tableid": tableID}); err != nil && err != mgo.ErrNotFound {
			log.L.Error("remove table row failed during rollback", zap.Error(err))
		}
	} else if _, err := db.getDB().C(db.tableTN).Upsert(bson.M{"tableid": tableID}, prevTable); err != nil {
		log.L.Error("restore table row failed during rollback", zap.Error(err))
	}
	for accountID, amount := range debits {
		err := db.getDB().C(db.userTN).Update(bson.M{"accountid": accountID}, bson.M{"$inc": bson.M{"bank": int64(amount)}})
		if err != nil {
			log.L.Error("re-credit bank failed during rollback", zap.String("account", accountID), zap.Error(err))
		}
	}
}

func (db *GameDBByMongo) LoadGame(tableID string) (*abstracts.TableRecord, []abstracts.SeatRecord, error) {
	var table abstracts.TableRecord
	err := db.getDB().C(db.tableTN).Find(bson.M{"tableid": tableID}).One(&table)
	if err == mgo.ErrNotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "load table row")
	}
	var seats []abstracts.SeatRecord
	if err = db.getDB().C(db.seatTN).Find(bson.M{"tableid": tableID}).Sort("joinorder").All(&seats); err != nil {
		return nil, nil, errors.Wrap(err, "load seat rows")
	}
	return &table, seats, nil
}

// token lookup against the users collection the auth service writes
func (db *GameDBByMongo) GetAccountByToken(token string) abstracts.Account {
	if token == "" {
		return nil
	}
	var rec abstracts.AccountRecord
	if err := db.getDB().C(db.userTN).Find(bson.M{"token": token}).One(&rec); err != nil {
		if err != mgo.ErrNotFound {
			log.L.Error("account lookup failed", zap.Error(err))
		}
		return nil
	}
	return NewAccount(rec.AccountID, rec.Username, rec.Bank)
}

func (db *GameDBByMongo) getDB() *mgo.Database {
	return mongo.GetDB(db.config).DB(db.dbName)
}

func (db *GameDBByMongo) migrate() {
	db.getDB().C(db.tableTN).EnsureIndex(mgo.Index{Key: []string{"tableid"}, Unique: true})

	// one seat per account per table, the store refuses duplicates even
	// if a coordinator bug lets one through
	db.getDB().C(db.seatTN).EnsureIndex(mgo.Index{Key: []string{"tableid", "accountid"}, Unique: true})
	db.getDB().C(db.seatTN).EnsureIndex(mgo.Index{Key: []string{"tableid"}})

	db.getDB().C(db.userTN).EnsureIndex(mgo.Index{Key: []string{"accountid"}, Unique: true})
	db.getDB().C(db.userTN).EnsureIndex(mgo.Index{Key: []string{"token"}})
}

func (db *GameDBByMongo) ClearTestData() {
	mongo.ClearAllData(db.config, db.dbName)
}
