package mongo

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/mgo.v2"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
)

var session *mgo.Session
var mutex sync.Mutex

// GetDB dials once and hands out the shared session. Tries the admin db
// first, a user may only be granted its own database, so fall back to the
// configured one before giving up.
func GetDB(dbConfig *mgo.DialInfo) *mgo.Session {
	if session != nil {
		return session
	}
	mutex.Lock()
	defer mutex.Unlock()

	log.L.Info("init mongo db session", zap.Strings("hosts", dbConfig.Addrs))
	tmpDbName := dbConfig.Database
	dbConfig.Database = "admin"
	var err error
	if session, err = mgo.DialWithInfo(dbConfig); err != nil {
		dbConfig.Database = tmpDbName
		if session, err = mgo.DialWithInfo(dbConfig); err != nil {
			panic("dial mongodb failed: " + err.Error())
		}
	}
	session.SetMode(mgo.Strong, true)

	return session
}

// wipe every collection of a database, test databases only
func ClearAllData(dbConfig *mgo.DialInfo, dbName string) {
	if !strings.Contains(dbName, "test") {
		log.L.Warn("refuse to clear a non test database", zap.String("db", dbName))
		return
	}
	tmpDB := GetDB(dbConfig).DB(dbName)
	cNames, _ := tmpDB.CollectionNames()
	for _, cn := range cNames {
		// RemoveAll instead of DropCollection, dropping loses the
		// indexes cached on the session and later migrates fail
		if _, err := tmpDB.C(cn).RemoveAll(nil); err != nil {
			panic(err)
		}
	}
}

func CloseDb(dbConfig *mgo.DialInfo) {
	mutex.Lock()
	defer mutex.Unlock()
	if session != nil {
		session.Close()
		session = nil
	}
}
