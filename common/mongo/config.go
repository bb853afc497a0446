package mongo

import (
	"time"

	"gopkg.in/mgo.v2"
)

// new mongo conf. Credentials come from the environment, cmd loads them
// through godotenv before building the config.
func NewDbConfig(hosts []string, uname string, pwd string, dbName string) *mgo.DialInfo {
	return &mgo.DialInfo{
		Addrs:     hosts,
		Database:  dbName,
		Username:  uname,
		Password:  pwd,
		Direct:    false,
		Timeout:   time.Second * 5,
		PoolLimit: 300, // Session.SetPoolLimit
	}
}
