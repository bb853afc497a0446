package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/common/mongo"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game"
)

const (
	TableLevelFName = "t_level"
	PortFName       = "port"
	MongoHostsFName = "mongo_hosts"
	DbNameFName     = "db_name"
)

func main() {
	// mongo credentials come from .env / environment
	godotenv.Load()

	app := cli.NewApp()
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: TableLevelFName, Value: 1},
		cli.IntFlag{Name: PortFName, Value: 3030},
		cli.StringFlag{Name: MongoHostsFName, Value: "localhost"},
		cli.StringFlag{Name: DbNameFName, Value: "sitngo"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}

func run(c *cli.Context) {
	dbName := c.String(DbNameFName)
	conf := mongo.NewDbConfig(
		strings.Split(c.String(MongoHostsFName), ","),
		os.Getenv("MONGO_UNAME"), os.Getenv("MONGO_PWD"),
		dbName,
	)
	db := game.NewGameDBByMongo(conf, dbName)

	room := game.NewRoomServer(c.Int(TableLevelFName), db, db)
	go func() {
		if err := room.Run(c.Int(PortFName)); err != nil {
			panic(err)
		}
	}()
	signalListen(func() {
		if err := room.Stop(); err != nil {
			panic(err)
		}
		mongo.CloseDb(conf)
		time.Sleep(1 * time.Second)
	})
}

// listen stop signal
func signalListen(stopFunc func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	stopFunc()
}
