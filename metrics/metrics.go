package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// join outcome labels
const (
	JoinOK       = "ok"
	JoinWaiting  = "waiting"
	JoinFull     = "table_full"
	JoinRejected = "unauthorized"
	JoinFailed   = "failed"
)

var (
	JoinCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "room_join_total",
		Help: "join requests by outcome",
	},
		[]string{"result"},
	)
	StartedTables = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "room_started_tables_total",
		Help: "tables that transitioned from waiting to started",
	})
	SeatedPlayers = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "room_seated_players",
		Help: "players currently seated per table",
	},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(JoinCount)
	prometheus.MustRegister(StartedTables)
	prometheus.MustRegister(SeatedPlayers)
}
