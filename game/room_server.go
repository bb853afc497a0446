package game

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/SitNGo/common/gerror"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/game/core"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/log"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/metrics"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/msg_server"
	"github.com/LeaguesOfHoleHoleShoes/SitNGo/util"
)

const DefaultTableID = "main"

func NewRoomServer(tableLevel int, db abstracts.GameDB, accounts AccountGetter) *RoomServer {
	level, ok := core.TableLevels[tableLevel]
	if !ok {
		panic(fmt.Sprintf("unknown table level: %v", tableLevel))
	}
	r := &RoomServer{
		level:    level,
		db:       db,
		accounts: accounts,
		rng:      util.NewRand(),
		tables:   map[string]*core.Table{},
	}
	r.wsServer = msg_server.NewWsServer(&wsAccountGetter{accounts: accounts}, r)
	return r
}

/*

join coordinator and HTTP surface of the room

every table is its own actor, the room only creates them lazily on the
first join for a table id and remembers which account sits where. Anything
that mutates a table goes through that table's own goroutine, the room
itself never touches game state.

*/
type RoomServer struct {
	level    core.TableLevel
	db       abstracts.GameDB
	accounts AccountGetter
	wsServer *msg_server.WsServer
	rng      *rand.Rand

	mu     sync.Mutex
	tables map[string]*core.Table
	// K account id, V *core.Table the account sits at
	users sync.Map

	started uint32
}

// the table is created (and loaded from the store) on first use
func (r *RoomServer) tableFor(id string) (*core.Table, error) {
	if id == "" {
		id = DefaultTableID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tables[id]; ok {
		return t, nil
	}
	t := core.NewTable(id, r.level, r.db, r, r.rng)
	if err := t.Start(); err != nil {
		return nil, errors.Wrap(err, "start table")
	}
	r.tables[id] = t
	log.L.Info("table created", zap.String("table", id))
	return t, nil
}

// Join seats the account at the table, or renders the current state for
// an account that already sits there. gerror.ErrNotEnoughPlayers comes
// back with a scene and means the table keeps waiting.
func (r *RoomServer) Join(tableID string, a abstracts.Account) (*abstracts.TableScene, error) {
	t, err := r.tableFor(tableID)
	if err != nil {
		return nil, err
	}
	scene, err := t.Join(a)
	if err == nil || err == gerror.ErrNotEnoughPlayers {
		r.users.Store(a.ID(), t)
		metrics.SeatedPlayers.WithLabelValues(t.ID()).Set(float64(len(scene.Players)))
	}
	return scene, err
}

// incoming ws messages, only scene pulls for now
func (r *RoomServer) Handle(uID string, msgType int, mID int64, msg []byte) error {
	switch msgType {
	case abstracts.MsgTypeGetScene:
		tmp, ok := r.users.Load(uID)
		if !ok {
			r.wsServer.Send(uID, abstracts.MsgTypeErr, mID, util.StringifyJsonToBytes(abstracts.ErrResp{Info: "user not at any table"}))
			return nil
		}
		t := tmp.(*core.Table)
		r.wsServer.Send(uID, abstracts.MsgTypeTableScene, mID, util.StringifyJsonToBytes(t.GetScene(uID)))
	}
	return nil
}

// SendScene implements the table's scene sender, started tables push every
// player their own masked snapshot
func (r *RoomServer) SendScene(accountID string, scene *abstracts.TableScene) {
	r.wsServer.Send(accountID, abstracts.MsgTypeTableScene, time.Now().UnixNano(), util.StringifyJsonToBytes(scene))
}

func (r *RoomServer) Router() chi.Router {
	mux := chi.NewRouter()
	mux.Post("/api/game", r.handleJoin)
	mux.Post("/api/game/{tableID}", r.handleJoin)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/msg", r.wsServer.HandlePeer)
	return mux
}

// body while the table waits for more players. Players carries the literal
// reason string the client matches on, the roster rides alongside.
type waitingResp struct {
	Players    string                   `json:"players"`
	Status     string                   `json:"status"`
	MinPlayers int                      `json:"minplayers"`
	MaxPlayers int                      `json:"maxplayers"`
	Seated     []*abstracts.PlayerScene `json:"seated"`
}

func (r *RoomServer) handleJoin(w http.ResponseWriter, req *http.Request) {
	a := r.accounts.GetAccountByToken(req.Header.Get("Authorization"))
	if a == nil {
		metrics.JoinCount.WithLabelValues(metrics.JoinRejected).Inc()
		writeJSON(w, http.StatusUnauthorized, abstracts.ErrResp{ErrCode: http.StatusUnauthorized, Info: "unauthorized"})
		return
	}

	scene, err := r.Join(chi.URLParam(req, "tableID"), a)
	switch err {
	case nil:
		metrics.JoinCount.WithLabelValues(metrics.JoinOK).Inc()
		writeJSON(w, http.StatusOK, scene)
	case gerror.ErrNotEnoughPlayers:
		metrics.JoinCount.WithLabelValues(metrics.JoinWaiting).Inc()
		writeJSON(w, http.StatusBadRequest, waitingResp{
			Players:    err.Error(),
			Status:     scene.Status,
			MinPlayers: scene.MinPlayers,
			MaxPlayers: scene.MaxPlayers,
			Seated:     scene.Players,
		})
	case gerror.ErrTableFull:
		metrics.JoinCount.WithLabelValues(metrics.JoinFull).Inc()
		writeJSON(w, http.StatusBadRequest, abstracts.ErrResp{ErrCode: http.StatusBadRequest, Info: err.Error()})
	default:
		// store or invariant fault, nothing was committed
		metrics.JoinCount.WithLabelValues(metrics.JoinFailed).Inc()
		log.L.Error("join failed", zap.String("uid", a.ID()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, abstracts.ErrResp{ErrCode: http.StatusInternalServerError, Info: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(util.StringifyJsonToBytes(body))
}

func (r *RoomServer) Start() error {
	if atomic.LoadUint32(&r.started) == 1 {
		return errors.New("room already started")
	}

	if atomic.CompareAndSwapUint32(&r.started, 0, 1) {
		r.wsServer.Run()
	} else {
		log.L.Warn("start room atomic.CompareAndSwapUint32(&r.started... is false")
	}

	return nil
}

// Run blocks serving the HTTP surface
func (r *RoomServer) Run(port int) error {
	if err := r.Start(); err != nil {
		return err
	}
	log.L.Info("room server listening", zap.Int("port", port))
	return http.ListenAndServe(fmt.Sprintf(":%v", port), r.Router())
}

func (r *RoomServer) Stop() error {
	if atomic.LoadUint32(&r.started) == 0 {
		return errors.New("room not started")
	}

	if atomic.CompareAndSwapUint32(&r.started, 1, 0) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, t := range r.tables {
			if err := t.Stop(); err != nil {
				return err
			}
		}
	} else {
		log.L.Warn("stop room atomic.CompareAndSwapUint32(&r.started... is false")
	}

	return nil
}
