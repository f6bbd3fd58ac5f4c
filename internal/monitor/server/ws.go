package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/geo"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/kpi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/triage"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/view"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
)

const (
	// Minimum spacing between pushes. Change notifications arriving faster
	// collapse into a single push of the latest state.
	pushThrottle = 250 * time.Millisecond

	writeTimeout = 5 * time.Second
)

// statePayload is the derived-model bundle pushed to connected dashboards
// whenever the store changes.
type statePayload struct {
	Version  uint64                `json:"version"`
	Snapshot kpi.Snapshot          `json:"snapshot"`
	Groups   []triage.RiskGroup    `json:"groups"`
	Heat     geo.FeatureCollection `json:"heat"`
	Vehicles []view.VehicleView    `json:"vehicles"`
}

// wsHub fans store-change notifications out to websocket clients.
type wsHub struct {
	store *store.Store
	views *view.Views

	upgrader websocket.Upgrader
	notify   chan struct{}

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newWSHub(st *store.Store, views *view.Views) *wsHub {
	h := &wsHub{
		store:  st,
		views:  views,
		notify: make(chan struct{}, 1),
		conns:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// The dashboard is served from arbitrary origins in development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	st.Subscribe(func(uint64) {
		select {
		case h.notify <- struct{}{}:
		default:
		}
	})

	return h
}

// run pushes state to all clients on store changes, throttled, until ctx is
// cancelled.
func (h *wsHub) run(ctx context.Context) {
	throttle := time.NewTicker(pushThrottle)
	defer throttle.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-h.notify:
			pending = true
		case <-throttle.C:
			if pending {
				pending = false
				h.broadcast()
			}
		}
	}
}

func (h *wsHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error(err, "Websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	log.Info("Websocket client connected", "remote", conn.RemoteAddr().String())

	// Initial state so the client renders without waiting for a change.
	h.send(conn, h.currentState())

	// Reader loop: discard inbound frames, detect disconnect.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *wsHub) currentState() statePayload {
	return statePayload{
		Version:  h.store.Version(),
		Snapshot: h.views.Snapshot(),
		Groups:   h.views.Triage(triage.Filter{}),
		Heat:     h.views.Heat(),
		Vehicles: h.views.Vehicles(),
	}
}

func (h *wsHub) broadcast() {
	state := h.currentState()

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		h.send(c, state)
	}
}

func (h *wsHub) send(conn *websocket.Conn, state statePayload) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(state); err != nil {
		log.Warn("Dropping websocket client", "remote", conn.RemoteAddr().String(), "err", err.Error())
		h.drop(conn)
	}
}

func (h *wsHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, present := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()

	if present {
		conn.Close()
	}
}

func (h *wsHub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, c := range conns {
		c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.Close()
	}
}
