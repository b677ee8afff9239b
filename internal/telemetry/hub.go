package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/specialistvlad/jumpgridgo/internal/engine"
)

const (
	writeWait   = 5 * time.Second
	sendBacklog = 16
)

type viewer struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() { close(v.send) })
}

// Hub fans snapshots out to websocket viewers.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger
	every    int

	mu      sync.Mutex
	viewers map[*viewer]struct{}
}

// NewHub creates a hub keeping one snapshot in every.
func NewHub(logger *slog.Logger, every int) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:  logger,
		every:   max(every, 1),
		viewers: make(map[*viewer]struct{}),
	}
}

// ServeHTTP upgrades the request and streams snapshots until the viewer
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed.", "remote_addr", r.RemoteAddr, "error", err)
		return
	}
	v := &viewer{conn: conn, send: make(chan []byte, sendBacklog)}
	h.add(v)
	h.logger.Debug("Viewer connected.", "remote_addr", r.RemoteAddr, "viewers", h.Viewers())

	go h.writeLoop(v)

	// Viewers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(v)
	h.logger.Debug("Viewer disconnected.", "remote_addr", r.RemoteAddr, "viewers", h.Viewers())
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for b := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v] = struct{}{}
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		v.close()
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Observe queues the snapshot for every viewer. A viewer whose backlog is
// full skips the frame.
func (h *Hub) Observe(_ context.Context, snap *engine.Snapshot) error {
	if snap.Tick%h.every != 0 && len(snap.Events) == 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.viewers) == 0 {
		return nil
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	for v := range h.viewers {
		select {
		case v.send <- b:
		default:
		}
	}
	return nil
}

// Close disconnects every viewer.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		delete(h.viewers, v)
		v.close()
	}
	return nil
}

var _ engine.Observer = (*Hub)(nil)
