package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// liveEvent is the message pushed to connected dashboards.
type liveEvent struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// LiveHub fans refresh notifications out to websocket subscribers.
// It satisfies startups.RefreshNotifier so the sync service can push
// without knowing about websockets.
type LiveHub struct {
	log zerolog.Logger

	mu     sync.Mutex
	conns  map[*websocket.Conn]context.CancelFunc
	closed bool
}

func NewLiveHub(log zerolog.Logger) *LiveHub {
	return &LiveHub{
		log:   log.With().Str("component", "live_hub").Logger(),
		conns: make(map[*websocket.Conn]context.CancelFunc),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered
// until the client goes away.
func (h *LiveHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		cancel()
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	h.conns[conn] = cancel
	h.mu.Unlock()

	h.log.Debug().Msg("Dashboard connected")

	// We never expect client messages; CloseRead gives us a context that
	// ends when the peer disconnects.
	readCtx := conn.CloseRead(ctx)
	<-readCtx.Done()

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	cancel()
	conn.Close(websocket.StatusNormalClosure, "")

	h.log.Debug().Msg("Dashboard disconnected")
}

// NotifyRecordsRefreshed broadcasts a refresh event to every subscriber.
// Slow or dead connections are dropped rather than blocking the sync path.
func (h *LiveHub) NotifyRecordsRefreshed(count int) {
	event := liveEvent{
		Type:      "records_refreshed",
		Count:     count,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	h.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		targets = append(targets, conn)
	}
	h.mu.Unlock()

	for _, conn := range targets {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := wsjson.Write(ctx, conn, event)
		cancel()
		if err != nil {
			h.log.Debug().Err(err).Msg("Dropping stale websocket subscriber")
			h.mu.Lock()
			if cancelConn, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				cancelConn()
			}
			h.mu.Unlock()
			conn.Close(websocket.StatusAbnormalClosure, "write failed")
		}
	}
}

// Close disconnects all subscribers. Called on server shutdown.
func (h *LiveHub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := h.conns
	h.conns = make(map[*websocket.Conn]context.CancelFunc)
	h.mu.Unlock()

	for conn, cancel := range conns {
		cancel()
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
