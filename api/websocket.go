package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
	// A client that sends no pong for this long is treated as gone.
	wsIdleTimeout = 75 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return originAllowed(r.Header.Get("Origin"))
	},
}

// handleWebSocket upgrades the connection and streams one
// DiagnosticsEvent per compile until the client goes away. There is no
// subscription protocol: the daemon has exactly one stream, every client
// gets every compile's outcome, and a freshly connected client starts
// with the most recent one if any compile already ran.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("api: websocket upgrade: %v", err)
		return
	}
	events, latest := s.hub.attach()
	go s.streamEvents(conn, events, latest)
	go s.watchClient(conn, events)
}

// streamEvents owns the write side of conn: the replayed latest event,
// then every published compile, with periodic pings so intermediaries
// don't idle the connection out between compiles. It exits when the hub
// drops the client (slow reader, daemon shutdown) or a write fails.
func (s *Server) streamEvents(conn *websocket.Conn, events chan DiagnosticsEvent, latest *DiagnosticsEvent) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		s.hub.detach(events)
		_ = conn.Close()
	}()

	if latest != nil && !writeEvent(conn, *latest) {
		return
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				deadline := time.Now().Add(wsWriteTimeout)
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
				_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
				return
			}
			if !writeEvent(conn, ev) {
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev DiagnosticsEvent) bool {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return false
	}
	return conn.WriteJSON(ev) == nil
}

// watchClient drains the read side of conn. The stream is one-way, so
// incoming frames matter only as liveness: each pong extends the read
// deadline, and the first read error means the client is gone and its hub
// registration goes with it (which in turn stops the writer).
func (s *Server) watchClient(conn *websocket.Conn, events chan DiagnosticsEvent) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.detach(events)
			_ = conn.Close()
			return
		}
	}
}
