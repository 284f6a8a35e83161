package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Server is the compile daemon: an HTTP mux for one-shot compile requests
// plus a hub streaming each result to websocket subscribers.
type Server struct {
	hub        *hub
	handler    http.Handler
	httpServer *http.Server
	port       int
	started    time.Time
}

// NewServer wires the daemon's three routes. The server only ever binds
// loopback; this is an editor/tooling sidecar, not a network service.
func NewServer(port int) *Server {
	s := &Server{hub: newHub(), port: port, started: time.Now()}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/compile", s.handleCompile)
	mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
	s.handler = s.withCORS(mux)

	return s
}

// Handler exposes the daemon's handler chain for tests and embedding.
func (s *Server) Handler() http.Handler { return s.handler }

// Start blocks serving requests until Shutdown or a listen error.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:     s.handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	log.Printf("mlangc compile daemon listening on http://%s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown disconnects every websocket client, then stops the HTTP server
// gracefully within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.shutdown()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// localOriginPrefixes is the browser-origin allowlist. The daemon binds
// loopback only, so the sole legitimate browser callers are pages served
// from this same machine.
var localOriginPrefixes = []string{
	"http://localhost",
	"https://localhost",
	"http://127.0.0.1",
	"https://127.0.0.1",
	"file://",
}

// originAllowed accepts requests with no Origin header (curl, editors,
// native tooling) and browser origins from the local machine.
func originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, prefix := range localOriginPrefixes {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// withCORS reflects allowed local origins back and answers preflights, so
// a local web-based editor can drive the daemon from its own page.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports daemon liveness plus the counters an editor's
// status bar wants: compiles served so far and subscribers connected.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		reject(w, http.StatusMethodNotAllowed, "health requires GET")
		return
	}
	respond(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Compiles:      s.hub.compileCount(),
		Clients:       s.hub.clientCount(),
	})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("api: encoding response: %v", err)
	}
}

func reject(w http.ResponseWriter, status int, format string, args ...any) {
	respond(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: fmt.Sprintf(format, args...),
		Code:    status,
	})
}
