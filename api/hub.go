// Package api is the -serve watch-mode daemon: POST a program to
// /api/v1/compile and get its diagnostics back, or hold a websocket open
// on /api/v1/ws to hear about every compile anyone runs against the
// daemon. Compiles are numbered, and the same number appears in the HTTP
// response and the broadcast frame, so a client driving both can tell its
// own compile apart from everyone else's.
package api

import (
	"sync"
	"time"
)

// DiagnosticsEvent is one websocket frame: the outcome of a single
// compile. Seq matches the CompileResponse of the request that triggered
// it, letting a subscriber correlate frames with its own POSTs and drop
// frames it has already rendered.
type DiagnosticsEvent struct {
	Type        string           `json:"type"` // always "diagnostics"
	Seq         int64            `json:"seq"`
	Success     bool             `json:"success"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	CompiledAt  time.Time        `json:"compiledAt"`
}

// hub fans each completed compile out to every connected websocket client
// and remembers the most recent event, so a client connecting between
// compiles is brought up to date immediately instead of sitting on a
// silent socket until someone POSTs again.
type hub struct {
	mu      sync.Mutex
	clients map[chan DiagnosticsEvent]bool
	last    *DiagnosticsEvent
	seq     int64
	closed  bool
}

func newHub() *hub {
	return &hub{clients: make(map[chan DiagnosticsEvent]bool)}
}

// nextSeq reserves the number for a compile about to run. Numbers are
// handed out in request order, one per compile, never reused.
func (h *hub) nextSeq() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	return h.seq
}

// compileCount reports how many compiles the daemon has served.
func (h *hub) compileCount() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}

// publish records ev as the latest compile outcome and delivers it to
// every connected client. A client whose buffer is full has stopped
// draining its socket; it is dropped here, and its writer goroutine exits
// when it sees the closed channel.
func (h *hub) publish(ev DiagnosticsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.last = &ev
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			delete(h.clients, ch)
			close(ch)
		}
	}
}

// attach registers a new client, returning its event channel and the
// latest event to replay (nil until the first compile completes). On a
// closed hub the returned channel is already closed, so the caller's
// stream loop exits immediately.
func (h *hub) attach() (chan DiagnosticsEvent, *DiagnosticsEvent) {
	ch := make(chan DiagnosticsEvent, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, nil
	}
	h.clients[ch] = true
	return ch, h.last
}

// detach removes a client. Safe to call twice, and safe after publish or
// shutdown already dropped the channel.
func (h *hub) detach(ch chan DiagnosticsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[ch] {
		delete(h.clients, ch)
		close(ch)
	}
}

// clientCount reports how many websocket clients are currently attached.
func (h *hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// shutdown drops every client and refuses further attaches; part of the
// server's graceful stop.
func (h *hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}
