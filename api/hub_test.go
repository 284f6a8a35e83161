package api

import (
	"testing"
	"time"
)

func event(seq int64) DiagnosticsEvent {
	return DiagnosticsEvent{Type: "diagnostics", Seq: seq, Success: true, CompiledAt: time.Unix(seq, 0)}
}

func TestHubDeliversToAttachedClient(t *testing.T) {
	h := newHub()
	ch, latest := h.attach()
	if latest != nil {
		t.Fatalf("expected no replay before the first compile, got %+v", latest)
	}

	h.publish(event(1))

	select {
	case ev := <-ch:
		if ev.Seq != 1 {
			t.Fatalf("expected seq 1, got %d", ev.Seq)
		}
	default:
		t.Fatal("expected the published event to be buffered for the client")
	}
}

func TestHubReplaysLatestOnAttach(t *testing.T) {
	h := newHub()
	h.publish(event(1))
	h.publish(event(2))

	_, latest := h.attach()
	if latest == nil || latest.Seq != 2 {
		t.Fatalf("expected the latest event (seq 2) replayed, got %+v", latest)
	}
}

func TestHubSeqIsMonotonic(t *testing.T) {
	h := newHub()
	if a, b := h.nextSeq(), h.nextSeq(); a != 1 || b != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", a, b)
	}
	if h.compileCount() != 2 {
		t.Fatalf("expected compile count 2, got %d", h.compileCount())
	}
}

func TestHubDropsClientWithFullBuffer(t *testing.T) {
	h := newHub()
	ch, _ := h.attach()

	// Never drain: the buffer fills, then the next publish drops the client.
	for i := 0; i < cap(ch)+1; i++ {
		h.publish(event(int64(i)))
	}

	if h.clientCount() != 0 {
		t.Fatalf("expected the stalled client to be dropped, %d still attached", h.clientCount())
	}
	drained := 0
	for range ch {
		drained++
	}
	if drained != cap(ch) {
		t.Fatalf("expected exactly %d buffered events before the close, got %d", cap(ch), drained)
	}
}

func TestHubDetachIsIdempotent(t *testing.T) {
	h := newHub()
	ch, _ := h.attach()
	h.detach(ch)
	h.detach(ch) // second call must not close twice or panic
	if h.clientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", h.clientCount())
	}
}

func TestHubShutdownClosesClientsAndRefusesAttach(t *testing.T) {
	h := newHub()
	ch, _ := h.attach()
	h.shutdown()

	if _, ok := <-ch; ok {
		t.Fatal("expected the client channel to be closed on shutdown")
	}

	late, _ := h.attach()
	if _, ok := <-late; ok {
		t.Fatal("expected a post-shutdown attach to get a closed channel")
	}

	h.publish(event(9)) // must be a no-op, not a panic
}
