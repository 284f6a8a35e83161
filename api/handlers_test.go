package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func postCompile(t *testing.T, s *Server, files []SourceFile) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(CompileRequest{Files: files})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/compile", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.handleCompile(w, req)
	return w
}

func TestHandleCompileRejectsNonPost(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/compile", nil)
	w := httptest.NewRecorder()

	s.handleCompile(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestHandleCompileRejectsEmptyFiles(t *testing.T) {
	s := NewServer(0)
	w := postCompile(t, s, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleCompileSucceedsOnValidSource(t *testing.T) {
	s := NewServer(0)
	w := postCompile(t, s, []SourceFile{
		{Name: "main.mlang", Content: "function main() { writeLine(\"hi\"); }"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp CompileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Seq != 1 {
		t.Errorf("expected the first compile to be seq 1, got %d", resp.Seq)
	}
	found := false
	for _, fn := range resp.Symbols.Functions {
		if fn == "main" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected main in symbol summary, got %+v", resp.Symbols)
	}
}

func TestHandleCompileReportsDiagnosticsOnBadSource(t *testing.T) {
	s := NewServer(0)
	w := postCompile(t, s, []SourceFile{
		{Name: "main.mlang", Content: "function main() { let x = ; }"},
	})

	var resp CompileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected Success=false for malformed source")
	}
	if len(resp.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}

// TestWebSocketReplaysAndStreams drives the daemon end to end: connect,
// receive the replay of the compile that already ran, then a second
// compile's frame, and check the sequence numbers line up with the HTTP
// responses.
func TestWebSocketReplaysAndStreams(t *testing.T) {
	s := NewServer(0)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	first := postCompile(t, s, []SourceFile{{Name: "a.mlang", Content: "var x = 1;"}})
	var firstResp CompileResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("failed to decode first response: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	readEvent := func() DiagnosticsEvent {
		t.Helper()
		if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatalf("SetReadDeadline failed: %v", err)
		}
		var ev DiagnosticsEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		return ev
	}

	replay := readEvent()
	if replay.Seq != firstResp.Seq || !replay.Success {
		t.Fatalf("expected a replay of compile %d, got %+v", firstResp.Seq, replay)
	}

	second := postCompile(t, s, []SourceFile{{Name: "b.mlang", Content: "var y = 0 / 0;"}})
	var secondResp CompileResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}

	live := readEvent()
	if live.Seq != secondResp.Seq {
		t.Fatalf("expected the live frame for compile %d, got %+v", secondResp.Seq, live)
	}
	if live.Success || live.Errors == 0 {
		t.Fatalf("expected a failing compile with errors counted, got %+v", live)
	}
}
