package api

import "time"

// CompileRequest is the body of POST /api/v1/compile: one or more named
// source blobs compiled together as a single program (more than one file
// may contribute classes and functions, but only one may carry global
// statements).
type CompileRequest struct {
	Files []SourceFile `json:"files"`
}

// SourceFile names a source blob the way the CLI names a file argument.
type SourceFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CompileResponse reports the outcome of a compile: every diagnostic plus
// a symbol summary, so a client never has to re-derive bound-tree shape
// itself. Seq also appears on the websocket frame this compile triggers.
type CompileResponse struct {
	Seq         int64            `json:"seq"`
	Success     bool             `json:"success"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Symbols     SymbolSummary    `json:"symbols"`
	CompiledAt  time.Time        `json:"compiledAt"`
}

// DiagnosticJSON is the wire shape of a single diagnostics.Diagnostic.
type DiagnosticJSON struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// SymbolSummary is a bound-program overview: just enough for a client to
// render a symbol list without walking the bound tree itself.
type SymbolSummary struct {
	Classes   []string `json:"classes"`
	Functions []string `json:"functions"`
	Variables []string `json:"variables"`
}

// HealthResponse is GET /health's body: liveness plus the counters an
// editor's status bar shows.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Compiles      int64  `json:"compiles"`
	Clients       int    `json:"clients"`
}

// ErrorResponse represents an error response for malformed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
