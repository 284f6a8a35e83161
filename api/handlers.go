package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/compilation"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// maxCompileRequestBytes bounds a compile request's body. A program the
// front end is meant for fits in a fraction of this.
const maxCompileRequestBytes = 1 << 20

// handleCompile runs the full pipeline over the submitted files, returns
// diagnostics plus a symbol summary, and publishes the same outcome to
// every websocket subscriber under the same sequence number. Each request
// is a fresh compilation; the daemon keeps no state between requests
// beyond the hub's latest-event replay.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		reject(w, http.StatusMethodNotAllowed, "compile requires POST")
		return
	}

	var req CompileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCompileRequestBytes))
	if err := dec.Decode(&req); err != nil {
		reject(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if len(req.Files) == 0 {
		reject(w, http.StatusBadRequest, "at least one file is required")
		return
	}

	texts := make([]*source.Text, len(req.Files))
	for i, f := range req.Files {
		texts[i] = source.New(f.Name, f.Content)
	}

	c, _, diags := compilation.CompileSources(nil, texts...)

	resp := CompileResponse{
		Seq:         s.hub.nextSeq(),
		Success:     !diags.HasErrors(),
		Diagnostics: toDiagnosticJSON(diags),
		CompiledAt:  time.Now(),
	}
	if c.GlobalScope != nil {
		resp.Symbols = summarizeSymbols(c.GlobalScope)
	}

	s.hub.publish(diagnosticsEventFor(resp))
	respond(w, http.StatusOK, resp)
}

// diagnosticsEventFor condenses a compile response into its broadcast
// frame, carrying the same Seq so subscribers can correlate the two.
func diagnosticsEventFor(resp CompileResponse) DiagnosticsEvent {
	errs, warns := 0, 0
	for _, d := range resp.Diagnostics {
		if d.Severity == diagnostics.SeverityWarning.String() {
			warns++
		} else {
			errs++
		}
	}
	return DiagnosticsEvent{
		Type:        "diagnostics",
		Seq:         resp.Seq,
		Success:     resp.Success,
		Errors:      errs,
		Warnings:    warns,
		Diagnostics: resp.Diagnostics,
		CompiledAt:  resp.CompiledAt,
	}
}

func summarizeSymbols(scope *binding.BoundGlobalScope) SymbolSummary {
	summary := SymbolSummary{}
	for _, c := range scope.Classes {
		summary.Classes = append(summary.Classes, c.Name)
	}
	for _, fn := range scope.Functions {
		summary.Functions = append(summary.Functions, fn.Name)
	}
	for _, v := range scope.Variables {
		summary.Variables = append(summary.Variables, v.Name)
	}
	return summary
}

func toDiagnosticJSON(d *diagnostics.Bag) []DiagnosticJSON {
	sorted := d.Sorted()
	out := make([]DiagnosticJSON, len(sorted))
	for i, diag := range sorted {
		line, col := diag.Location.StartLineColumn()
		out[i] = DiagnosticJSON{
			File:     diag.Location.Filename(),
			Line:     line + 1,
			Column:   col + 1,
			Kind:     diag.Kind.String(),
			Severity: diag.Severity.String(),
			Message:  diag.Message,
		}
	}
	return out
}
