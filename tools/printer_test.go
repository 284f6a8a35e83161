package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

func TestPrinterPrintsLocationAndMessage(t *testing.T) {
	text := source.New("test.mlang", "let x = 1\nlet y = x + \n")
	diags := &diagnostics.Bag{}
	diags.Report(source.NewLocation(text, source.NewSpan(23, 1)), diagnostics.UnexpectedToken, "unexpected end of input")

	var buf bytes.Buffer
	p := NewPrinter(&PrinterOptions{Color: false, ContextLines: 1})
	if err := p.Print(&buf, diags); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "test.mlang:3:1:") {
		t.Errorf("expected file:line prefix in output, got %q", out)
	}
	if !strings.Contains(out, "unexpected end of input") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "[UnexpectedToken]") {
		t.Errorf("expected kind tag in output, got %q", out)
	}
}

func TestPrinterNoColorOmitsEscapes(t *testing.T) {
	text := source.New("test.mlang", "x\n")
	diags := &diagnostics.Bag{}
	diags.Warn(source.NewLocation(text, source.NewSpan(0, 1)), diagnostics.UnreachableCode, "unreachable")

	var buf bytes.Buffer
	p := NewPrinter(&PrinterOptions{Color: false, ContextLines: 0})
	if err := p.Print(&buf, diags); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("expected no ANSI escapes when Color is false")
	}
}

func TestSummaryCountsErrorsAndWarnings(t *testing.T) {
	diags := &diagnostics.Bag{}
	diags.Report(source.Location{}, diagnostics.UndefinedVariable, "oops")
	diags.Warn(source.Location{}, diagnostics.UnreachableCode, "careful")
	diags.Warn(source.Location{}, diagnostics.UnreachableCode, "careful again")

	summary := Summary(diags)
	if summary != "1 error(s), 2 warning(s)" {
		t.Errorf("unexpected summary: %q", summary)
	}
}
