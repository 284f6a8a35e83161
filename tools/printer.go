// Package tools renders the compiler's diagnostics and exposes the two
// opt-in analyses (unused-symbol lint, cross-reference dump) that sit on
// top of a bound program without gating compilation themselves.
package tools

import (
	"fmt"
	"io"
	"strings"

	"github.com/lookbusy1344/mlang/diagnostics"
)

// PrinterOptions controls how a diagnostics.Bag is rendered: column and
// style knobs the CLI wires to flags, rather than fixed at compile time.
type PrinterOptions struct {
	Color        bool // ANSI color on severity labels
	ContextLines int  // source lines of context printed around each diagnostic
}

// DefaultPrinterOptions mirrors config.DefaultConfig()'s diagnostics
// section so a caller that skips config loading still gets sane output.
func DefaultPrinterOptions() *PrinterOptions {
	return &PrinterOptions{Color: true, ContextLines: 1}
}

// Printer renders a diagnostics.Bag as `file:line:col: severity: message`
// lines with a few lines of source context under each.
type Printer struct {
	options *PrinterOptions
}

// NewPrinter creates a Printer, defaulting options when nil is passed.
func NewPrinter(options *PrinterOptions) *Printer {
	if options == nil {
		options = DefaultPrinterOptions()
	}
	return &Printer{options: options}
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
)

func (p *Printer) severityColor(sev diagnostics.Severity) string {
	if !p.options.Color {
		return ""
	}
	if sev == diagnostics.SeverityWarning {
		return ansiYellow
	}
	return ansiRed
}

// Print writes every diagnostic in d, sorted by file then position, to w.
// It never returns an error for an empty bag; Fprintf errors from the
// underlying writer propagate.
func (p *Printer) Print(w io.Writer, d *diagnostics.Bag) error {
	for _, diag := range d.Sorted() {
		if err := p.printOne(w, diag); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printOne(w io.Writer, diag diagnostics.Diagnostic) error {
	line, col := diag.Location.StartLineColumn()
	color := p.severityColor(diag.Severity)
	reset := ""
	if p.options.Color {
		reset = ansiReset
	}

	header := fmt.Sprintf("%s:%d:%d: %s%s%s: %s [%s]\n",
		diag.Location.Filename(), line+1, col+1, color, diag.Severity, reset, diag.Message, diag.Kind)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	text := diag.Location.Text
	if text == nil {
		return nil
	}
	from := line - p.options.ContextLines
	if from < 0 {
		from = 0
	}
	to := line + p.options.ContextLines
	if to >= text.LineCount() {
		to = text.LineCount() - 1
	}
	for i := from; i <= to; i++ {
		marker := "  "
		if i == line {
			marker = "> "
		}
		if _, err := fmt.Fprintf(w, "%s%4d | %s\n", marker, i+1, text.Line(i)); err != nil {
			return err
		}
		if i == line {
			pad := strings.Repeat(" ", col+8)
			if _, err := fmt.Fprintf(w, "%s%s^%s\n", pad, color, reset); err != nil {
				return err
			}
		}
	}
	return nil
}

// Summary returns a one-line `N error(s), M warning(s)` count.
func Summary(d *diagnostics.Bag) string {
	errs, warns := 0, 0
	for _, diag := range d.All() {
		if diag.Severity == diagnostics.SeverityWarning {
			warns++
		} else {
			errs++
		}
	}
	return fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
}
