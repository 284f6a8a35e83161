// Package tui is an interactive source/diagnostics/symbol-table explorer
// for a compiled program: a tview widget layout with key bindings over a
// single completed compile. Nothing watches for changes; Ctrl-L re-renders
// every panel from that same compile.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/compilation"
	"github.com/lookbusy1344/mlang/config"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/tools"
)

// TUI is the text user interface over one compiled program.
type TUI struct {
	Compilation *compilation.Compilation
	Program     *binding.BoundProgram
	Diags       *diagnostics.Bag
	Config      *config.Config

	App   *tview.Application
	Pages *tview.Pages

	MainLayout *tview.Flex

	SourceView      *tview.TextView
	DiagnosticsView *tview.TextView
	SymbolsView     *tview.TextView
	XRefView        *tview.TextView
	StatusBar       *tview.TextView

	fileList   *tview.List
	activeFile int
}

// New builds a TUI over a completed compile.
func New(comp *compilation.Compilation, program *binding.BoundProgram, diags *diagnostics.Bag, cfg *config.Config) *TUI {
	t := &TUI{
		Compilation: comp,
		Program:     program,
		Diags:       diags,
		Config:      cfg,
		App:         tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.RefreshAll()

	return t
}

// Run builds and drives a TUI to completion; it blocks until the user
// quits (q or Ctrl-C).
func Run(comp *compilation.Compilation, program *binding.BoundProgram, diags *diagnostics.Bag, cfg *config.Config) error {
	return New(comp, program, diags, cfg).App.Run()
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.DiagnosticsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.DiagnosticsView.SetBorder(true).SetTitle(" Diagnostics ")

	t.SymbolsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.SymbolsView.SetBorder(true).SetTitle(" Symbols ")

	t.XRefView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.XRefView.SetBorder(true).SetTitle(" Cross-reference ")

	t.StatusBar = tview.NewTextView().
		SetDynamicColors(true)

	t.fileList = tview.NewList().ShowSecondaryText(false)
	t.fileList.SetBorder(true).SetTitle(" Files ")
	for _, tree := range t.Compilation.Trees {
		name := tree.Text.Filename
		t.fileList.AddItem(name, "", 0, nil)
	}
	t.fileList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		t.activeFile = index
		t.UpdateSourceView()
		t.App.Draw()
	})
}

func (t *TUI) buildLayout() {
	leftPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.fileList, 0, 1, true).
		AddItem(t.SourceView, 0, 3, false)

	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.SymbolsView, 0, 1, false).
		AddItem(t.XRefView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftPanel, 0, 2, true).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, true).
		AddItem(t.DiagnosticsView, 10, 0, false).
		AddItem(t.StatusBar, 1, 0, false)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
	t.App.SetRoot(t.Pages, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case event.Key() == tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		case event.Rune() == 'q':
			t.App.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			t.cycleFocus()
			return nil
		}
		return event
	})
}

func (t *TUI) cycleFocus() {
	order := []tview.Primitive{t.fileList, t.SourceView, t.SymbolsView, t.XRefView}
	current := t.App.GetFocus()
	for i, p := range order {
		if p == current {
			t.App.SetFocus(order[(i+1)%len(order)])
			return
		}
	}
	t.App.SetFocus(order[0])
}

// RefreshAll re-renders every panel from the current compile result.
func (t *TUI) RefreshAll() {
	t.UpdateSourceView()
	t.UpdateDiagnosticsView()
	t.UpdateSymbolsView()
	t.UpdateXRefView()
	t.UpdateStatusBar()
}

func (t *TUI) UpdateSourceView() {
	t.SourceView.Clear()
	if t.activeFile >= len(t.Compilation.Trees) {
		return
	}
	text := t.Compilation.Trees[t.activeFile].Text
	var b strings.Builder
	for i := 0; i < text.LineCount(); i++ {
		fmt.Fprintf(&b, "%4d | %s\n", i+1, text.Line(i))
	}
	t.SourceView.SetText(b.String())
}

func (t *TUI) UpdateDiagnosticsView() {
	t.DiagnosticsView.Clear()
	printer := tools.NewPrinter(&tools.PrinterOptions{Color: false, ContextLines: 0})
	var b strings.Builder
	_ = printer.Print(&lineWriter{&b}, t.Diags)
	if b.Len() == 0 {
		t.DiagnosticsView.SetText("[green]No diagnostics[white]")
		return
	}
	t.DiagnosticsView.SetText(b.String())
}

func (t *TUI) UpdateSymbolsView() {
	t.SymbolsView.Clear()
	scope := t.Compilation.GlobalScope
	if scope == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintln(&b, "[yellow]Classes[white]")
	for _, c := range scope.Classes {
		fmt.Fprintf(&b, "  %s (%d ctor params)\n", c.Name, len(c.CtorParameters()))
	}
	fmt.Fprintln(&b, "[yellow]Functions[white]")
	for _, fn := range scope.Functions {
		fmt.Fprintf(&b, "  %s(%d): %s\n", fn.Name, len(fn.Parameters), fn.ReturnType)
	}
	fmt.Fprintln(&b, "[yellow]Globals[white]")
	for _, v := range scope.Variables {
		fmt.Fprintf(&b, "  %s: %s\n", v.Name, v.Type)
	}
	t.SymbolsView.SetText(b.String())
}

func (t *TUI) UpdateXRefView() {
	t.XRefView.Clear()
	if t.Compilation.GlobalScope == nil || t.Program == nil {
		return
	}
	var b strings.Builder
	for _, entry := range tools.XRef(t.Compilation.GlobalScope, t.Program) {
		fmt.Fprintf(&b, "%s (%s): %v\n", entry.Name, entry.Kind, entry.References)
	}
	t.XRefView.SetText(b.String())
}

func (t *TUI) UpdateStatusBar() {
	status := "ready"
	if t.Diags.HasErrors() {
		status = "[red]errors present[white]"
	}
	t.StatusBar.SetText(fmt.Sprintf(" %s  |  tab: cycle focus  q: quit  ctrl-l: refresh", status))
}

// lineWriter adapts a strings.Builder to io.Writer for tools.Printer.
type lineWriter struct{ b *strings.Builder }

func (w *lineWriter) Write(p []byte) (int, error) { return w.b.Write(p) }
