package syntax

import (
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// Tree is the immutable result of parsing one source file: the
// CompilationUnit plus every diagnostic the lexer and parser produced
// along the way. Every node in Root belongs to exactly this tree.
type Tree struct {
	Text  *source.Text
	Root  *CompilationUnit
	Diags *diagnostics.Bag
}

// Parse lexes and parses text into a Tree. Parsing never fails outright:
// a malformed file still yields a best-effort tree plus diagnostics;
// nothing short-circuits on the first error.
func Parse(text *source.Text) *Tree {
	diags := &diagnostics.Bag{}
	p := newParser(text, diags)
	root := p.parseCompilationUnit()
	return &Tree{Text: text, Root: root, Diags: diags}
}

// ParseString is a convenience wrapper for tests and tooling that have raw
// source text rather than a pre-built source.Text.
func ParseString(filename, content string) *Tree {
	return Parse(source.New(filename, content))
}
