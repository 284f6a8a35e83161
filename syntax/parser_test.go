package syntax

import (
	"testing"

	"github.com/lookbusy1344/mlang/diagnostics"
)

// TestParserStableUnderMissingTokens exercises the parser stability
// property: truncated or malformed input must still produce a
// complete tree (parsing never panics or loops) plus an UnexpectedToken
// diagnostic for each token match() had to fabricate.
func TestParserStableUnderMissingTokens(t *testing.T) {
	sources := []string{
		"function main(",
		"function main() {",
		"function main() { return",
		"if true",
		"var x: = 1;",
		"x = ",
		"class C { field:",
		"function f(a: int32, ) {}",
		"1 +",
		"",
	}
	for _, src := range sources {
		tree := ParseString("test.ml", src)
		if tree.Root == nil {
			t.Errorf("%q: expected non-nil root", src)
		}
		if tree.Root.EOF.Kind != EOFToken {
			t.Errorf("%q: expected CompilationUnit.EOF to be EOFToken, got %s", src, tree.Root.EOF.Kind)
		}
	}
}

func TestParserMatchFabricatesMissingToken(t *testing.T) {
	tree := ParseString("test.ml", "function main(")
	if tree.Diags.Len() == 0 {
		t.Fatal("expected at least one diagnostic for truncated input")
	}
	found := false
	for _, d := range tree.Diags.All() {
		if d.Kind == diagnostics.UnexpectedToken {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected an UnexpectedToken diagnostic, got %v", tree.Diags.All())
	}

	if len(tree.Root.Members) != 1 {
		t.Fatalf("expected one member, got %d", len(tree.Root.Members))
	}
	fn, ok := tree.Root.Members[0].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", tree.Root.Members[0])
	}
	if !fn.Body.CloseBrace.IsMissing {
		t.Errorf("expected a fabricated missing close brace, got %#v", fn.Body.CloseBrace)
	}
	if fn.Body.CloseBrace.Span().Length != 0 {
		t.Errorf("expected fabricated token to be zero-length, got %d", fn.Body.CloseBrace.Span().Length)
	}
}

func TestParserWellFormedProgram(t *testing.T) {
	src := `function add(a: int32, b: int32): int32 {
		return a + b;
	}

	class Point {
		x: int32;
		y: int32;
	}

	var total: int32 = add(1, 2);
	`
	tree := ParseString("test.ml", src)
	if tree.Diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", tree.Diags.All())
	}
	if len(tree.Root.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(tree.Root.Members))
	}
	if _, ok := tree.Root.Members[0].(*FunctionDeclaration); !ok {
		t.Errorf("expected member 0 to be a FunctionDeclaration, got %T", tree.Root.Members[0])
	}
	if _, ok := tree.Root.Members[1].(*ClassDeclaration); !ok {
		t.Errorf("expected member 1 to be a ClassDeclaration, got %T", tree.Root.Members[1])
	}
	if _, ok := tree.Root.Members[2].(*GlobalStatement); !ok {
		t.Errorf("expected member 2 to be a GlobalStatement, got %T", tree.Root.Members[2])
	}
}
