package compilation

import (
	"testing"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

func compileOne(src string) (*binding.BoundProgram, *diagnostics.Bag) {
	_, program, diags := CompileSources(nil, source.New("test.ml", src))
	return program, diags
}

// TestIntegerWideningScenario: a widening
// initializer folds to a typed constant with zero diagnostics.
func TestIntegerWideningScenario(t *testing.T) {
	_, diags := compileOne(`var x: int64 = 1 + 2;`)
	if diags.Len() != 0 {
		t.Fatalf("expected zero diagnostics, got %v", diags.All())
	}
}

// TestReadOnlyAssignmentScenario: assigning to a
// const yields one CannotAssign diagnostic at the `=` token.
func TestReadOnlyAssignmentScenario(t *testing.T) {
	_, diags := compileOne(`const k = 1; k = 2;`)
	all := diags.All()
	if len(all) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", all)
	}
	if all[0].Kind != diagnostics.CannotAssign {
		t.Fatalf("expected CannotAssign, got %s", all[0].Kind)
	}
}

// TestDivideByZeroScenario: dividing by a
// constant zero is reported and does not fold.
func TestDivideByZeroScenario(t *testing.T) {
	_, diags := compileOne(`var x = 10 / 0;`)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diagnostics.DivideByZero {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DivideByZero, got %v", diags.All())
	}
}

// TestUnreachableBranchScenario: a statically
// false condition makes its then-branch unreachable.
func TestUnreachableBranchScenario(t *testing.T) {
	_, diags := compileOne(`if false { writeLine("a"); } else { writeLine("b"); }`)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diagnostics.UnreachableCode {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnreachableCode, got %v", diags.All())
	}
}

// TestClassConstructorSynthesisScenario: a class
// with one non-const field and one const field gets a zero-arg and a
// one-arg constructor, and the const field isn't a constructor parameter.
func TestClassConstructorSynthesisScenario(t *testing.T) {
	src := `class P { x: int32; const tag: string = "p"; }
	function main() { var p = P(7); }`
	program, diags := compileOne(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.All())
	}
	if len(program.Functions) == 0 {
		t.Fatal("expected at least one bound function")
	}
	var class *binding.ClassSymbol
	for c := range program.Classes {
		if c.Name == "P" {
			class = c
		}
	}
	if class == nil {
		t.Fatal("expected class P to be bound")
	}
	if class.ZeroCtor == nil || class.ParamCtor == nil {
		t.Fatal("expected both a zero-arg and a parameterized constructor")
	}
	if len(class.ParamCtor.Parameters) != 1 {
		t.Fatalf("expected one constructor parameter (x only), got %d", len(class.ParamCtor.Parameters))
	}
	if class.ParamCtor.Parameters[0].Type != binding.TypeInt32 {
		t.Fatalf("expected the sole ctor parameter to be int32, got %v", class.ParamCtor.Parameters[0].Type)
	}
}

// TestMissingReturnScenario: a function whose
// only return is inside an `if true` with no else still must report
// AllPathsMustReturn, since the binder cannot assume the then-branch
// always executes ahead of lowering/CFG analysis.
func TestMissingReturnScenario(t *testing.T) {
	src := `function f(): int32 { if true { return 1; } }`
	_, diags := compileOne(src)
	found := false
	for _, d := range diags.All() {
		if d.Kind == diagnostics.AllPathsMustReturn {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected AllPathsMustReturn, got %v", diags.All())
	}
}

// TestAllPathsReturnBothBranches ensures an if/else that returns on every
// branch is accepted (the case the old last-block heuristic got wrong: a
// dangling post-merge label block must not be mistaken for a fall-through
// path).
func TestAllPathsReturnBothBranches(t *testing.T) {
	src := `function f(c: bool): int32 { if c { return 1; } else { return 2; } }`
	_, diags := compileOne(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	for _, d := range diags.All() {
		if d.Kind == diagnostics.AllPathsMustReturn {
			t.Fatalf("did not expect AllPathsMustReturn, got %v", diags.All())
		}
	}
}
