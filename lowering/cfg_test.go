package lowering

import (
	"testing"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

func boolLit(v bool) *binding.BoundLiteralExpression {
	return &binding.BoundLiteralExpression{ValueType: binding.TypeBool, Value: v}
}

// fakeLocation builds a distinct, comparable source.Location for tests that
// need to assert a diagnostic is anchored at one specific site rather than
// the zero Location.
func fakeLocation(filename string, start, length int) source.Location {
	text := source.New(filename, "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")
	return source.NewLocation(text, source.NewSpan(start, length))
}

// TestAllPathsReturnIfElseBothReturn is the case the old last-block
// heuristic got backwards: `if (c) { return 1 } else { return 2 }` lowers
// to a trailing label block nothing can reach, and AllPathsReturn must
// still report true.
func TestAllPathsReturnIfElseBothReturn(t *testing.T) {
	v := &binding.VariableSymbol{Name: "c", Type: binding.TypeBool, Kind: binding.ParameterVariable}
	fn := &binding.FunctionSymbol{Name: "f", ReturnType: binding.TypeInt32, Parameters: []*binding.VariableSymbol{v}}
	program := &binding.BoundProgram{Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{
		fn: {Statements: []binding.BoundStatement{
			&binding.BoundIfStatement{
				Condition: &binding.BoundVariableExpression{Variable: v},
				Then:      &binding.BoundReturnStatement{Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeInt32, Value: int32(1)}},
				Else:      &binding.BoundReturnStatement{Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeInt32, Value: int32(2)}},
			},
		}},
	}}

	lowered := Lower(program)
	if !AllPathsReturn(lowered.Functions[fn]) {
		t.Fatal("expected AllPathsReturn to be true when every branch returns")
	}
}

// TestAllPathsReturnFallThroughIsFalse confirms a function with a path
// that can fall off the end without returning is correctly rejected.
func TestAllPathsReturnFallThroughIsFalse(t *testing.T) {
	v := &binding.VariableSymbol{Name: "c", Type: binding.TypeBool, Kind: binding.ParameterVariable}
	fn := &binding.FunctionSymbol{Name: "f", ReturnType: binding.TypeInt32, Parameters: []*binding.VariableSymbol{v}}
	program := &binding.BoundProgram{Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{
		fn: {Statements: []binding.BoundStatement{
			&binding.BoundIfStatement{
				Condition: &binding.BoundVariableExpression{Variable: v},
				Then:      &binding.BoundReturnStatement{Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeInt32, Value: int32(1)}},
			},
		}},
	}}

	lowered := Lower(program)
	if AllPathsReturn(lowered.Functions[fn]) {
		t.Fatal("expected AllPathsReturn to be false when the then-less branch falls through")
	}
}

// TestCheckUnreachableConstantFalseCondition: `if false { A } else { B }`
// must report UnreachableCode
// anchored at A's location, the then-branch the binder wraps in a
// sequence point.
func TestCheckUnreachableConstantFalseCondition(t *testing.T) {
	thenLoc := fakeLocation("a.ml", 10, 1)
	thenStmt := &binding.BoundSequencePointStatement{
		Statement: &binding.BoundExpressionStatement{Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeString, Value: "A"}},
		Location:  thenLoc,
	}
	elseStmt := &binding.BoundSequencePointStatement{
		Statement: &binding.BoundExpressionStatement{Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeString, Value: "B"}},
		Location:  fakeLocation("a.ml", 20, 1),
	}

	body := &binding.BoundBlockStatement{Statements: []binding.BoundStatement{
		&binding.BoundIfStatement{Condition: boolLit(false), Then: thenStmt, Else: elseStmt},
	}}

	fn := &binding.FunctionSymbol{Name: "f", ReturnType: binding.TypeVoid}
	lowered := Lower(&binding.BoundProgram{Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{fn: body}})

	diags := &diagnostics.Bag{}
	CheckUnreachable(diags, lowered.Functions[fn])

	var found *diagnostics.Diagnostic
	for i, d := range diags.All() {
		if d.Kind == diagnostics.UnreachableCode {
			found = &diags.All()[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an UnreachableCode diagnostic, got %v", diags.All())
	}
	if found.Location != thenLoc {
		t.Errorf("expected the diagnostic anchored at the then-branch's location %v, got %v", thenLoc, found.Location)
	}
}

// TestCheckUnreachableAfterReturn confirms dead code following an
// unconditional return is flagged too, not just constant-condition
// branches.
func TestCheckUnreachableAfterReturn(t *testing.T) {
	deadLoc := fakeLocation("a.ml", 5, 1)
	body := &binding.BoundBlockStatement{Statements: []binding.BoundStatement{
		&binding.BoundReturnStatement{},
		&binding.BoundSequencePointStatement{
			Statement: &binding.BoundExpressionStatement{Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeString, Value: "dead"}},
			Location:  deadLoc,
		},
	}}

	fn := &binding.FunctionSymbol{Name: "f", ReturnType: binding.TypeVoid}
	lowered := Lower(&binding.BoundProgram{Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{fn: body}})

	diags := &diagnostics.Bag{}
	CheckUnreachable(diags, lowered.Functions[fn])
	if diags.Len() != 1 || diags.All()[0].Kind != diagnostics.UnreachableCode {
		t.Fatalf("expected exactly one UnreachableCode diagnostic, got %v", diags.All())
	}
}
