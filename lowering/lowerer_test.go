package lowering

import (
	"testing"

	"github.com/lookbusy1344/mlang/binding"
)

// walkLowered calls visit on every statement reachable from body, recursing
// into any nested block/if/etc it still finds (there should be none left
// for the structured kinds the invariant forbids).
func walkLowered(t *testing.T, stmts []binding.BoundStatement, visit func(binding.BoundStatement)) {
	t.Helper()
	for _, s := range stmts {
		visit(s)
		if b, ok := s.(*binding.BoundBlockStatement); ok {
			walkLowered(t, b.Statements, visit)
		}
	}
}

// TestLoweringInvariant checks the lowering invariant: after Lower, no
// If/While/DoWhile/For/Break/Continue/CompoundAssignment node survives.
func TestLoweringInvariant(t *testing.T) {
	breakLabel, continueLabel := &binding.BoundLabel{Name: "brk"}, &binding.BoundLabel{Name: "cont"}
	v := &binding.VariableSymbol{Name: "i", Type: binding.TypeInt32, Kind: binding.LocalVariable}

	body := &binding.BoundBlockStatement{
		Statements: []binding.BoundStatement{
			&binding.BoundIfStatement{
				Condition: &binding.BoundLiteralExpression{ValueType: binding.TypeBool, Value: true},
				Then: &binding.BoundExpressionStatement{Expression: &binding.BoundCompoundAssignmentExpression{
					Variable: v,
					Op:       binding.BoundBinaryOperator{Kind: binding.BinaryAddition, ResultType: binding.TypeInt32},
					Expression: &binding.BoundLiteralExpression{ValueType: binding.TypeInt32, Value: int32(1)},
				}},
				Else: &binding.BoundReturnStatement{},
			},
			&binding.BoundWhileStatement{
				Condition:     &binding.BoundLiteralExpression{ValueType: binding.TypeBool, Value: true},
				BreakLabel:    breakLabel,
				ContinueLabel: continueLabel,
				Body: &binding.BoundBlockStatement{Statements: []binding.BoundStatement{
					&binding.BoundBreakStatement{Label: breakLabel},
					&binding.BoundContinueStatement{Label: continueLabel},
				}},
			},
			&binding.BoundDoWhileStatement{
				Condition:     &binding.BoundLiteralExpression{ValueType: binding.TypeBool, Value: false},
				BreakLabel:    &binding.BoundLabel{Name: "dobrk"},
				ContinueLabel: &binding.BoundLabel{Name: "docont"},
				Body:          &binding.BoundBlockStatement{},
			},
			&binding.BoundForStatement{
				Variable:      v,
				LowerBound:    &binding.BoundLiteralExpression{ValueType: binding.TypeInt32, Value: int32(0)},
				UpperBound:    &binding.BoundLiteralExpression{ValueType: binding.TypeInt32, Value: int32(10)},
				BreakLabel:    &binding.BoundLabel{Name: "forbrk"},
				ContinueLabel: &binding.BoundLabel{Name: "forcont"},
				Body:          &binding.BoundBlockStatement{},
			},
			&binding.BoundReturnStatement{},
		},
	}

	fn := &binding.FunctionSymbol{Name: "f", ReturnType: binding.TypeVoid}
	program := &binding.BoundProgram{Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{fn: body}}

	lowered := Lower(program)
	out, ok := lowered.Functions[fn]
	if !ok {
		t.Fatal("expected the lowered program to still have f's body")
	}

	forbidden := func(s binding.BoundStatement) {
		switch s.(type) {
		case *binding.BoundIfStatement, *binding.BoundWhileStatement, *binding.BoundDoWhileStatement,
			*binding.BoundForStatement, *binding.BoundBreakStatement, *binding.BoundContinueStatement:
			t.Errorf("lowered tree still contains a structured control-flow node: %T", s)
		}
		if es, ok := s.(*binding.BoundExpressionStatement); ok {
			if _, ok := es.Expression.(*binding.BoundCompoundAssignmentExpression); ok {
				t.Errorf("lowered tree still contains a CompoundAssignment expression")
			}
		}
	}
	walkLowered(t, out.Statements, forbidden)
}

// TestLowerConditionShortCircuitsAnd confirms && lowers to nested jumps
// rather than an eagerly-evaluated BoundBinaryExpression: the right
// operand's code must only be reachable once the left operand's jump has
// already been emitted.
func TestLowerConditionShortCircuitsAnd(t *testing.T) {
	l := &lowerer{}
	left := &binding.BoundVariableExpression{Variable: &binding.VariableSymbol{Name: "a", Type: binding.TypeBool, Kind: binding.LocalVariable}}
	right := &binding.BoundVariableExpression{Variable: &binding.VariableSymbol{Name: "b", Type: binding.TypeBool, Kind: binding.LocalVariable}}
	cond := &binding.BoundBinaryExpression{Left: left, Op: binding.BoundBinaryOperator{Kind: binding.BinaryLogicalAnd, ResultType: binding.TypeBool}, Right: right}

	trueLabel, falseLabel := &binding.BoundLabel{Name: "t"}, &binding.BoundLabel{Name: "f"}
	stmts := l.lowerCondition(cond, trueLabel, falseLabel)

	var sawLabel bool
	for _, s := range stmts {
		if _, ok := s.(*binding.BoundLabelStatement); ok {
			sawLabel = true
		}
		if _, ok := s.(*binding.BoundBinaryExpression); ok {
			t.Fatalf("expected no eagerly-evaluated && expression, found one in %#v", stmts)
		}
	}
	if !sawLabel {
		t.Fatalf("expected an intermediate label between the two operands, got %#v", stmts)
	}

	gotos := 0
	for _, s := range stmts {
		switch s.(type) {
		case *binding.BoundConditionalGotoStatement, *binding.BoundGotoStatement:
			gotos++
		}
	}
	if gotos < 3 {
		t.Errorf("expected at least 3 jumps (left test, left-false jump, right test), got %d in %#v", gotos, stmts)
	}
}

// TestLowerConcatFlattensNestedTree: (a + b) + c
// with b, c constant folds to the equivalent of [a, "bc"], not just
// adjacent-pair folding that a non-constant `a` would otherwise block.
func TestLowerConcatFlattensNestedTree(t *testing.T) {
	l := &lowerer{}
	a := &binding.BoundVariableExpression{Variable: &binding.VariableSymbol{Name: "a", Type: binding.TypeString, Kind: binding.LocalVariable}}
	b := &binding.BoundLiteralExpression{ValueType: binding.TypeString, Value: "b"}
	c := &binding.BoundLiteralExpression{ValueType: binding.TypeString, Value: "c"}

	inner := &binding.BoundBinaryExpression{Left: a, Op: binding.BoundBinaryOperator{Kind: binding.BinaryAddition, ResultType: binding.TypeString}, Right: b}
	outer := &binding.BoundBinaryExpression{Left: inner, Op: binding.BoundBinaryOperator{Kind: binding.BinaryAddition, ResultType: binding.TypeString}, Right: c}

	got := l.lowerConcat(outer)

	top, ok := got.(*binding.BoundBinaryExpression)
	if !ok {
		t.Fatalf("expected a binary expression, got %T", got)
	}
	if top.Left != a {
		t.Errorf("expected the left operand to be the untouched variable reference, got %#v", top.Left)
	}
	lit, ok := top.Right.(*binding.BoundLiteralExpression)
	if !ok || lit.Value != "bc" {
		t.Fatalf(`expected the right operand to be folded "bc", got %#v`, top.Right)
	}
}
