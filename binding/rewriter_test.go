package binding

import "testing"

func TestBoundTreeRewriterIdentity(t *testing.T) {
	v := &VariableSymbol{Name: "x", Type: TypeInt32, Kind: LocalVariable}
	body := &BoundBlockStatement{
		Statements: []BoundStatement{
			&BoundVariableDeclaration{Variable: v, Initializer: &BoundLiteralExpression{ValueType: TypeInt32, Value: int32(1)}},
			&BoundReturnStatement{Expression: &BoundVariableExpression{Variable: v}},
		},
	}

	r := &BoundTreeRewriter{}
	out := r.RewriteBody(body)

	if len(out.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(out.Statements))
	}
	ret, ok := out.Statements[1].(*BoundReturnStatement)
	if !ok {
		t.Fatalf("expected return statement, got %T", out.Statements[1])
	}
	varExpr, ok := ret.Expression.(*BoundVariableExpression)
	if !ok || varExpr.Variable != v {
		t.Fatalf("expected variable expression referencing %v, got %#v", v, ret.Expression)
	}
}

func TestBoundTreeRewriterCollectsVariableReferences(t *testing.T) {
	v := &VariableSymbol{Name: "n", Type: TypeInt32, Kind: LocalVariable}
	body := &BoundBlockStatement{
		Statements: []BoundStatement{
			&BoundExpressionStatement{Expression: &BoundBinaryExpression{
				Left:  &BoundVariableExpression{Variable: v},
				Op:    BoundBinaryOperator{Kind: BinaryAddition, ResultType: TypeInt32},
				Right: &BoundLiteralExpression{ValueType: TypeInt32, Value: int32(1)},
			}},
		},
	}

	var seen []*VariableSymbol
	r := &BoundTreeRewriter{
		RewriteExpression: func(e BoundExpression) BoundExpression {
			if ve, ok := e.(*BoundVariableExpression); ok {
				seen = append(seen, ve.Variable)
			}
			return e
		},
	}
	r.RewriteBody(body)

	if len(seen) != 1 || seen[0] != v {
		t.Fatalf("expected one reference to %v, got %v", v, seen)
	}
}
