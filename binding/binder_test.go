package binding

import "testing"

// TestResolveOverloadFirstMatchWins exercises the overload rule: walk
// the OverloadFor chain and return the first candidate whose arity and
// parameter types accept the call, with no ranking between multiple
// matches.
func TestResolveOverloadFirstMatchWins(t *testing.T) {
	takesInt32 := &FunctionSymbol{Name: "f", Parameters: []*VariableSymbol{
		{Name: "a", Type: TypeInt32, Kind: ParameterVariable},
	}, ReturnType: TypeVoid}
	takesString := &FunctionSymbol{Name: "f", Parameters: []*VariableSymbol{
		{Name: "a", Type: TypeString, Kind: ParameterVariable},
	}, ReturnType: TypeVoid, OverloadFor: takesInt32}

	got := resolveOverload(takesString, []BoundExpression{lit(TypeString, "hi")})
	if got != takesString {
		t.Fatalf("expected the string overload to match first, got %v", got)
	}

	// int32 converts implicitly to string, so the string overload at the
	// head of the chain wins even though the int32 one is an exact match.
	got = resolveOverload(takesString, []BoundExpression{lit(TypeInt32, int32(1))})
	if got != takesString {
		t.Fatalf("expected the first accepting overload (string) to win without ranking, got %v", got)
	}
}

func TestResolveOverloadArityMismatchSkipped(t *testing.T) {
	noArgs := &FunctionSymbol{Name: "f", ReturnType: TypeVoid}
	oneArg := &FunctionSymbol{Name: "f", Parameters: []*VariableSymbol{
		{Name: "a", Type: TypeInt32, Kind: ParameterVariable},
	}, ReturnType: TypeVoid, OverloadFor: noArgs}

	got := resolveOverload(oneArg, nil)
	if got != noArgs {
		t.Fatalf("expected the zero-arg overload, got %v", got)
	}
}

func TestResolveOverloadNoMatchReturnsNil(t *testing.T) {
	fn := &FunctionSymbol{Name: "f", Parameters: []*VariableSymbol{
		{Name: "a", Type: TypeBool, Kind: ParameterVariable},
	}, ReturnType: TypeVoid}

	got := resolveOverload(fn, []BoundExpression{lit(TypeString, "nope")})
	if got != nil {
		t.Fatalf("expected no match, got %v", got)
	}
}

// TestResolveOverloadErrorArgumentAlwaysAccepted confirms a TypeError
// argument (already diagnosed elsewhere) never itself blocks overload
// resolution, avoiding cascading diagnostics.
func TestResolveOverloadErrorArgumentAlwaysAccepted(t *testing.T) {
	fn := &FunctionSymbol{Name: "f", Parameters: []*VariableSymbol{
		{Name: "a", Type: TypeInt32, Kind: ParameterVariable},
	}, ReturnType: TypeVoid}

	got := resolveOverload(fn, []BoundExpression{lit(TypeError, nil)})
	if got != fn {
		t.Fatalf("expected an error-typed argument to still match, got %v", got)
	}
}

// TestBoundTypeSoundness spot-checks that every bound expression's Type()
// matches what the binder derived the operator/variable/field to produce,
// the bound-type-soundness property.
func TestBoundTypeSoundness(t *testing.T) {
	v := &VariableSymbol{Name: "x", Type: TypeInt32, Kind: LocalVariable}
	varExpr := &BoundVariableExpression{Variable: v}
	if varExpr.Type() != TypeInt32 {
		t.Errorf("variable expression type should follow its symbol, got %v", varExpr.Type())
	}

	bin := &BoundBinaryExpression{
		Left:  lit(TypeInt32, int32(1)),
		Op:    BoundBinaryOperator{Kind: BinaryLess, ResultType: TypeBool},
		Right: lit(TypeInt32, int32(2)),
	}
	if bin.Type() != TypeBool {
		t.Errorf("comparison result type should be bool, got %v", bin.Type())
	}

	un := &BoundUnaryExpression{Op: BoundUnaryOperator{Kind: UnaryNegation, ResultType: TypeInt32}, Operand: lit(TypeInt32, int32(1))}
	if un.Type() != TypeInt32 {
		t.Errorf("negation result type should follow the operator, got %v", un.Type())
	}
}
