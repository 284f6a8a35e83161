package binding

import "testing"

func lit(t *TypeSymbol, v any) *BoundLiteralExpression {
	return &BoundLiteralExpression{ValueType: t, Value: v}
}

func TestFoldBinaryArithmetic(t *testing.T) {
	op := BoundBinaryOperator{Kind: BinaryAddition, ResultType: TypeInt32}
	c := FoldBinary(op, lit(TypeInt32, int32(2)), lit(TypeInt32, int32(3)))
	if c == nil || c.Value != int32(5) {
		t.Fatalf("want int32(5), got %#v", c)
	}
}

func TestFoldBinaryStringConcat(t *testing.T) {
	op := BoundBinaryOperator{Kind: BinaryAddition, ResultType: TypeString}
	left, right := lit(TypeString, "ab"), lit(TypeString, "cd")
	c := FoldBinary(op, left, right)
	if c == nil || c.Value != "abcd" {
		t.Fatalf("want \"abcd\", got %#v", c)
	}
}

func TestFoldBinaryDivideByZeroYieldsNil(t *testing.T) {
	op := BoundBinaryOperator{Kind: BinaryDivision, ResultType: TypeInt32}
	c := FoldBinary(op, lit(TypeInt32, int32(1)), lit(TypeInt32, int32(0)))
	if c != nil {
		t.Fatalf("want nil on divide by zero, got %#v", c)
	}
}

func TestFoldBinaryNonConstantYieldsNil(t *testing.T) {
	op := BoundBinaryOperator{Kind: BinaryAddition, ResultType: TypeInt32}
	v := &VariableSymbol{Name: "x", Type: TypeInt32, Kind: LocalVariable}
	c := FoldBinary(op, &BoundVariableExpression{Variable: v}, lit(TypeInt32, int32(1)))
	if c != nil {
		t.Fatalf("want nil for a non-constant operand, got %#v", c)
	}
}

func TestFoldBinaryComparisons(t *testing.T) {
	lessOp := BoundBinaryOperator{Kind: BinaryLess, ResultType: TypeBool}
	c := FoldBinary(lessOp, lit(TypeInt32, int32(1)), lit(TypeInt32, int32(2)))
	if c == nil || c.Value != true {
		t.Fatalf("want true, got %#v", c)
	}

	eqOp := BoundBinaryOperator{Kind: BinaryEquals, ResultType: TypeBool}
	c = FoldBinary(eqOp, lit(TypeString, "a"), lit(TypeString, "a"))
	if c == nil || c.Value != true {
		t.Fatalf("want true, got %#v", c)
	}
}

func TestFoldUnary(t *testing.T) {
	op := BoundUnaryOperator{Kind: UnaryNegation, ResultType: TypeInt32}
	c := FoldUnary(op, lit(TypeInt32, int32(5)))
	if c == nil || c.Value != int32(-5) {
		t.Fatalf("want int32(-5), got %#v", c)
	}

	notOp := BoundUnaryOperator{Kind: UnaryLogicalNegation, ResultType: TypeBool}
	c = FoldUnary(notOp, lit(TypeBool, true))
	if c == nil || c.Value != false {
		t.Fatalf("want false, got %#v", c)
	}
}

func TestFoldConversionIdempotent(t *testing.T) {
	c1 := FoldConversion(TypeInt64, lit(TypeInt32, int32(7)))
	if c1 == nil || c1.Value != int64(7) {
		t.Fatalf("want int64(7), got %#v", c1)
	}
	// Folding an already-folded constant again must reproduce the same
	// value.
	c2 := FoldConversion(TypeInt64, lit(TypeInt64, c1.Value))
	if c2 == nil || c2.Value != c1.Value {
		t.Fatalf("refolding should be stable: got %#v then %#v", c1, c2)
	}
}

func TestFoldConversionNarrowingTruncates(t *testing.T) {
	c := FoldConversion(TypeInt8, lit(TypeInt32, int32(300)))
	if c == nil {
		t.Fatal("expected a folded constant")
	}
	n := int32(300)
	if c.Value != int8(n) {
		t.Fatalf("want int8(300) truncated, got %#v", c.Value)
	}
}

func TestFoldConversionToString(t *testing.T) {
	c := FoldConversion(TypeString, lit(TypeInt32, int32(42)))
	if c == nil || c.Value != "42" {
		t.Fatalf("want \"42\", got %#v", c)
	}
}
