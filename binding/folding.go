package binding

import (
	"fmt"

	"github.com/lookbusy1344/mlang/syntax"
)

// Constant folding: unary/binary/conversion expressions whose operands
// are all constant fold to a BoundConstant during binding. Folding never
// crosses statement boundaries and never propagates through named variables beyond the one
// already-folded BoundConstant a VariableSymbol carries.
//
// Numeric overflow is implementation-defined: folding always computes in
// a wide representation (int64/uint64/float64) and narrows at the end via
// adjustType, silently truncating on overflow with no diagnostic.

func toInt64Value(v any) int64 {
	switch x := v.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return int64(x)
	case float64:
		return int64(x)
	case syntax.Char:
		return int64(x)
	default:
		return 0
	}
}

func toUint64Value(v any) uint64 {
	switch x := v.(type) {
	case int8:
		return uint64(x)
	case int16:
		return uint64(x)
	case int32:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case float32:
		return uint64(x)
	case float64:
		return uint64(x)
	case syntax.Char:
		return uint64(x)
	default:
		return 0
	}
}

func toFloat64Value(v any) float64 {
	switch x := v.(type) {
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case syntax.Char:
		return float64(x)
	default:
		return 0
	}
}

// adjustType narrows/widens value into the Go representation declared for
// t: a plain Go numeric conversion per target type, silently truncating
// when the value doesn't fit.
func adjustType(value any, t *TypeSymbol) any {
	switch t {
	case TypeInt8:
		return int8(toInt64Value(value))
	case TypeInt16:
		return int16(toInt64Value(value))
	case TypeInt32:
		return int32(toInt64Value(value))
	case TypeInt64:
		return toInt64Value(value)
	case TypeUInt8:
		return uint8(toUint64Value(value))
	case TypeUInt16:
		return uint16(toUint64Value(value))
	case TypeUInt32:
		return uint32(toUint64Value(value))
	case TypeUInt64:
		return toUint64Value(value)
	case TypeFloat32:
		return float32(toFloat64Value(value))
	case TypeFloat64, TypeFloat128:
		return toFloat64Value(value)
	case TypeBool:
		if b, ok := value.(bool); ok {
			return b
		}
		return false
	case TypeChar:
		if r, ok := value.(syntax.Char); ok {
			return r
		}
		return syntax.Char(toInt64Value(value))
	case TypeString:
		if s, ok := value.(string); ok {
			return s
		}
		return value
	default:
		return value
	}
}

// FoldUnary computes the constant result of applying op to a constant
// operand, or nil if the operand wasn't constant.
func FoldUnary(op BoundUnaryOperator, operand BoundExpression) *BoundConstant {
	c := operand.Constant()
	if c == nil {
		return nil
	}
	switch op.Kind {
	case UnaryIdentity:
		return &BoundConstant{Value: c.Value}
	case UnaryNegation:
		if op.ResultType.IsFloat {
			return &BoundConstant{Value: adjustType(-toFloat64Value(c.Value), op.ResultType)}
		}
		return &BoundConstant{Value: adjustType(-toInt64Value(c.Value), op.ResultType)}
	case UnaryLogicalNegation:
		b, _ := c.Value.(bool)
		return &BoundConstant{Value: !b}
	case UnaryBitwiseComplement:
		return &BoundConstant{Value: adjustType(^toInt64Value(c.Value), op.ResultType)}
	}
	return nil
}

// FoldBinary computes the constant result of applying op to two constant
// operands, or nil if either operand wasn't constant.
func FoldBinary(op BoundBinaryOperator, left, right BoundExpression) *BoundConstant {
	lc, rc := left.Constant(), right.Constant()
	if lc == nil || rc == nil {
		return nil
	}
	opType := left.Type()

	switch op.Kind {
	case BinaryAddition:
		if opType == TypeString {
			ls, _ := lc.Value.(string)
			rs, _ := rc.Value.(string)
			return &BoundConstant{Value: ls + rs}
		}
		return foldNumericArith(op.ResultType, lc.Value, rc.Value, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b })
	case BinarySubtraction:
		return foldNumericArith(op.ResultType, lc.Value, rc.Value, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b })
	case BinaryMultiplication:
		return foldNumericArith(op.ResultType, lc.Value, rc.Value, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b })
	case BinaryDivision:
		if rc.IsZero() {
			return nil // caller reports DivideByZero and suppresses the node entirely
		}
		return foldNumericArith(op.ResultType, lc.Value, rc.Value, func(a, b float64) float64 { return a / b }, func(a, b int64) int64 { return a / b })
	case BinaryModulo:
		if rc.IsZero() {
			return nil
		}
		if op.ResultType.IsFloat {
			lf, rf := toFloat64Value(lc.Value), toFloat64Value(rc.Value)
			return &BoundConstant{Value: adjustType(float64(int64(lf)%int64(rf)), op.ResultType)}
		}
		return &BoundConstant{Value: adjustType(toInt64Value(lc.Value)%toInt64Value(rc.Value), op.ResultType)}
	case BinaryBitwiseAnd:
		if opType == TypeBool {
			lb, _ := lc.Value.(bool)
			rb, _ := rc.Value.(bool)
			return &BoundConstant{Value: lb && rb}
		}
		return &BoundConstant{Value: adjustType(toInt64Value(lc.Value)&toInt64Value(rc.Value), op.ResultType)}
	case BinaryBitwiseOr:
		if opType == TypeBool {
			lb, _ := lc.Value.(bool)
			rb, _ := rc.Value.(bool)
			return &BoundConstant{Value: lb || rb}
		}
		return &BoundConstant{Value: adjustType(toInt64Value(lc.Value)|toInt64Value(rc.Value), op.ResultType)}
	case BinaryBitwiseXor:
		if opType == TypeBool {
			lb, _ := lc.Value.(bool)
			rb, _ := rc.Value.(bool)
			return &BoundConstant{Value: lb != rb}
		}
		return &BoundConstant{Value: adjustType(toInt64Value(lc.Value)^toInt64Value(rc.Value), op.ResultType)}
	case BinaryLogicalAnd:
		lb, _ := lc.Value.(bool)
		rb, _ := rc.Value.(bool)
		return &BoundConstant{Value: lb && rb}
	case BinaryLogicalOr:
		lb, _ := lc.Value.(bool)
		rb, _ := rc.Value.(bool)
		return &BoundConstant{Value: lb || rb}
	case BinaryEquals:
		return &BoundConstant{Value: foldEquals(opType, lc.Value, rc.Value)}
	case BinaryNotEquals:
		return &BoundConstant{Value: !foldEquals(opType, lc.Value, rc.Value)}
	case BinaryLess:
		return &BoundConstant{Value: foldCompare(opType, lc.Value, rc.Value) < 0}
	case BinaryLessOrEquals:
		return &BoundConstant{Value: foldCompare(opType, lc.Value, rc.Value) <= 0}
	case BinaryGreater:
		return &BoundConstant{Value: foldCompare(opType, lc.Value, rc.Value) > 0}
	case BinaryGreaterOrEquals:
		return &BoundConstant{Value: foldCompare(opType, lc.Value, rc.Value) >= 0}
	}
	return nil
}

func foldNumericArith(resultType *TypeSymbol, l, r any, floatOp func(a, b float64) float64, intOp func(a, b int64) int64) *BoundConstant {
	if resultType.IsFloat {
		return &BoundConstant{Value: adjustType(floatOp(toFloat64Value(l), toFloat64Value(r)), resultType)}
	}
	return &BoundConstant{Value: adjustType(intOp(toInt64Value(l), toInt64Value(r)), resultType)}
}

func foldEquals(opType *TypeSymbol, l, r any) bool {
	switch opType {
	case TypeString:
		ls, _ := l.(string)
		rs, _ := r.(string)
		return ls == rs
	case TypeBool:
		lb, _ := l.(bool)
		rb, _ := r.(bool)
		return lb == rb
	case TypeChar:
		return toInt64Value(l) == toInt64Value(r)
	default:
		if opType.IsFloat {
			return toFloat64Value(l) == toFloat64Value(r)
		}
		return toInt64Value(l) == toInt64Value(r)
	}
}

func foldCompare(opType *TypeSymbol, l, r any) int {
	var lf, rf float64
	if opType.IsFloat {
		lf, rf = toFloat64Value(l), toFloat64Value(r)
	} else {
		lf, rf = float64(toInt64Value(l)), float64(toInt64Value(r))
	}
	switch {
	case lf < rf:
		return -1
	case lf > rf:
		return 1
	default:
		return 0
	}
}

// FoldConversion computes the constant result of converting a constant
// expression to toType, or nil if the expression wasn't constant.
func FoldConversion(toType *TypeSymbol, expr BoundExpression) *BoundConstant {
	c := expr.Constant()
	if c == nil {
		return nil
	}
	if toType == TypeString {
		if s, ok := c.Value.(string); ok {
			return &BoundConstant{Value: s}
		}
		return &BoundConstant{Value: formatConstant(c.Value)}
	}
	if toType == TypeObject {
		return &BoundConstant{Value: c.Value}
	}
	return &BoundConstant{Value: adjustType(c.Value, toType)}
}

func formatConstant(v any) string {
	if r, ok := v.(syntax.Char); ok {
		return string(rune(r))
	}
	return fmt.Sprint(v)
}
