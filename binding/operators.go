package binding

import "github.com/lookbusy1344/mlang/syntax"

// unaryOperatorKindForToken maps a prefix operator token to the operator
// family the binder understands, independent of the underlying type.
func unaryOperatorKindForToken(kind syntax.Kind) (UnaryOperatorKind, bool) {
	switch kind {
	case syntax.PlusToken:
		return UnaryIdentity, true
	case syntax.MinusToken:
		return UnaryNegation, true
	case syntax.BangToken:
		return UnaryLogicalNegation, true
	case syntax.TildeToken:
		return UnaryBitwiseComplement, true
	default:
		return 0, false
	}
}

// BindUnaryOperator resolves a prefix operator against its operand type,
// the bound-tree equivalent of the source's BoundUnaryOperator.Bind table.
// Returns ok=false when the operator and operand combination is undefined
// (the caller reports UndefinedUnaryOperator).
func BindUnaryOperator(tokenKind syntax.Kind, operandType *TypeSymbol) (BoundUnaryOperator, bool) {
	opKind, ok := unaryOperatorKindForToken(tokenKind)
	if !ok {
		return BoundUnaryOperator{}, false
	}
	if operandType == TypeError {
		return BoundUnaryOperator{Kind: opKind, ResultType: TypeError}, true
	}
	switch opKind {
	case UnaryIdentity, UnaryNegation:
		if operandType.IsNumeric {
			return BoundUnaryOperator{Kind: opKind, ResultType: operandType}, true
		}
	case UnaryLogicalNegation:
		if operandType == TypeBool {
			return BoundUnaryOperator{Kind: opKind, ResultType: TypeBool}, true
		}
	case UnaryBitwiseComplement:
		if operandType.IsNumeric && !operandType.IsFloat {
			return BoundUnaryOperator{Kind: opKind, ResultType: operandType}, true
		}
	}
	return BoundUnaryOperator{}, false
}

var binaryOperatorKindForToken = map[syntax.Kind]BinaryOperatorKind{
	syntax.PlusToken:                 BinaryAddition,
	syntax.MinusToken:                BinarySubtraction,
	syntax.StarToken:                 BinaryMultiplication,
	syntax.SlashToken:                BinaryDivision,
	syntax.PercentToken:              BinaryModulo,
	syntax.AmpersandToken:            BinaryBitwiseAnd,
	syntax.PipeToken:                 BinaryBitwiseOr,
	syntax.CaretToken:                BinaryBitwiseXor,
	syntax.AmpersandAmpersandToken:   BinaryLogicalAnd,
	syntax.PipePipeToken:             BinaryLogicalOr,
	syntax.EqualsEqualsToken:         BinaryEquals,
	syntax.BangEqualsToken:           BinaryNotEquals,
	syntax.LessToken:                 BinaryLess,
	syntax.LessOrEqualsToken:         BinaryLessOrEquals,
	syntax.GreaterToken:              BinaryGreater,
	syntax.GreaterOrEqualsToken:      BinaryGreaterOrEquals,
}

// BindBinaryOperator resolves an infix operator against its (already
// implicitly-widened, see binder.bindBinary) operand types. Both sides
// must already agree on type; BindBinaryOperator itself performs no
// widening. Returns ok=false when undefined, for UndefinedBinaryOperator.
func BindBinaryOperator(tokenKind syntax.Kind, left, right *TypeSymbol) (BoundBinaryOperator, bool) {
	opKind, ok := binaryOperatorKindForToken[tokenKind]
	if !ok {
		return BoundBinaryOperator{}, false
	}
	if left == TypeError || right == TypeError {
		return BoundBinaryOperator{Kind: opKind, ResultType: TypeError}, true
	}
	switch opKind {
	case BinaryAddition:
		if left == TypeString && right == TypeString {
			return BoundBinaryOperator{Kind: opKind, ResultType: TypeString}, true
		}
		if left == right && left.IsNumeric {
			return BoundBinaryOperator{Kind: opKind, ResultType: left}, true
		}
	case BinarySubtraction, BinaryMultiplication, BinaryDivision, BinaryModulo:
		if left == right && left.IsNumeric {
			return BoundBinaryOperator{Kind: opKind, ResultType: left}, true
		}
	case BinaryBitwiseAnd, BinaryBitwiseOr, BinaryBitwiseXor:
		if left == right && (left == TypeBool || (left.IsNumeric && !left.IsFloat)) {
			return BoundBinaryOperator{Kind: opKind, ResultType: left}, true
		}
	case BinaryLogicalAnd, BinaryLogicalOr:
		if left == TypeBool && right == TypeBool {
			return BoundBinaryOperator{Kind: opKind, ResultType: TypeBool}, true
		}
	case BinaryEquals, BinaryNotEquals:
		if left == right {
			return BoundBinaryOperator{Kind: opKind, ResultType: TypeBool}, true
		}
	case BinaryLess, BinaryLessOrEquals, BinaryGreater, BinaryGreaterOrEquals:
		if left == right && left.IsNumeric {
			return BoundBinaryOperator{Kind: opKind, ResultType: TypeBool}, true
		}
	}
	return BoundBinaryOperator{}, false
}
