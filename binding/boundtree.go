package binding

import "github.com/lookbusy1344/mlang/source"

// BoundKind tags every bound expression and statement, the same
// tagged-union style the syntax tree uses for its own Kind field, carried
// through to the typed tree instead of a class hierarchy per node kind.
type BoundKind int

const (
	BoundErrorExpr BoundKind = iota
	BoundLiteralExpr
	BoundVariableExpr
	BoundThisExpr
	BoundAssignmentExpr
	BoundUnaryExpr
	BoundBinaryExpr
	BoundCallExpr
	BoundConversionExpr
	BoundFieldAccessExpr
	BoundFieldAssignmentExpr
	BoundCompoundAssignmentExpr
	BoundCompoundFieldAssignmentExpr

	BoundBlockStmt
	BoundVariableDeclarationStmt
	BoundIfStmt
	BoundWhileStmt
	BoundDoWhileStmt
	BoundForStmt
	BoundLabelStmt
	BoundGotoStmt
	BoundConditionalGotoStmt
	BoundReturnStmt
	BoundExpressionStmt
	BoundNopStmt
	BoundSequencePointStmt
	BoundBreakStmt
	BoundContinueStmt
)

var boundKindNames = map[BoundKind]string{
	BoundErrorExpr:                    "ErrorExpr",
	BoundLiteralExpr:                  "LiteralExpr",
	BoundVariableExpr:                 "VariableExpr",
	BoundThisExpr:                     "ThisExpr",
	BoundAssignmentExpr:               "AssignmentExpr",
	BoundUnaryExpr:                    "UnaryExpr",
	BoundBinaryExpr:                   "BinaryExpr",
	BoundCallExpr:                     "CallExpr",
	BoundConversionExpr:               "ConversionExpr",
	BoundFieldAccessExpr:              "FieldAccessExpr",
	BoundFieldAssignmentExpr:          "FieldAssignmentExpr",
	BoundCompoundAssignmentExpr:       "CompoundAssignmentExpr",
	BoundCompoundFieldAssignmentExpr:  "CompoundFieldAssignmentExpr",
	BoundBlockStmt:                    "BlockStmt",
	BoundVariableDeclarationStmt:      "VariableDeclarationStmt",
	BoundIfStmt:                       "IfStmt",
	BoundWhileStmt:                    "WhileStmt",
	BoundDoWhileStmt:                  "DoWhileStmt",
	BoundForStmt:                      "ForStmt",
	BoundLabelStmt:                    "LabelStmt",
	BoundGotoStmt:                     "GotoStmt",
	BoundConditionalGotoStmt:          "ConditionalGotoStmt",
	BoundReturnStmt:                   "ReturnStmt",
	BoundExpressionStmt:               "ExpressionStmt",
	BoundNopStmt:                      "NopStmt",
	BoundSequencePointStmt:            "SequencePointStmt",
	BoundBreakStmt:                    "BreakStmt",
	BoundContinueStmt:                 "ContinueStmt",
}

func (k BoundKind) String() string {
	if name, ok := boundKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// BoundConstant wraps a compile-time-known value produced by constant
// folding during binding. Its dynamic type is always one of
// the Go representations a TypeSymbol.Default uses.
type BoundConstant struct {
	Value any
}

// IsZero reports whether the constant holds the zero value of whatever Go
// type it wraps; used by the binder's division/modulo-by-constant-zero
// diagnostic and by FoldBinary's refusal to fold such a division.
func (c *BoundConstant) IsZero() bool {
	if c == nil {
		return false
	}
	switch v := c.Value.(type) {
	case bool:
		return !v
	case string:
		return v == ""
	case int8:
		return v == 0
	case int16:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case uint8:
		return v == 0
	case uint16:
		return v == 0
	case uint32:
		return v == 0
	case uint64:
		return v == 0
	case float32:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}

// BoundExpression is any typed expression node. Constant is non-nil only
// when the binder could fold it to a compile-time value.
type BoundExpression interface {
	Kind() BoundKind
	Type() *TypeSymbol
	Constant() *BoundConstant
}

// BoundStatement is any bound statement node, pre- or post-lowering: the
// lowerer consumes the structured forms (If/While/DoWhile/For/Break/
// Continue) and produces only Block/VariableDeclaration/Label/Goto/
// ConditionalGoto/Return/Expression/Nop/SequencePoint.
type BoundStatement interface {
	Kind() BoundKind
}

// BoundErrorExpression stands in for an expression that failed to bind, so
// traversal never has to special-case a nil expression.
type BoundErrorExpression struct{}

func (*BoundErrorExpression) Kind() BoundKind        { return BoundErrorExpr }
func (*BoundErrorExpression) Type() *TypeSymbol      { return TypeError }
func (*BoundErrorExpression) Constant() *BoundConstant { return nil }

type BoundLiteralExpression struct {
	ValueType *TypeSymbol
	Value     any
}

func (l *BoundLiteralExpression) Kind() BoundKind   { return BoundLiteralExpr }
func (l *BoundLiteralExpression) Type() *TypeSymbol { return l.ValueType }
func (l *BoundLiteralExpression) Constant() *BoundConstant {
	return &BoundConstant{Value: l.Value}
}

type BoundVariableExpression struct {
	Variable *VariableSymbol
}

func (v *BoundVariableExpression) Kind() BoundKind   { return BoundVariableExpr }
func (v *BoundVariableExpression) Type() *TypeSymbol { return v.Variable.Type }
func (v *BoundVariableExpression) Constant() *BoundConstant {
	return v.Variable.Constant
}

// BoundThisExpression is only ever bound inside a method body.
type BoundThisExpression struct {
	ClassType *TypeSymbol
}

func (t *BoundThisExpression) Kind() BoundKind          { return BoundThisExpr }
func (t *BoundThisExpression) Type() *TypeSymbol        { return t.ClassType }
func (t *BoundThisExpression) Constant() *BoundConstant { return nil }

type BoundAssignmentExpression struct {
	Variable   *VariableSymbol
	Expression BoundExpression
}

func (a *BoundAssignmentExpression) Kind() BoundKind          { return BoundAssignmentExpr }
func (a *BoundAssignmentExpression) Type() *TypeSymbol        { return a.Variable.Type }
func (a *BoundAssignmentExpression) Constant() *BoundConstant { return nil }

// UnaryOperatorKind distinguishes the operator families the binder
// understands, independent of which syntax token spelled it.
type UnaryOperatorKind int

const (
	UnaryIdentity UnaryOperatorKind = iota
	UnaryNegation
	UnaryLogicalNegation
	UnaryBitwiseComplement
)

type BoundUnaryOperator struct {
	Kind       UnaryOperatorKind
	ResultType *TypeSymbol
}

type BoundUnaryExpression struct {
	Op       BoundUnaryOperator
	Operand  BoundExpression
	Constant_ *BoundConstant
}

func (u *BoundUnaryExpression) Kind() BoundKind          { return BoundUnaryExpr }
func (u *BoundUnaryExpression) Type() *TypeSymbol        { return u.Op.ResultType }
func (u *BoundUnaryExpression) Constant() *BoundConstant { return u.Constant_ }

// BinaryOperatorKind distinguishes the operator families the binder
// understands, independent of which syntax token spelled it.
type BinaryOperatorKind int

const (
	BinaryAddition BinaryOperatorKind = iota
	BinarySubtraction
	BinaryMultiplication
	BinaryDivision
	BinaryModulo
	BinaryBitwiseAnd
	BinaryBitwiseOr
	BinaryBitwiseXor
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryEquals
	BinaryNotEquals
	BinaryLess
	BinaryLessOrEquals
	BinaryGreater
	BinaryGreaterOrEquals
)

type BoundBinaryOperator struct {
	Kind       BinaryOperatorKind
	ResultType *TypeSymbol
}

type BoundBinaryExpression struct {
	Left      BoundExpression
	Op        BoundBinaryOperator
	Right     BoundExpression
	Constant_ *BoundConstant
}

func (b *BoundBinaryExpression) Kind() BoundKind          { return BoundBinaryExpr }
func (b *BoundBinaryExpression) Type() *TypeSymbol        { return b.Op.ResultType }
func (b *BoundBinaryExpression) Constant() *BoundConstant { return b.Constant_ }

// BoundCallExpression binds a call to the first overload whose arity and
// parameter types all accept the supplied arguments.
// Receiver is non-nil only for `target.method(...)`; a call by bare name
// has no receiver.
type BoundCallExpression struct {
	Function  *FunctionSymbol
	Receiver  BoundExpression
	Arguments []BoundExpression
}

func (c *BoundCallExpression) Kind() BoundKind          { return BoundCallExpr }
func (c *BoundCallExpression) Type() *TypeSymbol        { return c.Function.ReturnType }
func (c *BoundCallExpression) Constant() *BoundConstant { return nil }

// BoundConversionExpression is an inserted implicit conversion, or an
// explicit cast written as a call to a type-name. Constant_
// is the folded value when the converted expression was itself constant;
// NewConversion computes it so every construction site folds uniformly.
type BoundConversionExpression struct {
	ToType     *TypeSymbol
	Expression BoundExpression
	Constant_  *BoundConstant
}

// NewConversion wraps expr in a conversion to toType, folding the result
// to a constant when expr is compile-time constant.
func NewConversion(toType *TypeSymbol, expr BoundExpression) *BoundConversionExpression {
	return &BoundConversionExpression{ToType: toType, Expression: expr, Constant_: FoldConversion(toType, expr)}
}

func (c *BoundConversionExpression) Kind() BoundKind   { return BoundConversionExpr }
func (c *BoundConversionExpression) Type() *TypeSymbol { return c.ToType }
func (c *BoundConversionExpression) Constant() *BoundConstant {
	return c.Constant_
}

type BoundFieldAccessExpression struct {
	Target BoundExpression
	Field  *FieldSymbol
}

func (f *BoundFieldAccessExpression) Kind() BoundKind          { return BoundFieldAccessExpr }
func (f *BoundFieldAccessExpression) Type() *TypeSymbol        { return f.Field.Type }
func (f *BoundFieldAccessExpression) Constant() *BoundConstant { return f.Field.ConstantValue }

type BoundFieldAssignmentExpression struct {
	Target     BoundExpression
	Field      *FieldSymbol
	Expression BoundExpression
}

func (f *BoundFieldAssignmentExpression) Kind() BoundKind          { return BoundFieldAssignmentExpr }
func (f *BoundFieldAssignmentExpression) Type() *TypeSymbol        { return f.Field.Type }
func (f *BoundFieldAssignmentExpression) Constant() *BoundConstant { return nil }

// BoundCompoundAssignmentExpression is `name op= expr`, produced by the
// binder and rewritten by the lowerer into
// Assignment(Variable, Binary(Variable, op, Expression));
// it must never survive lowering.
type BoundCompoundAssignmentExpression struct {
	Variable   *VariableSymbol
	Op         BoundBinaryOperator
	Expression BoundExpression
}

func (c *BoundCompoundAssignmentExpression) Kind() BoundKind          { return BoundCompoundAssignmentExpr }
func (c *BoundCompoundAssignmentExpression) Type() *TypeSymbol        { return c.Variable.Type }
func (c *BoundCompoundAssignmentExpression) Constant() *BoundConstant { return nil }

// BoundCompoundFieldAssignmentExpression is the field-access analogue of
// BoundCompoundAssignmentExpression (`target.field op= expr`).
type BoundCompoundFieldAssignmentExpression struct {
	Target     BoundExpression
	Field      *FieldSymbol
	Op         BoundBinaryOperator
	Expression BoundExpression
}

func (c *BoundCompoundFieldAssignmentExpression) Kind() BoundKind   { return BoundCompoundFieldAssignmentExpr }
func (c *BoundCompoundFieldAssignmentExpression) Type() *TypeSymbol { return c.Field.Type }
func (c *BoundCompoundFieldAssignmentExpression) Constant() *BoundConstant {
	return nil
}

// BoundLabel names a lowering-introduced jump target. Labels compare by
// identity (pointer), not by Name, so the lowerer's monotonic counter only
// needs to keep names readable for diagnostics/disassembly, not unique.
type BoundLabel struct {
	Name string
}

type BoundBlockStatement struct {
	Statements []BoundStatement
}

func (b *BoundBlockStatement) Kind() BoundKind { return BoundBlockStmt }

type BoundVariableDeclaration struct {
	Variable    *VariableSymbol
	Initializer BoundExpression
}

func (v *BoundVariableDeclaration) Kind() BoundKind { return BoundVariableDeclarationStmt }

type BoundIfStatement struct {
	Condition BoundExpression
	Then      BoundStatement
	Else      BoundStatement // nil when absent
}

func (i *BoundIfStatement) Kind() BoundKind { return BoundIfStmt }

type BoundWhileStatement struct {
	Condition     BoundExpression
	Body          BoundStatement
	BreakLabel    *BoundLabel
	ContinueLabel *BoundLabel
}

func (w *BoundWhileStatement) Kind() BoundKind { return BoundWhileStmt }

type BoundDoWhileStatement struct {
	Body          BoundStatement
	Condition     BoundExpression
	BreakLabel    *BoundLabel
	ContinueLabel *BoundLabel
}

func (d *BoundDoWhileStatement) Kind() BoundKind { return BoundDoWhileStmt }

type BoundForStatement struct {
	Variable      *VariableSymbol
	LowerBound    BoundExpression
	UpperBound    BoundExpression
	Body          BoundStatement
	BreakLabel    *BoundLabel
	ContinueLabel *BoundLabel
}

func (f *BoundForStatement) Kind() BoundKind { return BoundForStmt }

type BoundLabelStatement struct {
	Label *BoundLabel
}

func (l *BoundLabelStatement) Kind() BoundKind { return BoundLabelStmt }

type BoundGotoStatement struct {
	Label *BoundLabel
}

func (g *BoundGotoStatement) Kind() BoundKind { return BoundGotoStmt }

type BoundConditionalGotoStatement struct {
	Label       *BoundLabel
	Condition   BoundExpression
	JumpIfTrue  bool
}

func (c *BoundConditionalGotoStatement) Kind() BoundKind { return BoundConditionalGotoStmt }

type BoundReturnStatement struct {
	Expression BoundExpression // nil for a bare `return;`
}

func (r *BoundReturnStatement) Kind() BoundKind { return BoundReturnStmt }

type BoundExpressionStatement struct {
	Expression BoundExpression
}

func (e *BoundExpressionStatement) Kind() BoundKind { return BoundExpressionStmt }

// BoundNopStatement is the placeholder the binder emits for a statement it
// could not bind (e.g. `break` outside a loop); the lowerer drops it.
type BoundNopStatement struct{}

func (*BoundNopStatement) Kind() BoundKind { return BoundNopStmt }

// BoundSequencePointStatement marks a statement boundary the CFG builder
// can anchor diagnostics to without affecting control flow: the binder
// wraps an if-statement's then/else branch with one so that lowering, which
// discards the structured If/Else shape, can still report UnreachableCode
// against the original branch's source location.
type BoundSequencePointStatement struct {
	Statement BoundStatement
	Location  source.Location
}

func (s *BoundSequencePointStatement) Kind() BoundKind { return BoundSequencePointStmt }

// UnwrapSequencePoint strips a sequence-point wrapper if present, returning
// the underlying statement and its recorded location (the zero Location if
// s was never wrapped).
func UnwrapSequencePoint(s BoundStatement) (BoundStatement, source.Location) {
	if sp, ok := s.(*BoundSequencePointStatement); ok {
		return sp.Statement, sp.Location
	}
	return s, source.Location{}
}

// BoundBreakStatement and BoundContinueStatement only ever appear in the
// pre-lowering tree; the lowerer rewrites every occurrence into a
// BoundGotoStatement targeting the enclosing loop's label pair.
type BoundBreakStatement struct{ Label *BoundLabel }

func (*BoundBreakStatement) Kind() BoundKind { return BoundBreakStmt }

type BoundContinueStatement struct{ Label *BoundLabel }

func (*BoundContinueStatement) Kind() BoundKind { return BoundContinueStmt }
