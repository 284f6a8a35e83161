package syntax

import "github.com/lookbusy1344/mlang/source"

// LiteralExpression is a number, float, string, char, true, or false token.
type LiteralExpression struct {
	Literal Token
	Value   any
}

func (l *LiteralExpression) isExpression()           {}
func (l *LiteralExpression) Kind() Kind              { return LiteralExpressionNode }
func (l *LiteralExpression) Location() source.Location { return l.Literal.Location }

// NameExpression is a bare identifier reference.
type NameExpression struct {
	Identifier Token
}

func (n *NameExpression) isExpression()           {}
func (n *NameExpression) Kind() Kind              { return NameExpressionNode }
func (n *NameExpression) Location() source.Location { return n.Identifier.Location }

// ThisExpression is the `this` keyword, legal only inside a method body.
type ThisExpression struct {
	Keyword Token
}

func (t *ThisExpression) isExpression()           {}
func (t *ThisExpression) Kind() Kind              { return ThisExpressionNode }
func (t *ThisExpression) Location() source.Location { return t.Keyword.Location }

// ParenthesizedExpression is `(expr)`.
type ParenthesizedExpression struct {
	OpenParen  Token
	Expression Expression
	CloseParen Token
}

func (p *ParenthesizedExpression) isExpression() {}
func (p *ParenthesizedExpression) Kind() Kind    { return ParenthesizedExpressionNode }
func (p *ParenthesizedExpression) Location() source.Location {
	return spanUnion(p.OpenParen.Location, p.CloseParen.Location)
}

// UnaryExpression is a prefix operator applied to an operand.
type UnaryExpression struct {
	OperatorTok Token
	Operand     Expression
}

func (u *UnaryExpression) isExpression() {}
func (u *UnaryExpression) Kind() Kind    { return UnaryExpressionNode }
func (u *UnaryExpression) Location() source.Location {
	return spanUnion(u.OperatorTok.Location, u.Operand.Location())
}

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	Left        Expression
	OperatorTok Token
	Right       Expression
}

func (b *BinaryExpression) isExpression() {}
func (b *BinaryExpression) Kind() Kind    { return BinaryExpressionNode }
func (b *BinaryExpression) Location() source.Location {
	return spanUnion(b.Left.Location(), b.Right.Location())
}

// AssignmentExpression is `name = expr`.
type AssignmentExpression struct {
	Identifier Token
	EqualsTok  Token
	Expression Expression
}

func (a *AssignmentExpression) isExpression() {}
func (a *AssignmentExpression) Kind() Kind    { return AssignmentExpressionNode }
func (a *AssignmentExpression) Location() source.Location {
	return spanUnion(a.Identifier.Location, a.Expression.Location())
}

// CompoundAssignmentExpression is `name op= expr` (e.g. `x += 1`).
type CompoundAssignmentExpression struct {
	Identifier  Token
	OperatorTok Token // the `+=` etc. token itself
	Expression  Expression
}

func (c *CompoundAssignmentExpression) isExpression() {}
func (c *CompoundAssignmentExpression) Kind() Kind     { return CompoundAssignmentExpressionNode }
func (c *CompoundAssignmentExpression) Location() source.Location {
	return spanUnion(c.Identifier.Location, c.Expression.Location())
}

// FieldAssignmentExpression is `target.field = expr`, where target is
// either a bare name or `this`.
type FieldAssignmentExpression struct {
	Target     Expression // NameExpression or ThisExpression
	DotTok     Token
	Field      Token
	EqualsTok  Token
	Expression Expression
}

func (f *FieldAssignmentExpression) isExpression() {}
func (f *FieldAssignmentExpression) Kind() Kind     { return FieldAssignmentExpressionNode }
func (f *FieldAssignmentExpression) Location() source.Location {
	return spanUnion(f.Target.Location(), f.Expression.Location())
}

// CompoundFieldAssignmentExpression is `target.field op= expr`.
type CompoundFieldAssignmentExpression struct {
	Target      Expression
	DotTok      Token
	Field       Token
	OperatorTok Token
	Expression  Expression
}

func (c *CompoundFieldAssignmentExpression) isExpression() {}
func (c *CompoundFieldAssignmentExpression) Kind() Kind {
	return CompoundFieldAssignmentExpressionNode
}
func (c *CompoundFieldAssignmentExpression) Location() source.Location {
	return spanUnion(c.Target.Location(), c.Expression.Location())
}

// CallExpression is `callee(args)`, where callee is a NameExpression or a
// MemberAccessExpression.
type CallExpression struct {
	Callee     Expression
	OpenParen  Token
	Arguments  *SeparatedList[Expression]
	CloseParen Token
}

func (c *CallExpression) isExpression() {}
func (c *CallExpression) Kind() Kind    { return CallExpressionNode }
func (c *CallExpression) Location() source.Location {
	return spanUnion(c.Callee.Location(), c.CloseParen.Location)
}

// MemberAccessExpression is `target.member`.
type MemberAccessExpression struct {
	Target Expression
	DotTok Token
	Member Token
}

func (m *MemberAccessExpression) isExpression() {}
func (m *MemberAccessExpression) Kind() Kind     { return MemberAccessExpressionNode }
func (m *MemberAccessExpression) Location() source.Location {
	return spanUnion(m.Target.Location(), m.Member.Location)
}
