package syntax

import "github.com/lookbusy1344/mlang/source"

// BlockStatement is `{ stmt* }`; binding it introduces a child scope.
type BlockStatement struct {
	OpenBrace  Token
	Statements []Statement
	CloseBrace Token
}

func (b *BlockStatement) isStatement()  {}
func (b *BlockStatement) Kind() Kind    { return BlockStatementNode }
func (b *BlockStatement) Location() source.Location {
	return spanUnion(b.OpenBrace.Location, b.CloseBrace.Location)
}

// VariableDeclaration is `var name[: Type] = expr;` or `const name = expr;`.
type VariableDeclaration struct {
	Keyword     Token // "var" or "const"
	IsConst     bool
	Identifier  Token
	TypeClause  *TypeClause // nil when the type is inferred
	EqualsTok   Token
	Initializer Expression // nil when omitted; binder synthesizes a default
	Semicolon   Token
}

func (v *VariableDeclaration) isStatement() {}
func (v *VariableDeclaration) Kind() Kind   { return VariableDeclarationNode }
func (v *VariableDeclaration) Location() source.Location {
	return spanUnion(v.Keyword.Location, v.Semicolon.Location)
}

// ElseClause is the optional `else stmt` tail of an if-statement.
type ElseClause struct {
	ElseKw    Token
	Statement Statement
}

// IfStatement is `if (cond) then [else else_]`.
type IfStatement struct {
	IfKw       Token
	Condition  Expression
	Then       Statement
	Else       *ElseClause // nil when absent
}

func (i *IfStatement) isStatement() {}
func (i *IfStatement) Kind() Kind   { return IfStatementNode }
func (i *IfStatement) Location() source.Location {
	end := i.Then.Location()
	if i.Else != nil {
		end = i.Else.Statement.Location()
	}
	return spanUnion(i.IfKw.Location, end)
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	WhileKw   Token
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) isStatement() {}
func (w *WhileStatement) Kind() Kind   { return WhileStatementNode }
func (w *WhileStatement) Location() source.Location {
	return spanUnion(w.WhileKw.Location, w.Body.Location())
}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	DoKw      Token
	Body      Statement
	WhileKw   Token
	Condition Expression
	Semicolon Token
}

func (d *DoWhileStatement) isStatement() {}
func (d *DoWhileStatement) Kind() Kind   { return DoWhileStatementNode }
func (d *DoWhileStatement) Location() source.Location {
	return spanUnion(d.DoKw.Location, d.Semicolon.Location)
}

// ForStatement is `for name in lower..upper do body`.
type ForStatement struct {
	ForKw      Token
	Identifier Token
	InKw       Token
	LowerBound Expression
	RangeTok   Token
	UpperBound Expression
	DoKw       Token
	Body       Statement
}

func (f *ForStatement) isStatement() {}
func (f *ForStatement) Kind() Kind   { return ForStatementNode }
func (f *ForStatement) Location() source.Location {
	return spanUnion(f.ForKw.Location, f.Body.Location())
}

// BreakStatement is `break;`.
type BreakStatement struct {
	Keyword   Token
	Semicolon Token
}

func (b *BreakStatement) isStatement() {}
func (b *BreakStatement) Kind() Kind   { return BreakStatementNode }
func (b *BreakStatement) Location() source.Location {
	return spanUnion(b.Keyword.Location, b.Semicolon.Location)
}

// ContinueStatement is `continue;`.
type ContinueStatement struct {
	Keyword   Token
	Semicolon Token
}

func (c *ContinueStatement) isStatement() {}
func (c *ContinueStatement) Kind() Kind   { return ContinueStatementNode }
func (c *ContinueStatement) Location() source.Location {
	return spanUnion(c.Keyword.Location, c.Semicolon.Location)
}

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Keyword    Token
	Expression Expression // nil for a bare `return;`
	Semicolon  Token
}

func (r *ReturnStatement) isStatement() {}
func (r *ReturnStatement) Kind() Kind   { return ReturnStatementNode }
func (r *ReturnStatement) Location() source.Location {
	return spanUnion(r.Keyword.Location, r.Semicolon.Location)
}

// ExpressionStatement wraps an expression used as a statement; binding
// restricts which expression kinds are legal here.
type ExpressionStatement struct {
	Expression Expression
	Semicolon  Token
}

func (e *ExpressionStatement) isStatement() {}
func (e *ExpressionStatement) Kind() Kind   { return ExpressionStatementNode }
func (e *ExpressionStatement) Location() source.Location {
	return spanUnion(e.Expression.Location(), e.Semicolon.Location)
}
