package syntax

import (
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// parser is a recursive-descent parser over a fully-lexed token buffer,
// with Pratt-style precedence climbing for binary expressions. The whole
// token stream is materialized up front, so lookahead is a slice index
// rather than a queue.
type parser struct {
	text   *source.Text
	tokens []Token
	pos    int
	diags  *diagnostics.Bag
}

func newParser(text *source.Text, diags *diagnostics.Bag) *parser {
	lex := NewLexer(text, diags)
	var tokens []Token
	for {
		tok := lex.Lex()
		tokens = append(tokens, tok)
		if tok.Kind == EOFToken {
			break
		}
	}
	return &parser{text: text, tokens: tokens, pos: 0, diags: diags}
}

func (p *parser) current() Token { return p.tokens[p.pos] }

func (p *parser) peekKind(offset int) Kind {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx].Kind
}

// consume returns the current token and advances, except past EOF.
func (p *parser) consume() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// match consumes the current token if it has the expected kind; otherwise
// it reports UnexpectedToken and fabricates a zero-length missing token at
// the current position, without advancing.
func (p *parser) match(kind Kind) Token {
	if p.current().Kind == kind {
		return p.consume()
	}
	cur := p.current()
	p.diags.Report(cur.Location, diagnostics.UnexpectedToken, "unexpected token %s, expected %s", cur.Kind, kind)
	return Token{
		Kind:      kind,
		Location:  source.NewLocation(p.text, source.NewSpan(cur.Location.Span.Start, 0)),
		IsMissing: true,
	}
}

// matchTypeToken accepts either a type keyword or an identifier (a class
// name) as a type reference.
func (p *parser) matchTypeToken() Token {
	if IsTypeKeyword(p.current().Kind) || p.current().Kind == IdentifierToken {
		return p.consume()
	}
	return p.match(IdentifierToken)
}

// skipToProgress guards a parse loop against getting stuck on a token
// nothing recognizes: if a sub-parse consumed nothing, it forces one token
// forward so the tree's leaf positions stay monotonically non-decreasing.
func (p *parser) skipToProgress(before int) {
	if p.pos == before && p.current().Kind != EOFToken {
		bad := p.consume()
		p.diags.Report(bad.Location, diagnostics.UnexpectedToken, "unexpected token %s", bad.Kind)
	}
}

func (p *parser) parseCompilationUnit() *CompilationUnit {
	var members []Member
	for p.current().Kind != EOFToken {
		before := p.pos
		members = append(members, p.parseMember())
		p.skipToProgress(before)
	}
	eof := p.match(EOFToken)
	return &CompilationUnit{Members: members, EOF: eof}
}

func (p *parser) parseMember() Member {
	switch p.current().Kind {
	case FunctionKeyword:
		return p.parseFunctionDeclaration()
	case ClassKeyword:
		return p.parseClassDeclaration()
	default:
		return &GlobalStatement{Statement: p.parseStatement()}
	}
}

func (p *parser) parseFunctionDeclaration() *FunctionDeclaration {
	fnKw := p.match(FunctionKeyword)
	first := p.match(IdentifierToken)

	decl := &FunctionDeclaration{FunctionKw: fnKw}
	if p.current().Kind == DotToken {
		decl.ReceiverTok = first
		decl.HasReceiver = true
		decl.DotTok = p.consume()
		decl.Identifier = p.match(IdentifierToken)
	} else {
		decl.Identifier = first
	}

	p.match(OpenParenToken)
	decl.Parameters = p.parseParameterList()
	p.match(CloseParenToken)

	if p.current().Kind == ColonToken {
		colon := p.consume()
		typeTok := p.matchTypeToken()
		decl.ReturnType = &TypeClause{ColonTok: colon, TypeTok: typeTok}
	}

	decl.Body = p.parseBlockStatement()
	return decl
}

func (p *parser) parseParameterList() *SeparatedList[Parameter] {
	var params []Parameter
	var seps []Token
	for p.current().Kind != CloseParenToken && p.current().Kind != EOFToken {
		before := p.pos
		params = append(params, p.parseParameter())
		if p.current().Kind == CommaToken {
			seps = append(seps, p.consume())
		} else {
			break
		}
		p.skipToProgress(before)
	}
	return NewSeparatedList(params, seps)
}

func (p *parser) parseParameter() Parameter {
	ident := p.match(IdentifierToken)
	colon := p.match(ColonToken)
	typeTok := p.matchTypeToken()
	return Parameter{Identifier: ident, Type: TypeClause{ColonTok: colon, TypeTok: typeTok}}
}

func (p *parser) parseClassDeclaration() *ClassDeclaration {
	classKw := p.match(ClassKeyword)
	ident := p.match(IdentifierToken)
	openBrace := p.match(OpenBraceToken)

	var fields []*FieldDeclaration
	for p.current().Kind != CloseBraceToken && p.current().Kind != EOFToken {
		before := p.pos
		fields = append(fields, p.parseFieldDeclaration())
		p.skipToProgress(before)
	}

	closeBrace := p.match(CloseBraceToken)
	return &ClassDeclaration{
		ClassKw: classKw, Identifier: ident, OpenBrace: openBrace,
		Fields: fields, CloseBrace: closeBrace,
	}
}

func (p *parser) parseFieldDeclaration() *FieldDeclaration {
	field := &FieldDeclaration{}
	if p.current().Kind == ConstKeyword {
		field.ConstKw = p.consume()
		field.IsConst = true
	}
	field.Identifier = p.match(IdentifierToken)
	colon := p.match(ColonToken)
	typeTok := p.matchTypeToken()
	field.Type = TypeClause{ColonTok: colon, TypeTok: typeTok}

	if p.current().Kind == EqualsToken {
		field.EqualsTok = p.consume()
		field.Initializer = p.parseExpression()
	}
	field.Semicolon = p.match(SemicolonToken)
	return field
}

func (p *parser) parseStatement() Statement {
	switch p.current().Kind {
	case OpenBraceToken:
		return p.parseBlockStatement()
	case VarKeyword, ConstKeyword:
		return p.parseVariableDeclaration()
	case IfKeyword:
		return p.parseIfStatement()
	case WhileKeyword:
		return p.parseWhileStatement()
	case DoKeyword:
		return p.parseDoWhileStatement()
	case ForKeyword:
		return p.parseForStatement()
	case BreakKeyword:
		return p.parseBreakStatement()
	case ContinueKeyword:
		return p.parseContinueStatement()
	case ReturnKeyword:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseBlockStatement() *BlockStatement {
	open := p.match(OpenBraceToken)
	var stmts []Statement
	for p.current().Kind != CloseBraceToken && p.current().Kind != EOFToken {
		before := p.pos
		stmts = append(stmts, p.parseStatement())
		p.skipToProgress(before)
	}
	close := p.match(CloseBraceToken)
	return &BlockStatement{OpenBrace: open, Statements: stmts, CloseBrace: close}
}

func (p *parser) parseVariableDeclaration() *VariableDeclaration {
	kw := p.consume()
	decl := &VariableDeclaration{Keyword: kw, IsConst: kw.Kind == ConstKeyword}
	decl.Identifier = p.match(IdentifierToken)

	if p.current().Kind == ColonToken {
		colon := p.consume()
		typeTok := p.matchTypeToken()
		decl.TypeClause = &TypeClause{ColonTok: colon, TypeTok: typeTok}
	}
	if p.current().Kind == EqualsToken {
		decl.EqualsTok = p.consume()
		decl.Initializer = p.parseExpression()
	}
	decl.Semicolon = p.match(SemicolonToken)
	return decl
}

func (p *parser) parseIfStatement() *IfStatement {
	ifKw := p.match(IfKeyword)
	cond := p.parseExpression()
	then := p.parseStatement()

	stmt := &IfStatement{IfKw: ifKw, Condition: cond, Then: then}
	if p.current().Kind == ElseKeyword {
		elseKw := p.consume()
		stmt.Else = &ElseClause{ElseKw: elseKw, Statement: p.parseStatement()}
	}
	return stmt
}

func (p *parser) parseWhileStatement() *WhileStatement {
	kw := p.match(WhileKeyword)
	cond := p.parseExpression()
	body := p.parseStatement()
	return &WhileStatement{WhileKw: kw, Condition: cond, Body: body}
}

func (p *parser) parseDoWhileStatement() *DoWhileStatement {
	doKw := p.match(DoKeyword)
	body := p.parseStatement()
	whileKw := p.match(WhileKeyword)
	cond := p.parseExpression()
	semi := p.match(SemicolonToken)
	return &DoWhileStatement{DoKw: doKw, Body: body, WhileKw: whileKw, Condition: cond, Semicolon: semi}
}

func (p *parser) parseForStatement() *ForStatement {
	forKw := p.match(ForKeyword)
	ident := p.match(IdentifierToken)
	inKw := p.match(InKeyword)
	lower := p.parseExpression()
	rangeTok := p.match(DotToken)
	p.match(DotToken)
	upper := p.parseExpression()
	doKw := p.match(DoKeyword)
	body := p.parseStatement()
	return &ForStatement{
		ForKw: forKw, Identifier: ident, InKw: inKw,
		LowerBound: lower, RangeTok: rangeTok, UpperBound: upper,
		DoKw: doKw, Body: body,
	}
}

func (p *parser) parseBreakStatement() *BreakStatement {
	kw := p.match(BreakKeyword)
	semi := p.match(SemicolonToken)
	return &BreakStatement{Keyword: kw, Semicolon: semi}
}

func (p *parser) parseContinueStatement() *ContinueStatement {
	kw := p.match(ContinueKeyword)
	semi := p.match(SemicolonToken)
	return &ContinueStatement{Keyword: kw, Semicolon: semi}
}

func (p *parser) parseReturnStatement() *ReturnStatement {
	kw := p.match(ReturnKeyword)
	var expr Expression
	if p.current().Kind != SemicolonToken && p.current().Kind != EOFToken {
		expr = p.parseExpression()
	}
	semi := p.match(SemicolonToken)
	return &ReturnStatement{Keyword: kw, Expression: expr, Semicolon: semi}
}

func (p *parser) parseExpressionStatement() *ExpressionStatement {
	expr := p.parseExpression()
	semi := p.match(SemicolonToken)
	return &ExpressionStatement{Expression: expr, Semicolon: semi}
}

// --- expressions ---

func (p *parser) parseExpression() Expression {
	return p.parseAssignmentExpression()
}

func (p *parser) parseAssignmentExpression() Expression {
	if p.current().Kind == IdentifierToken {
		if IsAssignmentOperator(p.peekKind(1)) {
			return p.parseSimpleAssignment()
		}
		if p.peekKind(1) == DotToken && p.peekKind(2) == IdentifierToken && IsAssignmentOperator(p.peekKind(3)) {
			target := &NameExpression{Identifier: p.consume()}
			return p.parseFieldAssignmentFrom(target)
		}
	}
	if p.current().Kind == ThisKeyword &&
		p.peekKind(1) == DotToken && p.peekKind(2) == IdentifierToken && IsAssignmentOperator(p.peekKind(3)) {
		target := &ThisExpression{Keyword: p.consume()}
		return p.parseFieldAssignmentFrom(target)
	}
	return p.parseBinaryExpression(0)
}

func (p *parser) parseSimpleAssignment() Expression {
	ident := p.consume()
	opTok := p.consume()
	rhs := p.parseAssignmentExpression()
	if opTok.Kind == EqualsToken {
		return &AssignmentExpression{Identifier: ident, EqualsTok: opTok, Expression: rhs}
	}
	return &CompoundAssignmentExpression{Identifier: ident, OperatorTok: opTok, Expression: rhs}
}

func (p *parser) parseFieldAssignmentFrom(target Expression) Expression {
	dot := p.match(DotToken)
	field := p.match(IdentifierToken)
	opTok := p.consume()
	rhs := p.parseAssignmentExpression()
	if opTok.Kind == EqualsToken {
		return &FieldAssignmentExpression{Target: target, DotTok: dot, Field: field, EqualsTok: opTok, Expression: rhs}
	}
	return &CompoundFieldAssignmentExpression{Target: target, DotTok: dot, Field: field, OperatorTok: opTok, Expression: rhs}
}

func (p *parser) parseBinaryExpression(parentPrecedence int) Expression {
	var left Expression
	if up := UnaryOperatorPrecedence(p.current().Kind); up != 0 && up >= parentPrecedence {
		opTok := p.consume()
		operand := p.parseBinaryExpression(up)
		left = &UnaryExpression{OperatorTok: opTok, Operand: operand}
	} else {
		left = p.parsePrimaryExpression()
	}

	for {
		precedence := BinaryOperatorPrecedence(p.current().Kind)
		if precedence == 0 || precedence <= parentPrecedence {
			break
		}
		opTok := p.consume()
		right := p.parseBinaryExpression(precedence)
		left = &BinaryExpression{Left: left, OperatorTok: opTok, Right: right}
	}
	return left
}

func (p *parser) parsePrimaryExpression() Expression {
	var atom Expression
	switch {
	case p.current().Kind == OpenParenToken:
		atom = p.parseParenthesizedExpression()
	case p.current().Kind == ThisKeyword:
		atom = &ThisExpression{Keyword: p.consume()}
	case isLiteralKind(p.current().Kind):
		atom = p.parseLiteralExpression()
	case p.current().Kind == IdentifierToken || IsTypeKeyword(p.current().Kind):
		atom = &NameExpression{Identifier: p.consume()}
	default:
		bad := p.consume()
		p.diags.Report(bad.Location, diagnostics.UnexpectedToken, "unexpected token %s, expected an expression", bad.Kind)
		atom = &LiteralExpression{Literal: Token{Kind: NumberToken, Location: bad.Location, IsMissing: true}, Value: int32(0)}
	}
	return p.parsePostfix(atom)
}

func isLiteralKind(k Kind) bool {
	switch k {
	case NumberToken, FloatToken, StringToken, CharToken, TrueKeyword, FalseKeyword:
		return true
	}
	return false
}

func (p *parser) parseLiteralExpression() Expression {
	tok := p.consume()
	var value any
	switch tok.Kind {
	case TrueKeyword:
		value = true
	case FalseKeyword:
		value = false
	default:
		value = tok.Value
	}
	return &LiteralExpression{Literal: tok, Value: value}
}

func (p *parser) parseParenthesizedExpression() Expression {
	open := p.match(OpenParenToken)
	expr := p.parseExpression()
	close := p.match(CloseParenToken)
	return &ParenthesizedExpression{OpenParen: open, Expression: expr, CloseParen: close}
}

// parsePostfix applies call and member-access chaining. A '.' followed
// immediately by another '.' is the `..` range operator in a for-statement,
// not a member access, and is left for the caller to consume.
func (p *parser) parsePostfix(expr Expression) Expression {
	for {
		switch {
		case p.current().Kind == OpenParenToken:
			open := p.consume()
			args := p.parseArgumentList()
			close := p.match(CloseParenToken)
			expr = &CallExpression{Callee: expr, OpenParen: open, Arguments: args, CloseParen: close}
		case p.current().Kind == DotToken && p.peekKind(1) != DotToken:
			dot := p.consume()
			member := p.match(IdentifierToken)
			expr = &MemberAccessExpression{Target: expr, DotTok: dot, Member: member}
		default:
			return expr
		}
	}
}

func (p *parser) parseArgumentList() *SeparatedList[Expression] {
	var args []Expression
	var seps []Token
	for p.current().Kind != CloseParenToken && p.current().Kind != EOFToken {
		before := p.pos
		args = append(args, p.parseExpression())
		if p.current().Kind == CommaToken {
			seps = append(seps, p.consume())
		} else {
			break
		}
		p.skipToProgress(before)
	}
	return NewSeparatedList(args, seps)
}
