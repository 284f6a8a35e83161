package syntax

import "github.com/lookbusy1344/mlang/source"

// FunctionDeclaration is `function name(params): returnType { body }`,
// optionally receiver-qualified as `function Class.name(...)`.
type FunctionDeclaration struct {
	FunctionKw   Token
	ReceiverTok  Token // set when the declaration is `Class.name`
	HasReceiver  bool
	DotTok       Token
	Identifier   Token
	Parameters   *SeparatedList[Parameter]
	ReturnType   *TypeClause // nil when omitted (implicit void)
	Body         *BlockStatement
}

func (f *FunctionDeclaration) isMember()      {}
func (f *FunctionDeclaration) Kind() Kind     { return FunctionDeclarationNode }
func (f *FunctionDeclaration) Location() source.Location {
	return spanUnion(f.FunctionKw.Location, f.Body.Location())
}

// ClassDeclaration is `class Name { field: Type; const field2: Type = e; }`.
type ClassDeclaration struct {
	ClassKw    Token
	Identifier Token
	OpenBrace  Token
	Fields     []*FieldDeclaration
	CloseBrace Token
}

func (c *ClassDeclaration) isMember()  {}
func (c *ClassDeclaration) Kind() Kind { return ClassDeclarationNode }
func (c *ClassDeclaration) Location() source.Location {
	return spanUnion(c.ClassKw.Location, c.CloseBrace.Location)
}

// FieldDeclaration is one member of a class body.
type FieldDeclaration struct {
	ConstKw    Token
	IsConst    bool
	Identifier Token
	Type       TypeClause
	EqualsTok  Token
	Initializer Expression // nil unless IsConst
	Semicolon  Token
}

func (f *FieldDeclaration) Kind() Kind { return FieldDeclarationNode }
func (f *FieldDeclaration) Location() source.Location {
	return spanUnion(f.Identifier.Location, f.Semicolon.Location)
}

// GlobalStatement wraps a statement that appears outside any function, the
// only member kind the binder confines to a single file of the
// compilation.
type GlobalStatement struct {
	Statement Statement
}

func (g *GlobalStatement) isMember()  {}
func (g *GlobalStatement) Kind() Kind { return GlobalStatementNode }
func (g *GlobalStatement) Location() source.Location { return g.Statement.Location() }
