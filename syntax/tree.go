package syntax

import "github.com/lookbusy1344/mlang/source"

// Node is the shared accessor every syntax node implements: its Kind tag
// and its full source Location. Syntax nodes are heterogeneous, so rather
// than a class hierarchy we use one interface plus a Kind field on every
// concrete struct, consumed with type switches.
type Node interface {
	Kind() Kind
	Location() source.Location
}

// Member is any top-level declaration: a function, a class, or a global
// statement.
type Member interface {
	Node
	isMember()
}

// Statement is any statement node.
type Statement interface {
	Node
	isStatement()
}

// Expression is any expression node.
type Expression interface {
	Node
	isExpression()
}

// TypeClause is the optional ": T" annotation on a parameter, variable
// declaration, or field.
type TypeClause struct {
	ColonTok Token
	TypeTok  Token
}

func (t TypeClause) Location() source.Location {
	return spanUnion(t.ColonTok.Location, t.TypeTok.Location)
}

func spanUnion(a, b source.Location) source.Location {
	if a.Text == nil {
		return b
	}
	if b.Text == nil {
		return a
	}
	start := a.Span.Start
	end := b.Span.End()
	if b.Span.Start < start {
		start = b.Span.Start
	}
	if a.Span.End() > end {
		end = a.Span.End()
	}
	return source.NewLocation(a.Text, source.SpanFromBounds(start, end))
}

// Parameter is one entry in a function's parameter list.
type Parameter struct {
	Identifier Token
	Type       TypeClause
}

func (p Parameter) Kind() Kind { return ParameterNode }

func (p Parameter) Location() source.Location { return spanUnion(p.Identifier.Location, p.Type.Location()) }

// CompilationUnit is the root of a single parsed file: an ordered sequence
// of members plus the trailing EOF token.
type CompilationUnit struct {
	Members []Member
	EOF     Token
}

func (c *CompilationUnit) Kind() Kind { return CompilationUnitNode }
func (c *CompilationUnit) Location() source.Location {
	if len(c.Members) == 0 {
		return c.EOF.Location
	}
	return spanUnion(c.Members[0].Location(), c.EOF.Location)
}
