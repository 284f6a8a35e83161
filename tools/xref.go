package tools

import (
	"sort"

	"github.com/lookbusy1344/mlang/binding"
)

// ReferenceKind classifies how a symbol is touched at a reference site.
type ReferenceKind int

const (
	RefDeclaration ReferenceKind = iota
	RefRead
	RefWrite
	RefCall
)

func (r ReferenceKind) String() string {
	switch r {
	case RefDeclaration:
		return "declaration"
	case RefRead:
		return "read"
	case RefWrite:
		return "write"
	case RefCall:
		return "call"
	default:
		return "unknown"
	}
}

// XRefEntry is every reference collected for a single symbol name.
type XRefEntry struct {
	Name       string
	Kind       string // "variable", "function", "field", "class"
	References []ReferenceKind
}

// XRef builds a flat, name-sorted cross-reference table over every bound
// function/constructor body plus the global statements, for editor tooling
// to consume; the symbol table itself has no such dump built in, this is
// the tooling layer over it.
func XRef(globalScope *binding.BoundGlobalScope, program *binding.BoundProgram) []*XRefEntry {
	entries := map[string]*XRefEntry{}
	get := func(name, kind string) *XRefEntry {
		e, ok := entries[name]
		if !ok {
			e = &XRefEntry{Name: name, Kind: kind}
			entries[name] = e
		}
		return e
	}

	for _, v := range globalScope.Variables {
		get(v.Name, "variable").References = append(get(v.Name, "variable").References, RefDeclaration)
	}
	for _, fn := range globalScope.Functions {
		get(fn.Name, "function").References = append(get(fn.Name, "function").References, RefDeclaration)
	}
	for _, class := range globalScope.Classes {
		get(class.Name, "class").References = append(get(class.Name, "class").References, RefDeclaration)
	}

	collect := func(body *binding.BoundBlockStatement) {
		if body == nil {
			return
		}
		r := &binding.BoundTreeRewriter{
			RewriteExpression: func(e binding.BoundExpression) binding.BoundExpression {
				switch n := e.(type) {
				case *binding.BoundVariableExpression:
					entry := get(n.Variable.Name, "variable")
					entry.References = append(entry.References, RefRead)
				case *binding.BoundAssignmentExpression:
					entry := get(n.Variable.Name, "variable")
					entry.References = append(entry.References, RefWrite)
				case *binding.BoundCompoundAssignmentExpression:
					entry := get(n.Variable.Name, "variable")
					entry.References = append(entry.References, RefWrite)
				case *binding.BoundFieldAccessExpression:
					entry := get(n.Field.Name, "field")
					entry.References = append(entry.References, RefRead)
				case *binding.BoundFieldAssignmentExpression:
					entry := get(n.Field.Name, "field")
					entry.References = append(entry.References, RefWrite)
				case *binding.BoundCallExpression:
					entry := get(n.Function.Name, "function")
					entry.References = append(entry.References, RefCall)
				}
				return e
			},
		}
		r.RewriteBody(body)
	}

	for _, body := range program.Functions {
		collect(body)
	}
	for _, stmt := range globalScope.Statements {
		collect(&binding.BoundBlockStatement{Statements: []binding.BoundStatement{stmt}})
	}

	out := make([]*XRefEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
