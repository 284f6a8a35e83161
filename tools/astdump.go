package tools

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/syntax"
)

// nodeType is the reflect.Type of syntax.Node, used to recognize which
// struct fields (and slice elements) are worth recursing into. The node
// vocabulary is large (~20 statement kinds, ~15 expression kinds, plus
// members), so rather than a type switch per kind this walks exported
// fields structurally: anything assignable to Node is a child, anything
// else is a leaf value worth a one-line summary.
var nodeType = reflect.TypeOf((*syntax.Node)(nil)).Elem()

// DumpTree writes an indented outline of a parsed file's syntax tree.
func DumpTree(w io.Writer, tree *syntax.Tree) {
	for _, m := range tree.Root.Members {
		dumpNode(w, reflect.ValueOf(m), 0)
	}
}

func dumpNode(w io.Writer, v reflect.Value, depth int) {
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) || (v.Kind() == reflect.Interface && v.IsNil()) {
		return
	}
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	node, ok := v.Interface().(syntax.Node)
	if !ok {
		return
	}
	line, col := node.Location().StartLineColumn()
	fmt.Fprintf(w, "%s%s (%d:%d)\n", indent(depth), node.Kind(), line+1, col+1)

	elem := v
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if !field.CanInterface() {
			continue
		}
		switch {
		case field.Type().Implements(nodeType):
			dumpNode(w, field, depth+1)
		case field.Kind() == reflect.Slice && field.Type().Elem().Implements(nodeType):
			for j := 0; j < field.Len(); j++ {
				dumpNode(w, field.Index(j), depth+1)
			}
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct && !field.IsNil():
			// Nested value types like ElseClause that aren't themselves Nodes.
			dumpStructFields(w, field.Elem(), depth+1)
		}
	}
}

func dumpStructFields(w io.Writer, v reflect.Value, depth int) {
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanInterface() {
			continue
		}
		if field.Type().Implements(nodeType) {
			dumpNode(w, field, depth)
		}
	}
}

var (
	boundExprType = reflect.TypeOf((*binding.BoundExpression)(nil)).Elem()
	boundStmtType = reflect.TypeOf((*binding.BoundStatement)(nil)).Elem()
)

// DumpBoundProgram writes an indented outline of every bound function and
// class constructor body, followed by any top-level global statements.
func DumpBoundProgram(w io.Writer, globalScope *binding.BoundGlobalScope, program *binding.BoundProgram) {
	names := make([]string, 0, len(program.Functions))
	byName := make(map[string]*binding.FunctionSymbol, len(program.Functions))
	for fn := range program.Functions {
		names = append(names, fn.Name)
		byName[fn.Name] = fn
	}
	sort.Strings(names)

	for _, name := range names {
		fn := byName[name]
		fmt.Fprintf(w, "function %s\n", fn.Name)
		dumpBoundNode(w, reflect.ValueOf(program.Functions[fn]), 1)
	}

	if len(globalScope.Statements) > 0 {
		fmt.Fprintln(w, "main")
		for _, s := range globalScope.Statements {
			dumpBoundNode(w, reflect.ValueOf(s), 1)
		}
	}
}

func dumpBoundNode(w io.Writer, v reflect.Value, depth int) {
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) || (v.Kind() == reflect.Interface && v.IsNil()) {
		return
	}
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	var kind fmt.Stringer
	switch n := v.Interface().(type) {
	case binding.BoundExpression:
		kind = n.Kind()
	case binding.BoundStatement:
		kind = n.Kind()
	default:
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent(depth), kind)

	elem := v
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if !field.CanInterface() {
			continue
		}
		switch {
		case field.Type().Implements(boundExprType), field.Type().Implements(boundStmtType):
			dumpBoundNode(w, field, depth+1)
		case field.Kind() == reflect.Slice && (field.Type().Elem().Implements(boundExprType) || field.Type().Elem().Implements(boundStmtType)):
			for j := 0; j < field.Len(); j++ {
				dumpBoundNode(w, field.Index(j), depth+1)
			}
		}
	}
}

func indent(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
