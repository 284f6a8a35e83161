package tools

import (
	"sort"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// CheckUnused walks every bound function/constructor body plus the global
// statement list, collecting every variable and function reference, then
// warns (via diags) about any global variable or user function that is
// declared but never referenced (a variable read or assigned, a function
// called). It never gates compilation; callers
// wire it in behind an opt-in flag as a separate pass.
func CheckUnused(diags *diagnostics.Bag, globalScope *binding.BoundGlobalScope, program *binding.BoundProgram) {
	usedVars := map[*binding.VariableSymbol]bool{}
	usedFuncs := map[*binding.FunctionSymbol]bool{}

	collect := func(body *binding.BoundBlockStatement) {
		if body == nil {
			return
		}
		r := &binding.BoundTreeRewriter{
			RewriteExpression: func(e binding.BoundExpression) binding.BoundExpression {
				switch n := e.(type) {
				case *binding.BoundVariableExpression:
					usedVars[n.Variable] = true
				case *binding.BoundAssignmentExpression:
					usedVars[n.Variable] = true
				case *binding.BoundCompoundAssignmentExpression:
					usedVars[n.Variable] = true
				case *binding.BoundCallExpression:
					usedFuncs[n.Function] = true
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

	for _, v := range globalScope.Variables {
		if !usedVars[v] {
			diags.Warn(source.Location{}, diagnostics.UnusedVariable, "global variable %q is declared but never used", v.Name)
		}
	}
	for _, fn := range globalScope.Functions {
		if fn == globalScope.MainFunction || fn.IsBuiltin {
			continue
		}
		if !usedFuncs[fn] {
			diags.Warn(source.Location{}, diagnostics.UnusedFunction, "function %q is declared but never called", fn.Name)
		}
	}
}

// UnusedReport extracts and sorts the messages CheckUnused appended to d,
// for callers (the CLI's `-unused` flag) that want to print just these
// warnings separately from the rest of a diagnostics.Bag.
func UnusedReport(d *diagnostics.Bag) []string {
	var msgs []string
	for _, diag := range d.All() {
		if diag.Kind == diagnostics.UnusedVariable || diag.Kind == diagnostics.UnusedFunction {
			msgs = append(msgs, diag.Message)
		}
	}
	sort.Strings(msgs)
	return msgs
}
