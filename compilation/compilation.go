// Package compilation wires the pipeline stages — lex, parse, bind global
// scope, bind program, lower — into the single entry point every other
// package (CLI, API, TUI) drives the front end through.
package compilation

import (
	"sync"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/builtins"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/lowering"
	"github.com/lookbusy1344/mlang/source"
	"github.com/lookbusy1344/mlang/syntax"
)

// Compilation is one bound, lowered program plus the trees it came from. A
// Compilation never mutates after Compile returns; incremental recompiles
// chain a new Compilation onto Previous the way the binder's scope chaining
// does, rather than mutating this one in place.
type Compilation struct {
	Previous *Compilation
	Trees    []*syntax.Tree

	GlobalScope *binding.BoundGlobalScope
	Program     *binding.BoundProgram
}

// mu serializes compiles: a compile request holds the lock for its whole
// run, so two overlapping
// `-serve` requests never bind two trees against the same mutable scope
// state concurrently (there is none today, but the lock is the contract
// the API layer is written against).
var mu sync.Mutex

// New builds a fresh, unbound Compilation over trees, optionally chained
// onto previous for incremental/script-style recompilation.
func New(previous *Compilation, trees ...*syntax.Tree) *Compilation {
	return &Compilation{Previous: previous, Trees: trees}
}

// Compile runs every remaining stage — global scope binding, program
// binding, lowering — and returns the result together with the union of
// every stage's diagnostics, in pipeline order. Nothing short-circuits
// on an earlier stage's errors; binding still runs over whatever partial
// tree the parser produced.
func (c *Compilation) Compile() (*binding.BoundProgram, *diagnostics.Bag) {
	mu.Lock()
	defer mu.Unlock()

	diags := &diagnostics.Bag{}
	for _, tree := range c.Trees {
		diags.AddRange(tree.Diags)
	}

	var previousGlobalScope *binding.BoundGlobalScope
	var previousProgram *binding.BoundProgram
	if c.Previous != nil {
		previousGlobalScope = c.Previous.GlobalScope
		previousProgram = c.Previous.Program
	}

	c.GlobalScope = binding.BindGlobalScope(previousGlobalScope, builtins.All(), c.Trees)
	// program.Diagnostics already carries the global scope's diagnostics.

	program := binding.BindProgram(previousProgram, c.GlobalScope)
	diags.AddRange(program.Diagnostics)

	if !diags.HasErrors() {
		program = lowering.Lower(program)
		for fn, body := range program.Functions {
			lowering.CheckUnreachable(diags, body)
			if fn.ReturnType != binding.TypeVoid && fn.Declaration != nil && !lowering.AllPathsReturn(body) {
				diags.Report(fn.Declaration.Identifier.Location, diagnostics.AllPathsMustReturn,
					"not all code paths of %q return a value", fn.Name)
			}
		}
	}
	if diags.HasErrors() {
		// Emission is gated here; a failed compile hands downstream
		// consumers empty function/class maps rather than a half-lowered
		// tree.
		program = &binding.BoundProgram{
			Previous:     program.Previous,
			Diagnostics:  program.Diagnostics,
			MainFunction: program.MainFunction,
			Functions:    map[*binding.FunctionSymbol]*binding.BoundBlockStatement{},
			Classes:      map[*binding.ClassSymbol]*binding.BoundBlockStatement{},
		}
	}
	c.Program = program

	return program, diags
}

// CompileSources is the convenience entry point the CLI/API/TUI use: parse
// every source blob, then run Compile.
func CompileSources(previous *Compilation, sources ...*source.Text) (*Compilation, *binding.BoundProgram, *diagnostics.Bag) {
	trees := make([]*syntax.Tree, len(sources))
	for i, s := range sources {
		trees[i] = syntax.Parse(s)
	}
	c := New(previous, trees...)
	program, diags := c.Compile()
	return c, program, diags
}
