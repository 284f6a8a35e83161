package lowering

import (
	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// basicBlock is a maximal straight-line run of statements: control only
// ever enters at the first statement and leaves after the last. Gotos,
// conditional gotos, returns, and labels are the only statements that end
// or start a block.
type basicBlock struct {
	statements []binding.BoundStatement
}

// flattenStatements inlines any nested BoundBlockStatement in place, so the
// CFG builder sees one flat instruction stream to split into basic blocks.
// The lowerer already splices nested blocks into their parent, so on a
// lowered body this finds nothing to inline.
func flattenStatements(stmts []binding.BoundStatement) []binding.BoundStatement {
	var out []binding.BoundStatement
	for _, s := range stmts {
		if b, ok := s.(*binding.BoundBlockStatement); ok {
			out = append(out, flattenStatements(b.Statements)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// buildBlocks splits a lowered function body into basic blocks, the way a
// disassembler groups instructions between branch targets.
func buildBlocks(body *binding.BoundBlockStatement) []*basicBlock {
	var blocks []*basicBlock
	cur := &basicBlock{}
	flush := func() {
		if len(cur.statements) > 0 {
			blocks = append(blocks, cur)
		}
		cur = &basicBlock{}
	}
	for _, raw := range flattenStatements(body.Statements) {
		// Classify through any sequence-point wrapper: a wrapped label or
		// jump must still split blocks or the graph's edges go missing.
		s, _ := binding.UnwrapSequencePoint(raw)
		if _, isLabel := s.(*binding.BoundLabelStatement); isLabel {
			flush()
		}
		cur.statements = append(cur.statements, raw)
		switch s.(type) {
		case *binding.BoundGotoStatement, *binding.BoundConditionalGotoStatement, *binding.BoundReturnStatement:
			flush()
		}
	}
	flush()
	return blocks
}

// firstStatement and lastStatement return b's first/last statement with
// any sequence-point wrapper stripped; lastStatement's kind decides how
// control leaves the block.
func (b *basicBlock) firstStatement() binding.BoundStatement {
	if len(b.statements) == 0 {
		return nil
	}
	s, _ := binding.UnwrapSequencePoint(b.statements[0])
	return s
}

func (b *basicBlock) lastStatement() binding.BoundStatement {
	if len(b.statements) == 0 {
		return nil
	}
	s, _ := binding.UnwrapSequencePoint(b.statements[len(b.statements)-1])
	return s
}

// location returns the first usable source location among b's statements,
// skipping labels and jumps (which carry none) so a diagnostic anchors on
// real user code rather than a synthesized control-flow marker.
func (b *basicBlock) location() source.Location {
	for _, s := range b.statements {
		if _, loc := binding.UnwrapSequencePoint(s); loc != (source.Location{}) {
			return loc
		}
	}
	return source.Location{}
}

// staticBool reports the compile-time constant bool value of cond, if any.
func staticBool(cond binding.BoundExpression) (value bool, isConstant bool) {
	c := cond.Constant()
	if c == nil {
		return false, false
	}
	v, ok := c.Value.(bool)
	return v, ok
}

// blockGraph is a basic-block control-flow graph: successors[i] holds
// every block i can transfer control to directly. The two analyses want
// different edge semantics for conditional gotos, selected by constAware:
// unreachable-code detection follows only the edge a statically-constant
// condition can actually take, while the all-paths-return proof keeps both
// edges regardless — `if true { return 1 }` still has a fall-through path
// as far as the return checker is concerned.
type blockGraph struct {
	blocks     []*basicBlock
	successors [][]int
}

// buildGraph computes the successor edges for blocks.
func buildGraph(blocks []*basicBlock, constAware bool) *blockGraph {
	labelIndex := map[*binding.BoundLabel]int{}
	for i, b := range blocks {
		if lbl, ok := b.firstStatement().(*binding.BoundLabelStatement); ok {
			labelIndex[lbl.Label] = i
		}
	}

	g := &blockGraph{blocks: blocks, successors: make([][]int, len(blocks))}
	for i, b := range blocks {
		next, hasNext := i+1, i+1 < len(blocks)
		switch st := b.lastStatement().(type) {
		case *binding.BoundGotoStatement:
			if target, ok := labelIndex[st.Label]; ok {
				g.successors[i] = []int{target}
			}
		case *binding.BoundConditionalGotoStatement:
			target, hasTarget := labelIndex[st.Label]
			if v, isConst := staticBool(st.Condition); isConst && constAware {
				switch {
				case v == st.JumpIfTrue && hasTarget:
					g.successors[i] = []int{target}
				case v != st.JumpIfTrue && hasNext:
					g.successors[i] = []int{next}
				}
				continue
			}
			var succ []int
			if hasTarget {
				succ = append(succ, target)
			}
			if hasNext {
				succ = append(succ, next)
			}
			g.successors[i] = succ
		case *binding.BoundReturnStatement:
			// Reaches the function's exit, never the next block.
		default:
			if hasNext {
				g.successors[i] = []int{next}
			}
		}
	}
	return g
}

// reachable returns the set of block indices reachable from block 0 (the
// function's entry) by following successor edges.
func (g *blockGraph) reachable() map[int]bool {
	seen := map[int]bool{}
	if len(g.blocks) == 0 {
		return seen
	}
	stack := []int{0}
	seen[0] = true
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range g.successors[n] {
			if !seen[succ] {
				seen[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return seen
}

// AllPathsReturn reports whether every execution path through body ends
// in a return statement: it walks the basic block graph from the entry
// block and fails only if some reachable block falls off the end of the
// function without returning. The walk deliberately ignores constant
// conditions (`if true { return 1 }` keeps its structural fall-through
// edge and is still rejected), but a dangling post-merge label block both
// branches jump over (`if c { return 1 } else { return 2 }`) has no
// incoming edge at all and drops out of the reachable set, so it never
// counts as a fall-through path.
func AllPathsReturn(body *binding.BoundBlockStatement) bool {
	blocks := buildBlocks(body)
	if len(blocks) == 0 {
		return false
	}
	g := buildGraph(blocks, false)
	reachable := g.reachable()
	for i, b := range blocks {
		if !reachable[i] || len(g.successors[i]) > 0 {
			continue
		}
		if _, ok := b.lastStatement().(*binding.BoundReturnStatement); !ok {
			return false
		}
	}
	return true
}

// CheckUnreachable reports UnreachableCode for every basic block the CFG
// proves can never be reached from the function's entry: dead code after
// an unconditional return/goto, and the untaken branch of a
// statically-constant `if`/`while`/`for` condition. Both surface as a
// block with no live predecessor in the same kind of reachability walk
// AllPathsReturn runs, so one pass catches both.
func CheckUnreachable(diags *diagnostics.Bag, body *binding.BoundBlockStatement) {
	blocks := buildBlocks(body)
	if len(blocks) == 0 {
		return
	}
	g := buildGraph(blocks, true)
	reachable := g.reachable()
	for i := 0; i < len(blocks); {
		if reachable[i] {
			i++
			continue
		}
		// One diagnostic per contiguous unreachable run, anchored at the
		// first block carrying user code. A run of nothing but synthesized
		// labels and jumps (the dead Goto after a constant-true branch, a
		// dangling merge label) has no location worth pointing at and stays
		// silent.
		var loc source.Location
		for ; i < len(blocks) && !reachable[i]; i++ {
			if loc == (source.Location{}) {
				loc = blocks[i].location()
			}
		}
		if loc != (source.Location{}) {
			diags.Warn(loc, diagnostics.UnreachableCode, "unreachable code")
		}
	}
}
