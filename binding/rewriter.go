package binding

// BoundTreeRewriter walks a bound tree, rebuilding every node it visits
// unless a hook is set to replace it. Every node kind is by default
// rebuilt from its already-rewritten children; set a hook field
// to intercept a specific node kind without having to special-case the rest
// of the tree. The lowerer does not use this (it desugars structured control
// flow into an entirely different statement shape, which a generic
// child-rewriting walk does not model well); this is for passes that need to
// visit every node but only act on a few kinds, e.g. the xref tool's
// variable-reference collector and the lint tool's unused-symbol walk.
type BoundTreeRewriter struct {
	// RewriteExpression, if set, is called with the already-rewritten
	// expression before RewriteBody returns it. Use it to record or replace
	// specific expression kinds.
	RewriteExpression func(BoundExpression) BoundExpression

	// RewriteStatement, if set, is called with the already-rewritten
	// statement before RewriteBody returns it.
	RewriteStatement func(BoundStatement) BoundStatement
}

func (r *BoundTreeRewriter) expr(e BoundExpression) BoundExpression {
	if e == nil {
		return nil
	}
	var out BoundExpression
	switch n := e.(type) {
	case *BoundErrorExpression, *BoundLiteralExpression, *BoundVariableExpression, *BoundThisExpression:
		out = n
	case *BoundAssignmentExpression:
		out = &BoundAssignmentExpression{Variable: n.Variable, Expression: r.expr(n.Expression)}
	case *BoundUnaryExpression:
		out = &BoundUnaryExpression{Op: n.Op, Operand: r.expr(n.Operand), Constant_: n.Constant_}
	case *BoundBinaryExpression:
		out = &BoundBinaryExpression{Left: r.expr(n.Left), Op: n.Op, Right: r.expr(n.Right), Constant_: n.Constant_}
	case *BoundCallExpression:
		args := make([]BoundExpression, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = r.expr(a)
		}
		out = &BoundCallExpression{Function: n.Function, Receiver: r.expr(n.Receiver), Arguments: args}
	case *BoundConversionExpression:
		out = NewConversion(n.ToType, r.expr(n.Expression))
	case *BoundFieldAccessExpression:
		out = &BoundFieldAccessExpression{Target: r.expr(n.Target), Field: n.Field}
	case *BoundFieldAssignmentExpression:
		out = &BoundFieldAssignmentExpression{Target: r.expr(n.Target), Field: n.Field, Expression: r.expr(n.Expression)}
	case *BoundCompoundAssignmentExpression:
		out = &BoundCompoundAssignmentExpression{Variable: n.Variable, Op: n.Op, Expression: r.expr(n.Expression)}
	case *BoundCompoundFieldAssignmentExpression:
		out = &BoundCompoundFieldAssignmentExpression{Target: r.expr(n.Target), Field: n.Field, Op: n.Op, Expression: r.expr(n.Expression)}
	default:
		out = n
	}
	if r.RewriteExpression != nil {
		out = r.RewriteExpression(out)
	}
	return out
}

func (r *BoundTreeRewriter) stmt(s BoundStatement) BoundStatement {
	if s == nil {
		return nil
	}
	var out BoundStatement
	switch n := s.(type) {
	case *BoundBlockStatement:
		stmts := make([]BoundStatement, len(n.Statements))
		for i, st := range n.Statements {
			stmts[i] = r.stmt(st)
		}
		out = &BoundBlockStatement{Statements: stmts}
	case *BoundVariableDeclaration:
		out = &BoundVariableDeclaration{Variable: n.Variable, Initializer: r.expr(n.Initializer)}
	case *BoundIfStatement:
		out = &BoundIfStatement{Condition: r.expr(n.Condition), Then: r.stmt(n.Then), Else: r.stmt(n.Else)}
	case *BoundWhileStatement:
		out = &BoundWhileStatement{
			Condition: r.expr(n.Condition), Body: r.stmt(n.Body),
			BreakLabel: n.BreakLabel, ContinueLabel: n.ContinueLabel,
		}
	case *BoundDoWhileStatement:
		out = &BoundDoWhileStatement{
			Body: r.stmt(n.Body), Condition: r.expr(n.Condition),
			BreakLabel: n.BreakLabel, ContinueLabel: n.ContinueLabel,
		}
	case *BoundForStatement:
		out = &BoundForStatement{
			Variable: n.Variable, LowerBound: r.expr(n.LowerBound), UpperBound: r.expr(n.UpperBound),
			Body: r.stmt(n.Body), BreakLabel: n.BreakLabel, ContinueLabel: n.ContinueLabel,
		}
	case *BoundConditionalGotoStatement:
		out = &BoundConditionalGotoStatement{Label: n.Label, Condition: r.expr(n.Condition), JumpIfTrue: n.JumpIfTrue}
	case *BoundReturnStatement:
		out = &BoundReturnStatement{Expression: r.expr(n.Expression)}
	case *BoundExpressionStatement:
		out = &BoundExpressionStatement{Expression: r.expr(n.Expression)}
	case *BoundSequencePointStatement:
		out = &BoundSequencePointStatement{Statement: r.stmt(n.Statement), Location: n.Location}
	case *BoundLabelStatement, *BoundGotoStatement, *BoundNopStatement, *BoundBreakStatement, *BoundContinueStatement:
		out = n
	default:
		out = n
	}
	if r.RewriteStatement != nil {
		out = r.RewriteStatement(out)
	}
	return out
}

// RewriteBody runs the rewriter over a whole function body and returns the
// (possibly unchanged, if no hook replaced anything) rebuilt block.
func (r *BoundTreeRewriter) RewriteBody(body *BoundBlockStatement) *BoundBlockStatement {
	if body == nil {
		return nil
	}
	return r.stmt(body).(*BoundBlockStatement)
}
