// Package lowering desugars structured control flow (if/while/do-while/for,
// break/continue, compound assignment) into the flat label-and-goto form
// the CFG analyzer and any downstream emitter consume.
package lowering

import (
	"fmt"

	"github.com/lookbusy1344/mlang/binding"
)

// lowerer rewrites one function body. Its label counter is per-function so
// that generated names stay short and readable in diagnostics.
type lowerer struct {
	labelCounter int
}

func (l *lowerer) newLabel(prefix string) *binding.BoundLabel {
	l.labelCounter++
	return &binding.BoundLabel{Name: fmt.Sprintf("%s%d", prefix, l.labelCounter)}
}

// Lower rewrites every function body in program into its flattened form,
// in place conceptually but returning fresh maps (bound nodes are treated
// as immutable once produced by the binder).
func Lower(program *binding.BoundProgram) *binding.BoundProgram {
	out := &binding.BoundProgram{
		Previous:     program.Previous,
		Diagnostics:  program.Diagnostics,
		MainFunction: program.MainFunction,
		Functions:    map[*binding.FunctionSymbol]*binding.BoundBlockStatement{},
		Classes:      program.Classes,
	}
	for fn, body := range program.Functions {
		l := &lowerer{}
		out.Functions[fn] = l.lowerBlock(body)
	}
	return out
}

func (l *lowerer) lowerBlock(b *binding.BoundBlockStatement) *binding.BoundBlockStatement {
	stmts := l.lowerStatement(b)
	return &binding.BoundBlockStatement{Statements: flattenNops(stmts)}
}

// lowerStatement returns the (possibly multi-statement) flattened form of
// s. Most statement kinds lower to exactly one entry; If/While/DoWhile/For
// expand to several.
func (l *lowerer) lowerStatement(s binding.BoundStatement) []binding.BoundStatement {
	switch st := s.(type) {
	case *binding.BoundSequencePointStatement:
		lowered := l.lowerStatement(st.Statement)
		if len(lowered) == 0 {
			return lowered
		}
		lowered[0] = &binding.BoundSequencePointStatement{Statement: lowered[0], Location: st.Location}
		return lowered

	case *binding.BoundBlockStatement:
		// Blocks are spliced into the enclosing statement list rather than
		// kept as nested nodes: scoping was resolved during binding, and the
		// CFG builder wants one flat instruction stream.
		var stmts []binding.BoundStatement
		for _, inner := range st.Statements {
			stmts = append(stmts, l.lowerStatement(inner)...)
		}
		return stmts

	case *binding.BoundVariableDeclaration:
		return []binding.BoundStatement{&binding.BoundVariableDeclaration{
			Variable: st.Variable, Initializer: l.lowerExpressionForEffect(st.Initializer),
		}}

	case *binding.BoundIfStatement:
		return l.lowerIf(st)

	case *binding.BoundWhileStatement:
		return l.lowerWhile(st)

	case *binding.BoundDoWhileStatement:
		return l.lowerDoWhile(st)

	case *binding.BoundForStatement:
		return l.lowerFor(st)

	case *binding.BoundBreakStatement:
		return []binding.BoundStatement{&binding.BoundGotoStatement{Label: st.Label}}

	case *binding.BoundContinueStatement:
		return []binding.BoundStatement{&binding.BoundGotoStatement{Label: st.Label}}

	case *binding.BoundReturnStatement:
		return []binding.BoundStatement{&binding.BoundReturnStatement{Expression: l.lowerExpression(st.Expression)}}

	case *binding.BoundExpressionStatement:
		return []binding.BoundStatement{&binding.BoundExpressionStatement{Expression: l.lowerExpressionForEffect(st.Expression)}}

	default:
		return []binding.BoundStatement{s}
	}
}

// lowerCondition lowers a boolean expression into conditional-jump code
// that transfers control to trueLabel when it evaluates true and to
// falseLabel otherwise. && and || are expanded recursively into their own
// jump targets rather than evaluated to a value first, so the right
// operand's jump code is only ever reached once the left operand has
// already decided the outcome isn't possible without it — real
// short-circuiting, not bitwise and/or. Any other boolean expression
// falls back to one evaluation plus a pair of jumps.
func (l *lowerer) lowerCondition(e binding.BoundExpression, trueLabel, falseLabel *binding.BoundLabel) []binding.BoundStatement {
	if bin, ok := e.(*binding.BoundBinaryExpression); ok {
		switch bin.Op.Kind {
		case binding.BinaryLogicalAnd:
			rhsLabel := l.newLabel("andRHS")
			out := l.lowerCondition(bin.Left, rhsLabel, falseLabel)
			out = append(out, &binding.BoundLabelStatement{Label: rhsLabel})
			return append(out, l.lowerCondition(bin.Right, trueLabel, falseLabel)...)
		case binding.BinaryLogicalOr:
			rhsLabel := l.newLabel("orRHS")
			out := l.lowerCondition(bin.Left, trueLabel, rhsLabel)
			out = append(out, &binding.BoundLabelStatement{Label: rhsLabel})
			return append(out, l.lowerCondition(bin.Right, trueLabel, falseLabel)...)
		}
	}
	cond := l.lowerExpression(e)
	return []binding.BoundStatement{
		&binding.BoundConditionalGotoStatement{Label: trueLabel, Condition: cond, JumpIfTrue: true},
		&binding.BoundGotoStatement{Label: falseLabel},
	}
}

// lowerIf rewrites `if (c) then [else els]` into:
//
//	<jump code: true->thenLabel, false->elseLabel>
//	thenLabel:
//	<then>
//	goto endLabel
//	elseLabel:
//	<else>
//	endLabel:
//
// The else-less form drops the else block and its jump,
// targeting endLabel directly on the false edge.
func (l *lowerer) lowerIf(st *binding.BoundIfStatement) []binding.BoundStatement {
	thenLabel := l.newLabel("ifThen")
	if st.Else == nil {
		endLabel := l.newLabel("ifEnd")
		out := l.lowerCondition(st.Condition, thenLabel, endLabel)
		out = append(out, &binding.BoundLabelStatement{Label: thenLabel})
		out = append(out, l.lowerStatement(st.Then)...)
		out = append(out, &binding.BoundLabelStatement{Label: endLabel})
		return out
	}
	elseLabel := l.newLabel("ifElse")
	endLabel := l.newLabel("ifEnd")
	out := l.lowerCondition(st.Condition, thenLabel, elseLabel)
	out = append(out, &binding.BoundLabelStatement{Label: thenLabel})
	out = append(out, l.lowerStatement(st.Then)...)
	out = append(out, &binding.BoundGotoStatement{Label: endLabel})
	out = append(out, &binding.BoundLabelStatement{Label: elseLabel})
	out = append(out, l.lowerStatement(st.Else)...)
	out = append(out, &binding.BoundLabelStatement{Label: endLabel})
	return out
}

// lowerWhile rewrites `while (c) body` into:
//
//	continueLabel:
//	<jump code: true->bodyLabel, false->breakLabel>
//	bodyLabel:
//	<body>
//	goto continueLabel
//	breakLabel:
func (l *lowerer) lowerWhile(st *binding.BoundWhileStatement) []binding.BoundStatement {
	bodyLabel := l.newLabel("whileBody")
	out := []binding.BoundStatement{&binding.BoundLabelStatement{Label: st.ContinueLabel}}
	out = append(out, l.lowerCondition(st.Condition, bodyLabel, st.BreakLabel)...)
	out = append(out, &binding.BoundLabelStatement{Label: bodyLabel})
	out = append(out, l.lowerStatement(st.Body)...)
	out = append(out, &binding.BoundGotoStatement{Label: st.ContinueLabel})
	out = append(out, &binding.BoundLabelStatement{Label: st.BreakLabel})
	return out
}

// lowerDoWhile rewrites `do body while (c);` into:
//
//	bodyLabel:
//	<body>
//	continueLabel:
//	<jump code: true->bodyLabel, false->breakLabel>
//	breakLabel:
func (l *lowerer) lowerDoWhile(st *binding.BoundDoWhileStatement) []binding.BoundStatement {
	bodyLabel := l.newLabel("doBody")
	out := []binding.BoundStatement{&binding.BoundLabelStatement{Label: bodyLabel}}
	out = append(out, l.lowerStatement(st.Body)...)
	out = append(out, &binding.BoundLabelStatement{Label: st.ContinueLabel})
	out = append(out, l.lowerCondition(st.Condition, bodyLabel, st.BreakLabel)...)
	out = append(out, &binding.BoundLabelStatement{Label: st.BreakLabel})
	return out
}

// lowerFor rewrites `for v in lower..upper do body` into an equivalent
// while-loop over an upper-bound-cached local plus an increment
//: the upper bound is evaluated once into a hidden var so a
// mutating upper-bound expression can't change the loop's trip count.
func (l *lowerer) lowerFor(st *binding.BoundForStatement) []binding.BoundStatement {
	upperVar := &binding.VariableSymbol{Name: "<upperBound>", Type: st.Variable.Type, Kind: binding.LocalVariable}

	initVar := &binding.BoundVariableDeclaration{Variable: st.Variable, Initializer: l.lowerExpression(st.LowerBound)}
	initUpper := &binding.BoundVariableDeclaration{Variable: upperVar, Initializer: l.lowerExpression(st.UpperBound)}

	lessOrEqual := binding.BoundBinaryOperator{Kind: binding.BinaryLessOrEquals, ResultType: boolType()}
	condition := &binding.BoundBinaryExpression{
		Left: &binding.BoundVariableExpression{Variable: st.Variable}, Op: lessOrEqual,
		Right: &binding.BoundVariableExpression{Variable: upperVar},
	}

	increment := &binding.BoundAssignmentExpression{
		Variable: st.Variable,
		Expression: &binding.BoundBinaryExpression{
			Left:  &binding.BoundVariableExpression{Variable: st.Variable},
			Op:    binding.BoundBinaryOperator{Kind: binding.BinaryAddition, ResultType: st.Variable.Type},
			Right: &binding.BoundLiteralExpression{ValueType: st.Variable.Type, Value: oneOf(st.Variable.Type)},
		},
	}

	loopStart := l.newLabel("forBody")

	result := []binding.BoundStatement{initVar, initUpper}
	result = append(result, l.lowerCondition(condition, loopStart, st.BreakLabel)...)
	result = append(result, &binding.BoundLabelStatement{Label: loopStart})
	result = append(result, l.lowerStatement(st.Body)...)
	result = append(result, &binding.BoundLabelStatement{Label: st.ContinueLabel})
	result = append(result, &binding.BoundExpressionStatement{Expression: increment})
	result = append(result, l.lowerCondition(condition, loopStart, st.BreakLabel)...)
	result = append(result, &binding.BoundLabelStatement{Label: st.BreakLabel})
	return result
}

func boolType() *binding.TypeSymbol { return binding.TypeBool }

func oneOf(t *binding.TypeSymbol) any {
	switch t {
	case binding.TypeInt8:
		return int8(1)
	case binding.TypeInt16:
		return int16(1)
	case binding.TypeInt32:
		return int32(1)
	case binding.TypeInt64:
		return int64(1)
	case binding.TypeUInt8:
		return uint8(1)
	case binding.TypeUInt16:
		return uint16(1)
	case binding.TypeUInt32:
		return uint32(1)
	case binding.TypeUInt64:
		return uint64(1)
	default:
		return int32(1)
	}
}

// lowerExpression lowers an expression, rewriting compound assignment into
// its expanded binary-operator form and flattening nested
// string concatenation chains into a single left-fold.
func (l *lowerer) lowerExpression(e binding.BoundExpression) binding.BoundExpression {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *binding.BoundCompoundAssignmentExpression:
		return &binding.BoundAssignmentExpression{
			Variable: ex.Variable,
			Expression: &binding.BoundBinaryExpression{
				Left:  &binding.BoundVariableExpression{Variable: ex.Variable},
				Op:    ex.Op,
				Right: l.lowerExpression(ex.Expression),
			},
		}
	case *binding.BoundCompoundFieldAssignmentExpression:
		return &binding.BoundFieldAssignmentExpression{
			Target: ex.Target, Field: ex.Field,
			Expression: &binding.BoundBinaryExpression{
				Left:  &binding.BoundFieldAccessExpression{Target: ex.Target, Field: ex.Field},
				Op:    ex.Op,
				Right: l.lowerExpression(ex.Expression),
			},
		}
	case *binding.BoundBinaryExpression:
		if ex.Op.Kind == binding.BinaryAddition && ex.Op.ResultType == binding.TypeString {
			return l.lowerConcat(ex)
		}
		left, right := l.lowerExpression(ex.Left), l.lowerExpression(ex.Right)
		return &binding.BoundBinaryExpression{Left: left, Op: ex.Op, Right: right, Constant_: ex.Constant_}
	case *binding.BoundUnaryExpression:
		return &binding.BoundUnaryExpression{Op: ex.Op, Operand: l.lowerExpression(ex.Operand), Constant_: ex.Constant_}
	case *binding.BoundConversionExpression:
		return binding.NewConversion(ex.ToType, l.lowerExpression(ex.Expression))
	case *binding.BoundAssignmentExpression:
		return &binding.BoundAssignmentExpression{Variable: ex.Variable, Expression: l.lowerExpression(ex.Expression)}
	case *binding.BoundFieldAssignmentExpression:
		return &binding.BoundFieldAssignmentExpression{Target: ex.Target, Field: ex.Field, Expression: l.lowerExpression(ex.Expression)}
	case *binding.BoundCallExpression:
		args := make([]binding.BoundExpression, len(ex.Arguments))
		for i, a := range ex.Arguments {
			args[i] = l.lowerExpression(a)
		}
		return &binding.BoundCallExpression{Function: ex.Function, Receiver: ex.Receiver, Arguments: args}
	default:
		return e
	}
}

func (l *lowerer) lowerExpressionForEffect(e binding.BoundExpression) binding.BoundExpression {
	return l.lowerExpression(e)
}

// lowerConcat flattens an arbitrarily nested chain of string `+` additions
// into its operand list — not just the immediate left/right of one node —
// lowers each operand, folds adjacent constant-string operands together,
// and rebuilds a left-associated chain from whatever's left, so
// "(a + b) + c" with b and c constant becomes the equivalent of [a, "bc"].
func (l *lowerer) lowerConcat(ex *binding.BoundBinaryExpression) binding.BoundExpression {
	var operands []binding.BoundExpression
	var collect func(e binding.BoundExpression)
	collect = func(e binding.BoundExpression) {
		if b, ok := e.(*binding.BoundBinaryExpression); ok && b.Op.Kind == binding.BinaryAddition && b.Op.ResultType == binding.TypeString {
			collect(b.Left)
			collect(b.Right)
			return
		}
		operands = append(operands, l.lowerExpression(e))
	}
	collect(ex)

	folded := operands[:0]
	for _, op := range operands {
		if len(folded) > 0 {
			if merged, ok := mergeConstantStrings(folded[len(folded)-1], op); ok {
				folded[len(folded)-1] = merged
				continue
			}
		}
		folded = append(folded, op)
	}

	result := folded[0]
	for _, op := range folded[1:] {
		result = &binding.BoundBinaryExpression{
			Left:  result,
			Op:    binding.BoundBinaryOperator{Kind: binding.BinaryAddition, ResultType: binding.TypeString},
			Right: op,
		}
	}
	return result
}

// mergeConstantStrings folds a and b into one string literal when both are
// compile-time constant strings.
func mergeConstantStrings(a, b binding.BoundExpression) (binding.BoundExpression, bool) {
	ac, bc := a.Constant(), b.Constant()
	if ac == nil || bc == nil {
		return nil, false
	}
	as, aok := ac.Value.(string)
	bs, bok := bc.Value.(string)
	if !aok || !bok {
		return nil, false
	}
	return &binding.BoundLiteralExpression{ValueType: binding.TypeString, Value: as + bs}, true
}

// flattenNops drops the BoundNopStatement placeholders the binder leaves
// for statements it could not bind,
// keeping the final block's statement list clean for the CFG builder.
func flattenNops(stmts []binding.BoundStatement) []binding.BoundStatement {
	out := stmts[:0]
	for _, s := range stmts {
		if _, ok := s.(*binding.BoundNopStatement); ok {
			continue
		}
		out = append(out, s)
	}
	return out
}
