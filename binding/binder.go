package binding

import (
	"fmt"

	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
	"github.com/lookbusy1344/mlang/syntax"
)

// loopLabels is the break/continue target pair pushed onto a binder's loop
// stack while binding the body of a while/do-while/for statement.
type loopLabels struct {
	Break    *BoundLabel
	Continue *BoundLabel
}

// binder binds one function body (or the synthesized Main's global
// statements) against a scope chain. Its mutable cursor state — scope,
// loopStack, labelCounter — is confined to a single binding pass;
// nothing here is shared across concurrent binds.
type binder struct {
	diags        *diagnostics.Bag
	scope        *BoundScope
	topScope     *BoundScope // the scope global statements are declared directly into
	function     *FunctionSymbol
	receiver     *ClassSymbol
	loopStack    []loopLabels
	labelCounter int
}

func newBinder(diags *diagnostics.Bag, scope *BoundScope, function *FunctionSymbol, receiver *ClassSymbol) *binder {
	return &binder{diags: diags, scope: scope, topScope: scope, function: function, receiver: receiver}
}

func (b *binder) newLabel(prefix string) *BoundLabel {
	b.labelCounter++
	return &BoundLabel{Name: fmt.Sprintf("%s%d", prefix, b.labelCounter)}
}

// --- statements ---

func (b *binder) bindStatement(stmt syntax.Statement) BoundStatement {
	switch s := stmt.(type) {
	case *syntax.BlockStatement:
		return b.bindBlockStatement(s)
	case *syntax.VariableDeclaration:
		return b.bindVariableDeclaration(s)
	case *syntax.IfStatement:
		return b.bindIfStatement(s)
	case *syntax.WhileStatement:
		return b.bindWhileStatement(s)
	case *syntax.DoWhileStatement:
		return b.bindDoWhileStatement(s)
	case *syntax.ForStatement:
		return b.bindForStatement(s)
	case *syntax.BreakStatement:
		return b.bindBreakStatement(s)
	case *syntax.ContinueStatement:
		return b.bindContinueStatement(s)
	case *syntax.ReturnStatement:
		return b.bindReturnStatement(s)
	case *syntax.ExpressionStatement:
		return b.bindExpressionStatement(s)
	default:
		return &BoundNopStatement{}
	}
}

func (b *binder) bindBlockStatement(s *syntax.BlockStatement) BoundStatement {
	outer := b.scope
	b.scope = NewBoundScope(outer)
	defer func() { b.scope = outer }()

	stmts := make([]BoundStatement, 0, len(s.Statements))
	for _, inner := range s.Statements {
		stmts = append(stmts, b.bindStatement(inner))
	}
	return &BoundBlockStatement{Statements: stmts}
}

func (b *binder) bindVariableDeclaration(s *syntax.VariableDeclaration) BoundStatement {
	var declaredType *TypeSymbol
	if s.TypeClause != nil {
		declaredType = resolveTypeToken(b.scope, b.diags, s.TypeClause.TypeTok)
	}

	var initializer BoundExpression
	if s.Initializer != nil {
		initializer = b.bindExpression(s.Initializer)
	}

	varType := declaredType
	switch {
	case varType == nil && initializer != nil:
		varType = initializer.Type()
	case varType == nil:
		varType = TypeObject
	case initializer != nil:
		initializer = b.convertImplicit(initializer, varType, s.Initializer.Location())
	}

	if initializer == nil {
		initializer = &BoundLiteralExpression{ValueType: varType, Value: varType.Default}
	}

	kind := LocalVariable
	if b.scope == b.topScope {
		kind = GlobalVariable
	}

	variable := &VariableSymbol{
		Name: s.Identifier.Text, Type: varType, IsReadOnly: s.IsConst, Kind: kind,
	}
	if s.IsConst {
		variable.Constant = initializer.Constant()
	}
	if !b.scope.TryDeclare(variable) {
		b.diags.Report(s.Identifier.Location, diagnostics.SymbolAlreadyDeclared, "%q is already declared", s.Identifier.Text)
	}
	return &BoundVariableDeclaration{Variable: variable, Initializer: initializer}
}

// bindConditionExpression binds an expression that must be bool, inserting
// an implicit conversion where possible.
func (b *binder) bindConditionExpression(syn syntax.Expression) BoundExpression {
	cond := b.bindExpression(syn)
	return b.convertImplicit(cond, TypeBool, syn.Location())
}

func (b *binder) bindIfStatement(s *syntax.IfStatement) BoundStatement {
	cond := b.bindConditionExpression(s.Condition)
	then := &BoundSequencePointStatement{Statement: b.bindStatement(s.Then), Location: s.Then.Location()}
	var elseStmt BoundStatement
	if s.Else != nil {
		elseStmt = &BoundSequencePointStatement{Statement: b.bindStatement(s.Else.Statement), Location: s.Else.Statement.Location()}
	}
	return &BoundIfStatement{Condition: cond, Then: then, Else: elseStmt}
}

func (b *binder) bindWhileStatement(s *syntax.WhileStatement) BoundStatement {
	cond := b.bindConditionExpression(s.Condition)
	breakLabel, continueLabel := b.newLabel("whileBreak"), b.newLabel("whileContinue")
	b.loopStack = append(b.loopStack, loopLabels{Break: breakLabel, Continue: continueLabel})
	body := b.bindStatement(s.Body)
	b.loopStack = b.loopStack[:len(b.loopStack)-1]
	return &BoundWhileStatement{Condition: cond, Body: body, BreakLabel: breakLabel, ContinueLabel: continueLabel}
}

func (b *binder) bindDoWhileStatement(s *syntax.DoWhileStatement) BoundStatement {
	breakLabel, continueLabel := b.newLabel("doBreak"), b.newLabel("doContinue")
	b.loopStack = append(b.loopStack, loopLabels{Break: breakLabel, Continue: continueLabel})
	body := b.bindStatement(s.Body)
	b.loopStack = b.loopStack[:len(b.loopStack)-1]
	cond := b.bindConditionExpression(s.Condition)
	return &BoundDoWhileStatement{Body: body, Condition: cond, BreakLabel: breakLabel, ContinueLabel: continueLabel}
}

func (b *binder) bindForStatement(s *syntax.ForStatement) BoundStatement {
	lower := b.convertImplicit(b.bindExpression(s.LowerBound), TypeInt32, s.LowerBound.Location())
	upper := b.convertImplicit(b.bindExpression(s.UpperBound), TypeInt32, s.UpperBound.Location())

	outer := b.scope
	b.scope = NewBoundScope(outer)
	defer func() { b.scope = outer }()

	variable := &VariableSymbol{Name: s.Identifier.Text, Type: TypeInt32, Kind: LocalVariable}
	if !b.scope.TryDeclare(variable) {
		b.diags.Report(s.Identifier.Location, diagnostics.SymbolAlreadyDeclared, "%q is already declared", s.Identifier.Text)
	}

	breakLabel, continueLabel := b.newLabel("forBreak"), b.newLabel("forContinue")
	b.loopStack = append(b.loopStack, loopLabels{Break: breakLabel, Continue: continueLabel})
	body := b.bindStatement(s.Body)
	b.loopStack = b.loopStack[:len(b.loopStack)-1]

	return &BoundForStatement{
		Variable: variable, LowerBound: lower, UpperBound: upper, Body: body,
		BreakLabel: breakLabel, ContinueLabel: continueLabel,
	}
}

func (b *binder) bindBreakStatement(s *syntax.BreakStatement) BoundStatement {
	if len(b.loopStack) == 0 {
		b.diags.Report(s.Location(), diagnostics.InvalidBreakOrContinue, "break used outside of a loop")
		return &BoundNopStatement{}
	}
	top := b.loopStack[len(b.loopStack)-1]
	return &BoundBreakStatement{Label: top.Break}
}

func (b *binder) bindContinueStatement(s *syntax.ContinueStatement) BoundStatement {
	if len(b.loopStack) == 0 {
		b.diags.Report(s.Location(), diagnostics.InvalidBreakOrContinue, "continue used outside of a loop")
		return &BoundNopStatement{}
	}
	top := b.loopStack[len(b.loopStack)-1]
	return &BoundContinueStatement{Label: top.Continue}
}

func (b *binder) bindReturnStatement(s *syntax.ReturnStatement) BoundStatement {
	var expr BoundExpression
	if s.Expression != nil {
		expr = b.bindExpression(s.Expression)
	}

	if b.function == nil || b.function.ReturnType == TypeVoid {
		if expr != nil {
			b.diags.Report(s.Expression.Location(), diagnostics.InvalidReturnExpression,
				"function %q is void and cannot return a value", b.functionName())
		}
		return &BoundReturnStatement{Expression: nil}
	}

	if expr == nil {
		b.diags.Report(s.Location(), diagnostics.MissingReturnExpression,
			"function %q must return a value of type %s", b.functionName(), b.function.ReturnType)
		return &BoundReturnStatement{Expression: nil}
	}

	expr = b.convertImplicit(expr, b.function.ReturnType, s.Expression.Location())
	return &BoundReturnStatement{Expression: expr}
}

func (b *binder) functionName() string {
	if b.function == nil {
		return "<global>"
	}
	return b.function.Name
}

// bindExpressionStatement enforces the restriction on which
// expression shapes may stand alone as a statement.
func (b *binder) bindExpressionStatement(s *syntax.ExpressionStatement) BoundStatement {
	expr := b.bindExpressionAllowVoid(s.Expression)
	switch s.Expression.(type) {
	case *syntax.AssignmentExpression, *syntax.CompoundAssignmentExpression,
		*syntax.FieldAssignmentExpression, *syntax.CompoundFieldAssignmentExpression,
		*syntax.CallExpression:
		// allowed
	default:
		if _, isError := expr.(*BoundErrorExpression); !isError {
			b.diags.Report(s.Expression.Location(), diagnostics.InvalidExpressionStatement,
				"only assignment and call expressions can be used as a statement")
		}
	}
	return &BoundExpressionStatement{Expression: expr}
}

// --- expressions ---

// bindExpression binds an expression that must produce a value; a void
// result is itself an error (ExpressionMustHaveValue).
func (b *binder) bindExpression(syn syntax.Expression) BoundExpression {
	result := b.bindExpressionInternal(syn)
	if result.Type() == TypeVoid {
		b.diags.Report(syn.Location(), diagnostics.ExpressionMustHaveValue, "expression must have a value")
		return &BoundErrorExpression{}
	}
	return result
}

// bindExpressionAllowVoid is used only for expression-statements, where a
// void-returning call is legal.
func (b *binder) bindExpressionAllowVoid(syn syntax.Expression) BoundExpression {
	return b.bindExpressionInternal(syn)
}

func (b *binder) bindExpressionInternal(syn syntax.Expression) BoundExpression {
	switch e := syn.(type) {
	case *syntax.LiteralExpression:
		return b.bindLiteral(e)
	case *syntax.ParenthesizedExpression:
		return b.bindExpressionInternal(e.Expression)
	case *syntax.NameExpression:
		return b.bindName(e)
	case *syntax.ThisExpression:
		return b.bindThis(e)
	case *syntax.UnaryExpression:
		return b.bindUnary(e)
	case *syntax.BinaryExpression:
		return b.bindBinary(e)
	case *syntax.AssignmentExpression:
		return b.bindAssignment(e)
	case *syntax.CompoundAssignmentExpression:
		return b.bindCompoundAssignment(e)
	case *syntax.FieldAssignmentExpression:
		return b.bindFieldAssignment(e)
	case *syntax.CompoundFieldAssignmentExpression:
		return b.bindCompoundFieldAssignment(e)
	case *syntax.CallExpression:
		return b.bindCall(e)
	case *syntax.MemberAccessExpression:
		return b.bindMemberAccess(e)
	default:
		return &BoundErrorExpression{}
	}
}

func typeOfLiteralValue(v any) *TypeSymbol {
	switch v.(type) {
	case bool:
		return TypeBool
	case int8:
		return TypeInt8
	case int16:
		return TypeInt16
	case int32:
		return TypeInt32
	case int64:
		return TypeInt64
	case uint8:
		return TypeUInt8
	case uint16:
		return TypeUInt16
	case uint32:
		return TypeUInt32
	case uint64:
		return TypeUInt64
	case float32:
		return TypeFloat32
	case float64:
		return TypeFloat64
	case syntax.Char:
		return TypeChar
	case string:
		return TypeString
	default:
		return TypeObject
	}
}

func (b *binder) bindLiteral(e *syntax.LiteralExpression) BoundExpression {
	return &BoundLiteralExpression{ValueType: typeOfLiteralValue(e.Value), Value: e.Value}
}

func (b *binder) bindName(e *syntax.NameExpression) BoundExpression {
	name := e.Identifier.Text
	sym, ok := b.scope.TryLookup(name)
	if !ok {
		b.diags.Report(e.Location(), diagnostics.UndefinedVariable, "undefined variable %q", name)
		return &BoundErrorExpression{}
	}
	v, isVar := sym.(*VariableSymbol)
	if !isVar {
		b.diags.Report(e.Location(), diagnostics.NotAVariable, "%q is not a variable", name)
		return &BoundErrorExpression{}
	}
	return &BoundVariableExpression{Variable: v}
}

func (b *binder) bindThis(e *syntax.ThisExpression) BoundExpression {
	if b.receiver == nil {
		b.diags.Report(e.Location(), diagnostics.CannotUseThisOutsideOfReceiver, "'this' used outside of a method")
		return &BoundErrorExpression{}
	}
	return &BoundThisExpression{ClassType: b.receiver.Type}
}

func (b *binder) bindUnary(e *syntax.UnaryExpression) BoundExpression {
	operand := b.bindExpression(e.Operand)
	if operand.Type() == TypeError {
		return &BoundErrorExpression{}
	}
	op, ok := BindUnaryOperator(e.OperatorTok.Kind, operand.Type())
	if !ok {
		b.diags.Report(e.Location(), diagnostics.UndefinedUnaryOperator,
			"unary operator %s is not defined for type %s", e.OperatorTok.Kind, operand.Type())
		return &BoundErrorExpression{}
	}
	return &BoundUnaryExpression{Op: op, Operand: operand, Constant_: FoldUnary(op, operand)}
}

func (b *binder) bindBinary(e *syntax.BinaryExpression) BoundExpression {
	left := b.bindExpression(e.Left)
	right := b.bindExpression(e.Right)
	if left.Type() == TypeError || right.Type() == TypeError {
		return &BoundErrorExpression{}
	}

	if left.Type() != right.Type() {
		leftToRight := ClassifyConversion(left.Type(), right.Type())
		rightToLeft := ClassifyConversion(right.Type(), left.Type())
		switch {
		case leftToRight.IsImplicit() && !rightToLeft.IsImplicit():
			left = NewConversion(right.Type(), left)
		case rightToLeft.IsImplicit() && !leftToRight.IsImplicit():
			right = NewConversion(left.Type(), right)
		}
	}

	opKind := e.OperatorTok.Kind
	if opKind == syntax.SlashToken || opKind == syntax.PercentToken {
		if c := right.Constant(); c != nil && c.IsZero() {
			b.diags.Report(e.Location(), diagnostics.DivideByZero, "division by a constant zero")
			return &BoundErrorExpression{}
		}
	}

	op, ok := BindBinaryOperator(opKind, left.Type(), right.Type())
	if !ok {
		b.diags.Report(e.Location(), diagnostics.UndefinedBinaryOperator,
			"binary operator %s is not defined for types %s and %s", opKind, left.Type(), right.Type())
		return &BoundErrorExpression{}
	}
	return &BoundBinaryExpression{Left: left, Op: op, Right: right, Constant_: FoldBinary(op, left, right)}
}

// convertImplicit converts expr to targetType, inserting a
// BoundConversionExpression when the types differ, or reporting
// CannotConvertImplicitly when no implicit conversion exists.
func (b *binder) convertImplicit(expr BoundExpression, targetType *TypeSymbol, loc source.Location) BoundExpression {
	if expr.Type() == targetType || expr.Type() == TypeError {
		return expr
	}
	conv := ClassifyConversion(expr.Type(), targetType)
	if !conv.Exists() {
		b.diags.Report(loc, diagnostics.CannotConvert, "cannot convert %s to %s", expr.Type(), targetType)
		return &BoundErrorExpression{}
	}
	if !conv.IsImplicit() {
		b.diags.Report(loc, diagnostics.CannotConvertImplicitly,
			"cannot implicitly convert %s to %s; an explicit conversion exists, are you missing a cast?", expr.Type(), targetType)
		return &BoundErrorExpression{}
	}
	return NewConversion(targetType, expr)
}

func (b *binder) bindAssignment(e *syntax.AssignmentExpression) BoundExpression {
	name := e.Identifier.Text
	sym, ok := b.scope.TryLookup(name)
	rhs := b.bindExpression(e.Expression)
	v, isVar := sym.(*VariableSymbol)
	if !ok || !isVar {
		b.diags.Report(e.Location(), diagnostics.UndefinedVariable, "undefined variable %q", name)
		return &BoundErrorExpression{}
	}
	if v.IsReadOnly {
		b.diags.Report(e.EqualsTok.Location, diagnostics.CannotAssign, "%q is read-only and cannot be assigned to", name)
		return &BoundErrorExpression{}
	}
	rhs = b.convertImplicit(rhs, v.Type, e.Expression.Location())
	return &BoundAssignmentExpression{Variable: v, Expression: rhs}
}

func (b *binder) bindCompoundAssignment(e *syntax.CompoundAssignmentExpression) BoundExpression {
	name := e.Identifier.Text
	sym, ok := b.scope.TryLookup(name)
	rhs := b.bindExpression(e.Expression)
	v, isVar := sym.(*VariableSymbol)
	if !ok || !isVar {
		b.diags.Report(e.Location(), diagnostics.UndefinedVariable, "undefined variable %q", name)
		return &BoundErrorExpression{}
	}
	if v.IsReadOnly {
		b.diags.Report(e.OperatorTok.Location, diagnostics.CannotAssign, "%q is read-only and cannot be assigned to", name)
		return &BoundErrorExpression{}
	}
	binOpKind, _ := syntax.IsCompoundAssignmentOperator(e.OperatorTok.Kind)
	op, ok := BindBinaryOperator(binOpKind, v.Type, rhs.Type())
	if !ok {
		b.diags.Report(e.Location(), diagnostics.UndefinedBinaryOperator,
			"binary operator is not defined for types %s and %s", v.Type, rhs.Type())
		return &BoundErrorExpression{}
	}
	return &BoundCompoundAssignmentExpression{Variable: v, Op: op, Expression: rhs}
}

// bindMemberTarget binds the receiver of a field access/assignment: a bare
// name, `this`, or a nested member access, returning the bound target
// expression and the class it's an instance of (nil on error).
func (b *binder) bindMemberTarget(target syntax.Expression) (BoundExpression, *ClassSymbol) {
	switch t := target.(type) {
	case *syntax.ThisExpression:
		expr := b.bindThis(t)
		if b.receiver == nil {
			return expr, nil
		}
		return expr, b.receiver
	case *syntax.NameExpression:
		sym, ok := b.scope.TryLookup(t.Identifier.Text)
		v, isVar := sym.(*VariableSymbol)
		if !ok || !isVar {
			b.diags.Report(t.Location(), diagnostics.UndefinedVariable, "undefined variable %q", t.Identifier.Text)
			return &BoundErrorExpression{}, nil
		}
		if v.Type.Class == nil {
			b.diags.Report(t.Location(), diagnostics.NotAClass, "%q is not an instance of a class", t.Identifier.Text)
			return &BoundErrorExpression{}, nil
		}
		return &BoundVariableExpression{Variable: v}, v.Type.Class
	case *syntax.MemberAccessExpression:
		inner := b.bindMemberAccess(t)
		if fa, ok := inner.(*BoundFieldAccessExpression); ok {
			return fa, fa.Field.Type.Class
		}
		return inner, nil
	default:
		b.diags.Report(target.Location(), diagnostics.NotAClass, "expression is not a class instance")
		return &BoundErrorExpression{}, nil
	}
}

func (b *binder) bindFieldAssignment(e *syntax.FieldAssignmentExpression) BoundExpression {
	targetExpr, class := b.bindMemberTarget(e.Target)
	rhs := b.bindExpression(e.Expression)
	if class == nil {
		return &BoundErrorExpression{}
	}
	field := class.FieldByName(e.Field.Text)
	if field == nil {
		b.diags.Report(e.Field.Location, diagnostics.UndefinedClassField, "%s has no field %q", class.Name, e.Field.Text)
		return &BoundErrorExpression{}
	}
	if field.IsConst {
		b.diags.Report(e.EqualsTok.Location, diagnostics.CannotAssign, "%q is const and cannot be assigned to", field.Name)
		return &BoundErrorExpression{}
	}
	rhs = b.convertImplicit(rhs, field.Type, e.Expression.Location())
	return &BoundFieldAssignmentExpression{Target: targetExpr, Field: field, Expression: rhs}
}

func (b *binder) bindCompoundFieldAssignment(e *syntax.CompoundFieldAssignmentExpression) BoundExpression {
	targetExpr, class := b.bindMemberTarget(e.Target)
	rhs := b.bindExpression(e.Expression)
	if class == nil {
		return &BoundErrorExpression{}
	}
	field := class.FieldByName(e.Field.Text)
	if field == nil {
		b.diags.Report(e.Field.Location, diagnostics.UndefinedClassField, "%s has no field %q", class.Name, e.Field.Text)
		return &BoundErrorExpression{}
	}
	if field.IsConst {
		b.diags.Report(e.OperatorTok.Location, diagnostics.CannotAssign, "%q is const and cannot be assigned to", field.Name)
		return &BoundErrorExpression{}
	}
	binOpKind, _ := syntax.IsCompoundAssignmentOperator(e.OperatorTok.Kind)
	op, ok := BindBinaryOperator(binOpKind, field.Type, rhs.Type())
	if !ok {
		b.diags.Report(e.Location(), diagnostics.UndefinedBinaryOperator,
			"binary operator is not defined for types %s and %s", field.Type, rhs.Type())
		return &BoundErrorExpression{}
	}
	return &BoundCompoundFieldAssignmentExpression{Target: targetExpr, Field: field, Op: op, Expression: rhs}
}

func (b *binder) bindMemberAccess(e *syntax.MemberAccessExpression) BoundExpression {
	targetExpr, class := b.bindMemberTarget(e.Target)
	if class == nil {
		return &BoundErrorExpression{}
	}
	if field := class.FieldByName(e.Member.Text); field != nil {
		return &BoundFieldAccessExpression{Target: targetExpr, Field: field}
	}
	if _, ok := class.Methods[e.Member.Text]; ok {
		b.diags.Report(e.Member.Location, diagnostics.ExpressionMustHaveValue, "method %q cannot be used as a value", e.Member.Text)
		return &BoundErrorExpression{}
	}
	b.diags.Report(e.Member.Location, diagnostics.UndefinedClassField, "%s has no field %q", class.Name, e.Member.Text)
	return &BoundErrorExpression{}
}

func (b *binder) bindCall(e *syntax.CallExpression) BoundExpression {
	// Step 1: a built-in primitive-type name called with exactly one
	// argument is an explicit conversion.
	if name, ok := e.Callee.(*syntax.NameExpression); ok && syntax.IsTypeKeyword(name.Identifier.Kind) && e.Arguments.Count() == 1 {
		toType := LookupPrimitiveByKeyword(name.Identifier.Kind)
		arg := b.bindExpression(e.Arguments.Get(0))
		if arg.Type() == TypeError {
			return &BoundErrorExpression{}
		}
		if !ClassifyConversion(arg.Type(), toType).Exists() {
			b.diags.Report(e.Location(), diagnostics.CannotConvert, "cannot convert %s to %s", arg.Type(), toType)
			return &BoundErrorExpression{}
		}
		if folded := FoldConversion(toType, arg); folded != nil {
			return &BoundLiteralExpression{ValueType: toType, Value: folded.Value}
		}
		return &BoundConversionExpression{ToType: toType, Expression: arg}
	}

	var entry *FunctionSymbol
	var receiverExpr BoundExpression

	switch callee := e.Callee.(type) {
	case *syntax.NameExpression:
		sym, ok := b.scope.TryLookup(callee.Identifier.Text)
		if !ok {
			b.bindCallArgumentsForDiagnostics(e)
			b.diags.Report(e.Location(), diagnostics.UndefinedFunction, "undefined function %q", callee.Identifier.Text)
			return &BoundErrorExpression{}
		}
		switch s := sym.(type) {
		case *ClassSymbol:
			entry = s.ParamCtor
		case *FunctionSymbol:
			entry = s
		default:
			b.bindCallArgumentsForDiagnostics(e)
			b.diags.Report(e.Location(), diagnostics.NotAFunction, "%q is not a function", callee.Identifier.Text)
			return &BoundErrorExpression{}
		}
	case *syntax.MemberAccessExpression:
		targetExpr, class := b.bindMemberTarget(callee.Target)
		if class == nil {
			b.bindCallArgumentsForDiagnostics(e)
			return &BoundErrorExpression{}
		}
		method, ok := class.Methods[callee.Member.Text]
		if !ok {
			b.bindCallArgumentsForDiagnostics(e)
			b.diags.Report(callee.Member.Location, diagnostics.UndefinedFunction, "%s has no method %q", class.Name, callee.Member.Text)
			return &BoundErrorExpression{}
		}
		entry = method
		receiverExpr = targetExpr
	default:
		b.bindCallArgumentsForDiagnostics(e)
		b.diags.Report(e.Location(), diagnostics.NotAFunction, "expression is not callable")
		return &BoundErrorExpression{}
	}

	args := make([]BoundExpression, e.Arguments.Count())
	for i := 0; i < e.Arguments.Count(); i++ {
		args[i] = b.bindExpression(e.Arguments.Get(i))
	}

	// A function with no overload chain demands an exact arity match; its
	// argument conversions are checked one by one so a mismatched argument
	// gets its own CannotConvertImplicitly rather than a blanket
	// no-overload error.
	if entry.OverloadFor == nil {
		if len(entry.Parameters) != len(args) {
			b.diags.Report(e.Location(), diagnostics.UndefinedFunction,
				"function %q takes %d argument(s), got %d", entry.Name, len(entry.Parameters), len(args))
			return &BoundErrorExpression{}
		}
		converted := make([]BoundExpression, len(args))
		for i, arg := range args {
			converted[i] = b.convertImplicit(arg, entry.Parameters[i].Type, e.Arguments.Get(i).Location())
		}
		return &BoundCallExpression{Function: entry, Receiver: receiverExpr, Arguments: converted}
	}

	matched := resolveOverload(entry, args)
	if matched == nil {
		b.diags.Report(e.Location(), diagnostics.UndefinedFunction,
			"no overload of %q matches the supplied %d argument(s)", entry.Name, len(args))
		return &BoundErrorExpression{}
	}

	converted := make([]BoundExpression, len(args))
	for i, arg := range args {
		if arg.Type() != matched.Parameters[i].Type && arg.Type() != TypeError {
			converted[i] = NewConversion(matched.Parameters[i].Type, arg)
		} else {
			converted[i] = arg
		}
	}

	return &BoundCallExpression{Function: matched, Receiver: receiverExpr, Arguments: converted}
}

// bindCallArgumentsForDiagnostics binds call arguments purely so their own
// diagnostics still accumulate even when the callee itself didn't resolve.
func (b *binder) bindCallArgumentsForDiagnostics(e *syntax.CallExpression) {
	for i := 0; i < e.Arguments.Count(); i++ {
		b.bindExpression(e.Arguments.Get(i))
	}
}

// resolveOverload walks entry's OverloadFor chain and returns the first
// candidate whose arity matches and whose parameters each accept an
// implicit conversion from the corresponding argument. No ranking, no
// ambiguity detection.
func resolveOverload(entry *FunctionSymbol, args []BoundExpression) *FunctionSymbol {
	for fn := entry; fn != nil; fn = fn.OverloadFor {
		if len(fn.Parameters) != len(args) {
			continue
		}
		ok := true
		for i, p := range fn.Parameters {
			if args[i].Type() == TypeError {
				continue
			}
			if !ClassifyConversion(args[i].Type(), p.Type).IsImplicit() {
				ok = false
				break
			}
		}
		if ok {
			return fn
		}
	}
	return nil
}
