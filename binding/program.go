package binding

import "github.com/lookbusy1344/mlang/diagnostics"

// BoundProgram is the fully bound compilation: every function/method body,
// every synthesized constructor body, and the resolved entry point.
type BoundProgram struct {
	Previous     *BoundProgram
	Diagnostics  *diagnostics.Bag
	MainFunction *FunctionSymbol
	Functions    map[*FunctionSymbol]*BoundBlockStatement
	Classes      map[*ClassSymbol]*BoundBlockStatement // class -> its ParamCtor body, for xref/tooling
}

// BindProgram binds every function and method body declared in
// globalScope, plus the two synthesized constructors per class, producing
// one BoundBlockStatement per FunctionSymbol. Global statements were
// already bound by BindGlobalScope; here they become Main's body when no
// user-declared main exists.
func BindProgram(previous *BoundProgram, globalScope *BoundGlobalScope) *BoundProgram {
	diags := &diagnostics.Bag{}
	diags.AddRange(globalScope.Diagnostics)

	functions := map[*FunctionSymbol]*BoundBlockStatement{}
	classes := map[*ClassSymbol]*BoundBlockStatement{}

	for _, class := range globalScope.Classes {
		zeroBody, paramBody := bindConstructors(diags, globalScope.scope, class)
		functions[class.ZeroCtor] = zeroBody
		functions[class.ParamCtor] = paramBody
		classes[class] = paramBody
	}

	for _, fn := range globalScope.Functions {
		if fn.Declaration == nil || fn.Declaration.Body == nil {
			continue
		}
		fnScope := NewBoundScope(globalScope.scope)
		for _, p := range fn.Parameters {
			fnScope.TryDeclare(p)
		}
		fb := newBinder(diags, fnScope, fn, fn.Receiver)
		body := fb.bindBlockStatement(fn.Declaration.Body).(*BoundBlockStatement)
		functions[fn] = body
	}

	main := globalScope.MainFunction
	if main != nil {
		if _, alreadyBound := functions[main]; !alreadyBound {
			if main.Declaration != nil && main.Declaration.Body != nil {
				fnScope := NewBoundScope(globalScope.scope)
				fb := newBinder(diags, fnScope, main, nil)
				body := fb.bindBlockStatement(main.Declaration.Body).(*BoundBlockStatement)
				functions[main] = body
			} else {
				// Synthesized from bare global statements.
				functions[main] = &BoundBlockStatement{Statements: globalScope.Statements}
			}
		}
	}

	return &BoundProgram{
		Previous:     previous,
		Diagnostics:  diags,
		MainFunction: main,
		Functions:    functions,
		Classes:      classes,
	}
}

// bindConstructors synthesizes both constructor bodies for class: the
// zero-arg ctor default-initializes every non-const field, the
// parameterized ctor assigns each ctor parameter to its field in order.
// Both return `this` as their last statement.
func bindConstructors(diags *diagnostics.Bag, parent *BoundScope, class *ClassSymbol) (*BoundBlockStatement, *BoundBlockStatement) {
	thisExpr := &BoundThisExpression{ClassType: class.Type}

	var zeroStmts []BoundStatement
	for _, field := range class.Fields {
		if field.IsConst {
			continue
		}
		def := &BoundLiteralExpression{ValueType: field.Type, Value: field.Type.Default}
		zeroStmts = append(zeroStmts, &BoundExpressionStatement{
			Expression: &BoundFieldAssignmentExpression{Target: thisExpr, Field: field, Expression: def},
		})
	}
	zeroStmts = append(zeroStmts, &BoundReturnStatement{Expression: thisExpr})

	paramScope := NewBoundScope(parent)
	for _, p := range class.CtorParameters() {
		paramScope.TryDeclare(p)
	}
	var paramStmts []BoundStatement
	for _, field := range class.Fields {
		if field.IsConst {
			continue
		}
		param := class.CtorParameters()[field.CtorOrdinal]
		paramStmts = append(paramStmts, &BoundExpressionStatement{
			Expression: &BoundFieldAssignmentExpression{
				Target: thisExpr, Field: field, Expression: &BoundVariableExpression{Variable: param},
			},
		})
	}
	paramStmts = append(paramStmts, &BoundReturnStatement{Expression: thisExpr})

	return &BoundBlockStatement{Statements: zeroStmts}, &BoundBlockStatement{Statements: paramStmts}
}

