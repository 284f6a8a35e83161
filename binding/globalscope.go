package binding

import (
	"sort"

	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
	"github.com/lookbusy1344/mlang/syntax"
)

// BoundGlobalScope is the result of BindGlobalScope: every declared class,
// function, and global variable, the bound global statements (if any),
// and the resolved entry point.
type BoundGlobalScope struct {
	Previous       *BoundGlobalScope
	Diagnostics    *diagnostics.Bag
	MainFunction   *FunctionSymbol
	ScriptFunction *FunctionSymbol // script mode is not constructed today; reserved
	Classes        []*ClassSymbol
	Functions      []*FunctionSymbol
	Variables      []*VariableSymbol
	Statements     []BoundStatement

	scope *BoundScope // retained so BindProgram can open function-body child scopes
}

// BindGlobalScope runs the three load-bearing phases of global binding
// over every tree in the compilation: class forward-declaration, function
// forward-declaration, then global-statement binding in textual order.
func BindGlobalScope(previous *BoundGlobalScope, builtins []*FunctionSymbol, trees []*syntax.Tree) *BoundGlobalScope {
	diags := &diagnostics.Bag{}
	root := NewRootScope(builtins)
	parentScope := NewParentScopes(root, previous)
	scope := NewBoundScope(parentScope)

	gb := &globalBinder{scope: scope, diags: diags}

	// Phase 1: classes.
	for _, tree := range trees {
		for _, m := range tree.Root.Members {
			if cd, ok := m.(*syntax.ClassDeclaration); ok {
				gb.declareClass(cd)
			}
		}
	}

	// Phase 2: functions.
	for _, tree := range trees {
		for _, m := range tree.Root.Members {
			if fd, ok := m.(*syntax.FunctionDeclaration); ok {
				gb.declareFunction(fd)
			}
		}
	}

	// Phase 3: global statements, bound directly into the global scope in
	// textual order. Only one tree in the compilation may contribute them.
	voidMain := &FunctionSymbol{Name: "main", ReturnType: TypeVoid}
	var statements []BoundStatement
	var globalStatementsTree *syntax.Tree
	var firstGlobalStatementLoc source.Location
	for _, tree := range trees {
		var treeStatements []*syntax.GlobalStatement
		for _, m := range tree.Root.Members {
			if gs, ok := m.(*syntax.GlobalStatement); ok {
				treeStatements = append(treeStatements, gs)
			}
		}
		if len(treeStatements) == 0 {
			continue
		}
		if globalStatementsTree != nil {
			diags.Report(treeStatements[0].Location(), diagnostics.OnlyOneFileCanHaveGlobalStatements,
				"only one file may contain global statements")
			continue
		}
		globalStatementsTree = tree
		firstGlobalStatementLoc = treeStatements[0].Location()
		b := newBinder(diags, scope, voidMain, nil)
		for _, gs := range treeStatements {
			statements = append(statements, b.bindStatement(gs.Statement))
		}
	}

	var main *FunctionSymbol
	if sym, ok := scope.TryLookupLocal("main"); ok {
		if fn, ok := sym.(*FunctionSymbol); ok {
			main = fn
		}
	}

	if main != nil && len(statements) > 0 {
		// Both sides are flagged: the declared main and the statements it
		// conflicts with.
		diags.Report(main.Declaration.Identifier.Location, diagnostics.CannotMixMainAndGlobalStatements,
			"cannot declare a main function and also have global statements")
		diags.Report(firstGlobalStatementLoc, diagnostics.CannotMixMainAndGlobalStatements,
			"cannot declare a main function and also have global statements")
	}
	if main != nil {
		if len(main.Parameters) != 0 || main.ReturnType != TypeVoid {
			diags.Report(main.Declaration.Identifier.Location, diagnostics.MainMustHaveCorrectSignature,
				"main must take no parameters and return void")
		}
	}
	if main == nil && len(statements) > 0 {
		main = voidMain
	}

	var variables []*VariableSymbol
	for _, sym := range scope.DeclaredSymbols() {
		if v, ok := sym.(*VariableSymbol); ok {
			variables = append(variables, v)
		}
	}
	sort.Slice(variables, func(i, j int) bool { return variables[i].Name < variables[j].Name })
	sort.Slice(gb.functions, func(i, j int) bool { return gb.functions[i].Name < gb.functions[j].Name })
	sort.Slice(gb.classes, func(i, j int) bool { return gb.classes[i].Name < gb.classes[j].Name })

	return &BoundGlobalScope{
		Previous:     previous,
		Diagnostics:  diags,
		MainFunction: main,
		Classes:      gb.classes,
		Functions:    gb.functions,
		Variables:    variables,
		Statements:   statements,
		scope:        scope,
	}
}

// globalBinder carries the state shared by class/function forward
// declaration.
type globalBinder struct {
	scope     *BoundScope
	diags     *diagnostics.Bag
	classes   []*ClassSymbol
	functions []*FunctionSymbol
}

func resolveTypeToken(scope *BoundScope, diags *diagnostics.Bag, tok syntax.Token) *TypeSymbol {
	if prim := LookupPrimitiveByKeyword(tok.Kind); prim != nil {
		return prim
	}
	if sym, ok := scope.TryLookup(tok.Text); ok {
		if cls, ok := sym.(*ClassSymbol); ok {
			return cls.Type
		}
	}
	diags.Report(tok.Location, diagnostics.UndefinedType, "undefined type %q", tok.Text)
	return TypeError
}

// declareClass binds a class's writable field list, deriving the
// synthesized constructor parameter list in declaration order and
// installing the zero-arg/parameterized constructor pair.
func (g *globalBinder) declareClass(cd *syntax.ClassDeclaration) {
	name := cd.Identifier.Text
	classType := &TypeSymbol{Name: name}
	class := &ClassSymbol{Name: name, Type: classType, Methods: map[string]*FunctionSymbol{}, Declaration: cd}
	classType.Class = class

	if !g.scope.TryDeclare(class) {
		g.diags.Report(cd.Identifier.Location, diagnostics.SymbolAlreadyDeclared, "%q is already declared", name)
		return
	}
	g.classes = append(g.classes, class)

	seen := map[string]bool{}
	ctorOrdinal := 0
	var params []*VariableSymbol
	for _, fd := range cd.Fields {
		fieldType := resolveTypeToken(g.scope, g.diags, fd.Type.TypeTok)
		field := &FieldSymbol{Name: fd.Identifier.Text, Type: fieldType, IsConst: fd.IsConst, CtorOrdinal: -1}
		if seen[field.Name] {
			g.diags.Report(fd.Identifier.Location, diagnostics.SymbolAlreadyDeclared,
				"field %q already declared on %s", field.Name, name)
		}
		seen[field.Name] = true

		if fd.IsConst {
			if fd.Initializer != nil {
				fb := newBinder(g.diags, g.scope, nil, nil)
				init := fb.bindExpression(fd.Initializer)
				field.ConstantValue = init.Constant()
			}
		} else {
			field.CtorOrdinal = ctorOrdinal
			params = append(params, &VariableSymbol{Name: field.Name, Type: fieldType, Kind: ParameterVariable, Ordinal: ctorOrdinal})
			ctorOrdinal++
		}
		class.Fields = append(class.Fields, field)
	}

	zeroCtor := &FunctionSymbol{Name: name + ".ctor", ReturnType: classType, Receiver: nil}
	paramCtor := &FunctionSymbol{Name: name + ".ctor", Parameters: params, ReturnType: classType, Receiver: nil, OverloadFor: zeroCtor}
	class.ZeroCtor = zeroCtor
	class.ParamCtor = paramCtor
}

// declareFunction binds a function's parameters, return type, and
// optional receiver. Duplicate free-function names
// collide in the global scope; duplicate method names collide on the
// receiver class.
func (g *globalBinder) declareFunction(fd *syntax.FunctionDeclaration) {
	var receiver *ClassSymbol
	if fd.HasReceiver {
		sym, ok := g.scope.TryLookupLocal(fd.ReceiverTok.Text)
		if cls, isClass := sym.(*ClassSymbol); ok && isClass {
			receiver = cls
		} else {
			g.diags.Report(fd.ReceiverTok.Location, diagnostics.NotAClass, "%q is not a class", fd.ReceiverTok.Text)
		}
	}

	var params []*VariableSymbol
	seen := map[string]bool{}
	for i := 0; i < fd.Parameters.Count(); i++ {
		p := fd.Parameters.Get(i)
		pType := resolveTypeToken(g.scope, g.diags, p.Type.TypeTok)
		if seen[p.Identifier.Text] {
			g.diags.Report(p.Identifier.Location, diagnostics.ParameterAlreadyDeclared,
				"parameter %q already declared", p.Identifier.Text)
		}
		seen[p.Identifier.Text] = true
		params = append(params, &VariableSymbol{Name: p.Identifier.Text, Type: pType, Kind: ParameterVariable, Ordinal: i})
	}

	returnType := TypeVoid
	if fd.ReturnType != nil {
		returnType = resolveTypeToken(g.scope, g.diags, fd.ReturnType.TypeTok)
	}

	fn := &FunctionSymbol{
		Name: fd.Identifier.Text, Parameters: params, ReturnType: returnType,
		Declaration: fd, Receiver: receiver,
	}

	if receiver != nil {
		if _, exists := receiver.Methods[fn.Name]; exists {
			g.diags.Report(fd.Identifier.Location, diagnostics.SymbolAlreadyDeclared,
				"method %q already declared on %s", fn.Name, receiver.Name)
			return
		}
		receiver.Methods[fn.Name] = fn
	} else if !g.scope.TryDeclare(fn) {
		g.diags.Report(fd.Identifier.Location, diagnostics.SymbolAlreadyDeclared, "%q is already declared", fn.Name)
		return
	}
	g.functions = append(g.functions, fn)
}
