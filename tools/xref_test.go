package tools

import (
	"testing"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/diagnostics"
)

func TestXRefCollectsDeclarationAndReadWrite(t *testing.T) {
	v := &binding.VariableSymbol{Name: "count", Type: binding.TypeInt32, Kind: binding.GlobalVariable}
	fn := &binding.FunctionSymbol{Name: "bump", ReturnType: binding.TypeVoid}

	globalScope := &binding.BoundGlobalScope{
		Diagnostics: &diagnostics.Bag{},
		Variables:   []*binding.VariableSymbol{v},
		Functions:   []*binding.FunctionSymbol{fn},
	}
	program := &binding.BoundProgram{
		Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{
			fn: {Statements: []binding.BoundStatement{
				&binding.BoundExpressionStatement{Expression: &binding.BoundAssignmentExpression{
					Variable:   v,
					Expression: &binding.BoundVariableExpression{Variable: v},
				}},
			}},
		},
	}

	entries := XRef(globalScope, program)

	var countEntry, bumpEntry *XRefEntry
	for _, e := range entries {
		switch e.Name {
		case "count":
			countEntry = e
		case "bump":
			bumpEntry = e
		}
	}

	if countEntry == nil {
		t.Fatal("expected an entry for count")
	}
	var hasDecl, hasRead, hasWrite bool
	for _, r := range countEntry.References {
		switch r {
		case RefDeclaration:
			hasDecl = true
		case RefRead:
			hasRead = true
		case RefWrite:
			hasWrite = true
		}
	}
	if !hasDecl || !hasRead || !hasWrite {
		t.Errorf("expected declaration+read+write on count, got %v", countEntry.References)
	}

	if bumpEntry == nil || bumpEntry.Kind != "function" {
		t.Fatalf("expected a function entry for bump, got %#v", bumpEntry)
	}
}
