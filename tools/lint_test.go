package tools

import (
	"testing"

	"github.com/lookbusy1344/mlang/binding"
	"github.com/lookbusy1344/mlang/diagnostics"
)

func TestCheckUnusedFlagsUnreferencedGlobal(t *testing.T) {
	used := &binding.VariableSymbol{Name: "used", Type: binding.TypeInt32, Kind: binding.GlobalVariable}
	unused := &binding.VariableSymbol{Name: "unused", Type: binding.TypeInt32, Kind: binding.GlobalVariable}

	main := &binding.FunctionSymbol{Name: "main", ReturnType: binding.TypeVoid}
	globalScope := &binding.BoundGlobalScope{
		Diagnostics:  &diagnostics.Bag{},
		MainFunction: main,
		Functions:    []*binding.FunctionSymbol{main},
		Variables:    []*binding.VariableSymbol{used, unused},
		Statements: []binding.BoundStatement{
			&binding.BoundExpressionStatement{Expression: &binding.BoundVariableExpression{Variable: used}},
		},
	}
	program := &binding.BoundProgram{Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{}}

	diags := &diagnostics.Bag{}
	CheckUnused(diags, globalScope, program)

	report := UnusedReport(diags)
	if len(report) != 1 {
		t.Fatalf("expected 1 unused finding, got %d: %v", len(report), report)
	}
	if got := report[0]; got == "" || !contains(got, "unused") {
		t.Errorf("expected finding to name %q, got %q", "unused", got)
	}
}

func TestCheckUnusedSkipsMainAndCalledFunctions(t *testing.T) {
	called := &binding.FunctionSymbol{Name: "helper", ReturnType: binding.TypeVoid}
	uncalled := &binding.FunctionSymbol{Name: "deadCode", ReturnType: binding.TypeVoid}
	main := &binding.FunctionSymbol{Name: "main", ReturnType: binding.TypeVoid}

	globalScope := &binding.BoundGlobalScope{
		Diagnostics:  &diagnostics.Bag{},
		MainFunction: main,
		Functions:    []*binding.FunctionSymbol{main, called, uncalled},
	}
	program := &binding.BoundProgram{
		Functions: map[*binding.FunctionSymbol]*binding.BoundBlockStatement{
			main: {Statements: []binding.BoundStatement{
				&binding.BoundExpressionStatement{Expression: &binding.BoundCallExpression{Function: called}},
			}},
		},
	}

	diags := &diagnostics.Bag{}
	CheckUnused(diags, globalScope, program)

	report := UnusedReport(diags)
	if len(report) != 1 || !contains(report[0], "deadCode") {
		t.Fatalf("expected only deadCode flagged, got %v", report)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
