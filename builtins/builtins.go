// Package builtins declares the handful of functions every compilation's
// root scope starts with: console I/O, file I/O, and a
// single pseudo-random number source backed by a lazily-initialized
// process-global generator.
package builtins

import (
	"math/rand"
	"sync"

	"github.com/lookbusy1344/mlang/binding"
)

var (
	rngOnce sync.Once
	rng     *rand.Rand
)

// Rand returns the process-wide random source, created on first use
// (a one-shot lazy cell; no explicit seeding hook, matching the language
// having no way to request a deterministic seed).
func Rand() *rand.Rand {
	rngOnce.Do(func() {
		rng = rand.New(rand.NewSource(rand.Int63()))
	})
	return rng
}

func param(name string, t *binding.TypeSymbol, ordinal int) *binding.VariableSymbol {
	return &binding.VariableSymbol{Name: name, Type: t, Kind: binding.ParameterVariable, Ordinal: ordinal}
}

// All returns the built-in function table, declared into the root scope
// ahead of any user code.
func All() []*binding.FunctionSymbol {
	return []*binding.FunctionSymbol{
		{Name: "write", Parameters: []*binding.VariableSymbol{param("value", binding.TypeObject, 0)}, ReturnType: binding.TypeVoid, IsBuiltin: true},
		{Name: "writeLine", Parameters: []*binding.VariableSymbol{param("value", binding.TypeObject, 0)}, ReturnType: binding.TypeVoid, IsBuiltin: true},
		{Name: "readLine", ReturnType: binding.TypeString, IsBuiltin: true},
		{Name: "readKey", ReturnType: binding.TypeChar, IsBuiltin: true},
		{Name: "readAllText", Parameters: []*binding.VariableSymbol{param("path", binding.TypeString, 0)}, ReturnType: binding.TypeString, IsBuiltin: true},
		{Name: "writeAllText", Parameters: []*binding.VariableSymbol{
			param("path", binding.TypeString, 0), param("contents", binding.TypeString, 1),
		}, ReturnType: binding.TypeVoid, IsBuiltin: true},
		{Name: "rnd", Parameters: []*binding.VariableSymbol{param("max", binding.TypeInt32, 0)}, ReturnType: binding.TypeInt32, IsBuiltin: true},
	}
}

// ByName looks up a built-in by name, for the runtime/tooling layer that
// needs to dispatch a BoundCallExpression whose Function.IsBuiltin is true.
func ByName(name string) *binding.FunctionSymbol {
	for _, fn := range All() {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
