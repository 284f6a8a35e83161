// Package binding resolves a parsed syntax.Tree against scoped symbol
// tables into a typed bound tree: type/overload resolution, conversion
// classification, constant folding, and diagnostic emission all live
// here.
package binding

import "github.com/lookbusy1344/mlang/syntax"

// TypeSymbol is a primitive or user-defined class type. Identity is
// pointer-equal: two TypeSymbols describe the same type iff they are the
// same pointer.
type TypeSymbol struct {
	Name      string
	Default   any
	IsNumeric bool
	IsFloat   bool
	IsSigned  bool
	BitSize   int // 0 for string/object/bool/char/void/error/class types
	Class     *ClassSymbol
}

func (t *TypeSymbol) String() string { return t.Name }

// The fixed set of primitive types, one singleton each so that pointer
// identity doubles as type identity everywhere in the bound tree.
var (
	TypeError   = &TypeSymbol{Name: "error"}
	TypeObject  = &TypeSymbol{Name: "object"}
	TypeVoid    = &TypeSymbol{Name: "void"}
	TypeBool    = &TypeSymbol{Name: "bool", Default: false}
	TypeInt8    = &TypeSymbol{Name: "int8", IsNumeric: true, IsSigned: true, BitSize: 8, Default: int8(0)}
	TypeInt16   = &TypeSymbol{Name: "int16", IsNumeric: true, IsSigned: true, BitSize: 16, Default: int16(0)}
	TypeInt32   = &TypeSymbol{Name: "int32", IsNumeric: true, IsSigned: true, BitSize: 32, Default: int32(0)}
	TypeInt64   = &TypeSymbol{Name: "int64", IsNumeric: true, IsSigned: true, BitSize: 64, Default: int64(0)}
	TypeUInt8   = &TypeSymbol{Name: "uint8", IsNumeric: true, BitSize: 8, Default: uint8(0)}
	TypeUInt16  = &TypeSymbol{Name: "uint16", IsNumeric: true, BitSize: 16, Default: uint16(0)}
	TypeUInt32  = &TypeSymbol{Name: "uint32", IsNumeric: true, BitSize: 32, Default: uint32(0)}
	TypeUInt64  = &TypeSymbol{Name: "uint64", IsNumeric: true, BitSize: 64, Default: uint64(0)}
	TypeFloat32 = &TypeSymbol{Name: "float32", IsNumeric: true, IsFloat: true, IsSigned: true, BitSize: 32, Default: float32(0)}
	TypeFloat64 = &TypeSymbol{Name: "float64", IsNumeric: true, IsFloat: true, IsSigned: true, BitSize: 64, Default: float64(0)}
	// float128 has no native Go representation; it is carried as float64
	// with its own identity so conversion/overload rules still treat it as
	// the widest float distinctly from float64.
	TypeFloat128 = &TypeSymbol{Name: "float128", IsNumeric: true, IsFloat: true, IsSigned: true, BitSize: 128, Default: float64(0)}
	TypeChar     = &TypeSymbol{Name: "char", Default: syntax.Char(0)}
	TypeString   = &TypeSymbol{Name: "string", Default: ""}
)

// PrimitiveTypes lists every built-in type, in the order the binder uses
// for built-in-name lookup and for the explicit-conversion call heuristic.
var PrimitiveTypes = []*TypeSymbol{
	TypeObject, TypeBool,
	TypeInt8, TypeInt16, TypeInt32, TypeInt64,
	TypeUInt8, TypeUInt16, TypeUInt32, TypeUInt64,
	TypeFloat32, TypeFloat64, TypeFloat128,
	TypeChar, TypeString, TypeVoid,
}

// LookupPrimitiveByKeyword maps a syntax keyword token kind to its
// TypeSymbol, or nil if kind does not name a primitive type.
func LookupPrimitiveByKeyword(kind syntax.Kind) *TypeSymbol {
	switch kind {
	case syntax.ObjectKeyword:
		return TypeObject
	case syntax.BoolKeyword:
		return TypeBool
	case syntax.Int8Keyword:
		return TypeInt8
	case syntax.Int16Keyword:
		return TypeInt16
	case syntax.Int32Keyword:
		return TypeInt32
	case syntax.Int64Keyword:
		return TypeInt64
	case syntax.UInt8Keyword:
		return TypeUInt8
	case syntax.UInt16Keyword:
		return TypeUInt16
	case syntax.UInt32Keyword:
		return TypeUInt32
	case syntax.UInt64Keyword:
		return TypeUInt64
	case syntax.Float32Keyword:
		return TypeFloat32
	case syntax.Float64Keyword:
		return TypeFloat64
	case syntax.Float128Keyword:
		return TypeFloat128
	case syntax.CharKeyword:
		return TypeChar
	case syntax.StringKeyword:
		return TypeString
	case syntax.VoidKeyword:
		return TypeVoid
	default:
		return nil
	}
}

// Symbol is any named entity a scope can declare: a variable, a function,
// or a class.
type Symbol interface {
	SymbolName() string
}

// VariableKind distinguishes the three places a variable can live.
type VariableKind int

const (
	GlobalVariable VariableKind = iota
	LocalVariable
	ParameterVariable
)

// VariableSymbol is a declared variable, parameter, or global.
type VariableSymbol struct {
	Name       string
	Type       *TypeSymbol
	IsReadOnly bool
	Constant   *BoundConstant // non-nil when declared `const` with a foldable initializer
	Kind       VariableKind
	Ordinal    int // meaningful only when Kind == ParameterVariable
}

func (v *VariableSymbol) SymbolName() string { return v.Name }

// FunctionSymbol is a free function or instance method. Overloads of the
// same name form a singly linked chain via OverloadFor, walked from the
// entry symbol a call resolves to toward nil; there is no ranking and
// no ambiguity detection, by design.
type FunctionSymbol struct {
	Name        string
	Parameters  []*VariableSymbol // Kind == ParameterVariable, in order
	ReturnType  *TypeSymbol
	Declaration *syntax.FunctionDeclaration // nil for synthesized functions
	Receiver    *ClassSymbol                // nil for free functions
	OverloadFor *FunctionSymbol
	IsBuiltin   bool
}

func (f *FunctionSymbol) SymbolName() string { return f.Name }

// FieldSymbol is one member of a class. Only non-const fields participate
// in the synthesized constructor's parameter list, in declaration order.
type FieldSymbol struct {
	Name          string
	Type          *TypeSymbol
	IsConst       bool
	CtorOrdinal   int // index into the constructor parameter list, -1 if const
	ConstantValue *BoundConstant
}

// ClassSymbol is a reference type: its fields, its two synthesized
// constructors (a zero-arg one and a parameterized one linked to it via
// OverloadFor), and the methods declared with it as receiver.
type ClassSymbol struct {
	Name        string
	Type        *TypeSymbol
	Fields      []*FieldSymbol
	Methods     map[string]*FunctionSymbol
	ZeroCtor    *FunctionSymbol
	ParamCtor   *FunctionSymbol
	Declaration *syntax.ClassDeclaration
}

func (c *ClassSymbol) SymbolName() string { return c.Name }

// FieldByName finds a field declared on the class, or nil.
func (c *ClassSymbol) FieldByName(name string) *FieldSymbol {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// CtorParameters returns the writable-field-derived parameter list shared
// by ParamCtor.
func (c *ClassSymbol) CtorParameters() []*VariableSymbol {
	return c.ParamCtor.Parameters
}
