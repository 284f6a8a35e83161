// Package diagnostics collects the user-visible errors and warnings
// produced by every pipeline stage. Nothing here ever panics or aborts a
// stage early; diagnostics are pure data, appended in declaration order and
// only sorted for presentation.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/lookbusy1344/mlang/source"
)

// Kind categorizes a diagnostic for tooling that wants to filter or count
// by failure mode.
type Kind int

const (
	BadCharacter Kind = iota
	UnterminatedString
	UnterminatedComment
	InvalidNumber
	UnexpectedToken
	UndefinedType
	UndefinedVariable
	UndefinedFunction
	NotAFunction
	NotAVariable
	NotAClass
	SymbolAlreadyDeclared
	ParameterAlreadyDeclared
	CannotAssign
	CannotConvert
	CannotConvertImplicitly
	UndefinedUnaryOperator
	UndefinedBinaryOperator
	ExpressionMustHaveValue
	InvalidBreakOrContinue
	InvalidReturnExpression
	MissingReturnExpression
	AllPathsMustReturn
	InvalidExpressionStatement
	DivideByZero
	UnreachableCode
	CannotMixMainAndGlobalStatements
	MainMustHaveCorrectSignature
	OnlyOneFileCanHaveGlobalStatements
	CannotUseThisOutsideOfReceiver
	UndefinedClassField
	InvalidReference
	RequiredTypeNotFound
	RequiredTypeAmbiguous
	RequiredMethodNotFound
	UnusedVariable
	UnusedFunction
)

var kindNames = map[Kind]string{
	BadCharacter:                       "BadCharacter",
	UnterminatedString:                 "UnterminatedString",
	UnterminatedComment:                "UnterminatedComment",
	InvalidNumber:                      "InvalidNumber",
	UnexpectedToken:                    "UnexpectedToken",
	UndefinedType:                      "UndefinedType",
	UndefinedVariable:                  "UndefinedVariable",
	UndefinedFunction:                  "UndefinedFunction",
	NotAFunction:                       "NotAFunction",
	NotAVariable:                       "NotAVariable",
	NotAClass:                          "NotAClass",
	SymbolAlreadyDeclared:              "SymbolAlreadyDeclared",
	ParameterAlreadyDeclared:           "ParameterAlreadyDeclared",
	CannotAssign:                       "CannotAssign",
	CannotConvert:                      "CannotConvert",
	CannotConvertImplicitly:            "CannotConvertImplicitly",
	UndefinedUnaryOperator:             "UndefinedUnaryOperator",
	UndefinedBinaryOperator:            "UndefinedBinaryOperator",
	ExpressionMustHaveValue:            "ExpressionMustHaveValue",
	InvalidBreakOrContinue:             "InvalidBreakOrContinue",
	InvalidReturnExpression:            "InvalidReturnExpression",
	MissingReturnExpression:            "MissingReturnExpression",
	AllPathsMustReturn:                 "AllPathsMustReturn",
	InvalidExpressionStatement:         "InvalidExpressionStatement",
	DivideByZero:                       "DivideByZero",
	UnreachableCode:                    "UnreachableCode",
	CannotMixMainAndGlobalStatements:   "CannotMixMainAndGlobalStatements",
	MainMustHaveCorrectSignature:       "MainMustHaveCorrectSignature",
	OnlyOneFileCanHaveGlobalStatements: "OnlyOneFileCanHaveGlobalStatements",
	CannotUseThisOutsideOfReceiver:     "CannotUseThisOutsideOfReceiver",
	UndefinedClassField:                "UndefinedClassField",
	InvalidReference:                   "InvalidReference",
	RequiredTypeNotFound:               "RequiredTypeNotFound",
	RequiredTypeAmbiguous:              "RequiredTypeAmbiguous",
	RequiredMethodNotFound:             "RequiredMethodNotFound",
	UnusedVariable:                     "UnusedVariable",
	UnusedFunction:                     "UnusedFunction",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Severity distinguishes errors (which gate emission) from warnings (which
// never do, e.g. UnreachableCode).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single user-visible finding with its source location.
type Diagnostic struct {
	Location source.Location
	Kind     Kind
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	line, col := d.Location.StartLineColumn()
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Location.Filename(), line+1, col+1, d.Severity, d.Message)
}

// Bag accumulates diagnostics across a single pipeline run. It is never
// read until the stage that produced it has finished; appends are in
// declaration/visitation order and stable-sorted only for presentation.
type Bag struct {
	diagnostics []Diagnostic
}

// Report appends a new error diagnostic.
func (b *Bag) Report(loc source.Location, kind Kind, format string, args ...any) {
	b.diagnostics = append(b.diagnostics, Diagnostic{
		Location: loc,
		Kind:     kind,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warn appends a new warning diagnostic.
func (b *Bag) Warn(loc source.Location, kind Kind, format string, args ...any) {
	b.diagnostics = append(b.diagnostics, Diagnostic{
		Location: loc,
		Kind:     kind,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
	})
}

// AddRange appends every diagnostic from other into b, preserving order.
func (b *Bag) AddRange(other *Bag) {
	if other == nil {
		return
	}
	b.diagnostics = append(b.diagnostics, other.diagnostics...)
}

// All returns every diagnostic, in accumulation order.
func (b *Bag) All() []Diagnostic { return b.diagnostics }

// HasErrors reports whether any diagnostic is an error (not merely a
// warning). This is the sole gate between bindProgram and emission.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the total diagnostic count, errors and warnings combined.
func (b *Bag) Len() int { return len(b.diagnostics) }

// Sorted returns a copy of the diagnostics ordered by file, then by start
// position, suitable for stable presentation.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := out[i].Location.Filename(), out[j].Location.Filename()
		if fi != fj {
			return fi < fj
		}
		return out[i].Location.Span.Start < out[j].Location.Span.Start
	})
	return out
}
