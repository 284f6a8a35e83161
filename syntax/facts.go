// Package syntax turns source text into an immutable syntax tree: a lexer
// producing tokens and trivia, a recursive-descent/Pratt-precedence parser
// building the tree, and the fact tables (keywords, operator precedence)
// both stages share.
package syntax

// Kind tags every token and every syntax node. Tokens and nodes share
// one enumeration so the lexer, the parser, and tooling all speak the
// same vocabulary.
type Kind int

const (
	// Special tokens.
	BadToken Kind = iota
	EOFToken

	// Literal and name tokens.
	NumberToken
	FloatToken
	StringToken
	CharToken
	IdentifierToken

	// Punctuation.
	PlusToken
	MinusToken
	StarToken
	SlashToken
	PercentToken
	BangToken
	TildeToken
	AmpersandToken
	AmpersandAmpersandToken
	PipeToken
	PipePipeToken
	CaretToken
	EqualsToken
	EqualsEqualsToken
	BangEqualsToken
	LessToken
	LessOrEqualsToken
	GreaterToken
	GreaterOrEqualsToken
	OpenParenToken
	CloseParenToken
	OpenBraceToken
	CloseBraceToken
	CommaToken
	ColonToken
	SemicolonToken
	DotToken
	PlusEqualsToken
	MinusEqualsToken
	StarEqualsToken
	SlashEqualsToken
	PercentEqualsToken
	AmpersandEqualsToken
	PipeEqualsToken
	CaretEqualsToken
	EqualsGreaterToken

	// Keywords.
	TrueKeyword
	FalseKeyword
	VarKeyword
	ConstKeyword
	IfKeyword
	ElseKeyword
	WhileKeyword
	DoKeyword
	ForKeyword
	BreakKeyword
	ContinueKeyword
	ReturnKeyword
	FunctionKeyword
	ClassKeyword
	ThisKeyword
	DefaultKeyword
	InKeyword

	// Built-in type keywords.
	ObjectKeyword
	BoolKeyword
	Int8Keyword
	Int16Keyword
	Int32Keyword
	Int64Keyword
	UInt8Keyword
	UInt16Keyword
	UInt32Keyword
	UInt64Keyword
	Float32Keyword
	Float64Keyword
	Float128Keyword
	CharKeyword
	StringKeyword
	VoidKeyword

	// Trivia.
	SkippedTextTrivia
	LineBreakTrivia
	WhitespaceTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia

	// Nodes: compilation unit / members.
	CompilationUnitNode
	FunctionDeclarationNode
	ClassDeclarationNode
	GlobalStatementNode
	ParameterNode
	FieldDeclarationNode

	// Nodes: statements.
	BlockStatementNode
	VariableDeclarationNode
	IfStatementNode
	ElseClauseNode
	WhileStatementNode
	DoWhileStatementNode
	ForStatementNode
	BreakStatementNode
	ContinueStatementNode
	ReturnStatementNode
	ExpressionStatementNode

	// Nodes: expressions.
	LiteralExpressionNode
	NameExpressionNode
	ParenthesizedExpressionNode
	UnaryExpressionNode
	BinaryExpressionNode
	AssignmentExpressionNode
	CompoundAssignmentExpressionNode
	FieldAssignmentExpressionNode
	CompoundFieldAssignmentExpressionNode
	CallExpressionNode
	MemberAccessExpressionNode
	ThisExpressionNode

	// Type clause.
	TypeClauseNode
)

var kindNames = map[Kind]string{
	BadToken: "BadToken", EOFToken: "EOF",
	NumberToken: "Number", FloatToken: "Float", StringToken: "String", CharToken: "Char", IdentifierToken: "Identifier",
	PlusToken: "+", MinusToken: "-", StarToken: "*", SlashToken: "/", PercentToken: "%",
	BangToken: "!", TildeToken: "~", AmpersandToken: "&", AmpersandAmpersandToken: "&&",
	PipeToken: "|", PipePipeToken: "||", CaretToken: "^",
	EqualsToken: "=", EqualsEqualsToken: "==", BangEqualsToken: "!=",
	LessToken: "<", LessOrEqualsToken: "<=", GreaterToken: ">", GreaterOrEqualsToken: ">=",
	OpenParenToken: "(", CloseParenToken: ")", OpenBraceToken: "{", CloseBraceToken: "}",
	CommaToken: ",", ColonToken: ":", SemicolonToken: ";", DotToken: ".",
	PlusEqualsToken: "+=", MinusEqualsToken: "-=", StarEqualsToken: "*=", SlashEqualsToken: "/=",
	PercentEqualsToken: "%=", AmpersandEqualsToken: "&=", PipeEqualsToken: "|=", CaretEqualsToken: "^=",
	EqualsGreaterToken: "=>",
	TrueKeyword:        "true", FalseKeyword: "false", VarKeyword: "var", ConstKeyword: "const",
	IfKeyword: "if", ElseKeyword: "else", WhileKeyword: "while", DoKeyword: "do", ForKeyword: "for",
	BreakKeyword: "break", ContinueKeyword: "continue", ReturnKeyword: "return",
	FunctionKeyword: "function", ClassKeyword: "class", ThisKeyword: "this", DefaultKeyword: "default",
	InKeyword: "in",
	ObjectKeyword: "object", BoolKeyword: "bool",
	Int8Keyword: "int8", Int16Keyword: "int16", Int32Keyword: "int32", Int64Keyword: "int64",
	UInt8Keyword: "uint8", UInt16Keyword: "uint16", UInt32Keyword: "uint32", UInt64Keyword: "uint64",
	Float32Keyword: "float32", Float64Keyword: "float64", Float128Keyword: "float128",
	CharKeyword: "char", StringKeyword: "string", VoidKeyword: "void",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "SyntaxKind"
}

// keywords maps identifier text to its keyword Kind, consulted once an
// identifier has been fully scanned.
var keywords = map[string]Kind{
	"true": TrueKeyword, "false": FalseKeyword,
	"var": VarKeyword, "const": ConstKeyword,
	"if": IfKeyword, "else": ElseKeyword,
	"while": WhileKeyword, "do": DoKeyword, "for": ForKeyword,
	"break": BreakKeyword, "continue": ContinueKeyword, "return": ReturnKeyword,
	"function": FunctionKeyword, "class": ClassKeyword, "this": ThisKeyword, "default": DefaultKeyword,
	"in": InKeyword,
	"object": ObjectKeyword, "bool": BoolKeyword,
	"int8": Int8Keyword, "int16": Int16Keyword, "int32": Int32Keyword, "int64": Int64Keyword,
	"uint8": UInt8Keyword, "uint16": UInt16Keyword, "uint32": UInt32Keyword, "uint64": UInt64Keyword,
	"float32": Float32Keyword, "float64": Float64Keyword, "float128": Float128Keyword,
	"char": CharKeyword, "string": StringKeyword, "void": VoidKeyword,
}

// KeywordKind classifies text as a keyword, or returns IdentifierToken.
func KeywordKind(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return IdentifierToken
}

// IsTypeKeyword reports whether kind names one of the built-in primitive
// types, used by the binder and by the parser's conversion-call heuristic.
func IsTypeKeyword(kind Kind) bool {
	switch kind {
	case ObjectKeyword, BoolKeyword,
		Int8Keyword, Int16Keyword, Int32Keyword, Int64Keyword,
		UInt8Keyword, UInt16Keyword, UInt32Keyword, UInt64Keyword,
		Float32Keyword, Float64Keyword, Float128Keyword,
		CharKeyword, StringKeyword, VoidKeyword:
		return true
	}
	return false
}

// UnaryOperatorPrecedence returns the precedence of kind as a prefix unary
// operator, or 0 if kind is not one.
func UnaryOperatorPrecedence(kind Kind) int {
	switch kind {
	case PlusToken, MinusToken, BangToken, TildeToken:
		return 10
	default:
		return 0
	}
}

// BinaryOperatorPrecedence returns the precedence of kind as an infix binary
// operator (low to high), or 0 if kind is not one.
// Assignment is handled separately by the parser (right-associative, lowest
// precedence) and is not part of this table.
func BinaryOperatorPrecedence(kind Kind) int {
	switch kind {
	case PipePipeToken:
		return 1
	case AmpersandAmpersandToken:
		return 2
	case PipeToken:
		return 3
	case CaretToken:
		return 4
	case AmpersandToken:
		return 5
	case EqualsEqualsToken, BangEqualsToken:
		return 6
	case LessToken, LessOrEqualsToken, GreaterToken, GreaterOrEqualsToken:
		return 7
	case PlusToken, MinusToken:
		return 8
	case StarToken, SlashToken, PercentToken:
		return 9
	default:
		return 0
	}
}

// IsCompoundAssignmentOperator reports whether kind is a compound
// assignment token (+=, -=, etc.), and if so, which plain binary operator
// it recovers via the assignment-op -> binary-op table.
func IsCompoundAssignmentOperator(kind Kind) (Kind, bool) {
	switch kind {
	case PlusEqualsToken:
		return PlusToken, true
	case MinusEqualsToken:
		return MinusToken, true
	case StarEqualsToken:
		return StarToken, true
	case SlashEqualsToken:
		return SlashToken, true
	case PercentEqualsToken:
		return PercentToken, true
	case AmpersandEqualsToken:
		return AmpersandToken, true
	case PipeEqualsToken:
		return PipeToken, true
	case CaretEqualsToken:
		return CaretToken, true
	default:
		return BadToken, false
	}
}

// IsAssignmentOperator reports whether kind starts an assignment-precedence
// expression (=, or any compound form).
func IsAssignmentOperator(kind Kind) bool {
	if kind == EqualsToken {
		return true
	}
	_, ok := IsCompoundAssignmentOperator(kind)
	return ok
}
