package syntax

import "github.com/lookbusy1344/mlang/source"

// Trivia is whitespace or a comment attached to a token: leading trivia
// attaches to the token that follows it, trailing trivia attaches to the
// token that precedes it, up to and including the next line break.
type Trivia struct {
	Kind     Kind
	Location source.Location
	Text     string
}

// Token is a lexical token: a kind, its span, its literal text, an optional
// decoded value for literals, and the trivia surrounding it. A token is
// "missing" when the parser fabricated it during error recovery; missing
// tokens carry empty text and do not advance position.
type Token struct {
	Kind           Kind
	Location       source.Location
	Text           string
	Value          any
	LeadingTrivia  []Trivia
	TrailingTrivia []Trivia
	IsMissing      bool
}

// Span returns the token's position span.
func (t Token) Span() source.Span { return t.Location.Span }

// FullText reconstructs leading trivia + text + trailing trivia, the
// building block of the lex-then-join round-trip property.
func (t Token) FullText() string {
	s := ""
	for _, tr := range t.LeadingTrivia {
		s += tr.Text
	}
	s += t.Text
	for _, tr := range t.TrailingTrivia {
		s += tr.Text
	}
	return s
}
