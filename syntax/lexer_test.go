package syntax

import (
	"testing"

	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// lexAll drains a Lexer into its full token stream, including the
// terminal EOFToken.
func lexAll(content string) ([]Token, *diagnostics.Bag) {
	diags := &diagnostics.Bag{}
	text := source.New("test.ml", content)
	lex := NewLexer(text, diags)
	var toks []Token
	for {
		tok := lex.Lex()
		toks = append(toks, tok)
		if tok.Kind == EOFToken {
			break
		}
	}
	return toks, diags
}

// TestLexerRoundTrip exercises the lex round-trip property:
// joining every token's FullText (leading trivia + text + trailing
// trivia) in order reconstructs the exact original source.
func TestLexerRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"  \t\n",
		"function main() { return 1 + 2; }",
		"// a comment\nvar x: int32 = 1_000;",
		"/* block\ncomment */ x.y(1, 2.5, \"hi\", 'c')",
		"a == b != c <= d >= e && f || g",
		"x += 1; y -= 2; z *= 3;",
	}
	for _, src := range sources {
		toks, _ := lexAll(src)
		var rebuilt string
		for _, tok := range toks {
			rebuilt += tok.FullText()
		}
		if rebuilt != src {
			t.Errorf("round trip mismatch for %q: got %q", src, rebuilt)
		}
	}
}

func TestLexerIntegerPromotion(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"0", int32(0)},
		{"2147483647", int32(2147483647)},
		{"2147483648", uint32(2147483648)},
		{"4294967295", uint32(4294967295)},
		{"4294967296", int64(4294967296)},
		{"9223372036854775807", int64(9223372036854775807)},
		{"18446744073709551615", uint64(18446744073709551615)},
		{"1_000", int32(1000)},
	}
	for _, tt := range tests {
		toks, diags := lexAll(tt.text)
		if diags.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tt.text, diags.All())
		}
		if toks[0].Kind != NumberToken {
			t.Fatalf("%q: expected NumberToken, got %s", tt.text, toks[0].Kind)
		}
		if toks[0].Value != tt.want {
			t.Errorf("%q: want %#v (%T), got %#v (%T)", tt.text, tt.want, tt.want, toks[0].Value, toks[0].Value)
		}
	}
}

func TestLexerFloatLiteral(t *testing.T) {
	toks, diags := lexAll("3.14")
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	if toks[0].Kind != FloatToken {
		t.Fatalf("expected FloatToken, got %s", toks[0].Kind)
	}
	f, ok := toks[0].Value.(float32)
	if !ok || f != float32(3.14) {
		t.Errorf("expected float32(3.14), got %#v", toks[0].Value)
	}
}

func TestLexerBadCharacter(t *testing.T) {
	toks, diags := lexAll("@")
	if toks[0].Kind != BadToken {
		t.Fatalf("expected BadToken, got %s", toks[0].Kind)
	}
	if diags.Len() != 1 || diags.All()[0].Kind != diagnostics.BadCharacter {
		t.Fatalf("expected one BadCharacter diagnostic, got %v", diags.All())
	}
}

func TestLexerUnterminatedComment(t *testing.T) {
	_, diags := lexAll("/* never closed")
	if diags.Len() != 1 || diags.All()[0].Kind != diagnostics.UnterminatedComment {
		t.Fatalf("expected one UnterminatedComment diagnostic, got %v", diags.All())
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, diags := lexAll(`"oops`)
	if diags.Len() != 1 || diags.All()[0].Kind != diagnostics.UnterminatedString {
		t.Fatalf("expected one UnterminatedString diagnostic, got %v", diags.All())
	}
}

func TestLexerInvalidNumber(t *testing.T) {
	_, diags := lexAll("1.2.3")
	if diags.Len() != 1 || diags.All()[0].Kind != diagnostics.InvalidNumber {
		t.Fatalf("expected one InvalidNumber diagnostic, got %v", diags.All())
	}
}

func TestLexerCharLiteral(t *testing.T) {
	toks, diags := lexAll("'a'")
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	if toks[0].Kind != CharToken || toks[0].Value != Char('a') {
		t.Fatalf("expected CharToken('a'), got %s %#v", toks[0].Kind, toks[0].Value)
	}
}
