package syntax

import (
	"strconv"
	"strings"

	"github.com/lookbusy1344/mlang/diagnostics"
	"github.com/lookbusy1344/mlang/source"
)

// Char is the decoded payload of a character literal. It is a distinct
// type (not a bare rune) so a token value's dynamic type alone identifies
// the literal's language-level type: rune aliases int32, and integer
// literals already use int32.
type Char rune

// Lexer turns SourceText into a stream of tokens with attached trivia,
// one byte of lookahead at a time. It never fails hard: unrecognized
// input becomes a BadToken and a diagnostic.
type Lexer struct {
	text    *source.Text
	content string
	pos     int
	diags   *diagnostics.Bag
}

// NewLexer creates a lexer over text, reporting into diags.
func NewLexer(text *source.Text, diags *diagnostics.Bag) *Lexer {
	return &Lexer{text: text, content: text.String(), pos: 0, diags: diags}
}

func (l *Lexer) peek(offset int) byte {
	i := l.pos + offset
	if i >= len(l.content) {
		return 0
	}
	return l.content[i]
}

func (l *Lexer) current() byte { return l.peek(0) }

func (l *Lexer) advance() { l.pos++ }

func (l *Lexer) loc(start int) source.Location {
	return source.NewLocation(l.text, source.SpanFromBounds(start, l.pos))
}

// Lex reads the next token, with its leading and trailing trivia attached.
func (l *Lexer) Lex() Token {
	leading := l.readTrivia(true)
	start := l.pos
	kind, text, value := l.readTokenCore()
	tok := Token{
		Kind:          kind,
		Location:      l.loc(start),
		Text:          text,
		Value:         value,
		LeadingTrivia: leading,
	}
	if kind != EOFToken {
		tok.TrailingTrivia = l.readTrivia(false)
	}
	return tok
}

// readTrivia scans whitespace and comments. In leading mode it consumes
// everything up to the next real token, including any number of line
// breaks. In trailing mode it stops immediately after the first line break
// (inclusive), leaving further lines for the next token's leading trivia.
func (l *Lexer) readTrivia(leading bool) []Trivia {
	var out []Trivia
	for {
		c := l.current()
		switch {
		case c == 0:
			return out
		case c == ' ' || c == '\t':
			start := l.pos
			for l.current() == ' ' || l.current() == '\t' {
				l.advance()
			}
			out = append(out, Trivia{Kind: WhitespaceTrivia, Location: l.loc(start), Text: l.content[start:l.pos]})
		case c == '\r' || c == '\n':
			start := l.pos
			if c == '\r' && l.peek(1) == '\n' {
				l.advance()
			}
			l.advance()
			out = append(out, Trivia{Kind: LineBreakTrivia, Location: l.loc(start), Text: l.content[start:l.pos]})
			if !leading {
				return out
			}
		case c == '/' && l.peek(1) == '/':
			start := l.pos
			for l.current() != '\n' && l.current() != '\r' && l.current() != 0 {
				l.advance()
			}
			out = append(out, Trivia{Kind: SingleLineCommentTrivia, Location: l.loc(start), Text: l.content[start:l.pos]})
		case c == '/' && l.peek(1) == '*':
			start := l.pos
			l.advance()
			l.advance()
			terminated := false
			for l.current() != 0 {
				if l.current() == '*' && l.peek(1) == '/' {
					l.advance()
					l.advance()
					terminated = true
					break
				}
				l.advance()
			}
			if !terminated {
				l.diags.Report(l.loc(start), diagnostics.UnterminatedComment, "unterminated multi-line comment")
			}
			out = append(out, Trivia{Kind: MultiLineCommentTrivia, Location: l.loc(start), Text: l.content[start:l.pos]})
		default:
			return out
		}
	}
}

var twoCharOperators = map[string]Kind{
	"==": EqualsEqualsToken, "!=": BangEqualsToken,
	"<=": LessOrEqualsToken, ">=": GreaterOrEqualsToken,
	"+=": PlusEqualsToken, "-=": MinusEqualsToken,
	"*=": StarEqualsToken, "/=": SlashEqualsToken,
	"%=": PercentEqualsToken,
	"^=": CaretEqualsToken, "&=": AmpersandEqualsToken, "|=": PipeEqualsToken,
	"&&": AmpersandAmpersandToken, "||": PipePipeToken,
	"=>": EqualsGreaterToken,
}

var singleCharOperators = map[byte]Kind{
	'+': PlusToken, '-': MinusToken, '*': StarToken, '/': SlashToken, '%': PercentToken,
	'!': BangToken, '~': TildeToken, '&': AmpersandToken, '|': PipeToken, '^': CaretToken,
	'=': EqualsToken, '<': LessToken, '>': GreaterToken,
	'(': OpenParenToken, ')': CloseParenToken, '{': OpenBraceToken, '}': CloseBraceToken,
	',': CommaToken, ':': ColonToken, ';': SemicolonToken, '.': DotToken,
}

func (l *Lexer) readTokenCore() (Kind, string, any) {
	start := l.pos
	c := l.current()

	switch {
	case c == 0:
		return EOFToken, "", nil

	case isIdentifierStart(c):
		for isIdentifierPart(l.current()) {
			l.advance()
		}
		text := l.content[start:l.pos]
		return KeywordKind(text), text, nil

	case isDigit(c):
		return l.readNumber(start)

	case c == '"':
		return l.readQuoted(start, '"', StringToken)

	case c == '\'':
		return l.readQuoted(start, '\'', CharToken)

	default:
		if two, ok := twoCharOperators[string([]byte{c, l.peek(1)})]; ok {
			l.advance()
			l.advance()
			return two, l.content[start:l.pos], nil
		}
		if one, ok := singleCharOperators[c]; ok {
			l.advance()
			return one, l.content[start:l.pos], nil
		}
		l.advance()
		l.diags.Report(l.loc(start), diagnostics.BadCharacter, "bad character input: %q", rune(c))
		return BadToken, l.content[start:l.pos], nil
	}
}

func isIdentifierStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierPart(c byte) bool { return isIdentifierStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// readNumber reads a decimal or fractional literal with optional `_`
// separators (a digit must flank each underscore) and promotes the result
// to the narrowest integer or float type that fits.
func (l *Lexer) readNumber(start int) (Kind, string, any) {
	isFloat := false
	dotCount := 0

	readDigits := func() {
		for {
			c := l.current()
			if isDigit(c) {
				l.advance()
				continue
			}
			if c == '_' {
				prevDigit := l.pos > start && isDigit(l.content[l.pos-1])
				nextDigit := isDigit(l.peek(1))
				if !prevDigit || !nextDigit {
					l.diags.Report(l.loc(l.pos), diagnostics.InvalidNumber, "underscore in numeric literal must be flanked by digits")
				}
				l.advance()
				continue
			}
			break
		}
	}

	readDigits()
	for l.current() == '.' && isDigit(l.peek(1)) {
		dotCount++
		isFloat = true
		l.advance() // consume '.'
		readDigits()
		if l.current() == '.' && isDigit(l.peek(1)) {
			// a second fractional part: keep scanning so we can report
			// InvalidNumber once, rather than re-lexing mid-literal.
			continue
		}
		break
	}

	text := l.content[start:l.pos]
	clean := strings.ReplaceAll(text, "_", "")

	if dotCount > 1 {
		l.diags.Report(l.loc(start), diagnostics.InvalidNumber, "invalid number %q: multiple decimal points", text)
		return NumberToken, text, int32(0)
	}
	if len(clean) > 0 && clean[0] == '_' {
		l.diags.Report(l.loc(start), diagnostics.InvalidNumber, "invalid number %q: leading underscore", text)
		return NumberToken, text, int32(0)
	}

	if isFloat {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			l.diags.Report(l.loc(start), diagnostics.InvalidNumber, "invalid number %q", text)
			return FloatToken, text, float64(0)
		}
		if f32 := float32(f); float64(f32) == f {
			return FloatToken, text, f32
		}
		return FloatToken, text, f
	}

	return NumberToken, text, promoteInteger(clean)
}

// promoteInteger parses a decimal literal into the narrowest type that can
// represent it: int32 -> uint32 -> int64 -> uint64.
func promoteInteger(clean string) any {
	if v, err := strconv.ParseInt(clean, 10, 32); err == nil {
		return int32(v)
	}
	if v, err := strconv.ParseUint(clean, 10, 32); err == nil {
		return uint32(v)
	}
	if v, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return int64(v)
	}
	if v, err := strconv.ParseUint(clean, 10, 64); err == nil {
		return uint64(v)
	}
	return int64(0)
}

// readQuoted reads a "…" or '…' literal. A doubled quote character escapes
// itself inside the literal. EOF or a bare newline before the closing quote
// is an UnterminatedString error; a char literal whose decoded length isn't
// exactly one rune is its own error.
func (l *Lexer) readQuoted(start int, quote byte, kind Kind) (Kind, string, any) {
	l.advance() // consume opening quote
	var sb strings.Builder
	terminated := false

	for {
		c := l.current()
		if c == 0 || c == '\n' || c == '\r' {
			l.diags.Report(l.loc(start), diagnostics.UnterminatedString, "unterminated string or character literal")
			break
		}
		if c == quote {
			if l.peek(1) == quote {
				sb.WriteByte(quote)
				l.advance()
				l.advance()
				continue
			}
			l.advance() // consume closing quote
			terminated = true
			break
		}
		sb.WriteByte(c)
		l.advance()
	}

	text := l.content[start:l.pos]
	value := sb.String()

	if kind == CharToken && terminated {
		runes := []rune(value)
		if len(runes) != 1 {
			l.diags.Report(l.loc(start), diagnostics.InvalidNumber, "character literal must contain exactly one character, got %d", len(runes))
			return CharToken, text, Char(0)
		}
		return CharToken, text, Char(runes[0])
	}

	return kind, text, value
}
