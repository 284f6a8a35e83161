// Package source holds the immutable text backing store shared by every
// later compiler stage: the lexer reads from it, diagnostics point into it,
// and nothing downstream ever copies its bytes.
package source

import "sort"

// Text is an immutable piece of source code together with a precomputed
// line map, so that any byte offset can be translated to a (line, column)
// pair without rescanning the text.
type Text struct {
	Filename string
	content  string
	lines    []int // byte offset of the start of each line
}

// New builds a Text over content, precomputing line start offsets.
func New(filename, content string) *Text {
	return &Text{
		Filename: filename,
		content:  content,
		lines:    computeLineStarts(content),
	}
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Length returns the number of bytes in the text.
func (t *Text) Length() int { return len(t.content) }

// String returns the full source text.
func (t *Text) String() string { return t.content }

// Substring returns content[start:start+length].
func (t *Text) Substring(start, length int) string {
	return t.content[start : start+length]
}

// At returns the byte at offset pos, or 0 if pos is out of range.
func (t *Text) At(pos int) byte {
	if pos < 0 || pos >= len(t.content) {
		return 0
	}
	return t.content[pos]
}

// LineIndex returns the 0-based line number containing byte offset pos.
func (t *Text) LineIndex(pos int) int {
	idx := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > pos })
	return idx - 1
}

// LineColumn returns the 0-based (line, column) for a byte offset.
func (t *Text) LineColumn(pos int) (line, column int) {
	line = t.LineIndex(pos)
	if line < 0 {
		return 0, 0
	}
	column = pos - t.lines[line]
	return line, column
}

// LineCount returns the number of lines in the text.
func (t *Text) LineCount() int { return len(t.lines) }

// Line returns the text of the given 0-based line, excluding its terminator.
func (t *Text) Line(index int) string {
	if index < 0 || index >= len(t.lines) {
		return ""
	}
	start := t.lines[index]
	end := len(t.content)
	if index+1 < len(t.lines) {
		end = t.lines[index+1]
	}
	for end > start && (t.content[end-1] == '\n' || t.content[end-1] == '\r') {
		end--
	}
	return t.content[start:end]
}

// Span is a half-open byte range [Start, Start+Length) in some Text.
type Span struct {
	Start  int
	Length int
}

// NewSpan builds a Span from a start and length.
func NewSpan(start, length int) Span { return Span{Start: start, Length: length} }

// SpanFromBounds builds a Span covering [start, end).
func SpanFromBounds(start, end int) Span { return Span{Start: start, Length: end - start} }

// End returns the exclusive end offset of the span.
func (s Span) End() int { return s.Start + s.Length }

// OverlapsWith reports whether two spans share at least one byte.
func (s Span) OverlapsWith(other Span) bool {
	return s.Start < other.End() && other.Start < s.End()
}

// Location pairs a span with the Text it refers into, for diagnostics and
// for any stage that needs to recover source text from a node.
type Location struct {
	Text *Text
	Span Span
}

// NewLocation builds a Location.
func NewLocation(text *Text, span Span) Location {
	return Location{Text: text, Span: span}
}

// String returns the source text covered by the location.
func (l Location) String() string {
	if l.Text == nil {
		return ""
	}
	return l.Text.Substring(l.Span.Start, l.Span.Length)
}

// StartLineColumn returns the 0-based (line, column) of the span's start.
func (l Location) StartLineColumn() (line, column int) {
	if l.Text == nil {
		return 0, 0
	}
	return l.Text.LineColumn(l.Span.Start)
}

// EndLineColumn returns the 0-based (line, column) of the span's end.
func (l Location) EndLineColumn() (line, column int) {
	if l.Text == nil {
		return 0, 0
	}
	end := l.Span.End()
	if end > 0 {
		end--
	}
	return l.Text.LineColumn(end)
}

// Filename returns the owning text's filename, or "" if there is none.
func (l Location) Filename() string {
	if l.Text == nil {
		return ""
	}
	return l.Text.Filename
}
