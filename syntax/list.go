package syntax

import "github.com/lookbusy1344/mlang/source"

// SeparatedList holds a `,`-separated list of T together with the
// separator tokens between them, preserving the separators for diagnostics
// instead of discarding them once parsed.
type SeparatedList[T Node] struct {
	nodesAndSeparators []any // alternating T, Token, T, Token, ..., T
}

// NewSeparatedList builds a list from nodes and the separators between
// them; len(separators) must be len(nodes)-1 or len(nodes) (a trailing
// separator is tolerated during error recovery).
func NewSeparatedList[T Node](nodes []T, separators []Token) *SeparatedList[T] {
	l := &SeparatedList[T]{}
	for i, n := range nodes {
		l.nodesAndSeparators = append(l.nodesAndSeparators, n)
		if i < len(separators) {
			l.nodesAndSeparators = append(l.nodesAndSeparators, separators[i])
		}
	}
	return l
}

// Count returns the number of actual list elements (not separators).
func (l *SeparatedList[T]) Count() int {
	if l == nil {
		return 0
	}
	return (len(l.nodesAndSeparators) + 1) / 2
}

// Get returns the i-th element.
func (l *SeparatedList[T]) Get(i int) T {
	return l.nodesAndSeparators[i*2].(T)
}

// Items returns the elements as a plain slice, discarding separators.
func (l *SeparatedList[T]) Items() []T {
	if l == nil {
		return nil
	}
	out := make([]T, l.Count())
	for i := range out {
		out[i] = l.Get(i)
	}
	return out
}

// GetSeparator returns the separator token following the i-th element, if
// any.
func (l *SeparatedList[T]) GetSeparator(i int) (Token, bool) {
	idx := i*2 + 1
	if idx >= len(l.nodesAndSeparators) {
		return Token{}, false
	}
	return l.nodesAndSeparators[idx].(Token), true
}

// Location spans from the first element to the last.
func (l *SeparatedList[T]) Location() source.Location {
	items := l.Items()
	if len(items) == 0 {
		return source.Location{}
	}
	return spanUnion(items[0].Location(), items[len(items)-1].Location())
}
