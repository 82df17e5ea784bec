// internal/types/position.go
package types

import "fmt"

// Position represents a caret location within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune index) within the line; Col == line length
// means "after the last character".
type Position struct {
	Line int
	Col  int // Rune index
}

// Compare orders positions lexicographically by (Line, Col).
// It returns -1, 0 or +1.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	}
	return 0
}

// Less reports whether p comes before o.
func (p Position) Less(o Position) bool {
	return p.Compare(o) < 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Col)
}

// Range is a span of text between two positions, End exclusive.
type Range struct {
	Start Position
	End   Position
}

// Normalized returns the range with Start <= End.
func (r Range) Normalized() Range {
	if r.End.Less(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// MinPosition returns the earlier of two positions.
func MinPosition(a, b Position) Position {
	if b.Less(a) {
		return b
	}
	return a
}

// MaxPosition returns the later of two positions.
func MaxPosition(a, b Position) Position {
	if a.Less(b) {
		return b
	}
	return a
}
