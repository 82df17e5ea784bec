package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionCompare(t *testing.T) {
	a := Position{Line: 1, Col: 4}
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(Position{Line: 2, Col: 0}))
	assert.Equal(t, 1, a.Compare(Position{Line: 1, Col: 3}))
	assert.True(t, Position{Line: 0, Col: 9}.Less(a))
	assert.Equal(t, "(1,4)", a.String())
}

func TestRangeNormalized(t *testing.T) {
	r := Range{Start: Position{Line: 3, Col: 1}, End: Position{Line: 1, Col: 7}}
	n := r.Normalized()
	assert.Equal(t, Position{Line: 1, Col: 7}, n.Start)
	assert.Equal(t, Position{Line: 3, Col: 1}, n.End)
	assert.Equal(t, n, n.Normalized())
	assert.False(t, n.IsEmpty())
	assert.Equal(t, n.Start, MinPosition(r.Start, r.End))
	assert.Equal(t, n.End, MaxPosition(r.Start, r.End))
}

func TestEditInfoShape(t *testing.T) {
	typed := EditInfo{Start: Position{Line: 2, Col: 1}, OldEnd: Position{Line: 2, Col: 1}, NewEnd: Position{Line: 2, Col: 2}}
	assert.True(t, typed.SingleLine())
	assert.False(t, typed.LinesChanged())

	// Replacing a two-line span with two lines keeps the count but not the row.
	replaced := EditInfo{Start: Position{Line: 0, Col: 0}, OldEnd: Position{Line: 1, Col: 3}, NewEnd: Position{Line: 1, Col: 5}}
	assert.False(t, replaced.LinesChanged())
	assert.False(t, replaced.SingleLine())
}
