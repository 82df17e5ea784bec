package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/tidecore/internal/types"
)

func TestNormalizedIgnoresDragDirection(t *testing.T) {
	backward := New(types.Position{Line: 0, Col: 5}, types.Position{Line: 0, Col: 2})
	start, end := backward.Normalized()
	assert.Equal(t, types.Position{Line: 0, Col: 2}, start)
	assert.Equal(t, types.Position{Line: 0, Col: 5}, end)

	forward := New(types.Position{Line: 0, Col: 2}, types.Position{Line: 0, Col: 5})
	fs, fe := forward.Normalized()
	assert.Equal(t, start, fs)
	assert.Equal(t, end, fe)

	assert.True(t, backward.IsReversed())
	assert.False(t, forward.IsReversed())
	assert.Equal(t, types.Position{Line: 0, Col: 5}, backward.Anchor, "anchor is never reordered")
}

func TestNormalizedAcrossLines(t *testing.T) {
	s := New(types.Position{Line: 3, Col: 0}, types.Position{Line: 1, Col: 7})
	assert.Equal(t, types.Range{
		Start: types.Position{Line: 1, Col: 7},
		End:   types.Position{Line: 3, Col: 0},
	}, s.Range())
}

func TestContains(t *testing.T) {
	s := New(types.Position{Line: 0, Col: 2}, types.Position{Line: 1, Col: 1})
	assert.True(t, s.Contains(types.Position{Line: 0, Col: 2}))
	assert.True(t, s.Contains(types.Position{Line: 0, Col: 40}))
	assert.False(t, s.Contains(types.Position{Line: 1, Col: 1}))
	assert.False(t, s.Contains(types.Position{Line: 0, Col: 1}))
}

func TestExtendKeepsAnchor(t *testing.T) {
	s := Collapsed(types.Position{Line: 2, Col: 2})
	assert.True(t, s.IsEmpty())
	s = s.Extend(types.Position{Line: 2, Col: 6})
	assert.False(t, s.IsEmpty())
	assert.Equal(t, types.Position{Line: 2, Col: 2}, s.Anchor)
}
