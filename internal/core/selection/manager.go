// Package selection holds the anchor/active selection value and its
// normalization rules.
package selection

import "github.com/bethropolis/tidecore/internal/types"

// Selection is a pair of positions. Anchor is where the user started the
// selection and never moves while extending; Active follows the cursor.
// The pair is stored as given; Normalized computes the ordered form.
type Selection struct {
	Anchor types.Position
	Active types.Position
}

// New creates a selection from anchor to active.
func New(anchor, active types.Position) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// Collapsed creates an empty selection at pos.
func Collapsed(pos types.Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

// IsEmpty reports whether anchor and active coincide.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Normalized returns (start, end) with start <= end regardless of drag
// direction.
func (s Selection) Normalized() (start, end types.Position) {
	if s.Active.Less(s.Anchor) {
		return s.Active, s.Anchor
	}
	return s.Anchor, s.Active
}

// Range returns the normalized selection as a Range.
func (s Selection) Range() types.Range {
	start, end := s.Normalized()
	return types.Range{Start: start, End: end}
}

// IsReversed reports whether the active end lies before the anchor.
func (s Selection) IsReversed() bool {
	return s.Active.Less(s.Anchor)
}

// Contains reports whether pos lies inside [start, end).
func (s Selection) Contains(pos types.Position) bool {
	start, end := s.Normalized()
	return !pos.Less(start) && pos.Less(end)
}

// Extend moves only the active end.
func (s Selection) Extend(active types.Position) Selection {
	s.Active = active
	return s
}
