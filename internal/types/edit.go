package types

// EditInfo describes a single content change so that derived views (visual
// row map, match set, render caches) can decide what to invalidate.
type EditInfo struct {
	Start  Position // Where the change began
	OldEnd Position // End of the replaced text before the change
	NewEnd Position // End of the inserted text after the change
}

// LinesChanged reports whether the edit added or removed lines.
func (e EditInfo) LinesChanged() bool {
	return e.OldEnd.Line != e.NewEnd.Line
}

// SingleLine reports whether the edit started and ended on one line.
func (e EditInfo) SingleLine() bool {
	return e.Start.Line == e.OldEnd.Line && e.Start.Line == e.NewEnd.Line
}
