// Package cursor owns the caret position, the optional selection anchor and
// the desired column used by vertical movement.
package cursor

import (
	"github.com/bethropolis/tidecore/internal/core/selection"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

const DefaultPageSize = 20

// Snapshot is the complete cursor state. Commands capture one before they
// apply and restore it when reverted.
type Snapshot struct {
	Position   types.Position
	Anchor     types.Position
	HasAnchor  bool
	DesiredCol int
}

// Manager handles cursor positioning and selection extension.
type Manager struct {
	position   types.Position
	anchor     types.Position // Selection anchor, valid when hasAnchor
	hasAnchor  bool
	desiredCol int // Column vertical motions try to return to
	pageSize   int
}

// NewManager creates a cursor at the document start with no selection.
func NewManager() *Manager {
	return &Manager{pageSize: DefaultPageSize}
}

// SetPageSize sets how many lines page motions travel.
func (m *Manager) SetPageSize(lines int) {
	if lines < 1 {
		lines = 1
	}
	m.pageSize = lines
}

// PageSize returns the number of lines page motions travel.
func (m *Manager) PageSize() int {
	return m.pageSize
}

// Position returns the current cursor position.
func (m *Manager) Position() types.Position {
	return m.position
}

// DesiredCol returns the column vertical motions aim for.
func (m *Manager) DesiredCol() int {
	return m.desiredCol
}

// SetPosition places the cursor (clamped), collapses any selection and resets
// the desired column.
func (m *Manager) SetPosition(doc Document, pos types.Position) {
	pos = Clamp(pos, doc)
	m.position = pos
	m.desiredCol = pos.Col
	m.hasAnchor = false
}

// Move applies motion. With extend the anchor stays fixed (and is dropped at
// the old position if there was none); without extend the selection
// collapses onto the new position.
func (m *Manager) Move(doc Document, motion Motion, extend bool) types.Position {
	from := Clamp(m.position, doc)
	desired := m.desiredCol
	if !motion.IsVertical() {
		desired = from.Col
	}
	to := Apply(motion, from, doc, desired, m.pageSize)
	m.moveTo(from, to, extend)
	if motion.IsVertical() {
		m.desiredCol = desired
	} else {
		m.desiredCol = to.Col
	}
	logger.DebugTagf("cursor", "Cursor: %v %v -> %v (extend=%v)", motion, from, to, extend)
	return to
}

// MoveTo jumps to pos (clamped), e.g. for pointer clicks and drags.
func (m *Manager) MoveTo(doc Document, pos types.Position, extend bool) types.Position {
	to := Clamp(pos, doc)
	m.moveTo(Clamp(m.position, doc), to, extend)
	m.desiredCol = to.Col
	return to
}

// MoveVisual places the cursor after a motion computed outside the logical
// line model (wrapped rows) while keeping desired as the desired column.
func (m *Manager) MoveVisual(doc Document, pos types.Position, extend bool, desired int) types.Position {
	to := Clamp(pos, doc)
	m.moveTo(Clamp(m.position, doc), to, extend)
	m.desiredCol = desired
	return to
}

func (m *Manager) moveTo(from, to types.Position, extend bool) {
	if extend {
		if !m.hasAnchor {
			m.anchor = from
			m.hasAnchor = true
		}
	} else {
		m.hasAnchor = false
	}
	m.position = to
}

// Selection returns the current anchor/active pair. ok is false when no
// anchor is set.
func (m *Manager) Selection() (selection.Selection, bool) {
	if !m.hasAnchor {
		return selection.Collapsed(m.position), false
	}
	return selection.New(m.anchor, m.position), true
}

// HasSelection reports whether a non-empty selection is active.
func (m *Manager) HasSelection() bool {
	return m.hasAnchor && m.anchor != m.position
}

// NormalizedRange returns the selection ordered start <= end. ok is false
// when there is no non-empty selection.
func (m *Manager) NormalizedRange() (start, end types.Position, ok bool) {
	if !m.HasSelection() {
		return m.position, m.position, false
	}
	start, end = selection.New(m.anchor, m.position).Normalized()
	return start, end, true
}

// SetSelection sets anchor and active explicitly; the cursor sits on active.
func (m *Manager) SetSelection(doc Document, anchor, active types.Position) {
	m.anchor = Clamp(anchor, doc)
	m.position = Clamp(active, doc)
	m.hasAnchor = true
	m.desiredCol = m.position.Col
}

// SelectAll selects the whole document with the cursor at the end.
func (m *Manager) SelectAll(doc Document) {
	m.SetSelection(doc, DocStart(), DocEnd(doc))
}

// ClearSelection drops the anchor, leaving the cursor where it is.
func (m *Manager) ClearSelection() {
	if m.hasAnchor {
		logger.DebugTagf("cursor", "Cursor: selection cleared")
	}
	m.hasAnchor = false
}

// Snapshot captures the full cursor state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Position:   m.position,
		Anchor:     m.anchor,
		HasAnchor:  m.hasAnchor,
		DesiredCol: m.desiredCol,
	}
}

// Restore puts back a state captured by Snapshot.
func (m *Manager) Restore(s Snapshot) {
	m.position = s.Position
	m.anchor = s.Anchor
	m.hasAnchor = s.HasAnchor
	m.desiredCol = s.DesiredCol
}

// Place sets the caret after an edit: the selection collapses and the
// desired column follows the new position. The position is not clamped; edit
// commands always pass a valid one.
func (m *Manager) Place(pos types.Position) {
	m.position = pos
	m.desiredCol = pos.Col
	m.hasAnchor = false
}
