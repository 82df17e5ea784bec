package history

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

const DefaultMaxHistory = 100

var (
	// ErrNoHistory is the parent of ErrNothingToUndo and ErrNothingToRedo.
	ErrNoHistory       = errors.New("no history")
	ErrNothingToUndo   = fmt.Errorf("nothing to undo: %w", ErrNoHistory)
	ErrNothingToRedo   = fmt.Errorf("nothing to redo: %w", ErrNoHistory)
	ErrUnbalancedGroup = errors.New("unbalanced history group")
)

// Manager handles the undo/redo stacks. It is owned by a single editor
// session and is not safe for concurrent use on its own.
type Manager struct {
	undo     []*Command
	redo     []*Command
	group    *Command // Open group, nil when not grouping
	capacity int

	savePoint   int  // Undo depth at the last MarkSaved
	saveEvicted bool // Save point is no longer reachable
	lastEdit    types.EditInfo
}

// NewManager creates a history manager bounded to capacity top-level entries.
func NewManager(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultMaxHistory
	}
	return &Manager{
		undo:     make([]*Command, 0, capacity),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of undo entries kept.
func (m *Manager) Capacity() int {
	return m.capacity
}

// SetCapacity changes the bound, evicting the oldest entries if needed.
func (m *Manager) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultMaxHistory
	}
	m.capacity = capacity
	m.evict()
}

// Push applies cmd and records it. While a group is open the command joins
// the group instead of becoming its own entry. Commands that change nothing
// are applied but not recorded.
func (m *Manager) Push(buf buffer.Buffer, cur *cursor.Manager, cmd *Command) error {
	if err := cmd.Apply(buf, cur); err != nil {
		return err
	}
	m.lastEdit = cmd.Edit()
	if !cmd.Changed() {
		logger.DebugTagf("history", "History: %v changed nothing, not recorded", cmd)
		return nil
	}

	m.clearRedo()
	if m.group != nil {
		if len(m.group.children) == 0 {
			m.group.before = cmd.before
		}
		m.group.children = append(m.group.children, cmd)
		logger.DebugTagf("history", "History: %v joined group %q (%d)", cmd, m.group.Label, len(m.group.children))
		return nil
	}
	m.record(cmd)
	return nil
}

// record appends to the undo stack and applies the capacity bound.
func (m *Manager) record(cmd *Command) {
	m.undo = append(m.undo, cmd)
	m.evict()
	logger.DebugTagf("history", "History: recorded %v. Undo: %d, Redo: %d", cmd, len(m.undo), len(m.redo))
}

func (m *Manager) evict() {
	for len(m.undo) > m.capacity {
		m.undo[0] = nil
		m.undo = m.undo[1:]
		if m.savePoint == 0 {
			m.saveEvicted = true
		} else {
			m.savePoint--
		}
		logger.DebugTagf("history", "History: evicted oldest entry (save point %d, evicted %v)", m.savePoint, m.saveEvicted)
	}
}

// clearRedo drops redo entries. A save point that lived on the redo side
// becomes unreachable.
func (m *Manager) clearRedo() {
	if len(m.redo) == 0 {
		return
	}
	if m.savePoint > len(m.undo) {
		m.saveEvicted = true
	}
	m.redo = m.redo[:0]
}

// BeginGroup opens an accumulation window. Nesting is reported.
func (m *Manager) BeginGroup(label string) error {
	if m.group != nil {
		return fmt.Errorf("begin group %q while %q is open: %w", label, m.group.Label, ErrUnbalancedGroup)
	}
	m.group = NewComposite(label)
	return nil
}

// EndGroup closes the open group and records it as one entry. An empty
// group records nothing.
func (m *Manager) EndGroup() error {
	if m.group == nil {
		return fmt.Errorf("end group: %w", ErrUnbalancedGroup)
	}
	g := m.group
	m.group = nil
	if len(g.children) == 0 {
		return nil
	}
	g.edit = boundingEdit(g.children)
	m.record(g)
	return nil
}

// IsGrouping reports whether a group is open.
func (m *Manager) IsGrouping() bool {
	return m.group != nil
}

// GroupLabel returns the label of the open group, or "".
func (m *Manager) GroupLabel() string {
	if m.group == nil {
		return ""
	}
	return m.group.Label
}

// Transaction runs fn inside a group. The group is closed even if fn fails.
func (m *Manager) Transaction(label string, fn func() error) error {
	if err := m.BeginGroup(label); err != nil {
		return err
	}
	fnErr := fn()
	if err := m.EndGroup(); err != nil && fnErr == nil {
		return err
	}
	return fnErr
}

func (m *Manager) closeGroup() {
	if m.group != nil {
		_ = m.EndGroup()
	}
}

// Undo reverts the most recent entry. An open group is closed first.
func (m *Manager) Undo(buf buffer.Buffer, cur *cursor.Manager) error {
	m.closeGroup()
	if len(m.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := m.undo[len(m.undo)-1]
	if err := cmd.Revert(buf, cur); err != nil {
		logger.Errorf("History: undo of %v failed: %v", cmd, err)
		return fmt.Errorf("undo: %w", err)
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cmd)
	m.lastEdit = cmd.Edit()
	logger.DebugTagf("history", "History: undid %v. Undo: %d, Redo: %d", cmd, len(m.undo), len(m.redo))
	return nil
}

// Redo reapplies the most recently undone entry.
func (m *Manager) Redo(buf buffer.Buffer, cur *cursor.Manager) error {
	m.closeGroup()
	if len(m.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := m.redo[len(m.redo)-1]
	if err := cmd.Apply(buf, cur); err != nil {
		logger.Errorf("History: redo of %v failed: %v", cmd, err)
		return fmt.Errorf("redo: %w", err)
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cmd)
	m.lastEdit = cmd.Edit()
	logger.DebugTagf("history", "History: redid %v. Undo: %d, Redo: %d", cmd, len(m.undo), len(m.redo))
	return nil
}

// LastEdit describes the span touched by the latest Push, Undo or Redo.
func (m *Manager) LastEdit() types.EditInfo {
	return m.lastEdit
}

// MarkSaved records the current state as saved. An open group is closed.
func (m *Manager) MarkSaved() {
	m.closeGroup()
	m.savePoint = len(m.undo)
	m.saveEvicted = false
}

// IsModified reports whether the document differs from the saved state.
func (m *Manager) IsModified() bool {
	if m.saveEvicted {
		return true
	}
	if m.group != nil && len(m.group.children) > 0 {
		return true
	}
	return len(m.undo) != m.savePoint
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0 || (m.group != nil && len(m.group.children) > 0)
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// UndoCount returns the number of recorded undo entries.
func (m *Manager) UndoCount() int {
	return len(m.undo)
}

// RedoCount returns the number of redo entries.
func (m *Manager) RedoCount() int {
	return len(m.redo)
}

// Clear resets the history. The current state becomes the save point.
func (m *Manager) Clear() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
	m.group = nil
	m.savePoint = 0
	m.saveEvicted = false
	m.lastEdit = types.EditInfo{}
	logger.DebugTagf("history", "History: cleared")
}
