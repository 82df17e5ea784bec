// internal/core/selection.go
package core

import "github.com/bethropolis/tidecore/internal/types"

// HasSelection reports whether a non-empty selection is active.
func (e *Editor) HasSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.HasSelection()
}

// SetSelection selects from anchor to active (both clamped).
func (e *Editor) SetSelection(anchor, active types.Position) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		e.cursor.SetSelection(e.buffer, anchor, active)
		return false, nil
	})
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		e.cursor.SelectAll(e.buffer)
		return false, nil
	})
}

// ClearSelection drops the selection, leaving the cursor in place.
func (e *Editor) ClearSelection() (Result, error) {
	return e.do(func() (bool, error) {
		e.cursor.ClearSelection()
		return false, nil
	})
}
