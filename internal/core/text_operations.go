// internal/core/text_operations.go
package core

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/core/history"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// InsertChar types one character, replacing any selection. Consecutive
// characters coalesce into one undo step. A line terminator is handled as
// InsertNewline.
func (e *Editor) InsertChar(r rune) (Result, error) {
	if r == '\n' || r == '\r' {
		return e.InsertNewline()
	}
	return e.do(func() (bool, error) {
		if !e.history.IsGrouping() {
			if err := e.history.BeginGroup(typingGroup); err != nil {
				return false, err
			}
			e.typing = true
		}
		changed, err := e.deleteSelectionLocked()
		if err != nil {
			return changed, err
		}
		inserted, err := e.push(history.NewInsertChar(e.cursor.Position(), r))
		return changed || inserted, err
	})
}

// InsertText inserts a possibly multi-line string at the cursor, replacing
// any selection, as one undo step.
func (e *Editor) InsertText(text string) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		return e.replaceSelectionLocked("Insert Text", text)
	})
}

// InsertNewline splits the line at the cursor, replacing any selection.
func (e *Editor) InsertNewline() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		start, end, ok := e.cursor.NormalizedRange()
		if !ok {
			return e.push(history.NewInsertNewline(e.cursor.Position()))
		}
		return e.push(history.NewComposite("Insert Newline",
			history.NewDeleteRange(start, end),
			history.NewInsertNewline(start),
		))
	})
}

// DeleteBefore deletes the selection, or the character before the cursor.
func (e *Editor) DeleteBefore() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		if e.cursor.HasSelection() {
			return e.deleteSelectionLocked()
		}
		return e.push(history.NewDeleteBefore(e.cursor.Position()))
	})
}

// DeleteAfter deletes the selection, or the character after the cursor.
func (e *Editor) DeleteAfter() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		if e.cursor.HasSelection() {
			return e.deleteSelectionLocked()
		}
		return e.push(history.NewDeleteAfter(e.cursor.Position()))
	})
}

// DeleteRange deletes [start, end) in either order.
func (e *Editor) DeleteRange(start, end types.Position) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		return e.push(history.NewDeleteRange(start, end))
	})
}

// DeleteSelection deletes the selected text. Without a selection nothing
// changes.
func (e *Editor) DeleteSelection() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		return e.deleteSelectionLocked()
	})
}

func (e *Editor) deleteSelectionLocked() (bool, error) {
	start, end, ok := e.cursor.NormalizedRange()
	if !ok {
		return false, nil
	}
	return e.push(history.NewDeleteRange(start, end))
}

// replaceSelectionLocked inserts text at the cursor, or over the selection as
// a single composite.
func (e *Editor) replaceSelectionLocked(label, text string) (bool, error) {
	start, end, ok := e.cursor.NormalizedRange()
	if !ok {
		return e.push(history.NewInsertText(e.cursor.Position(), text))
	}
	return e.push(history.NewComposite(label,
		history.NewDeleteRange(start, end),
		history.NewInsertText(start, text),
	))
}

// Undo reverts the latest undo step.
func (e *Editor) Undo() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		lines := e.buffer.LineCount()
		if err := e.history.Undo(e.buffer, e.cursor); err != nil {
			return false, err
		}
		e.contentChanged(lines)
		return true, nil
	})
}

// Redo reapplies the latest undone step.
func (e *Editor) Redo() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		lines := e.buffer.LineCount()
		if err := e.history.Redo(e.buffer, e.cursor); err != nil {
			return false, err
		}
		e.contentChanged(lines)
		return true, nil
	})
}

// BeginGroup opens an explicit undo group. Typing inside it joins the group.
func (e *Editor) BeginGroup(label string) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		return false, e.history.BeginGroup(label)
	})
}

// EndGroup closes an explicit undo group.
func (e *Editor) EndGroup() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		return false, e.history.EndGroup()
	})
}

// MarkSaved records the current state as saved.
func (e *Editor) MarkSaved() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		e.history.MarkSaved()
		e.emit(event.TypeSaved, event.SavedData{})
		logger.Debugf("Editor %q: marked saved", e.id)
		return false, nil
	})
}

// SetText replaces the document and starts a fresh history. The new text is
// the save point.
func (e *Editor) SetText(text string) (Result, error) {
	return e.do(func() (bool, error) {
		e.typing = false
		e.buffer.SetText(text)
		e.history.Clear()
		e.cursor.SetPosition(e.buffer, types.Position{})
		e.finder.Invalidate()
		e.rows = e.mapper.Build(e.buffer)
		e.desiredX = -1
		e.emit(event.TypeContentChanged, event.ContentChangedData{
			Edit: types.EditInfo{NewEnd: e.buffer.EndPosition()},
		})
		if e.finder.Query() != "" {
			e.emitMatches()
		}
		return true, nil
	})
}

// SetHistoryCapacity changes the history bound.
func (e *Editor) SetHistoryCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("history capacity %d must be positive", capacity)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.SetCapacity(capacity)
	return nil
}
