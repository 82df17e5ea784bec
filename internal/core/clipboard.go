// internal/core/clipboard.go
package core

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/logger"
)

// Copy puts the selected text on the clipboard. Without a selection nothing
// happens.
func (e *Editor) Copy() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		return false, e.copyLocked()
	})
}

func (e *Editor) copyLocked() error {
	text, ok := e.selectedTextLocked()
	if !ok {
		return nil
	}
	if err := e.clip.Write(text); err != nil {
		return fmt.Errorf("copy selection: %w", err)
	}
	logger.Debugf("Editor %q: copied %d bytes", e.id, len(text))
	return nil
}

// Cut copies the selection and deletes it as one undo step.
func (e *Editor) Cut() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		if !e.cursor.HasSelection() {
			return false, nil
		}
		if err := e.copyLocked(); err != nil {
			return false, err
		}
		return e.deleteSelectionLocked()
	})
}

// Paste inserts the clipboard text at the cursor, replacing any selection.
func (e *Editor) Paste() (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		text, err := e.clip.Read()
		if err != nil {
			return false, fmt.Errorf("paste: %w", err)
		}
		if text == "" {
			return false, nil
		}
		logger.Debugf("Editor %q: pasting %d bytes", e.id, len(text))
		return e.replaceSelectionLocked("Paste", text)
	})
}
