// internal/core/find.go
package core

import (
	"errors"

	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Search sets the query and recomputes the matches. An empty query clears
// them. The cursor does not move.
func (e *Editor) Search(query string) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		if err := e.finder.SetQuery(query); err != nil {
			return false, err
		}
		e.emitMatches()
		return false, nil
	})
}

// SetCaseSensitive switches case-sensitive matching.
func (e *Editor) SetCaseSensitive(caseSensitive bool) (Result, error) {
	return e.do(func() (bool, error) {
		if err := e.finder.SetCaseSensitive(caseSensitive); err != nil {
			return false, err
		}
		e.emitMatches()
		return false, nil
	})
}

// SetRegex switches between literal and regular expression queries.
func (e *Editor) SetRegex(regex bool) (Result, error) {
	return e.do(func() (bool, error) {
		if err := e.finder.SetRegex(regex); err != nil {
			return false, err
		}
		e.emitMatches()
		return false, nil
	})
}

// NextMatch selects the following match, wrapping around the document.
func (e *Editor) NextMatch() (Result, error) {
	return e.navigate(e.finder.Next)
}

// PreviousMatch selects the preceding match, wrapping around the document.
func (e *Editor) PreviousMatch() (Result, error) {
	return e.navigate(e.finder.Previous)
}

func (e *Editor) navigate(step func(find.Document, types.Position) (find.Match, error)) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		m, err := step(e.buffer, e.cursor.Position())
		if err != nil {
			return false, err
		}
		e.cursor.SetSelection(e.buffer, m.StartPos(), m.EndPos())
		e.desiredX = -1
		e.emitMatches()
		return false, nil
	})
}

// ReplaceCurrent replaces the selected match as one undo step and selects
// the next match after the inserted text.
func (e *Editor) ReplaceCurrent(replacement string) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		lines := e.buffer.LineCount()
		if _, err := e.finder.ReplaceCurrent(e.buffer, e.cursor, e.history, replacement); err != nil {
			return false, err
		}
		e.contentChanged(lines)
		return true, nil
	})
}

// ReplaceAll replaces every match as one undo step and returns the count.
func (e *Editor) ReplaceAll(replacement string) (Result, int, error) {
	var count int
	res, err := e.do(func() (bool, error) {
		e.closeTyping()
		lines := e.buffer.LineCount()
		n, err := e.finder.ReplaceAll(e.buffer, e.cursor, e.history, replacement)
		if err != nil {
			return false, err
		}
		count = n
		e.contentChanged(lines)
		return true, nil
	})
	if err != nil && !errors.Is(err, find.ErrNoMatches) && !errors.Is(err, find.ErrEmptyQuery) {
		logger.Warnf("Editor %q: replace all failed: %v", e.id, err)
	}
	return res, count, err
}
