// internal/core/cursor.go
package core

import (
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/types"
)

// Move applies a navigation motion. With extend the selection grows from its
// anchor; without it the selection collapses. When wrapping is on, up and
// down travel by visual rows.
func (e *Editor) Move(motion cursor.Motion, extend bool) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		if e.mapper.Enabled && (motion == cursor.MotionUp || motion == cursor.MotionDown) {
			e.moveVisualLocked(motion, extend)
			return false, nil
		}
		e.cursor.Move(e.buffer, motion, extend)
		e.desiredX = -1
		return false, nil
	})
}

func (e *Editor) moveVisualLocked(motion cursor.Motion, extend bool) {
	pos := e.cursor.Position()
	if e.desiredX < 0 {
		_, e.desiredX = e.rows.ToVisual(e.buffer, pos)
	}
	delta := 1
	if motion == cursor.MotionUp {
		delta = -1
	}
	target := e.rows.MoveVertical(e.buffer, pos, delta, e.desiredX)
	e.cursor.MoveVisual(e.buffer, target, extend, target.Col)
}

// MoveTo places the cursor at pos (clamped).
func (e *Editor) MoveTo(pos types.Position, extend bool) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		e.cursor.MoveTo(e.buffer, pos, extend)
		e.desiredX = -1
		return false, nil
	})
}

// ClickAt places the cursor at the character nearest x on a visual row.
// Rows past the last one resolve to the end of the document.
func (e *Editor) ClickAt(row int, x float64) (Result, error) {
	return e.pointer(row, x, false)
}

// DragTo extends the selection from the last click to a visual row and x.
func (e *Editor) DragTo(row int, x float64) (Result, error) {
	return e.pointer(row, x, true)
}

func (e *Editor) pointer(row int, x float64, extend bool) (Result, error) {
	return e.do(func() (bool, error) {
		e.closeTyping()
		pos := e.rows.ToLogical(e.buffer, row, x)
		e.cursor.MoveTo(e.buffer, pos, extend)
		e.desiredX = -1
		return false, nil
	})
}
