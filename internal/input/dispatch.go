// internal/input/dispatch.go
package input

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/core/cursor"
)

// ErrUnhandled is returned by Apply for actions with no editor operation.
var ErrUnhandled = errors.New("unhandled action")

var motions = map[Action]cursor.Motion{
	ActionMoveUp:        cursor.MotionUp,
	ActionMoveDown:      cursor.MotionDown,
	ActionMoveLeft:      cursor.MotionLeft,
	ActionMoveRight:     cursor.MotionRight,
	ActionMovePageUp:    cursor.MotionPageUp,
	ActionMovePageDown:  cursor.MotionPageDown,
	ActionMoveHome:      cursor.MotionLineStart,
	ActionMoveEnd:       cursor.MotionLineEnd,
	ActionMoveFileStart: cursor.MotionDocStart,
	ActionMoveFileEnd:   cursor.MotionDocEnd,
}

// Apply runs the editor operation for ev.
func Apply(ed *core.Editor, ev ActionEvent) (core.Result, error) {
	if motion, ok := motions[ev.Action]; ok {
		return ed.Move(motion, ev.Extend)
	}

	switch ev.Action {
	case ActionInsertRune:
		return ed.InsertChar(ev.Rune)
	case ActionInsertNewLine:
		return ed.InsertNewline()
	case ActionDeleteCharBackward:
		return ed.DeleteBefore()
	case ActionDeleteCharForward:
		return ed.DeleteAfter()
	case ActionUndo:
		return ed.Undo()
	case ActionRedo:
		return ed.Redo()
	case ActionSelectAll:
		return ed.SelectAll()
	case ActionCopy:
		return ed.Copy()
	case ActionCut:
		return ed.Cut()
	case ActionPaste:
		return ed.Paste()
	case ActionFindNext:
		return ed.NextMatch()
	case ActionFindPrevious:
		return ed.PreviousMatch()
	case ActionClick:
		return ed.ClickAt(ev.Row, ev.X)
	case ActionDrag:
		return ed.DragTo(ev.Row, ev.X)
	}
	return ed.State(), fmt.Errorf("%v: %w", ev.Action, ErrUnhandled)
}
