// internal/input/action.go
package input

// Action represents an intent decoded from a terminal event.
type Action int

const (
	ActionUnknown Action = iota

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionMoveFileStart
	ActionMoveFileEnd

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune
	ActionInsertNewLine
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Selection / Clipboard ---
	ActionSelectAll
	ActionCopy
	ActionCut
	ActionPaste

	// --- Find ---
	ActionFindNext
	ActionFindPrevious

	// --- Pointer ---
	ActionClick // Requires Row and X
	ActionDrag  // Requires Row and X
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "line-start",
	ActionMoveEnd:            "line-end",
	ActionMoveFileStart:      "file-start",
	ActionMoveFileEnd:        "file-end",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "insert-newline",
	ActionDeleteCharForward:  "delete-forward",
	ActionDeleteCharBackward: "delete-backward",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionSelectAll:          "select-all",
	ActionCopy:               "copy",
	ActionCut:                "cut",
	ActionPaste:              "paste",
	ActionFindNext:           "find-next",
	ActionFindPrevious:       "find-previous",
	ActionClick:              "click",
	ActionDrag:               "drag",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ActionEvent is a decoded input event with the payload its action needs.
type ActionEvent struct {
	Action Action
	Rune   rune    // ActionInsertRune
	Extend bool    // Movement grows the selection (Shift held)
	Row    int     // Visual row for pointer actions
	X      float64 // Advance-unit offset for pointer actions
}
