// internal/event/events.go
package event

import (
	"github.com/bethropolis/tidecore/internal/core/selection"
	"github.com/bethropolis/tidecore/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeContentChanged // Document content changed (insert/delete/undo/redo)
	TypeCursorMoved    // Cursor or selection changed
	TypeMatchesChanged // Match set size or current index changed
	TypeWrapChanged    // Visual row map rebuilt for new wrap settings
	TypeSaved          // Save point recorded
	TypeFocusChanged   // Workspace focus moved to another editor
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeContentChanged: "content-changed",
	TypeCursorMoved:    "cursor-moved",
	TypeMatchesChanged: "matches-changed",
	TypeWrapChanged:    "wrap-changed",
	TypeSaved:          "saved",
	TypeFocusChanged:   "focus-changed",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type   Type
	Source string      // ID of the editor that raised it
	Data   interface{} // Payload carrying event-specific data
}

// ContentChangedData tells renderers which span to invalidate.
type ContentChangedData struct {
	Edit     types.EditInfo
	Modified bool
}

// CursorMovedData contains the new cursor position and selection.
type CursorMovedData struct {
	Position     types.Position
	Selection    selection.Selection
	HasSelection bool
}

// MatchesChangedData feeds "match 3 of 17" style status.
type MatchesChangedData struct {
	Count     int
	Index     int // -1 when no match is selected
	Truncated bool
}

// WrapChangedData describes the rebuilt row map.
type WrapChangedData struct {
	Enabled bool
	Rows    int
}

// SavedData is sent by MarkSaved.
type SavedData struct{}

// FocusChangedData names the newly focused editor ("" when none).
type FocusChangedData struct {
	Previous string
	Current  string
}
