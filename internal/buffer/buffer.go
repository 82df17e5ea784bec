// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/tidecore/internal/types"
)

// ErrOutOfRange is returned when a line or column index exceeds the current
// document bounds. Hosts that clamp positions through the cursor model never
// see it.
var ErrOutOfRange = errors.New("position out of range")

// Buffer defines the interface for text buffer operations.
// All columns are rune indexes; callers never deal with byte offsets.
type Buffer interface {
	LineCount() int
	Line(index int) ([]byte, error)
	LineLength(index int) (int, error)
	LineText(index int) (string, error)
	FullText() string
	Bytes() []byte
	TextRange(start, end types.Position) (string, error)
	EndPosition() types.Position
	ClampPosition(pos types.Position) types.Position

	InsertChar(pos types.Position, r rune) error
	InsertText(pos types.Position, text string) (types.Position, error)
	InsertNewline(pos types.Position) (types.Position, error)
	DeleteCharBefore(pos types.Position) (types.Position, string, error)
	DeleteCharAfter(pos types.Position) (types.Position, string, error)
	DeleteRange(start, end types.Position) (string, error)
	SetText(text string)
}
