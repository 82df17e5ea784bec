package cursor

import "github.com/bethropolis/tidecore/internal/types"

// Document is what cursor movement needs to know about the buffer.
type Document interface {
	LineCount() int
	LineLength(index int) (int, error)
}

// Motion identifies a navigation intent.
type Motion int

const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionLineStart
	MotionLineEnd
	MotionDocStart
	MotionDocEnd
	MotionPageUp
	MotionPageDown
)

var motionNames = map[Motion]string{
	MotionLeft:      "left",
	MotionRight:     "right",
	MotionUp:        "up",
	MotionDown:      "down",
	MotionLineStart: "line-start",
	MotionLineEnd:   "line-end",
	MotionDocStart:  "doc-start",
	MotionDocEnd:    "doc-end",
	MotionPageUp:    "page-up",
	MotionPageDown:  "page-down",
}

func (m Motion) String() string {
	if s, ok := motionNames[m]; ok {
		return s
	}
	return "unknown"
}

// IsVertical reports whether the motion keeps the desired column.
func (m Motion) IsVertical() bool {
	switch m {
	case MotionUp, MotionDown, MotionPageUp, MotionPageDown:
		return true
	}
	return false
}

func lineLen(doc Document, line int) int {
	n, err := doc.LineLength(line)
	if err != nil {
		return 0
	}
	return n
}

// Clamp pulls pos inside the document.
func Clamp(pos types.Position, doc Document) types.Position {
	count := doc.LineCount()
	if pos.Line < 0 {
		return types.Position{}
	}
	if pos.Line >= count {
		last := count - 1
		return types.Position{Line: last, Col: lineLen(doc, last)}
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := lineLen(doc, pos.Line); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// Left moves one character back, wrapping to the end of the previous line.
// It is a no-op at document start.
func Left(pos types.Position, doc Document) types.Position {
	if pos.Col > 0 {
		pos.Col--
		return pos
	}
	if pos.Line > 0 {
		return types.Position{Line: pos.Line - 1, Col: lineLen(doc, pos.Line-1)}
	}
	return pos
}

// Right moves one character forward, wrapping to the start of the next line.
// It is a no-op at document end.
func Right(pos types.Position, doc Document) types.Position {
	if pos.Col < lineLen(doc, pos.Line) {
		pos.Col++
		return pos
	}
	if pos.Line+1 < doc.LineCount() {
		return types.Position{Line: pos.Line + 1, Col: 0}
	}
	return pos
}

// Vertical moves delta lines up (negative) or down (positive), clamping the
// line to the document and the column to desiredCol on the target line.
func Vertical(pos types.Position, doc Document, delta, desiredCol int) types.Position {
	line := pos.Line + delta
	if line < 0 {
		line = 0
	}
	if last := doc.LineCount() - 1; line > last {
		line = last
	}
	if line == pos.Line {
		return pos
	}
	col := desiredCol
	if n := lineLen(doc, line); col > n {
		col = n
	}
	return types.Position{Line: line, Col: col}
}

// LineStart returns column 0 of the current line.
func LineStart(pos types.Position) types.Position {
	return types.Position{Line: pos.Line}
}

// LineEnd returns the end of the current line.
func LineEnd(pos types.Position, doc Document) types.Position {
	return types.Position{Line: pos.Line, Col: lineLen(doc, pos.Line)}
}

// DocStart returns the first position of the document.
func DocStart() types.Position {
	return types.Position{}
}

// DocEnd returns the position after the last character of the document.
func DocEnd(doc Document) types.Position {
	last := doc.LineCount() - 1
	return types.Position{Line: last, Col: lineLen(doc, last)}
}

// Apply computes the destination of motion from pos. desiredCol is used by
// vertical motions; pageSize by page motions.
func Apply(motion Motion, pos types.Position, doc Document, desiredCol, pageSize int) types.Position {
	if pageSize < 1 {
		pageSize = 1
	}
	switch motion {
	case MotionLeft:
		return Left(pos, doc)
	case MotionRight:
		return Right(pos, doc)
	case MotionUp:
		return Vertical(pos, doc, -1, desiredCol)
	case MotionDown:
		return Vertical(pos, doc, 1, desiredCol)
	case MotionPageUp:
		return Vertical(pos, doc, -pageSize, desiredCol)
	case MotionPageDown:
		return Vertical(pos, doc, pageSize, desiredCol)
	case MotionLineStart:
		return LineStart(pos)
	case MotionLineEnd:
		return LineEnd(pos, doc)
	case MotionDocStart:
		return DocStart()
	case MotionDocEnd:
		return DocEnd(doc)
	}
	return pos
}
