// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/types"
	"github.com/bethropolis/tidecore/internal/utils"
)

// SliceBuffer stores the document as a slice of lines, each line holding
// UTF-8 bytes without a terminator. There is always at least one line.
type SliceBuffer struct {
	lines [][]byte
}

// New creates an empty SliceBuffer (one empty line).
func New() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{{}},
	}
}

// NewFromString creates a SliceBuffer holding text.
func NewFromString(text string) *SliceBuffer {
	sb := New()
	sb.SetText(text)
	return sb
}

// SetText replaces the whole content. "\r\n" and "\r" are treated as line
// terminators like "\n".
func (sb *SliceBuffer) SetText(text string) {
	parts := splitLines(text)
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lines[i] = []byte(p)
	}
	sb.lines = lines
}

// splitLines splits on any line terminator convention. The result always has
// at least one element.
func splitLines(text string) []string {
	if strings.ContainsRune(text, '\r') {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return strings.Split(text, "\n")
}

// Lines returns the raw line storage. Callers must not modify it.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines (always >= 1).
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the raw bytes of a line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d (0-%d): %w", index, len(sb.lines)-1, ErrOutOfRange)
	}
	return sb.lines[index], nil
}

// LineLength returns the number of runes on a line.
func (sb *SliceBuffer) LineLength(index int) (int, error) {
	line, err := sb.Line(index)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCount(line), nil
}

// LineText returns a line as a string.
func (sb *SliceBuffer) LineText(index int) (string, error) {
	line, err := sb.Line(index)
	if err != nil {
		return "", err
	}
	return string(line), nil
}

// Bytes joins all lines with "\n".
func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

// FullText joins all lines with "\n".
func (sb *SliceBuffer) FullText() string {
	return string(sb.Bytes())
}

// EndPosition returns the position after the last character of the document.
func (sb *SliceBuffer) EndPosition() types.Position {
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// ClampPosition pulls pos inside the document bounds.
func (sb *SliceBuffer) ClampPosition(pos types.Position) types.Position {
	if pos.Line < 0 {
		return types.Position{}
	}
	if pos.Line >= len(sb.lines) {
		return sb.EndPosition()
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := utf8.RuneCount(sb.lines[pos.Line]); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// validatePosition checks pos against the document and returns the byte
// offset of its column.
func (sb *SliceBuffer) validatePosition(pos types.Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(sb.lines) {
		return 0, fmt.Errorf("line %d of %d: %w", pos.Line, len(sb.lines), ErrOutOfRange)
	}
	off := utils.RuneIndexToByteOffset(sb.lines[pos.Line], pos.Col)
	if off < 0 {
		return 0, fmt.Errorf("column %d on line %d: %w", pos.Col, pos.Line, ErrOutOfRange)
	}
	return off, nil
}

// --- Buffer Modification Methods ---

// InsertChar inserts one character at pos. Line terminators are routed to
// InsertNewline so a line never holds one.
func (sb *SliceBuffer) InsertChar(pos types.Position, r rune) error {
	if r == '\n' || r == '\r' {
		_, err := sb.InsertNewline(pos)
		return err
	}
	off, err := sb.validatePosition(pos)
	if err != nil {
		return fmt.Errorf("insert char: %w", err)
	}
	line := sb.lines[pos.Line]
	encoded := utf8.AppendRune(nil, r)
	newLine := make([]byte, 0, len(line)+len(encoded))
	newLine = append(newLine, line[:off]...)
	newLine = append(newLine, encoded...)
	newLine = append(newLine, line[off:]...)
	sb.lines[pos.Line] = newLine
	return nil
}

// InsertNewline splits the line at pos and returns the start of the new line.
func (sb *SliceBuffer) InsertNewline(pos types.Position) (types.Position, error) {
	off, err := sb.validatePosition(pos)
	if err != nil {
		return pos, fmt.Errorf("insert newline: %w", err)
	}
	line := sb.lines[pos.Line]
	head := append([]byte(nil), line[:off]...)
	tail := append([]byte(nil), line[off:]...)

	sb.lines[pos.Line] = head
	sb.lines = append(sb.lines, nil)
	copy(sb.lines[pos.Line+2:], sb.lines[pos.Line+1:])
	sb.lines[pos.Line+1] = tail
	return types.Position{Line: pos.Line + 1, Col: 0}, nil
}

// InsertText inserts a possibly multi-line string at pos and returns the
// position just after the inserted text.
func (sb *SliceBuffer) InsertText(pos types.Position, text string) (types.Position, error) {
	off, err := sb.validatePosition(pos)
	if err != nil {
		return pos, fmt.Errorf("insert text: %w", err)
	}
	if text == "" {
		return pos, nil
	}

	currentLine := sb.lines[pos.Line]
	insertLines := splitLines(text)

	tail := append([]byte(nil), currentLine[off:]...)
	head := append([]byte(nil), currentLine[:off]...)

	if len(insertLines) == 1 {
		sb.lines[pos.Line] = append(append(head, insertLines[0]...), tail...)
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(insertLines[0])}, nil
	}

	newLines := make([][]byte, len(insertLines))
	newLines[0] = append(head, insertLines[0]...)
	for i := 1; i < len(insertLines); i++ {
		newLines[i] = []byte(insertLines[i])
	}
	last := len(newLines) - 1
	endCol := utf8.RuneCount(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	merged := make([][]byte, 0, len(sb.lines)+last)
	merged = append(merged, sb.lines[:pos.Line]...)
	merged = append(merged, newLines...)
	merged = append(merged, sb.lines[pos.Line+1:]...)
	sb.lines = merged

	return types.Position{Line: pos.Line + last, Col: endCol}, nil
}

// DeleteCharBefore deletes the character before pos. At column 0 the line is
// joined onto the previous one. It returns the resulting caret position and
// the deleted text ("" at document start).
func (sb *SliceBuffer) DeleteCharBefore(pos types.Position) (types.Position, string, error) {
	if _, err := sb.validatePosition(pos); err != nil {
		return pos, "", fmt.Errorf("delete before: %w", err)
	}
	start := pos
	switch {
	case pos.Col > 0:
		start.Col--
	case pos.Line > 0:
		start.Line--
		start.Col = utf8.RuneCount(sb.lines[start.Line])
	default:
		return pos, "", nil
	}
	deleted, err := sb.DeleteRange(start, pos)
	if err != nil {
		return pos, "", err
	}
	return start, deleted, nil
}

// DeleteCharAfter deletes the character after pos. At line end the next line
// is joined onto this one. The caret stays at pos.
func (sb *SliceBuffer) DeleteCharAfter(pos types.Position) (types.Position, string, error) {
	if _, err := sb.validatePosition(pos); err != nil {
		return pos, "", fmt.Errorf("delete after: %w", err)
	}
	end := pos
	switch {
	case pos.Col < utf8.RuneCount(sb.lines[pos.Line]):
		end.Col++
	case pos.Line < len(sb.lines)-1:
		end.Line++
		end.Col = 0
	default:
		return pos, "", nil
	}
	deleted, err := sb.DeleteRange(pos, end)
	if err != nil {
		return pos, "", err
	}
	return pos, deleted, nil
}

// TextRange returns the text in [start, end) after normalizing the order.
func (sb *SliceBuffer) TextRange(start, end types.Position) (string, error) {
	r := types.Range{Start: start, End: end}.Normalized()
	startOffset, err := sb.validatePosition(r.Start)
	if err != nil {
		return "", fmt.Errorf("text range start: %w", err)
	}
	endOffset, err := sb.validatePosition(r.End)
	if err != nil {
		return "", fmt.Errorf("text range end: %w", err)
	}

	if r.Start.Line == r.End.Line {
		return string(sb.lines[r.Start.Line][startOffset:endOffset]), nil
	}

	var content bytes.Buffer
	content.Write(sb.lines[r.Start.Line][startOffset:])
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		content.WriteByte('\n')
		content.Write(sb.lines[i])
	}
	content.WriteByte('\n')
	content.Write(sb.lines[r.End.Line][:endOffset])
	return content.String(), nil
}

// DeleteRange removes the text in [start, end) and returns it so the caller
// can restore it later.
func (sb *SliceBuffer) DeleteRange(start, end types.Position) (string, error) {
	r := types.Range{Start: start, End: end}.Normalized()
	deleted, err := sb.TextRange(r.Start, r.End)
	if err != nil {
		return "", fmt.Errorf("delete range: %w", err)
	}
	if deleted == "" {
		return "", nil
	}

	// Offsets are valid: TextRange validated both ends.
	startOffset, _ := sb.validatePosition(r.Start)
	endOffset, _ := sb.validatePosition(r.End)

	startLine := sb.lines[r.Start.Line]
	endLine := sb.lines[r.End.Line]

	joined := make([]byte, 0, startOffset+len(endLine)-endOffset)
	joined = append(joined, startLine[:startOffset]...)
	joined = append(joined, endLine[endOffset:]...)

	if r.Start.Line == r.End.Line {
		sb.lines[r.Start.Line] = joined
		return deleted, nil
	}

	sb.lines[r.Start.Line] = joined
	sb.lines = append(sb.lines[:r.Start.Line+1], sb.lines[r.End.Line+1:]...)
	return deleted, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
