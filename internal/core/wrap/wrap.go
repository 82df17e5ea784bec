// Package wrap maps logical lines onto visual rows for soft wrapping.
package wrap

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/bethropolis/tidecore/internal/width"
)

// Document is the read access the mapper needs.
type Document interface {
	LineCount() int
	LineText(index int) (string, error)
}

// Row is one visual row: runes [Start, End) of logical line Line. Segment is
// the row's index within its line.
type Row struct {
	Line    int
	Segment int
	Start   int
	End     int
}

// Len returns the number of characters on the row.
func (r Row) Len() int {
	return r.End - r.Start
}

// Mapper holds the wrap settings. Width is the viewport width in advance
// units; a positive Column overrides it with Column narrow advances.
type Mapper struct {
	Enabled  bool
	Width    float64
	Column   int
	Advances width.Advances
}

// Limit returns the row width rows are broken at.
func (m Mapper) Limit() float64 {
	if m.Column > 0 {
		return float64(m.Column) * m.Advances.Narrow
	}
	return m.Width
}

func (m Mapper) wraps() bool {
	return m.Enabled && m.Limit() > 0
}

// Build computes the rows of every line.
func (m Mapper) Build(doc Document) *Map {
	vm := &Map{mapper: m}
	count := doc.LineCount()
	vm.first = make([]int, count)
	for i := 0; i < count; i++ {
		text, _ := doc.LineText(i)
		vm.first[i] = len(vm.rows)
		vm.rows = append(vm.rows, m.lineRows(i, text)...)
	}
	logger.DebugTagf("wrap", "Wrap: built %d rows for %d lines (enabled=%v, limit=%.1f)", len(vm.rows), count, m.Enabled, m.Limit())
	return vm
}

// lineRows breaks one line. Breaks fall between grapheme clusters and every
// row holds at least one cluster, even one wider than the limit.
func (m Mapper) lineRows(line int, text string) []Row {
	total := utf8.RuneCountInString(text)
	if !m.wraps() || total == 0 {
		return []Row{{Line: line, Start: 0, End: total}}
	}

	limit := m.Limit()
	var rows []Row
	rowStart, col := 0, 0
	acc := 0.0
	state := -1
	for rest := text; len(rest) > 0; {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		adv := width.Measure(cluster, m.Advances)
		if col > rowStart && acc+adv > limit {
			rows = append(rows, Row{Line: line, Segment: len(rows), Start: rowStart, End: col})
			rowStart, acc = col, 0
		}
		acc += adv
		col += utf8.RuneCountInString(cluster)
	}
	return append(rows, Row{Line: line, Segment: len(rows), Start: rowStart, End: col})
}

// Map is the visual row map for one document state.
type Map struct {
	mapper Mapper
	rows   []Row
	first  []int // Index of the first row of each line
}

// Mapper returns the settings the map was built with.
func (vm *Map) Mapper() Mapper {
	return vm.mapper
}

// Rows returns all rows in order. Callers must not modify the slice.
func (vm *Map) Rows() []Row {
	return vm.rows
}

// RowCount returns the number of visual rows.
func (vm *Map) RowCount() int {
	return len(vm.rows)
}

// Row returns row i.
func (vm *Map) Row(i int) (Row, bool) {
	if i < 0 || i >= len(vm.rows) {
		return Row{}, false
	}
	return vm.rows[i], true
}

// RowsForLine returns the rows of a logical line.
func (vm *Map) RowsForLine(line int) []Row {
	if line < 0 || line >= len(vm.first) {
		return nil
	}
	end := len(vm.rows)
	if line+1 < len(vm.first) {
		end = vm.first[line+1]
	}
	return vm.rows[vm.first[line]:end]
}

// RebuildLine recomputes the rows of one line. When the line count changed
// since the map was built the whole map is rebuilt.
func (vm *Map) RebuildLine(doc Document, line int) {
	if doc.LineCount() != len(vm.first) || line < 0 || line >= len(vm.first) {
		*vm = *vm.mapper.Build(doc)
		return
	}
	text, _ := doc.LineText(line)
	fresh := vm.mapper.lineRows(line, text)
	old := vm.RowsForLine(line)
	start := vm.first[line]

	rows := make([]Row, 0, len(vm.rows)-len(old)+len(fresh))
	rows = append(rows, vm.rows[:start]...)
	rows = append(rows, fresh...)
	rows = append(rows, vm.rows[start+len(old):]...)
	vm.rows = rows

	shift := len(fresh) - len(old)
	for i := line + 1; i < len(vm.first); i++ {
		vm.first[i] += shift
	}
}

// rowText returns the characters of r.
func rowText(doc Document, r Row) []rune {
	text, _ := doc.LineText(r.Line)
	runes := []rune(text)
	if r.End > len(runes) {
		return runes[min(r.Start, len(runes)):]
	}
	return runes[r.Start:r.End]
}

// rowIndex finds the row holding pos. A position on a boundary belongs to
// the following row, except at line end, which stays on the last segment.
func (vm *Map) rowIndex(pos types.Position) int {
	if len(vm.rows) == 0 {
		return 0
	}
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(vm.first) {
		return len(vm.rows) - 1
	}
	rows := vm.RowsForLine(pos.Line)
	for i, r := range rows {
		if pos.Col < r.End || i == len(rows)-1 {
			return vm.first[pos.Line] + i
		}
	}
	return vm.first[pos.Line]
}

// ToVisual translates pos into a visual row and an x offset within it.
func (vm *Map) ToVisual(doc Document, pos types.Position) (row int, x float64) {
	row = vm.rowIndex(pos)
	r, ok := vm.Row(row)
	if !ok {
		return 0, 0
	}
	col := pos.Col - r.Start
	if col < 0 {
		col = 0
	}
	return row, width.OffsetAt(string(rowText(doc, r)), col, vm.mapper.Advances)
}

// ToLogical hit-tests x on a visual row. Rows past the end resolve to the
// end of the document; rows above the first resolve to its start.
func (vm *Map) ToLogical(doc Document, row int, x float64) types.Position {
	if len(vm.rows) == 0 {
		return types.Position{}
	}
	if row < 0 {
		return types.Position{}
	}
	if row >= len(vm.rows) {
		last := vm.rows[len(vm.rows)-1]
		return types.Position{Line: last.Line, Col: last.End}
	}
	r := vm.rows[row]
	text := rowText(doc, r)
	idx := width.IndexAtOffset(string(text), x, vm.mapper.Advances)
	if idx >= len(text) && !vm.isLastSegment(r) && len(text) > 0 {
		// Keep the caret on the clicked row; its end belongs to the next row.
		idx = len(text) - 1
	}
	return types.Position{Line: r.Line, Col: r.Start + idx}
}

func (vm *Map) isLastSegment(r Row) bool {
	rows := vm.RowsForLine(r.Line)
	return len(rows) == 0 || rows[len(rows)-1].Segment == r.Segment
}

// MoveVertical moves delta visual rows from pos, aiming for desiredX. At the
// first or last row the position is returned unchanged.
func (vm *Map) MoveVertical(doc Document, pos types.Position, delta int, desiredX float64) types.Position {
	row := vm.rowIndex(pos)
	target := row + delta
	if target < 0 {
		target = 0
	}
	if target > len(vm.rows)-1 {
		target = len(vm.rows) - 1
	}
	if target == row {
		return pos
	}
	return vm.ToLogical(doc, target, desiredX)
}
