// internal/core/view.go
package core

import (
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/width"
)

// SetWrap turns soft wrapping on or off and rebuilds the row map.
func (e *Editor) SetWrap(enabled bool) (Result, error) {
	return e.rewrap(func() { e.mapper.Enabled = enabled })
}

// SetViewportWidth sets the wrap width in advance units.
func (e *Editor) SetViewportWidth(w float64) (Result, error) {
	if w < 0 {
		w = 0
	}
	return e.rewrap(func() { e.mapper.Width = w })
}

// SetWrapColumn fixes the wrap width to a number of narrow characters.
// Zero falls back to the viewport width.
func (e *Editor) SetWrapColumn(column int) (Result, error) {
	if column < 0 {
		column = 0
	}
	return e.rewrap(func() { e.mapper.Column = column })
}

// SetAdvances installs font metrics from the renderer.
func (e *Editor) SetAdvances(adv width.Advances) (Result, error) {
	if adv.Wide <= 0 {
		return e.State(), nil
	}
	if adv.Narrow <= 0 {
		adv = width.DefaultAdvances(adv.Wide)
	}
	return e.rewrap(func() { e.mapper.Advances = adv })
}

// SetPageSize sets how many lines page up/down travel.
func (e *Editor) SetPageSize(lines int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.SetPageSize(lines)
}

func (e *Editor) rewrap(apply func()) (Result, error) {
	return e.do(func() (bool, error) {
		apply()
		e.rows = e.mapper.Build(e.buffer)
		e.desiredX = -1
		logger.Debugf("Editor %q: wrap enabled=%v limit=%.1f rows=%d", e.id, e.mapper.Enabled, e.mapper.Limit(), e.rows.RowCount())
		e.emit(event.TypeWrapChanged, event.WrapChangedData{Enabled: e.mapper.Enabled, Rows: e.rows.RowCount()})
		return false, nil
	})
}
