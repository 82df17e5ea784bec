// internal/core/editor.go
package core

import (
	"sync"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/config"
	"github.com/bethropolis/tidecore/internal/core/clipboard"
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/core/history"
	"github.com/bethropolis/tidecore/internal/core/selection"
	"github.com/bethropolis/tidecore/internal/core/wrap"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/bethropolis/tidecore/internal/width"
)

const typingGroup = "Typing"

// Options configures an editing session.
type Options struct {
	HistoryCapacity int
	PageSize        int
	CaseSensitive   bool
	Wrap            wrap.Mapper
	Clipboard       clipboard.Provider // Register when nil
	Events          *event.Manager     // Events are dropped when nil
}

// DefaultOptions returns options matching config.NewDefaultConfig.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewDefaultConfig())
}

// OptionsFromConfig maps the [editor] table onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	ec := cfg.Editor
	return Options{
		HistoryCapacity: ec.HistoryCapacity,
		PageSize:        ec.PageSize,
		CaseSensitive:   ec.CaseSensitive,
		Wrap: wrap.Mapper{
			Enabled:  ec.WrapEnabled,
			Width:    ec.ViewportWidth,
			Column:   ec.WrapColumn,
			Advances: width.Advances{Narrow: ec.NarrowAdvance, Wide: ec.WideAdvance},
		},
		Clipboard: clipboard.New(ec.SystemClipboard),
	}
}

// Result is what every intent reports back to the host.
type Result struct {
	Cursor       types.Position
	Selection    selection.Selection
	HasSelection bool
	Changed      bool // Document content changed
}

// Editor is one editing session. All public methods are serialized through
// a single mutex; events are dispatched after it is released.
type Editor struct {
	mu sync.Mutex
	id string

	buffer  *buffer.SliceBuffer
	cursor  *cursor.Manager
	history *history.Manager
	finder  *find.Engine
	mapper  wrap.Mapper
	rows    *wrap.Map
	clip    clipboard.Provider
	events  *event.Manager

	typing   bool    // The open history group was opened by typing
	desiredX float64 // Visual column kept by wrapped up/down, -1 when unset
	pending  []event.Event
}

// NewEditor creates a session holding text.
func NewEditor(id, text string, opts Options) *Editor {
	cur := cursor.NewManager()
	if opts.PageSize > 0 {
		cur.SetPageSize(opts.PageSize)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewRegister()
	}
	if opts.Wrap.Advances == (width.Advances{}) {
		opts.Wrap.Advances = width.DefaultAdvances(config.DefaultWideAdvance)
	}
	e := &Editor{
		id:       id,
		buffer:   buffer.NewFromString(text),
		cursor:   cur,
		history:  history.NewManager(opts.HistoryCapacity),
		finder:   find.NewEngine(opts.CaseSensitive),
		mapper:   opts.Wrap,
		clip:     clip,
		events:   opts.Events,
		desiredX: -1,
	}
	e.rows = e.mapper.Build(e.buffer)
	logger.Debugf("Editor %q: created with %d lines", id, e.buffer.LineCount())
	return e
}

// ID returns the session identifier.
func (e *Editor) ID() string {
	return e.id
}

// do runs fn under the lock, builds the Result and dispatches the events
// fn queued once the lock is released.
func (e *Editor) do(fn func() (bool, error)) (Result, error) {
	e.mu.Lock()
	before := e.cursor.Snapshot()
	changed, err := fn()
	if e.cursor.Snapshot() != before {
		e.emitCursor()
	}
	res := e.resultLocked(changed)
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	if e.events != nil {
		for _, ev := range pending {
			e.events.Dispatch(ev)
		}
	}
	if err != nil {
		logger.Debugf("Editor %q: %v", e.id, err)
	}
	return res, err
}

func (e *Editor) resultLocked(changed bool) Result {
	sel, ok := e.cursor.Selection()
	return Result{
		Cursor:       e.cursor.Position(),
		Selection:    sel,
		HasSelection: ok && !sel.IsEmpty(),
		Changed:      changed,
	}
}

func (e *Editor) emit(t event.Type, data interface{}) {
	e.pending = append(e.pending, event.Event{Type: t, Source: e.id, Data: data})
}

func (e *Editor) emitCursor() {
	sel, ok := e.cursor.Selection()
	e.emit(event.TypeCursorMoved, event.CursorMovedData{
		Position:     e.cursor.Position(),
		Selection:    sel,
		HasSelection: ok && !sel.IsEmpty(),
	})
}

func (e *Editor) emitMatches() {
	set := e.finder.Refresh(e.buffer)
	e.emit(event.TypeMatchesChanged, event.MatchesChangedData{
		Count:     set.Len(),
		Index:     set.Index(),
		Truncated: set.Truncated(),
	})
}

// contentChanged refreshes derived state after the document changed.
// linesBefore is the line count before the edit.
func (e *Editor) contentChanged(linesBefore int) {
	edit := e.history.LastEdit()
	e.updateRows(linesBefore, edit)
	e.finder.Invalidate()
	e.desiredX = -1
	e.emit(event.TypeContentChanged, event.ContentChangedData{Edit: edit, Modified: e.history.IsModified()})
	if e.finder.Query() != "" {
		e.emitMatches()
	}
}

// updateRows rebuilds only the edited line when the edit stayed on one line.
func (e *Editor) updateRows(linesBefore int, edit types.EditInfo) {
	if linesBefore == e.buffer.LineCount() && edit.SingleLine() {
		e.rows.RebuildLine(e.buffer, edit.Start.Line)
		return
	}
	e.rows = e.mapper.Build(e.buffer)
}

// push records cmd through the history, closing the typing group unless
// typing itself is pushing.
func (e *Editor) push(cmd *history.Command) (bool, error) {
	lines := e.buffer.LineCount()
	if err := e.history.Push(e.buffer, e.cursor, cmd); err != nil {
		return false, err
	}
	if !cmd.Changed() {
		return false, nil
	}
	e.contentChanged(lines)
	return true, nil
}

// closeTyping ends a group opened by typing.
func (e *Editor) closeTyping() {
	if !e.typing {
		return
	}
	e.typing = false
	if err := e.history.EndGroup(); err != nil {
		logger.Warnf("Editor %q: closing typing group: %v", e.id, err)
	}
}

// --- Queries ---

// State reports the cursor and selection without changing anything.
func (e *Editor) State() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resultLocked(false)
}

// Text returns the whole document joined with "\n".
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.FullText()
}

// LineCount returns the number of lines.
func (e *Editor) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.LineCount()
}

// Cursor returns the caret position.
func (e *Editor) Cursor() types.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.Position()
}

// Selection returns the normalized selection. ok is false when nothing is
// selected.
func (e *Editor) Selection() (start, end types.Position, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.NormalizedRange()
}

// SelectedText returns the selected text.
func (e *Editor) SelectedText() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedTextLocked()
}

func (e *Editor) selectedTextLocked() (string, bool) {
	start, end, ok := e.cursor.NormalizedRange()
	if !ok {
		return "", false
	}
	text, err := e.buffer.TextRange(start, end)
	if err != nil {
		logger.Errorf("Editor %q: selection %v-%v outside document: %v", e.id, start, end, err)
		return "", false
	}
	return text, true
}

// IsModified reports whether the document differs from the last save point.
func (e *Editor) IsModified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.IsModified()
}

// CanUndo reports whether Undo has anything to revert.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether Redo has anything to reapply.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// VisualRows returns a copy of the current visual row map.
func (e *Editor) VisualRows() []wrap.Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	rows := e.rows.Rows()
	out := make([]wrap.Row, len(rows))
	copy(out, rows)
	return out
}

// CursorVisual returns the caret's visual row and x offset.
func (e *Editor) CursorVisual() (row int, x float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rows.ToVisual(e.buffer, e.cursor.Position())
}

// MatchStatus returns the match count and the selected index (-1 if none).
func (e *Editor) MatchStatus() (count, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	set := e.finder.Refresh(e.buffer)
	return set.Len(), set.Index()
}

// VisibleMatches returns the matches on lines minLine through maxLine.
func (e *Editor) VisibleMatches(minLine, maxLine int) []find.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	set := e.finder.Refresh(e.buffer)
	start, end := set.VisibleRange(minLine, maxLine)
	out := make([]find.Match, end-start)
	copy(out, set.All()[start:end])
	return out
}
