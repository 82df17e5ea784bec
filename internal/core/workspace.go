// internal/core/workspace.go
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/tidecore/internal/core/clipboard"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
)

var (
	ErrUnknownEditor   = errors.New("unknown editor")
	ErrDuplicateEditor = errors.New("editor already open")
)

// Workspace composes several sessions and owns which one has input focus.
type Workspace struct {
	mu      sync.Mutex
	editors map[string]*Editor
	order   []string // Open order, used to pick focus after Close
	focused string
	opts    Options
}

// NewWorkspace creates an empty workspace. opts is the template for Open;
// its Events manager also receives focus changes and its clipboard is
// shared by every session.
func NewWorkspace(opts Options) *Workspace {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewRegister()
	}
	return &Workspace{
		editors: make(map[string]*Editor),
		opts:    opts,
	}
}

// Open creates a session and focuses it if nothing else has focus.
func (w *Workspace) Open(id, text string) (*Editor, error) {
	w.mu.Lock()
	if _, exists := w.editors[id]; exists {
		w.mu.Unlock()
		return nil, fmt.Errorf("open %q: %w", id, ErrDuplicateEditor)
	}
	ed := NewEditor(id, text, w.opts)
	w.editors[id] = ed
	w.order = append(w.order, id)
	var change *event.FocusChangedData
	if w.focused == "" {
		change = w.setFocusLocked(id)
	}
	w.mu.Unlock()

	w.dispatchFocus(change)
	logger.Debugf("Workspace: opened %q", id)
	return ed, nil
}

// Close removes a session. If it had focus, focus moves to the session
// opened just before it, or the first remaining one.
func (w *Workspace) Close(id string) error {
	w.mu.Lock()
	if _, ok := w.editors[id]; !ok {
		w.mu.Unlock()
		return fmt.Errorf("close %q: %w", id, ErrUnknownEditor)
	}
	delete(w.editors, id)
	idx := 0
	for i, other := range w.order {
		if other == id {
			idx = i
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	var change *event.FocusChangedData
	if w.focused == id {
		next := ""
		if len(w.order) > 0 {
			if idx > 0 {
				idx--
			}
			next = w.order[idx]
		}
		change = w.setFocusLocked(next)
	}
	w.mu.Unlock()

	w.dispatchFocus(change)
	return nil
}

// Focus gives input focus to id.
func (w *Workspace) Focus(id string) error {
	w.mu.Lock()
	if _, ok := w.editors[id]; !ok {
		w.mu.Unlock()
		return fmt.Errorf("focus %q: %w", id, ErrUnknownEditor)
	}
	var change *event.FocusChangedData
	if w.focused != id {
		change = w.setFocusLocked(id)
	}
	w.mu.Unlock()

	w.dispatchFocus(change)
	return nil
}

func (w *Workspace) setFocusLocked(id string) *event.FocusChangedData {
	change := &event.FocusChangedData{Previous: w.focused, Current: id}
	w.focused = id
	return change
}

func (w *Workspace) dispatchFocus(change *event.FocusChangedData) {
	if change == nil || w.opts.Events == nil {
		return
	}
	w.opts.Events.Dispatch(event.Event{Type: event.TypeFocusChanged, Source: change.Current, Data: *change})
}

// Focused returns the session with focus.
func (w *Workspace) Focused() (*Editor, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ed, ok := w.editors[w.focused]
	return ed, ok
}

// FocusedID returns the ID of the focused session, or "".
func (w *Workspace) FocusedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

// Editor returns the session with the given ID.
func (w *Workspace) Editor(id string) (*Editor, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ed, ok := w.editors[id]
	return ed, ok
}

// IDs returns the open sessions in open order.
func (w *Workspace) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}
