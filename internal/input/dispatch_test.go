package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/core/clipboard"
	"github.com/bethropolis/tidecore/internal/types"
)

func newEditor(text string) *core.Editor {
	opts := core.DefaultOptions()
	opts.Clipboard = clipboard.NewRegister()
	return core.NewEditor("input", text, opts)
}

func feed(t *testing.T, p *Processor, ed *core.Editor, events ...*tcell.EventKey) core.Result {
	t.Helper()
	var res core.Result
	for _, ev := range events {
		var err error
		res, err = Apply(ed, p.ProcessEvent(ev))
		require.NoError(t, err)
	}
	return res
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func runes(s string) []*tcell.EventKey {
	var out []*tcell.EventKey
	for _, r := range s {
		out = append(out, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return out
}

func TestTypingSession(t *testing.T) {
	p := NewProcessor()
	ed := newEditor("")

	feed(t, p, ed, runes("hello")...)
	feed(t, p, ed, key(tcell.KeyEnter, tcell.ModNone))
	feed(t, p, ed, runes("world")...)
	assert.Equal(t, "hello\nworld", ed.Text())

	feed(t, p, ed, key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, "hello\n", ed.Text())

	feed(t, p, ed, key(tcell.KeyCtrlY, tcell.ModCtrl))
	assert.Equal(t, "hello\nworld", ed.Text())
}

func TestShiftSelectAndCutPaste(t *testing.T) {
	p := NewProcessor()
	ed := newEditor("abc def")

	res := feed(t, p, ed,
		key(tcell.KeyEnd, tcell.ModNone),
		key(tcell.KeyLeft, tcell.ModShift),
		key(tcell.KeyLeft, tcell.ModShift),
		key(tcell.KeyLeft, tcell.ModShift),
	)
	assert.True(t, res.HasSelection)

	feed(t, p, ed, key(tcell.KeyCtrlX, tcell.ModCtrl))
	assert.Equal(t, "abc ", ed.Text())

	res = feed(t, p, ed,
		key(tcell.KeyHome, tcell.ModCtrl),
		key(tcell.KeyCtrlV, tcell.ModCtrl),
	)
	assert.Equal(t, "defabc ", ed.Text())
	assert.Equal(t, types.Position{Line: 0, Col: 3}, res.Cursor)
}

func TestBackspaceDeletesSelection(t *testing.T) {
	p := NewProcessor()
	ed := newEditor("one\ntwo")

	feed(t, p, ed, key(tcell.KeyCtrlA, tcell.ModCtrl), key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Equal(t, "", ed.Text())
}

func TestFindKeys(t *testing.T) {
	p := NewProcessor()
	ed := newEditor("ab ab ab")
	_, err := ed.Search("ab")
	require.NoError(t, err)

	res := feed(t, p, ed, key(tcell.KeyF3, tcell.ModNone), key(tcell.KeyF3, tcell.ModNone))
	assert.Equal(t, types.Position{Line: 0, Col: 3}, res.Selection.Anchor)

	res = feed(t, p, ed, key(tcell.KeyF3, tcell.ModShift))
	assert.Equal(t, types.Position{Line: 0, Col: 0}, res.Selection.Anchor)
}

func TestPointerActions(t *testing.T) {
	p := NewProcessor()
	p.SetView(0, 8)
	ed := newEditor("hello\nworld")

	res, err := Apply(ed, p.ProcessMouse(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone)))
	require.NoError(t, err)
	assert.Equal(t, types.Position{Line: 0, Col: 1}, res.Cursor)

	res, err = Apply(ed, p.ProcessMouse(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone)))
	require.NoError(t, err)
	assert.True(t, res.HasSelection)
	text, ok := ed.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "ello\nwor", text)
}

func TestApplyUnknown(t *testing.T) {
	ed := newEditor("x")
	res, err := Apply(ed, ActionEvent{Action: ActionUnknown})
	assert.ErrorIs(t, err, ErrUnhandled)
	assert.False(t, res.Changed)
	assert.Equal(t, "x", ed.Text())
}
