package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/types"
)

func pos(line, col int) types.Position {
	return types.Position{Line: line, Col: col}
}

type session struct {
	buf  *buffer.SliceBuffer
	cur  *cursor.Manager
	hist *Manager
}

func newSession(text string, capacity int) *session {
	return &session{
		buf:  buffer.NewFromString(text),
		cur:  cursor.NewManager(),
		hist: NewManager(capacity),
	}
}

func (s *session) push(t *testing.T, cmd *Command) {
	t.Helper()
	require.NoError(t, s.hist.Push(s.buf, s.cur, cmd))
}

func TestInsertUndoRedo(t *testing.T) {
	s := newSession("hello", 10)
	s.cur.SetPosition(s.buf, pos(0, 5))

	s.push(t, NewInsertText(pos(0, 5), " world"))
	assert.Equal(t, "hello world", s.buf.FullText())
	assert.Equal(t, pos(0, 11), s.cur.Position())

	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.Equal(t, "hello", s.buf.FullText())
	assert.Equal(t, pos(0, 5), s.cur.Position())

	require.NoError(t, s.hist.Redo(s.buf, s.cur))
	assert.Equal(t, "hello world", s.buf.FullText())
	assert.Equal(t, pos(0, 11), s.cur.Position())
}

func TestUndoRestoresSelection(t *testing.T) {
	s := newSession("hello world", 10)
	s.cur.SetSelection(s.buf, pos(0, 0), pos(0, 6))

	s.push(t, NewDeleteRange(pos(0, 6), pos(0, 0)))
	assert.Equal(t, "world", s.buf.FullText())
	assert.False(t, s.cur.HasSelection())

	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	sel, ok := s.cur.Selection()
	require.True(t, ok)
	assert.Equal(t, pos(0, 0), sel.Anchor)
	assert.Equal(t, pos(0, 6), sel.Active)
}

func TestDeleteBeforeJoinsAndUndoSplits(t *testing.T) {
	s := newSession("ab\ncd", 10)
	s.cur.SetPosition(s.buf, pos(1, 0))

	s.push(t, NewDeleteBefore(pos(1, 0)))
	assert.Equal(t, "abcd", s.buf.FullText())
	assert.Equal(t, pos(0, 2), s.cur.Position())

	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.Equal(t, "ab\ncd", s.buf.FullText())
	assert.Equal(t, pos(1, 0), s.cur.Position())
}

func TestNoOpCommandsAreNotRecorded(t *testing.T) {
	s := newSession("ab", 10)
	s.push(t, NewDeleteBefore(pos(0, 0)))
	s.push(t, NewDeleteAfter(pos(0, 2)))
	s.push(t, NewInsertText(pos(0, 1), ""))

	assert.Equal(t, 0, s.hist.UndoCount())
	assert.False(t, s.hist.IsModified())
}

func TestGroupedTypingUndoesInOneStep(t *testing.T) {
	s := newSession("", 10)
	require.NoError(t, s.hist.BeginGroup("Typing"))
	for i, r := range "hello" {
		s.push(t, NewInsertChar(pos(0, i), r))
	}
	require.NoError(t, s.hist.EndGroup())

	assert.Equal(t, "hello", s.buf.FullText())
	assert.Equal(t, 1, s.hist.UndoCount())

	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.Equal(t, "", s.buf.FullText())
	assert.Equal(t, pos(0, 0), s.cur.Position())

	require.NoError(t, s.hist.Redo(s.buf, s.cur))
	assert.Equal(t, "hello", s.buf.FullText())
	assert.Equal(t, pos(0, 5), s.cur.Position())
}

func TestUnbalancedGroups(t *testing.T) {
	s := newSession("", 10)

	assert.ErrorIs(t, s.hist.EndGroup(), ErrUnbalancedGroup)

	require.NoError(t, s.hist.BeginGroup("outer"))
	s.push(t, NewInsertChar(pos(0, 0), 'a'))
	assert.ErrorIs(t, s.hist.BeginGroup("inner"), ErrUnbalancedGroup)
	assert.Equal(t, "outer", s.hist.GroupLabel(), "open group survives a nested begin")

	s.push(t, NewInsertChar(pos(0, 1), 'b'))
	require.NoError(t, s.hist.EndGroup())
	assert.Equal(t, 1, s.hist.UndoCount())
	assert.ErrorIs(t, s.hist.EndGroup(), ErrUnbalancedGroup)
}

func TestEmptyGroupRecordsNothing(t *testing.T) {
	s := newSession("x", 10)
	require.NoError(t, s.hist.BeginGroup("empty"))
	require.NoError(t, s.hist.EndGroup())
	assert.Equal(t, 0, s.hist.UndoCount())
}

func TestUndoClosesOpenGroup(t *testing.T) {
	s := newSession("", 10)
	require.NoError(t, s.hist.BeginGroup("Typing"))
	s.push(t, NewInsertChar(pos(0, 0), 'a'))
	s.push(t, NewInsertChar(pos(0, 1), 'b'))

	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.False(t, s.hist.IsGrouping())
	assert.Equal(t, "", s.buf.FullText())
}

func TestNothingToUndoOrRedo(t *testing.T) {
	s := newSession("", 10)
	err := s.hist.Undo(s.buf, s.cur)
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.ErrorIs(t, err, ErrNoHistory)

	err = s.hist.Redo(s.buf, s.cur)
	assert.ErrorIs(t, err, ErrNothingToRedo)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestPushClearsRedo(t *testing.T) {
	s := newSession("", 10)
	s.push(t, NewInsertText(pos(0, 0), "a"))
	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	require.True(t, s.hist.CanRedo())

	s.push(t, NewInsertText(pos(0, 0), "b"))
	assert.False(t, s.hist.CanRedo())
	assert.Equal(t, 0, s.hist.RedoCount())
}

func TestModifiedTracksSavePoint(t *testing.T) {
	s := newSession("", 10)
	assert.False(t, s.hist.IsModified())

	s.push(t, NewInsertText(pos(0, 0), "a"))
	assert.True(t, s.hist.IsModified())

	s.hist.MarkSaved()
	assert.False(t, s.hist.IsModified())

	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.True(t, s.hist.IsModified())

	require.NoError(t, s.hist.Redo(s.buf, s.cur))
	assert.False(t, s.hist.IsModified())
}

func TestSavePointLostWhenRedoCleared(t *testing.T) {
	s := newSession("", 10)
	s.push(t, NewInsertText(pos(0, 0), "a"))
	s.hist.MarkSaved()
	require.NoError(t, s.hist.Undo(s.buf, s.cur))

	s.push(t, NewInsertText(pos(0, 0), "b"))
	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.True(t, s.hist.IsModified())
}

func TestEvictionMakesModifiedPermanent(t *testing.T) {
	const capacity = 3
	s := newSession("", capacity)
	s.hist.MarkSaved()

	for i := 0; i < capacity+1; i++ {
		s.push(t, NewInsertChar(pos(0, i), 'x'))
	}
	assert.Equal(t, capacity, s.hist.UndoCount())

	for s.hist.CanUndo() {
		require.NoError(t, s.hist.Undo(s.buf, s.cur))
	}
	assert.Equal(t, "x", s.buf.FullText(), "the oldest entry was evicted")
	assert.True(t, s.hist.IsModified())

	s.hist.MarkSaved()
	assert.False(t, s.hist.IsModified())
}

func TestEvictionShiftsSavePoint(t *testing.T) {
	s := newSession("", 2)
	s.push(t, NewInsertChar(pos(0, 0), 'a'))
	s.push(t, NewInsertChar(pos(0, 1), 'b'))
	s.hist.MarkSaved()
	s.push(t, NewInsertChar(pos(0, 2), 'c'))

	assert.True(t, s.hist.IsModified())
	require.NoError(t, s.hist.Undo(s.buf, s.cur))
	assert.False(t, s.hist.IsModified())
}

func TestTransactionClosesOnError(t *testing.T) {
	s := newSession("ab", 10)
	err := s.hist.Transaction("Paste", func() error {
		if err := s.hist.Push(s.buf, s.cur, NewInsertText(pos(0, 2), "cd")); err != nil {
			return err
		}
		return s.hist.Push(s.buf, s.cur, NewInsertText(pos(5, 0), "x"))
	})
	assert.ErrorIs(t, err, buffer.ErrOutOfRange)
	assert.False(t, s.hist.IsGrouping())
	assert.Equal(t, 1, s.hist.UndoCount())
}

func TestCompositeRollsBackOnFailure(t *testing.T) {
	s := newSession("hello", 10)
	cmd := NewComposite("broken",
		NewInsertText(pos(0, 0), "x"),
		NewDeleteRange(pos(0, 0), pos(3, 0)),
	)
	err := s.hist.Push(s.buf, s.cur, cmd)
	assert.ErrorIs(t, err, buffer.ErrOutOfRange)
	assert.Equal(t, "hello", s.buf.FullText())
	assert.Equal(t, 0, s.hist.UndoCount())
}

func TestCompositeEditBoundsChildren(t *testing.T) {
	s := newSession("aa\nbb\ncc", 10)
	s.push(t, NewComposite("replace",
		NewDeleteRange(pos(2, 0), pos(2, 1)),
		NewDeleteRange(pos(0, 0), pos(0, 1)),
	))
	e := s.hist.LastEdit()
	assert.Equal(t, pos(0, 0), e.Start)
	assert.Equal(t, pos(2, 1), e.OldEnd)
}

func TestSetCapacityEvicts(t *testing.T) {
	s := newSession("", 10)
	for i := 0; i < 5; i++ {
		s.push(t, NewInsertChar(pos(0, i), 'x'))
	}
	s.hist.SetCapacity(2)
	assert.Equal(t, 2, s.hist.UndoCount())
	assert.Equal(t, 2, s.hist.Capacity())
}

// genCommand draws a command valid for the current document.
func genCommand(t *rapid.T, buf *buffer.SliceBuffer) *Command {
	genPos := func(label string) types.Position {
		line := rapid.IntRange(0, buf.LineCount()-1).Draw(t, label+"Line")
		n, _ := buf.LineLength(line)
		return pos(line, rapid.IntRange(0, n).Draw(t, label+"Col"))
	}
	switch rapid.IntRange(0, 5).Draw(t, "kind") {
	case 0:
		return NewInsertChar(genPos("at"), rapid.SampledFrom([]rune{'a', 'z', '汉', '\n', 'é'}).Draw(t, "rune"))
	case 1:
		return NewInsertText(genPos("at"), rapid.SampledFrom([]string{"x", "two\nlines", "\n\n", "汉字", ""}).Draw(t, "text"))
	case 2:
		return NewInsertNewline(genPos("at"))
	case 3:
		return NewDeleteBefore(genPos("at"))
	case 4:
		return NewDeleteAfter(genPos("at"))
	default:
		return NewDeleteRange(genPos("from"), genPos("to"))
	}
}

func TestUndoAllRestoresInitialState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SampledFrom([]string{"", "abc", "one\ntwo\nthree", "汉字\nmixed é text"}).Draw(t, "initial")
		buf := buffer.NewFromString(initial)
		cur := cursor.NewManager()
		hist := NewManager(1000)

		start := cur.Snapshot()
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if err := hist.Push(buf, cur, genCommand(t, buf)); err != nil {
				t.Fatalf("push: %v", err)
			}
		}

		for hist.CanUndo() {
			if err := hist.Undo(buf, cur); err != nil {
				t.Fatalf("undo: %v", err)
			}
		}
		if got := buf.FullText(); got != initial {
			t.Fatalf("content %q, want %q", got, initial)
		}
		if got := cur.Snapshot(); got != start {
			t.Fatalf("cursor %+v, want %+v", got, start)
		}
	})
}

func TestRevertIsExactInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := buffer.NewFromString(rapid.SampledFrom([]string{"abc", "ab\ncd\n", "汉\n\nz"}).Draw(t, "initial"))
		cur := cursor.NewManager()
		line := rapid.IntRange(0, buf.LineCount()-1).Draw(t, "cursorLine")
		cur.SetPosition(buf, pos(line, rapid.IntRange(0, 5).Draw(t, "cursorCol")))

		beforeText := buf.FullText()
		beforeCursor := cur.Snapshot()

		cmd := genCommand(t, buf)
		if err := cmd.Apply(buf, cur); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if err := cmd.Revert(buf, cur); err != nil {
			t.Fatalf("revert: %v", err)
		}
		if buf.FullText() != beforeText {
			t.Fatalf("content %q, want %q", buf.FullText(), beforeText)
		}
		if cur.Snapshot() != beforeCursor {
			t.Fatalf("cursor %+v, want %+v", cur.Snapshot(), beforeCursor)
		}
	})
}
