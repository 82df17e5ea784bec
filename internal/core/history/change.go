// Package history provides undo/redo functionality via a command history stack.
package history

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Kind tags the closed set of command variants.
type Kind int

const (
	KindInsert Kind = iota
	KindDelete
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindComposite:
		return "composite"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type insertMode int

const (
	insertText insertMode = iota
	insertChar
	insertNewline
)

type deleteMode int

const (
	deleteRange deleteMode = iota
	deleteBefore
	deleteAfter
)

// Command is one reversible edit. Apply and Revert are exact inverses on both
// the buffer content and the full cursor state.
type Command struct {
	Kind  Kind
	Label string

	pos  types.Position // Insert position, or delete origin
	end  types.Position // Delete range end (deleteRange only)
	text string         // Text to insert
	char rune

	insertMode insertMode
	deleteMode deleteMode

	children []*Command

	// Recorded by Apply
	before  cursor.Snapshot
	start   types.Position // Where the text now begins (insert) or began (delete)
	after   types.Position // End of the inserted text
	deleted string
	edit    types.EditInfo
}

// NewInsertChar inserts a single character. Line terminators split the line.
func NewInsertChar(pos types.Position, r rune) *Command {
	mode := insertChar
	if r == '\n' || r == '\r' {
		mode = insertNewline
	}
	return &Command{Kind: KindInsert, Label: "Insert Char", pos: pos, char: r, insertMode: mode}
}

// NewInsertText inserts a possibly multi-line string.
func NewInsertText(pos types.Position, text string) *Command {
	return &Command{Kind: KindInsert, Label: "Insert Text", pos: pos, text: text, insertMode: insertText}
}

// NewInsertNewline splits the line at pos.
func NewInsertNewline(pos types.Position) *Command {
	return &Command{Kind: KindInsert, Label: "Insert Newline", pos: pos, char: '\n', insertMode: insertNewline}
}

// NewDeleteBefore deletes the character before pos (backspace).
func NewDeleteBefore(pos types.Position) *Command {
	return &Command{Kind: KindDelete, Label: "Delete Before", pos: pos, deleteMode: deleteBefore}
}

// NewDeleteAfter deletes the character after pos (delete key).
func NewDeleteAfter(pos types.Position) *Command {
	return &Command{Kind: KindDelete, Label: "Delete After", pos: pos, deleteMode: deleteAfter}
}

// NewDeleteRange deletes [start, end) in either order.
func NewDeleteRange(start, end types.Position) *Command {
	r := types.Range{Start: start, End: end}.Normalized()
	return &Command{Kind: KindDelete, Label: "Delete Range", pos: r.Start, end: r.End, deleteMode: deleteRange}
}

// NewComposite groups cmds into one undo unit applied in order.
func NewComposite(label string, cmds ...*Command) *Command {
	return &Command{Kind: KindComposite, Label: label, children: cmds}
}

// Children returns the sub-commands of a composite.
func (c *Command) Children() []*Command {
	return c.children
}

// Deleted returns the text removed by the last Apply of a delete command.
func (c *Command) Deleted() string {
	return c.deleted
}

// Edit describes the span touched by the last Apply or Revert. For a
// composite it is the bounding span of its children.
func (c *Command) Edit() types.EditInfo {
	return c.edit
}

// Changed reports whether the last Apply modified the document.
func (c *Command) Changed() bool {
	switch c.Kind {
	case KindInsert:
		return c.start != c.after
	case KindDelete:
		return c.deleted != ""
	case KindComposite:
		for _, child := range c.children {
			if child.Changed() {
				return true
			}
		}
	}
	return false
}

func (c *Command) String() string {
	return fmt.Sprintf("%s(%s)", c.Kind, c.Label)
}

// Apply performs the edit and places the cursor after it. The cursor state
// before the edit is captured for Revert.
func (c *Command) Apply(buf buffer.Buffer, cur *cursor.Manager) error {
	c.before = cur.Snapshot()
	switch c.Kind {
	case KindInsert:
		return c.applyInsert(buf, cur)
	case KindDelete:
		return c.applyDelete(buf, cur)
	case KindComposite:
		return c.applyComposite(buf, cur)
	}
	return fmt.Errorf("apply %v: unknown command kind", c)
}

// Revert undoes the last Apply and restores the captured cursor state.
func (c *Command) Revert(buf buffer.Buffer, cur *cursor.Manager) error {
	switch c.Kind {
	case KindInsert:
		if c.start != c.after {
			if _, err := buf.DeleteRange(c.start, c.after); err != nil {
				return fmt.Errorf("revert %v: %w", c, err)
			}
		}
		c.edit = types.EditInfo{Start: c.start, OldEnd: c.after, NewEnd: c.start}
	case KindDelete:
		end := c.start
		if c.deleted != "" {
			var err error
			if end, err = buf.InsertText(c.start, c.deleted); err != nil {
				return fmt.Errorf("revert %v: %w", c, err)
			}
		}
		c.edit = types.EditInfo{Start: c.start, OldEnd: c.start, NewEnd: end}
	case KindComposite:
		for i := len(c.children) - 1; i >= 0; i-- {
			if err := c.children[i].Revert(buf, cur); err != nil {
				return fmt.Errorf("revert %v: %w", c, err)
			}
		}
		c.edit = boundingEdit(c.children)
	default:
		return fmt.Errorf("revert %v: unknown command kind", c)
	}
	cur.Restore(c.before)
	return nil
}

func (c *Command) applyInsert(buf buffer.Buffer, cur *cursor.Manager) error {
	var end types.Position
	var err error
	switch c.insertMode {
	case insertChar:
		if err = buf.InsertChar(c.pos, c.char); err == nil {
			end = types.Position{Line: c.pos.Line, Col: c.pos.Col + 1}
		}
	case insertNewline:
		end, err = buf.InsertNewline(c.pos)
	default:
		end, err = buf.InsertText(c.pos, c.text)
	}
	if err != nil {
		return fmt.Errorf("apply %v: %w", c, err)
	}
	c.start, c.after = c.pos, end
	c.edit = types.EditInfo{Start: c.pos, OldEnd: c.pos, NewEnd: end}
	cur.Place(end)
	return nil
}

func (c *Command) applyDelete(buf buffer.Buffer, cur *cursor.Manager) error {
	var start types.Position
	var deleted string
	var err error
	switch c.deleteMode {
	case deleteBefore:
		start, deleted, err = buf.DeleteCharBefore(c.pos)
	case deleteAfter:
		start, deleted, err = buf.DeleteCharAfter(c.pos)
	default:
		start = c.pos
		deleted, err = buf.DeleteRange(c.pos, c.end)
	}
	if err != nil {
		return fmt.Errorf("apply %v: %w", c, err)
	}
	c.start, c.deleted = start, deleted
	c.edit = types.EditInfo{Start: start, OldEnd: advance(start, deleted), NewEnd: start}
	cur.Place(start)
	return nil
}

func (c *Command) applyComposite(buf buffer.Buffer, cur *cursor.Manager) error {
	for i, child := range c.children {
		if err := child.Apply(buf, cur); err != nil {
			err = fmt.Errorf("apply %v: %w", c, err)
			// Roll back what was applied so the composite stays atomic.
			for j := i - 1; j >= 0; j-- {
				if rbErr := c.children[j].Revert(buf, cur); rbErr != nil {
					logger.Errorf("History: rollback of %v left the buffer partially applied: %v", c, rbErr)
					err = errors.Join(err, fmt.Errorf("rollback %v: %w", c.children[j], rbErr))
				}
			}
			cur.Restore(c.before)
			return err
		}
	}
	c.edit = boundingEdit(c.children)
	return nil
}

// advance returns the position reached after text starting at pos.
func advance(pos types.Position, text string) types.Position {
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(text)}
	}
	tail := text[strings.LastIndexByte(text, '\n')+1:]
	return types.Position{Line: pos.Line + nl, Col: utf8.RuneCountInString(tail)}
}

func boundingEdit(cmds []*Command) types.EditInfo {
	if len(cmds) == 0 {
		return types.EditInfo{}
	}
	out := cmds[0].edit
	for _, cmd := range cmds[1:] {
		e := cmd.edit
		out.Start = types.MinPosition(out.Start, e.Start)
		out.OldEnd = types.MaxPosition(out.OldEnd, e.OldEnd)
		out.NewEnd = types.MaxPosition(out.NewEnd, e.NewEnd)
	}
	return out
}
