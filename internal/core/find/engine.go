package find

import (
	"fmt"
	"regexp"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/core/history"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Engine owns the active query and its match set. Content changes mark the
// set dirty; it is rebuilt from the document on the next access.
type Engine struct {
	query         string
	caseSensitive bool
	regex         bool
	pattern       *regexp.Regexp

	matches *MatchSet
	dirty   bool
}

// NewEngine creates an engine with no query.
func NewEngine(caseSensitive bool) *Engine {
	return &Engine{caseSensitive: caseSensitive, matches: NewMatchSet(nil)}
}

// Query returns the active query.
func (e *Engine) Query() string {
	return e.query
}

// CaseSensitive reports the case mode.
func (e *Engine) CaseSensitive() bool {
	return e.caseSensitive
}

// Regex reports whether the query is a regular expression.
func (e *Engine) Regex() bool {
	return e.regex
}

// SetQuery replaces the query. An empty query clears the matches. In regex
// mode an invalid pattern is returned and the previous query stays active.
func (e *Engine) SetQuery(query string) error {
	return e.configure(query, e.caseSensitive, e.regex)
}

// SetCaseSensitive switches the case mode.
func (e *Engine) SetCaseSensitive(caseSensitive bool) error {
	return e.configure(e.query, caseSensitive, e.regex)
}

// SetRegex switches between literal and regular expression queries.
func (e *Engine) SetRegex(regex bool) error {
	return e.configure(e.query, e.caseSensitive, regex)
}

func (e *Engine) configure(query string, caseSensitive, regex bool) error {
	var re *regexp.Regexp
	if query != "" {
		var err error
		if re, err = Compile(query, caseSensitive, regex); err != nil {
			return err
		}
	}
	e.query, e.caseSensitive, e.regex, e.pattern = query, caseSensitive, regex, re
	e.matches = NewMatchSet(nil)
	e.dirty = true
	return nil
}

// Invalidate marks the match set stale after a content change.
func (e *Engine) Invalidate() {
	e.dirty = true
}

// Refresh rebuilds a stale match set. The selection is moved to the match
// nearest to where the previous one started.
func (e *Engine) Refresh(doc Document) *MatchSet {
	if !e.dirty {
		return e.matches
	}
	prev, hadCurrent := e.matches.Current()
	if e.pattern == nil {
		e.matches = NewMatchSet(nil)
	} else {
		e.matches = SearchPattern(doc, e.pattern)
	}
	e.dirty = false
	if hadCurrent {
		e.matches.SelectNearest(prev.StartPos())
	}
	logger.DebugTagf("find", "Find: %q matched %d (truncated=%v)", e.query, e.matches.Len(), e.matches.Truncated())
	return e.matches
}

// Matches returns the current match set, refreshing it if stale.
func (e *Engine) Matches(doc Document) *MatchSet {
	return e.Refresh(doc)
}

// Next selects the following match. Without a selection it picks the first
// match at or after from.
func (e *Engine) Next(doc Document, from types.Position) (Match, error) {
	if e.query == "" {
		return Match{}, ErrEmptyQuery
	}
	set := e.Refresh(doc)
	if set.Len() == 0 {
		return Match{}, ErrNoMatches
	}
	if set.Index() < 0 {
		m, _ := set.SelectNearest(from)
		return m, nil
	}
	return set.Next()
}

// Previous selects the preceding match. Without a selection it picks the
// last match before from.
func (e *Engine) Previous(doc Document, from types.Position) (Match, error) {
	if e.query == "" {
		return Match{}, ErrEmptyQuery
	}
	set := e.Refresh(doc)
	if set.Len() == 0 {
		return Match{}, ErrNoMatches
	}
	if set.Index() < 0 {
		set.SelectNearest(from)
	}
	return set.Previous()
}

// ReplaceCurrent replaces the selected match (or the one nearest the cursor)
// as a single undo step, then searches again and selects the first match at
// or after the inserted text.
func (e *Engine) ReplaceCurrent(buf buffer.Buffer, cur *cursor.Manager, hist *history.Manager, replacement string) (Match, error) {
	if e.query == "" {
		return Match{}, ErrEmptyQuery
	}
	set := e.Refresh(buf)
	m, ok := set.Current()
	if !ok {
		if m, ok = set.SelectNearest(cur.Position()); !ok {
			return Match{}, ErrNoMatches
		}
	}

	cmd := history.NewComposite("Replace",
		history.NewDeleteRange(m.StartPos(), m.EndPos()),
		history.NewInsertText(m.StartPos(), replacement),
	)
	if err := hist.Push(buf, cur, cmd); err != nil {
		return Match{}, fmt.Errorf("replace match at %v: %w", m.StartPos(), err)
	}

	e.dirty = true
	set = e.Refresh(buf)
	next, ok := set.SelectNearest(cur.Position())
	if !ok {
		return Match{}, nil
	}
	return next, nil
}

// ReplaceAll replaces every match in one undo step and returns the count.
// Matches are replaced last to first so earlier offsets stay valid. The
// MaxMatches cap of the navigable set does not apply here.
func (e *Engine) ReplaceAll(buf buffer.Buffer, cur *cursor.Manager, hist *history.Manager, replacement string) (int, error) {
	if e.query == "" || e.pattern == nil {
		return 0, ErrEmptyQuery
	}
	matches := searchPattern(buf, e.pattern, 0).All()
	if len(matches) == 0 {
		return 0, ErrNoMatches
	}

	cmds := make([]*history.Command, 0, 2*len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		cmds = append(cmds,
			history.NewDeleteRange(m.StartPos(), m.EndPos()),
			history.NewInsertText(m.StartPos(), replacement),
		)
	}
	if err := hist.Push(buf, cur, history.NewComposite("Replace All", cmds...)); err != nil {
		return 0, fmt.Errorf("replace all: %w", err)
	}

	e.dirty = true
	e.matches.Reset()
	e.Refresh(buf)
	logger.DebugTagf("find", "Find: replaced %d occurrences of %q", len(matches), e.query)
	return len(matches), nil
}
