// Package find implements search and replace over a document.
package find

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/types"
	"github.com/bethropolis/tidecore/internal/utils"
)

// MaxMatches caps the number of matches collected by one search.
const MaxMatches = 10000

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrNoMatches  = errors.New("no matches")
)

// Document is the read access search needs.
type Document interface {
	LineCount() int
	Line(index int) ([]byte, error)
}

// Match is one hit: runes [Start, End) on Line.
type Match struct {
	Line  int
	Start int
	End   int
}

// StartPos returns the position of the first matched character.
func (m Match) StartPos() types.Position {
	return types.Position{Line: m.Line, Col: m.Start}
}

// EndPos returns the position after the last matched character.
func (m Match) EndPos() types.Position {
	return types.Position{Line: m.Line, Col: m.End}
}

// Compile builds the pattern for query. Literal queries are quoted; case
// folding is done by the regexp engine so columns come from the text itself.
func Compile(query string, caseSensitive, regex bool) (*regexp.Regexp, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	expr := query
	if !regex {
		expr = regexp.QuoteMeta(query)
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", query, err)
	}
	return re, nil
}

// Search collects non-overlapping matches of query in document order. An
// empty query yields an empty set.
func Search(doc Document, query string, caseSensitive bool) *MatchSet {
	re, err := Compile(query, caseSensitive, false)
	if err != nil {
		return NewMatchSet(nil)
	}
	return SearchPattern(doc, re)
}

// SearchPattern collects matches of re line by line. Empty matches are
// skipped. Collection stops at MaxMatches.
func SearchPattern(doc Document, re *regexp.Regexp) *MatchSet {
	return searchPattern(doc, re, MaxMatches)
}

// searchPattern collects at most limit matches; limit <= 0 collects all.
func searchPattern(doc Document, re *regexp.Regexp, limit int) *MatchSet {
	var matches []Match
	truncated := false
	for i := 0; i < doc.LineCount() && !truncated; i++ {
		line, err := doc.Line(i)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			if limit > 0 && len(matches) == limit {
				truncated = true
				break
			}
			start := utils.ByteOffsetToRuneIndex(line, loc[0])
			matches = append(matches, Match{
				Line:  i,
				Start: start,
				End:   start + utf8.RuneCount(line[loc[0]:loc[1]]),
			})
		}
	}
	set := NewMatchSet(matches)
	set.truncated = truncated
	return set
}

// MatchSet is an ordered list of matches with a pagination cursor.
type MatchSet struct {
	matches   []Match
	current   int // -1 when no match is selected
	truncated bool
}

// NewMatchSet wraps matches, which must be in document order.
func NewMatchSet(matches []Match) *MatchSet {
	return &MatchSet{matches: matches, current: -1}
}

// Len returns the number of matches.
func (s *MatchSet) Len() int {
	return len(s.matches)
}

// All returns the matches. Callers must not modify the slice.
func (s *MatchSet) All() []Match {
	return s.matches
}

// Index returns the selected match index, or -1.
func (s *MatchSet) Index() int {
	return s.current
}

// Truncated reports whether the search stopped at MaxMatches.
func (s *MatchSet) Truncated() bool {
	return s.truncated
}

// Current returns the selected match.
func (s *MatchSet) Current() (Match, bool) {
	if s.current < 0 || s.current >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// Next selects the following match, wrapping from last to first.
func (s *MatchSet) Next() (Match, error) {
	n := len(s.matches)
	if n == 0 {
		return Match{}, ErrNoMatches
	}
	if s.current < 0 {
		s.current = 0
	} else {
		s.current = (s.current + 1) % n
	}
	return s.matches[s.current], nil
}

// Previous selects the preceding match, wrapping from first to last.
func (s *MatchSet) Previous() (Match, error) {
	n := len(s.matches)
	if n == 0 {
		return Match{}, ErrNoMatches
	}
	if s.current < 0 {
		s.current = n - 1
	} else {
		s.current = (s.current - 1 + n) % n
	}
	return s.matches[s.current], nil
}

// SelectNearest selects the first match starting at or after pos, wrapping
// to the first match when none follows.
func (s *MatchSet) SelectNearest(pos types.Position) (Match, bool) {
	if len(s.matches) == 0 {
		s.current = -1
		return Match{}, false
	}
	i := sort.Search(len(s.matches), func(i int) bool {
		return !s.matches[i].StartPos().Less(pos)
	})
	if i == len(s.matches) {
		i = 0
	}
	s.current = i
	return s.matches[i], true
}

// Reset clears the selection without dropping matches.
func (s *MatchSet) Reset() {
	s.current = -1
}

// VisibleRange returns the index range [start, end) of matches on lines
// minLine through maxLine.
func (s *MatchSet) VisibleRange(minLine, maxLine int) (start, end int) {
	start = sort.Search(len(s.matches), func(i int) bool {
		return s.matches[i].Line >= minLine
	})
	end = sort.Search(len(s.matches), func(i int) bool {
		return s.matches[i].Line > maxLine
	})
	if end < start {
		end = start
	}
	return start, end
}
