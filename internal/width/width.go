// Package width classifies characters by display advance and accumulates
// advances for layout-correct caret placement.
package width

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Class is the advance class of a single character.
type Class int

const (
	Zero   Class = iota // Combining marks, control characters
	Narrow              // Latin and most other scripts
	Wide                // CJK ideographs, full-width forms, wide emoji
)

func (c Class) String() string {
	switch c {
	case Zero:
		return "zero"
	case Narrow:
		return "narrow"
	case Wide:
		return "wide"
	}
	return "unknown"
}

// Ambiguous East-Asian characters are treated as narrow regardless of locale
// so measurement does not depend on the host environment.
var condition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Classify returns the advance class of r.
func Classify(r rune) Class {
	switch condition.RuneWidth(r) {
	case 0:
		return Zero
	case 2:
		return Wide
	default:
		return Narrow
	}
}

// Advances holds the per-class advance supplied by the font metrics
// collaborator.
type Advances struct {
	Narrow float64
	Wide   float64
}

// DefaultAdvances returns fallback advances for when metrics are unavailable:
// the narrow advance is half the wide one.
func DefaultAdvances(wide float64) Advances {
	return Advances{Narrow: wide / 2, Wide: wide}
}

// Advance returns the advance of r.
func Advance(r rune, adv Advances) float64 {
	switch Classify(r) {
	case Wide:
		return adv.Wide
	case Narrow:
		return adv.Narrow
	}
	return 0
}

// Measure sums the advances of every character in text.
func Measure(text string, adv Advances) float64 {
	total := 0.0
	for _, r := range text {
		total += Advance(r, adv)
	}
	return total
}

// OffsetAt returns the leading-edge offset of the character at index.
// Indexes past the end return the full width of text.
func OffsetAt(text string, index int, adv Advances) float64 {
	total := 0.0
	i := 0
	for _, r := range text {
		if i >= index {
			break
		}
		total += Advance(r, adv)
		i++
	}
	return total
}

// IndexAtOffset hit-tests target against text. It walks characters
// accumulating advance and returns the first index whose glyph midpoint is
// at or past target; a target exactly on a midpoint selects the following
// position. Targets past the last glyph clamp to the rune count of text.
func IndexAtOffset(text string, target float64, adv Advances) int {
	if target <= 0 {
		return 0
	}
	acc := 0.0
	i := 0
	for _, r := range text {
		a := Advance(r, adv)
		mid := acc + a/2
		if target < mid {
			return i
		}
		acc += a
		i++
	}
	return i
}

// Columns returns the number of terminal cells text occupies, counting whole
// grapheme clusters.
func Columns(text string) int {
	return uniseg.StringWidth(text)
}
