package width

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testAdv = Advances{Narrow: 10, Wide: 20}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Class
	}{
		{"latin", 'a', Narrow},
		{"digit", '7', Narrow},
		{"cjk ideograph", '汉', Wide},
		{"hiragana", 'あ', Wide},
		{"hangul", '한', Wide},
		{"fullwidth form", 'Ａ', Wide},
		{"combining acute", '\u0301', Zero},
		{"control", '\x01', Zero},
		{"ambiguous greek", 'α', Narrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.r))
		})
	}
}

func TestMeasure(t *testing.T) {
	assert.Equal(t, 10.0, Measure("a", testAdv))
	assert.Equal(t, 20.0, Measure("汉", testAdv))
	assert.Equal(t, 40.0, Measure("a汉b", testAdv))
	assert.Equal(t, 0.0, Measure("", testAdv))
	assert.Equal(t, 10.0, Measure("e\u0301", testAdv), "combining mark adds nothing")
}

func TestDefaultAdvances(t *testing.T) {
	adv := DefaultAdvances(14)
	assert.Equal(t, 7.0, adv.Narrow)
	assert.Equal(t, 14.0, adv.Wide)
}

func TestOffsetAt(t *testing.T) {
	assert.Equal(t, 0.0, OffsetAt("a汉b", 0, testAdv))
	assert.Equal(t, 10.0, OffsetAt("a汉b", 1, testAdv))
	assert.Equal(t, 30.0, OffsetAt("a汉b", 2, testAdv))
	assert.Equal(t, 40.0, OffsetAt("a汉b", 99, testAdv))
}

func TestIndexAtOffset(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target float64
		want   int
	}{
		{"negative clamps to start", "abc", -5, 0},
		{"leading half of first glyph", "abc", 4.9, 0},
		{"midpoint of narrow glyph", "abc", 5, 1},
		{"midpoint of wide glyph selects following index", "汉字", 10, 1},
		{"just before wide midpoint", "汉字", 9.99, 0},
		{"mixed line", "a汉b", 19.9, 1},
		{"mixed line past wide midpoint", "a汉b", 20, 2},
		{"past end clamps to length", "a汉b", 500, 3},
		{"empty text", "", 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexAtOffset(tt.text, tt.target, testAdv))
		})
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 5, Columns("hello"))
	assert.Equal(t, 4, Columns("汉字"))
}
