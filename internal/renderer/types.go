package renderer

import (
	"errors"

	"github.com/ryanlewis/figdriver/internal/common"
	"github.com/ryanlewis/figdriver/internal/debug"
)

// ErrNilFont is returned when a nil font is provided to Render
var ErrNilFont = errors.New("font cannot be nil")

// Options contains resolved rendering options passed from the main package
type Options struct {
	// Rules are the fitting rules for both axes after keyword overrides
	Rules common.FittingRules
	// Width is the output width limit; 0 or less means unbounded
	Width int
	// WhitespaceBreak wraps at whitespace instead of mid-word
	WhitespaceBreak bool
	// PrintDirection specifies direction (0=LTR, 1=RTL)
	PrintDirection int
	// ShowHardblanks leaves hardblank characters in the output
	ShowHardblanks bool
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}

// block is a rectangle of text rows under construction. Rows may differ in length.
type block [][]rune

func newBlock(height int) block {
	return make(block, height)
}

func toBlock(rows []string, height int) block {
	b := newBlock(height)
	for i := 0; i < height && i < len(rows); i++ {
		b[i] = []rune(rows[i])
	}
	return b
}

// width is the length of the longest row
func (b block) width() int {
	w := 0
	for _, row := range b {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (b block) strings() []string {
	rows := make([]string, len(b))
	for i, row := range b {
		rows[i] = string(row)
	}
	return rows
}

// figChar is a glyph or word block plus its overlap with whatever precedes it
type figChar struct {
	fig     block
	overlap int
}

// renderState holds per-render configuration and trace context.
type renderState struct {
	glyphs map[rune][]string
	cache  map[rune]block

	rules           common.FittingRules
	hardblank       rune
	height          int
	width           int
	whitespaceBreak bool
	printDirection  int
	showHardblanks  bool

	debug      *debug.Session
	line       int // input line being laid out
	glyphCount int
}

// glyph returns the cached block for r
func (s *renderState) glyph(r rune) (block, bool) {
	if b, ok := s.cache[r]; ok {
		return b, true
	}
	rows, ok := s.glyphs[r]
	if !ok {
		return nil, false
	}
	b := toBlock(rows, s.height)
	s.cache[r] = b
	return b, true
}
