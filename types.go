package figdriver

import (
	"github.com/ryanlewis/figdriver/internal/common"
	"github.com/ryanlewis/figdriver/internal/debug"
)

// Font represents an immutable FIGfont that can be safely shared across goroutines.
//
// Font data is loaded once and never modified, making it safe for concurrent use
// without locking.
type Font struct {
	// glyphs maps character codes to their rows (unexported for immutability)
	glyphs map[rune][]string

	// Name is the font name (e.g., "Standard")
	Name string

	// Rules holds the header metadata and the decoded fitting rules
	Rules FontRules

	// Comment is the font's comment block, lines joined with "\n"
	Comment string

	// Warnings lists non-fatal problems found while parsing
	Warnings []string
}

// Glyph returns the rows for a character code, or false if the font has none.
// The returned slice should not be modified by the caller.
func (f *Font) Glyph(code rune) ([]string, bool) {
	if f == nil || f.glyphs == nil {
		return nil, false
	}
	glyph, ok := f.glyphs[code]
	return glyph, ok
}

// NumChars returns the number of glyphs in the font.
func (f *Font) NumChars() int {
	if f == nil {
		return 0
	}
	return len(f.glyphs)
}

// FontRules is the metadata read from a font header.
type FontRules struct {
	// Hardblank renders as a space but is never smushed away like one
	Hardblank rune `yaml:"-"`

	// Height is the number of rows in every glyph
	Height int `yaml:"height"`

	// Baseline is the number of rows from the top to the baseline
	Baseline int `yaml:"baseline"`

	// MaxLength is the widest glyph row including end marks
	MaxLength int `yaml:"max_length"`

	// OldLayout is the legacy layout header field
	OldLayout int `yaml:"old_layout"`

	// CommentLines is the number of comment lines after the header
	CommentLines int `yaml:"comment_lines"`

	// PrintDirection is 0 for left-to-right, 1 for right-to-left
	PrintDirection int `yaml:"print_direction"`

	// FullLayout is nil when the header omits it
	FullLayout *int `yaml:"full_layout,omitempty"`

	// CodeTagCount is nil when the header omits it
	CodeTagCount *int `yaml:"codetag_count,omitempty"`

	// Fitting is the horizontal and vertical layout decoded from the header
	Fitting FittingRules `yaml:"-"`
}

// Errors returned by the figdriver package. All of them are matched with errors.Is.
var (
	// ErrMalformedHeader is returned when the font header cannot be parsed
	ErrMalformedHeader = common.ErrMalformedHeader

	// ErrTruncatedFont is returned when the font ends before its required glyphs
	ErrTruncatedFont = common.ErrTruncatedFont

	// ErrInvalidExtensionCode is returned for an unusable code-tagged glyph code
	ErrInvalidExtensionCode = common.ErrInvalidExtensionCode

	// ErrFontNotFound is returned when a font is neither loaded nor obtainable
	ErrFontNotFound = common.ErrFontNotFound

	// ErrUnknownLayout is returned for an unrecognised layout keyword
	ErrUnknownLayout = common.ErrUnknownLayout
)

// Option configures rendering behavior.
type Option func(*options)

type options struct {
	font            string
	hLayout         LayoutKeyword
	vLayout         LayoutKeyword
	width           int
	whitespaceBreak bool
	printDirection  *int
	showHardblanks  bool
	debug           *debug.Session
}

func defaultOptions() *options {
	return &options{
		hLayout: LayoutDefault,
		vLayout: LayoutDefault,
	}
}

// WithFont selects the font by name. Only Renderer.Text uses it; the
// package-level Render takes the font directly.
func WithFont(name string) Option {
	return func(opts *options) {
		opts.font = name
	}
}

// WithHorizontalLayout overrides the font's horizontal layout.
//
// LayoutDefault keeps the font's own layout and rules. The other keywords
// replace both: LayoutFull and LayoutFitted switch every rule off,
// LayoutControlledSmushing switches all six horizontal rules on and
// LayoutUniversalSmushing smushes with no rules at all.
func WithHorizontalLayout(k LayoutKeyword) Option {
	return func(opts *options) {
		opts.hLayout = k
	}
}

// WithVerticalLayout overrides the font's vertical layout, with the same
// keyword semantics as WithHorizontalLayout.
func WithVerticalLayout(k LayoutKeyword) Option {
	return func(opts *options) {
		opts.vLayout = k
	}
}

// WithWidth sets the maximum output width in columns.
// Zero or a negative width disables wrapping.
//
// Text is broken as soon as the next glyph would reach the width, so a
// rendered row is always narrower than width unless a single glyph is wider.
func WithWidth(width int) Option {
	return func(opts *options) {
		opts.width = width
	}
}

// WithWhitespaceBreak wraps at whitespace instead of between any two
// glyphs. Words wider than the width are still broken. Has no effect
// without WithWidth.
func WithWhitespaceBreak(on bool) Option {
	return func(opts *options) {
		opts.whitespaceBreak = on
	}
}

// WithPrintDirection sets the print direction, overriding the font's default.
//
// Direction Values:
//   - 0: Left-to-right (LTR) - normal reading direction
//   - 1: Right-to-left (RTL) - each input line is reversed before layout
func WithPrintDirection(direction int) Option {
	return func(opts *options) {
		opts.printDirection = &direction
	}
}

// WithShowHardblanks leaves hardblank characters in the output instead of
// replacing them with spaces. Useful when inspecting a font.
func WithShowHardblanks(show bool) Option {
	return func(opts *options) {
		opts.showHardblanks = show
	}
}

// WithDebug traces the render into s. A nil session disables tracing.
func WithDebug(s *debug.Session) Option {
	return func(opts *options) {
		opts.debug = s
	}
}
