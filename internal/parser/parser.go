// Package parser implements FIGfont (FLF 2.0) parsing.
package parser

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ryanlewis/figdriver/internal/common"
	"github.com/ryanlewis/figdriver/internal/debug"
)

const (
	// minHeaderFields is the number of required fields in a FIGfont header,
	// counting the signature token
	minHeaderFields = 6
	// signatureRunes is the length of the signature token: "flf2a" plus the hardblank
	signatureRunes = 6
	// firstRequiredASCII is the first required character code (space)
	firstRequiredASCII = 32
	// lastRequiredASCII is the last required ASCII character code (~)
	lastRequiredASCII = 126
)

// deutschCodes are the Latin-1 characters every FIGfont must define, in file order.
var deutschCodes = []rune{196, 214, 220, 228, 246, 252, 223}

// RequiredCodes returns the character codes every font defines, in file order.
func RequiredCodes() []rune {
	codes := make([]rune, 0, lastRequiredASCII-firstRequiredASCII+1+len(deutschCodes))
	for c := rune(firstRequiredASCII); c <= lastRequiredASCII; c++ {
		codes = append(codes, c)
	}
	return append(codes, deutschCodes...)
}

var requiredCodes = RequiredCodes()

// Font represents a parsed FIGfont with all its metadata and character glyphs.
type Font struct {
	// Characters maps character codes to their glyph rows
	Characters map[rune][]string

	// Comment is the font's comment block, lines joined with "\n"
	Comment string

	// Signature contains the FIGfont signature (e.g., "flf2a")
	Signature string

	// Hardblank is the character used for hard blanks
	Hardblank rune

	// Height is the number of lines per character
	Height int

	// Baseline is the number of lines from the top to the baseline
	Baseline int

	// MaxLength is the maximum line width including end marks
	MaxLength int

	// OldLayout is the legacy layout value
	OldLayout int

	// CommentLines is the number of comment lines after the header
	CommentLines int

	// PrintDirection specifies the print direction (0=LTR, 1=RTL)
	PrintDirection int

	// FullLayout contains the full layout value
	FullLayout int

	// FullLayoutSet indicates whether FullLayout was present in the header
	FullLayoutSet bool

	// CodetagCount specifies the number of code-tagged characters
	CodetagCount int

	// CodetagCountSet indicates whether CodetagCount was present in the header
	CodetagCountSet bool

	// Rules are the fitting rules decoded from OldLayout and FullLayout
	Rules common.FittingRules

	// Warnings contains any non-fatal issues encountered during parsing
	Warnings []string
}

// Option configures a parse.
type Option func(*config)

type config struct {
	debug *debug.Session
}

// WithDebug traces the parse to the given session.
func WithDebug(s *debug.Session) Option {
	return func(c *config) {
		c.debug = s
	}
}

// Parse reads a FIGfont from the provided reader and returns a parsed Font.
func Parse(r io.Reader, opts ...Option) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading font data: %w", err)
	}
	return ParseString(string(data), opts...)
}

// ParseString parses FIGfont text. The returned font is complete or nil; a
// failed parse never yields a partial font.
func ParseString(data string, opts ...Option) (*Font, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	lines := splitLines(data)

	font, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	lines = lines[1:]

	if cfg.debug != nil {
		cfg.debug.Emit("parse", "FontHeader", debug.FontHeaderData{
			Hardblank:     font.Hardblank,
			Height:        font.Height,
			Baseline:      font.Baseline,
			MaxLength:     font.MaxLength,
			OldLayout:     font.OldLayout,
			FullLayout:    font.FullLayout,
			FullLayoutSet: font.FullLayoutSet,
			PrintDir:      font.PrintDirection,
			CommentLines:  font.CommentLines,
			HLayout:       font.Rules.HLayout.String(),
			HRules:        font.Rules.HRules.String(),
			VLayout:       font.Rules.VLayout.String(),
			VRules:        font.Rules.VRules.String(),
		})
	}

	// Everything after the header must hold the comment and the required glyphs
	available := len(lines) - font.CommentLines
	if available < 0 || font.Height > available/len(requiredCodes) {
		return nil, fmt.Errorf("%w: %d lines after header, need %d comment lines plus %d glyphs of height %d",
			common.ErrTruncatedFont, len(lines), font.CommentLines, len(requiredCodes), font.Height)
	}

	font.Comment = strings.Join(lines[:font.CommentLines], "\n")
	lines = lines[font.CommentLines:]

	font.Characters = make(map[rune][]string, len(requiredCodes)+16)
	pos := 0
	for _, code := range requiredCodes {
		var glyph []string
		glyph, pos = readGlyph(lines, pos, font.Height)
		font.Characters[code] = glyph
		font.checkWidth(code, glyph)
	}

	optional, err := parseExtensionGlyphs(lines[pos:], font)
	if err != nil {
		return nil, err
	}

	if cfg.debug != nil {
		cfg.debug.Emit("parse", "GlyphStats", debug.GlyphStatsData{
			RequiredCount: len(requiredCodes),
			OptionalCount: optional,
			Warnings:      len(font.Warnings),
		})
	}

	return font, nil
}

// splitLines normalises line endings, drops a UTF-8 BOM and splits on "\n".
func splitLines(data string) []string {
	data = strings.TrimPrefix(data, "\ufeff")
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.ReplaceAll(data, "\r", "\n")
	return strings.Split(data, "\n")
}

// parseHeader validates the header line and decodes its fields
func parseHeader(headerLine string) (*Font, error) {
	fields := strings.Fields(headerLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty header line", common.ErrMalformedHeader)
	}

	font := &Font{}
	if err := parseSignature(fields[0], font); err != nil {
		return nil, err
	}

	if len(fields) < minHeaderFields {
		return nil, fmt.Errorf("%w: insufficient header fields: got %d, need at least %d",
			common.ErrMalformedHeader, len(fields)-1, minHeaderFields-1)
	}

	if err := parseRequiredFields(fields[1:], font); err != nil {
		return nil, err
	}
	if err := parseOptionalFields(fields[1:], font); err != nil {
		return nil, err
	}

	var fullLayout *int
	if font.FullLayoutSet {
		fullLayout = &font.FullLayout
	}
	font.Rules = common.DecodeLayout(font.OldLayout, fullLayout)

	return font, nil
}

// parseSignature validates and extracts the signature and hardblank
func parseSignature(token string, font *Font) error {
	runes := []rune(token)
	if len(runes) < signatureRunes-1 || string(runes[:signatureRunes-1]) != "flf2a" {
		return fmt.Errorf("%w: invalid signature %q, expected 'flf2a'", common.ErrMalformedHeader, token)
	}
	if len(runes) != signatureRunes {
		return fmt.Errorf("%w: hardblank must be exactly one character, got %q",
			common.ErrMalformedHeader, string(runes[signatureRunes-1:]))
	}

	font.Signature = string(runes[:signatureRunes-1])
	font.Hardblank = runes[signatureRunes-1]
	return nil
}

// parseRequiredFields parses the five required numeric header fields
func parseRequiredFields(fields []string, font *Font) error {
	targets := []struct {
		name string
		dst  *int
	}{
		{"height", &font.Height},
		{"baseline", &font.Baseline},
		{"max length", &font.MaxLength},
		{"old layout", &font.OldLayout},
		{"comment lines", &font.CommentLines},
	}
	for i, target := range targets {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return fmt.Errorf("%w: invalid %s %q", common.ErrMalformedHeader, target.name, fields[i])
		}
		*target.dst = v
	}

	if font.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", common.ErrMalformedHeader, font.Height)
	}
	if font.CommentLines < 0 {
		return fmt.Errorf("%w: comment lines must be non-negative, got %d", common.ErrMalformedHeader, font.CommentLines)
	}

	// Baseline and MaxLength are informational; real fonts get them wrong often enough
	if font.Baseline < 1 || font.Baseline > font.Height {
		font.Warnings = append(font.Warnings,
			fmt.Sprintf("baseline %d outside 1..%d", font.Baseline, font.Height))
	}
	return nil
}

// parseOptionalFields parses the optional header fields if present
func parseOptionalFields(fields []string, font *Font) error {
	const (
		printDirectionField = 5
		fullLayoutField     = 6
		codetagCountField   = 7
	)

	if len(fields) > printDirectionField {
		val, err := strconv.Atoi(fields[printDirectionField])
		if err != nil {
			return fmt.Errorf("%w: invalid print direction %q", common.ErrMalformedHeader, fields[printDirectionField])
		}
		if val != 0 && val != 1 {
			return fmt.Errorf("%w: invalid print direction: %d (must be 0 or 1)", common.ErrMalformedHeader, val)
		}
		font.PrintDirection = val
	}

	if len(fields) > fullLayoutField {
		val, err := strconv.Atoi(fields[fullLayoutField])
		if err != nil {
			return fmt.Errorf("%w: invalid full layout %q", common.ErrMalformedHeader, fields[fullLayoutField])
		}
		font.FullLayout = val
		font.FullLayoutSet = true
	}

	if len(fields) > codetagCountField {
		val, err := strconv.Atoi(fields[codetagCountField])
		if err != nil {
			return fmt.Errorf("%w: invalid codetag count %q", common.ErrMalformedHeader, fields[codetagCountField])
		}
		font.CodetagCount = val
		font.CodetagCountSet = true
	}

	return nil
}

// parseExtensionGlyphs reads code-tagged glyphs until the lines run out or a
// blank line is reached. It returns the number of glyphs read.
func parseExtensionGlyphs(lines []string, font *Font) (int, error) {
	count := 0
	pos := 0
	for pos < len(lines) {
		line := lines[pos]
		pos++
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			break
		}

		code, err := ParseCharCode(tokens[0])
		if err != nil {
			return count, err
		}

		var glyph []string
		glyph, pos = readGlyph(lines, pos, font.Height)
		font.Characters[code] = glyph
		font.checkWidth(code, glyph)
		count++
	}
	return count, nil
}

// ParseCharCode parses a code tag: signed decimal, 0x-prefixed hex or
// 0-prefixed octal. The result must fit in 32 bits and must not be -1.
func ParseCharCode(token string) (rune, error) {
	digits := token
	negative := false
	if digits != "" && (digits[0] == '-' || digits[0] == '+') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	var base int
	switch {
	case len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") && onlyDigits(digits[2:], "0123456789abcdefABCDEF"):
		base = 16
		digits = digits[2:]
	case len(digits) > 1 && digits[0] == '0' && onlyDigits(digits[1:], "01234567"):
		base = 8
		digits = digits[1:]
	case digits != "" && onlyDigits(digits, "0123456789"):
		base = 10
	default:
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidExtensionCode, token)
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", common.ErrInvalidExtensionCode, token)
	}
	if negative {
		v = -v
	}
	if v == -1 {
		return 0, fmt.Errorf("%w: the code -1 is not permitted", common.ErrInvalidExtensionCode)
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q is outside the 32-bit range", common.ErrInvalidExtensionCode, token)
	}
	return rune(v), nil
}

func onlyDigits(s, set string) bool {
	return s != "" && strings.Trim(s, set) == ""
}

// readGlyph reads height rows starting at pos and strips their end marks.
// Rows past the end of input are empty. It returns the glyph and the next position.
func readGlyph(lines []string, pos, height int) ([]string, int) {
	glyph := make([]string, height)
	for row := 0; row < height; row++ {
		if pos >= len(lines) {
			continue
		}
		glyph[row] = stripEndMark(lines[pos], row == height-1)
		pos++
	}
	return glyph, pos
}

// stripEndMark removes a row's end mark: the last non-whitespace character,
// plus trailing whitespace after it. On a glyph's final row a doubled mark is
// removed completely. Whitespace-only rows are returned unchanged.
func stripEndMark(line string, lastRow bool) string {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return line
	}

	mark, size := utf8.DecodeLastRuneInString(trimmed)
	body := trimmed[:len(trimmed)-size]
	if lastRow {
		body = strings.TrimSuffix(body, string(mark))
	}
	return body
}

// checkWidth records an advisory warning for rows wider than MaxLength
func (f *Font) checkWidth(code rune, glyph []string) {
	if f.MaxLength <= 0 {
		return
	}
	for row, line := range glyph {
		if w := utf8.RuneCountInString(line); w > f.MaxLength {
			f.Warnings = append(f.Warnings,
				fmt.Sprintf("character %d row %d width (%d) exceeds MaxLength (%d)", code, row+1, w, f.MaxLength))
			return
		}
	}
}
