package parser

import (
	"fmt"
	"strings"
	"testing"
)

// Test helpers for FIGfont parser testing.
//
// Usage example:
//
//	data := buildFont("flf2a$ 2 2 10 0 0", nil, nil, "")
//	font := parseTestFont(t, data)
//	ValidateCharCount(t, font, 102)

// germanChars are the 7 required Latin-1 characters: Ä Ö Ü ä ö ü ß
var germanChars = []rune{196, 214, 220, 228, 246, 252, 223}

// glyphFunc returns the rows (end marks included) for a required character
type glyphFunc func(code rune, height int) []string

// defaultGlyph draws every character as its own code point, one per row
func defaultGlyph(code rune, height int) []string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = string(code) + "@"
	}
	rows[height-1] += "@"
	return rows
}

// buildFont assembles a complete font from a header line, comment lines, a
// glyph generator for the required characters and a raw trailer appended
// after them (extension glyphs).
func buildFont(header string, comments []string, glyph glyphFunc, trailer string) string {
	var height int
	fields := strings.Fields(header)
	if len(fields) > 1 {
		_, _ = fmt.Sscanf(fields[1], "%d", &height)
	}
	if glyph == nil {
		glyph = defaultGlyph
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, c := range comments {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
	for _, code := range RequiredCodes() {
		for _, row := range glyph(code, height) {
			sb.WriteString(row)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(trailer)
	return sb.String()
}

// parseTestFont parses data and fails the test on error
func parseTestFont(t *testing.T, data string) *Font {
	t.Helper()
	font, err := ParseString(data)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return font
}

// ValidateChar validates that a character exists in the font and matches expected glyph lines.
func ValidateChar(t *testing.T, f *Font, char rune, expected []string, charName string) {
	t.Helper()
	glyph, exists := f.Characters[char]
	if !exists {
		t.Fatalf("%s character (%d) not found", charName, char)
	}
	if len(glyph) != len(expected) {
		t.Errorf("%s should have %d lines, got %d", charName, len(expected), len(glyph))
		return
	}
	for i, expectedLine := range expected {
		if glyph[i] != expectedLine {
			t.Errorf("%s line %d = %q, want %q", charName, i, glyph[i], expectedLine)
		}
	}
}

// ValidateCharCount validates that the font contains exactly the expected number of characters.
func ValidateCharCount(t *testing.T, f *Font, expected int) {
	t.Helper()
	if actual := len(f.Characters); actual != expected {
		t.Errorf("Font has %d characters, want %d", actual, expected)
	}
}

// ValidateRequiredChars validates that every required character exists with Height rows.
func ValidateRequiredChars(t *testing.T, f *Font) {
	t.Helper()
	for _, code := range RequiredCodes() {
		glyph, exists := f.Characters[code]
		if !exists {
			t.Errorf("Required character %d not found", code)
			continue
		}
		if len(glyph) != f.Height {
			t.Errorf("Character %d has %d rows, want %d", code, len(glyph), f.Height)
		}
	}
}
