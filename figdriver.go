// Package figdriver renders text as FIGlet ASCII-art banners.
//
// Fonts are FIGfont (FLF 2.0) files. The package-level functions parse a font
// and render with it directly; a Renderer adds a font registry, defaults and
// on-demand loading of fonts from a directory or a URL.
//
// Example:
//
//	font, err := figdriver.LoadFontFS(os.DirFS("fonts"), "Standard.flf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	art, err := figdriver.Render("Hello", font, figdriver.WithWidth(80))
package figdriver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/ryanlewis/figdriver/internal/debug"
	"github.com/ryanlewis/figdriver/internal/fontsrc"
	"github.com/ryanlewis/figdriver/internal/parser"
	"github.com/ryanlewis/figdriver/internal/renderer"
)

// ParseFont reads a FIGfont from the provided reader and returns a Font instance.
// The returned Font is immutable and safe for concurrent use across goroutines.
//
// Font files that are not valid UTF-8 are read as ISO-8859-1. ZIP-compressed
// fonts are accepted; the first file in the archive is parsed.
func ParseFont(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading font data: %w", err)
	}
	return ParseFontBytes(data)
}

// ParseFontBytes parses a FIGfont held in memory.
func ParseFontBytes(data []byte) (*Font, error) {
	return parseFont(data, nil)
}

func parseFont(data []byte, session *debug.Session) (*Font, error) {
	data, err := fontsrc.Unzip(data)
	if err != nil {
		return nil, err
	}
	text, err := fontsrc.DecodeText(data)
	if err != nil {
		return nil, err
	}
	pf, err := parser.ParseString(text, parser.WithDebug(session))
	if err != nil {
		return nil, err
	}
	return convertParserFont(pf), nil
}

// LoadFontFS loads a FIGfont from a filesystem at the specified path.
// The returned Font is named after the file without its extension.
//
// Path traversal (e.g., "../") is not allowed.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.flf
//	var fonts embed.FS
//
//	font, err := figdriver.LoadFontFS(fonts, "fonts/Standard.flf")
func LoadFontFS(fsys fs.FS, fontPath string) (*Font, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}

	clean, err := fontsrc.CleanPath(fontPath)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}

	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}

	// Use path package for fs.FS paths (not filepath)
	font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	return font, nil
}

// convertParserFont converts internal parser.Font to public Font type.
// The glyph map is shared; neither side mutates it after parsing.
func convertParserFont(pf *parser.Font) *Font {
	rules := FontRules{
		Hardblank:      pf.Hardblank,
		Height:         pf.Height,
		Baseline:       pf.Baseline,
		MaxLength:      pf.MaxLength,
		OldLayout:      pf.OldLayout,
		CommentLines:   pf.CommentLines,
		PrintDirection: pf.PrintDirection,
		Fitting:        pf.Rules,
	}
	if pf.FullLayoutSet {
		v := pf.FullLayout
		rules.FullLayout = &v
	}
	if pf.CodetagCountSet {
		v := pf.CodetagCount
		rules.CodeTagCount = &v
	}

	return &Font{
		glyphs:   pf.Characters,
		Rules:    rules,
		Comment:  pf.Comment,
		Warnings: pf.Warnings,
	}
}

// Render converts text to ASCII art using the specified font and options.
// Characters the font has no glyph for are skipped.
func Render(text string, f *Font, opts ...Option) (string, error) {
	if f == nil {
		return "", fmt.Errorf("%w: nil font", ErrFontNotFound)
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return render(text, f, options)
}

func render(text string, f *Font, options *options) (string, error) {
	internal, err := options.toInternal(f.Rules)
	if err != nil {
		return "", err
	}
	return renderer.Render(text, convertToParserFont(f), internal)
}

// convertToParserFont converts public Font to internal parser.Font
func convertToParserFont(f *Font) *parser.Font {
	return &parser.Font{
		Characters:     f.glyphs,
		Hardblank:      f.Rules.Hardblank,
		Height:         f.Rules.Height,
		Baseline:       f.Rules.Baseline,
		MaxLength:      f.Rules.MaxLength,
		OldLayout:      f.Rules.OldLayout,
		CommentLines:   f.Rules.CommentLines,
		PrintDirection: f.Rules.PrintDirection,
		Rules:          f.Rules.Fitting,
	}
}

// toInternal resolves the layout keywords against the font's rules.
func (o *options) toInternal(fr FontRules) (*renderer.Options, error) {
	rules, err := applyLayoutKeywords(fr.Fitting, o.hLayout, o.vLayout)
	if err != nil {
		return nil, err
	}

	direction := fr.PrintDirection
	if o.printDirection != nil {
		direction = *o.printDirection
	}

	return &renderer.Options{
		Rules:           rules,
		Width:           o.width,
		WhitespaceBreak: o.whitespaceBreak,
		PrintDirection:  direction,
		ShowHardblanks:  o.showHardblanks,
		Debug:           o.debug,
	}, nil
}
