// Package renderer lays out text with a parsed FIGfont: horizontal fitting and
// smushing, word wrapping and vertical merging of multi-line output.
package renderer

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/ryanlewis/figdriver/internal/common"
	"github.com/ryanlewis/figdriver/internal/debug"
	"github.com/ryanlewis/figdriver/internal/parser"
)

// Render converts text to ASCII art using the font and options. A nil opts
// renders with the font's own rules and print direction. The font is never modified.
func Render(text string, font *parser.Font, opts *Options) (string, error) {
	if font == nil {
		return "", ErrNilFont
	}
	if opts == nil {
		opts = &Options{Rules: font.Rules, PrintDirection: font.PrintDirection}
	}

	state := &renderState{
		glyphs:          font.Characters,
		cache:           make(map[rune]block),
		rules:           opts.Rules,
		hardblank:       font.Hardblank,
		height:          font.Height,
		width:           opts.Width,
		whitespaceBreak: opts.WhitespaceBreak,
		printDirection:  opts.PrintDirection,
		showHardblanks:  opts.ShowHardblanks,
		debug:           opts.Debug,
	}

	var startTime time.Time
	if state.debug != nil {
		startTime = time.Now()
		state.debug.Emit("render", "Start", debug.RenderStartData{
			Text:            text,
			TextLength:      len(text),
			CharHeight:      state.height,
			Hardblank:       state.hardblank,
			WidthLimit:      state.width,
			PrintDir:        state.printDirection,
			WhitespaceBreak: state.whitespaceBreak,
			HLayout:         state.rules.HLayout.String(),
			HRules:          state.rules.HRules.String(),
			VLayout:         state.rules.VLayout.String(),
			VRules:          state.rules.VRules.String(),
		})
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	var blocks []block
	for i, line := range lines {
		state.line = i
		blocks = append(blocks, state.generateLines(line)...)
	}

	var output block
	if len(blocks) > 0 {
		output = blocks[0]
		for i := 1; i < len(blocks); i++ {
			output = state.smushVerticalBlocks(output, blocks[i], i)
		}
	}

	result := strings.Join(output.strings(), "\n")

	if state.debug != nil {
		state.debug.Emit("render", "End", debug.RenderEndData{
			InputLines:  len(lines),
			OutputRows:  len(output),
			TotalGlyphs: state.glyphCount,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
			Bytes:       len(result),
		})
	}
	return result, nil
}

// knownChar is an input character that the font has a glyph for
type knownChar struct {
	r   rune
	fig block
}

// generateLines lays out one input line, returning one block per output line.
func (s *renderState) generateLines(text string) []block {
	runes := []rune(text)
	if s.printDirection == 1 {
		slices.Reverse(runes)
	}

	// characters without a glyph are skipped
	chars := make([]knownChar, 0, len(runes))
	for i, r := range runes {
		fig, ok := s.glyph(r)
		if s.debug != nil {
			s.debug.Emit("render", "Glyph", debug.GlyphData{
				Line:    s.line,
				Index:   i,
				Rune:    r,
				Width:   fig.width(),
				Unknown: !ok,
			})
		}
		if ok {
			chars = append(chars, knownChar{r: r, fig: fig})
		}
	}
	s.glyphCount += len(chars)

	var (
		lines   []block
		words   []figChar
		word    []figChar // glyphs of the word being built
		wordOvl int       // overlap of that word with what precedes it
		overlap int
	)
	out := newBlock(s.height)
	wrapping := s.width > 0

	for i, c := range chars {
		isSpace := unicode.IsSpace(c.r)
		last := i == len(chars)-1

		if s.rules.HLayout != common.FullWidth {
			overlap = s.blockOverlap(out, c.fig)
		}

		if wrapping {
			var lineWidth int
			if s.whitespaceBreak {
				wordBlock := s.joinBlocks(word, figChar{c.fig, overlap})
				lineWidth = s.joinBlocks(words, figChar{wordBlock, wordOvl}).width()
			} else {
				lineWidth = s.horizontalSmush(out, c.fig, overlap, false).width()
			}

			if lineWidth >= s.width && i > 0 {
				if s.whitespaceBreak {
					out = s.joinBlocks(words[:max(0, len(words)-1)])
					if len(words) > 1 {
						lines = append(lines, out)
						out = newBlock(s.height)
					}
					words = nil
				} else {
					lines = append(lines, out)
					out = newBlock(s.height)
				}
				s.emitWrap("width", i, lineWidth)
			}
		}

		if wrapping && s.whitespaceBreak {
			if !isSpace || last {
				word = append(word, figChar{c.fig, overlap})
			}
			if isSpace || last {
				var (
					wordBlock block
					w         int
					broke     bool
				)
				for {
					wordBlock = s.joinBlocks(word)
					w = wordBlock.width()
					if w < s.width {
						break
					}
					var line block
					line, word = s.breakWord(word)
					lines = append(lines, line)
					broke = true
					s.emitWrap("break_word", i, line.width())
				}

				if w > 0 {
					ovl := wordOvl
					if broke {
						ovl = 1
					}
					words = append(words, figChar{wordBlock, ovl})
				}
				if isSpace {
					words = append(words, figChar{c.fig, overlap})
					out = newBlock(s.height)
				}
				if last {
					out = s.joinBlocks(words)
				}
				word, wordOvl = nil, overlap
				continue
			}
		}

		out = s.horizontalSmush(out, c.fig, overlap, true)
		if s.debug != nil {
			s.debug.Emit("render", "Overlap", debug.OverlapData{
				Line:       s.line,
				Index:      i,
				Rune:       c.r,
				Overlap:    overlap,
				WidthAfter: out.width(),
			})
		}
	}

	// the last line may be empty when the text filled the width exactly
	if out.width() > 0 {
		lines = append(lines, out)
	}

	if !s.showHardblanks {
		for _, b := range lines {
			s.replaceHardblanks(b)
		}
	}

	if text == "" && len(lines) == 0 {
		lines = append(lines, newBlock(s.height))
	}
	return lines
}

// replaceHardblanks turns hardblanks into spaces.
func (s *renderState) replaceHardblanks(b block) {
	for i, row := range b {
		if !slices.Contains(row, s.hardblank) {
			continue
		}
		replaced := make([]rune, len(row))
		for j, r := range row {
			if r == s.hardblank {
				r = ' '
			}
			replaced[j] = r
		}
		b[i] = replaced
	}
}

func (s *renderState) emitWrap(reason string, position, width int) {
	if s.debug == nil {
		return
	}
	s.debug.Emit("render", "Wrap", debug.WrapData{
		Reason:   reason,
		Line:     s.line,
		Position: position,
		Width:    width,
	})
}
