package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case FontHeaderData:
		s.writeFontHeader(d)
	case RenderStartData:
		s.writeRenderStart(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case GlyphData:
		s.writeGlyph(d)
	case OverlapData:
		fmt.Fprintf(s.w, "  line: %d, index: %d, rune: %s\n", d.Line, d.Index, runeStr(d.Rune))
		fmt.Fprintf(s.w, "  overlap: %d, width_after: %d\n", d.Overlap, d.WidthAfter)
	case SmushDecisionData:
		s.writeSmushDecision(d)
	case WrapData:
		fmt.Fprintf(s.w, "  reason: %s, line: %d, position: %d, width: %d\n", d.Reason, d.Line, d.Position, d.Width)
	case VerticalMergeData:
		fmt.Fprintf(s.w, "  block: %d, overlap: %d, rows: %d → %d\n", d.Block, d.Overlap, d.RowsBefore, d.RowsAfter)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		for k, v := range d {
			fmt.Fprintf(s.w, "  %s: %d\n", k, v)
		}
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeFontHeader(d FontHeaderData) {
	fmt.Fprintf(s.w, "  hardblank: %s, height: %d, baseline: %d, max_length: %d\n",
		runeStr(d.Hardblank), d.Height, d.Baseline, d.MaxLength)
	fmt.Fprintf(s.w, "  old_layout: %d, full_layout: %d (set=%t), print_dir: %s\n",
		d.OldLayout, d.FullLayout, d.FullLayoutSet, dirStr(d.PrintDir))
	fmt.Fprintf(s.w, "  horizontal: %s [%s]\n", d.HLayout, d.HRules)
	fmt.Fprintf(s.w, "  vertical: %s [%s]\n", d.VLayout, d.VRules)
}

func (s *PrettySink) writeSmushDecision(d SmushDecisionData) {
	fmt.Fprintf(s.w, "  %s at row=%d, col=%d\n", d.Axis, d.Row, d.Col)
	fmt.Fprintf(s.w, "  characters: %s + %s → %s\n",
		runeStr(d.Lch), runeStr(d.Rch), runeStr(d.Result))
	fmt.Fprintf(s.w, "  rule: %s\n", d.Rule)
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  text: %q (length: %d)\n", d.Text, d.TextLength)
	fmt.Fprintf(s.w, "  char_height: %d, hardblank: %s\n", d.CharHeight, runeStr(d.Hardblank))
	fmt.Fprintf(s.w, "  width_limit: %d, print_dir: %s, whitespace_break: %t\n",
		d.WidthLimit, dirStr(d.PrintDir), d.WhitespaceBreak)
	fmt.Fprintf(s.w, "  horizontal: %s [%s]\n", d.HLayout, d.HRules)
	fmt.Fprintf(s.w, "  vertical: %s [%s]\n", d.VLayout, d.VRules)
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  input_lines: %d, output_rows: %d, total_glyphs: %d\n",
		d.InputLines, d.OutputRows, d.TotalGlyphs)
	fmt.Fprintf(s.w, "  elapsed_ms: %d, bytes: %d\n", d.ElapsedMs, d.Bytes)
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  line: %d, index: %d, rune: %s, width: %d\n", d.Line, d.Index, runeStr(d.Rune), d.Width)
	if d.Unknown {
		fmt.Fprintf(s.w, "  unknown: skipped\n")
	}
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// runeStr formats a rune for display: 'X' (0x58) or NUL for 0.
func runeStr(r rune) string {
	if r == 0 {
		return "NUL"
	}
	if r >= 32 && r < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("0x%02X", r)
}

// dirStr converts print direction to a string.
func dirStr(dir int) string {
	if dir == 0 {
		return "LTR"
	}
	return "RTL"
}
