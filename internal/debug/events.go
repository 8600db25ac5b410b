package debug

// FontHeaderData contains parsed font header information.
type FontHeaderData struct {
	Hardblank     rune   `json:"hardblank"`
	Height        int    `json:"height"`
	Baseline      int    `json:"baseline"`
	MaxLength     int    `json:"max_length"`
	OldLayout     int    `json:"old_layout"`
	FullLayout    int    `json:"full_layout"`
	FullLayoutSet bool   `json:"full_layout_set"`
	PrintDir      int    `json:"print_dir"`
	CommentLines  int    `json:"comment_lines"`
	HLayout       string `json:"h_layout"`
	HRules        string `json:"h_rules"`
	VLayout       string `json:"v_layout"`
	VRules        string `json:"v_rules"`
}

// GlyphStatsData contains glyph parsing statistics.
type GlyphStatsData struct {
	RequiredCount int `json:"required_count"`
	OptionalCount int `json:"optional_count"`
	Warnings      int `json:"warnings"`
}

// RenderStartData describes a render before any glyph is placed.
type RenderStartData struct {
	Text            string `json:"text"`
	TextLength      int    `json:"text_length"`
	CharHeight      int    `json:"char_height"`
	Hardblank       rune   `json:"hardblank"`
	WidthLimit      int    `json:"width_limit"`
	PrintDir        int    `json:"print_dir"`
	WhitespaceBreak bool   `json:"whitespace_break"`
	HLayout         string `json:"h_layout"`
	HRules          string `json:"h_rules"`
	VLayout         string `json:"v_layout"`
	VRules          string `json:"v_rules"`
}

// RenderEndData summarises a finished render.
type RenderEndData struct {
	InputLines  int   `json:"input_lines"`
	OutputRows  int   `json:"output_rows"`
	TotalGlyphs int   `json:"total_glyphs"`
	ElapsedMs   int64 `json:"elapsed_ms"`
	Bytes       int   `json:"bytes"`
}

// GlyphData describes one input character.
type GlyphData struct {
	Line    int  `json:"line"`
	Index   int  `json:"index"`
	Rune    rune `json:"rune"`
	Width   int  `json:"width"`
	Unknown bool `json:"unknown,omitempty"`
}

// OverlapData records the overlap chosen between the accumulated block and a glyph.
type OverlapData struct {
	Line       int  `json:"line"`
	Index      int  `json:"index"`
	Rune       rune `json:"rune"`
	Overlap    int  `json:"overlap"`
	WidthAfter int  `json:"width_after"`
}

// SmushDecisionData records how one colliding column was merged.
type SmushDecisionData struct {
	Axis   string `json:"axis"` // "horizontal" or "vertical"
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Lch    rune   `json:"lch"`
	Rch    rune   `json:"rch"`
	Result rune   `json:"result"`
	Rule   string `json:"rule"`
}

// WrapData records a line break inserted by word wrapping.
type WrapData struct {
	Reason   string `json:"reason"` // "width", "word", "break_word"
	Line     int    `json:"line"`
	Position int    `json:"position"`
	Width    int    `json:"width"`
}

// VerticalMergeData records how two consecutive blocks were stacked.
type VerticalMergeData struct {
	Block      int `json:"block"`
	Overlap    int `json:"overlap"`
	RowsBefore int `json:"rows_before"`
	RowsAfter  int `json:"rows_after"`
}

// ErrorData contains error information.
type ErrorData struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
