package figdriver

import (
	"fmt"
	"strings"

	"github.com/ryanlewis/figdriver/internal/common"
)

// Layout is how glyphs are joined along one axis.
//
//   - FullWidth: every glyph keeps its full width (or height)
//   - Fitting: glyphs move together until they touch (kerning)
//   - Smushing: glyphs overlap by one more column and the later one wins
//   - ControlledSmushing: glyphs overlap where an enabled rule merges them
type Layout = common.Layout

// Layout values.
const (
	FullWidth          = common.FullWidth
	Fitting            = common.Fitting
	Smushing           = common.Smushing
	ControlledSmushing = common.ControlledSmushing
)

// HRules is the set of horizontal smushing rules.
type HRules = common.HRules

// Horizontal smushing rules, applied in ascending order.
const (
	RuleEqualChar    = common.RuleEqualChar
	RuleUnderscore   = common.RuleUnderscore
	RuleHierarchy    = common.RuleHierarchy
	RuleOppositePair = common.RuleOppositePair
	RuleBigX         = common.RuleBigX
	RuleHardblank    = common.RuleHardblank
	AllHRules        = common.AllHRules
)

// VRules is the set of vertical smushing rules.
type VRules = common.VRules

// Vertical smushing rules, applied in ascending order.
const (
	VRuleEqualChar      = common.VRuleEqualChar
	VRuleUnderscore     = common.VRuleUnderscore
	VRuleHierarchy      = common.VRuleHierarchy
	VRuleHorizontalLine = common.VRuleHorizontalLine
	VRuleVerticalLine   = common.VRuleVerticalLine
	AllVRules           = common.AllVRules
)

// FittingRules is the layout and rule set of both axes.
type FittingRules = common.FittingRules

// DecodeLayout derives fitting rules from the header's OldLayout and
// optional FullLayout fields.
func DecodeLayout(oldLayout int, fullLayout *int) FittingRules {
	return common.DecodeLayout(oldLayout, fullLayout)
}

// EncodeLayout is the FullLayout header value describing rules.
func EncodeLayout(rules FittingRules) int {
	return common.EncodeLayout(rules)
}

// LayoutKeyword overrides a font's layout for one axis.
type LayoutKeyword string

// Layout keywords accepted by WithHorizontalLayout and WithVerticalLayout.
const (
	LayoutDefault            LayoutKeyword = "default"
	LayoutFull               LayoutKeyword = "full"
	LayoutFitted             LayoutKeyword = "fitted"
	LayoutControlledSmushing LayoutKeyword = "controlled smushing"
	LayoutUniversalSmushing  LayoutKeyword = "universal smushing"
)

// ParseLayoutKeyword validates a keyword. Matching ignores case and
// surrounding whitespace; an empty string means LayoutDefault.
func ParseLayoutKeyword(s string) (LayoutKeyword, error) {
	k := LayoutKeyword(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return LayoutDefault, nil
	case LayoutDefault, LayoutFull, LayoutFitted, LayoutControlledSmushing, LayoutUniversalSmushing:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// applyLayoutKeywords overrides each axis of base with its keyword.
func applyLayoutKeywords(base FittingRules, h, v LayoutKeyword) (FittingRules, error) {
	rules := base

	switch h {
	case LayoutDefault, "":
	case LayoutFull:
		rules.HLayout, rules.HRules = FullWidth, 0
	case LayoutFitted:
		rules.HLayout, rules.HRules = Fitting, 0
	case LayoutControlledSmushing:
		rules.HLayout, rules.HRules = ControlledSmushing, AllHRules
	case LayoutUniversalSmushing:
		rules.HLayout, rules.HRules = Smushing, 0
	default:
		return FittingRules{}, fmt.Errorf("horizontal layout: %w: %q", ErrUnknownLayout, h)
	}

	switch v {
	case LayoutDefault, "":
	case LayoutFull:
		rules.VLayout, rules.VRules = FullWidth, 0
	case LayoutFitted:
		rules.VLayout, rules.VRules = Fitting, 0
	case LayoutControlledSmushing:
		rules.VLayout, rules.VRules = ControlledSmushing, AllVRules
	case LayoutUniversalSmushing:
		rules.VLayout, rules.VRules = Smushing, 0
	default:
		return FittingRules{}, fmt.Errorf("vertical layout: %w: %q", ErrUnknownLayout, v)
	}

	return rules, nil
}
