// Package common provides shared layout types, rule bitmasks and errors for the
// internal packages. The root figdriver package re-exports them.
package common

import (
	"errors"
	"strings"
)

// Layout is a fitting mode for one axis (horizontal or vertical).
type Layout int

// Fitting modes, in the order FIGdrivers conventionally number them.
const (
	// FullWidth places blocks side by side with no overlap
	FullWidth Layout = iota
	// Fitting moves blocks together until they touch
	Fitting
	// Smushing (universal) overlaps one extra column, later ink wins
	Smushing
	// ControlledSmushing overlaps only where an enabled rule resolves the collision
	ControlledSmushing
)

// String returns the layout keyword for l.
func (l Layout) String() string {
	switch l {
	case FullWidth:
		return "full"
	case Fitting:
		return "fitted"
	case Smushing:
		return "universal smushing"
	case ControlledSmushing:
		return "controlled smushing"
	}
	return "unknown"
}

// HRules is a bitmask of the six horizontal smushing rules.
type HRules uint8

// Horizontal smushing rules (hRule1..hRule6)
const (
	// RuleEqualChar merges equal characters into one
	RuleEqualChar HRules = 1 << iota
	// RuleUnderscore lets underscores be replaced by border characters
	RuleUnderscore
	// RuleHierarchy uses character classes to decide which survives
	RuleHierarchy
	// RuleOppositePair merges opposite bracket pairs into |
	RuleOppositePair
	// RuleBigX merges /\ \/ >< into | Y X
	RuleBigX
	// RuleHardblank merges two hardblanks into one
	RuleHardblank

	// AllHRules enables every horizontal rule
	AllHRules = RuleEqualChar | RuleUnderscore | RuleHierarchy | RuleOppositePair | RuleBigX | RuleHardblank
)

var hRuleNames = []string{"EqualChar", "Underscore", "Hierarchy", "OppositePair", "BigX", "Hardblank"}

// Has reports whether rule is enabled.
func (r HRules) Has(rule HRules) bool { return r&rule != 0 }

// String returns the active rule names joined with "|".
func (r HRules) String() string {
	return maskString(uint8(r), hRuleNames)
}

// VRules is a bitmask of the five vertical smushing rules.
type VRules uint8

// Vertical smushing rules (vRule1..vRule5)
const (
	// VRuleEqualChar merges equal characters into one
	VRuleEqualChar VRules = 1 << iota
	// VRuleUnderscore lets underscores be replaced by border characters
	VRuleUnderscore
	// VRuleHierarchy uses character classes to decide which survives
	VRuleHierarchy
	// VRuleHorizontalLine merges stacked - and _ into =
	VRuleHorizontalLine
	// VRuleVerticalLine supersmushes stacked | characters
	VRuleVerticalLine

	// AllVRules enables every vertical rule
	AllVRules = VRuleEqualChar | VRuleUnderscore | VRuleHierarchy | VRuleHorizontalLine | VRuleVerticalLine
)

var vRuleNames = []string{"EqualChar", "Underscore", "Hierarchy", "HorizontalLine", "VerticalLine"}

// Has reports whether rule is enabled.
func (r VRules) Has(rule VRules) bool { return r&rule != 0 }

// String returns the active rule names joined with "|".
func (r VRules) String() string {
	return maskString(uint8(r), vRuleNames)
}

func maskString(mask uint8, names []string) string {
	var parts []string
	for i, name := range names {
		if mask&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// FittingRules holds the decoded layout and rules for both axes.
type FittingRules struct {
	HLayout Layout
	HRules  HRules
	VLayout Layout
	VRules  VRules
}

// Common errors (re-exported by the figdriver package)
var (
	// ErrMalformedHeader is returned when a header field is missing or invalid
	ErrMalformedHeader = errors.New("malformed font header")
	// ErrTruncatedFont is returned when the font has fewer lines than it declares
	ErrTruncatedFont = errors.New("truncated font")
	// ErrInvalidExtensionCode is returned when an extension glyph code cannot be used
	ErrInvalidExtensionCode = errors.New("invalid extension character code")
	// ErrFontNotFound is returned when a font is neither loaded nor obtainable
	ErrFontNotFound = errors.New("font not found")
	// ErrUnknownLayout is returned for an unrecognised layout keyword
	ErrUnknownLayout = errors.New("unknown layout")
)
