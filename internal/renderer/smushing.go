package renderer

import (
	"strings"

	"github.com/ryanlewis/figdriver/internal/common"
)

// noHardblank is passed to uniSmush where hardblanks play no part (vertical merging)
const noHardblank rune = -1

const (
	// underscoreBorders are the characters that replace an underscore under rule 2
	underscoreBorders = "|/\\[]{}()<>"
	// hierarchyClasses orders the rule 3 classes; distance is measured by index
	hierarchyClasses = "| /\\ [] {} () <>"
	// oppositePairs are the bracket families collapsed by rule 4
	oppositePairs = "[] {} ()"
)

// hRule is one horizontal smushing rule. Rules are tried in table order.
type hRule struct {
	bit   common.HRules
	name  string
	smush func(a, b, hardblank rune) (rune, bool)
}

// hRules lists the controlled horizontal rules in precedence order.
//
// Rule Precedence:
// controlledSmush walks this table top to bottom and stops at the first
// enabled rule that resolves the pair, so when several rules match the
// earliest one decides the result:
//  1. EqualChar (rule 1): identical characters, never two hardblanks
//  2. Underscore (rule 2): an underscore gives way to a border character
//  3. Hierarchy (rule 3): the later class of | /\ [] {} () <> wins
//  4. OppositePair (rule 4): opposing brackets of one family become |
//  5. BigX (rule 5): /\ becomes |, \/ becomes Y and >< becomes X
//  6. Hardblank (rule 6): two hardblanks become one
//
// Only rules 1 and 6 look at the hardblank. A pair no enabled rule resolves
// stops the overlap search in horizontalSmushLength.
var hRules = []hRule{
	{common.RuleEqualChar, "EqualChar", smushEqualChar},
	{common.RuleUnderscore, "Underscore", ignoreHardblank(smushUnderscore)},
	{common.RuleHierarchy, "Hierarchy", ignoreHardblank(smushHierarchy)},
	{common.RuleOppositePair, "OppositePair", ignoreHardblank(smushOppositePair)},
	{common.RuleBigX, "BigX", ignoreHardblank(smushBigX)},
	{common.RuleHardblank, "Hardblank", smushHardblank},
}

// vRule is one vertical smushing rule. Rules are tried in table order.
type vRule struct {
	bit   common.VRules
	name  string
	smush func(a, b rune) (rune, bool)
}

// vRules lists the controlled vertical rules in precedence order, walked the
// same first-match way. canVerticalSmush tests VerticalLine on its own ahead
// of the table: stacked bars are the only pair that lets the overlap grow
// past the first colliding row.
var vRules = []vRule{
	{common.VRuleEqualChar, "EqualChar", smushSame},
	{common.VRuleUnderscore, "Underscore", smushUnderscore},
	{common.VRuleHierarchy, "Hierarchy", smushHierarchy},
	{common.VRuleHorizontalLine, "HorizontalLine", smushHorizontalLine},
	{common.VRuleVerticalLine, "VerticalLine", smushVerticalLine},
}

// ignoreHardblank adapts a rule that does not care about the hardblank.
func ignoreHardblank(f func(a, b rune) (rune, bool)) func(a, b, hardblank rune) (rune, bool) {
	return func(a, b, _ rune) (rune, bool) {
		return f(a, b)
	}
}

// smushEqualChar merges identical characters other than the hardblank (rule 1)
func smushEqualChar(a, b, hardblank rune) (rune, bool) {
	if a == b && a != hardblank {
		return a, true
	}
	return 0, false
}

// smushSame merges identical characters (vertical rule 1)
func smushSame(a, b rune) (rune, bool) {
	if a == b {
		return a, true
	}
	return 0, false
}

// smushUnderscore replaces an underscore with a border character (rule 2)
func smushUnderscore(a, b rune) (rune, bool) {
	if a == '_' && strings.ContainsRune(underscoreBorders, b) {
		return b, true
	}
	if b == '_' && strings.ContainsRune(underscoreBorders, a) {
		return a, true
	}
	return 0, false
}

// smushHierarchy keeps the character from the later class when the classes
// differ and are not neighbours in the hierarchy (rule 3)
func smushHierarchy(a, b rune) (rune, bool) {
	posA := strings.IndexRune(hierarchyClasses, a)
	posB := strings.IndexRune(hierarchyClasses, b)
	if posA == -1 || posB == -1 || a == ' ' || b == ' ' {
		return 0, false
	}
	if posA == posB || abs(posA-posB) == 1 {
		return 0, false
	}
	if posA > posB {
		return a, true
	}
	return b, true
}

// smushOppositePair collapses brackets of one family into | (rule 4)
func smushOppositePair(a, b rune) (rune, bool) {
	posA := strings.IndexRune(oppositePairs, a)
	posB := strings.IndexRune(oppositePairs, b)
	if posA == -1 || posB == -1 || a == ' ' || b == ' ' {
		return 0, false
	}
	if abs(posA-posB) <= 1 {
		return '|', true
	}
	return 0, false
}

// smushBigX merges /\ into |, \/ into Y and >< into X (rule 5)
func smushBigX(a, b rune) (rune, bool) {
	switch {
	case a == '/' && b == '\\':
		return '|', true
	case a == '\\' && b == '/':
		return 'Y', true
	case a == '>' && b == '<':
		return 'X', true
	}
	return 0, false
}

// smushHardblank merges two hardblanks into one (rule 6)
func smushHardblank(a, b, hardblank rune) (rune, bool) {
	if a == hardblank && b == hardblank {
		return hardblank, true
	}
	return 0, false
}

// smushHorizontalLine merges stacked - and _ into = (vertical rule 4)
func smushHorizontalLine(a, b rune) (rune, bool) {
	if (a == '-' && b == '_') || (a == '_' && b == '-') {
		return '=', true
	}
	return 0, false
}

// smushVerticalLine supersmushes stacked vertical bars (vertical rule 5)
func smushVerticalLine(a, b rune) (rune, bool) {
	if a == '|' && b == '|' {
		return '|', true
	}
	return 0, false
}

// uniSmush is the universal fallback: the later character wins unless it is
// blank, or it is the hardblank covering earlier ink.
//
// A zero rune stands for a column past the end of a shorter row and is
// treated like a space. Vertical merging passes noHardblank, so there the
// lower character always wins over visible ink.
func uniSmush(a, b, hardblank rune) rune {
	if b == ' ' || b == 0 {
		return a
	}
	if b == hardblank && a != ' ' {
		return a
	}
	return b
}

// controlledSmush applies the first enabled horizontal rule that resolves a and b.
func controlledSmush(a, b, hardblank rune, enabled common.HRules) (rune, string, bool) {
	for _, rule := range hRules {
		if !enabled.Has(rule.bit) {
			continue
		}
		if r, ok := rule.smush(a, b, hardblank); ok {
			return r, rule.name, true
		}
	}
	return 0, "", false
}

// controlledVSmush applies the first enabled vertical rule that resolves a and b.
func controlledVSmush(a, b rune, enabled common.VRules) (rune, string, bool) {
	for _, rule := range vRules {
		if !enabled.Has(rule.bit) {
			continue
		}
		if r, ok := rule.smush(a, b); ok {
			return r, rule.name, true
		}
	}
	return 0, "", false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
