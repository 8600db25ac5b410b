package common

// layoutSlot identifies which field of FittingRules a header bit feeds.
type layoutSlot int

const (
	slotVLayout layoutSlot = iota
	slotHLayout
	slotVRule
	slotHRule
)

// layoutCode is one row of the header bit table.
type layoutCode struct {
	code   int
	slot   layoutSlot
	layout Layout
	hRule  HRules
	vRule  VRules
}

// layoutCodes is evaluated from the highest bit down; the first bit that
// claims a layout slot wins.
var layoutCodes = []layoutCode{
	{code: 16384, slot: slotVLayout, layout: Smushing},
	{code: 8192, slot: slotVLayout, layout: Fitting},
	{code: 4096, slot: slotVRule, vRule: VRuleVerticalLine},
	{code: 2048, slot: slotVRule, vRule: VRuleHorizontalLine},
	{code: 1024, slot: slotVRule, vRule: VRuleHierarchy},
	{code: 512, slot: slotVRule, vRule: VRuleUnderscore},
	{code: 256, slot: slotVRule, vRule: VRuleEqualChar},
	{code: 128, slot: slotHLayout, layout: Smushing},
	{code: 64, slot: slotHLayout, layout: Fitting},
	{code: 32, slot: slotHRule, hRule: RuleHardblank},
	{code: 16, slot: slotHRule, hRule: RuleBigX},
	{code: 8, slot: slotHRule, hRule: RuleOppositePair},
	{code: 4, slot: slotHRule, hRule: RuleHierarchy},
	{code: 2, slot: slotHRule, hRule: RuleUnderscore},
	{code: 1, slot: slotHRule, hRule: RuleEqualChar},
}

// DecodeLayout derives the fitting rules from the header's OldLayout and
// optional FullLayout fields. FullLayout takes precedence when present.
func DecodeLayout(oldLayout int, fullLayout *int) FittingRules {
	val := oldLayout
	if fullLayout != nil {
		val = *fullLayout
	}

	var rules FittingRules
	hSet, vSet := false, false
	for _, c := range layoutCodes {
		if val < c.code {
			continue
		}
		val -= c.code
		switch c.slot {
		case slotVLayout:
			if !vSet {
				rules.VLayout = c.layout
				vSet = true
			}
		case slotHLayout:
			if !hSet {
				rules.HLayout = c.layout
				hSet = true
			}
		case slotVRule:
			rules.VRules |= c.vRule
		case slotHRule:
			rules.HRules |= c.hRule
		}
	}

	switch {
	case !hSet:
		switch {
		case oldLayout == 0:
			rules.HLayout = Fitting
		case oldLayout == -1:
			rules.HLayout = FullWidth
		case rules.HRules != 0:
			rules.HLayout = ControlledSmushing
		default:
			rules.HLayout = Smushing
		}
	case rules.HLayout == Smushing && rules.HRules != 0:
		// rules only take effect under controlled smushing
		rules.HLayout = ControlledSmushing
	}

	switch {
	case !vSet:
		if rules.VRules != 0 {
			rules.VLayout = ControlledSmushing
		} else {
			rules.VLayout = FullWidth
		}
	case rules.VLayout == Smushing && rules.VRules != 0:
		rules.VLayout = ControlledSmushing
	}

	return rules
}

// EncodeLayout converts fitting rules back into a FullLayout header value.
func EncodeLayout(rules FittingRules) int {
	val := int(rules.HRules&AllHRules) | int(rules.VRules&AllVRules)<<8

	switch rules.HLayout {
	case Fitting:
		val |= 64
	case Smushing, ControlledSmushing:
		val |= 128
	}
	switch rules.VLayout {
	case Fitting:
		val |= 8192
	case Smushing, ControlledSmushing:
		val |= 16384
	}
	return val
}
