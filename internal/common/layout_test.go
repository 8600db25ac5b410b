package common

import "testing"

func intPtr(v int) *int { return &v }

func TestDecodeLayout(t *testing.T) {
	tests := []struct {
		name       string
		oldLayout  int
		fullLayout *int
		want       FittingRules
	}{
		{
			name:      "old layout -1 is full width",
			oldLayout: -1,
			want:      FittingRules{HLayout: FullWidth, VLayout: FullWidth},
		},
		{
			name:      "old layout 0 is fitting",
			oldLayout: 0,
			want:      FittingRules{HLayout: Fitting, VLayout: FullWidth},
		},
		{
			name:      "old layout with rules is controlled smushing",
			oldLayout: 15,
			want: FittingRules{
				HLayout: ControlledSmushing,
				HRules:  RuleEqualChar | RuleUnderscore | RuleHierarchy | RuleOppositePair,
				VLayout: FullWidth,
			},
		},
		{
			name:       "standard font full layout",
			oldLayout:  15,
			fullLayout: intPtr(24463),
			want: FittingRules{
				HLayout: ControlledSmushing,
				HRules:  RuleEqualChar | RuleUnderscore | RuleHierarchy | RuleOppositePair,
				VLayout: ControlledSmushing,
				VRules:  AllVRules,
			},
		},
		{
			name:       "smushing bit without rules stays universal",
			oldLayout:  0,
			fullLayout: intPtr(128),
			want:       FittingRules{HLayout: Smushing, VLayout: FullWidth},
		},
		{
			name:       "fitting bit keeps rules but stays fitting",
			oldLayout:  0,
			fullLayout: intPtr(64 | 1),
			want:       FittingRules{HLayout: Fitting, HRules: RuleEqualChar, VLayout: FullWidth},
		},
		{
			name:       "vertical fitting bit",
			oldLayout:  -1,
			fullLayout: intPtr(8192),
			want:       FittingRules{HLayout: FullWidth, VLayout: Fitting},
		},
		{
			name:       "both vertical layout bits: smushing claims the slot first",
			oldLayout:  -1,
			fullLayout: intPtr(16384 | 8192),
			want:       FittingRules{HLayout: FullWidth, VLayout: Smushing},
		},
		{
			name:       "vertical rules without layout bit imply controlled",
			oldLayout:  -1,
			fullLayout: intPtr(256),
			want:       FittingRules{HLayout: FullWidth, VLayout: ControlledSmushing, VRules: VRuleEqualChar},
		},
		{
			name:       "full layout zero falls back to old layout for horizontal",
			oldLayout:  -1,
			fullLayout: intPtr(0),
			want:       FittingRules{HLayout: FullWidth, VLayout: FullWidth},
		},
		{
			name:       "negative full layout sets nothing",
			oldLayout:  7,
			fullLayout: intPtr(-5),
			want:       FittingRules{HLayout: Smushing, VLayout: FullWidth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeLayout(tt.oldLayout, tt.fullLayout)
			if got != tt.want {
				t.Errorf("DecodeLayout(%d, %v) = %+v, want %+v", tt.oldLayout, tt.fullLayout, got, tt.want)
			}
		})
	}
}

func TestEncodeLayoutRoundTrip(t *testing.T) {
	tests := []FittingRules{
		{HLayout: ControlledSmushing, HRules: AllHRules, VLayout: ControlledSmushing, VRules: AllVRules},
		{HLayout: Smushing, VLayout: Fitting},
		{HLayout: Fitting, VLayout: Smushing},
		{HLayout: ControlledSmushing, HRules: RuleBigX | RuleHardblank, VLayout: FullWidth},
	}

	for _, want := range tests {
		encoded := EncodeLayout(want)
		got := DecodeLayout(1, &encoded)
		if got != want {
			t.Errorf("DecodeLayout(EncodeLayout(%+v)) = %+v (encoded %d)", want, got, encoded)
		}
	}
}

func TestRuleStrings(t *testing.T) {
	if got := (RuleEqualChar | RuleBigX).String(); got != "EqualChar|BigX" {
		t.Errorf("HRules.String() = %q", got)
	}
	if got := HRules(0).String(); got != "None" {
		t.Errorf("HRules(0).String() = %q, want None", got)
	}
	if got := (VRuleHorizontalLine | VRuleVerticalLine).String(); got != "HorizontalLine|VerticalLine" {
		t.Errorf("VRules.String() = %q", got)
	}
	if got := ControlledSmushing.String(); got != "controlled smushing" {
		t.Errorf("Layout.String() = %q", got)
	}
}
