package figdriver

import (
	"errors"
	"testing"
)

func TestParseLayoutKeyword(t *testing.T) {
	tests := []struct {
		in      string
		want    LayoutKeyword
		wantErr bool
	}{
		{"", LayoutDefault, false},
		{"default", LayoutDefault, false},
		{"full", LayoutFull, false},
		{"  Fitted ", LayoutFitted, false},
		{"controlled smushing", LayoutControlledSmushing, false},
		{"Universal Smushing", LayoutUniversalSmushing, false},
		{"smush", "", true},
		{"kerning", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLayoutKeyword(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLayout) {
					t.Fatalf("ParseLayoutKeyword(%q) error = %v, want ErrUnknownLayout", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayoutKeyword(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLayoutKeyword(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyLayoutKeywords(t *testing.T) {
	base := FittingRules{
		HLayout: ControlledSmushing,
		HRules:  RuleEqualChar | RuleHierarchy,
		VLayout: Fitting,
		VRules:  VRuleUnderscore,
	}

	tests := []struct {
		name string
		h, v LayoutKeyword
		want FittingRules
	}{
		{
			name: "default_keeps_font",
			h:    LayoutDefault,
			v:    LayoutDefault,
			want: base,
		},
		{
			name: "full",
			h:    LayoutFull,
			v:    LayoutFull,
			want: FittingRules{HLayout: FullWidth, VLayout: FullWidth},
		},
		{
			name: "fitted_horizontal_only",
			h:    LayoutFitted,
			v:    LayoutDefault,
			want: FittingRules{HLayout: Fitting, VLayout: Fitting, VRules: VRuleUnderscore},
		},
		{
			name: "controlled_enables_all_rules",
			h:    LayoutControlledSmushing,
			v:    LayoutControlledSmushing,
			want: FittingRules{HLayout: ControlledSmushing, HRules: AllHRules, VLayout: ControlledSmushing, VRules: AllVRules},
		},
		{
			name: "universal_clears_rules",
			h:    LayoutUniversalSmushing,
			v:    LayoutUniversalSmushing,
			want: FittingRules{HLayout: Smushing, VLayout: Smushing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyLayoutKeywords(base, tt.h, tt.v)
			if err != nil {
				t.Fatalf("applyLayoutKeywords() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("applyLayoutKeywords() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := applyLayoutKeywords(base, "sideways", LayoutDefault); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("applyLayoutKeywords(bad h) error = %v, want ErrUnknownLayout", err)
	}
	if _, err := applyLayoutKeywords(base, LayoutDefault, "sideways"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("applyLayoutKeywords(bad v) error = %v, want ErrUnknownLayout", err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	tests := []FittingRules{
		{HLayout: FullWidth, VLayout: FullWidth},
		{HLayout: Fitting, VLayout: Fitting},
		{HLayout: Smushing, VLayout: Smushing},
		{HLayout: ControlledSmushing, HRules: AllHRules, VLayout: ControlledSmushing, VRules: AllVRules},
		{HLayout: ControlledSmushing, HRules: RuleBigX, VLayout: FullWidth},
	}

	for _, want := range tests {
		full := EncodeLayout(want)
		if got := DecodeLayout(-1, &full); got != want {
			t.Errorf("DecodeLayout(EncodeLayout(%+v)) = %+v", want, got)
		}
	}
}

func TestDecodeLayoutOldLayout(t *testing.T) {
	tests := []struct {
		old  int
		want FittingRules
	}{
		{-1, FittingRules{HLayout: FullWidth}},
		{0, FittingRules{HLayout: Fitting}},
		{15, FittingRules{HLayout: ControlledSmushing, HRules: RuleEqualChar | RuleUnderscore | RuleHierarchy | RuleOppositePair}},
	}

	for _, tt := range tests {
		if got := DecodeLayout(tt.old, nil); got != tt.want {
			t.Errorf("DecodeLayout(%d, nil) = %+v, want %+v", tt.old, got, tt.want)
		}
	}
}
