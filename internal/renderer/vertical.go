package renderer

import (
	"github.com/ryanlewis/figdriver/internal/common"
	"github.com/ryanlewis/figdriver/internal/debug"
)

// verticalFit is the outcome of testing one pair of overlapping rows
type verticalFit int

const (
	fitValid   verticalFit = iota // rows may overlap and the search may continue
	fitEnd                        // rows may overlap but the search stops here
	fitInvalid                    // rows may not overlap
)

// canVerticalSmush tests whether row2 may be drawn over row1.
//
// Columns where either row has a space never collide. The first visible pair
// decides for Fitting (invalid) and universal Smushing (end). Under
// ControlledSmushing every visible pair must be resolved by an enabled rule,
// or the rows may not overlap at all. Stacked vertical bars resolve without
// ending the search, so a tall run of | can collapse over several rows; any
// other resolved pair ends it after this row.
func (s *renderState) canVerticalSmush(row1, row2 []rune) verticalFit {
	if s.rules.VLayout == common.FullWidth {
		return fitInvalid
	}
	n := min(len(row1), len(row2))
	if n == 0 {
		return fitInvalid
	}

	endSmush := false
	for i := 0; i < n; i++ {
		ch1, ch2 := row1[i], row2[i]
		if ch1 == ' ' || ch2 == ' ' {
			continue
		}
		switch s.rules.VLayout {
		case common.Fitting:
			return fitInvalid
		case common.Smushing:
			return fitEnd
		}

		// stacked bars keep the search growing
		if s.rules.VRules.Has(common.VRuleVerticalLine) {
			if _, ok := smushVerticalLine(ch1, ch2); ok {
				continue
			}
		}
		endSmush = true
		if _, _, ok := controlledVSmush(ch1, ch2, s.rules.VRules&^common.VRuleVerticalLine); !ok {
			return fitInvalid
		}
	}
	if endSmush {
		return fitEnd
	}
	return fitValid
}

// verticalSmushDist returns how many rows of lines2 may overlap the bottom of
// lines1. An empty block on either side overlaps nothing.
//
// The overlap grows one row at a time. At each distance the bottom curDist
// rows of lines1 are paired with the top rows of lines2 and every pair is
// tested: a fitInvalid pair backs off to the previous distance, a fitEnd pair
// accepts this distance but stops the search, and when every pair is fitValid
// the search tries one more row.
func (s *renderState) verticalSmushDist(lines1, lines2 block) int {
	if len(lines1) == 0 || len(lines2) == 0 {
		return 0
	}
	maxDist := len(lines1)
	curDist := 1

	for curDist <= maxDist {
		sub1 := lines1[max(0, len(lines1)-curDist):]
		sub2 := lines2[:min(len(lines2), curDist)]

		result := fitValid
		for i := range sub2 {
			fit := s.canVerticalSmush(sub1[i], sub2[i])
			if fit == fitInvalid {
				result = fitInvalid
				break
			}
			if fit == fitEnd {
				result = fitEnd
			}
		}

		if result == fitInvalid {
			curDist--
			break
		}
		if result == fitEnd {
			break
		}
		curDist++
	}
	return min(maxDist, curDist)
}

// verticallySmushLines merges row2 over row1 column by column.
func (s *renderState) verticallySmushLines(row1, row2 []rune, rowIdx int) []rune {
	n := min(len(row1), len(row2))
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		ch1, ch2 := row1[i], row2[i]
		if ch1 == ' ' || ch2 == ' ' || s.rules.VLayout != common.ControlledSmushing {
			out[i] = uniSmush(ch1, ch2, noHardblank)
			continue
		}

		result, rule, ok := controlledVSmush(ch1, ch2, s.rules.VRules)
		if !ok {
			result, rule = uniSmush(ch1, ch2, noHardblank), "universal"
		}
		out[i] = result

		if s.debug != nil {
			s.debug.Emit("render", "SmushDecision", debug.SmushDecisionData{
				Axis:   "vertical",
				Row:    rowIdx,
				Col:    i,
				Lch:    ch1,
				Rch:    ch2,
				Result: result,
				Rule:   rule,
			})
		}
	}
	return out
}

// verticalSmush splices lines1's untouched rows, the merged overlap and lines2's remaining rows.
func (s *renderState) verticalSmush(lines1, lines2 block, overlap int) block {
	len1, len2 := len(lines1), len(lines2)
	start := max(0, len1-overlap)

	out := make(block, 0, len1+len2)
	out = append(out, lines1[:start]...)
	for i, row := range lines1[start:] {
		if i >= len2 {
			out = append(out, row)
			continue
		}
		out = append(out, s.verticallySmushLines(row, lines2[i], start+i))
	}
	return append(out, lines2[min(overlap, len2):]...)
}

// smushVerticalBlocks stacks next under output, padding the narrower block
// (by first-row width) with trailing spaces.
func (s *renderState) smushVerticalBlocks(output, next block, index int) block {
	len1, len2 := len(output[0]), len(next[0])
	switch {
	case len1 > len2:
		next = padBlock(next, len1-len2)
	case len2 > len1:
		output = padBlock(output, len2-len1)
	}

	overlap := s.verticalSmushDist(output, next)
	merged := s.verticalSmush(output, next, overlap)

	if s.debug != nil {
		s.debug.Emit("render", "VerticalMerge", debug.VerticalMergeData{
			Block:      index,
			Overlap:    overlap,
			RowsBefore: len(output),
			RowsAfter:  len(merged),
		})
	}
	return merged
}

func padBlock(b block, n int) block {
	out := make(block, len(b))
	for i, row := range b {
		padded := make([]rune, len(row), len(row)+n)
		copy(padded, row)
		for j := 0; j < n; j++ {
			padded = append(padded, ' ')
		}
		out[i] = padded
	}
	return out
}
