package renderer

import (
	"github.com/ryanlewis/figdriver/internal/common"
	"github.com/ryanlewis/figdriver/internal/debug"
)

// horizontalSmushLength returns how many columns right may be pulled into
// left for one row. The search starts at 1 and grows until a collision stops it.
//
// At each distance the last curDist columns of left are laid over the first
// columns of right. Pairs where either side is a space never collide. The
// first visible pair decides, by layout:
//   - Fitting: ink may not touch ink, so the search backs off one column.
//   - Smushing: the pair may merge, but nothing further may be pulled in.
//     A hardblank on either side may not be merged, so that case backs off.
//   - ControlledSmushing: the pair must be resolved by an enabled rule or the
//     search backs off; when every such pair is resolved the distance is
//     accepted and the search ends there.
//
// A row that only meets spaces keeps growing until it has been pulled in
// completely, which is how leading and trailing blanks are consumed.
func (s *renderState) horizontalSmushLength(left, right []rune) int {
	if s.rules.HLayout == common.FullWidth {
		return 0
	}
	len1, len2 := len(left), len(right)
	if len1 == 0 {
		return 0
	}

	maxDist := len1
	curDist := 1
	breakAfter := false

search:
	for curDist <= maxDist {
		seg1 := left[len1-curDist:]
		for i := 0; i < min(curDist, len2); i++ {
			ch1, ch2 := seg1[i], right[i]
			if ch1 == ' ' || ch2 == ' ' {
				continue
			}
			switch s.rules.HLayout {
			case common.Fitting:
				curDist--
				break search
			case common.Smushing:
				// universal smushing never pulls a hardblank across ink
				if ch1 == s.hardblank || ch2 == s.hardblank {
					curDist--
				}
				break search
			default:
				breakAfter = true
				if _, _, ok := controlledSmush(ch1, ch2, s.hardblank, s.rules.HRules); !ok {
					curDist--
					break search
				}
			}
		}
		if breakAfter {
			break
		}
		curDist++
	}
	return min(maxDist, curDist)
}

// blockOverlap is the smallest per-row overlap between acc and glyph. A
// glyph moves as a unit, so the tightest row limits every row.
func (s *renderState) blockOverlap(acc, glyph block) int {
	if s.rules.HLayout == common.FullWidth || s.height == 0 {
		return 0
	}
	overlap := -1
	for row := 0; row < s.height; row++ {
		d := s.horizontalSmushLength(acc[row], glyph[row])
		if overlap == -1 || d < overlap {
			overlap = d
		}
	}
	return overlap
}

// horizontalSmush joins b2 onto b1 with the given overlap. Columns inside the
// overlap window are merged; everything else is copied. When trace is set each
// colliding column is reported to the debug session.
func (s *renderState) horizontalSmush(b1, b2 block, overlap int, trace bool) block {
	out := newBlock(s.height)
	for row := 0; row < s.height; row++ {
		txt1, txt2 := b1[row], b2[row]
		len1, len2 := len(txt1), len(txt2)

		start := max(0, len1-overlap)
		merged := make([]rune, 0, start+max(overlap, len2))
		merged = append(merged, txt1[:start]...)

		seg1 := txt1[start:]
		for j := 0; j < overlap; j++ {
			ch1, ch2 := ' ', ' '
			if j < len(seg1) {
				ch1 = seg1[j]
			}
			if j < len2 {
				ch2 = txt2[j]
			}

			var result rune
			rule := "universal"
			switch {
			case ch1 == ' ' || ch2 == ' ':
				result = uniSmush(ch1, ch2, s.hardblank)
				rule = ""
			case s.rules.HLayout == common.ControlledSmushing:
				var ok bool
				if result, rule, ok = controlledSmush(ch1, ch2, s.hardblank, s.rules.HRules); !ok {
					result = uniSmush(ch1, ch2, s.hardblank)
					rule = "universal"
				}
			default:
				result = uniSmush(ch1, ch2, s.hardblank)
			}
			merged = append(merged, result)

			if trace && rule != "" && s.debug != nil {
				s.debug.Emit("render", "SmushDecision", debug.SmushDecisionData{
					Axis:   "horizontal",
					Row:    row,
					Col:    start + j,
					Lch:    ch1,
					Rch:    ch2,
					Result: result,
					Rule:   rule,
				})
			}
		}

		if overlap < len2 {
			merged = append(merged, txt2[overlap:]...)
		}
		out[row] = merged
	}
	return out
}
