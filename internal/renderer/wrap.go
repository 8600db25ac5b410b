package renderer

// joinBlocks smushes parts left to right onto an empty block, each with its
// recorded overlap, followed by extra.
func (s *renderState) joinBlocks(parts []figChar, extra ...figChar) block {
	acc := newBlock(s.height)
	for _, p := range parts {
		acc = s.horizontalSmush(acc, p.fig, p.overlap, false)
	}
	for _, p := range extra {
		acc = s.horizontalSmush(acc, p.fig, p.overlap, false)
	}
	return acc
}

// breakWord returns the longest prefix of chars that fits within the width
// limit, and the characters left over. When not even one character fits, the
// first character is returned on its own so wrapping always makes progress.
func (s *renderState) breakWord(chars []figChar) (block, []figChar) {
	for i := len(chars) - 1; i > 0; i-- {
		if b := s.joinBlocks(chars[:i]); b.width() <= s.width {
			return b, chars[i:]
		}
	}
	if len(chars) == 0 {
		return newBlock(s.height), nil
	}
	return s.joinBlocks(chars[:1]), chars[1:]
}
