package extraction

// similarityRatio returns a normalized similarity in [0,1] between two
// strings: 2*M / (len(a)+len(b)), where M is the total length of the longest
// matching blocks found recursively. Equivalent to the classic sequence-
// matcher ratio without junk heuristics; the 0.65 resolution floor and 0.98
// dedup bar are calibrated against exactly this measure.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingTotal(ra, rb)) / float64(total)
}

// matchingTotal sums matching block lengths: find the longest common block,
// then recurse on the pieces to its left and right.
func matchingTotal(a, b []rune) int {
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingTotal(a[:ai], b[:bi]) +
		matchingTotal(a[ai+size:], b[bi+size:])
}

// longestBlock locates the longest common contiguous block of a and b,
// preferring the earliest position in a, then in b, on ties.
func longestBlock(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}

	return ai, bi, size
}
