package greedy

// Distance weights
//
// A path to (i, j) with m matches, x mismatches, g gap residues and o gap
// openings scores
//
//	S = m*Match + x*Mismatch + g*GapExtend + o*GapOpen
//
// and since i+j = 2m + 2x + g,
//
//	2S = (i+j)*Match - (x*2(Match-Mismatch) + g*(Match-2*GapExtend) - o*2*GapOpen)
//
// The bracket is the distance of the path. For a fixed cell, the smaller
// the distance the higher the score, so sweeping distances in increasing
// order and keeping the furthest offset per diagonal is the greedy
// algorithm of Zhang et al. (2000) generalised to arbitrary integer costs.
// Weights are divided by their gcd so consecutive distances are one apart.

// weights are the distance costs of the edit steps, in units of unit.
type weights struct {
	mismatch int
	gap      int // per gap residue
	open     int // extra per gap opening, 0 for linear gaps
	unit     int // doubled score per distance step
}

// newWeights derives distance weights from s. affine selects whether gap
// openings cost extra.
func newWeights(s Scoring, affine bool) weights {
	w := weights{
		mismatch: 2 * (s.Match - s.Mismatch),
		gap:      s.Match - 2*s.GapExtend,
	}
	if affine {
		w.open = -2 * s.GapOpen
	}
	g := gcd(gcd(w.mismatch, w.gap), w.open)
	w.mismatch /= g
	w.gap /= g
	w.open /= g
	w.unit = g
	return w
}

// window is how many distances back a level can draw from.
func (w weights) window() int {
	return max(w.mismatch, w.gap+w.open)
}

// gcd returns the greatest common divisor of a and b; gcd(a, 0) = a.
func gcd(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
