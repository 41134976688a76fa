package greedy

import "fmt"

// Rescore replays es over seq1 and seq2 from their first residues and
// returns the score the script earns under s. With affine set every gap
// run also pays s.GapOpen once. It fails if the script runs off either
// sequence or labels a pair of residues with the wrong match kind.
func Rescore(seq1, seq2 []byte, es *EditScript, s Scoring, affine bool) (int, error) {
	score, i, j := 0, 0, 0
	prev := opStart
	for _, op := range es.ops {
		kind, n := op.Kind(), op.Len()
		c1, c2 := kind.consumes()
		if i+c1*n > len(seq1) || j+c2*n > len(seq2) {
			return 0, fmt.Errorf("%w: %s at (%d, %d) runs past lengths (%d, %d)",
				ErrScriptLength, op, i, j, len(seq1), len(seq2))
		}
		switch kind {
		case OpMatch, OpMismatch:
			for x := 0; x < n; x++ {
				if (seq1[i+x] == seq2[j+x]) != (kind == OpMatch) {
					return 0, fmt.Errorf("%w: %s at (%d, %d)", ErrScriptResidue, kind, i+x, j+x)
				}
			}
			if kind == OpMatch {
				score += n * s.Match
			} else {
				score += n * s.Mismatch
			}
		case OpDelete, OpInsert:
			score += n * s.GapExtend
			if affine && prev != kind {
				score += s.GapOpen
			}
		}
		i += c1 * n
		j += c2 * n
		prev = kind
	}
	return score, nil
}
