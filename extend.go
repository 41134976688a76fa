package greedy

import (
	"context"
	"fmt"
)

// SeedAlignment is an alignment grown in both directions from a seed.
// It covers seq1[Start1:End1] and seq2[Start2:End2]; Script reads left
// to right.
type SeedAlignment struct {
	Start1, End1 int
	Start2, End2 int
	Score        int
	Script       *EditScript
}

// ExtendSeed grows an alignment leftwards and rightwards from the seed
// position (off1, off2): the prefixes before the seed are aligned walking
// backwards, the suffixes from the seed walking forwards. The left script
// is put in sequence order and the right one concatenated onto it. Score
// is the sum of both sides; under affine scoring, when both sides meet
// the seed with a gap of the same kind the two gaps become one run and
// its second opening is refunded. p.Global is ignored.
func ExtendSeed(ctx context.Context, seq1, seq2 []byte, off1, off2 int, p Params, affine bool, wm *WorkingMemory) (*SeedAlignment, error) {
	if off1 < 0 || off1 > len(seq1) || off2 < 0 || off2 > len(seq2) {
		return nil, fmt.Errorf("%w: seed (%d, %d) outside sequences of length (%d, %d)",
			ErrInvalidArgument, off1, off2, len(seq1), len(seq2))
	}
	p.Global = false

	side := func(s1, s2 []byte, reverse bool) (*Alignment, error) {
		if len(s1) == 0 || len(s2) == 0 {
			if err := p.validate(affine); err != nil {
				return nil, err
			}
			return &Alignment{Script: NewEditScript(), Reverse: reverse}, nil
		}
		return align(ctx, s1, s2, reverse, p, wm, affine)
	}

	left, err := side(seq1[:off1], seq2[:off2], true)
	if err != nil {
		return nil, err
	}
	right, err := side(seq1[off1:], seq2[off2:], false)
	if err != nil {
		return nil, err
	}

	left.Script.Reverse()
	score := left.Score + right.Score
	if affine && joinsGap(left.Script, right.Script) {
		score -= p.GapOpen
	}
	return &SeedAlignment{
		Start1: off1 - left.End1,
		End1:   off1 + right.End1,
		Start2: off2 - left.End2,
		End2:   off2 + right.End2,
		Score:  score,
		Script: left.Script.Concat(right.Script),
	}, nil
}

// joinsGap reports whether concatenating a and b merges a gap at the end
// of a with a gap of the same kind at the start of b.
func joinsGap(a, b *EditScript) bool {
	if a.Len() == 0 || b.Len() == 0 {
		return false
	}
	last, first := a.At(a.Len()-1).Kind(), b.At(0).Kind()
	return last == first && (last == OpDelete || last == OpInsert)
}

// Aligned formats the alignment over the covered parts of seq1 and seq2.
func (sa *SeedAlignment) Aligned(seq1, seq2 []byte, opts ...FormatOption) (row1, row2 []byte, err error) {
	return Format(seq1[sa.Start1:sa.End1], seq2[sa.Start2:sa.End2], sa.Script, opts...)
}
