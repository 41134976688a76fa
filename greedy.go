// Package greedy implements X-drop greedy pairwise alignment of
// alphabet-coded sequences.
//
// The aligner sweeps edit distance outward from the start of both
// sequences, keeping for every diagonal only the furthest point reachable
// at each distance, and slides along exact matches between edits. Cells
// whose score drops more than the X-drop threshold below the best score
// found so far are pruned, so the band of live diagonals stays narrow and
// no full DP matrix is ever built.
//
// Two variants share the machinery:
//   - GreedyAlign scores every gap residue the same (linear gaps)
//   - AffineGreedyAlign charges an extra cost for opening a gap
//
// Both return an Alignment whose EditScript can be rendered with Format
// or checked with Rescore.
package greedy

import (
	"context"
	"fmt"
)

// Scoring holds the scores added for each aligned column. Match is a
// reward (>= 0); Mismatch, GapOpen and GapExtend are penalties (< Match,
// <= 0, <= 0). A gap of length L scores GapOpen + L*GapExtend; the linear
// variant ignores GapOpen.
type Scoring struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// DefaultScoring is a nucleotide scheme close to megablast's.
var DefaultScoring = Scoring{
	Match:     1,
	Mismatch:  -2,
	GapOpen:   -5,
	GapExtend: -2,
}

// Params configures one alignment call.
type Params struct {
	Scoring

	// XDrop is how far (in score) a cell may fall below the best score
	// found so far before its diagonal is abandoned.
	XDrop int

	// Global aligns to the end of both sequences instead of stopping at
	// the best scoring cell.
	Global bool
}

// validate checks the sign conventions the distance transform relies on.
func (p Params) validate(affine bool) error {
	switch {
	case p.XDrop < 0:
		return fmt.Errorf("%w: negative X-drop %d", ErrInvalidArgument, p.XDrop)
	case p.Match < 0:
		return fmt.Errorf("%w: match score %d is negative", ErrInvalidArgument, p.Match)
	case p.Mismatch >= p.Match:
		return fmt.Errorf("%w: mismatch score %d not below match score %d", ErrInvalidArgument, p.Mismatch, p.Match)
	case p.GapExtend > 0:
		return fmt.Errorf("%w: gap extension score %d is positive", ErrInvalidArgument, p.GapExtend)
	case p.Match == 0 && p.GapExtend == 0:
		return fmt.Errorf("%w: gaps must cost something when matches score 0", ErrInvalidArgument)
	case affine && p.GapOpen > 0:
		return fmt.Errorf("%w: gap open score %d is positive", ErrInvalidArgument, p.GapOpen)
	}
	return nil
}

// gapScore is the score of one gap of length n.
func (p Params) gapScore(n int, affine bool) int {
	if n == 0 {
		return 0
	}
	s := n * p.GapExtend
	if affine {
		s += p.GapOpen
	}
	return s
}

// Alignment is the result of one alignment call.
type Alignment struct {
	// End1 and End2 are how many residues of seq1 and seq2 the alignment
	// covers, counted from the start (or from the end when Reverse).
	End1, End2 int

	// Score is the score of Script.
	Score int

	// Script lists the edits in the order the sequences were walked.
	Script *EditScript

	// Reverse records that both sequences were walked back to front.
	Reverse bool

	// Levels is the number of distances explored.
	Levels int
}

// GreedyAlign aligns seq1 with seq2 scoring every gap residue p.GapExtend.
// When reverse is set both sequences are read from their last residue
// towards their first. wm may be nil; otherwise it is reused and must not
// be shared with a concurrent call.
//
// Completely dissimilar sequences are not an error: the best partial
// alignment is returned, possibly empty.
func GreedyAlign(ctx context.Context, seq1, seq2 []byte, reverse bool, p Params, wm *WorkingMemory) (*Alignment, error) {
	return align(ctx, seq1, seq2, reverse, p, wm, false)
}

// AffineGreedyAlign aligns seq1 with seq2 charging p.GapOpen once per gap
// on top of p.GapExtend per gap residue. See GreedyAlign.
func AffineGreedyAlign(ctx context.Context, seq1, seq2 []byte, reverse bool, p Params, wm *WorkingMemory) (*Alignment, error) {
	return align(ctx, seq1, seq2, reverse, p, wm, true)
}

func align(ctx context.Context, seq1, seq2 []byte, reverse bool, p Params, wm *WorkingMemory, affine bool) (*Alignment, error) {
	if err := p.validate(affine); err != nil {
		return nil, err
	}
	if len(seq1) > maxSeqLen || len(seq2) > maxSeqLen {
		return nil, fmt.Errorf("%w: sequence lengths %d, %d exceed %d",
			ErrInvalidArgument, len(seq1), len(seq2), maxSeqLen)
	}

	// Handle trivial cases
	if len(seq1) == 0 || len(seq2) == 0 {
		return gapOnly(len(seq1), len(seq2), reverse, p, affine), nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if wm == nil {
		wm = NewWorkingMemory()
	}
	wm.reset()

	c := newAlignContext(ctx, seq1, seq2, reverse, p, newWeights(p.Scoring, affine), wm)
	var eng engine
	if affine {
		eng = &affineEngine{c: c}
	} else {
		eng = &linearEngine{c: c}
	}
	if err := c.run(eng.step); err != nil {
		return nil, err
	}

	d, k, i, s := c.endpoint()
	return &Alignment{
		End1:    i,
		End2:    i - k,
		Score:   s / 2,
		Script:  eng.traceback(d, k, i),
		Reverse: reverse,
		Levels:  len(wm.levels),
	}, nil
}

// gapOnly aligns a sequence against an empty one.
func gapOnly(len1, len2 int, reverse bool, p Params, affine bool) *Alignment {
	es := NewEditScript()
	es.Append(OpDelete, len1)
	es.Append(OpInsert, len2)
	return &Alignment{
		End1:    len1,
		End2:    len2,
		Score:   p.gapScore(len1, affine) + p.gapScore(len2, affine),
		Script:  es,
		Reverse: reverse,
	}
}

// engine is one variant of the recurrence.
type engine interface {
	// step computes the level at distance d and reports whether any cell
	// in it survived.
	step(d int) (bool, error)
	// traceback rebuilds the path ending at (d, k, i) in walk order.
	traceback(d, k, i int) *EditScript
}

// opStart marks the origin cell, which has no predecessor.
const opStart OpKind = opKindMask + 1

// linearEngine keeps one furthest offset per diagonal and distance.
type linearEngine struct {
	c *alignContext
}

// predecessor returns the offset on diagonal k at distance d before
// sliding along matches, and the edit that led there. Substitutions win
// ties over deletions, deletions over insertions.
func (e *linearEngine) predecessor(d, k int) (int, OpKind, bool) {
	c, wm, w := e.c, e.c.wm, e.c.w
	if d == 0 {
		return 0, opStart, k == 0
	}
	best, op := -1, OpKind(0)
	if r := int(wm.at(d-w.mismatch, k)); r >= 0 && r < c.len1 && r-k < c.len2 {
		best, op = r+1, OpMismatch
	}
	if r := int(wm.at(d-w.gap, k-1)); r >= 0 && r < c.len1 && r+1 > best {
		best, op = r+1, OpDelete
	}
	if r := int(wm.at(d-w.gap, k+1)); r >= 0 && r-k <= c.len2 && r > best {
		best, op = r, OpInsert
	}
	return best, op, best >= 0
}

func (e *linearEngine) step(d int) (bool, error) {
	c, wm, w := e.c, e.c.wm, e.c.w

	lo, hi := 0, 0
	if d > 0 {
		lo, hi = c.len1+1, -c.len2-1
		for _, src := range [...]struct{ d, shift int }{
			{d - w.mismatch, 0},
			{d - w.gap, 1},
			{d - w.gap, -1},
		} {
			if l, h, ok := wm.band(src.d, src.shift); ok {
				lo, hi = min(lo, l), max(hi, h)
			}
		}
		lo, hi = c.clampBand(lo, hi)
	}
	if lo > hi {
		wm.levels = append(wm.levels, level{lo: 1, hi: 0})
		return false, nil
	}

	row, err := wm.row(d, hi-lo+1)
	if err != nil {
		return false, err
	}
	live := false
	for k := lo; k <= hi; k++ {
		i, _, ok := e.predecessor(d, k)
		if !ok {
			row[k-lo] = unreached
			continue
		}
		i = c.slide(i, i-k)
		if !c.accept(d, k, i) {
			row[k-lo] = unreached
			continue
		}
		row[k-lo] = int32(i)
		live = true
	}

	// Narrow the band to the live diagonals
	for lo <= hi && row[0] == unreached {
		row = row[1:]
		lo++
	}
	for lo <= hi && row[hi-lo] == unreached {
		hi--
	}
	wm.levels = append(wm.levels, level{lo: lo, hi: hi, row: row[:max(hi-lo+1, 0)]})
	return live, nil
}
