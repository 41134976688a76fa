package greedy

import "context"

// alignContext holds algorithm state during one alignment.
type alignContext struct {
	ctx        context.Context
	seq1, seq2 []byte // sequences being aligned, read back to front when reverse
	len1, len2 int
	reverse    bool
	global     bool // run to (len1, len2) instead of the best cell
	match      int  // doubled score gained per residue of i+j
	xdrop      int  // doubled X-drop threshold
	w          weights
	wm         *WorkingMemory

	floor int // cells scoring below this are pruned at the current distance

	best       int // best doubled score seen so far
	bestD      int
	bestK      int
	bestI      int
	endReached bool // a live cell touched the end of seq1 or seq2

	corner      bool // global mode: (len1, len2) was reached
	cornerD     int
	cornerScore int
}

// newAlignContext creates a context for aligning seq1 with seq2.
func newAlignContext(ctx context.Context, seq1, seq2 []byte, reverse bool, p Params, w weights, wm *WorkingMemory) *alignContext {
	return &alignContext{
		ctx:     ctx,
		seq1:    seq1,
		seq2:    seq2,
		len1:    len(seq1),
		len2:    len(seq2),
		reverse: reverse,
		global:  p.Global,
		match:   p.Match,
		xdrop:   2 * p.XDrop,
		w:       w,
		wm:      wm,
	}
}

// score returns the doubled score of a path reaching (i, i-k) at distance d.
func (c *alignContext) score(d, k, i int) int {
	return (2*i-k)*c.match - d*c.w.unit
}

// accept applies the X-drop test to the extended cell (d, k, i) and records
// it as the best or end cell when it qualifies. The first of equally
// scoring cells is kept.
func (c *alignContext) accept(d, k, i int) bool {
	s := c.score(d, k, i)
	if s < c.floor {
		return false
	}
	if s > c.best {
		c.best, c.bestD, c.bestK, c.bestI = s, d, k, i
	}
	j := i - k
	if i == c.len1 || j == c.len2 {
		c.endReached = true
	}
	if c.global && !c.corner && i == c.len1 && j == c.len2 {
		c.corner, c.cornerD, c.cornerScore = true, d, s
	}
	return true
}

// run computes one level per distance with step until the alignment is
// done: the end of a sequence (extension) or the corner (global) was
// reached, or no live cell is left within the look-back window.
func (c *alignContext) run(step func(d int) (bool, error)) error {
	window := c.w.window()
	lastLive := 0
	for d := 0; ; d++ {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		c.floor = c.best - c.xdrop
		live, err := step(d)
		if err != nil {
			return err
		}
		if live {
			lastLive = d
		}
		if c.global && c.corner || !c.global && c.endReached {
			return nil
		}
		if d-lastLive >= window {
			return nil
		}
	}
}

// endpoint returns the cell the traceback starts from.
func (c *alignContext) endpoint() (d, k, i, score int) {
	if c.global && c.corner {
		return c.cornerD, c.len1 - c.len2, c.len1, c.cornerScore
	}
	return c.bestD, c.bestK, c.bestI, c.best
}

// slide follows the diagonal through (i, j) while residues match and
// returns the seq1 offset where it stops.
func (c *alignContext) slide(i, j int) int {
	if c.reverse {
		s1, s2 := c.seq1[:c.len1], c.seq2[:c.len2]
		for i < c.len1 && j < c.len2 && s1[c.len1-1-i] == s2[c.len2-1-j] {
			i++
			j++
		}
		return i
	}
	for i < c.len1 && j < c.len2 && c.seq1[i] == c.seq2[j] {
		i++
		j++
	}
	return i
}

// clampBand limits a diagonal range to the diagonals of the DP grid.
func (c *alignContext) clampBand(lo, hi int) (int, int) {
	return max(lo, -c.len2), min(hi, c.len1)
}
