package greedy

// affineEngine keeps three furthest offsets per diagonal and distance: the
// best path ending in an insertion, in a match or substitution, and in a
// deletion. Levels are carved from the working memory's DiagonalPool.
type affineEngine struct {
	c *alignContext
}

// delSource returns the deletion state on diagonal k at distance d:
// one more seq1 residue after either opening a gap from the match state
// or extending a deletion. Extension wins ties.
func (e *affineEngine) delSource(d, k int) (v int, open, ok bool) {
	c, wm, w := e.c, e.c.wm, e.c.w
	best := -1
	if r := int(wm.state(d-w.gap, k-1).D); r >= 0 && r < c.len1 {
		best = r + 1
	}
	if r := int(wm.state(d-w.gap-w.open, k-1).M); r >= 0 && r < c.len1 && r+1 > best {
		best, open = r+1, true
	}
	return best, open, best >= 0
}

// insSource is delSource for insertions, which consume seq2 and move to
// diagonal k from k+1.
func (e *affineEngine) insSource(d, k int) (v int, open, ok bool) {
	c, wm, w := e.c, e.c.wm, e.c.w
	best := -1
	if r := int(wm.state(d-w.gap, k+1).I); r >= 0 && r-k <= c.len2 {
		best = r
	}
	if r := int(wm.state(d-w.gap-w.open, k+1).M); r >= 0 && r-k <= c.len2 && r > best {
		best, open = r, true
	}
	return best, open, best >= 0
}

// matchSource returns the match state on diagonal k at distance d before
// sliding along matches, given the gap states st of the same cell.
// Substitutions win ties over deletions, deletions over insertions.
func (e *affineEngine) matchSource(d, k int, st DiagonalState) (int, OpKind, bool) {
	c, wm, w := e.c, e.c.wm, e.c.w
	if d == 0 {
		return 0, opStart, k == 0
	}
	best, op := -1, OpKind(0)
	if r := int(wm.state(d-w.mismatch, k).M); r >= 0 && r < c.len1 && r-k < c.len2 {
		best, op = r+1, OpMismatch
	}
	if r := int(st.D); r > best {
		best, op = r, OpDelete
	}
	if r := int(st.I); r > best {
		best, op = r, OpInsert
	}
	return best, op, best >= 0
}

func (e *affineEngine) step(d int) (bool, error) {
	c, wm, w := e.c, e.c.wm, e.c.w

	lo, hi := 0, 0
	if d > 0 {
		lo, hi = c.len1+1, -c.len2-1
		for _, src := range [...]struct{ d, shift int }{
			{d - w.mismatch, 0},
			{d - w.gap - w.open, 1},
			{d - w.gap - w.open, -1},
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

	cells, err := wm.states(hi - lo + 1)
	if err != nil {
		return false, err
	}
	live := false
	for k := lo; k <= hi; k++ {
		st := unreachedState
		if v, _, ok := e.delSource(d, k); ok {
			st.D = int32(v)
		}
		if v, _, ok := e.insSource(d, k); ok {
			st.I = int32(v)
		}
		i, _, ok := e.matchSource(d, k, st)
		if !ok {
			cells[k-lo] = unreachedState
			continue
		}
		i = c.slide(i, i-k)
		if !c.accept(d, k, i) {
			cells[k-lo] = unreachedState
			continue
		}
		st.M = int32(i)
		cells[k-lo] = st
		live = true
	}

	// Narrow the band to the live diagonals
	for lo <= hi && cells[0].M == unreached {
		cells = cells[1:]
		lo++
	}
	for lo <= hi && cells[hi-lo].M == unreached {
		hi--
	}
	wm.levels = append(wm.levels, level{lo: lo, hi: hi, cells: cells[:max(hi-lo+1, 0)]})
	return live, nil
}
