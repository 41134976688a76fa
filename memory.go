package greedy

import (
	"fmt"
	"math"
)

// unreached marks a diagonal state no path reaches. Adding small offsets
// to it keeps it negative.
const unreached int32 = math.MinInt32 / 2

// maxSeqLen bounds sequence lengths so offsets fit in an int32.
const maxSeqLen = math.MaxInt32/2 - 1

// level is the band of diagonals kept at one distance. Exactly one of row
// (linear gaps) and cells (affine gaps) is used; lo > hi means empty.
type level struct {
	lo, hi int
	row    []int32
	cells  []DiagonalState
}

func (lv *level) empty() bool { return lv.lo > lv.hi }

// WorkingMemory is the scratch space of an alignment: one level per
// distance explored and the pool the affine levels are carved from. It
// can be reused across calls to amortize allocation, but only by one call
// at a time. Buffers only ever grow.
type WorkingMemory struct {
	levels []level
	rows   [][]int32 // linear row buffers, indexed by distance
	pool   *DiagonalPool

	maxCells int
	cells    int
}

// MemoryOption configures a WorkingMemory.
type MemoryOption func(*WorkingMemory)

// WithMaxCells caps the diagonal cells a single alignment may use. Going
// over it fails the alignment with ErrOutOfMemory. 0 means unlimited.
func WithMaxCells(n int) MemoryOption {
	return func(wm *WorkingMemory) {
		wm.maxCells = n
	}
}

// WithPool makes the working memory carve affine levels from p.
func WithPool(p *DiagonalPool) MemoryOption {
	return func(wm *WorkingMemory) {
		wm.pool = p
	}
}

// NewWorkingMemory returns empty working memory.
func NewWorkingMemory(opts ...MemoryOption) *WorkingMemory {
	wm := &WorkingMemory{}
	for _, opt := range opts {
		opt(wm)
	}
	if wm.pool == nil {
		wm.pool = NewDiagonalPool()
	}
	return wm
}

// reset prepares the memory for a new alignment, keeping all buffers.
func (wm *WorkingMemory) reset() {
	wm.levels = wm.levels[:0]
	wm.cells = 0
	wm.pool.Reset()
}

// reserve accounts for n more cells against the limit.
func (wm *WorkingMemory) reserve(n int) error {
	if wm.maxCells > 0 && wm.cells+n > wm.maxCells {
		return fmt.Errorf("%w: need %d cells, limit is %d", ErrOutOfMemory, wm.cells+n, wm.maxCells)
	}
	wm.cells += n
	return nil
}

// row returns the linear row buffer for distance d with length n.
func (wm *WorkingMemory) row(d, n int) ([]int32, error) {
	if err := wm.reserve(n); err != nil {
		return nil, err
	}
	for len(wm.rows) <= d {
		wm.rows = append(wm.rows, nil)
	}
	if cap(wm.rows[d]) < n {
		wm.rows[d] = make([]int32, n, n+n/2)
	}
	return wm.rows[d][:n], nil
}

// states returns n pool cells for an affine level.
func (wm *WorkingMemory) states(n int) ([]DiagonalState, error) {
	if err := wm.reserve(n); err != nil {
		return nil, err
	}
	return wm.pool.Alloc(n)
}

// at returns the linear offset on diagonal k at distance d.
func (wm *WorkingMemory) at(d, k int) int32 {
	if d < 0 || d >= len(wm.levels) {
		return unreached
	}
	lv := &wm.levels[d]
	if k < lv.lo || k > lv.hi {
		return unreached
	}
	return lv.row[k-lv.lo]
}

var unreachedState = DiagonalState{I: unreached, M: unreached, D: unreached}

// state returns the affine states on diagonal k at distance d.
func (wm *WorkingMemory) state(d, k int) DiagonalState {
	if d < 0 || d >= len(wm.levels) {
		return unreachedState
	}
	lv := &wm.levels[d]
	if k < lv.lo || k > lv.hi {
		return unreachedState
	}
	return lv.cells[k-lv.lo]
}

// band returns the diagonal range at distance d shifted by shift, or
// ok=false when that level is missing or empty.
func (wm *WorkingMemory) band(d, shift int) (lo, hi int, ok bool) {
	if d < 0 || d >= len(wm.levels) || wm.levels[d].empty() {
		return 0, 0, false
	}
	lv := &wm.levels[d]
	return lv.lo + shift, lv.hi + shift, true
}

// Cells returns the number of diagonal cells the last alignment used.
func (wm *WorkingMemory) Cells() int { return wm.cells }

// Pool returns the pool backing the affine levels.
func (wm *WorkingMemory) Pool() *DiagonalPool { return wm.pool }
