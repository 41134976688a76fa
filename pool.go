package greedy

import "fmt"

// DefaultChunkSize is the number of DiagonalState records in a pool chunk.
const DefaultChunkSize = 4096

// DiagonalState holds, for one diagonal at one distance, the furthest seq1
// offset of a path ending in an insertion (I), a match or substitution (M)
// and a deletion (D). Unreachable states hold a large negative value.
type DiagonalState struct {
	I, M, D int32
}

// poolChunk is a fixed-capacity block of states; used never exceeds len(cells).
type poolChunk struct {
	cells []DiagonalState
	used  int
}

// DiagonalPool is an arena of DiagonalState records. Slices returned by
// Alloc stay valid until Reset or Free; there is no per-slice release.
// A pool is not safe for concurrent use.
type DiagonalPool struct {
	chunks    []*poolChunk
	active    int
	chunkSize int

	limit     int // max records handed out between resets, 0 for no limit
	allocated int
}

// PoolOption configures a DiagonalPool.
type PoolOption func(*DiagonalPool)

// WithChunkSize sets the default chunk capacity.
func WithChunkSize(n int) PoolOption {
	return func(p *DiagonalPool) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithPoolLimit caps the records Alloc hands out between resets.
// 0 means unlimited.
func WithPoolLimit(n int) PoolOption {
	return func(p *DiagonalPool) {
		p.limit = n
	}
}

// NewDiagonalPool returns a pool with one chunk allocated.
func NewDiagonalPool(opts ...PoolOption) *DiagonalPool {
	p := &DiagonalPool{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(p)
	}
	p.chunks = []*poolChunk{{cells: make([]DiagonalState, p.chunkSize)}}
	return p
}

// Alloc returns n contiguous zeroed states. When the active chunk is too
// full it moves on to the next chunk that fits, linking a new chunk of
// max(n, chunk size) records if none does.
func (p *DiagonalPool) Alloc(n int) ([]DiagonalState, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: pool alloc of %d states", ErrInvalidArgument, n)
	}
	if p.limit > 0 && p.allocated+n > p.limit {
		return nil, fmt.Errorf("%w: %d of %d diagonal states in use, %d requested",
			ErrOutOfMemory, p.allocated, p.limit, n)
	}
	if len(p.chunks) == 0 {
		p.chunks = []*poolChunk{{cells: make([]DiagonalState, max(n, p.chunkSize))}}
		p.active = 0
	}
	c := p.chunks[p.active]
	for len(c.cells)-c.used < n {
		p.active++
		if p.active == len(p.chunks) {
			p.chunks = append(p.chunks, &poolChunk{cells: make([]DiagonalState, max(n, p.chunkSize))})
		}
		c = p.chunks[p.active]
	}
	s := c.cells[c.used : c.used+n : c.used+n]
	clear(s)
	c.used += n
	p.allocated += n
	return s, nil
}

// Reset makes every chunk available again without releasing memory.
// Slices handed out before are invalidated.
func (p *DiagonalPool) Reset() {
	for _, c := range p.chunks {
		c.used = 0
	}
	p.active = 0
	p.allocated = 0
}

// Free releases every chunk.
func (p *DiagonalPool) Free() {
	p.chunks = nil
	p.active = 0
	p.allocated = 0
}

// Chunks returns the number of chunks the pool holds.
func (p *DiagonalPool) Chunks() int { return len(p.chunks) }

// Allocated returns the number of records handed out since the last reset.
func (p *DiagonalPool) Allocated() int { return p.allocated }
