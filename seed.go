package greedy

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"

	"go.uber.org/zap"
)

// DefaultMaxOccurrences is the most times a k-mer may occur in seq1 and
// still be picked as a seed. Git's histogram diff uses the same bound.
const DefaultMaxOccurrences = 64

// Seed is an exact match of Len residues at seq1[Pos1:] and seq2[Pos2:].
type Seed struct {
	Pos1, Pos2 int
	Len        int
}

// FindSeed picks an exact match of at least k residues to extend an
// alignment from:
//  1. Count the k-mers of seq1.
//  2. For each k-mer of seq2 occurring in seq1 at most maxOcc times, score
//     it by its count weighted by how far apart its relative positions in
//     the two sequences are. Lower is better.
//  3. Grow the best hit in both directions while the residues agree.
//
// Rare k-mers at matching relative positions make the best seeds; repeats
// are never picked. maxOcc <= 0 means DefaultMaxOccurrences. ok is false
// when the sequences share no eligible k-mer.
func FindSeed(seq1, seq2 []byte, k, maxOcc int) (seed Seed, ok bool, err error) {
	if k < 1 {
		return Seed{}, false, fmt.Errorf("%w: seed length %d", ErrInvalidArgument, k)
	}
	if maxOcc <= 0 {
		maxOcc = DefaultMaxOccurrences
	}
	if len(seq1) < k || len(seq2) < k {
		return Seed{}, false, nil
	}

	// k-mer hash -> start positions in seq1
	index := make(map[uint64][]int)
	for i := 0; i+k <= len(seq1); i++ {
		h := kmerHash(seq1[i : i+k])
		index[h] = append(index[h], i)
	}

	best1, best2 := -1, -1
	bestScore := float64(maxOcc+1) * 3
	for j := 0; j+k <= len(seq2); j++ {
		kmer := seq2[j : j+k]
		hits := index[kmerHash(kmer)]
		if len(hits) == 0 || len(hits) > maxOcc {
			continue
		}

		ratio2 := float64(j) / float64(len(seq2))
		at, imbalance := -1, 2.0
		for _, i := range hits {
			// hash collision
			if !bytes.Equal(seq1[i:i+k], kmer) {
				continue
			}
			d := float64(i)/float64(len(seq1)) - ratio2
			if d < 0 {
				d = -d
			}
			if d < imbalance {
				at, imbalance = i, d
			}
		}
		if at < 0 {
			continue
		}

		if score := float64(len(hits)) * (1 + imbalance*2); score < bestScore {
			best1, best2, bestScore = at, j, score
		}
	}
	if best1 < 0 {
		return Seed{}, false, nil
	}

	start1, start2 := best1, best2
	for start1 > 0 && start2 > 0 && seq1[start1-1] == seq2[start2-1] {
		start1--
		start2--
	}
	end1, end2 := best1+k, best2+k
	for end1 < len(seq1) && end2 < len(seq2) && seq1[end1] == seq2[end2] {
		end1++
		end2++
	}
	return Seed{Pos1: start1, Pos2: start2, Len: end1 - start1}, true, nil
}

// kmerHash returns the FNV-1a hash of a k-mer.
func kmerHash(kmer []byte) uint64 {
	h := fnv.New64a()
	h.Write(kmer)
	return h.Sum64()
}

// Search finds a seed of at least k residues with FindSeed and extends it
// from its middle. It returns ErrNoSeed when the sequences share no
// eligible k-mer.
func (a *Aligner) Search(ctx context.Context, seq1, seq2 []byte, k int) (*SeedAlignment, error) {
	seed, ok, err := FindSeed(seq1, seq2, k, a.opts.maxOcc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSeed
	}
	a.opts.logger.Debug("seed",
		zap.Int("pos1", seed.Pos1), zap.Int("pos2", seed.Pos2), zap.Int("len", seed.Len))
	return a.Extend(ctx, seq1, seq2, seed.Pos1+seed.Len/2, seed.Pos2+seed.Len/2)
}
