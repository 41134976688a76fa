// Comparison tool for validating greedy alignments against other aligners
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	godiff "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/shenwei356/wfa"

	greedy "github.com/ncbi/ncbi-cxx-toolkit-public-sub127"
)

// penalties shared by both affine aligners; the greedy scores are their
// negation with a match scoring 0.
var penalties = wfa.Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}

func main() {
	seed := flag.Int64("seed", 1, "random seed")
	rounds := flag.Int("n", 20, "pairs per test case")
	flag.Parse()

	testCases := []struct {
		name       string
		length     int
		divergence float64
	}{
		{name: "Short, nearly identical", length: 100, divergence: 0.01},
		{name: "Short, divergent", length: 100, divergence: 0.10},
		{name: "Read length", length: 1000, divergence: 0.05},
		{name: "Long, nearly identical", length: 10000, divergence: 0.01},
		{name: "Long, divergent", length: 2000, divergence: 0.15},
	}

	rng := rand.New(rand.NewSource(*seed))
	ctx := context.Background()

	affine := greedy.NewAligner(
		greedy.WithScoring(greedy.Scoring{
			Match:     0,
			Mismatch:  -int(penalties.Mismatch),
			GapOpen:   -int(penalties.GapOpen),
			GapExtend: -int(penalties.GapExt),
		}),
		greedy.WithXDrop(1<<20),
		greedy.WithGlobal(true),
	)
	unit := greedy.NewAligner(
		greedy.WithScoring(greedy.Scoring{Match: 0, Mismatch: -1, GapExtend: -1}),
		greedy.WithXDrop(1<<20),
		greedy.WithGlobal(true),
		greedy.WithAffine(false),
	)
	algn := wfa.New(&penalties, &wfa.Options{GlobalAlignment: true})
	defer wfa.RecycleAligner(algn)
	dmp := godiff.New()

	failed := false
	for _, tc := range testCases {
		fmt.Printf("\n=== %s ===\n", tc.name)
		fmt.Printf("Length: %d, divergence: %.0f%%, pairs: %d\n", tc.length, tc.divergence*100, *rounds)

		var st stats
		for r := 0; r < *rounds; r++ {
			a := randomSeq(rng, tc.length)
			b := mutate(rng, a, tc.divergence)
			if len(a) > len(b) {
				a, b = b, a
			}
			if err := st.add(ctx, affine, unit, algn, dmp, a, b); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Printf("\ngreedy:  %v\n", st.greedyTime)
		fmt.Printf("wfa:     %v\n", st.wfaTime)
		fmt.Printf("  Score disagreements: %d (greedy worse: %d)\n", st.scoreDiffs, st.worse)
		fmt.Printf("\ngreedy (unit cost): %v\n", st.unitTime)
		fmt.Printf("go-diff:            %v\n", st.diffTime)
		fmt.Printf("  Mean edit distance: greedy %.1f, go-diff Levenshtein %.1f\n",
			float64(st.unitDist)/float64(*rounds), float64(st.levenshtein)/float64(*rounds))
		fmt.Printf("  Greedy above Levenshtein: %d\n", st.aboveBound)
		if st.worse > 0 || st.aboveBound > 0 {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

type stats struct {
	greedyTime, wfaTime   time.Duration
	unitTime, diffTime    time.Duration
	scoreDiffs, worse     int
	unitDist, levenshtein int
	aboveBound            int
}

func (s *stats) add(ctx context.Context, affine, unit *greedy.Aligner, algn *wfa.Aligner, dmp *godiff.DiffMatchPatch, a, b []byte) error {
	start := time.Now()
	g, err := affine.Align(ctx, a, b)
	if err != nil {
		return err
	}
	s.greedyTime += time.Since(start)

	start = time.Now()
	w, err := algn.Align(a, b)
	if err != nil {
		return err
	}
	s.wfaTime += time.Since(start)
	if -g.Score != int(w.Score) {
		s.scoreDiffs++
		if -g.Score > int(w.Score) {
			s.worse++
		}
		fmt.Printf("  score %d (%s) vs wfa %d (%s)\n", -g.Score, g.Script, w.Score, w.CIGAR(false))
	}
	wfa.RecycleAlignmentResult(w)

	start = time.Now()
	u, err := unit.Align(ctx, a, b)
	if err != nil {
		return err
	}
	s.unitTime += time.Since(start)

	start = time.Now()
	diffs := dmp.DiffMain(string(a), string(b), false)
	lev := dmp.DiffLevenshtein(diffs)
	s.diffTime += time.Since(start)

	s.unitDist += -u.Score
	s.levenshtein += lev
	if -u.Score > lev {
		s.aboveBound++
	}
	return nil
}

func randomSeq(rng *rand.Rand, n int) []byte {
	const nt = "ACGT"
	s := make([]byte, n)
	for i := range s {
		s[i] = nt[rng.Intn(len(nt))]
	}
	return s
}

// mutate copies s with substitutions, insertions and deletions at the given
// overall rate.
func mutate(rng *rand.Rand, s []byte, rate float64) []byte {
	const nt = "ACGT"
	out := make([]byte, 0, len(s)+len(s)/10)
	for _, c := range s {
		if rng.Float64() >= rate {
			out = append(out, c)
			continue
		}
		switch rng.Intn(3) {
		case 0:
			out = append(out, nt[rng.Intn(len(nt))])
		case 1:
			// deletion
		case 2:
			out = append(out, c, nt[rng.Intn(len(nt))])
		}
	}
	if len(out) == 0 {
		out = append(out, s[0])
	}
	return out
}
