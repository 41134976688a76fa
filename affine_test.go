package greedy

import (
	"context"
	"math/rand"
	"testing"
)

func TestAffineGreedyAlign_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		seq1, seq2 string
		p          Params
		end1, end2 int
		score      int
		cigar      string
	}{
		{
			name: "identical",
			seq1: "AAAA", seq2: "AAAA",
			p:    Params{Scoring: megablast, XDrop: 10},
			end1: 4, end2: 4, score: 4, cigar: "4=",
		},
		{
			name: "single deletion global",
			seq1: "AAAATAAAA", seq2: "AAAAAAAA",
			p:    Params{Scoring: megablast, XDrop: 20, Global: true},
			end1: 9, end2: 8, score: -2, cigar: "4=1D4=",
		},
		{
			name: "one long gap global",
			seq1: "AAAAGGCCCC", seq2: "AAAACCCC",
			p:    Params{Scoring: DefaultScoring, XDrop: 20, Global: true},
			end1: 10, end2: 8, score: -1, cigar: "4=2D4=",
		},
		{
			name: "gap opening too dear in extension",
			seq1: "AAAAAAAAGGCCCCCCCCCC", seq2: "AAAAAAAACCCCCCCCCC",
			p:    Params{Scoring: DefaultScoring, XDrop: 20},
			end1: 18, end2: 18, score: 12, cigar: "8=2X8=",
		},
		{
			name: "long gap global",
			seq1: "AAAAAAAAGGCCCCCCCCCC", seq2: "AAAAAAAACCCCCCCCCC",
			p:    Params{Scoring: DefaultScoring, XDrop: 20, Global: true},
			end1: 20, end2: 18, score: 9, cigar: "8=2D10=",
		},
		{
			name: "zero X-drop",
			seq1: "ACGT", seq2: "TGCA",
			p:    Params{Scoring: DefaultScoring, XDrop: 0},
			end1: 0, end2: 0, score: 0, cigar: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AffineGreedyAlign(context.Background(), []byte(tt.seq1), []byte(tt.seq2), false, tt.p, nil)
			if err != nil {
				t.Fatalf("AffineGreedyAlign() error: %v", err)
			}
			if got.End1 != tt.end1 || got.End2 != tt.end2 {
				t.Errorf("end = (%d, %d), want (%d, %d)", got.End1, got.End2, tt.end1, tt.end2)
			}
			if got.Score != tt.score {
				t.Errorf("Score = %d, want %d", got.Score, tt.score)
			}
			if s := got.Script.String(); s != tt.cigar {
				t.Errorf("Script = %q, want %q", s, tt.cigar)
			}
		})
	}
}

func TestAffineGreedyAlign_GlobalMatchesOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, s := range []Scoring{
		DefaultScoring,
		megablast,
		{Match: 2, Mismatch: -3, GapOpen: -4, GapExtend: -1},
		{Match: 1, Mismatch: -1, GapOpen: 0, GapExtend: -1},
	} {
		p := Params{Scoring: s, XDrop: 10000, Global: true}
		for n := 0; n < 200; n++ {
			seq1, seq2 := randomPair(rng, 30)
			got, err := AffineGreedyAlign(context.Background(), seq1, seq2, false, p, nil)
			if err != nil {
				t.Fatalf("AffineGreedyAlign(%s, %s) error: %v", seq1, seq2, err)
			}
			if want := optimalScore(seq1, seq2, s, true); got.Score != want {
				t.Fatalf("AffineGreedyAlign(%s, %s) score = %d, want %d (%s)", seq1, seq2, got.Score, want, got.Script)
			}
			checkAlignment(t, seq1, seq2, got, s, true)
		}
	}
}

func TestAffineGreedyAlign_ScoreMatchesScript(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	p := Params{Scoring: DefaultScoring, XDrop: 10000}
	for n := 0; n < 300; n++ {
		seq1, seq2 := randomPair(rng, 50)
		got, err := AffineGreedyAlign(context.Background(), seq1, seq2, false, p, nil)
		if err != nil {
			t.Fatalf("AffineGreedyAlign() error: %v", err)
		}
		checkAlignment(t, seq1, seq2, got, p.Scoring, true)
	}
}

func TestAffineGreedyAlign_UsesPool(t *testing.T) {
	pool := NewDiagonalPool(WithChunkSize(8))
	wm := NewWorkingMemory(WithPool(pool))
	p := Params{Scoring: DefaultScoring, XDrop: 50}

	if _, err := AffineGreedyAlign(context.Background(), []byte("ACGTTGCAACGTAGGT"), []byte("ACGTGCAACGTTAGT"), false, p, wm); err != nil {
		t.Fatalf("AffineGreedyAlign() error: %v", err)
	}
	if pool.Allocated() == 0 {
		t.Errorf("pool handed out no states")
	}
	if pool.Allocated() != wm.Cells() {
		t.Errorf("pool Allocated() = %d, working memory Cells() = %d", pool.Allocated(), wm.Cells())
	}
}

func TestAffineGreedyAlign_PoolLimit(t *testing.T) {
	wm := NewWorkingMemory(WithPool(NewDiagonalPool(WithPoolLimit(2))))
	_, err := AffineGreedyAlign(context.Background(), []byte("ACGTACGTAC"), []byte("TTTTACGTAC"), false,
		Params{Scoring: DefaultScoring, XDrop: 100}, wm)
	if err == nil {
		t.Fatalf("AffineGreedyAlign() succeeded past the pool limit")
	}
}
