package greedy

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestShiftGaps(t *testing.T) {
	tests := []struct {
		name       string
		seq1, seq2 string
		cigar      string
		want       string
	}{
		{
			name: "deletion in a homopolymer",
			seq1: "ACGTTTA", seq2: "ACGTTA",
			cigar: "5=1D1=", want: "3=1D3=",
		},
		{
			name: "insertion in a homopolymer",
			seq1: "CAAG", seq2: "CAAAG",
			cigar: "3=1I1=", want: "1=1I3=",
		},
		{
			name: "dinucleotide repeat to the start",
			seq1: "ACACACG", seq2: "ACACG",
			cigar: "4=2D1=", want: "2D5=",
		},
		{
			name: "already leftmost",
			seq1: "ACGTTTA", seq2: "ACGTTA",
			cigar: "3=1D3=", want: "3=1D3=",
		},
		{
			name: "gap after a mismatch stays",
			seq1: "ATT", seq2: "GT",
			cigar: "1X1D1=", want: "1X1D1=",
		},
		{
			name: "gaps of the same kind merge",
			seq1: "GAAAC", seq2: "GAC",
			cigar: "1=1D1=1D1=", want: "1=2D2=",
		},
		{
			name: "opposite gaps stay apart",
			seq1: "GAC", seq2: "GTC",
			cigar: "1=1D1I1=", want: "1=1D1I1=",
		},
		{
			name: "prefix of the sequences",
			seq1: "ACGTTTAGG", seq2: "ACGTTACC",
			cigar: "5=1D1=", want: "3=1D3=",
		},
		{name: "empty", seq1: "ACGT", seq2: "ACGT", cigar: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := mustScript(t, tt.cigar)
			before := es.String()
			got, err := ShiftGaps([]byte(tt.seq1), []byte(tt.seq2), es)
			if err != nil {
				t.Fatalf("ShiftGaps() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ShiftGaps(%s) = %s, want %s", tt.cigar, got, tt.want)
			}
			if es.String() != before {
				t.Errorf("input script changed to %s", es)
			}
		})
	}
}

func TestShiftGaps_ScriptTooLong(t *testing.T) {
	_, err := ShiftGaps([]byte("ACG"), []byte("ACG"), mustScript(t, "3=1D"))
	if !errors.Is(err, ErrScriptLength) {
		t.Errorf("ShiftGaps() error = %v, want %v", err, ErrScriptLength)
	}
}

func TestShiftGaps_Scores(t *testing.T) {
	seq1, seq2 := []byte("GAAAC"), []byte("GAC")
	es := mustScript(t, "1=1D1=1D1=")
	got, err := ShiftGaps(seq1, seq2, es)
	if err != nil {
		t.Fatal(err)
	}

	linBefore, _ := Rescore(seq1, seq2, es, DefaultScoring, false)
	linAfter, err := Rescore(seq1, seq2, got, DefaultScoring, false)
	if err != nil {
		t.Fatalf("Rescore(%s) error: %v", got, err)
	}
	if linAfter != linBefore {
		t.Errorf("linear score %d, was %d", linAfter, linBefore)
	}

	affBefore, _ := Rescore(seq1, seq2, es, DefaultScoring, true)
	affAfter, _ := Rescore(seq1, seq2, got, DefaultScoring, true)
	if want := affBefore - DefaultScoring.GapOpen; affAfter != want {
		t.Errorf("affine score %d, want %d (one gap opening fewer)", affAfter, want)
	}
}

func TestAlignment_ShiftGaps(t *testing.T) {
	seq1, seq2 := []byte("ACGTTTA"), []byte("ACGTTA")

	t.Run("forward", func(t *testing.T) {
		a := &Alignment{End1: 7, End2: 6, Score: 1, Script: mustScript(t, "5=1D1=")}
		got, err := a.ShiftGaps(seq1, seq2)
		if err != nil {
			t.Fatal(err)
		}
		if got.Script.String() != "3=1D3=" || got.Score != a.Score || got.End1 != 7 {
			t.Errorf("ShiftGaps() = %+v, script %s", got, got.Script)
		}
		if a.Script.String() != "5=1D1=" {
			t.Errorf("receiver script changed to %s", a.Script)
		}
	})

	t.Run("reverse", func(t *testing.T) {
		// walked back to front: ATTTGCA against ATTGCA
		a := &Alignment{End1: 7, End2: 6, Script: mustScript(t, "1=1D5="), Reverse: true}
		got, err := a.ShiftGaps(seq1, seq2)
		if err != nil {
			t.Fatal(err)
		}
		row1, row2, err := got.Aligned(seq1, seq2)
		if err != nil {
			t.Fatal(err)
		}
		if string(row1) != "ACGTTTA" || string(row2) != "ACG-TTA" {
			t.Errorf("rows = %s / %s, want ACGTTTA / ACG-TTA", row1, row2)
		}
	})

	t.Run("reverse too long", func(t *testing.T) {
		a := &Alignment{End1: 8, End2: 6, Script: mustScript(t, "2=1D5="), Reverse: true}
		if _, err := a.ShiftGaps(seq1, seq2); !errors.Is(err, ErrScriptLength) {
			t.Errorf("ShiftGaps() error = %v, want %v", err, ErrScriptLength)
		}
	})
}

func TestShiftGaps_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := Params{Scoring: DefaultScoring, XDrop: 50, Global: true}
	for n := 0; n < 200; n++ {
		seq1, seq2 := randomPair(rng, 60)
		a, err := GreedyAlign(context.Background(), seq1, seq2, false, p, nil)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ShiftGaps(seq1, seq2, a.Script)
		if err != nil {
			t.Fatal(err)
		}

		// match labels stay truthful and the linear score is kept
		score, err := Rescore(seq1, seq2, got, p.Scoring, false)
		if err != nil {
			t.Fatalf("Rescore(%s) for %s / %s error: %v", got, seq1, seq2, err)
		}
		if score != a.Score {
			t.Fatalf("shifted %s scores %d, was %s scoring %d", got, score, a.Script, a.Score)
		}

		again, err := ShiftGaps(seq1, seq2, got)
		if err != nil {
			t.Fatal(err)
		}
		if !again.Equal(got) {
			t.Fatalf("second shift %s differs from %s", again, got)
		}
	}
}
