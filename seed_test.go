package greedy

import (
	"context"
	"errors"
	"testing"
)

func TestFindSeed(t *testing.T) {
	tests := []struct {
		name       string
		seq1, seq2 string
		k, maxOcc  int
		want       Seed
		ok         bool
	}{
		{
			name: "unique core grown to the full match",
			seq1: "CCCCGATTACAGGGG", seq2: "TTTTGATTACATTTT",
			k: 4, want: Seed{Pos1: 4, Pos2: 4, Len: 7}, ok: true,
		},
		{
			name: "rare k-mer with balanced positions wins",
			seq1: "AAAGGGAAACCC", seq2: "AAACCC",
			k: 3, want: Seed{Pos1: 6, Pos2: 0, Len: 6}, ok: true,
		},
		{
			name: "repeat allowed",
			seq1: "ACGACGTTT", seq2: "ACGCCC",
			k: 3, maxOcc: 2, want: Seed{Pos1: 0, Pos2: 0, Len: 3}, ok: true,
		},
		{
			name: "repeat excluded",
			seq1: "ACGACGTTT", seq2: "ACGCCC",
			k: 3, maxOcc: 1,
		},
		{name: "nothing shared", seq1: "AAAA", seq2: "CCCC", k: 2},
		{name: "shorter than k", seq1: "ACG", seq2: "ACGT", k: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := FindSeed([]byte(tt.seq1), []byte(tt.seq2), tt.k, tt.maxOcc)
			if err != nil {
				t.Fatalf("FindSeed() error: %v", err)
			}
			if ok != tt.ok || got != tt.want {
				t.Errorf("FindSeed() = %+v, %v, want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFindSeed_InvalidLength(t *testing.T) {
	if _, _, err := FindSeed([]byte("ACGT"), []byte("ACGT"), 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FindSeed() error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestFindSeed_MatchIsExact(t *testing.T) {
	seq1 := []byte("TTGCATGCCAGTACGGATCAAGT")
	seq2 := []byte("CCAGTACGGATTTA")
	seed, ok, err := FindSeed(seq1, seq2, 5, 0)
	if err != nil || !ok {
		t.Fatalf("FindSeed() = %v, %v", ok, err)
	}
	a := seq1[seed.Pos1 : seed.Pos1+seed.Len]
	b := seq2[seed.Pos2 : seed.Pos2+seed.Len]
	if string(a) != string(b) || seed.Len < 5 {
		t.Errorf("seed %+v covers %s / %s", seed, a, b)
	}
}

func TestAligner_Search(t *testing.T) {
	a := NewAligner()
	sa, err := a.Search(context.Background(), []byte("CCCCGATTACAGGGG"), []byte("TTTTGATTACATTTT"), 4)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if sa.Start1 != 4 || sa.End1 != 11 || sa.Start2 != 4 || sa.End2 != 11 {
		t.Errorf("Search() covers [%d,%d) x [%d,%d), want [4,11) x [4,11)", sa.Start1, sa.End1, sa.Start2, sa.End2)
	}
	if sa.Score != 7 || sa.Script.String() != "7=" {
		t.Errorf("Search() = %d %s, want 7 7=", sa.Score, sa.Script)
	}

	_, err = a.Search(context.Background(), []byte("AAAA"), []byte("CCCC"), 3)
	if !errors.Is(err, ErrNoSeed) {
		t.Errorf("Search() error = %v, want %v", err, ErrNoSeed)
	}
}

func TestAligner_SearchMaxOccurrences(t *testing.T) {
	seq1, seq2 := []byte("ACGACGTTT"), []byte("ACGCCC")
	if _, err := NewAligner(WithMaxOccurrences(1)).Search(context.Background(), seq1, seq2, 3); !errors.Is(err, ErrNoSeed) {
		t.Errorf("Search() error = %v, want %v", err, ErrNoSeed)
	}
	sa, err := NewAligner(WithMaxOccurrences(2)).Search(context.Background(), seq1, seq2, 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if sa.Start1 != 0 || sa.Start2 != 0 || sa.Script.String() != "3=" {
		t.Errorf("Search() = [%d,%d) x [%d,%d) %s", sa.Start1, sa.End1, sa.Start2, sa.End2, sa.Script)
	}
}
