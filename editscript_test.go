package greedy

import (
	"reflect"
	"testing"
)

func TestEditOp_Pack(t *testing.T) {
	tests := []struct {
		kind OpKind
		n    int
		want string
	}{
		{OpMatch, 12, "12="},
		{OpMismatch, 1, "1X"},
		{OpDelete, 0, "0D"},
		{OpInsert, MaxRun, "1073741823I"},
	}

	for _, tt := range tests {
		op := NewEditOp(tt.kind, tt.n)
		if op.Kind() != tt.kind || op.Len() != tt.n {
			t.Errorf("NewEditOp(%v, %d) unpacks to (%v, %d)", tt.kind, tt.n, op.Kind(), op.Len())
		}
		if got := op.String(); got != tt.want {
			t.Errorf("EditOp.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestOpKind_String(t *testing.T) {
	tests := []struct {
		kind OpKind
		want string
	}{
		{OpMatch, "Match"},
		{OpMismatch, "Mismatch"},
		{OpDelete, "Delete"},
		{OpInsert, "Insert"},
		{OpKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OpKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEditScript_Append(t *testing.T) {
	tests := []struct {
		name string
		ops  []EditOp // each appended as (Kind, Len)
		want []EditOp
	}{
		{
			name: "empty",
			ops:  nil,
			want: nil,
		},
		{
			name: "coalesce same kind",
			ops:  []EditOp{NewEditOp(OpMatch, 3), NewEditOp(OpMatch, 2)},
			want: []EditOp{NewEditOp(OpMatch, 5)},
		},
		{
			name: "different kinds",
			ops:  []EditOp{NewEditOp(OpMatch, 3), NewEditOp(OpDelete, 1), NewEditOp(OpMatch, 2)},
			want: []EditOp{NewEditOp(OpMatch, 3), NewEditOp(OpDelete, 1), NewEditOp(OpMatch, 2)},
		},
		{
			name: "zero length ignored",
			ops:  []EditOp{NewEditOp(OpMatch, 3), NewEditOp(OpInsert, 0), NewEditOp(OpMatch, 1)},
			want: []EditOp{NewEditOp(OpMatch, 4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := NewEditScript()
			for _, op := range tt.ops {
				es.Append(op.Kind(), op.Len())
			}
			if got := es.Ops(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ops() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditScript_AppendNegative(t *testing.T) {
	es := NewEditScript()
	es.Append(OpMatch, -4)
	if es.Len() != 0 {
		t.Errorf("Len() = %d after negative append, want 0", es.Len())
	}
}

func TestEditScript_AppendSplitsLongRuns(t *testing.T) {
	es := NewEditScript()
	es.Append(OpMatch, MaxRun-1)
	es.Append(OpMatch, 5)

	want := []EditOp{NewEditOp(OpMatch, MaxRun), NewEditOp(OpMatch, 4)}
	if got := es.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ops() = %v, want %v", got, want)
	}
	if n1, n2 := es.Consumed(); n1 != MaxRun+4 || n2 != MaxRun+4 {
		t.Errorf("Consumed() = (%d, %d), want (%d, %d)", n1, n2, MaxRun+4, MaxRun+4)
	}
}

func TestEditScript_Concat(t *testing.T) {
	tests := []struct {
		name string
		a, b []EditOp
		want []EditOp
	}{
		{
			name: "merge at junction",
			a:    []EditOp{NewEditOp(OpMatch, 2), NewEditOp(OpDelete, 1)},
			b:    []EditOp{NewEditOp(OpDelete, 2), NewEditOp(OpMatch, 3)},
			want: []EditOp{NewEditOp(OpMatch, 2), NewEditOp(OpDelete, 3), NewEditOp(OpMatch, 3)},
		},
		{
			name: "no merge",
			a:    []EditOp{NewEditOp(OpMatch, 2)},
			b:    []EditOp{NewEditOp(OpInsert, 1)},
			want: []EditOp{NewEditOp(OpMatch, 2), NewEditOp(OpInsert, 1)},
		},
		{
			name: "empty receiver",
			a:    nil,
			b:    []EditOp{NewEditOp(OpMismatch, 1)},
			want: []EditOp{NewEditOp(OpMismatch, 1)},
		},
		{
			name: "empty argument",
			a:    []EditOp{NewEditOp(OpMatch, 7)},
			b:    nil,
			want: []EditOp{NewEditOp(OpMatch, 7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := scriptOf(tt.a...), scriptOf(tt.b...)
			if got := a.Concat(b); got != a {
				t.Fatalf("Concat() returned a different script")
			}
			if got := a.Ops(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ops() = %v, want %v", got, tt.want)
			}
			if b.Len() != 0 {
				t.Errorf("argument has %d records after Concat, want 0", b.Len())
			}
		})
	}
}

func TestEditScript_Reverse(t *testing.T) {
	es := scriptOf(NewEditOp(OpMatch, 1), NewEditOp(OpDelete, 2), NewEditOp(OpInsert, 3))
	es.Reverse()

	want := []EditOp{NewEditOp(OpInsert, 3), NewEditOp(OpDelete, 2), NewEditOp(OpMatch, 1)}
	if got := es.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ops() = %v, want %v", got, want)
	}
}

func TestEditScript_Consumed(t *testing.T) {
	es := scriptOf(
		NewEditOp(OpMatch, 4),
		NewEditOp(OpMismatch, 1),
		NewEditOp(OpDelete, 2),
		NewEditOp(OpInsert, 3),
	)
	if n1, n2 := es.Consumed(); n1 != 7 || n2 != 8 {
		t.Errorf("Consumed() = (%d, %d), want (7, 8)", n1, n2)
	}
}

func TestEditScript_String(t *testing.T) {
	es := scriptOf(NewEditOp(OpMatch, 4), NewEditOp(OpDelete, 1), NewEditOp(OpMatch, 4))
	if got, want := es.String(), "4=1D4="; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := NewEditScript().String(); got != "" {
		t.Errorf("empty String() = %q, want \"\"", got)
	}
}

func TestEditScript_OpsIsCopy(t *testing.T) {
	es := scriptOf(NewEditOp(OpMatch, 4))
	ops := es.Ops()
	ops[0] = NewEditOp(OpInsert, 1)
	if es.At(0) != NewEditOp(OpMatch, 4) {
		t.Errorf("modifying Ops() result changed the script")
	}
}

func TestEditScript_Free(t *testing.T) {
	es := scriptOf(NewEditOp(OpMatch, 4))
	es.Free()
	if es.Len() != 0 {
		t.Errorf("Len() = %d after Free, want 0", es.Len())
	}
	es.Append(OpMatch, 2)
	if es.String() != "2=" {
		t.Errorf("script unusable after Free: %q", es.String())
	}
}

func TestEditScript_ZeroValue(t *testing.T) {
	var es EditScript
	es.Append(OpInsert, 2)
	if got := es.String(); got != "2I" {
		t.Errorf("String() = %q, want \"2I\"", got)
	}
}

// scriptOf builds a script from records.
func scriptOf(ops ...EditOp) *EditScript {
	es := NewEditScript()
	for _, op := range ops {
		es.Append(op.Kind(), op.Len())
	}
	return es
}

// mustScript builds a script from a CIGAR string like "4=1D4=".
func mustScript(t testing.TB, cigar string) *EditScript {
	t.Helper()
	es := NewEditScript()
	n := 0
	for i := 0; i < len(cigar); i++ {
		c := cigar[i]
		if '0' <= c && c <= '9' {
			n = n*10 + int(c-'0')
			continue
		}
		var kind OpKind
		switch c {
		case '=':
			kind = OpMatch
		case 'X':
			kind = OpMismatch
		case 'D':
			kind = OpDelete
		case 'I':
			kind = OpInsert
		default:
			t.Fatalf("bad CIGAR %q", cigar)
		}
		es.Append(kind, n)
		n = 0
	}
	return es
}
