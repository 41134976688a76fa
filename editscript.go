package greedy

import (
	"strconv"
	"strings"
)

// OpKind identifies the type of an edit operation.
type OpKind uint32

const (
	// OpMatch means the residues at both positions are identical.
	OpMatch OpKind = iota
	// OpMismatch means one residue of seq1 is aligned to a different residue of seq2.
	OpMismatch
	// OpDelete consumes a residue of seq1 only (a gap in seq2).
	OpDelete
	// OpInsert consumes a residue of seq2 only (a gap in seq1).
	OpInsert
)

// String returns a string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "Match"
	case OpMismatch:
		return "Mismatch"
	case OpDelete:
		return "Delete"
	case OpInsert:
		return "Insert"
	default:
		return "Unknown"
	}
}

// cigarByte is the single-letter code used by EditScript.String.
func (k OpKind) cigarByte() byte {
	switch k {
	case OpMatch:
		return '='
	case OpMismatch:
		return 'X'
	case OpDelete:
		return 'D'
	default:
		return 'I'
	}
}

// consumes reports how many residues of seq1 and seq2 one step of k uses.
func (k OpKind) consumes() (int, int) {
	switch k {
	case OpDelete:
		return 1, 0
	case OpInsert:
		return 0, 1
	default:
		return 1, 1
	}
}

const (
	opKindBits = 2
	opKindMask = 1<<opKindBits - 1

	// MaxRun is the longest run a single EditOp can hold.
	MaxRun = 1<<(32-opKindBits) - 1
)

// EditOp is a run of identical operations packed into 32 bits: the kind in
// the low two bits and the run length above them.
type EditOp uint32

// NewEditOp packs kind and run length n. n must be in [0, MaxRun].
func NewEditOp(kind OpKind, n int) EditOp {
	return EditOp(uint32(n)<<opKindBits | uint32(kind)&opKindMask)
}

// Kind returns the operation kind.
func (op EditOp) Kind() OpKind { return OpKind(op & opKindMask) }

// Len returns the run length.
func (op EditOp) Len() int { return int(op >> opKindBits) }

// String returns the run in CIGAR notation, e.g. "12=".
func (op EditOp) String() string {
	return strconv.Itoa(op.Len()) + string(op.Kind().cigarByte())
}

// EditScript is an ordered, run-length compressed list of edit operations.
// The zero value is an empty script ready to use.
type EditScript struct {
	ops []EditOp
}

// NewEditScript returns an empty script.
func NewEditScript() *EditScript {
	return &EditScript{}
}

// Append adds n operations of the given kind, extending the last record
// when it has the same kind. Non-positive n is ignored.
func (es *EditScript) Append(kind OpKind, n int) {
	for n > 0 {
		if last := len(es.ops) - 1; last >= 0 && es.ops[last].Kind() == kind {
			room := MaxRun - es.ops[last].Len()
			if room > 0 {
				add := min(room, n)
				es.ops[last] = NewEditOp(kind, es.ops[last].Len()+add)
				n -= add
				continue
			}
		}
		add := min(MaxRun, n)
		es.ops = append(es.ops, NewEditOp(kind, add))
		n -= add
	}
}

// Concat moves the records of other onto the end of es, merging the runs
// at the junction when their kinds agree. other is left empty. It returns es.
func (es *EditScript) Concat(other *EditScript) *EditScript {
	if other == nil || other == es || len(other.ops) == 0 {
		return es
	}
	if len(es.ops) == 0 {
		es.ops, other.ops = other.ops, nil
		return es
	}
	first := other.ops[0]
	es.Append(first.Kind(), first.Len())
	es.ops = append(es.ops, other.ops[1:]...)
	other.ops = nil
	return es
}

// Free releases the backing storage.
func (es *EditScript) Free() {
	es.ops = nil
}

// Len returns the number of records.
func (es *EditScript) Len() int { return len(es.ops) }

// At returns record i.
func (es *EditScript) At(i int) EditOp { return es.ops[i] }

// Ops returns a copy of the records.
func (es *EditScript) Ops() []EditOp {
	if len(es.ops) == 0 {
		return nil
	}
	out := make([]EditOp, len(es.ops))
	copy(out, es.ops)
	return out
}

// Reverse reverses the order of the records in place.
func (es *EditScript) Reverse() {
	s := es.ops
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Consumed returns the number of seq1 and seq2 residues the script covers.
func (es *EditScript) Consumed() (n1, n2 int) {
	for _, op := range es.ops {
		c1, c2 := op.Kind().consumes()
		n1 += c1 * op.Len()
		n2 += c2 * op.Len()
	}
	return n1, n2
}

// Equal reports whether both scripts hold the same records.
func (es *EditScript) Equal(other *EditScript) bool {
	if len(es.ops) != len(other.ops) {
		return false
	}
	for i := range es.ops {
		if es.ops[i] != other.ops[i] {
			return false
		}
	}
	return true
}

// String renders the script as an extended CIGAR string, treating seq1 as
// the reference: '=' match, 'X' mismatch, 'D' residue only in seq1, 'I'
// residue only in seq2.
func (es *EditScript) String() string {
	var b strings.Builder
	for _, op := range es.ops {
		b.WriteString(op.String())
	}
	return b.String()
}

// clone returns an independent copy.
func (es *EditScript) clone() *EditScript {
	return &EditScript{ops: es.Ops()}
}
