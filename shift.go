package greedy

import "fmt"

// ShiftGaps returns a copy of es with every gap moved as far towards the
// start of seq1 and seq2 as the residues allow. Several placements of a
// gap inside a repeat score the same; shifting picks the leftmost one so
// equivalent alignments print identically.
//
// A gap run slides back one column at a time while the column before it is
// a match and the residue before it in the gapped sequence equals its last
// residue. Match, mismatch and gap residue counts do not change. A gap that
// slides into a gap of the same kind merges with it.
//
// es must describe seq1 and seq2 as walked: it may cover a prefix of them
// but not more.
func ShiftGaps(seq1, seq2 []byte, es *EditScript) (*EditScript, error) {
	n1, n2 := es.Consumed()
	if n1 > len(seq1) || n2 > len(seq2) {
		return nil, fmt.Errorf("%w: script covers (%d, %d), sequences are (%d, %d)",
			ErrScriptLength, n1, n2, len(seq1), len(seq2))
	}

	out := &EditScript{ops: make([]EditOp, 0, len(es.ops))}
	i, j := 0, 0
	for _, op := range es.ops {
		kind, n := op.Kind(), op.Len()
		switch kind {
		case OpDelete, OpInsert:
			seq, end := seq1, i+n
			if kind == OpInsert {
				seq, end = seq2, j+n
			}
			gap, moved := out.shiftGap(kind, seq, end, n)
			out.Append(kind, gap)
			out.Append(OpMatch, moved)
			if kind == OpDelete {
				i += n
			} else {
				j += n
			}
		default:
			out.Append(kind, n)
			i += n
			j += n
		}
	}
	return out, nil
}

// shiftGap slides a gap over seq[end-n:end] back across the tail of es,
// absorbing any gap of the same kind it runs into. It returns the final gap
// length and the number of match columns the caller re-adds after the gap.
func (es *EditScript) shiftGap(kind OpKind, seq []byte, end, n int) (gap, moved int) {
	for {
		if last := len(es.ops) - 1; last >= 0 && es.ops[last].Kind() == kind {
			n += es.ops[last].Len()
			es.ops = es.ops[:last]
		}
		s := es.slideBack(seq, end-n, n)
		if s == 0 {
			return n, moved
		}
		moved += s
		end -= s
	}
}

// slideBack moves a gap over the n residues of seq starting at pos back
// across the trailing match run of es. The columns it passes are removed
// from es and their count is returned.
func (es *EditScript) slideBack(seq []byte, pos, n int) int {
	last := len(es.ops) - 1
	if last < 0 || es.ops[last].Kind() != OpMatch {
		return 0
	}
	run := es.ops[last].Len()
	s := 0
	for s < run && seq[pos-s-1] == seq[pos-s+n-1] {
		s++
	}
	switch {
	case s == run:
		es.ops = es.ops[:last]
	case s > 0:
		es.ops[last] = NewEditOp(OpMatch, run-s)
	}
	return s
}

// ShiftGaps returns a copy of a with its gaps moved towards the start of
// seq1 and seq2, the sequences a was computed from. For a reverse alignment
// the start is the first residue in sequence order, not in walk order.
func (a *Alignment) ShiftGaps(seq1, seq2 []byte) (*Alignment, error) {
	out := *a
	if !a.Reverse {
		es, err := ShiftGaps(seq1, seq2, a.Script)
		if err != nil {
			return nil, err
		}
		out.Script = es
		return &out, nil
	}

	if a.End1 > len(seq1) || a.End2 > len(seq2) {
		return nil, fmt.Errorf("%w: alignment covers (%d, %d), sequences are (%d, %d)",
			ErrScriptLength, a.End1, a.End2, len(seq1), len(seq2))
	}
	fwd := a.Script.clone()
	fwd.Reverse()
	es, err := ShiftGaps(seq1[len(seq1)-a.End1:], seq2[len(seq2)-a.End2:], fwd)
	if err != nil {
		return nil, err
	}
	es.Reverse()
	out.Script = es
	return &out, nil
}
