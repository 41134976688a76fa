package greedy

import "fmt"

// DefaultGap is the gap character Format inserts.
const DefaultGap = '-'

// formatOptions holds configuration for Format.
type formatOptions struct {
	gap     byte
	decoder *Alphabet
}

// FormatOption configures Format.
type FormatOption func(*formatOptions)

// WithGap sets the byte written opposite a residue missing from the other
// sequence. Default: '-'.
func WithGap(gap byte) FormatOption {
	return func(o *formatOptions) {
		o.gap = gap
	}
}

// WithDecoder turns residue codes into letters of a while formatting.
// Default: codes are copied through unchanged.
func WithDecoder(a *Alphabet) FormatOption {
	return func(o *formatOptions) {
		o.decoder = a
	}
}

// Format lays seq1 and seq2 out in two rows of equal length following es:
// residues are copied at match and mismatch columns and a gap is written
// opposite each deleted or inserted residue. es must consume exactly all
// of seq1 and seq2.
func Format(seq1, seq2 []byte, es *EditScript, opts ...FormatOption) (row1, row2 []byte, err error) {
	o := &formatOptions{gap: DefaultGap}
	for _, opt := range opts {
		opt(o)
	}

	n1, n2 := es.Consumed()
	if n1 != len(seq1) || n2 != len(seq2) {
		return nil, nil, fmt.Errorf("%w: script covers (%d, %d), sequences are (%d, %d)",
			ErrScriptLength, n1, n2, len(seq1), len(seq2))
	}

	cols := 0
	for _, op := range es.ops {
		cols += op.Len()
	}
	row1 = make([]byte, 0, cols)
	row2 = make([]byte, 0, cols)
	residue := func(b byte) byte {
		if o.decoder != nil {
			return o.decoder.letter(b)
		}
		return b
	}

	i, j := 0, 0
	for _, op := range es.ops {
		for x := op.Len(); x > 0; x-- {
			switch op.Kind() {
			case OpMatch, OpMismatch:
				row1 = append(row1, residue(seq1[i]))
				row2 = append(row2, residue(seq2[j]))
				i++
				j++
			case OpDelete:
				row1 = append(row1, residue(seq1[i]))
				row2 = append(row2, o.gap)
				i++
			case OpInsert:
				row1 = append(row1, o.gap)
				row2 = append(row2, residue(seq2[j]))
				j++
			}
		}
	}
	return row1, row2, nil
}

// Midline marks identical columns of two formatted rows with '|', other
// columns with a space.
func Midline(row1, row2 []byte) []byte {
	n := min(len(row1), len(row2))
	mid := make([]byte, n)
	for x := 0; x < n; x++ {
		if row1[x] == row2[x] {
			mid[x] = '|'
		} else {
			mid[x] = ' '
		}
	}
	return mid
}

// Segment is one record of an edit script as index ranges.
type Segment struct {
	Kind   OpKind
	Start1 int // start index in seq1 (inclusive)
	End1   int // end index in seq1 (exclusive)
	Start2 int // start index in seq2 (inclusive)
	End2   int // end index in seq2 (exclusive)
}

// Segments converts es into index ranges over the walked sequences.
func Segments(es *EditScript) []Segment {
	if es.Len() == 0 {
		return nil
	}
	segs := make([]Segment, 0, es.Len())
	i, j := 0, 0
	for _, op := range es.ops {
		c1, c2 := op.Kind().consumes()
		n := op.Len()
		segs = append(segs, Segment{
			Kind:   op.Kind(),
			Start1: i,
			End1:   i + c1*n,
			Start2: j,
			End2:   j + c2*n,
		})
		i += c1 * n
		j += c2 * n
	}
	return segs
}

// Walked returns the residues of seq1 and seq2 the alignment covers, in
// the order they were walked. For a reverse alignment these are reversed
// copies of the sequence tails.
func (a *Alignment) Walked(seq1, seq2 []byte) (w1, w2 []byte) {
	return walked(seq1, a.End1, a.Reverse), walked(seq2, a.End2, a.Reverse)
}

func walked(seq []byte, n int, reverse bool) []byte {
	n = min(n, len(seq))
	if !reverse {
		return seq[:n]
	}
	out := make([]byte, n)
	for x := 0; x < n; x++ {
		out[x] = seq[len(seq)-1-x]
	}
	return out
}

// Aligned formats the alignment of seq1 and seq2, the sequences a was
// computed from. Rows read left to right in sequence order even when the
// alignment was walked in reverse.
func (a *Alignment) Aligned(seq1, seq2 []byte, opts ...FormatOption) (row1, row2 []byte, err error) {
	w1, w2 := a.Walked(seq1, seq2)
	row1, row2, err = Format(w1, w2, a.Script, opts...)
	if err != nil {
		return nil, nil, err
	}
	if a.Reverse {
		reverseBytes(row1)
		reverseBytes(row2)
	}
	return row1, row2, nil
}

// Rescore replays the alignment's script over seq1 and seq2. See Rescore.
func (a *Alignment) Rescore(seq1, seq2 []byte, s Scoring, affine bool) (int, error) {
	w1, w2 := a.Walked(seq1, seq2)
	return Rescore(w1, w2, a.Script, s, affine)
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
