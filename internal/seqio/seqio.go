// Package seqio reads the sequence pairs the aligner works on.
package seqio

import (
	"errors"
	"io"
)

// ErrUnpaired is returned when an input ends with a sequence that has no
// partner.
var ErrUnpaired = errors.New("seqio: unpaired sequence")

// Pair is two sequences to align.
type Pair struct {
	Name1 string
	Seq1  []byte
	Name2 string
	Seq2  []byte
}

// Source yields pairs until it returns io.EOF.
type Source interface {
	Next() (Pair, error)
	Close() error
}

// Each calls fn for every pair of src, stopping at the first error.
func Each(src Source, fn func(Pair) error) error {
	for {
		p, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
}
