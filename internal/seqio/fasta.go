package seqio

import (
	"fmt"
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
)

// record is one FASTA/FASTQ record copied out of the reader's buffers.
type record struct {
	name string
	seq  []byte
}

func openFastx(path string) (*fastx.Reader, error) {
	r, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, fmt.Errorf("seqio: open %s: %w", path, err)
	}
	return r, nil
}

// readRecord returns the next record of r. The reader reuses its record
// between calls, so name and sequence are copied.
func readRecord(r *fastx.Reader, path string) (record, error) {
	rec, err := r.Read()
	if err == io.EOF {
		return record{}, io.EOF
	}
	if err != nil {
		return record{}, fmt.Errorf("seqio: read %s: %w", path, err)
	}
	return record{
		name: string(rec.ID),
		seq:  append([]byte(nil), rec.Seq.Seq...),
	}, nil
}

// fastaSource pairs consecutive records of one file.
type fastaSource struct {
	path string
	r    *fastx.Reader
}

// NewFastaSource reads FASTA or FASTQ (optionally gzipped) from path and
// pairs records 1 and 2, 3 and 4, and so on.
func NewFastaSource(path string) (Source, error) {
	r, err := openFastx(path)
	if err != nil {
		return nil, err
	}
	return &fastaSource{path: path, r: r}, nil
}

func (s *fastaSource) Next() (Pair, error) {
	a, err := readRecord(s.r, s.path)
	if err != nil {
		return Pair{}, err
	}
	b, err := readRecord(s.r, s.path)
	if err == io.EOF {
		return Pair{}, fmt.Errorf("%w: %s in %s", ErrUnpaired, a.name, s.path)
	}
	if err != nil {
		return Pair{}, err
	}
	return Pair{Name1: a.name, Seq1: a.seq, Name2: b.name, Seq2: b.seq}, nil
}

func (s *fastaSource) Close() error {
	s.r.Close()
	return nil
}

// fastaPairSource zips two files record by record.
type fastaPairSource struct {
	path1, path2 string
	r1, r2       *fastx.Reader
}

// NewFastaPairSource pairs record n of path1 with record n of path2.
// The files must hold the same number of records.
func NewFastaPairSource(path1, path2 string) (Source, error) {
	r1, err := openFastx(path1)
	if err != nil {
		return nil, err
	}
	r2, err := openFastx(path2)
	if err != nil {
		r1.Close()
		return nil, err
	}
	return &fastaPairSource{path1: path1, path2: path2, r1: r1, r2: r2}, nil
}

func (s *fastaPairSource) Next() (Pair, error) {
	a, err1 := readRecord(s.r1, s.path1)
	b, err2 := readRecord(s.r2, s.path2)
	switch {
	case err1 == io.EOF && err2 == io.EOF:
		return Pair{}, io.EOF
	case err1 != nil && err1 != io.EOF:
		return Pair{}, err1
	case err2 != nil && err2 != io.EOF:
		return Pair{}, err2
	case err1 == io.EOF:
		return Pair{}, fmt.Errorf("%w: %s in %s", ErrUnpaired, b.name, s.path2)
	case err2 == io.EOF:
		return Pair{}, fmt.Errorf("%w: %s in %s", ErrUnpaired, a.name, s.path1)
	}
	return Pair{Name1: a.name, Seq1: a.seq, Name2: b.name, Seq2: b.seq}, nil
}

func (s *fastaPairSource) Close() error {
	s.r1.Close()
	s.r2.Close()
	return nil
}
