package seqio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edsrzf/mmap-go"
)

// PairFile reads the line-oriented pair format of the WFA benchmarks:
//
//	>ATTGGAAAATAGGATTGGGG
//	<GATTGGAAAATAGGATGGGG
//
// A '>' line holds seq1 and the following '<' line seq2. Other lines are
// ignored. The file is memory mapped and sequences alias the mapping until
// Close.
type PairFile struct {
	path string
	fp   *os.File
	mm   mmap.MMap
	data []byte
	line int
	n    int
}

// OpenPairFile maps path for reading.
func OpenPairFile(path string) (*PairFile, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	pf := &PairFile{path: path, fp: fp}
	if fi.Size() == 0 {
		// mapping an empty file fails on most systems
		return pf, nil
	}
	if pf.mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		fp.Close()
		return nil, fmt.Errorf("seqio: map %s: %w", path, err)
	}
	pf.data = pf.mm
	return pf, nil
}

// nextLine returns the next line without its line ending, or ok=false at
// the end of the data.
func (pf *PairFile) nextLine() (line []byte, ok bool) {
	if len(pf.data) == 0 {
		return nil, false
	}
	end := bytes.IndexByte(pf.data, '\n')
	if end < 0 {
		line, pf.data = pf.data, nil
	} else {
		line, pf.data = pf.data[:end], pf.data[end+1:]
	}
	pf.line++
	return bytes.TrimRight(line, "\r"), true
}

// Next returns the next pair. Pairs are named after their position.
func (pf *PairFile) Next() (Pair, error) {
	var seq1 []byte
	start := 0
	for {
		line, ok := pf.nextLine()
		if !ok {
			if seq1 != nil {
				return Pair{}, fmt.Errorf("%w: '>' line %d of %s", ErrUnpaired, start, pf.path)
			}
			return Pair{}, io.EOF
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>':
			if seq1 != nil {
				return Pair{}, fmt.Errorf("%w: '>' line %d of %s", ErrUnpaired, start, pf.path)
			}
			seq1, start = line[1:], pf.line
		case '<':
			if seq1 == nil {
				return Pair{}, fmt.Errorf("%w: '<' line %d of %s", ErrUnpaired, pf.line, pf.path)
			}
			pf.n++
			name := "pair" + strconv.Itoa(pf.n)
			return Pair{Name1: name + "/1", Seq1: seq1, Name2: name + "/2", Seq2: line[1:]}, nil
		}
	}
}

// Close unmaps the file.
func (pf *PairFile) Close() error {
	var err error
	if pf.mm != nil {
		err = pf.mm.Unmap()
		pf.mm = nil
	}
	pf.data = nil
	if cerr := pf.fp.Close(); err == nil {
		err = cerr
	}
	return err
}
