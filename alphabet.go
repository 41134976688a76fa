package greedy

import (
	"fmt"
	"strings"
)

// Alphabet maps residue letters to the small integer codes the aligner
// compares, and back.
type Alphabet struct {
	name    string
	letters string // letters[c] is the canonical letter of code c
	codes   [256]int16
}

// newAlphabet builds an alphabet from its canonical letters plus extra
// letters folded onto existing codes. Lookups are case-insensitive.
func newAlphabet(name, letters string, extra map[byte]byte) *Alphabet {
	a := &Alphabet{name: name, letters: letters}
	for i := range a.codes {
		a.codes[i] = -1
	}
	set := func(letter byte, code int) {
		a.codes[letter] = int16(code)
		if 'A' <= letter && letter <= 'Z' {
			a.codes[letter+'a'-'A'] = int16(code)
		}
	}
	for c := 0; c < len(letters); c++ {
		set(letters[c], c)
	}
	for letter, as := range extra {
		set(letter, strings.IndexByte(letters, as))
	}
	return a
}

// Nucleotide codes A, C, G, T as 0-3 and every other IUPAC letter as N (4).
// U reads as T.
var Nucleotide = newAlphabet("nucleotide", "ACGTN", map[byte]byte{
	'U': 'T',
	'R': 'N', 'Y': 'N', 'K': 'N', 'M': 'N', 'S': 'N', 'W': 'N',
	'B': 'N', 'D': 'N', 'H': 'N', 'V': 'N',
})

// Protein codes amino acids in NCBIstdaa order, with 0 the gap.
var Protein = newAlphabet("protein", "-ABCDEFGHIKLMNPQRSTVWXYZU*OJ", nil)

// AlphabetByName returns Nucleotide for "nucleotide", "dna" or "nt" and
// Protein for "protein", "aa" or "prot".
func AlphabetByName(name string) (*Alphabet, error) {
	switch strings.ToLower(name) {
	case "nucleotide", "dna", "nt":
		return Nucleotide, nil
	case "protein", "aa", "prot":
		return Protein, nil
	}
	return nil, fmt.Errorf("%w: unknown alphabet %q", ErrInvalidArgument, name)
}

// Name returns the alphabet's name.
func (a *Alphabet) Name() string { return a.name }

// Size returns the number of codes.
func (a *Alphabet) Size() int { return len(a.letters) }

// Encode converts letters to codes. Unknown letters fail with
// ErrUnknownResidue.
func (a *Alphabet) Encode(letters []byte) ([]byte, error) {
	codes := make([]byte, len(letters))
	for i, l := range letters {
		c := a.codes[l]
		if c < 0 {
			return nil, fmt.Errorf("%w: %q at position %d is not %s", ErrUnknownResidue, l, i, a.name)
		}
		codes[i] = byte(c)
	}
	return codes, nil
}

// Decode converts codes back to canonical letters; codes outside the
// alphabet become '?'.
func (a *Alphabet) Decode(codes []byte) []byte {
	letters := make([]byte, len(codes))
	for i, c := range codes {
		letters[i] = a.letter(c)
	}
	return letters
}

func (a *Alphabet) letter(c byte) byte {
	if int(c) < len(a.letters) {
		return a.letters[c]
	}
	return '?'
}
