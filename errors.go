package greedy

import "errors"

var (
	// ErrInvalidArgument is returned for scoring parameters or inputs the
	// engine cannot work with.
	ErrInvalidArgument = errors.New("greedy: invalid argument")

	// ErrOutOfMemory is returned when an alignment needs more diagonal
	// cells than the working memory limit allows.
	ErrOutOfMemory = errors.New("greedy: working memory limit exceeded")

	// ErrScriptLength means an edit script does not fit the sequences it
	// was applied to.
	ErrScriptLength = errors.New("greedy: edit script does not match sequence lengths")

	// ErrScriptResidue means an edit script calls a pair of residues a
	// match when they differ, or a mismatch when they are equal.
	ErrScriptResidue = errors.New("greedy: edit script disagrees with residues")

	// ErrNoSeed is returned by Aligner.Search when the sequences share no
	// k-mer to extend from.
	ErrNoSeed = errors.New("greedy: no seed found")

	// ErrUnknownResidue is returned when encoding a letter outside the alphabet.
	ErrUnknownResidue = errors.New("greedy: unknown residue")
)
