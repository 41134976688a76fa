package greedy

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultXDrop is the X-drop threshold used when none is given.
const DefaultXDrop = 20

// options holds configuration for an Aligner.
type options struct {
	params   Params
	affine   bool
	maxCells int
	maxOcc   int
	logger   *zap.Logger
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() *options {
	return &options{
		params: Params{
			Scoring: DefaultScoring,
			XDrop:   DefaultXDrop,
		},
		affine: true,
		maxOcc: DefaultMaxOccurrences,
		logger: zap.NewNop(),
	}
}

// Option configures an Aligner.
type Option func(*options)

// WithScoring sets match, mismatch and gap scores.
// Default: DefaultScoring.
func WithScoring(s Scoring) Option {
	return func(o *options) {
		o.params.Scoring = s
	}
}

// WithXDrop sets the X-drop threshold.
// Default: DefaultXDrop.
func WithXDrop(x int) Option {
	return func(o *options) {
		o.params.XDrop = x
	}
}

// WithGlobal makes alignments run to the end of both sequences.
// Default: false.
func WithGlobal(enabled bool) Option {
	return func(o *options) {
		o.params.Global = enabled
	}
}

// WithAffine selects affine gap scoring; disabled, every gap residue
// scores GapExtend and GapOpen is ignored.
// Default: true.
func WithAffine(enabled bool) Option {
	return func(o *options) {
		o.affine = enabled
	}
}

// WithCellLimit caps the diagonal cells one alignment may use.
// 0 means unlimited. Default: 0.
func WithCellLimit(n int) Option {
	return func(o *options) {
		o.maxCells = n
	}
}

// WithMaxOccurrences sets how often a k-mer may occur in seq1 and still
// seed Search. Default: DefaultMaxOccurrences.
func WithMaxOccurrences(n int) Option {
	return func(o *options) {
		o.maxOcc = n
	}
}

// WithLogger sets a logger for per-alignment debug records.
// Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Aligner bundles parameters with working memory that is reused from one
// alignment to the next. An Aligner must not be used by more than one
// goroutine at a time; give each worker its own.
type Aligner struct {
	opts *options
	wm   *WorkingMemory
}

// NewAligner creates an Aligner.
func NewAligner(opts ...Option) *Aligner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Aligner{
		opts: o,
		wm:   NewWorkingMemory(WithMaxCells(o.maxCells)),
	}
}

// Params returns the parameters alignments run with.
func (a *Aligner) Params() Params { return a.opts.params }

// Affine reports whether gaps are scored affinely.
func (a *Aligner) Affine() bool { return a.opts.affine }

// Align aligns seq1 with seq2 from their first residues.
func (a *Aligner) Align(ctx context.Context, seq1, seq2 []byte) (*Alignment, error) {
	return a.run(ctx, seq1, seq2, false)
}

// AlignReverse aligns seq1 with seq2 from their last residues.
func (a *Aligner) AlignReverse(ctx context.Context, seq1, seq2 []byte) (*Alignment, error) {
	return a.run(ctx, seq1, seq2, true)
}

func (a *Aligner) run(ctx context.Context, seq1, seq2 []byte, reverse bool) (*Alignment, error) {
	aln, err := align(ctx, seq1, seq2, reverse, a.opts.params, a.wm, a.opts.affine)
	if err != nil {
		a.opts.logger.Debug("alignment failed",
			zap.Int("len1", len(seq1)), zap.Int("len2", len(seq2)), zap.Error(err))
		return nil, err
	}
	if ce := a.opts.logger.Check(zapcore.DebugLevel, "aligned"); ce != nil {
		ce.Write(
			zap.Int("len1", len(seq1)),
			zap.Int("len2", len(seq2)),
			zap.Object("alignment", aln),
			zap.Int("cells", a.wm.Cells()),
			zap.Int("poolChunks", a.wm.Pool().Chunks()),
		)
	}
	return aln, nil
}

// Extend grows an alignment in both directions from (off1, off2).
// See ExtendSeed.
func (a *Aligner) Extend(ctx context.Context, seq1, seq2 []byte, off1, off2 int) (*SeedAlignment, error) {
	sa, err := ExtendSeed(ctx, seq1, seq2, off1, off2, a.opts.params, a.opts.affine, a.wm)
	if err != nil {
		return nil, err
	}
	a.opts.logger.Debug("extended seed",
		zap.Int("off1", off1), zap.Int("off2", off2),
		zap.Int("start1", sa.Start1), zap.Int("end1", sa.End1),
		zap.Int("start2", sa.Start2), zap.Int("end2", sa.End2),
		zap.Int("score", sa.Score))
	return sa, nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a *Alignment) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("end1", a.End1)
	enc.AddInt("end2", a.End2)
	enc.AddInt("score", a.Score)
	enc.AddBool("reverse", a.Reverse)
	enc.AddInt("levels", a.Levels)
	enc.AddString("cigar", a.Script.String())
	return nil
}
