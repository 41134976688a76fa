package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	greedy "github.com/ncbi/ncbi-cxx-toolkit-public-sub127"
	"github.com/ncbi/ncbi-cxx-toolkit-public-sub127/internal/seqio"
)

func newAlignCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align [seq1 seq2]",
		Short: "Align two sequences, or the pairs of a FASTA or pair file",
		Long: `Align two sequences, or the pairs of a FASTA or pair file.

Input, in order of precedence:
  1. two sequences as positional arguments
  2. --pairs file: '>' line with seq1 followed by a '<' line with seq2
  3. --fasta file: records 1 and 2, 3 and 4, ... are aligned
  4. --fasta file1 --fasta file2: record n of file1 with record n of file2`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("give two sequences, or none with --fasta/--pairs")
			}
			cfg, err := newConfig(v)
			if err != nil {
				return err
			}

			// go tool pprof -http=:8080 cpu.pprof
			if cfg.CPUProfile {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
			} else if cfg.MemProfile {
				defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
			}

			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			src, err := openSource(cfg, args)
			if err != nil {
				return err
			}
			defer src.Close()

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()
			return run(cmd.Context(), cfg, src, out, logger)
		},
	}

	f := cmd.Flags()
	f.StringSliceP("fasta", "f", nil, "FASTA/FASTQ file(s) with the sequences to align")
	f.StringP("pairs", "i", "", "pair file ('>' and '<' lines)")
	f.StringP("format", "o", "", "output format: text or tsv")
	f.IntP("threads", "j", 0, "number of alignment workers")
	f.Bool("shift-gaps", false, "move gaps to their leftmost equivalent position")
	f.IntP("seed-length", "k", 0, "extend from a shared k-mer of this length instead of the sequence ends")
	f.Bool("cpuprofile", false, "write cpu.pprof")
	f.Bool("memprofile", false, "write mem.pprof")
	for flag, key := range map[string]string{
		"fasta":       "input.fasta",
		"pairs":       "input.pairs",
		"format":      "format",
		"threads":     "threads",
		"shift-gaps":  "shift-gaps",
		"seed-length": "seed-length",
		"cpuprofile":  "cpuprofile",
		"memprofile":  "memprofile",
	} {
		v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

// argSource yields the one pair given on the command line.
type argSource struct {
	pair seqio.Pair
	done bool
}

func (s *argSource) Next() (seqio.Pair, error) {
	if s.done {
		return seqio.Pair{}, io.EOF
	}
	s.done = true
	return s.pair, nil
}

func (s *argSource) Close() error { return nil }

// openSource picks the pair source the settings and arguments ask for.
func openSource(cfg *Config, args []string) (seqio.Source, error) {
	switch {
	case len(args) == 2:
		return &argSource{pair: seqio.Pair{
			Name1: "seq1", Seq1: []byte(args[0]),
			Name2: "seq2", Seq2: []byte(args[1]),
		}}, nil
	case cfg.Input.Pairs != "":
		return seqio.OpenPairFile(cfg.Input.Pairs)
	case len(cfg.Input.Fasta) == 1:
		return seqio.NewFastaSource(cfg.Input.Fasta[0])
	case len(cfg.Input.Fasta) == 2:
		return seqio.NewFastaPairSource(cfg.Input.Fasta[0], cfg.Input.Fasta[1])
	}
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		return seqio.NewFastaSource("-")
	}
	return nil, errors.New("no input: give two sequences, --fasta or --pairs")
}

// job is one pair to align, numbered by input order.
type job struct {
	n    int
	pair seqio.Pair
}

// result is the outcome of a job.
type result struct {
	n    int
	pair seqio.Pair

	// covered ranges [s, e) of both sequences
	s1, e1, s2, e2 int
	score          int
	script         *greedy.EditScript
	row1, row2     []byte

	// no seed found, nothing to print
	skip bool
	err  error
}

// run aligns every pair of src on cfg.Threads workers, each owning its
// own Aligner, and writes results to w in input order.
func run(ctx context.Context, cfg *Config, src seqio.Source, w io.Writer, logger *zap.Logger) error {
	alpha, err := cfg.alphabet()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, cfg.Threads)
	results := make(chan result, cfg.Threads)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Threads; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			a := greedy.NewAligner(cfg.alignerOptions(logger.With(zap.Int("worker", worker)))...)
			for j := range jobs {
				results <- alignPair(ctx, a, alpha, cfg, j)
			}
		}(i)
	}

	readErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		n := 0
		readErr <- seqio.Each(src, func(p seqio.Pair) error {
			select {
			case jobs <- job{n: n, pair: p}:
				n++
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// print in input order
	pending := make(map[int]result)
	next, aligned := 0, 0
	var firstErr error
	for r := range results {
		pending[r.n] = r
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if firstErr != nil {
				continue
			}
			if r.err != nil {
				firstErr = fmt.Errorf("%s vs %s: %w", r.pair.Name1, r.pair.Name2, r.err)
				cancel()
				continue
			}
			if err := writeResult(w, cfg.Format, r); err != nil {
				firstErr = err
				cancel()
				continue
			}
			aligned++
		}
	}
	if err := <-readErr; firstErr == nil && err != nil && !errors.Is(err, context.Canceled) {
		firstErr = err
	}
	logger.Info("done", zap.Int("pairs", aligned), zap.Error(firstErr))
	return firstErr
}

// alignPair encodes, aligns and formats one pair.
func alignPair(ctx context.Context, a *greedy.Aligner, alpha *greedy.Alphabet, cfg *Config, j job) result {
	r := result{n: j.n, pair: j.pair}
	seq1, seq2 := j.pair.Seq1, j.pair.Seq2
	var opts []greedy.FormatOption
	if alpha != nil {
		if seq1, r.err = alpha.Encode(seq1); r.err != nil {
			return r
		}
		if seq2, r.err = alpha.Encode(seq2); r.err != nil {
			return r
		}
		opts = append(opts, greedy.WithDecoder(alpha))
	}

	switch {
	case cfg.SeedLength > 0:
		sa, err := a.Search(ctx, seq1, seq2, cfg.SeedLength)
		if errors.Is(err, greedy.ErrNoSeed) {
			r.skip = true
			return r
		}
		if err != nil {
			r.err = err
			return r
		}
		r.s1, r.e1, r.s2, r.e2 = sa.Start1, sa.End1, sa.Start2, sa.End2
		r.score, r.script = sa.Score, sa.Script
	default:
		aln, err := align(ctx, a, seq1, seq2, cfg)
		if err != nil {
			r.err = err
			return r
		}
		r.s1, r.e1 = span(aln.Reverse, aln.End1, len(seq1))
		r.s2, r.e2 = span(aln.Reverse, aln.End2, len(seq2))
		r.score = aln.Score
		// in sequence order, as for a seed alignment
		if aln.Reverse {
			aln.Script.Reverse()
		}
		r.script = aln.Script
	}

	sub1, sub2 := seq1[r.s1:r.e1], seq2[r.s2:r.e2]
	if cfg.ShiftGaps {
		if r.script, r.err = greedy.ShiftGaps(sub1, sub2, r.script); r.err != nil {
			return r
		}
	}
	r.row1, r.row2, r.err = greedy.Format(sub1, sub2, r.script, opts...)
	return r
}

// align runs a plain alignment from the ends cfg asks for.
func align(ctx context.Context, a *greedy.Aligner, seq1, seq2 []byte, cfg *Config) (*greedy.Alignment, error) {
	if cfg.Reverse {
		return a.AlignReverse(ctx, seq1, seq2)
	}
	return a.Align(ctx, seq1, seq2)
}

// span returns the covered range [start, end) of a sequence of length n.
func span(reverse bool, end, n int) (int, int) {
	if reverse {
		return n - end, n
	}
	return 0, end
}

func writeResult(w io.Writer, format string, r result) error {
	if r.skip {
		return nil
	}
	var err error
	switch format {
	case "tsv":
		_, err = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.pair.Name1, len(r.pair.Seq1), r.s1, r.e1,
			r.pair.Name2, len(r.pair.Seq2), r.s2, r.e2,
			r.score, r.script)
	default:
		_, err = fmt.Fprintf(w, "%s vs %s\nscore   %d\nseq1    %d-%d of %d\nseq2    %d-%d of %d\ncigar   %s\n\n%s\n%s\n%s\n\n",
			r.pair.Name1, r.pair.Name2, r.score,
			r.s1, r.e1, len(r.pair.Seq1), r.s2, r.e2, len(r.pair.Seq2),
			r.script,
			r.row1, greedy.Midline(r.row1, r.row2), r.row2)
	}
	return err
}
