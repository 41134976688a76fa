package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	greedy "github.com/ncbi/ncbi-cxx-toolkit-public-sub127"
)

// ScoringConfig is the scoring scheme. Scores are added, so penalties are
// negative.
type ScoringConfig struct {
	Match     int `mapstructure:"match"`
	Mismatch  int `mapstructure:"mismatch"`
	GapOpen   int `mapstructure:"gap-open"`
	GapExtend int `mapstructure:"gap-extend"`
}

// InputConfig says where sequence pairs come from.
type InputConfig struct {
	// one file pairs consecutive records, two files are zipped
	Fasta []string `mapstructure:"fasta"`

	// a '>'/'<' pair file
	Pairs string `mapstructure:"pairs"`

	// residue alphabet: nucleotide, protein or raw (compare bytes as given)
	Alphabet string `mapstructure:"alphabet"`
}

// Config is the root-level settings struct, a mix of the config file,
// GREEDY_* environment variables and command line flags.
type Config struct {
	Scoring ScoringConfig `mapstructure:"scoring"`
	Input   InputConfig   `mapstructure:"input"`

	XDrop   int  `mapstructure:"xdrop"`
	Global  bool `mapstructure:"global"`
	Linear  bool `mapstructure:"linear"`
	Reverse bool `mapstructure:"reverse"`

	// move gaps to their leftmost equivalent position
	ShiftGaps bool `mapstructure:"shift-gaps"`

	// > 0: extend from a shared k-mer of this length
	SeedLength int `mapstructure:"seed-length"`

	// output format: text or tsv
	Format  string `mapstructure:"format"`
	Threads int    `mapstructure:"threads"`
	Verbose bool   `mapstructure:"verbose"`

	CPUProfile bool `mapstructure:"cpuprofile"`
	MemProfile bool `mapstructure:"memprofile"`
}

// setDefaults registers the default settings on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("scoring.match", greedy.DefaultScoring.Match)
	v.SetDefault("scoring.mismatch", greedy.DefaultScoring.Mismatch)
	v.SetDefault("scoring.gap-open", greedy.DefaultScoring.GapOpen)
	v.SetDefault("scoring.gap-extend", greedy.DefaultScoring.GapExtend)
	v.SetDefault("input.alphabet", "nucleotide")
	v.SetDefault("xdrop", greedy.DefaultXDrop)
	v.SetDefault("format", "text")
	v.SetDefault("threads", runtime.NumCPU())
}

// newConfig decodes and checks the settings held by v.
func newConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	c.Format = strings.ToLower(c.Format)
	c.Input.Alphabet = strings.ToLower(c.Input.Alphabet)

	switch {
	case c.Format != "text" && c.Format != "tsv":
		return nil, fmt.Errorf("unknown output format %q (want text or tsv)", c.Format)
	case c.SeedLength < 0:
		return nil, fmt.Errorf("seed length must not be negative, got %d", c.SeedLength)
	case c.Threads < 1:
		return nil, fmt.Errorf("threads must be at least 1, got %d", c.Threads)
	case len(c.Input.Fasta) > 2:
		return nil, fmt.Errorf("at most two FASTA files, got %d", len(c.Input.Fasta))
	case len(c.Input.Fasta) > 0 && c.Input.Pairs != "":
		return nil, fmt.Errorf("--fasta and --pairs are exclusive")
	}
	if _, err := c.alphabet(); err != nil {
		return nil, err
	}
	return &c, nil
}

// alphabet returns the alphabet sequences are coded with, nil for raw.
func (c *Config) alphabet() (*greedy.Alphabet, error) {
	if c.Input.Alphabet == "raw" {
		return nil, nil
	}
	return greedy.AlphabetByName(c.Input.Alphabet)
}

// alignerOptions converts the settings into Aligner options.
func (c *Config) alignerOptions(logger *zap.Logger) []greedy.Option {
	return []greedy.Option{
		greedy.WithScoring(greedy.Scoring{
			Match:     c.Scoring.Match,
			Mismatch:  c.Scoring.Mismatch,
			GapOpen:   c.Scoring.GapOpen,
			GapExtend: c.Scoring.GapExtend,
		}),
		greedy.WithXDrop(c.XDrop),
		greedy.WithGlobal(c.Global),
		greedy.WithAffine(!c.Linear),
		greedy.WithLogger(logger),
	}
}

// newLogger returns a development logger when verbose, a production one
// otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}
