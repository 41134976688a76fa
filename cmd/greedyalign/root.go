package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// newRootCmd builds the command tree around a fresh viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	setDefaults(v)

	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "greedyalign",
		Short: "X-drop greedy pairwise alignment of DNA and protein sequences",
		Long: `X-drop greedy pairwise alignment of DNA and protein sequences.

Settings are read, in increasing order of precedence, from a YAML config
file (--config), GREEDY_* environment variables (GREEDY_XDROP,
GREEDY_SCORING_GAP_OPEN, ...) and command line flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v.SetEnvPrefix("GREEDY")
			v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
			v.AutomaticEnv()
			if cfgFile == "" {
				return nil
			}
			v.SetConfigFile(cfgFile)
			return v.ReadInConfig()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.IntP("match", "M", 0, "score of a match (>= 0)")
	pf.IntP("mismatch", "X", 0, "score of a mismatch (< match)")
	pf.IntP("gap-open", "O", 0, "score added once per gap (<= 0)")
	pf.IntP("gap-extend", "E", 0, "score of each gap residue (<= 0)")
	pf.IntP("xdrop", "x", 0, "X-drop threshold")
	pf.BoolP("global", "g", false, "align to the ends of both sequences")
	pf.Bool("linear", false, "linear gap scores (ignore --gap-open)")
	pf.BoolP("reverse", "r", false, "align from the last residues towards the first")
	pf.StringP("alphabet", "a", "", "residue alphabet: nucleotide, protein or raw")
	pf.BoolP("verbose", "v", false, "debug logging")

	// flags and their keys in Config
	for flag, key := range map[string]string{
		"match":      "scoring.match",
		"mismatch":   "scoring.mismatch",
		"gap-open":   "scoring.gap-open",
		"gap-extend": "scoring.gap-extend",
		"xdrop":      "xdrop",
		"global":     "global",
		"linear":     "linear",
		"reverse":    "reverse",
		"alphabet":   "input.alphabet",
		"verbose":    "verbose",
	} {
		v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(newAlignCmd(v))
	return rootCmd
}
