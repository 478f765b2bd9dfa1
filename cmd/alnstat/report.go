// 8 Nov 2024
// Commands which read an alignment and write a report about it.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/alnstat/pkg/alnstat"
	"github.com/andrew-torda/alnstat/pkg/seq"
)

var (
	outfile  string
	colFlags alnstat.ColFlags
)

var statsCmd = &cobra.Command{
	Use:   "stats [infile]",
	Short: "Number of sequences, length, neff, diversity and mean dissimilarity",
	Long: `Number of sequences, length, neff, diversity and mean dissimilarity

Neff is the sum of sequence weights, rounded. Diversity is sqrt(N) / L.
Mean dissimilarity is 1 - identity averaged over all pairs, where only
columns without gaps are compared. Files whose sequences differ in
length are counted, but nothing else is calculated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), true)
		if err != nil {
			return err
		}
		return alnstat.Stats(sf, cfg, outfile)
	},
}

var freqCmd = &cobra.Command{
	Use:   "freq [infile]",
	Short: "Per column coverage and entropy as csv",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), false)
		if err != nil {
			return err
		}
		return alnstat.Columns(sf, cfg, &colFlags, outfile)
	},
}

var weightsCmd = &cobra.Command{
	Use:   "weights [infile]",
	Short: "Weight of each sequence and neff",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), false)
		if err != nil {
			return err
		}
		return alnstat.Weights(sf, cfg, outfile)
	},
}

var lengthsCmd = &cobra.Command{
	Use:   "lengths [infile]",
	Short: "Gene id, species and ungapped length of each sequence as csv",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), true)
		if err != nil {
			return err
		}
		return alnstat.SeqLens(sf, cfg, outfile)
	},
}

var countCmd = &cobra.Command{
	Use:   "count infile...",
	Short: "Count the sequences in fasta files without reading them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, fname := range args {
			n, err := seq.CountSeqs(fname)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", fname, n)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{statsCmd, freqCmd, weightsCmd, lengthsCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&outfile, "output", "o", "", "output file (default stdout)")
	}
	rootCmd.AddCommand(countCmd)

	f := freqCmd.Flags()
	f.StringVarP(&colFlags.Chimera, "chimera", "c", "", "filename to write chimera format to")
	f.IntVarP(&colFlags.Offset, "offset", "f", 0, "offset for numbering output, renumbering sites")
	f.StringVarP(&colFlags.RefSeq, "ref", "r", "", "reference sequence, whose residues are printed")
	f.BoolP("gaps-are-char", "g", false, "gap is a valid symbol")
	bind(freqCmd, "gaps-are-char", "gaps-are-char")
}
