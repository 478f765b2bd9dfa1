// 8 Nov 2024
// Commands which change an alignment and write it out again.

package main

import (
	"github.com/spf13/cobra"

	"github.com/andrew-torda/alnstat/pkg/alnstat"
)

var (
	trimStart, trimEnd int
	sortKey            string
	sortReverse        bool
	squashRef          string
)

var filterCmd = &cobra.Command{
	Use:   "filter [infile]",
	Short: "Remove sequences by identity to earlier ones and by gap content",
	Long: `Remove sequences by identity to earlier ones and by gap content

Sequences are visited in order. Any later sequence whose identity to the
current one is below min-id or above max-id is removed. Gaps count as
characters when calculating identity. The result depends on the order
of sequences. Then, sequences whose fraction of gaps is outside
min-gap to max-gap are removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), false)
		if err != nil {
			return err
		}
		return alnstat.Filter(sf, cfg, outfile)
	},
}

var trimCmd = &cobra.Command{
	Use:   "trim [infile]",
	Short: "Keep columns start to end, counting from 1",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), true)
		if err != nil {
			return err
		}
		return alnstat.Trim(sf, cfg, trimStart, trimEnd, outfile)
	},
}

var sortCmd = &cobra.Command{
	Use:   "sort [infile]",
	Short: "Sort sequences by id or by residues",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), true)
		if err != nil {
			return err
		}
		return alnstat.Sort(sf, cfg, sortKey, sortReverse, outfile)
	},
}

var squashCmd = &cobra.Command{
	Use:   "squash [infile]",
	Short: "Remove columns where the reference sequence has a gap",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), false)
		if err != nil {
			return err
		}
		return alnstat.Squash(sf, cfg, squashRef, outfile)
	},
}

var ungapCmd = &cobra.Command{
	Use:   "ungap [infile]",
	Short: "Write sequences with gaps removed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), true)
		if err != nil {
			return err
		}
		return alnstat.Ungap(sf, cfg, outfile)
	},
}

func init() {
	for _, c := range []*cobra.Command{filterCmd, trimCmd, sortCmd, squashCmd, ungapCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&outfile, "output", "o", "", "output file (default stdout)")
	}

	f := filterCmd.Flags()
	f.Float64("min-id", 0.3, "remove later sequences less identical than this")
	f.Float64("max-id", 0.9, "remove later sequences more identical than this")
	f.Float64("min-gap", 0, "remove sequences with a smaller fraction of gaps")
	f.Float64("max-gap", 0.9, "remove sequences with a larger fraction of gaps")
	bind(filterCmd, "filter.min-id", "min-id")
	bind(filterCmd, "filter.max-id", "max-id")
	bind(filterCmd, "gapped.min-prop", "min-gap")
	bind(filterCmd, "gapped.max-prop", "max-gap")

	trimCmd.Flags().IntVarP(&trimStart, "start", "s", 1, "first column to keep")
	trimCmd.Flags().IntVarP(&trimEnd, "end", "e", 0, "last column to keep")
	trimCmd.MarkFlagRequired("end")

	sortCmd.Flags().StringVarP(&sortKey, "key", "k", "id", `sort by "id" or "seq"`)
	sortCmd.Flags().BoolVarP(&sortReverse, "reverse", "r", false, "reverse the order")

	squashCmd.Flags().StringVarP(&squashRef, "ref", "r", "", "part of the id of the reference sequence")
	squashCmd.MarkFlagRequired("ref")
}
