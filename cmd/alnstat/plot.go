// 8 Nov 2024

package main

import (
	"github.com/spf13/cobra"

	"github.com/andrew-torda/alnstat/pkg/alnstat"
)

var figFile string

var plotCmd = &cobra.Command{
	Use:   "plot [infile]",
	Short: "Draw the fraction of sequences with a residue in each column as a png",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		sf, err := alnstat.Load(infile(args), false)
		if err != nil {
			return err
		}
		return alnstat.Plot(sf, cfg, figFile)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	f := plotCmd.Flags()
	f.StringVarP(&figFile, "output", "o", "", "png file for the figure")
	f.Int("width", 800, "width in pixels")
	f.Int("height", 300, "height in pixels")
	f.Float64("dpi", 72, "resolution, only affects text")
	plotCmd.MarkFlagRequired("output")
	bind(plotCmd, "plot.width", "width")
	bind(plotCmd, "plot.height", "height")
	bind(plotCmd, "plot.dpi", "dpi")
}
