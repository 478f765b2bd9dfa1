// 31 July 2020

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/alnstat/pkg/randseq"
)

const iseed int64 = 1637

var randArgs randseq.RandSeqArgs

var randalnCmd = &cobra.Command{
	Use:   "randaln fname nseq length",
	Short: "Write random sequences for testing and benchmarks",
	Long: `Write random sequences for testing and benchmarks

nseq sequences of length length are written to fname ("-" for stdout).
White space is scattered through the sequences to exercise readers.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		const emsg = "Failed converting %s to positive integer"
		nseq, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf(emsg, args[1])
		}
		nlen, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf(emsg, args[2])
		}
		randArgs.Nseq, randArgs.Len = int(nseq), int(nlen)

		fname := args[0]
		if fname == "-" {
			randArgs.Wrtr = os.Stdout
			return randseq.RandSeqMain(&randArgs)
		}
		ft, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("File for output: %w", err)
		}
		randArgs.Wrtr = ft
		if err := randseq.RandSeqMain(&randArgs); err != nil {
			ft.Close()
			return err
		}
		return ft.Close()
	},
}

func init() {
	rootCmd.AddCommand(randalnCmd)
	f := randalnCmd.Flags()
	f.BoolVarP(&randArgs.NoGap, "nogap", "g", false, "do not put gaps in sequences")
	f.BoolVarP(&randArgs.MkErr, "error", "e", false, "provoke errors, last sequence is short")
	f.Int64VarP(&randArgs.Iseed, "seed", "r", iseed, "random number seed")
	f.StringVarP(&randArgs.Cmmt, "comment", "c", "random seq", "comment for the sequences")
}
