// 8 Nov 2024

package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrew-torda/alnstat/pkg/alnstat"
	"github.com/andrew-torda/alnstat/pkg/config"
)

var settingsFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "alnstat",
	Short: "Statistics and simple editing for multiple sequence alignments",
	Long: `Statistics and simple editing for multiple sequence alignments.

Alignments are read in fasta format. Without an input file, sequences
are read from standard input. Without an output file, results go to
standard output. Settings can come from alnstat.yaml in the working
directory or the user's config directory, and flags override them.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// initConfig reads in the settings file after the flags are parsed.
func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	if err := config.ReadSettings(v, settingsFile); err != nil {
		log.Fatalf("%v", err)
	}
}

// setup gets the settings for a command to run with.
func setup() *config.Config {
	cfg := config.NewConfig()
	alnstat.SetVerbose(cfg.Verbose)
	return &cfg
}

// infile is the first argument, if there is one.
func infile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// bind ties a flag to a viper key. Flags are only bound once, so two
// commands must not share a key.
func bind(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		log.Fatalf("binding flag %s: %v", flag, err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	log.SetFlags(0)
	log.SetPrefix("alnstat: ")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsFile, "settings", "", "settings file (default alnstat.yaml)")
	pf.Bool("overwrite", false, "replace output files which already exist")
	pf.BoolP("verbose", "v", false, "print progress to stderr")
	pf.Float64("identity", 0.8, "identity threshold for weights and neff")

	viper.BindPFlag("overwrite", pf.Lookup("overwrite"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("weights.identity", pf.Lookup("identity"))
}
