// 27 april 2020
// Package alnstat does the work behind the alnstat command. Each
// function reads nothing from the command line. It is handed a
// SeqFile and settings and writes a report.

package alnstat

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/andrew-torda/alnstat/pkg/config"
	"github.com/andrew-torda/alnstat/pkg/plot"
	"github.com/andrew-torda/alnstat/pkg/seq"
)

// vlog gets progress messages. It is quiet unless SetVerbose is called.
var vlog = log.New(io.Discard, "alnstat: ", 0)

// SetVerbose sends progress messages to standard error.
func SetVerbose(on bool) {
	if on {
		vlog.SetOutput(os.Stderr)
	} else {
		vlog.SetOutput(io.Discard)
	}
}

// nopCloser lets stdout be handled like a file we opened.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// create opens an output file. No name or "-" means standard output.
func create(fname string, overwrite bool) (io.WriteCloser, error) {
	if fname == "" || fname == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if err := seq.CheckExists(fname, overwrite); err != nil {
		return nil, err
	}
	fp, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("output file %v: %w", fname, err)
	}
	return fp, nil
}

// Load reads sequences. Unless diffLen is set they must be an
// alignment.
func Load(infile string, diffLen bool) (*seq.SeqFile, error) {
	start := time.Now()
	s_opts := &seq.Options{DiffLenSeq: diffLen}
	sf, err := seq.ReadFile(infile, s_opts)
	if err != nil {
		return nil, fmt.Errorf("Fail reading sequences: %w", err)
	}
	vlog.Printf("read %d sequences from %s in %d ms", sf.NSeq(), sf.ID(),
		time.Since(start).Milliseconds())
	return sf, nil
}

// Summary is the set of numbers describing a whole file.
type Summary struct {
	ID                string
	NSeq              int
	Len               int // length of the first sequence
	IsAlignment       bool
	Neff              int
	Diversity         float64
	MeanDissimilarity float64
}

// Summarise calculates a Summary. Neff, diversity and dissimilarity
// are only defined for alignments and are left at zero otherwise.
func Summarise(sf *seq.SeqFile, cfg *config.Config) (Summary, error) {
	s := Summary{
		ID:          sf.ID(),
		NSeq:        sf.NSeq(),
		Len:         sf.GetLen(),
		IsAlignment: sf.IsAlignment(),
	}
	if !s.IsAlignment {
		vlog.Println(sf.ID(), "is not an alignment, only counting")
		return s, nil
	}
	var err error
	if s.Neff, err = sf.Neff(cfg.Weights.Identity); err != nil {
		return s, err
	}
	if s.Diversity, err = sf.Diversity(); err != nil {
		return s, err
	}
	if s.MeanDissimilarity, err = sf.MeanDissimilarity(); err != nil {
		return s, err
	}
	return s, nil
}

// Write prints a summary, one "name: value" per line.
func (s Summary) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "file: %s\nnseq: %d\nlength: %d\nalignment: %t\n"+
		"neff: %d\ndiversity: %.3f\nmean dissimilarity: %.3f\n",
		s.ID, s.NSeq, s.Len, s.IsAlignment, s.Neff, s.Diversity, s.MeanDissimilarity)
	return err
}

// Stats summarises a file and writes the summary to outfile.
func Stats(sf *seq.SeqFile, cfg *config.Config, outfile string) error {
	s, err := Summarise(sf, cfg)
	if err != nil {
		return err
	}
	fp, err := create(outfile, cfg.Overwrite)
	if err != nil {
		return err
	}
	if err := s.Write(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// Weights writes the weight of each sequence as csv, then neff as a
// remark.
func Weights(sf *seq.SeqFile, cfg *config.Config, outfile string) error {
	w, err := sf.CalcWeights(cfg.Weights.Identity)
	if err != nil {
		return err
	}
	fp, err := create(outfile, cfg.Overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintln(fp, `"id","weight"`)
	for i, s := range sf.SeqSlc() {
		fmt.Fprintf(fp, "%q,%.4f\n", s.ID(), w[i])
	}
	fmt.Fprintf(fp, "# neff %d at identity %g\n", seq.NeffFromWeights(w), cfg.Weights.Identity)
	return fp.Close()
}

// Plot draws the coverage figure for an alignment.
func Plot(sf *seq.SeqFile, cfg *config.Config, fname string) error {
	freq, err := sf.CalcFreq()
	if err != nil {
		return err
	}
	cf := plot.NewCoverageFigure(freq)
	cf.Title = "coverage " + sf.ID()
	cf.Width, cf.Height, cf.DPI = cfg.Plot.Width, cfg.Plot.Height, cfg.Plot.DPI
	if err := cf.SaveFig(fname, cfg.Overwrite); err != nil {
		return err
	}
	vlog.Println("figure written to", fname)
	return nil
}

// SeqLens writes a table for a spreadsheet with the gene id, species
// name and length without gaps of each sequence.
func SeqLens(sf *seq.SeqFile, cfg *config.Config, outfile string) error {
	fp, err := create(outfile, cfg.Overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintln(fp, `"gene id","species","length"`)
	for _, s := range sf.SeqSlc() {
		species, _ := s.Species()
		fmt.Fprintf(fp, "%q,%q,%d\n", s.GeneID(), species, s.LenNoGap())
	}
	return fp.Close()
}
