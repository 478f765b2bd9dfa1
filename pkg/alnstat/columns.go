// 27 april 2020
// Per-column output. A csv table with the coverage and entropy of each
// site and, if asked for, an attribute file which chimera can read to
// colour a structure.

package alnstat

import (
	"fmt"
	"io"
	"time"

	"github.com/andrew-torda/alnstat/pkg/config"
	"github.com/andrew-torda/alnstat/pkg/seq"
)

// ColFlags are the choices for column output which do not live in the
// settings file.
type ColFlags struct {
	Chimera string // write output in format for chimera
	Offset  int    // Add this to the residue numbering on output
	RefSeq  string // A reference seq, whose residue names are printed
}

type colArgs struct {
	freq    []float64 // fraction of non-gap entries in column
	entropy []float32 // sequence entropy
	refseq  []byte    // nil or reference sequence
	offset  int       // residue number offset on output
}

// wrtAtt writes an array of numbers to an open file pointer in the format
// wanted by chimera for attributes.
func wrtAtt(fp io.Writer, attname string, nums []float64, offset int) error {
	head := "\nattribute: " + attname + "\nmatch mode: 1-to-1\nrecipient: residues"
	fmt.Fprintln(fp, "#", time.Now().Format(time.RFC1123), head)
	for i, v := range nums {
		rnum := i + 1 + offset
		if _, err := fmt.Fprintf(fp, "\t:%d\t%#g\n", rnum, v); err != nil {
			return err
		}
	}
	return nil
}

// interesting is a hack, but useful. If a residue is present at least
// 60 % of the time, keep its entropy. If it is not present so often,
// set interesting value to 0.5
func interesting(args *colArgs) []float64 {
	const minPresent = 0.6
	tmp := make([]float64, len(args.entropy))
	for i, entropy := range args.entropy {
		if args.freq[i] >= minPresent {
			tmp[i] = float64(entropy)
		} else {
			tmp[i] = 0.5
		}
	}
	return tmp
}

// writeChimera writes the entropy information in a form suitable
// for reading in chimera as an attribute file
func writeChimera(fp io.Writer, args *colArgs) error {
	ntrpy := make([]float64, len(args.entropy))
	for i, v := range args.entropy {
		ntrpy[i] = float64(v)
	}
	if err := wrtAtt(fp, "entropy", ntrpy, args.offset); err != nil {
		return err
	}
	if err := wrtAtt(fp, "present", args.freq, args.offset); err != nil {
		return err
	}
	return wrtAtt(fp, "interesting", interesting(args), args.offset)
}

// writeCols writes the csv table.
func writeCols(fp io.Writer, args *colArgs) error {
	headings := `"res num","frequency","entropy"`
	if args.refseq != nil {
		headings += `,"res name"`
	}
	fmt.Fprintln(fp, headings)
	for i, v := range args.entropy {
		fmt.Fprintf(fp, "%d,%.2f,%.2f", i+1+args.offset, args.freq[i], v)
		if args.refseq != nil {
			fmt.Fprintf(fp, ",%c", args.refseq[i])
		}
		if _, err := fmt.Fprintln(fp); err != nil {
			return err
		}
	}
	return nil
}

// Columns calculates coverage and entropy for each column and writes
// them to outfile. Sequences are converted to upper case first.
func Columns(sf *seq.SeqFile, cfg *config.Config, flags *ColFlags, outfile string) error {
	if err := sf.Upper(); err != nil {
		return err
	}
	args := &colArgs{offset: flags.Offset}
	if flags.RefSeq != "" {
		ndx := sf.FindNdx(flags.RefSeq)
		if ndx == -1 {
			return fmt.Errorf(`%w: cannot find ref sequence "%s"`, seq.ErrNotFound, flags.RefSeq)
		}
		args.refseq = sf.Get(ndx).GetSeq()
	}
	var err error
	if args.freq, err = sf.CalcFreq(); err != nil {
		return err
	}
	if args.entropy, err = sf.Entropy(cfg.GapsAreChar); err != nil {
		return err
	}

	fp, err := create(outfile, cfg.Overwrite)
	if err != nil {
		return err
	}
	if err := writeCols(fp, args); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	if flags.Chimera == "" {
		return nil
	}
	if fp, err = create(flags.Chimera, cfg.Overwrite); err != nil {
		return err
	}
	if err := writeChimera(fp, args); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
