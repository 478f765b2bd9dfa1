// 8 Nov 2024
// Commands which change an alignment and write it out again.

package alnstat

import (
	"fmt"

	"github.com/andrew-torda/alnstat/pkg/config"
	"github.com/andrew-torda/alnstat/pkg/seq"
)

// write puts sequences into a fasta file.
func write(sf *seq.SeqFile, cfg *config.Config, outfile string, rmvGaps bool) error {
	s_opts := &seq.Options{Overwrite: cfg.Overwrite, RmvGapsWrt: rmvGaps}
	if err := seq.WriteFile(outfile, sf, s_opts); err != nil {
		return err
	}
	vlog.Println("wrote", sf.NSeq(), "sequences")
	return nil
}

// Filter throws out sequences by identity to earlier sequences and,
// after that, by their gap content.
func Filter(sf *seq.SeqFile, cfg *config.Config, outfile string) error {
	n0 := sf.NSeq()
	if _, err := sf.Filter(cfg.Filter.MinID, cfg.Filter.MaxID, true); err != nil {
		return err
	}
	n1 := sf.NSeq()
	if _, err := sf.FilterGapped(cfg.Gapped.MinProp, cfg.Gapped.MaxProp, true); err != nil {
		return err
	}
	vlog.Printf("identity filter removed %d, gap filter removed %d of %d", n0-n1, n1-sf.NSeq(), n0)
	return write(sf, cfg, outfile, false)
}

// Trim keeps positions start to end (from 1, inclusive).
func Trim(sf *seq.SeqFile, cfg *config.Config, start, end int, outfile string) error {
	if _, err := sf.Trim(start, end, true); err != nil {
		return err
	}
	return write(sf, cfg, outfile, false)
}

// Sort orders sequences by "id" or "seq".
func Sort(sf *seq.SeqFile, cfg *config.Config, key string, reverse bool, outfile string) error {
	k, err := seq.ParseSortKey(key)
	if err != nil {
		return err
	}
	sf.Sort(k, reverse, true)
	return write(sf, cfg, outfile, false)
}

// Squash removes the columns where the reference sequence has a gap.
// ref is a piece of the reference sequence's id.
func Squash(sf *seq.SeqFile, cfg *config.Config, ref string, outfile string) error {
	ndx := sf.FindNdx(ref)
	if ndx == -1 {
		return fmt.Errorf(`%w: could not find "%s" amongst sequences`, seq.ErrNotFound, ref)
	}
	if _, err := sf.Squash(ndx, true); err != nil {
		return err
	}
	return write(sf, cfg, outfile, false)
}

// Ungap writes the sequences with all gaps removed.
func Ungap(sf *seq.SeqFile, cfg *config.Config, outfile string) error {
	return write(sf, cfg, outfile, true)
}
