// Writing sequences in fasta format.

package seq

import (
	"bufio"
	"fmt"
	"io"
	"os"

	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

const c_per_line = 60

// WriteFasta writes the file remarks as "#" lines, then each sequence
// with at most c_per_line residues per line.
// If s_opts.RmvGapsWrt is set, gap characters are left out.
func WriteFasta(w io.Writer, sf *SeqFile, s_opts *Options) error {
	bw := bufio.NewWriter(w)
	for _, r := range sf.remark {
		fmt.Fprintf(bw, "%c %s\n", remarkChar, r)
	}
	var t []byte
	for _, ss := range sf.seqs {
		fmt.Fprintf(bw, "%c%s\n", cmmt_char, ss.id)
		s := ss.seq
		if s_opts.RmvGapsWrt { // we have to remove gap characters on output
			t = t[:0]
			for _, c := range s {
				if !IsGap(c) {
					t = append(t, c)
				}
			}
			s = t
		}
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			bw.Write(s[:c_per_line])
			bw.WriteByte('\n')
		}
		bw.Write(s)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WarnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func WarnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// CheckExists returns ErrExists if fname is already there and we have
// not been told to overwrite it.
func CheckExists(fname string, overwrite bool) error {
	if _, err := os.Stat(fname); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s. Please rename or remove", ErrExists, fname)
		}
		WarnExists(fname)
	}
	return nil
}

// WriteFile writes sequences to a named file. An empty name means
// standard output. With s_opts.DryRun, nothing is written anywhere.
func WriteFile(fname string, sf *SeqFile, s_opts *Options) error {
	switch {
	case s_opts.DryRun:
		return WriteFasta(io.Discard, sf, s_opts)
	case fname == "" || fname == "-":
		return WriteFasta(os.Stdout, sf, s_opts)
	}
	if err := CheckExists(fname, s_opts.Overwrite); err != nil {
		return err
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("Creating output sequence file: %w", err)
	}
	if err := WriteFasta(fp, sf, s_opts); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
