// 3 Aug 2020
// Getting sequences from files. Files are memory mapped, rather than
// read through a buffer. For big alignments this was faster, and the
// reader copies everything it keeps, so the mapping can go away as soon
// as we have finished.

package seq

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
)

// mapFile opens and maps a file. The caller has to call the returned
// function when finished. A zero length file cannot be mapped, so it
// comes back as nil with no error.
func mapFile(fname string) (mmap.MMap, func(), error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, nil, err
	}
	if fi.Size() == 0 {
		fp.Close()
		return nil, func() {}, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, nil, err
	}
	done := func() {
		mm.Unmap()
		fp.Close()
	}
	return mm, done, nil
}

// ReadFile takes a filename and reads sequences from it. An empty name
// means standard input. The SeqFile gets the base of the file name as
// its id.
func ReadFile(fname string, s_opts *Options) (*SeqFile, error) {
	if fname == "" {
		return ReadFasta(os.Stdin, "stdin", s_opts)
	}
	mm, done, err := mapFile(fname)
	if err != nil {
		return nil, err
	}
	defer done()
	sf, err := ReadFasta(bytes.NewReader(mm), filepath.Base(fname), s_opts)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", fname, err)
	}
	return sf, nil
}

// CountSeqs counts the sequences in a fasta file without reading them.
// It counts ">" characters at the start of lines.
func CountSeqs(fname string) (int, error) {
	mm, done, err := mapFile(fname)
	if err != nil {
		return 0, err
	}
	defer done()
	n := 0
	if len(mm) > 0 && mm[0] == cmmt_char {
		n++
	}
	return n + bytes.Count(mm, []byte{'\n', cmmt_char}), nil
}
