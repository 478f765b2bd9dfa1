// Reader for fasta format files.
// Lines starting with "#" are remarks for the whole file, wherever
// they appear. A ">" starts a sequence and the rest of that line is its
// id. White space in sequences is thrown away.

package seq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

// Options contains all the choices passed in from the caller.
type Options struct {
	Vbsty      int
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
	RmvGapsRd  bool // Remove gaps upon reading
	RmvGapsWrt bool // Remove gaps on output
	DryRun     bool // Do not write any files
	Overwrite  bool // Replace output files which already exist
}

const remarkChar = '#'

var errNoSeqs = errors.New("no sequences found")

type lexer struct {
	rdr   *bufio.Reader
	sf    *SeqFile
	white *[256]bool // characters we do not want in sequences
	id    string     // id of the sequence being read
	seq   []byte     // partial sequence
	nline int
	eof   bool
	err   error
}

type stateFn func(*lexer) stateFn

// line returns the next line without its newline. At the end of input
// it sets l.eof. A last line with no newline is still returned.
func (l *lexer) line() []byte {
	b, err := l.rdr.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		l.eof = true
	}
	l.nline++
	return bytes.TrimRight(b, "\r\n")
}

// newSeq sets up for the sequence whose header is in b. A header
// with no id is an error.
func (l *lexer) newSeq(b []byte) stateFn {
	l.id = string(bytes.TrimSpace(b[1:]))
	l.seq = nil
	if l.id == "" {
		l.err = fmt.Errorf("line %d: no sequence id after \"%c\"", l.nline, cmmt_char)
		return nil
	}
	return gseq
}

// flush finishes the sequence we have been collecting and adds it to
// the SeqFile.
func (l *lexer) flush() {
	if len(l.seq) == 0 {
		l.err = fmt.Errorf("line %d: zero length sequence after \"%s\"", l.nline, trimStr(l.id, 40))
		return
	}
	l.sf.Add(&Seq{id: l.id, seq: l.seq})
	l.seq = nil
}

// gstart is where we are before the first sequence. We may see
// remarks or blank lines.
func gstart(l *lexer) stateFn {
	b := l.line()
	if l.err != nil {
		return nil
	}
	switch {
	case len(bytes.TrimSpace(b)) == 0:
	case b[0] == remarkChar:
		l.sf.SetRemark(string(bytes.TrimSpace(b[1:])))
	case b[0] == cmmt_char:
		return l.newSeq(b)
	default:
		l.err = fmt.Errorf("line %d: expected \"%c\" at start of \"%s\"",
			l.nline, cmmt_char, trimStr(string(b), 40))
		return nil
	}
	if l.eof {
		return nil
	}
	return gstart
}

// gseq is reading a sequence. It ends on the next header or end of
// input.
func gseq(l *lexer) stateFn {
	b := l.line()
	if l.err != nil {
		return nil
	}
	switch {
	case len(b) > 0 && b[0] == cmmt_char:
		if l.flush(); l.err != nil {
			return nil
		}
		return l.newSeq(b)
	case len(b) > 0 && b[0] == remarkChar:
		l.sf.SetRemark(string(bytes.TrimSpace(b[1:])))
		b = nil
	}
	for _, c := range b {
		if !l.white[c] {
			l.seq = append(l.seq, c)
		}
	}
	if l.eof {
		l.flush()
		return nil
	}
	return gseq
}

// ReadFasta reads fasta formatted sequences and puts them into a new
// SeqFile with the given id.
// Unless s_opts.DiffLenSeq is set, the sequences must all have the same
// length.
func ReadFasta(rdr io.Reader, id string, s_opts *Options) (*SeqFile, error) {
	white := [256]bool{'\t': true, '\n': true, '\v': true,
		'\f': true, '\r': true, ' ': true}
	if s_opts.RmvGapsRd { // Treat gaps as white space
		white[GapChar] = true
	}
	l := lexer{rdr: bufio.NewReader(rdr), sf: NewSeqFile(id), white: &white}

	for state := gstart; state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return nil, l.err
	}
	if l.sf.Empty() {
		return nil, errNoSeqs
	}
	if !s_opts.DiffLenSeq {
		if err := l.sf.checkLengths(); err != nil {
			return nil, err
		}
	}
	return l.sf, nil
}
