// 31 July 2020

// Package randseq makes random alignments. They are used for testing
// readers and for benchmarks. Sequences are written in fasta format,
// with white space scattered through them to annoy the reader.
package randseq

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/andrew-torda/alnstat/pkg/seq"
	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

const (
	nPadWhite = 9 // For padding for adding whitespace to sequences
)

var aminoAcids = []byte("acdefghiklmnpqrstvwy")

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed int64     // random number seed
	Wrtr  io.Writer // where we write to
	Cmmt  string    // Comment for the sequences
	Nseq  int       // number of sequences
	Len   int       // Length of sequences
	NoGap bool      // Do not add gaps
	MkErr bool      // Add an error, by making the last sequence shorter
}

// letters returns the symbols to choose from. With gaps, one symbol in
// about 80 is a gap.
func letters(noGap bool) []byte {
	l := append([]byte(nil), aminoAcids...)
	if !noGap {
		l = append(l, l...)
		l = append(l, l...)
		l = append(l, GapChar)
	}
	return l
}

// getseq returns a byte slice with a random sequence in it. The
// capacity is a bit bigger, so there is room for white space.
func getseq(seqlen int, syms []byte, rnd *rand.Rand) []byte {
	space := seqlen + (seqlen / nPadWhite) // about 10% rubbish white space
	ret := make([]byte, seqlen, space)
	for i := range ret {
		ret[i] = syms[rnd.Intn(len(syms))]
	}
	return ret
}

// addInner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, rnd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := rnd.Intn(len(s))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace adds white characters at random positions, using up the
// spare capacity of s. We flip a coin. Heads we don't add a newline.
// Tails we make about 1/9 of the spaces newlines.
func addspace(s []byte, rnd *rand.Rand) []byte {
	toAdd := cap(s) - len(s)
	nNL := 0 // Number of new lines to add
	if rnd.Intn(2) == 0 {
		nNL = toAdd / 9
	}
	s = addInner(s, toAdd-nNL, ' ', rnd)
	return addInner(s, nNL, '\n', rnd)
}

// RandSeqMain writes random sequences to an io.Writer.
func RandSeqMain(args *RandSeqArgs) error {
	if args.Nseq < 1 || args.Len < 1 {
		return fmt.Errorf("randseq wants at least one sequence of length 1, got %d of %d",
			args.Nseq, args.Len)
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	syms := letters(args.NoGap)
	width := len(fmt.Sprintf("%d", args.Nseq))
	w := bufio.NewWriter(args.Wrtr)
	for i := 0; i < args.Nseq; i++ {
		s := getseq(args.Len, syms, rnd)
		if args.MkErr && i == args.Nseq-1 {
			s = s[:len(s)-1]
		}
		s = addspace(s, rnd)
		fmt.Fprintf(w, "> %s %[2]*d\n", args.Cmmt, width, i+1)
		w.Write(s)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// RandSeqFile returns random sequences without going via text. The
// sequences are an alignment unless args.MkErr is set.
func RandSeqFile(args *RandSeqArgs) (*seq.SeqFile, error) {
	if args.Nseq < 1 || args.Len < 2 {
		return nil, fmt.Errorf("randseq wants at least one sequence of length 2, got %d of %d",
			args.Nseq, args.Len)
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	syms := letters(args.NoGap)
	sf := seq.NewSeqFile(args.Cmmt)
	for i := 0; i < args.Nseq; i++ {
		s := getseq(args.Len, syms, rnd)
		if args.MkErr && i == args.Nseq-1 {
			s = s[:len(s)-1]
		}
		ss, err := seq.NewSeq(fmt.Sprintf("%s %d", args.Cmmt, i+1), string(s))
		if err != nil {
			return nil, err
		}
		sf.Add(ss)
	}
	return sf, nil
}
