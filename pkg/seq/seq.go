// 20 Dec 2017

// Package seq holds sequences and groups of sequences, usually
// alignments. A SeqFile is an ordered set of sequences with some remarks
// attached. It can check if it is an alignment, sort, trim and filter
// itself and calculate weights, frequencies and diversity.
// Sequences usually begin their lives in fasta format, so the package
// can also read and write them.
package seq

import (
	"bytes"
	"fmt"
	"strings"

	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

// Seq is a single sequence. The id is whatever followed the ">" in a
// fasta file.
type Seq struct {
	id     string
	seq    []byte
	remark []string
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

const cmmt_char byte = '>' // and this introduces comments in fasta format

// NewSeq makes a sequence. Neither the id nor the sequence may be empty.
func NewSeq(id, s string) (*Seq, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: sequence with no id", ErrValue)
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty sequence for %s", ErrValue, trimStr(id, 40))
	}
	return &Seq{id: id, seq: []byte(s)}, nil
}

// ID returns the identifier.
func (s *Seq) ID() string { return s.id }

// GetSeq returns the sequence as the original byte slice
func (s *Seq) GetSeq() []byte { return s.seq }

// Len
func (s *Seq) Len() int { return len(s.seq) }

// setSeq replaces the residues. It is not exported, since a sequence
// belonging to a SeqFile should only be changed by the SeqFile.
func (s *Seq) setSeq(t []byte) { s.seq = t }

// Remark returns a copy of the remarks.
func (s *Seq) Remark() []string { return append([]string(nil), s.remark...) }

// SetRemark does not set anything. It appends r to the remarks.
func (s *Seq) SetRemark(r string) { s.remark = append(s.remark, r) }

// SeqASCII returns the character code of each residue.
func (s *Seq) SeqASCII() []int {
	r := make([]int, len(s.seq))
	for i, c := range s.seq {
		r[i] = int(c)
	}
	return r
}

// GapFrac is the fraction of positions which are gaps.
func (s *Seq) GapFrac() float64 {
	if len(s.seq) == 0 {
		return 0
	}
	n := bytes.Count(s.seq, []byte{GapChar})
	return float64(n) / float64(len(s.seq))
}

// LenNoGap is the length without gaps.
func (s *Seq) LenNoGap() int {
	return len(s.seq) - bytes.Count(s.seq, []byte{GapChar})
}

// Copy gives back a deep copy, so the new one can be trimmed without
// touching the original.
func (s *Seq) Copy() *Seq {
	t := &Seq{id: s.id}
	t.seq = append([]byte(nil), s.seq...)
	t.remark = append([]string(nil), s.remark...)
	return t
}

// Equal says if two sequences have the same id, residues and remarks.
func (s *Seq) Equal(t *Seq) bool {
	if s == t {
		return true
	}
	if s == nil || t == nil {
		return false
	}
	if s.id != t.id || !bytes.Equal(s.seq, t.seq) || len(s.remark) != len(t.remark) {
		return false
	}
	for i := range s.remark {
		if s.remark[i] != t.remark[i] {
			return false
		}
	}
	return true
}

// GeneID returns the gene identifier for a sequence.
// Of course it does not really do that. It just returns the first
// word in the id which is likely to be the gene identifier.
func (s *Seq) GeneID() string {
	tmp := strings.Fields(s.id)
	if len(tmp) == 0 {
		return ""
	}
	return tmp[0]
}

// Species tries to return the organism from which a sequence
// comes. Actually, it just looks in the id for a string
// between square brackets and returns it. Given
//
//	> xyz.123 comment here [  homo sapiens]
//
// it should return "homo sapiens" with leading and trailing white
// space removed.
func (s *Seq) Species() (species string, ok bool) {
	var i, j int
	if i = strings.LastIndexByte(s.id, '['); i == -1 {
		return
	}
	if j = strings.LastIndexByte(s.id, ']'); j == -1 {
		return
	}
	if i >= j { // We treat it as if there is no species
		return
	}
	return strings.TrimSpace(s.id[i+1 : j]), true
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It returns an error if it meets a symbol it does not like (value
// of 128 or more).
func (s *Seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\": %w"
	for i, c := range s.seq {
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(s.id, 40), ErrValue)
		}
		if 'a' <= c && c <= 'z' {
			s.seq[i] -= diff
		}
	}
	return nil
}

// String returns a sequence, with its id at the start as
// a single string
func (s *Seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmt_char, s.id, s.seq)
}
