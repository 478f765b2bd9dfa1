// 2 Nov 2024
// The SeqFile and the operations which rearrange it. The numerical
// work is in seqcalc.go.

package seq

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/andrew-torda/matrix"

	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

// SeqFile is a collection of sequences, usually an alignment.
// Order is the order in which sequences were added. Ids do not have to
// be unique. The SeqFile has its own remarks, separate from those of the
// sequences.
// A SeqFile is not safe for concurrent use. Callers have to serialise.
type SeqFile struct {
	id     string
	seqs   []*Seq
	remark []string
}

// SortKey says what to sort sequences by.
type SortKey byte

const (
	ByID  SortKey = iota // lexicographic on the id
	BySeq                // lexicographic on the residues
)

// String for a SortKey is what ParseSortKey understands.
func (k SortKey) String() string {
	if k == BySeq {
		return "seq"
	}
	return "id"
}

// ParseSortKey turns "id" or "seq" into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "id":
		return ByID, nil
	case "seq":
		return BySeq, nil
	}
	return ByID, fmt.Errorf(`%w: sort key "%s", want "id" or "seq"`, ErrValue, s)
}

// NewSeqFile
func NewSeqFile(id string) *SeqFile { return &SeqFile{id: id} }

// ID
func (sf *SeqFile) ID() string { return sf.id }

// Add appends a sequence. The SeqFile now owns it. There is no check on
// lengths, so one can collect unaligned sequences.
func (sf *SeqFile) Add(s *Seq) { sf.seqs = append(sf.seqs, s) }

// Remark returns a copy of the file's remarks.
func (sf *SeqFile) Remark() []string { return append([]string(nil), sf.remark...) }

// SetRemark appends r to the file's remarks.
func (sf *SeqFile) SetRemark(r string) { sf.remark = append(sf.remark, r) }

// NSeq returns the number of sequences
func (sf *SeqFile) NSeq() int { return len(sf.seqs) }

// Empty is true if there are no sequences.
func (sf *SeqFile) Empty() bool { return len(sf.seqs) == 0 }

// SeqSlc returns the slice of sequences. It is not a copy.
func (sf *SeqFile) SeqSlc() []*Seq { return sf.seqs }

// Get returns sequence i, counting from zero.
func (sf *SeqFile) Get(i int) *Seq { return sf.seqs[i] }

// TopSeq returns the first sequence that was added or nil.
func (sf *SeqFile) TopSeq() *Seq {
	if len(sf.seqs) == 0 {
		return nil
	}
	return sf.seqs[0]
}

// GetLen returns the length of the first sequence.
// If we have an alignment, this is the length of all sequences.
func (sf *SeqFile) GetLen() int {
	if len(sf.seqs) == 0 {
		return 0
	}
	return sf.seqs[0].Len()
}

// IsAlignment is true if all sequences have the same length. No
// sequences, or just one, is an alignment.
func (sf *SeqFile) IsAlignment() bool { return sf.checkLengths() == nil }

// checkLengths returns an ErrShape if any sequence has a different
// length to the first.
func (sf *SeqFile) checkLengths() error {
	const msg = "first sequence length %d, but sequence %d has length %d. Sequence starts %s: %w"
	iwant := sf.GetLen()
	for i := 1; i < len(sf.seqs); i++ {
		if ilen := sf.seqs[i].Len(); ilen != iwant {
			return fmt.Errorf(msg, iwant, i, ilen, trimStr(sf.seqs[i].id, 40), ErrShape)
		}
	}
	return nil
}

// ASCIIMatrix has one row per sequence and one column per position.
// Each entry is the byte in the sequence. The rows are copies, so
// the caller can scribble on them.
func (sf *SeqFile) ASCIIMatrix() (*matrix.BMatrix2d, error) {
	if err := sf.checkLengths(); err != nil {
		return nil, err
	}
	mat := matrix.NewBMatrix2d(len(sf.seqs), sf.GetLen())
	for i, s := range sf.seqs {
		copy(mat.Mat[i], s.seq)
	}
	return mat, nil
}

// Find returns the first sequence with the given id or nil.
func (sf *SeqFile) Find(id string) *Seq {
	for _, s := range sf.seqs {
		if s.id == id {
			return s
		}
	}
	return nil
}

// FindNdx returns the index of the first sequence whose id contains a
// string. Numbering starts from zero. We remove any ">", space or tab at
// the start. It returns -1 if nothing matches.
func (sf *SeqFile) FindNdx(s string) int {
	s = strings.TrimLeft(s, " >\t")
	for i, ss := range sf.seqs {
		if strings.Contains(ss.id, s) {
			return i
		}
	}
	return -1
}

// Remove takes out the first sequence with the given id.
func (sf *SeqFile) Remove(id string) error {
	for i, s := range sf.seqs {
		if s.id == id {
			sf.seqs = append(sf.seqs[:i], sf.seqs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Copy returns a deep copy. Changing the copy or its sequences does not
// touch the original.
func (sf *SeqFile) Copy() *SeqFile {
	t := &SeqFile{id: sf.id}
	t.remark = append([]string(nil), sf.remark...)
	t.seqs = make([]*Seq, len(sf.seqs))
	for i, s := range sf.seqs {
		t.seqs[i] = s.Copy()
	}
	return t
}

// Equal compares by value. Same id, remarks and the same sequences in
// the same order.
func (sf *SeqFile) Equal(t *SeqFile) bool {
	if sf == t {
		return true
	}
	if sf == nil || t == nil {
		return false
	}
	if sf.id != t.id || len(sf.seqs) != len(t.seqs) || len(sf.remark) != len(t.remark) {
		return false
	}
	for i := range sf.remark {
		if sf.remark[i] != t.remark[i] {
			return false
		}
	}
	for i := range sf.seqs {
		if !sf.seqs[i].Equal(t.seqs[i]) {
			return false
		}
	}
	return true
}

// target gives back the receiver if we work in place, otherwise a copy.
func (sf *SeqFile) target(inplace bool) *SeqFile {
	if inplace {
		return sf
	}
	return sf.Copy()
}

// Sort orders sequences by id or by residues. The sort is stable, so
// ties stay in the order they were added, even when reversed.
// If inplace, the receiver is sorted and returned. Otherwise the
// receiver is left alone and a sorted copy comes back.
func (sf *SeqFile) Sort(key SortKey, reverse, inplace bool) *SeqFile {
	t := sf.target(inplace)
	cmp := func(a, b *Seq) int {
		if key == BySeq {
			return bytes.Compare(a.seq, b.seq)
		}
		return strings.Compare(a.id, b.id)
	}
	seqs := t.seqs
	sort.SliceStable(seqs, func(i, j int) bool {
		if reverse {
			return cmp(seqs[i], seqs[j]) > 0
		}
		return cmp(seqs[i], seqs[j]) < 0
	})
	return t
}

// Trim cuts every sequence down to positions start to end. Numbering
// starts at 1 and end is included, so Trim(1, n) does nothing to a
// sequence of length n.
func (sf *SeqFile) Trim(start, end int, inplace bool) (*SeqFile, error) {
	const emsg = "%w: trim range %d to %d, but sequence %s has length %d"
	if start < 1 || start > end {
		return nil, fmt.Errorf("%w: trim range %d to %d", ErrValue, start, end)
	}
	for _, s := range sf.seqs {
		if end > s.Len() {
			return nil, fmt.Errorf(emsg, ErrValue, start, end, trimStr(s.id, 40), s.Len())
		}
	}
	t := sf.target(inplace)
	for _, s := range t.seqs {
		s.setSeq(append([]byte(nil), s.seq[start-1:end]...))
	}
	return t, nil
}

// Squash removes every column in which the reference sequence (index
// ndx, counting from zero) has a gap. This is useful for looking at
// an alignment from the point of view of one sequence.
func (sf *SeqFile) Squash(ndx int, inplace bool) (*SeqFile, error) {
	if ndx < 0 || ndx >= len(sf.seqs) {
		return nil, fmt.Errorf("%w: reference %d, but there are %d sequences",
			ErrValue, ndx, len(sf.seqs))
	}
	if err := sf.checkLengths(); err != nil {
		return nil, err
	}
	maskseq := sf.seqs[ndx].seq
	mask := make([]bool, len(maskseq))
	for i, c := range maskseq { // true for sites we keep
		mask[i] = !IsGap(c)
	}
	t := sf.target(inplace)
	for _, s := range t.seqs {
		b := make([]byte, 0, len(s.seq))
		for i, c := range s.seq {
			if mask[i] {
				b = append(b, c)
			}
		}
		s.setSeq(b)
	}
	return t, nil
}

// Upper uppercases all the members of a group of sequences.
func (sf *SeqFile) Upper() error {
	for _, s := range sf.seqs {
		if err := s.Upper(); err != nil {
			return err
		}
	}
	return nil
}
