// 26 April 2020
// Sequence entropy per column. We count how many of each symbol appear
// in each column, convert to fractions and sum -p log p. The base of
// the logarithm depends on whether we have protein or nucleotides.

package seq

import (
	"math"

	"github.com/andrew-torda/matrix"

	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

// A marker to say what type of sequence we have, protein, DNA, ...
type SeqType byte

const (
	Unknown SeqType = iota // Really unknown, not a protein or nucleotide
	Protein                //
	DNA                    //
	RNA                    //
	Ntide                  // Nucleotide, but we cannot say DNA or RNA
)

const badMap = -1 // marks a symbol as not seen

// symUsed says which symbols appear anywhere in the sequences.
func (sf *SeqFile) symUsed() (used [256]bool) {
	for _, s := range sf.seqs {
		for _, c := range s.seq {
			used[c] = true
		}
	}
	return used
}

// GetType looks at a set of sequences and returns its best guess
// as to the type. It only looks at upper case, so call Upper() first
// if there may be lower case symbols.
func (sf *SeqFile) GetType() SeqType {
	used := sf.symUsed()
	protType := []byte{
		'D', 'E', 'F', 'H', 'I', 'K', 'L', 'M',
		'N', 'P', 'Q', 'R', 'S', 'V', 'W', 'Y'}
	for _, c := range protType { // If we see an amino acid code,
		if used[c] { //          just return protein type.
			return Protein
		}
	}
	switch {
	case used['T'] && used['U']:
		return Ntide
	case used['T']:
		return DNA
	case used['U']:
		return RNA
	case used['A'] && used['C'] && used['G']:
		return Ntide // no T or U, so we cannot say which
	}
	return Unknown
}

// mapsyms gives each symbol that was used a row number. mapping['C']
// is the row for C. revmap[2] is the symbol in row 2.
func (sf *SeqFile) mapsyms() (mapping [256]int, revmap []byte) {
	used := sf.symUsed()
	for i := range mapping {
		mapping[i] = badMap
		if used[i] {
			mapping[i] = len(revmap)
			revmap = append(revmap, byte(i))
		}
	}
	return mapping, revmap
}

// UsageSite counts how many of each symbol appear at each site in
// the alignment. counts.Mat looks like [number_of_symbols][length_of_seq].
// It is float32 since it is usually turned into fractions.
func (sf *SeqFile) UsageSite() (counts *matrix.FMatrix2d, revmap []byte, err error) {
	if err := sf.checkLengths(); err != nil {
		return nil, nil, err
	}
	mapping, revmap := sf.mapsyms()
	counts = matrix.NewFMatrix2d(len(revmap), sf.GetLen())
	for _, s := range sf.seqs {
		for i, c := range s.seq {
			counts.Mat[mapping[c]][i]++
		}
	}
	return counts, revmap, nil
}

// logBase returns the base to be used for logarithms.
// For unknown sequences we use the number of symbols seen.
func logBase(stype SeqType, gapsAreChar bool, revmap []byte) int {
	var n int
	switch stype {
	case DNA, RNA, Ntide:
		n = 4
	case Protein:
		n = 20
	default:
		for _, c := range revmap {
			if !IsGap(c) {
				n++
			}
		}
	}
	if gapsAreChar {
		n++
	}
	if n < 2 {
		n = 2 // log base 1 makes no sense
	}
	return n
}

// Entropy calculates sequence entropy for each column. If gapsAreChar
// is false, gaps are left out of the calculation, so a column is
// judged by its residues alone. A column with nothing in it has zero
// entropy.
func (sf *SeqFile) Entropy(gapsAreChar bool) ([]float32, error) {
	counts, revmap, err := sf.UsageSite()
	if err != nil {
		return nil, err
	}
	logfac := 1.0 / math.Log(float64(logBase(sf.GetType(), gapsAreChar, revmap)))
	entropy := make([]float32, sf.GetLen())
	for icol := range entropy {
		var total float64
		for irow, c := range revmap {
			if !gapsAreChar && IsGap(c) {
				continue
			}
			total += float64(counts.Mat[irow][icol])
		}
		if total == 0 {
			continue
		}
		var sum float64
		for irow, c := range revmap {
			if !gapsAreChar && IsGap(c) {
				continue
			}
			f := float64(counts.Mat[irow][icol]) / total
			if f == 0 {
				continue
			}
			sum -= f * math.Log(f) * logfac
		}
		entropy[icol] = float32(sum)
	}
	return entropy, nil
}
