// 6 Apr 2020
// seqcalc does simple, common calculations on a set of sequences.
// The functions have to live in this package, since they
// need access to the internals of a sequence.
// Anything that loops over pairs of sequences goes via the ident
// package. All sums run in order of increasing index, so results do not
// change from run to run.

package seq

import (
	"fmt"
	"math"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/alnstat/pkg/ident"
	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

// DefaultIdentity is the identity threshold used for weights and neff
// when the caller has no opinion.
const DefaultIdentity = 0.8

// Weights and filtering count gaps as characters. Two sequences are
// then compared over their full length. This reproduces the clusters
// one gets from the hamming distance between rows of the ascii matrix.
const gapsAreCharWt = true

// rows returns the rows of the ascii matrix or an ErrShape.
func (sf *SeqFile) rows() ([][]byte, error) {
	mat, err := sf.ASCIIMatrix()
	if err != nil {
		return nil, err
	}
	return mat.Mat, nil
}

// identCounts returns the pairwise counts behind the identities.
func (sf *SeqFile) identCounts(gapsAreChar bool) (*ident.Counts, error) {
	rows, err := sf.rows()
	if err != nil {
		return nil, err
	}
	return ident.CountMatrix(rows, gapsAreChar)
}

// IdentMatrix returns the matrix of pairwise identities.
func (sf *SeqFile) IdentMatrix(gapsAreChar bool) (*matrix.FMatrix2d, error) {
	rows, err := sf.rows()
	if err != nil {
		return nil, err
	}
	return ident.Matrix(rows, gapsAreChar)
}

// checkFrac returns an error unless 0 <= x <= 1.
func checkFrac(name string, x float64) error {
	if !(x >= 0 && x <= 1) {
		return fmt.Errorf("%w: %s is %g, must be from 0 to 1", ErrValue, name, x)
	}
	return nil
}

// CalcFreq returns, for each column, the fraction of sequences which
// have a residue (not a gap) there. No sequences gives an empty slice.
func (sf *SeqFile) CalcFreq() ([]float64, error) {
	rows, err := sf.rows()
	if err != nil {
		return nil, err
	}
	freq := make([]float64, sf.GetLen())
	if len(rows) == 0 {
		return freq, nil
	}
	for _, r := range rows {
		for i, c := range r {
			if !IsGap(c) {
				freq[i]++
			}
		}
	}
	nseq := float64(len(rows))
	for i := range freq {
		freq[i] /= nseq
	}
	return freq, nil
}

// CalcWeights gives each sequence a weight of 1 / n, where n is the
// number of sequences with an identity of at least the threshold to it.
// n counts the sequence itself, so a weight is never more than 1.
func (sf *SeqFile) CalcWeights(identity float64) ([]float64, error) {
	if err := checkFrac("identity", identity); err != nil {
		return nil, err
	}
	c, err := sf.identCounts(gapsAreCharWt)
	if err != nil {
		return nil, err
	}
	nsim := ident.NAbove(c, identity)
	w := make([]float64, len(nsim))
	for i, n := range nsim {
		w[i] = 1 / float64(n)
	}
	return w, nil
}

// Neff is the effective number of sequences. It is the sum of the
// weights from CalcWeights, rounded to the nearest integer.
func (sf *SeqFile) Neff(identity float64) (int, error) {
	w, err := sf.CalcWeights(identity)
	if err != nil {
		return 0, err
	}
	return NeffFromWeights(w), nil
}

// NeffFromWeights sums and rounds weights which have already been
// calculated.
func NeffFromWeights(w []float64) int {
	var sum float64
	for _, x := range w {
		sum += x
	}
	return int(math.Round(sum))
}

// Filter walks down the sequences. For each sequence i, any later
// sequence j whose identity to i lies outside minID to maxID is thrown
// out. A sequence which has been thrown out still throws out later
// ones. This means the result depends on the order of sequences.
// Filter(0, 1, x) keeps everything.
func (sf *SeqFile) Filter(minID, maxID float64, inplace bool) (*SeqFile, error) {
	if err := checkFrac("min identity", minID); err != nil {
		return nil, err
	}
	if err := checkFrac("max identity", maxID); err != nil {
		return nil, err
	}
	if minID > maxID {
		return nil, fmt.Errorf("%w: min identity %g above max %g", ErrValue, minID, maxID)
	}
	c, err := sf.identCounts(gapsAreCharWt)
	if err != nil {
		return nil, err
	}
	n := c.NRow()
	throw := make([]bool, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if x := c.Ident(i, j); x < minID || x > maxID {
				throw[j] = true
			}
		}
	}
	return sf.keep(throw, inplace), nil
}

// FilterGapped keeps sequences whose fraction of gaps lies from
// minProp to maxProp.
func (sf *SeqFile) FilterGapped(minProp, maxProp float64, inplace bool) (*SeqFile, error) {
	if err := checkFrac("min gap proportion", minProp); err != nil {
		return nil, err
	}
	if err := checkFrac("max gap proportion", maxProp); err != nil {
		return nil, err
	}
	if minProp > maxProp {
		return nil, fmt.Errorf("%w: min gap proportion %g above max %g", ErrValue, minProp, maxProp)
	}
	throw := make([]bool, sf.NSeq())
	for i, s := range sf.seqs {
		if f := s.GapFrac(); f < minProp || f > maxProp {
			throw[i] = true
		}
	}
	return sf.keep(throw, inplace), nil
}

// keep returns a SeqFile without the thrown out sequences.
func (sf *SeqFile) keep(throw []bool, inplace bool) *SeqFile {
	t := sf.target(inplace)
	kept := t.seqs[:0]
	for i, s := range t.seqs {
		if !throw[i] {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(t.seqs); i++ {
		t.seqs[i] = nil // let the garbage collector have them
	}
	t.seqs = kept
	return t
}

// Diversity of an alignment is sqrt(N) / L, for N sequences of length
// L, rounded to three decimal places. It is zero for no sequences.
func (sf *SeqFile) Diversity() (float64, error) {
	if sf.Empty() {
		return 0, nil
	}
	if err := sf.checkLengths(); err != nil {
		return 0, err
	}
	l := sf.GetLen()
	if l == 0 {
		return 0, nil
	}
	d := math.Sqrt(float64(sf.NSeq())) / float64(l)
	return math.Round(d*1000) / 1000, nil
}

// MeanDissimilarity is 1 - identity averaged over all pairs of
// sequences. Identity only looks at columns where neither sequence has
// a gap. Fewer than two sequences gives zero.
func (sf *SeqFile) MeanDissimilarity() (float64, error) {
	c, err := sf.identCounts(false)
	if err != nil {
		return 0, err
	}
	n := sf.NSeq()
	if n < 2 {
		return 0, nil
	}
	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += 1 - c.Ident(i, j)
		}
	}
	npair := float64(n*(n-1)) / 2
	return sum / npair, nil
}
