// 3 Nov 2024

// Package ident calculates pairwise sequence identity within an
// alignment. Everything works on rows of bytes, so the caller decides
// where the rows come from (usually the ascii matrix of a SeqFile).
//
// There are two ways of counting.
//  - Gaps ignored. Only columns where both sequences have a residue are
//    looked at. identity = identical residues / such columns.
//    If there are no such columns, the identity is zero.
//  - Gaps are characters. Every column counts and a gap matches a gap.
//    This is one minus the hamming distance.
package ident

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/andrew-torda/matrix"
	"golang.org/x/sync/errgroup"

	. "github.com/andrew-torda/alnstat/pkg/seq/common"
)

// ErrLen comes back when two sequences do not have the same length.
var ErrLen = errors.New("sequence lengths differ")

// nthread is the most goroutines we run when filling a matrix.
var nthread = runtime.GOMAXPROCS(0)

// count returns the number of identical columns and the number of
// columns that were looked at.
func count(s, t []byte, gapsAreChar bool) (nsame, ntot int) {
	if gapsAreChar {
		for i, c := range s {
			if c == t[i] {
				nsame++
			}
		}
		return nsame, len(s)
	}
	for i, c := range s {
		d := t[i]
		if IsGap(c) || IsGap(d) {
			continue
		}
		ntot++
		if c == d {
			nsame++
		}
	}
	return nsame, ntot
}

// Pair returns the identity of two sequences which must have the same
// length.
func Pair(s, t []byte, gapsAreChar bool) (float32, error) {
	if len(s) != len(t) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLen, len(s), len(t))
	}
	nsame, ntot := count(s, t, gapsAreChar)
	if ntot == 0 {
		return 0, nil
	}
	return float32(nsame) / float32(ntot), nil
}

// Counts holds, for every pair of rows, the number of identical columns
// and the number of columns compared. Thresholds are tested against the
// identity calculated from these in float64.
type Counts struct {
	Same *matrix.IMatrix2d
	Tot  *matrix.IMatrix2d
}

// CountMatrix fills a Counts for all pairs of rows.
// Rows are handed out to goroutines. Goroutine i writes [i][j] and
// [j][i] for j > i, so no cell is written twice and the answer does not
// depend on scheduling.
func CountMatrix(rows [][]byte, gapsAreChar bool) (*Counts, error) {
	n := len(rows)
	c := &Counts{Same: matrix.NewIMatrix2d(n, n), Tot: matrix.NewIMatrix2d(n, n)}
	for i := 1; i < n; i++ {
		if len(rows[i]) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d, row 0 has %d",
				ErrLen, i, len(rows[i]), len(rows[0]))
		}
	}

	var g errgroup.Group
	g.SetLimit(nthread)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			same, tot := c.Same.Mat, c.Tot.Mat
			for j := i + 1; j < n; j++ {
				nsame, ntot := count(rows[i], rows[j], gapsAreChar)
				same[i][j], same[j][i] = int32(nsame), int32(nsame)
				tot[i][j], tot[j][i] = int32(ntot), int32(ntot)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

// NRow is the number of sequences.
func (c *Counts) NRow() int {
	n, _ := c.Same.Size()
	return n
}

// Ident is the identity of rows i and j. It is 1 on the diagonal and 0
// for a pair with no columns to compare.
func (c *Counts) Ident(i, j int) float64 {
	if i == j {
		return 1
	}
	ntot := c.Tot.Mat[i][j]
	if ntot == 0 {
		return 0
	}
	return float64(c.Same.Mat[i][j]) / float64(ntot)
}

// Matrix converts to a matrix of identities.
func (c *Counts) Matrix() *matrix.FMatrix2d {
	n := c.NRow()
	mat := matrix.NewFMatrix2d(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			mat.Mat[i][j] = float32(c.Ident(i, j))
		}
	}
	return mat
}

// Matrix returns the symmetric matrix of pairwise identities. The
// diagonal is 1, even for a sequence which is only gaps.
// The values are float32, so use CountMatrix when comparing against
// a threshold.
func Matrix(rows [][]byte, gapsAreChar bool) (*matrix.FMatrix2d, error) {
	c, err := CountMatrix(rows, gapsAreChar)
	if err != nil {
		return nil, err
	}
	return c.Matrix(), nil
}

// NAbove gives, for each row, how many sequences have an identity of at
// least threshold to it. A sequence is always counted as similar to
// itself, so every entry is at least 1.
func NAbove(c *Counts, threshold float64) []int {
	n := c.NRow()
	nsim := make([]int, n)
	for i := 0; i < n; i++ {
		nsim[i] = 1
		for j := 0; j < n; j++ {
			if j != i && c.Ident(i, j) >= threshold {
				nsim[i]++
			}
		}
	}
	return nsim
}
