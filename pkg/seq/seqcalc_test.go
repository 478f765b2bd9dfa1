// 4 Nov 2024

package seq_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/andrew-torda/alnstat/pkg/seq"
)

func approxEqual(x, y float64) bool {
	const eps = 0.000001
	d := x - y
	if d > eps || d < -eps {
		return false
	}
	return true
}

func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !approxEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// nameSeqs puts ids foo, bar, ... on the sequences.
func nameSeqs(t *testing.T, ss ...string) *SeqFile {
	t.Helper()
	names := []string{"foo", "bar", "cho", "doo", "miu", "nop", "xyz"}
	var idseq []string
	for i, s := range ss {
		idseq = append(idseq, names[i], s)
	}
	return mkSeqFile(t, idseq...)
}

var wtdata = []struct {
	seqs     []string
	identity float64
	want     []float64
}{
	{[]string{"AAAAAAA", "AAAAAAA", "AAAAAAA", "AAAAAAA"}, 0.7, []float64{.25, .25, .25, .25}},
	{[]string{"AAAAAAA", "AAAAAAA", "AAAAAAA", "BBBBBBB"}, 0.7, []float64{1. / 3, 1. / 3, 1. / 3, 1}},
	{[]string{"AAAAAAA", "A-AABA-", "B-BAA--", "BBBBBBB"}, 0.7, []float64{1, 1, 1, 1}},
	{[]string{"AAAAAAA", "AAAABA-", "B-BAA--", "BBBBBBB"}, 0.7, []float64{.5, .5, 1, 1}},
	{[]string{"AAAAAAA", "AA-ABA-", "AAACBAA", "B-BAA--", "BBBBBBB", "AAAAAAB"},
		0.6, []float64{1. / 3, 1, .5, 1, 1, .5}},
	{[]string{"AAAAAAA", "AAAAAAA"}, 1.0, []float64{.5, .5}},
	{[]string{"AAAAAAA", "AAAAABB"}, 5. / 7, []float64{.5, .5}},
	{[]string{"AAAAAAA", "AAAAABB"}, 0.7142857, []float64{.5, .5}},
	{[]string{"AAAAAAA", "AAAAABB"}, 0.71428572, []float64{1, 1}}, // rounds to 5/7 as a float32
}

func TestCalcWeights(t *testing.T) {
	for i, x := range wtdata {
		sf := nameSeqs(t, x.seqs...)
		got, err := sf.CalcWeights(x.identity)
		if err != nil {
			t.Fatal("weights set", i, err)
		}
		if !sameFloats(got, x.want) {
			t.Error("weights set", i, "got", got, "want", x.want)
		}
	}
}

func TestCalcWeightsBroken(t *testing.T) {
	sf := nameSeqs(t, "AAAA", "AAA")
	if _, err := sf.CalcWeights(.7); !errors.Is(err, ErrShape) {
		t.Error("ragged sequences should give ErrShape, got", err)
	}
	sf = nameSeqs(t, "AAAA", "AAAA")
	for _, x := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := sf.CalcWeights(x); !errors.Is(err, ErrValue) {
			t.Error("identity", x, "should give ErrValue, got", err)
		}
	}
	if w, err := NewSeqFile("e").CalcWeights(.8); err != nil || len(w) != 0 {
		t.Error("empty file gave", w, err)
	}
}

func TestNeff(t *testing.T) {
	sf := nameSeqs(t, wtdata[4].seqs...)
	n, err := sf.Neff(DefaultIdentity)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Error("neff got", n, "want 5")
	}
	if n := NeffFromWeights([]float64{.5, .5, 1. / 3, 1. / 3, 1. / 3}); n != 2 {
		t.Error("neff from weights got", n)
	}
}

func TestCalcFreq(t *testing.T) {
	tdata := []struct {
		seqs []string
		want []float64
	}{
		{[]string{"AAAAAA", "BBBBBB", "CCCCCC"}, []float64{1, 1, 1, 1, 1, 1}},
		{[]string{"AAAAAA", "-CC-C-", "BBBBBB"}, []float64{2. / 3, 1, 1, 2. / 3, 1, 2. / 3}},
		{[]string{"------", "-CC-C-", "-B----"}, []float64{0, 2. / 3, 1. / 3, 0, 1. / 3, 0}},
		{[]string{"AAAAAAA", "A-AAAA-", "--AAA--"}, []float64{2. / 3, 1. / 3, 1, 1, 1, 2. / 3, 1. / 3}},
	}
	for i, x := range tdata {
		got, err := nameSeqs(t, x.seqs...).CalcFreq()
		if err != nil {
			t.Fatal(err)
		}
		if !sameFloats(got, x.want) {
			t.Error("freq set", i, "got", got, "want", x.want)
		}
	}
	if got, err := NewSeqFile("e").CalcFreq(); err != nil || len(got) != 0 {
		t.Error("empty file gave", got, err)
	}
	if _, err := nameSeqs(t, "AAA", "AA").CalcFreq(); !errors.Is(err, ErrShape) {
		t.Error("ragged file should give ErrShape, got", err)
	}
}

var filtdata = []struct {
	seqs     []string
	min, max float64
	want     []string
}{
	{[]string{"AAAAAA", "AAAABB", "AAAAAA"}, 0, .9, []string{"foo", "bar"}},
	{[]string{"AAAAAA", "AAAAAA", "BBBBBB"}, 0, .9, []string{"foo", "cho"}},
	{[]string{"AAAAAA", "CCCCCC", "BBBBBB"}, 0, .9, []string{"foo", "bar", "cho"}},
	{[]string{"AAAAAA", "CCCCCC", "BBBBBB"}, .1, .9, []string{"foo"}},
	{[]string{"AAAAAA", "AAAAAA", "BBBBBB"}, 0, 1, []string{"foo", "bar", "cho"}},
	{[]string{"AAAAAAA", "AAAAABB"}, 5. / 7, 1, []string{"foo", "bar"}},
	{[]string{"AAAAAAA", "AAAAABB"}, 0.71428572, 1, []string{"foo"}},
	{[]string{"AAAAAAA", "AAAAABB"}, 0, 0.7142857, []string{"foo"}},
}

func TestFilter(t *testing.T) {
	for i, x := range filtdata {
		sf := nameSeqs(t, x.seqs...)
		orig := sf.Copy()
		got, err := sf.Filter(x.min, x.max, false)
		if err != nil {
			t.Fatal("filter set", i, err)
		}
		if !sameStrings(ids(got), x.want) {
			t.Error("filter set", i, "got", ids(got), "want", x.want)
		}
		if !sf.Equal(orig) {
			t.Error("filter set", i, "changed the original")
		}
	}
	sf := nameSeqs(t, filtdata[0].seqs...)
	if got, _ := sf.Filter(0, .9, true); got != sf || sf.NSeq() != 2 {
		t.Error("filter in place got", ids(sf))
	}
}

func TestFilterBroken(t *testing.T) {
	sf := nameSeqs(t, "AAAA", "AAAA")
	for _, b := range [][2]float64{{-1, .5}, {0, 2}, {.8, .2}} {
		if _, err := sf.Filter(b[0], b[1], false); !errors.Is(err, ErrValue) {
			t.Error("bounds", b, "should give ErrValue, got", err)
		}
	}
}

func TestFilterGapped(t *testing.T) {
	sf := nameSeqs(t, "AAAA", "A---", "AA--", "----")
	got, err := sf.FilterGapped(0, .5, false)
	if err != nil {
		t.Fatal(err)
	}
	if !sameStrings(ids(got), []string{"foo", "cho"}) {
		t.Error("filter gapped got", ids(got))
	}
	got, _ = sf.FilterGapped(.6, 1, false)
	if !sameStrings(ids(got), []string{"bar", "doo"}) {
		t.Error("filter gapped got", ids(got))
	}
	if _, err := sf.FilterGapped(.5, .1, false); !errors.Is(err, ErrValue) {
		t.Error("min above max should give ErrValue, got", err)
	}
}

func TestDiversity(t *testing.T) {
	tdata := []struct {
		seqs []string
		want float64
	}{
		{[]string{"AAAAAA", "BBBBBB", "CCCCCC"}, 0.289},
		{[]string{"AAAAAA", "AAAAAA", "AAAAAA"}, 0.289},
		{[]string{"A-AAAA", "BB--BB", "CCCCC-"}, 0.289},
		{nil, 0},
	}
	for i, x := range tdata {
		got, err := nameSeqs(t, x.seqs...).Diversity()
		if err != nil {
			t.Fatal(err)
		}
		if got != x.want {
			t.Error("diversity set", i, "got", got, "want", x.want)
		}
	}
	if _, err := nameSeqs(t, "AAAAAA", "BBB").Diversity(); !errors.Is(err, ErrShape) {
		t.Error("ragged sequences should give ErrShape, got", err)
	}
}

func TestMeanDissimilarity(t *testing.T) {
	d, err := nameSeqs(t, "ACDE", "ACDE", "ACDE").MeanDissimilarity()
	if err != nil || d != 0 {
		t.Error("identical sequences got", d, err)
	}
	// gaps are not counted, so A-C- and ACC- are identical.
	d, _ = nameSeqs(t, "A-C-", "ACC-").MeanDissimilarity()
	if d != 0 {
		t.Error("gapped pair got", d)
	}
	d, _ = nameSeqs(t, "AAAA", "AABB", "BBBB").MeanDissimilarity()
	if want := (0.5 + 1 + 0.5) / 3; !approxEqual(d, want) {
		t.Error("dissimilarity got", d, "want", want)
	}
	if d, err := nameSeqs(t, "AAAA").MeanDissimilarity(); err != nil || d != 0 {
		t.Error("single sequence got", d, err)
	}
}

func TestIdentMatrix(t *testing.T) {
	sf := nameSeqs(t, "AA-A", "AAB-")
	mat, err := sf.IdentMatrix(true)
	if err != nil {
		t.Fatal(err)
	}
	if mat.Mat[0][1] != 0.5 || mat.Mat[1][0] != 0.5 || mat.Mat[0][0] != 1 {
		t.Error("gaps as characters got", mat.Mat)
	}
	mat, _ = sf.IdentMatrix(false)
	if mat.Mat[0][1] != 1 {
		t.Error("gaps ignored got", mat.Mat)
	}
}
