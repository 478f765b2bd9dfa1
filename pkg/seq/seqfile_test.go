// 2 Nov 2024

package seq_test

import (
	"errors"
	"testing"

	. "github.com/andrew-torda/alnstat/pkg/seq"
)

// mkSeqFile makes a SeqFile from pairs of strings, id then sequence.
func mkSeqFile(t *testing.T, idseq ...string) *SeqFile {
	t.Helper()
	sf := NewSeqFile("test")
	for i := 0; i < len(idseq); i += 2 {
		s, err := NewSeq(idseq[i], idseq[i+1])
		if err != nil {
			t.Fatal("making test sequence", err)
		}
		sf.Add(s)
	}
	return sf
}

func ids(sf *SeqFile) (r []string) {
	for _, s := range sf.SeqSlc() {
		r = append(r, s.ID())
	}
	return r
}

func seqs(sf *SeqFile) (r []string) {
	for _, s := range sf.SeqSlc() {
		r = append(r, string(s.GetSeq()))
	}
	return r
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewSeq(t *testing.T) {
	if _, err := NewSeq("", "AAA"); !errors.Is(err, ErrValue) {
		t.Error("no id should give ErrValue, got", err)
	}
	if _, err := NewSeq("foo", ""); !errors.Is(err, ErrValue) {
		t.Error("no sequence should give ErrValue, got", err)
	}
	s, err := NewSeq("foo", "GSMFTPK")
	if err != nil {
		t.Fatal(err)
	}
	if s.ID() != "foo" || string(s.GetSeq()) != "GSMFTPK" || s.Len() != 7 {
		t.Fatal("got", s)
	}
}

func TestSeqRemark(t *testing.T) {
	s, _ := NewSeq("foo", "GSMFTPK")
	if r := s.Remark(); len(r) != 0 {
		t.Fatal("new sequence has remarks", r)
	}
	want := []string{"Hello", "5", "World", "!"}
	for _, r := range want {
		s.SetRemark(r)
	}
	if got := s.Remark(); !sameStrings(got, want) {
		t.Fatal("remarks got", got, "want", want)
	}
}

func TestSeqMisc(t *testing.T) {
	s, _ := NewSeq("xyz.123 comment here [  homo sapiens]", "ac-gt-")
	if g := s.GeneID(); g != "xyz.123" {
		t.Error("gene id got", g)
	}
	if sp, ok := s.Species(); !ok || sp != "homo sapiens" {
		t.Error("species got", sp, ok)
	}
	if n := s.LenNoGap(); n != 4 {
		t.Error("length without gaps got", n)
	}
	if f := s.GapFrac(); f != 2./6 {
		t.Error("gap fraction got", f)
	}
	if err := s.Upper(); err != nil || string(s.GetSeq()) != "AC-GT-" {
		t.Error("upper got", string(s.GetSeq()), err)
	}
	want := []int{65, 67, 45, 71, 84, 45}
	for i, c := range s.SeqASCII() {
		if c != want[i] {
			t.Error("ascii at", i, "got", c, "want", want[i])
		}
	}
	bad, _ := NewSeq("bad", "AB\xc3\x9c")
	if err := bad.Upper(); !errors.Is(err, ErrValue) {
		t.Error("non-ascii symbol not caught")
	}
	c := s.Copy()
	if !c.Equal(s) {
		t.Error("copy not equal")
	}
	c.SetRemark("x")
	if c.Equal(s) || len(s.Remark()) != 0 {
		t.Error("copy shares remarks with original")
	}
}

func TestEmpty(t *testing.T) {
	sf := NewSeqFile("test")
	if !sf.Empty() || sf.NSeq() != 0 {
		t.Fatal("new SeqFile not empty")
	}
	if sf.TopSeq() != nil {
		t.Fatal("top sequence of empty file not nil")
	}
	if !sf.IsAlignment() {
		t.Fatal("empty file should count as an alignment")
	}
	sf = mkSeqFile(t, "foo", "AAAAA")
	if sf.Empty() {
		t.Fatal("file with a sequence is empty")
	}
}

func TestNSeq(t *testing.T) {
	sf := NewSeqFile("test")
	for i, s := range []string{"foo", "bar", "foo"} {
		ss, _ := NewSeq(s, "AAAAA")
		sf.Add(ss)
		if sf.NSeq() != i+1 {
			t.Fatal("after", i+1, "adds nseq is", sf.NSeq())
		}
	}
}

func TestRemark(t *testing.T) {
	sf := NewSeqFile("test")
	if r := sf.Remark(); len(r) != 0 {
		t.Fatal("remarks should start empty, got", r)
	}
	sf.SetRemark("hello")
	s, _ := NewSeq("foo", "GSMFTPK")
	s.SetRemark("bar")
	sf.Add(s)
	if r := sf.Remark(); !sameStrings(r, []string{"hello"}) {
		t.Error("file remarks got", r)
	}
	if r := sf.Get(0).Remark(); !sameStrings(r, []string{"bar"}) {
		t.Error("sequence remarks got", r)
	}
	sf.SetRemark("World")
	if r := sf.Remark(); !sameStrings(r, []string{"hello", "World"}) {
		t.Error("file remarks got", r)
	}
}

func TestTopSeq(t *testing.T) {
	sf := NewSeqFile("test")
	s1, _ := NewSeq("foo", "AAAAA")
	s2, _ := NewSeq("bar", "BBBBB")
	sf.Add(s1)
	if sf.TopSeq() != s1 {
		t.Fatal("top seq wrong after one add")
	}
	sf.Add(s2)
	if sf.TopSeq() != s1 {
		t.Fatal("top seq wrong after two adds")
	}
}

func TestIsAlignment(t *testing.T) {
	if sf := mkSeqFile(t, "foo", "AAAAA", "bar", "BBBBB"); !sf.IsAlignment() {
		t.Error("equal lengths not an alignment")
	}
	if sf := mkSeqFile(t, "foo", "AAAAA", "bar", "BBBB"); sf.IsAlignment() {
		t.Error("different lengths called an alignment")
	}
	if sf := mkSeqFile(t, "a", "AAAAA", "b", "AAAAA", "c", "AAAA"); sf.IsAlignment() {
		t.Error("lengths 5,5,4 called an alignment")
	}
	if sf := mkSeqFile(t, "foo", "A"); !sf.IsAlignment() {
		t.Error("one sequence is not an alignment")
	}
}

func TestASCIIMatrix(t *testing.T) {
	sf := mkSeqFile(t, "foo", "AAAAAA", "bar", "-CC-C-", "doe", "BBBBBB")
	mat, err := sf.ASCIIMatrix()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]byte{
		{65, 65, 65, 65, 65, 65},
		{45, 67, 67, 45, 67, 45},
		{66, 66, 66, 66, 66, 66},
	}
	for i := range want {
		for j := range want[i] {
			if mat.Mat[i][j] != want[i][j] {
				t.Fatal("ascii matrix", i, j, "got", mat.Mat[i][j], "want", want[i][j])
			}
		}
	}
	mat.Mat[0][0] = 'X'
	if sf.Get(0).GetSeq()[0] != 'A' {
		t.Fatal("changing the matrix changed the sequence")
	}

	sf = mkSeqFile(t, "foo", "AAAAAA", "bar", "B")
	if _, err := sf.ASCIIMatrix(); !errors.Is(err, ErrShape) {
		t.Fatal("ragged sequences should give ErrShape, got", err)
	}
}

var sortdata = []struct {
	key      SortKey
	reverse  bool
	wantID   []string
	wantSeqs []string
}{
	{ByID, false, []string{"bar", "doe", "foo"}, []string{"BBBBB", "CCCCC", "AAAAA"}},
	{ByID, true, []string{"foo", "doe", "bar"}, []string{"AAAAA", "CCCCC", "BBBBB"}},
	{BySeq, false, []string{"foo", "bar", "doe"}, []string{"AAAAA", "BBBBB", "CCCCC"}},
	{BySeq, true, []string{"doe", "bar", "foo"}, []string{"CCCCC", "BBBBB", "AAAAA"}},
}

func TestSort(t *testing.T) {
	for i, x := range sortdata {
		for _, inplace := range []bool{false, true} {
			sf := mkSeqFile(t, "foo", "AAAAA", "bar", "BBBBB", "doe", "CCCCC")
			orig := sf.Copy()
			sorted := sf.Sort(x.key, x.reverse, inplace)
			if !sameStrings(ids(sorted), x.wantID) || !sameStrings(seqs(sorted), x.wantSeqs) {
				t.Error("sort", i, "got", ids(sorted), seqs(sorted))
			}
			if inplace {
				if sorted != sf || !sf.Equal(sorted) {
					t.Error("sort", i, "in place did not return the receiver")
				}
			} else {
				if !sf.Equal(orig) {
					t.Error("sort", i, "not in place changed the original")
				}
				if sf.Equal(sorted) != sameStrings(x.wantID, ids(orig)) {
					t.Error("sort", i, "equality of original and sorted is wrong")
				}
			}
		}
	}
}

func TestSortStable(t *testing.T) {
	sf := mkSeqFile(t, "x", "BB", "y", "AA", "z", "BB", "w", "AA")
	sf.Sort(BySeq, false, true)
	if got := ids(sf); !sameStrings(got, []string{"y", "w", "x", "z"}) {
		t.Error("stable sort got", got)
	}
	sf.Sort(BySeq, true, true)
	if got := ids(sf); !sameStrings(got, []string{"x", "z", "y", "w"}) {
		t.Error("stable reverse sort got", got)
	}
}

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"id", "seq"} {
		if k, err := ParseSortKey(s); err != nil || k.String() != s {
			t.Error("sort key", s, "got", k, err)
		}
	}
	if _, err := ParseSortKey("length"); !errors.Is(err, ErrValue) {
		t.Error("bad sort key accepted")
	}
}

var trimdata = []struct {
	in         []string
	start, end int
	want       []string
}{
	{[]string{"AAAAA", "BBBBB", "CCCCC"}, 1, 5, []string{"AAAAA", "BBBBB", "CCCCC"}},
	{[]string{"AAAAA", "BBBBB", "CCCCC"}, 3, 5, []string{"AAA", "BBB", "CCC"}},
	{[]string{"ABCDE", "BCDEF", "CDEFG"}, 1, 3, []string{"ABC", "BCD", "CDE"}},
	{[]string{"ABCDE", "BCDEF", "CDEFG"}, 2, 3, []string{"BC", "CD", "DE"}},
}

func TestTrim(t *testing.T) {
	for i, x := range trimdata {
		sf := mkSeqFile(t, "foo", x.in[0], "bar", x.in[1], "doe", x.in[2])
		trimmed, err := sf.Trim(x.start, x.end, false)
		if err != nil {
			t.Fatal("trim", i, err)
		}
		if !sameStrings(ids(trimmed), []string{"foo", "bar", "doe"}) {
			t.Error("trim", i, "ids got", ids(trimmed))
		}
		if !sameStrings(seqs(trimmed), x.want) {
			t.Error("trim", i, "got", seqs(trimmed), "want", x.want)
		}
		if trimmed == sf || !sameStrings(seqs(sf), x.in) {
			t.Error("trim", i, "not in place touched the original")
		}
	}
	sf := mkSeqFile(t, "foo", "ABCDE")
	if r, err := sf.Trim(2, 3, true); err != nil || r != sf || string(sf.Get(0).GetSeq()) != "BC" {
		t.Error("trim in place got", seqs(sf), err)
	}
}

func TestTrimBroken(t *testing.T) {
	sf := mkSeqFile(t, "foo", "AAAAA", "bar", "BBBB")
	for _, r := range [][2]int{{0, 3}, {3, 2}, {1, 5}, {-1, 2}} {
		if _, err := sf.Trim(r[0], r[1], false); !errors.Is(err, ErrValue) {
			t.Error("trim", r, "should give ErrValue, got", err)
		}
	}
	if _, err := sf.Trim(1, 4, false); err != nil {
		t.Error("trim within the shortest sequence failed", err)
	}
}

func TestRemoveFind(t *testing.T) {
	sf := mkSeqFile(t, "foo", "AAA", "bar", "BBB", "foo", "CCC")
	if s := sf.Find("foo"); s == nil || string(s.GetSeq()) != "AAA" {
		t.Fatal("find foo got", s)
	}
	if n := sf.FindNdx("> ba"); n != 1 {
		t.Fatal("FindNdx got", n)
	}
	if n := sf.FindNdx("nothing"); n != -1 {
		t.Fatal("FindNdx of missing got", n)
	}
	if err := sf.Remove("foo"); err != nil {
		t.Fatal(err)
	}
	if got := seqs(sf); !sameStrings(got, []string{"BBB", "CCC"}) {
		t.Fatal("after remove got", got)
	}
	if err := sf.Remove("doe"); !errors.Is(err, ErrNotFound) {
		t.Fatal("removing a missing id should give ErrNotFound, got", err)
	}
}

func TestSquash(t *testing.T) {
	sf := mkSeqFile(t, "s1", "ABCD", "s2", "-EFG", "s3", "-HIJ")
	sq, err := sf.Squash(sf.FindNdx("s2"), false)
	if err != nil {
		t.Fatal(err)
	}
	if got := seqs(sq); !sameStrings(got, []string{"BCD", "EFG", "HIJ"}) {
		t.Fatal("squash got", got)
	}
	if _, err := sf.Squash(3, false); !errors.Is(err, ErrValue) {
		t.Fatal("bad reference accepted")
	}
	sf = mkSeqFile(t, "s1", "ABCD", "s2", "-EF")
	if _, err := sf.Squash(1, false); !errors.Is(err, ErrShape) {
		t.Fatal("squash of ragged sequences should give ErrShape, got", err)
	}
}
