package lattice

import (
	"testing"

	"github.com/rspamd/kagome-go/dict"
)

func TestAdditionalNormalModeAlwaysZero(t *testing.T) {
	p := &Node{Surface: []byte("関西国際空港")}
	if got := additional(p, ModeNormal); got != 0 {
		t.Errorf("Normal mode must never penalize, got %d", got)
	}
}

func TestAdditionalKanjiPenalty(t *testing.T) {
	// 4 kanji characters, n=4 > 2, all Ideographic.
	p := &Node{Surface: []byte("関西国際")}
	got := additional(p, ModeSearch)
	want := int64(4-searchModeKanjiLength) * searchModeKanjiPenalty
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestAdditionalOtherLengthPenalty(t *testing.T) {
	// 8 ASCII letters: not ideographic, n=8 > 7.
	p := &Node{Surface: []byte("abcdefgh")}
	got := additional(p, ModeSearch)
	want := int64(8-searchModeOtherLength) * searchModeOtherPenalty
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestAdditionalShortSurfaceNoPenalty(t *testing.T) {
	p := &Node{Surface: []byte("の")}
	if got := additional(p, ModeSearch); got != 0 {
		t.Errorf("single-character surface must never be penalized, got %d", got)
	}
}

func TestSaturateClampsAtMaximumCost(t *testing.T) {
	if got := saturate(MaximumCost + 1000); got != MaximumCost {
		t.Errorf("got %d, want %d", got, MaximumCost)
	}
	if got := saturate(5); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestStepCostIgnoresConnectionForUserNodes(t *testing.T) {
	d := dict.NewFallbackDict()
	p := &Node{Class: ClassUser, RightID: 1}
	tgt := &Node{Class: ClassKnown, LeftID: 1, Weight: 7}
	got := stepCost(d, p, tgt, ModeNormal)
	if got != 7 {
		t.Errorf("User-class predecessor must contribute 0 connection cost, got %d", got)
	}
}

func buildLinearLattice(t *testing.T, d *dict.Dict) *Lattice {
	t.Helper()
	return Build(d, nil, []byte("もも"))
}

func TestForwardBackwardRoundTrip(t *testing.T) {
	d := dict.NewFallbackDict()
	d.DAT = dict.BuildDAT([]dict.DATEntry{{Key: []byte("もも"), ID: 0}})
	d.Morphs = []dict.Morph{{LeftID: 0, RightID: 0, Weight: 50}}
	d.Class.SetInvoke(dict.CategoryHiragana, false)

	l := buildLinearLattice(t, d)
	Forward(l, d, ModeNormal)
	path := Backward(l, ModeNormal)

	if len(path) == 0 {
		t.Fatalf("expected a non-empty best path")
	}
	if !path[0].IsBosEos() || !path[len(path)-1].IsBosEos() {
		t.Fatalf("path must start and end with a BOS/EOS sentinel")
	}
}

func TestForwardDeadNodeWhenPredecessorBucketEmpty(t *testing.T) {
	l := &Lattice{
		Buckets: [][]int32{{0}, {}, {1}},
	}
	l.Nodes = []Node{
		{ID: bosEosID, Class: ClassDummy, CharPos: 0},
		{ID: 5, Class: ClassKnown, CharPos: 1},
	}
	d := dict.NewFallbackDict()
	Forward(l, d, ModeNormal)
	if l.Node(1).Cost != MaximumCost {
		t.Errorf("a node whose start bucket is empty must saturate to MaximumCost")
	}
}

func TestBackwardEmptyWhenEOSUnreachable(t *testing.T) {
	l := &Lattice{
		Buckets: [][]int32{{0}, {1}},
	}
	l.Nodes = []Node{
		{ID: bosEosID, Class: ClassDummy, Cost: 0},
		{ID: bosEosID, Class: ClassDummy, Cost: MaximumCost, Prev: -1},
	}
	path := Backward(l, ModeNormal)
	if path != nil {
		t.Errorf("expected nil path when EOS cost is MaximumCost, got %v", path)
	}
}

func TestBackwardExtendedModeExplodesUnknownNodes(t *testing.T) {
	l := &Lattice{
		Buckets: [][]int32{{0}, {}, {}, {1}},
	}
	l.Nodes = []Node{
		{ID: bosEosID, Class: ClassDummy, CharPos: 0, Cost: 0, Prev: -1},
		{ID: bosEosID, Class: ClassDummy, CharPos: 2, Cost: 10, Prev: 2},
	}
	// manually splice in an Unknown node covering both characters,
	// linked BOS -> unknown -> EOS, bypassing Forward for this test.
	unk := Node{ID: -2, Class: ClassUnknown, CharPos: 0, BytePos: 0, Surface: []byte("ab"), Cost: 10, Prev: 0}
	l.Nodes = append(l.Nodes, unk)
	l.Nodes[1].Prev = 2

	path := Backward(l, ModeExtended)
	var unknownSeen, dummySeen int
	for _, n := range path {
		if n.Class == ClassUnknown {
			unknownSeen++
		}
		if n.Class == ClassDummy && !n.IsBosEos() {
			dummySeen++
		}
	}
	if unknownSeen != 0 {
		t.Errorf("Extended mode must not leave any Unknown node intact on the path")
	}
	if dummySeen != 2 {
		t.Errorf("expected the 2-character Unknown node split into 2 Dummy nodes, got %d", dummySeen)
	}
}
