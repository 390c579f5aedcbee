package token

import (
	"testing"

	"github.com/rspamd/kagome-go/dict"
	"github.com/rspamd/kagome-go/lattice"
)

func TestKnownTokenFeaturesAndPOS(t *testing.T) {
	d := dict.NewFallbackDict()
	n := &lattice.Node{ID: 0, Class: lattice.ClassKnown, Surface: []byte("test")}
	tok := FromNode(n, d, nil)

	if got := tok.Features(); len(got) != 2 || got[0] != "test" {
		t.Fatalf("Features: got %v", got)
	}
	if got := tok.POS(); len(got) != 1 || got[0] != "名詞" {
		t.Fatalf("POS: got %v", got)
	}
}

func TestUnknownTokenFeaturesFromUnkStore(t *testing.T) {
	d := dict.NewFallbackDict()
	n := &lattice.Node{ID: 0, Class: lattice.ClassUnknown, Surface: []byte("Hello")}
	tok := FromNode(n, d, nil)

	if got := tok.Features(); len(got) != 2 {
		t.Fatalf("Features: got %v", got)
	}
}

func TestDummyTokenHasNoFeatures(t *testing.T) {
	d := dict.NewFallbackDict()
	n := &lattice.Node{ID: -1, Class: lattice.ClassDummy}
	tok := FromNode(n, d, nil)
	if got := tok.Features(); got != nil {
		t.Errorf("expected nil features for a Dummy token, got %v", got)
	}
	if got := tok.POS(); got != nil {
		t.Errorf("expected nil POS for a Dummy token, got %v", got)
	}
}

func TestUserTokenSynthesizesFeatures(t *testing.T) {
	d := dict.NewFallbackDict()
	user := dict.NewUserDict()
	id := user.Add("東京都", dict.UserEntry{
		POS:      "名詞",
		Tokens:   []string{"東京", "都"},
		Readings: []string{"トウキョウ", "ト"},
	})
	n := &lattice.Node{ID: id, Class: lattice.ClassUser, Surface: []byte("東京都")}
	tok := FromNode(n, d, user)

	features := tok.Features()
	want := []string{"名詞", "東京/都", "トウキョウ/ト"}
	if len(features) != len(want) {
		t.Fatalf("got %v, want %v", features, want)
	}
	for i := range want {
		if features[i] != want[i] {
			t.Fatalf("got %v, want %v", features, want)
		}
	}
	if pos := tok.POS(); len(pos) != 1 || pos[0] != "名詞" {
		t.Errorf("POS: got %v", pos)
	}
}

func TestBaseFormFallsBackToPositionalIndexThenWildcard(t *testing.T) {
	d := dict.NewFallbackDict()
	// fallback dict's meta doesn't configure base_form, so this must
	// fall back to positional index 2, which the fallback feature
	// record ("test","テスト") doesn't have either -> wildcard.
	n := &lattice.Node{ID: 0, Class: lattice.ClassKnown}
	tok := FromNode(n, d, nil)
	if got := tok.BaseForm(); got != "*" {
		t.Errorf("BaseForm: got %q, want wildcard", got)
	}
}

func TestReadingResolvesViaMetadata(t *testing.T) {
	d := dict.NewFallbackDict() // Meta[reading] = 1 in the fallback
	n := &lattice.Node{ID: 0, Class: lattice.ClassKnown}
	tok := FromNode(n, d, nil)
	if got := tok.Reading(); got != "テスト" {
		t.Errorf("Reading: got %q, want テスト", got)
	}
}

func TestTokenEquality(t *testing.T) {
	a := Token{ID: 1, Class: ClassKnown, Surface: []byte("x")}
	b := Token{ID: 1, Class: ClassKnown, Surface: []byte("x")}
	c := Token{ID: 2, Class: ClassKnown, Surface: []byte("x")}
	if !a.Equal(b) {
		t.Errorf("expected equal tokens")
	}
	if a.Equal(c) {
		t.Errorf("expected unequal tokens")
	}
}

func TestSnapshotFieldsPopulated(t *testing.T) {
	d := dict.NewFallbackDict()
	n := &lattice.Node{ID: 0, Class: lattice.ClassKnown, Surface: []byte("test"), CharPos: 0}
	tok := FromNode(n, d, nil)
	snap := tok.Snapshot()
	if snap.Surface != "test" || snap.Class != "known" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}
