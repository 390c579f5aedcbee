package dict

import "testing"

func TestFallbackDictAnswersEveryAccessor(t *testing.T) {
	d := NewFallbackDict()

	if m := d.Morph(0); m.Weight != 1000 {
		t.Errorf("Morph(0): got %+v", m)
	}
	if m := d.Morph(999); m != (Morph{}) {
		t.Errorf("out-of-range Morph should be zero value, got %+v", m)
	}

	if names := d.PosEntries(0); len(names) != 1 || names[0] != "名詞" {
		t.Errorf("PosEntries(0): got %v", names)
	}

	if c := d.Connection(0, 1); c != 100 {
		t.Errorf("Connection(0,1): got %d, want 100", c)
	}
	if c := d.Connection(999, 999); c != 0 {
		t.Errorf("out-of-range Connection should default to 0, got %d", c)
	}

	if cat := d.Category('あ'); cat != CategoryHiragana {
		t.Errorf("Category('あ'): got %v", cat)
	}

	if base, _, ok := d.UnknownEntryRange(CategoryDefault); !ok || base != 0 {
		t.Errorf("UnknownEntryRange(Default): got (%d, %v)", base, ok)
	}
}

func TestFallbackDictDATIsStructuralPlaceholderOnly(t *testing.T) {
	// The fallback DAT is intentionally minimal (spec §4.3, §9): it keeps
	// the engine connective without claiming to index real surfaces, so
	// a lookup against it never produces a hit. Unknown-word generation
	// carries the fallback dictionary's actual segmentation quality.
	d := NewFallbackDict()
	var hits []Hit
	d.DatSearch([]byte("test"), func(h Hit) bool {
		hits = append(hits, h)
		return true
	})
	if len(hits) != 0 {
		t.Errorf("expected no hits against the placeholder fallback DAT, got %v", hits)
	}
}

func TestLoadReportFormatsSources(t *testing.T) {
	d := &Dict{Sources: map[string]string{"morph.dict": "ok"}}
	if got := d.LoadReport(); got == "" {
		t.Errorf("expected a non-empty report")
	}
	empty := &Dict{}
	if got := empty.LoadReport(); got == "" {
		t.Errorf("expected a placeholder report for an empty source map")
	}
}
