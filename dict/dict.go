package dict

import "fmt"

// Dict is the immutable, process-wide dictionary store: C2 of the design.
// Every accessor is bounds-checked and returns a safe default on
// out-of-range input, since a degraded load (§4.3) is allowed to produce
// truncated tables that must still answer every query.
type Dict struct {
	Morphs   []Morph
	POS      *POSTable
	Features FeatureStore
	Meta     FeatureMetadata
	Conn     *ConnectionMatrix
	DAT      *DAT
	Class    *Classifier
	Unk      *UnkDict
	Info     DictInfo

	// Sources records which of the nine sub-files loaded cleanly versus
	// fell back, for the loader's diagnostic report (§4.3's "reports
	// which sub-files succeeded and which fell back").
	Sources map[string]string
}

// Morph returns the morpheme record for id, the zero Morph if out of
// range.
func (d *Dict) Morph(id int32) Morph {
	if id < 0 || int(id) >= len(d.Morphs) {
		return Morph{}
	}
	return d.Morphs[id]
}

// PosEntries returns the POS hierarchy strings for id.
func (d *Dict) PosEntries(id int32) []string {
	return d.POS.PosNames(int(id))
}

// FeaturesOf returns the feature record for id.
func (d *Dict) FeaturesOf(id int32) []string {
	return d.Features.At(int(id))
}

// Category returns the character category for a codepoint.
func (d *Dict) Category(r rune) CharCategory {
	return d.Class.Category(r)
}

// Invoke reports whether unknown-word generation should fire for category.
func (d *Dict) Invoke(c CharCategory) bool {
	return d.Class.ShouldInvoke(c)
}

// Group reports whether category should have its runs grouped.
func (d *Dict) Group(c CharCategory) bool {
	return d.Class.ShouldGroup(c)
}

// Connection returns the connection cost between a predecessor's right id
// and a successor's left id.
func (d *Dict) Connection(rightID, leftID int16) int16 {
	if d.Conn == nil {
		return 0
	}
	return d.Conn.At(rightID, leftID)
}

// DatSearch runs a common-prefix search over the system dictionary trie.
func (d *Dict) DatSearch(key []byte, fn func(Hit) bool) {
	if d.DAT == nil {
		return
	}
	d.DAT.CommonPrefixSearch(key, fn)
}

// UnknownEntryRange returns the base id and duplicate count for category's
// unknown-word entry.
func (d *Dict) UnknownEntryRange(c CharCategory) (base int32, dup int32, ok bool) {
	if d.Unk == nil {
		return 0, 0, false
	}
	return d.Unk.EntryRange(c)
}

// LoadReport summarizes which sub-files loaded cleanly for diagnostics.
func (d *Dict) LoadReport() string {
	if len(d.Sources) == 0 {
		return "dict: no load report available"
	}
	s := ""
	for name, status := range d.Sources {
		s += fmt.Sprintf("%s=%s ", name, status)
	}
	return s
}

// NewFallbackDict constructs the minimal dictionary of §4.3: a small POS
// set, a trivial 3x3 connection matrix, a hard-coded Unicode-range
// classifier, and one unknown-word entry per defined category. Grounded
// directly on create_fallback_dict() in the C++ dict.cpp, which uses the
// same three morphs/POS-names/connection values reproduced here so that
// the Go fallback's observable costs match the reference implementation's
// fallback exactly.
func NewFallbackDict() *Dict {
	morphs := []Morph{
		{LeftID: 1, RightID: 1, Weight: 1000},
		{LeftID: 2, RightID: 2, Weight: 2000},
		{LeftID: 3, RightID: 3, Weight: 3000},
	}
	pos := &POSTable{
		Names: []string{"名詞", "動詞", "形容詞"},
		Entries: [][]uint32{
			{0},
			{1},
			{2},
		},
	}
	features := FeatureStore{
		{"test", "テスト"},
		{"example", "エグザンプル"},
	}
	meta := FeatureMetadata{
		KeyPosStart: 0,
		KeyReading:  1,
	}
	conn := &ConnectionMatrix{
		Row: 3,
		Col: 3,
		Vec: []int16{0, 100, 200, 100, 0, 150, 200, 150, 0},
	}
	dat := &DAT{
		Base:  []int32{1, -1},
		Check: []int32{-1, 0},
		Dup:   map[int32]int32{},
	}
	class := NewDefaultClassifier()

	unk := &UnkDict{
		Morphs:   morphs,
		Features: features,
		Meta:     FeatureMetadata{KeyPosStart: 0, KeyPosHierarchy: 2},
		Index:    make([]int32, categoryCount),
		Dup:      make([]int32, categoryCount),
	}

	return &Dict{
		Morphs:     morphs,
		POS:        pos,
		Features:   features,
		Meta:    meta,
		Conn:    conn,
		DAT:     dat,
		Class:   class,
		Unk:     unk,
		Info:    DictInfo{Name: "fallback", Src: "built-in"},
		Sources: map[string]string{"*": "fallback"},
	}
}
