package dict

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for the loader's error taxonomy (spec §7:
// CorruptInput/MissingData). Both are handled identically by the
// loader: the affected sub-file is replaced by its fallback and the
// failure is recorded in Sources, never propagated to the caller.
var (
	ErrCorruptInput = errors.New("dict: corrupt sub-file")
	ErrMissingData  = errors.New("dict: missing sub-file")
	ErrInitRefused  = errors.New("dict: no dictionary path yielded readable data and fallback construction failed")
)

// Policy ceilings from spec §4.3: counts beyond these are treated as
// corruption rather than trusted, regardless of what the length prefix
// claims.
const (
	maxMorphCount      = 1e7
	maxConnectionCells = 1e5 * 1e5
)

// bundle member names, conventional per spec §4.3.
const (
	memberMorph      = "morph.dict"
	memberPOS        = "pos.dict"
	memberContentMet = "content.meta"
	memberContent    = "content.dict"
	memberIndex      = "index.dict"
	memberConnection = "connection.dict"
	memberChardef    = "chardef.dict"
	memberUnk        = "unk.dict"
	memberInfo       = "dict.info"
)

// LoadBundleFile opens a dictionary bundle from path and loads it. Any
// sub-file failure degrades only that sub-file; once the archive is
// open the returned Dict is always usable. A failure to stat or open
// the archive (or a file size outside (0, 500 MiB]) returns a nil Dict
// and a wrapped error; no fallback dictionary is built in that case.
func LoadBundleFile(path string) (*Dict, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
	}
	if info.Size() <= 0 || info.Size() > 500*1024*1024 {
		return nil, fmt.Errorf("%w: size %d out of policy range", ErrCorruptInput, info.Size())
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptInput, err)
	}
	defer zr.Close()
	return loadFromZip(&zr.Reader)
}

// LoadBundleBytes loads a dictionary bundle already resident in memory.
func LoadBundleBytes(data []byte) (*Dict, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptInput, err)
	}
	return loadFromZip(zr)
}

func loadFromZip(zr *zip.Reader) (*Dict, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	sources := make(map[string]string, 9)
	d := &Dict{Sources: sources}

	d.Morphs = loadOrFallback(files, memberMorph, sources, loadMorphs, fallbackMorphs)
	d.POS = loadOrFallback(files, memberPOS, sources, loadPOS, fallbackPOS)
	d.Meta = loadOrFallback(files, memberContentMet, sources, loadContentMeta, fallbackContentMeta)
	d.Features = loadOrFallback(files, memberContent, sources, loadContentDict, fallbackContentDict)
	d.DAT = loadOrFallback(files, memberIndex, sources, loadIndexDict, fallbackIndexDict)
	d.Conn = loadOrFallback(files, memberConnection, sources, loadConnectionDict, fallbackConnectionDict)
	d.Class = loadOrFallback(files, memberChardef, sources, loadCharDef, fallbackCharDef)
	d.Unk = loadOrFallback(files, memberUnk, sources, loadUnkDict, fallbackUnkDict)
	d.Info = loadOrFallback(files, memberInfo, sources, loadDictInfo, fallbackDictInfo)

	return d, nil
}

// loadOrFallback opens member by name, decodes it with parse, and on any
// failure (missing member or parse error) substitutes fallback()'s
// result, recording the outcome in sources for the loader's diagnostic
// report.
func loadOrFallback[T any](files map[string]*zip.File, name string, sources map[string]string, parse func(*Reader) (T, error), fallback func() T) T {
	f, ok := files[name]
	if !ok {
		sources[name] = "missing:fallback"
		return fallback()
	}
	rc, err := f.Open()
	if err != nil {
		sources[name] = "unreadable:fallback"
		return fallback()
	}
	defer rc.Close()
	v, err := parse(NewReader(rc))
	if err != nil {
		sources[name] = fmt.Sprintf("corrupt:fallback(%v)", err)
		return fallback()
	}
	sources[name] = "ok"
	return v
}

func loadMorphs(r *Reader) ([]Morph, error) {
	n, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if n > maxMorphCount {
		return nil, fmt.Errorf("%w: %d morphs exceeds ceiling", ErrCorruptInput, n)
	}
	out := make([]Morph, 0, n)
	for i := uint64(0); i < n; i++ {
		left, err := r.Int16()
		if err != nil {
			return nil, err
		}
		right, err := r.Int16()
		if err != nil {
			return nil, err
		}
		weight, err := r.Int16()
		if err != nil {
			return nil, err
		}
		out = append(out, Morph{LeftID: left, RightID: right, Weight: weight})
	}
	return out, nil
}

func fallbackMorphs() []Morph {
	return []Morph{
		{LeftID: 1, RightID: 1, Weight: 1000},
		{LeftID: 2, RightID: 2, Weight: 2000},
		{LeftID: 3, RightID: 3, Weight: 3000},
	}
}

func loadPOS(r *Reader) (*POSTable, error) {
	nameCount, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if nameCount > maxMorphCount {
		return nil, fmt.Errorf("%w: %d POS names exceeds ceiling", ErrCorruptInput, nameCount)
	}
	names := make([]string, nameCount)
	for i := range names {
		s, err := r.String()
		if err != nil {
			return nil, err
		}
		names[i] = s
	}
	entryCount, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if entryCount > maxMorphCount {
		return nil, fmt.Errorf("%w: %d POS entries exceeds ceiling", ErrCorruptInput, entryCount)
	}
	entries := make([][]uint32, entryCount)
	for i := range entries {
		vlen, err := r.Uint16()
		if err != nil {
			return nil, err
		}
		vec := make([]uint32, vlen)
		for j := range vec {
			v, err := r.Uint32()
			if err != nil {
				return nil, err
			}
			vec[j] = v
		}
		entries[i] = vec
	}
	return &POSTable{Names: names, Entries: entries}, nil
}

func fallbackPOS() *POSTable {
	return &POSTable{
		Names:   []string{"名詞", "動詞", "形容詞"},
		Entries: [][]uint32{{0}, {1}, {2}},
	}
}

func loadContentMeta(r *Reader) (FeatureMetadata, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if n > 4096 {
		return nil, fmt.Errorf("%w: %d metadata keys exceeds ceiling", ErrCorruptInput, n)
	}
	meta := make(FeatureMetadata, n)
	for i := uint32(0); i < n; i++ {
		key, err := r.String()
		if err != nil {
			return nil, err
		}
		idx, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		meta[key] = int(idx)
	}
	return meta, nil
}

// fallbackContentMeta matches BinaryDictLoader::load_content_meta's hard
// fallback in the C++ original, which is a different concrete layout from
// create_fallback_dict()'s whole-dictionary fallback: this one assumes the
// IPA positional layout used when only content.meta itself is missing but
// content.dict otherwise follows the standard IPA feature-record shape.
func fallbackContentMeta() FeatureMetadata {
	return FeatureMetadata{
		KeyPosStart:         0,
		KeyPosHierarchy:     4,
		KeyInflectionalType: 4,
		KeyInflectionalForm: 5,
		KeyBaseForm:         6,
		KeyReading:          7,
		KeyPronunciation:    8,
	}
}

// rowDelimiter and colDelimiter match the content.dict text-blob layout
// of spec §4.3: rows separated by 0x0A, columns within a row by 0x07.
const (
	rowDelimiter = 0x0A
	colDelimiter = 0x07
)

func loadContentDict(r *Reader) (FeatureStore, error) {
	blob, err := r.All()
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return FeatureStore{}, nil
	}
	rows := strings.Split(string(blob), string(rune(rowDelimiter)))
	store := make(FeatureStore, 0, len(rows))
	for _, row := range rows {
		if row == "" {
			continue
		}
		cols := strings.Split(row, string(rune(colDelimiter)))
		store = append(store, cols)
	}
	return store, nil
}

func fallbackContentDict() FeatureStore {
	return FeatureStore{
		{"test", "テスト"},
		{"example", "エグザンプル"},
	}
}

func loadIndexDict(r *Reader) (*DAT, error) {
	size, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if size > maxMorphCount {
		return nil, fmt.Errorf("%w: %d DAT nodes exceeds ceiling", ErrCorruptInput, size)
	}
	base := make([]int32, size)
	check := make([]int32, size)
	for i := uint64(0); i < size; i++ {
		b, err := r.Int32()
		if err != nil {
			return nil, err
		}
		c, err := r.Int32()
		if err != nil {
			return nil, err
		}
		base[i] = b
		check[i] = c
	}
	dupCount, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if dupCount > maxMorphCount {
		return nil, fmt.Errorf("%w: %d dup entries exceeds ceiling", ErrCorruptInput, dupCount)
	}
	dup := make(map[int32]int32, dupCount)
	for i := uint64(0); i < dupCount; i++ {
		id, err := r.Int32()
		if err != nil {
			return nil, err
		}
		count, err := r.Int32()
		if err != nil {
			return nil, err
		}
		dup[id] = count
	}
	return &DAT{Base: base, Check: check, Dup: dup}, nil
}

func fallbackIndexDict() *DAT {
	return &DAT{
		Base:  []int32{1, -1},
		Check: []int32{-1, 0},
		Dup:   map[int32]int32{},
	}
}

func loadConnectionDict(r *Reader) (*ConnectionMatrix, error) {
	row, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	col, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	if row*col > maxConnectionCells {
		return nil, fmt.Errorf("%w: %dx%d connection matrix exceeds ceiling", ErrCorruptInput, row, col)
	}
	vec := make([]int16, row*col)
	for i := range vec {
		v, err := r.Int16()
		if err != nil {
			return nil, err
		}
		vec[i] = v
	}
	return &ConnectionMatrix{Row: int64(row), Col: int64(col), Vec: vec}, nil
}

func fallbackConnectionDict() *ConnectionMatrix {
	return &ConnectionMatrix{
		Row: 3,
		Col: 3,
		Vec: []int16{0, 100, 200, 100, 0, 150, 200, 150, 0},
	}
}

func loadCharDef(r *Reader) (*Classifier, error) {
	c := NewClassifier()
	blob, err := r.Bytes(1 << 16)
	if err != nil {
		return nil, err
	}
	for i, b := range blob {
		c.table[i] = CharCategory(b)
	}
	invokeCount, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if invokeCount > uint32(categoryCount) {
		return nil, fmt.Errorf("%w: %d invoke entries exceeds category count", ErrCorruptInput, invokeCount)
	}
	for i := uint32(0); i < invokeCount; i++ {
		b, err := r.Bytes(1)
		if err != nil {
			return nil, err
		}
		c.invoke[i] = b[0] != 0
	}
	groupCount, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if groupCount > uint32(categoryCount) {
		return nil, fmt.Errorf("%w: %d group entries exceeds category count", ErrCorruptInput, groupCount)
	}
	for i := uint32(0); i < groupCount; i++ {
		b, err := r.Bytes(1)
		if err != nil {
			return nil, err
		}
		c.group[i] = b[0] != 0
	}
	return c, nil
}

// fallbackCharDef mirrors BinaryDictLoader::load_chardef_dict's fallback:
// invoke defaults true across the whole category range, group true only
// for Numeric/Alpha/Hiragana/Katakana/Kanji, matching the hard-coded Unicode
// ranges demanded by spec §4.3.
func fallbackCharDef() *Classifier {
	return NewDefaultClassifier()
}

func loadUnkDict(r *Reader) (*UnkDict, error) {
	morphs, err := loadMorphs(r)
	if err != nil {
		return nil, err
	}
	features, err := loadContentDict(r)
	if err != nil {
		return nil, err
	}
	meta, err := loadContentMeta(r)
	if err != nil {
		return nil, err
	}
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if n > uint32(categoryCount) {
		return nil, fmt.Errorf("%w: %d unknown-dict categories exceeds category count", ErrCorruptInput, n)
	}
	index := make([]int32, n)
	dup := make([]int32, n)
	for i := uint32(0); i < n; i++ {
		base, err := r.Int32()
		if err != nil {
			return nil, err
		}
		d, err := r.Int32()
		if err != nil {
			return nil, err
		}
		index[i] = base
		dup[i] = d
	}
	return &UnkDict{Morphs: morphs, Features: features, Meta: meta, Index: index, Dup: dup}, nil
}

// fallbackUnkDict matches BinaryDictLoader::load_unk_dict's fallback:
// three entries, zero index for every category 0..Cyrillic.
func fallbackUnkDict() *UnkDict {
	return &UnkDict{
		Morphs:   fallbackMorphs(),
		Features: fallbackContentDict(),
		Meta:     FeatureMetadata{KeyPosStart: 0, KeyPosHierarchy: 2},
		Index:    make([]int32, categoryCount),
		Dup:      make([]int32, categoryCount),
	}
}

func loadDictInfo(r *Reader) (DictInfo, error) {
	blob, err := r.All()
	if err != nil {
		return DictInfo{}, err
	}
	lines := strings.SplitN(string(blob), "\n", 2)
	info := DictInfo{}
	if len(lines) > 0 {
		info.Name = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		info.Src = strings.TrimSpace(lines[1])
	}
	return info, nil
}

func fallbackDictInfo() DictInfo {
	return DictInfo{Name: "fallback", Src: "built-in"}
}
