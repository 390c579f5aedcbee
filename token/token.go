// Package token implements token projection (C8): resolving a lattice
// node into the externally visible surface/POS/reading/base-form view.
package token

import (
	"strings"

	"github.com/rspamd/kagome-go/dict"
	"github.com/rspamd/kagome-go/lattice"
)

// Class mirrors lattice.Class, re-exported here so callers of this
// package don't need to import lattice just to branch on node kind.
type Class = lattice.Class

const (
	ClassDummy   = lattice.ClassDummy
	ClassKnown   = lattice.ClassKnown
	ClassUnknown = lattice.ClassUnknown
	ClassUser    = lattice.ClassUser
)

// fallbackIndex gives the positional feature indices used when a
// metadata key is absent or its resolved value is the wildcard "*"
// (spec §4.8): POS components at 0 and 1, base form at 2, reading at 3,
// pronunciation at 4; inflectional type/form have no positional
// fallback.
const (
	fallbackPosIndex0          = 0
	fallbackPosIndex1          = 1
	fallbackBaseFormIndex      = 2
	fallbackReadingIndex       = 3
	fallbackPronunciationIndex = 4
)

const wildcard = "*"

// Token is the externally visible analysis unit.
type Token struct {
	Surface []byte
	Byte    int
	CharS   int
	CharE   int
	Class   Class
	ID      int32

	d    *dict.Dict
	user *dict.UserDict
}

// FromNode projects a lattice node into a Token, resolving feature
// lookups against d (and, for User-class nodes, user).
func FromNode(n *lattice.Node, d *dict.Dict, user *dict.UserDict) Token {
	return Token{
		Surface: n.Surface,
		Byte:    n.BytePos,
		CharS:   n.CharPos,
		CharE:   n.CharPos + n.CharLen(),
		Class:   n.Class,
		ID:      n.ID,
		d:       d,
		user:    user,
	}
}

// Equal reports token equality by id, class, and surface (spec §4.8).
func (t Token) Equal(o Token) bool {
	return t.ID == o.ID && t.Class == o.Class && string(t.Surface) == string(o.Surface)
}

// Features returns the ordered feature-record strings for the token:
// the main feature store for Known, the unknown-word store for
// Unknown, an empty list for Dummy, and a synthesized
// [pos, tokens joined, readings joined] record for User.
func (t Token) Features() []string {
	switch t.Class {
	case ClassKnown:
		return t.d.FeaturesOf(t.ID)
	case ClassUnknown:
		if t.d.Unk == nil {
			return nil
		}
		return t.d.Unk.Features.At(int(t.ID))
	case ClassUser:
		if t.user == nil {
			return nil
		}
		e, ok := t.user.Entry(t.ID)
		if !ok {
			return nil
		}
		return []string{e.POS, strings.Join(e.Tokens, "/"), strings.Join(e.Readings, "/")}
	default:
		return nil
	}
}

// meta returns the feature-metadata table in force for this token's
// class, or nil if none applies.
func (t Token) meta() dict.FeatureMetadata {
	switch t.Class {
	case ClassKnown:
		return t.d.Meta
	case ClassUnknown:
		if t.d.Unk == nil {
			return nil
		}
		return t.d.Unk.Meta
	default:
		return nil
	}
}

func featureAt(features []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(features) {
		return "", false
	}
	return features[idx], true
}

// pickup resolves a metadata key against this token's feature record,
// falling back to a positional index when the key is absent or the
// stored value is the wildcard, and finally to "*" if still
// unavailable.
func (t Token) pickup(key string, positional int) string {
	features := t.Features()
	if m := t.meta(); m != nil {
		if idx, ok := m.IndexOf(key); ok {
			if v, ok := featureAt(features, idx); ok && v != wildcard {
				return v
			}
		}
	}
	if positional >= 0 {
		if v, ok := featureAt(features, positional); ok && v != wildcard {
			return v
		}
	}
	return wildcard
}

// POS returns the ordered part-of-speech component strings.
//
// For Known tokens this reads the POS table first and only falls back
// to the feature record's positional indices 0/1 when the table yields
// no names for this id (no entry, or only wildcard/out-of-range
// indices). Unknown reads the metadata-sliced POS range from the
// unknown feature store. User synthesizes a single-element POS list
// from the stored entry.
func (t Token) POS() []string {
	switch t.Class {
	case ClassKnown:
		if names := t.d.PosEntries(t.ID); len(names) > 0 {
			return names
		}
		features := t.Features()
		var out []string
		for _, idx := range []int{fallbackPosIndex0, fallbackPosIndex1} {
			if v, ok := featureAt(features, idx); ok && v != wildcard {
				out = append(out, v)
			}
		}
		return out
	case ClassUnknown:
		return t.posFromMeta()
	case ClassUser:
		if t.user == nil {
			return nil
		}
		e, ok := t.user.Entry(t.ID)
		if !ok {
			return nil
		}
		return []string{e.POS}
	default:
		return nil
	}
}

func (t Token) posFromMeta() []string {
	features := t.Features()
	m := t.meta()
	if m == nil {
		return nil
	}
	start, okStart := m.IndexOf(dict.KeyPosStart)
	hierarchy, okH := m.IndexOf(dict.KeyPosHierarchy)
	if !okStart || !okH {
		return nil
	}
	var out []string
	for i := start; i < start+hierarchy; i++ {
		if v, ok := featureAt(features, i); ok && v != wildcard {
			out = append(out, v)
		}
	}
	return out
}

// BaseForm returns the token's dictionary/citation form.
func (t Token) BaseForm() string { return t.pickup(dict.KeyBaseForm, fallbackBaseFormIndex) }

// Reading returns the token's kana reading.
func (t Token) Reading() string { return t.pickup(dict.KeyReading, fallbackReadingIndex) }

// Pronunciation returns the token's spoken-form pronunciation.
func (t Token) Pronunciation() string {
	return t.pickup(dict.KeyPronunciation, fallbackPronunciationIndex)
}

// InflectionalType returns the token's inflection type, with no
// positional fallback (spec §4.8 lists only base_form/reading/
// pronunciation as positionally recoverable).
func (t Token) InflectionalType() string { return t.pickup(dict.KeyInflectionalType, -1) }

// InflectionalForm returns the token's inflection form.
func (t Token) InflectionalForm() string { return t.pickup(dict.KeyInflectionalForm, -1) }

// TokenData is a flattened, JSON-serializable snapshot of a token's
// fields, supplementing the C++ original's to_token_data() (spec
// SUPPLEMENTED FEATURES item 7).
type TokenData struct {
	Surface           string   `json:"surface"`
	Class             string   `json:"class"`
	BytePosition      int      `json:"byte_position"`
	CharStart         int      `json:"char_start"`
	CharEnd           int      `json:"char_end"`
	POS               []string `json:"pos"`
	BaseForm          string   `json:"base_form"`
	Reading           string   `json:"reading"`
	Pronunciation     string   `json:"pronunciation"`
	InflectionalType  string   `json:"inflectional_type,omitempty"`
	InflectionalForm  string   `json:"inflectional_form,omitempty"`
}

// Snapshot flattens the token into a TokenData for logging or JSON
// output.
func (t Token) Snapshot() TokenData {
	return TokenData{
		Surface:          string(t.Surface),
		Class:            classString(t.Class),
		BytePosition:     t.Byte,
		CharStart:        t.CharS,
		CharEnd:          t.CharE,
		POS:              t.POS(),
		BaseForm:         t.BaseForm(),
		Reading:          t.Reading(),
		Pronunciation:    t.Pronunciation(),
		InflectionalType: t.InflectionalType(),
		InflectionalForm: t.InflectionalForm(),
	}
}

func classString(c Class) string {
	switch c {
	case ClassKnown:
		return "known"
	case ClassUnknown:
		return "unknown"
	case ClassUser:
		return "user"
	default:
		return "dummy"
	}
}
