package lang

import (
	"testing"
	"unicode"

	"github.com/rspamd/kagome-go/dict"
)

func TestDetectLanguageReturnsNegativeOneForNonJapaneseText(t *testing.T) {
	if got := DetectLanguage([]byte("hello world")); got != -1.0 {
		t.Errorf("got %v, want -1.0", got)
	}
}

func TestDetectLanguageReturnsNegativeOneForEmptyText(t *testing.T) {
	if got := DetectLanguage(nil); got != -1.0 {
		t.Errorf("got %v, want -1.0", got)
	}
}

func TestDetectLanguagePureJapaneseApproachesCeiling(t *testing.T) {
	got := DetectLanguage([]byte("すもももももももものうち"))
	if got < MinConfidence || got > maxConfidence {
		t.Fatalf("got %v outside [%v, %v]", got, MinConfidence, maxConfidence)
	}
	if got < 0.9 {
		t.Errorf("expected a near-ceiling score for all-Japanese text, got %v", got)
	}
}

func TestDetectLanguageMixedTextFallsWithinRange(t *testing.T) {
	got := DetectLanguage([]byte("helloもも"))
	if got < MinConfidence || got > maxConfidence {
		t.Errorf("got %v outside [%v, %v]", got, MinConfidence, maxConfidence)
	}
}

func TestDetectLanguageRangeProperty(t *testing.T) {
	samples := []string{
		"", "a", "ab", "もも", "helloもも", "関西国際空港",
		"123", "ハロー", "mixed一二三", "\t\n ",
	}
	for _, s := range samples {
		got := DetectLanguage([]byte(s))
		if got != -1.0 && (got < MinConfidence || got > maxConfidence) {
			t.Errorf("DetectLanguage(%q) = %v, outside {-1.0} ∪ [%v, %v]", s, got, MinConfidence, maxConfidence)
		}
	}
}

// The character classifier's hard-coded Hiragana/Katakana/Kanji ranges
// must agree with the Unicode Script property DetectLanguage uses, or
// the two halves of this repository would disagree about what counts
// as Japanese text for the same input.
func TestClassifierRangesAgreeWithUnicodeScripts(t *testing.T) {
	c := dict.NewDefaultClassifier()
	cases := []struct {
		category dict.CharCategory
		script   *unicode.RangeTable
	}{
		{dict.CategoryHiragana, unicode.Hiragana},
		{dict.CategoryKatakana, unicode.Katakana},
		{dict.CategoryKanji, unicode.Han},
	}
	for _, tc := range cases {
		for r := rune(0x3040); r <= rune(0x9FAF); r++ {
			if c.Category(r) != tc.category {
				continue
			}
			if !unicode.Is(tc.script, r) {
				t.Errorf("classifier assigns %U to %v but unicode.Is(%v, %U) is false", r, tc.category, tc.script, r)
			}
		}
	}
}
