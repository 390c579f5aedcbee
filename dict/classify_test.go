package dict

import "testing"

func TestClassifierDefaultsOutOfRange(t *testing.T) {
	c := NewClassifier()
	if got := c.Category(0x1F600); got != CategoryDefault {
		t.Errorf("astral codepoint: got %v, want Default", got)
	}
	if !c.ShouldInvoke(categoryCount + 10) {
		t.Errorf("out-of-range category should default invoke=true")
	}
	if c.ShouldGroup(categoryCount + 10) {
		t.Errorf("out-of-range category should default group=false")
	}
}

func TestDefaultClassifierRanges(t *testing.T) {
	c := NewDefaultClassifier()
	cases := []struct {
		r    rune
		want CharCategory
	}{
		{'3', CategoryNumeric},
		{'Q', CategoryAlpha},
		{0x3042, CategoryHiragana}, // あ
		{0x30A2, CategoryKatakana}, // ア
		{0x56FD, CategoryKanji},    // 国
		{' ', CategorySpace},
	}
	for _, tc := range cases {
		if got := c.Category(tc.r); got != tc.want {
			t.Errorf("Category(%U): got %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestDefaultClassifierGroupFlags(t *testing.T) {
	c := NewDefaultClassifier()
	if !c.ShouldGroup(CategoryHiragana) || !c.ShouldGroup(CategoryKatakana) {
		t.Errorf("Hiragana/Katakana should group by default")
	}
	if !c.ShouldGroup(CategoryKanji) {
		t.Errorf("Kanji should group by default, matching the C++ fallback's group_list[Kanji] = true")
	}
}

func TestClassifierSetRangeClampsToBMP(t *testing.T) {
	c := NewClassifier()
	c.SetRange(-5, 0x10FFFF, CategorySymbol)
	if got := c.Category(0xFFFF); got != CategorySymbol {
		t.Errorf("boundary codepoint not set: got %v", got)
	}
}
