// Tests for the catalogue builders and the Korean numeral helpers.
package rules

import "testing"

func TestRuleSetBuilds(t *testing.T) {
	t.Parallel()

	for _, lang := range Langs() {
		if _, err := RuleSet(lang); err != nil {
			t.Errorf("RuleSet(%q): %v", lang, err)
		}
	}
}

func TestRuleSetUnknownLanguage(t *testing.T) {
	t.Parallel()

	if _, err := RuleSet(Lang("xx")); err == nil {
		t.Error("unknown language did not fail")
	}
}

func TestParseSinoKorean(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"일", 1},
		{"구", 9},
		{"십", 10},
		{"십일", 11},
		{"이십", 20},
		{"이십일", 21},
		{"삼십일", 31},
		{"백", 100},
		{"백오", 105},
		{"삼백오십", 350},
		{"천", 1_000},
		{"삼천오백", 3_500},
		{"구천구백구십구", 9_999},
		{"만", 10_000},
		{"이만", 20_000},
		{"삼만이천", 32_000},
		{"십만", 100_000},
		{"육십칠만", 670_000},
		{"억", 100_000_000},
		{"오억", 500_000_000},
		{"조", 1_000_000_000_000},
		{"삼조오억", 3_000_500_000_000},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseSinoKorean(tt.in)
			if err != nil {
				t.Fatalf("parseSinoKorean(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseSinoKorean(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSinoKoreanRejects(t *testing.T) {
	t.Parallel()

	if _, err := parseSinoKorean(""); err == nil {
		t.Error("empty numeral accepted")
	}
	if _, err := parseSinoKorean("x"); err == nil {
		t.Error("foreign rune accepted")
	}
}

func TestNativeDayWords(t *testing.T) {
	t.Parallel()

	if nativeDayWords["사흘"] != 3 {
		t.Errorf("사흘 = %d, want 3", nativeDayWords["사흘"])
	}
	if nativeDayWords["열하루"] != 11 {
		t.Errorf("열하루 = %d, want 11", nativeDayWords["열하루"])
	}
}
