// End-to-end tests for the facade: the full chart-parse, rank, resolve
// pipeline under fixed reference instants.
package tempora

import (
	"reflect"
	"testing"
	"time"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/grain"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dt(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func ctxAt(ref time.Time) *dimension.ParsingContext {
	return dimension.NewParsingContext(ref)
}

func buildEN(t *testing.T) *Parser {
	t.Helper()
	p, err := BuildParser(LangEN)
	if err != nil {
		t.Fatalf("BuildParser(en): %v", err)
	}
	return p
}

func buildKO(t *testing.T) *Parser {
	t.Helper()
	p, err := BuildParser(LangKO)
	if err != nil {
		t.Fatalf("BuildParser(ko): %v", err)
	}
	return p
}

func TestLongNumberEN(t *testing.T) {
	t.Parallel()

	parser := buildEN(t)
	input := "one million five hundred twenty-one thousand eighty-two"
	matches := parser.ParseWithKindOrder(input, ctxAt(d(2017, 1, 1)), []dimension.Kind{dimension.KindNumber}, true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got, ok := matches[0].Value.(dimension.IntegerOutput)
	if !ok {
		t.Fatalf("value = %T, want IntegerOutput", matches[0].Value)
	}
	if got.Value != 1521082 {
		t.Errorf("value = %d, want 1521082", got.Value)
	}
	if matches[0].Text(input) != input {
		t.Errorf("match covers %q, want the whole phrase", matches[0].Text(input))
	}
}

func TestTwentyOneEN(t *testing.T) {
	t.Parallel()

	parser := buildEN(t)
	matches := parser.Parse("twenty-one", ctxAt(d(2017, 1, 1)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if got := matches[0].Value.(dimension.IntegerOutput); got.Value != 21 {
		t.Errorf("value = %d, want 21", got.Value)
	}
}

func TestFirstTuesdayOfMarchKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	matches := parser.Parse("3월 첫째 화요일", ctxAt(d(2017, 1, 1)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got, ok := matches[0].Value.(dimension.TimeOutput)
	if !ok {
		t.Fatalf("value = %T, want TimeOutput", matches[0].Value)
	}
	if !got.Interval.Start.Equal(d(2017, 3, 7)) {
		t.Errorf("start = %v, want 2017-03-07", got.Interval.Start)
	}
	if got.Grain != grain.Day {
		t.Errorf("grain = %v, want Day", got.Grain)
	}
}

func TestTomorrowKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	matches := parser.Parse("내일", ctxAt(d(2017, 1, 15)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got, ok := matches[0].Value.(dimension.TimeOutput)
	if !ok {
		t.Fatalf("value = %T, want TimeOutput", matches[0].Value)
	}
	if !got.Interval.Start.Equal(d(2017, 1, 16)) {
		t.Errorf("start = %v, want 2017-01-16", got.Interval.Start)
	}
	if got.Grain != grain.Day {
		t.Errorf("grain = %v, want Day", got.Grain)
	}
}

func TestMorningToEveningIntervalKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	matches := parser.Parse("아침 9시부터 오후 6시까지", ctxAt(d(2017, 1, 1)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got, ok := matches[0].Value.(dimension.TimeIntervalOutput)
	if !ok {
		t.Fatalf("value = %T, want TimeIntervalOutput", matches[0].Value)
	}
	if !got.HasStart || !got.HasEnd {
		t.Fatalf("interval ends: start=%v end=%v, want both closed", got.HasStart, got.HasEnd)
	}
	if !got.Start.Equal(dt(2017, 1, 1, 9, 0)) {
		t.Errorf("start = %v, want 09:00", got.Start)
	}
	if !got.End.Equal(dt(2017, 1, 1, 18, 0)) {
		t.Errorf("end = %v, want 18:00", got.End)
	}
	if got.Grain != grain.Hour {
		t.Errorf("grain = %v, want Hour", got.Grain)
	}
}

func TestDecimalHoursKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	matches := parser.Parse("3.5시간", ctxAt(d(2017, 1, 1)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got, ok := matches[0].Value.(dimension.DurationOutput)
	if !ok {
		t.Fatalf("value = %T, want DurationOutput", matches[0].Value)
	}
	if got.Minutes() != 210 {
		t.Errorf("duration = %d minutes, want 210", got.Minutes())
	}
}

func TestPlainIntegers(t *testing.T) {
	t.Parallel()

	parser := buildEN(t)
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"7", 7},
		{"1984", 1984},
		{"999999999999999999", 999_999_999_999_999_999},
		{"1000000000000000000", 1_000_000_000_000_000_000},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			matches := parser.ParseWithKindOrder(tt.in, ctxAt(d(2017, 1, 1)), []dimension.Kind{dimension.KindNumber}, true)
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(matches))
			}
			if got := matches[0].Value.(dimension.IntegerOutput); got.Value != tt.want {
				t.Errorf("value = %d, want %d", got.Value, tt.want)
			}
		})
	}
}

func TestHolidaysKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"어린이날", d(2017, 5, 5)},
		{"광복절", d(2017, 8, 15)},
		{"한글날", d(2017, 10, 9)},
		{"크리스마스", d(2017, 12, 25)},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			matches := parser.Parse(tt.in, ctxAt(d(2017, 1, 1)), true)
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
			}
			got, ok := matches[0].Value.(dimension.TimeOutput)
			if !ok {
				t.Fatalf("value = %T, want TimeOutput", matches[0].Value)
			}
			if !got.Interval.Start.Equal(tt.want) {
				t.Errorf("start = %v, want %v", got.Interval.Start, tt.want)
			}
		})
	}
}

func TestHalfPastKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	matches := parser.Parse("9시 반", ctxAt(d(2017, 1, 1)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got, ok := matches[0].Value.(dimension.TimeOutput)
	if !ok {
		t.Fatalf("value = %T, want TimeOutput", matches[0].Value)
	}
	if !got.Interval.Start.Equal(dt(2017, 1, 1, 9, 30)) {
		t.Errorf("start = %v, want 09:30", got.Interval.Start)
	}
}

func TestLatentNeverSurfaces(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	// A bare small integer is a latent time of day; only the number
	// reading may surface.
	matches := parser.Parse("3", ctxAt(d(2017, 1, 1)), false)
	if len(matches) == 0 {
		t.Fatal("no matches at all")
	}
	for _, m := range matches {
		if m.Latent {
			t.Errorf("latent match surfaced: %+v", m)
		}
		if _, isTime := m.Value.(dimension.TimeOutput); isTime {
			t.Errorf("bare integer surfaced as a time: %+v", m)
		}
	}
}

func TestUnrecognizedInputIsEmpty(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	if matches := parser.Parse("", ctxAt(d(2017, 1, 1)), true); len(matches) != 0 {
		t.Errorf("empty input gave %d matches", len(matches))
	}
	if matches := parser.Parse("zzzz", ctxAt(d(2017, 1, 1)), true); len(matches) != 0 {
		t.Errorf("unrecognized input gave %d matches", len(matches))
	}
}

func TestRemoveOverlapProperty(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	matches := parser.Parse("내일 3월 첫째 화요일 10:30", ctxAt(d(2017, 1, 1)), true)
	for i := range matches {
		for j := i + 1; j < len(matches); j++ {
			a, b := matches[i].Range, matches[j].Range
			if a.ByteStart < b.ByteEnd && b.ByteStart < a.ByteEnd {
				t.Errorf("matches %d and %d overlap: %v vs %v", i, j, a, b)
			}
		}
	}
}

func TestByteAndCharRangesAgree(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	input := "내일 10:30"
	matches := parser.Parse(input, ctxAt(d(2017, 1, 1)), true)
	if len(matches) == 0 {
		t.Fatal("no matches")
	}
	runes := []rune(input)
	for _, m := range matches {
		bySlice := input[m.Range.ByteStart:m.Range.ByteEnd]
		byRunes := string(runes[m.Range.CharStart:m.Range.CharEnd])
		if bySlice != byRunes {
			t.Errorf("byte range %q != char range %q", bySlice, byRunes)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	ctx := ctxAt(d(2017, 1, 1))
	input := "3월 첫째 화요일 10:30 내일"

	a := parser.Parse(input, ctx, true)
	b := parser.Parse(input, ctx, true)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parse is not deterministic:\n%v\n%v", a, b)
	}
}

func TestKindOrderFiltersKinds(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	ctx := ctxAt(d(2017, 1, 1))

	// Number-only: the time reading of 그저께 must not appear.
	matches := parser.ParseWithKindOrder("그저께 42", ctx, []dimension.Kind{dimension.KindNumber}, true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	if got := matches[0].Value.(dimension.IntegerOutput); got.Value != 42 {
		t.Errorf("value = %v, want 42", matches[0].Value)
	}

	if matches := parser.ParseWithKindOrder("내일", ctx, nil, true); matches != nil {
		t.Errorf("empty kind list gave %d matches", len(matches))
	}
}

func TestTrainParser(t *testing.T) {
	t.Parallel()

	for _, lang := range []Lang{LangEN, LangKO} {
		parser, err := TrainParser(lang)
		if err != nil {
			t.Fatalf("TrainParser(%q): %v", lang, err)
		}
		if parser.Lang() != lang {
			t.Errorf("Lang() = %q, want %q", parser.Lang(), lang)
		}
	}
}

func TestTrainedParserStillResolvesScenarios(t *testing.T) {
	t.Parallel()

	parser, err := TrainParser(LangKO)
	if err != nil {
		t.Fatalf("TrainParser(ko): %v", err)
	}
	matches := parser.Parse("3월 첫째 화요일", ctxAt(d(2017, 1, 1)), true)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	got := matches[0].Value.(dimension.TimeOutput)
	if !got.Interval.Start.Equal(d(2017, 3, 7)) {
		t.Errorf("start = %v, want 2017-03-07", got.Interval.Start)
	}
}

func TestYesterdayAndDayBeforeKO(t *testing.T) {
	t.Parallel()

	parser := buildKO(t)
	ctx := ctxAt(d(2017, 1, 15))
	cases := []struct {
		in   string
		want time.Time
	}{
		{"어제", d(2017, 1, 14)},
		{"그저께", d(2017, 1, 13)},
		{"모레", d(2017, 1, 17)},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			matches := parser.Parse(tt.in, ctx, true)
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
			}
			got, ok := matches[0].Value.(dimension.TimeOutput)
			if !ok {
				t.Fatalf("value = %T, want TimeOutput", matches[0].Value)
			}
			if !got.Interval.Start.Equal(tt.want) {
				t.Errorf("start = %v, want %v", got.Interval.Start, tt.want)
			}
		})
	}
}
