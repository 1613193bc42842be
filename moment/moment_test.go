// Tests for the periodic-set algebra against a fixed reference.
package moment

import (
	"testing"
	"time"

	"github.com/tempora-nlp/tempora/grain"
)

// ref is Sunday 2017-01-01 00:00 UTC across all tests.
var ref = time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)

func testCtx() *Context {
	return NewContext(ref, time.Monday)
}

// firstForward resolves the first forward interval of p at the
// reference.
func firstForward(t *testing.T, p Predicate) Interval {
	t.Helper()
	ctx := testCtx()
	iv, ok := First(p(ctx.ReferenceInterval(), ctx).Forward)
	if !ok {
		t.Fatal("no forward interval")
	}
	return iv
}

// firstBackward resolves the first backward interval of p.
func firstBackward(t *testing.T, p Predicate) Interval {
	t.Helper()
	ctx := testCtx()
	iv, ok := First(p(ctx.ReferenceInterval(), ctx).Backward)
	if !ok {
		t.Fatal("no backward interval")
	}
	return iv
}

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dt(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestIntervalEnd(t *testing.T) {
	t.Parallel()

	iv := NewInterval(d(2017, 3, 7), grain.Day)
	if want := d(2017, 3, 8); !iv.End().Equal(want) {
		t.Errorf("End() = %v, want %v", iv.End(), want)
	}

	sp := Span(d(2017, 3, 7), d(2017, 3, 10), grain.Day)
	if !sp.IsSpan() {
		t.Error("Span not reported as span")
	}
	if want := d(2017, 3, 10); !sp.End().Equal(want) {
		t.Errorf("span End() = %v, want %v", sp.End(), want)
	}
}

func TestCycle(t *testing.T) {
	t.Parallel()

	day := firstForward(t, Cycle(grain.Day))
	if !day.Start.Equal(d(2017, 1, 1)) {
		t.Errorf("first forward day = %v", day)
	}
	prev := firstBackward(t, Cycle(grain.Day))
	if !prev.Start.Equal(d(2016, 12, 31)) {
		t.Errorf("first backward day = %v", prev)
	}

	week := firstForward(t, Cycle(grain.Week))
	if !week.Start.Equal(d(2016, 12, 26)) { // Monday of the current week
		t.Errorf("first forward week = %v", week)
	}
}

func TestDayOfWeek(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		wd       time.Weekday
		forward  time.Time
		backward time.Time
	}{
		{"sunday contains today", time.Sunday, d(2017, 1, 1), d(2016, 12, 25)},
		{"tuesday", time.Tuesday, d(2017, 1, 3), d(2016, 12, 27)},
		{"saturday", time.Saturday, d(2017, 1, 7), d(2016, 12, 31)},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fwd := firstForward(t, DayOfWeek(tt.wd))
			if !fwd.Start.Equal(tt.forward) {
				t.Errorf("forward = %v, want %v", fwd.Start, tt.forward)
			}
			bwd := firstBackward(t, DayOfWeek(tt.wd))
			if !bwd.Start.Equal(tt.backward) {
				t.Errorf("backward = %v, want %v", bwd.Start, tt.backward)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	t.Parallel()

	mar := firstForward(t, Month(time.March))
	if !mar.Start.Equal(d(2017, 3, 1)) || mar.Grain != grain.Month {
		t.Errorf("first March = %v", mar)
	}
	prev := firstBackward(t, Month(time.March))
	if !prev.Start.Equal(d(2016, 3, 1)) {
		t.Errorf("previous March = %v", prev)
	}
}

func TestMonthDaySkipsInvalidYears(t *testing.T) {
	t.Parallel()

	ctx := testCtx()
	w := MonthDay(time.February, 29)(ctx.ReferenceInterval(), ctx)
	var got []time.Time
	for iv := range w.Forward {
		got = append(got, iv.Start)
		if len(got) == 2 {
			break
		}
	}
	want := []time.Time{d(2020, 2, 29), d(2024, 2, 29)}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("leap day %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDayOfMonth(t *testing.T) {
	t.Parallel()

	// Day 31 skips the short months.
	ctx := testCtx()
	w := DayOfMonth(31)(ctx.ReferenceInterval(), ctx)
	var got []time.Time
	for iv := range w.Forward {
		got = append(got, iv.Start)
		if len(got) == 3 {
			break
		}
	}
	want := []time.Time{d(2017, 1, 31), d(2017, 3, 31), d(2017, 5, 31)}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("day 31 #%d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHourTwelveHourClock(t *testing.T) {
	t.Parallel()

	// A 12-hour reading keeps both halves of the day.
	ctx := testCtx()
	w := Hour(9, true)(ctx.ReferenceInterval(), ctx)
	var got []time.Time
	for iv := range w.Forward {
		got = append(got, iv.Start)
		if len(got) == 3 {
			break
		}
	}
	want := []time.Time{dt(2017, 1, 1, 9, 0), dt(2017, 1, 1, 21, 0), dt(2017, 1, 2, 9, 0)}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("hour occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}

	// A 24-hour reading names a single instant per day.
	only := firstForward(t, Hour(21, false))
	if !only.Start.Equal(dt(2017, 1, 1, 21, 0)) {
		t.Errorf("24h reading = %v", only.Start)
	}
}

func TestIntersectMonthWeekday(t *testing.T) {
	t.Parallel()

	// Tuesdays of March; 2017-03-01 is a Wednesday.
	p := Intersect(Month(time.March), DayOfWeek(time.Tuesday))
	got := firstForward(t, p)
	if !got.Start.Equal(d(2017, 3, 7)) || got.Grain != grain.Day {
		t.Errorf("first Tuesday of March = %v", got)
	}
}

func TestIntersectBackwardWithinContaining(t *testing.T) {
	t.Parallel()

	// At 15:00, afternoon hours before now sit inside the current day.
	at := dt(2017, 1, 1, 15, 0)
	ctx := NewContext(at, time.Monday)
	p := Intersect(Cycle(grain.Day), Hour(14, false))
	w := p(ctx.ReferenceInterval(), ctx)
	iv, ok := First(w.Backward)
	if !ok {
		t.Fatal("no backward interval")
	}
	if !iv.Start.Equal(dt(2017, 1, 1, 14, 0)) {
		t.Errorf("backward 14:00 = %v", iv.Start)
	}
}

func TestTakeTheNth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		n    int
		want time.Time
	}{
		{"zero is containing-or-next", 0, d(2017, 1, 1)},
		{"one steps over", 1, d(2017, 1, 8)},
		{"minus one is the recent past", -1, d(2016, 12, 25)},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveEither(t, TakeTheNth(tt.n, DayOfWeek(time.Sunday)))
			if !got.Start.Equal(tt.want) {
				t.Errorf("nth(%d) = %v, want %v", tt.n, got.Start, tt.want)
			}
		})
	}
}

// resolveEither picks forward first, then backward, the resolver's
// rule.
func resolveEither(t *testing.T, p Predicate) Interval {
	t.Helper()
	ctx := testCtx()
	w := p(ctx.ReferenceInterval(), ctx)
	if iv, ok := First(w.Forward); ok {
		return iv
	}
	iv, ok := First(w.Backward)
	if !ok {
		t.Fatal("no interval at all")
	}
	return iv
}

func TestTakeLastOf(t *testing.T) {
	t.Parallel()

	// Last Friday of March 2017 is the 31st.
	p := TakeLastOf(DayOfWeek(time.Friday), Month(time.March))
	got := firstForward(t, p)
	if !got.Start.Equal(d(2017, 3, 31)) {
		t.Errorf("last Friday of March = %v", got.Start)
	}
}

func TestSpanToWrapsMidnight(t *testing.T) {
	t.Parallel()

	// Noon through midnight: the end reading lands on the next day.
	p := SpanTo(Hour(12, false), Hour(0, false), false)
	got := firstForward(t, p)
	if !got.Start.Equal(dt(2017, 1, 1, 12, 0)) {
		t.Errorf("span start = %v", got.Start)
	}
	if !got.End().Equal(d(2017, 1, 2)) {
		t.Errorf("span end = %v, want next midnight", got.End())
	}
}

func TestSpanToInclusive(t *testing.T) {
	t.Parallel()

	from := Hour(9, false)
	to := Hour(18, false)

	excl := firstForward(t, SpanTo(from, to, false))
	if !excl.End().Equal(dt(2017, 1, 1, 18, 0)) {
		t.Errorf("exclusive end = %v", excl.End())
	}

	incl := firstForward(t, SpanTo(from, to, true))
	if !incl.End().Equal(dt(2017, 1, 1, 19, 0)) {
		t.Errorf("inclusive end = %v", incl.End())
	}
}

func TestCycleNth(t *testing.T) {
	t.Parallel()

	tomorrow := resolveEither(t, CycleNth(grain.Day, 1))
	if !tomorrow.Start.Equal(d(2017, 1, 2)) {
		t.Errorf("tomorrow = %v", tomorrow.Start)
	}
	yesterday := resolveEither(t, CycleNth(grain.Day, -1))
	if !yesterday.Start.Equal(d(2016, 12, 31)) {
		t.Errorf("yesterday = %v", yesterday.Start)
	}
}

func TestCycleNthAfterNotImmediate(t *testing.T) {
	t.Parallel()

	// The first week wholly inside March 2017: March 1 is a Wednesday,
	// so the partial week is skipped and the first full week starts
	// Monday the 6th.
	p := CycleNthAfter(grain.Week, 0, Month(time.March), true)
	got := firstForward(t, p)
	if !got.Start.Equal(d(2017, 3, 6)) {
		t.Errorf("first full week of March = %v", got.Start)
	}
}

func TestCycleN(t *testing.T) {
	t.Parallel()

	// The three weeks just ended, weeks starting Monday.
	past := resolveEither(t, CycleN(grain.Week, -3))
	if !past.Start.Equal(d(2016, 12, 5)) || !past.End().Equal(d(2016, 12, 26)) {
		t.Errorf("last 3 weeks = %v", past)
	}

	// The next two days.
	next := resolveEither(t, CycleN(grain.Day, 2))
	if !next.Start.Equal(d(2017, 1, 2)) || !next.End().Equal(d(2017, 1, 4)) {
		t.Errorf("next 2 days = %v", next)
	}
}

func TestShiftBy(t *testing.T) {
	t.Parallel()

	var offsets [grain.Count]int64
	offsets[grain.Day] = 3
	p := ShiftBy(CycleNth(grain.Second, 0), offsets, grain.Day)
	got := resolveEither(t, p)
	if !got.Start.Equal(d(2017, 1, 4)) {
		t.Errorf("3 days out = %v", got.Start)
	}
}

func TestStreamsTerminate(t *testing.T) {
	t.Parallel()

	// An intersection with no common occurrence drains without
	// hanging: day 30 of February never exists.
	ctx := testCtx()
	ctx.HorizonYears = 5
	p := Intersect(Month(time.February), DayOfMonth(30))
	w := p(ctx.ReferenceInterval(), ctx)
	count := 0
	for range w.Forward {
		count++
	}
	if count != 0 {
		t.Errorf("impossible date produced %d intervals", count)
	}
}
