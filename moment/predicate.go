package moment

import (
	"slices"
	"time"

	"github.com/tempora-nlp/tempora/grain"
)

// seedAt returns a second-grain origin interval at t, used to restart a
// predicate walk inside another interval.
func seedAt(t time.Time) Interval {
	return Interval{Start: t, Grain: grain.Second}
}

// ---------- elementary families ----------

// Cycle matches every g-period: every day, every week, every month.
func Cycle(g grain.Grain) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		anchor := grain.Truncate(origin.Start, g, ctx.WeekStart)
		return Walker{
			Forward:  ascend(anchor, g, 1, ctx),
			Backward: descend(grain.Add(anchor, g, -1), g, 1, ctx),
		}
	}
}

// Year matches the single calendar year y.
func Year(y int) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, ctx.Reference.Location())
		return singleWalker(NewInterval(start, grain.Year), origin)
	}
}

// Month matches month m of every year.
func Month(m time.Month) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		const monthsPerYear = 12
		first := time.Date(origin.Start.Year(), m, 1, 0, 0, 0, 0, origin.Start.Location())
		if !grain.Add(first, grain.Month, 1).After(origin.Start) {
			first = first.AddDate(1, 0, 0)
		}
		return Walker{
			Forward:  ascend(first, grain.Month, monthsPerYear, ctx),
			Backward: descend(first.AddDate(-1, 0, 0), grain.Month, monthsPerYear, ctx),
		}
	}
}

// DayOfWeek matches every occurrence of the given weekday.
func DayOfWeek(wd time.Weekday) Predicate {
	const daysPerWeek = 7
	return func(origin Interval, ctx *Context) Walker {
		base := grain.Truncate(origin.Start, grain.Day, ctx.WeekStart)
		delta := (int(wd) - int(base.Weekday()) + daysPerWeek) % daysPerWeek
		first := base.AddDate(0, 0, delta)
		return Walker{
			Forward:  ascend(first, grain.Day, daysPerWeek, ctx),
			Backward: descend(first.AddDate(0, 0, -daysPerWeek), grain.Day, daysPerWeek, ctx),
		}
	}
}

// MonthDay matches day d of month m every year, skipping years where
// the date does not exist (February 29 outside leap years).
func MonthDay(m time.Month, d int) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		loc := origin.Start.Location()
		return split(origin, func(from time.Time, forward bool) Stream {
			if forward {
				maxYear := ctx.maxTime().Year()
				return func(yield func(Interval) bool) {
					for y := from.Year() - 1; y <= maxYear; y++ {
						iv, ok := validMonthDay(y, m, d, loc)
						if ok && !yield(iv) {
							return
						}
					}
				}
			}
			minYear := ctx.minTime().Year()
			return func(yield func(Interval) bool) {
				for y := from.Year() + 1; y >= minYear; y-- {
					iv, ok := validMonthDay(y, m, d, loc)
					if ok && !yield(iv) {
						return
					}
				}
			}
		})
	}
}

// DayOfMonth matches day d of every month, skipping months too short
// to contain it.
func DayOfMonth(d int) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		loc := origin.Start.Location()
		return split(origin, func(from time.Time, forward bool) Stream {
			anchor := grain.Truncate(from, grain.Month, ctx.WeekStart)
			if forward {
				maxT := ctx.maxTime()
				return func(yield func(Interval) bool) {
					for m := grain.Add(anchor, grain.Month, -1); !m.After(maxT); m = grain.Add(m, grain.Month, 1) {
						iv, ok := validMonthDay(m.Year(), m.Month(), d, loc)
						if ok && !yield(iv) {
							return
						}
					}
				}
			}
			minT := ctx.minTime()
			return func(yield func(Interval) bool) {
				for m := grain.Add(anchor, grain.Month, 1); !m.Before(minT); m = grain.Add(m, grain.Month, -1) {
					iv, ok := validMonthDay(m.Year(), m.Month(), d, loc)
					if ok && !yield(iv) {
						return
					}
				}
			}
		})
	}
}

// validMonthDay builds the day interval for y-m-d, rejecting dates
// that time.Date would normalize away (February 30 does not exist).
func validMonthDay(y int, m time.Month, d int, loc *time.Location) (Interval, bool) {
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if t.Day() != d || t.Month() != m {
		return Interval{}, false
	}
	return NewInterval(t, grain.Day), true
}

// clockHours expands an hour under a 12-hour clock: "3시" can name
// 03:00 or 15:00, "12시" midnight or noon.
func clockHours(h int, is12 bool) []int {
	const half = 12
	if is12 && h <= half {
		a, b := h%half, h%half+half
		if a == b {
			return []int{a}
		}
		return []int{a, b}
	}
	return []int{h % 24}
}

// clockTimes matches a daily clock reading at the given grain: hours
// is the candidate hour list, mn and sec refine the instant.
func clockTimes(hours []int, mn, sec int, g grain.Grain) Predicate {
	hours = slices.Clone(hours)
	slices.Sort(hours)
	return func(origin Interval, ctx *Context) Walker {
		loc := origin.Start.Location()
		return split(origin, func(from time.Time, forward bool) Stream {
			day := grain.Truncate(from, grain.Day, ctx.WeekStart)
			if forward {
				maxT := ctx.maxTime()
				return func(yield func(Interval) bool) {
					for d := day.AddDate(0, 0, -1); !d.After(maxT); d = d.AddDate(0, 0, 1) {
						for _, h := range hours {
							t := time.Date(d.Year(), d.Month(), d.Day(), h, mn, sec, 0, loc)
							if !yield(NewInterval(t, g)) {
								return
							}
						}
					}
				}
			}
			minT := ctx.minTime()
			return func(yield func(Interval) bool) {
				for d := day.AddDate(0, 0, 1); !d.Before(minT); d = d.AddDate(0, 0, -1) {
					for i := len(hours) - 1; i >= 0; i-- {
						t := time.Date(d.Year(), d.Month(), d.Day(), hours[i], mn, sec, 0, loc)
						if !yield(NewInterval(t, g)) {
							return
						}
					}
				}
			}
		})
	}
}

// Hour matches a daily hour reading. Under a 12-hour clock the reading
// is ambiguous and both day halves are candidates.
func Hour(h int, is12 bool) Predicate {
	return clockTimes(clockHours(h, is12), 0, 0, grain.Hour)
}

// HourMinute matches a daily hour:minute reading.
func HourMinute(h, mn int, is12 bool) Predicate {
	return clockTimes(clockHours(h, is12), mn, 0, grain.Minute)
}

// HourMinuteSecond matches a daily hour:minute:second reading.
func HourMinuteSecond(h, mn, sec int, is12 bool) Predicate {
	return clockTimes(clockHours(h, is12), mn, sec, grain.Second)
}

// SecondOfMinute matches second s of every minute.
func SecondOfMinute(s int) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		loc := origin.Start.Location()
		return split(origin, func(from time.Time, forward bool) Stream {
			minute := grain.Truncate(from, grain.Minute, ctx.WeekStart)
			if forward {
				maxT := ctx.maxTime()
				return func(yield func(Interval) bool) {
					for t := minute.Add(-time.Minute); !t.After(maxT); t = t.Add(time.Minute) {
						if !yield(NewInterval(t.In(loc).Add(time.Duration(s)*time.Second), grain.Second)) {
							return
						}
					}
				}
			}
			minT := ctx.minTime()
			return func(yield func(Interval) bool) {
				for t := minute.Add(time.Minute); !t.Before(minT); t = t.Add(-time.Minute) {
					if !yield(NewInterval(t.In(loc).Add(time.Duration(s)*time.Second), grain.Second)) {
						return
					}
				}
			}
		})
	}
}

// ---------- combinators ----------

// Intersect matches the common occurrences of a coarse and a fine
// family: the part of every fine interval that falls inside a coarse
// interval. Callers pass the coarser-grained family first; the result
// does not depend on the order the shared occurrences were found in,
// which keeps intersection commutative.
func Intersect(coarse, fine Predicate) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		forward := func(yield func(Interval) bool) {
			for c := range coarse(origin, ctx).Forward {
				for _, ov := range within(c, fine, ctx) {
					if !ov.End().After(origin.Start) {
						continue
					}
					if !yield(ov) {
						return
					}
				}
			}
		}
		backward := func(yield func(Interval) bool) {
			// The coarse occurrence containing the origin may still hold
			// fine occurrences in the past.
			if c, ok := First(coarse(origin, ctx).Forward); ok && c.Start.Before(origin.Start) {
				hits := within(c, fine, ctx)
				for i := len(hits) - 1; i >= 0; i-- {
					if hits[i].End().After(origin.Start) {
						continue
					}
					if !yield(hits[i]) {
						return
					}
				}
			}
			for c := range coarse(origin, ctx).Backward {
				hits := within(c, fine, ctx)
				for i := len(hits) - 1; i >= 0; i-- {
					if !yield(hits[i]) {
						return
					}
				}
			}
		}
		return Walker{Forward: forward, Backward: backward}
	}
}

// within collects the overlaps of fine occurrences with the coarse
// interval c, ascending.
func within(c Interval, fine Predicate, ctx *Context) []Interval {
	var hits []Interval
	for f := range fine(seedAt(c.Start), ctx).Forward {
		if !f.Start.Before(c.End()) {
			break
		}
		if ov, ok := overlap(c, f); ok {
			hits = append(hits, ov)
		}
	}
	return hits
}

// TakeTheNth picks the n-th occurrence relative to the origin: n=0 is
// the occurrence containing or following it, negative n addresses the
// past.
func TakeTheNth(n int, p Predicate) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		w := p(origin, ctx)
		var iv Interval
		var ok bool
		if n >= 0 {
			iv, ok = Nth(w.Forward, n)
		} else {
			iv, ok = Nth(w.Backward, -n-1)
		}
		if !ok {
			return Walker{Forward: emptyStream, Backward: emptyStream}
		}
		return singleWalker(iv, origin)
	}
}

// TakeLastOf matches, for every occurrence of outer, the final
// occurrence of inner inside it.
func TakeLastOf(inner, outer Predicate) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		lastWithin := func(c Interval) (Interval, bool) {
			hits := within(c, inner, ctx)
			if len(hits) == 0 {
				return Interval{}, false
			}
			return hits[len(hits)-1], true
		}
		mapStream := func(s Stream) Stream {
			return func(yield func(Interval) bool) {
				for c := range s {
					if iv, ok := lastWithin(c); ok && !yield(iv) {
						return
					}
				}
			}
		}
		w := outer(origin, ctx)
		return Walker{Forward: mapStream(w.Forward), Backward: mapStream(w.Backward)}
	}
}

// SpanTo matches, for every occurrence of from, the span reaching the
// next occurrence of to. Inclusive spans run through the end of the to
// occurrence, exclusive ones stop at its start. Because the to stream
// is sought strictly after the from start, an end reading of hour 0
// lands on the following midnight.
func SpanTo(from, to Predicate, inclusive bool) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		span := func(a Interval) (Interval, bool) {
			for b := range to(seedAt(a.Start), ctx).Forward {
				if !b.Start.After(a.Start) {
					continue
				}
				end := b.Start
				if inclusive {
					end = b.End()
				}
				return Span(a.Start, end, grain.Finer(a.Grain, b.Grain)), true
			}
			return Interval{}, false
		}
		mapStream := func(s Stream) Stream {
			return func(yield func(Interval) bool) {
				for a := range s {
					if iv, ok := span(a); ok && !yield(iv) {
						return
					}
				}
			}
		}
		w := from(origin, ctx)
		return Walker{Forward: mapStream(w.Forward), Backward: mapStream(w.Backward)}
	}
}

// CycleNth matches the single g-period n steps from the one containing
// the origin: CycleNth(Day, 1) is tomorrow.
func CycleNth(g grain.Grain, n int) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		start := grain.Add(grain.Truncate(origin.Start, g, ctx.WeekStart), g, n)
		return singleWalker(NewInterval(start, g), origin)
	}
}

// CycleNthAfter matches, for every occurrence of base, the g-period n
// steps after the one containing its start. With notImmediate, a
// partial leading period (one that starts before the base does) is not
// counted: the first week of March is the first week wholly inside it.
func CycleNthAfter(g grain.Grain, n int, base Predicate, notImmediate bool) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		shift := func(b Interval) Interval {
			t0 := grain.Truncate(b.Start, g, ctx.WeekStart)
			if notImmediate && t0.Before(b.Start) {
				t0 = grain.Add(t0, g, 1)
			}
			return NewInterval(grain.Add(t0, g, n), g)
		}
		mapStream := func(s Stream) Stream {
			return func(yield func(Interval) bool) {
				for b := range s {
					if !yield(shift(b)) {
						return
					}
				}
			}
		}
		w := base(origin, ctx)
		return Walker{Forward: mapStream(w.Forward), Backward: mapStream(w.Backward)}
	}
}

// CycleN matches the block of n whole g-periods adjacent to the one
// containing the origin: positive n runs from the next period, negative
// n covers the n periods just ended.
func CycleN(g grain.Grain, n int) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		t0 := grain.Truncate(origin.Start, g, ctx.WeekStart)
		var iv Interval
		if n >= 0 {
			iv = Span(grain.Add(t0, g, 1), grain.Add(t0, g, n+1), g)
		} else {
			iv = Span(grain.Add(t0, g, n), t0, g)
		}
		return singleWalker(iv, origin)
	}
}

// ShiftBy matches every occurrence of base moved by a fixed calendar
// offset, expressed per grain ("three days after Christmas"). The
// result takes the given grain.
func ShiftBy(base Predicate, offsets [grain.Count]int64, g grain.Grain) Predicate {
	return func(origin Interval, ctx *Context) Walker {
		shift := func(b Interval) Interval {
			t := b.Start
			for gr := grain.Grain(0); gr < grain.Count; gr++ {
				if offsets[gr] != 0 {
					t = grain.Add(t, gr, int(offsets[gr]))
				}
			}
			return NewInterval(t, g)
		}
		mapStream := func(s Stream) Stream {
			return func(yield func(Interval) bool) {
				for b := range s {
					if !yield(shift(b)) {
						return
					}
				}
			}
		}
		w := base(origin, ctx)
		return Walker{Forward: mapStream(w.Forward), Backward: mapStream(w.Backward)}
	}
}
