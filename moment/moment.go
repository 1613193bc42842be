// Package moment implements the periodic-set algebra behind temporal
// expressions.
//
// A temporal description such as "the first Tuesday of March" denotes
// not one instant but a repeating family of calendar intervals. This
// package represents such a family as a Predicate: a function that,
// given an origin interval and a Context, produces a Walker — two lazy
// streams of concrete intervals, one walking forward in time from the
// origin and one walking backward.
//
// Constructors build elementary families (every Tuesday, every March,
// every day at 9:00); combinators compose them (Intersect, SpanTo,
// TakeTheNth, TakeLastOf, cycle offsets). Resolution against a
// reference instant is a matter of pulling the first interval of the
// appropriate stream.
//
// All streams are bounded by the context horizon, so every enumeration
// terminates. Predicates are immutable once built and safe for
// concurrent use by multiple goroutines.
package moment

import (
	"fmt"
	"time"

	"github.com/tempora-nlp/tempora/grain"
)

// DefaultHorizonYears bounds stream enumeration either side of the
// reference when the context does not say otherwise.
const DefaultHorizonYears = 200

// Context carries the reference instant and the calendar knobs a walk
// needs. The zero value is not usable; construct with NewContext.
type Context struct {
	// Reference is the instant relative times resolve against.
	// Its location is the timezone of every produced interval.
	Reference time.Time

	// WeekStart is the first day of the week (Monday for Korean).
	WeekStart time.Weekday

	// HorizonYears bounds enumeration either side of Reference.
	HorizonYears int
}

// NewContext returns a context anchored at ref with the given week
// start and the default horizon.
func NewContext(ref time.Time, weekStart time.Weekday) *Context {
	return &Context{Reference: ref, WeekStart: weekStart, HorizonYears: DefaultHorizonYears}
}

// minTime returns the lower enumeration bound.
func (c *Context) minTime() time.Time {
	return c.Reference.AddDate(-c.horizon(), 0, 0)
}

// maxTime returns the upper enumeration bound.
func (c *Context) maxTime() time.Time {
	return c.Reference.AddDate(c.horizon(), 0, 0)
}

func (c *Context) horizon() int {
	if c.HorizonYears > 0 {
		return c.HorizonYears
	}
	return DefaultHorizonYears
}

// ReferenceInterval returns the second-grain interval containing the
// reference instant, the usual origin for a top-level walk.
func (c *Context) ReferenceInterval() Interval {
	return Interval{Start: grain.Truncate(c.Reference, grain.Second, c.WeekStart), Grain: grain.Second}
}

// Interval is one concrete occurrence of a temporal family: a start
// instant at a grain, with an optional explicit end for spans.
type Interval struct {
	Start time.Time
	Grain grain.Grain

	end    time.Time
	hasEnd bool
}

// NewInterval returns a one-grain-long interval starting at start.
func NewInterval(start time.Time, g grain.Grain) Interval {
	return Interval{Start: start, Grain: g}
}

// Span returns an interval with an explicit end.
func Span(start, end time.Time, g grain.Grain) Interval {
	return Interval{Start: start, Grain: g, end: end, hasEnd: true}
}

// End returns the exclusive end of the interval: the explicit end for
// spans, otherwise the start moved by one grain.
func (iv Interval) End() time.Time {
	if iv.hasEnd {
		return iv.end
	}
	return grain.Add(iv.Start, iv.Grain, 1)
}

// IsSpan reports whether the interval carries an explicit end.
func (iv Interval) IsSpan() bool {
	return iv.hasEnd
}

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End())
}

// overlap returns the common part of a and b, if any.
func overlap(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End()
	if b.End().Before(end) {
		end = b.End()
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	g := grain.Finer(a.Grain, b.Grain)
	// A full fine interval inside the coarse one stays a plain interval;
	// a genuine clip keeps its explicit end.
	if start.Equal(a.Start) && end.Equal(a.End()) && !a.hasEnd {
		return Interval{Start: start, Grain: g}, true
	}
	if start.Equal(b.Start) && end.Equal(b.End()) && !b.hasEnd {
		return Interval{Start: start, Grain: g}, true
	}
	return Span(start, end, g), true
}

// String returns a debug representation, e.g. Day[2017-03-07].
func (iv Interval) String() string {
	const layout = "2006-01-02T15:04:05"
	if iv.hasEnd {
		return fmt.Sprintf("%s[%s..%s]", iv.Grain, iv.Start.Format(layout), iv.End().Format(layout))
	}
	return fmt.Sprintf("%s[%s]", iv.Grain, iv.Start.Format(layout))
}
