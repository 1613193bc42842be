package moment

import (
	"iter"
	"time"

	"github.com/tempora-nlp/tempora/grain"
)

// Stream is a lazy sequence of intervals.
type Stream = iter.Seq[Interval]

// Walker is the pair of streams a predicate produces around an origin:
// Forward yields the occurrence containing-or-after the origin and
// everything later, ascending; Backward yields strictly earlier
// occurrences, descending.
type Walker struct {
	Forward  Stream
	Backward Stream
}

// Predicate is a periodic family of intervals, evaluated lazily around
// an origin interval.
type Predicate func(origin Interval, ctx *Context) Walker

// First returns the first interval of s.
func First(s Stream) (Interval, bool) {
	for iv := range s {
		return iv, true
	}
	return Interval{}, false
}

// Nth returns the n-th interval of s (0-based).
func Nth(s Stream, n int) (Interval, bool) {
	i := 0
	for iv := range s {
		if i == n {
			return iv, true
		}
		i++
	}
	return Interval{}, false
}

// emptyStream yields nothing.
func emptyStream(func(Interval) bool) {}

// singleStream yields exactly iv.
func singleStream(iv Interval) Stream {
	return func(yield func(Interval) bool) {
		yield(iv)
	}
}

// singleWalker routes one interval to the forward or backward stream
// depending on its position relative to the origin.
func singleWalker(iv Interval, origin Interval) Walker {
	if iv.End().After(origin.Start) {
		return Walker{Forward: singleStream(iv), Backward: emptyStream}
	}
	return Walker{Forward: emptyStream, Backward: singleStream(iv)}
}

// ascend yields intervals of grain g starting at first, stepping by
// step grains, until the context's upper bound.
func ascend(first time.Time, g grain.Grain, step int, ctx *Context) Stream {
	maxT := ctx.maxTime()
	return func(yield func(Interval) bool) {
		for t := first; !t.After(maxT); t = grain.Add(t, g, step) {
			if !yield(Interval{Start: t, Grain: g}) {
				return
			}
		}
	}
}

// descend yields intervals of grain g starting at first, stepping back
// by step grains, until the context's lower bound.
func descend(first time.Time, g grain.Grain, step int, ctx *Context) Stream {
	minT := ctx.minTime()
	return func(yield func(Interval) bool) {
		for t := first; !t.Before(minT); t = grain.Add(t, g, -step) {
			if !yield(Interval{Start: t, Grain: g}) {
				return
			}
		}
	}
}

// split seeds a walker from a stream of ascending candidate intervals
// anchored before the origin: candidates whose end is after the origin
// start go forward, the rest backward in reverse order. The candidates
// callback must yield intervals in ascending order starting no later
// than the occurrence containing the origin.
//
// It is the generic builder for instant-valued families that are not a
// simple arithmetic progression (hours with a 12-hour clock, month-day
// pairs that skip invalid years).
func split(origin Interval, candidates func(from time.Time, forward bool) Stream) Walker {
	return Walker{
		Forward: func(yield func(Interval) bool) {
			for iv := range candidates(origin.Start, true) {
				if !iv.End().After(origin.Start) {
					continue
				}
				if !yield(iv) {
					return
				}
			}
		},
		Backward: func(yield func(Interval) bool) {
			for iv := range candidates(origin.Start, false) {
				if iv.End().After(origin.Start) {
					continue
				}
				if !yield(iv) {
					return
				}
			}
		},
	}
}
