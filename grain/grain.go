// Package grain defines the calendar grain enumeration shared by the
// moment algebra and the dimension value model.
//
// A grain is the finest calendar unit at which a time or duration is
// defined, from Second up to Year. Grains are ordered finest to
// coarsest; comparison helpers and calendar arithmetic (truncation to
// the start of a grain period, stepping by whole periods) live here so
// that every package agrees on period boundaries.
//
// All functions are safe for concurrent use by multiple goroutines.
package grain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Grain is a calendar unit.
type Grain int

const (
	Second Grain = iota
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year

	// Count is the number of defined grains, for tables indexed by Grain.
	Count
)

// grainNames maps Grain values to their string names.
var grainNames = [...]string{
	Second:  "Second",
	Minute:  "Minute",
	Hour:    "Hour",
	Day:     "Day",
	Week:    "Week",
	Month:   "Month",
	Quarter: "Quarter",
	Year:    "Year",
}

// grainFromName maps string names back to Grain values.
var grainFromName = map[string]Grain{
	"Second":  Second,
	"Minute":  Minute,
	"Hour":    Hour,
	"Day":     Day,
	"Week":    Week,
	"Month":   Month,
	"Quarter": Quarter,
	"Year":    Year,
}

// String returns the name of the grain.
func (g Grain) String() string {
	if g >= 0 && int(g) < len(grainNames) {
		return grainNames[g]
	}
	return fmt.Sprintf("Grain(%d)", int(g))
}

// MarshalJSON encodes the grain as a JSON string (e.g. "Day").
func (g Grain) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "Day") into a Grain.
func (g *Grain) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	gg, ok := grainFromName[s]
	if !ok {
		return fmt.Errorf("grain: unknown grain: %q", s)
	}
	*g = gg
	return nil
}

// Finer returns the finer of a and b.
func Finer(a, b Grain) Grain {
	if a < b {
		return a
	}
	return b
}

// Coarser returns the coarser of a and b.
func Coarser(a, b Grain) Grain {
	if a > b {
		return a
	}
	return b
}

const (
	monthsPerQuarter = 3
	daysPerWeek      = 7
)

// Truncate returns the start of the g-period containing t.
// Week periods start on weekStart; all other grains ignore it.
// The result keeps the location of t.
func Truncate(t time.Time, g Grain, weekStart time.Weekday) time.Time {
	loc := t.Location()
	switch g {
	case Second:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
	case Minute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	case Hour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	case Day:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case Week:
		back := int(t.Weekday()) - int(weekStart)
		if back < 0 {
			back += daysPerWeek
		}
		d := t.AddDate(0, 0, -back)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case Quarter:
		m := (int(t.Month()) - 1) / monthsPerQuarter * monthsPerQuarter
		return time.Date(t.Year(), time.Month(m+1), 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// Add returns t moved by n whole g-periods. Calendar grains use
// AddDate so month and year steps follow calendar lengths; clock grains
// use fixed durations.
func Add(t time.Time, g Grain, n int) time.Time {
	switch g {
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, n*daysPerWeek)
	case Month:
		return t.AddDate(0, n, 0)
	case Quarter:
		return t.AddDate(0, n*monthsPerQuarter, 0)
	case Year:
		return t.AddDate(n, 0, 0)
	}
	return t
}
