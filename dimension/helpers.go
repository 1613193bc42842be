// Constructors used by rule productions to build time values. Each
// validates its calendar arguments and returns an error the engine
// treats as a dropped derivation, never a panic.
package dimension

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tempora-nlp/tempora/grain"
	"github.com/tempora-nlp/tempora/moment"
)

const (
	minMonth = 1
	maxMonth = 12
	minDay   = 1
	maxDay   = 31
	maxHour  = 24
	maxMin   = 59
	maxSec   = 59
)

// Month returns the periodic set of month m of every year.
func Month(m int64) (*TimeValue, error) {
	if m < minMonth || m > maxMonth {
		return nil, fmt.Errorf("dimension: month %d out of range", m)
	}
	return &TimeValue{
		Pred:  moment.Month(time.Month(m)),
		Form:  Form{Kind: FormMonth, Month: time.Month(m)},
		Grain: grain.Month,
	}, nil
}

// DayOfWeek returns the periodic set of the given weekday.
func DayOfWeek(wd time.Weekday) (*TimeValue, error) {
	return &TimeValue{
		Pred:  moment.DayOfWeek(wd),
		Form:  Form{Kind: FormDayOfWeek, Weekday: wd},
		Grain: grain.Day,
	}, nil
}

// DayOfMonth returns the periodic set of day d of every month.
func DayOfMonth(d int64) (*TimeValue, error) {
	if d < minDay || d > maxDay {
		return nil, fmt.Errorf("dimension: day of month %d out of range", d)
	}
	return &TimeValue{
		Pred:  moment.DayOfMonth(int(d)),
		Grain: grain.Day,
	}, nil
}

// MonthDay returns the periodic set of the yearly date m/d.
func MonthDay(m, d int64) (*TimeValue, error) {
	if m < minMonth || m > maxMonth {
		return nil, fmt.Errorf("dimension: month %d out of range", m)
	}
	if d < minDay || d > maxDay {
		return nil, fmt.Errorf("dimension: day %d out of range", d)
	}
	return &TimeValue{
		Pred:  moment.MonthDay(time.Month(m), int(d)),
		Grain: grain.Day,
	}, nil
}

// Year returns the single calendar year y. A two-digit year names the
// century nearest the reference instant; values of 100 and above are
// taken literally.
func Year(y int64) (*TimeValue, error) {
	const twoDigit = 100
	pred := moment.Year(int(y))
	if y >= 0 && y < twoDigit {
		short := int(y)
		pred = func(origin moment.Interval, ctx *moment.Context) moment.Walker {
			return moment.Year(snapCentury(short, ctx.Reference.Year()))(origin, ctx)
		}
	}
	return &TimeValue{Pred: pred, Grain: grain.Year}, nil
}

// snapCentury expands a two-digit year to the century whose expansion
// lies nearest the reference year.
func snapCentury(short, refYear int) int {
	const century = 100
	base := refYear / century * century
	best := base + short
	for _, cand := range []int{base - century + short, base + century + short} {
		if abs(cand-refYear) < abs(best-refYear) {
			best = cand
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Hour returns the daily hour reading h; is12 marks a 12-hour clock
// reading, which keeps both day halves as candidates. Hour 24 is the
// midnight at the end of the day.
func Hour(h int64, is12 bool) (*TimeValue, error) {
	if h < 0 || h > maxHour {
		return nil, fmt.Errorf("dimension: hour %d out of range", h)
	}
	if h == maxHour {
		h = 0
		is12 = false
	}
	return &TimeValue{
		Pred:  moment.Hour(int(h), is12),
		Form:  Form{Kind: FormTimeOfDay, FullHour: int(h), HasFullHour: true, Is12Clock: is12},
		Grain: grain.Hour,
	}, nil
}

// HourMinute returns the daily hour:minute reading.
func HourMinute(h, mn int64, is12 bool) (*TimeValue, error) {
	if h < 0 || h >= maxHour {
		return nil, fmt.Errorf("dimension: hour %d out of range", h)
	}
	if mn < 0 || mn > maxMin {
		return nil, fmt.Errorf("dimension: minute %d out of range", mn)
	}
	return &TimeValue{
		Pred:  moment.HourMinute(int(h), int(mn), is12),
		Form:  Form{Kind: FormTimeOfDay},
		Grain: grain.Minute,
	}, nil
}

// HourMinuteSecond returns the daily hour:minute:second reading.
func HourMinuteSecond(h, mn, sec int64, is12 bool) (*TimeValue, error) {
	if h < 0 || h >= maxHour {
		return nil, fmt.Errorf("dimension: hour %d out of range", h)
	}
	if mn < 0 || mn > maxMin {
		return nil, fmt.Errorf("dimension: minute %d out of range", mn)
	}
	if sec < 0 || sec > maxSec {
		return nil, fmt.Errorf("dimension: second %d out of range", sec)
	}
	return &TimeValue{
		Pred:  moment.HourMinuteSecond(int(h), int(mn), int(sec), is12),
		Form:  Form{Kind: FormTimeOfDay},
		Grain: grain.Second,
	}, nil
}

// HourRelativeMinute returns the clock reading offset from a full hour
// by a signed minute count: hour 9 with -10 reads 8:50.
func HourRelativeMinute(fullHour int64, relMin int, is12 bool) (*TimeValue, error) {
	if fullHour < 0 || fullHour > maxHour {
		return nil, fmt.Errorf("dimension: hour %d out of range", fullHour)
	}
	const minutesPerDay = 24 * 60
	total := int(fullHour)*60 + relMin
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	return HourMinute(int64(total/60), int64(total%60), is12)
}

// Second returns the periodic set of second s of every minute.
func Second(s int64) (*TimeValue, error) {
	if s < 0 || s > maxSec {
		return nil, fmt.Errorf("dimension: second %d out of range", s)
	}
	return &TimeValue{
		Pred:  moment.SecondOfMinute(int(s)),
		Grain: grain.Second,
	}, nil
}

// CycleNth returns the g-period n steps from the one containing the
// reference: CycleNth(Day, 1) is tomorrow.
func CycleNth(g grain.Grain, n int64) (*TimeValue, error) {
	return &TimeValue{
		Pred:  moment.CycleNth(g, int(n)),
		Grain: g,
	}, nil
}

// CycleNthAfter returns the g-period n steps after each occurrence of
// base.
func CycleNthAfter(g grain.Grain, n int64, base *TimeValue) (*TimeValue, error) {
	return &TimeValue{
		Pred:  moment.CycleNthAfter(g, int(n), base.Pred, false),
		Grain: g,
	}, nil
}

// CycleNthAfterNotImmediate is CycleNthAfter without counting a partial
// leading period: the first week of March is the first week wholly
// inside it.
func CycleNthAfterNotImmediate(g grain.Grain, n int64, base *TimeValue) (*TimeValue, error) {
	return &TimeValue{
		Pred:  moment.CycleNthAfter(g, int(n), base.Pred, true),
		Grain: g,
	}, nil
}

// CycleN returns the block of n whole g-periods adjacent to the one
// containing the reference: CycleN(Week, -3) covers the three weeks
// just ended.
func CycleN(g grain.Grain, n int64) (*TimeValue, error) {
	return &TimeValue{
		Pred:  moment.CycleN(g, int(n)),
		Grain: g,
	}, nil
}

// YearMonthDay returns the single calendar date y-m-d.
func YearMonthDay(y, m, d int64) (*TimeValue, error) {
	md, err := MonthDay(m, d)
	if err != nil {
		return nil, err
	}
	yr, err := Year(y)
	if err != nil {
		return nil, err
	}
	return yr.Intersect(md)
}

// CycleLastOf returns, for each occurrence of outer, the last c-period
// that overlaps it, clipped to outer ("the last week of March"); the
// result can be shorter than a whole c-period.
func CycleLastOf(c *CycleValue, outer *TimeValue) (*TimeValue, error) {
	return &TimeValue{
		Pred:  moment.TakeLastOf(moment.Cycle(c.Grain), outer.Pred),
		Grain: c.Grain,
	}, nil
}

// DecimalHourInMinute converts a decimal hour reading split at the
// point ("3", "5") into whole minutes.
func DecimalHourInMinute(intPart, fracPart string) (int64, error) {
	const minutesPerHour = 60
	v, err := strconv.ParseFloat(intPart+"."+fracPart, 64)
	if err != nil {
		return 0, fmt.Errorf("dimension: decimal hour %s.%s: %w", intPart, fracPart, err)
	}
	return int64(v * minutesPerHour), nil
}
