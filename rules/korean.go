// The Korean grammar catalogue: time expressions, durations, calendar
// cycles and numbers.
package rules

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
	"github.com/tempora-nlp/tempora/grain"
)

// asValue narrows a time-valued production result to the engine's
// value type.
func asValue(t *dimension.TimeValue, err error) (dimension.Value, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}

// notPrefixed guards number children against double prefixes.
func notPrefixed(v dimension.Value) bool { return !dimension.NumberPrefixed(v) }

// notSuffixed guards number children against double suffixes.
func notSuffixed(v dimension.Value) bool { return !dimension.NumberSuffixed(v) }

// koreanWeekdays maps the single-character weekday names used before
// 요일.
var koreanWeekdays = map[string]time.Weekday{
	"월": time.Monday,
	"화": time.Tuesday,
	"수": time.Wednesday,
	"목": time.Thursday,
	"금": time.Friday,
	"토": time.Saturday,
	"일": time.Sunday,
}

// partOfDay builds the latent span covering [from, to) hours of the
// day.
func partOfDay(from, to *dimension.TimeValue) (dimension.Value, error) {
	sp, err := from.SpanTo(to, false)
	if err != nil {
		return nil, err
	}
	return sp.MarkLatent().WithForm(dimension.Form{Kind: dimension.FormPartOfDay}), nil
}

// hourSpan is the partOfDay shorthand for whole-hour boundaries.
func hourSpan(fromH, toH int64) (dimension.Value, error) {
	lo, err := dimension.Hour(fromH, false)
	if err != nil {
		return nil, err
	}
	hi, err := dimension.Hour(toH, false)
	if err != nil {
		return nil, err
	}
	return partOfDay(lo, hi)
}

// clockHalf restricts an ambiguous 12-hour reading to one half of the
// day.
func clockHalf(tod *dimension.TimeValue, fromH, toH int64) (dimension.Value, error) {
	lo, err := dimension.Hour(fromH, false)
	if err != nil {
		return nil, err
	}
	hi, err := dimension.Hour(toH, false)
	if err != nil {
		return nil, err
	}
	period, err := lo.SpanTo(hi, false)
	if err != nil {
		return nil, err
	}
	out, err := period.Intersect(tod)
	if err != nil {
		return nil, err
	}
	return out.WithForm(dimension.Form{Kind: dimension.FormTimeOfDay}), nil
}

// monthDayRule registers a fixed-date rule (holidays).
func monthDayRule(b *engine.RuleSetBuilder, name, pattern string, m, d int64) {
	b.Rule(name,
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.MonthDay(m, d))
		},
		b.Reg(pattern),
	)
}

func addKoreanTime(b *engine.RuleSetBuilder) {
	b.Rule("intersect",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).Intersect(timeOf(c[1])))
		},
		engine.TimeCheck(engine.NotLatent),
		engine.TimeCheck(engine.NotLatent),
	)
	b.Rule(`intersect by ","`,
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).Intersect(timeOf(c[2])))
		},
		engine.TimeCheck(engine.NotLatent),
		b.Reg(`,`),
		engine.TimeCheck(engine.NotLatent),
	)
	b.Rule(`intersect by "의"`,
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).Intersect(timeOf(c[2])))
		},
		engine.TimeCheck(engine.NotLatent),
		b.Reg(`의`),
		engine.TimeCheck(engine.NotLatent),
	)
	b.Rule("<date>에",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]), nil
		},
		engine.TimeCheck(),
		b.Reg(`에|때`),
	)
	b.Rule("<date>동안",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).NotLatent(), nil
		},
		engine.TimeCheck(),
		b.Reg(`동안`),
	)
	b.Rule("<named-day>에",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormDayOfWeek)),
		b.Reg(`에`),
	)
	b.Rule("<named-month>에",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormMonth)),
		b.Reg(`에`),
	)
	b.Rule("day-of-week",
		func(c []engine.Capture) (dimension.Value, error) {
			wd, ok := koreanWeekdays[c[0].Group(1)]
			if !ok {
				return nil, fmt.Errorf("rules: unknown weekday %q", c[0].Group(1))
			}
			return asValue(dimension.DayOfWeek(wd))
		},
		b.Reg(`(월|화|수|목|금|토|일)(요일|욜)`),
	)
	b.Rule("month",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.Month(intOf(c[0]).Value))
		},
		engine.IntegerCheck(1, 12),
		b.Reg(`월`),
	)
	b.Rule("day",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.DayOfMonth(intOf(c[0]).Value))
		},
		engine.IntegerCheck(1, 31),
		b.Reg(`일`),
	)
	b.Rule("day with korean number - 십일..삼십일일",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := parseSinoKorean(c[0].Group(1))
			if err != nil {
				return nil, err
			}
			return asValue(dimension.DayOfMonth(n))
		},
		b.Reg(`([이삼]?십[일이삼사오육칠팔구]?)일`),
	)
	b.Rule("day with korean number - 일일..구일",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := parseSinoKorean(c[0].Group(1))
			if err != nil {
				return nil, err
			}
			return asValue(dimension.DayOfMonth(n))
		},
		b.Reg(`([일이삼사오육칠팔구])일`),
	)

	monthDayRule(b, "New Year's Day", `신정|설날`, 1, 1)
	monthDayRule(b, "Independence Movement Day", `삼일절`, 3, 1)
	monthDayRule(b, "Children's Day", `어린이날`, 5, 5)
	monthDayRule(b, "Memorial Day", `현충일`, 6, 6)
	monthDayRule(b, "Constitution Day", `제헌절`, 6, 17)
	monthDayRule(b, "Liberation Day", `광복절`, 8, 15)
	monthDayRule(b, "National Foundation Day", `개천절`, 10, 3)
	monthDayRule(b, "Hangul Day", `한글날`, 10, 9)
	monthDayRule(b, "christmas eve", `(크리스마스)?이브`, 12, 24)
	monthDayRule(b, "christmas", `크리스마스`, 12, 25)

	b.Rule("absorption of , after named day",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormDayOfWeek)),
		b.Reg(`,`),
	)
	b.Rule("now",
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(grain.Second, 0))
		},
		b.Reg(`방금|지금|막|이제`),
	)
	b.Rule("today",
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(grain.Day, 0))
		},
		b.Reg(`오늘|당일|금일`),
	)
	b.Rule("tomorrow",
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(grain.Day, 1))
		},
		b.Reg(`내일|명일|낼`),
	)
	b.Rule("yesterday",
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(grain.Day, -1))
		},
		b.Reg(`어제|작일|어저께`),
	)
	b.Rule("end of <time>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).TheNth(1))
		},
		engine.TimeCheck(),
		b.Reg(`말`),
	)
	b.Rule("this <day-of-week>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[1]).TheNth(0))
		},
		b.Reg(`이번\s*주?|돌아오는|금주`),
		engine.TimeCheck(engine.FormIs(dimension.FormDayOfWeek)),
	)
	b.Rule("this <time>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[1]).TheNth(0))
		},
		b.Reg(`이번|이|금|올|돌아오는`),
		engine.TimeCheck(),
	)
	b.Rule("next <time>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[1]).TheNth(1))
		},
		b.Reg(`다음|오는`),
		engine.TimeCheck(engine.NotLatent),
	)
	b.Rule("last <time>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[1]).TheNth(-1))
		},
		b.Reg(`전|저번|지난`),
		engine.TimeCheck(),
	)
	b.Rule("<time> 마지막 <day-of-week>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[2]).LastOf(timeOf(c[0])))
		},
		engine.TimeCheck(),
		b.Reg(`마지막`),
		engine.TimeCheck(engine.FormIs(dimension.FormDayOfWeek)),
	)
	b.Rule("<time> 마지막 <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleLastOf(cycleOf(c[2]), timeOf(c[0])))
		},
		engine.TimeCheck(),
		b.Reg(`마지막`),
		engine.CycleCheck(),
	)
	b.Rule("<time> nth <time> - 3월 첫째 화요일",
		func(c []engine.Capture) (dimension.Value, error) {
			both, err := timeOf(c[0]).Intersect(timeOf(c[2]))
			if err != nil {
				return nil, err
			}
			return asValue(both.TheNth(int(ordinalOf(c[1]).Value) - 1))
		},
		engine.TimeCheck(),
		engine.OrdinalCheck(),
		engine.TimeCheck(),
	)
	b.Rule("nth <time> - 3월 첫째 화요일",
		func(c []engine.Capture) (dimension.Value, error) {
			both, err := timeOf(c[0]).Intersect(timeOf(c[3]))
			if err != nil {
				return nil, err
			}
			return asValue(both.TheNth(int(ordinalOf(c[2]).Value) - 1))
		},
		engine.TimeCheck(),
		b.Reg(`의`),
		engine.OrdinalCheck(),
		engine.TimeCheck(),
	)
	b.Rule("<time> nth <cycle> - 3월 첫째 화요일",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNthAfterNotImmediate(
				cycleOf(c[2]).Grain, ordinalOf(c[1]).Value-1, timeOf(c[0])))
		},
		engine.TimeCheck(),
		engine.OrdinalCheck(),
		engine.CycleCheck(),
	)
	b.Rule("<time> nth of <cycle> - 3월 첫째 화요일",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNthAfterNotImmediate(
				cycleOf(c[3]).Grain, ordinalOf(c[2]).Value-1, timeOf(c[0])))
		},
		engine.TimeCheck(),
		b.Reg(`의`),
		engine.OrdinalCheck(),
		engine.CycleCheck(),
	)
	b.Rule("year",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.Year(intOf(c[0]).Value))
		},
		engine.IntegerCheckMin(1),
		b.Reg(`년`),
	)
	b.Rule("time-of-day (latent)",
		func(c []engine.Capture) (dimension.Value, error) {
			t, err := dimension.Hour(intOf(c[0]).Value, true)
			if err != nil {
				return nil, err
			}
			return t.MarkLatent(), nil
		},
		engine.IntegerCheck(0, 23),
	)
	b.Rule("time-of-day",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.Hour(intOf(c[0]).Value, true))
		},
		engine.IntegerCheck(0, 24),
		b.Reg(`시`),
	)
	b.Rule("<time-of-day>에",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).NotLatent(), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
		b.Reg(`에`),
	)
	b.Rule("<time-of-day> 정각",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[1]).NotLatent(), nil
		},
		b.Reg(`정각`),
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
	)
	b.Rule("hh:mm",
		func(c []engine.Capture) (dimension.Value, error) {
			h, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			if err != nil {
				return nil, err
			}
			mn, err := strconv.ParseInt(c[0].Group(2), 10, 64)
			if err != nil {
				return nil, err
			}
			return asValue(dimension.HourMinute(h, mn, true))
		},
		b.Reg(`((?:[01]?\d)|(?:2[0-3]))[:.]([0-5]\d)`),
	)
	b.Rule("hh:mm:ss",
		func(c []engine.Capture) (dimension.Value, error) {
			h, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			if err != nil {
				return nil, err
			}
			mn, err := strconv.ParseInt(c[0].Group(2), 10, 64)
			if err != nil {
				return nil, err
			}
			sec, err := strconv.ParseInt(c[0].Group(3), 10, 64)
			if err != nil {
				return nil, err
			}
			return asValue(dimension.HourMinuteSecond(h, mn, sec, true))
		},
		b.Reg(`((?:[01]?\d)|(?:2[0-3]))[:.]([0-5]\d)[:.]([0-5]\d)`),
	)
	b.Rule("<time-of-day> am",
		func(c []engine.Capture) (dimension.Value, error) {
			return clockHalf(timeOf(c[1]), 0, 12)
		},
		b.Reg(`오전|아침|새벽`),
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
	)
	b.Rule("<time-of-day> pm",
		func(c []engine.Capture) (dimension.Value, error) {
			return clockHalf(timeOf(c[1]), 12, 0)
		},
		b.Reg(`오후|저녁|밤`),
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
	)
	b.Rule("noon",
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.Hour(12, false))
		},
		b.Reg(`정오|오정|한낮`),
	)
	b.Rule("midnight|EOD|end of day",
		func([]engine.Capture) (dimension.Value, error) {
			return asValue(dimension.Hour(0, false))
		},
		b.Reg(`자정|영시`),
	)
	b.Rule("half (relative minutes)",
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.RelativeMinuteValue{Minutes: 30}, nil
		},
		b.Reg(`반`),
	)
	b.Rule("number (as relative minutes)",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.RelativeMinuteValue{Minutes: int(intOf(c[0]).Value)}, nil
		},
		engine.IntegerCheck(1, 59),
		b.Reg(`분`),
	)
	b.Rule("<hour-of-day> <integer> (as relative minutes)",
		func(c []engine.Capture) (dimension.Value, error) {
			fullHour, is12, _ := timeOf(c[0]).Form.TimeOfDayForm()
			return asValue(dimension.HourRelativeMinute(int64(fullHour), relMinOf(c[1]).Minutes, is12))
		},
		engine.TimeCheck(engine.HasFullHour),
		engine.RelativeMinuteCheck(),
	)
	b.Rule("<hour-of-day> <integer>",
		func(c []engine.Capture) (dimension.Value, error) {
			fullHour, is12, _ := timeOf(c[0]).Form.TimeOfDayForm()
			return asValue(dimension.HourMinute(int64(fullHour), intOf(c[1]).Value, is12))
		},
		engine.TimeCheck(engine.HasFullHour),
		engine.IntegerCheck(0, 59),
	)
	b.Rule("<integer> (hour-of-day) relative minutes 전",
		func(c []engine.Capture) (dimension.Value, error) {
			fullHour, is12, _ := timeOf(c[0]).Form.TimeOfDayForm()
			return asValue(dimension.HourRelativeMinute(int64(fullHour), -relMinOf(c[1]).Minutes, is12))
		},
		engine.TimeCheck(engine.HasFullHour),
		engine.RelativeMinuteCheck(),
		b.Reg(`전`),
	)
	b.Rule("seconds",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.Second(intOf(c[0]).Value))
		},
		engine.IntegerCheck(1, 59),
		b.Reg(`초`),
	)
	b.Rule("yyyy/mm/dd",
		func(c []engine.Capture) (dimension.Value, error) {
			return ymdFromGroups(c[0])
		},
		b.Reg(`(\d{2,4})[-/](0?[1-9]|1[0-2])[/-](3[01]|[12]\d|0?[1-9])`),
	)
	b.Rule("yyyy-mm-dd",
		func(c []engine.Capture) (dimension.Value, error) {
			return ymdFromGroups(c[0])
		},
		b.Reg(`(\d{2,4})-(0?[1-9]|1[0-2])-(3[01]|[12]\d|0?[1-9])`),
	)
	b.Rule("mm/dd",
		func(c []engine.Capture) (dimension.Value, error) {
			m, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			if err != nil {
				return nil, err
			}
			d, err := strconv.ParseInt(c[0].Group(2), 10, 64)
			if err != nil {
				return nil, err
			}
			return asValue(dimension.MonthDay(m, d))
		},
		b.Reg(`(0?[1-9]|1[0-2])/(3[01]|[12]\d|0?[1-9])`),
	)

	addKoreanPartsOfDay(b)

	b.Rule("week-end",
		func([]engine.Capture) (dimension.Value, error) {
			friday, err := dimension.DayOfWeek(time.Friday)
			if err != nil {
				return nil, err
			}
			evening, err := dimension.Hour(18, false)
			if err != nil {
				return nil, err
			}
			start, err := friday.Intersect(evening)
			if err != nil {
				return nil, err
			}
			monday, err := dimension.DayOfWeek(time.Monday)
			if err != nil {
				return nil, err
			}
			midnight, err := dimension.Hour(0, false)
			if err != nil {
				return nil, err
			}
			end, err := monday.Intersect(midnight)
			if err != nil {
				return nil, err
			}
			return asValue(start.SpanTo(end, false))
		},
		b.Reg(`주말`),
	)

	addKoreanSeasons(b)

	b.Rule("<time> approximately",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).WithPrecision(dimension.Approximate), nil
		},
		engine.TimeCheck(),
		b.Reg(`경`),
	)
	b.Rule("<time-of-day> approximately",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).NotLatent().WithPrecision(dimension.Approximate), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
		b.Reg(`정도|쯤`),
	)
	b.Rule("about <time-of-day>",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[1]).NotLatent().WithPrecision(dimension.Approximate), nil
		},
		b.Reg(`대충|약`),
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
	)
	b.Rule("exactly <time-of-day>",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).NotLatent().WithPrecision(dimension.Exact), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
		b.Reg(`정각`),
	)
	b.Rule("<datetime> - <datetime> (interval)",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).SpanTo(timeOf(c[2]), false))
		},
		engine.TimeCheck(engine.NotLatent),
		b.Reg(`\-|\~`),
		engine.TimeCheck(engine.NotLatent),
	)
	b.Rule("<time-of-day> - <time-of-day> (interval)",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).SpanTo(timeOf(c[2]), false))
		},
		engine.TimeCheck(engine.NotLatent, engine.FormIs(dimension.FormTimeOfDay)),
		b.Reg(`\-|\~`),
		engine.TimeCheck(engine.FormIs(dimension.FormTimeOfDay)),
	)
	b.Rule("within <duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			return spanFromNow(durationOf(c[0]))
		},
		engine.DurationCheck(),
		b.Reg(`이내에?`),
	)
	b.Rule("within <duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			return spanFromNow(durationOf(c[0]))
		},
		engine.DurationCheck(),
		b.Reg(`(?:안|내)에?`),
	)
	b.Rule("by <time> - 까지",
		func(c []engine.Capture) (dimension.Value, error) {
			now, err := dimension.CycleNth(grain.Second, 0)
			if err != nil {
				return nil, err
			}
			return asValue(now.SpanTo(timeOf(c[0]), false))
		},
		engine.TimeCheck(),
		b.Reg(`까지`),
	)
	b.Rule("<time-of-day>이전",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).WithDirection(dimension.Before), nil
		},
		engine.TimeCheck(),
		b.Reg(`이?전`),
	)
	b.Rule("after <time-of-day>",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).WithDirection(dimension.After), nil
		},
		engine.TimeCheck(),
		b.Reg(`지나(?:서|고)|되면|이?후에?|뒤에?`),
	)
	b.Rule("since <time-of-day>",
		func(c []engine.Capture) (dimension.Value, error) {
			last, err := timeOf(c[0]).TheNth(-1)
			if err != nil {
				return nil, err
			}
			return last.WithDirection(dimension.After), nil
		},
		engine.TimeCheck(),
		b.Reg(`(이래|이후)로?`),
	)
	b.Rule("from <time> to <time>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[0]).SpanTo(timeOf(c[2]), false))
		},
		engine.TimeCheck(),
		b.Reg(`부터`),
		engine.TimeCheck(),
		b.Reg(`까지`),
	)
	b.Rule("during the last n cycle",
		func(c []engine.Capture) (dimension.Value, error) {
			g := cycleOf(c[2]).Grain
			start, err := dimension.CycleNth(g, -intOf(c[1]).Value)
			if err != nil {
				return nil, err
			}
			end, err := dimension.CycleNth(g, 0)
			if err != nil {
				return nil, err
			}
			return asValue(start.SpanTo(end, false))
		},
		b.Reg(`과거`),
		engine.IntegerCheckMin(0),
		engine.CycleCheck(),
	)
	b.Rule("during the next n cycle",
		func(c []engine.Capture) (dimension.Value, error) {
			g := cycleOf(c[2]).Grain
			start, err := dimension.CycleNth(g, 1)
			if err != nil {
				return nil, err
			}
			end, err := dimension.CycleNth(g, intOf(c[1]).Value)
			if err != nil {
				return nil, err
			}
			return asValue(start.SpanTo(end, true))
		},
		b.Reg(`앞으로`),
		engine.IntegerCheckMin(1),
		engine.CycleCheck(),
	)
	b.Rule("<duration> from <time>",
		func(c []engine.Capture) (dimension.Value, error) {
			return durationOf(c[2]).AfterTime(timeOf(c[0])), nil
		},
		engine.TimeCheck(),
		b.Reg(`보다`),
		engine.DurationCheck(),
		b.Reg(`후에|뒤에`),
	)
}

// spanFromNow builds the open interval from the reference to one
// duration out.
func spanFromNow(d *dimension.DurationValue) (dimension.Value, error) {
	now, err := dimension.CycleNth(grain.Second, 0)
	if err != nil {
		return nil, err
	}
	return asValue(now.SpanTo(d.InPresent(), false))
}

// ymdFromGroups reads the year/month/day capture groups of the numeric
// date patterns.
func ymdFromGroups(c engine.Capture) (dimension.Value, error) {
	y, err := strconv.ParseInt(c.Group(1), 10, 64)
	if err != nil {
		return nil, err
	}
	m, err := strconv.ParseInt(c.Group(2), 10, 64)
	if err != nil {
		return nil, err
	}
	d, err := strconv.ParseInt(c.Group(3), 10, 64)
	if err != nil {
		return nil, err
	}
	return asValue(dimension.YearMonthDay(y, m, d))
}

// addKoreanPartsOfDay registers the latent day-part spans.
func addKoreanPartsOfDay(b *engine.RuleSetBuilder) {
	spans := []struct {
		name    string
		pattern string
		from    int64
		to      int64
	}{
		{"early morning", `이른 아침|조조|아침 일찍`, 4, 9},
		{"morning", `아침|오전`, 4, 12},
		{"late morning", `늦은 아침|오전 늦게|아침 늦게|아침 느지막이`, 11, 12},
		{"early afternoon", `이른 오후|낮곁|오후 들어|오후 일찍`, 12, 16},
		{"afternoon", `오후`, 12, 19},
		{"late afternoon", `늦은 오후|오후 늦게`, 17, 19},
		{"early evening", `이른 저녁|초저녁|저녁 일찍`, 18, 21},
		{"evening", `저녁`, 18, 0},
		{"late evening", `늦은 저녁|저녁 늦게`, 21, 0},
		{"early night", `이른 밤|밤에 일찍`, 21, 0},
		{"night", `밤`, 19, 0},
		{"late night", `늦은 밤|밤 늦게|깊은 밤`, 1, 4},
		{"breakfast", `아침(?: ?(?:식사|밥))?|조반`, 6, 9},
		{"brunch", `브런취|브런치|아침 겸 점심|늦은 아침|아점`, 11, 14},
		{"lunch", `점심(?: ?(?:식사|밥))?`, 12, 14},
	}
	for _, sp := range spans {
		b.Rule(sp.name,
			func(from, to int64) engine.Production {
				return func([]engine.Capture) (dimension.Value, error) {
					return hourSpan(from, to)
				}
			}(sp.from, sp.to),
			b.Reg(sp.pattern),
		)
	}

	b.Rule("dinner",
		func([]engine.Capture) (dimension.Value, error) {
			start, err := dimension.HourMinute(17, 30, false)
			if err != nil {
				return nil, err
			}
			end, err := dimension.Hour(21, false)
			if err != nil {
				return nil, err
			}
			return partOfDay(start, end)
		},
		b.Reg(`저녁(?: ?(?:식사|밥))?`),
	)

	b.Rule("in|during the <part-of-day>",
		func(c []engine.Capture) (dimension.Value, error) {
			return timeOf(c[0]).NotLatent(), nil
		},
		engine.TimeCheck(engine.FormIs(dimension.FormPartOfDay)),
		b.Reg(`에|동안`),
	)
	b.Rule("<time> <part-of-day>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(timeOf(c[1]).Intersect(timeOf(c[0])))
		},
		engine.TimeCheck(),
		engine.TimeCheck(engine.FormIs(dimension.FormPartOfDay)),
	)
}

// addKoreanSeasons registers the four season spans.
func addKoreanSeasons(b *engine.RuleSetBuilder) {
	seasons := []struct {
		pattern string
		fromM   int64
		fromD   int64
		toM     int64
		toD     int64
	}{
		{`여름`, 6, 21, 9, 23},
		{`가을`, 9, 23, 12, 21},
		{`겨울`, 12, 21, 3, 20},
		{`봄`, 3, 20, 6, 21},
	}
	for _, s := range seasons {
		b.Rule("season",
			func(fm, fd, tm, td int64) engine.Production {
				return func([]engine.Capture) (dimension.Value, error) {
					start, err := dimension.MonthDay(fm, fd)
					if err != nil {
						return nil, err
					}
					end, err := dimension.MonthDay(tm, td)
					if err != nil {
						return nil, err
					}
					return asValue(start.SpanTo(end, false))
				}
			}(s.fromM, s.fromD, s.toM, s.toD),
			b.Reg(s.pattern),
		)
	}
}
