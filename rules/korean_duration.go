// Korean duration and calendar-cycle rules.
package rules

import (
	"fmt"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
	"github.com/tempora-nlp/tempora/grain"
)

// unitRule registers a bare unit-of-duration word.
func unitRule(b *engine.RuleSetBuilder, name, pattern string, g grain.Grain) {
	b.Rule(name,
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.UnitOfDurationValue{Grain: g}, nil
		},
		b.Reg(pattern),
	)
}

// cycleRule registers a bare cycle word.
func cycleRule(b *engine.RuleSetBuilder, name, pattern string, g grain.Grain) {
	b.Rule(name,
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.CycleValue{Grain: g}, nil
		},
		b.Reg(pattern),
	)
}

// minuteDuration builds an exact duration counted in minutes.
func minuteDuration(minutes int64) *dimension.DurationValue {
	return &dimension.DurationValue{Period: dimension.PeriodOf(grain.Minute, minutes)}
}

func addKoreanDurations(b *engine.RuleSetBuilder) {
	unitRule(b, "second (unit-of-duration)", `초`, grain.Second)
	unitRule(b, "minute (unit-of-duration)", `분`, grain.Minute)
	unitRule(b, "hour (unit-of-duration)", `시간?`, grain.Hour)
	unitRule(b, "day (unit-of-duration)", `날|일간?`, grain.Day)
	unitRule(b, "week (unit-of-duration)", `주(?:일|간)?`, grain.Week)
	unitRule(b, "month (unit-of-duration)", `달간?|개월`, grain.Month)
	unitRule(b, "year (unit-of-duration)", `해|연간?|년간?`, grain.Year)

	b.Rule("<duration>동안",
		func(c []engine.Capture) (dimension.Value, error) {
			return durationOf(c[0]), nil
		},
		engine.DurationCheck(),
		b.Reg(`동안|사이에`),
	)
	b.Rule("half an hour",
		func([]engine.Capture) (dimension.Value, error) {
			return minuteDuration(30), nil
		},
		engine.CycleCheck(func(cy *dimension.CycleValue) bool { return cy.Grain == grain.Hour }),
		b.Reg(`반`),
	)
	b.Rule("a day - 하루",
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.DurationValue{Period: dimension.PeriodOf(grain.Day, 1)}, nil
		},
		b.Reg(`하루`),
	)
	b.Rule("<integer> <unit-of-duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.DurationValue{
				Period: dimension.PeriodOf(unitOf(c[1]).Grain, intOf(c[0]).Value),
			}, nil
		},
		engine.IntegerCheckMin(0),
		engine.UnitOfDurationCheck(),
	)
	b.Rule("number.number hours",
		func(c []engine.Capture) (dimension.Value, error) {
			minutes, err := dimension.DecimalHourInMinute(c[0].Group(1), c[0].Group(2))
			if err != nil {
				return nil, err
			}
			return minuteDuration(minutes), nil
		},
		b.Reg(`(\d+)\.(\d+)`),
		b.Reg(`시간`),
	)
	b.Rule("<integer> and an half hours",
		func(c []engine.Capture) (dimension.Value, error) {
			const minutesPerHour = 60
			return minuteDuration(intOf(c[0]).Value*minutesPerHour + 30), nil
		},
		engine.IntegerCheckMin(0),
		b.Reg(`시간반`),
	)
	b.Rule("in <duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			return durationOf(c[0]).InPresent(), nil
		},
		engine.DurationCheck(),
		b.Reg(`후|뒤|되면|지나(?:고|서|면)|있다가`),
	)
	b.Rule("after <duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			return durationOf(c[0]).InPresent().WithDirection(dimension.After), nil
		},
		engine.DurationCheck(),
		b.Reg(`(?:이 ?)후|부터`),
	)
	b.Rule("<duration> from now",
		func(c []engine.Capture) (dimension.Value, error) {
			return durationOf(c[1]).InPresent(), nil
		},
		b.Reg(`지금부터|현시간부터`),
		engine.DurationCheck(),
		b.Reg(`후|뒤`),
	)
	b.Rule("<duration> ago",
		func(c []engine.Capture) (dimension.Value, error) {
			return durationOf(c[0]).Ago(), nil
		},
		engine.DurationCheck(),
		b.Reg(`이?전`),
	)
	b.Rule("about <duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			d := *durationOf(c[1])
			d.Precision = dimension.Approximate
			return &d, nil
		},
		b.Reg(`대충|약`),
		engine.DurationCheck(),
	)
	b.Rule("exactly <duration>",
		func(c []engine.Capture) (dimension.Value, error) {
			d := *durationOf(c[1])
			d.Precision = dimension.Exact
			return &d, nil
		},
		b.Reg(`정확히|딱`),
		engine.DurationCheck(),
	)
	b.Rule("Specific number of days",
		func(c []engine.Capture) (dimension.Value, error) {
			n, ok := nativeDayWords[c[0].Group(1)]
			if !ok {
				return nil, fmt.Errorf("rules: unknown day word %q", c[0].Group(1))
			}
			return &dimension.DurationValue{Period: dimension.PeriodOf(grain.Day, n)}, nil
		},
		b.Reg(`(하루|이틀|양일|(?:사|나)흘|(?:닷|엿)새|(?:이|여드|아흐)레|열흘|열하루)`),
	)
}

func addKoreanCycles(b *engine.RuleSetBuilder) {
	cycleRule(b, "second (cycle)", `초`, grain.Second)
	cycleRule(b, "minute (cycle)", `분`, grain.Minute)
	cycleRule(b, "hour (cycle)", `시간?`, grain.Hour)
	cycleRule(b, "day (cycle)", `날|일간?`, grain.Day)
	cycleRule(b, "week (cycle)", `주(?:간|일)?`, grain.Week)
	cycleRule(b, "month (cycle)", `(?:달|개?월)`, grain.Month)
	cycleRule(b, "quarter (cycle)", `분기`, grain.Quarter)
	cycleRule(b, "year (cycle)", `해|(?:연|년)간?`, grain.Year)

	b.Rule("this <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(cycleOf(c[1]).Grain, 0))
		},
		b.Reg(`이번?|금|올|돌아오는`),
		engine.CycleCheck(),
	)
	b.Rule("last <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(cycleOf(c[1]).Grain, -1))
		},
		b.Reg(`지난|작|전|저번|거`),
		engine.CycleCheck(),
	)
	b.Rule("next <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNth(cycleOf(c[1]).Grain, 1))
		},
		b.Reg(`다음|차|오는|내|새|훗`),
		engine.CycleCheck(),
	)
	// The pattern here reads "next", not "last"; it is kept as shipped
	// and the production still takes the final cycle of the time span.
	b.Rule("<time> next <cycle> (last-of)",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleLastOf(cycleOf(c[2]), timeOf(c[0])))
		},
		engine.TimeCheck(),
		b.Reg(`다음|오는|차|내`),
		engine.CycleCheck(),
	)
	b.Rule("<time> <ordinal> <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNthAfterNotImmediate(
				cycleOf(c[2]).Grain, ordinalOf(c[1]).Value-1, timeOf(c[0])))
		},
		engine.TimeCheck(),
		engine.OrdinalCheck(),
		engine.CycleCheck(),
	)
	b.Rule("the day after tomorrow - 내일모레",
		func([]engine.Capture) (dimension.Value, error) {
			tomorrow, err := dimension.CycleNth(grain.Day, 1)
			if err != nil {
				return nil, err
			}
			return asValue(dimension.CycleNthAfter(grain.Day, 1, tomorrow))
		},
		b.Reg(`(?:내일)?모레|명후일|다음다음 ?날`),
	)
	b.Rule("the day before yesterday - 엊그제",
		func([]engine.Capture) (dimension.Value, error) {
			yesterday, err := dimension.CycleNth(grain.Day, -1)
			if err != nil {
				return nil, err
			}
			return asValue(dimension.CycleNthAfter(grain.Day, -1, yesterday))
		},
		b.Reg(`그(?:제|재)|그저께|전전 ?날|재작일`),
	)
	b.Rule("last n <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleN(cycleOf(c[2]).Grain, -intOf(c[1]).Value))
		},
		b.Reg(`지난`),
		engine.IntegerCheck(1, 9999),
		engine.CycleCheck(),
	)
	b.Rule("next n <cycle>",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleN(cycleOf(c[2]).Grain, intOf(c[1]).Value))
		},
		b.Reg(`다음`),
		engine.IntegerCheck(1, 9999),
		engine.CycleCheck(),
	)
	b.Rule("<1..4> quarter",
		func(c []engine.Capture) (dimension.Value, error) {
			year, err := dimension.CycleNth(grain.Year, 0)
			if err != nil {
				return nil, err
			}
			return asValue(dimension.CycleNthAfter(grain.Quarter, intOf(c[0]).Value-1, year))
		},
		engine.IntegerCheck(1, 4),
		engine.CycleCheck(func(cy *dimension.CycleValue) bool { return cy.Grain == grain.Quarter }),
	)
	b.Rule("<year> <1..4> quarter",
		func(c []engine.Capture) (dimension.Value, error) {
			return asValue(dimension.CycleNthAfter(grain.Quarter, intOf(c[1]).Value-1, timeOf(c[0])))
		},
		engine.TimeCheck(),
		engine.IntegerCheck(1, 4),
		engine.CycleCheck(func(cy *dimension.CycleValue) bool { return cy.Grain == grain.Quarter }),
	)
}
