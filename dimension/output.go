// Resolution of abstract values against a reference instant.
package dimension

import (
	"fmt"
	"time"

	"github.com/tempora-nlp/tempora/grain"
	"github.com/tempora-nlp/tempora/moment"
)

// ParsingContext carries the reference instant and calendar knobs the
// resolver needs. The reference's location is the timezone of every
// resolved interval.
type ParsingContext struct {
	// Reference is the instant relative expressions resolve against.
	Reference time.Time

	// WeekStart is the first day of the week; Korean weeks start on
	// Monday.
	WeekStart time.Weekday

	// HorizonYears bounds periodic-set enumeration; zero means the
	// moment package default.
	HorizonYears int
}

// NewParsingContext returns a context anchored at ref with weeks
// starting on Monday. A zero ref means the current instant.
func NewParsingContext(ref time.Time) *ParsingContext {
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	return &ParsingContext{Reference: ref, WeekStart: time.Monday}
}

// momentContext builds the walk context for this parsing context.
func (c *ParsingContext) momentContext() *moment.Context {
	mc := moment.NewContext(c.Reference, c.WeekStart)
	if c.HorizonYears > 0 {
		mc.HorizonYears = c.HorizonYears
	}
	return mc
}

// Output is a context-resolved, externally visible value.
type Output interface {
	isOutput()
}

// IntegerOutput is a resolved integer.
type IntegerOutput struct {
	Value int64
}

// FloatOutput is a resolved single-precision real.
type FloatOutput struct {
	Value float32
}

// OrdinalOutput is a resolved 1-based position.
type OrdinalOutput struct {
	Value int64
}

// DurationOutput is a resolved calendar period.
type DurationOutput struct {
	Period    Period
	Precision Precision
}

// TimeOutput is a single resolved calendar interval.
type TimeOutput struct {
	Interval  moment.Interval
	Grain     grain.Grain
	Precision Precision
}

// TimeIntervalOutput is a resolved interval with independently open or
// closed ends: "3시 이후" has no end, "3시 전" no start.
type TimeIntervalOutput struct {
	Start     time.Time
	End       time.Time
	HasStart  bool
	HasEnd    bool
	Grain     grain.Grain
	Precision Precision
}

func (IntegerOutput) isOutput()      {}
func (FloatOutput) isOutput()        {}
func (OrdinalOutput) isOutput()      {}
func (DurationOutput) isOutput()     {}
func (TimeOutput) isOutput()         {}
func (TimeIntervalOutput) isOutput() {}

// Minutes returns the period reduced to whole minutes, for periods
// defined at minute grain or coarser using fixed-length units.
func (o DurationOutput) Minutes() int64 {
	const (
		minutesPerHour = 60
		hoursPerDay    = 24
		daysPerWeek    = 7
	)
	m := o.Period[grain.Minute]
	m += o.Period[grain.Hour] * minutesPerHour
	m += o.Period[grain.Day] * hoursPerDay * minutesPerHour
	m += o.Period[grain.Week] * daysPerWeek * hoursPerDay * minutesPerHour
	return m
}

// Resolve converts an abstract value into an output under ctx. The
// second return is false when the value cannot surface: a latent time,
// a family with no occurrence in range, or a kind with no top-level
// reading (bare cycles, units, relative minutes).
func Resolve(v Value, ctx *ParsingContext) (Output, bool) {
	switch val := v.(type) {
	case *IntegerValue:
		return IntegerOutput{Value: val.Value}, true
	case *FloatValue:
		return FloatOutput{Value: val.Value}, true
	case *OrdinalValue:
		return OrdinalOutput{Value: val.Value}, true
	case *DurationValue:
		return DurationOutput{Period: val.Period, Precision: val.Precision}, true
	case *TimeValue:
		return resolveTime(val, ctx)
	}
	return nil, false
}

// resolveTime picks the concrete interval for a time value: the
// occurrence containing or following the reference, else the most
// recent past one. Latent values never surface. Direction anchors
// produce half-open interval outputs.
func resolveTime(t *TimeValue, ctx *ParsingContext) (Output, bool) {
	if t.IsLatent {
		return nil, false
	}
	mctx := ctx.momentContext()
	w := t.Pred(mctx.ReferenceInterval(), mctx)
	iv, ok := moment.First(w.Forward)
	if !ok {
		iv, ok = moment.First(w.Backward)
	}
	if !ok {
		return nil, false
	}

	switch t.Direction {
	case Before:
		return TimeIntervalOutput{End: iv.Start, HasEnd: true, Grain: t.Grain, Precision: t.Precision}, true
	case After:
		return TimeIntervalOutput{Start: iv.Start, HasStart: true, Grain: t.Grain, Precision: t.Precision}, true
	}

	if iv.IsSpan() {
		return TimeIntervalOutput{
			Start:     iv.Start,
			End:       iv.End(),
			HasStart:  true,
			HasEnd:    true,
			Grain:     t.Grain,
			Precision: t.Precision,
		}, true
	}
	return TimeOutput{Interval: iv, Grain: t.Grain, Precision: t.Precision}, true
}

// OutputEqual reports whether two outputs denote the same resolved
// value. Used by the trainer to match derivations against targets.
func OutputEqual(a, b Output) bool {
	switch x := a.(type) {
	case IntegerOutput:
		y, ok := b.(IntegerOutput)
		return ok && x == y
	case FloatOutput:
		y, ok := b.(FloatOutput)
		return ok && x == y
	case OrdinalOutput:
		y, ok := b.(OrdinalOutput)
		return ok && x == y
	case DurationOutput:
		y, ok := b.(DurationOutput)
		return ok && x.Period == y.Period && x.Precision == y.Precision
	case TimeOutput:
		y, ok := b.(TimeOutput)
		return ok && x.Grain == y.Grain && x.Precision == y.Precision &&
			x.Interval.Start.Equal(y.Interval.Start) && x.Interval.End().Equal(y.Interval.End())
	case TimeIntervalOutput:
		y, ok := b.(TimeIntervalOutput)
		return ok && x.Grain == y.Grain && x.Precision == y.Precision &&
			x.HasStart == y.HasStart && x.HasEnd == y.HasEnd &&
			(!x.HasStart || x.Start.Equal(y.Start)) &&
			(!x.HasEnd || x.End.Equal(y.End))
	}
	return false
}

// String implementations keep debug output and test failures readable.

func (o IntegerOutput) String() string { return fmt.Sprintf("Integer(%d)", o.Value) }
func (o FloatOutput) String() string   { return fmt.Sprintf("Float(%g)", o.Value) }
func (o OrdinalOutput) String() string { return fmt.Sprintf("Ordinal(%d)", o.Value) }

func (o DurationOutput) String() string {
	return fmt.Sprintf("Duration(%dmin)", o.Minutes())
}

func (o TimeOutput) String() string {
	return fmt.Sprintf("Time(%s)", o.Interval)
}

func (o TimeIntervalOutput) String() string {
	const layout = "2006-01-02T15:04:05"
	start, end := "..", ".."
	if o.HasStart {
		start = o.Start.Format(layout)
	}
	if o.HasEnd {
		end = o.End.Format(layout)
	}
	return fmt.Sprintf("TimeInterval[%s, %s)", start, end)
}
