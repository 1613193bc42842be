// Package dimension defines the semantic value model shared by the rule
// engine, the ranker and the resolver.
//
// Every derivation in the chart carries one Value: a number, an
// ordinal, a duration, a calendar cycle, a unit of duration, a relative
// minute count, or a time expression. Time values wrap a moment
// predicate — a periodic family of calendar intervals — together with
// metadata: a form (day-of-week, month, time-of-day, part-of-day), a
// grain, a precision, a direction and a latency flag.
//
// Values are never mutated after construction; every combinator returns
// a fresh value. All types are safe for concurrent use.
package dimension

import (
	"fmt"
	"time"

	"github.com/tempora-nlp/tempora/grain"
	"github.com/tempora-nlp/tempora/moment"
)

// Kind classifies a value.
type Kind int

const (
	KindNumber Kind = iota
	KindOrdinal
	KindTime
	KindDuration
	KindCycle
	KindUnitOfDuration
	KindRelativeMinute
)

// kindNames maps Kind values to their string names.
var kindNames = [...]string{
	KindNumber:         "Number",
	KindOrdinal:        "Ordinal",
	KindTime:           "Time",
	KindDuration:       "Duration",
	KindCycle:          "Cycle",
	KindUnitOfDuration: "UnitOfDuration",
	KindRelativeMinute: "RelativeMinute",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Precision marks a value as exact or approximate ("약 3시쯤").
type Precision int

const (
	Exact Precision = iota
	Approximate
)

// Direction marks a time value as an open-ended anchor.
type Direction int

const (
	DirectionNone Direction = iota
	Before
	After
)

// Value is one semantic value produced by a rule.
type Value interface {
	Kind() Kind
	// Latent reports whether the value must be promoted by context
	// before it may surface as a top-level match.
	Latent() bool
}

// ---------- numbers ----------

// IntegerValue is an exact signed integer.
type IntegerValue struct {
	Value     int64
	Precision Precision
	// Prefixed and Suffixed are write-once affix guards: a rule that
	// applies a prefix (e.g. a negative sign) must reject children that
	// already carry one.
	Prefixed bool
	Suffixed bool
	// Group marks a bare power-of-ten word ("thousand") that acts as a
	// multiplier rather than a standalone count.
	Group bool
}

func (v *IntegerValue) Kind() Kind   { return KindNumber }
func (v *IntegerValue) Latent() bool { return false }

// FloatValue is a single-precision real.
type FloatValue struct {
	Value     float32
	Precision Precision
	Prefixed  bool
	Suffixed  bool
}

func (v *FloatValue) Kind() Kind   { return KindNumber }
func (v *FloatValue) Latent() bool { return false }

// NumberOf returns the numeric value of an integer or float value.
func NumberOf(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntegerValue:
		return float64(n.Value), true
	case *FloatValue:
		return float64(n.Value), true
	}
	return 0, false
}

// NumberPrefixed reports the prefix guard of a number value.
func NumberPrefixed(v Value) bool {
	switch n := v.(type) {
	case *IntegerValue:
		return n.Prefixed
	case *FloatValue:
		return n.Prefixed
	}
	return false
}

// NumberSuffixed reports the suffix guard of a number value.
func NumberSuffixed(v Value) bool {
	switch n := v.(type) {
	case *IntegerValue:
		return n.Suffixed
	case *FloatValue:
		return n.Suffixed
	}
	return false
}

// ---------- ordinals, units, cycles, relative minutes ----------

// OrdinalValue is a 1-based position.
type OrdinalValue struct {
	Value int64
}

func (v *OrdinalValue) Kind() Kind   { return KindOrdinal }
func (v *OrdinalValue) Latent() bool { return false }

// UnitOfDurationValue is a bare duration unit ("시간", "주").
type UnitOfDurationValue struct {
	Grain grain.Grain
}

func (v *UnitOfDurationValue) Kind() Kind   { return KindUnitOfDuration }
func (v *UnitOfDurationValue) Latent() bool { return false }

// CycleValue is a calendar window unit used to address the n-th window
// ("다음 주"). Distinct from UnitOfDuration because it feeds different
// rules.
type CycleValue struct {
	Grain grain.Grain
}

func (v *CycleValue) Kind() Kind   { return KindCycle }
func (v *CycleValue) Latent() bool { return false }

// RelativeMinuteValue is a signed minute offset against a full hour,
// in -59..59 ("반" is +30).
type RelativeMinuteValue struct {
	Minutes int
}

func (v *RelativeMinuteValue) Kind() Kind   { return KindRelativeMinute }
func (v *RelativeMinuteValue) Latent() bool { return false }

// ---------- durations ----------

// Period is a signed count per grain. Counts are stored independently:
// one hour and sixty minutes are distinct periods that resolve to the
// same instant span.
type Period [grain.Count]int64

// PeriodOf returns a period with a single grain component.
func PeriodOf(g grain.Grain, n int64) Period {
	var p Period
	p[g] = n
	return p
}

// Plus returns the component-wise sum of p and q.
func (p Period) Plus(q Period) Period {
	var out Period
	for g := range out {
		out[g] = p[g] + q[g]
	}
	return out
}

// Negated returns the component-wise negation of p.
func (p Period) Negated() Period {
	var out Period
	for g := range out {
		out[g] = -p[g]
	}
	return out
}

// FinestGrain returns the finest grain with a non-zero count, or Year
// for an empty period.
func (p Period) FinestGrain() grain.Grain {
	for g := grain.Grain(0); g < grain.Count; g++ {
		if p[g] != 0 {
			return g
		}
	}
	return grain.Year
}

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool {
	return p == Period{}
}

// DurationValue is a calendar period with a precision.
type DurationValue struct {
	Period    Period
	Precision Precision
}

func (v *DurationValue) Kind() Kind   { return KindDuration }
func (v *DurationValue) Latent() bool { return false }

// InPresent returns the time value one period from the reference
// ("3일 후").
func (v *DurationValue) InPresent() *TimeValue {
	return v.offsetTime(v.Period)
}

// Ago returns the time value one period before the reference.
func (v *DurationValue) Ago() *TimeValue {
	return v.offsetTime(v.Period.Negated())
}

// AfterTime returns the time value one period after each occurrence of t.
func (v *DurationValue) AfterTime(t *TimeValue) *TimeValue {
	g := grain.Finer(v.Period.FinestGrain(), t.Grain)
	return &TimeValue{
		Pred:      moment.ShiftBy(t.Pred, v.Period, g),
		Grain:     g,
		Precision: v.Precision,
	}
}

func (v *DurationValue) offsetTime(p Period) *TimeValue {
	g := p.FinestGrain()
	return &TimeValue{
		Pred:      moment.ShiftBy(moment.CycleNth(grain.Second, 0), p, g),
		Grain:     g,
		Precision: v.Precision,
	}
}

// ---------- time ----------

// FormKind classifies the form of a time value.
type FormKind int

const (
	FormEmpty FormKind = iota
	FormDayOfWeek
	FormMonth
	FormTimeOfDay
	FormPartOfDay
)

// Form is the finer classifier inside a time value. Only the fields of
// the active kind are meaningful.
type Form struct {
	Kind    FormKind
	Weekday time.Weekday // FormDayOfWeek
	Month   time.Month   // FormMonth

	// FormTimeOfDay: the full hour when the reading still accepts a
	// minute refinement, and whether it was read on a 12-hour clock.
	FullHour    int
	HasFullHour bool
	Is12Clock   bool
}

// TimeOfDayForm returns the time-of-day view of the form.
func (f Form) TimeOfDayForm() (fullHour int, is12 bool, ok bool) {
	if f.Kind != FormTimeOfDay || !f.HasFullHour {
		return 0, false, false
	}
	return f.FullHour, f.Is12Clock, true
}

// TimeValue is a periodic set of calendar intervals with metadata.
type TimeValue struct {
	Pred      moment.Predicate
	Form      Form
	Grain     grain.Grain
	IsLatent  bool
	Precision Precision
	Direction Direction
}

func (t *TimeValue) Kind() Kind   { return KindTime }
func (t *TimeValue) Latent() bool { return t.IsLatent }

// clone returns a shallow copy; combinators mutate only the copy.
func (t *TimeValue) clone() *TimeValue {
	c := *t
	return &c
}

// MarkLatent returns t marked latent.
func (t *TimeValue) MarkLatent() *TimeValue {
	c := t.clone()
	c.IsLatent = true
	return c
}

// NotLatent returns t with the latency gate lifted.
func (t *TimeValue) NotLatent() *TimeValue {
	c := t.clone()
	c.IsLatent = false
	return c
}

// WithPrecision returns t with the given precision.
func (t *TimeValue) WithPrecision(p Precision) *TimeValue {
	c := t.clone()
	c.Precision = p
	return c
}

// WithForm returns t with the given form.
func (t *TimeValue) WithForm(f Form) *TimeValue {
	c := t.clone()
	c.Form = f
	return c
}

// WithDirection returns t marked as an open-ended anchor.
func (t *TimeValue) WithDirection(d Direction) *TimeValue {
	c := t.clone()
	c.Direction = d
	return c
}

// Intersect composes two partial time descriptions into one. The
// result's grain is the finer of the two; its form is the specific
// child's form, or empty when both carry one. Two descriptions of the
// same calendar dimension do not intersect.
func (t *TimeValue) Intersect(o *TimeValue) (*TimeValue, error) {
	if t.Form.Kind != FormEmpty && t.Form.Kind == o.Form.Kind {
		return nil, fmt.Errorf("dimension: intersect over the same %v dimension", t.Form.Kind)
	}
	coarse, fine := t, o
	if o.Grain > t.Grain {
		coarse, fine = o, t
	}
	form := Form{}
	switch {
	case t.Form.Kind == FormEmpty:
		form = o.Form
	case o.Form.Kind == FormEmpty:
		form = t.Form
	}
	return &TimeValue{
		Pred:      moment.Intersect(coarse.Pred, fine.Pred),
		Form:      form,
		Grain:     grain.Finer(t.Grain, o.Grain),
		IsLatent:  t.IsLatent && o.IsLatent,
		Precision: combinePrecision(t.Precision, o.Precision),
	}, nil
}

// SpanTo returns the interval reaching from t to the next occurrence
// of o.
func (t *TimeValue) SpanTo(o *TimeValue, inclusive bool) (*TimeValue, error) {
	return &TimeValue{
		Pred:      moment.SpanTo(t.Pred, o.Pred, inclusive),
		Grain:     grain.Finer(t.Grain, o.Grain),
		Precision: combinePrecision(t.Precision, o.Precision),
	}, nil
}

// TheNth picks the n-th occurrence relative to the reference: n=0 is
// the occurrence containing or following it, negative n the past.
func (t *TimeValue) TheNth(n int) (*TimeValue, error) {
	c := t.clone()
	c.Pred = moment.TakeTheNth(n, t.Pred)
	c.IsLatent = false
	return c, nil
}

// LastOf returns the final occurrence of t within each occurrence of
// outer ("the last Friday of March").
func (t *TimeValue) LastOf(outer *TimeValue) (*TimeValue, error) {
	return &TimeValue{
		Pred:      moment.TakeLastOf(t.Pred, outer.Pred),
		Form:      t.Form,
		Grain:     t.Grain,
		Precision: combinePrecision(t.Precision, outer.Precision),
	}, nil
}

func combinePrecision(a, b Precision) Precision {
	if a == Approximate || b == Approximate {
		return Approximate
	}
	return Exact
}

// ---------- typed views ----------

// AsInteger returns the integer view of v.
func AsInteger(v Value) (*IntegerValue, bool) {
	n, ok := v.(*IntegerValue)
	return n, ok
}

// AsFloat returns the float view of v.
func AsFloat(v Value) (*FloatValue, bool) {
	n, ok := v.(*FloatValue)
	return n, ok
}

// AsOrdinal returns the ordinal view of v.
func AsOrdinal(v Value) (*OrdinalValue, bool) {
	n, ok := v.(*OrdinalValue)
	return n, ok
}

// AsTime returns the time view of v.
func AsTime(v Value) (*TimeValue, bool) {
	t, ok := v.(*TimeValue)
	return t, ok
}

// AsDuration returns the duration view of v.
func AsDuration(v Value) (*DurationValue, bool) {
	d, ok := v.(*DurationValue)
	return d, ok
}

// AsCycle returns the cycle view of v.
func AsCycle(v Value) (*CycleValue, bool) {
	c, ok := v.(*CycleValue)
	return c, ok
}

// AsUnitOfDuration returns the unit-of-duration view of v.
func AsUnitOfDuration(v Value) (*UnitOfDurationValue, bool) {
	u, ok := v.(*UnitOfDurationValue)
	return u, ok
}

// AsRelativeMinute returns the relative-minute view of v.
func AsRelativeMinute(v Value) (*RelativeMinuteValue, bool) {
	r, ok := v.(*RelativeMinuteValue)
	return r, ok
}
