// Package engine implements the declarative rule engine and its
// bottom-up chart parser.
//
// A rule declares a name, an ordered pattern of matchers, and a
// production. Matchers are either literal (a compiled regular
// expression over the input text) or typed (a predicate over a child
// value already in the chart). The parser enumerates every way every
// rule can cover a contiguous span — adjacency modulo insignificant
// whitespace — and keeps all derivations; ambiguity resolution belongs
// to the ranker and the overlap-removal pass.
//
// Rule sets are immutable once built and safe for concurrent use by
// multiple goroutines.
package engine

import (
	"fmt"
	"regexp"

	"github.com/tempora-nlp/tempora/dimension"
)

// Range locates a derivation in the input, in both bytes and runes
// over the same substring.
type Range struct {
	ByteStart int
	ByteEnd   int
	CharStart int
	CharEnd   int
}

// Capture is one matched pattern slot handed to a production: a child
// value for typed matchers, numbered groups for literal matchers.
type Capture struct {
	// Node is the matched child derivation; nil for literal matchers.
	Node *Node

	// Range covers the text this slot consumed.
	Range Range

	groups []string
}

// Value returns the child value, or nil for a literal capture.
func (c Capture) Value() dimension.Value {
	if c.Node == nil {
		return nil
	}
	return c.Node.Value
}

// Group returns the i-th regex capture group; group 0 is the whole
// match. Literal captures only.
func (c Capture) Group(i int) string {
	if i < 0 || i >= len(c.groups) {
		return ""
	}
	return c.groups[i]
}

// Production combines matched children into a new value. Returning an
// error drops the derivation; other candidates over the span survive.
type Production func(caps []Capture) (dimension.Value, error)

// PatternItem is one slot of a rule pattern.
type PatternItem interface {
	isItem()
}

type regexItem struct {
	src string
	re  *regexp.Regexp
}

type valueItem struct {
	pred func(dimension.Value) bool
}

func (regexItem) isItem() {}
func (valueItem) isItem() {}

// Rule is a named production over an ordered pattern.
type Rule struct {
	Name    string
	items   []PatternItem
	produce Production
}

// RuleSetBuilder accumulates rules; regex compilation errors are
// collected and surface once from Build.
type RuleSetBuilder struct {
	rules        []*Rule
	errs         []error
	wordBoundary bool
}

// NewRuleSetBuilder returns an empty builder. With wordBoundary set,
// literal matches must not split a run of letters or digits — the
// convention for space-separated languages; scripts written without
// spaces leave it off.
func NewRuleSetBuilder(wordBoundary bool) *RuleSetBuilder {
	return &RuleSetBuilder{wordBoundary: wordBoundary}
}

// Reg declares a literal matcher. Patterns are case-insensitive; a
// malformed pattern fails the whole build.
func (b *RuleSetBuilder) Reg(pattern string) PatternItem {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("engine: rule regex %q: %w", pattern, err))
		return regexItem{src: pattern}
	}
	return regexItem{src: pattern, re: re}
}

// Rule declares a production over the given pattern. Arity is the
// pattern length.
func (b *RuleSetBuilder) Rule(name string, production Production, items ...PatternItem) {
	if len(items) == 0 {
		b.errs = append(b.errs, fmt.Errorf("engine: rule %q has an empty pattern", name))
		return
	}
	b.rules = append(b.rules, &Rule{Name: name, items: items, produce: production})
}

// Build freezes the rule set. It fails on any malformed regex
// collected so far.
func (b *RuleSetBuilder) Build() (*RuleSet, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	return &RuleSet{rules: b.rules, wordBoundary: b.wordBoundary}, nil
}

// RuleSet is a frozen rule catalogue ready to parse.
type RuleSet struct {
	rules        []*Rule
	wordBoundary bool
}

// ---------- typed matchers ----------

// ValueCheck declares a typed matcher from a raw predicate.
func ValueCheck(pred func(dimension.Value) bool) PatternItem {
	return valueItem{pred: pred}
}

// TimeCheck matches a time value satisfying every given predicate.
func TimeCheck(preds ...func(*dimension.TimeValue) bool) PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		t, ok := dimension.AsTime(v)
		if !ok {
			return false
		}
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}}
}

// FormIs builds a time predicate over the form kind — the compiled
// equivalent of a form pattern match at a rule site.
func FormIs(kind dimension.FormKind) func(*dimension.TimeValue) bool {
	return func(t *dimension.TimeValue) bool {
		return t.Form.Kind == kind
	}
}

// NotLatent is the usual guard on time children.
func NotLatent(t *dimension.TimeValue) bool {
	return !t.IsLatent
}

// HasFullHour matches time-of-day values still open to a minute
// refinement.
func HasFullHour(t *dimension.TimeValue) bool {
	_, _, ok := t.Form.TimeOfDayForm()
	return ok
}

// IntegerCheck matches an integer value in [min, max] satisfying every
// given predicate.
func IntegerCheck(min, max int64, preds ...func(*dimension.IntegerValue) bool) PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		n, ok := dimension.AsInteger(v)
		if !ok || n.Value < min || n.Value > max {
			return false
		}
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}}
}

// IntegerCheckAny matches any integer value.
func IntegerCheckAny() PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		_, ok := dimension.AsInteger(v)
		return ok
	}}
}

// IntegerCheckMin matches an integer value of at least min.
func IntegerCheckMin(min int64) PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		n, ok := dimension.AsInteger(v)
		return ok && n.Value >= min
	}}
}

// NumberCheck matches an integer or float value satisfying every given
// predicate.
func NumberCheck(preds ...func(dimension.Value) bool) PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		if _, ok := dimension.NumberOf(v); !ok {
			return false
		}
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}}
}

// OrdinalCheck matches any ordinal value.
func OrdinalCheck() PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		_, ok := dimension.AsOrdinal(v)
		return ok
	}}
}

// DurationCheck matches any duration value.
func DurationCheck() PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		_, ok := dimension.AsDuration(v)
		return ok
	}}
}

// CycleCheck matches a cycle value satisfying every given predicate.
func CycleCheck(preds ...func(*dimension.CycleValue) bool) PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		c, ok := dimension.AsCycle(v)
		if !ok {
			return false
		}
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}}
}

// UnitOfDurationCheck matches any unit-of-duration value.
func UnitOfDurationCheck() PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		_, ok := dimension.AsUnitOfDuration(v)
		return ok
	}}
}

// RelativeMinuteCheck matches any relative-minute value.
func RelativeMinuteCheck() PatternItem {
	return valueItem{pred: func(v dimension.Value) bool {
		_, ok := dimension.AsRelativeMinute(v)
		return ok
	}}
}
