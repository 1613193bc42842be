// Package rules holds the per-language grammar catalogues.
//
// Each language contributes a set of production rules over the shared
// value model: literal patterns for its surface forms and productions
// that build numbers, ordinals, durations, cycles and time values.
// The catalogues are data-like — the engine and the value model do all
// the real work — and are built once per process.
package rules

import (
	"fmt"
	"time"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
)

// Lang selects a grammar catalogue.
type Lang string

const (
	LangEN Lang = "en"
	LangKO Lang = "ko"
)

// Langs lists the supported languages.
func Langs() []Lang {
	return []Lang{LangEN, LangKO}
}

// WeekStart returns the first day of the week for the language.
func WeekStart(lang Lang) time.Weekday {
	// Both shipped catalogues follow the ISO convention.
	return time.Monday
}

// RuleSet builds the frozen rule catalogue for lang.
func RuleSet(lang Lang) (*engine.RuleSet, error) {
	switch lang {
	case LangEN:
		b := engine.NewRuleSetBuilder(true)
		addEnglishNumbers(b)
		return b.Build()
	case LangKO:
		b := engine.NewRuleSetBuilder(false)
		addKoreanTime(b)
		addKoreanDurations(b)
		addKoreanCycles(b)
		addKoreanNumbers(b)
		return b.Build()
	}
	return nil, fmt.Errorf("rules: unsupported language %q", lang)
}

// ---------- typed capture views ----------
//
// Pattern predicates guarantee the child kinds, so productions read
// captures through these shorthands.

func timeOf(c engine.Capture) *dimension.TimeValue {
	t, _ := dimension.AsTime(c.Value())
	return t
}

func intOf(c engine.Capture) *dimension.IntegerValue {
	n, _ := dimension.AsInteger(c.Value())
	return n
}

func ordinalOf(c engine.Capture) *dimension.OrdinalValue {
	o, _ := dimension.AsOrdinal(c.Value())
	return o
}

func durationOf(c engine.Capture) *dimension.DurationValue {
	d, _ := dimension.AsDuration(c.Value())
	return d
}

func cycleOf(c engine.Capture) *dimension.CycleValue {
	cy, _ := dimension.AsCycle(c.Value())
	return cy
}

func unitOf(c engine.Capture) *dimension.UnitOfDurationValue {
	u, _ := dimension.AsUnitOfDuration(c.Value())
	return u
}

func relMinOf(c engine.Capture) *dimension.RelativeMinuteValue {
	r, _ := dimension.AsRelativeMinute(c.Value())
	return r
}

func numberOf(c engine.Capture) float64 {
	v, _ := dimension.NumberOf(c.Value())
	return v
}
