// Package training loads the labeled example corpus used to fit the
// ranker.
//
// A corpus file is a TOML document: a fixed reference instant plus a
// list of phrases, each labeled with the single value it must resolve
// to under that reference. The loader turns every entry into a ranker
// example whose positive check resolves a derivation and compares it
// against the target.
package training

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tempora-nlp/tempora/data"
	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
	"github.com/tempora-nlp/tempora/grain"
	"github.com/tempora-nlp/tempora/internal/ktext"
	"github.com/tempora-nlp/tempora/ranker"
	"github.com/tempora-nlp/tempora/rules"
)

// corpusTimeLayout is the reference instant format in corpus files.
const corpusTimeLayout = "2006-01-02T15:04:05"

// dayLayout is the format of day-valued targets.
const dayLayout = "2006-01-02"

// Corpus is one parsed corpus file.
type Corpus struct {
	Reference string    `toml:"reference"`
	Examples  []Example `toml:"example"`
}

// Example is one labeled phrase. Exactly one target field is set.
type Example struct {
	Text    string   `toml:"text"`
	Integer *int64   `toml:"integer"`
	Float   *float64 `toml:"float"`
	Ordinal *int64   `toml:"ordinal"`
	Minutes *int64   `toml:"minutes"`
	Day     string   `toml:"day"`
}

// corpusBytes returns the embedded corpus document for lang.
func corpusBytes(lang rules.Lang) ([]byte, error) {
	switch lang {
	case rules.LangEN:
		return data.CorpusEN, nil
	case rules.LangKO:
		return data.CorpusKO, nil
	}
	return nil, fmt.Errorf("training: no corpus for language %q", lang)
}

// Load parses the embedded corpus for lang.
func Load(lang rules.Lang) (*Corpus, error) {
	raw, err := corpusBytes(lang)
	if err != nil {
		return nil, err
	}
	var c Corpus
	if err := toml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("training: corpus for %q: %w", lang, err)
	}
	if len(c.Examples) == 0 {
		return nil, fmt.Errorf("training: corpus for %q is empty", lang)
	}
	return &c, nil
}

// Examples converts the embedded corpus for lang into ranker examples.
func Examples(lang rules.Lang) ([]ranker.Example, error) {
	c, err := Load(lang)
	if err != nil {
		return nil, err
	}
	ref, err := time.Parse(corpusTimeLayout, c.Reference)
	if err != nil {
		return nil, fmt.Errorf("training: corpus reference %q: %w", c.Reference, err)
	}
	ctx := dimension.NewParsingContext(ref.UTC())
	ctx.WeekStart = rules.WeekStart(lang)

	out := make([]ranker.Example, 0, len(c.Examples))
	for _, ex := range c.Examples {
		check, err := ex.check(ctx)
		if err != nil {
			return nil, fmt.Errorf("training: example %q: %w", ex.Text, err)
		}
		out = append(out, ranker.Example{Text: ktext.Clean(ex.Text), IsPositive: check})
	}
	return out, nil
}

// check builds the positive-derivation predicate for one example.
func (ex Example) check(ctx *dimension.ParsingContext) (func(*engine.Node) bool, error) {
	switch {
	case ex.Integer != nil:
		want := *ex.Integer
		return func(n *engine.Node) bool {
			o, ok := resolve(n, ctx)
			if !ok {
				return false
			}
			io, ok := o.(dimension.IntegerOutput)
			return ok && io.Value == want
		}, nil

	case ex.Float != nil:
		want := float32(*ex.Float)
		return func(n *engine.Node) bool {
			o, ok := resolve(n, ctx)
			if !ok {
				return false
			}
			fo, ok := o.(dimension.FloatOutput)
			return ok && fo.Value == want
		}, nil

	case ex.Ordinal != nil:
		want := *ex.Ordinal
		return func(n *engine.Node) bool {
			o, ok := resolve(n, ctx)
			if !ok {
				return false
			}
			oo, ok := o.(dimension.OrdinalOutput)
			return ok && oo.Value == want
		}, nil

	case ex.Minutes != nil:
		want := *ex.Minutes
		return func(n *engine.Node) bool {
			o, ok := resolve(n, ctx)
			if !ok {
				return false
			}
			do, ok := o.(dimension.DurationOutput)
			return ok && do.Minutes() == want
		}, nil

	case ex.Day != "":
		day, err := time.Parse(dayLayout, ex.Day)
		if err != nil {
			return nil, fmt.Errorf("bad day target %q: %w", ex.Day, err)
		}
		want := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, ctx.Reference.Location())
		return func(n *engine.Node) bool {
			o, ok := resolve(n, ctx)
			if !ok {
				return false
			}
			to, ok := o.(dimension.TimeOutput)
			return ok && to.Grain == grain.Day && to.Interval.Start.Equal(want)
		}, nil
	}
	return nil, fmt.Errorf("no target field set")
}

func resolve(n *engine.Node, ctx *dimension.ParsingContext) (dimension.Output, bool) {
	return dimension.Resolve(n.Value, ctx)
}
