// Package tempora recognizes and resolves natural-language quantity
// and temporal expressions — numbers, ordinals, fractions, durations,
// dates, times, intervals, parts of day, holidays — in free-form text.
//
// A Parser pairs a per-language grammar catalogue with a ranker model.
// Parsing runs a bottom-up chart parser over the input, scores every
// derivation, optionally removes overlapping matches, and resolves the
// survivors against a reference instant into concrete outputs:
// integers, durations, calendar intervals.
//
//	ctx := dimension.NewParsingContext(time.Time{})
//	parser, err := tempora.BuildParser(tempora.LangEN)
//	matches := parser.Parse("twenty-one", ctx, true)
//	// matches[0].Value is dimension.IntegerOutput{Value: 21}
//
// Input is NFC-precomposed before matching, so byte and char ranges
// refer to the precomposed form; for already-composed input — the
// overwhelmingly common case — that is the input itself.
//
// Parsers are immutable after construction and safe for concurrent use
// by multiple goroutines.
package tempora

import (
	"fmt"
	"sort"
	"time"

	"github.com/tempora-nlp/tempora/data"
	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
	"github.com/tempora-nlp/tempora/internal/ktext"
	"github.com/tempora-nlp/tempora/ranker"
	"github.com/tempora-nlp/tempora/rules"
	"github.com/tempora-nlp/tempora/training"
)

// Lang selects a grammar catalogue.
type Lang = rules.Lang

const (
	LangEN = rules.LangEN
	LangKO = rules.LangKO
)

// ParserMatch is one recognized expression: its resolved value, its
// position in the input (bytes and runes over the same substring), the
// ranker's log-score, and whether the underlying value was latent.
type ParserMatch struct {
	Value    dimension.Output
	Range    engine.Range
	Probalog float64
	Latent   bool
}

// Text returns the matched substring of input.
func (m ParserMatch) Text(input string) string {
	return input[m.Range.ByteStart:m.Range.ByteEnd]
}

// Parser is the runtime entry point for one language.
type Parser struct {
	lang  rules.Lang
	rules *engine.RuleSet
	model *ranker.Model
}

// Lang returns the parser's language.
func (p *Parser) Lang() Lang {
	return p.lang
}

// BuildParser builds the rule catalogue for lang and loads its
// embedded ranker model. A malformed catalogue or a corrupt model is
// fatal.
func BuildParser(lang Lang) (*Parser, error) {
	rs, err := rules.RuleSet(lang)
	if err != nil {
		return nil, err
	}
	blob, err := modelBytes(lang)
	if err != nil {
		return nil, err
	}
	model, err := ranker.DecodeModel(blob)
	if err != nil {
		return nil, fmt.Errorf("tempora: model for %q: %w", lang, err)
	}
	return &Parser{lang: lang, rules: rs, model: model}, nil
}

// TrainParser builds the rule catalogue for lang and fits a fresh
// model from the embedded corpus. Unusable examples are skipped and the
// skip report is not returned: the error is nil whenever a model is fitted.
func TrainParser(lang Lang) (*Parser, error) {
	rs, err := rules.RuleSet(lang)
	if err != nil {
		return nil, err
	}
	examples, err := training.Examples(lang)
	if err != nil {
		return nil, err
	}
	model, trainErr := ranker.Train(rs, examples, true)
	if model == nil {
		return nil, trainErr
	}
	return &Parser{lang: lang, rules: rs, model: model}, nil
}

// modelBytes returns the embedded model blob for lang.
func modelBytes(lang Lang) ([]byte, error) {
	switch lang {
	case LangEN:
		return data.ModelEN, nil
	case LangKO:
		return data.ModelKO, nil
	}
	return nil, fmt.Errorf("tempora: no model for language %q", lang)
}

// Parse returns every recognized expression in text, resolved against
// ctx. With removeOverlap, overlapping matches are pruned to the
// best-scoring one. Unrecognized input yields an empty slice, never an
// error. A nil ctx means "now".
func (p *Parser) Parse(text string, ctx *dimension.ParsingContext, removeOverlap bool) []ParserMatch {
	return p.parse(text, ctx, nil, removeOverlap)
}

// ParseWithKindOrder is Parse restricted to the listed value kinds.
// Earlier kinds take priority during overlap removal.
func (p *Parser) ParseWithKindOrder(text string, ctx *dimension.ParsingContext, kinds []dimension.Kind, removeOverlap bool) []ParserMatch {
	if len(kinds) == 0 {
		return nil
	}
	return p.parse(text, ctx, kinds, removeOverlap)
}

func (p *Parser) parse(text string, ctx *dimension.ParsingContext, kinds []dimension.Kind, removeOverlap bool) []ParserMatch {
	if ctx == nil {
		ctx = dimension.NewParsingContext(time.Time{})
	}
	text = ktext.Precompose(text)

	nodes := p.rules.Parse(text)
	if len(nodes) == 0 {
		return nil
	}

	type scored struct {
		cand   engine.Candidate
		output dimension.Output
		kindAt int
	}
	var all []scored
	for _, n := range nodes {
		kindAt := 0
		if kinds != nil {
			kindAt = kindIndex(kinds, n.Value.Kind())
			if kindAt < 0 {
				continue
			}
		}
		out, ok := dimension.Resolve(n.Value, ctx)
		if !ok {
			continue
		}
		all = append(all, scored{
			cand:   engine.Candidate{Node: n, Score: p.model.Score(n)},
			output: out,
			kindAt: kindAt,
		})
	}
	if len(all) == 0 {
		return nil
	}

	outputs := make(map[*engine.Node]dimension.Output, len(all))
	var kept []engine.Candidate
	if removeOverlap {
		// Kind priority first, overlap removal inside each priority
		// band against everything already kept.
		byKind := make(map[int][]engine.Candidate)
		maxAt := 0
		for _, s := range all {
			outputs[s.cand.Node] = s.output
			byKind[s.kindAt] = append(byKind[s.kindAt], s.cand)
			if s.kindAt > maxAt {
				maxAt = s.kindAt
			}
		}
		for at := 0; at <= maxAt; at++ {
			band := byKind[at]
			engine.SortCandidates(band)
			for _, cand := range band {
				if !overlapsAny(kept, cand) {
					kept = append(kept, cand)
				}
			}
		}
	} else {
		for _, s := range all {
			outputs[s.cand.Node] = s.output
			kept = append(kept, s.cand)
		}
		engine.SortCandidates(kept)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Node.Range.ByteStart < kept[j].Node.Range.ByteStart
	})

	matches := make([]ParserMatch, 0, len(kept))
	for _, cand := range kept {
		matches = append(matches, ParserMatch{
			Value:    outputs[cand.Node],
			Range:    cand.Node.Range,
			Probalog: cand.Score,
			Latent:   cand.Node.Value.Latent(),
		})
	}
	return matches
}

// overlapsAny reports whether cand's byte range overlaps any kept
// candidate.
func overlapsAny(kept []engine.Candidate, cand engine.Candidate) bool {
	for _, k := range kept {
		if cand.Node.Range.ByteStart < k.Node.Range.ByteEnd &&
			k.Node.Range.ByteStart < cand.Node.Range.ByteEnd {
			return true
		}
	}
	return false
}

// kindIndex returns the priority position of k, or -1.
func kindIndex(kinds []dimension.Kind, k dimension.Kind) int {
	for i, kk := range kinds {
		if kk == k {
			return i
		}
	}
	return -1
}
