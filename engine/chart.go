// Bottom-up chart parsing over a frozen rule set.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tempora-nlp/tempora/dimension"
)

const (
	// maxInputBytes caps the input; longer text yields no matches, the
	// same guard the extraction entry points have always carried.
	maxInputBytes = 4096

	// maxRounds and maxNodes bound chart growth. Real grammars reach a
	// fixpoint within a handful of rounds; these are saturation guards.
	maxRounds = 32
	maxNodes  = 50000
)

// Node is one derivation in the chart: a rule applied over a span,
// with its child derivations.
type Node struct {
	RuleName string
	Range    Range
	Value    dimension.Value
	Children []*Node

	id int
}

// chart holds the growing derivation table for one input.
type chart struct {
	text      string
	rs        *RuleSet
	nodes     []*Node
	seen      map[string]bool
	charAt    []int
	regexHits map[string][]regexMatch
}

type regexMatch struct {
	start, end int
	groups     []string
}

// Parse enumerates every derivation of every substring of text.
// Empty and oversized input yield an empty chart.
func (rs *RuleSet) Parse(text string) []*Node {
	if text == "" || len(text) > maxInputBytes {
		return nil
	}
	c := &chart{
		text:      text,
		rs:        rs,
		seen:      make(map[string]bool),
		charAt:    charOffsets(text),
		regexHits: make(map[string][]regexMatch),
	}

	for round := 0; round < maxRounds; round++ {
		before := len(c.nodes)
		for _, rule := range rs.rules {
			c.matchRule(rule)
			if len(c.nodes) >= maxNodes {
				return c.nodes
			}
		}
		if len(c.nodes) == before {
			break
		}
	}
	return c.nodes
}

// charOffsets maps every byte offset to its rune offset, so byte and
// char ranges always describe the same substring.
func charOffsets(text string) []int {
	offs := make([]int, len(text)+1)
	chars := 0
	for i := 0; i < len(text); i++ {
		offs[i] = chars
		if utf8.RuneStart(text[i]) {
			chars++
		}
	}
	offs[len(text)] = chars
	return offs
}

// span builds the byte+char range for [bs, be).
func (c *chart) span(bs, be int) Range {
	return Range{ByteStart: bs, ByteEnd: be, CharStart: c.charAt[bs], CharEnd: c.charAt[be]}
}

// partial is an in-progress match of a rule pattern.
type partial struct {
	caps []Capture
	end  int
}

// matchRule extends the chart with every complete match of rule.
func (c *chart) matchRule(rule *Rule) {
	partials := c.startItem(rule.items[0])
	for _, item := range rule.items[1:] {
		if len(partials) == 0 {
			return
		}
		var next []partial
		for _, p := range partials {
			next = append(next, c.extend(p, item)...)
		}
		partials = next
	}
	for _, p := range partials {
		c.addNode(rule, p.caps)
	}
}

// startItem yields a partial for every anchor of the first pattern
// item.
func (c *chart) startItem(item PatternItem) []partial {
	var out []partial
	switch it := item.(type) {
	case regexItem:
		for _, m := range c.matchesOf(it) {
			out = append(out, partial{
				caps: []Capture{{Range: c.span(m.start, m.end), groups: m.groups}},
				end:  m.end,
			})
		}
	case valueItem:
		for _, n := range c.nodes {
			if it.pred(n.Value) {
				out = append(out, partial{
					caps: []Capture{{Node: n, Range: n.Range}},
					end:  n.Range.ByteEnd,
				})
			}
		}
	}
	return out
}

// extend continues a partial with the next pattern item. The next slot
// must start right after the previous one, with only insignificant
// whitespace in between.
func (c *chart) extend(p partial, item PatternItem) []partial {
	var out []partial
	switch it := item.(type) {
	case regexItem:
		for _, m := range c.matchesOf(it) {
			if m.start < p.end || !c.onlySpace(p.end, m.start) {
				continue
			}
			caps := append(append([]Capture{}, p.caps...), Capture{Range: c.span(m.start, m.end), groups: m.groups})
			out = append(out, partial{caps: caps, end: m.end})
		}
	case valueItem:
		for _, n := range c.nodes {
			if n.Range.ByteStart < p.end || !c.onlySpace(p.end, n.Range.ByteStart) {
				continue
			}
			if !it.pred(n.Value) {
				continue
			}
			caps := append(append([]Capture{}, p.caps...), Capture{Node: n, Range: n.Range})
			out = append(out, partial{caps: caps, end: n.Range.ByteEnd})
		}
	}
	return out
}

// onlySpace reports whether text[from:to] is all whitespace.
func (c *chart) onlySpace(from, to int) bool {
	for _, r := range c.text[from:to] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// matchesOf returns every match of the literal matcher in the input,
// including overlapping ones, honoring the word-boundary convention.
func (c *chart) matchesOf(it regexItem) []regexMatch {
	key := it.src
	if hits, ok := c.regexHits[key]; ok {
		return hits
	}
	var hits []regexMatch
	off := 0
	for off <= len(c.text) {
		loc := it.re.FindStringSubmatchIndex(c.text[off:])
		if loc == nil {
			break
		}
		start, end := off+loc[0], off+loc[1]
		if !c.rs.wordBoundary || c.atWordBoundary(start, end) {
			groups := make([]string, len(loc)/2)
			for g := range groups {
				gs, ge := loc[2*g], loc[2*g+1]
				if gs >= 0 {
					groups[g] = c.text[off+gs : off+ge]
				}
			}
			hits = append(hits, regexMatch{start: start, end: end, groups: groups})
		}
		// Re-scan one rune past this match start to surface
		// overlapping hits at later anchors.
		_, size := utf8.DecodeRuneInString(c.text[off+loc[0]:])
		if size == 0 {
			size = 1
		}
		off += loc[0] + size
	}
	c.regexHits[key] = hits
	return hits
}

// atWordBoundary reports whether [start, end) does not split a run of
// letters or digits.
func (c *chart) atWordBoundary(start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(c.text[:start])
		first, _ := utf8.DecodeRuneInString(c.text[start:])
		if isWordRune(prev) && isWordRune(first) {
			return false
		}
	}
	if end < len(c.text) {
		last, _ := utf8.DecodeLastRuneInString(c.text[:end])
		next, _ := utf8.DecodeRuneInString(c.text[end:])
		if isWordRune(last) && isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// addNode runs the production and inserts the resulting derivation,
// deduplicating by rule, span and child identity. Failing productions
// are dropped silently.
func (c *chart) addNode(rule *Rule, caps []Capture) {
	bs := caps[0].Range.ByteStart
	be := caps[len(caps)-1].Range.ByteEnd

	var key strings.Builder
	fmt.Fprintf(&key, "%s|%d:%d", rule.Name, bs, be)
	for _, cp := range caps {
		if cp.Node != nil {
			fmt.Fprintf(&key, "|n%d", cp.Node.id)
		} else {
			fmt.Fprintf(&key, "|r%d:%d", cp.Range.ByteStart, cp.Range.ByteEnd)
		}
	}
	if c.seen[key.String()] {
		return
	}
	c.seen[key.String()] = true

	value, err := rule.produce(caps)
	if err != nil || value == nil {
		return
	}

	var children []*Node
	for _, cp := range caps {
		if cp.Node != nil {
			children = append(children, cp.Node)
		}
	}
	n := &Node{
		RuleName: rule.Name,
		Range:    c.span(bs, be),
		Value:    value,
		Children: children,
		id:       len(c.nodes),
	}
	c.nodes = append(c.nodes, n)
}

// ---------- candidate selection ----------

// Candidate pairs a derivation with its ranker score.
type Candidate struct {
	Node  *Node
	Score float64
}

// SortCandidates orders candidates best-first: score, then longer
// span, then earlier start, then rule name. The order is total, so
// parsing stays deterministic.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		la := a.Node.Range.ByteEnd - a.Node.Range.ByteStart
		lb := b.Node.Range.ByteEnd - b.Node.Range.ByteStart
		if la != lb {
			return la > lb
		}
		if a.Node.Range.ByteStart != b.Node.Range.ByteStart {
			return a.Node.Range.ByteStart < b.Node.Range.ByteStart
		}
		return a.Node.RuleName < b.Node.RuleName
	})
}

// RemoveOverlap keeps, within every cluster of byte-overlapping
// candidates, only the best one under the SortCandidates order.
// The survivors come back sorted by start offset.
func RemoveOverlap(cands []Candidate) []Candidate {
	SortCandidates(cands)
	var kept []Candidate
	for _, cand := range cands {
		overlaps := false
		for _, k := range kept {
			if cand.Node.Range.ByteStart < k.Node.Range.ByteEnd &&
				k.Node.Range.ByteStart < cand.Node.Range.ByteEnd {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, cand)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Node.Range.ByteStart < kept[j].Node.Range.ByteStart
	})
	return kept
}
