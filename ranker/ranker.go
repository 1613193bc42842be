// Package ranker scores derivations so that ambiguous parses can be
// ordered and pruned.
//
// Each derivation contributes discrete features: the rule name at
// every node of its spine together with the ordered child rule names.
// A log-linear model maps features to weights; a derivation's score
// (its probalog) is the bias plus the sum of its feature weights.
//
// Training is supervised counting over a labeled corpus: derivations
// that resolve to the example's target value are positive, the rest
// negative, and each feature's weight is its smoothed log-odds. The
// procedure is deterministic, so a retrained model is reproducible
// bit for bit.
//
// Models are immutable after construction and safe for concurrent use.
package ranker

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tempora-nlp/tempora/engine"
)

// Feature is one discrete derivation feature.
type Feature string

// Features collects the features of a derivation: one per node,
// encoding the rule name and its ordered child rule names.
func Features(n *engine.Node) []Feature {
	var out []Feature
	collect(n, &out)
	return out
}

func collect(n *engine.Node, out *[]Feature) {
	if len(n.Children) == 0 {
		*out = append(*out, Feature(n.RuleName))
	} else {
		names := make([]string, len(n.Children))
		for i, c := range n.Children {
			names[i] = c.RuleName
		}
		*out = append(*out, Feature(n.RuleName+"("+strings.Join(names, ",")+")"))
	}
	for _, c := range n.Children {
		collect(c, out)
	}
}

// modelVersion guards the persisted encoding.
const modelVersion = 1

// Model is a log-linear feature weighting.
type Model struct {
	Version int                `json:"version"`
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// NewModel returns an empty model that scores every derivation zero.
func NewModel() *Model {
	return &Model{Version: modelVersion, Weights: make(map[string]float64)}
}

// Score returns the probalog of a derivation: bias plus the summed
// weights of its features. Unseen features weigh nothing.
func (m *Model) Score(n *engine.Node) float64 {
	score := m.Bias
	for _, f := range Features(n) {
		score += m.Weights[string(f)]
	}
	return score
}

// Encode serializes the model.
func (m *Model) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeModel deserializes a persisted model, rejecting blobs from an
// unknown version. A blob with no weight table decodes to an empty table.
func DecodeModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("ranker: corrupt model: %w", err)
	}
	if m.Version != modelVersion {
		return nil, fmt.Errorf("ranker: unsupported model version %d", m.Version)
	}
	if m.Weights == nil {
		m.Weights = make(map[string]float64)
	}
	return &m, nil
}

// Example is one labeled training phrase. IsPositive reports whether a
// derivation resolves to the phrase's target value.
type Example struct {
	Text       string
	IsPositive func(n *engine.Node) bool
}

// Train fits a model against the labeled examples parsed with rs.
// An example none of whose derivations is positive cannot supervise
// anything; with skipOnError such examples are skipped and reported in
// the returned error while the model is still produced, otherwise the
// first one aborts training.
func Train(rs *engine.RuleSet, examples []Example, skipOnError bool) (*Model, error) {
	pos := make(map[string]int)
	neg := make(map[string]int)
	totalPos, totalNeg := 0, 0
	var skipped []string

	for _, ex := range examples {
		nodes := rs.Parse(ex.Text)
		found := false
		for _, n := range nodes {
			if ex.IsPositive(n) {
				found = true
				break
			}
		}
		if !found {
			if !skipOnError {
				return nil, fmt.Errorf("ranker: example %q yields no derivation matching its target", ex.Text)
			}
			skipped = append(skipped, ex.Text)
			continue
		}
		for _, n := range nodes {
			counts := pos
			if ex.IsPositive(n) {
				totalPos++
			} else {
				counts = neg
				totalNeg++
			}
			for _, f := range Features(n) {
				counts[string(f)]++
			}
		}
	}

	m := NewModel()
	m.Bias = logOdds(totalPos, totalNeg)
	for _, f := range sortedKeys(pos, neg) {
		m.Weights[f] = logOdds(pos[f], neg[f])
	}

	if len(skipped) > 0 {
		return m, fmt.Errorf("ranker: %d unusable examples skipped: %s", len(skipped), strings.Join(skipped, "; "))
	}
	return m, nil
}

// logOdds is the add-one smoothed log ratio of positive to negative
// counts.
func logOdds(pos, neg int) float64 {
	return math.Log(float64(pos+1) / float64(neg+1))
}

// sortedKeys merges and sorts the feature keys of both count tables so
// training output is deterministic.
func sortedKeys(a, b map[string]int) []string {
	set := make(map[string]bool, len(a)+len(b))
	for k := range a {
		set[k] = true
	}
	for k := range b {
		set[k] = true
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
