// Tests for feature extraction, scoring, training and the model codec.
package ranker

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
)

// numberRules builds a tiny ambiguous grammar: digits plus an additive
// composition with and without a separator word.
func numberRules(t *testing.T) *engine.RuleSet {
	t.Helper()
	b := engine.NewRuleSetBuilder(true)
	b.Rule("num",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			if err != nil {
				return nil, err
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`(\d+)`),
	)
	b.Rule("pair-sum",
		func(c []engine.Capture) (dimension.Value, error) {
			a, _ := dimension.AsInteger(c[0].Value())
			z, _ := dimension.AsInteger(c[1].Value())
			return &dimension.IntegerValue{Value: a.Value + z.Value}, nil
		},
		engine.IntegerCheckAny(),
		engine.IntegerCheckAny(),
	)
	b.Rule("pair-concat",
		func(c []engine.Capture) (dimension.Value, error) {
			a, _ := dimension.AsInteger(c[0].Value())
			z, _ := dimension.AsInteger(c[1].Value())
			return &dimension.IntegerValue{Value: a.Value*10 + z.Value}, nil
		},
		engine.IntegerCheckAny(),
		engine.IntegerCheckAny(),
	)
	rs, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestFeatures(t *testing.T) {
	t.Parallel()

	leafA := &engine.Node{RuleName: "num"}
	leafB := &engine.Node{RuleName: "num"}
	root := &engine.Node{RuleName: "sum", Children: []*engine.Node{leafA, leafB}}

	got := Features(root)
	want := []Feature{"sum(num,num)", "num", "num"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Features = %v, want %v", got, want)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Bias = 0.5
	m.Weights["num"] = 1.25

	n := &engine.Node{RuleName: "num"}
	if got := m.Score(n); got != 1.75 {
		t.Errorf("Score = %v, want 1.75", got)
	}

	unseen := &engine.Node{RuleName: "other"}
	if got := m.Score(unseen); got != 0.5 {
		t.Errorf("unseen feature score = %v, want the bias", got)
	}
}

func TestModelCodecRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Bias = -0.25
	m.Weights["sum(num,num)"] = 1.5

	blob, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeModel(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, back) {
		t.Errorf("round trip: %+v vs %+v", m, back)
	}
}

func TestDecodeModelRejectsCorruptBlobs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		blob string
	}{
		{"garbage", `{{{`},
		{"wrong version", `{"version":99,"bias":0,"weights":{}}`},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeModel([]byte(tt.blob)); err == nil {
				t.Error("corrupt blob decoded")
			}
		})
	}
}

// sumExample labels "a b" with its additive reading.
func sumExample(text string, want int64) Example {
	return Example{
		Text: text,
		IsPositive: func(n *engine.Node) bool {
			v, ok := dimension.AsInteger(n.Value)
			return ok && v.Value == want
		},
	}
}

func TestTrainSeparatesReadings(t *testing.T) {
	t.Parallel()

	rs := numberRules(t)
	examples := []Example{
		sumExample("1 2", 3),
		sumExample("2 3", 5),
		sumExample("3 4", 7),
	}
	m, err := Train(rs, examples, false)
	if err != nil {
		t.Fatal(err)
	}

	if m.Weights["pair-sum(num,num)"] <= m.Weights["pair-concat(num,num)"] {
		t.Errorf("additive reading not preferred: sum=%v concat=%v",
			m.Weights["pair-sum(num,num)"], m.Weights["pair-concat(num,num)"])
	}
}

func TestTrainDeterministic(t *testing.T) {
	t.Parallel()

	rs := numberRules(t)
	examples := []Example{sumExample("1 2", 3), sumExample("4 5", 9)}

	a, err := Train(rs, examples, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Train(rs, examples, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("training is not deterministic")
	}

	blobA, _ := a.Encode()
	blobB, _ := b.Encode()
	if string(blobA) != string(blobB) {
		t.Error("encoded models differ between runs")
	}
}

func TestTrainReportsUnusableExamples(t *testing.T) {
	t.Parallel()

	rs := numberRules(t)
	bad := Example{
		Text:       "no digits here",
		IsPositive: func(*engine.Node) bool { return true },
	}

	if _, err := Train(rs, []Example{bad}, false); err == nil {
		t.Error("strict training accepted an unusable example")
	}

	m, err := Train(rs, []Example{sumExample("1 2", 3), bad}, true)
	if err == nil {
		t.Error("skip-on-error training did not report the skip")
	}
	if m == nil {
		t.Error("skip-on-error training returned no model")
	}
}
