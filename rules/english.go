// The English grammar catalogue: cardinal and ordinal numbers.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
)

// englishUnits maps the spelled cardinals below twenty. The regex
// alternation is ordered longest-first so a prefix word never shadows
// a longer one.
var englishUnits = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19,
}

const englishUnitsPattern = `(nineteen|eighteen|seventeen|sixteen|fifteen|fourteen|thirteen|twelve|eleven|seven|three|eight|zero|four|five|nine|one|two|six|ten)`

// englishTens maps the spelled tens.
var englishTens = map[string]int64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

const englishTensPattern = `(twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)`

// englishPowers maps the magnitude words; they produce grouping
// integers that only combine multiplicatively.
var englishPowers = map[string]int64{
	"hundred":  100,
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
}

const englishPowersPattern = `(hundred|thousand|million|billion)`

// englishOrdinals maps the spelled ordinals below twenty.
var englishOrdinals = map[string]int64{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14,
	"fifteenth": 15, "sixteenth": 16, "seventeenth": 17,
	"eighteenth": 18, "nineteenth": 19,
}

const englishOrdinalsPattern = `(nineteenth|eighteenth|seventeenth|sixteenth|fifteenth|fourteenth|thirteenth|eleventh|twelfth|seventh|fourth|eighth|second|third|fifth|sixth|ninth|tenth|first)`

func isGroup(n *dimension.IntegerValue) bool    { return n.Group }
func isNotGroup(n *dimension.IntegerValue) bool { return !n.Group }

// multipleOf builds a divisibility predicate for composition rules.
func multipleOf(m int64) func(*dimension.IntegerValue) bool {
	return func(n *dimension.IntegerValue) bool { return n.Value%m == 0 }
}

// lookupInteger resolves a spelled word through a table.
func lookupInteger(table map[string]int64, word string) (dimension.Value, error) {
	n, ok := table[strings.ToLower(word)]
	if !ok {
		return nil, fmt.Errorf("rules: unknown numeral %q", word)
	}
	return &dimension.IntegerValue{Value: n}, nil
}

func addEnglishNumbers(b *engine.RuleSetBuilder) {
	b.Rule("integer (numeric)",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			if err != nil {
				return nil, err
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`(\d{1,19})`),
	)
	b.Rule("integer with thousands separator ,",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := strconv.ParseInt(strings.ReplaceAll(c[0].Group(1), ",", ""), 10, 64)
			if err != nil {
				return nil, err
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`(\d{1,3}(,\d\d\d){1,5})`),
	)
	b.Rule("integer (0..19)",
		func(c []engine.Capture) (dimension.Value, error) {
			return lookupInteger(englishUnits, c[0].Group(1))
		},
		b.Reg(englishUnitsPattern),
	)
	b.Rule("integer (20..90)",
		func(c []engine.Capture) (dimension.Value, error) {
			return lookupInteger(englishTens, c[0].Group(1))
		},
		b.Reg(englishTensPattern),
	)
	b.Rule("integer 21..99",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value + intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(20, 90, multipleOf(10)),
		engine.IntegerCheck(1, 9),
	)
	b.Rule("integer 21..99 (hyphenated)",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value + intOf(c[2]).Value}, nil
		},
		engine.IntegerCheck(20, 90, multipleOf(10)),
		b.Reg(`-`),
		engine.IntegerCheck(1, 9),
	)
	b.Rule("powers of ten",
		func(c []engine.Capture) (dimension.Value, error) {
			n, ok := englishPowers[strings.ToLower(c[0].Group(1))]
			if !ok {
				return nil, fmt.Errorf("rules: unknown magnitude %q", c[0].Group(1))
			}
			return &dimension.IntegerValue{Value: n, Group: true}, nil
		},
		b.Reg(englishPowersPattern),
	)
	b.Rule("number hundreds",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value * intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(1, 9, isNotGroup),
		engine.IntegerCheck(100, 100, isGroup),
	)
	b.Rule("number thousands",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value * intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(1, 999, isNotGroup),
		engine.IntegerCheck(1_000, 1_000, isGroup),
	)
	b.Rule("number millions",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value * intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(1, 999, isNotGroup),
		engine.IntegerCheck(1_000_000, 1_000_000, isGroup),
	)
	b.Rule("number billions",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value * intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(1, 999, isNotGroup),
		engine.IntegerCheck(1_000_000_000, 1_000_000_000, isGroup),
	)
	b.Rule("integer 101..999",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value + intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(100, 900, multipleOf(100), isNotGroup),
		engine.IntegerCheck(1, 99),
	)
	b.Rule("integer 1001..999999",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value + intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(1_000, 999_000, multipleOf(1_000), isNotGroup),
		engine.IntegerCheck(1, 999),
	)
	b.Rule("integer composition (millions)",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value + intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(1_000_000, 999_000_000_000, multipleOf(1_000_000), isNotGroup),
		engine.IntegerCheck(1, 999_999),
	)
	b.Rule("ordinals (first..19th)",
		func(c []engine.Capture) (dimension.Value, error) {
			n, ok := englishOrdinals[strings.ToLower(c[0].Group(1))]
			if !ok {
				return nil, fmt.Errorf("rules: unknown ordinal %q", c[0].Group(1))
			}
			return &dimension.OrdinalValue{Value: n}, nil
		},
		b.Reg(englishOrdinalsPattern),
	)
	b.Rule("ordinal (digits)",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := strconv.ParseInt(c[0].Group(1), 10, 64)
			if err != nil {
				return nil, err
			}
			return &dimension.OrdinalValue{Value: n}, nil
		},
		b.Reg(`0*(\d+) ?(?:st|nd|rd|th)`),
	)
	b.Rule("decimal number",
		func(c []engine.Capture) (dimension.Value, error) {
			f, err := strconv.ParseFloat(c[0].Group(1), 32)
			if err != nil {
				return nil, err
			}
			return &dimension.FloatValue{Value: float32(f)}, nil
		},
		b.Reg(`(\d*\.\d+)`),
	)
	b.Rule("decimal with thousands separator",
		func(c []engine.Capture) (dimension.Value, error) {
			f, err := strconv.ParseFloat(strings.ReplaceAll(c[0].Group(1), ",", ""), 32)
			if err != nil {
				return nil, err
			}
			return &dimension.FloatValue{Value: float32(f)}, nil
		},
		b.Reg(`(\d+(,\d\d\d)+\.\d+)`),
	)
	b.Rule("negative numbers",
		func(c []engine.Capture) (dimension.Value, error) {
			switch n := c[1].Value().(type) {
			case *dimension.IntegerValue:
				out := *n
				out.Value = -out.Value
				out.Prefixed = true
				return &out, nil
			case *dimension.FloatValue:
				out := *n
				out.Value = -out.Value
				out.Prefixed = true
				return &out, nil
			}
			return nil, fmt.Errorf("rules: negation over a non-number")
		},
		b.Reg(`-|minus\s?|negative\s?`),
		engine.NumberCheck(notPrefixed),
	)
}
