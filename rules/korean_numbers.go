// Sino-Korean and native Korean numeral tables and decomposition.
// The decomposition is a shared helper so the grammar rules never
// compile patterns of their own at production time.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tempora-nlp/tempora/dimension"
	"github.com/tempora-nlp/tempora/engine"
)

// sinoDigits maps sino-Korean digit characters to their values.
var sinoDigits = map[rune]int64{
	'일': 1, '이': 2, '삼': 3, '사': 4, '오': 5,
	'육': 6, '칠': 7, '팔': 8, '구': 9,
}

// sinoSmallUnits are the multipliers below 만.
var sinoSmallUnits = map[rune]int64{
	'십': 10, '백': 100, '천': 1_000,
}

// sinoLargeUnits are the section multipliers: each closes the group of
// digits and small units before it.
var sinoLargeUnits = map[rune]int64{
	'만': 10_000, '억': 100_000_000, '조': 1_000_000_000_000,
}

// parseSinoKorean decomposes a sino-Korean numeral like 삼천오백이십일
// or 이만삼천 into its value. A bare unit counts as one of itself
// (십 is 10, 만 is 10000).
func parseSinoKorean(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("rules: empty sino-Korean numeral")
	}
	var result, section, digit int64
	for _, r := range s {
		switch {
		case sinoDigits[r] != 0:
			digit = sinoDigits[r]
		case sinoSmallUnits[r] != 0:
			if digit == 0 {
				digit = 1
			}
			section += digit * sinoSmallUnits[r]
			digit = 0
		case sinoLargeUnits[r] != 0:
			section += digit
			digit = 0
			if section == 0 {
				section = 1
			}
			result += section * sinoLargeUnits[r]
			section = 0
		default:
			return 0, fmt.Errorf("rules: unexpected rune %q in sino-Korean numeral %q", r, s)
		}
	}
	return result + section + digit, nil
}

// nativeNumerals maps native Korean cardinals to their values: the
// standalone forms, the determiner forms used before counters, and the
// tens.
var nativeNumerals = map[string]int64{
	"하나": 1, "둘": 2, "셋": 3, "넷": 4, "다섯": 5,
	"여섯": 6, "일곱": 7, "여덟": 8, "아홉": 9,
	"한": 1, "두": 2, "세": 3, "네": 4,
	"열": 10, "스물": 20, "서른": 30, "마흔": 40, "쉰": 50,
	"예순": 60, "일흔": 70, "여든": 80, "아흔": 90,
}

// nativeDayWords are the native words for counts of days.
var nativeDayWords = map[string]int64{
	"하루": 1, "이틀": 2, "양일": 2, "사흘": 3, "나흘": 4,
	"닷새": 5, "엿새": 6, "이레": 7, "여드레": 8, "아흐레": 9,
	"열흘": 10, "열하루": 11,
}

// sinoDecimalDigits maps the digit characters allowed after 점 to
// their ASCII forms, 영 included.
var sinoDecimalDigits = map[rune]byte{
	'일': '1', '이': '2', '삼': '3', '사': '4', '오': '5',
	'육': '6', '칠': '7', '팔': '8', '구': '9', '영': '0',
}

func addKoreanNumbers(b *engine.RuleSetBuilder) {
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
	b.Rule("integer 0",
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: 0}, nil
		},
		b.Reg(`영|공|빵`),
	)
	b.Rule("half - 반",
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.FloatValue{Value: 0.5}, nil
		},
		b.Reg(`반`),
	)
	b.Rule("few 몇",
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: 3, Precision: dimension.Approximate}, nil
		},
		b.Reg(`몇`),
	)
	b.Rule("integer - TYPE 1",
		func(c []engine.Capture) (dimension.Value, error) {
			n, err := parseSinoKorean(c[0].Group(0))
			if err != nil {
				return nil, err
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`[일이삼사오육칠팔구십백천만억조]+`),
	)
	b.Rule("integer (1..10) - TYPE 2",
		func(c []engine.Capture) (dimension.Value, error) {
			n, ok := nativeNumerals[c[0].Group(1)]
			if !ok {
				return nil, fmt.Errorf("rules: unknown native numeral %q", c[0].Group(1))
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`(하나|둘|셋|넷|다섯|여섯|일곱|여덟|아홉)`),
	)
	b.Rule("integer (1..4) - for ordinals",
		func(c []engine.Capture) (dimension.Value, error) {
			n, ok := nativeNumerals[c[0].Group(1)]
			if !ok {
				return nil, fmt.Errorf("rules: unknown native numeral %q", c[0].Group(1))
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`(한|두|세|네)`),
	)
	b.Rule("first ordinal",
		func([]engine.Capture) (dimension.Value, error) {
			return &dimension.OrdinalValue{Value: 1}, nil
		},
		b.Reg(`첫(?:번째|번|째|째번)?`),
	)
	b.Rule("integer (20..90) - TYPE 2 and ordinals",
		func(c []engine.Capture) (dimension.Value, error) {
			n, ok := nativeNumerals[c[0].Group(1)]
			if !ok {
				return nil, fmt.Errorf("rules: unknown native numeral %q", c[0].Group(1))
			}
			return &dimension.IntegerValue{Value: n}, nil
		},
		b.Reg(`(열|스물|서른|마흔|쉰|예순|일흔|여든|아흔)`),
	)
	b.Rule("integer (11..99) - TYPE 2",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.IntegerValue{Value: intOf(c[0]).Value + intOf(c[1]).Value}, nil
		},
		engine.IntegerCheck(10, 90, func(n *dimension.IntegerValue) bool { return n.Value%10 == 0 }),
		engine.IntegerCheck(1, 9),
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
	b.Rule("number dot number - 삼점사",
		func(c []engine.Capture) (dimension.Value, error) {
			var digits strings.Builder
			digits.WriteString("0.")
			for _, r := range c[1].Group(2) {
				if d, ok := sinoDecimalDigits[r]; ok {
					digits.WriteByte(d)
				}
			}
			frac, err := strconv.ParseFloat(digits.String(), 32)
			if err != nil {
				return nil, err
			}
			return &dimension.FloatValue{Value: float32(numberOf(c[0]) + frac)}, nil
		},
		engine.NumberCheck(notPrefixed),
		b.Reg(`(점|쩜)([일이삼사오육칠팔구영]+)`),
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
	b.Rule("numbers prefix with -, 마이너스, or 마이나스",
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
		b.Reg(`-|마이너스\s?|마이나스\s?`),
		engine.NumberCheck(notPrefixed),
	)
	b.Rule("ordinals (첫번째)",
		func(c []engine.Capture) (dimension.Value, error) {
			return &dimension.OrdinalValue{Value: intOf(c[0]).Value}, nil
		},
		engine.IntegerCheckAny(),
		b.Reg(`번째|째|째번`),
	)
	b.Rule("fraction - 분의",
		func(c []engine.Capture) (dimension.Value, error) {
			denom := numberOf(c[0])
			if denom == 0 {
				return nil, fmt.Errorf("rules: zero denominator")
			}
			return &dimension.FloatValue{Value: float32(numberOf(c[2]) / denom)}, nil
		},
		engine.NumberCheck(notPrefixed),
		b.Reg(`분(의|에)`),
		engine.NumberCheck(notSuffixed),
	)
	b.Rule("fraction - /",
		func(c []engine.Capture) (dimension.Value, error) {
			denom := numberOf(c[2])
			if denom == 0 {
				return nil, fmt.Errorf("rules: zero denominator")
			}
			return &dimension.FloatValue{Value: float32(numberOf(c[0]) / denom)}, nil
		},
		engine.NumberCheck(notPrefixed),
		b.Reg(`/`),
		engine.NumberCheck(notSuffixed),
	)
}
