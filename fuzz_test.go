package tempora

import (
	"testing"
	"time"

	"github.com/tempora-nlp/tempora/dimension"
)

// FuzzParseKO verifies that parsing never panics and that every match
// byte range has a non-negative start and does not end before it starts.
func FuzzParseKO(f *testing.F) {
	parser, err := BuildParser(LangKO)
	if err != nil {
		f.Fatalf("BuildParser: %v", err)
	}
	ctx := dimension.NewParsingContext(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC))

	f.Add("내일")
	f.Add("3월 첫째 화요일")
	f.Add("아침 9시부터 오후 6시까지")
	f.Add("3.5시간")
	f.Add("10:30")
	f.Add("")
	f.Add("zzzz")
	f.Add("\xff\xfe")
	f.Add("시시시시시")
	f.Add("-999999999999999999999")

	f.Fuzz(func(t *testing.T, s string) {
		matches := parser.Parse(s, ctx, true)
		for _, m := range matches {
			if m.Range.ByteStart < 0 || m.Range.ByteEnd < m.Range.ByteStart {
				t.Errorf("bad byte range %+v", m.Range)
			}
		}
	})
}

// FuzzParseEN verifies the English catalogue never panics either.
func FuzzParseEN(f *testing.F) {
	parser, err := BuildParser(LangEN)
	if err != nil {
		f.Fatalf("BuildParser: %v", err)
	}
	ctx := dimension.NewParsingContext(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC))

	f.Add("twenty-one")
	f.Add("one million five hundred twenty-one thousand eighty-two")
	f.Add("minus seven")
	f.Add("12th")
	f.Add("1,521,082")
	f.Add("hundred hundred hundred")

	f.Fuzz(func(t *testing.T, s string) {
		_ = parser.Parse(s, ctx, true)
	})
}
