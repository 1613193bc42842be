// Command parse reads phrases from stdin, one per line, and prints the
// expressions recognized in each: the matched substring, its span, the
// resolved value and the ranker score.
//
// Usage:
//
//	parse -lang ko [-ref 2017-01-01T00:00:00] [-train] [-overlap=false]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tempora-nlp/tempora"
	"github.com/tempora-nlp/tempora/dimension"
)

const refLayout = "2006-01-02T15:04:05"

func main() {
	langFlag := flag.String("lang", "ko", "grammar language (en, ko)")
	refFlag := flag.String("ref", "", "reference instant, e.g. 2017-01-01T00:00:00 (default: now)")
	trainFlag := flag.Bool("train", false, "fit the ranker from the embedded corpus instead of loading the model")
	overlapFlag := flag.Bool("overlap", true, "remove overlapping matches")
	flag.Parse()

	var ref time.Time
	if *refFlag != "" {
		var err error
		ref, err = time.Parse(refLayout, *refFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse: bad -ref %q: %v\n", *refFlag, err)
			os.Exit(2)
		}
		ref = ref.UTC()
	}

	parser, err := buildParser(tempora.Lang(*langFlag), *trainFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}
	ctx := dimension.NewParsingContext(ref)

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		matches := parser.Parse(line, ctx, *overlapFlag)
		if len(matches) == 0 {
			fmt.Println("  (no match)")
			continue
		}
		for _, m := range matches {
			fmt.Printf("  %q [%d:%d] %v (probalog %.3f)\n",
				m.Text(line), m.Range.ByteStart, m.Range.ByteEnd, m.Value, m.Probalog)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "parse: reading stdin: %v\n", err)
		os.Exit(1)
	}
}

func buildParser(lang tempora.Lang, train bool) (*tempora.Parser, error) {
	if train {
		return tempora.TrainParser(lang)
	}
	return tempora.BuildParser(lang)
}
