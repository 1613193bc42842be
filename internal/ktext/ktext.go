// Package ktext provides the text normalization shared by the facade
// and the training corpus loader.
//
// Hangul input frequently arrives NFD-decomposed (macOS filenames,
// some IMEs) and mixed with fullwidth compatibility digits; the
// grammar patterns are written against composed syllables and ASCII
// digits, so both forms are folded before matching.
//
// All functions are safe for concurrent use.
package ktext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Precompose returns s in NFC. Already-composed input is returned
// unchanged without allocating.
func Precompose(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// FoldWidth narrows fullwidth compatibility forms: ３시 becomes 3시.
func FoldWidth(s string) string {
	return width.Fold.String(s)
}

// Clean normalizes a corpus phrase: NFC, width folding, trimmed
// whitespace.
func Clean(s string) string {
	return Precompose(FoldWidth(strings.TrimSpace(s)))
}
