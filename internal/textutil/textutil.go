// Package textutil holds the Unicode-aware text helpers shared by the
// taxonomy and query packages.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Lower lowercases s with the language-neutral Unicode mapping.
// A Caser keeps state, so one is built per call.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Fold prepares s for case-insensitive substring matching: NFKC, then Lower.
func Fold(s string) string {
	return Lower(norm.NFKC.String(s))
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
// needle must already be folded.
func ContainsFold(haystack, foldedNeedle string) bool {
	return strings.Contains(Fold(haystack), foldedNeedle)
}

// HyphenateSpace replaces every run of whitespace (including leading and
// trailing runs) with a single hyphen.
func HyphenateSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
