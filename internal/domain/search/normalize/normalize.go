// Package normalize canonicalizes free text for matching: lower-case,
// diacritics stripped, whitespace collapsed.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var openNowRegex = regexp.MustCompile(`\bopen\s*now\b`)

var separatorReplacer = strings.NewReplacer("/", " ", "&", " ", ",", " ")

// Text lower-cases s, strips diacritics and collapses whitespace runs.
// Text(Text(s)) == Text(s) for every s.
func Text(s string) string {
	if s == "" {
		return ""
	}
	// Lower-case first: some upper-case letters lower into base+mark pairs.
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// Words returns the whitespace-separated words of an already normalized string.
func Words(normalized string) []string {
	return strings.Fields(normalized)
}

// HasOpenNow reports whether a normalized query asks for clinics open now.
func HasOpenNow(normalized string) bool {
	return openNowRegex.MatchString(normalized)
}

// StripOpenNow removes "open now" phrases from a normalized query.
func StripOpenNow(normalized string) string {
	out := normalized
	for openNowRegex.MatchString(out) {
		out = strings.Join(strings.Fields(openNowRegex.ReplaceAllString(out, " ")), " ")
	}
	return out
}

// CollapseSeparators replaces slash, ampersand and comma separators with spaces.
func CollapseSeparators(normalized string) string {
	return strings.Join(strings.Fields(separatorReplacer.Replace(normalized)), " ")
}

// Query runs the full query cleanup: Text, CollapseSeparators, StripOpenNow.
func Query(raw string) string {
	return StripOpenNow(CollapseSeparators(Text(raw)))
}
