// Package country normalizes entity names across heterogeneous indicator
// sources. World Bank and UN exports spell the same country differently
// ("Egypt, Arab Rep." vs "Egypt", "Türkiye" vs "Turkey"); joining on raw
// names would split one country into several entities. The package provides
// token normalization, a built-in canonical name table, user-extensible
// alias maps, and detection of regional aggregates that must never be
// remapped to countries.
package country

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctRx = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	wsRx    = regexp.MustCompile(`\s+`)

	// Abbreviation rules applied after basic normalization, mirroring the
	// patterns seen in WB/UN country columns.
	tokenRules = []struct {
		rx   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\bdem\b`), "democratic"},
		{regexp.MustCompile(`\brep\b`), "republic"},
		{regexp.MustCompile(`\bpeople s\b`), "peoples"},
		{regexp.MustCompile(`\bfed sts\b`), "federated states"},
		{regexp.MustCompile(`\bfed states\b`), "federated states"},
		{regexp.MustCompile(`\bfed\b`), "federal"},
	}
)

// StripAccents removes diacritics without changing base letters, so that
// "Curaçao" and "Curacao" normalize to the same token.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeToken reduces a country name to its lookup key: accents
// stripped, lowercased, punctuation removed, whitespace collapsed,
// common WB/UN abbreviations expanded, and a leading "the " dropped.
func NormalizeToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = StripAccents(s)
	s = strings.ToLower(s)
	s = punctRx.ReplaceAllString(s, " ")
	s = wsRx.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	for _, rule := range tokenRules {
		s = rule.rx.ReplaceAllString(s, rule.repl)
	}
	s = wsRx.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "the ")
	return s
}
