package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// integralFloat matches the rendering of a whole number stored as a float.
var integralFloat = regexp.MustCompile(`^(\d+)\.0+$`)

// NormalizeHeader folds a column header for comparison: NFC composed and
// with every whitespace rune removed, so "당월\n 판매량" equals "당월 판매량".
func NormalizeHeader(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeKey folds a key cell (supplier code, item code) for exact
// comparison: trimmed and NFC composed. A whole number rendered as a float
// ("20001787.0") collapses to its integer digits; any other text, including
// "1.10" or "12E3", is kept as written.
func NormalizeKey(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if m := integralFloat.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
