// Package domain implements the ingestion, validation, and aggregation rules
// that turn raw ledger rows into capacity-bounded BIR Form 2307 certificate
// instances with the derived values a renderer needs.
package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Trim strips surrounding whitespace and preserves case.
// All formatters treat a missing cell as the empty string.
func Trim(v string) string { return strings.TrimSpace(v) }

// Upper trims then upper-cases.
func Upper(v string) string { return strings.ToUpper(strings.TrimSpace(v)) }

// TitleCase trims then title-cases each word.
func TitleCase(v string) string { return titleCaser.String(strings.ToLower(strings.TrimSpace(v))) }

// NumericString coerces a cell to an integer and back to its decimal string.
// Anything that does not parse as a number becomes the empty string.
// "0800.0" therefore normalizes to "800", matching how zip codes arrive
// from spreadsheet cells.
func NumericString(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}

// joinPair joins a and b with sep only when both are non-empty.
func joinPair(a, sep, b string) string {
	if a != "" && b != "" {
		return a + sep + b
	}
	return a + b
}
