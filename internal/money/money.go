package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyToken matches figures that look like money: a currency symbol,
// thousands separators, or a decimal fraction. Bare integers are excluded
// here so that e.g. a year in "August 2026" never wins over "$425,000".
var currencyToken = regexp.MustCompile(
	`-?[$€£]\s?-?\d{1,3}(?:,\d{3})*(?:\.\d+)?` + // $425,000 / $-12.50 / -$7
		`|-?[$€£]\s?-?\d+(?:\.\d+)?` + // $393000
		`|-?\d{1,3}(?:,\d{3})+(?:\.\d+)?` + // 425,000.75
		`|-?\d+\.\d+`, // 61000.25
)

// bareInteger is the last-resort pattern when no currency-like token exists.
var bareInteger = regexp.MustCompile(`-?\d+`)

// Parse converts a single cell value into a decimal amount.
// Tolerates surrounding whitespace, an optional leading currency symbol,
// a minus sign before or after the symbol, and thousands separators.
// Returns ok=false when the cell holds no parseable number.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	neg := false

prefix:
	for s != "" {
		switch {
		case strings.HasPrefix(s, "-"):
			neg = true
			s = s[1:]
		case strings.HasPrefix(s, "$"), strings.HasPrefix(s, "€"), strings.HasPrefix(s, "£"):
			s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(s, "$"), "€"), "£")
		case strings.HasPrefix(s, " "):
			s = s[1:]
		default:
			break prefix
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// Extract finds the first currency-like figure in free text.
// When the text contains no symbol-, separator- or fraction-bearing token,
// the first bare integer is used instead.
func Extract(text string) (decimal.Decimal, bool) {
	if m := currencyToken.FindString(text); m != "" {
		return Parse(m)
	}
	if m := bareInteger.FindString(text); m != "" {
		return Parse(m)
	}
	return decimal.Zero, false
}
