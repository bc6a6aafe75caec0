// Package normalize provides the small pure value transformations applied to
// vendor order columns before they enter a canonical row.
package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/88maurosls/asics/internal/common"
)

// CleanPrice strips the currency symbol and thousands separators from a raw
// vendor price and parses it as a decimal. When both '.' and ',' appear, the
// rightmost one is taken as the decimal separator, so "€1.234,56" and
// "1,234.56" both parse to 1234.56.
func CleanPrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// European style: '.' thousands, ',' decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A lone comma is a decimal separator.
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q", common.ErrParse, raw)
	}
	return d, nil
}

// FormatSize normalizes a US size for the catalog: a trailing ".0" is
// stripped and a trailing ".5" becomes "+". "10.5" -> "10+", "9.0" -> "9",
// "9" -> "9". The two suffixes are disjoint, so exactly one rewrite applies.
func FormatSize(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasSuffix(s, ".0"):
		return strings.TrimSuffix(s, ".0")
	case strings.HasSuffix(s, ".5"):
		return strings.TrimSuffix(s, ".5") + "+"
	}
	return s
}

// PadColor left-pads a color code with zeros to three characters. Codes
// already longer than three characters pass through unchanged.
func PadColor(code string) string {
	s := strings.TrimSpace(code)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// ParseQuantity parses a vendor quantity as a non-negative integer.
// Fractional and negative quantities are rejected rather than truncated.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q", common.ErrParse, raw)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: quantity %q is not an integer", common.ErrParse, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: quantity %q is negative", common.ErrParse, raw)
	}
	return int(d.IntPart()), nil
}
