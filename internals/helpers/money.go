package helper

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are stored as integer minor units (cents). These helpers convert
// at the edges only.

func FormatMinor(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// ParseMajorToMinor: "1200.50" → 120050.
func ParseMajorToMinor(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
