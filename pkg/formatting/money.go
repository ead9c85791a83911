package formatting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MoneyTolerance is the absolute tolerance applied when comparing
// monetary amounts extracted from different document sections.
const MoneyTolerance = 0.01

var amountPattern = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})*(?:\.\d+)?|-?\d+(?:\.\d+)?`)

// ParseAmount extracts a monetary amount from a string such as
// "1,121.00 USD" or "TOTAL 765.00". Thousands separators are stripped
// and any surrounding currency text is ignored.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount string")
	}

	match := amountPattern.FindString(s)
	if match == "" {
		return 0, fmt.Errorf("no amount in %q", s)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", match, err)
	}

	return value, nil
}

// AmountsMatch reports whether two monetary amounts are equal within MoneyTolerance.
func AmountsMatch(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= MoneyTolerance
}
