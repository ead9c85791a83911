// Package formatting provides parsing and formatting helpers shared across
// the service: byte sizes, monetary amounts, and JSON extraction from model
// responses.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var byteUnits = []string{
	"B", "KB", "MB",
	"GB", "TB", "PB",
	"EB", "ZB", "YB",
}

var byteSizePattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes converts a byte count to a human-readable string using
// base-1024 units. Negative precision values are clamped to zero.
func FormatBytes(n int64, precision int) string {
	if n == 0 {
		return "0 B"
	}

	if precision < 0 {
		precision = 0
	}

	exp := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if exp >= len(byteUnits) {
		exp = len(byteUnits) - 1
	}

	size := float64(n) / math.Pow(1024, float64(exp))
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + byteUnits[exp]
}

// ParseBytes parses a human-readable byte size string (e.g., "50MB") into a
// byte count. Units B through YB are supported, matched case-insensitively,
// with an optional space before the unit. A bare number means bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := byteSizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		return int64(value), nil
	}

	exp := slices.Index(byteUnits, unit)
	if exp == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
