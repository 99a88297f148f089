package sanitizer

import (
	"math"
	"strconv"
	"strings"
)

// ToInt parses a base-10 integer, ignoring surrounding whitespace. Decimal
// numbers are truncated toward zero; values outside the int64 range fail.
func ToInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return Truncate(f)
}

// Truncate drops the fractional part of f. NaN, infinities and values outside
// the int64 range fail.
func Truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

// ToFloat parses a decimal number, ignoring surrounding whitespace.
func ToFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToBool converts s to a boolean. In strict mode only "1" and "true" are true;
// otherwise everything except "", "0" and "false" is true. Matching is
// case-insensitive.
func ToBool(s string, strict bool) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	if strict {
		return v == "1" || v == "true"
	}
	return v != "" && v != "0" && v != "false"
}
