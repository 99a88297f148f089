package validator

import (
	"math"
	"strconv"
	"strings"
)

// IntRange bounds an integer rule. Nil bounds are open.
type IntRange struct {
	Min *int64
	Max *int64
}

// FloatRange bounds a float rule. Nil bounds are open.
type FloatRange struct {
	Min *float64
	Max *float64
}

// IsInt reports whether s is a base-10 integer within the optional range.
func IsInt(s string, bounds ...IntRange) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	for _, b := range bounds {
		if b.Min != nil && n < *b.Min {
			return false
		}
		if b.Max != nil && n > *b.Max {
			return false
		}
	}
	return true
}

// IsFloat reports whether s is a finite decimal number within the optional range.
func IsFloat(s string, bounds ...FloatRange) bool {
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	for _, b := range bounds {
		if b.Min != nil && f < *b.Min {
			return false
		}
		if b.Max != nil && f > *b.Max {
			return false
		}
	}
	return true
}

// IsBoolean accepts "true", "false", "1" and "0".
func IsBoolean(s string) bool {
	switch s {
	case "true", "false", "1", "0":
		return true
	}
	return false
}
