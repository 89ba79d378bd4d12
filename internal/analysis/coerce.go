package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SafeFloat parses a raw cell into a float64, tolerating thousands-separator
// commas, stray spaces and a trailing percent sign. nil, empty and unparsable
// input all yield 0. It never fails; callers must treat 0 as "could not
// determine", not as proof of a parsed zero.
func SafeFloat(value any) float64 {
	if value == nil {
		return 0
	}

	s := strings.TrimSpace(fmt.Sprint(value))
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, "%")

	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// SafeInt is SafeFloat truncated toward zero. Non-finite values collapse
// to 0 like any other parse failure.
func SafeInt(value any) int {
	parsed := SafeFloat(value)
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return int(parsed)
}
