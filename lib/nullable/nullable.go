// Package nullable converts the partial, locale-formatted numeric text
// found on scraped pages into nullable floats, and provides the
// aggregate helpers that have to stay well-defined over missing values.
package nullable

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Float returns a pointer to v. Mostly useful in tests and record literals.
func Float(v float64) *float64 {
	return &v
}

// ParseDecimal parses numeric text that uses a comma as the decimal
// separator ("7,5"). Empty text means the value was not rendered and
// maps to nil rather than an error.
func ParseDecimal(text string) (*float64, error) {
	if text == "" {
		return nil, nil
	}
	cleaned := strings.ReplaceAll(text, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("not a decimal number: %q", text)
	}
	return &v, nil
}

// SafeDivide divides and rounds to 2 decimals. A zero denominator
// yields nil, not an error.
func SafeDivide(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}
	v := Round2(numerator / denominator)
	return &v
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SafeMedian returns the statistical median of the non-nil values, or
// nil when there are none.
func SafeMedian(values []*float64) *float64 {
	var present []float64
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	if len(present) == 0 {
		return nil
	}
	sort.Float64s(present)

	mid := len(present) / 2
	var median float64
	if len(present)%2 == 1 {
		median = present[mid]
	} else {
		median = (present[mid-1] + present[mid]) / 2
	}
	return &median
}
