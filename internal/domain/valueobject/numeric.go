// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
//
// The numeric helpers in this file are the single place where loose form input
// is turned into usable numbers. Planning is done under time pressure, so a
// garbled field degrades to a default instead of blocking the calculation.
package valueobject

import (
	"math"
	"strconv"
	"strings"
)

// ParseOrDefault parses a decimal number typed into a form field.
// Surrounding whitespace is ignored and a decimal comma is accepted.
// Empty, unparsable or non-finite input yields def.
//
// Parameters:
//   - s: the raw field value
//   - def: the value to use when s is not a usable number
//
// Returns:
//   - float64: the parsed value or def
func ParseOrDefault(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || !IsFinite(v) {
		return def
	}
	return v
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteOr returns v when it is finite, def otherwise.
func FiniteOr(v, def float64) float64 {
	if !IsFinite(v) {
		return def
	}
	return v
}

// NonNegative coerces NaN, infinities and negative values to zero.
// Masses and lengths pass through here before any arithmetic.
func NonNegative(v float64) float64 {
	if !IsFinite(v) || v < 0 {
		return 0
	}
	return v
}

// PositiveOr returns v when it is finite and strictly positive, def otherwise.
func PositiveOr(v, def float64) float64 {
	if !IsFinite(v) || v <= 0 {
		return def
	}
	return v
}

// Round rounds v to the given number of decimal places.
// Used for presentation only; calculations keep full precision.
// Values too large to scale are already whole and are returned unchanged.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	scaled := v * p
	if !IsFinite(scaled) {
		return v
	}
	return math.Round(scaled) / p
}

// MaxCount is the largest count CeilCount will return.
const MaxCount = 1_000_000

// CeilCount rounds v up to a whole count.
// It reports false when v is non-finite, negative or would exceed MaxCount,
// so callers never convert an out-of-range float to int.
func CeilCount(v float64) (int, bool) {
	if !IsFinite(v) || v < 0 {
		return 0, false
	}
	c := math.Ceil(v)
	if c > MaxCount {
		return 0, false
	}
	return int(c), true
}
