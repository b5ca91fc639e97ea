package valueobject

import "math"

// StandardGravity is the default gravitational acceleration in m/s².
const StandardGravity = 9.81

// NewtonsPerDecaNewton is the N↔daN conversion factor.
const NewtonsPerDecaNewton = 10.0

// NewtonsToDecaNewtons converts a force in N to daN.
func NewtonsToDecaNewtons(n float64) float64 {
	return n / NewtonsPerDecaNewton
}

// DecaNewtonsToNewtons converts a force in daN to N.
func DecaNewtonsToNewtons(daN float64) float64 {
	return daN * NewtonsPerDecaNewton
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// GravityOrDefault returns g when it is a usable acceleration,
// StandardGravity otherwise.
func GravityOrDefault(g float64) float64 {
	return PositiveOr(g, StandardGravity)
}
