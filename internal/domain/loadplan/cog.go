// Package loadplan is the load-restraint and load-planning engine.
//
// It exposes three independent calculators used when preparing a vehicle
// Transportation Data Sheet:
//   - Centre-of-Gravity of a set of mass points
//   - Direct-lashing restraint sizing per direction of travel
//   - ISO container fit checking with a limited orientation search
//
// Every function is a pure computation over its arguments. Nothing is cached,
// no package-level state is mutated, and every call builds a fresh result, so
// all calculators are safe for concurrent use. Linear dimensions are in
// metres, masses in kilograms, forces in deca-Newtons and accelerations in
// multiples of g.
package loadplan

import (
	"github.com/hapkiduki/loadplan-go/internal/domain/valueobject"
)

// MassPoint is one contributing component (axle, item) of a
// Centre-of-Gravity computation.
type MassPoint struct {
	// Name labels the component for display.
	Name string `json:"name"`

	// MassKg is the component mass in kilograms.
	MassKg float64 `json:"mass"`

	// X, Y and Z locate the component in metres.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// AxleLoad is the mass carried by one axle and its longitudinal position.
type AxleLoad struct {
	MassKg float64 `json:"mass"`
	X      float64 `json:"x"`
}

// CenterOfGravity is the result of a Centre-of-Gravity computation.
//
// X, Y and Z are nil when TotalMassKg is zero. Zero is a valid coordinate
// and must never stand in for "no data".
type CenterOfGravity struct {
	TotalMassKg float64  `json:"totalMass"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	Z           *float64 `json:"z"`

	// OutOfRange marks a result discarded because the sums overflowed.
	OutOfRange bool `json:"outOfRange,omitempty"`
}

// Defined reports whether the result carries coordinates.
func (c CenterOfGravity) Defined() bool {
	return c.X != nil && c.Y != nil && c.Z != nil
}

// Coordinates returns the position and whether it is defined.
func (c CenterOfGravity) Coordinates() (x, y, z float64, ok bool) {
	if !c.Defined() {
		return 0, 0, 0, false
	}
	return *c.X, *c.Y, *c.Z, true
}

// Rounded returns a copy with every value rounded to two decimals for display.
func (c CenterOfGravity) Rounded() CenterOfGravity {
	out := CenterOfGravity{TotalMassKg: valueobject.Round(c.TotalMassKg, 2), OutOfRange: c.OutOfRange}
	if x, y, z, ok := c.Coordinates(); ok {
		out.X = ptr(valueobject.Round(x, 2))
		out.Y = ptr(valueobject.Round(y, 2))
		out.Z = ptr(valueobject.Round(z, 2))
	}
	return out
}

// ComputeCenterOfGravity reduces a list of mass points to their combined
// mass and mass-weighted mean position.
//
// Negative or non-finite masses count as zero and non-finite coordinates as
// the origin. When the coerced total mass is zero the result has no
// coordinates. When the sums overflow the result has no coordinates either
// and OutOfRange is set.
//
// Parameters:
//   - points: the contributing components, in display order
//
// Returns:
//   - CenterOfGravity: total mass and position
func ComputeCenterOfGravity(points []MassPoint) CenterOfGravity {
	var total, mx, my, mz float64
	for _, p := range points {
		m := valueobject.NonNegative(p.MassKg)
		total += m
		mx += m * valueobject.FiniteOr(p.X, 0)
		my += m * valueobject.FiniteOr(p.Y, 0)
		mz += m * valueobject.FiniteOr(p.Z, 0)
	}

	if total == 0 {
		return CenterOfGravity{}
	}

	x, y, z := mx/total, my/total, mz/total
	for _, v := range []float64{total, x, y, z} {
		if !valueobject.IsFinite(v) {
			return CenterOfGravity{OutOfRange: true}
		}
	}

	return CenterOfGravity{
		TotalMassKg: total,
		X:           ptr(x),
		Y:           ptr(y),
		Z:           ptr(z),
	}
}

// AxlePoints builds the two mass points used by the axle shortcut.
func AxlePoints(front, rear AxleLoad) []MassPoint {
	return []MassPoint{
		{Name: "Front axle", MassKg: front.MassKg, X: front.X},
		{Name: "Rear axle", MassKg: rear.MassKg, X: rear.X},
	}
}

// ComputeAxleCenterOfGravity is the front/rear axle shortcut: both axles
// become mass points on the centre line (y = z = 0).
func ComputeAxleCenterOfGravity(front, rear AxleLoad) CenterOfGravity {
	return ComputeCenterOfGravity(AxlePoints(front, rear))
}

func ptr(v float64) *float64 {
	return &v
}
