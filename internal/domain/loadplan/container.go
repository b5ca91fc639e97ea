package loadplan

import (
	"fmt"

	"github.com/hapkiduki/loadplan-go/internal/domain/valueobject"
)

// Orientation labels, in search priority order.
const (
	OrientationNormal    = "Normal"
	OrientationRotated90 = "Rotated 90°"
	OrientationOnEnd     = "On end"
)

// AssetBox is the item checked for container fit.
type AssetBox struct {
	valueobject.Dimensions

	MassKg float64 `json:"mass"`
}

// Orientation is one way of presenting the asset to the container.
type Orientation struct {
	Label  string  `json:"label"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Gate names the constraint a violation belongs to.
type Gate string

const (
	GateDoor     Gate = "door"
	GateInternal Gate = "internal"
)

// Violation is one limit exceeded by an orientation.
type Violation struct {
	Gate      Gate    `json:"gate"`
	Dimension string  `json:"dimension"`
	ExcessM   float64 `json:"excess"`
}

// String renders guidance such as "exceeds door width by 0.12 m".
func (v Violation) String() string {
	return fmt.Sprintf("exceeds %s %s by %.2f m", v.Gate, v.Dimension, v.ExcessM)
}

// OrientationAttempt records how one orientation fared against both gates.
// Excess values are signed: dimension minus limit, positive when exceeded.
type OrientationAttempt struct {
	Orientation Orientation `json:"orientation"`

	DoorFits     bool `json:"doorFits"`
	InternalFits bool `json:"internalFits"`

	DoorWidthExcess  float64 `json:"doorWidthExcess"`
	DoorHeightExcess float64 `json:"doorHeightExcess"`

	LengthExcess float64 `json:"lengthExcess"`
	WidthExcess  float64 `json:"widthExcess"`
	HeightExcess float64 `json:"heightExcess"`

	Violations []Violation `json:"violations"`
}

// Fits reports whether both gates passed.
func (a OrientationAttempt) Fits() bool {
	return a.DoorFits && a.InternalFits
}

// ContainerFitResult is the verdict of a container fit check.
//
// Fits covers dimensions only. PayloadExceeded is reported independently
// and never changes Fits.
type ContainerFitResult struct {
	Fits              bool         `json:"fits"`
	ChosenOrientation *Orientation `json:"chosenOrientation,omitempty"`

	// Set only when nothing fits: some attempt failed the respective gate.
	DoorConstraintViolated     bool `json:"doorConstraintViolated"`
	InternalConstraintViolated bool `json:"internalConstraintViolated"`

	PayloadExceeded    bool    `json:"payloadExceeded"`
	EffectivePayloadKg float64 `json:"effectivePayload"`
	PayloadExcessKg    float64 `json:"payloadExcess"`

	AttemptedOrientations []OrientationAttempt `json:"attemptedOrientations"`
}

// candidateOrientations returns the orientations to try, in priority order.
// Only three load-bearing faces are considered, not all six permutations.
func candidateOrientations(d valueobject.Dimensions, allowRotation bool) []Orientation {
	normal := toOrientation(OrientationNormal, d)
	if !allowRotation {
		return []Orientation{normal}
	}
	return []Orientation{
		normal,
		toOrientation(OrientationRotated90, d.Rotated()),
		toOrientation(OrientationOnEnd, d.OnEnd()),
	}
}

func toOrientation(label string, d valueobject.Dimensions) Orientation {
	return Orientation{Label: label, Length: d.Length, Width: d.Width, Height: d.Height}
}

// CheckContainerFit checks whether an asset passes the container door and
// fits inside, trying orientations in priority order and stopping at the
// first that passes both gates.
//
// Parameters:
//   - asset: item envelope and mass
//   - container: catalogue or custom profile
//   - allowRotation: try the rotated and on-end orientations too
//   - payloadOverride: replaces the container payload limit when non-nil
//
// Returns:
//   - ContainerFitResult: verdict with every attempted orientation
func CheckContainerFit(asset AssetBox, container ContainerProfile, allowRotation bool, payloadOverride *float64) ContainerFitResult {
	dims := valueobject.NewDimensions(asset.Length, asset.Width, asset.Height)
	candidates := candidateOrientations(dims, allowRotation)

	result := ContainerFitResult{AttemptedOrientations: make([]OrientationAttempt, 0, len(candidates))}
	for _, o := range candidates {
		attempt := evaluateOrientation(o, container)
		result.AttemptedOrientations = append(result.AttemptedOrientations, attempt)
		if attempt.Fits() {
			chosen := o
			result.Fits = true
			result.ChosenOrientation = &chosen
			break
		}
	}

	if !result.Fits {
		for _, a := range result.AttemptedOrientations {
			result.DoorConstraintViolated = result.DoorConstraintViolated || !a.DoorFits
			result.InternalConstraintViolated = result.InternalConstraintViolated || !a.InternalFits
		}
	}

	result.EffectivePayloadKg = container.MaxPayloadKg
	if payloadOverride != nil {
		result.EffectivePayloadKg = *payloadOverride
	}
	mass := valueobject.NonNegative(asset.MassKg)
	if result.EffectivePayloadKg > 0 && mass > result.EffectivePayloadKg {
		result.PayloadExceeded = true
		result.PayloadExcessKg = mass - result.EffectivePayloadKg
	}

	return result
}

func evaluateOrientation(o Orientation, c ContainerProfile) OrientationAttempt {
	a := OrientationAttempt{
		Orientation:      o,
		DoorWidthExcess:  o.Width - c.DoorWidth,
		DoorHeightExcess: o.Height - c.DoorHeight,
		LengthExcess:     o.Length - c.InternalLength,
		WidthExcess:      o.Width - c.InternalWidth,
		HeightExcess:     o.Height - c.InternalHeight,
		Violations:       []Violation{},
	}

	a.DoorFits = o.Width <= c.DoorWidth && o.Height <= c.DoorHeight
	a.InternalFits = o.Length <= c.InternalLength && o.Width <= c.InternalWidth && o.Height <= c.InternalHeight

	checks := []struct {
		gate      Gate
		dimension string
		excess    float64
	}{
		{GateDoor, "width", a.DoorWidthExcess},
		{GateDoor, "height", a.DoorHeightExcess},
		{GateInternal, "length", a.LengthExcess},
		{GateInternal, "width", a.WidthExcess},
		{GateInternal, "height", a.HeightExcess},
	}
	for _, chk := range checks {
		if chk.excess > 0 {
			a.Violations = append(a.Violations, Violation{Gate: chk.gate, Dimension: chk.dimension, ExcessM: chk.excess})
		}
	}
	return a
}
