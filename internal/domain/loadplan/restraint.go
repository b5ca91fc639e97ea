package loadplan

import (
	"fmt"
	"math"
	"strings"

	"github.com/hapkiduki/loadplan-go/internal/domain/valueobject"
)

// Direction is a direction of travel the load must be restrained against.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionRearward Direction = "rearward"
	DirectionLateral  Direction = "lateral"
)

// Directions lists every restraint direction in evaluation order.
func Directions() []Direction {
	return []Direction{DirectionForward, DirectionRearward, DirectionLateral}
}

// IsValid checks if the direction is one of the known directions.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionForward, DirectionRearward, DirectionLateral:
		return true
	}
	return false
}

// Label returns the display name of the direction.
func (d Direction) Label() string {
	switch d {
	case DirectionForward:
		return "Forward"
	case DirectionRearward:
		return "Rearward"
	case DirectionLateral:
		return "Lateral"
	}
	return string(d)
}

// LashingMode selects how the strap count for a direction is obtained.
type LashingMode string

const (
	// LashingModeAuto prescribes the minimum number of straps.
	LashingModeAuto LashingMode = "auto"

	// LashingModeManual checks a user-chosen strap count.
	LashingModeManual LashingMode = "manual"
)

// IsValid checks if the mode is known.
func (m LashingMode) IsValid() bool {
	return m == LashingModeAuto || m == LashingModeManual
}

// LashingConfig describes the straps used for one direction.
type LashingConfig struct {
	Mode LashingMode `json:"mode"`

	// StrapCount is only read in manual mode.
	StrapCount int `json:"strapCount"`

	// StrapRatingDaN is the lashing capacity (LC) of one strap.
	StrapRatingDaN float64 `json:"strapRatingDaN"`

	// LashingAngleDeg is measured from the horizontal, in [0, 90).
	LashingAngleDeg float64 `json:"lashingAngleDeg"`
}

// AnchorConstraint is the safe working load of the lashing points.
type AnchorConstraint struct {
	SafeWorkingLoadDaN float64 `json:"safeWorkingLoadDaN"`
	MarginFactor       float64 `json:"marginFactor"`
}

// AllowedDaN returns the maximum load one anchor point may take.
func (a AnchorConstraint) AllowedDaN() float64 {
	return a.SafeWorkingLoadDaN * a.MarginFactor
}

// DirectionInput carries the per-direction factors and strap configuration.
type DirectionInput struct {
	// AccelerationG is the design acceleration in multiples of g.
	AccelerationG float64 `json:"accelerationG"`

	SafetyFactor float64       `json:"safetyFactor"`
	Lashing      LashingConfig `json:"lashing"`
}

// RestraintInput is everything needed to size the restraint of one load.
type RestraintInput struct {
	LoadMassKg float64 `json:"loadMassKg"`

	// Gravity in m/s²; StandardGravity is used when not positive.
	Gravity float64 `json:"gravity"`

	Directions map[Direction]DirectionInput `json:"directions"`

	// Anchor is optional. When nil the anchor load is reported as not checked.
	Anchor *AnchorConstraint `json:"anchor,omitempty"`
}

// AnchorStatus is the outcome of the anchor safe-working-load check.
type AnchorStatus string

const (
	AnchorNotChecked AnchorStatus = "not_checked"
	AnchorOK         AnchorStatus = "ok"
	AnchorExceeded   AnchorStatus = "exceeded"
)

// RestraintEvaluation is the restraint verdict for one direction.
type RestraintEvaluation struct {
	Direction Direction   `json:"direction"`
	Mode      LashingMode `json:"mode"`

	RequiredForceDaN         float64 `json:"requiredForceDaN"`
	StrapCapacityPerStrapDaN float64 `json:"strapCapacityPerStrapDaN"`
	RequiredStrapCount       int     `json:"requiredStrapCount"`
	TotalCapacityDaN         float64 `json:"totalCapacityDaN"`
	StrapCountUsed           int     `json:"strapCountUsed"`

	// AdditionalStrapsNeeded is the manual-mode deficit; zero otherwise.
	AdditionalStrapsNeeded int `json:"additionalStrapsNeeded"`

	AnchorStatus     AnchorStatus `json:"anchorStatus"`
	PerStrapLoadDaN  float64      `json:"perStrapLoadDaN"`
	AnchorAllowedDaN float64      `json:"anchorAllowedDaN"`

	Pass    bool   `json:"pass"`
	Message string `json:"message"`

	// AnchorWarning is set when the anchor load is exceeded or not checked.
	AnchorWarning string `json:"anchorWarning,omitempty"`

	// AnchorNote confirms a passed anchor check.
	AnchorNote string `json:"anchorNote,omitempty"`
}

// RestraintPlan holds one evaluation per direction in Directions() order.
type RestraintPlan struct {
	Evaluations []RestraintEvaluation `json:"evaluations"`
}

// Pass reports whether every direction passed.
func (p RestraintPlan) Pass() bool {
	if len(p.Evaluations) == 0 {
		return false
	}
	for _, e := range p.Evaluations {
		if !e.Pass {
			return false
		}
	}
	return true
}

// For returns the evaluation for a direction.
func (p RestraintPlan) For(d Direction) (RestraintEvaluation, bool) {
	for _, e := range p.Evaluations {
		if e.Direction == d {
			return e, true
		}
	}
	return RestraintEvaluation{}, false
}

// minStrapCapacityN is the smallest per-strap capacity treated as usable.
// cos(90°) is not exactly zero in floating point.
const minStrapCapacityN = 1e-9

// ComputeRestraintPlan sizes direct lashing for forward, rearward and
// lateral restraint. The directions share the load mass and gravity but are
// otherwise evaluated independently. A direction missing from
// in.Directions is evaluated with zero factors and an empty strap config.
//
// Parameters:
//   - in: load mass, gravity, per-direction factors and straps, optional anchor SWL
//
// Returns:
//   - RestraintPlan: three evaluations, never nil, never an error
func ComputeRestraintPlan(in RestraintInput) RestraintPlan {
	mass := valueobject.NonNegative(in.LoadMassKg)
	g := valueobject.GravityOrDefault(in.Gravity)

	dirs := Directions()
	plan := RestraintPlan{Evaluations: make([]RestraintEvaluation, 0, len(dirs))}
	for _, d := range dirs {
		plan.Evaluations = append(plan.Evaluations, EvaluateDirection(d, mass, g, in.Directions[d], in.Anchor))
	}
	return plan
}

// EvaluateDirection computes the restraint verdict for a single direction.
func EvaluateDirection(dir Direction, massKg, gravity float64, in DirectionInput, anchor *AnchorConstraint) RestraintEvaluation {
	cfg := in.Lashing
	mode := cfg.Mode
	if !mode.IsValid() {
		mode = LashingModeAuto
	}

	accel := valueobject.NonNegative(in.AccelerationG)
	safety := valueobject.NonNegative(in.SafetyFactor)
	requiredN := valueobject.NonNegative(massKg) * valueobject.GravityOrDefault(gravity) * accel * safety

	ev := RestraintEvaluation{
		Direction:    dir,
		Mode:         mode,
		AnchorStatus: AnchorNotChecked,
	}

	// Overwritten by checkAnchor once the strap count is known.
	ev.AnchorWarning = msgSWLIncomplete
	if anchor == nil {
		ev.AnchorWarning = msgSWLNotChecked
	}

	// Finite inputs can still overflow the product.
	if !valueobject.IsFinite(requiredN) {
		ev.Message = msgRequiredOutOfRange
		return ev
	}
	ev.RequiredForceDaN = valueobject.NewtonsToDecaNewtons(requiredN)

	rating := cfg.StrapRatingDaN
	angle := cfg.LashingAngleDeg
	if !valueobject.IsFinite(rating) || rating <= 0 || !valueobject.IsFinite(angle) || angle < 0 {
		ev.Message = msgMissingStrapInput
		return ev
	}

	if angle >= 90 {
		ev.Message = msgZeroCapacity
		return ev
	}
	perStrapN := valueobject.DecaNewtonsToNewtons(rating) * math.Cos(valueobject.DegreesToRadians(angle))
	switch {
	case !valueobject.IsFinite(perStrapN):
		ev.Message = msgRatingOutOfRange
		return ev
	case perStrapN <= minStrapCapacityN:
		// Either the rating itself is negligible or the angle is within
		// rounding distance of vertical.
		if valueobject.DecaNewtonsToNewtons(rating) <= minStrapCapacityN {
			ev.Message = msgRatingTooSmall
		} else {
			ev.Message = msgZeroCapacity
		}
		return ev
	}
	ev.StrapCapacityPerStrapDaN = valueobject.NewtonsToDecaNewtons(perStrapN)

	required, ok := valueobject.CeilCount(requiredN / perStrapN)
	if !ok {
		ev.Message = fmt.Sprintf(msgTooManyStrapsFmt, dir.Label(), valueobject.MaxCount, ev.RequiredForceDaN)
		return ev
	}
	ev.RequiredStrapCount = required

	var capacityPass bool
	var totalN float64
	switch mode {
	case LashingModeManual:
		ev.StrapCountUsed = max(cfg.StrapCount, 0)
		totalN = perStrapN * float64(ev.StrapCountUsed)
		capacityPass = totalN >= requiredN
		if !capacityPass {
			// Bounded by RequiredStrapCount, so CeilCount cannot fail here.
			ev.AdditionalStrapsNeeded, _ = valueobject.CeilCount((requiredN - totalN) / perStrapN)
		}
	default:
		ev.StrapCountUsed = ev.RequiredStrapCount
		totalN = perStrapN * float64(ev.StrapCountUsed)
		capacityPass = true
	}
	if !valueobject.IsFinite(totalN) {
		ev.StrapCountUsed = 0
		ev.AdditionalStrapsNeeded = 0
		ev.Message = msgRatingOutOfRange
		return ev
	}
	ev.TotalCapacityDaN = valueobject.NewtonsToDecaNewtons(totalN)

	anchorPass := checkAnchor(&ev, anchor)
	ev.Pass = capacityPass && anchorPass

	parts := []string{capacityMessage(ev, rating, angle)}
	if ev.AnchorStatus == AnchorExceeded {
		parts = append(parts, anchorExceededMessage(ev))
	}
	ev.Message = strings.Join(parts, " ")
	return ev
}

// checkAnchor fills the anchor fields of ev and reports whether the anchor
// check passed. An unchecked anchor passes but always carries an advisory.
func checkAnchor(ev *RestraintEvaluation, anchor *AnchorConstraint) bool {
	if anchor == nil {
		ev.AnchorWarning = msgSWLNotChecked
		return true
	}
	if ev.StrapCountUsed <= 0 {
		ev.AnchorWarning = msgSWLNoStraps
		return true
	}

	allowed := anchor.AllowedDaN()
	if !valueobject.IsFinite(allowed) {
		ev.AnchorWarning = msgSWLOutOfRange
		return true
	}

	ev.PerStrapLoadDaN = ev.RequiredForceDaN / float64(ev.StrapCountUsed)
	ev.AnchorAllowedDaN = allowed
	if ev.PerStrapLoadDaN > ev.AnchorAllowedDaN {
		ev.AnchorStatus = AnchorExceeded
		ev.AnchorWarning = fmt.Sprintf(msgAnchorExceededFmt, ev.PerStrapLoadDaN, ev.AnchorAllowedDaN)
		return false
	}

	ev.AnchorStatus = AnchorOK
	ev.AnchorWarning = ""
	ev.AnchorNote = fmt.Sprintf(msgAnchorOKFmt, ev.PerStrapLoadDaN, ev.AnchorAllowedDaN)
	return true
}
