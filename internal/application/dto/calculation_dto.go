package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
	"github.com/hapkiduki/loadplan-go/internal/domain/loadplan"
)

// MassPointRequest is one component of a Centre-of-Gravity request.
type MassPointRequest struct {
	Name string     `json:"name,omitempty"`
	Mass FormNumber `json:"mass"`
	X    FormNumber `json:"x"`
	Y    FormNumber `json:"y"`
	Z    FormNumber `json:"z"`
}

// CenterOfGravityRequest computes the CoG of arbitrary mass points.
type CenterOfGravityRequest struct {
	// Label tags the history record, e.g. a TDS or vehicle reference.
	Label  string             `json:"label,omitempty"`
	Points []MassPointRequest `json:"points"`
}

// MassPoints converts the request to engine input.
func (r CenterOfGravityRequest) MassPoints() []loadplan.MassPoint {
	out := make([]loadplan.MassPoint, 0, len(r.Points))
	for _, p := range r.Points {
		out = append(out, loadplan.MassPoint{
			Name:   p.Name,
			MassKg: p.Mass.Float(),
			X:      p.X.Float(),
			Y:      p.Y.Float(),
			Z:      p.Z.Float(),
		})
	}
	return out
}

// AxleRequest is the load on one axle.
type AxleRequest struct {
	Mass FormNumber `json:"mass"`
	X    FormNumber `json:"x"`
}

// ToAxleLoad converts to engine input.
func (a AxleRequest) ToAxleLoad() loadplan.AxleLoad {
	return loadplan.AxleLoad{MassKg: a.Mass.Float(), X: a.X.Float()}
}

// AxleCenterOfGravityRequest is the two-axle shortcut.
type AxleCenterOfGravityRequest struct {
	Label     string      `json:"label,omitempty"`
	FrontAxle AxleRequest `json:"front_axle"`
	RearAxle  AxleRequest `json:"rear_axle"`
}

// CenterOfGravityResponse carries the raw coordinates plus a rounded summary.
// X, Y and Z are null when no mass was entered.
type CenterOfGravityResponse struct {
	ID         string   `json:"id,omitempty"`
	TotalMass  float64  `json:"total_mass"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Z          *float64 `json:"z"`
	Defined    bool     `json:"defined"`
	OutOfRange bool     `json:"out_of_range,omitempty"`
	Summary    string   `json:"summary"`
}

// NewCenterOfGravityResponse maps an engine result.
func NewCenterOfGravityResponse(c loadplan.CenterOfGravity) CenterOfGravityResponse {
	resp := CenterOfGravityResponse{
		TotalMass:  c.TotalMassKg,
		X:          c.X,
		Y:          c.Y,
		Z:          c.Z,
		Defined:    c.Defined(),
		OutOfRange: c.OutOfRange,
	}
	r := c.Rounded()
	switch x, y, z, ok := r.Coordinates(); {
	case ok:
		resp.Summary = fmt.Sprintf("CoG at x=%.2f m, y=%.2f m, z=%.2f m (total %.2f kg)", x, y, z, r.TotalMassKg)
	case c.OutOfRange:
		resp.Summary = "Mass or position values out of range."
	default:
		resp.Summary = "No mass entered."
	}
	return resp
}

// DirectionRequest holds the factors and straps for one direction.
// Acceleration and safety factor fall back to configured defaults when omitted.
type DirectionRequest struct {
	AccelerationG *FormNumber `json:"acceleration_g,omitempty"`
	SafetyFactor  *FormNumber `json:"safety_factor,omitempty"`

	// Mode is auto or manual; empty means auto.
	Mode         string     `json:"mode,omitempty"`
	StrapCount   FormNumber `json:"strap_count"`
	StrapRating  FormNumber `json:"strap_rating_dan"`
	LashingAngle FormNumber `json:"lashing_angle_deg"`
}

// AnchorRequest is the lashing-point safe working load.
type AnchorRequest struct {
	SafeWorkingLoad FormNumber  `json:"swl_dan"`
	MarginFactor    *FormNumber `json:"margin_factor,omitempty"`
}

// RestraintRequest sizes direct lashing. Directions are keyed forward,
// rearward and lateral.
type RestraintRequest struct {
	Label      string                      `json:"label,omitempty"`
	LoadMass   FormNumber                  `json:"load_mass"`
	Gravity    *FormNumber                 `json:"gravity,omitempty"`
	Directions map[string]DirectionRequest `json:"directions"`
	Anchor     *AnchorRequest              `json:"anchor,omitempty"`
}

// RestraintEvaluationResponse is the verdict for one direction.
type RestraintEvaluationResponse struct {
	Direction              string  `json:"direction"`
	Mode                   string  `json:"mode"`
	RequiredForce          float64 `json:"required_force_dan"`
	StrapCapacityPerStrap  float64 `json:"strap_capacity_per_strap_dan"`
	RequiredStrapCount     int     `json:"required_strap_count"`
	TotalCapacity          float64 `json:"total_capacity_dan"`
	StrapCountUsed         int     `json:"strap_count_used"`
	AdditionalStrapsNeeded int     `json:"additional_straps_needed"`
	AnchorStatus           string  `json:"anchor_status"`
	PerStrapLoad           float64 `json:"per_strap_load_dan"`
	AnchorAllowed          float64 `json:"anchor_allowed_dan"`
	Pass                   bool    `json:"pass"`
	Message                string  `json:"message"`
	AnchorWarning          string  `json:"anchor_warning,omitempty"`
	AnchorNote             string  `json:"anchor_note,omitempty"`
}

// RestraintResponse holds the three direction verdicts.
type RestraintResponse struct {
	ID          string                        `json:"id,omitempty"`
	Pass        bool                          `json:"pass"`
	Evaluations []RestraintEvaluationResponse `json:"evaluations"`
}

// NewRestraintResponse maps an engine plan.
func NewRestraintResponse(p loadplan.RestraintPlan) RestraintResponse {
	resp := RestraintResponse{
		Pass:        p.Pass(),
		Evaluations: make([]RestraintEvaluationResponse, 0, len(p.Evaluations)),
	}
	for _, e := range p.Evaluations {
		resp.Evaluations = append(resp.Evaluations, RestraintEvaluationResponse{
			Direction:              string(e.Direction),
			Mode:                   string(e.Mode),
			RequiredForce:          e.RequiredForceDaN,
			StrapCapacityPerStrap:  e.StrapCapacityPerStrapDaN,
			RequiredStrapCount:     e.RequiredStrapCount,
			TotalCapacity:          e.TotalCapacityDaN,
			StrapCountUsed:         e.StrapCountUsed,
			AdditionalStrapsNeeded: e.AdditionalStrapsNeeded,
			AnchorStatus:           string(e.AnchorStatus),
			PerStrapLoad:           e.PerStrapLoadDaN,
			AnchorAllowed:          e.AnchorAllowedDaN,
			Pass:                   e.Pass,
			Message:                e.Message,
			AnchorWarning:          e.AnchorWarning,
			AnchorNote:             e.AnchorNote,
		})
	}
	return resp
}

// AssetRequest is the envelope and mass of the item to ship.
type AssetRequest struct {
	Length FormNumber `json:"length"`
	Width  FormNumber `json:"width"`
	Height FormNumber `json:"height"`
	Mass   FormNumber `json:"mass"`
}

// CustomContainerRequest defines a container outside the catalogue.
// Every field is required.
type CustomContainerRequest struct {
	InternalLength FormNumber `json:"internal_length"`
	InternalWidth  FormNumber `json:"internal_width"`
	InternalHeight FormNumber `json:"internal_height"`
	DoorWidth      FormNumber `json:"door_width"`
	DoorHeight     FormNumber `json:"door_height"`
	MaxPayload     FormNumber `json:"max_payload"`
}

// ContainerFitRequest checks an asset against a catalogue or custom container.
type ContainerFitRequest struct {
	Label           string                  `json:"label,omitempty"`
	ContainerType   string                  `json:"container_type"`
	CustomContainer *CustomContainerRequest `json:"custom_container,omitempty"`
	Asset           AssetRequest            `json:"asset"`

	// AllowRotation defaults to true.
	AllowRotation *bool `json:"allow_rotation,omitempty"`

	// PayloadOverride replaces the container payload limit; 0 disables the check.
	PayloadOverride *FormNumber `json:"payload_override,omitempty"`
}

// OrientationResponse is one presentation of the asset.
type OrientationResponse struct {
	Label  string  `json:"label"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ViolationResponse is one exceeded limit with rendered guidance.
type ViolationResponse struct {
	Gate      string  `json:"gate"`
	Dimension string  `json:"dimension"`
	Excess    float64 `json:"excess"`
	Message   string  `json:"message"`
}

// OrientationAttemptResponse reports how one orientation fared.
type OrientationAttemptResponse struct {
	Orientation      OrientationResponse `json:"orientation"`
	DoorFits         bool                `json:"door_fits"`
	InternalFits     bool                `json:"internal_fits"`
	DoorWidthExcess  float64             `json:"door_width_excess"`
	DoorHeightExcess float64             `json:"door_height_excess"`
	LengthExcess     float64             `json:"length_excess"`
	WidthExcess      float64             `json:"width_excess"`
	HeightExcess     float64             `json:"height_excess"`
	Violations       []ViolationResponse `json:"violations"`
}

// ContainerFitResponse is the container fit verdict.
type ContainerFitResponse struct {
	ID                         string                       `json:"id,omitempty"`
	ContainerType              string                       `json:"container_type"`
	ContainerName              string                       `json:"container_name"`
	Fits                       bool                         `json:"fits"`
	ChosenOrientation          *OrientationResponse         `json:"chosen_orientation,omitempty"`
	DoorConstraintViolated     bool                         `json:"door_constraint_violated"`
	InternalConstraintViolated bool                         `json:"internal_constraint_violated"`
	PayloadExceeded            bool                         `json:"payload_exceeded"`
	EffectivePayload           float64                      `json:"effective_payload"`
	PayloadExcess              float64                      `json:"payload_excess"`
	AttemptedOrientations      []OrientationAttemptResponse `json:"attempted_orientations"`
}

func newOrientationResponse(o loadplan.Orientation) OrientationResponse {
	return OrientationResponse{Label: o.Label, Length: o.Length, Width: o.Width, Height: o.Height}
}

// NewContainerFitResponse maps an engine result for the given container.
func NewContainerFitResponse(c loadplan.ContainerProfile, r loadplan.ContainerFitResult) ContainerFitResponse {
	resp := ContainerFitResponse{
		ContainerType:              string(c.Type),
		ContainerName:              c.Name,
		Fits:                       r.Fits,
		DoorConstraintViolated:     r.DoorConstraintViolated,
		InternalConstraintViolated: r.InternalConstraintViolated,
		PayloadExceeded:            r.PayloadExceeded,
		EffectivePayload:           r.EffectivePayloadKg,
		PayloadExcess:              r.PayloadExcessKg,
		AttemptedOrientations:      make([]OrientationAttemptResponse, 0, len(r.AttemptedOrientations)),
	}
	if r.ChosenOrientation != nil {
		o := newOrientationResponse(*r.ChosenOrientation)
		resp.ChosenOrientation = &o
	}
	for _, a := range r.AttemptedOrientations {
		attempt := OrientationAttemptResponse{
			Orientation:      newOrientationResponse(a.Orientation),
			DoorFits:         a.DoorFits,
			InternalFits:     a.InternalFits,
			DoorWidthExcess:  a.DoorWidthExcess,
			DoorHeightExcess: a.DoorHeightExcess,
			LengthExcess:     a.LengthExcess,
			WidthExcess:      a.WidthExcess,
			HeightExcess:     a.HeightExcess,
			Violations:       make([]ViolationResponse, 0, len(a.Violations)),
		}
		for _, v := range a.Violations {
			attempt.Violations = append(attempt.Violations, ViolationResponse{
				Gate:      string(v.Gate),
				Dimension: v.Dimension,
				Excess:    v.ExcessM,
				Message:   v.String(),
			})
		}
		resp.AttemptedOrientations = append(resp.AttemptedOrientations, attempt)
	}
	return resp
}

// ContainerProfileResponse is one catalogue entry.
type ContainerProfileResponse struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	InternalLength float64 `json:"internal_length"`
	InternalWidth  float64 `json:"internal_width"`
	InternalHeight float64 `json:"internal_height"`
	DoorWidth      float64 `json:"door_width"`
	DoorHeight     float64 `json:"door_height"`
	MaxPayload     float64 `json:"max_payload"`
}

// NewContainerProfileResponse maps a catalogue profile.
func NewContainerProfileResponse(c loadplan.ContainerProfile) ContainerProfileResponse {
	return ContainerProfileResponse{
		Type:           string(c.Type),
		Name:           c.Name,
		InternalLength: c.InternalLength,
		InternalWidth:  c.InternalWidth,
		InternalHeight: c.InternalHeight,
		DoorWidth:      c.DoorWidth,
		DoorHeight:     c.DoorHeight,
		MaxPayload:     c.MaxPayloadKg,
	}
}

// ListCalculationsRequest filters the history list.
type ListCalculationsRequest struct {
	Kind    string `json:"kind,omitempty"`
	Outcome string `json:"outcome,omitempty"`
	Label   string `json:"label,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// CalculationSummary is a history list entry.
type CalculationSummary struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Label     string `json:"label,omitempty"`
	Outcome   string `json:"outcome"`
	CreatedAt string `json:"created_at"`
}

// CalculationResponse is a full history record.
type CalculationResponse struct {
	CalculationSummary
	Request json.RawMessage `json:"request"`
	Result  json.RawMessage `json:"result"`
}

// NewCalculationSummary maps a history entity.
func NewCalculationSummary(c *entity.Calculation) CalculationSummary {
	return CalculationSummary{
		ID:        c.ID.String(),
		Kind:      string(c.Kind),
		Label:     c.Label,
		Outcome:   string(c.Outcome),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewCalculationResponse maps a history entity including payloads.
func NewCalculationResponse(c *entity.Calculation) CalculationResponse {
	return CalculationResponse{
		CalculationSummary: NewCalculationSummary(c),
		Request:            c.Request,
		Result:             c.Result,
	}
}
