// Package entity contains the core business entities of the domain layer.
package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Calculation errors define domain-specific error conditions for history records.
var (
	ErrInvalidCalculationKind = errors.New("invalid calculation kind")
	ErrInvalidOutcome         = errors.New("invalid calculation outcome")
	ErrEmptyPayload           = errors.New("calculation request and result are required")
)

// CalculationKind identifies which calculator produced a record.
type CalculationKind string

const (
	KindCenterOfGravity     CalculationKind = "center_of_gravity"
	KindAxleCenterOfGravity CalculationKind = "axle_center_of_gravity"
	KindRestraint           CalculationKind = "restraint"
	KindContainerFit        CalculationKind = "container_fit"
)

// IsValid checks if the kind is one of the known calculators.
func (k CalculationKind) IsValid() bool {
	switch k {
	case KindCenterOfGravity, KindAxleCenterOfGravity, KindRestraint, KindContainerFit:
		return true
	}
	return false
}

// CalculationOutcome summarises a result for history listings.
type CalculationOutcome string

const (
	OutcomePass     CalculationOutcome = "pass"     // Every check passed
	OutcomeFail     CalculationOutcome = "fail"     // At least one check failed
	OutcomeWarning  CalculationOutcome = "warning"  // Passed with a warning (e.g., payload exceeded)
	OutcomeComputed CalculationOutcome = "computed" // No pass/fail verdict (Centre-of-Gravity)
	OutcomeNoData   CalculationOutcome = "no_data"  // Nothing to compute (empty input)
)

// IsValid checks if the outcome is known.
func (o CalculationOutcome) IsValid() bool {
	switch o {
	case OutcomePass, OutcomeFail, OutcomeWarning, OutcomeComputed, OutcomeNoData:
		return true
	}
	return false
}

// Calculation is one entry of the calculation history kept for a planner.
// Request and Result hold the JSON documents exchanged with the calculator,
// so a past calculation can be shown again exactly as it was returned.
type Calculation struct {
	// ID is the unique identifier for the record
	ID uuid.UUID `json:"id"`

	// Kind is the calculator that produced the record
	Kind CalculationKind `json:"kind"`

	// Label is an optional free-text reference (vehicle, TDS number)
	Label string `json:"label,omitempty"`

	// Outcome summarises the result
	Outcome CalculationOutcome `json:"outcome"`

	// Request is the calculator input as JSON
	Request json.RawMessage `json:"request"`

	// Result is the calculator output as JSON
	Result json.RawMessage `json:"result"`

	// CreatedAt is the timestamp when the calculation ran
	CreatedAt time.Time `json:"created_at"`
}

// NewCalculation creates a new history record from a calculator input and result.
//
// Parameters:
//   - kind: the calculator that ran (required)
//   - label: optional free-text reference
//   - outcome: summary of the result (required)
//   - request: the calculator input, marshalled to JSON
//   - result: the calculator output, marshalled to JSON
//
// Returns:
//   - *Calculation: newly created record
//   - error: validation or encoding error
func NewCalculation(
	kind CalculationKind,
	label string,
	outcome CalculationOutcome,
	request, result any,
) (*Calculation, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCalculationKind, kind)
	}
	if !outcome.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	if request == nil || result == nil {
		return nil, ErrEmptyPayload
	}

	req, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calculation request: %w", err)
	}
	res, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calculation result: %w", err)
	}

	return &Calculation{
		ID:        uuid.New(),
		Kind:      kind,
		Label:     label,
		Outcome:   outcome,
		Request:   req,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DecodeResult unmarshals the stored result into v.
func (c *Calculation) DecodeResult(v any) error {
	return json.Unmarshal(c.Result, v)
}

// DecodeRequest unmarshals the stored request into v.
func (c *Calculation) DecodeRequest(v any) error {
	return json.Unmarshal(c.Request, v)
}
