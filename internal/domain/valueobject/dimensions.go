// Package valueobject contains value objects that represent concepts without identity.
package valueobject

import "fmt"

// Dimensions represents the outer envelope of a load item.
// All measurements are in metres.
type Dimensions struct {
	// Length in metres (along the vehicle/container axis).
	Length float64 `json:"length"`

	// Width in metres.
	Width float64 `json:"width"`

	// Height in metres.
	Height float64 `json:"height"`
}

// NewDimensions creates a new Dimensions value object.
// Non-finite or negative measurements are coerced to zero.
//
// Parameters:
//   - length: Length in metres
//   - width: Width in metres
//   - height: Height in metres
//
// Returns:
//   - Dimensions: new Dimensions value object
func NewDimensions(length, width, height float64) Dimensions {
	return Dimensions{
		Length: NonNegative(length),
		Width:  NonNegative(width),
		Height: NonNegative(height),
	}
}

// Volume calculates the volume in cubic metres.
//
// Returns:
//   - float64: volume in m³
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// Rotated returns the dimensions turned 90° about the vertical axis,
// swapping length and width.
func (d Dimensions) Rotated() Dimensions {
	return Dimensions{Length: d.Width, Width: d.Length, Height: d.Height}
}

// OnEnd returns the dimensions stood on end, swapping length and height.
func (d Dimensions) OnEnd() Dimensions {
	return Dimensions{Length: d.Height, Width: d.Width, Height: d.Length}
}

// IsEmpty checks if all dimensions are zero.
//
// Returns:
//   - bool: true if all dimensions are zero
func (d Dimensions) IsEmpty() bool {
	return d.Length == 0 && d.Width == 0 && d.Height == 0
}

// String returns a formatted string representation.
//
// Returns:
//   - string: formatted dimensions (e.g., "4.50x2.10x2.00 m")
func (d Dimensions) String() string {
	return fmt.Sprintf("%.2fx%.2fx%.2f m", d.Length, d.Width, d.Height)
}
