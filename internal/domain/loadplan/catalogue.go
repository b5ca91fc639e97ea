package loadplan

import (
	"errors"
	"fmt"

	"github.com/hapkiduki/loadplan-go/internal/domain/valueobject"
)

// ContainerType identifies a catalogue entry.
type ContainerType string

const (
	ContainerStandard20 ContainerType = "20ft-standard"
	ContainerHighCube20 ContainerType = "20ft-high-cube"
	ContainerCustom     ContainerType = "custom"
)

// Catalogue errors.
var (
	ErrUnknownContainerType = errors.New("unknown container type")
	ErrIncompleteContainer  = errors.New("custom container requires every dimension and payload")
)

// ContainerProfile is the usable envelope of a container.
// Dimensions are in metres and MaxPayloadKg in kilograms.
type ContainerProfile struct {
	Type ContainerType `json:"type"`
	Name string        `json:"name"`

	InternalLength float64 `json:"internalLength"`
	InternalWidth  float64 `json:"internalWidth"`
	InternalHeight float64 `json:"internalHeight"`

	DoorWidth  float64 `json:"doorWidth"`
	DoorHeight float64 `json:"doorHeight"`

	MaxPayloadKg float64 `json:"maxPayload"`
}

// Internal returns the internal envelope as dimensions.
func (c ContainerProfile) Internal() valueobject.Dimensions {
	return valueobject.Dimensions{Length: c.InternalLength, Width: c.InternalWidth, Height: c.InternalHeight}
}

// Catalogue returns the fixed container profiles. A new slice is built on
// every call so callers may modify it freely.
func Catalogue() []ContainerProfile {
	return []ContainerProfile{
		{
			Type:           ContainerStandard20,
			Name:           "20 ft standard",
			InternalLength: 5.90,
			InternalWidth:  2.35,
			InternalHeight: 2.39,
			DoorWidth:      2.34,
			DoorHeight:     2.28,
			MaxPayloadKg:   30480,
		},
		{
			Type:           ContainerHighCube20,
			Name:           "20 ft high-cube",
			InternalLength: 5.90,
			InternalWidth:  2.35,
			InternalHeight: 2.69,
			DoorWidth:      2.34,
			DoorHeight:     2.58,
			MaxPayloadKg:   30480,
		},
	}
}

// LookupContainer returns the catalogue profile for t.
//
// Parameters:
//   - t: the catalogue type
//
// Returns:
//   - ContainerProfile: the profile
//   - error: ErrUnknownContainerType if t is not in the catalogue (custom included)
func LookupContainer(t ContainerType) (ContainerProfile, error) {
	for _, p := range Catalogue() {
		if p.Type == t {
			return p, nil
		}
	}
	return ContainerProfile{}, fmt.Errorf("%w: %q", ErrUnknownContainerType, t)
}

// CustomContainer builds a user-supplied profile. Custom profiles have no
// defaults, so every measurement must be strictly positive.
func CustomContainer(internalLength, internalWidth, internalHeight, doorWidth, doorHeight, maxPayloadKg float64) (ContainerProfile, error) {
	for _, v := range []float64{internalLength, internalWidth, internalHeight, doorWidth, doorHeight, maxPayloadKg} {
		if !valueobject.IsFinite(v) || v <= 0 {
			return ContainerProfile{}, ErrIncompleteContainer
		}
	}
	return ContainerProfile{
		Type:           ContainerCustom,
		Name:           "Custom",
		InternalLength: internalLength,
		InternalWidth:  internalWidth,
		InternalHeight: internalHeight,
		DoorWidth:      doorWidth,
		DoorHeight:     doorHeight,
		MaxPayloadKg:   maxPayloadKg,
	}, nil
}
