package loadplan

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCenterOfGravity_Empty(t *testing.T) {
	got := ComputeCenterOfGravity(nil)

	assert.Equal(t, 0.0, got.TotalMassKg)
	assert.Nil(t, got.X)
	assert.Nil(t, got.Y)
	assert.Nil(t, got.Z)
	assert.False(t, got.Defined())

	_, _, _, ok := got.Coordinates()
	assert.False(t, ok)
}

func TestComputeCenterOfGravity_AllMassCoercedToZero(t *testing.T) {
	got := ComputeCenterOfGravity([]MassPoint{
		{Name: "bad", MassKg: -10, X: 1},
		{Name: "nan", MassKg: math.NaN(), X: 2},
	})

	assert.Equal(t, 0.0, got.TotalMassKg)
	assert.False(t, got.Defined())
}

func TestComputeAxleCenterOfGravity(t *testing.T) {
	got := ComputeAxleCenterOfGravity(AxleLoad{MassKg: 4500, X: 0}, AxleLoad{MassKg: 5500, X: 3.5})

	x, y, z, ok := got.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 10000.0, got.TotalMassKg)
	assert.Equal(t, 1.925, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, z)
}

func TestAxlePoints(t *testing.T) {
	points := AxlePoints(AxleLoad{MassKg: 1, X: 2}, AxleLoad{MassKg: 3, X: 4})

	require.Len(t, points, 2)
	assert.Equal(t, MassPoint{Name: "Front axle", MassKg: 1, X: 2}, points[0])
	assert.Equal(t, MassPoint{Name: "Rear axle", MassKg: 3, X: 4}, points[1])
}

func TestComputeCenterOfGravity_ThreeAxes(t *testing.T) {
	got := ComputeCenterOfGravity([]MassPoint{
		{Name: "hull", MassKg: 8000, X: 2, Y: 0, Z: 1.2},
		{Name: "turret", MassKg: 2000, X: 2.5, Y: 0.1, Z: 2.1},
		{Name: "kit", MassKg: 0, X: 100, Y: 100, Z: 100},
	})

	x, y, z, ok := got.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 10000.0, got.TotalMassKg)
	assert.InDelta(t, 2.1, x, 1e-12)
	assert.InDelta(t, 0.02, y, 1e-12)
	assert.InDelta(t, 1.38, z, 1e-12)
}

func TestComputeCenterOfGravity_CoercesBadInput(t *testing.T) {
	got := ComputeCenterOfGravity([]MassPoint{
		{Name: "a", MassKg: 100, X: 1, Y: math.NaN(), Z: math.Inf(1)},
		{Name: "negative", MassKg: -50, X: 40},
		{Name: "inf", MassKg: math.Inf(1), X: 40},
	})

	x, y, z, ok := got.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 100.0, got.TotalMassKg)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, z)
}

func TestComputeCenterOfGravity_Linearity(t *testing.T) {
	points := []MassPoint{
		{Name: "front", MassKg: 3200, X: 0.4, Y: -0.1, Z: 0.9},
		{Name: "mid", MassKg: 1750.5, X: 2.2, Y: 0.05, Z: 1.4},
		{Name: "rear", MassKg: 4100, X: 4.1, Y: 0.2, Z: 1.1},
	}
	base := ComputeCenterOfGravity(points)
	bx, by, bz, ok := base.Coordinates()
	require.True(t, ok)

	for _, k := range []float64{0.001, 0.5, 3, 1250} {
		scaled := make([]MassPoint, len(points))
		for i, p := range points {
			p.MassKg *= k
			scaled[i] = p
		}

		got := ComputeCenterOfGravity(scaled)
		x, y, z, ok := got.Coordinates()
		require.True(t, ok)
		assert.InDelta(t, base.TotalMassKg*k, got.TotalMassKg, 1e-9*base.TotalMassKg*k)
		assert.InDelta(t, bx, x, 1e-9)
		assert.InDelta(t, by, y, 1e-9)
		assert.InDelta(t, bz, z, 1e-9)
	}
}

func TestComputeCenterOfGravity_DoesNotMutateInput(t *testing.T) {
	points := []MassPoint{{Name: "neg", MassKg: -1, X: 1}}
	ComputeCenterOfGravity(points)
	assert.Equal(t, -1.0, points[0].MassKg)
}

func TestCenterOfGravity_Rounded(t *testing.T) {
	got := ComputeCenterOfGravity([]MassPoint{
		{MassKg: 1, X: 1},
		{MassKg: 2, X: 2},
	}).Rounded()

	require.True(t, got.Defined())
	assert.Equal(t, 1.67, *got.X)
	assert.Equal(t, 3.0, got.TotalMassKg)

	assert.False(t, CenterOfGravity{}.Rounded().Defined())
}

func TestComputeCenterOfGravity_Overflow(t *testing.T) {
	tests := []struct {
		name   string
		points []MassPoint
	}{
		{name: "total mass overflows", points: []MassPoint{{MassKg: 1e308, X: 1}, {MassKg: 1e308, X: 2}}},
		{name: "moment overflows", points: []MassPoint{{MassKg: 1e300, X: 1e300}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCenterOfGravity(tt.points)

			assert.False(t, got.Defined())
			assert.True(t, got.OutOfRange)
			assert.Zero(t, got.TotalMassKg)
			assert.False(t, got.Rounded().Defined())

			_, err := json.Marshal(got)
			assert.NoError(t, err)
		})
	}
}

func TestComputeCenterOfGravity_LargeFiniteMass(t *testing.T) {
	got := ComputeCenterOfGravity([]MassPoint{{MassKg: 1e25, X: 1}, {MassKg: 1e25, X: 3}})

	require.True(t, got.Defined())
	assert.False(t, got.OutOfRange)
	x, _, _, _ := got.Coordinates()
	assert.InDelta(t, 2.0, x, 1e-9)
}
