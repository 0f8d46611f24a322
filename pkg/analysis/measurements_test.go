package analysis

import (
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// band returns the cardinal points of two circles of the given radii, at
// two heights. Cardinal points keep the radii exact.
func band(inner, outer float64, center geometry.Vector3) []geometry.Vector3 {
	var vertices []geometry.Vector3
	for _, z := range []float64{0, 2} {
		for _, r := range []float64{inner, outer} {
			for _, p := range [][2]float64{{r, 0}, {0, r}, {-r, 0}, {0, -r}} {
				vertices = append(vertices, center.Add(geometry.NewVector3(p[0], p[1], z)))
			}
		}
	}
	return vertices
}

func TestInsideDiameterRingBand(t *testing.T) {
	d, err := InsideDiameter(band(6.0, 8.0, geometry.Vector3{}), DefaultRing)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestMinRadiusIsFloored(t *testing.T) {
	m, err := Measure(band(6.7, 8.25, geometry.Vector3{}), DefaultRing)
	require.NoError(t, err)

	assert.InDelta(t, 6.7, m.MinRadius, 1e-9)
	assert.Equal(t, 6.0, m.InnerRadius)
	assert.InDelta(t, 8.25, m.MaxRadius, 1e-9)
	assert.InDelta(t, 4.5, m.InsideDiameter, 1e-9)
	assert.Equal(t, 16, m.VertexCount)
}

func TestEmptyVerticesFail(t *testing.T) {
	_, err := InsideDiameter(nil, DefaultRing)
	require.ErrorIs(t, err, ErrNoVertices)
}

func TestDiameterNonNegative(t *testing.T) {
	sets := [][]geometry.Vector3{
		{{}},
		{geometry.NewVector3(0.5, 0, 0)},
		{geometry.NewVector3(-3, 4, 1), geometry.NewVector3(1, 1, -9)},
		band(0.2, 0.3, geometry.Vector3{}),
	}
	for _, vertices := range sets {
		d, err := InsideDiameter(vertices, DefaultRing)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d, 0.0)
	}
}

func TestSingleOriginVertexIsZero(t *testing.T) {
	d, err := InsideDiameter([]geometry.Vector3{{}}, DefaultRing)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestOffCenterRing(t *testing.T) {
	center := geometry.NewVector3(20, -5, 3)

	_, err := InsideDiameter(band(6.0, 8.0, center), DefaultRing)
	require.NoError(t, err)

	d, err := InsideDiameter(band(6.0, 8.0, center), Ring{Axis: geometry.AxisZ, Center: center})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestFormatMeasurement(t *testing.T) {
	assert.Equal(t, "4.000000 units", FormatMeasurement(4, ""))
	assert.Equal(t, "1.500000 mm", FormatMeasurement(1.5, "mm"))
}
