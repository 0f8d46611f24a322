package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
)

// ErrNoVertices is returned when there is nothing to measure
var ErrNoVertices = errors.New("mesh has no vertices")

// Ring describes how the band is oriented in model space
type Ring struct {
	Axis   geometry.Axis
	Center geometry.Vector3
}

// DefaultRing is a band around the Z axis centered at the origin
var DefaultRing = Ring{Axis: geometry.AxisZ}

// RingMeasurement contains the radial statistics of a ring band
type RingMeasurement struct {
	VertexCount int
	// MinRadius is the smallest radial distance found, at full precision
	MinRadius float64
	// InnerRadius is MinRadius rounded down to a whole unit
	InnerRadius float64
	MaxRadius   float64
	// InsideDiameter is (MaxRadius - InnerRadius) * 2
	InsideDiameter float64
}

// Measure collects the radial distances of all vertices to the ring axis.
//
// The minimum is floored to the nearest whole unit while the maximum is kept
// as is. The asymmetry matches the measurement tolerance of existing ring
// models and is intentionally preserved.
func Measure(vertices []geometry.Vector3, ring Ring) (RingMeasurement, error) {
	if len(vertices) == 0 {
		return RingMeasurement{}, ErrNoVertices
	}

	minRadius := math.MaxFloat64
	maxRadius := -math.MaxFloat64
	for _, v := range vertices {
		radius := ring.Axis.RadialDistance(v, ring.Center)
		if radius < minRadius {
			minRadius = radius
		}
		if radius > maxRadius {
			maxRadius = radius
		}
	}

	inner := math.Floor(minRadius)
	return RingMeasurement{
		VertexCount:    len(vertices),
		MinRadius:      minRadius,
		InnerRadius:    inner,
		MaxRadius:      maxRadius,
		InsideDiameter: (maxRadius - inner) * 2,
	}, nil
}

// InsideDiameter returns the inside diameter of the band
func InsideDiameter(vertices []geometry.Vector3, ring Ring) (float64, error) {
	m, err := Measure(vertices, ring)
	if err != nil {
		return 0, err
	}
	return m.InsideDiameter, nil
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}
