package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Axis identifies one of the coordinate axes a ring band can be aligned to.
// The zero value is AxisZ.
type Axis int

const (
	AxisZ Axis = iota
	AxisX
	AxisY
)

// ParseAxis accepts "x", "y" or "z" in any case
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisZ, fmt.Errorf("invalid axis %q (must be x, y or z)", s)
}

// String returns the lower case axis name
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// RadialDistance returns the distance of p from the line parallel to the axis
// that passes through center. For AxisZ and the origin this is sqrt(x²+y²).
func (a Axis) RadialDistance(p, center Vector3) float64 {
	d := p.Sub(center)
	switch a {
	case AxisX:
		return math.Sqrt(d.Y*d.Y + d.Z*d.Z)
	case AxisY:
		return math.Sqrt(d.X*d.X + d.Z*d.Z)
	}
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}
