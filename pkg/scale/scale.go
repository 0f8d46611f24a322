// Package scale computes and applies uniform scale factors.
package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/goring/pkg/geometry"
)

var (
	// ErrDegenerateDiameter is returned when the measured diameter is not strictly positive
	ErrDegenerateDiameter = errors.New("measured diameter is not positive")
	// ErrInvalidTarget is returned for non-positive or non-finite targets
	ErrInvalidTarget = errors.New("target must be a positive finite number")
)

// Factor returns target / current
func Factor(target, current float64) (float64, error) {
	if math.IsNaN(current) || current <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrDegenerateDiameter, current)
	}
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidTarget, target)
	}

	f := target / current
	if math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("%w: %g / %g is not a usable factor", ErrDegenerateDiameter, target, current)
	}
	return f, nil
}

// Apply scales every vertex about center by factor, in place.
// The factor must come from Factor; anything not strictly positive panics.
func Apply(vertices []geometry.Vector3, factor float64, center geometry.Vector3) {
	if !(factor > 0) {
		panic(fmt.Sprintf("scale: invalid factor %g", factor))
	}
	if center == (geometry.Vector3{}) {
		for i := range vertices {
			vertices[i] = vertices[i].Mul(factor)
		}
		return
	}
	for i := range vertices {
		vertices[i] = center.Add(vertices[i].Sub(center).Mul(factor))
	}
}
