package scale

import (
	"math"
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []geometry.Vector3 {
	return []geometry.Vector3{
		geometry.NewVector3(6, 0, 0),
		geometry.NewVector3(0, -8, 1.5),
		geometry.NewVector3(-3.25, 4.125, -2),
		geometry.NewVector3(0.1, 0.2, 0.3),
	}
}

func TestFactor(t *testing.T) {
	f, err := Factor(8, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)
}

func TestFactorRejectsDegenerateDiameter(t *testing.T) {
	for _, current := range []float64{0, -1, math.NaN()} {
		_, err := Factor(7.25, current)
		assert.ErrorIs(t, err, ErrDegenerateDiameter, "current=%v", current)
	}
}

func TestFactorRejectsInvalidTarget(t *testing.T) {
	for _, target := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		_, err := Factor(target, 4)
		assert.ErrorIs(t, err, ErrInvalidTarget, "target=%v", target)
	}
}

func TestFactorOverflow(t *testing.T) {
	_, err := Factor(math.MaxFloat64, math.SmallestNonzeroFloat64)
	assert.ErrorIs(t, err, ErrDegenerateDiameter)
}

func TestApplyIdentity(t *testing.T) {
	vertices := sample()
	Apply(vertices, 1.0, geometry.Vector3{})
	assert.Equal(t, sample(), vertices)
}

func TestApplyComposes(t *testing.T) {
	twice := sample()
	Apply(twice, 1.7, geometry.Vector3{})
	Apply(twice, 0.35, geometry.Vector3{})

	once := sample()
	Apply(once, 1.7*0.35, geometry.Vector3{})

	for i := range once {
		assert.True(t, once[i].ApproxEqual(twice[i], 1e-12), "vertex %d: %v != %v", i, once[i], twice[i])
	}
}

func TestApplyDoublesRadius(t *testing.T) {
	vertices := sample()
	Apply(vertices, 2, geometry.Vector3{})

	for i, v := range sample() {
		before := geometry.AxisZ.RadialDistance(v, geometry.Vector3{})
		after := geometry.AxisZ.RadialDistance(vertices[i], geometry.Vector3{})
		assert.InDelta(t, before*2, after, 1e-12)
	}
}

func TestApplyAboutCenter(t *testing.T) {
	center := geometry.NewVector3(10, 10, 0)
	vertices := []geometry.Vector3{center, geometry.NewVector3(12, 10, 1)}
	Apply(vertices, 3, center)

	assert.Equal(t, center, vertices[0])
	assert.Equal(t, geometry.NewVector3(16, 10, 3), vertices[1])
}

func TestApplyPanicsOnInvalidFactor(t *testing.T) {
	assert.Panics(t, func() { Apply(sample(), 0, geometry.Vector3{}) })
	assert.Panics(t, func() { Apply(sample(), math.NaN(), geometry.Vector3{}) })
}
