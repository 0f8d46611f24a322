package topology

import (
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tetrahedron is the smallest closed triangle mesh
func tetrahedron() *mesh.Mesh {
	m := mesh.New("tetra")
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddFace(0, 2, 1)
	m.AddFace(0, 1, 3)
	m.AddFace(1, 2, 3)
	m.AddFace(2, 0, 3)
	return m
}

func TestValidateClosedMesh(t *testing.T) {
	report := Validate(tetrahedron(), Options{Strict: true})

	assert.Equal(t, Valid, report.Status)
	assert.True(t, report.OK())
	assert.False(t, report.NonManifold)
	assert.False(t, report.HasHoles)
	require.NotNil(t, report.Edges)
	assert.True(t, report.Edges.Closed())
	assert.Equal(t, 6, report.Edges.EdgeCount)
}

func TestUniquePositionsAreNeverNonManifold(t *testing.T) {
	vertices := make([]geometry.Vector3, 0, 100)
	for i := 0; i < 100; i++ {
		vertices = append(vertices, geometry.NewVector3(float64(i), float64(i%7), float64(i%3)))
	}
	assert.False(t, IsNonManifold(vertices))
}

func TestTwoCoincidentVerticesAllowed(t *testing.T) {
	p := geometry.NewVector3(1, 2, 3)
	assert.False(t, IsNonManifold([]geometry.Vector3{p, p, {}}))
}

func TestThreeCoincidentVerticesNonManifold(t *testing.T) {
	m := tetrahedron()
	// Two extra copies of vertex 0, each used by a face, so the
	// position occurs three times in total.
	m.AddVertex(m.Vertices[0])
	m.AddVertex(m.Vertices[0])
	m.AddFace(4, 1, 2)
	m.AddFace(5, 2, 3)

	report := Validate(m, Options{})
	assert.Equal(t, NonManifold, report.Status)
	assert.Equal(t, 1, report.CoincidentGroups)
	assert.False(t, report.HasHoles)
	assert.Contains(t, report.Reason(), "non-manifold")
}

func TestOrphanedVertexIsHole(t *testing.T) {
	m := tetrahedron()
	m.AddVertex(geometry.NewVector3(5, 5, 5))

	report := Validate(m, Options{})
	assert.Equal(t, HasHoles, report.Status)
	assert.Equal(t, []int{4}, report.Orphans)

	holes, err := Holes(m)
	require.NoError(t, err)
	assert.True(t, holes)
}

func TestEveryVertexReferencedHasNoHoles(t *testing.T) {
	holes, err := Holes(tetrahedron())
	require.NoError(t, err)
	assert.False(t, holes)
}

func TestQuadFaceIsUnsupported(t *testing.T) {
	m := tetrahedron()
	m.AddVertex(geometry.NewVector3(9, 9, 9))
	m.Faces[1] = mesh.Face{0, 1, 3, 4}

	holes, err := Holes(m)
	require.ErrorIs(t, err, ErrUnsupportedFace)
	assert.False(t, holes)

	report := Validate(m, Options{Strict: true})
	assert.Equal(t, UnsupportedFaceType, report.Status)
	assert.True(t, report.HoleCheckInconclusive)
	assert.False(t, report.HasHoles)
	assert.Equal(t, 1, report.UnsupportedFace)
	assert.Nil(t, report.Edges)
}

func TestValidateDoesNotMutate(t *testing.T) {
	m := tetrahedron()
	before := append([]geometry.Vector3(nil), m.Vertices...)
	Validate(m, Options{Strict: true})
	assert.Equal(t, before, m.Vertices)
}

func TestStrictModeDetectsOpenSurface(t *testing.T) {
	m := tetrahedron()
	m.Faces = m.Faces[:3]

	assert.Equal(t, Valid, Validate(m, Options{}).Status, "heuristic check misses the open face")

	report := Validate(m, Options{Strict: true})
	assert.Equal(t, HasHoles, report.Status)
	assert.Len(t, report.Edges.Boundary, 3)
	assert.Contains(t, report.Reason(), "boundary edge")
}

func TestEdgeAdjacencyNonManifoldEdge(t *testing.T) {
	m := mesh.New("fan")
	for i := 0; i < 5; i++ {
		m.AddVertex(geometry.NewVector3(float64(i), float64(i*i), 0))
	}
	m.AddFace(0, 1, 2)
	m.AddFace(1, 0, 3)
	m.AddFace(0, 1, 4)

	report := EdgeAdjacency(m)
	require.Len(t, report.NonManifold, 1)
	assert.Equal(t, Edge{A: 0, B: 1}, report.NonManifold[0])
	assert.False(t, report.Closed())
}
