package mesh

import (
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() *Mesh {
	m := New("tri")
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddFace(0, 1, 2)
	return m
}

func TestCheckIndices(t *testing.T) {
	m := triangle()
	require.NoError(t, m.CheckIndices())

	m.AddFace(0, 1, 3)
	err := m.CheckIndices()
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "face 1 references vertex 3")

	m.Faces[1] = Face{0, -1, 2}
	require.ErrorIs(t, m.CheckIndices(), ErrIndexOutOfRange)
}

func TestFaceArity(t *testing.T) {
	assert.True(t, Face{0, 1, 2}.IsTriangle())
	assert.False(t, Face{0, 1, 2, 3}.IsTriangle())
	assert.False(t, Face{0, 1}.IsTriangle())
}

func TestCounts(t *testing.T) {
	m := triangle()
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, geometry.NewVector3(1, 1, 0), m.BoundingBox().Max)
}
