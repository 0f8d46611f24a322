// Package mesh holds the indexed triangle mesh shared by the format readers,
// the topology validator and the scaling engine.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/goring/pkg/geometry"
)

// ErrIndexOutOfRange is returned when a face references a vertex that does not exist
var ErrIndexOutOfRange = errors.New("face index out of range")

// Face is an ordered list of zero based vertex indices.
// Only triangles are supported by the pipeline; other arities are kept so
// they can be reported.
type Face []int

// IsTriangle reports whether the face has exactly three corners
func (f Face) IsTriangle() bool {
	return len(f) == 3
}

// Mesh is a single object made of vertex positions and faces
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// New creates an empty named mesh
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face
func (m *Mesh) AddFace(indices ...int) {
	m.Faces = append(m.Faces, Face(indices))
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Vertices)
}

// CheckIndices verifies that every face index addresses an existing vertex
func (m *Mesh) CheckIndices() error {
	for i, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d (mesh has %d vertices)",
					ErrIndexOutOfRange, i, idx, len(m.Vertices))
			}
		}
	}
	return nil
}
