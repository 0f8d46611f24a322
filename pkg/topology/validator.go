// Package topology inspects a mesh for the coincident-vertex and orphaned-vertex
// defects that make it unsafe to rescale.
//
// Both checks are heuristics. NonManifold counts vertices sharing an exact
// position, which catches coincident-vertex degeneracies rather than edges
// shared by more than two faces. Holes looks for vertices no face references,
// which stands in for a boundary walk. EdgeAdjacency offers the real
// edge-based analysis for callers that opt into strict validation.
package topology

import (
	"errors"
	"fmt"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/mesh"
)

// ErrUnsupportedFace is returned by Holes when a face is not a triangle
var ErrUnsupportedFace = errors.New("unsupported face type")

// Status is the overall verdict of a validation run
type Status int

const (
	Valid Status = iota
	NonManifold
	HasHoles
	UnsupportedFaceType
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case NonManifold:
		return "non-manifold"
	case HasHoles:
		return "has holes"
	case UnsupportedFaceType:
		return "unsupported face type"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// maxSharedPosition is the largest number of vertices allowed at one position
const maxSharedPosition = 2

// Report collects the findings of both checks
type Report struct {
	Status Status

	NonManifold bool
	// CoincidentGroups counts positions held by more than two vertices
	CoincidentGroups int

	HasHoles bool
	// Orphans lists vertex indices no face references
	Orphans []int

	// HoleCheckInconclusive is set when the hole check aborted on a
	// non-triangular face; HasHoles is false in that case
	HoleCheckInconclusive bool
	UnsupportedFace       int

	// Edges is only filled in strict mode
	Edges *EdgeReport
}

// OK reports whether the mesh can be measured and scaled
func (r Report) OK() bool {
	return r.Status == Valid
}

// Reason returns a human readable description of the verdict
func (r Report) Reason() string {
	switch r.Status {
	case NonManifold:
		if r.CoincidentGroups == 0 && r.Edges != nil {
			return "the mesh is non-manifold: " + r.Edges.Reason()
		}
		return fmt.Sprintf("the mesh is non-manifold (%d position(s) shared by more than %d vertices)",
			r.CoincidentGroups, maxSharedPosition)
	case HasHoles:
		if len(r.Orphans) == 0 && r.Edges != nil {
			return "the mesh contains holes: " + r.Edges.Reason()
		}
		if len(r.Orphans) == 0 {
			return "the mesh contains holes"
		}
		return fmt.Sprintf("the mesh contains holes (%d unreferenced vertex/vertices, first is %d)",
			len(r.Orphans), r.Orphans[0])
	case UnsupportedFaceType:
		return fmt.Sprintf("unsupported face type (face %d is not a triangle)", r.UnsupportedFace)
	}
	return "the mesh is valid"
}

// Options tunes the validator
type Options struct {
	// Strict additionally requires every edge to be shared by exactly two faces
	Strict bool
}

// Validate runs both heuristic checks and derives the overall status.
// The mesh is never modified. Face indices are expected to have passed
// mesh.CheckIndices.
func Validate(m *mesh.Mesh, opts Options) Report {
	report := Report{UnsupportedFace: -1}

	report.CoincidentGroups = coincidentGroups(m.Vertices)
	report.NonManifold = report.CoincidentGroups > 0

	orphans, err := orphanedVertices(m)
	var unsupported *unsupportedFaceError
	if errors.As(err, &unsupported) {
		report.HoleCheckInconclusive = true
		report.UnsupportedFace = unsupported.face
	} else {
		report.Orphans = orphans
		report.HasHoles = len(orphans) > 0
	}

	if opts.Strict && !report.HoleCheckInconclusive {
		edges := EdgeAdjacency(m)
		report.Edges = &edges
	}

	switch {
	case report.HoleCheckInconclusive:
		report.Status = UnsupportedFaceType
	case report.NonManifold, report.Edges != nil && len(report.Edges.NonManifold) > 0:
		report.Status = NonManifold
	case report.HasHoles, report.Edges != nil && len(report.Edges.Boundary) > 0:
		report.Status = HasHoles
	default:
		report.Status = Valid
	}
	return report
}

// IsNonManifold reports whether any position is shared by more than two vertices
func IsNonManifold(vertices []geometry.Vector3) bool {
	return coincidentGroups(vertices) > 0
}

// Holes reports whether any vertex is left unreferenced by the faces.
// A non-triangular face aborts the check with ErrUnsupportedFace and false.
func Holes(m *mesh.Mesh) (bool, error) {
	orphans, err := orphanedVertices(m)
	if err != nil {
		return false, err
	}
	return len(orphans) > 0, nil
}

func coincidentGroups(vertices []geometry.Vector3) int {
	counts := make(map[geometry.Vector3]int, len(vertices))
	for _, v := range vertices {
		counts[v]++
	}

	groups := 0
	for _, n := range counts {
		if n > maxSharedPosition {
			groups++
		}
	}
	return groups
}

type unsupportedFaceError struct {
	face  int
	arity int
}

func (e *unsupportedFaceError) Error() string {
	return fmt.Sprintf("%s: face %d has %d vertices", ErrUnsupportedFace, e.face, e.arity)
}

func (e *unsupportedFaceError) Unwrap() error {
	return ErrUnsupportedFace
}

func orphanedVertices(m *mesh.Mesh) ([]int, error) {
	referenced := make([]bool, len(m.Vertices))

	for i, face := range m.Faces {
		if !face.IsTriangle() {
			return nil, &unsupportedFaceError{face: i, arity: len(face)}
		}
		for _, idx := range face {
			if idx >= 0 && idx < len(referenced) {
				referenced[idx] = true
			}
		}
	}

	var orphans []int
	for i, seen := range referenced {
		if !seen {
			orphans = append(orphans, i)
		}
	}
	return orphans, nil
}
