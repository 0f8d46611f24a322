package topology

import (
	"fmt"

	"github.com/philipparndt/goring/pkg/mesh"
)

// Edge is an unordered pair of vertex indices, stored with A < B
type Edge struct {
	A, B int
}

func makeEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// EdgeReport is the result of the edge adjacency analysis
type EdgeReport struct {
	EdgeCount int
	// Boundary edges belong to exactly one face
	Boundary []Edge
	// NonManifold edges belong to more than two faces
	NonManifold []Edge
	// Degenerate counts faces that repeat a vertex index
	Degenerate int
}

// Closed reports whether every edge is shared by exactly two faces
func (r EdgeReport) Closed() bool {
	return len(r.Boundary) == 0 && len(r.NonManifold) == 0
}

// Reason describes the first defect found
func (r EdgeReport) Reason() string {
	switch {
	case len(r.NonManifold) > 0:
		e := r.NonManifold[0]
		return fmt.Sprintf("%d edge(s) shared by more than two faces, first is %d-%d", len(r.NonManifold), e.A, e.B)
	case len(r.Boundary) > 0:
		e := r.Boundary[0]
		return fmt.Sprintf("%d boundary edge(s), first is %d-%d", len(r.Boundary), e.A, e.B)
	}
	return "all edges are shared by exactly two faces"
}

// EdgeAdjacency counts the faces adjacent to every edge of the triangle faces.
// Faces that are not triangles are skipped.
func EdgeAdjacency(m *mesh.Mesh) EdgeReport {
	var report EdgeReport
	counts := make(map[Edge]int)
	var order []Edge

	for _, t := range m.Faces {
		if !t.IsTriangle() {
			continue
		}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			report.Degenerate++
		}
		for _, e := range []Edge{makeEdge(t[0], t[1]), makeEdge(t[1], t[2]), makeEdge(t[2], t[0])} {
			if e.A == e.B {
				continue
			}
			if counts[e] == 0 {
				order = append(order, e)
			}
			counts[e]++
		}
	}

	report.EdgeCount = len(order)
	for _, e := range order {
		switch n := counts[e]; {
		case n == 1:
			report.Boundary = append(report.Boundary, e)
		case n > 2:
			report.NonManifold = append(report.NonManifold, e)
		}
	}
	return report
}
