package stl

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/philipparndt/goring/pkg/fsutil"
	"github.com/philipparndt/goring/pkg/geometry"
)

// Write emits the mesh as binary STL with normals computed from the winding
func (d *Document) Write(w io.Writer) error {
	m := d.Mesh

	var header [80]byte
	copy(header[:], m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	triangles := uint32(0)
	for _, f := range m.Faces {
		if f.IsTriangle() {
			triangles++
		}
	}
	if err := binary.Write(w, binary.LittleEndian, triangles); err != nil {
		return err
	}

	for _, f := range m.Faces {
		if !f.IsTriangle() {
			continue
		}
		v1, v2, v3 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		normal := v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()

		facet := struct {
			Normal, V1, V2, V3 [3]float32
			Attribute          uint16
		}{
			Normal: f32(normal),
			V1:     f32(v1),
			V2:     f32(v2),
			V3:     f32(v3),
		}
		if err := binary.Write(w, binary.LittleEndian, &facet); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile atomically writes the document to path as binary STL
func (d *Document) WriteFile(path string) error {
	if err := fsutil.WriteFileAtomic(path, d.Write); err != nil {
		return fmt.Errorf("failed to write STL file: %w", err)
	}
	return nil
}

func f32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
