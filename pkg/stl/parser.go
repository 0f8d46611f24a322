// Package stl reads ASCII and binary STL files into an indexed mesh and
// writes binary STL.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/mesh"
)

// ErrSyntax is wrapped by errors in ASCII facet data
var ErrSyntax = errors.New("stl syntax error")

// Document is a parsed STL file. STL always holds exactly one mesh.
type Document struct {
	Mesh *mesh.Mesh
}

// Meshes returns the single mesh of the file
func (d *Document) Meshes() []*mesh.Mesh {
	return []*mesh.Mesh{d.Mesh}
}

// Parse reads an STL file and returns a Document.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses STL data held in memory
func ParseBytes(data []byte) (*Document, error) {
	var (
		m   *mesh.Mesh
		err error
	)
	if isASCII(data) {
		m, err = parseASCII(bytes.NewReader(data))
	} else {
		m, err = parseBinary(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return &Document{Mesh: m}, nil
}

// isASCII checks for the "solid" keyword. Some binary exporters also start
// the header with "solid", so the size is checked against the triangle count.
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("solid")) {
		return false
	}
	if len(data) >= 84 {
		count := binary.LittleEndian.Uint32(data[80:84])
		if uint64(len(data)) == 84+uint64(count)*50 {
			return false
		}
	}
	return true
}

// welder merges exactly coincident positions into shared vertices
type welder struct {
	mesh  *mesh.Mesh
	index map[geometry.Vector3]int
}

func newWelder(name string) *welder {
	return &welder{mesh: mesh.New(name), index: make(map[geometry.Vector3]int)}
}

func (w *welder) vertex(v geometry.Vector3) int {
	if i, ok := w.index[v]; ok {
		return i
	}
	i := w.mesh.AddVertex(v)
	w.index[v] = i
	return i
}

func (w *welder) triangle(a, b, c geometry.Vector3) {
	w.mesh.AddFace(w.vertex(a), w.vertex(b), w.vertex(c))
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(reader)
	w := newWelder("")

	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				w.mesh.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrSyntax, lineNo)
			}
			var c [3]float64
			for i := range c {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: invalid coordinate %q", ErrSyntax, lineNo, fields[i+1])
				}
				c[i] = f
			}
			vertices = append(vertices, geometry.NewVector3(c[0], c[1], c[2]))

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrSyntax, lineNo, len(vertices))
			}
			w.triangle(vertices[0], vertices[1], vertices[2])
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return w.mesh, nil
}

// parseBinary parses a binary STL file. Normals are recomputed on write.
func parseBinary(reader io.Reader) (*mesh.Mesh, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	w := newWelder(string(bytes.TrimRight(header, "\x00 ")))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	for i := uint32(0); i < triangleCount; i++ {
		var facet struct {
			Normal, V1, V2, V3 [3]float32
			Attribute          uint16
		}
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		w.triangle(vec(facet.V1), vec(facet.V2), vec(facet.V3))
	}

	return w.mesh, nil
}

func vec(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
