// Package obj reads and writes Wavefront OBJ files.
//
// A Document keeps every line of the source so that writing it back only
// changes vertex positions. Materials, normals, texture coordinates, groups
// and comments survive untouched.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/philipparndt/goring/pkg/mesh"
)

// ErrSyntax is wrapped by every parse error
var ErrSyntax = errors.New("obj syntax error")

// vertexLine ties a mesh vertex back to the source line it came from
type vertexLine struct {
	line   int
	object int
	index  int
	// extra holds fields after x y z (w or vertex colors)
	extra []string
}

// Document is a parsed OBJ file
type Document struct {
	lines    []string
	vertices []vertexLine
	objects  []*mesh.Mesh
	// base is the global index of the first vertex of each object
	base []int
}

// Meshes returns the non-empty objects of the file, in order of appearance
func (d *Document) Meshes() []*mesh.Mesh {
	meshes := make([]*mesh.Mesh, 0, len(d.objects))
	for _, m := range d.objects {
		if !isEmpty(m) {
			meshes = append(meshes, m)
		}
	}
	return meshes
}

// Parse reads an OBJ file from disk
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

// ParseReader reads an OBJ document.
// Only `o` statements start a new object; `g` groups stay inside the current one.
func ParseReader(r io.Reader) (*Document, error) {
	doc := &Document{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	current := -1
	ensureObject := func(name string) {
		doc.objects = append(doc.objects, mesh.New(name))
		doc.base = append(doc.base, len(doc.vertices))
		current = len(doc.objects) - 1
	}

	for lineNo := 0; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		doc.lines = append(doc.lines, line)

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			name := strings.Join(fields[1:], " ")
			if current >= 0 && isEmpty(doc.objects[current]) {
				doc.objects[current].Name = name
				continue
			}
			ensureObject(name)

		case "v":
			if current < 0 {
				ensureObject("")
			}
			v, extra, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNo+1, err)
			}
			m := doc.objects[current]
			doc.vertices = append(doc.vertices, vertexLine{
				line:   lineNo,
				object: current,
				index:  m.AddVertex(v),
				extra:  extra,
			})

		case "f":
			if current < 0 {
				ensureObject("")
			}
			face, err := parseFace(fields[1:], len(doc.vertices), doc.base[current])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, lineNo+1, err)
			}
			doc.objects[current].Faces = append(doc.objects[current].Faces, face)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return doc, nil
}

func isEmpty(m *mesh.Mesh) bool {
	return len(m.Vertices) == 0 && len(m.Faces) == 0
}

func parseVertex(args []string) (geometry.Vector3, []string, error) {
	if len(args) < 3 {
		return geometry.Vector3{}, nil, fmt.Errorf("vertex needs 3 coordinates, got %d", len(args))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return geometry.Vector3{}, nil, fmt.Errorf("invalid coordinate %q", args[i])
		}
		c[i] = f
	}
	var extra []string
	if len(args) > 3 {
		extra = append(extra, args[3:]...)
	}
	return geometry.NewVector3(c[0], c[1], c[2]), extra, nil
}

// parseFace converts the position references of a face into indices local to
// the object whose first vertex has global index base. Texture and normal
// references are ignored. seen is the number of vertices declared so far,
// used to resolve negative references.
func parseFace(args []string, seen, base int) (mesh.Face, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("face has no vertices")
	}
	face := make(mesh.Face, len(args))
	for i, arg := range args {
		ref, _, _ := strings.Cut(arg, "/")
		n, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex reference %q", arg)
		}
		switch {
		case n > 0:
			face[i] = n - 1 - base
		case n < 0:
			face[i] = seen + n - base
		default:
			return nil, fmt.Errorf("vertex reference 0 is not allowed")
		}
	}
	return face, nil
}
