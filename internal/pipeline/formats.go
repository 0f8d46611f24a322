package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/goring/pkg/mesh"
	"github.com/philipparndt/goring/pkg/obj"
	"github.com/philipparndt/goring/pkg/openscad"
	"github.com/philipparndt/goring/pkg/stl"
)

// Document is a parsed geometry file whose meshes can be written back
type Document interface {
	Meshes() []*mesh.Mesh
	WriteFile(path string) error
}

// Loader parses one geometry format
type Loader interface {
	Load(ctx context.Context, path string) (Document, error)
	// OutputExt is the extension of files written for this format
	OutputExt() string
}

// LoaderFunc adapts a parse function to Loader
type LoaderFunc struct {
	Parse func(ctx context.Context, path string) (Document, error)
	Ext   string
}

func (l LoaderFunc) Load(ctx context.Context, path string) (Document, error) {
	return l.Parse(ctx, path)
}

func (l LoaderFunc) OutputExt() string {
	return l.Ext
}

// DefaultLoaders returns the loaders for .obj, .stl and .scad files
func DefaultLoaders() map[string]Loader {
	return map[string]Loader{
		".obj": LoaderFunc{
			Ext: ".obj",
			Parse: func(_ context.Context, path string) (Document, error) {
				doc, err := obj.Parse(path)
				if err != nil {
					return nil, err
				}
				return doc, nil
			},
		},
		".stl": LoaderFunc{
			Ext: ".stl",
			Parse: func(_ context.Context, path string) (Document, error) {
				doc, err := stl.Parse(path)
				if err != nil {
					return nil, err
				}
				return doc, nil
			},
		},
		".scad": LoaderFunc{
			Ext:   ".stl",
			Parse: loadSCAD,
		},
	}
}

// loadSCAD renders an OpenSCAD model to a temporary STL and parses it
func loadSCAD(ctx context.Context, path string) (Document, error) {
	renderer := openscad.NewRenderer(filepath.Dir(path))
	tmp, err := renderer.RenderTemp(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}
	defer os.Remove(tmp)

	doc, err := stl.Parse(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	return doc, nil
}

func formatOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
