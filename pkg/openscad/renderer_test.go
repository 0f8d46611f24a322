package openscad

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "ring.scad"), "use <lib/band.scad>\n// include <ignored.scad>\ninclude <./common.scad>\nband();\n")
	write(t, filepath.Join(dir, "lib", "band.scad"), "include <../common.scad>\nmodule band() {}\n")
	write(t, filepath.Join(dir, "common.scad"), "$fn = 128;\n")

	deps, err := NewRenderer(dir).ResolveDependencies("ring.scad")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "ring.scad"),
		filepath.Join(dir, "lib", "band.scad"),
		filepath.Join(dir, "common.scad"),
	}, deps)
}

func TestResolveDependenciesMissingFile(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "ring.scad"), "use <missing.scad>\n")

	_, err := NewRenderer(dir).ResolveDependencies("ring.scad")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderWithoutBinary(t *testing.T) {
	r := NewRenderer(t.TempDir())
	r.Binary = "goring-openscad-does-not-exist"

	_, err := r.RenderTemp(context.Background(), "ring.scad")
	assert.ErrorIs(t, err, ErrNotInstalled)
}
