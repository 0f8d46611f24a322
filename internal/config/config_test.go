package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()
	assert.Equal(t, geometry.AxisZ, opts.Axis)
	assert.Equal(t, geometry.Vector3{}, opts.Center)
	assert.False(t, opts.Strict)
}

func TestApplyYAML(t *testing.T) {
	opts := Default()
	err := opts.Apply([]byte("axis: y\ncenter: [1, 2.5, -3]\nstrict: true\noutput_dir: out\n"))
	require.NoError(t, err)

	assert.Equal(t, geometry.AxisY, opts.Axis)
	assert.Equal(t, geometry.NewVector3(1, 2.5, -3), opts.Center)
	assert.True(t, opts.Strict)
	assert.Equal(t, "out", opts.OutputDir)
	assert.False(t, opts.DryRun)
}

func TestApplyYAMLErrors(t *testing.T) {
	for _, src := range []string{"axis: w\n", "center: [1, 2]\n", "strict: [\n"} {
		opts := Default()
		assert.Error(t, opts.Apply([]byte(src)), src)
	}
}

func TestParseCenter(t *testing.T) {
	c, err := ParseCenter("1, -2,3.5")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1, -2, 3.5), c)

	_, err = ParseCenter("1,2")
	assert.Error(t, err)
	_, err = ParseCenter("1,b,3")
	assert.Error(t, err)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("axis: x\nstrict: true\ncenter: [4, 4, 4]\n"), 0o644))

	var flagged Options
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagged.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--axis", "y", "--dry-run"}))

	opts, err := Resolve(fs, flagged, path)
	require.NoError(t, err)

	assert.Equal(t, geometry.AxisY, opts.Axis, "flag wins")
	assert.True(t, opts.Strict, "file value kept when flag unset")
	assert.Equal(t, geometry.NewVector3(4, 4, 4), opts.Center)
	assert.True(t, opts.DryRun)
}

func TestResolveMissingFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	_, err := Resolve(fs, Options{}, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCenterFlag(t *testing.T) {
	var opts Options
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"--center", "1,2,3"}))
	assert.Equal(t, geometry.NewVector3(1, 2, 3), opts.Center)
	assert.Error(t, fs.Parse([]string{"--axis", "q"}))
}
