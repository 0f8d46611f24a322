// Package config holds the options of a sizing run. Values come from
// defaults, an optional YAML file and command line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goring/pkg/analysis"
	"github.com/philipparndt/goring/pkg/geometry"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Options configures the pipeline
type Options struct {
	Axis   geometry.Axis
	Center geometry.Vector3
	// Strict enables edge adjacency validation on top of the heuristics
	Strict bool
	// OutputDir overrides the directory of the input file
	OutputDir string
	// DryRun runs every stage except writing the output
	DryRun bool
	Quiet  bool
}

// Default returns the options for a ring around the Z axis at the origin
func Default() Options {
	return Options{Axis: geometry.AxisZ}
}

// Ring returns the orientation used for measuring and scaling
func (o Options) Ring() analysis.Ring {
	return analysis.Ring{Axis: o.Axis, Center: o.Center}
}

// file mirrors the YAML layout; pointers tell unset keys apart from zero values
type file struct {
	Axis      *string   `yaml:"axis"`
	Center    []float64 `yaml:"center"`
	Strict    *bool     `yaml:"strict"`
	OutputDir *string   `yaml:"output_dir"`
	DryRun    *bool     `yaml:"dry_run"`
}

// LoadFile applies the settings of a YAML file on top of o
func (o *Options) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return o.Apply(data)
}

// Apply applies YAML settings on top of o
func (o *Options) Apply(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if f.Axis != nil {
		axis, err := geometry.ParseAxis(*f.Axis)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		o.Axis = axis
	}
	if f.Center != nil {
		if len(f.Center) != 3 {
			return fmt.Errorf("config: center needs 3 coordinates, got %d", len(f.Center))
		}
		o.Center = geometry.NewVector3(f.Center[0], f.Center[1], f.Center[2])
	}
	if f.Strict != nil {
		o.Strict = *f.Strict
	}
	if f.OutputDir != nil {
		o.OutputDir = *f.OutputDir
	}
	if f.DryRun != nil {
		o.DryRun = *f.DryRun
	}
	return nil
}

// AxisValue is a pflag.Value for Options.Axis
type AxisValue struct {
	Axis *geometry.Axis
}

var _ pflag.Value = (*AxisValue)(nil)

func (v *AxisValue) String() string {
	if v.Axis == nil {
		return geometry.AxisZ.String()
	}
	return v.Axis.String()
}

func (v *AxisValue) Set(s string) error {
	axis, err := geometry.ParseAxis(s)
	if err != nil {
		return err
	}
	*v.Axis = axis
	return nil
}

func (v *AxisValue) Type() string {
	return "axis"
}

// CenterValue is a pflag.Value for Options.Center, written as "x,y,z"
type CenterValue struct {
	Center *geometry.Vector3
}

var _ pflag.Value = (*CenterValue)(nil)

func (v *CenterValue) String() string {
	if v.Center == nil {
		return "0,0,0"
	}
	c := *v.Center
	return fmt.Sprintf("%g,%g,%g", c.X, c.Y, c.Z)
}

func (v *CenterValue) Set(s string) error {
	c, err := ParseCenter(s)
	if err != nil {
		return err
	}
	*v.Center = c
	return nil
}

func (v *CenterValue) Type() string {
	return "x,y,z"
}

// ParseCenter parses "x,y,z"
func ParseCenter(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, errors.New("center must be given as x,y,z")
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid center coordinate %q", p)
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// BindFlags registers the option flags on fs
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.Var(&AxisValue{Axis: &o.Axis}, "axis", "Ring axis (x, y or z)")
	fs.Var(&CenterValue{Center: &o.Center}, "center", "Point on the ring axis, used as the scaling origin")
	fs.BoolVar(&o.Strict, "strict", o.Strict, "Also require every edge to be shared by exactly two faces")
	fs.StringVarP(&o.OutputDir, "output-dir", "o", o.OutputDir, "Directory for the resized file (default: next to the input)")
	fs.BoolVar(&o.DryRun, "dry-run", o.DryRun, "Validate, measure and scale without writing the output")
	fs.BoolVarP(&o.Quiet, "quiet", "q", o.Quiet, "Only print errors and the output path")
}

// Resolve builds the effective options: defaults, then the YAML file at
// configPath (if any), then every flag the user actually set on fs.
func Resolve(fs *pflag.FlagSet, flagged Options, configPath string) (Options, error) {
	opts := Default()
	if configPath != "" {
		if err := opts.LoadFile(configPath); err != nil {
			return Options{}, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "axis":
			opts.Axis = flagged.Axis
		case "center":
			opts.Center = flagged.Center
		case "strict":
			opts.Strict = flagged.Strict
		case "output-dir":
			opts.OutputDir = flagged.OutputDir
		case "dry-run":
			opts.DryRun = flagged.DryRun
		case "quiet":
			opts.Quiet = flagged.Quiet
		}
	})
	return opts, nil
}
