// Package pipeline sequences loading, topology validation, measurement,
// scaling and output naming for a single ring model.
//
// A run moves through Loaded, Validated, Measured, Scaled, Named and
// Complete. Any failure moves it to Failed, carries a human readable reason
// and leaves no output behind.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/philipparndt/goring/internal/config"
	"github.com/philipparndt/goring/pkg/analysis"
	"github.com/philipparndt/goring/pkg/mesh"
	"github.com/philipparndt/goring/pkg/scale"
	"github.com/philipparndt/goring/pkg/topology"
)

// Pipeline runs sizing jobs with a fixed set of options
type Pipeline struct {
	Options config.Options
	Loaders map[string]Loader
	// Log receives progress messages; nil discards them
	Log io.Writer
}

// New creates a pipeline using the default loaders
func New(opts config.Options, log io.Writer) *Pipeline {
	return &Pipeline{
		Options: opts,
		Loaders: DefaultLoaders(),
		Log:     log,
	}
}

// Result describes a run. On failure it holds everything computed up to
// the failing stage.
type Result struct {
	InputPath  string
	OutputPath string
	Target     float64
	Mesh       *mesh.Mesh

	Topology    topology.Report
	Measurement analysis.RingMeasurement
	Factor      float64

	State   State
	History []State
	Written bool
}

func (r *Result) enter(s State) {
	r.State = s
	r.History = append(r.History, s)
}

// ParseTarget parses the desired inside diameter, e.g. "7.25"
func ParseTarget(s string) (float64, error) {
	s = strings.TrimSpace(s)
	target, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid target size %q, expected a number such as 7.25", ErrInput, s)
	}
	if !(target > 0) || math.IsInf(target, 0) {
		return 0, fmt.Errorf("%w: target size must be a positive number, got %s", ErrInput, s)
	}
	return target, nil
}

// OutputName derives the path of the resized file:
// <dir>/<input file name>_size-<target with 2 decimals><ext>.
// dir defaults to the directory of the input.
func OutputName(inputPath string, target float64, ext, dir string) string {
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	name := fmt.Sprintf("%s_size-%.2f%s", filepath.Base(inputPath), target, ext)
	return filepath.Join(dir, name)
}

// Run sizes the model at inputPath so its inside diameter matches target
func (p *Pipeline) Run(ctx context.Context, inputPath, target string) (*Result, error) {
	res := &Result{InputPath: inputPath}

	size, err := ParseTarget(target)
	if err != nil {
		return res, p.failed(res, fail(ErrInput, res.State, err, "%v", err))
	}
	res.Target = size

	loader, doc, m, failure := p.load(ctx, inputPath)
	if failure != nil {
		return res, p.failed(res, failure)
	}
	res.Mesh = m
	res.enter(Loaded)
	p.logf("Loaded %s: %d vertices, %d faces\n", inputPath, m.VertexCount(), m.FaceCount())

	if failure := p.validate(res); failure != nil {
		return res, p.failed(res, failure)
	}
	if failure := p.measure(res); failure != nil {
		return res, p.failed(res, failure)
	}

	factor, err := scale.Factor(res.Target, res.Measurement.InsideDiameter)
	if err != nil {
		return res, p.failed(res, fail(ErrMeasurement, res.State, err, "cannot scale: %v", err))
	}
	res.Factor = factor
	scale.Apply(m.Vertices, factor, p.Options.Center)
	res.enter(Scaled)
	p.logf("Scaled by %.6f to %.2f\n", factor, res.Target)

	res.OutputPath = OutputName(inputPath, res.Target, loader.OutputExt(), p.Options.OutputDir)
	res.enter(Named)

	if p.Options.DryRun {
		p.logf("Dry run, not writing %s\n", res.OutputPath)
	} else {
		if err := ctx.Err(); err != nil {
			return res, p.failed(res, fail(ErrOutput, res.State, err, "cancelled before writing %s", res.OutputPath))
		}
		if err := doc.WriteFile(res.OutputPath); err != nil {
			return res, p.failed(res, fail(ErrOutput, res.State, err, "failed to write %s: %v", res.OutputPath, err))
		}
		res.Written = true
	}
	res.enter(Complete)
	return res, nil
}

// Inspect loads, validates and measures without scaling. Topology defects do
// not stop the measurement; they are only reported in the result.
func (p *Pipeline) Inspect(ctx context.Context, inputPath string) (*Result, error) {
	res := &Result{InputPath: inputPath}

	_, _, m, failure := p.load(ctx, inputPath)
	if failure != nil {
		return res, p.failed(res, failure)
	}
	res.Mesh = m
	res.enter(Loaded)

	res.Topology = topology.Validate(m, topology.Options{Strict: p.Options.Strict})
	if res.Topology.OK() {
		res.enter(Validated)
	}

	if failure := p.measure(res); failure != nil {
		return res, p.failed(res, failure)
	}
	return res, nil
}

func (p *Pipeline) load(ctx context.Context, path string) (Loader, Document, *mesh.Mesh, *Failure) {
	loader, ok := p.Loaders[formatOf(path)]
	if !ok {
		return nil, nil, nil, fail(ErrInput, Loaded, nil, "unsupported file type %q (expected one of %s)", filepath.Ext(path), p.extensions())
	}

	doc, err := loader.Load(ctx, path)
	if err != nil {
		return nil, nil, nil, fail(ErrInput, Loaded, err, "failed to load %s: %v", path, err)
	}

	meshes := doc.Meshes()
	if len(meshes) != 1 {
		return nil, nil, nil, fail(ErrPrecondition, Loaded, ErrMeshCount, "the file should contain only one mesh, found %d", len(meshes))
	}
	m := meshes[0]
	if err := m.CheckIndices(); err != nil {
		return nil, nil, nil, fail(ErrPrecondition, Loaded, err, "invalid mesh: %v", err)
	}
	return loader, doc, m, nil
}

func (p *Pipeline) validate(res *Result) *Failure {
	res.Topology = topology.Validate(res.Mesh, topology.Options{Strict: p.Options.Strict})
	if !res.Topology.OK() {
		var err error
		if res.Topology.Status == topology.UnsupportedFaceType {
			err = topology.ErrUnsupportedFace
		}
		return fail(ErrTopology, res.State, err, "%s", res.Topology.Reason())
	}
	res.enter(Validated)
	return nil
}

func (p *Pipeline) measure(res *Result) *Failure {
	m, err := analysis.Measure(res.Mesh.Vertices, p.Options.Ring())
	if err != nil {
		return fail(ErrMeasurement, res.State, err, "cannot measure the ring: %v", err)
	}
	res.Measurement = m
	if !(m.InsideDiameter > 0) {
		return fail(ErrMeasurement, res.State, scale.ErrDegenerateDiameter,
			"measured inside diameter is %g, expected a positive value", m.InsideDiameter)
	}
	res.enter(Measured)
	p.logf("Current inside diameter: %.4f\n", m.InsideDiameter)
	return nil
}

func (p *Pipeline) failed(res *Result, f *Failure) error {
	res.enter(Failed)
	return f
}

func (p *Pipeline) extensions() string {
	exts := make([]string, 0, len(p.Loaders))
	for ext := range p.Loaders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return strings.Join(exts, ", ")
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Log == nil || p.Options.Quiet {
		return
	}
	fmt.Fprintf(p.Log, format, args...)
}

// IsTopology reports whether err was caused by bad geometry rather than a bad file
func IsTopology(err error) bool {
	return errors.Is(err, ErrTopology)
}
