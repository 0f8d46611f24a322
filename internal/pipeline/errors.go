package pipeline

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Run wraps exactly one of them.
var (
	// ErrInput covers unreadable files, unparseable geometry and bad targets
	ErrInput = errors.New("input error")
	// ErrPrecondition covers files that parse but cannot enter the pipeline
	ErrPrecondition = errors.New("precondition failed")
	// ErrTopology covers meshes rejected by the topology validator
	ErrTopology = errors.New("topology defect")
	// ErrMeasurement covers diameters that cannot produce a scale factor
	ErrMeasurement = errors.New("degenerate measurement")
	// ErrOutput covers failures writing the result
	ErrOutput = errors.New("output error")
)

// ErrMeshCount is the precondition error for files with zero or several meshes
var ErrMeshCount = errors.New("file must contain exactly one mesh")

// Failure is the reason a run ended in the Failed state
type Failure struct {
	Kind error
	// From is the last state reached before failing
	From   State
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil && f.Reason == "" {
		return f.Err.Error()
	}
	return f.Reason
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}

func fail(kind error, from State, err error, format string, args ...any) *Failure {
	return &Failure{
		Kind:   kind,
		From:   from,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
