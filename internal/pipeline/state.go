package pipeline

import "fmt"

// State is a stage of a sizing run
type State int

const (
	Loaded State = iota
	Validated
	Measured
	Scaled
	Named
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Validated:
		return "validated"
	case Measured:
		return "measured"
	case Scaled:
		return "scaled"
	case Named:
		return "named"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}
