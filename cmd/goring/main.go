package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/goring/internal/pipeline"
	"github.com/philipparndt/goring/version"
	"github.com/spf13/cobra"
)

// errTopologyReported marks a check that printed its findings already
var errTopologyReported = errors.New("topology check failed")

var rootCmd = &cobra.Command{
	Use:   "goring",
	Short: "Resize ring models to a target inside diameter",
	Long: `goring measures the inside diameter of a ring band mesh and rescales it
uniformly so the diameter matches a target size. It reads Wavefront OBJ,
ASCII and binary STL, and OpenSCAD models.`,
	Version:       version.GetFullVersion(),
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errTopologyReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad geometry so scripts can tell it apart from bad input
func exitCode(err error) int {
	if pipeline.IsTopology(err) || errors.Is(err, errTopologyReported) {
		return 2
	}
	return 1
}
