package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/goring/internal/config"
	"github.com/philipparndt/goring/internal/pipeline"
	"github.com/philipparndt/goring/pkg/analysis"
	"github.com/philipparndt/goring/pkg/topology"
	"github.com/spf13/cobra"
)

var inspectOptions = config.Default()

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display the measurements of a ring model",
	Long:  "Show vertex and face counts, bounding box, radial measurements and the topology verdict.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	fs := infoCmd.Flags()
	fs.Var(&config.AxisValue{Axis: &inspectOptions.Axis}, "axis", "Ring axis (x, y or z)")
	fs.Var(&config.CenterValue{Center: &inspectOptions.Center}, "center", "Point on the ring axis")
	fs.BoolVar(&inspectOptions.Strict, "strict", false, "Also analyze edge adjacency")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	res, err := pipeline.New(inspectOptions, nil).Inspect(cmd.Context(), filename)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m := res.Mesh
	bbox := m.BoundingBox()

	fmt.Fprintln(out, "Ring Model Information")
	fmt.Fprintln(out, "======================")
	if m.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", m.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Mesh:")
	fmt.Fprintf(out, "  Vertices: %d\n", m.VertexCount())
	fmt.Fprintf(out, "  Faces: %d\n\n", m.FaceCount())

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", bbox.Min)
	fmt.Fprintf(out, "  Max: %s\n", bbox.Max)
	fmt.Fprintf(out, "  Center: %s\n\n", bbox.Center())

	ring := res.Measurement
	fmt.Fprintf(out, "Ring (axis %s through %s):\n", inspectOptions.Axis, inspectOptions.Center)
	fmt.Fprintf(out, "  Min radius: %s (rounded down to %s)\n",
		analysis.FormatMeasurement(ring.MinRadius, ""), analysis.FormatMeasurement(ring.InnerRadius, ""))
	fmt.Fprintf(out, "  Max radius: %s\n", analysis.FormatMeasurement(ring.MaxRadius, ""))
	fmt.Fprintf(out, "  Inside diameter: %s\n\n", analysis.FormatMeasurement(ring.InsideDiameter, ""))

	printTopology(out, res.Topology)
	return nil
}

func printTopology(out io.Writer, report topology.Report) {
	fmt.Fprintln(out, "Topology:")
	fmt.Fprintf(out, "  Status: %s\n", report.Status)
	fmt.Fprintf(out, "  Shared positions (>2 vertices): %d\n", report.CoincidentGroups)
	if report.HoleCheckInconclusive {
		fmt.Fprintf(out, "  Unreferenced vertices: unknown (face %d is not a triangle)\n", report.UnsupportedFace)
	} else {
		fmt.Fprintf(out, "  Unreferenced vertices: %d\n", len(report.Orphans))
	}
	if e := report.Edges; e != nil {
		fmt.Fprintf(out, "  Edges: %d\n", e.EdgeCount)
		fmt.Fprintf(out, "  Boundary edges: %d\n", len(e.Boundary))
		fmt.Fprintf(out, "  Non-manifold edges: %d\n", len(e.NonManifold))
		fmt.Fprintf(out, "  Degenerate faces: %d\n", e.Degenerate)
	}
	if !report.OK() {
		fmt.Fprintf(out, "  Reason: %s\n", report.Reason())
	}
}
