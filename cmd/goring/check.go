package main

import (
	"fmt"

	"github.com/philipparndt/goring/internal/pipeline"
	"github.com/philipparndt/goring/pkg/topology"
	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate the topology of a ring model",
	Long:  "Run the manifold and hole checks used before resizing. Exits with status 2 when the mesh is rejected.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Also require every edge to be shared by exactly two faces")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := inspectOptions
	opts.Strict = checkStrict

	res, err := pipeline.New(opts, nil).Inspect(cmd.Context(), args[0])
	if res.Mesh == nil {
		return err
	}

	printTopology(cmd.OutOrStdout(), res.Topology)
	if res.Topology.Status != topology.Valid {
		return errTopologyReported
	}
	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}
