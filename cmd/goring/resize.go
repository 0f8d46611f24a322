package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/philipparndt/goring/internal/config"
	"github.com/philipparndt/goring/internal/pipeline"
	"github.com/philipparndt/goring/pkg/openscad"
	"github.com/philipparndt/goring/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	resizeOptions = config.Default()
	configPath    string
	resizeWatch   bool
)

var resizeCmd = &cobra.Command{
	Use:   "resize [file] [size]",
	Short: "Scale a ring model to a target inside diameter",
	Long: `Validate the topology of a ring model, measure its inside diameter and
scale it uniformly so the diameter matches size. The result is written next
to the input as <file>_size-<size>.<ext>.

Missing arguments are asked for interactively.`,
	Example: `  goring resize ring.obj 7.25
  goring resize --axis y --center 0,0,5 band.stl 18
  goring resize --watch ring.scad 16.5`,
	Args: cobra.MaximumNArgs(2),
	RunE: runResize,
}

func init() {
	rootCmd.AddCommand(resizeCmd)

	resizeOptions.BindFlags(resizeCmd.Flags())
	resizeCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with default options")
	resizeCmd.Flags().BoolVarP(&resizeWatch, "watch", "w", false, "Resize again whenever the input changes")
}

func runResize(cmd *cobra.Command, args []string) error {
	opts, err := config.Resolve(cmd.Flags(), resizeOptions, configPath)
	if err != nil {
		return err
	}

	prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if len(args) < 1 {
		path, err := prompt.ask("Enter the path to the model file:")
		if err != nil {
			return err
		}
		args = append(args, path)
	}
	if len(args) < 2 {
		size, err := prompt.ask("Enter the target ring size (e.g., 7.25):")
		if err != nil {
			return err
		}
		args = append(args, size)
	}
	filename, size := args[0], args[1]

	// Reject a bad size before touching the file
	if _, err := pipeline.ParseTarget(size); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := pipeline.New(opts, cmd.OutOrStdout())
	if err := resizeOnce(ctx, cmd, p, filename, size); err != nil {
		if !resizeWatch {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	if !resizeWatch {
		return nil
	}
	return watchAndResize(ctx, cmd, p, filename, size)
}

func resizeOnce(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, filename, size string) error {
	res, err := p.Run(ctx, filename, size)
	if err != nil {
		return err
	}
	if res.Written {
		fmt.Fprintf(cmd.OutOrStdout(), "Object scaled and saved to: %s\n", res.OutputPath)
	}
	return nil
}

func watchAndResize(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, filename, size string) error {
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()

	files := []string{filename}
	if filepath.Ext(filename) == ".scad" {
		deps, err := openscad.NewRenderer(filepath.Dir(filename)).ResolveDependencies(filepath.Base(filename))
		if err != nil {
			return fmt.Errorf("failed to resolve dependencies: %w", err)
		}
		files = deps
	}

	var mu sync.Mutex
	rerun := func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s changed, resizing\n", changed)
		if err := resizeOnce(ctx, cmd, p, filename, size); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	if err := fw.Watch(files, rerun); err != nil {
		return err
	}
	fw.OnError = func(err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watcher error: %v\n", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d file(s) for changes, press Ctrl+C to stop\n", len(files))
	fw.Run(ctx)
	return nil
}
