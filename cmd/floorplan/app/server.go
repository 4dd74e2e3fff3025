/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package app implements the floorplan command line
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/vlsi-lab/floorplanner/cmd/floorplan/app/options"
	"github.com/vlsi-lab/floorplanner/pkg/floorplanner"
	"github.com/vlsi-lab/floorplanner/pkg/report"
	"github.com/vlsi-lab/floorplanner/pkg/tracing"
)

// NewFloorplanCommand creates the root command with the run, benchmark and
// version subcommands
func NewFloorplanCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "floorplan",
		Short:        "floorplan places rectangular blocks on a grid with a genetic algorithm",
		Long:         `floorplan searches for a placement of rectangular hardware blocks on a square grid that avoids overlaps and minimizes wiring length and bounding area.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(NewRunCommand(out))
	cmd.AddCommand(NewBenchmarkCommand(out))
	cmd.AddCommand(NewVersionCommand(out))
	return cmd
}

// NewRunCommand creates the command that runs one floorplanning search
func NewRunCommand(out io.Writer) *cobra.Command {
	o := options.NewFloorplanOptions()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search for a floorplan",
		Long: `Run loads a FloorplanConfiguration (or uses the reference processor),
applies the command line overrides and evolves a population of placements.
The best floorplan is printed and optionally written as a report, chart and metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return Run(ctx, o, cmd.Flags(), out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// Run executes one search with the given options. fs is consulted to tell
// explicitly set flags from defaults.
func Run(ctx context.Context, o *options.FloorplanOptions, fs *pflag.FlagSet, out io.Writer) error {
	logger := klog.FromContext(ctx)

	cfg, err := o.Configuration(fs)
	if err != nil {
		return err
	}

	shutdown, err := tracing.Setup(ctx, o.Tracing())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error(err, "Failed to flush traces")
		}
	}()

	fp, err := floorplanner.New(ctx, cfg,
		floorplanner.WithScenario(o.Scenario),
		floorplanner.WithOutputs(o.Outputs()),
	)
	if err != nil {
		return err
	}

	rep, runErr := fp.Run(ctx)
	if rep != nil {
		fmt.Fprintf(out, "Best floorplan (seed %d, generation %d of %d)\n", rep.Seed, rep.BestGeneration+1, rep.Generations)
		fmt.Fprintf(out, "fitness %.2f, overlaps %d, wiring %.2f, area %.0f\n",
			rep.Breakdown.Fitness, rep.Breakdown.Overlaps, rep.Breakdown.WiringLength, rep.Breakdown.BoundingArea)
		for i, p := range rep.Placements {
			fmt.Fprintf(out, "  %c %-16s (%d,%d) %dx%d\n", report.Label(i), p.Name, p.X, p.Y, p.Width, p.Height)
		}
		fmt.Fprint(out, rep.Layout())
	}
	return runErr
}
