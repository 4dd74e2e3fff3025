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

package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vlsi-lab/floorplanner/cmd/floorplan/app/options"
	"github.com/vlsi-lab/floorplanner/pkg/benchmarks"
	"github.com/vlsi-lab/floorplanner/pkg/version"
)

// NewBenchmarkCommand creates the command that runs the built-in scenarios
func NewBenchmarkCommand(out io.Writer) *cobra.Command {
	o := options.NewBenchmarkOptions()

	cmd := &cobra.Command{
		Use:   "benchmark [scenario...]",
		Short: "Run the built-in benchmark scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			suite := benchmarks.NewTestSuite(o.Base(cmd.Flags()))
			if err := addScenarios(suite, args); err != nil {
				return err
			}
			summaries, err := suite.Run(ctx, o.OutputDir)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tFITNESS\tOVERLAPS\tWIRING\tAREA\tAREA RATIO\tBEST GEN")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%.2f\t%d\t%.2f\t%.0f\t%.2f\t%d\n",
					s.Scenario, s.Fitness, s.Overlaps, s.WiringLength, s.BoundingArea, s.AreaRatio(), s.BestGeneration+1)
			}
			if flushErr := w.Flush(); err == nil {
				err = flushErr
			}
			return err
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

func addScenarios(suite *benchmarks.TestSuite, names []string) error {
	if len(names) == 0 {
		suite.AddStandardScenarios()
		return nil
	}
	known := make(map[string]benchmarks.Scenario)
	for _, s := range benchmarks.StandardScenarios() {
		known[s.Name] = s
	}
	for _, name := range names {
		s, ok := known[name]
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		suite.AddScenario(s)
	}
	return nil
}

// NewVersionCommand creates the command that prints build information
func NewVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of floorplan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.Marshal(version.Get())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "floorplan version: %s\n", data)
			return err
		},
	}
}
