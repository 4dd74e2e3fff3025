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

// Package options provides the flags used for the floorplan commands
package options

import (
	"fmt"

	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/api/v1alpha1"
	"github.com/vlsi-lab/floorplanner/pkg/floorplanner"
	"github.com/vlsi-lab/floorplanner/pkg/tracing"
)

// SearchOptions override search parameters of the loaded configuration
type SearchOptions struct {
	Seed           int64
	Generations    int
	Population     int
	MutationRate   float64
	CrossoverRate  float64
	Crossover      string
	Selection      string
	Elitism        int
	WarmStartSeeds int
	Parallel       bool
}

// FloorplanOptions holds the flags of the run command
type FloorplanOptions struct {
	ConfigFile string
	Scenario   string
	Search     SearchOptions

	Output      string
	Chart       string
	MetricsFile string

	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceSampleRate float64
}

// NewFloorplanOptions returns options with default values
func NewFloorplanOptions() *FloorplanOptions {
	return &FloorplanOptions{
		Scenario:        floorplanner.DefaultScenario,
		TraceSampleRate: 1,
		Search: SearchOptions{
			Generations:   v1alpha1.DefaultMaxGenerations,
			Population:    v1alpha1.DefaultPopulationSize,
			MutationRate:  v1alpha1.DefaultMutationRate,
			CrossoverRate: v1alpha1.DefaultCrossoverRate,
			Crossover:     algorithms.SinglePoint,
			Selection:     algorithms.Tournament,
			Elitism:       v1alpha1.DefaultElitism,
		},
	}
}

// AddFlags adds flags for a specific FloorplanOptions to the specified FlagSet
func (o *FloorplanOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "FloorplanConfiguration file (.yaml, .yml, .json or .toml). The reference processor is used when empty.")
	fs.StringVar(&o.Scenario, "scenario", o.Scenario, "Name of the run in logs, metrics and the report.")
	o.Search.AddFlags(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, "Write the run report to this file, as YAML for .yaml/.yml and JSON otherwise.")
	fs.StringVar(&o.Chart, "chart", o.Chart, "Write an HTML convergence chart to this file.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write run metrics in Prometheus text format to this file.")

	fs.StringVar(&o.OTLPEndpoint, "otlp-endpoint", o.OTLPEndpoint, "OTLP/gRPC collector address for traces. Tracing is disabled when empty.")
	fs.BoolVar(&o.OTLPInsecure, "otlp-insecure", o.OTLPInsecure, "Connect to the OTLP collector without TLS.")
	fs.Float64Var(&o.TraceSampleRate, "trace-sample-rate", o.TraceSampleRate, "Fraction of runs traced, between 0 and 1.")
}

// AddFlags adds the search parameter flags
func (o *SearchOptions) AddFlags(fs *pflag.FlagSet) {
	fs.Int64Var(&o.Seed, "seed", o.Seed, "Seed of the random stream. A seed is derived from the clock when neither this flag nor the configuration sets one.")
	fs.IntVar(&o.Generations, "generations", o.Generations, "Number of generations evaluated.")
	fs.IntVar(&o.Population, "population", o.Population, "Number of individuals per generation.")
	fs.Float64Var(&o.MutationRate, "mutation-rate", o.MutationRate, "Probability that a child has one block redrawn.")
	fs.Float64Var(&o.CrossoverRate, "crossover-rate", o.CrossoverRate, "Probability that a selected pair is recombined.")
	fs.StringVar(&o.Crossover, "crossover", o.Crossover, "Crossover operator: "+algorithms.CrossoverNames()+".")
	fs.StringVar(&o.Selection, "selection", o.Selection, fmt.Sprintf("Parent selection: %s|%s|%s.", algorithms.Tournament, algorithms.Roulette, algorithms.Rank))
	fs.IntVar(&o.Elitism, "elitism", o.Elitism, "Number of fittest individuals carried over unchanged.")
	fs.IntVar(&o.WarmStartSeeds, "warm-start", o.WarmStartSeeds, "Number of shelf-packed floorplans in the initial population.")
	fs.BoolVar(&o.Parallel, "parallel", o.Parallel, "Evaluate fitness on all CPUs.")
}

// Apply overrides cfg with every search flag set on the command line
func (o *SearchOptions) Apply(fs *pflag.FlagSet, cfg *v1alpha1.FloorplanConfiguration) {
	if fs.Changed("seed") {
		cfg.Seed = ptr.To(o.Seed)
	}
	if fs.Changed("generations") {
		cfg.MaxGenerations = o.Generations
	}
	if fs.Changed("population") {
		cfg.PopulationSize = o.Population
	}
	if fs.Changed("mutation-rate") {
		cfg.MutationRate = ptr.To(o.MutationRate)
	}
	if fs.Changed("crossover-rate") {
		cfg.CrossoverRate = ptr.To(o.CrossoverRate)
	}
	if fs.Changed("crossover") {
		cfg.Crossover = o.Crossover
	}
	if fs.Changed("selection") {
		cfg.Selection = o.Selection
	}
	if fs.Changed("elitism") {
		cfg.Elitism = ptr.To(o.Elitism)
	}
	if fs.Changed("warm-start") {
		cfg.WarmStartSeeds = o.WarmStartSeeds
	}
	if fs.Changed("parallel") {
		cfg.Parallel = o.Parallel
	}
}

// Configuration loads the configuration file, or the default configuration,
// and applies the flags set on the command line
func (o *FloorplanOptions) Configuration(fs *pflag.FlagSet) (*v1alpha1.FloorplanConfiguration, error) {
	cfg := v1alpha1.NewDefaultConfiguration()
	if o.ConfigFile != "" {
		var err error
		if cfg, err = v1alpha1.LoadConfiguration(o.ConfigFile); err != nil {
			return nil, err
		}
	}
	o.Search.Apply(fs, cfg)
	if err := v1alpha1.ValidateFloorplanConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Outputs returns the files written after the run
func (o *FloorplanOptions) Outputs() floorplanner.Outputs {
	return floorplanner.Outputs{
		ReportPath:  o.Output,
		ChartPath:   o.Chart,
		MetricsPath: o.MetricsFile,
	}
}

// Tracing returns the tracer provider options
func (o *FloorplanOptions) Tracing() tracing.Options {
	return tracing.Options{
		Endpoint:   o.OTLPEndpoint,
		Insecure:   o.OTLPInsecure,
		SampleRate: o.TraceSampleRate,
	}
}

// BenchmarkOptions holds the flags of the benchmark command
type BenchmarkOptions struct {
	OutputDir string
	Search    SearchOptions
}

// NewBenchmarkOptions returns options with default values
func NewBenchmarkOptions() *BenchmarkOptions {
	o := &BenchmarkOptions{OutputDir: "benchmark-results"}
	o.Search = NewFloorplanOptions().Search
	o.Search.Population = 30
	o.Search.Generations = 100
	o.Search.WarmStartSeeds = 2
	return o
}

// AddFlags adds flags for a specific BenchmarkOptions to the specified FlagSet
func (o *BenchmarkOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.OutputDir, "output-dir", o.OutputDir, "Directory for per-scenario reports, charts and metrics. Nothing is written when empty.")
	o.Search.AddFlags(fs)
}

// Base returns the search parameters shared by every benchmark scenario
func (o *BenchmarkOptions) Base(fs *pflag.FlagSet) *v1alpha1.FloorplanConfiguration {
	cfg := &v1alpha1.FloorplanConfiguration{
		PopulationSize: o.Search.Population,
		MaxGenerations: o.Search.Generations,
		WarmStartSeeds: o.Search.WarmStartSeeds,
	}
	o.Search.Apply(fs, cfg)
	return cfg
}
