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

package floorplanner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/api/v1alpha1"
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/fitness"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/metrics"
	"github.com/vlsi-lab/floorplanner/pkg/report"
	"github.com/vlsi-lab/floorplanner/pkg/util"
	"github.com/vlsi-lab/floorplanner/pkg/warmstart"
)

const Name = "Floorplanner"

// DefaultScenario labels runs that do not name one
const DefaultScenario = "processor"

// Outputs selects the files written after a run. Empty paths are skipped.
type Outputs struct {
	ReportPath  string
	ChartPath   string
	MetricsPath string
}

// Option configures a Floorplanner
type Option func(*Floorplanner)

// WithScenario names the run in logs, metrics and the report
func WithScenario(name string) Option {
	return func(f *Floorplanner) {
		f.scenario = name
	}
}

// WithOutputs writes the report, chart and metrics after each run
func WithOutputs(o Outputs) Option {
	return func(f *Floorplanner) {
		f.outputs = o
	}
}

// WithRecorder records generation metrics on r instead of a private recorder
func WithRecorder(r *metrics.Recorder) Option {
	return func(f *Floorplanner) {
		f.recorder = r
	}
}

// WithGenerationHook adds a hook called after every generation
func WithGenerationHook(hook algorithms.GenerationHook) Option {
	return func(f *Floorplanner) {
		f.hooks = append(f.hooks, hook)
	}
}

// WithClock replaces the clock used for timing and seed selection
func WithClock(c clock.PassiveClock) Option {
	return func(f *Floorplanner) {
		f.clock = c
	}
}

// Floorplanner wires a configuration into a genetic search and reports the result
type Floorplanner struct {
	logger    klog.Logger
	config    *v1alpha1.FloorplanConfiguration
	catalog   *catalog.Catalog
	evaluator *fitness.Evaluator
	factory   *algorithms.Factory
	gaConfig  algorithms.Config
	scenario  string
	outputs   Outputs
	recorder  *metrics.Recorder
	hooks     []algorithms.GenerationHook
	clock     clock.PassiveClock
}

// New builds the problem described by cfg. cfg is defaulted and validated
// first; the caller's copy is not modified.
func New(ctx context.Context, cfg *v1alpha1.FloorplanConfiguration, opts ...Option) (*Floorplanner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("want a FloorplanConfiguration, got nil")
	}
	cfg = cfg.DeepCopy()
	v1alpha1.SetDefaults_FloorplanConfiguration(cfg)
	if err := v1alpha1.ValidateFloorplanConfiguration(cfg); err != nil {
		return nil, err
	}

	f := &Floorplanner{
		config:   cfg,
		scenario: DefaultScenario,
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.recorder == nil {
		f.recorder = metrics.NewRecorder()
	}
	f.logger = klog.FromContext(ctx).WithValues("component", Name, "scenario", f.scenario)

	blocks := make([]framework.Block, len(cfg.Blocks))
	for i, b := range cfg.Blocks {
		blocks[i] = framework.Block{Name: b.Name, Width: b.Width, Height: b.Height}
	}
	connections := make([]framework.Connection, len(cfg.Connections))
	for i, c := range cfg.Connections {
		connections[i] = framework.Connection{From: c.From, To: c.To}
	}

	var err error
	if f.catalog, err = catalog.New(blocks, connections); err != nil {
		return nil, err
	}
	weights := fitness.Weights{Overlap: cfg.Weights.Overlap, Wiring: cfg.Weights.Wiring, Area: cfg.Weights.Area}
	if f.evaluator, err = fitness.NewEvaluator(f.catalog, weights, cfg.GridSize); err != nil {
		return nil, err
	}
	if f.factory, err = algorithms.NewFactory(f.catalog, cfg.GridSize); err != nil {
		return nil, err
	}
	if f.gaConfig, err = f.buildGAConfig(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Floorplanner) buildGAConfig() (algorithms.Config, error) {
	cfg := f.config
	crossover, err := algorithms.CrossoverByName(cfg.Crossover)
	if err != nil {
		return algorithms.Config{}, err
	}
	selector, err := algorithms.SelectorByName(cfg.Selection, cfg.TournamentSize)
	if err != nil {
		return algorithms.Config{}, err
	}

	var seed uint64
	if cfg.Seed != nil {
		seed = uint64(*cfg.Seed)
	} else {
		seed = uint64(f.clock.Now().UnixNano())
		f.logger.V(2).Info("No seed configured, derived one from the clock", "seed", seed)
	}

	gaConfig := algorithms.Config{
		PopulationSize: cfg.PopulationSize,
		MaxGenerations: cfg.MaxGenerations,
		CrossoverRate:  *cfg.CrossoverRate,
		MutationRate:   *cfg.MutationRate,
		Elitism:        *cfg.Elitism,
		Crossover:      crossover,
		Selector:       selector,
		Parallel:       cfg.Parallel,
		Seed:           seed,
	}

	if cfg.WarmStartSeeds > 0 {
		packer, err := warmstart.NewShelfPacker(f.catalog, cfg.GridSize)
		if err != nil {
			return algorithms.Config{}, err
		}
		// warm start draws from its own stream so the GA stream is unchanged
		r := rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15))
		gaConfig.Seeds = packer.Seeds(r, cfg.WarmStartSeeds)
	}
	return gaConfig, nil
}

// Catalog returns the blocks and connections being placed
func (f *Floorplanner) Catalog() *catalog.Catalog {
	return f.catalog
}

// Configuration returns the defaulted configuration
func (f *Floorplanner) Configuration() *v1alpha1.FloorplanConfiguration {
	return f.config
}

// Seed returns the seed of the random stream
func (f *Floorplanner) Seed() uint64 {
	return f.gaConfig.Seed
}

// Recorder returns the metrics recorder fed by every run
func (f *Floorplanner) Recorder() *metrics.Recorder {
	return f.recorder
}

// Run searches for a floorplan and returns its report. When ctx is cancelled
// mid-run the report of the best floorplan so far is returned with the
// context error. Output files are written in both cases.
func (f *Floorplanner) Run(ctx context.Context) (*report.Report, error) {
	runID := uuid.NewString()
	logger := f.logger.WithValues("runID", runID)
	ctx = klog.NewContext(ctx, logger)
	start := f.clock.Now()

	f.printProblem(logger)
	f.printAlgorithmConfig(logger)

	opts := []algorithms.Option{
		algorithms.WithClock(f.clock),
		algorithms.WithGenerationHook(f.recorder.Hook(f.scenario)),
	}
	for _, hook := range f.hooks {
		opts = append(opts, algorithms.WithGenerationHook(hook))
	}
	ga, err := algorithms.NewGA(f.gaConfig, f.evaluator, f.factory, opts...)
	if err != nil {
		return nil, err
	}

	result, runErr := ga.Run(ctx)
	if result == nil || result.Generations == 0 {
		return nil, runErr
	}
	if runErr != nil {
		logger.Info("Search stopped early, reporting best floorplan so far", "generations", result.Generations, "err", runErr)
	}

	rep := report.New(runID, f.scenario, f.parameters(), f.catalog, result, start)
	rep.Log(logger)

	if err := f.writeOutputs(logger, rep, result); err != nil {
		return rep, utilerrors.NewAggregate([]error{runErr, err})
	}
	return rep, runErr
}

func (f *Floorplanner) parameters() report.Parameters {
	cfg := f.config
	return report.Parameters{
		GridSize:       cfg.GridSize,
		PopulationSize: cfg.PopulationSize,
		MaxGenerations: cfg.MaxGenerations,
		MutationRate:   *cfg.MutationRate,
		CrossoverRate:  *cfg.CrossoverRate,
		Crossover:      cfg.Crossover,
		Selection:      cfg.Selection,
		Elitism:        *cfg.Elitism,
		WarmStartSeeds: cfg.WarmStartSeeds,
		Parallel:       cfg.Parallel,
		Weights:        report.Weights{Overlap: cfg.Weights.Overlap, Wiring: cfg.Weights.Wiring, Area: cfg.Weights.Area},
	}
}

func (f *Floorplanner) writeOutputs(logger klog.Logger, rep *report.Report, result *algorithms.Result) error {
	var errs []error
	if path := f.outputs.ReportPath; path != "" {
		if err := rep.Write(path); err != nil {
			errs = append(errs, err)
		} else {
			logger.Info("Wrote report", "path", path)
		}
	}
	if path := f.outputs.ChartPath; path != "" {
		if err := util.PlotConvergence(result.Trace, fmt.Sprintf("%s %s", f.scenario, Name), path); err != nil {
			errs = append(errs, fmt.Errorf("writing chart: %w", err))
		} else {
			logger.Info("Wrote convergence chart", "path", path)
		}
	}
	if path := f.outputs.MetricsPath; path != "" {
		if err := f.recorder.WriteTextfile(path); err != nil {
			errs = append(errs, err)
		} else {
			logger.Info("Wrote metrics", "path", path)
		}
	}
	return utilerrors.NewAggregate(errs)
}

func (f *Floorplanner) printProblem(logger klog.Logger) {
	blockArea := 0
	for _, b := range f.catalog.Blocks() {
		blockArea += b.Width * b.Height
	}
	logger.Info("Floorplanning problem",
		"gridSize", f.config.GridSize,
		"blocks", f.catalog.Len(),
		"connections", len(f.catalog.Links()),
		"blockArea", blockArea,
		"gridUtilization", fmt.Sprintf("%.1f%%", float64(blockArea)/float64(f.config.GridSize*f.config.GridSize)*100))

	for _, b := range f.catalog.Blocks() {
		logger.V(2).Info("Block", "name", b.Name, "width", b.Width, "height", b.Height)
	}
}

func (f *Floorplanner) printAlgorithmConfig(logger klog.Logger) {
	logger.Info("Algorithm configuration",
		"weightOverlap", f.config.Weights.Overlap,
		"weightWiring", f.config.Weights.Wiring,
		"weightArea", f.config.Weights.Area,
		"populationSize", f.gaConfig.PopulationSize,
		"generations", f.gaConfig.MaxGenerations,
		"crossover", f.config.Crossover,
		"crossoverRate", f.gaConfig.CrossoverRate,
		"mutationRate", f.gaConfig.MutationRate,
		"selection", f.gaConfig.Selector.Name(),
		"elitism", f.gaConfig.Elitism,
		"warmStartSeeds", len(f.gaConfig.Seeds),
		"seed", f.gaConfig.Seed)
}
