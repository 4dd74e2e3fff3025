package benchmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/vlsi-lab/floorplanner/pkg/api/v1alpha1"
	"github.com/vlsi-lab/floorplanner/pkg/floorplanner"
	"github.com/vlsi-lab/floorplanner/pkg/metrics"
)

// Summary is the outcome of one scenario
type Summary struct {
	Scenario       string
	Fitness        float64
	Overlaps       int
	WiringLength   float64
	BoundingArea   float64
	BlockArea      int
	Feasible       bool
	BestGeneration int
}

// AreaRatio is the bounding area relative to the summed block area; 1 is a
// perfect packing.
func (s Summary) AreaRatio() float64 {
	if s.BlockArea == 0 {
		return 0
	}
	return s.BoundingArea / float64(s.BlockArea)
}

// TestSuite runs a set of benchmark scenarios with shared search parameters
type TestSuite struct {
	scenarios []Scenario
	base      *v1alpha1.FloorplanConfiguration
	recorder  *metrics.Recorder
	clock     clock.PassiveClock
}

// NewTestSuite creates a suite whose scenarios take their search parameters
// from base
func NewTestSuite(base *v1alpha1.FloorplanConfiguration) *TestSuite {
	if base == nil {
		base = &v1alpha1.FloorplanConfiguration{}
	}
	return &TestSuite{
		base:     base,
		recorder: metrics.NewRecorder(),
		clock:    clock.RealClock{},
	}
}

// WithClock replaces the clock handed to every floorplanner
func (ts *TestSuite) WithClock(c clock.PassiveClock) *TestSuite {
	ts.clock = c
	return ts
}

// AddScenario adds a scenario to the test suite
func (ts *TestSuite) AddScenario(s Scenario) {
	ts.scenarios = append(ts.scenarios, s)
}

// AddStandardScenarios adds the built-in scenarios
func (ts *TestSuite) AddStandardScenarios() {
	for _, s := range StandardScenarios() {
		ts.AddScenario(s)
	}
}

// Recorder returns the recorder shared by all scenarios, labeled by name
func (ts *TestSuite) Recorder() *metrics.Recorder {
	return ts.recorder
}

// configFor overlays the scenario's problem on the base search parameters
func (ts *TestSuite) configFor(s Scenario) *v1alpha1.FloorplanConfiguration {
	cfg := ts.base.DeepCopy()
	problem := s.Config.DeepCopy()
	cfg.GridSize = problem.GridSize
	cfg.Blocks = problem.Blocks
	cfg.Connections = problem.Connections
	if problem.Weights != nil {
		cfg.Weights = problem.Weights
	}
	return cfg
}

// Run executes every scenario in order. With a non-empty outputDir each
// scenario writes its report and convergence chart there, and the suite
// writes the combined metrics.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Summary, error) {
	logger := klog.FromContext(ctx)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	summaries := make([]Summary, 0, len(ts.scenarios))
	for _, s := range ts.scenarios {
		logger.Info("Running benchmark", "scenario", s.Name, "blocks", len(s.Config.Blocks))

		opts := []floorplanner.Option{
			floorplanner.WithScenario(s.Name),
			floorplanner.WithRecorder(ts.recorder),
			floorplanner.WithClock(ts.clock),
		}
		if outputDir != "" {
			opts = append(opts, floorplanner.WithOutputs(floorplanner.Outputs{
				ReportPath: filepath.Join(outputDir, s.Name+"_report.json"),
				ChartPath:  filepath.Join(outputDir, s.Name+"_convergence.html"),
			}))
		}

		fp, err := floorplanner.New(ctx, ts.configFor(s), opts...)
		if err != nil {
			return summaries, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		rep, err := fp.Run(ctx)
		if err != nil {
			return summaries, fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		summary := Summary{
			Scenario:       s.Name,
			Fitness:        rep.Breakdown.Fitness,
			Overlaps:       rep.Breakdown.Overlaps,
			WiringLength:   rep.Breakdown.WiringLength,
			BoundingArea:   rep.Breakdown.BoundingArea,
			BlockArea:      s.BlockArea(),
			Feasible:       rep.Feasible,
			BestGeneration: rep.BestGeneration,
		}
		summaries = append(summaries, summary)
		logger.Info("Benchmark result",
			"scenario", s.Name,
			"fitness", fmt.Sprintf("%.2f", summary.Fitness),
			"feasible", summary.Feasible,
			"areaRatio", fmt.Sprintf("%.2f", summary.AreaRatio()),
			"bestGeneration", summary.BestGeneration+1)
	}

	if outputDir != "" {
		if err := ts.recorder.WriteTextfile(filepath.Join(outputDir, "metrics.prom")); err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}
