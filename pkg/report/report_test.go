package report_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"k8s.io/klog/v2/textlogger"
	"sigs.k8s.io/yaml"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/fitness"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/report"
)

func sampleReport(t *testing.T) *report.Report {
	t.Helper()
	cat, err := catalog.New([]framework.Block{
		{Name: "Core", Width: 2, Height: 2},
		{Name: "SRAM", Width: 2, Height: 2},
		{Name: "IO", Width: 1, Height: 1},
	}, []framework.Connection{{From: "Core", To: "SRAM"}})
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	evaluator, err := fitness.NewEvaluator(cat, fitness.DefaultWeights(), 5)
	if err != nil {
		t.Fatalf("Failed to create evaluator: %v", err)
	}

	best := framework.Chromosome{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 4, Y: 4}}
	res, err := evaluator.Evaluate(best)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	result := &algorithms.Result{
		Best:           algorithms.Individual{Chromosome: best, Result: res},
		BestGeneration: 1,
		Generations:    2,
		Evaluations:    12,
		Duration:       3 * time.Millisecond,
		Seed:           9,
		Trace: []algorithms.GenerationStats{
			{Generation: 0, Best: framework.FitnessResult{Fitness: -2000}, BestSoFar: framework.FitnessResult{Fitness: -2000}, MeanFitness: -3000},
			{Generation: 1, Best: res, BestSoFar: res, MeanFitness: -2500, Unique: 4},
		},
	}
	params := report.Parameters{GridSize: 5, PopulationSize: 6, MaxGenerations: 2, Crossover: "single-point", Selection: "tournament"}
	return report.New("run-1", "custom", params, cat, result, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
}

func TestNew(t *testing.T) {
	r := sampleReport(t)

	wantPlacements := []report.Placement{
		{Name: "Core", X: 0, Y: 0, Width: 2, Height: 2},
		{Name: "SRAM", X: 1, Y: 1, Width: 2, Height: 2},
		{Name: "IO", X: 4, Y: 4, Width: 1, Height: 1},
	}
	if diff := cmp.Diff(wantPlacements, r.Placements); diff != "" {
		t.Errorf("Unexpected placements (-want +got):\n%s", diff)
	}
	if r.Feasible {
		t.Errorf("Expected overlapping placement to be infeasible")
	}
	if diff := cmp.Diff([][2]string{{"Core", "SRAM"}}, r.Breakdown.Overlapping); diff != "" {
		t.Errorf("Unexpected overlapping pairs (-want +got):\n%s", diff)
	}
	if r.Breakdown.Overlaps != 1 || r.Breakdown.BoundingArea != 25 {
		t.Errorf("Unexpected breakdown: %+v", r.Breakdown)
	}
	if len(r.Breakdown.Wires) != 1 || r.Breakdown.Wires[0].From != "Core" {
		t.Errorf("Unexpected wires: %+v", r.Breakdown.Wires)
	}
	if len(r.Trace) != 2 || r.Trace[1].Unique != 4 {
		t.Errorf("Unexpected trace: %+v", r.Trace)
	}
}

func TestLayout(t *testing.T) {
	r := sampleReport(t)
	want := strings.Join([]string{
		"....C",
		".....",
		".BB..",
		"A#B..",
		"AA...",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, r.Layout()); diff != "" {
		t.Errorf("Unexpected layout (-want +got):\n%s", diff)
	}
}

func TestWrite(t *testing.T) {
	r := sampleReport(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "report.json")
	if err := r.Write(jsonPath); err != nil {
		t.Fatalf("Write JSON failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON report.Report
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if fromJSON.RunID != "run-1" || fromJSON.Seed != 9 {
		t.Errorf("Unexpected decoded report: %+v", fromJSON)
	}

	yamlPath := filepath.Join(dir, "report.yaml")
	if err := r.Write(yamlPath); err != nil {
		t.Fatalf("Write YAML failed: %v", err)
	}
	data, err = os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML report.Report
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("Report is not valid YAML: %v", err)
	}
	if diff := cmp.Diff(fromJSON.Placements, fromYAML.Placements); diff != "" {
		t.Errorf("JSON and YAML placements differ (-json +yaml):\n%s", diff)
	}

	if _, err := r.Marshal("xml"); err == nil {
		t.Errorf("Expected error for unsupported format")
	}
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := textlogger.NewLogger(textlogger.NewConfig(textlogger.Output(&buf), textlogger.Verbosity(2)))
	sampleReport(t).Log(logger)

	out := buf.String()
	for _, want := range []string{"Best floorplan", `block="SRAM"`, "Overlapping blocks", "Wire", "Layout"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, out)
		}
	}
}
