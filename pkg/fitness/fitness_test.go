package fitness_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/fitness"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

func twoSquares(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]framework.Block{
		{Name: "A", Width: 2, Height: 2},
		{Name: "B", Width: 2, Height: 2},
	}, []framework.Connection{{From: "A", To: "B"}})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	return cat
}

func TestEvaluateExamples(t *testing.T) {
	weights := fitness.DefaultWeights()
	evaluator, err := fitness.NewEvaluator(twoSquares(t), weights, 4)
	if err != nil {
		t.Fatalf("Failed to create evaluator: %v", err)
	}

	testCases := []struct {
		name       string
		chromosome framework.Chromosome
		overlaps   int
		area       float64
		wiring     float64
	}{
		{
			name:       "DisjointDiagonal",
			chromosome: framework.Chromosome{{X: 0, Y: 0}, {X: 2, Y: 2}},
			overlaps:   0,
			area:       16,
			wiring:     math.Sqrt(8),
		},
		{
			name:       "Overlapping",
			chromosome: framework.Chromosome{{X: 0, Y: 0}, {X: 1, Y: 1}},
			overlaps:   1,
			area:       9,
			wiring:     math.Sqrt(2),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := evaluator.Evaluate(tc.chromosome)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if res.OverlapCount != tc.overlaps {
				t.Errorf("Expected %d overlaps, got %d", tc.overlaps, res.OverlapCount)
			}
			if res.BoundingArea != tc.area {
				t.Errorf("Expected area %v, got %v", tc.area, res.BoundingArea)
			}
			if math.Abs(res.WiringLength-tc.wiring) > 1e-12 {
				t.Errorf("Expected wiring %v, got %v", tc.wiring, res.WiringLength)
			}
			expected := -(weights.Overlap*float64(tc.overlaps) + weights.Wiring*tc.wiring + weights.Area*tc.area)
			if math.Abs(res.Fitness-expected) > 1e-9 {
				t.Errorf("Expected fitness %v, got %v", expected, res.Fitness)
			}
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	cat := catalog.Processor()
	evaluator, err := fitness.NewEvaluator(cat, fitness.DefaultWeights(), 25)
	if err != nil {
		t.Fatalf("Failed to create evaluator: %v", err)
	}

	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		c := make(framework.Chromosome, cat.Len())
		for j := range c {
			b := cat.Block(j)
			c[j] = framework.Position{X: r.Intn(25 - b.Width + 1), Y: r.Intn(25 - b.Height + 1)}
		}
		first, err := evaluator.Evaluate(c)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		second, _ := evaluator.Evaluate(c.Clone())
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("Evaluate not deterministic (-first +second):\n%s", diff)
		}
		if first.OverlapCount < 0 || first.BoundingArea < 0 {
			t.Fatalf("Negative cost terms: %+v", first)
		}
	}
}

func TestEvaluateRejectsInvalidChromosomes(t *testing.T) {
	evaluator, err := fitness.NewEvaluator(twoSquares(t), fitness.DefaultWeights(), 4)
	if err != nil {
		t.Fatalf("Failed to create evaluator: %v", err)
	}

	for name, c := range map[string]framework.Chromosome{
		"TooShort":  {{X: 0, Y: 0}},
		"TooLong":   {{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 1}},
		"OutOfGrid": {{X: 0, Y: 0}, {X: 3, Y: 3}},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := evaluator.Evaluate(c); !errors.Is(err, framework.ErrInvalidChromosome) {
				t.Errorf("Expected invalid chromosome error, got %v", err)
			}
		})
	}
}

func TestNewEvaluatorRejectsBadConfiguration(t *testing.T) {
	if _, err := fitness.NewEvaluator(twoSquares(t), fitness.DefaultWeights(), 1); !errors.Is(err, framework.ErrConfiguration) {
		t.Errorf("Expected configuration error for undersized grid, got %v", err)
	}
	bad := fitness.Weights{Overlap: -1, Wiring: 1, Area: 1}
	if _, err := fitness.NewEvaluator(twoSquares(t), bad, 4); !errors.Is(err, framework.ErrConfiguration) {
		t.Errorf("Expected configuration error for negative weight, got %v", err)
	}
}

func TestObjectivesMatchEvaluate(t *testing.T) {
	evaluator, err := fitness.NewEvaluator(twoSquares(t), fitness.DefaultWeights(), 4)
	if err != nil {
		t.Fatalf("Failed to create evaluator: %v", err)
	}
	c := framework.Chromosome{{X: 0, Y: 0}, {X: 1, Y: 1}}
	res, _ := evaluator.Evaluate(c)

	objs := evaluator.Objectives()
	got := []float64{objs[0](c), objs[1](c), objs[2](c)}
	want := []float64{float64(res.OverlapCount), res.WiringLength, res.BoundingArea}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Objectives disagree with Evaluate (-want +got):\n%s", diff)
	}
}

func TestWeightsValidateReportsFirstInvalidWeight(t *testing.T) {
	w := fitness.Weights{Overlap: -1, Wiring: -2, Area: math.NaN()}
	for i := 0; i < 50; i++ {
		err := w.Validate()
		if !errors.Is(err, framework.ErrConfiguration) {
			t.Fatalf("Expected configuration error, got %v", err)
		}
		if !strings.Contains(err.Error(), "overlap weight") {
			t.Fatalf("Expected the overlap weight to be reported first, got %v", err)
		}
	}
}
