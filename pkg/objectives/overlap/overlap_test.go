package overlap

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

func threeSquares(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]framework.Block{
		{Name: "A", Width: 2, Height: 2},
		{Name: "B", Width: 2, Height: 2},
		{Name: "C", Width: 2, Height: 2},
	}, nil)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	return cat
}

func TestOverlapObjective(t *testing.T) {
	cat := threeSquares(t)

	testCases := []struct {
		name          string
		chromosome    framework.Chromosome
		expectedCount int
		expectedPairs []Pair
	}{
		{
			name:          "NoOverlap",
			chromosome:    framework.Chromosome{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}},
			expectedCount: 0,
		},
		{
			name:          "OnePair",
			chromosome:    framework.Chromosome{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 4, Y: 4}},
			expectedCount: 1,
			expectedPairs: []Pair{{I: 0, J: 1}},
		},
		{
			name:          "AllStacked",
			chromosome:    framework.Chromosome{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
			expectedCount: 3,
			expectedPairs: []Pair{{I: 0, J: 1}, {I: 0, J: 2}, {I: 1, J: 2}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OverlapObjective(tc.chromosome, cat); got != tc.expectedCount {
				t.Errorf("Expected %d overlaps, got %d", tc.expectedCount, got)
			}
			count, pairs := OverlapObjectiveWithDetails(tc.chromosome, cat)
			if count != tc.expectedCount {
				t.Errorf("Details: expected %d overlaps, got %d", tc.expectedCount, count)
			}
			if diff := cmp.Diff(tc.expectedPairs, pairs); diff != "" {
				t.Errorf("Unexpected pairs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverlapObjectiveFuncRejectsWrongLength(t *testing.T) {
	f := OverlapObjectiveFunc(threeSquares(t))
	if got := f(framework.Chromosome{{X: 0, Y: 0}}); !math.IsInf(got, 1) {
		t.Errorf("Expected +Inf for short chromosome, got %v", got)
	}
}
