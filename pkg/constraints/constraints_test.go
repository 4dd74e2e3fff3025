package constraints_test

import (
	"errors"
	"testing"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/constraints"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

func twoBlockCatalog(t *testing.T) *catalog.Catalog {
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

func TestConstraints(t *testing.T) {
	cat := twoBlockCatalog(t)
	gridSize := 4

	bounds := constraints.BoundsConstraint(cat, gridSize)
	noOverlap := constraints.NoOverlapConstraint(cat)
	feasible := constraints.CombineConstraints(constraints.LengthConstraint(cat), bounds, noOverlap)

	testCases := []struct {
		name           string
		chromosome     framework.Chromosome
		inBounds       bool
		overlapFree    bool
		shouldBeUsable bool
	}{
		{
			name:           "Diagonal",
			chromosome:     framework.Chromosome{{X: 0, Y: 0}, {X: 2, Y: 2}},
			inBounds:       true,
			overlapFree:    true,
			shouldBeUsable: true,
		},
		{
			name:        "Overlapping",
			chromosome:  framework.Chromosome{{X: 0, Y: 0}, {X: 1, Y: 1}},
			inBounds:    true,
			overlapFree: false,
		},
		{
			name:        "OutOfGrid",
			chromosome:  framework.Chromosome{{X: 0, Y: 0}, {X: 3, Y: 0}},
			inBounds:    false,
			overlapFree: true,
		},
		{
			name:       "TooShort",
			chromosome: framework.Chromosome{{X: 0, Y: 0}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := bounds(tc.chromosome); got != tc.inBounds {
				t.Errorf("Bounds: expected %v, got %v", tc.inBounds, got)
			}
			if got := noOverlap(tc.chromosome); got != tc.overlapFree {
				t.Errorf("NoOverlap: expected %v, got %v", tc.overlapFree, got)
			}
			if got := feasible(tc.chromosome); got != tc.shouldBeUsable {
				t.Errorf("Combined: expected %v, got %v", tc.shouldBeUsable, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cat := twoBlockCatalog(t)

	if err := constraints.Validate(framework.Chromosome{{X: 2, Y: 2}, {X: 0, Y: 0}}, cat, 4); err != nil {
		t.Errorf("Expected valid chromosome, got %v", err)
	}

	err := constraints.Validate(framework.Chromosome{{X: 0, Y: 0}}, cat, 4)
	var invalid *framework.InvalidChromosomeError
	if !errors.As(err, &invalid) || invalid.Index != -1 {
		t.Errorf("Expected whole-chromosome length error, got %v", err)
	}

	err = constraints.Validate(framework.Chromosome{{X: 0, Y: 0}, {X: 0, Y: -1}}, cat, 4)
	if !errors.As(err, &invalid) || invalid.Index != 1 {
		t.Errorf("Expected bounds error at gene 1, got %v", err)
	}
	if !errors.Is(err, framework.ErrInvalidChromosome) {
		t.Errorf("Expected error to match ErrInvalidChromosome")
	}
}
