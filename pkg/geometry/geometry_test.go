package geometry_test

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/geometry"
)

var square2 = framework.Block{Name: "A", Width: 2, Height: 2}

func TestCenter(t *testing.T) {
	cx, cy := geometry.Center(framework.Position{X: 1, Y: 2}, framework.Block{Width: 5, Height: 3})
	if cx != 3.5 || cy != 3.5 {
		t.Errorf("Expected center (3.5, 3.5), got (%v, %v)", cx, cy)
	}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     framework.Position
		expected bool
	}{
		{name: "Disjoint", a: framework.Position{X: 0, Y: 0}, b: framework.Position{X: 2, Y: 2}, expected: false},
		{name: "Intersecting", a: framework.Position{X: 0, Y: 0}, b: framework.Position{X: 1, Y: 1}, expected: true},
		{name: "SharedVerticalEdge", a: framework.Position{X: 0, Y: 0}, b: framework.Position{X: 2, Y: 0}, expected: false},
		{name: "SharedHorizontalEdge", a: framework.Position{X: 0, Y: 0}, b: framework.Position{X: 0, Y: 2}, expected: false},
		{name: "Identical", a: framework.Position{X: 3, Y: 3}, b: framework.Position{X: 3, Y: 3}, expected: true},
		{name: "Above", a: framework.Position{X: 0, Y: 5}, b: framework.Position{X: 0, Y: 0}, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := geometry.Overlaps(tc.a, square2, tc.b, square2); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		ba := framework.Block{Width: 1 + r.Intn(6), Height: 1 + r.Intn(6)}
		bb := framework.Block{Width: 1 + r.Intn(6), Height: 1 + r.Intn(6)}
		pa := framework.Position{X: r.Intn(10), Y: r.Intn(10)}
		pb := framework.Position{X: r.Intn(10), Y: r.Intn(10)}
		if geometry.Overlaps(pa, ba, pb, bb) != geometry.Overlaps(pb, bb, pa, ba) {
			t.Fatalf("Overlap not symmetric for %v%v and %v%v", pa, ba, pb, bb)
		}
	}
}

func TestDistance(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		ba := framework.Block{Width: 1 + r.Intn(6), Height: 1 + r.Intn(6)}
		bb := framework.Block{Width: 1 + r.Intn(6), Height: 1 + r.Intn(6)}
		pa := framework.Position{X: r.Intn(20), Y: r.Intn(20)}
		pb := framework.Position{X: r.Intn(20), Y: r.Intn(20)}

		ab := geometry.Distance(pa, ba, pb, bb)
		ba2 := geometry.Distance(pb, bb, pa, ba)
		if ab != ba2 {
			t.Fatalf("Distance not symmetric: %v vs %v", ab, ba2)
		}
		if ab < 0 {
			t.Fatalf("Negative distance %v", ab)
		}
		if self := geometry.Distance(pa, ba, pa, ba); self != 0 {
			t.Fatalf("Expected zero self distance, got %v", self)
		}
	}

	// 3-4-5 triangle between centers
	d := geometry.Distance(framework.Position{X: 0, Y: 0}, square2, framework.Position{X: 3, Y: 4}, square2)
	if math.Abs(d-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %v", d)
	}
}

func TestBoundingArea(t *testing.T) {
	blocks := []framework.Block{square2, {Name: "B", Width: 2, Height: 2}}

	testCases := []struct {
		name       string
		chromosome framework.Chromosome
		expected   float64
	}{
		{name: "Diagonal", chromosome: framework.Chromosome{{X: 0, Y: 0}, {X: 2, Y: 2}}, expected: 16},
		{name: "Stacked", chromosome: framework.Chromosome{{X: 0, Y: 0}, {X: 0, Y: 0}}, expected: 4},
		{name: "SideBySide", chromosome: framework.Chromosome{{X: 1, Y: 1}, {X: 3, Y: 1}}, expected: 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := geometry.BoundingArea(tc.chromosome, blocks); got != tc.expected {
				t.Errorf("Expected area %v, got %v", tc.expected, got)
			}
		})
	}

	if got := geometry.BoundingArea(nil, nil); got != 0 {
		t.Errorf("Expected zero area for empty chromosome, got %v", got)
	}
}
