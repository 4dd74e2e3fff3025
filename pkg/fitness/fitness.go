// Package fitness combines the overlap, wiring and area cost terms into the
// scalar fitness that drives the genetic search.
package fitness

import (
	"math"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/constraints"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/objectives/area"
	"github.com/vlsi-lab/floorplanner/pkg/objectives/overlap"
	"github.com/vlsi-lab/floorplanner/pkg/objectives/wiring"
)

// Weights scales the three cost terms. By convention Overlap >> Wiring >> Area:
// overlap acts as a soft constraint, wiring is the primary objective and area
// breaks ties.
type Weights struct {
	Overlap float64 // alpha
	Wiring  float64 // beta
	Area    float64 // gamma
}

// DefaultWeights returns the reference weights
func DefaultWeights() Weights {
	return Weights{
		Overlap: 1000,
		Wiring:  2,
		Area:    1,
	}
}

// Validate rejects negative or non-finite weights
func (w Weights) Validate() error {
	for _, wt := range []struct {
		name  string
		value float64
	}{
		{"overlap", w.Overlap},
		{"wiring", w.Wiring},
		{"area", w.Area},
	} {
		if math.IsNaN(wt.value) || math.IsInf(wt.value, 0) || wt.value < 0 {
			return framework.NewConfigurationError("%s weight must be a finite non-negative number, got %v", wt.name, wt.value)
		}
	}
	return nil
}

// Compose returns -(alpha*overlaps + beta*wiring + gamma*area)
func (w Weights) Compose(overlaps int, wiringLength, boundingArea float64) float64 {
	return -(w.Overlap*float64(overlaps) + w.Wiring*wiringLength + w.Area*boundingArea)
}

// Evaluator scores chromosomes against a fixed catalog, grid and weights.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	catalog  *catalog.Catalog
	weights  Weights
	gridSize int
}

// NewEvaluator returns a ConfigurationError if a block cannot fit the grid or
// the weights are invalid.
func NewEvaluator(cat *catalog.Catalog, weights Weights, gridSize int) (*Evaluator, error) {
	if err := cat.FitsGrid(gridSize); err != nil {
		return nil, err
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		catalog:  cat,
		weights:  weights,
		gridSize: gridSize,
	}, nil
}

func (e *Evaluator) Catalog() *catalog.Catalog { return e.catalog }
func (e *Evaluator) Weights() Weights          { return e.weights }
func (e *Evaluator) GridSize() int             { return e.gridSize }

// Evaluate computes the fitness breakdown of c. A chromosome of the wrong
// length or with an out-of-grid position yields an InvalidChromosomeError.
func (e *Evaluator) Evaluate(c framework.Chromosome) (framework.FitnessResult, error) {
	if err := constraints.Validate(c, e.catalog, e.gridSize); err != nil {
		return framework.FitnessResult{}, err
	}

	overlaps := overlap.OverlapObjective(c, e.catalog)
	wiringLength := wiring.WiringObjective(c, e.catalog)
	boundingArea := area.AreaObjective(c, e.catalog)

	return framework.FitnessResult{
		Fitness:      e.weights.Compose(overlaps, wiringLength, boundingArea),
		OverlapCount: overlaps,
		WiringLength: wiringLength,
		BoundingArea: boundingArea,
	}, nil
}

// Objectives returns the unweighted cost terms in the order overlap, wiring, area
func (e *Evaluator) Objectives() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		overlap.OverlapObjectiveFunc(e.catalog),
		wiring.WiringObjectiveFunc(e.catalog),
		area.AreaObjectiveFunc(e.catalog),
	}
}
