package algorithms

import (
	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// Factory draws random in-bounds placements for a catalog
type Factory struct {
	catalog  *catalog.Catalog
	gridSize int
}

// NewFactory returns a ConfigurationError if any block exceeds the grid,
// since no valid position would exist for it.
func NewFactory(cat *catalog.Catalog, gridSize int) (*Factory, error) {
	if err := cat.FitsGrid(gridSize); err != nil {
		return nil, err
	}
	return &Factory{catalog: cat, gridSize: gridSize}, nil
}

func (f *Factory) Catalog() *catalog.Catalog { return f.catalog }
func (f *Factory) GridSize() int             { return f.gridSize }

// RandomPosition draws x from [0, grid-width] and y from [0, grid-height]
// for the block at canonical index i.
func (f *Factory) RandomPosition(r *rand.Rand, i int) framework.Position {
	b := f.catalog.Block(i)
	return framework.Position{
		X: r.Intn(f.gridSize - b.Width + 1),
		Y: r.Intn(f.gridSize - b.Height + 1),
	}
}

// RandomChromosome draws an independent position for each block in canonical
// order. Blocks may overlap; overlap is penalized by the evaluator, not prevented.
func (f *Factory) RandomChromosome(r *rand.Rand) framework.Chromosome {
	c := make(framework.Chromosome, f.catalog.Len())
	for i := range c {
		c[i] = f.RandomPosition(r, i)
	}
	return c
}

// Initialize returns n random chromosomes
func (f *Factory) Initialize(r *rand.Rand, n int) []framework.Chromosome {
	population := make([]framework.Chromosome, n)
	for i := range population {
		population[i] = f.RandomChromosome(r)
	}
	return population
}
