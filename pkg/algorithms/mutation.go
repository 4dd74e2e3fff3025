package algorithms

import (
	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// Mutator relocates a single block with probability Rate
type Mutator struct {
	factory *Factory
	rate    float64
}

// NewMutator returns a ConfigurationError if rate is outside [0, 1]
func NewMutator(factory *Factory, rate float64) (*Mutator, error) {
	if rate < 0 || rate > 1 {
		return nil, framework.NewConfigurationError("mutation rate must be in [0, 1], got %v", rate)
	}
	return &Mutator{factory: factory, rate: rate}, nil
}

func (m *Mutator) Rate() float64 { return m.rate }

// Mutate picks one gene uniformly and redraws its position, with probability
// Rate. The result is a new slice. Otherwise c itself is returned, so callers
// must treat chromosomes as immutable values.
func (m *Mutator) Mutate(r *rand.Rand, c framework.Chromosome) framework.Chromosome {
	if r.Float64() >= m.rate {
		return c
	}
	i := r.Intn(len(c))
	mutated := c.Clone()
	mutated[i] = m.factory.RandomPosition(r, i)
	return mutated
}
