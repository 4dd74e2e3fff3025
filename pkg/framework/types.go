package framework

import "fmt"

// Block is a rectangular functional unit with fixed dimensions
type Block struct {
	Name   string
	Width  int
	Height int
}

// Position is the lower-left corner of a block on the grid
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Chromosome holds one position per block, in catalog order.
// Index i refers to the same block in every chromosome.
type Chromosome []Position

// Clone returns an independent copy of the chromosome
func (c Chromosome) Clone() Chromosome {
	if c == nil {
		return nil
	}
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// Equal reports whether both chromosomes hold the same positions
func (c Chromosome) Equal(other Chromosome) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Connection is an unordered pair of block names that must be wired together
type Connection struct {
	From string
	To   string
}

// Link is a Connection resolved to catalog indices
type Link struct {
	A int
	B int
}

// FitnessResult is the composite fitness and its three cost terms.
// Fitness is -(alpha*OverlapCount + beta*WiringLength + gamma*BoundingArea),
// so higher is better.
type FitnessResult struct {
	Fitness      float64
	OverlapCount int
	WiringLength float64
	BoundingArea float64
}

// Better reports whether r is strictly fitter than other
func (r FitnessResult) Better(other FitnessResult) bool {
	return r.Fitness > other.Fitness
}

// ObjectiveFunc scores a single cost term of a chromosome (lower is better)
type ObjectiveFunc func(Chromosome) float64

// Constraint reports whether a chromosome satisfies a structural rule
type Constraint func(Chromosome) bool
