package constraints

import (
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/geometry"
)

// LengthConstraint creates a constraint that checks the chromosome has one gene per block
func LengthConstraint(cat *catalog.Catalog) framework.Constraint {
	return func(c framework.Chromosome) bool {
		return len(c) == cat.Len()
	}
}

// BoundsConstraint creates a constraint that checks every block lies inside the grid
func BoundsConstraint(cat *catalog.Catalog, gridSize int) framework.Constraint {
	return func(c framework.Chromosome) bool {
		if len(c) != cat.Len() {
			return false
		}
		for i, p := range c {
			if !InBounds(p, cat.Block(i), gridSize) {
				return false
			}
		}
		return true
	}
}

// NoOverlapConstraint creates a constraint that holds when no two blocks intersect.
// This is a feasibility check for reporting; the search penalizes overlap instead.
func NoOverlapConstraint(cat *catalog.Catalog) framework.Constraint {
	return func(c framework.Chromosome) bool {
		if len(c) != cat.Len() {
			return false
		}
		for i := 0; i < len(c); i++ {
			for j := i + 1; j < len(c); j++ {
				if geometry.Overlaps(c[i], cat.Block(i), c[j], cat.Block(j)) {
					return false
				}
			}
		}
		return true
	}
}

// CombineConstraints combines multiple constraints into one
func CombineConstraints(constraints ...framework.Constraint) framework.Constraint {
	return func(c framework.Chromosome) bool {
		for _, constraint := range constraints {
			if !constraint(c) {
				return false
			}
		}
		return true
	}
}

// InBounds reports whether block b at p satisfies 0 <= x <= grid-w and 0 <= y <= grid-h
func InBounds(p framework.Position, b framework.Block, gridSize int) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X+b.Width <= gridSize &&
		p.Y+b.Height <= gridSize
}

// Validate returns an InvalidChromosomeError describing the first length or
// bounds violation of c, or nil.
func Validate(c framework.Chromosome, cat *catalog.Catalog, gridSize int) error {
	if len(c) != cat.Len() {
		return framework.NewInvalidChromosomeError(-1, "length %d does not match catalog size %d", len(c), cat.Len())
	}
	for i, p := range c {
		b := cat.Block(i)
		if !InBounds(p, b, gridSize) {
			return framework.NewInvalidChromosomeError(i, "block %q at %v exceeds the %dx%d grid", b.Name, p, gridSize, gridSize)
		}
	}
	return nil
}
