package overlap

import (
	"math"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/geometry"
)

// Pair identifies two overlapping blocks by canonical index
type Pair struct {
	I, J int
}

// OverlapObjective counts the unordered block pairs whose rectangles intersect.
// The chromosome must have one gene per catalog block.
func OverlapObjective(c framework.Chromosome, cat *catalog.Catalog) int {
	count := 0
	for i := 0; i < len(c); i++ {
		for j := i + 1; j < len(c); j++ {
			if geometry.Overlaps(c[i], cat.Block(i), c[j], cat.Block(j)) {
				count++
			}
		}
	}
	return count
}

// OverlapObjectiveWithDetails returns the count and the overlapping pairs
func OverlapObjectiveWithDetails(c framework.Chromosome, cat *catalog.Catalog) (int, []Pair) {
	var pairs []Pair
	for i := 0; i < len(c); i++ {
		for j := i + 1; j < len(c); j++ {
			if geometry.Overlaps(c[i], cat.Block(i), c[j], cat.Block(j)) {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}
	return len(pairs), pairs
}

// OverlapObjectiveFunc returns a function compatible with the optimization framework
func OverlapObjectiveFunc(cat *catalog.Catalog) framework.ObjectiveFunc {
	return func(c framework.Chromosome) float64 {
		if len(c) != cat.Len() {
			return math.Inf(1)
		}
		return float64(OverlapObjective(c, cat))
	}
}
