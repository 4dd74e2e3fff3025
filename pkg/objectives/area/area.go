package area

import (
	"math"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/geometry"
)

// AreaObjective returns the area of the bounding box enclosing every block
func AreaObjective(c framework.Chromosome, cat *catalog.Catalog) float64 {
	return geometry.BoundingArea(c, cat.Blocks())
}

// Utilization is the fraction of the bounding box covered by block area,
// ignoring overlap. A tight, overlap-free layout approaches 1.
func Utilization(c framework.Chromosome, cat *catalog.Catalog) float64 {
	box := AreaObjective(c, cat)
	if box == 0 {
		return 0
	}
	used := 0.0
	for i := 0; i < cat.Len(); i++ {
		b := cat.Block(i)
		used += float64(b.Width * b.Height)
	}
	return used / box
}

// AreaObjectiveFunc returns a function compatible with the optimization framework
func AreaObjectiveFunc(cat *catalog.Catalog) framework.ObjectiveFunc {
	return func(c framework.Chromosome) float64 {
		if len(c) != cat.Len() {
			return math.Inf(1)
		}
		return AreaObjective(c, cat)
	}
}
