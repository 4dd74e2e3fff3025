package wiring

import (
	"math"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/geometry"
)

// WireLength is the center-to-center length of one connection
type WireLength struct {
	Link   framework.Link
	Length float64
}

// WiringObjective sums the center-to-center distance over every connection
func WiringObjective(c framework.Chromosome, cat *catalog.Catalog) float64 {
	total, _ := WiringObjectiveWithDetails(c, cat)
	return total
}

// WiringObjectiveWithDetails returns the total and the per-connection lengths
func WiringObjectiveWithDetails(c framework.Chromosome, cat *catalog.Catalog) (float64, []WireLength) {
	links := cat.Links()
	wires := make([]WireLength, len(links))
	total := 0.0
	for i, l := range links {
		d := geometry.Distance(c[l.A], cat.Block(l.A), c[l.B], cat.Block(l.B))
		wires[i] = WireLength{Link: l, Length: d}
		total += d
	}
	return total, wires
}

// WiringObjectiveFunc returns a function compatible with the optimization framework
func WiringObjectiveFunc(cat *catalog.Catalog) framework.ObjectiveFunc {
	return func(c framework.Chromosome) float64 {
		if len(c) != cat.Len() {
			return math.Inf(1)
		}
		return WiringObjective(c, cat)
	}
}
