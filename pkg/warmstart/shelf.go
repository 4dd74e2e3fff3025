// Package warmstart builds constructive floorplans used to seed the initial
// population. Blocks are packed left to right on horizontal shelves, giving
// overlap-free starting points the genetic search can then compact and rewire.
package warmstart

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// ShelfPacker places catalog blocks on shelves inside a square grid
type ShelfPacker struct {
	catalog  *catalog.Catalog
	gridSize int
}

// NewShelfPacker returns a packer for the catalog, which must fit the grid
func NewShelfPacker(cat *catalog.Catalog, gridSize int) (*ShelfPacker, error) {
	if err := cat.FitsGrid(gridSize); err != nil {
		return nil, err
	}
	return &ShelfPacker{catalog: cat, gridSize: gridSize}, nil
}

// Pack places the blocks in the given order of catalog indices and returns the
// chromosome in catalog order. A shelf is closed when the next block does not
// fit its remaining width; its height is that of its tallest block. A block
// that fits on no new shelf is clamped to the highest in-bounds row, so the
// result is always a valid, though possibly overlapping, chromosome.
func (p *ShelfPacker) Pack(order []int) framework.Chromosome {
	c := make(framework.Chromosome, p.catalog.Len())
	x, shelfY, shelfHeight := 0, 0, 0

	for _, i := range order {
		b := p.catalog.Block(i)
		if x+b.Width > p.gridSize {
			shelfY += shelfHeight
			x, shelfHeight = 0, 0
		}

		pos := framework.Position{X: x, Y: shelfY}
		if pos.Y+b.Height > p.gridSize {
			pos.Y = p.gridSize - b.Height
		}
		c[i] = pos

		x += b.Width
		shelfHeight = max(shelfHeight, b.Height)
	}
	return c
}

// HeightOrder returns catalog indices sorted tallest first, then widest,
// then by catalog index.
func (p *ShelfPacker) HeightOrder() []int {
	order := make([]int, p.catalog.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := p.catalog.Block(order[i]), p.catalog.Block(order[j])
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Width > b.Width
	})
	return order
}

// Seeds returns n packings: the height-descending packing first, then
// packings of random block orders drawn from r.
func (p *ShelfPacker) Seeds(r *rand.Rand, n int) []framework.Chromosome {
	if n <= 0 {
		return nil
	}
	seeds := make([]framework.Chromosome, 0, n)
	seeds = append(seeds, p.Pack(p.HeightOrder()))
	for len(seeds) < n {
		seeds = append(seeds, p.Pack(r.Perm(p.catalog.Len())))
	}
	return seeds
}
