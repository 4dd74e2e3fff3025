// Package geometry provides the pure rectangle predicates used to score a
// floorplan: block centers, center-to-center distance, overlap and the
// bounding box of a whole placement.
//
// Rectangles use half-open intervals [left, right) x [bottom, top), so two
// blocks that only share an edge do not overlap.
package geometry

import (
	"math"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// Rect is an axis-aligned rectangle in grid units
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// RectOf returns the rectangle covered by block b placed at p
func RectOf(p framework.Position, b framework.Block) Rect {
	return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X + b.Width, MaxY: p.Y + b.Height}
}

func (r Rect) Width() int  { return r.MaxX - r.MinX }
func (r Rect) Height() int { return r.MaxY - r.MinY }

// Area returns the rectangle area as a float for use in cost terms
func (r Rect) Area() float64 {
	return float64(r.Width()) * float64(r.Height())
}

// Intersects reports whether the two rectangles share interior area
func (r Rect) Intersects(o Rect) bool {
	disjoint := r.MaxX <= o.MinX ||
		r.MinX >= o.MaxX ||
		r.MinY >= o.MaxY ||
		r.MaxY <= o.MinY
	return !disjoint
}

// Center returns the center of block b placed at p
func Center(p framework.Position, b framework.Block) (cx, cy float64) {
	cx = float64(p.X) + float64(b.Width)/2
	cy = float64(p.Y) + float64(b.Height)/2
	return cx, cy
}

// Distance returns the Euclidean distance between the centers of two placed blocks
func Distance(pa framework.Position, ba framework.Block, pb framework.Position, bb framework.Block) float64 {
	ax, ay := Center(pa, ba)
	bx, by := Center(pb, bb)
	return math.Hypot(ax-bx, ay-by)
}

// Overlaps reports whether two placed blocks intersect
func Overlaps(pa framework.Position, ba framework.Block, pb framework.Position, bb framework.Block) bool {
	return RectOf(pa, ba).Intersects(RectOf(pb, bb))
}

// BoundingBox returns the smallest rectangle enclosing every block of c.
// blocks[i] must describe the block placed at c[i].
func BoundingBox(c framework.Chromosome, blocks []framework.Block) Rect {
	if len(c) == 0 {
		return Rect{}
	}
	box := RectOf(c[0], blocks[0])
	for i := 1; i < len(c); i++ {
		r := RectOf(c[i], blocks[i])
		box.MinX = min(box.MinX, r.MinX)
		box.MinY = min(box.MinY, r.MinY)
		box.MaxX = max(box.MaxX, r.MaxX)
		box.MaxY = max(box.MaxY, r.MaxY)
	}
	return box
}

// BoundingArea returns the area of BoundingBox(c, blocks)
func BoundingArea(c framework.Chromosome, blocks []framework.Block) float64 {
	return BoundingBox(c, blocks).Area()
}
