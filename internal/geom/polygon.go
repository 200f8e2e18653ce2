package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is an ordered point list. Consecutive points form edges; whether the
// last point connects back to the first depends on how the shape is used.
type Polygon []Point

// Translate returns a copy of the polygon moved by d.
func (p Polygon) Translate(d Vector2D) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Translate(d)
	}
	return out
}

// Bounds returns the axis-aligned bounding rectangle of all points.
// An empty polygon yields the zero Rect.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, pt := range p[1:] {
		r.Min.X = math.Min(r.Min.X, pt.X)
		r.Min.Y = math.Min(r.Min.Y, pt.Y)
		r.Max.X = math.Max(r.Max.X, pt.X)
		r.Max.Y = math.Max(r.Max.Y, pt.Y)
	}
	return r
}

// Rect is a float axis-aligned rectangle used for broad-phase rejection.
type Rect struct {
	Min, Max Point
}

// Overlaps reports whether two rectangles share any point, edges included.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// BoundingBox returns the axis-aligned box of size w×h centered on c, in the
// fixed winding bottom-left, top-left, top-right, bottom-right. Half extents
// use integer division, so odd sizes lose their remainder.
func BoundingBox(c Point, w, h int) Polygon {
	hw := float64(w / 2)
	hh := float64(h / 2)
	return Polygon{
		{X: c.X - hw, Y: c.Y - hh},
		{X: c.X - hw, Y: c.Y + hh},
		{X: c.X + hw, Y: c.Y + hh},
		{X: c.X + hw, Y: c.Y - hh},
	}
}

// NGon approximates an ellipse around c with the given number of sides, by
// scaling the unit circle independently with rx and ry. Point 0 lies at
// angle 0 and the points run counter-clockwise.
func NGon(c Point, sides int, rx, ry float64) Polygon {
	if sides <= 0 {
		return nil
	}
	pts := make(Polygon, sides)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = Point{
			X: c.X + math.Cos(angle)*rx,
			Y: c.Y + math.Sin(angle)*ry,
		}
	}
	return pts
}

// FractalTreePoints returns the number of points FractalTree produces for
// the given depth: 2^(depth+1) - 2.
func FractalTreePoints(depth int) int {
	if depth <= 0 {
		return 0
	}
	return 1<<(depth+1) - 2
}

// FractalTree grows a binary branching tree from origin. Each level emits one
// segment of length depth*scale along heading (degrees), then branches twice
// from the segment tip at heading-20 and heading+20 with depth-1.
//
// The result is a line list: points 2k and 2k+1 are the ends of segment k,
// in depth-first order with the left branch first.
func FractalTree(origin Point, heading float64, depth int, scale float64) Polygon {
	out := make(Polygon, 0, FractalTreePoints(min(depth, 20)))
	return growBranch(out, origin, heading, depth, scale)
}

const branchSpread = 20.0

func growBranch(out Polygon, from Point, heading float64, depth int, scale float64) Polygon {
	if depth <= 0 {
		return out
	}
	rad := mgl64.DegToRad(heading)
	length := float64(depth) * scale
	tip := Point{
		X: from.X + math.Cos(rad)*length,
		Y: from.Y + math.Sin(rad)*length,
	}
	out = append(out, from, tip)
	out = growBranch(out, tip, heading-branchSpread, depth-1, scale)
	out = growBranch(out, tip, heading+branchSpread, depth-1, scale)
	return out
}
