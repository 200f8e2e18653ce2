package geom

import "math"

// epsilon absorbs rounding in the orientation and on-segment tests.
const epsilon = 1e-9

// Shape is a point list together with its edge convention.
//
// A closed shape connects point i to point (i+1) mod N and has an interior.
// An open shape is a line list: edge k connects point 2k to point 2k+1
// (mod N, so an odd trailing point pairs with the first one) and has no
// interior.
type Shape struct {
	Points Polygon
	Closed bool
}

// ClosedShape wraps a polygon whose last point connects back to the first.
func ClosedShape(p Polygon) Shape {
	return Shape{Points: p, Closed: true}
}

// LineShape wraps a line list of segment endpoint pairs.
func LineShape(p Polygon) Shape {
	return Shape{Points: p}
}

// EdgeCount returns the number of edges of the shape.
func (s Shape) EdgeCount() int {
	n := len(s.Points)
	if n < 2 {
		return 0
	}
	if s.Closed {
		return n
	}
	return (n + 1) / 2
}

// Edge returns the end points of edge i.
func (s Shape) Edge(i int) (Point, Point) {
	n := len(s.Points)
	if s.Closed {
		return s.Points[i], s.Points[(i+1)%n]
	}
	return s.Points[2*i], s.Points[(2*i+1)%n]
}

// Intersects reports whether two shapes overlap. Touching counts as overlap.
//
// The test is exact for any simple polygon and line list: two shapes
// overlap when an edge of one meets an edge of the other, or when a vertex
// of one lies inside the other (closed shapes only). Shapes with fewer than
// two points never overlap anything.
func Intersects(a, b Shape) bool {
	if a.EdgeCount() == 0 || b.EdgeCount() == 0 {
		return false
	}
	if !a.Points.Bounds().Overlaps(b.Points.Bounds()) {
		return false
	}

	for i, n := 0, a.EdgeCount(); i < n; i++ {
		p1, p2 := a.Edge(i)
		for j, m := 0, b.EdgeCount(); j < m; j++ {
			q1, q2 := b.Edge(j)
			if SegmentsIntersect(p1, p2, q1, q2) {
				return true
			}
		}
	}

	if a.Closed && anyInside(a.Points, b.Points) {
		return true
	}
	if b.Closed && anyInside(b.Points, a.Points) {
		return true
	}
	return false
}

func anyInside(poly, pts Polygon) bool {
	for _, pt := range pts {
		if Contains(poly, pt) {
			return true
		}
	}
	return false
}

// SegmentsIntersect reports whether segment p1-p2 meets segment q1-q2,
// including shared end points and collinear overlap.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// Contains reports whether pt lies strictly inside the closed polygon using
// the even-odd rule. Points on the boundary may go either way; Intersects
// catches them through the edge test. Polygons with fewer than three points
// contain nothing.
func Contains(poly Polygon, pt Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			cross := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < cross {
				inside = !inside
			}
		}
	}
	return inside
}

// orient returns the sign of the turn o->a->b: 1 counter-clockwise,
// -1 clockwise, 0 collinear.
func orient(o, a, b Point) int {
	oa := a.mgl().Sub(o.mgl())
	ob := b.mgl().Sub(o.mgl())
	c := oa.X()*ob.Y() - oa.Y()*ob.X()
	if math.Abs(c) <= epsilon {
		return 0
	}
	if c > 0 {
		return 1
	}
	return -1
}

// onSegment reports whether collinear point q lies between a and b.
func onSegment(a, b, q Point) bool {
	qa := a.mgl().Sub(q.mgl())
	qb := b.mgl().Sub(q.mgl())
	return qa.Dot(qb) <= epsilon
}
