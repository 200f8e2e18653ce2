// Package geom provides the float geometry used by the runner simulation:
// vectors and points in the logical viewport space, polygon generators and
// the polygon collision test.
//
// The package has no knowledge of entities or rendering. Every function is
// pure and returns fresh slices so callers may keep results without copying.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2D is a displacement in logical viewport units.
type Vector2D struct {
	X, Y float64
}

// Vec returns a Vector2D with the given components.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return fromMgl(v.mgl().Add(o.mgl()))
}

// Scale returns v multiplied by s.
func (v Vector2D) Scale(s float64) Vector2D {
	return fromMgl(v.mgl().Mul(s))
}

// IsFinite reports whether both components are finite numbers.
func (v Vector2D) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func (v Vector2D) mgl() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

func fromMgl(m mgl64.Vec2) Vector2D {
	return Vector2D{X: m.X(), Y: m.Y()}
}

// Point is a position in logical viewport units (origin bottom-left, y up).
type Point struct {
	X, Y float64
}

// Pt returns a Point at (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Translate returns p moved by d.
func (p Point) Translate(d Vector2D) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the displacement from o to p.
func (p Point) Sub(o Point) Vector2D {
	return Vector2D{X: p.X - o.X, Y: p.Y - o.Y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func (p Point) mgl() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
