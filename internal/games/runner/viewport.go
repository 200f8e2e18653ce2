package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner/sim"
	"github.com/vovakirdan/tui-runner/internal/geom"
)

// Viewport maps world units (origin bottom-left, y up) onto a grid of
// terminal cells (origin top-left, y down).
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

// NewViewport covers the whole logical scene with cols x rows cells.
func NewViewport(cols, rows int) Viewport {
	return Viewport{
		Cols:   cols,
		Rows:   rows,
		Width:  sim.ViewportWidth,
		Height: sim.ViewportHeight,
	}
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool {
	return v.Cols > 0 && v.Rows > 0 && v.Width > 0 && v.Height > 0
}

// ToCell converts a world point to fractional cell coordinates.
func (v Viewport) ToCell(p geom.Point) core.PointF {
	return core.PointF{
		X: p.X * float64(v.Cols) / v.Width,
		Y: (v.Height - p.Y) * float64(v.Rows) / v.Height,
	}
}

// CellOf returns the cell containing a world point.
func (v Viewport) CellOf(p geom.Point) (int, int) {
	c := v.ToCell(p)
	return int(math.Floor(c.X)), int(math.Floor(c.Y))
}

// ToWorld returns the world position of a cell's center.
func (v Viewport) ToWorld(col, row int) geom.Point {
	return geom.Point{
		X: (float64(col) + 0.5) * v.Width / float64(v.Cols),
		Y: v.Height - (float64(row)+0.5)*v.Height/float64(v.Rows),
	}
}

// Project converts a polygon into cell space.
func (v Viewport) Project(poly geom.Polygon) []core.PointF {
	out := make([]core.PointF, len(poly))
	for i, p := range poly {
		out[i] = v.ToCell(p)
	}
	return out
}
