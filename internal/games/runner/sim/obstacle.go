package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/geom"
)

// Kind tells the obstacle variants apart.
type Kind int

const (
	KindCloud Kind = iota
	KindTree
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCloud:
		return "cloud"
	case KindTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Spawn and cull parameters.
const (
	CloudSpawnX   = 1020.0
	CloudMinY     = 20
	CloudMaxY     = 320
	CloudMinSpeed = 1
	CloudMaxSpeed = 5
	CloudSides    = 32
	CloudRadiusX  = 30.0
	CloudRadiusY  = 20.0

	TreeSpawnX  = 1100.0
	TreeSpawnY  = 25.0
	TreeSpeed   = 3.0
	TreeHeading = 90.0
	TreeDepth   = 9
	TreeScale   = 2.0

	// CullX is the left boundary; an obstacle whose position passes it is
	// removed.
	CullX = -15.0
)

// Obstacle is a moving polygon the player must avoid. Points are in world
// coordinates and move together with Position.
type Obstacle struct {
	Kind     Kind
	Position geom.Point
	Velocity geom.Vector2D
	Points   geom.Polygon
}

// NewCloudAt builds a cloud centered on pos.
func NewCloudAt(pos geom.Point, vel geom.Vector2D) Obstacle {
	return Obstacle{
		Kind:     KindCloud,
		Position: pos,
		Velocity: vel,
		Points:   geom.NGon(pos, CloudSides, CloudRadiusX, CloudRadiusY),
	}
}

// NewCloud builds a cloud off the right edge at a random height and speed.
func NewCloud(rng *rand.Rand) Obstacle {
	y := float64(CloudMinY + rng.Intn(CloudMaxY-CloudMinY+1))
	speed := float64(CloudMinSpeed + rng.Intn(CloudMaxSpeed-CloudMinSpeed+1))
	return NewCloudAt(geom.Pt(CloudSpawnX, y), geom.Vec(-speed, 0))
}

// NewTreeAt grows a tree rooted at anchor.
func NewTreeAt(anchor geom.Point, vel geom.Vector2D) Obstacle {
	return Obstacle{
		Kind:     KindTree,
		Position: anchor,
		Velocity: vel,
		Points:   geom.FractalTree(anchor, TreeHeading, TreeDepth, TreeScale),
	}
}

// NewTree grows a tree at the fixed spawn anchor.
func NewTree() Obstacle {
	return NewTreeAt(geom.Pt(TreeSpawnX, TreeSpawnY), geom.Vec(-TreeSpeed, 0))
}

// Move translates the obstacle by its velocity.
func (o *Obstacle) Move() {
	o.Position = o.Position.Translate(o.Velocity)
	for i := range o.Points {
		o.Points[i] = o.Points[i].Translate(o.Velocity)
	}
}

// Shape returns the collision shape. Clouds are closed polygons; trees are
// line lists of their branch segments.
func (o *Obstacle) Shape() geom.Shape {
	if o.Kind == KindTree {
		return geom.LineShape(o.Points)
	}
	return geom.ClosedShape(o.Points)
}

// Offscreen reports whether the obstacle has left past the left boundary.
func (o *Obstacle) Offscreen() bool {
	return o.Position.X < CullX
}
