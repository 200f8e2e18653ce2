package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/geom"
)

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Palette of the scene.
var (
	ColorSkyBottom = RGB{0.0470588, 0.192157, 0.4}
	ColorSkyTop    = RGB{0.992157, 0.490196, 0.00392157}
	ColorGround    = RGB{0.392157, 0.247059, 0.0470588}
	ColorStripe    = RGB{0.278431, 0.392157, 0.0470588}
	ColorPlayer    = RGB{0.403922, 0.560784, 0}
	ColorCloud     = RGB{0.662745, 0.662745, 0.662745}
	ColorTree      = RGB{0.392157, 0.247059, 0.0470588}
	ColorCursor    = RGB{1, 1, 0}
)

// Ground stripe layout.
const (
	StripeCount   = 27
	stripeSpacing = 20
)

// PlayerTexCoords maps the player box corners (BL, TL, TR, BR) to texture
// coordinates. Sprites face left; this winding mirrors them to face right.
// v = 0 is the top row of the sprite.
var PlayerTexCoords = [4]geom.Point{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}}

// Fill is a solid convex polygon.
type Fill struct {
	Points geom.Polygon
	Color  RGB
}

// Gradient is a quad shaded from Bottom at its lower edge to Top at its
// upper edge.
type Gradient struct {
	Points geom.Polygon
	Bottom RGB
	Top    RGB
}

// SpriteDraw places a named sprite on the player box.
type SpriteDraw struct {
	Sprite    string
	Box       geom.Polygon
	TexCoords [4]geom.Point
	Tint      RGB
}

// ShapeDraw is an obstacle outline. Closed shapes are filled polygons; open
// ones are line lists where edge i (even i) joins point i and (i+1) mod N.
type ShapeDraw struct {
	Kind   Kind
	Points geom.Polygon
	Closed bool
	Color  RGB
}

// Frame is the draw list for one tick, in painting order: background,
// ground, stripes, cursor text, player, obstacles.
type Frame struct {
	Width, Height float64
	Tick          uint64

	Background Gradient
	Ground     Fill
	Stripes    []Fill
	Player     SpriteDraw
	Obstacles  []ShapeDraw

	// Cursor is the pointer position for the debug overlay, nil when unknown.
	Cursor *geom.Point
}

// CursorLabel formats the cursor the way the overlay prints it.
func (f Frame) CursorLabel() (string, bool) {
	if f.Cursor == nil {
		return "", false
	}
	return fmt.Sprintf("(%.3f,%.3f)", f.Cursor.X, f.Cursor.Y), true
}

// Frame builds the draw list for the current state. Obstacle points are
// copied so the frame stays valid after later ticks.
func (w *World) Frame() Frame {
	f := Frame{
		Width:  ViewportWidth,
		Height: ViewportHeight,
		Tick:   w.clock.Tick,
		Background: Gradient{
			Points: geom.Polygon{
				{X: 0, Y: 0}, {X: ViewportWidth, Y: 0},
				{X: ViewportWidth, Y: ViewportHeight}, {X: 0, Y: ViewportHeight},
			},
			Bottom: ColorSkyBottom,
			Top:    ColorSkyTop,
		},
		Ground: Fill{
			Points: geom.Polygon{
				{X: 0, Y: 0}, {X: ViewportWidth, Y: 0},
				{X: ViewportWidth, Y: w.clock.FloorY}, {X: 0, Y: w.clock.FloorY},
			},
			Color: ColorGround,
		},
		Stripes: groundStripes(w.clock.Tick, w.clock.FloorY),
		Player: SpriteDraw{
			Sprite:    w.player.Pose.String(),
			Box:       append(geom.Polygon(nil), w.player.Shape...),
			TexCoords: PlayerTexCoords,
			Tint:      ColorPlayer,
		},
		Obstacles: make([]ShapeDraw, 0, len(w.obstacles)),
	}

	if w.cursor != nil {
		c := *w.cursor
		f.Cursor = &c
	}

	for _, o := range w.obstacles {
		d := ShapeDraw{
			Kind:   o.Kind,
			Points: append(geom.Polygon(nil), o.Points...),
			Closed: o.Kind == KindCloud,
			Color:  ColorCloud,
		}
		if o.Kind == KindTree {
			d.Color = ColorTree
		}
		f.Obstacles = append(f.Obstacles, d)
	}
	return f
}

// groundStripes returns the slanted stripes across the ground band, shifted
// left by the tick so the ground appears to scroll.
func groundStripes(tick uint64, top float64) []Fill {
	stripes := make([]Fill, StripeCount)
	shift := int(tick % stripeSpacing)
	for i := range stripes {
		dx := float64((i*stripeSpacing - shift) * 2)
		stripes[i] = Fill{
			Points: geom.Polygon{
				{X: dx + 30, Y: top},
				{X: dx - 20, Y: 0},
				{X: dx - 10, Y: 0},
				{X: dx + 40, Y: top},
			},
			Color: ColorStripe,
		}
	}
	return stripes
}
