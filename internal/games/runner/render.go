package runner

import (
	"math"
	"strconv"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner/sim"
	"github.com/vovakirdan/tui-runner/internal/geom"
)

// Glyphs used when the theme leaves them unset.
const (
	DefaultCloudGlyph  = '░'
	DefaultTreeGlyph   = '*'
	DefaultStripeGlyph = '╱'
	MissingSpriteGlyph = '█'
)

// Theme overrides the colors and glyphs carried by the draw list.
// Zero values keep what the frame asks for.
type Theme struct {
	SkyBottom core.Color
	SkyTop    core.Color
	Ground    core.Color
	Stripe    core.Color
	Player    core.Color
	Cloud     core.Color
	Tree      core.Color
	Cursor    core.Color

	CloudGlyph rune
	TreeGlyph  rune
}

// ThemeFromConfig converts the YAML theme section.
func ThemeFromConfig(c config.ThemeConfig) Theme {
	return Theme{
		SkyBottom:  core.Color(c.SkyBottom),
		SkyTop:     core.Color(c.SkyTop),
		Ground:     core.Color(c.Ground),
		Stripe:     core.Color(c.Stripe),
		Player:     core.Color(c.Player),
		Cloud:      core.Color(c.Cloud),
		Tree:       core.Color(c.Tree),
		Cursor:     core.Color(c.Cursor),
		CloudGlyph: firstRune(c.CloudGlyph),
		TreeGlyph:  firstRune(c.TreeGlyph),
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Renderer rasterises a sim.Frame into a terminal cell buffer.
type Renderer struct {
	Sprites    SpriteCatalog
	Theme      Theme
	ShowCursor bool
}

// NewRenderer creates a renderer with the embedded sprites and no overrides.
func NewRenderer() *Renderer {
	return &Renderer{
		Sprites:    DefaultSprites(),
		ShowCursor: true,
	}
}

// Draw paints the frame in draw-list order. The cursor label goes on top so
// it stays readable.
func (r *Renderer) Draw(dst *core.Screen, f sim.Frame) {
	vp := Viewport{Cols: dst.Width(), Rows: dst.Height(), Width: f.Width, Height: f.Height}
	if !vp.Valid() {
		return
	}

	r.drawGradient(dst, vp, f.Background)
	dst.FillPolygon(vp.Project(f.Ground.Points), 0, core.ColorDefault, pick(r.Theme.Ground, f.Ground.Color))
	for _, s := range f.Stripes {
		r.drawStripe(dst, vp, s)
	}
	r.drawPlayer(dst, vp, f.Player)
	for _, o := range f.Obstacles {
		r.drawObstacle(dst, vp, o)
	}

	if label, ok := f.CursorLabel(); ok && r.ShowCursor {
		dst.DrawTextWithColor(0, dst.Height()-1, label, pick(r.Theme.Cursor, sim.ColorCursor))
	}
}

// drawGradient shades every cell whose center lies in the gradient bounds,
// interpolating by world height.
func (r *Renderer) drawGradient(dst *core.Screen, vp Viewport, g sim.Gradient) {
	if len(g.Points) == 0 {
		return
	}
	bottom := overrideRGB(r.Theme.SkyBottom, g.Bottom)
	top := overrideRGB(r.Theme.SkyTop, g.Top)

	b := g.Points.Bounds()
	span := b.Max.Y - b.Min.Y
	for row := 0; row < vp.Rows; row++ {
		y := vp.ToWorld(0, row).Y
		if y < b.Min.Y || y > b.Max.Y {
			continue
		}
		t := 0.0
		if span > 0 {
			t = (y - b.Min.Y) / span
		}
		bg := core.Color(mix(bottom, top, t).Hex())
		for col := 0; col < vp.Cols; col++ {
			x := vp.ToWorld(col, row).X
			if x >= b.Min.X && x <= b.Max.X {
				dst.SetBackground(col, row, bg)
			}
		}
	}
}

// drawStripe fills the stripe background and draws its center line so it
// stays visible when the quad is narrower than a cell.
func (r *Renderer) drawStripe(dst *core.Screen, vp Viewport, s sim.Fill) {
	color := pick(r.Theme.Stripe, s.Color)
	dst.FillPolygon(vp.Project(s.Points), 0, core.ColorDefault, color)
	if len(s.Points) != 4 {
		return
	}
	top := midpoint(s.Points[0], s.Points[3])
	bottom := midpoint(s.Points[1], s.Points[2])
	x0, y0 := vp.CellOf(bottom)
	x1, y1 := vp.CellOf(top)
	// The top edge sits on the ground line; keep the stripe inside the band.
	if y1 < y0 {
		y1++
	}
	dst.DrawLine(x0, core.Min(y0, vp.Rows-1), x1, core.Min(y1, vp.Rows-1), DefaultStripeGlyph, color)
}

// drawPlayer maps the sprite onto the player box through its texture
// coordinates, bilinear across the BL, TL, TR, BR corners.
func (r *Renderer) drawPlayer(dst *core.Screen, vp Viewport, p sim.SpriteDraw) {
	if len(p.Box) != 4 {
		return
	}
	color := pick(r.Theme.Player, p.Tint)
	b := p.Box.Bounds()
	w, h := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	if w <= 0 || h <= 0 {
		return
	}

	var sprite Sprite
	found := false
	if r.Sprites != nil {
		sprite, found = r.Sprites.Lookup(p.Sprite)
	}

	x0, y0 := vp.CellOf(geom.Point{X: b.Min.X, Y: b.Max.Y})
	x1, y1 := vp.CellOf(geom.Point{X: b.Max.X, Y: b.Min.Y})
	cells := core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
	if !cells.Intersects(dst.Bounds()) {
		return
	}

	for row := cells.Y; row < cells.Bottom(); row++ {
		for col := cells.X; col < cells.Right(); col++ {
			c := vp.ToWorld(col, row)
			s := (c.X - b.Min.X) / w
			t := (c.Y - b.Min.Y) / h
			if s < 0 || s > 1 || t < 0 || t > 1 {
				continue
			}
			glyph := MissingSpriteGlyph
			if found {
				u, v := texCoord(p.TexCoords, s, t)
				glyph = sprite.At(u, v)
			}
			if glyph != ' ' {
				dst.SetWithColor(col, row, glyph, color)
			}
		}
	}
}

// texCoord interpolates corner texture coordinates at box position (s, t),
// s left to right and t bottom to top.
func texCoord(tc [4]geom.Point, s, t float64) (float64, float64) {
	bl, tl, tr, br := tc[0], tc[1], tc[2], tc[3]
	u := bl.X*(1-s)*(1-t) + br.X*s*(1-t) + tl.X*(1-s)*t + tr.X*s*t
	v := bl.Y*(1-s)*(1-t) + br.Y*s*(1-t) + tl.Y*(1-s)*t + tr.Y*s*t
	return u, v
}

func (r *Renderer) drawObstacle(dst *core.Screen, vp Viewport, o sim.ShapeDraw) {
	switch {
	case o.Closed:
		glyph := r.Theme.CloudGlyph
		if glyph == 0 {
			glyph = DefaultCloudGlyph
		}
		color := pick(r.Theme.Cloud, o.Color)
		pts := vp.Project(o.Points)
		dst.FillPolygon(pts, glyph, color, core.ColorDefault)
		// Shapes smaller than a cell still leave a mark.
		if len(o.Points) > 0 {
			cx, cy := vp.CellOf(centroid(o.Points))
			if dst.Get(cx, cy) != glyph {
				dst.SetWithColor(cx, cy, glyph, color)
			}
		}
	default:
		glyph := r.Theme.TreeGlyph
		if glyph == 0 {
			glyph = DefaultTreeGlyph
		}
		color := pick(r.Theme.Tree, o.Color)
		n := len(o.Points)
		if n < 2 {
			return
		}
		for i := 0; i < n; i += 2 {
			a, b := o.Points[i], o.Points[(i+1)%n]
			ax, ay := vp.CellOf(a)
			bx, by := vp.CellOf(b)
			dst.DrawLine(ax, ay, bx, by, glyph, color)
		}
	}
}

func pick(override core.Color, c sim.RGB) core.Color {
	if !override.IsDefault() {
		return override
	}
	return core.Color(c.Hex())
}

// overrideRGB returns the theme color when it parses as #rrggbb.
func overrideRGB(override core.Color, c sim.RGB) sim.RGB {
	s := string(override)
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c
	}
	return sim.RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

func mix(a, b sim.RGB, t float64) sim.RGB {
	t = math.Max(0, math.Min(1, t))
	return sim.RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

func midpoint(a, b geom.Point) geom.Point {
	return geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func centroid(poly geom.Polygon) geom.Point {
	var c geom.Point
	for _, p := range poly {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(poly))
	return geom.Point{X: c.X / n, Y: c.Y / n}
}
