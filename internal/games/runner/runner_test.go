package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner/sim"
	"github.com/vovakirdan/tui-runner/internal/geom"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// 100x45 cells makes every cell 10x10 world units.
const testCols, testRows = 100, 45

func TestViewportMapping(t *testing.T) {
	vp := NewViewport(testCols, testRows)
	require.True(t, vp.Valid())

	assert.Equal(t, core.PointF{X: 0, Y: 0}, vp.ToCell(geom.Pt(0, sim.ViewportHeight)))
	assert.Equal(t, core.PointF{X: testCols, Y: testRows}, vp.ToCell(geom.Pt(sim.ViewportWidth, 0)))

	col, row := vp.CellOf(geom.Pt(500, 300))
	assert.Equal(t, 50, col)
	assert.Equal(t, 15, row)

	assert.Equal(t, geom.Pt(505, 295), vp.ToWorld(50, 15))

	assert.False(t, NewViewport(0, 10).Valid())
	assert.False(t, NewViewport(10, 0).Valid())
}

func TestDefaultSpritesCoverEveryPose(t *testing.T) {
	sheet := DefaultSprites()
	for _, p := range sim.Poses() {
		sp, ok := sheet.Lookup(p.String())
		require.True(t, ok, "missing sprite for %s", p)
		w, h := sp.Size()
		assert.Positive(t, w)
		assert.Positive(t, h)
	}
	_, ok := sheet.Lookup("nope")
	assert.False(t, ok)
}

func TestSpriteSampling(t *testing.T) {
	sheet, err := LoadSprites([]byte(`
sprites:
  run0: ["ab", "cd"]
  run1: ["x"]
  crouch0: ["x"]
  crouch1: ["x"]
  jump: ["xy", "z"]
`))
	require.NoError(t, err)

	sp, _ := sheet.Lookup("run0")
	assert.Equal(t, 'a', sp.At(0, 0))
	assert.Equal(t, 'b', sp.At(0.99, 0))
	assert.Equal(t, 'c', sp.At(0, 0.75))
	assert.Equal(t, 'd', sp.At(1, 1), "upper bound clamps to the last texel")
	assert.Equal(t, 'a', sp.At(-3, -3))

	jump, _ := sheet.Lookup("jump")
	assert.Equal(t, ' ', jump.At(0.9, 0.9), "short rows are transparent past their end")
}

func TestLoadSpritesErrors(t *testing.T) {
	_, err := LoadSprites([]byte("sprites: [\n"))
	assert.Error(t, err)

	_, err = LoadSprites([]byte("sprites:\n  run0: [\"x\"]\n"))
	assert.ErrorContains(t, err, "run1")

	_, err = LoadSprites([]byte(`
sprites:
  run0: [""]
  run1: ["x"]
  crouch0: ["x"]
  crouch1: ["x"]
  jump: ["x"]
`))
	assert.ErrorContains(t, err, "empty")
}

func TestTexCoordMirrorsHorizontally(t *testing.T) {
	tests := []struct {
		s, t, u, v float64
	}{
		{0, 0, 1, 1}, // bottom-left of the box samples bottom-right of the sprite
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{1, 0, 0, 1},
		{0.25, 0.5, 0.75, 0.5},
	}
	for _, tc := range tests {
		u, v := texCoord(sim.PlayerTexCoords, tc.s, tc.t)
		assert.InDelta(t, tc.u, u, 1e-12)
		assert.InDelta(t, tc.v, v, 1e-12)
	}
}

func countCells(s *core.Screen, match func(core.Cell) bool) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if match(s.GetCell(x, y)) {
				n++
			}
		}
	}
	return n
}

func TestRendererDrawsScene(t *testing.T) {
	w := sim.NewWorld(60, nil)
	w.Spawn(
		sim.NewCloudAt(geom.Pt(500, 300), geom.Vec(0, 0)),
		sim.NewTreeAt(geom.Pt(700, 25), geom.Vec(0, 0)),
	)
	f := w.Frame()

	dst := core.NewScreen(testCols, testRows)
	NewRenderer().Draw(dst, f)

	// Sky gradient: the top row is close to the top color.
	top := core.Color(mix(sim.ColorSkyBottom, sim.ColorSkyTop, 445.0/450.0).Hex())
	assert.Equal(t, top, dst.GetCell(99, 0).Bg)

	ground := core.Color(sim.ColorGround.Hex())
	groundCells := countCells(dst, func(c core.Cell) bool { return c.Bg == ground })
	assert.Positive(t, groundCells)
	for x := 0; x < testCols; x++ {
		assert.NotEqual(t, ground, dst.GetCell(x, 36).Bg, "row 36 lies above the floor")
	}

	assert.Positive(t, countCells(dst, func(c core.Cell) bool { return c.Rune == DefaultStripeGlyph }))

	player := core.Color(sim.ColorPlayer.Hex())
	assert.Positive(t, countCells(dst, func(c core.Cell) bool { return c.Color == player && c.Rune != ' ' }))

	assert.Equal(t, DefaultCloudGlyph, dst.Get(50, 15))
	assert.Positive(t, countCells(dst, func(c core.Cell) bool { return c.Rune == DefaultTreeGlyph }))
}

func TestRendererPlayerStaysInsideBox(t *testing.T) {
	w := sim.NewWorld(60, nil)
	dst := core.NewScreen(testCols, testRows)
	NewRenderer().Draw(dst, w.Frame())

	player := core.Color(sim.ColorPlayer.Hex())
	for y := 0; y < testRows; y++ {
		for x := 0; x < testCols; x++ {
			if dst.GetCell(x, y).Color != player {
				continue
			}
			// Box spans x 170..230, y 110..170.
			assert.True(t, x >= 17 && x <= 22 && y >= 28 && y <= 34, "player glyph at (%d, %d)", x, y)
		}
	}
}

type emptyCatalog struct{}

func (emptyCatalog) Lookup(string) (Sprite, bool) { return Sprite{}, false }

func TestRendererMissingSpriteFillsBox(t *testing.T) {
	w := sim.NewWorld(60, nil)
	r := &Renderer{Sprites: emptyCatalog{}}
	dst := core.NewScreen(testCols, testRows)
	r.Draw(dst, w.Frame())

	// The 60x60 box covers 6x6 cell centers.
	assert.Equal(t, 36, countCells(dst, func(c core.Cell) bool { return c.Rune == MissingSpriteGlyph }))
}

func TestRendererCursorLabel(t *testing.T) {
	w := sim.NewWorld(60, nil)
	cursor := geom.Pt(1, 2.5)
	w.Step(sim.Input{Cursor: &cursor})

	dst := core.NewScreen(testCols, testRows)
	r := NewRenderer()
	r.Draw(dst, w.Frame())
	assert.True(t, strings.HasPrefix(dst.Row(testRows-1), "(1.000,2.500)"))
	assert.Equal(t, core.Color(sim.ColorCursor.Hex()), dst.GetCell(0, testRows-1).Color)

	dst.Clear()
	r.ShowCursor = false
	r.Draw(dst, w.Frame())
	assert.False(t, strings.Contains(dst.Row(testRows-1), "(1.000"))
}

func TestRendererThemeOverrides(t *testing.T) {
	w := sim.NewWorld(60, nil)
	w.Spawn(sim.NewCloudAt(geom.Pt(500, 300), geom.Vec(0, 0)))

	r := NewRenderer()
	r.Theme = ThemeFromConfig(config.ThemeConfig{
		SkyTop:     "#ffffff",
		SkyBottom:  "#ffffff",
		Cloud:      "#ff0000",
		CloudGlyph: "@",
	})
	dst := core.NewScreen(testCols, testRows)
	r.Draw(dst, w.Frame())

	assert.Equal(t, core.Color("#ffffff"), dst.GetCell(99, 0).Bg)
	c := dst.GetCell(50, 15)
	assert.Equal(t, '@', c.Rune)
	assert.Equal(t, core.Color("#ff0000"), c.Color)
}

func TestRendererZeroSizeScreen(t *testing.T) {
	w := sim.NewWorld(60, nil)
	assert.NotPanics(t, func() {
		NewRenderer().Draw(core.NewScreen(0, 0), w.Frame())
	})
}

func newTestGame(t *testing.T) (*Game, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(log.New(&buf))
	SetConfig(config.DefaultRunnerConfig())
	t.Cleanup(func() { SetLogger(nil) })

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: testCols, ScreenH: testRows, TickRate: 60, Seed: 7})
	return g, &buf
}

func TestGameRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Runner", g.Title())
	_, ok := g.(registry.Background)
	assert.True(t, ok)
}

func TestGameStepAdvancesTick(t *testing.T) {
	g, _ := newTestGame(t)
	for i := 0; i < 3; i++ {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, uint64(3), g.State().Tick)
}

func TestGamePauseFreezesWorld(t *testing.T) {
	g, _ := newTestGame(t)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	res := g.Step(pause)
	assert.True(t, res.State.Paused)
	g.Step(core.NewInputFrame())
	assert.Equal(t, uint64(0), g.State().Tick)

	// Queued obstacles wait for the resume.
	g.queue.Post(sim.NewCloudAt(geom.Pt(900, 300), geom.Vec(-1, 0)))
	g.Step(pause)
	assert.False(t, g.State().Paused)
	assert.Equal(t, 1, g.State().Obstacles)
}

func TestGameCollisionIsLoggedAndCounted(t *testing.T) {
	g, buf := newTestGame(t)

	g.queue.Post(sim.NewCloudAt(geom.Pt(sim.PlayerX, 140), geom.Vec(0, 0)))
	res := g.Step(core.NewInputFrame())
	assert.Equal(t, 0, res.Collisions)
	assert.Equal(t, 1, res.State.Spawned)

	res = g.Step(core.NewInputFrame())
	assert.Equal(t, 1, res.Collisions)
	assert.Equal(t, 1, res.State.Collisions)
	assert.Equal(t, 0, res.State.Obstacles)

	assert.Contains(t, buf.String(), "collision")
	assert.Contains(t, buf.String(), "kind=cloud")
}

func TestGameChargeAndJumpInputs(t *testing.T) {
	g, _ := newTestGame(t)

	hold := core.NewInputFrame()
	hold.Set(core.ActionCharge)
	g.Step(hold)
	g.Step(hold)
	assert.Equal(t, sim.JumpSuper, g.world.Player().Kind)

	g.Step(core.NewInputFrame())
	assert.Equal(t, sim.Airborne, g.world.Player().State)

	g2, _ := newTestGame(t)
	tap := core.NewInputFrame()
	tap.Set(core.ActionJump)
	g2.Step(tap)
	assert.Equal(t, sim.Airborne, g2.world.Player().State)
	assert.Equal(t, sim.JumpNormal, g2.world.Player().Kind)
}

func TestGamePointerBecomesCursor(t *testing.T) {
	g, _ := newTestGame(t)

	in := core.NewInputFrame()
	in.Pointer = &core.Pointer{X: 50, Y: 15, Cols: testCols, Rows: testRows}
	g.Step(in)

	f := g.world.Frame()
	require.NotNil(t, f.Cursor)
	assert.Equal(t, geom.Pt(505, 295), *f.Cursor)

	in.Pointer = &core.Pointer{X: 1, Y: 1}
	g.Step(in)
	assert.Nil(t, g.world.Frame().Cursor, "pointer without a screen size is ignored")
}

func TestGameRenderShowsStatsAndPause(t *testing.T) {
	g, _ := newTestGame(t)
	dst := core.NewScreen(testCols, testRows)

	g.Step(core.NewInputFrame())
	g.Render(dst)
	assert.Contains(t, dst.Row(0), "tick 1")

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	g.Render(dst)
	assert.Contains(t, dst.String(), "PAUSED")
}

func TestGameBeforeReset(t *testing.T) {
	g := New()
	assert.NotPanics(t, func() {
		g.Step(core.NewInputFrame())
		g.Render(core.NewScreen(10, 5))
	})
	assert.Equal(t, core.GameState{}, g.State())
	assert.Error(t, g.Run(context.Background()))
}

func TestGameRunStopsOnCancel(t *testing.T) {
	g, _ := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, g.Run(ctx))
}
