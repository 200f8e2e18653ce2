// Package runner adapts the side-scrolling simulation in package sim to the
// platform: it maps input frames onto the jump trigger, logs collisions,
// runs the obstacle spawner and rasterises the draw list into a core.Screen.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner/sim"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// ID is the registry key of the runner game.
const ID = "runner"

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultRunnerConfig()
	logger     = log.New(io.Discard)
)

// SetConfig sets the configuration used by subsequent Resets.
func SetConfig(cfg config.RunnerConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

func currentConfig() config.RunnerConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SetLogger replaces the package logger. A nil logger discards output.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func currentLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

// Game implements registry.Game and registry.Background for the runner.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.RunnerConfig
	log      *log.Logger
	queue    *sim.SpawnQueue // shared with the spawner goroutine
	spawner  *sim.Spawner
	world    *sim.World
	renderer *Renderer
	paused   bool
}

// New creates a runner game. Nothing runs until Reset and Run are called.
func New() *Game {
	return &Game{queue: sim.NewSpawnQueue()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Runner"
}

// Reset starts a fresh world. The spawn queue and spawner survive resets so
// a running spawner keeps feeding the new world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = currentConfig()
	g.log = currentLogger()

	g.world = sim.NewWorld(runtime.TickRate, g.queue)
	g.paused = false

	g.renderer = NewRenderer()
	g.renderer.Theme = ThemeFromConfig(g.cfg.Theme)
	g.renderer.ShowCursor = g.cfg.Display.ShowCursor

	if g.spawner == nil {
		g.spawner = sim.NewSpawner(g.queue, runtime.Seed)
		l := g.log
		g.spawner.OnWave = func(wave int) {
			l.Debug("wave posted", "wave", wave)
		}
	}

	g.log.Info("world reset", "fps", runtime.TickRate, "seed", runtime.Seed)
}

// Run drives the obstacle spawner until ctx is done. Reset must be called
// first.
func (g *Game) Run(ctx context.Context) error {
	if g.spawner == nil {
		return errors.New("runner: Run called before Reset")
	}
	return g.spawner.Run(ctx)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	report := g.world.Step(g.simInput(in))

	for _, c := range report.Collisions {
		g.log.Info("collision", "kind", c.Kind, "tick", c.Tick, "x", c.Position.X, "y", c.Position.Y)
	}
	if report.Spawned > 0 {
		g.log.Debug("obstacles admitted", "count", report.Spawned, "tick", report.Tick)
	}

	return core.StepResult{State: g.State(), Collisions: len(report.Collisions)}
}

// simInput maps platform actions and the pointer onto the simulation input.
func (g *Game) simInput(in core.InputFrame) sim.Input {
	out := sim.Input{
		JumpHeld: in.Has(core.ActionCharge),
		Jump:     in.Has(core.ActionJump),
	}
	if p := in.Pointer; p != nil {
		vp := NewViewport(p.Cols, p.Rows)
		if vp.Valid() {
			pt := vp.ToWorld(p.X, p.Y)
			out.Cursor = &pt
		}
	}
	return out
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	g.renderer.Draw(dst, g.world.Frame())

	if g.cfg.Display.ShowStats {
		st := g.State()
		stats := fmt.Sprintf(" tick %d  obstacles %d  hits %d ", st.Tick, st.Obstacles, st.Collisions)
		dst.DrawText(1, 0, stats)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := utf8.RuneCountInString(title)
	subtitleW := utf8.RuneCountInString(subtitle)

	boxW := core.Max(titleW, subtitleW) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-titleW)/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-subtitleW)/2, box.Y+3, subtitle)
}

// State returns the current session counters.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	stats := g.world.Stats()
	return core.GameState{
		Tick:       g.world.Clock().Tick,
		Obstacles:  len(g.world.Obstacles()),
		Spawned:    stats.Spawned,
		Collisions: stats.Collisions,
		Culled:     stats.Culled,
		Paused:     g.paused,
	}
}

// Config returns the configuration applied by the last Reset.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

var _ registry.Background = (*Game)(nil)
