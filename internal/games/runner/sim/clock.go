package sim

import "github.com/vovakirdan/tui-runner/internal/geom"

// Viewport is the logical coordinate space gameplay runs in, independent of
// the terminal size. Origin is bottom-left, y grows upward.
const (
	ViewportWidth  = 1000.0
	ViewportHeight = 450.0
)

// Simulation constants.
const (
	DefaultFPS = 60

	// timeScale multiplies the frame period into simulated seconds.
	timeScale = 5.0

	FloorY   = 80.0
	GravityY = -15.0

	// PoseCycleTicks is how often the run and crouch frames alternate.
	PoseCycleTicks = 30
)

// Clock is the per-session simulation state shared by every system.
type Clock struct {
	Tick uint64 // Ticks completed

	// HoldStart is the tick at which the jump trigger was last seen up.
	// The trigger counts as held across a tick boundary once Tick > HoldStart.
	HoldStart uint64

	FloorY   float64
	Gravity  geom.Vector2D
	Timestep float64 // Simulated seconds per tick
}

// NewClock returns a clock for the given frame rate. A non-positive rate
// falls back to DefaultFPS.
func NewClock(fps int) Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Clock{
		FloorY:   FloorY,
		Gravity:  geom.Vec(0, GravityY),
		Timestep: timeScale / float64(fps),
	}
}

// HeldAcrossTick reports whether the jump trigger has stayed down across at
// least one tick boundary.
func (c Clock) HeldAcrossTick() bool {
	return c.Tick > c.HoldStart
}
