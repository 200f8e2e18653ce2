// Package sim is the runner's simulation core: the player jump state
// machine, obstacle lifecycle, collision resolution and the fixed-tick loop
// that orders them. It has no rendering or terminal dependencies; renderers
// read a Frame after each Step.
package sim

import "github.com/vovakirdan/tui-runner/internal/geom"

// Input is what the input source reports for one tick.
type Input struct {
	JumpHeld bool        // Trigger level, sampled once per tick
	Jump     bool        // Explicit jump request (a tap) this tick
	Cursor   *geom.Point // Pointer in viewport units, nil when unknown
}

// Collision records an obstacle removed because it hit the player.
type Collision struct {
	Kind     Kind
	Position geom.Point
	Tick     uint64
}

// StepReport summarizes what changed during one tick.
type StepReport struct {
	Tick       uint64
	Collisions []Collision
	Culled     int
	Spawned    int
}

// Stats are running totals for a session.
type Stats struct {
	Spawned    int
	Collisions int
	Culled     int
}

// World owns every entity of a session. It is not safe for concurrent use;
// other goroutines hand it obstacles through its SpawnQueue.
type World struct {
	clock     Clock
	player    Player
	obstacles []Obstacle
	queue     *SpawnQueue
	cursor    *geom.Point
	stats     Stats
}

// NewWorld creates a world ticking at fps. Obstacles posted to queue enter
// the world at the end of the next Step. A nil queue gets a fresh one.
func NewWorld(fps int, queue *SpawnQueue) *World {
	if queue == nil {
		queue = NewSpawnQueue()
	}
	clock := NewClock(fps)
	return &World{
		clock:     clock,
		player:    NewPlayer(clock.FloorY),
		obstacles: make([]Obstacle, 0, 16),
		queue:     queue,
	}
}

// Step advances the simulation by one tick:
// player, tick counter, obstacle motion, collisions, culling, then spawns.
func (w *World) Step(in Input) StepReport {
	w.cursor = in.Cursor

	w.player.update(in, &w.clock)
	w.clock.Tick++

	report := StepReport{Tick: w.clock.Tick}

	for i := range w.obstacles {
		w.obstacles[i].Move()
	}

	hitbox := w.player.Hitbox()
	w.removeIf(func(o *Obstacle) bool {
		if !geom.Intersects(hitbox, o.Shape()) {
			return false
		}
		report.Collisions = append(report.Collisions, Collision{
			Kind:     o.Kind,
			Position: o.Position,
			Tick:     w.clock.Tick,
		})
		return true
	})

	report.Culled = w.removeIf(func(o *Obstacle) bool {
		return o.Offscreen()
	})

	report.Spawned = w.Spawn(w.queue.Drain()...)

	w.stats.Collisions += len(report.Collisions)
	w.stats.Culled += report.Culled
	return report
}

// Spawn adds obstacles immediately and returns how many were added.
func (w *World) Spawn(obs ...Obstacle) int {
	w.obstacles = append(w.obstacles, obs...)
	w.stats.Spawned += len(obs)
	return len(obs)
}

// removeIf filters obstacles in place, visiting each exactly once, and
// returns how many were removed.
func (w *World) removeIf(drop func(o *Obstacle) bool) int {
	kept := w.obstacles[:0]
	for i := range w.obstacles {
		if drop(&w.obstacles[i]) {
			continue
		}
		kept = append(kept, w.obstacles[i])
	}
	removed := len(w.obstacles) - len(kept)
	clear(w.obstacles[len(kept):])
	w.obstacles = kept
	return removed
}

// Clock returns a copy of the simulation clock.
func (w *World) Clock() Clock {
	return w.clock
}

// Player returns a copy of the player.
func (w *World) Player() Player {
	return w.player
}

// Obstacles returns the active obstacles. The slice is owned by the world
// and is only valid until the next Step or Spawn.
func (w *World) Obstacles() []Obstacle {
	return w.obstacles
}

// Stats returns the running totals.
func (w *World) Stats() Stats {
	return w.stats
}

// Queue returns the queue the world drains each tick.
func (w *World) Queue() *SpawnQueue {
	return w.queue
}
