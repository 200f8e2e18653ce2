package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-runner/internal/geom"
)

var (
	idle = Input{}
	hold = Input{JumpHeld: true}
	tap  = Input{Jump: true}
)

func TestNewPlayer(t *testing.T) {
	w := NewWorld(60, nil)
	p := w.Player()

	assert.Equal(t, geom.Pt(200, 140), p.Position)
	assert.Equal(t, DefaultWidth, p.Width)
	assert.Equal(t, DefaultHeight, p.Height)
	assert.Equal(t, Grounded, p.State)
	assert.Equal(t, JumpNormal, p.Kind)
	assert.Equal(t, PoseRun0, p.Pose)
	assert.Equal(t, geom.BoundingBox(p.Position, 60, 60), p.Shape)
}

func TestTimestep(t *testing.T) {
	assert.InDelta(t, 5.0/60.0, NewClock(60).Timestep, 1e-12)
	assert.InDelta(t, 5.0/30.0, NewClock(30).Timestep, 1e-12)
	assert.InDelta(t, 5.0/60.0, NewClock(0).Timestep, 1e-12, "non-positive rate falls back to 60")
}

func TestHoldPromotesToSuper(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(idle)
	w.Step(hold)
	w.Step(hold)

	p := w.Player()
	assert.Equal(t, JumpSuper, p.Kind)
	assert.Equal(t, CrouchWidth, p.Width)
	assert.Equal(t, CrouchHeight, p.Height)
	assert.Equal(t, Grounded, p.State)
	assert.Equal(t, geom.BoundingBox(p.Position, CrouchWidth, CrouchHeight), p.Shape)
	assert.Contains(t, []Pose{PoseCrouch0, PoseCrouch1}, p.Pose)
}

func TestCrouchPoseFollowsRunPose(t *testing.T) {
	w := NewWorld(60, nil)

	// Tick 0 flips run0 to run1, so the first crouch is crouch1.
	w.Step(idle)
	require.Equal(t, PoseRun1, w.Player().Pose)
	w.Step(hold)
	assert.Equal(t, PoseCrouch1, w.Player().Pose)

	// Keep crouching through tick 30: crouch frames alternate too.
	for w.Clock().Tick <= 30 {
		w.Step(hold)
	}
	assert.Equal(t, PoseCrouch0, w.Player().Pose)
}

func TestReleaseRestoresDefaults(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(idle)
	for i := 0; i < 5; i++ {
		w.Step(hold)
	}
	require.Equal(t, JumpSuper, w.Player().Kind)

	w.Step(idle)

	p := w.Player()
	assert.Equal(t, JumpNormal, p.Kind)
	assert.Equal(t, DefaultWidth, p.Width)
	assert.Equal(t, DefaultHeight, p.Height)
	assert.Len(t, p.Shape, 4)
}

func TestIdleIsAlwaysNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := NewWorld(60, nil)

	for i := 0; i < 2000; i++ {
		in := Input{JumpHeld: rng.Intn(3) == 0, Jump: rng.Intn(20) == 0}
		w.Step(in)
		if !in.JumpHeld {
			p := w.Player()
			require.Equal(t, JumpNormal, p.Kind)
			require.Equal(t, DefaultWidth, p.Width)
			require.Equal(t, DefaultHeight, p.Height)
		}
	}
}

func TestReleaseAfterChargeLaunchesSuperJump(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(idle)
	w.Step(hold)
	w.Step(hold)

	w.Step(idle)

	p := w.Player()
	assert.Equal(t, Airborne, p.State)
	assert.Equal(t, PoseJump, p.Pose)
	assert.InDelta(t, 140+5.0/60.0*SuperJumpSpeed, p.Position.Y, 1e-9)
	assert.InDelta(t, SuperJumpSpeed+5.0/60.0*GravityY, p.JumpVelocity.Y, 1e-9)
}

func TestTapLaunchesNormalJump(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(tap)

	p := w.Player()
	assert.Equal(t, Airborne, p.State)
	assert.Equal(t, PoseJump, p.Pose)
	assert.InDelta(t, 140+5.0/60.0*NormalJumpSpeed, p.Position.Y, 1e-9)
	assert.InDelta(t, NormalJumpSpeed-1.25, p.JumpVelocity.Y, 1e-9)
}

func TestTapWhileAirborneIsIgnored(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(tap)
	w.Step(idle)
	before := w.Player().JumpVelocity.Y

	w.Step(tap)

	assert.InDelta(t, before-1.25, w.Player().JumpVelocity.Y, 1e-9)
}

func TestAirborneKeepsDefaultBox(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(tap)
	for i := 0; i < 5; i++ {
		w.Step(hold)
		p := w.Player()
		require.Equal(t, Airborne, p.State)
		assert.Equal(t, DefaultWidth, p.Width)
		assert.Equal(t, DefaultHeight, p.Height)
		assert.Equal(t, PoseJump, p.Pose)
	}
}

func jumpApex(t *testing.T, w *World) (apex float64, ticks int) {
	t.Helper()
	apex = w.Player().Position.Y
	for w.Player().State == Airborne {
		ticks++
		require.Less(t, ticks, 1000, "player never landed")
		w.Step(idle)
		apex = math.Max(apex, w.Player().Position.Y)
	}
	return apex, ticks
}

func TestJumpLandsOnFloor(t *testing.T) {
	w := NewWorld(60, nil)
	w.Step(tap)
	normalApex, airTicks := jumpApex(t, w)

	p := w.Player()
	assert.Equal(t, Grounded, p.State)
	assert.Equal(t, FloorY+DefaultHeight, p.Position.Y)
	assert.Greater(t, airTicks, 60)

	w2 := NewWorld(60, nil)
	w2.Step(idle)
	w2.Step(hold)
	w2.Step(hold)
	w2.Step(idle)
	superApex, _ := jumpApex(t, w2)

	assert.Greater(t, superApex, normalApex)
}

func TestNeverBelowFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	w := NewWorld(60, nil)

	for i := 0; i < 10000; i++ {
		w.Step(Input{JumpHeld: rng.Intn(4) == 0, Jump: rng.Intn(10) == 0})
		p := w.Player()
		require.GreaterOrEqual(t, p.Position.Y, FloorY)
		require.GreaterOrEqual(t, p.Position.Y-float64(DefaultHeight), FloorY-1e-9)
	}
}

func TestPoseTogglesOnlyOnCycleTicks(t *testing.T) {
	w := NewWorld(60, nil)

	for i := 0; i < 200; i++ {
		before := w.Player().Pose
		tick := w.Clock().Tick
		w.Step(idle)
		after := w.Player().Pose

		if tick%PoseCycleTicks == 0 {
			assert.NotEqual(t, before, after, "tick %d should toggle", tick)
		} else {
			assert.Equal(t, before, after, "tick %d should be stable", tick)
		}
	}
}

func TestNonFinitePhysicsPanics(t *testing.T) {
	if !checkInvariants {
		t.Skip("assertions compiled out")
	}
	w := NewWorld(60, nil)
	w.player.State = Airborne
	w.player.JumpVelocity = geom.Vec(0, math.NaN())

	assert.Panics(t, func() { w.Step(idle) })
}

func TestPoseNames(t *testing.T) {
	names := make([]string, 0, len(Poses()))
	for _, p := range Poses() {
		names = append(names, p.String())
	}
	assert.Equal(t, []string{"run0", "run1", "crouch0", "crouch1", "jump"}, names)
	assert.Equal(t, "unknown", Pose(42).String())
}
