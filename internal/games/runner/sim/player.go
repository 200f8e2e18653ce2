package sim

import "github.com/vovakirdan/tui-runner/internal/geom"

// Player dimensions and launch speeds.
const (
	PlayerX = 200.0

	DefaultWidth  = 60
	DefaultHeight = 60
	CrouchWidth   = 46
	CrouchHeight  = 44

	NormalJumpSpeed = 45.0
	SuperJumpSpeed  = 60.0
)

// JumpState tells whether the player is on the floor.
type JumpState int

const (
	Grounded JumpState = iota
	Airborne
)

// String returns a human-readable name for the state.
func (s JumpState) String() string {
	if s == Airborne {
		return "airborne"
	}
	return "grounded"
}

// JumpKind selects the launch speed of the next jump.
type JumpKind int

const (
	JumpNormal JumpKind = iota
	JumpSuper
)

// String returns a human-readable name for the kind.
func (k JumpKind) String() string {
	if k == JumpSuper {
		return "super"
	}
	return "normal"
}

// Player is the runner. Shape is derived from Position, Width and Height and
// is rebuilt by resize; nothing else writes it.
type Player struct {
	Position     geom.Point // Box center
	Width        int
	Height       int
	Shape        geom.Polygon // BL, TL, TR, BR
	State        JumpState
	Kind         JumpKind
	JumpVelocity geom.Vector2D
	Pose         Pose
	SpaceHeld    bool // Jump trigger level seen on the previous tick
}

// NewPlayer places a grounded player standing on floorY.
func NewPlayer(floorY float64) Player {
	p := Player{
		Position: geom.Pt(PlayerX, floorY+DefaultHeight),
		Pose:     PoseRun0,
	}
	p.resize(DefaultWidth, DefaultHeight)
	return p
}

// Hitbox returns the collision shape of the player.
func (p *Player) Hitbox() geom.Shape {
	return geom.ClosedShape(p.Shape)
}

// Grounded reports whether the player is on the floor.
func (p *Player) Grounded() bool {
	return p.State == Grounded
}

// resize sets the box size and regenerates the shape.
func (p *Player) resize(w, h int) {
	p.Width = w
	p.Height = h
	p.refit()
}

func (p *Player) refit() {
	p.Shape = geom.BoundingBox(p.Position, p.Width, p.Height)
}

// launch leaves the floor with the speed of the current jump kind.
func (p *Player) launch() {
	speed := NormalJumpSpeed
	if p.Kind == JumpSuper {
		speed = SuperJumpSpeed
	}
	p.State = Airborne
	p.JumpVelocity = geom.Vec(0, speed)
}

// update advances the jump state machine by one tick. It reads but does not
// advance the clock tick; it owns clock.HoldStart.
func (p *Player) update(in Input, clock *Clock) {
	// A jump is requested by an explicit tap or by letting go of a held
	// trigger. The kind is the one charged up to the previous tick.
	released := p.SpaceHeld && !in.JumpHeld
	if (in.Jump || released) && p.Grounded() {
		p.launch()
	}
	p.SpaceHeld = in.JumpHeld

	if !in.JumpHeld {
		clock.HoldStart = clock.Tick
	}

	if clock.HeldAcrossTick() {
		p.Kind = JumpSuper
		p.resize(CrouchWidth, CrouchHeight)
		p.Pose = p.Pose.crouched()
	} else {
		p.Kind = JumpNormal
		if p.Width != DefaultWidth || p.Height != DefaultHeight {
			p.resize(DefaultWidth, DefaultHeight)
		}
		p.Pose = p.Pose.standing()
	}

	if p.State == Airborne {
		dt := clock.Timestep
		// new_position = old_position + dt * velocity
		// new_velocity = old_velocity + dt * gravity
		p.Position.Y += dt * p.JumpVelocity.Y
		p.JumpVelocity = p.JumpVelocity.Add(geom.Vec(0, dt*clock.Gravity.Y))
		p.resize(DefaultWidth, DefaultHeight)
		p.Pose = PoseJump
		assertFinite("player", p.Position, p.JumpVelocity)
	}

	if p.Position.Y-float64(p.Height) < clock.FloorY {
		p.Position.Y = clock.FloorY + float64(p.Height)
		p.JumpVelocity = geom.Vector2D{}
		p.State = Grounded
		p.resize(DefaultWidth, DefaultHeight)
		p.Pose = PoseRun0
	}

	if clock.Tick%PoseCycleTicks == 0 {
		p.Pose = p.Pose.animated()
	}
}
