package sim

// Pose is the sprite the player shows. Its String form is the key used to
// look the sprite up in a catalog.
type Pose int

const (
	PoseRun0 Pose = iota
	PoseRun1
	PoseCrouch0
	PoseCrouch1
	PoseJump
)

// String returns the sprite name for the pose.
func (p Pose) String() string {
	switch p {
	case PoseRun0:
		return "run0"
	case PoseRun1:
		return "run1"
	case PoseCrouch0:
		return "crouch0"
	case PoseCrouch1:
		return "crouch1"
	case PoseJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Poses lists every pose, in declaration order.
func Poses() []Pose {
	return []Pose{PoseRun0, PoseRun1, PoseCrouch0, PoseCrouch1, PoseJump}
}

// animated returns the other frame of a two-frame cycle.
// Jump has no cycle and is returned unchanged.
func (p Pose) animated() Pose {
	switch p {
	case PoseRun0:
		return PoseRun1
	case PoseRun1:
		return PoseRun0
	case PoseCrouch0:
		return PoseCrouch1
	case PoseCrouch1:
		return PoseCrouch0
	default:
		return p
	}
}

// crouched maps a run frame to its crouch frame.
func (p Pose) crouched() Pose {
	switch p {
	case PoseRun0:
		return PoseCrouch0
	case PoseRun1:
		return PoseCrouch1
	default:
		return p
	}
}

// standing maps a crouch frame back to its run frame.
func (p Pose) standing() Pose {
	switch p {
	case PoseCrouch0:
		return PoseRun0
	case PoseCrouch1:
		return PoseRun1
	default:
		return p
	}
}
