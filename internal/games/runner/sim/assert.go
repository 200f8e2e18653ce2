package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/geom"
)

// assertFinite panics when a physics result is NaN or infinite. Such a value
// is a programming error and must never reach a renderer.
func assertFinite(what string, pos geom.Point, vel geom.Vector2D) {
	if !checkInvariants {
		return
	}
	if !pos.IsFinite() || !vel.IsFinite() {
		panic(fmt.Sprintf("sim: non-finite %s: position=%v velocity=%v", what, pos, vel))
	}
}
