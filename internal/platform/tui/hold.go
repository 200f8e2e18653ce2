package tui

import "time"

// HoldTrigger turns discrete key events into a level signal. Terminals
// report presses and auto-repeats but no releases, so each event keeps the
// trigger held for one window and silence releases it.
type HoldTrigger struct {
	window time.Duration
	until  time.Time
}

// NewHoldTrigger creates a trigger that stays held for window after each press.
func NewHoldTrigger(window time.Duration) HoldTrigger {
	return HoldTrigger{window: window}
}

// Press records a key event at now.
func (h *HoldTrigger) Press(now time.Time) {
	if end := now.Add(h.window); end.After(h.until) {
		h.until = end
	}
}

// Held reports whether the trigger is down at now. A zero window still
// holds for the instant of the press.
func (h HoldTrigger) Held(now time.Time) bool {
	return !h.until.IsZero() && !now.After(h.until)
}

// Release drops the trigger immediately.
func (h *HoldTrigger) Release() {
	h.until = time.Time{}
}
