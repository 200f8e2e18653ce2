package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets int
	inputs []core.InputFrame
	state  core.GameState
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	g.state.Tick++
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(g *fakeGame, opts Options) Model {
	cfg := core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1}
	g.Reset(cfg)
	return NewModel(g, cfg, opts)
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space charges", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionCharge, false},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w jumps", runeKey('w'), core.ActionJump, false},
		{"k jumps", runeKey('k'), core.ActionJump, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestHoldTrigger(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewHoldTrigger(500 * time.Millisecond)

	assert.False(t, h.Held(base), "never pressed")

	h.Press(base)
	assert.True(t, h.Held(base))
	assert.True(t, h.Held(base.Add(500*time.Millisecond)))
	assert.False(t, h.Held(base.Add(501*time.Millisecond)))

	// Auto-repeat extends the hold.
	h.Press(base.Add(400 * time.Millisecond))
	assert.True(t, h.Held(base.Add(800*time.Millisecond)))

	// An earlier event never shortens it.
	h.Press(base)
	assert.True(t, h.Held(base.Add(800*time.Millisecond)))

	h.Release()
	assert.False(t, h.Held(base.Add(100*time.Millisecond)))
}

func TestHoldTriggerZeroWindow(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewHoldTrigger(0)

	h.Press(base)
	assert.True(t, h.Held(base))
	assert.False(t, h.Held(base.Add(time.Nanosecond)))
}

func TestModelTickSendsHeldCharge(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Options{HoldWindow: time.Hour})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	require.NotNil(t, cmd, "tick must schedule the next tick")

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)

	require.Len(t, g.inputs, 2)
	assert.True(t, g.inputs[0].Has(core.ActionCharge))
	assert.True(t, g.inputs[1].Has(core.ActionCharge), "hold stays down inside the window")
	assert.Equal(t, uint64(2), m.State().Tick)
}

func TestModelJumpIsOneTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Options{})

	next, _ := m.Update(runeKey('w'))
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	_, _ = m.Update(TickMsg(time.Now()))

	require.Len(t, g.inputs, 2)
	assert.True(t, g.inputs[0].Has(core.ActionJump))
	assert.False(t, g.inputs[1].Has(core.ActionJump))
	assert.False(t, g.inputs[0].Has(core.ActionCharge))
}

func TestModelPointer(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Options{})

	next, _ := m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)

	require.Len(t, g.inputs, 1)
	require.NotNil(t, g.inputs[0].Pointer)
	assert.Equal(t, core.Pointer{X: 3, Y: 2, Cols: 20, Rows: 5}, *g.inputs[0].Pointer)

	// Outside the playfield is ignored.
	next, _ = m.Update(tea.MouseMsg{X: 40, Y: 2, Action: tea.MouseActionMotion})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	require.NotNil(t, g.inputs[1].Pointer)
	assert.Equal(t, 3, g.inputs[1].Pointer.X)

	// Resizing drops the stale pointer.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	m = next.(Model)
	_, _ = m.Update(TickMsg(time.Now()))
	assert.Nil(t, g.inputs[2].Pointer)
}

func TestModelRestartAndQuit(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Options{HoldWindow: time.Hour})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	next, _ = m.Update(runeKey('r'))
	m = next.(Model)
	assert.Equal(t, 2, g.resets)

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	require.Len(t, g.inputs, 1)
	assert.False(t, g.inputs[0].Has(core.ActionCharge), "restart releases the hold")

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelViewHelpBar(t *testing.T) {
	g := &fakeGame{}

	m := newTestModel(g, Options{})
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "fake"))

	wide := core.RuntimeConfig{ScreenW: 120, ScreenH: 5, TickRate: 60}
	m = NewModel(g, wide, Options{ShowHelp: true})
	lines = strings.Split(ansi.Strip(m.View()), "\n")
	require.Len(t, lines, 5, "help bar replaces the last playfield row")
	assert.Contains(t, lines[4], "jump")
	assert.Contains(t, lines[4], "quit")
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetWithColor(2, 0, 'c', core.RGB(255, 0, 0))
	s.SetBackground(3, 0, core.RGB(0, 0, 255))
	s.DrawText(0, 1, "xyz")

	out := ansi.Strip(RenderScreen(s))
	assert.Equal(t, "abc   \nxyz   ", out)
}

func TestStyleFor(t *testing.T) {
	plain := styleFor(cellStyle{})
	assert.Equal(t, "x", plain.Render("x"))

	colored := styleFor(cellStyle{fg: core.RGB(255, 0, 0), bg: core.RGB(0, 0, 0)})
	assert.Equal(t, "x", ansi.Strip(colored.Render("x")))
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestJournal(t *testing.T) {
	store := openTestStore(t)
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ended := started.Add(90 * time.Second)

	require.NoError(t, journal(store, "fake", "idle", started, ended, core.GameState{}))
	got, err := store.SessionByID("idle")
	require.NoError(t, err)
	assert.Nil(t, got, "sessions that never ticked are skipped")

	state := core.GameState{Tick: 120, Spawned: 9, Collisions: 2, Culled: 5}
	require.NoError(t, journal(store, "fake", "played", started, ended, state))

	got, err = store.SessionByID("played")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "fake", got.GameID)
	assert.Equal(t, uint64(120), got.Ticks)
	assert.Equal(t, 9, got.Spawned)
	assert.Equal(t, 2, got.Collisions)
	assert.Equal(t, 5, got.Culled)
	assert.Equal(t, 90*time.Second, got.Duration())
}

func TestSessionsModel(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		_, err := store.SaveSession(storage.Session{
			GameID:     "fake",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			EndedAt:    base.Add(time.Duration(i)*time.Hour + time.Minute),
			Ticks:      600,
			Collisions: 3,
		})
		require.NoError(t, err)
	}

	m := NewSessionsModel(store, "fake", "Fake", 80, 24)
	require.NoError(t, m.loadErr)
	assert.Len(t, m.sessions, 2)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "RECENT SESSIONS - Fake")
	assert.Contains(t, view, "2 sessions")
	assert.Contains(t, view, "1200 ticks")
	assert.Contains(t, view, "6 hits")

	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestSessionsModelEmpty(t *testing.T) {
	m := NewSessionsModel(nil, "fake", "Fake", 80, 24)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "No sessions journaled.")
	assert.Contains(t, view, "No sessions recorded yet.")
}

func TestSessionRow(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	row := SessionRow(storage.Session{
		StartedAt:  start,
		EndedAt:    start.Add(95 * time.Second),
		Ticks:      42,
		Spawned:    7,
		Collisions: 1,
		Culled:     4,
	})

	require.Len(t, row, len(SessionColumns))
	assert.Equal(t, []string{"1m35s", "42", "7", "1", "4"}, row[1:])
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	assert.Equal(t, " ░░", centerText("░░", 5))
}
