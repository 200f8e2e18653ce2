package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	showHelp   bool
	hold       HoldTrigger
	pointer    *core.Pointer
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for a game that has already been
// Reset with cfg.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	m := Model{
		game:       game,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		showHelp:   opts.ShowHelp,
		hold:       NewHoldTrigger(opts.HoldWindow),
		inputFrame: core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.playfieldHeight(cfg.ScreenH))
	m.help.Width = cfg.ScreenW
	return m
}

// playfieldHeight leaves a line for the help bar when it is shown.
func (m Model) playfieldHeight(h int) int {
	if m.showHelp {
		h--
	}
	return core.Max(h, 0)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionCharge:
		m.hold.Press(now)
	case core.ActionRestart:
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.hold.Release()
		m.inputFrame.Clear()
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse tracks the pointer over the playfield.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.X < 0 || msg.Y < 0 || msg.X >= m.screen.Width() || msg.Y >= m.screen.Height() {
		return m, nil
	}
	m.pointer = &core.Pointer{
		X:    msg.X,
		Y:    msg.Y,
		Cols: m.screen.Width(),
		Rows: m.screen.Height(),
	}
	return m, nil
}

// handleResize processes window resize events. The world is in logical
// units, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, m.playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	m.pointer = nil
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.hold.Held(now) {
		m.inputFrame.Set(core.ActionCharge)
	}
	m.inputFrame.Pointer = m.pointer

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	if m.showHelp {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		out += "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
	}
	return out
}
