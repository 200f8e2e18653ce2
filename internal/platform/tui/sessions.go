package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

// maxSessions bounds how many journal rows the browser loads.
const maxSessions = 100

// SessionsKeyMap defines the key bindings for the sessions browser.
type SessionsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for browsing the session journal.
type SessionsModel struct {
	store    *storage.Store
	gameID   string
	title    string
	sessions []storage.Session
	totals   *storage.Totals
	loadErr  error
	table    table.Model
	help     help.Model
	keys     SessionsKeyMap
	width    int
	height   int
	quitting bool
}

// NewSessionsModel creates a sessions browser for one game.
func NewSessionsModel(store *storage.Store, gameID, title string, width, height int) SessionsModel {
	h := help.New()
	h.ShowAll = false

	m := SessionsModel{
		store:  store,
		gameID: gameID,
		title:  title,
		keys:   DefaultSessionsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// SessionColumns are the journal columns shared by the table and plain output.
var SessionColumns = []string{"Started", "Length", "Ticks", "Spawned", "Hits", "Culled"}

// SessionRow formats one session in SessionColumns order.
func SessionRow(s storage.Session) []string {
	return []string{
		s.StartedAt.Local().Format("Jan 02 15:04"),
		s.Duration().Round(time.Second).String(),
		fmt.Sprintf("%d", s.Ticks),
		fmt.Sprintf("%d", s.Spawned),
		fmt.Sprintf("%d", s.Collisions),
		fmt.Sprintf("%d", s.Culled),
	}
}

// createTable creates a new table sized to the window.
func (m *SessionsModel) createTable() table.Model {
	widths := []int{14, 8, 8, 8, 6, 8}
	columns := make([]table.Column, len(SessionColumns))
	for i, title := range SessionColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, totals and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the journal and refreshes the table.
func (m *SessionsModel) load() {
	m.sessions, m.totals, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.sessions, m.loadErr = m.store.RecentSessions(m.gameID, maxSessions)
		if m.loadErr == nil {
			m.totals, m.loadErr = m.store.GameTotals(m.gameID)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded sessions.
func (m *SessionsModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row(SessionRow(s))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the sessions model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the sessions browser.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the sessions browser.
func (m SessionsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RECENT SESSIONS - "+m.title, m.width)))
	b.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(summaryStyle.Render(m.summary()))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary renders the totals line.
func (m SessionsModel) summary() string {
	switch {
	case m.loadErr != nil:
		return "Could not read the journal: " + m.loadErr.Error()
	case m.totals == nil || m.totals.Sessions == 0:
		return "No sessions journaled."
	}
	return fmt.Sprintf("%d sessions  |  %d ticks  |  %d hits  |  last played %s",
		m.totals.Sessions, m.totals.Ticks, m.totals.Collisions,
		m.totals.LastPlayed.Local().Format("Jan 02 15:04"))
}

// renderTableContent renders the table or empty message.
func (m SessionsModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a round to fill the journal!")
	}

	return m.table.View()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// RunSessions runs the interactive sessions browser.
func RunSessions(store *storage.Store, gameID, title string, width, height int) error {
	model := NewSessionsModel(store, gameID, title, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
