package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Options configures a play session.
type Options struct {
	// HoldWindow is how long one space key event keeps the trigger held.
	HoldWindow time.Duration
	// ShowHelp reserves the bottom line for the key help bar.
	ShowHelp bool
	// Store receives one journal row per session; nil disables the journal.
	Store *storage.Store
	// Logger receives session events; nil discards them.
	Logger *log.Logger
}

// Run plays one session: it resets the game, runs the Bubble Tea program
// and any background work of the game side by side, and journals the
// session once both have stopped. Cancelling ctx ends the session.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sessionID := storage.NewSessionID()
	started := time.Now()
	game.Reset(cfg)
	logger.Info("session started", "id", sessionID, "game", game.ID(), "seed", cfg.Seed)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)

	if bg, ok := game.(registry.Background); ok {
		g.Go(func() error {
			return bg.Run(gctx)
		})
	}

	g.Go(func() error {
		// The program exiting ends the session for everyone else.
		defer stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
			return nil
		}
		return err
	})

	err := g.Wait()
	ended := time.Now()

	state := game.State()
	logger.Info("session ended",
		"id", sessionID,
		"ticks", state.Tick,
		"collisions", state.Collisions,
		"duration", ended.Sub(started).Round(time.Millisecond),
	)

	if opts.Store != nil {
		if jerr := journal(opts.Store, game.ID(), sessionID, started, ended, state); jerr != nil {
			logger.Warn("could not journal session", "id", sessionID, "error", jerr)
		}
	}

	return err
}

// journal records a finished session. Sessions that never ticked are skipped.
func journal(store *storage.Store, gameID, id string, started, ended time.Time, state core.GameState) error {
	if state.Tick == 0 {
		return nil
	}
	_, err := store.SaveSession(storage.Session{
		ID:         id,
		GameID:     gameID,
		StartedAt:  started,
		EndedAt:    ended,
		Ticks:      state.Tick,
		Spawned:    state.Spawned,
		Collisions: state.Collisions,
		Culled:     state.Culled,
	})
	return err
}
