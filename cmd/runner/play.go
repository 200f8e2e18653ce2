package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a runner session.

Controls:
  Space      - Hold to crouch and charge, release to jump
  Up/W/K     - Jump
  Mouse      - Show the world coordinates under the pointer
  P/Esc      - Pause
  R          - Restart
  Ctrl+S     - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C   - Quit

Examples:
  runner play
  runner play --seed 42 --fps 30
  runner play --config ./my-runner.yaml --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}

	logger, closer, err := openLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	runner.SetConfig(cfg)
	runner.SetLogger(logger)

	game, err := registry.Create(runner.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{
		HoldWindow: cfg.Input.HoldWindow(),
		ShowHelp:   cfg.Display.ShowHelp,
		Logger:     logger,
	}

	if cfg.Journal.Enabled {
		dbPath, pathErr := expandHome(flagDBPath)
		if pathErr != nil {
			return pathErr
		}
		store, openErr := storage.Open(dbPath)
		if openErr != nil {
			// Continue without the journal - the game still works
			logger.Warn("could not open journal", "path", dbPath, "error", openErr)
			fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", openErr)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, game, runtime, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
