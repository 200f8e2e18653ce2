package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagSessionsTUI   bool
	flagSessionsLimit int
	flagSessionsClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show the session journal",
	Long: `Display the most recent journaled sessions with their tick, spawn,
collision and cull counts.

Examples:
  runner sessions
  runner sessions --limit 25
  runner sessions --tui
  runner sessions --clear`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagSessionsTUI, "tui", false, "Browse the journal interactively")
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&flagSessionsClear, "clear", false, "Delete every journaled session")
}

func runSessions(cmd *cobra.Command, args []string) error {
	game, err := registry.Create(runner.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	dbPath, err := expandHome(flagDBPath)
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer store.Close()

	if flagSessionsClear {
		if err := store.ClearSessions(game.ID()); err != nil {
			return fmt.Errorf("clearing journal: %w", err)
		}
		fmt.Println("Journal cleared.")
		return nil
	}

	if flagSessionsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunSessions(store, game.ID(), game.Title(), width, height)
	}

	sessions, err := store.RecentSessions(game.ID(), flagSessionsLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Printf("Recent Sessions - %s\n", game.Title())
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to journal the first one!")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, col := range tui.SessionColumns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for _, s := range sessions {
		for i, cell := range tui.SessionRow(s) {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totals, err := store.GameTotals(game.ID())
	if err == nil && totals.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Total: %d sessions, %d ticks, %d hits, last played %s\n",
			totals.Sessions, totals.Ticks, totals.Collisions,
			totals.LastPlayed.Local().Format(time.DateTime))
	}
	return nil
}
