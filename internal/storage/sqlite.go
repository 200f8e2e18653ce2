// Package storage provides the SQLite session journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout keeps stored timestamps lexically sortable.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// Session is one journaled play session.
type Session struct {
	ID         string
	GameID     string
	StartedAt  time.Time
	EndedAt    time.Time
	Ticks      uint64
	Spawned    int
	Collisions int
	Culled     int
}

// Duration returns the wall-clock length of the session.
func (s Session) Duration() time.Duration {
	if s.EndedAt.Before(s.StartedAt) {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Totals aggregates every session of one game.
type Totals struct {
	GameID     string
	Sessions   int
	Ticks      uint64
	Collisions int
	LastPlayed time.Time
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			culled INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_started ON sessions(game_id, started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and returns its ID.
// An empty ID is replaced by NewSessionID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.GameID == "" {
		return "", errors.New("storage: session has no game id")
	}
	if sess.ID == "" {
		sess.ID = NewSessionID()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, game_id, started_at, ended_at, ticks, spawned, collisions, culled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.GameID,
		formatTime(sess.StartedAt),
		formatTime(sess.EndedAt),
		int64(sess.Ticks),
		sess.Spawned,
		sess.Collisions,
		sess.Culled,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

// SessionByID returns one session, or nil when it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, started_at, ended_at, ticks, spawned, collisions, culled
		 FROM sessions
		 WHERE id = ?`,
		id,
	)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions returns the latest sessions of a game, newest first.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, started_at, ended_at, ticks, spawned, collisions, culled
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY started_at DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// GameTotals aggregates all sessions of a game.
func (s *Store) GameTotals(gameID string) (*Totals, error) {
	totals := &Totals{GameID: gameID}

	var ticks int64
	var last sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(collisions), 0), MAX(started_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&totals.Sessions, &ticks, &totals.Collisions, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game totals: %w", err)
	}

	totals.Ticks = uint64(ticks)
	if last.Valid {
		totals.LastPlayed = parseTime(last.String)
	}
	return totals, nil
}

// ClearSessions deletes all sessions of a game.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var started, ended string
	var ticks int64
	if err := row.Scan(
		&sess.ID,
		&sess.GameID,
		&started,
		&ended,
		&ticks,
		&sess.Spawned,
		&sess.Collisions,
		&sess.Culled,
	); err != nil {
		return Session{}, err
	}
	sess.StartedAt = parseTime(started)
	sess.EndedAt = parseTime(ended)
	sess.Ticks = uint64(ticks)
	return sess, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
