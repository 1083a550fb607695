// Package storage provides SQLite-based persistence for battleship match
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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

// Winner values stored in the matches table.
const (
	WinnerPlayer = "player"
	WinnerAI     = "ai"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match represents a single finished match.
type Match struct {
	ID          string // UUID, assigned by SaveMatch when empty
	Winner      string // WinnerPlayer or WinnerAI
	PlayerShots int
	PlayerHits  int
	AIShots     int
	AIHits      int
	Difficulty  string
	Seed        int64
	Duration    time.Duration
	CreatedAt   time.Time
}

// PlayerAccuracy returns the player's hit ratio in [0, 1].
func (m Match) PlayerAccuracy() float64 {
	if m.PlayerShots == 0 {
		return 0
	}
	return float64(m.PlayerHits) / float64(m.PlayerShots)
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			winner TEXT NOT NULL,
			player_shots INTEGER NOT NULL DEFAULT 0,
			player_hits INTEGER NOT NULL DEFAULT 0,
			ai_shots INTEGER NOT NULL DEFAULT 0,
			ai_hits INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			seed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_difficulty ON matches(difficulty);
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

// SaveMatch records a finished match and returns its ID.
func (s *Store) SaveMatch(m Match) (string, error) {
	if m.Winner != WinnerPlayer && m.Winner != WinnerAI {
		return "", fmt.Errorf("storage: cannot save match: unknown winner %q", m.Winner)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Difficulty == "" {
		m.Difficulty = "normal"
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (id, winner, player_shots, player_hits, ai_shots, ai_hits, difficulty, seed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Winner,
		m.PlayerShots,
		m.PlayerHits,
		m.AIShots,
		m.AIHits,
		m.Difficulty,
		m.Seed,
		m.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return m.ID, nil
}

const matchColumns = `id, winner, player_shots, player_hits, ai_shots, ai_hits,
	difficulty, seed, duration_ms, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (Match, error) {
	var m Match
	var durationMS int64
	var createdAt any
	err := row.Scan(
		&m.ID,
		&m.Winner,
		&m.PlayerShots,
		&m.PlayerHits,
		&m.AIShots,
		&m.AIHits,
		&m.Difficulty,
		&m.Seed,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return m, err
	}
	m.Duration = time.Duration(durationMS) * time.Millisecond
	m.CreatedAt = parseTimestamp(createdAt)
	return m, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its ID. Returns nil if it does not exist.
func (s *Store) MatchByID(id string) (*Match, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// ClearMatches deletes the whole match history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// MatchStats contains aggregated statistics over a set of matches.
type MatchStats struct {
	Difficulty   string // Empty for totals across all difficulties
	Games        int
	PlayerWins   int
	AIWins       int
	TotalShots   int
	TotalHits    int
	BestWinShots int // Fewest player shots in a win, 0 if no wins
	AvgAIShots   float64
	LastPlayed   time.Time
}

// WinRate returns the player's share of wins in [0, 1].
func (st MatchStats) WinRate() float64 {
	if st.Games == 0 {
		return 0
	}
	return float64(st.PlayerWins) / float64(st.Games)
}

// Accuracy returns the player's overall hit ratio in [0, 1].
func (st MatchStats) Accuracy() float64 {
	if st.TotalShots == 0 {
		return 0
	}
	return float64(st.TotalHits) / float64(st.TotalShots)
}

const statsColumns = `COUNT(*),
	COALESCE(SUM(CASE WHEN winner = 'player' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN winner = 'ai' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(player_shots), 0),
	COALESCE(SUM(player_hits), 0),
	COALESCE(MIN(CASE WHEN winner = 'player' THEN player_shots END), 0),
	COALESCE(AVG(ai_shots), 0),
	MAX(created_at)`

// Stats retrieves totals across the whole history.
func (s *Store) Stats() (*MatchStats, error) {
	stats := &MatchStats{}
	var lastPlayed any
	err := s.db.QueryRow(`SELECT `+statsColumns+` FROM matches`).Scan(
		&stats.Games,
		&stats.PlayerWins,
		&stats.AIWins,
		&stats.TotalShots,
		&stats.TotalHits,
		&stats.BestWinShots,
		&stats.AvgAIShots,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// StatsByDifficulty retrieves statistics for every difficulty that has
// been played.
func (s *Store) StatsByDifficulty() (map[string]*MatchStats, error) {
	rows, err := s.db.Query(`SELECT difficulty, ` + statsColumns + ` FROM matches GROUP BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get difficulty stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MatchStats)
	for rows.Next() {
		var st MatchStats
		var lastPlayed any
		if err := rows.Scan(
			&st.Difficulty,
			&st.Games,
			&st.PlayerWins,
			&st.AIWins,
			&st.TotalShots,
			&st.TotalHits,
			&st.BestWinShots,
			&st.AvgAIShots,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTimestamp(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
