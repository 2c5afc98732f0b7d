// Package storage provides SQLite-based persistence for finished snake rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is the number of rows returned when a caller passes no limit.
const DefaultLimit = 10

// Store manages the SQLite database connection for score persistence.
// It is safe for concurrent use; each SSH session shares one Store.
type Store struct {
	db *sql.DB
}

// Score is one finished round.
type Score struct {
	ID        int64     `json:"id"`
	BoardSize int       `json:"board_size"`
	Apples    int       `json:"apples"`
	SpeedTier int       `json:"speed_tier"` // Zero-based tier reached
	Player    string    `json:"player"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardStats aggregates all rounds played on one field size.
type BoardStats struct {
	BoardSize  int       `json:"board_size"`
	Rounds     int       `json:"rounds"`
	Best       int       `json:"best"`
	AvgApples  float64   `json:"avg_apples"`
	Total      int64     `json:"total_apples"`
	LastPlayed time.Time `json:"last_played"`
}

// Open creates or opens a SQLite database at the given path.
// A leading ~ is expanded to the home directory, parent directories are
// created and the schema is migrated.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			board_size INTEGER NOT NULL,
			apples INTEGER NOT NULL,
			speed_tier INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_board ON scores(board_size);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(board_size, apples DESC);
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

// SaveScore records a finished round and returns the ID of the new row.
func (s *Store) SaveScore(ctx context.Context, sc Score) (int64, error) {
	if sc.BoardSize <= 0 {
		return 0, fmt.Errorf("storage: invalid board size %d", sc.BoardSize)
	}
	if sc.Apples < 0 {
		return 0, fmt.Errorf("storage: invalid apple count %d", sc.Apples)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (board_size, apples, speed_tier, player, won) VALUES (?, ?, ?, ?, ?)",
		sc.BoardSize, sc.Apples, sc.SpeedTier, sc.Player, sc.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best rounds on the given field size, most apples
// first; ties go to the earlier round. A size of 0 covers every field size.
func (s *Store) TopScores(ctx context.Context, size, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `SELECT id, board_size, apples, speed_tier, player, won, created_at
		 FROM scores`
	args := []any{}
	if size > 0 {
		query += " WHERE board_size = ?"
		args = append(args, size)
	}
	query += " ORDER BY apples DESC, id ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Score
	for rows.Next() {
		var e Score
		var createdAt any
		if err := rows.Scan(&e.ID, &e.BoardSize, &e.Apples, &e.SpeedTier, &e.Player, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the most apples eaten in one round on the given field
// size, or 0 if nothing has been recorded.
func (s *Store) HighScore(ctx context.Context, size int) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(apples) FROM scores WHERE board_size = ?",
		size,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// ClearScores deletes the rounds recorded on the given field size,
// or every round when size is 0.
func (s *Store) ClearScores(ctx context.Context, size int) error {
	var err error
	if size > 0 {
		_, err = s.db.ExecContext(ctx, "DELETE FROM scores WHERE board_size = ?", size)
	} else {
		_, err = s.db.ExecContext(ctx, "DELETE FROM scores")
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats aggregates the rounds on one field size. A size with no rounds
// yields zero counts.
func (s *Store) Stats(ctx context.Context, size int) (*BoardStats, error) {
	stats := &BoardStats{BoardSize: size}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(apples), 0), COALESCE(AVG(apples), 0),
		        COALESCE(SUM(apples), 0), MAX(created_at)
		 FROM scores WHERE board_size = ?`,
		size,
	).Scan(&stats.Rounds, &stats.Best, &stats.AvgApples, &stats.Total, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get board stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats returns stats for every field size that has been played, keyed by size.
func (s *Store) AllStats(ctx context.Context) (map[int]*BoardStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT board_size, COUNT(*), MAX(apples), AVG(apples), SUM(apples), MAX(created_at)
		 FROM scores
		 GROUP BY board_size`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get board stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*BoardStats)
	for rows.Next() {
		var st BoardStats
		var lastPlayed any
		if err := rows.Scan(&st.BoardSize, &st.Rounds, &st.Best, &st.AvgApples, &st.Total, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.BoardSize] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("storage: ping failed: %w", err)
	}
	return nil
}

// parseTime handles the driver returning DATETIME columns as either
// time.Time or text.
func parseTime(v any) time.Time {
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
