// Package storage provides SQLite-based persistence for run progress and
// high scores. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/bmkoscak/halloween-haunt/internal/haunt"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Name      string
	Score     int
	Level     int
	CreatedAt time.Time
}

// TopScoreLimit is how many entries the high score table keeps.
const TopScoreLimit = 5

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
		CREATE TABLE IF NOT EXISTS save_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			health INTEGER NOT NULL,
			unlocked TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(score DESC, created_at ASC);
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

// SaveProgress writes the single save slot, replacing any previous run.
func (s *Store) SaveProgress(save haunt.SaveState) error {
	_, err := s.db.Exec(
		`INSERT INTO save_state (id, level, score, health, unlocked, updated_at)
		 VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   level = excluded.level,
		   score = excluded.score,
		   health = excluded.health,
		   unlocked = excluded.unlocked,
		   updated_at = CURRENT_TIMESTAMP`,
		save.Level, save.Score, save.Health, encodeUnlocked(save.Unlocked),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Ensure Store satisfies the game's persistence port.
var _ haunt.ProgressSaver = (*Store)(nil)

// LoadProgress reads the save slot. With no save on disk it returns ok=false
// and a zero state, which the caller treats as a fresh run.
func (s *Store) LoadProgress() (haunt.SaveState, bool, error) {
	var save haunt.SaveState
	var unlocked string

	err := s.db.QueryRow(
		"SELECT level, score, health, unlocked FROM save_state WHERE id = 1",
	).Scan(&save.Level, &save.Score, &save.Health, &unlocked)

	if err == sql.ErrNoRows {
		return haunt.SaveState{}, false, nil
	}
	if err != nil {
		return haunt.SaveState{}, false, fmt.Errorf("storage: cannot load progress: %w", err)
	}

	save.Unlocked = decodeUnlocked(unlocked)
	return save, true, nil
}

// ClearProgress deletes the save slot.
func (s *Store) ClearProgress() error {
	if _, err := s.db.Exec("DELETE FROM save_state WHERE id = 1"); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}

// SubmitHighScore records a finished run and trims the table back to the top
// entries. Ties keep the earlier submission ahead.
func (s *Store) SubmitHighScore(name string, score, level int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO high_scores (name, score, level) VALUES (?, ?, ?)",
		name, score, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save high score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = s.db.Exec(
		`DELETE FROM high_scores WHERE id NOT IN (
		   SELECT id FROM high_scores
		   ORDER BY score DESC, created_at ASC, id ASC
		   LIMIT ?
		 )`,
		TopScoreLimit,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot trim high scores: %w", err)
	}

	return id, nil
}

// TopScores retrieves the high score table, best first.
func (s *Store) TopScores() ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, score, level, created_at
		 FROM high_scores
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		TopScoreLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best recorded score, or 0 with an empty table.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM high_scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores empties the high score table.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// encodeUnlocked flattens the unlocked power-up kinds to a comma list.
func encodeUnlocked(kinds []haunt.EffectKind) string {
	if len(kinds) == 0 {
		return ""
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = strconv.Itoa(int(k))
	}
	return strings.Join(parts, ",")
}

// decodeUnlocked parses the comma list back. Unknown or malformed entries are
// dropped rather than failing the whole load.
func decodeUnlocked(raw string) []haunt.EffectKind {
	if raw == "" {
		return nil
	}
	var kinds []haunt.EffectKind
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		k := haunt.EffectKind(n)
		if k < haunt.EffectMagnet || k > haunt.EffectCursed {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// parseTimestamp handles the driver returning either time.Time or a string.
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
