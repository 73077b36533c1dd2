// Package storage provides SQLite-based persistence for drill results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dmerkulov/tui-reflex/internal/trial"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry represents one finished (or abandoned) level run.
type ResultEntry struct {
	ID           int64
	DrillID      string
	Level        int
	Score        int
	CorrectCount int
	TotalTrials  int
	Accuracy     float64
	Perfect      bool
	Passed       bool
	Completed    bool
	Reward       int
	DurationSecs int
	CreatedAt    time.Time
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			drill_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			correct_count INTEGER NOT NULL DEFAULT 0,
			total_trials INTEGER NOT NULL DEFAULT 0,
			accuracy REAL NOT NULL DEFAULT 0,
			perfect INTEGER NOT NULL DEFAULT 0,
			passed INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			reward INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_drill_id ON results(drill_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(drill_id, score DESC);
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

// SaveResult records a finished level run for the given drill and level.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(drillID string, level int, res trial.LevelResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO results
		 (drill_id, level, score, correct_count, total_trials, accuracy, perfect, passed, completed, reward, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		drillID,
		level,
		res.TotalScore,
		res.CorrectCount,
		res.TotalTrials,
		res.Accuracy,
		boolToInt(res.Perfect),
		boolToInt(res.Passed),
		boolToInt(res.Completed),
		res.Reward,
		int(res.Duration.Seconds()),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopResults retrieves the top N results for the given drill.
// Results are ordered by score descending.
func (s *Store) TopResults(drillID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, drill_id, level, score, correct_count, total_trials, accuracy,
		        perfect, passed, completed, reward, duration_secs, created_at
		 FROM results
		 WHERE drill_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		drillID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// BestScore returns the highest score recorded for the given drill.
// Returns 0 if no results exist.
func (s *Store) BestScore(drillID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE drill_id = ?",
		drillID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// HighestPassedLevel returns the deepest level the player has cleared for a
// drill, or 0 when nothing has been passed yet. Used to pick where a new
// run should start.
func (s *Store) HighestPassedLevel(drillID string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM results WHERE drill_id = ? AND passed = 1",
		drillID,
	).Scan(&level)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query passed levels: %w", err)
	}

	if !level.Valid {
		return 0, nil
	}

	return int(level.Int64), nil
}

// ClearResults deletes all results for the given drill.
func (s *Store) ClearResults(drillID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE drill_id = ?", drillID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// DrillStats contains aggregated statistics for a drill.
type DrillStats struct {
	DrillID     string
	RunsCount   int
	BestScore   int
	AvgAccuracy float64
	TotalReward int64
	LastPlayed  time.Time
}

// GetDrillStats retrieves aggregated statistics for a specific drill.
func (s *Store) GetDrillStats(drillID string) (*DrillStats, error) {
	stats := &DrillStats{DrillID: drillID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(accuracy), 0), COALESCE(SUM(reward), 0)
		 FROM results WHERE drill_id = ?`,
		drillID,
	).Scan(&stats.RunsCount, &stats.BestScore, &stats.AvgAccuracy, &stats.TotalReward)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get drill stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE drill_id = ? ORDER BY created_at DESC LIMIT 1`,
		drillID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllDrillStats retrieves statistics for all drills that have been played.
func (s *Store) GetAllDrillStats() (map[string]*DrillStats, error) {
	rows, err := s.db.Query(
		`SELECT drill_id, COUNT(*), MAX(score), AVG(accuracy), SUM(reward), MAX(created_at)
		 FROM results
		 GROUP BY drill_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all drill stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DrillStats)
	for rows.Next() {
		var d DrillStats
		var lastPlayed any
		if err := rows.Scan(&d.DrillID, &d.RunsCount, &d.BestScore, &d.AvgAccuracy, &d.TotalReward, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		d.LastPlayed = parseTimestamp(lastPlayed)
		stats[d.DrillID] = &d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// scanResults drains the rows of a results query.
func scanResults(rows *sql.Rows) ([]ResultEntry, error) {
	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		var perfect, passed, completed int
		if err := rows.Scan(
			&e.ID,
			&e.DrillID,
			&e.Level,
			&e.Score,
			&e.CorrectCount,
			&e.TotalTrials,
			&e.Accuracy,
			&perfect,
			&passed,
			&completed,
			&e.Reward,
			&e.DurationSecs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		e.Perfect = perfect != 0
		e.Passed = passed != 0
		e.Completed = completed != 0
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles both time.Time and string forms of DATETIME columns.
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
