package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SalesEcho/internal/model"
)

// SQLiteRecorder persists render history and daily metrics to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS render_history (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			triggered_by     TEXT,
			mode             TEXT,
			lag_days         INTEGER,
			ticks            INTEGER,
			solo             TEXT,
			sample_rate      INTEGER,
			duration_seconds REAL,
			frames           INTEGER,
			peak_left        REAL,
			peak_right       REAL,
			output_path      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_render_ts ON render_history(timestamp)`,

		`CREATE TABLE IF NOT EXISTS daily_metrics (
			date       TEXT NOT NULL,
			source     TEXT NOT NULL,
			sessions   INTEGER,
			revenue    REAL,
			event      TEXT,
			fetched_at INTEGER,
			PRIMARY KEY (date, source)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRender(evt *RenderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO render_history
		(timestamp, triggered_by, mode, lag_days, ticks, solo, sample_rate, duration_seconds,
		 frames, peak_left, peak_right, output_path)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Trigger, string(evt.Mode), evt.LagDays, evt.Ticks, evt.Solo,
		evt.SampleRate, evt.DurationSeconds, evt.Frames, evt.PeakLeft, evt.PeakRight, evt.OutputPath,
	)
	return err
}

// RecordMetrics upserts one row per day so refetched days overwrite older values.
func (r *SQLiteRecorder) RecordMetrics(series *model.DailySeries) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO daily_metrics
		(date, source, sessions, revenue, event, fetched_at)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	fetched := series.FetchedAt.Unix()
	for i := range series.Sessions {
		label, _ := series.EventOn(i)
		if _, err := stmt.Exec(series.Date(i).Format(time.DateOnly), series.Source,
			series.Sessions[i], series.Revenue[i], label, fetched); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert day %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// RenderCount returns the number of recorded renders.
func (r *SQLiteRecorder) RenderCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM render_history`).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
