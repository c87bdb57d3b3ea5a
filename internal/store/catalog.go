package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"roi-analyzer/internal/analysis"
)

// Run is one recorded analysis run. Partial runs (cancelled or failed)
// are recorded like completed ones; partial results are valid results.
// The statistics columns are null when the series is empty or its
// minimum is zero.
type Run struct {
	ID              string
	VideoPath       string
	ROI             analysis.Rect
	Status          string
	FramesProcessed int
	FramesTotal     int
	MinIntensity    sql.NullFloat64
	MaxIntensity    sql.NullFloat64
	ContrastRatio   sql.NullFloat64
	CreatedAt       time.Time
}

// Catalog is a SQLite-backed history of analysis runs and their series.
type Catalog struct {
	conn *sql.DB
	mu   sync.Mutex
}

// Open creates or opens the catalog database at path and applies the
// schema.
func Open(path string) (*Catalog, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	c := &Catalog{conn: conn}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating catalog: %w", err)
	}
	return c, nil
}

func (c *Catalog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		video_path TEXT NOT NULL,
		roi_x INTEGER NOT NULL,
		roi_y INTEGER NOT NULL,
		roi_w INTEGER NOT NULL,
		roi_h INTEGER NOT NULL,
		status TEXT NOT NULL,
		frames_processed INTEGER NOT NULL,
		frames_total INTEGER NOT NULL,
		min_intensity REAL,
		max_intensity REAL,
		contrast_ratio REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL,
		frame_index INTEGER NOT NULL,
		mean_intensity REAL NOT NULL,
		PRIMARY KEY (run_id, frame_index),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_video_path ON runs(video_path);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := c.conn.Exec(schema)
	return err
}

// SaveRun records a finished run and its series in one transaction and
// returns the generated run id.
func (c *Catalog) SaveRun(videoPath string, roi analysis.Rect, res analysis.Result) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()

	var min, max, contrast sql.NullFloat64
	if stats, err := res.Series.Stats(); err == nil {
		min = sql.NullFloat64{Float64: stats.Min, Valid: true}
		max = sql.NullFloat64{Float64: stats.Max, Valid: true}
		contrast = sql.NullFloat64{Float64: stats.ContrastRatio, Valid: true}
	}

	tx, err := c.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, video_path, roi_x, roi_y, roi_w, roi_h, status,
			frames_processed, frames_total, min_intensity, max_intensity, contrast_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, videoPath, roi.X, roi.Y, roi.W, roi.H, res.Status.String(),
		res.FramesProcessed, res.FramesTotal, min, max, contrast)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, frame_index, mean_intensity) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing sample insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range res.Series {
		if _, err := stmt.Exec(id, s.FrameIndex, s.MeanIntensity); err != nil {
			return "", fmt.Errorf("inserting sample %d: %w", s.FrameIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (c *Catalog) ListRuns(limit int) ([]Run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := c.conn.Query(`
		SELECT id, video_path, roi_x, roi_y, roi_w, roi_h, status,
			frames_processed, frames_total, min_intensity, max_intensity, contrast_ratio, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.VideoPath, &r.ROI.X, &r.ROI.Y, &r.ROI.W, &r.ROI.H,
			&r.Status, &r.FramesProcessed, &r.FramesTotal,
			&r.MinIntensity, &r.MaxIntensity, &r.ContrastRatio, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetSeries loads the stored intensity series for a run, in frame
// order.
func (c *Catalog) GetSeries(runID string) (analysis.Series, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.conn.Query(`
		SELECT frame_index, mean_intensity FROM samples
		WHERE run_id = ? ORDER BY frame_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	defer rows.Close()

	var series analysis.Series
	for rows.Next() {
		var s analysis.Sample
		if err := rows.Scan(&s.FrameIndex, &s.MeanIntensity); err != nil {
			return nil, fmt.Errorf("scanning sample: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.conn.Close()
}
