package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bioprep/airgen/internal/model"
)

// ErrNotFound is returned by Open when the database file does not
// exist and creation was not requested. Callers that treat an absent
// history as empty match on this; every other Open failure (permission,
// corruption) is a real error.
var ErrNotFound = errors.New("history database not found")

// PlanDB provides SQLite-based storage for run history.
type PlanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures PlanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a PlanDB in the given directory.
// With CreateIfNotExists the directory and database file are created;
// without it a missing database is an error.
func Open(dbDir string, opts Options) (*PlanDB, error) {
	dbPath := filepath.Join(dbDir, "airgen.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents
	// creating new files, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; extra connections only contend.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pdb := &PlanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pdb, nil
}

// Close closes the database connection.
func (pdb *PlanDB) Close() error {
	return pdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (pdb *PlanDB) createTables() error {
	schema := `
	-- One row per invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pdb_path TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		plan_count INTEGER NOT NULL,
		bead_count INTEGER NOT NULL,
		params_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_pdb ON runs(pdb_path);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- One row per generated plan
	CREATE TABLE IF NOT EXISTS plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		plan_index INTEGER NOT NULL,
		selection TEXT NOT NULL,
		restraint_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_run ON plans(run_id);
	`

	_, err := pdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is one stored invocation.
type RunRecord struct {
	ID        int64
	PDBPath   string
	Timestamp time.Time
	PlanCount int
	BeadCount int
	Params    model.RunParams
}

// PlanRecord is one stored plan of a run.
type PlanRecord struct {
	ID             int64
	RunID          int64
	PlanIndex      int
	Selection      []int
	RestraintCount int
}

// SaveRun stores a run result and its plans in one transaction, so a
// half-written history row can never pair with missing plan rows.
func (pdb *PlanDB) SaveRun(ctx context.Context, result *model.RunResult) (int64, error) {
	paramsJSON, err := json.Marshal(result.Params)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run params: %w", err)
	}

	tx, err := pdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (pdb_path, timestamp, plan_count, bead_count, params_json)
		 VALUES (?, ?, ?, ?, ?)`,
		result.PDBPath,
		result.GeneratedAt.UTC().Format(time.RFC3339),
		len(result.Plans),
		result.Grid.Len(),
		string(paramsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i := range result.Plans {
		p := &result.Plans[i]
		selJSON, err := json.Marshal(p.Selection.Residues)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize selection: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plans (run_id, plan_index, selection, restraint_count)
			 VALUES (?, ?, ?, ?)`,
			runID, p.Index, string(selJSON), p.Len(),
		); err != nil {
			return 0, fmt.Errorf("failed to insert plan %d: %w", p.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first, optionally
// filtered by structure path. limit <= 0 means no limit.
func (pdb *PlanDB) ListRuns(ctx context.Context, pdbPath string, limit int) ([]RunRecord, error) {
	query := `SELECT id, pdb_path, timestamp, plan_count, bead_count, params_json FROM runs`
	var args []any
	if pdbPath != "" {
		query += ` WHERE pdb_path = ?`
		args = append(args, pdbPath)
	}
	query += ` ORDER BY timestamp DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := pdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var timestamp, paramsJSON string
		if err := rows.Scan(&rec.ID, &rec.PDBPath, &timestamp, &rec.PlanCount, &rec.BeadCount, &paramsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
			return nil, fmt.Errorf("failed to decode run params: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRunPlans returns the plans of a run, ordered by plan index.
func (pdb *PlanDB) GetRunPlans(ctx context.Context, runID int64) ([]PlanRecord, error) {
	rows, err := pdb.db.QueryContext(ctx,
		`SELECT id, run_id, plan_index, selection, restraint_count
		 FROM plans WHERE run_id = ? ORDER BY plan_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var selJSON string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.PlanIndex, &selJSON, &rec.RestraintCount); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		if err := json.Unmarshal([]byte(selJSON), &rec.Selection); err != nil {
			return nil, fmt.Errorf("failed to decode selection: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// parseTimestamp handles the formats SQLite hands back depending on
// how the value was written.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
