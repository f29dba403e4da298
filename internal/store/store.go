// Package store keeps association rows in SQLite or Postgres so batches
// from many runs can be queried together.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"cdmec/internal/output"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("not found")

// Dialect selects placeholder syntax.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Run describes one batch loaded into the store.
type Run struct {
	ID        string
	StartedAt time.Time
	Threshold int
	Source    string // input directory or master table
}

// DB wraps the database connection and provides storage operations.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		started_at BIGINT NOT NULL,
		threshold BIGINT NOT NULL,
		source TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS associations (
		run_id TEXT NOT NULL,
		sample_id TEXT NOT NULL,
		seq BIGINT NOT NULL,
		contig_id TEXT NOT NULL,
		arg_name TEXT NOT NULL,
		arg_start BIGINT NOT NULL,
		arg_end BIGINT NOT NULL,
		mge_association TEXT NOT NULL,
		proximity_bp BIGINT NOT NULL,
		status TEXT NOT NULL,
		PRIMARY KEY (run_id, sample_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_associations_arg ON associations(arg_name)`,
}

// ParseDSN picks the driver for dsn. "postgres://" and "postgresql://"
// URLs go to pgx; "sqlite://path" and bare paths go to SQLite.
func ParseDSN(dsn string) (driver, source string, d Dialect, err error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", 0, fmt.Errorf("storage: empty DSN")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, Postgres, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://"), SQLite, nil
	}
	return "sqlite", dsn, SQLite, nil
}

// Open connects to dsn and creates the schema if needed.
func Open(ctx context.Context, dsn string) (*DB, error) {
	driver, source, dialect, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}
	db := &DB{conn: conn, dialect: dialect}
	if err := db.initSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: init schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Dialect() Dialect { return db.dialect }

func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites '?' placeholders for Postgres.
func (db *DB) rebind(q string) string {
	if db.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveRun inserts or updates a run record.
func (db *DB) SaveRun(ctx context.Context, r Run) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("storage: save run: run_id is required")
	}
	q := db.rebind(`
	INSERT INTO runs (run_id, started_at, threshold, source)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(run_id) DO UPDATE SET
		started_at = excluded.started_at,
		threshold = excluded.threshold,
		source = excluded.source`)
	if _, err := db.conn.ExecContext(ctx, q, r.ID, r.StartedAt.Unix(), r.Threshold, r.Source); err != nil {
		return fmt.Errorf("storage: save run: %w", err)
	}
	return nil
}

// GetRun loads a run record.
func (db *DB) GetRun(ctx context.Context, id string) (Run, error) {
	var (
		r     Run
		start int64
	)
	err := db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT run_id, started_at, threshold, source FROM runs WHERE run_id = ?`), id).
		Scan(&r.ID, &start, &r.Threshold, &r.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: get run: %w", err)
	}
	r.StartedAt = time.Unix(start, 0).UTC()
	return r, nil
}

// SaveSample replaces the rows stored for (runID, sampleID). Row order is
// kept through a per-sample sequence number.
func (db *DB) SaveSample(ctx context.Context, runID, sampleID string, rows []output.Row) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		db.rebind(`DELETE FROM associations WHERE run_id = ? AND sample_id = ?`), runID, sampleID); err != nil {
		return fmt.Errorf("storage: clear sample: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, db.rebind(`
	INSERT INTO associations (run_id, sample_id, seq, contig_id, arg_name, arg_start, arg_end,
		mge_association, proximity_bp, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, runID, sampleID, i, r.ContigID, r.ARGName,
			r.ARGStart, r.ARGEnd, r.MGEAssociation, r.ProximityBP, r.Status); err != nil {
			return fmt.Errorf("storage: insert association: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// SaveRows groups rows by sample and saves each group.
func (db *DB) SaveRows(ctx context.Context, runID string, rows []output.Row) error {
	var order []string
	groups := map[string][]output.Row{}
	for _, r := range rows {
		if _, ok := groups[r.SampleID]; !ok {
			order = append(order, r.SampleID)
		}
		groups[r.SampleID] = append(groups[r.SampleID], r)
	}
	for _, id := range order {
		if err := db.SaveSample(ctx, runID, id, groups[id]); err != nil {
			return err
		}
	}
	return nil
}

// Associations returns all rows of a run ordered by sample then insertion.
func (db *DB) Associations(ctx context.Context, runID string) ([]output.Row, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(`
	SELECT sample_id, contig_id, arg_name, arg_start, arg_end, mge_association, proximity_bp, status
	FROM associations WHERE run_id = ? ORDER BY sample_id, seq`), runID)
	if err != nil {
		return nil, fmt.Errorf("storage: query associations: %w", err)
	}
	defer rows.Close()

	var out []output.Row
	for rows.Next() {
		var r output.Row
		if err := rows.Scan(&r.SampleID, &r.ContigID, &r.ARGName, &r.ARGStart, &r.ARGEnd,
			&r.MGEAssociation, &r.ProximityBP, &r.Status); err != nil {
			return nil, fmt.Errorf("storage: scan association: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate associations: %w", err)
	}
	return out, nil
}

// Samples lists the sample ids stored for a run.
func (db *DB) Samples(ctx context.Context, runID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		db.rebind(`SELECT DISTINCT sample_id FROM associations WHERE run_id = ? ORDER BY sample_id`), runID)
	if err != nil {
		return nil, fmt.Errorf("storage: query samples: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("storage: scan sample: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Runs lists stored runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT run_id, started_at, threshold, source FROM runs ORDER BY started_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var (
			r     Run
			start int64
		)
		if err := rows.Scan(&r.ID, &start, &r.Threshold, &r.Source); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		r.StartedAt = time.Unix(start, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
