package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore persists runs in a SQLite database. WAL mode keeps
// concurrent reads cheap; SQLite supports only a single writer, so
// the connection pool is capped at one connection.
type SQLiteStore struct {
	db *sql.DB

	insertStmt *sql.Stmt
	recentStmt *sql.Stmt
}

// NewSQLiteStore opens (and if necessary creates) the database at
// path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("history db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing history statements: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lint_runs (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		commit_hash TEXT,
		files_checked INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		infos INTEGER NOT NULL,
		suppressed INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lint_runs_timestamp ON lint_runs(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO lint_runs (id, timestamp, commit_hash, files_checked, errors, warnings, infos, suppressed, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}

	s.recentStmt, err = s.db.Prepare(`
		SELECT id, timestamp, commit_hash, files_checked, errors, warnings, infos, suppressed, duration_ms
		FROM lint_runs
		ORDER BY timestamp DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("preparing select: %w", err)
	}
	return nil
}

// Record saves a run.
func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	_, err := s.insertStmt.ExecContext(ctx,
		run.ID,
		run.Timestamp.UnixMilli(),
		run.Commit,
		run.FilesChecked,
		run.Errors,
		run.Warnings,
		run.Infos,
		run.Suppressed,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording lint run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.recentStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("querying lint runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts, durationMS int64
		var commit sql.NullString
		if err := rows.Scan(&run.ID, &ts, &commit, &run.FilesChecked,
			&run.Errors, &run.Warnings, &run.Infos, &run.Suppressed, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning lint run: %w", err)
		}
		run.Timestamp = time.UnixMilli(ts)
		run.Commit = commit.String
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.insertStmt != nil {
		s.insertStmt.Close()
	}
	if s.recentStmt != nil {
		s.recentStmt.Close()
	}
	return s.db.Close()
}
