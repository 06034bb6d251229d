package snapshot

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteSink persists snapshot bodies in a SQLite table, keeping a bounded
// history of recent snapshots. Open always returns the newest one.
//
// The store itself remains an in-memory linear-scan collection; SQLite is
// only a durable container for serialized snapshots.
type SQLiteSink struct {
	db        *sql.DB
	keep      int
	mu        sync.Mutex
	closeOnce sync.Once
}

// SQLiteSinkConfig configures the SQLite sink.
type SQLiteSinkConfig struct {
	// Path is the database file path.
	Path string

	// Keep is how many recent snapshots to retain.
	// Default: 5
	Keep int

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteSink creates a SQLite sink with default settings.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	return NewSQLiteSinkWithConfig(SQLiteSinkConfig{Path: path})
}

// NewSQLiteSinkWithConfig creates a SQLite sink with custom configuration.
func NewSQLiteSinkWithConfig(cfg SQLiteSinkConfig) (*SQLiteSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.Keep <= 0 {
		cfg.Keep = 5
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	sink := &SQLiteSink{db: db, keep: cfg.Keep}
	if err := sink.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return sink, nil
}

// initSchema creates the snapshots table if it doesn't exist.
func (s *SQLiteSink) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		body BLOB NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Write persists one snapshot row and prunes history beyond the retention
// bound. The body is buffered in memory first so a failed serialization
// never reaches the database.
func (s *SQLiteSink) Write(fn func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO snapshots (created_at, body) VALUES (?, ?)`,
		time.Now().Unix(), buf.Bytes())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert snapshot: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM snapshots
		WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)
	`, s.keep)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Open returns a reader over the most recent snapshot body.
func (s *SQLiteSink) Open() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body []byte
	err := s.db.QueryRow(`SELECT body FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// Count returns the number of retained snapshots. Useful for monitoring and
// tests.
func (s *SQLiteSink) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// Close releases the database handle. Close is idempotent.
func (s *SQLiteSink) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		closeErr = s.db.Close()
	})
	return closeErr
}
