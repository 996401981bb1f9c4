package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"quip/internal/domain"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS session_slots (
	slot_key TEXT PRIMARY KEY,
	payload  BLOB NOT NULL
)`

// SQLiteStore keeps the session record as one row of a key-value table.
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, opts: buildOptions(opts)}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadSession reads and decodes the stored identity.
func (s *SQLiteStore) LoadSession(ctx context.Context) (domain.Identity, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session_slots WHERE slot_key = ?`, s.opts.key.String(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("load session: %w", err)
	}
	id, err := decodeRecord(payload, s.opts.passphrase)
	if err != nil {
		return domain.Identity{}, false, err
	}
	return id, true, nil
}

// SaveSession upserts the record.
func (s *SQLiteStore) SaveSession(ctx context.Context, id domain.Identity) error {
	payload, err := encodeRecord(id, s.opts.passphrase)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_slots (slot_key, payload) VALUES (?, ?)
		 ON CONFLICT(slot_key) DO UPDATE SET payload = excluded.payload`,
		s.opts.key.String(), payload,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearSession deletes the row.
func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_slots WHERE slot_key = ?`, s.opts.key.String(),
	); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Compile-time assertion that SQLiteStore implements domain.SessionStore.
var _ domain.SessionStore = (*SQLiteStore)(nil)
