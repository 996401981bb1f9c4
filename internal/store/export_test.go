package store

import (
	"context"
	"encoding/json"
)

// WriteRawSQLite stores payload verbatim so tests can plant damaged records.
func WriteRawSQLite(ctx context.Context, s *SQLiteStore, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO session_slots (slot_key, payload) VALUES (?, ?)`,
		s.opts.key.String(), payload,
	)
	return err
}

// SealRaw wraps raw in a sealed record without checking its contents.
func SealRaw(passphrase string, raw []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()
	s, err := seal(passphrase, raw, N, r, p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record{V: recordFormatVersion, Sealed: s})
}
