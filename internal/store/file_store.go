package store

import (
	"context"
	"path/filepath"
	"sync"

	"quip/internal/domain"
)

// FileStore keeps the session record in a single JSON file under dir.
type FileStore struct {
	dir  string
	opts options
	mu   sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir. The record lives in
// "<key>.json".
func NewFileStore(dir string, opts ...Option) *FileStore {
	return &FileStore{dir: dir, opts: buildOptions(opts)}
}

// Path returns the file holding the record.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, s.opts.key.String()+".json")
}

// LoadSession reads and decodes the stored identity.
func (s *FileStore) LoadSession(ctx context.Context) (domain.Identity, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path())
	if err != nil {
		return domain.Identity{}, false, err
	}
	if b == nil {
		return domain.Identity{}, false, nil
	}
	id, err := decodeRecord(b, s.opts.passphrase)
	if err != nil {
		return domain.Identity{}, false, err
	}
	return id, true, nil
}

// SaveSession overwrites the stored record with id.
func (s *FileStore) SaveSession(ctx context.Context, id domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := encodeRecord(id, s.opts.passphrase)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFile(s.Path(), b, 0o600)
}

// ClearSession removes the record file.
func (s *FileStore) ClearSession(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.Path())
}

// Compile-time assertion that FileStore implements domain.SessionStore.
var _ domain.SessionStore = (*FileStore)(nil)
