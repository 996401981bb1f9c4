// Package store provides persistence for quip's local state.
//
// The session slot holds exactly one identity record. Three backends
// implement domain.SessionStore over the same record codec:
//   - FileStore: a JSON file under the configured home directory
//   - SQLiteStore: one row of a key-value table (modernc.org/sqlite)
//   - RedisStore: one redis key
//
// Records carry a schema marker ("v") and may be sealed at rest with a
// passphrase-derived key (scrypt + ChaCha20-Poly1305). Anything that cannot be
// decoded is reported as ErrCorruptRecord so callers can purge it.
//
// AccountFileStore persists the account directory used by the directory
// identity validator. All stores are safe for concurrent use.
package store
