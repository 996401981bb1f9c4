package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quip/internal/domain"
)

// recordFormatVersion is the schema marker written into every stored record.
const recordFormatVersion = 1

// ErrCorruptRecord is returned when a stored record cannot be decoded:
// malformed JSON, an unknown schema version, a missing identity or a sealed
// record that does not open with the configured passphrase.
var ErrCorruptRecord = domain.ErrCorruptRecord

var errIncompleteIdentity = errors.New("identity needs an id, a username and an email with @")

// record is the persisted payload. Exactly one of Identity and Sealed is set.
type record struct {
	V        int              `json:"v"`
	Identity *domain.Identity `json:"identity,omitempty"`
	Sealed   *sealed          `json:"sealed,omitempty"`
}

// Option configures a session store.
type Option func(*options)

type options struct {
	key        domain.SessionKey
	passphrase string
}

// WithKey overrides the session slot key (default "quip_user").
func WithKey(key domain.SessionKey) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithPassphrase seals stored records with a key derived from passphrase.
func WithPassphrase(passphrase string) Option {
	return func(o *options) { o.passphrase = passphrase }
}

func buildOptions(opts []Option) options {
	o := options{key: domain.DefaultSessionKey}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// encodeRecord serialises id, sealing it when a passphrase is configured.
func encodeRecord(id domain.Identity, passphrase string) ([]byte, error) {
	if !complete(id) {
		return nil, errIncompleteIdentity
	}
	rec := record{V: recordFormatVersion}
	if passphrase == "" {
		rec.Identity = &id
		return json.Marshal(rec)
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	N, r, p := scryptParamsDefault()
	s, err := seal(passphrase, raw, N, r, p)
	if err != nil {
		return nil, err
	}
	rec.Sealed = s
	return json.Marshal(rec)
}

// decodeRecord parses b. Every failure wraps ErrCorruptRecord.
func decodeRecord(b []byte, passphrase string) (domain.Identity, error) {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if rec.V < 1 || rec.V > recordFormatVersion {
		return domain.Identity{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptRecord, rec.V)
	}

	id := rec.Identity
	if rec.Sealed != nil {
		if passphrase == "" {
			return domain.Identity{}, fmt.Errorf("%w: record is sealed", ErrCorruptRecord)
		}
		raw, err := open(passphrase, rec.Sealed)
		if err != nil {
			return domain.Identity{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		var inner domain.Identity
		if err := json.Unmarshal(raw, &inner); err != nil {
			return domain.Identity{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		id = &inner
	}
	if id == nil {
		return domain.Identity{}, fmt.Errorf("%w: missing identity", ErrCorruptRecord)
	}
	if !complete(*id) {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrCorruptRecord, errIncompleteIdentity)
	}
	return *id, nil
}

func complete(id domain.Identity) bool {
	return id.ID != "" && id.Username != "" && strings.Contains(id.Email, "@")
}
