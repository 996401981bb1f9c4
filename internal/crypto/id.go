package crypto

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ids is shared so that ids minted within the same millisecond still sort
// and never collide.
var ids = &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.Reader, 0)}

// NewID returns a new ULID string (26 chars) stamped with now.
func NewID(now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := ulid.New(ulid.Timestamp(now), ids)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
