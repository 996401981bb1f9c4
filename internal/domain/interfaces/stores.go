package interfaces

import (
	"context"

	domaintypes "quip/internal/domain/types"
)

// SessionStore persists exactly one identity record across restarts.
type SessionStore interface {
	// LoadSession returns the stored identity and whether one was present.
	// An unreadable record yields an error wrapping store.ErrCorruptRecord.
	LoadSession(ctx context.Context) (domaintypes.Identity, bool, error)
	SaveSession(ctx context.Context, id domaintypes.Identity) error
	// ClearSession removes the record; clearing an empty slot is not an error.
	ClearSession(ctx context.Context) error
}

// AccountStore persists the account directory.
type AccountStore interface {
	SaveAccount(account domaintypes.Account) error
	LoadAccount(username domaintypes.Username) (domaintypes.Account, bool, error)
}
