package session

import "quip/internal/domain"

// RequireIdentity returns the identity held by snap, or
// domain.ErrNotAuthenticated when there is none. Pages that need a signed-in
// user redirect to the login surface on that error.
func RequireIdentity(snap domain.Snapshot) (domain.Identity, error) {
	if snap.Current == nil {
		return domain.Identity{}, domain.ErrNotAuthenticated
	}
	return *snap.Current, nil
}
