package types

// Username is the human-chosen handle of an account.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// IdentityID is the opaque identifier issued with an identity.
type IdentityID string

// String returns the string form of the identifier.
func (id IdentityID) String() string { return string(id) }

// SessionKey names the single slot the session record lives in.
type SessionKey string

// String returns the string form of the key.
func (k SessionKey) String() string { return string(k) }

// DefaultSessionKey is the slot used when no key is configured.
const DefaultSessionKey SessionKey = "quip_user"
