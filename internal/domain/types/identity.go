package types

// Identity is the authenticated principal. It is replaced as a whole, never patched.
type Identity struct {
	ID       IdentityID `json:"id"`
	Username Username   `json:"username"`
	Email    string     `json:"email"`
}

// IsZero reports whether id carries no identifier.
func (id Identity) IsZero() bool { return id.ID == "" }

// Verdict is an identity validator's decision.
//
// Accepted verdicts carry the issued Identity; rejected ones carry a
// user-facing Reason.
type Verdict struct {
	Accepted bool     `json:"accepted"`
	Identity Identity `json:"identity"`
	Reason   string   `json:"reason,omitempty"`
}

// Accept returns an accepting verdict for id.
func Accept(id Identity) Verdict { return Verdict{Accepted: true, Identity: id} }

// Reject returns a rejecting verdict with reason.
func Reject(reason string) Verdict { return Verdict{Reason: reason} }
