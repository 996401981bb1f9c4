package types

// Phase is the coarse state of the session state machine.
type Phase int

const (
	// PhaseRestoring is the state before the persisted record has been read.
	PhaseRestoring Phase = iota
	// PhaseAnonymous means no identity is held.
	PhaseAnonymous
	// PhaseAuthenticated means an identity is held.
	PhaseAuthenticated
)

// String returns a lower-case name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRestoring:
		return "restoring"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent view of the session taken between mutations.
// Current is nil when no identity is held.
type Snapshot struct {
	Current *Identity
	Loading bool
	Phase   Phase
}

// Authenticated reports whether the snapshot holds an identity.
func (s Snapshot) Authenticated() bool { return s.Current != nil }

// Result is the outcome of a login or signup as seen by consumers.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
