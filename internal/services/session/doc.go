// Package session owns the process-wide authenticated identity.
//
// A Manager restores the persisted identity at startup, validates credentials
// through a domain.IdentityValidator, writes every accepted identity through to
// a domain.SessionStore and publishes each state change to subscribers.
//
// State machine:
//
//	Restoring --Initialize--> Anonymous | Authenticated
//	Anonymous --Login/Signup accepted--> Authenticated
//	any       --Logout--> Anonymous
//
// The loading flag is raised for the duration of every restore, login and
// signup, and is always lowered again before the operation returns.
//
// Operations run one at a time; a second call waits for the first. Rejections
// and faults come back as domain.Result values, never as errors.
package session
