package domain

import (
	interfaces "quip/internal/domain/interfaces"
	types "quip/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username   = types.Username
	IdentityID = types.IdentityID
	SessionKey = types.SessionKey
	Identity   = types.Identity
	Verdict    = types.Verdict
	Result     = types.Result
	Snapshot   = types.Snapshot
	Phase      = types.Phase
	Account    = types.Account
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityValidator = interfaces.IdentityValidator
	SessionService    = interfaces.SessionService
	SessionStore      = interfaces.SessionStore
	AccountStore      = interfaces.AccountStore
)

// Re-exported constants.
const (
	DefaultSessionKey  = types.DefaultSessionKey
	PhaseRestoring     = types.PhaseRestoring
	PhaseAnonymous     = types.PhaseAnonymous
	PhaseAuthenticated = types.PhaseAuthenticated
)

// Accept returns an accepting verdict for id.
func Accept(id Identity) Verdict { return types.Accept(id) }

// Reject returns a rejecting verdict with reason.
func Reject(reason string) Verdict { return types.Reject(reason) }
