package interfaces

import (
	"context"

	domaintypes "quip/internal/domain/types"
)

// IdentityValidator decides whether credentials are accepted.
//
// A rejection is a Verdict with Accepted false. A non-nil error is a fault:
// the validator could not decide at all.
type IdentityValidator interface {
	ValidateLogin(
		ctx context.Context,
		username domaintypes.Username,
		password string,
	) (domaintypes.Verdict, error)
	ValidateSignup(
		ctx context.Context,
		username domaintypes.Username,
		email string,
		password string,
	) (domaintypes.Verdict, error)
}

// SessionService is the read/mutate contract consumers hold.
type SessionService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, username domaintypes.Username, password string) domaintypes.Result
	Signup(
		ctx context.Context,
		username domaintypes.Username,
		email string,
		password string,
	) domaintypes.Result
	Logout(ctx context.Context)
	Snapshot() domaintypes.Snapshot
	Subscribe(fn func(domaintypes.Snapshot)) (cancel func())
}
