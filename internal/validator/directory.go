package validator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quip/internal/crypto"
	"quip/internal/domain"
)

// Directory validates against accounts persisted in a domain.AccountStore.
type Directory struct {
	accounts domain.AccountStore
	params   crypto.Argon2idParams
	now      func() time.Time

	// mu makes the signup collision check and the insert atomic.
	mu sync.Mutex
}

// NewDirectory returns a Directory over accounts using default hash costs.
func NewDirectory(accounts domain.AccountStore) *Directory {
	return NewDirectoryWithParams(accounts, crypto.DefaultArgon2idParams())
}

// NewDirectoryWithParams is NewDirectory with explicit Argon2id costs.
func NewDirectoryWithParams(accounts domain.AccountStore, params crypto.Argon2idParams) *Directory {
	return &Directory{accounts: accounts, params: params, now: time.Now}
}

// ValidateLogin accepts a known username with the matching password. Unknown
// users and wrong passwords get the same reason.
func (d *Directory) ValidateLogin(
	ctx context.Context,
	username domain.Username,
	password string,
) (domain.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return domain.Verdict{}, err
	}
	account, ok, err := d.accounts.LoadAccount(username)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("load account: %w", err)
	}
	if !ok {
		return domain.Reject(ReasonInvalidCredentials), nil
	}
	match, err := crypto.VerifyPassword(account.PasswordHash, password, d.params)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return domain.Reject(ReasonInvalidCredentials), nil
	}
	return domain.Accept(account.Identity), nil
}

// ValidateSignup applies CheckSignup, rejects taken usernames, then creates
// and persists the account.
func (d *Directory) ValidateSignup(
	ctx context.Context,
	username domain.Username,
	email string,
	password string,
) (domain.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return domain.Verdict{}, err
	}
	if reason, ok := CheckSignup(username, email, password); !ok {
		return domain.Reject(reason), nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	_, taken, err := d.accounts.LoadAccount(username)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("load account: %w", err)
	}
	if taken {
		return domain.Reject(ReasonUsernameTaken), nil
	}

	hash, err := crypto.HashPassword(password, d.params)
	if err != nil {
		return domain.Verdict{}, err
	}
	id, err := crypto.NewID(d.now())
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("issue id: %w", err)
	}
	identity := domain.Identity{ID: domain.IdentityID(id), Username: username, Email: email}
	if err := d.accounts.SaveAccount(domain.Account{Identity: identity, PasswordHash: hash}); err != nil {
		return domain.Verdict{}, fmt.Errorf("save account: %w", err)
	}
	return domain.Accept(identity), nil
}

// Compile-time assertion that Directory implements domain.IdentityValidator.
var _ domain.IdentityValidator = (*Directory)(nil)
