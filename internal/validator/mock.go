package validator

import (
	"context"
	"fmt"
	"time"

	"quip/internal/crypto"
	"quip/internal/domain"
)

// DefaultLatency is the simulated round trip of the mock backend.
const DefaultLatency = time.Second

// DemoIdentity is the only account the mock accepts.
var DemoIdentity = domain.Identity{ID: "1", Username: "demo", Email: "demo@example.com"}

const demoPassword = "password"

// Mock is the placeholder identity backend. It has no side effects beyond
// issuing ids.
type Mock struct {
	latency time.Duration
	now     func() time.Time
}

// NewMock returns a Mock that waits latency before every answer.
func NewMock(latency time.Duration) *Mock {
	if latency < 0 {
		latency = 0
	}
	return &Mock{latency: latency, now: time.Now}
}

// ValidateLogin accepts only demo/password.
func (m *Mock) ValidateLogin(
	ctx context.Context,
	username domain.Username,
	password string,
) (domain.Verdict, error) {
	if err := m.wait(ctx); err != nil {
		return domain.Verdict{}, err
	}
	if username == DemoIdentity.Username && password == demoPassword {
		return domain.Accept(DemoIdentity), nil
	}
	return domain.Reject(ReasonInvalidCredentials), nil
}

// ValidateSignup applies CheckSignup, rejects the taken name "demo" and
// otherwise issues a fresh identity.
func (m *Mock) ValidateSignup(
	ctx context.Context,
	username domain.Username,
	email string,
	password string,
) (domain.Verdict, error) {
	if err := m.wait(ctx); err != nil {
		return domain.Verdict{}, err
	}
	if reason, ok := CheckSignup(username, email, password); !ok {
		return domain.Reject(reason), nil
	}
	if username == DemoIdentity.Username {
		return domain.Reject(ReasonUsernameTaken), nil
	}

	id, err := crypto.NewID(m.now())
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("issue id: %w", err)
	}
	return domain.Accept(domain.Identity{
		ID:       domain.IdentityID(id),
		Username: username,
		Email:    email,
	}), nil
}

// wait simulates latency; cancellation surfaces as a fault.
func (m *Mock) wait(ctx context.Context) error {
	if m.latency == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Compile-time assertion that Mock implements domain.IdentityValidator.
var _ domain.IdentityValidator = (*Mock)(nil)
