package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"quip/internal/domain"
)

var errBoom = errors.New("boom")

// memStore is an in-memory domain.SessionStore with failure switches.
type memStore struct {
	mu       sync.Mutex
	id       *domain.Identity
	corrupt  bool
	loadErr  error
	saveErr  error
	clearErr error
	panicOn  string // "load", "save" or "clear"
	clears   int
}

func (s *memStore) LoadSession(ctx context.Context) (domain.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panicOn == "load" {
		panic("disk exploded")
	}
	if s.loadErr != nil {
		return domain.Identity{}, false, s.loadErr
	}
	if s.corrupt {
		return domain.Identity{}, false, domain.ErrCorruptRecord
	}
	if s.id == nil {
		return domain.Identity{}, false, nil
	}
	return *s.id, true, nil
}

func (s *memStore) SaveSession(ctx context.Context, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panicOn == "save" {
		panic("disk exploded")
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	s.id, s.corrupt = &id, false
	return nil
}

func (s *memStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	if s.panicOn == "clear" {
		panic("disk exploded")
	}
	if s.clearErr != nil {
		return s.clearErr
	}
	s.id, s.corrupt = nil, false
	return nil
}

func (s *memStore) stored() (domain.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return domain.Identity{}, false
	}
	return *s.id, true
}

// stubValidator answers with a fixed verdict, error or panic. When gate is
// non-nil every call blocks until it receives.
type stubValidator struct {
	verdict domain.Verdict
	err     error
	panics  bool
	gate    chan struct{}
	entered chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func (v *stubValidator) answer(ctx context.Context) (domain.Verdict, error) {
	v.calls.Add(1)
	n := v.inFlight.Add(1)
	defer v.inFlight.Add(-1)
	for {
		cur := v.maxInFlight.Load()
		if n <= cur || v.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if v.entered != nil {
		v.entered <- struct{}{}
	}
	if v.gate != nil {
		select {
		case <-v.gate:
		case <-ctx.Done():
			return domain.Verdict{}, ctx.Err()
		}
	}
	if v.panics {
		panic("validator exploded")
	}
	return v.verdict, v.err
}

func (v *stubValidator) ValidateLogin(ctx context.Context, _ domain.Username, _ string) (domain.Verdict, error) {
	return v.answer(ctx)
}

func (v *stubValidator) ValidateSignup(ctx context.Context, _ domain.Username, _, _ string) (domain.Verdict, error) {
	return v.answer(ctx)
}

// recorder collects snapshots delivered to a subscriber.
type recorder struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (r *recorder) observe(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Snapshot(nil), r.snaps...)
}
