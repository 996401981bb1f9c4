package session

import (
	"sync"

	"quip/internal/domain"
)

type subscriber struct {
	id uint64
	fn func(domain.Snapshot)
}

// subscribers is guarded by Manager.mu.
type subscribers struct {
	next uint64
	all  []subscriber
}

func (s *subscribers) add(fn func(domain.Snapshot)) uint64 {
	s.next++
	s.all = append(s.all, subscriber{id: s.next, fn: fn})
	return s.next
}

func (s *subscribers) remove(id uint64) {
	for i, sub := range s.all {
		if sub.id == id {
			s.all = append(s.all[:i:i], s.all[i+1:]...)
			return
		}
	}
}

func (s *subscribers) list() []func(domain.Snapshot) {
	out := make([]func(domain.Snapshot), len(s.all))
	for i, sub := range s.all {
		out[i] = sub.fn
	}
	return out
}

// Subscribe registers fn to receive every state change, in order, after the
// change is visible through Snapshot. fn runs on the goroutine performing the
// operation and must not call Login, Signup or Logout synchronously.
// The returned cancel func is idempotent.
func (m *Manager) Subscribe(fn func(domain.Snapshot)) (cancel func()) {
	m.mu.Lock()
	id := m.subs.add(fn)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.subs.remove(id)
			m.mu.Unlock()
		})
	}
}
