package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quip/internal/domain"
)

// User-facing messages.
const (
	MessageLoginOK  = "Login successful"
	MessageSignupOK = "Account created successfully"

	MessageLoginFault  = "An error occurred during login"
	MessageSignupFault = "An error occurred during signup"
)

type operation struct {
	name     string
	okMsg    string
	faultMsg string
}

var (
	opLogin  = operation{name: "login", okMsg: MessageLoginOK, faultMsg: MessageLoginFault}
	opSignup = operation{name: "signup", okMsg: MessageSignupOK, faultMsg: MessageSignupFault}
)

// Manager is the sole mutator of the session state.
type Manager struct {
	validator domain.IdentityValidator
	store     domain.SessionStore
	log       *zap.Logger
	timeout   time.Duration

	// ops is a one-slot semaphore serializing Login and Signup.
	ops      chan struct{}
	initOnce sync.Once

	// storeMu orders session writes against Logout.
	storeMu sync.Mutex

	mu    sync.RWMutex
	gen   uint64 // bumped by Logout; an operation started under an older gen is discarded
	state domain.Snapshot
	subs  subscribers
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger (default: no-op).
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithTimeout bounds each validator and store call. Zero means no bound.
// An expired call is handled as a fault.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// New returns a Manager in the Restoring phase with loading raised.
// Call Initialize to restore the persisted identity.
func New(v domain.IdentityValidator, s domain.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		validator: v,
		store:     s,
		log:       zap.NewNop(),
		ops:       make(chan struct{}, 1),
		state:     domain.Snapshot{Loading: true, Phase: domain.PhaseRestoring},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restores the persisted identity. It runs once; later calls
// return immediately. A corrupt record is purged and the session starts
// anonymous. Login, Signup and Logout call it implicitly, detached from their
// caller's cancellation.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.ops <- struct{}{}
		defer m.release()
		m.restore(ctx)
	})
}

func (m *Manager) restore(ctx context.Context) {
	ctx, cancel := m.callContext(ctx)
	defer cancel()

	var current *domain.Identity
	defer func() { m.set(current, false) }()

	id, ok, err := m.load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptRecord):
		m.log.Warn("purging corrupt session record", zap.Error(err))
		if err := m.clear(ctx); err != nil {
			m.log.Error("purge session record", zap.Error(err))
		}
	case err != nil:
		m.log.Warn("restore session", zap.Error(err))
	case ok:
		current = &id
		m.log.Debug("session restored", zap.String("username", id.Username.String()))
	default:
		m.log.Debug("no stored session")
	}
}

// Login validates username/password and, on acceptance, makes the returned
// identity current and persists it.
func (m *Manager) Login(ctx context.Context, username domain.Username, password string) domain.Result {
	return m.authenticate(ctx, opLogin, username, func(ctx context.Context) (domain.Verdict, error) {
		return m.validator.ValidateLogin(ctx, username, password)
	})
}

// Signup registers a new account and, on acceptance, makes it current.
func (m *Manager) Signup(
	ctx context.Context,
	username domain.Username,
	email string,
	password string,
) domain.Result {
	return m.authenticate(ctx, opSignup, username, func(ctx context.Context) (domain.Verdict, error) {
		return m.validator.ValidateSignup(ctx, username, email, password)
	})
}

func (m *Manager) authenticate(
	ctx context.Context,
	op operation,
	username domain.Username,
	call func(context.Context) (domain.Verdict, error),
) domain.Result {
	m.Initialize(context.WithoutCancel(ctx))
	log := m.log.With(zap.String("op", op.name), zap.String("username", username.String()))

	if err := m.acquire(ctx); err != nil {
		log.Warn("operation abandoned while queued", zap.Error(err))
		return domain.Result{Message: op.faultMsg}
	}
	defer m.release()
	gen := m.generation()

	m.setLoading(true)
	defer m.setLoading(false)

	ctx, cancel := m.callContext(ctx)
	defer cancel()

	verdict, err := safeCall(ctx, call)
	if err != nil {
		log.Warn("validator fault", zap.Error(err))
		return domain.Result{Message: op.faultMsg}
	}
	if !verdict.Accepted {
		log.Info("rejected", zap.String("reason", verdict.Reason))
		return domain.Result{Message: verdict.Reason}
	}
	if verdict.Identity.IsZero() {
		log.Warn("validator accepted without an identity")
		return domain.Result{Message: op.faultMsg}
	}

	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	if m.generation() != gen {
		log.Info("discarded: logged out while in flight")
		return domain.Result{Message: op.faultMsg}
	}

	id := verdict.Identity
	if err := m.save(ctx, id); err != nil {
		log.Error("persist session", zap.Error(err))
		return domain.Result{Message: op.faultMsg}
	}
	m.setCurrent(&id)
	log.Debug("authenticated", zap.String("id", id.ID.String()))
	return domain.Result{Success: true, Message: op.okMsg}
}

// Logout drops the current identity and clears the stored record. It does
// not queue behind an in-flight Login or Signup: that operation's result is
// discarded instead. It always succeeds; a store failure is only logged.
func (m *Manager) Logout(ctx context.Context) {
	m.Initialize(context.WithoutCancel(ctx))
	m.storeMu.Lock()
	defer m.storeMu.Unlock()

	m.mu.Lock()
	m.gen++
	next := m.state
	next.Current = nil
	next.Phase = domain.PhaseAnonymous
	m.commit(next)

	ctx, cancel := m.callContext(context.WithoutCancel(ctx))
	defer cancel()
	if err := m.clear(ctx); err != nil {
		m.log.Error("clear session record", zap.Error(err))
		return
	}
	m.log.Debug("logged out")
}

// Snapshot returns a consistent copy of the current state.
func (m *Manager) Snapshot() domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySnapshot(m.state)
}

// Current returns the current identity, if any.
func (m *Manager) Current() (domain.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.Current == nil {
		return domain.Identity{}, false
	}
	return *m.state.Current, true
}

// Loading reports whether an operation is in flight.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Loading
}

func (m *Manager) acquire(ctx context.Context) error {
	select {
	case m.ops <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release() { <-m.ops }

func (m *Manager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

func (m *Manager) load(ctx context.Context) (id domain.Identity, ok bool, err error) {
	defer recoverFault(&err, "store load")
	return m.store.LoadSession(ctx)
}

func (m *Manager) save(ctx context.Context, id domain.Identity) (err error) {
	defer recoverFault(&err, "store save")
	return m.store.SaveSession(ctx, id)
}

func (m *Manager) clear(ctx context.Context) (err error) {
	defer recoverFault(&err, "store clear")
	return m.store.ClearSession(ctx)
}

func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(ctx, m.timeout)
	}
	return context.WithCancel(ctx)
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	next := m.state
	next.Loading = loading
	m.commit(next)
}

func (m *Manager) setCurrent(id *domain.Identity) {
	m.mu.Lock()
	next := m.state
	next.Current = id
	next.Phase = phaseOf(id)
	m.commit(next)
}

func (m *Manager) set(id *domain.Identity, loading bool) {
	m.mu.Lock()
	m.commit(domain.Snapshot{Current: id, Loading: loading, Phase: phaseOf(id)})
}

// commit stores next and notifies subscribers if anything changed. It must be
// called with mu held for writing and releases it.
func (m *Manager) commit(next domain.Snapshot) {
	if sameSnapshot(m.state, next) {
		m.mu.Unlock()
		return
	}
	m.state = next
	fns := m.subs.list()
	m.mu.Unlock()

	for _, fn := range fns {
		fn(copySnapshot(next))
	}
}

// safeCall runs call, converting a panic into an error.
func safeCall(
	ctx context.Context,
	call func(context.Context) (domain.Verdict, error),
) (v domain.Verdict, err error) {
	defer recoverFault(&err, "validator")
	return call(ctx)
}

// recoverFault must be deferred directly; it turns a panic into *err.
func recoverFault(err *error, what string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s panic: %v", what, r)
	}
}

func phaseOf(id *domain.Identity) domain.Phase {
	if id == nil {
		return domain.PhaseAnonymous
	}
	return domain.PhaseAuthenticated
}

func sameSnapshot(a, b domain.Snapshot) bool {
	if a.Loading != b.Loading || a.Phase != b.Phase {
		return false
	}
	if a.Current == nil || b.Current == nil {
		return a.Current == b.Current
	}
	return *a.Current == *b.Current
}

func copySnapshot(s domain.Snapshot) domain.Snapshot {
	if s.Current != nil {
		id := *s.Current
		s.Current = &id
	}
	return s
}

// Compile-time assertion that Manager implements domain.SessionService.
var _ domain.SessionService = (*Manager)(nil)
