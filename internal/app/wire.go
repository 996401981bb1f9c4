package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"quip/internal/domain"
	"quip/internal/logger"
	sessionsvc "quip/internal/services/session"
	"quip/internal/store"
	"quip/internal/validator"
)

const sqliteFile = "session.db"

// Wire bundles the store, validator and session manager for the CLI.
type Wire struct {
	Config    Config
	Log       *zap.Logger
	Store     domain.SessionStore
	Validator domain.IdentityValidator
	Sessions  *sessionsvc.Manager
	HTTP      *http.Client

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. The session manager is
// not yet initialized.
func NewWire(ctx context.Context, cfg Config, httpClient *http.Client) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogMode)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	w := &Wire{Config: cfg, Log: log, HTTP: httpClient}
	if w.HTTP == nil {
		w.HTTP = http.DefaultClient
	}

	storeOpts := []store.Option{
		store.WithKey(cfg.SessionKey),
		store.WithPassphrase(cfg.SessionPassphrase),
	}
	switch cfg.Store {
	case StoreSQLite:
		s, err := store.OpenSQLite(filepath.Join(cfg.Home, sqliteFile), storeOpts...)
		if err != nil {
			return nil, err
		}
		w.Store = s
		w.closers = append(w.closers, s.Close)
	case StoreRedis:
		s, err := store.DialRedis(ctx, cfg.RedisAddr, storeOpts...)
		if err != nil {
			return nil, err
		}
		w.Store = s
		w.closers = append(w.closers, s.Close)
	default:
		w.Store = store.NewFileStore(cfg.Home, storeOpts...)
	}

	if cfg.IdentityURL != "" {
		w.Validator = validator.NewRemote(cfg.IdentityURL, w.HTTP)
	} else {
		w.Validator = validator.NewMock(cfg.MockLatency)
	}

	w.Sessions = sessionsvc.New(w.Validator, w.Store,
		sessionsvc.WithLogger(log.Named("session")),
		sessionsvc.WithTimeout(cfg.OpTimeout),
	)
	log.Debug("wired",
		zap.String("home", cfg.Home),
		zap.String("store", cfg.Store),
		zap.Bool("remote_identity", cfg.IdentityURL != ""),
	)
	return w, nil
}

// Close releases backend connections and flushes the logger.
func (w *Wire) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = fmt.Errorf("close: %w", err)
		}
	}
	_ = w.Log.Sync()
	return first
}
