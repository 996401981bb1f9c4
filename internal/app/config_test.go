package app_test

import (
	"context"
	"testing"
	"time"

	"quip/internal/app"
	"quip/internal/domain"
	"quip/internal/store"
	"quip/internal/validator"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := app.LoadConfigFrom(map[string]string{"QUIP_HOME": t.TempDir()})
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.SessionKey != "" {
		t.Fatalf("session key defaulted before Validate: %q", cfg.SessionKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Store != app.StoreFile || cfg.SessionKey != domain.DefaultSessionKey {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MockLatency != time.Second || cfg.OpTimeout != 0 {
		t.Fatalf("unexpected durations %+v", cfg)
	}
	if cfg.LogLevel != "warn" || cfg.LogMode != "dev" {
		t.Fatalf("unexpected log settings %+v", cfg)
	}
}

func TestLoadConfigFrom_Overrides(t *testing.T) {
	cfg, err := app.LoadConfigFrom(map[string]string{
		"QUIP_HOME":         "/tmp/q",
		"QUIP_STORE":        "sqlite",
		"QUIP_SESSION_KEY":  "alt",
		"QUIP_MOCK_LATENCY": "250ms",
		"QUIP_OP_TIMEOUT":   "5s",
		"QUIP_IDENTITY_URL": "http://127.0.0.1:8081",
	})
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Home != "/tmp/q" || cfg.Store != "sqlite" || cfg.SessionKey != "alt" {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.MockLatency != 250*time.Millisecond || cfg.OpTimeout != 5*time.Second {
		t.Fatalf("durations ignored: %+v", cfg)
	}
	if cfg.IdentityURL != "http://127.0.0.1:8081" {
		t.Fatalf("identity url ignored: %+v", cfg)
	}
}

func TestLoadConfigFrom_BadDuration(t *testing.T) {
	if _, err := app.LoadConfigFrom(map[string]string{"QUIP_MOCK_LATENCY": "soon"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := app.Config{Home: t.TempDir(), Store: " SQLite "}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Store != app.StoreSQLite || cfg.SessionKey != domain.DefaultSessionKey {
		t.Fatalf("not normalised: %+v", cfg)
	}

	bad := app.Config{Home: t.TempDir(), Store: "etcd"}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	neg := app.Config{Home: t.TempDir(), Store: "file", OpTimeout: -time.Second}
	if err := neg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestNewWire_Backends(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{app.StoreFile, app.StoreSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := app.Config{Home: t.TempDir(), Store: backend, LogLevel: "error"}
			w, err := app.NewWire(ctx, cfg, nil)
			if err != nil {
				t.Fatalf("NewWire: %v", err)
			}
			defer w.Close()

			switch backend {
			case app.StoreFile:
				if _, ok := w.Store.(*store.FileStore); !ok {
					t.Fatalf("store is %T", w.Store)
				}
			case app.StoreSQLite:
				if _, ok := w.Store.(*store.SQLiteStore); !ok {
					t.Fatalf("store is %T", w.Store)
				}
			}
			if _, ok := w.Validator.(*validator.Mock); !ok {
				t.Fatalf("validator is %T", w.Validator)
			}

			if res := w.Sessions.Login(ctx, "demo", "password"); !res.Success {
				t.Fatalf("login: %+v", res)
			}
			if id, ok, err := w.Store.LoadSession(ctx); err != nil || !ok || id != validator.DemoIdentity {
				t.Fatalf("persisted %+v ok=%v err=%v", id, ok, err)
			}
		})
	}
}

func TestNewWire_RemoteValidator(t *testing.T) {
	cfg := app.Config{Home: t.TempDir(), Store: app.StoreFile, IdentityURL: "http://127.0.0.1:1"}
	w, err := app.NewWire(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	defer w.Close()
	if _, ok := w.Validator.(*validator.Remote); !ok {
		t.Fatalf("validator is %T", w.Validator)
	}
}
