package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quip/internal/crypto"
	"quip/internal/domain"
	"quip/internal/logger"
	"quip/internal/store"
	"quip/internal/validator"
)

type config struct {
	Addr        string        `env:"QUIPD_ADDR" envDefault:"127.0.0.1:8081"`
	AccountsDir string        `env:"QUIPD_ACCOUNTS"`
	MockLatency time.Duration `env:"QUIP_MOCK_LATENCY" envDefault:"1s"`
	LogLevel    string        `env:"QUIP_LOG_LEVEL" envDefault:"info"`
	LogMode     string        `env:"QUIP_LOG_MODE" envDefault:"dev"`
}

// demoPassword seeds the directory so the demo account works out of the box.
const demoPassword = "password"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:          "identityd",
		Short:        "Serve quip login and signup decisions over HTTP",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			addr, _ := flags.GetString("addr")
			accounts, _ := flags.GetString("accounts")
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("parse env: %w", err)
			}
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("accounts") {
				cfg.AccountsDir = accounts
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8081)")
	cmd.Flags().String("accounts", "", "account directory; empty serves the placeholder policy")
	return cmd
}

func buildValidator(log *zap.Logger, cfg config) (domain.IdentityValidator, error) {
	if cfg.AccountsDir == "" {
		log.Info("serving placeholder policy")
		return validator.NewMock(cfg.MockLatency), nil
	}
	if err := os.MkdirAll(cfg.AccountsDir, 0o700); err != nil {
		return nil, err
	}
	accounts := store.NewAccountFileStore(cfg.AccountsDir)
	if err := seedDemo(accounts); err != nil {
		return nil, err
	}
	log.Info("serving account directory", zap.String("dir", cfg.AccountsDir))
	return validator.NewDirectory(accounts), nil
}

// seedDemo registers the demo account unless it exists.
func seedDemo(accounts domain.AccountStore) error {
	_, ok, err := accounts.LoadAccount(validator.DemoIdentity.Username)
	if err != nil || ok {
		return err
	}
	hash, err := crypto.HashPassword(demoPassword, crypto.DefaultArgon2idParams())
	if err != nil {
		return err
	}
	return accounts.SaveAccount(domain.Account{Identity: validator.DemoIdentity, PasswordHash: hash})
}

func serve(ctx context.Context, cfg config) error {
	log, err := logger.New(cfg.LogLevel, cfg.LogMode)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	v, err := buildValidator(log, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newServer(log, v),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("identityd listening", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
