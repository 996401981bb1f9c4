package commands

import (
	"context"

	"github.com/spf13/cobra"

	"quip/internal/app"
)

var (
	home      string
	storeKind string
	identity  string
	password  string
	appCtx    *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	home, storeKind, identity, password = "", "", "", ""

	root := &cobra.Command{
		Use:          "quip",
		Short:        "Sign in to quip from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if storeKind != "" {
				cfg.Store = storeKind
			}
			if identity != "" {
				cfg.IdentityURL = identity
			}

			w, err := app.NewWire(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			w.Sessions.Initialize(cmd.Context())
			appCtx = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			err := appCtx.Close()
			appCtx = nil
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.quip)")
	root.PersistentFlags().StringVar(&storeKind, "store", "", "session store backend: file, sqlite or redis")
	root.PersistentFlags().StringVar(&identity, "identity", "", "identity service base URL (default: built-in mock)")

	root.AddCommand(loginCmd(), signupCmd(), logoutCmd(), whoamiCmd())
	root.SetErrPrefix("quip:")
	return root
}
