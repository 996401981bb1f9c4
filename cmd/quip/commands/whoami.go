package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quip/internal/domain"
	"quip/internal/services/session"
)

// whoami prints the restored identity, the CLI's stand-in for the home page.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the remembered identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := session.RequireIdentity(appCtx.Sessions.Snapshot())
			if errors.Is(err, domain.ErrNotAuthenticated) {
				return fmt.Errorf("not logged in. run: quip login <username>")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\nemail: %s\nid:    %s\n", id.Username, id.Email, id.ID)
			return nil
		},
	}
}
