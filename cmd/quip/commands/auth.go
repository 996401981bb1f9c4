package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quip/internal/domain"
)

// readPassword returns --password, or the first line of stdin when unset.
func readPassword(cmd *cobra.Command) (string, error) {
	if password != "" {
		return password, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("password required (-p or stdin)")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// report prints a successful result or turns a failed one into an error.
func report(cmd *cobra.Command, res domain.Result) error {
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and remember the identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd)
			if err != nil {
				return err
			}
			res := appCtx.Sessions.Login(cmd.Context(), domain.Username(args[0]), pw)
			return report(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin if omitted)")
	return cmd
}

func signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup <username> <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd)
			if err != nil {
				return err
			}
			res := appCtx.Sessions.Signup(cmd.Context(), domain.Username(args[0]), args[1], pw)
			return report(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin if omitted)")
	return cmd
}
