package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"datahub/internal/domain"
)

func newLoginCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Sign in and persist the session locally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := deps.Session.Login(cmd.Context(), domain.Credentials{
				Username: args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}

func newRegisterCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := deps.Session.Register(cmd.Context(), domain.Credentials{
				Username: args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered as %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}

func newLogoutCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := deps.Session.Current()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}
