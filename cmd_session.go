package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/validator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var req model.UserLoginRequest
	cmd := &cobra.Command{
		Use:   "login [EMAIL]",
		Short: "Log in and turn on cloud sync",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Email = args[0]
			}
			if err := validator.ValidateLoginRequest(&req); err != nil {
				return err
			}
			if req.Provider == "" {
				// The password is asked for like the login form does, and never checked
				if _, err := readPassword(cmd); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.ErrOrStderr(), "Signing in...")
			var user *model.User
			if req.Provider != "" {
				user, err = a.session.LoginWithProvider(cmd.Context(), req.Provider)
			} else {
				user, err = a.session.Login(cmd.Context(), req.Email, req.Name)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "display name (default the email's local part)")
	cmd.Flags().StringVarP(&req.Provider, "provider", "p", "", "log in with a provider account, e.g. google")
	return cmd
}

// readPassword prompts for a password when stdin is a terminal.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}
	if strings.TrimSpace(string(password)) == "" {
		return "", errors.New("password is empty")
	}
	return string(password), nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and turn off cloud sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.session.Current(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in, books are kept on this device only")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nid: %s\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}
