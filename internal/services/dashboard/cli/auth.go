package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(rt *runtime) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := rt.prompt("Password: ")
				if err != nil {
					return err
				}
				password = line
			}
			sess, err := rt.dashboard.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			who := sess.SubjectID
			if who == "" {
				who = email
			}
			return rt.message(fmt.Sprintf("logged in as %s", who))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newSignupCommand(rt *runtime) *cobra.Command {
	var email, password, licenseKey string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register an account with a license key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.dashboard.Signup(cmd.Context(), email, password, licenseKey); err != nil {
				return err
			}
			return rt.message("account created, run `culater login` to sign in")
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&licenseKey, "license-key", "", "license key")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.dashboard.Logout(cmd.Context()); err != nil {
				return err
			}
			return rt.message("logged out")
		},
	}
}

// prompt reads one line from the input stream.
func (r *runtime) prompt(question string) (string, error) {
	fmt.Fprint(r.streams.Err, question)
	reader := bufio.NewReader(r.streams.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
