package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account management commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var user, email, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Register(cmd.Context(), user, email, pass); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(session.Current().User)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Login(cmd.Context(), user, pass); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(session.Current().User)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and erase the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session.Logout()

			out := NewOutput(cfg.Output)
			out.PrintMessage("Signed out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			current := session.Current()
			if !current.Authenticated() {
				return fmt.Errorf("not signed in")
			}

			// Counts come from the server, never from a local tally
			if err := session.RefreshProfile(cmd.Context()); err != nil {
				return err
			}
			current = session.Current()
			if !current.Authenticated() {
				return fmt.Errorf("session expired, sign in again")
			}

			out := NewOutput(cfg.Output)
			out.Print(current.User)
			return nil
		},
	}
}
