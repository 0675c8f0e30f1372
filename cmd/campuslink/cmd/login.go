package cmd

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/campuslink/campuslink/internal/adapter/outbound/authgw"
	"github.com/campuslink/campuslink/internal/domain/session"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and persist the session",
	Long: `Sign in against the auth service and persist the credential locally.

The password is prompted for unless --password is given or the
CAMPUSLINK_PASSWORD environment variable is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	username := args[0]
	password, err := resolvePassword()
	if err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx, username, password)
	switch {
	case errors.Is(err, authgw.ErrInvalidCredentials):
		return fmt.Errorf("invalid username or password")
	case errors.Is(err, authgw.ErrUnreachable):
		return fmt.Errorf("auth service unreachable at %s", a.cfg.Services.Auth)
	case errors.Is(err, session.ErrStaleLogin):
		return fmt.Errorf("session changed while signing in; try again")
	case err != nil:
		return err
	}

	fmt.Printf("Signed in as %s\n", sess.DisplayName())
	return nil
}

// resolvePassword picks the password from the flag, the environment, or
// an interactive no-echo prompt, in that order.
func resolvePassword() (string, error) {
	if loginPassword != "" {
		return loginPassword, nil
	}
	if pw := os.Getenv("CAMPUSLINK_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("password is required")
	}
	return string(raw), nil
}
