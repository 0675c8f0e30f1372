package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored credential",
	Long: `Sign out of the current session.

The stored credential is removed, including any legacy credential files
from older releases. The in-memory session is reset even if removing
the files fails.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if _, err := a.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("signed out, but clearing stored credentials failed: %w", err)
	}
	fmt.Println("Signed out")
	return nil
}
