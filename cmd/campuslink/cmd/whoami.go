package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	sess := a.sessions.Current()
	if !sess.Authenticated {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("Signed in as %s (%s)\n", sess.DisplayName(), sess.Username)
	return nil
}
