package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var activityLimit int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the local activity journal",
	Long: `Show recent entries from the local activity journal: logins,
logouts, registrations and guarded navigations that redirected.

The journal lives next to the stored credential and never leaves the
machine. Disable it with journal.enabled: false.`,
	Args: cobra.NoArgs,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().IntVar(&activityLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(activityCmd)
}

func runActivity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if a.journal == nil {
		return fmt.Errorf("activity journal is disabled or unavailable")
	}

	entries, err := a.journal.Recent(ctx, activityLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No activity recorded")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-12s %s", e.At.Local().Format(time.DateTime), e.Kind, e.Username)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Println(line)
	}
	return nil
}
