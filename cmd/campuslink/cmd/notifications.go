package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show your notification feed",
	Args:  cobra.NoArgs,
	RunE:  runNotifications,
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/notifications"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}

	notifications, err := a.notifications.ForUser(ctx, username)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}
	for _, n := range notifications {
		marker := "•"
		if n.IsRead {
			marker = " "
		}
		fmt.Printf("%s %-12s %s\n", marker, n.EventDate, n.Description)
	}
	return nil
}
