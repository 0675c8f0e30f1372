package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List and manage your events",
	Long: `List the events you are attending or organizing.

Subcommands show event details, RSVP to events, and cancel or delete
them. All event commands require a signed-in session.`,
	Args: cobra.NoArgs,
	RunE: runEventsList,
}

var eventShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show one event with its groups",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventShow,
}

var eventRSVPCmd = &cobra.Command{
	Use:   "rsvp <event-id>",
	Short: "RSVP to an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventRSVP,
}

var eventCancelCmd = &cobra.Command{
	Use:   "cancel <event-id>",
	Short: "Withdraw your RSVP",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventCancel,
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete an event you own",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventDelete,
}

func init() {
	eventsCmd.AddCommand(eventShowCmd, eventRSVPCmd, eventCancelCmd, eventDeleteCmd)
	rootCmd.AddCommand(eventsCmd)
}

func parseEventID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", arg)
	}
	return id, nil
}

func runEventsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/events"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}

	events, err := a.events.UserEvents(ctx, username)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%6d  %-12s %s\n", e.EventID, e.Date, e.Description)
	}
	return nil
}

func runEventShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/events"); err != nil {
		return err
	}
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	detail, err := a.events.EventDetail(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Event %d\n  Date: %s\n  %s\n", id, detail.Date, detail.Description)
	if len(detail.Groups) > 0 {
		fmt.Println("  Groups:")
		for _, g := range detail.Groups {
			fmt.Printf("    %d  %s\n", g.GroupID, g.GroupName)
		}
	}
	return nil
}

func runEventRSVP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/events"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	if err := a.events.RSVP(ctx, id, username); err != nil {
		return err
	}
	fmt.Printf("RSVP'd to event %d\n", id)
	return nil
}

func runEventCancel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/events"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	if err := a.events.CancelRSVP(ctx, id, username); err != nil {
		return err
	}
	fmt.Printf("RSVP withdrawn for event %d\n", id)
	return nil
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/events"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	if err := a.events.DeleteEvent(ctx, username, id); err != nil {
		return err
	}
	fmt.Printf("Event %d deleted\n", id)
	return nil
}
