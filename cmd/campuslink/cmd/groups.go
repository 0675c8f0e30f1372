package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/campuslink/campuslink/internal/adapter/outbound/campus"
)

var (
	groupName        string
	groupDescription string
	eventDate        string
	eventDescription string
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Browse, join and manage groups",
	Long: `List all campus groups, with a marker next to the ones you belong to.

Subcommands join and leave groups, create new ones, and manage the
groups you administer.`,
	Args: cobra.NoArgs,
	RunE: runGroupsList,
}

var groupJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Join a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupJoin,
}

var groupLeaveCmd = &cobra.Command{
	Use:   "leave <group-id>",
	Short: "Leave a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupLeave,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new group with you as admin",
	Args:  cobra.NoArgs,
	RunE:  runGroupCreate,
}

var groupManageCmd = &cobra.Command{
	Use:   "manage",
	Short: "List the groups you administer",
	Args:  cobra.NoArgs,
	RunE:  runGroupManage,
}

var groupEventsCmd = &cobra.Command{
	Use:   "events <group-id>",
	Short: "List a group's events",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupEvents,
}

var groupAddEventCmd = &cobra.Command{
	Use:   "add-event <group-id>",
	Short: "Create an event in a group you administer",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupAddEvent,
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupName, "name", "", "group name")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "group description")
	_ = groupCreateCmd.MarkFlagRequired("name")

	groupAddEventCmd.Flags().StringVar(&eventDate, "date", "", "event date (YYYY-MM-DD)")
	groupAddEventCmd.Flags().StringVar(&eventDescription, "description", "", "event description")
	_ = groupAddEventCmd.MarkFlagRequired("date")
	_ = groupAddEventCmd.MarkFlagRequired("description")

	groupsCmd.AddCommand(groupJoinCmd, groupLeaveCmd, groupCreateCmd,
		groupManageCmd, groupEventsCmd, groupAddEventCmd)
	rootCmd.AddCommand(groupsCmd)
}

func parseGroupID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid group id %q", arg)
	}
	return id, nil
}

func runGroupsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}

	groups, err := a.groups.All(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No groups")
		return nil
	}
	for _, g := range groups {
		marker := " "
		if slices.Contains(g.Members, username) {
			marker = "*"
		}
		fmt.Printf("%s %6d  %-24s %s\n", marker, g.GroupID, g.GroupName, g.Description)
	}
	fmt.Println("\n* = member")
	return nil
}

func runGroupJoin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}
	id, err := parseGroupID(args[0])
	if err != nil {
		return err
	}

	if err := a.groups.Join(ctx, id, username); err != nil {
		return err
	}
	fmt.Printf("Joined group %d\n", id)
	return nil
}

func runGroupLeave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}
	id, err := parseGroupID(args[0])
	if err != nil {
		return err
	}

	if err := a.groups.Leave(ctx, id, username); err != nil {
		return err
	}
	fmt.Printf("Left group %d\n", id)
	return nil
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups/create"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}

	err = a.groups.Create(ctx, campus.CreateGroupRequest{
		GroupName:     groupName,
		Description:   groupDescription,
		AdminUsername: username,
	})
	if errors.Is(err, campus.ErrGroupNameTaken) {
		return fmt.Errorf("a group named %q already exists", groupName)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Group %q created\n", groupName)
	return nil
}

func runGroupManage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups/manage"); err != nil {
		return err
	}
	username, err := a.username()
	if err != nil {
		return err
	}

	groups, err := a.groups.AdminGroups(ctx, username)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("You do not administer any groups")
		return nil
	}
	for _, g := range groups {
		fmt.Printf("%6d  %-24s %d member(s)\n", g.GroupID, g.GroupName, len(g.Members))
	}
	return nil
}

func runGroupEvents(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups"); err != nil {
		return err
	}
	id, err := parseGroupID(args[0])
	if err != nil {
		return err
	}

	events, err := a.events.GroupEvents(ctx, id)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events for this group")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%6d  %-12s %s\n", e.EventID, e.Date, e.Description)
	}
	return nil
}

func runGroupAddEvent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.visit("/groups/manage"); err != nil {
		return err
	}
	id, err := parseGroupID(args[0])
	if err != nil {
		return err
	}

	if err := a.events.CreateGroupEvent(ctx, id, campus.EventCreate{
		Description: eventDescription,
		Date:        eventDate,
	}); err != nil {
		return err
	}
	fmt.Printf("Event created in group %d\n", id)
	return nil
}
