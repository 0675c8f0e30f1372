package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslink/campuslink/internal/domain/route"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Show what a navigation to a path would do",
	Long: `Evaluate the route guard for a path and print the decision.

Useful for checking route table changes: "open" runs exactly the guard
the page commands run, without touching any backend.

Examples:
  campuslink open /events
  campuslink open /`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	decision, err := a.router.Navigate(args[0])
	if errors.Is(err, route.ErrUnknownRoute) {
		return fmt.Errorf("no such route: %s", args[0])
	}
	if err != nil {
		return err
	}

	spec, _ := a.router.Lookup(args[0])
	fmt.Printf("%s (%s): %s\n", args[0], spec.Name, decision)
	return nil
}
