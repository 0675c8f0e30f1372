// Package cmd provides the CLI commands for campuslink.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campuslink/campuslink/internal/config"
)

var (
	cfgFile string
	devMode bool
)

var rootCmd = &cobra.Command{
	Use:   "campuslink",
	Short: "campuslink - campus events and groups from the terminal",
	Long: `campuslink is a terminal client for the campus events platform.

It keeps a local signed-in session, guards every page behind it, and
talks to the auth, events, groups and notifications services.

Quick start:
  1. Register an account:  campuslink register jsmith --first Jane --last Smith
  2. Sign in:              campuslink login jsmith
  3. Look around:          campuslink events

Configuration:
  Config is loaded from campuslink.yaml in the current directory,
  $HOME/.campuslink/, or /etc/campuslink/.

  Environment variables can override config values with the CAMPUSLINK_ prefix.
  Example: CAMPUSLINK_SERVICES_AUTH=http://auth.campus.example

Commands:
  login          Sign in and persist the session
  logout         Sign out and clear the stored credential
  register       Create a new account
  whoami         Show the current session
  open           Show what a navigation to a path would do
  events         List and manage your events
  groups         Browse, join and manage groups
  notifications  Show your notification feed
  activity       Show the local activity journal
  version        Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./campuslink.yaml)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "enable development mode (verbose logging, trace export)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
