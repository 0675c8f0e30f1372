// Package config provides configuration types for campuslink.
//
// The schema is file-based and intentionally small: service endpoints,
// local storage locations, and route guard behavior. Everything has a
// working default so the CLI runs with no config file at all.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for campuslink.
type Config struct {
	// Services configures the backend service endpoints.
	Services ServicesConfig `yaml:"services" mapstructure:"services"`

	// Storage configures where credentials are persisted.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Journal configures the local activity journal.
	Journal JournalConfig `yaml:"journal" mapstructure:"journal"`

	// Routes configures the route guard.
	Routes RoutesConfig `yaml:"routes" mapstructure:"routes"`

	// Telemetry configures trace export.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty. DevMode=true overrides to "debug".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Timeout is the timeout for backend requests (e.g., "10s", "1m").
	// Defaults to "10s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`

	// DevMode enables development features (verbose logging, etc).
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ServicesConfig configures the backend services campuslink talks to.
// Each service is addressed by a base URL.
type ServicesConfig struct {
	// Auth is the base URL of the authentication service.
	Auth string `yaml:"auth" mapstructure:"auth" validate:"omitempty,url"`

	// Events is the base URL of the events service.
	Events string `yaml:"events" mapstructure:"events" validate:"omitempty,url"`

	// Groups is the base URL of the groups service.
	Groups string `yaml:"groups" mapstructure:"groups" validate:"omitempty,url"`

	// Notifications is the base URL of the notifications service.
	Notifications string `yaml:"notifications" mapstructure:"notifications" validate:"omitempty,url"`
}

// StorageConfig configures local credential persistence.
type StorageConfig struct {
	// Dir is the directory where the credential file is stored.
	// Defaults to "~/.campuslink".
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// JournalConfig configures the local activity journal.
type JournalConfig struct {
	// Enabled turns the journal on or off.
	// Default: true.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file for the journal.
	// Defaults to "<storage.dir>/activity.db".
	Path string `yaml:"path" mapstructure:"path"`
}

// RoutesConfig configures the route guard.
type RoutesConfig struct {
	// EntryPath is the path of the entry (login) route.
	// Defaults to "/".
	EntryPath string `yaml:"entry_path" mapstructure:"entry_path"`

	// HomePath is where authenticated users land when they hit the entry route.
	// Defaults to "/dashboard".
	HomePath string `yaml:"home_path" mapstructure:"home_path"`

	// EntryPolicy controls what happens when an authenticated user visits
	// the entry route: "redirect" sends them to HomePath, "render" shows
	// the entry route anyway.
	// Defaults to "redirect".
	EntryPolicy string `yaml:"entry_policy" mapstructure:"entry_policy" validate:"omitempty,oneof=redirect render"`

	// File is an optional YAML route table overriding the built-in routes.
	File string `yaml:"file" mapstructure:"file"`
}

// TelemetryConfig configures OpenTelemetry trace export.
type TelemetryConfig struct {
	// Enabled turns span export on or off.
	// Default: false (opt-in).
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// SetDevDefaults applies permissive defaults for development mode.
// These defaults are applied BEFORE validation.
func (c *Config) SetDevDefaults() {
	if !c.DevMode {
		return
	}

	c.LogLevel = "debug"

	// Dev mode traces by default unless explicitly disabled.
	if !viper.IsSet("telemetry.enabled") {
		c.Telemetry.Enabled = true
	}
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	// Service defaults match the local development compose setup.
	if c.Services.Auth == "" {
		c.Services.Auth = "http://localhost:8000"
	}
	if c.Services.Notifications == "" {
		c.Services.Notifications = "http://localhost:8001"
	}
	if c.Services.Events == "" {
		c.Services.Events = "http://localhost:8002"
	}
	if c.Services.Groups == "" {
		c.Services.Groups = "http://localhost:8003"
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}

	if c.Storage.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Storage.Dir = filepath.Join(home, ".campuslink")
		} else {
			c.Storage.Dir = ".campuslink"
		}
	}

	// Journal defaults — on by default, stored next to the credentials.
	// viper.IsSet distinguishes "not set" (zero value) from "explicitly false".
	if !viper.IsSet("journal.enabled") {
		c.Journal.Enabled = true
	}
	if c.Journal.Path == "" {
		c.Journal.Path = filepath.Join(c.Storage.Dir, "activity.db")
	}

	if c.Routes.EntryPath == "" {
		c.Routes.EntryPath = "/"
	}
	if c.Routes.HomePath == "" {
		c.Routes.HomePath = "/dashboard"
	}
	if c.Routes.EntryPolicy == "" {
		c.Routes.EntryPolicy = "redirect"
	}
}
