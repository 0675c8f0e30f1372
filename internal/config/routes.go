package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/campuslink/campuslink/internal/domain/route"
)

// routeEntry is the YAML shape of one route table row.
type routeEntry struct {
	Path      string `yaml:"path"`
	Name      string `yaml:"name"`
	Access    string `yaml:"access"`
	Condition string `yaml:"condition"`
}

// routeFile is the YAML shape of a route table file.
type routeFile struct {
	Routes []routeEntry `yaml:"routes"`
}

// DefaultRouteTable returns the built-in route table.
func DefaultRouteTable() []route.Spec {
	return []route.Spec{
		{Path: "/", Name: "welcome", Access: route.AccessEntry},
		{Path: "/register", Name: "register", Access: route.AccessEntry},
		{Path: "/dashboard", Name: "dashboard", Access: route.AccessAuthenticated},
		{Path: "/events", Name: "events", Access: route.AccessAuthenticated},
		{Path: "/groups", Name: "groups", Access: route.AccessAuthenticated},
		{Path: "/groups/create", Name: "group-create", Access: route.AccessAuthenticated},
		{Path: "/groups/manage", Name: "group-manage", Access: route.AccessAuthenticated},
		{Path: "/notifications", Name: "notifications", Access: route.AccessAuthenticated},
	}
}

// LoadRouteTable reads a YAML route table from path. The file replaces
// the built-in table entirely, so it must carry its own entry route.
func LoadRouteTable(path string) ([]route.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route table: %w", err)
	}

	var rf routeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}
	if len(rf.Routes) == 0 {
		return nil, fmt.Errorf("route table %s defines no routes", path)
	}

	specs := make([]route.Spec, 0, len(rf.Routes))
	seen := make(map[string]struct{}, len(rf.Routes))
	entries := 0
	for i, e := range rf.Routes {
		if e.Path == "" {
			return nil, fmt.Errorf("routes[%d]: path is required", i)
		}
		if _, dup := seen[e.Path]; dup {
			return nil, fmt.Errorf("routes[%d]: duplicate path %q", i, e.Path)
		}
		seen[e.Path] = struct{}{}

		access := route.Access(e.Access)
		if !access.IsValid() {
			return nil, fmt.Errorf("routes[%d]: unknown access %q", i, e.Access)
		}
		if access == route.AccessEntry {
			entries++
		}

		specs = append(specs, route.Spec{
			Path:      e.Path,
			Name:      e.Name,
			Access:    access,
			Condition: e.Condition,
		})
	}

	if entries == 0 {
		return nil, fmt.Errorf("route table %s has no entry route", path)
	}

	return specs, nil
}
