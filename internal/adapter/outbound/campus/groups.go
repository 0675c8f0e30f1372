package campus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// GroupsClient talks to the groups service.
type GroupsClient struct {
	core
}

// NewGroupsClient creates a client for the groups service at baseURL.
func NewGroupsClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *GroupsClient {
	return &GroupsClient{core: newCore(baseURL, httpClient, logger)}
}

// GroupIDs lists all known group IDs.
func (c *GroupsClient) GroupIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.do(ctx, http.MethodGet, "/groups/", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GroupsByID resolves group records for the given IDs.
func (c *GroupsClient) GroupsByID(ctx context.Context, ids []int) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodPost, "/groups/by_id/", ids, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// All lists full records for every group (the two-step flow the service
// exposes: IDs first, then bulk resolve).
func (c *GroupsClient) All(ctx context.Context) ([]Group, error) {
	ids, err := c.GroupIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return c.GroupsByID(ctx, ids)
}

// Join adds username to a group.
func (c *GroupsClient) Join(ctx context.Context, groupID int, username string) error {
	body := struct {
		Username string `json:"username"`
	}{username}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/groups/join/%d", groupID), body, nil)
}

// Leave removes username from a group.
func (c *GroupsClient) Leave(ctx context.Context, groupID int, username string) error {
	body := struct {
		Username string `json:"username"`
	}{username}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/groups/leave/%d", groupID), body, nil)
}

// Create creates a new group with the caller as admin.
// A duplicate name maps to ErrGroupNameTaken.
func (c *GroupsClient) Create(ctx context.Context, req CreateGroupRequest) error {
	err := c.do(ctx, http.MethodPost, "/groups/create", req, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusConflict {
		return fmt.Errorf("%w: %s", ErrGroupNameTaken, req.GroupName)
	}
	return err
}

// AdminGroups lists the groups username administers.
func (c *GroupsClient) AdminGroups(ctx context.Context, username string) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodGet, "/groups/admin/"+username, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
