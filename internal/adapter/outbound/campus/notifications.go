package campus

import (
	"context"
	"log/slog"
	"net/http"
)

// NotificationsClient talks to the notifications service.
type NotificationsClient struct {
	core
}

// NewNotificationsClient creates a client for the notifications service.
func NewNotificationsClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *NotificationsClient {
	return &NotificationsClient{core: newCore(baseURL, httpClient, logger)}
}

// ForUser lists the notification feed for username.
func (c *NotificationsClient) ForUser(ctx context.Context, username string) ([]Notification, error) {
	var notifications []Notification
	err := c.do(ctx, http.MethodGet, "/notifications/"+username, nil, &notifications)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
