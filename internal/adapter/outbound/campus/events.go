package campus

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// EventsClient talks to the events service.
type EventsClient struct {
	core
}

// NewEventsClient creates a client for the events service at baseURL.
func NewEventsClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *EventsClient {
	return &EventsClient{core: newCore(baseURL, httpClient, logger)}
}

// UserEvents lists the events a user is attending or organizing.
func (c *EventsClient) UserEvents(ctx context.Context, username string) ([]Event, error) {
	var events []Event
	err := c.do(ctx, http.MethodGet, "/events/user/"+username, nil, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// EventDetail fetches one event with its associated groups.
func (c *EventsClient) EventDetail(ctx context.Context, eventID int) (EventDetail, error) {
	var detail EventDetail
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", eventID), nil, &detail)
	return detail, err
}

// GroupEvents lists the events belonging to a group.
func (c *EventsClient) GroupEvents(ctx context.Context, groupID int) ([]Event, error) {
	var events []Event
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/group/%d", groupID), nil, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateGroupEvent creates an event in a group the caller administers.
func (c *EventsClient) CreateGroupEvent(ctx context.Context, groupID int, ev EventCreate) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/events/group/%d", groupID), ev, nil)
}

// DeleteEvent removes an event owned by username.
func (c *EventsClient) DeleteEvent(ctx context.Context, username string, eventID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%s/%d", username, eventID), nil, nil)
}

// RSVP registers username as attending an event.
func (c *EventsClient) RSVP(ctx context.Context, eventID int, username string) error {
	body := struct {
		Username string `json:"username"`
	}{username}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/rsvp/%d", eventID), body, nil)
}

// CancelRSVP withdraws username's attendance.
func (c *EventsClient) CancelRSVP(ctx context.Context, eventID int, username string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rsvp/%d/%s", eventID, username), nil, nil)
}
