package campus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEventsClientUserEvents(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/user/jsmith" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]Event{
			{EventID: 1, Description: "Career fair", Date: "2026-09-12"},
			{EventID: 2, Description: "Hack night", Date: "2026-09-20"},
		})
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, nil, nil)
	events, err := c.UserEvents(context.Background(), "jsmith")
	if err != nil {
		t.Fatalf("UserEvents() error: %v", err)
	}
	if len(events) != 2 || events[0].EventID != 1 {
		t.Errorf("UserEvents() = %+v", events)
	}
}

func TestEventsClientDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(EventDetail{
			Date:        "2026-09-12",
			Description: "Career fair",
			Groups:      []GroupRef{{GroupID: 3, GroupName: "CS Club"}},
		})
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, nil, nil)
	detail, err := c.EventDetail(context.Background(), 7)
	if err != nil {
		t.Fatalf("EventDetail() error: %v", err)
	}
	if len(detail.Groups) != 1 || detail.Groups[0].GroupName != "CS Club" {
		t.Errorf("EventDetail() = %+v", detail)
	}
}

func TestEventsClientRSVP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/rsvp/7":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["username"] != "jsmith" {
				t.Errorf("rsvp body = %v", body)
			}
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodDelete && r.URL.Path == "/rsvp/7/jsmith":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, nil, nil)
	if err := c.RSVP(context.Background(), 7, "jsmith"); err != nil {
		t.Errorf("RSVP() error: %v", err)
	}
	if err := c.CancelRSVP(context.Background(), 7, "jsmith"); err != nil {
		t.Errorf("CancelRSVP() error: %v", err)
	}
}

func TestGroupsClientAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/groups/":
			_ = json.NewEncoder(w).Encode([]int{3, 5})
		case "/groups/by_id/":
			var ids []int
			_ = json.NewDecoder(r.Body).Decode(&ids)
			if len(ids) != 2 {
				t.Errorf("by_id body = %v", ids)
			}
			_ = json.NewEncoder(w).Encode([]Group{
				{GroupID: 3, GroupName: "CS Club", Members: []string{"jsmith"}},
				{GroupID: 5, GroupName: "Chess", Members: nil},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewGroupsClient(srv.URL, nil, nil)
	groups, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(groups) != 2 || groups[0].GroupName != "CS Club" {
		t.Errorf("All() = %+v", groups)
	}
}

func TestGroupsClientAllEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/groups/" {
			t.Errorf("by_id should not be called when there are no IDs")
		}
		_ = json.NewEncoder(w).Encode([]int{})
	}))
	defer srv.Close()

	c := NewGroupsClient(srv.URL, nil, nil)
	groups, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("All() = %+v, want empty", groups)
	}
}

func TestGroupsClientJoinLeave(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/groups/join/3" && r.URL.Path != "/groups/leave/3" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "jsmith" {
			t.Errorf("body = %v", body)
		}
	}))
	defer srv.Close()

	c := NewGroupsClient(srv.URL, nil, nil)
	if err := c.Join(context.Background(), 3, "jsmith"); err != nil {
		t.Errorf("Join() error: %v", err)
	}
	if err := c.Leave(context.Background(), 3, "jsmith"); err != nil {
		t.Errorf("Leave() error: %v", err)
	}
}

func TestGroupsClientCreateDuplicate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "group exists"})
	}))
	defer srv.Close()

	c := NewGroupsClient(srv.URL, nil, nil)
	err := c.Create(context.Background(), CreateGroupRequest{GroupName: "CS Club", AdminUsername: "jsmith"})
	if !errors.Is(err, ErrGroupNameTaken) {
		t.Errorf("Create() error = %v, want ErrGroupNameTaken", err)
	}
}

func TestNotificationsClientForUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notifications/jsmith" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]Notification{
			{NotificationID: 1, Description: "Hack night moved", EventDate: "2026-09-20", IsRead: false},
		})
	}))
	defer srv.Close()

	c := NewNotificationsClient(srv.URL, nil, nil)
	ns, err := c.ForUser(context.Background(), "jsmith")
	if err != nil {
		t.Fatalf("ForUser() error: %v", err)
	}
	if len(ns) != 1 || ns[0].IsRead {
		t.Errorf("ForUser() = %+v", ns)
	}
}

func TestClientUnreachable(t *testing.T) {
	t.Parallel()

	c := NewEventsClient("http://127.0.0.1:1", nil, nil)
	_, err := c.UserEvents(context.Background(), "jsmith")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("UserEvents() error = %v, want ErrUnreachable", err)
	}
}

func TestClientNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "no such event"})
	}))
	defer srv.Close()

	c := NewEventsClient(srv.URL, nil, nil)
	_, err := c.EventDetail(context.Background(), 99)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("EventDetail() error = %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound || statusErr.Detail != "no such event" {
		t.Errorf("StatusError = %+v", statusErr)
	}
}
