package campus

// Event is one entry in a user's event list.
type Event struct {
	EventID     int    `json:"eventID"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// GroupRef is a group reference embedded in an event detail.
type GroupRef struct {
	GroupID     int    `json:"groupID"`
	GroupName   string `json:"groupName"`
	Description string `json:"description"`
}

// EventDetail is the full record for one event.
type EventDetail struct {
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Groups      []GroupRef `json:"groups"`
}

// EventCreate carries the fields for creating an event in a group.
type EventCreate struct {
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Group is a full group record.
type Group struct {
	GroupID       int      `json:"groupID"`
	GroupName     string   `json:"groupName"`
	Description   string   `json:"description"`
	AdminUsername string   `json:"adminUsername,omitempty"`
	Members       []string `json:"members"`
}

// CreateGroupRequest carries the fields of POST /groups/create.
type CreateGroupRequest struct {
	GroupName     string `json:"groupName"`
	Description   string `json:"description"`
	AdminUsername string `json:"adminUsername"`
}

// Notification is one entry in a user's notification feed.
type Notification struct {
	NotificationID        int    `json:"notificationID"`
	Description           string `json:"description"`
	EventDate             string `json:"eventDate"`
	NotificationTimestamp string `json:"notificationTimestamp"`
	IsRead                bool   `json:"isRead"`
}
