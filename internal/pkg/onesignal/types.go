package onesignal

import "time"

const (
	EventNotificationDisplayed = "notification.displayed"
	EventNotificationClicked   = "notification.clicked"
	EventNotificationDismissed = "notification.dismissed"
)

// Notification is the payload of every notification event. Optional fields
// are empty for event types that do not carry them.
type Notification struct {
	Event          string         `json:"event" validate:"required"`
	AppID          string         `json:"app_id" validate:"required"`
	Timestamp      int64          `json:"timestamp" validate:"gt=0"`
	NotificationID string         `json:"notification_id"`
	PlayerID       string         `json:"player_id"`
	ExternalUserID string         `json:"external_user_id,omitempty"`
	Heading        string         `json:"heading,omitempty"`
	Content        string         `json:"content,omitempty"`
	URL            string         `json:"url,omitempty"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

func (n *Notification) Time() time.Time {
	return time.Unix(n.Timestamp, 0).UTC()
}
