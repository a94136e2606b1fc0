package domain

import "time"

// NotificationType tags a notification for client-side styling.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)

// Notification is an in-app message addressed to a single user.
type Notification struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	UserID    string           `json:"userId" bson:"user_id"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Type      NotificationType `json:"type" bson:"type"`
	Link      string           `json:"link,omitempty" bson:"link,omitempty"`
	Read      bool             `json:"read" bson:"read"`
	CreatedAt time.Time        `json:"createdAt" bson:"created_at"`
}
