package model

import "time"

// NotificationContent is the payload handed to the dispatcher
type NotificationContent struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Notification is one delivered notification for one recipient
type Notification struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	TenantID    string     `json:"tenantId" bson:"tenantId"`
	RecipientID string     `json:"recipientId" bson:"recipientId"`
	RoleGroup   string     `json:"roleGroup" bson:"roleGroup"`
	Title       string     `json:"title" bson:"title"`
	Message     string     `json:"message" bson:"message"`
	Link        string     `json:"link" bson:"link"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	ReadAt      *time.Time `json:"readAt,omitempty" bson:"readAt,omitempty"`
}
