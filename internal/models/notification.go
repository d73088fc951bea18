package models

import "time"

// Notification is the db row for an advisory notification.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	ShopID         string    `db:"shop_id"`
	Type           string    `db:"type"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	IsRead         bool      `db:"is_read"`
	ActionURL      string    `db:"action_url"`
	CreatedAt      time.Time `db:"created_at"`
}
