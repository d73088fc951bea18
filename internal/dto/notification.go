package dto

import (
	"time"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// NotificationResponse is a notification as returned to the client.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Type           domain.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	IsRead         bool                    `json:"isRead"`
	ActionURL      string                  `json:"actionURL,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ListNotificationsResponse is the polling payload: recent notifications plus
// the unread count for the badge.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// ToNotificationResponse converts a domain notification to its response DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		IsRead:         n.IsRead,
		ActionURL:      n.ActionURL,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain notifications to response DTOs.
func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(ns))
	for i := range ns {
		responses[i] = ToNotificationResponse(&ns[i])
	}
	return responses
}
