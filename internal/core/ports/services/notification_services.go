package services

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/dto"
)

// NotificationDispatcher converts domain events into persisted notifications.
// Delivery is at-least-once; callers treat emit failures as non-fatal.
type NotificationDispatcher interface {
	Emit(ctx context.Context, event domain.Event) (*domain.Notification, error)
}

// NotificationSvcFacade combines dispatch with the client-facing read/delete surface.
type NotificationSvcFacade interface {
	NotificationDispatcher

	// ListNotifications retrieves recent notifications plus the unread count.
	ListNotifications(ctx context.Context, shopID, requestingUserID string, limit int) (*dto.ListNotificationsResponse, error)

	// MarkNotificationRead transitions one notification to read (one-way).
	MarkNotificationRead(ctx context.Context, shopID, notificationID, requestingUserID string) error

	// MarkAllNotificationsRead transitions every unread notification to read.
	MarkAllNotificationsRead(ctx context.Context, shopID, requestingUserID string) error

	// DeleteNotification removes a notification permanently.
	DeleteNotification(ctx context.Context, shopID, notificationID, requestingUserID string) error
}
