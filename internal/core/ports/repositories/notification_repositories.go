package repositories

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence operations for notifications.
// Deletion is real here: notifications are advisory, not financial records.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ListNotificationsByShop retrieves the newest notifications plus the unread count.
	ListNotificationsByShop(ctx context.Context, shopID string, limit int) ([]domain.Notification, int64, error)

	// MarkNotificationRead transitions a notification to read. Idempotent.
	MarkNotificationRead(ctx context.Context, shopID, notificationID string) error

	// MarkAllNotificationsRead transitions every unread notification of a shop to read.
	MarkAllNotificationsRead(ctx context.Context, shopID string) error

	// DeleteNotification removes a notification permanently.
	DeleteNotification(ctx context.Context, shopID, notificationID string) error
}
