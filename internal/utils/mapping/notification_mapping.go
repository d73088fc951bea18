package mapping

import (
	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/models"
)

func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		ShopID:         d.ShopID,
		Type:           string(d.Type),
		Title:          d.Title,
		Message:        d.Message,
		IsRead:         d.IsRead,
		ActionURL:      d.ActionURL,
		CreatedAt:      d.CreatedAt,
	}
}

func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		ShopID:         m.ShopID,
		Type:           domain.NotificationType(m.Type),
		Title:          m.Title,
		Message:        m.Message,
		IsRead:         m.IsRead,
		ActionURL:      m.ActionURL,
		CreatedAt:      m.CreatedAt,
	}
}

func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	out := make([]domain.Notification, len(ms))
	for i, m := range ms {
		out[i] = ToDomainNotification(m)
	}
	return out
}
