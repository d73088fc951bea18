package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	"github.com/shoplite/shop_management_app/internal/models"
	"github.com/shoplite/shop_management_app/internal/utils/mapping"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (notification_id, shop_id, type, title, message, is_read, action_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID, m.ShopID, m.Type, m.Title, m.Message, m.IsRead, m.ActionURL, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// ListNotificationsByShop retrieves the newest notifications plus the unread count.
func (r *PgxNotificationRepository) ListNotificationsByShop(ctx context.Context, shopID string, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 {
		limit = 50
	}

	var unread int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE shop_id = $1 AND is_read = FALSE;`
	if err := r.Pool.QueryRow(ctx, countQuery, shopID).Scan(&unread); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count unread notifications for shop "+shopID, err)
	}

	query := `
		SELECT notification_id, shop_id, type, title, message, is_read, action_url, created_at
		FROM notifications
		WHERE shop_id = $1
		ORDER BY created_at DESC, notification_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list notifications for shop "+shopID, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(&m.NotificationID, &m.ShopID, &m.Type, &m.Title, &m.Message, &m.IsRead, &m.ActionURL, &m.CreatedAt)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan notification row", err)
		}
		notifications = append(notifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating notification rows", err)
	}

	return mapping.ToDomainNotificationSlice(notifications), unread, nil
}

// MarkNotificationRead transitions a notification to read. Marking an already read
// notification is a no-op, not an error.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, shopID, notificationID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND shop_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, notificationID, shopID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification read "+notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllNotificationsRead(ctx context.Context, shopID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE shop_id = $1 AND is_read = FALSE;`
	if _, err := r.Pool.Exec(ctx, query, shopID); err != nil {
		return apperrors.NewAppError(500, "failed to mark all notifications read for shop "+shopID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) DeleteNotification(ctx context.Context, shopID, notificationID string) error {
	query := `DELETE FROM notifications WHERE notification_id = $1 AND shop_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, notificationID, shopID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete notification "+notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
