package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
)

type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	shopSvc          portssvc.ShopAuthorizerSvc
}

// NewNotificationService creates the notification dispatcher and read surface.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, shopSvc portssvc.ShopAuthorizerSvc) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		shopSvc:          shopSvc,
	}
}

// Emit persists a notification for the event. No authorization check: emitters
// are other services acting after an already authorized write.
func (s *notificationService) Emit(ctx context.Context, event domain.Event) (*domain.Notification, error) {
	if event.ShopID == "" {
		return nil, fmt.Errorf("%w: event shop ID is required", apperrors.ErrValidation)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("%w: event type is required", apperrors.ErrValidation)
	}

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		ShopID:         event.ShopID,
		Type:           event.Type,
		Title:          event.Title,
		Message:        event.Message,
		IsRead:         false,
		ActionURL:      event.ActionURL,
		CreatedAt:      time.Now(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListNotifications retrieves recent notifications plus the unread count.
func (s *notificationService) ListNotifications(ctx context.Context, shopID, requestingUserID string, limit int) (*dto.ListNotificationsResponse, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	notifications, unread, err := s.notificationRepo.ListNotificationsByShop(ctx, shopID, limit)
	if err != nil {
		return nil, err
	}

	return &dto.ListNotificationsResponse{
		Notifications: dto.ToNotificationResponses(notifications),
		UnreadCount:   unread,
	}, nil
}

// MarkNotificationRead transitions one notification to read. One-way: there is
// no way back to unread.
func (s *notificationService) MarkNotificationRead(ctx context.Context, shopID, notificationID, requestingUserID string) error {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return err
	}
	return s.notificationRepo.MarkNotificationRead(ctx, shopID, notificationID)
}

// MarkAllNotificationsRead transitions every unread notification of the shop to read.
func (s *notificationService) MarkAllNotificationsRead(ctx context.Context, shopID, requestingUserID string) error {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return err
	}
	return s.notificationRepo.MarkAllNotificationsRead(ctx, shopID)
}

// DeleteNotification removes a notification permanently.
func (s *notificationService) DeleteNotification(ctx context.Context, shopID, notificationID, requestingUserID string) error {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return err
	}
	return s.notificationRepo.DeleteNotification(ctx, shopID, notificationID)
}
