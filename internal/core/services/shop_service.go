package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
)

type shopService struct {
	shopRepo portsrepo.ShopRepositoryFacade
}

// NewShopService creates the shop and membership service.
func NewShopService(shopRepo portsrepo.ShopRepositoryFacade) portssvc.ShopSvcFacade {
	return &shopService{shopRepo: shopRepo}
}

// AuthorizeUserAction checks that the user holds at least requiredRole in the shop.
// A missing membership yields ErrNotFound so the shop's existence is not disclosed.
func (s *shopService) AuthorizeUserAction(ctx context.Context, userID, shopID string, requiredRole domain.UserShopRole) error {
	membership, err := s.shopRepo.FindUserShopRole(ctx, userID, shopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if !membership.Role.AtLeast(requiredRole) {
		return fmt.Errorf("%w: requires role %s", apperrors.ErrForbidden, requiredRole)
	}
	return nil
}

// CreateShop creates a shop with the creator as OWNER.
func (s *shopService) CreateShop(ctx context.Context, req dto.CreateShopRequest, creatorUserID string) (*domain.Shop, error) {
	now := time.Now()
	shop := domain.Shop{
		ShopID:       uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Address:      req.Address,
		IsActive:     true,
		AuditFields:  newAuditFields(creatorUserID, now),
	}
	if err := s.shopRepo.SaveShop(ctx, shop, creatorUserID); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (s *shopService) GetShopByID(ctx context.Context, shopID, requestingUserID string) (*domain.Shop, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.shopRepo.FindShopByID(ctx, shopID)
}

// ListUserShops retrieves the shops the user belongs to.
func (s *shopService) ListUserShops(ctx context.Context, userID string) ([]domain.Shop, error) {
	return s.shopRepo.ListShopsByUser(ctx, userID)
}

// AddMember grants a user a role in a shop. Only owners may manage membership.
func (s *shopService) AddMember(ctx context.Context, shopID, userID string, role domain.UserShopRole, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleOwner); err != nil {
		return err
	}
	switch role {
	case domain.RoleOwner, domain.RoleMember, domain.RoleReadOnly, domain.RoleRemoved:
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	return s.shopRepo.AddUserToShop(ctx, domain.UserShop{
		UserID:   userID,
		ShopID:   shopID,
		Role:     role,
		JoinedAt: time.Now(),
	})
}
