package repositories

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// ShopRepositoryFacade defines persistence operations for shops and memberships.
type ShopRepositoryFacade interface {
	// SaveShop persists a new shop and the creator's OWNER membership atomically.
	SaveShop(ctx context.Context, shop domain.Shop, creatorUserID string) error

	FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error)

	// FindUserShopRole retrieves a user's membership in a shop, or ErrNotFound.
	FindUserShopRole(ctx context.Context, userID, shopID string) (*domain.UserShop, error)

	// AddUserToShop creates or updates a membership.
	AddUserToShop(ctx context.Context, membership domain.UserShop) error

	// ListShopsByUser retrieves the shops a user belongs to.
	ListShopsByUser(ctx context.Context, userID string) ([]domain.Shop, error)
}
