package services

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/dto"
)

// ShopAuthorizerSvc is the narrow authorization dependency other services take.
type ShopAuthorizerSvc interface {
	// AuthorizeUserAction returns nil if the user holds at least requiredRole in
	// the shop, ErrForbidden if the role is insufficient, ErrNotFound if the user
	// has no membership (existence is not disclosed).
	AuthorizeUserAction(ctx context.Context, userID, shopID string, requiredRole domain.UserShopRole) error
}

// ShopSvcFacade defines shop and membership management.
type ShopSvcFacade interface {
	ShopAuthorizerSvc

	// CreateShop creates a shop with the creator as OWNER.
	CreateShop(ctx context.Context, req dto.CreateShopRequest, creatorUserID string) (*domain.Shop, error)

	GetShopByID(ctx context.Context, shopID, requestingUserID string) (*domain.Shop, error)

	// ListUserShops retrieves the shops the user belongs to.
	ListUserShops(ctx context.Context, userID string) ([]domain.Shop, error)

	// AddMember grants a user a role in a shop. Requires OWNER.
	AddMember(ctx context.Context, shopID, userID string, role domain.UserShopRole, requestingUserID string) error
}
