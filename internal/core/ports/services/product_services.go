package services

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/dto"
)

// ProductSvcFacade defines catalogue operations for products. Stock changes are
// out of scope here: they happen only through recorded transactions.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, shopID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, shopID, productID, requestingUserID string) (*domain.Product, error)
	ListProducts(ctx context.Context, shopID, requestingUserID string, limit, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, shopID, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, shopID, productID, requestingUserID string) error

	// GetLowStockProducts returns active products at or below their minimum stock level.
	GetLowStockProducts(ctx context.Context, shopID, requestingUserID string) ([]domain.Product, error)
}
