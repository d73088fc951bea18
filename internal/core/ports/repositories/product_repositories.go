package repositories

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// ProductReader defines read operations for product data.
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by ID.
	FindProductsByIDs(ctx context.Context, shopID string, productIDs []string) (map[string]domain.Product, error)

	// ListProductsByShop retrieves a page of a shop's active products.
	ListProductsByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Product, error)

	// FindLowStockProducts retrieves active products at or below their minimum stock level.
	FindLowStockProducts(ctx context.Context, shopID string) ([]domain.Product, error)

	// FindLowStockAmong retrieves the subset of the given products at or below their
	// minimum stock level. Used after a stock adjustment to emit low-stock events.
	FindLowStockAmong(ctx context.Context, shopID string, productIDs []string) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data. Stock quantity is not
// writable here; it changes only through the ledger writer's stock deltas.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates a product's catalogue fields (not stock).
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeactivateProduct soft-deletes a product.
	DeactivateProduct(ctx context.Context, shopID, productID, updatedBy string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
