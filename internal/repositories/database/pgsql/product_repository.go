package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	"github.com/shoplite/shop_management_app/internal/models"
	"github.com/shoplite/shop_management_app/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, shop_id, sku, name, category, cost_price, selling_price,
	       stock_quantity, min_stock_level, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

// SaveProduct persists a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (
			product_id, shop_id, sku, name, category, cost_price, selling_price,
			stock_quantity, min_stock_level, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID, m.ShopID, m.SKU, m.Name, m.Category, m.CostPrice, m.SellingPrice,
		m.StockQuantity, m.MinStockLevel, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert product "+m.ProductID, err)
	}
	return nil
}

// UpdateProduct updates a product's catalogue fields. Stock quantity is deliberately
// excluded; it only moves through ledger stock deltas.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET sku = $1, name = $2, category = $3, cost_price = $4, selling_price = $5,
		    min_stock_level = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE product_id = $10 AND shop_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SKU, m.Name, m.Category, m.CostPrice, m.SellingPrice,
		m.MinStockLevel, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
		m.ProductID, m.ShopID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateProduct soft-deletes a product.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, shopID, productID, updatedBy string) error {
	query := `
		UPDATE products
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE product_id = $3 AND shop_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now(), updatedBy, productID, shopID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate product "+productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	var m models.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID, &m.ShopID, &m.SKU, &m.Name, &m.Category, &m.CostPrice, &m.SellingPrice,
		&m.StockQuantity, &m.MinStockLevel, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}

	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// FindProductsByIDs retrieves multiple products keyed by ID. Missing IDs are
// simply absent from the map; the caller decides whether that is an error.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, shopID string, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE shop_id = $1 AND product_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, shopID, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by IDs", err)
	}
	defer rows.Close()

	products, err := scanProductRows(rows)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.Product, len(products))
	for _, p := range products {
		out[p.ProductID] = p
	}
	return out, nil
}

// ListProductsByShop retrieves a page of a shop's active products ordered by name.
func (r *PgxProductRepository) ListProductsByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE shop_id = $1 AND is_active = TRUE
		ORDER BY name, product_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list products for shop "+shopID, err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// FindLowStockProducts retrieves active products at or below their minimum stock level.
func (r *PgxProductRepository) FindLowStockProducts(ctx context.Context, shopID string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE shop_id = $1 AND is_active = TRUE AND stock_quantity <= min_stock_level
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query low stock products for shop "+shopID, err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// FindLowStockAmong retrieves the subset of the given products at or below their
// minimum stock level.
func (r *PgxProductRepository) FindLowStockAmong(ctx context.Context, shopID string, productIDs []string) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE shop_id = $1 AND product_id = ANY($2) AND is_active = TRUE AND stock_quantity <= min_stock_level;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query low stock among products for shop "+shopID, err)
	}
	defer rows.Close()

	return scanProductRows(rows)
}

func scanProductRows(rows pgx.Rows) ([]domain.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var m models.Product
		err := rows.Scan(
			&m.ProductID, &m.ShopID, &m.SKU, &m.Name, &m.Category, &m.CostPrice, &m.SellingPrice,
			&m.StockQuantity, &m.MinStockLevel, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return mapping.ToDomainProductSlice(products), nil
}
