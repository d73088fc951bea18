package mapping

import (
	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/models"
)

// ToModelProduct converts a domain product to its db row.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:     d.ProductID,
		ShopID:        d.ShopID,
		SKU:           d.SKU,
		Name:          d.Name,
		Category:      d.Category,
		CostPrice:     d.CostPrice,
		SellingPrice:  d.SellingPrice,
		StockQuantity: d.StockQuantity,
		MinStockLevel: d.MinStockLevel,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a db row to a domain product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		ShopID:        m.ShopID,
		SKU:           m.SKU,
		Name:          m.Name,
		Category:      m.Category,
		CostPrice:     m.CostPrice,
		SellingPrice:  m.SellingPrice,
		StockQuantity: m.StockQuantity,
		MinStockLevel: m.MinStockLevel,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of db rows to domain products.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	out := make([]domain.Product, len(ms))
	for i, m := range ms {
		out[i] = ToDomainProduct(m)
	}
	return out
}
