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

type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	shopSvc     portssvc.ShopAuthorizerSvc
}

// NewProductService creates the product catalogue service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, shopSvc portssvc.ShopAuthorizerSvc) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		shopSvc:     shopSvc,
	}
}

func (s *productService) CreateProduct(ctx context.Context, shopID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
	}
	if req.StockQuantity < 0 || req.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: stock levels cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		ShopID:        shopID,
		SKU:           req.SKU,
		Name:          req.Name,
		Category:      req.Category,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
		AuditFields:   newAuditFields(creatorUserID, now),
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, shopID, productID, requestingUserID string) (*domain.Product, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, shopID, requestingUserID string, limit, offset int) ([]domain.Product, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.productRepo.ListProductsByShop(ctx, shopID, limit, offset)
}

// UpdateProduct applies the provided catalogue fields. Stock quantity is not
// updatable here; it moves only through recorded transactions.
func (s *productService) UpdateProduct(ctx context.Context, shopID, productID string, req dto.UpdateProductRequest, requestingUserID string) (*domain.Product, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}

	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, fmt.Errorf("%w: cost price cannot be negative", apperrors.ErrValidation)
		}
		product.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling price cannot be negative", apperrors.ErrValidation)
		}
		product.SellingPrice = *req.SellingPrice
	}
	if req.MinStockLevel != nil {
		if *req.MinStockLevel < 0 {
			return nil, fmt.Errorf("%w: minimum stock level cannot be negative", apperrors.ErrValidation)
		}
		product.MinStockLevel = *req.MinStockLevel
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = requestingUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, shopID, productID, requestingUserID string) error {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return err
	}
	return s.productRepo.DeactivateProduct(ctx, shopID, productID, requestingUserID)
}

// GetLowStockProducts returns active products at or below their minimum stock level.
func (s *productService) GetLowStockProducts(ctx context.Context, shopID, requestingUserID string) ([]domain.Product, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.productRepo.FindLowStockProducts(ctx, shopID)
}
