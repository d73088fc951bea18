package services

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/dto"
)

// PartySvcFacade defines profile operations for customers and vendors.
// Balances are not managed here; they are derived by the balance service.
type PartySvcFacade interface {
	CreateCustomer(ctx context.Context, shopID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, shopID, customerID, requestingUserID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, shopID, requestingUserID string, limit, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, shopID, customerID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Customer, error)

	CreateVendor(ctx context.Context, shopID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Vendor, error)
	GetVendorByID(ctx context.Context, shopID, vendorID, requestingUserID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, shopID, requestingUserID string, limit, offset int) ([]domain.Vendor, error)
	UpdateVendor(ctx context.Context, shopID, vendorID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Vendor, error)
}
