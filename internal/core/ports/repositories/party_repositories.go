package repositories

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomersByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// VendorRepositoryFacade defines persistence operations for vendors.
type VendorRepositoryFacade interface {
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)
	ListVendorsByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Vendor, error)
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error
}
