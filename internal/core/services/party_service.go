package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
)

type partyService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	vendorRepo   portsrepo.VendorRepositoryFacade
	shopSvc      portssvc.ShopAuthorizerSvc
}

// NewPartyService creates the customer and vendor profile service.
func NewPartyService(customerRepo portsrepo.CustomerRepositoryFacade, vendorRepo portsrepo.VendorRepositoryFacade, shopSvc portssvc.ShopAuthorizerSvc) portssvc.PartySvcFacade {
	return &partyService{
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		shopSvc:      shopSvc,
	}
}

func (s *partyService) CreateCustomer(ctx context.Context, shopID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Customer, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		ShopID:      shopID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		IsActive:    true,
		AuditFields: newAuditFields(creatorUserID, now),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *partyService) GetCustomerByID(ctx context.Context, shopID, customerID, requestingUserID string) (*domain.Customer, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}
	return customer, nil
}

func (s *partyService) ListCustomers(ctx context.Context, shopID, requestingUserID string, limit, offset int) ([]domain.Customer, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.customerRepo.ListCustomersByShop(ctx, shopID, limit, offset)
}

func (s *partyService) UpdateCustomer(ctx context.Context, shopID, customerID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Customer, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *partyService) CreateVendor(ctx context.Context, shopID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Vendor, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	vendor := domain.Vendor{
		VendorID:    uuid.NewString(),
		ShopID:      shopID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		IsActive:    true,
		AuditFields: newAuditFields(creatorUserID, now),
	}
	if err := s.vendorRepo.SaveVendor(ctx, vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *partyService) GetVendorByID(ctx context.Context, shopID, vendorID, requestingUserID string) (*domain.Vendor, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}
	return vendor, nil
}

func (s *partyService) ListVendors(ctx context.Context, shopID, requestingUserID string, limit, offset int) ([]domain.Vendor, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.vendorRepo.ListVendorsByShop(ctx, shopID, limit, offset)
}

func (s *partyService) UpdateVendor(ctx context.Context, shopID, vendorID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Vendor, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	vendor.LastUpdatedAt = time.Now()
	vendor.LastUpdatedBy = requestingUserID

	if err := s.vendorRepo.UpdateVendor(ctx, *vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}
