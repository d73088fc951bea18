package mapping

import (
	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/models"
)

func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		ShopID:      d.ShopID,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		ShopID:      m.ShopID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		VendorID:    d.VendorID,
		ShopID:      d.ShopID,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		VendorID:    m.VendorID,
		ShopID:      m.ShopID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
