package mapping

import (
	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/models"
)

func ToModelShop(d domain.Shop) models.Shop {
	return models.Shop{
		ShopID:       d.ShopID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		Address:      d.Address,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainShop(m models.Shop) domain.Shop {
	return domain.Shop{
		ShopID:       m.ShopID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Address:      m.Address,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainUserShop(m models.UserShop) domain.UserShop {
	return domain.UserShop{
		UserID:   m.UserID,
		ShopID:   m.ShopID,
		Role:     domain.UserShopRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
