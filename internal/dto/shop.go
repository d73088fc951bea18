package dto

import "github.com/shoplite/shop_management_app/internal/core/domain"

// CreateShopRequest defines the data needed to create a shop.
type CreateShopRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
	Address      string `json:"address,omitempty"`
}

// ShopResponse is a shop as returned to the client.
type ShopResponse struct {
	ShopID       string `json:"shopID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	Address      string `json:"address,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// ToShopResponse converts a domain shop to its response DTO.
func ToShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ShopID:       s.ShopID,
		Name:         s.Name,
		CurrencyCode: s.CurrencyCode,
		Address:      s.Address,
		IsActive:     s.IsActive,
	}
}

// ToShopResponses converts a slice of domain shops to response DTOs.
func ToShopResponses(shops []domain.Shop) []ShopResponse {
	responses := make([]ShopResponse, len(shops))
	for i := range shops {
		responses[i] = ToShopResponse(&shops[i])
	}
	return responses
}
