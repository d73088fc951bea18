package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// CreatePartyRequest defines the data needed to create a customer or vendor.
type CreatePartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

// UpdatePartyRequest defines the updatable profile fields of a party.
type UpdatePartyRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Address *string `json:"address,omitempty"`
}

// PartyResponse is a customer or vendor profile as returned to the client.
// Balance is derived from the ledger at read time, never stored.
type PartyResponse struct {
	PartyID  string           `json:"partyID"`
	Role     domain.PartyRole `json:"role"`
	Name     string           `json:"name"`
	Phone    string           `json:"phone,omitempty"`
	Email    string           `json:"email,omitempty"`
	Address  string           `json:"address,omitempty"`
	IsActive bool             `json:"isActive"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
}

// ToCustomerResponse converts a domain customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) PartyResponse {
	return PartyResponse{
		PartyID:  c.CustomerID,
		Role:     domain.PartyCustomer,
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
		IsActive: c.IsActive,
	}
}

// ToVendorResponse converts a domain vendor to its response DTO.
func ToVendorResponse(v *domain.Vendor) PartyResponse {
	return PartyResponse{
		PartyID:  v.VendorID,
		Role:     domain.PartyVendor,
		Name:     v.Name,
		Phone:    v.Phone,
		Email:    v.Email,
		Address:  v.Address,
		IsActive: v.IsActive,
	}
}
