package domain

// PartyRole distinguishes the two sides a shop trades with.
type PartyRole string

const (
	PartyCustomer PartyRole = "CUSTOMER"
	PartyVendor   PartyRole = "VENDOR"
)

// Valid reports whether the role is one of the two known party roles.
func (r PartyRole) Valid() bool {
	return r == PartyCustomer || r == PartyVendor
}

// Customer is a party the shop sells to. The outstanding receivable is not
// stored here; it is derived from the ledger by the balance calculator.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	ShopID     string `json:"shopID"`     // FK -> shops.shop_id (Not Null)
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Vendor is a party the shop purchases from. The outstanding payable is
// derived from the ledger, same as the customer receivable.
type Vendor struct {
	VendorID string `json:"vendorID"` // Primary Key (UUID)
	ShopID   string `json:"shopID"`   // FK -> shops.shop_id (Not Null)
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
