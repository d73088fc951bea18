package models

// Customer is the db row for a customer profile.
type Customer struct {
	CustomerID string `db:"customer_id"`
	ShopID     string `db:"shop_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Address    string `db:"address"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Vendor is the db row for a vendor profile.
type Vendor struct {
	VendorID string `db:"vendor_id"`
	ShopID   string `db:"shop_id"`
	Name     string `db:"name"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
	Address  string `db:"address"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
