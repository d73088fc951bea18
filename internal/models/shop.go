package models

import "time"

// Shop is the db row for a tenant shop.
type Shop struct {
	ShopID       string `db:"shop_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	Address      string `db:"address"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// UserShop is the db row for shop membership.
type UserShop struct {
	UserID   string    `db:"user_id"`
	ShopID   string    `db:"shop_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}
