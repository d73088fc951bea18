package domain

import "time"

// Shop is an isolated tenant containing products, parties, transactions and notifications.
type Shop struct {
	ShopID       string `json:"shopID"` // Primary Key (UUID)
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"` // e.g. "USD"
	Address      string `json:"address,omitempty"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// UserShopRole defines the possible roles a user can have within a shop.
type UserShopRole string

const (
	RoleOwner    UserShopRole = "OWNER"
	RoleMember   UserShopRole = "MEMBER"
	RoleReadOnly UserShopRole = "READONLY"
	RoleRemoved  UserShopRole = "REMOVED"
)

// AtLeast reports whether the role grants the privileges of required.
func (r UserShopRole) AtLeast(required UserShopRole) bool {
	rank := map[UserShopRole]int{RoleReadOnly: 1, RoleMember: 2, RoleOwner: 3}
	return rank[r] >= rank[required] && rank[r] > 0
}

// UserShop represents the membership of a User in a Shop.
type UserShop struct {
	UserID   string       `json:"userID"` // FK -> users.user_id
	ShopID   string       `json:"shopID"` // FK -> shops.shop_id
	Role     UserShopRole `json:"role"`
	JoinedAt time.Time    `json:"joinedAt"`
}
