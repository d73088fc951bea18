package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the db row for a ledger entry.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	ShopID        string          `db:"shop_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	DueAmount     decimal.Decimal `db:"due_amount"`
	Discount      decimal.Decimal `db:"discount"`
	Status        string          `db:"status"`
	Date          time.Time       `db:"date"`
	DueDate       *time.Time      `db:"due_date"`
	CustomerID    *string         `db:"customer_id"`
	VendorID      *string         `db:"vendor_id"`
	CustomerName  string          `db:"customer_name"`
	PaymentMethod string          `db:"payment_method"`
	Note          string          `db:"note"`
	AuditFields
}

// TransactionItem is the db row for a transaction line item.
type TransactionItem struct {
	ItemID        string          `db:"item_id"`
	TransactionID string          `db:"transaction_id"`
	ProductID     *string         `db:"product_id"`
	ServiceID     *string         `db:"service_id"`
	Description   string          `db:"description"`
	Quantity      int64           `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Subtotal      decimal.Decimal `db:"subtotal"`
}
