package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry by the business event it records.
type TransactionType string

const (
	Sale            TransactionType = "SALE"
	Purchase        TransactionType = "PURCHASE"
	PaymentReceived TransactionType = "PAYMENT_RECEIVED"
	PaymentMade     TransactionType = "PAYMENT_MADE"
	Expense         TransactionType = "EXPENSE"
)

// HasItems reports whether this transaction type carries line items.
func (t TransactionType) HasItems() bool {
	return t == Sale || t == Purchase
}

// TransactionStatus is a workflow marker. The financial fact is DueAmount:
// a transaction is settled when DueAmount is zero regardless of status.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a durable financial record scoped to a shop. It is immutable
// once recorded except for status transitions, and is never physically deleted.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	ShopID        string            `json:"shopID"`        // FK -> shops.shop_id (Not Null)
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`     // Total value, >= 0
	PaidAmount    decimal.Decimal   `json:"paidAmount"` // >= 0
	DueAmount     decimal.Decimal   `json:"dueAmount"`  // Always max(0, Amount - PaidAmount)
	Discount      decimal.Decimal   `json:"discount"`   // Deducted from the item subtotal sum
	Status        TransactionStatus `json:"status"`
	Date          time.Time         `json:"date"`
	DueDate       *time.Time        `json:"dueDate,omitempty"`
	CustomerID    *string           `json:"customerID,omitempty"` // Nullable; walk-in sales carry only CustomerName
	VendorID      *string           `json:"vendorID,omitempty"`   // Nullable
	CustomerName  string            `json:"customerName,omitempty"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	Note          string            `json:"note,omitempty"`
	AuditFields
	Items []TransactionItem `json:"items,omitempty"` // Loaded separately for list views
}

// Settled reports whether the transaction carries no outstanding due.
func (t Transaction) Settled() bool {
	return t.DueAmount.IsZero()
}

// PartyID returns the customer or vendor this transaction is tagged to, if any.
func (t Transaction) PartyID() (string, PartyRole, bool) {
	if t.CustomerID != nil {
		return *t.CustomerID, PartyCustomer, true
	}
	if t.VendorID != nil {
		return *t.VendorID, PartyVendor, true
	}
	return "", "", false
}

// TransactionItem is a single line of an item-bearing transaction. It references
// either a product or a service, never both.
type TransactionItem struct {
	ItemID        string          `json:"itemID"`        // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> transactions.transaction_id (Not Null)
	ProductID     *string         `json:"productID,omitempty"`
	ServiceID     *string         `json:"serviceID,omitempty"`
	Description   string          `json:"description,omitempty"`
	Quantity      int64           `json:"quantity"`  // > 0
	UnitPrice     decimal.Decimal `json:"unitPrice"` // >= 0
	Subtotal      decimal.Decimal `json:"subtotal"`  // Quantity * UnitPrice
}

// ComputeDueAmount computes the unpaid portion of a transaction, floored at zero.
func ComputeDueAmount(amount, paid decimal.Decimal) decimal.Decimal {
	due := amount.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// StockDirection is the direction a stock delta moves a product's quantity.
type StockDirection string

const (
	StockDecrement StockDirection = "DECREMENT"
	StockIncrement StockDirection = "INCREMENT"
)

// Reversed returns the opposite direction, used when voiding a transaction.
func (d StockDirection) Reversed() StockDirection {
	if d == StockDecrement {
		return StockIncrement
	}
	return StockDecrement
}

// StockDelta is one inventory adjustment implied by a transaction line item.
type StockDelta struct {
	ProductID string
	Quantity  int64 // > 0; Direction carries the sign
	Direction StockDirection
}

// StockDeltasFor derives the inventory deltas implied by a transaction's items.
// Sales decrement stock, purchases increment it; service lines have no effect.
// Payment and expense transactions never touch stock.
func StockDeltasFor(txType TransactionType, items []TransactionItem) []StockDelta {
	if !txType.HasItems() {
		return nil
	}
	direction := StockIncrement
	if txType == Sale {
		direction = StockDecrement
	}
	deltas := make([]StockDelta, 0, len(items))
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		deltas = append(deltas, StockDelta{
			ProductID: *item.ProductID,
			Quantity:  item.Quantity,
			Direction: direction,
		})
	}
	return deltas
}

// ReverseStockDeltas flips the direction of every delta, restoring stock on cancellation.
func ReverseStockDeltas(deltas []StockDelta) []StockDelta {
	reversed := make([]StockDelta, len(deltas))
	for i, d := range deltas {
		reversed[i] = StockDelta{ProductID: d.ProductID, Quantity: d.Quantity, Direction: d.Direction.Reversed()}
	}
	return reversed
}
