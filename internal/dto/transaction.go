package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// TransactionItemRequest is one line of a sale or purchase request. Exactly one
// of productID/serviceID must be set; service lines do not touch stock.
type TransactionItemRequest struct {
	ProductID   *string         `json:"productID,omitempty"`
	ServiceID   *string         `json:"serviceID,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateSaleRequest records a sale. CustomerID is optional: walk-in sales carry
// only a free-text customer name.
type CreateSaleRequest struct {
	CustomerID    *string                  `json:"customerID,omitempty"`
	CustomerName  string                   `json:"customerName,omitempty"`
	Items         []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	PaidAmount    decimal.Decimal          `json:"paidAmount"`
	Discount      decimal.Decimal          `json:"discount"`
	PaymentMethod string                   `json:"paymentMethod,omitempty"`
	DueDate       *time.Time               `json:"dueDate,omitempty"`
	Note          string                   `json:"note,omitempty"`
}

// CreatePurchaseRequest records a purchase from a vendor.
type CreatePurchaseRequest struct {
	VendorID      string                   `json:"vendorID" binding:"required"`
	Items         []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	PaidAmount    decimal.Decimal          `json:"paidAmount"`
	PaymentMethod string                   `json:"paymentMethod,omitempty"`
	DueDate       *time.Time               `json:"dueDate,omitempty"`
	Note          string                   `json:"note,omitempty"`
}

// CreatePaymentRequest records a payment against a party's outstanding balance.
// Role decides the direction: customer payments are received, vendor payments made.
type CreatePaymentRequest struct {
	PartyID       string           `json:"partyID" binding:"required"`
	Role          domain.PartyRole `json:"role" binding:"required,oneof=CUSTOMER VENDOR"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// CreateExpenseRequest records a standalone expense.
type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// SetTransactionStatusRequest transitions a transaction's workflow status.
type SetTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required,oneof=COMPLETED CANCELLED"`
}

// TransactionItemResponse is a line item as returned to the client.
type TransactionItemResponse struct {
	ItemID      string          `json:"itemID"`
	ProductID   *string         `json:"productID,omitempty"`
	ServiceID   *string         `json:"serviceID,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse is a ledger entry as returned to the client.
type TransactionResponse struct {
	TransactionID string                    `json:"transactionID"`
	Type          domain.TransactionType    `json:"type"`
	Amount        decimal.Decimal           `json:"amount"`
	PaidAmount    decimal.Decimal           `json:"paidAmount"`
	DueAmount     decimal.Decimal           `json:"dueAmount"`
	Discount      decimal.Decimal           `json:"discount"`
	Status        domain.TransactionStatus  `json:"status"`
	Date          time.Time                 `json:"date"`
	DueDate       *time.Time                `json:"dueDate,omitempty"`
	CustomerID    *string                   `json:"customerID,omitempty"`
	VendorID      *string                   `json:"vendorID,omitempty"`
	CustomerName  string                    `json:"customerName,omitempty"`
	PaymentMethod string                    `json:"paymentMethod,omitempty"`
	Note          string                    `json:"note,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	CreatedBy     string                    `json:"createdBy"`
	Items         []TransactionItemResponse `json:"items,omitempty"`
}

// ListTransactionsParams pages and filters a shop's transaction listing.
type ListTransactionsParams struct {
	Type   *domain.TransactionType `form:"type"`
	Limit  int                     `form:"limit"`
	Offset int                     `form:"offset"`
}

// Pagination describes the window of a paged listing.
type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListTransactionsResponse is a page of a shop's transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

// PartyLedgerParams pages a party's ledger history with an opaque cursor.
type PartyLedgerParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// PartyLedgerResponse is a page of a party's ledger history.
type PartyLedgerResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// PartyBalanceResponse carries a derived party balance.
type PartyBalanceResponse struct {
	PartyID string           `json:"partyID"`
	Role    domain.PartyRole `json:"role"`
	Balance decimal.Decimal  `json:"balance"`
}

// ToTransactionItemResponse converts a domain line item to its response DTO.
func ToTransactionItemResponse(item domain.TransactionItem) TransactionItemResponse {
	return TransactionItemResponse{
		ItemID:      item.ItemID,
		ProductID:   item.ProductID,
		ServiceID:   item.ServiceID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    item.Subtotal,
	}
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		PaidAmount:    txn.PaidAmount,
		DueAmount:     txn.DueAmount,
		Discount:      txn.Discount,
		Status:        txn.Status,
		Date:          txn.Date,
		DueDate:       txn.DueDate,
		CustomerID:    txn.CustomerID,
		VendorID:      txn.VendorID,
		CustomerName:  txn.CustomerName,
		PaymentMethod: txn.PaymentMethod,
		Note:          txn.Note,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
	if len(txn.Items) > 0 {
		resp.Items = make([]TransactionItemResponse, len(txn.Items))
		for i, item := range txn.Items {
			resp.Items[i] = ToTransactionItemResponse(item)
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
