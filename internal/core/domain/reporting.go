package domain

import "github.com/shopspring/decimal"

// ShopSummary aggregates ledger totals for a shop over a period.
// Cancelled transactions are excluded from every figure.
type ShopSummary struct {
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	PaymentsReceived decimal.Decimal `json:"paymentsReceived"`
	PaymentsMade     decimal.Decimal `json:"paymentsMade"`
	TotalReceivable  decimal.Decimal `json:"totalReceivable"` // Outstanding customer dues
	TotalPayable     decimal.Decimal `json:"totalPayable"`    // Outstanding vendor dues
	TransactionCount int64           `json:"transactionCount"`
}
