package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// ListTransactionsFilter narrows and pages a shop's transaction listing.
type ListTransactionsFilter struct {
	Type   *domain.TransactionType
	Limit  int
	Offset int
}

// LedgerReader defines read operations over the transaction ledger.
type LedgerReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindItemsByTransactionID retrieves the line items of a transaction.
	FindItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionItem, error)

	// ListTransactionsByShop retrieves a page of a shop's transactions plus the total count.
	ListTransactionsByShop(ctx context.Context, shopID string, filter ListTransactionsFilter) ([]domain.Transaction, int64, error)

	// ListTransactionsByParty retrieves a party's ledger history using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByParty(ctx context.Context, shopID, partyID string, role domain.PartyRole, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindOverdueTransactions returns transactions that are neither completed nor
	// cancelled, carry a positive due amount, and whose due date has elapsed as of
	// asOf. Transactions with no due date fall back to the grace window measured
	// from the transaction date.
	FindOverdueTransactions(ctx context.Context, shopID string, asOf time.Time, graceWindow time.Duration) ([]domain.Transaction, error)
}

// LedgerWriter defines write operations over the transaction ledger. Every method
// commits as a single database transaction: ledger row, line items and stock deltas
// apply together or not at all.
type LedgerWriter interface {
	// SaveTransaction persists a transaction with its items and applies the implied
	// stock deltas atomically. A decrement that would take any product's stock below
	// zero fails the whole batch with ErrInsufficientStock. Returns the IDs of
	// products whose stock changed, so callers can run the low-stock check.
	SaveTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem, deltas []domain.StockDelta) ([]string, error)

	// SettleTransaction marks a pending transaction completed, setting the paid
	// amount to the full total and the due amount to zero. Returns ErrConflict if
	// the transaction is not pending.
	SettleTransaction(ctx context.Context, shopID, transactionID, updatedBy string, updatedAt time.Time) error

	// CancelTransaction voids a transaction and applies the reversing stock deltas
	// in the same database transaction. Returns the IDs of products whose stock
	// changed. Returns ErrConflict if the transaction is already cancelled.
	CancelTransaction(ctx context.Context, shopID, transactionID string, deltas []domain.StockDelta, updatedBy string, updatedAt time.Time) ([]string, error)
}

// BalanceReader derives party balances by aggregating ledger entries.
type BalanceReader interface {
	// AggregatePartyBalance computes the outstanding balance for a party: the sum
	// of due amounts over the party's non-cancelled sales (purchases for vendors)
	// minus the amounts of payments recorded against them, floored at zero.
	AggregatePartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole) (decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	BalanceReader
}
