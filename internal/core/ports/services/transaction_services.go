package services

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/dto"
)

// TransactionRecorderSvc defines the write side of the ledger: each call validates
// the request, then persists the transaction, its items and the implied stock
// deltas as one atomic unit of work.
type TransactionRecorderSvc interface {
	// CreateSale records a sale, decrementing stock for each product line.
	CreateSale(ctx context.Context, shopID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Transaction, error)

	// CreatePurchase records a purchase, incrementing stock for each product line.
	CreatePurchase(ctx context.Context, shopID string, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Transaction, error)

	// CreatePayment records a payment received from a customer or made to a vendor.
	// Payments carry no items and never touch stock.
	CreatePayment(ctx context.Context, shopID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Transaction, error)

	// CreateExpense records a standalone expense.
	CreateExpense(ctx context.Context, shopID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Transaction, error)

	// SetTransactionStatus transitions a transaction's workflow status. Completing
	// a pending transaction settles it; cancelling reverses its stock deltas.
	SetTransactionStatus(ctx context.Context, shopID, transactionID string, status domain.TransactionStatus, requestingUserID string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations over the ledger.
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction with its items.
	GetTransaction(ctx context.Context, shopID, transactionID, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of a shop's transactions.
	ListTransactions(ctx context.Context, shopID, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListPartyLedger retrieves a party's transaction history with cursor pagination.
	ListPartyLedger(ctx context.Context, shopID, partyID string, role domain.PartyRole, requestingUserID string, params dto.PartyLedgerParams) (*dto.PartyLedgerResponse, error)
}

// TransactionSvcFacade combines all ledger service interfaces.
type TransactionSvcFacade interface {
	TransactionRecorderSvc
	TransactionReaderSvc
}
