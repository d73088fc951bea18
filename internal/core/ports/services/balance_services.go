package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// BalanceSvcFacade derives party balances from the ledger. Calls are idempotent
// and side-effect-free; a cache may sit in front but is never authoritative.
type BalanceSvcFacade interface {
	// GetPartyBalance returns the outstanding receivable (customer) or payable (vendor).
	GetPartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole, requestingUserID string) (decimal.Decimal, error)

	// InvalidatePartyBalance drops any cached balance for the party. Called after
	// every committed transaction touching that party; failures are non-fatal.
	InvalidatePartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole)
}
