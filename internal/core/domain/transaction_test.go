package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

func stringPtr(s string) *string {
	return &s
}

func TestComputeDueAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		paid   decimal.Decimal
		want   decimal.Decimal
	}{
		{
			name:   "partial payment leaves the remainder due",
			amount: decimal.NewFromInt(100),
			paid:   decimal.NewFromInt(40),
			want:   decimal.NewFromInt(60),
		},
		{
			name:   "full payment leaves nothing due",
			amount: decimal.NewFromInt(100),
			paid:   decimal.NewFromInt(100),
			want:   decimal.Zero,
		},
		{
			name:   "overpayment floors at zero",
			amount: decimal.NewFromInt(100),
			paid:   decimal.NewFromInt(150),
			want:   decimal.Zero,
		},
		{
			name:   "nothing paid leaves everything due",
			amount: decimal.NewFromInt(100),
			paid:   decimal.Zero,
			want:   decimal.NewFromInt(100),
		},
		{
			name:   "fractional amounts keep exact precision",
			amount: decimal.RequireFromString("10.50"),
			paid:   decimal.RequireFromString("10.25"),
			want:   decimal.RequireFromString("0.25"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeDueAmount(tt.amount, tt.paid)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTransactionType_HasItems(t *testing.T) {
	assert.True(t, domain.Sale.HasItems())
	assert.True(t, domain.Purchase.HasItems())
	assert.False(t, domain.PaymentReceived.HasItems())
	assert.False(t, domain.PaymentMade.HasItems())
	assert.False(t, domain.Expense.HasItems())
}

func TestStockDeltasFor(t *testing.T) {
	productA := stringPtr("product-a")
	productB := stringPtr("product-b")
	serviceX := stringPtr("service-x")

	items := []domain.TransactionItem{
		{ProductID: productA, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		{ServiceID: serviceX, Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
		{ProductID: productB, Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
	}

	tests := []struct {
		name          string
		txType        domain.TransactionType
		wantDirection domain.StockDirection
	}{
		{name: "sale decrements stock", txType: domain.Sale, wantDirection: domain.StockDecrement},
		{name: "purchase increments stock", txType: domain.Purchase, wantDirection: domain.StockIncrement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := domain.StockDeltasFor(tt.txType, items)

			// Service lines never produce deltas.
			assert.Len(t, deltas, 2)
			assert.Equal(t, *productA, deltas[0].ProductID)
			assert.Equal(t, int64(2), deltas[0].Quantity)
			assert.Equal(t, tt.wantDirection, deltas[0].Direction)
			assert.Equal(t, *productB, deltas[1].ProductID)
			assert.Equal(t, int64(5), deltas[1].Quantity)
			assert.Equal(t, tt.wantDirection, deltas[1].Direction)
		})
	}
}

func TestStockDeltasFor_ItemlessTypes(t *testing.T) {
	items := []domain.TransactionItem{
		{ProductID: stringPtr("product-a"), Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
	}

	assert.Nil(t, domain.StockDeltasFor(domain.PaymentReceived, items))
	assert.Nil(t, domain.StockDeltasFor(domain.PaymentMade, items))
	assert.Nil(t, domain.StockDeltasFor(domain.Expense, items))
}

func TestReverseStockDeltas(t *testing.T) {
	deltas := []domain.StockDelta{
		{ProductID: "product-a", Quantity: 2, Direction: domain.StockDecrement},
		{ProductID: "product-b", Quantity: 5, Direction: domain.StockIncrement},
	}

	reversed := domain.ReverseStockDeltas(deltas)

	assert.Len(t, reversed, 2)
	assert.Equal(t, domain.StockIncrement, reversed[0].Direction)
	assert.Equal(t, domain.StockDecrement, reversed[1].Direction)
	assert.Equal(t, int64(2), reversed[0].Quantity)
	assert.Equal(t, int64(5), reversed[1].Quantity)

	// The input must not be mutated.
	assert.Equal(t, domain.StockDecrement, deltas[0].Direction)
}

func TestTransaction_PartyID(t *testing.T) {
	customerID := "customer-1"
	vendorID := "vendor-1"

	tests := []struct {
		name     string
		txn      domain.Transaction
		wantID   string
		wantRole domain.PartyRole
		wantOK   bool
	}{
		{
			name:     "customer-tagged sale",
			txn:      domain.Transaction{Type: domain.Sale, CustomerID: &customerID},
			wantID:   customerID,
			wantRole: domain.PartyCustomer,
			wantOK:   true,
		},
		{
			name:     "vendor-tagged purchase",
			txn:      domain.Transaction{Type: domain.Purchase, VendorID: &vendorID},
			wantID:   vendorID,
			wantRole: domain.PartyVendor,
			wantOK:   true,
		},
		{
			name:   "walk-in sale has no party",
			txn:    domain.Transaction{Type: domain.Sale, CustomerName: "Walk-in"},
			wantOK: false,
		},
		{
			name:   "expense has no party",
			txn:    domain.Transaction{Type: domain.Expense},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, role, ok := tt.txn.PartyID()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
				assert.Equal(t, tt.wantRole, role)
			}
		})
	}
}

func TestTransaction_Settled(t *testing.T) {
	assert.True(t, domain.Transaction{DueAmount: decimal.Zero}.Settled())
	assert.False(t, domain.Transaction{DueAmount: decimal.NewFromInt(1)}.Settled())
}

func TestUserShopRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleOwner.AtLeast(domain.RoleReadOnly))
	assert.True(t, domain.RoleMember.AtLeast(domain.RoleMember))
	assert.False(t, domain.RoleReadOnly.AtLeast(domain.RoleMember))
	assert.False(t, domain.RoleRemoved.AtLeast(domain.RoleReadOnly))
	assert.False(t, domain.UserShopRole("UNKNOWN").AtLeast(domain.RoleReadOnly))
}

func TestProduct_LowStock(t *testing.T) {
	assert.True(t, domain.Product{StockQuantity: 2, MinStockLevel: 5}.LowStock())
	assert.True(t, domain.Product{StockQuantity: 5, MinStockLevel: 5}.LowStock())
	assert.False(t, domain.Product{StockQuantity: 6, MinStockLevel: 5}.LowStock())
}
