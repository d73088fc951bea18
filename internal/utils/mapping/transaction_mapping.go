package mapping

import (
	"github.com/shoplite/shop_management_app/internal/core/domain"
	"github.com/shoplite/shop_management_app/internal/models"
)

// ToModelTransaction converts a domain transaction to its db row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		ShopID:        d.ShopID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		PaidAmount:    d.PaidAmount,
		DueAmount:     d.DueAmount,
		Discount:      d.Discount,
		Status:        string(d.Status),
		Date:          d.Date,
		DueDate:       d.DueDate,
		CustomerID:    d.CustomerID,
		VendorID:      d.VendorID,
		CustomerName:  d.CustomerName,
		PaymentMethod: d.PaymentMethod,
		Note:          d.Note,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a db row to a domain transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ShopID:        m.ShopID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		PaidAmount:    m.PaidAmount,
		DueAmount:     m.DueAmount,
		Discount:      m.Discount,
		Status:        domain.TransactionStatus(m.Status),
		Date:          m.Date,
		DueDate:       m.DueDate,
		CustomerID:    m.CustomerID,
		VendorID:      m.VendorID,
		CustomerName:  m.CustomerName,
		PaymentMethod: m.PaymentMethod,
		Note:          m.Note,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of db rows to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}

// ToModelTransactionItem converts a domain line item to its db row.
func ToModelTransactionItem(d domain.TransactionItem) models.TransactionItem {
	return models.TransactionItem{
		ItemID:        d.ItemID,
		TransactionID: d.TransactionID,
		ProductID:     d.ProductID,
		ServiceID:     d.ServiceID,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		Subtotal:      d.Subtotal,
	}
}

// ToDomainTransactionItem converts a db row to a domain line item.
func ToDomainTransactionItem(m models.TransactionItem) domain.TransactionItem {
	return domain.TransactionItem{
		ItemID:        m.ItemID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		ServiceID:     m.ServiceID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Subtotal:      m.Subtotal,
	}
}

// ToDomainTransactionItemSlice converts a slice of db rows to domain line items.
func ToDomainTransactionItemSlice(ms []models.TransactionItem) []domain.TransactionItem {
	out := make([]domain.TransactionItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransactionItem(m)
	}
	return out
}
