package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	"github.com/shoplite/shop_management_app/internal/models"
	"github.com/shoplite/shop_management_app/internal/utils/mapping"
	"github.com/shoplite/shop_management_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, shop_id, type, amount, paid_amount, due_amount, discount, status,
	       date, due_date, customer_id, vendor_id, customer_name, payment_method, note,
	       created_at, created_by, last_updated_at, last_updated_by`

// SaveTransaction persists a transaction with its items and applies the stock deltas
// within a single database transaction. The entire unit commits or nothing does.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, items []domain.TransactionItem, deltas []domain.StockDelta) ([]string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits successfully
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO transactions (
			transaction_id, shop_id, type, amount, paid_amount, due_amount, discount, status,
			date, due_date, customer_id, vendor_id, customer_name, payment_method, note,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.ShopID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.PaidAmount,
		modelTxn.DueAmount,
		modelTxn.Discount,
		modelTxn.Status,
		modelTxn.Date,
		modelTxn.DueDate,
		modelTxn.CustomerID,
		modelTxn.VendorID,
		modelTxn.CustomerName,
		modelTxn.PaymentMethod,
		modelTxn.Note,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if len(items) > 0 {
		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO transaction_items (item_id, transaction_id, product_id, service_id, description, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		for _, item := range items {
			modelItem := mapping.ToModelTransactionItem(item)
			batch.Queue(itemQuery,
				modelItem.ItemID,
				modelItem.TransactionID,
				modelItem.ProductID,
				modelItem.ServiceID,
				modelItem.Description,
				modelItem.Quantity,
				modelItem.UnitPrice,
				modelItem.Subtotal,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert items for transaction "+modelTxn.TransactionID, err)
		}
	}

	touched, err := applyStockDeltas(ctx, tx, txn.ShopID, deltas, txn.CreatedBy, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return touched, nil
}

// applyStockDeltas applies inventory deltas inside tx. Decrements are conditioned
// on the current persisted quantity so two concurrent sales cannot both succeed on
// the same stock: the guard is the WHERE clause, not a prior read.
func applyStockDeltas(ctx context.Context, tx pgx.Tx, shopID string, deltas []domain.StockDelta, userID string, at time.Time) ([]string, error) {
	if len(deltas) == 0 {
		return nil, nil
	}

	decrementQuery := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, last_updated_at = $4, last_updated_by = $5
		WHERE product_id = $2 AND shop_id = $3 AND stock_quantity >= $1;
	`
	incrementQuery := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, last_updated_at = $4, last_updated_by = $5
		WHERE product_id = $2 AND shop_id = $3;
	`

	touched := make([]string, 0, len(deltas))
	for _, delta := range deltas {
		query := incrementQuery
		if delta.Direction == domain.StockDecrement {
			query = decrementQuery
		}
		tag, err := tx.Exec(ctx, query, delta.Quantity, delta.ProductID, shopID, at, userID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to adjust stock for product "+delta.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			// Distinguish a missing product from insufficient stock
			var exists bool
			checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1 AND shop_id = $2)`, delta.ProductID, shopID).Scan(&exists)
			if checkErr != nil {
				return nil, apperrors.NewAppError(500, "failed to check product "+delta.ProductID, checkErr)
			}
			if !exists {
				return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, delta.ProductID)
			}
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrInsufficientStock, delta.ProductID)
		}
		touched = append(touched, delta.ProductID)
	}
	return touched, nil
}

// SettleTransaction marks a pending transaction completed, settling it in full.
func (r *PgxTransactionRepository) SettleTransaction(ctx context.Context, shopID, transactionID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $1, paid_amount = amount, due_amount = 0, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4 AND shop_id = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, string(domain.StatusCompleted), updatedAt, updatedBy, transactionID, shopID, string(domain.StatusPending))
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyStatusUpdateMiss(ctx, shopID, transactionID)
	}
	return nil
}

// CancelTransaction voids a transaction and restores stock in the same database
// transaction. Reversing a purchase decrements stock, so cancellation can itself
// fail with ErrInsufficientStock if the purchased units were already sold.
func (r *PgxTransactionRepository) CancelTransaction(ctx context.Context, shopID, transactionID string, deltas []domain.StockDelta, updatedBy string, updatedAt time.Time) ([]string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4 AND shop_id = $5 AND status <> $1;
	`
	tag, err := tx.Exec(ctx, query, string(domain.StatusCancelled), updatedAt, updatedBy, transactionID, shopID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.classifyStatusUpdateMiss(ctx, shopID, transactionID)
	}

	touched, err := applyStockDeltas(ctx, tx, shopID, deltas, updatedBy, updatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return touched, nil
}

// classifyStatusUpdateMiss maps a zero-row status update to NotFound or Conflict.
func (r *PgxTransactionRepository) classifyStatusUpdateMiss(ctx context.Context, shopID, transactionID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE transaction_id = $1 AND shop_id = $2)`, transactionID, shopID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check transaction "+transactionID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: transaction %s is not in a transitionable state", apperrors.ErrConflict, transactionID)
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	row := r.Pool.QueryRow(ctx, query, transactionID)
	modelTxn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(*modelTxn)
	return &domainTxn, nil
}

// FindItemsByTransactionID retrieves all items of a transaction.
func (r *PgxTransactionRepository) FindItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	query := `
		SELECT item_id, transaction_id, product_id, service_id, description, quantity, unit_price, subtotal
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for transaction "+transactionID, err)
	}
	defer rows.Close()

	items := []models.TransactionItem{}
	for rows.Next() {
		var item models.TransactionItem
		err := rows.Scan(
			&item.ItemID,
			&item.TransactionID,
			&item.ProductID,
			&item.ServiceID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for transaction "+transactionID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainTransactionItemSlice(items), nil
}

// ListTransactionsByShop retrieves a filtered page of a shop's transactions plus
// the total count matching the filter.
func (r *PgxTransactionRepository) ListTransactionsByShop(ctx context.Context, shopID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	whereClause := `WHERE shop_id = $1`
	args := []interface{}{shopID}
	if filter.Type != nil {
		whereClause += ` AND type = $2`
		args = append(args, string(*filter.Type))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions ` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions for shop "+shopID, err)
	}

	pageQuery := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY date DESC, transaction_id DESC LIMIT $%d OFFSET $%d;`,
		transactionColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list transactions for shop "+shopID, err)
	}
	defer rows.Close()

	transactions, err := scanTransactionRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// ListTransactionsByParty retrieves a party's ledger history newest-first using
// token-based pagination over (date, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByParty(ctx context.Context, shopID, partyID string, role domain.PartyRole, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists
	fetchLimit := limit + 1

	partyColumn := "customer_id"
	if role == domain.PartyVendor {
		partyColumn = "vendor_id"
	}

	baseQuery := fmt.Sprintf(`SELECT %s FROM transactions WHERE shop_id = $1 AND %s = $2`, transactionColumns, partyColumn)
	orderByClause := ` ORDER BY date DESC, transaction_id DESC`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr)
		}
		query := baseQuery + ` AND (date < $3 OR (date = $3 AND transaction_id < $4))` + orderByClause + ` LIMIT $5;`
		rows, err = r.Pool.Query(ctx, query, shopID, partyID, lastDate, lastID, fetchLimit)
	} else {
		query := baseQuery + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, shopID, partyID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions for party "+partyID, err)
	}
	defer rows.Close()

	transactions, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		token := pagination.EncodeToken(last.Date, last.TransactionID)
		newNextToken = &token
	}
	return transactions, newNextToken, nil
}

// FindOverdueTransactions returns transactions still carrying a positive due whose
// due date has elapsed. Rows without a due date fall back to the grace window
// measured from the transaction date.
func (r *PgxTransactionRepository) FindOverdueTransactions(ctx context.Context, shopID string, asOf time.Time, graceWindow time.Duration) ([]domain.Transaction, error) {
	graceCutoff := asOf.Add(-graceWindow)
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE shop_id = $1
		  AND status NOT IN ($2, $3)
		  AND due_amount > 0
		  AND ((due_date IS NOT NULL AND due_date < $4) OR (due_date IS NULL AND date < $5))
		ORDER BY date;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, string(domain.StatusCompleted), string(domain.StatusCancelled), asOf, graceCutoff)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overdue transactions for shop "+shopID, err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// AggregatePartyBalance derives the party's outstanding balance from the ledger:
// sale dues minus payments received for customers, purchase dues minus payments
// made for vendors. Cancelled transactions are excluded; the result floors at zero.
func (r *PgxTransactionRepository) AggregatePartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole) (decimal.Decimal, error) {
	partyColumn := "customer_id"
	dueType := domain.Sale
	paymentType := domain.PaymentReceived
	if role == domain.PartyVendor {
		partyColumn = "vendor_id"
		dueType = domain.Purchase
		paymentType = domain.PaymentMade
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(CASE WHEN type = $3 THEN due_amount ELSE -amount END), 0)
		FROM transactions
		WHERE shop_id = $1 AND %s = $2 AND type IN ($3, $4) AND status <> $5;
	`, partyColumn)

	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, shopID, partyID, string(dueType), string(paymentType), string(domain.StatusCancelled)).Scan(&balance)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to aggregate balance for party "+partyID, err)
	}
	if balance.IsNegative() {
		return decimal.Zero, nil
	}
	return balance, nil
}

// scanTransaction scans one transaction row into a model.
func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.ShopID,
		&t.Type,
		&t.Amount,
		&t.PaidAmount,
		&t.DueAmount,
		&t.Discount,
		&t.Status,
		&t.Date,
		&t.DueDate,
		&t.CustomerID,
		&t.VendorID,
		&t.CustomerName,
		&t.PaymentMethod,
		&t.Note,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanTransactionRows drains rows into domain transactions.
func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(transactions), nil
}
