package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	"github.com/shoplite/shop_management_app/internal/models"
	"github.com/shoplite/shop_management_app/internal/utils/mapping"
)

// uniqueViolationCode is the pgsql error code for unique constraint violations.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, shop_id, name, phone, email, address, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, shop_id, name, phone, email, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.ShopID, m.Name, m.Phone, m.Email, m.Address, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID, &m.ShopID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

func (r *PgxCustomerRepository) ListCustomersByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE shop_id = $1 AND is_active = TRUE
		ORDER BY name, customer_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list customers for shop "+shopID, err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var m models.Customer
		err := rows.Scan(
			&m.CustomerID, &m.ShopID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $1, phone = $2, email = $3, address = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE customer_id = $8 AND shop_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Phone, m.Email, m.Address, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.CustomerID, m.ShopID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxVendorRepository struct {
	BaseRepository
}

func newPgxVendorRepository(pool *pgxpool.Pool) portsrepo.VendorRepositoryFacade {
	return &PgxVendorRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

const vendorColumns = `vendor_id, shop_id, name, phone, email, address, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)
	query := `
		INSERT INTO vendors (vendor_id, shop_id, name, phone, email, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VendorID, m.ShopID, m.Name, m.Phone, m.Email, m.Address, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert vendor "+m.VendorID, err)
	}
	return nil
}

func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE vendor_id = $1;`

	var m models.Vendor
	err := r.Pool.QueryRow(ctx, query, vendorID).Scan(
		&m.VendorID, &m.ShopID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vendor by ID "+vendorID, err)
	}

	v := mapping.ToDomainVendor(m)
	return &v, nil
}

func (r *PgxVendorRepository) ListVendorsByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Vendor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE shop_id = $1 AND is_active = TRUE
		ORDER BY name, vendor_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list vendors for shop "+shopID, err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		var m models.Vendor
		err := rows.Scan(
			&m.VendorID, &m.ShopID, &m.Name, &m.Phone, &m.Email, &m.Address, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vendor row", err)
		}
		vendors = append(vendors, mapping.ToDomainVendor(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vendor rows", err)
	}
	return vendors, nil
}

func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)
	query := `
		UPDATE vendors
		SET name = $1, phone = $2, email = $3, address = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE vendor_id = $8 AND shop_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Phone, m.Email, m.Address, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.VendorID, m.ShopID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update vendor "+m.VendorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
