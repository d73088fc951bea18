package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	"github.com/shoplite/shop_management_app/internal/models"
	"github.com/shoplite/shop_management_app/internal/utils/mapping"
)

type PgxShopRepository struct {
	BaseRepository
}

func newPgxShopRepository(pool *pgxpool.Pool) portsrepo.ShopRepositoryFacade {
	return &PgxShopRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ShopRepositoryFacade = (*PgxShopRepository)(nil)

const shopColumns = `shop_id, name, currency_code, address, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

// SaveShop persists a new shop and grants the creator OWNER membership in one
// database transaction.
func (r *PgxShopRepository) SaveShop(ctx context.Context, shop domain.Shop, creatorUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelShop(shop)
	shopQuery := `
		INSERT INTO shops (shop_id, name, currency_code, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, shopQuery,
		m.ShopID, m.Name, m.CurrencyCode, m.Address, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert shop "+m.ShopID, err)
	}

	roleQuery := `
		INSERT INTO user_shop_roles (user_id, shop_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, roleQuery, creatorUserID, m.ShopID, string(domain.RoleOwner), m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert owner membership for shop "+m.ShopID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_id = $1;`

	var m models.Shop
	err := r.Pool.QueryRow(ctx, query, shopID).Scan(
		&m.ShopID, &m.Name, &m.CurrencyCode, &m.Address, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find shop by ID "+shopID, err)
	}

	s := mapping.ToDomainShop(m)
	return &s, nil
}

// FindUserShopRole retrieves a user's membership in a shop, or ErrNotFound.
func (r *PgxShopRepository) FindUserShopRole(ctx context.Context, userID, shopID string) (*domain.UserShop, error) {
	query := `SELECT user_id, shop_id, role, joined_at FROM user_shop_roles WHERE user_id = $1 AND shop_id = $2;`

	var m models.UserShop
	err := r.Pool.QueryRow(ctx, query, userID, shopID).Scan(&m.UserID, &m.ShopID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}

	us := mapping.ToDomainUserShop(m)
	return &us, nil
}

// AddUserToShop creates a membership, or updates the role if one already exists.
func (r *PgxShopRepository) AddUserToShop(ctx context.Context, membership domain.UserShop) error {
	query := `
		INSERT INTO user_shop_roles (user_id, shop_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, shop_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query, membership.UserID, membership.ShopID, string(membership.Role), membership.JoinedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert membership for user "+membership.UserID, err)
	}
	return nil
}

// ListShopsByUser retrieves the active shops a user belongs to.
func (r *PgxShopRepository) ListShopsByUser(ctx context.Context, userID string) ([]domain.Shop, error) {
	query := `
		SELECT s.shop_id, s.name, s.currency_code, s.address, s.is_active,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM shops s
		JOIN user_shop_roles usr ON usr.shop_id = s.shop_id
		WHERE usr.user_id = $1 AND usr.role <> $2 AND s.is_active = TRUE
		ORDER BY s.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(domain.RoleRemoved))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list shops for user "+userID, err)
	}
	defer rows.Close()

	shops := []domain.Shop{}
	for rows.Next() {
		var m models.Shop
		err := rows.Scan(
			&m.ShopID, &m.Name, &m.CurrencyCode, &m.Address, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan shop row", err)
		}
		shops = append(shops, mapping.ToDomainShop(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating shop rows", err)
	}
	return shops, nil
}
