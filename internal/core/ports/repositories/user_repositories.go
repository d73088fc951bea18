package repositories

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for staff users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
