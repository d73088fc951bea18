package services

import (
	"context"

	"github.com/shoplite/shop_management_app/internal/dto"
)

// AuthSvcFacade authenticates staff users and issues access tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}
