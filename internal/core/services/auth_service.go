package services

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/utils"
)

// ErrInvalidCredentials covers both unknown email and wrong password so login
// failures do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates the authentication service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

// Login authenticates the credentials and issues an access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	}, nil
}
