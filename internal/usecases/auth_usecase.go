package usecases

import (
	"context"
	"errors"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/repositories"
	"franquicias-latam.backend/pkg/crypto"
	"franquicias-latam.backend/pkg/jwt"
)

// AuthUsecase handles admin authentication
type AuthUsecase struct {
	adminRepo  repositories.AdminUserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(adminRepo repositories.AdminUserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{adminRepo: adminRepo, jwtService: jwtService}
}

// Login checks credentials and returns a token pair. Unknown email and
// wrong password produce the same error.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Credenciales invalidas")
		}
		return nil, domainerrors.InternalError(err)
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("Credenciales invalidas")
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}
