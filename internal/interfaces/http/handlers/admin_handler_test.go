package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/usecases"
	"franquicias-latam.backend/pkg/crypto"
	"franquicias-latam.backend/pkg/jwt"
)

type adminRepoStub struct {
	getByEmailFn func(ctx context.Context, email string) (*entities.AdminUser, error)
}

func (s *adminRepoStub) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *adminRepoStub) GetByID(context.Context, uuid.UUID) (*entities.AdminUser, error) {
	return nil, domainerrors.ErrNotFound
}
func (s *adminRepoStub) Create(context.Context, *entities.AdminUser) error { return nil }

func newAdminRouter(t *testing.T, repo *adminRepoStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	h := NewAdminHandler(usecases.NewAuthUsecase(repo, jwtService))
	r := gin.New()
	r.POST("/admin/auth/login", h.Login)
	return r
}

func TestAdminHandler_LoginSuccess(t *testing.T) {
	hash, err := crypto.HashPassword("admin123")
	require.NoError(t, err)

	repo := &adminRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*entities.AdminUser, error) {
			require.Equal(t, "admin@franquiciaslatam.co", email)
			return &entities.AdminUser{
				ID:           uuid.New(),
				Email:        email,
				Name:         "Admin",
				PasswordHash: hash,
				Role:         entities.AdminRoleAdmin,
			}, nil
		},
	}
	r := newAdminRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", strings.NewReader(`{"email":"admin@franquiciaslatam.co","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"accessToken"`)
	require.Contains(t, w.Body.String(), `"refreshToken"`)
	require.NotContains(t, w.Body.String(), hash, "password hash must never leak")
}

func TestAdminHandler_LoginWrongPassword(t *testing.T) {
	hash, err := crypto.HashPassword("admin123")
	require.NoError(t, err)

	repo := &adminRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*entities.AdminUser, error) {
			return &entities.AdminUser{ID: uuid.New(), Email: email, PasswordHash: hash, Role: entities.AdminRoleAdmin}, nil
		},
	}
	r := newAdminRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", strings.NewReader(`{"email":"admin@franquiciaslatam.co","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), domainerrors.CodeUnauthorized)
}

func TestAdminHandler_LoginUnknownEmailSameError(t *testing.T) {
	r := newAdminRouter(t, &adminRepoStub{})

	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Credenciales invalidas")
}

func TestAdminHandler_LoginMissingFields(t *testing.T) {
	r := newAdminRouter(t, &adminRepoStub{})

	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", strings.NewReader(`{"email":"admin@franquiciaslatam.co"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), domainerrors.CodeValidationError)
}
