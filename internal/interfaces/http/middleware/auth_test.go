package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"franquicias-latam.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T, jwtService *jwt.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuthMiddleware(jwtService), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	return r
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	tokens, err := jwtService.GenerateTokenPair(userID, "admin@franquiciaslatam.co", "ADMIN")
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+tokens.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
}

func TestAdminAuthMiddleware_MissingAndMalformedHeader(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	r := newAuthRouter(t, jwtService)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(AuthorizationHeader, "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Bearer")
}

func TestAdminAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	r := newAuthRouter(t, jwtService)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+"not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token invalido")
}

func TestAdminAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := jwt.NewJWTService("test-secret", -time.Minute, -time.Minute)
	tokens, err := expiredService.GenerateTokenPair(uuid.New(), "admin@franquiciaslatam.co", "ADMIN")
	require.NoError(t, err)

	r := newAuthRouter(t, expiredService)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+tokens.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "El token ha expirado")
}

func TestAdminAuthMiddleware_NonAdminRoleForbidden(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	tokens, err := jwtService.GenerateTokenPair(uuid.New(), "intruso@example.com", "VIEWER")
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+tokens.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
