package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"franquicias-latam.backend/internal/domain/entities"
	"franquicias-latam.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the admin user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for the admin email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for the admin role
	UserRoleKey = "userRole"
)

// AdminAuthMiddleware validates the bearer token and requires the ADMIN
// role. Admin routes mount this after RequestID and Logger.
func AdminAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "No autorizado",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Formato de autorizacion invalido. Usa: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "Token invalido"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "El token ha expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": message,
			})
			return
		}

		if claims.Role != string(entities.AdminRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "No autorizado",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// GetUserID gets the admin user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}
