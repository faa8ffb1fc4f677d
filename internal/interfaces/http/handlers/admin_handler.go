package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/interfaces/http/response"
	"franquicias-latam.backend/internal/usecases"
)

// AdminHandler handles admin authentication
type AdminHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authUsecase *usecases.AuthUsecase) *AdminHandler {
	return &AdminHandler{authUsecase: authUsecase}
}

// Login authenticates an admin
// POST /api/v1/admin/auth/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email y contrasena son requeridos"))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}
