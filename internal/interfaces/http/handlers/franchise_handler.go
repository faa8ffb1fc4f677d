package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/interfaces/http/response"
	"franquicias-latam.backend/internal/usecases"
)

// FranchiseHandler handles franchise endpoints
type FranchiseHandler struct {
	franchiseUsecase *usecases.FranchiseUsecase
}

// NewFranchiseHandler creates a new franchise handler
func NewFranchiseHandler(franchiseUsecase *usecases.FranchiseUsecase) *FranchiseHandler {
	return &FranchiseHandler{franchiseUsecase: franchiseUsecase}
}

// GetFranchise returns one franchise for the public detail page
// GET /api/v1/franchises/:id
func (h *FranchiseHandler) GetFranchise(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	franchise, err := h.franchiseUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, franchise)
}

// ListFranchises returns all franchises for the admin view
// GET /api/v1/admin/franchises
func (h *FranchiseHandler) ListFranchises(c *gin.Context) {
	franchises, err := h.franchiseUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"franchises": franchises})
}

// CreateFranchise creates a new listing
// POST /api/v1/admin/franchises
func (h *FranchiseHandler) CreateFranchise(c *gin.Context) {
	var input entities.CreateFranchiseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Payload invalido"))
		return
	}

	franchise, err := h.franchiseUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, franchise)
}

// UpdateFranchise overwrites a listing
// PUT /api/v1/admin/franchises/:id
func (h *FranchiseHandler) UpdateFranchise(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	var input entities.UpdateFranchiseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Payload invalido"))
		return
	}

	franchise, err := h.franchiseUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, franchise)
}

// DeleteFranchise removes a listing
// DELETE /api/v1/admin/franchises/:id
func (h *FranchiseHandler) DeleteFranchise(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	if err := h.franchiseUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
