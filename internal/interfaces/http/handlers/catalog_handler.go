package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"franquicias-latam.backend/internal/interfaces/http/response"
	"franquicias-latam.backend/internal/usecases"
)

// CatalogHandler serves the sector and country lists
type CatalogHandler struct {
	catalogUsecase *usecases.CatalogUsecase
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogUsecase *usecases.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

// ListSectors returns all sectors
// GET /api/v1/sectors
func (h *CatalogHandler) ListSectors(c *gin.Context) {
	sectors, err := h.catalogUsecase.ListSectors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sectors": sectors})
}

// ListCountries returns all countries
// GET /api/v1/countries
func (h *CatalogHandler) ListCountries(c *gin.Context) {
	countries, err := h.catalogUsecase.ListCountries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"countries": countries})
}
