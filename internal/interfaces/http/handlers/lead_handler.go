package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/interfaces/http/response"
	"franquicias-latam.backend/internal/usecases"
	"franquicias-latam.backend/pkg/utils"
)

// LeadHandler handles lead intake and admin lead endpoints
type LeadHandler struct {
	leadUsecase *usecases.LeadUsecase
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadUsecase *usecases.LeadUsecase) *LeadHandler {
	return &LeadHandler{leadUsecase: leadUsecase}
}

// SubmitLead runs the intake pipeline
// POST /api/v1/leads
func (h *LeadHandler) SubmitLead(c *gin.Context) {
	var input entities.CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Todos los campos son requeridos"))
		return
	}

	out, err := h.leadUsecase.SubmitLead(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if out.Updated {
		status = http.StatusOK
	}
	response.Success(c, status, out)
}

// ListLeads returns a page of leads for the admin panel
// GET /api/v1/admin/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	leads, total, err := h.leadUsecase.ListLeads(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"leads":      leads,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// GetLead returns one lead with its matches
// GET /api/v1/admin/leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	lead, err := h.leadUsecase.GetLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// SetViewed marks a lead as reviewed
// PATCH /api/v1/admin/leads/:id/viewed
func (h *LeadHandler) SetViewed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	var input struct {
		Viewed bool `json:"viewed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Payload invalido"))
		return
	}

	if err := h.leadUsecase.SetViewed(c.Request.Context(), id, input.Viewed); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// SetMatchContacted marks one match as contacted
// PATCH /api/v1/admin/matches/:id/contacted
func (h *LeadHandler) SetMatchContacted(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	var input struct {
		Contacted bool `json:"contacted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Payload invalido"))
		return
	}

	if err := h.leadUsecase.SetMatchContacted(c.Request.Context(), id, input.Contacted); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// DeleteLead removes a lead
// DELETE /api/v1/admin/leads/:id
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ID invalido"))
		return
	}

	if err := h.leadUsecase.DeleteLead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Stats returns dashboard counters
// GET /api/v1/admin/stats
func (h *LeadHandler) Stats(c *gin.Context) {
	stats, err := h.leadUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
