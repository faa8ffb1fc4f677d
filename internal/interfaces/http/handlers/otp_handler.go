package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"franquicias-latam.backend/internal/domain/entities"
	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/interfaces/http/response"
	"franquicias-latam.backend/internal/usecases"
)

// OtpHandler handles phone verification endpoints
type OtpHandler struct {
	otpUsecase *usecases.OtpUsecase
}

// NewOtpHandler creates a new OTP handler
func NewOtpHandler(otpUsecase *usecases.OtpUsecase) *OtpHandler {
	return &OtpHandler{otpUsecase: otpUsecase}
}

// SendCode issues a verification code
// POST /api/v1/sms/send
func (h *OtpHandler) SendCode(c *gin.Context) {
	var input entities.IssueOtpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Numero de telefono requerido"))
		return
	}

	if err := h.otpUsecase.Issue(c.Request.Context(), input.Phone); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

// VerifyCode checks a submitted code
// POST /api/v1/sms/verify
func (h *OtpHandler) VerifyCode(c *gin.Context) {
	var input entities.VerifyOtpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Telefono y codigo son requeridos"))
		return
	}

	if err := h.otpUsecase.Verify(c.Request.Context(), input.Phone, input.Code); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": true})
}
