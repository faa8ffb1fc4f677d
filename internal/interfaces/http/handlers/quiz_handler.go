package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/quiz"
	"franquicias-latam.backend/internal/interfaces/http/response"
	"franquicias-latam.backend/internal/usecases"
)

// QuizHandler handles quiz session endpoints
type QuizHandler struct {
	quizUsecase *usecases.QuizUsecase
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizUsecase *usecases.QuizUsecase) *QuizHandler {
	return &QuizHandler{quizUsecase: quizUsecase}
}

// Start opens a new quiz session
// POST /api/v1/quiz/sessions
func (h *QuizHandler) Start(c *gin.Context) {
	sessionID, state, err := h.quizUsecase.Start(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"sessionId": sessionID,
		"state":     state,
	})
}

// Get returns the session's current state
// GET /api/v1/quiz/sessions/:id
func (h *QuizHandler) Get(c *gin.Context) {
	state, err := h.quizUsecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Answer applies a quiz event to the session
// POST /api/v1/quiz/sessions/:id/events
func (h *QuizHandler) Answer(c *gin.Context) {
	var ev quiz.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		response.Error(c, domainerrors.BadRequest("Evento invalido"))
		return
	}

	state, err := h.quizUsecase.Apply(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Back restores the previous step
// POST /api/v1/quiz/sessions/:id/back
func (h *QuizHandler) Back(c *gin.Context) {
	state, err := h.quizUsecase.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}
