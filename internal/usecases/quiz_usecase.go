package usecases

import (
	"context"
	"errors"

	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/quiz"
	"franquicias-latam.backend/pkg/redis"
	"franquicias-latam.backend/pkg/utils"
)

// QuizUsecase drives quiz sessions: state machine transitions persisted in
// the encrypted Redis store.
type QuizUsecase struct {
	store *redis.QuizStore
}

// NewQuizUsecase creates a new quiz usecase
func NewQuizUsecase(store *redis.QuizStore) *QuizUsecase {
	return &QuizUsecase{store: store}
}

// Start opens a fresh session and returns its ID with the initial state.
func (u *QuizUsecase) Start(ctx context.Context) (string, *quiz.State, error) {
	sessionID := utils.GenerateUUIDv7().String()
	state := quiz.New()
	if err := u.store.Save(ctx, sessionID, state); err != nil {
		return "", nil, domainerrors.InternalError(err)
	}
	return sessionID, state, nil
}

// Get returns the session's current state.
func (u *QuizUsecase) Get(ctx context.Context, sessionID string) (*quiz.State, error) {
	state, err := u.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Sesion no encontrada o expirada")
		}
		return nil, domainerrors.InternalError(err)
	}
	return state, nil
}

// Apply advances the session with the given event and persists the result.
func (u *QuizUsecase) Apply(ctx context.Context, sessionID string, ev quiz.Event) (*quiz.State, error) {
	state, err := u.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := state.Apply(ev); err != nil {
		switch {
		case errors.Is(err, quiz.ErrNoHistory):
			return nil, domainerrors.BadRequest("No hay paso anterior")
		case errors.Is(err, quiz.ErrMissingPayload):
			return nil, domainerrors.BadRequest("Respuesta incompleta")
		default:
			return nil, domainerrors.BadRequest("Accion no permitida en este paso")
		}
	}

	if err := u.store.Save(ctx, sessionID, state); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return state, nil
}

// Back restores the previous step of the session.
func (u *QuizUsecase) Back(ctx context.Context, sessionID string) (*quiz.State, error) {
	return u.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventBack})
}
