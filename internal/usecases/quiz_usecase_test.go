package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/quiz"
	"franquicias-latam.backend/internal/usecases"
	"franquicias-latam.backend/pkg/redis"
)

func newQuizUsecase(t *testing.T) *usecases.QuizUsecase {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	store, err := redis.NewQuizStore("0000000000000000000000000000000000000000000000000000000000000000", 30*time.Minute)
	require.NoError(t, err)
	return usecases.NewQuizUsecase(store)
}

func TestQuizStartAndGet(t *testing.T) {
	uc := newQuizUsecase(t)
	ctx := context.Background()

	sessionID, state, err := uc.Start(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Equal(t, quiz.StepWelcome, state.Step)

	got, err := uc.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepWelcome, got.Step)
}

func TestQuizGetUnknownSession(t *testing.T) {
	uc := newQuizUsecase(t)

	_, err := uc.Get(context.Background(), "missing")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestQuizApplyAdvancesAndPersists(t *testing.T) {
	uc := newQuizUsecase(t)
	ctx := context.Background()

	sessionID, _, err := uc.Start(ctx)
	require.NoError(t, err)

	state, err := uc.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventStart})
	require.NoError(t, err)
	assert.Equal(t, quiz.StepSector, state.Step)

	sectorID := uuid.New()
	state, err = uc.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventSelectSectors, SectorIDs: []uuid.UUID{sectorID}})
	require.NoError(t, err)
	assert.Equal(t, quiz.StepInvestment, state.Step)

	// a fresh read sees the persisted progress
	got, err := uc.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepInvestment, got.Step)
	assert.Equal(t, []uuid.UUID{sectorID}, got.Answers.SectorIDs)
}

func TestQuizApplyInvalidEvent(t *testing.T) {
	uc := newQuizUsecase(t)
	ctx := context.Background()

	sessionID, _, err := uc.Start(ctx)
	require.NoError(t, err)

	_, err = uc.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventCodeVerified})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Accion no permitida en este paso", appErr.Message)
}

func TestQuizApplyMissingPayload(t *testing.T) {
	uc := newQuizUsecase(t)
	ctx := context.Background()

	sessionID, _, err := uc.Start(ctx)
	require.NoError(t, err)
	_, err = uc.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventStart})
	require.NoError(t, err)

	_, err = uc.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventSelectSectors})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Respuesta incompleta", appErr.Message)
}

func TestQuizBack(t *testing.T) {
	uc := newQuizUsecase(t)
	ctx := context.Background()

	sessionID, _, err := uc.Start(ctx)
	require.NoError(t, err)
	_, err = uc.Apply(ctx, sessionID, quiz.Event{Type: quiz.EventStart})
	require.NoError(t, err)

	state, err := uc.Back(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepWelcome, state.Step)

	_, err = uc.Back(ctx, sessionID)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No hay paso anterior", appErr.Message)
}
