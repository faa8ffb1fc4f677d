package redis

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
)

const testQuizKey = "0000000000000000000000000000000000000000000000000000000000000000"

func TestNewQuizStoreValidation(t *testing.T) {
	_, err := NewQuizStore("zz", time.Minute)
	assert.Error(t, err)

	_, err = NewQuizStore("0011", time.Minute)
	assert.Error(t, err)

	store, err := NewQuizStore(testQuizKey, time.Minute)
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestQuizStoreEncryptDecrypt(t *testing.T) {
	store, err := NewQuizStore(testQuizKey, time.Minute)
	assert.NoError(t, err)

	enc, err := store.encrypt([]byte(`{"step":"welcome"}`))
	assert.NoError(t, err)
	assert.NotEmpty(t, enc)

	dec, err := store.decrypt(enc)
	assert.NoError(t, err)
	assert.Contains(t, string(dec), `"step":"welcome"`)

	_, err = store.decrypt("00") // too short ciphertext
	assert.Error(t, err)

	_, err = store.decrypt("zz-not-hex")
	assert.Error(t, err)
}

func TestQuizStoreSaveGetDelete(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	defer SetClient(nil)

	store, err := NewQuizStore(testQuizKey, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	state := quiz.New()
	require.NoError(t, state.Apply(quiz.Event{Type: quiz.EventStart}))
	require.NoError(t, state.Apply(quiz.Event{Type: quiz.EventSelectSectors, SectorIDs: []uuid.UUID{uuid.New()}}))

	require.NoError(t, store.Save(ctx, "sid-1", state))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, quiz.StepInvestment, got.Step)
	assert.Equal(t, state.Answers.SectorIDs, got.Answers.SectorIDs)
	assert.Len(t, got.History, 2)

	// the raw value in redis must not be readable JSON
	raw, err := srv.Get("quiz:sid-1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "welcome")

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestQuizStoreGetMissingSession(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	defer SetClient(nil)

	store, err := NewQuizStore(testQuizKey, time.Minute)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestQuizStoreSessionExpires(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	defer SetClient(nil)

	store, err := NewQuizStore(testQuizKey, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-ttl", quiz.New()))
	srv.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, "sid-ttl")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestQuizStoreGetTamperedBlob(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	defer SetClient(nil)

	store, err := NewQuizStore(testQuizKey, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, srv.Set("quiz:sid-bad", "deadbeef"))
	_, err = store.Get(ctx, "sid-bad")
	assert.Error(t, err)

	// a different key cannot open the blob
	require.NoError(t, store.Save(ctx, "sid-2", quiz.New()))
	otherKey := "1111111111111111111111111111111111111111111111111111111111111111"
	otherStore, err := NewQuizStore(otherKey, time.Minute)
	require.NoError(t, err)
	_, err = otherStore.Get(ctx, "sid-2")
	assert.Error(t, err)
}
