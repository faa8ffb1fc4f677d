package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	domainerrors "franquicias-latam.backend/internal/domain/errors"
	"franquicias-latam.backend/internal/domain/quiz"
)

// QuizStore persists quiz session state in Redis. Sessions carry contact
// PII, so blobs are AES-GCM encrypted at rest.
type QuizStore struct {
	encryptionKey []byte
	ttl           time.Duration
}

var (
	setQuizValue = Set
	getQuizValue = Get
	delQuizValue = Del
)

// NewQuizStore creates a new quiz session store
func NewQuizStore(encryptionKeyHex string, ttl time.Duration) (*QuizStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &QuizStore{encryptionKey: key, ttl: ttl}, nil
}

// Save stores encrypted session state, refreshing the TTL
func (s *QuizStore) Save(ctx context.Context, sessionID string, state *quiz.State) error {
	jsonData, err := json.Marshal(state)
	if err != nil {
		return err
	}

	encrypted, err := s.encrypt(jsonData)
	if err != nil {
		return err
	}

	return setQuizValue(ctx, "quiz:"+sessionID, encrypted, s.ttl)
}

// Get retrieves and decrypts session state. Missing or expired sessions
// return ErrNotFound.
func (s *QuizStore) Get(ctx context.Context, sessionID string) (*quiz.State, error) {
	encrypted, err := getQuizValue(ctx, "quiz:"+sessionID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	decrypted, err := s.decrypt(encrypted)
	if err != nil {
		return nil, err
	}

	var state quiz.State
	if err := json.Unmarshal(decrypted, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Delete removes a session
func (s *QuizStore) Delete(ctx context.Context, sessionID string) error {
	return delQuizValue(ctx, "quiz:"+sessionID)
}

func (s *QuizStore) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *QuizStore) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
