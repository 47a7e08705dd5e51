// Package credstore persists encrypted login credentials so clients can
// re-authenticate without prompting the grower for a password again.
package credstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jwsummers/Canopy-Chronicles/pkg/config"
	redisclient "github.com/jwsummers/Canopy-Chronicles/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("stored credentials not found")

type credentialStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type credentialKeyer interface {
	CredentialsKey(userID string) string
}

// Credentials is the payload encrypted at rest.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store encrypts credentials with AES-GCM before handing them to Redis.
type Store struct {
	store credentialStore
	keyer credentialKeyer
	aead  cipher.AEAD
}

// NewStore derives a 256-bit key from the configured secret and wires the Redis backend.
func NewStore(client *redisclient.Client, cfg config.CredentialsConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	aead, err := newAEAD(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}
	return &Store{store: client, keyer: client, aead: aead}, nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	if secret == "" {
		return nil, fmt.Errorf("credential encryption key is required")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("building aes cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("building gcm: %w", err)
	}
	return aead, nil
}

// Save encrypts and stores the credentials for the user. A zero TTL keeps them until deleted.
func (s *Store) Save(ctx context.Context, userID string, creds Credentials, ttl time.Duration) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("email and password are required")
	}

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, plaintext, []byte(userID))
	blob := base64.RawStdEncoding.EncodeToString(sealed)
	return s.store.Set(ctx, s.keyer.CredentialsKey(userID), blob, ttl)
}

// Load decrypts the stored credentials for the user.
func (s *Store) Load(ctx context.Context, userID string) (Credentials, error) {
	if userID == "" {
		return Credentials{}, fmt.Errorf("user id is required")
	}

	blob, err := s.store.Get(ctx, s.keyer.CredentialsKey(userID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, err
	}

	sealed, err := base64.RawStdEncoding.DecodeString(blob)
	if err != nil {
		return Credentials{}, fmt.Errorf("decoding credential blob: %w", err)
	}
	if len(sealed) < s.aead.NonceSize() {
		return Credentials{}, fmt.Errorf("credential blob too short")
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, []byte(userID))
	if err != nil {
		return Credentials{}, fmt.Errorf("decrypting credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decoding credentials: %w", err)
	}
	return creds, nil
}

// Delete removes the stored credentials for the user.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	return s.store.Del(ctx, s.keyer.CredentialsKey(userID))
}
