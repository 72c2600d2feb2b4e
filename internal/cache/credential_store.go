package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// credentialTTL matches the rough lifetime of a browser-side stored key; a
// user who has not analyzed in a month re-enters their key.
const credentialTTL = 30 * 24 * time.Hour

// CredentialStore keeps per-user provider API keys server side so browser
// clients do not have to resend the key with every request.
type CredentialStore struct {
	client *redis.Client
}

func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

func credentialKey(userID string) string {
	return "credential:" + userID
}

func (s *CredentialStore) Put(ctx context.Context, userID, apiKey string) error {
	if err := s.client.Set(ctx, credentialKey(userID), apiKey, credentialTTL).Err(); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Get returns the stored key, or empty without error when none exists.
func (s *CredentialStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, credentialKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	return val, nil
}

func (s *CredentialStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, credentialKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
