package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

const guestPreferenceKeyPrefix = "preferences:guest:"

type guestPreferenceRecord struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// guestPreferenceStore keeps guest preferences in a Redis hash per session. The hash
// expires with the session so abandoned guests leave nothing behind.
type guestPreferenceStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGuestPreferenceStore creates a new Redis-backed guest preference store.
func NewGuestPreferenceStore(client *redis.Client, ttl time.Duration) adapter.PreferencesStore {
	return &guestPreferenceStore{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a guest preference.
func (s *guestPreferenceStore) Get(ctx context.Context, session *entity.Session, key entity.PreferenceKey) (*entity.Preference, error) {
	raw, err := s.client.HGet(ctx, guestPreferenceKeyPrefix+session.OwnerID(), string(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("failed to read guest preference: %w", err)
	}

	var record guestPreferenceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode guest preference: %w", err)
	}

	return &entity.Preference{
		SessionType: entity.SessionTypeGuest,
		OwnerID:     session.OwnerID(),
		Key:         key,
		Value:       record.Value,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

// Set stores a guest preference and refreshes the hash TTL.
func (s *guestPreferenceStore) Set(ctx context.Context, pref *entity.Preference) error {
	raw, err := json.Marshal(guestPreferenceRecord{Value: pref.Value, UpdatedAt: pref.UpdatedAt})
	if err != nil {
		return fmt.Errorf("failed to encode guest preference: %w", err)
	}

	hashKey := guestPreferenceKeyPrefix + pref.OwnerID
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, hashKey, string(pref.Key), raw)
	pipe.Expire(ctx, hashKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store guest preference: %w", err)
	}
	return nil
}
