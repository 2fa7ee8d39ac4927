package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	layout "github.com/sitedeck/go-layout/components/layout"
)

const defaultKeyPrefix = "sitedeck:layout:"

// Store implements layout.PreferenceStore on Redis. Each user's layout lives
// under one key as a JSON blob, matching the wholesale read/write pattern of
// the engine. A zero TTL keeps layouts forever.
type Store struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// Option customizes the store.
type Option func(*Store)

// WithKeyPrefix overrides the default key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.keyPrefix = prefix
	}
}

// WithTTL expires stored layouts after the given duration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New builds a Redis-backed preference store.
func New(client *redis.Client, options ...Option) *Store {
	s := &Store{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ layout.PreferenceStore = (*Store)(nil)

// LoadLayout returns the stored layout or nil when the user has none yet.
func (s *Store) LoadLayout(ctx context.Context, viewer layout.ViewerContext) (*layout.PersistedLayout, error) {
	if viewer.UserID == "" {
		return nil, nil
	}
	blob, err := s.client.Get(ctx, s.key(viewer.UserID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: load layout for %s: %w", viewer.UserID, err)
	}
	var stored layout.PersistedLayout
	if err := json.Unmarshal(blob, &stored); err != nil {
		return nil, fmt.Errorf("redisstore: decode layout for %s: %w", viewer.UserID, err)
	}
	return &stored, nil
}

// SaveLayout stores the full layout for a viewer, last write wins.
func (s *Store) SaveLayout(ctx context.Context, viewer layout.ViewerContext, l layout.PersistedLayout) error {
	if viewer.UserID == "" {
		return errors.New("redisstore: viewer user id is required")
	}
	blob, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("redisstore: encode layout for %s: %w", viewer.UserID, err)
	}
	if err := s.client.Set(ctx, s.key(viewer.UserID), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: save layout for %s: %w", viewer.UserID, err)
	}
	return nil
}

// ResetLayout removes the stored layout.
func (s *Store) ResetLayout(ctx context.Context, viewer layout.ViewerContext) error {
	if viewer.UserID == "" {
		return errors.New("redisstore: viewer user id is required")
	}
	if err := s.client.Del(ctx, s.key(viewer.UserID)).Err(); err != nil {
		return fmt.Errorf("redisstore: reset layout for %s: %w", viewer.UserID, err)
	}
	return nil
}

func (s *Store) key(userID string) string {
	return s.keyPrefix + userID
}
