package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/neokart/neokart-backend/pkg/config"
	redisclient "github.com/neokart/neokart-backend/pkg/redis"
)

type stateStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type stateKeyer interface {
	SessionKey(visitorID string) string
}

// Manager persists visitor session state as JSON in Redis. A missing
// key reads as the zero state; writes refresh the TTL.
type Manager struct {
	store stateStore
	keyer stateKeyer
	ttl   time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   cfg.TTL,
	}, nil
}

// Load returns the stored state for the visitor, or the zero state
// when none exists yet.
func (m *Manager) Load(ctx context.Context, visitorID string) (State, error) {
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(visitorID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("loading session state: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Corrupt state is discarded rather than poisoning the session.
		return State{}, nil
	}
	return state, nil
}

// Save writes the state back, refreshing the session TTL.
func (m *Manager) Save(ctx context.Context, visitorID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(visitorID), string(payload), m.ttl)
}

// Update loads, mutates, and saves the state in one call.
func (m *Manager) Update(ctx context.Context, visitorID string, fn func(*State) error) (State, error) {
	state, err := m.Load(ctx, visitorID)
	if err != nil {
		return State{}, err
	}
	if err := fn(&state); err != nil {
		return State{}, err
	}
	if err := m.Save(ctx, visitorID, state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Clear drops the visitor's session state entirely.
func (m *Manager) Clear(ctx context.Context, visitorID string) error {
	return m.store.Del(ctx, m.keyer.SessionKey(visitorID))
}

// NewVisitorID mints the opaque identifier carried by the session cookie.
func NewVisitorID() string {
	return uuid.NewString()
}
