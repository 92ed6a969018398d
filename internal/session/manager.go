package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Manager hands out per-student Redis-backed stores so an in-progress
// session can follow the student across reloads and devices. The server
// exposes it as a small key mirror; the controller on the client side
// stays the owner of the session semantics.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

func (m *Manager) StoreFor(studentID uint) Store {
	return NewRedisStore(m.client, studentID, m.ttl)
}

// IsSessionKey reports whether key is one of the five persisted keys.
func IsSessionKey(key string) bool {
	for _, k := range sessionKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Snapshot returns the student's persisted keys. Missing keys are simply
// absent from the map; a fresh session snapshots to an empty map.
func (m *Manager) Snapshot(ctx context.Context, studentID uint) (map[string]string, error) {
	store := m.StoreFor(studentID)
	state := make(map[string]string)
	for _, key := range sessionKeys {
		val, err := store.Get(ctx, key)
		if err == ErrKeyNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		state[key] = val
	}
	return state, nil
}

// Save writes the given keys, refreshing the TTL on each. Unknown keys are
// rejected so the mirror cannot be used as a general key-value store.
func (m *Manager) Save(ctx context.Context, studentID uint, state map[string]string) error {
	for key := range state {
		if !IsSessionKey(key) {
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
	}

	store := m.StoreFor(studentID)
	for key, val := range state {
		if err := store.Set(ctx, key, val); err != nil {
			return err
		}
	}
	return nil
}

// Clear drops all five keys together.
func (m *Manager) Clear(ctx context.Context, studentID uint) error {
	return m.StoreFor(studentID).Del(ctx, sessionKeys...)
}
