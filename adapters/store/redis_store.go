package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dictgate/dictgate/core"
	"github.com/dictgate/dictgate/ports"
)

// RedisStore keeps sessions in Redis as JSON values. An optional TTL
// lets abandoned sessions expire on their own; zero keeps them until
// removed, matching the memory store.
//
// The adapter does not attempt cross-instance locking: the gate
// service serializes requests within the process, which is the only
// writer this design supports.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) ports.SessionStore {
	return &RedisStore{
		client: client,
		prefix: "dictgate:session:",
		ttl:    ttl,
	}
}

// Get returns the session for clientID, reporting whether one exists.
func (s *RedisStore) Get(ctx context.Context, clientID string) (core.Session, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+clientID).Result()
	if errors.Is(err, redis.Nil) {
		return core.Session{}, false, nil
	}
	if err != nil {
		return core.Session{}, false, fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}

	var session core.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return core.Session{}, false, fmt.Errorf("%w: corrupt session: %v", core.ErrStoreOperation, err)
	}
	return session, true, nil
}

// Insert stores a new session for clientID.
func (s *RedisStore) Insert(ctx context.Context, clientID string, session core.Session) error {
	return s.set(ctx, clientID, session)
}

// Update applies fn to the session for clientID and writes it back.
func (s *RedisStore) Update(ctx context.Context, clientID string, fn func(*core.Session)) error {
	session, ok, err := s.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrSessionNotFound
	}
	fn(&session)
	return s.set(ctx, clientID, session)
}

// Remove deletes the session for clientID.
func (s *RedisStore) Remove(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.prefix+clientID).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}

func (s *RedisStore) set(ctx context.Context, clientID string, session core.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: encode session: %v", core.ErrStoreOperation, err)
	}
	if err := s.client.Set(ctx, s.prefix+clientID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}
