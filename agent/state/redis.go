package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions as JSON under "<prefix><session_id>" with a
// sliding TTL refreshed on every save.
type RedisStore struct {
	client *redis.Client
	opts   storeOptions
}

func NewRedisStore(client *redis.Client, opts ...StoreOption) *RedisStore {
	return &RedisStore{
		client: client,
		opts:   applyStoreOptions(opts),
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.opts.keyPrefix + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.SessionID, err)
	}
	if err := s.client.Set(ctx, s.key(session.SessionID), raw, s.opts.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.SessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
