package state

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by Load for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions between turns. Save refreshes the TTL.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
}

type storeOptions struct {
	keyPrefix string
	ttl       time.Duration
}

// StoreOption customises a store implementation.
type StoreOption func(*storeOptions)

// WithKeyPrefix overrides the persistence key prefix.
func WithKeyPrefix(prefix string) StoreOption {
	return func(o *storeOptions) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}

// WithTTL overrides the session expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(o *storeOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

func applyStoreOptions(opts []StoreOption) storeOptions {
	o := storeOptions{
		keyPrefix: "session:",
		ttl:       DefaultTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
