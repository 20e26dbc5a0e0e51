package application

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
)

// DefaultSessionCapacity is how many session stores stay loaded before the least recently
// used one is evicted.
const DefaultSessionCapacity = 10000

// Decorator wraps each session store, e.g. with observability.
type Decorator func(sessionID string, svc ports.Service) ports.Service

// Sessions holds one cart store per browsing session, created on first use.
// Stores persist write-through, so an evicted session is rebuilt from its snapshot.
type Sessions struct {
	carts    *lru.Cache[string, ports.Service]
	loads    singleflight.Group
	storage  ports.SnapshotStore
	opts     []Option
	decorate Decorator
}

func NewSessions(storage ports.SnapshotStore, decorate Decorator, opts ...Option) *Sessions {
	return NewSessionsWithCapacity(DefaultSessionCapacity, storage, decorate, opts...)
}

// NewSessionsWithCapacity bounds the loaded stores to capacity; non-positive values use
// DefaultSessionCapacity.
func NewSessionsWithCapacity(capacity int, storage ports.SnapshotStore, decorate Decorator, opts ...Option) *Sessions {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	carts, err := lru.New[string, ports.Service](capacity)
	if err != nil {
		panic(err)
	}
	return &Sessions{
		carts:    carts,
		storage:  storage,
		opts:     opts,
		decorate: decorate,
	}
}

// Cart returns the store for sessionID, rehydrating it from storage when it is not loaded.
// Concurrent first lookups of one session share a single load; other sessions are not blocked.
func (s *Sessions) Cart(ctx context.Context, sessionID string) ports.Service {
	sessionID = strings.TrimSpace(sessionID)
	if svc, ok := s.carts.Get(sessionID); ok {
		return svc
	}
	v, _, _ := s.loads.Do(sessionID, func() (any, error) {
		if svc, ok := s.carts.Get(sessionID); ok {
			return svc, nil
		}
		var svc ports.Service = NewService(ctx, s.storage, ports.KeyFor(sessionID), s.opts...)
		if s.decorate != nil {
			svc = s.decorate(sessionID, svc)
		}
		s.carts.Add(sessionID, svc)
		return svc, nil
	})
	return v.(ports.Service)
}

// Len reports how many session stores are loaded.
func (s *Sessions) Len() int {
	return s.carts.Len()
}
