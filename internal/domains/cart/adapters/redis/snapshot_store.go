package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps cart snapshots as plain Redis strings without expiry.
type SnapshotStore struct {
	client *goredis.Client
}

// NewSnapshotStore wires a Redis-backed store. Caller owns the client lifecycle.
func NewSnapshotStore(client *goredis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ports.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart snapshot: %w", err)
	}
	return data, nil
}

func (s *SnapshotStore) Save(ctx context.Context, key string, snapshot []byte) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, snapshot, 0).Err(); err != nil {
		return fmt.Errorf("redis set cart snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis snapshot store not configured")
	}
	return nil
}
