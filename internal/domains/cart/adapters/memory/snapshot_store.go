package memory

import (
	"context"
	"sync"

	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory SnapshotStore implementation.
type SnapshotStore struct {
	snapshots sync.Map
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	v, ok := s.snapshots.Load(key)
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return append([]byte(nil), v.([]byte)...), nil
}

func (s *SnapshotStore) Save(_ context.Context, key string, snapshot []byte) error {
	s.snapshots.Store(key, append([]byte(nil), snapshot...))
	return nil
}
