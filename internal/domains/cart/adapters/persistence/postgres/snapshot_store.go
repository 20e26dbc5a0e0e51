package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

var errSnapshotKeyRequired = errors.New("snapshot key is required")

// SnapshotStore persists cart snapshots in PostgreSQL using GORM.
type SnapshotStore struct {
	db *gorm.DB
}

// NewSnapshotStore wires a PostgreSQL-backed store. Caller manages DB lifecycle and migrations.
func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// snapshotRecord maps one cart snapshot to a row keyed by the snapshot key.
type snapshotRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Payload   []byte    `gorm:"column:payload;type:bytea"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (snapshotRecord) TableName() string { return "cart_snapshots" }

// Load fetches the snapshot stored under key.
func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errSnapshotKeyRequired
	}
	var rec snapshotRecord
	if err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSnapshotNotFound
		}
		return nil, err
	}
	return rec.Payload, nil
}

// Save upserts the snapshot under key.
func (s *SnapshotStore) Save(ctx context.Context, key string, snapshot []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errSnapshotKeyRequired
	}
	rec := snapshotRecord{Key: key, Payload: snapshot}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
}

// DefaultRetention is how long an untouched cart snapshot is kept by PurgeStale callers.
const DefaultRetention = 30 * 24 * time.Hour

// PurgeStale deletes snapshots not written since cutoff and reports how many rows went away.
func (s *SnapshotStore) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&snapshotRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge stale cart snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *SnapshotStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres snapshot store not configured")
	}
	return nil
}
