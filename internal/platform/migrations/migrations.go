package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the storefront schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&cartSnapshotRecord{})
}

// Cart snapshot schema mirrors the cart Postgres adapter.
type cartSnapshotRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:255"`
	Payload   []byte    `gorm:"column:payload;type:bytea"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (cartSnapshotRecord) TableName() string { return "cart_snapshots" }
