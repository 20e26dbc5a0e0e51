//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
	"github.com/Apurer/storefront-cart/internal/platform/migrations"
)

func setupCartPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	_, err := NewSnapshotStore(db).Load(context.Background(), ports.SnapshotKey)
	assert.ErrorIs(t, err, ports.ErrSnapshotNotFound)
}

func TestSnapshotStore_SaveUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	store := NewSnapshotStore(db)
	ctx := context.Background()
	key := ports.KeyFor("session-1")

	require.NoError(t, store.Save(ctx, key, []byte(`{"version":1,"items":[]}`)))
	require.NoError(t, store.Save(ctx, key, []byte(`{"version":1,"items":[{"productId":1}]}`)))

	data, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"items":[{"productId":1}]}`, string(data))

	var count int64
	require.NoError(t, db.Model(&snapshotRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSnapshotStore_RejectsBlankKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	store := NewSnapshotStore(db)
	require.Error(t, store.Save(context.Background(), " ", []byte("{}")))
	_, err := store.Load(context.Background(), " ")
	require.Error(t, err)
}

func TestSnapshotStore_NormalizesKeysOnLoadAndSave(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	store := NewSnapshotStore(db)
	ctx := context.Background()
	key := ports.KeyFor("session-2")
	require.NoError(t, store.Save(ctx, " "+key+" ", []byte(`{"version":1,"items":[]}`)))

	data, err := store.Load(ctx, key+"\t")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"items":[]}`, string(data))
}

func TestSnapshotStore_PurgeStale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	store := NewSnapshotStore(db)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, ports.KeyFor("old"), []byte(`{"version":1,"items":[]}`)))
	require.NoError(t, store.Save(ctx, ports.KeyFor("fresh"), []byte(`{"version":1,"items":[]}`)))
	require.NoError(t, db.Model(&snapshotRecord{}).
		Where("key = ?", ports.KeyFor("old")).
		UpdateColumn("updated_at", time.Now().Add(-2*DefaultRetention)).Error)

	purged, err := store.PurgeStale(ctx, time.Now().Add(-DefaultRetention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Load(ctx, ports.KeyFor("old"))
	assert.ErrorIs(t, err, ports.ErrSnapshotNotFound)
	_, err = store.Load(ctx, ports.KeyFor("fresh"))
	assert.NoError(t, err)
}
