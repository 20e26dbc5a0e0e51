package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cartpostgres "github.com/Apurer/storefront-cart/internal/domains/cart/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/storefront-cart/internal/platform/postgres"
)

// cart-purger removes cart snapshots that have not been written for CART_RETENTION_HOURS.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set; cannot purge cart snapshots")
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer platformpostgres.Close(db)

	retention := retentionFromEnv()
	purged, err := cartpostgres.NewSnapshotStore(db).PurgeStale(ctx, time.Now().Add(-retention))
	if err != nil {
		log.Fatalf("failed to purge cart snapshots: %v", err)
	}
	logger.Info("cart snapshot purge completed", slog.Int64("purged", purged), slog.Duration("retention", retention))
}

func retentionFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("CART_RETENTION_HOURS"))
	if raw == "" {
		return cartpostgres.DefaultRetention
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return cartpostgres.DefaultRetention
	}
	return time.Duration(hours) * time.Hour
}
