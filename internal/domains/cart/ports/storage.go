package ports

import (
	"context"
	"errors"
	"strings"
)

// SnapshotKey is the well-known persistence key of the cart snapshot.
const SnapshotKey = "storefront:cart"

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// SnapshotStore is the key-value persistence surface that outlives a process.
type SnapshotStore interface {
	// Load returns ErrSnapshotNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, snapshot []byte) error
}

// KeyFor scopes the snapshot key to a browsing session.
func KeyFor(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return SnapshotKey
	}
	return SnapshotKey + ":" + sessionID
}
