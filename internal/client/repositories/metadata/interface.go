// Package metadata is a small key-value table in the client DB holding
// per-device state such as the last successful sync time.
package metadata

import (
	"context"
)

// Well-known keys. Per-user keys are built with UserKey.
const (
	KeyLastSyncAt = "last_sync_at"
)

// UserKey scopes key to userID.
func UserKey(userID, key string) string {
	return "user:" + userID + ":" + key
}

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
