package remote

import (
	"context"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
)

// Store is the per-user remote document collection plus its blob storage.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, userID string) ([]models.RemoteEntryInfo, error)
	Get(ctx context.Context, userID, entryID string) (*models.RemoteEntry, error)
	Put(ctx context.Context, userID string, entry *models.RemoteEntry) error
	UploadImage(ctx context.Context, userID, entryID, filename string, data []byte) (string, error)
	DownloadImage(ctx context.Context, userID, url string) ([]byte, error)
	Close() error
}
