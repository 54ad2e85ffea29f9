package documents

import (
	"context"

	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
)

// Repository stores per-user journal documents.
type Repository interface {
	Upsert(ctx context.Context, doc *models.Document) error
	Get(ctx context.Context, userID, entryID string) (*models.Document, error)
	List(ctx context.Context, userID string) ([]*models.DocumentInfo, error)
}
