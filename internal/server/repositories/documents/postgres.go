// Package documents provides the PostgreSQL-backed repository for per-user
// journal documents.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
)

// PostgresRepository implements document storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert writes doc, replacing every field of an existing document with the
// same user and entry id.
func (r *PostgresRepository) Upsert(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO journal_entries (user_id, entry_id, content, remote_image_url, last_modified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, entry_id)
		DO UPDATE SET
			content = EXCLUDED.content,
			remote_image_url = EXCLUDED.remote_image_url,
			last_modified = EXCLUDED.last_modified,
			updated_at = now();
	`
	res, err := r.db.ExecContext(ctx, query, doc.UserID, doc.EntryID, doc.Content, doc.RemoteImageURL, doc.LastModified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// Get returns one document or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, entryID string) (*models.Document, error) {
	query := `SELECT content, remote_image_url, last_modified FROM journal_entries WHERE user_id=$1 AND entry_id=$2`

	doc := &models.Document{UserID: userID, EntryID: entryID}
	err := r.db.QueryRowContext(ctx, query, userID, entryID).Scan(&doc.Content, &doc.RemoteImageURL, &doc.LastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select document: %w", err)
	}
	return doc, nil
}

// List returns id, lastModified and image URL of every document of userID,
// ordered by entry id.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.DocumentInfo, error) {
	query := `SELECT entry_id, last_modified, remote_image_url FROM journal_entries WHERE user_id=$1 ORDER BY entry_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}

	return dbx.CollectRows(rows, func(s dbx.Scanner) (*models.DocumentInfo, error) {
		var item models.DocumentInfo
		if err := s.Scan(&item.EntryID, &item.LastModified, &item.RemoteImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		return &item, nil
	})
}
