// Package services holds the server business logic behind the gRPC handlers.
package services

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_journal.go -package=mocks github.com/dmitrijs2005/journalkeeper/internal/server/services Journal

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/dmitrijs2005/journalkeeper/internal/server/blobs"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/dmitrijs2005/journalkeeper/internal/server/repositories/repomanager"
)

// MaxImageSize caps a single uploaded image.
const MaxImageSize = 32 << 20

var (
	safeID     = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)
	safeUserID = regexp.MustCompile(`^[A-Za-z0-9_.@+-]{1,128}$`)
)

// Journal is the per-user document and image store exposed over gRPC.
type Journal interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, userID string) ([]*models.DocumentInfo, error)
	Get(ctx context.Context, userID, entryID string) (*models.Document, error)
	Put(ctx context.Context, doc *models.Document) error
	UploadImage(ctx context.Context, userID, entryID, filename string, data []byte) (string, error)
	DownloadImage(ctx context.Context, userID, url string) ([]byte, error)
}

// JournalService implements Journal over PostgreSQL and an S3 bucket.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blobs.Store
}

func NewJournalService(db *sql.DB, repomanager repomanager.RepositoryManager, store blobs.Store) *JournalService {
	return &JournalService{db: db, repomanager: repomanager, blobs: store}
}

func validateID(kind, id string) error {
	re := safeID
	if kind == "user id" {
		re = safeUserID
	}
	if !re.MatchString(id) || strings.Trim(id, ".") == "" {
		return fmt.Errorf("%w: invalid %s %q", common.ErrParse, kind, id)
	}
	return nil
}

// Ping checks both backends.
func (s *JournalService) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := s.blobs.Ping(ctx); err != nil {
		return fmt.Errorf("object storage: %w", err)
	}
	return nil
}

func (s *JournalService) List(ctx context.Context, userID string) ([]*models.DocumentInfo, error) {
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}
	return s.repomanager.Documents(s.db).List(ctx, userID)
}

func (s *JournalService) Get(ctx context.Context, userID, entryID string) (*models.Document, error) {
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}
	if err := validateID("entry id", entryID); err != nil {
		return nil, err
	}
	return s.repomanager.Documents(s.db).Get(ctx, userID, entryID)
}

// Put stores doc whole, replacing any previous version. An image URL must
// point at the caller's own objects.
func (s *JournalService) Put(ctx context.Context, doc *models.Document) error {
	if err := validateID("user id", doc.UserID); err != nil {
		return err
	}
	if err := validateID("entry id", doc.EntryID); err != nil {
		return err
	}
	if doc.LastModified < 0 {
		return fmt.Errorf("%w: negative lastModified", common.ErrParse)
	}
	if doc.RemoteImageURL != "" {
		key, ok := s.blobs.KeyFromURL(doc.RemoteImageURL)
		if !ok || !strings.HasPrefix(key, blobs.UserPrefix(doc.UserID)) {
			return common.ErrorForbidden
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Documents(tx).Upsert(ctx, doc)
	})
}

// UploadImage stores data under the entry's image folder and returns its URL.
func (s *JournalService) UploadImage(ctx context.Context, userID, entryID, filename string, data []byte) (string, error) {
	if err := validateID("user id", userID); err != nil {
		return "", err
	}
	if err := validateID("entry id", entryID); err != nil {
		return "", err
	}
	if filename != path.Base(filename) {
		return "", fmt.Errorf("%w: invalid filename %q", common.ErrParse, filename)
	}
	if err := validateID("filename", filename); err != nil {
		return "", err
	}
	if len(data) == 0 || len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: image size %d out of range", common.ErrParse, len(data))
	}
	return s.blobs.Put(ctx, blobs.ImageKey(userID, entryID, filename), data)
}

// DownloadImage returns the bytes behind url, which must belong to userID.
func (s *JournalService) DownloadImage(ctx context.Context, userID, url string) ([]byte, error) {
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}
	key, ok := s.blobs.KeyFromURL(url)
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !strings.HasPrefix(key, blobs.UserPrefix(userID)) {
		return nil, common.ErrorForbidden
	}
	return s.blobs.Get(ctx, url)
}
