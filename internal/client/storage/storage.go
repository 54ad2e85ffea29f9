// Package storage opens the client's SQLite database, applies the embedded
// goose migrations and exposes the repositories built on it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/journalkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/journalkeeper/internal/client/repositories/syncruns"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// DBFileName is the database file created under the app data root.
const DBFileName = "journalkeeper.db"

type Storage struct {
	DB       *sql.DB
	Metadata metadata.Repository
	SyncRuns syncruns.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection keeps WithTx simple.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate client db: %w", err)
	}

	return &Storage{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		SyncRuns: syncruns.NewSQLiteRepository(db),
	}, nil
}

// RecordSync stores run and, when it finished without error, moves the
// user's last-sync marker, both in one transaction.
func (s *Storage) RecordSync(ctx context.Context, run *syncruns.Run) error {
	return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := syncruns.NewSQLiteRepository(tx).Insert(ctx, run); err != nil {
			return err
		}
		if run.Error != "" {
			return nil
		}
		key := metadata.UserKey(run.UserID, metadata.KeyLastSyncAt)
		return metadata.SetTime(ctx, metadata.NewSQLiteRepository(tx), key, run.FinishedAt)
	})
}

// LastSyncAt returns the zero time if the user never completed a sync.
func (s *Storage) LastSyncAt(ctx context.Context, userID string) (time.Time, error) {
	return metadata.GetTime(ctx, s.Metadata, metadata.UserKey(userID, metadata.KeyLastSyncAt))
}

// LastRun returns the most recent recorded run, or common.ErrorNotFound.
func (s *Storage) LastRun(ctx context.Context, userID string) (*syncruns.Run, error) {
	return s.SyncRuns.Last(ctx, userID)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
