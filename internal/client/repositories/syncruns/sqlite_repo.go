package syncruns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `id, user_id, started_at, finished_at, processed, succeeded,
	uploaded, downloaded, image_failures, error`

func (r *SQLiteRepository) Insert(ctx context.Context, run *Run) (int64, error) {
	var errText sql.NullString
	if run.Error != "" {
		errText = sql.NullString{String: run.Error, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_runs (user_id, started_at, finished_at, processed, succeeded,
			uploaded, downloaded, image_failures, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.UserID, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(),
		run.Processed, run.Succeeded, run.Uploaded, run.Downloaded, run.ImageFailures, errText)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sync run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read sync run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// Last returns the most recent run of userID or common.ErrorNotFound.
func (r *SQLiteRepository) Last(ctx context.Context, userID string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+`
		FROM sync_runs WHERE user_id = ? ORDER BY finished_at DESC, id DESC LIMIT 1`, userID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync run: %w", err)
	}
	return run, nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, userID string, limit int) ([]*Run, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+`
		FROM sync_runs WHERE user_id = ? ORDER BY finished_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}

	runs, err := dbx.CollectRows(rows, scanRun)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync runs: %w", err)
	}
	return runs, nil
}

func scanRun(s dbx.Scanner) (*Run, error) {
	var (
		run               Run
		started, finished int64
		errText           sql.NullString
	)
	if err := s.Scan(&run.ID, &run.UserID, &started, &finished, &run.Processed, &run.Succeeded,
		&run.Uploaded, &run.Downloaded, &run.ImageFailures, &errText); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(started)
	run.FinishedAt = time.UnixMilli(finished)
	run.Error = errText.String
	return &run, nil
}
