package syncruns

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE sync_runs (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id        TEXT    NOT NULL,
  started_at     INTEGER NOT NULL,
  finished_at    INTEGER NOT NULL,
  processed      INTEGER NOT NULL DEFAULT 0,
  succeeded      INTEGER NOT NULL DEFAULT 0,
  uploaded       INTEGER NOT NULL DEFAULT 0,
  downloaded     INTEGER NOT NULL DEFAULT 0,
  image_failures INTEGER NOT NULL DEFAULT 0,
  error          TEXT
);`)
	require.NoError(t, err)
	return db
}

func TestInsertAndLast(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.UnixMilli(1_750_000_000_000)

	_, err := r.Last(ctx, "u1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	first := &Run{UserID: "u1", StartedAt: base, FinishedAt: base.Add(time.Second), Processed: 3, Succeeded: 3, Uploaded: 1}
	id, err := r.Insert(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)

	second := &Run{UserID: "u1", StartedAt: base.Add(time.Minute), FinishedAt: base.Add(time.Minute + time.Second),
		Processed: 3, Succeeded: 2, ImageFailures: 1, Error: "context canceled"}
	_, err = r.Insert(ctx, second)
	require.NoError(t, err)

	_, err = r.Insert(ctx, &Run{UserID: "u2", StartedAt: base, FinishedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	last, err := r.Last(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, last.ID)
	assert.Equal(t, 2, last.Succeeded)
	assert.Equal(t, 1, last.ImageFailures)
	assert.Equal(t, "context canceled", last.Error)
	assert.True(t, second.FinishedAt.Equal(last.FinishedAt))
}

func TestRecent_OrdersNewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.UnixMilli(1_750_000_000_000)

	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		_, err := r.Insert(ctx, &Run{UserID: "u1", StartedAt: at, FinishedAt: at, Processed: i})
		require.NoError(t, err)
	}

	runs, err := r.Recent(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{runs[0].Processed, runs[1].Processed, runs[2].Processed})
	assert.Empty(t, runs[0].Error)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Insert(ctx, &Run{UserID: "u"})
	require.ErrorContains(t, err, "failed to insert sync run")

	_, err = r.Last(ctx, "u")
	require.ErrorContains(t, err, "failed to get last sync run")

	_, err = r.Recent(ctx, "u", 1)
	require.ErrorContains(t, err, "failed to list sync runs")
}
