package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/localstore"
	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/logging"
	"github.com/dmitrijs2005/journalkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiskEngine(t *testing.T, r *fakeRemote) (*Engine, *localstore.Store) {
	t.Helper()
	store := localstore.New(t.TempDir())
	require.NoError(t, store.Init())
	return NewEngine(store, r, logging.Nop(), WithClock(func() time.Time { return now })), store
}

func diskMillis(t *testing.T, store *localstore.Store, id string) int64 {
	t.Helper()
	mtime, err := store.ModTime(id)
	require.NoError(t, err)
	return timex.Millis(mtime)
}

func TestSynchronizeOnDisk_SecondRunWritesNothing(t *testing.T) {
	r := newFakeRemote()
	e, store := newDiskEngine(t, r)
	id, err := store.SaveEntry("Hello from disk", "", earlier, false)
	require.NoError(t, err)

	first, err := e.Synchronize(context.Background(), user, Observer{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Uploaded)
	assert.Equal(t, 1, first.Succeeded)
	assert.Equal(t, timex.Millis(now), r.docs[id].LastModified)
	assert.Equal(t, r.docs[id].LastModified, diskMillis(t, store, id))

	writes := r.remoteWrites()
	second, err := e.Synchronize(context.Background(), user, Observer{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Uploaded)
	assert.Equal(t, 0, second.Downloaded)
	assert.Equal(t, 1, second.Succeeded)
	assert.Empty(t, second.Failures)
	assert.Equal(t, writes, r.remoteWrites())

	got, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "Hello from disk", got.Blob)
}

func TestSynchronizeOnDisk_RemoteNewerForcesMtime(t *testing.T) {
	r := newFakeRemote()
	e, store := newDiskEngine(t, r)
	const id = "2025-06-05"
	require.NoError(t, store.Write(id, "stale local", earlier))
	remoteMillis := timex.Millis(now.Add(-time.Hour)) + 123
	r.docs[id] = models.RemoteEntry{ID: id, Content: "fresh remote", LastModified: remoteMillis}

	rep, err := e.Synchronize(context.Background(), user, Observer{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Downloaded)
	assert.Equal(t, 1, rep.Succeeded)

	got, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "fresh remote", got.Blob)
	assert.Equal(t, remoteMillis, diskMillis(t, store, id))
}

func TestSynchronizeOnDisk_SaveDuringUploadReachesRemote(t *testing.T) {
	r := newFakeRemote()
	e, store := newDiskEngine(t, r)
	const id = "2025-06-01"
	require.NoError(t, store.Write(id, "v1", earlier))

	saved := false
	r.getHook = func(_ context.Context, got string) error {
		if got == id && !saved {
			saved = true
			require.NoError(t, store.Write(id, "v2 user re-save", earlier.Add(time.Hour)))
		}
		return nil
	}

	first, err := e.Synchronize(context.Background(), user, Observer{})
	require.NoError(t, err)
	require.Len(t, first.Failures, 1)
	assert.ErrorIs(t, first.Failures[0].Err, common.ErrVersionConflict)

	_, err = e.Synchronize(context.Background(), user, Observer{})
	require.NoError(t, err)

	got, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, "v2 user re-save", got.Blob)
	assert.Equal(t, "v2 user re-save", r.docs[id].Content)
	assert.Equal(t, r.docs[id].LastModified, diskMillis(t, store, id))
}

func TestSynchronizeOnDisk_ImageMarkerCannotOverwriteEntry(t *testing.T) {
	r := newFakeRemote()
	e, store := newDiskEngine(t, r)
	require.NoError(t, store.Write("2025-01-01", "New year", earlier))

	const url = "https://blobs.test/users/user-1/journal_images/2025-01-02/x.jpg"
	r.docs["2025-01-02"] = models.RemoteEntry{
		ID:             "2025-01-02",
		Content:        "IMAGE_URI::journal_entries/journal_2025-01-01.txt\nSneaky",
		RemoteImageURL: url,
		LastModified:   timex.Millis(earlier),
	}
	r.blobs[url] = []byte("jpeg-bytes")

	rep, err := e.Synchronize(context.Background(), user, Observer{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.ImageFailures)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "2025-01-02", rep.Failures[0].EntryID)
	assert.Equal(t, PhaseDownload, rep.Failures[0].Phase)
	assert.ErrorIs(t, rep.Failures[0].Err, common.ErrParse)

	got, err := store.Read("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "New year", got.Blob)

	text, err := store.Read("2025-01-02")
	require.NoError(t, err)
	assert.Contains(t, text.Blob, "Sneaky")
}
