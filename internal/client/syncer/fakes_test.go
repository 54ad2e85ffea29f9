package syncer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
)

type fakeFile struct {
	blob  string
	mtime time.Time
}

type fakeLocal struct {
	mu      sync.Mutex
	entries map[string]fakeFile
	images  map[string][]byte
	corrupt map[string]bool
	listErr error

	writes      int
	touches     int
	imageWrites int
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{
		entries: map[string]fakeFile{},
		images:  map[string][]byte{},
		corrupt: map[string]bool{},
	}
}

func (f *fakeLocal) put(id, blob string, mtime time.Time) {
	f.entries[id] = fakeFile{blob: blob, mtime: mtime}
}

func (f *fakeLocal) List(models.DateFilter) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.entries))
	for id := range f.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeLocal) Read(id string) (*models.LocalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	return &models.LocalEntry{ID: id, Blob: e.blob, ModTime: e.mtime}, nil
}

func (f *fakeLocal) ModTime(id string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return time.Time{}, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	return e.mtime, nil
}

func (f *fakeLocal) Write(id, blob string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.entries[id] = fakeFile{blob: blob, mtime: ts}
	return nil
}

func (f *fakeLocal) Touch(id string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	f.touches++
	e.mtime = ts
	f.entries[id] = e
	return nil
}

func (f *fakeLocal) ReadImage(rel string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.images[rel]
	if !ok {
		return nil, fmt.Errorf("image %s: %w", rel, common.ErrorNotFound)
	}
	return data, nil
}

func (f *fakeLocal) WriteImage(rel string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageWrites++
	f.images[rel] = data
	delete(f.corrupt, rel)
	return nil
}

func (f *fakeLocal) ValidImage(rel string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.images[rel]
	return ok && !f.corrupt[rel]
}

func (f *fakeLocal) localWrites() int {
	return f.writes + f.touches + f.imageWrites
}

type fakeRemote struct {
	mu    sync.Mutex
	docs  map[string]models.RemoteEntry
	blobs map[string][]byte

	pingErr     error
	pingHook    func(ctx context.Context)
	listErr     error
	getHook     func(ctx context.Context, id string) error
	uploadErr   map[string]error
	downloadErr map[string]error

	users     map[string]struct{}
	pings     int
	lists     int
	puts      int
	uploads   int
	downloads int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:        map[string]models.RemoteEntry{},
		blobs:       map[string][]byte{},
		uploadErr:   map[string]error{},
		downloadErr: map[string]error{},
		users:       map[string]struct{}{},
	}
}

func (f *fakeRemote) seenUser(userID string) {
	f.mu.Lock()
	f.users[userID] = struct{}{}
	f.mu.Unlock()
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	if f.pingHook != nil {
		f.pingHook(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeRemote) List(_ context.Context, userID string) ([]models.RemoteEntryInfo, error) {
	f.seenUser(userID)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.RemoteEntryInfo, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, models.RemoteEntryInfo{ID: d.ID, LastModified: d.LastModified, RemoteImageURL: d.RemoteImageURL})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRemote) Get(ctx context.Context, userID, entryID string) (*models.RemoteEntry, error) {
	f.seenUser(userID)
	if f.getHook != nil {
		if err := f.getHook(ctx, entryID); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[entryID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", entryID, common.ErrorNotFound)
	}
	return &d, nil
}

func (f *fakeRemote) Put(_ context.Context, userID string, entry *models.RemoteEntry) error {
	f.seenUser(userID)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	f.docs[entry.ID] = *entry
	return nil
}

func (f *fakeRemote) UploadImage(_ context.Context, userID, entryID, filename string, data []byte) (string, error) {
	f.seenUser(userID)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if err := f.uploadErr[entryID]; err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://blobs.test/users/%s/journal_images/%s/%s", userID, entryID, filename)
	f.blobs[url] = data
	return url, nil
}

func (f *fakeRemote) DownloadImage(_ context.Context, userID, url string) ([]byte, error) {
	f.seenUser(userID)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	if err := f.downloadErr[url]; err != nil {
		return nil, err
	}
	data, ok := f.blobs[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrDownload, url)
	}
	return data, nil
}

func (f *fakeRemote) remoteWrites() int {
	return f.puts + f.uploads
}
