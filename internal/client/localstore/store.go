// Package localstore keeps journal entries as plain files on the device:
//
//	<root>/journal_entries/journal_<entryId>.txt   codec blob, UTF-8
//	<root>/journal_images/<filename>               raw image bytes
//
// An entry file's mtime is its logical save time; the sync engine compares it
// against remote lastModified values, so writes always set it explicitly.
package localstore

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/codec"
	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/filex"
)

const (
	EntriesDir = "journal_entries"
	ImagesDir  = "journal_images"

	entryFilePrefix = "journal_"
	entryFileExt    = ".txt"

	filePerm = 0o640
)

// Store is a filesystem-backed local entry store rooted at the app data directory.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// Init creates the entries and images directories under the root.
func (s *Store) Init() error {
	for _, dir := range []string{EntriesDir, ImagesDir} {
		if _, err := filex.EnsureSubdDir(s.root, dir); err != nil {
			return fmt.Errorf("init local store: %w", err)
		}
	}
	return nil
}

// EntryPath returns the file path holding entry id.
func (s *Store) EntryPath(id string) string {
	return filepath.Join(s.root, EntriesDir, entryFilePrefix+id+entryFileExt)
}

// List returns the ids of entry files matching filter, sorted ascending. Ids
// are derived from file names and are not validated here.
func (s *Store) List(filter models.DateFilter) ([]string, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, EntriesDir)
	items, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read entries dir: %w", err)
	}

	prefix := filter.Prefix()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if !it.Type().IsRegular() {
			continue
		}
		name := it.Name()
		if !strings.HasPrefix(name, entryFilePrefix) || !strings.HasSuffix(name, entryFileExt) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, entryFilePrefix), entryFileExt)
		if id == "" || !strings.HasPrefix(id, prefix) {
			continue
		}
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

// Read loads entry id with its mtime.
func (s *Store) Read(id string) (*models.LocalEntry, error) {
	path := s.EntryPath(id)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", id, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat entry %s: %w", id, err)
	}

	return &models.LocalEntry{ID: id, Blob: string(data), ModTime: fi.ModTime()}, nil
}

// ModTime returns the mtime of entry id.
func (s *Store) ModTime(id string) (time.Time, error) {
	fi, err := os.Stat(s.EntryPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat entry %s: %w", id, err)
	}
	return fi.ModTime(), nil
}

// Write replaces entry id with blob and sets its mtime to ts.
func (s *Store) Write(id, blob string, ts time.Time) error {
	if err := filex.WriteAtomic(s.EntryPath(id), []byte(blob), filePerm, ts); err != nil {
		return fmt.Errorf("write entry %s: %w", id, err)
	}
	return nil
}

// Touch sets the mtime of an existing entry without rewriting it.
func (s *Store) Touch(id string, ts time.Time) error {
	err := os.Chtimes(s.EntryPath(id), ts, ts)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return fmt.Errorf("touch entry %s: %w", id, err)
	}
	return nil
}

// ImagePath resolves a blob's relative image path to an absolute one. A bare
// file name is looked up in the images directory; anything resolving outside
// it is rejected with common.ErrParse.
func (s *Store) ImagePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("%w: empty image path", common.ErrParse)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: image path %q is absolute", common.ErrParse, rel)
	}
	if filepath.Dir(clean) == "." {
		clean = filepath.Join(ImagesDir, clean)
	}
	if !strings.HasPrefix(clean, ImagesDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: image path %q is outside %s", common.ErrParse, rel, ImagesDir)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Store) ReadImage(rel string) ([]byte, error) {
	path, err := s.ImagePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("image %s: %w", rel, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", rel, err)
	}
	return data, nil
}

func (s *Store) WriteImage(rel string, data []byte) error {
	path, err := s.ImagePath(rel)
	if err != nil {
		return err
	}
	if err := filex.WriteAtomic(path, data, filePerm, time.Time{}); err != nil {
		return fmt.Errorf("write image %s: %w", rel, err)
	}
	return nil
}

func (s *Store) ImageExists(rel string) bool {
	path, err := s.ImagePath(rel)
	if err != nil {
		return false
	}
	ok, err := filex.Exists(path)
	return err == nil && ok
}

// CheckImage returns nil when rel exists and decodes as an image,
// common.ErrorNotFound when it is missing and common.ErrCorruptImage when it
// does not decode.
func (s *Store) CheckImage(rel string) error {
	path, err := s.ImagePath(rel)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("image %s: %w", rel, common.ErrorNotFound)
	}
	if err != nil {
		return fmt.Errorf("open image %s: %w", rel, err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("image %s: %w: %v", rel, common.ErrCorruptImage, err)
	}
	return nil
}

// ValidImage reports whether CheckImage passes.
func (s *Store) ValidImage(rel string) bool {
	return s.CheckImage(rel) == nil
}

// SaveEntry is the user's save action. It copies imageSrc (when given) into
// the images directory, writes the entry blob and returns the entry id. A
// daily entry replaces the day's file; a timestamped one creates a new file.
func (s *Store) SaveEntry(text, imageSrc string, at time.Time, timestamped bool) (string, error) {
	id := models.NewDailyID(at)
	if timestamped {
		id = models.NewTimestampID(at)
	}

	rel := ""
	if imageSrc != "" {
		data, err := os.ReadFile(imageSrc)
		if err != nil {
			return "", fmt.Errorf("read image source: %w", err)
		}
		ext := strings.ToLower(filepath.Ext(imageSrc))
		if ext == "" {
			ext = ".jpg"
		}
		rel = ImagesDir + "/IMG_" + id + ext
		if err := s.WriteImage(rel, data); err != nil {
			return "", err
		}
	}

	if err := s.Write(id, codec.Encode(text, rel), at); err != nil {
		return "", err
	}
	return id, nil
}
