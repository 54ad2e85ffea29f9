// Package models defines journal entry identifiers and the local and remote
// shapes of an entry.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/codec"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/timex"
)

// IDKind tells daily ids from timestamped ones.
type IDKind string

const (
	IDKindDaily       IDKind = "daily"
	IDKindTimestamped IDKind = "timestamped"
)

const (
	dailyLayout     = "2006-01-02"
	timestampLayout = "2006-01-02_15-04-05"
	dailyIDLen      = len(dailyLayout)
	timestampIDLen  = len(timestampLayout) + 4 // "-SSS"
)

// EntryID is a parsed entry identifier.
type EntryID struct {
	Raw  string
	Kind IDKind
	At   time.Time
}

// NewDailyID returns the yyyy-MM-dd id for t.
func NewDailyID(t time.Time) string {
	return t.Format(dailyLayout)
}

// NewTimestampID returns the yyyy-MM-dd_HH-mm-ss-SSS id for t.
func NewTimestampID(t time.Time) string {
	return fmt.Sprintf("%s-%03d", t.Format(timestampLayout), t.Nanosecond()/int(time.Millisecond))
}

// ParseEntryID validates id. Errors wrap common.ErrParse.
func ParseEntryID(id string) (EntryID, error) {
	switch len(id) {
	case dailyIDLen:
		t, err := time.Parse(dailyLayout, id)
		if err != nil {
			return EntryID{}, fmt.Errorf("%w: entry id %q: %v", common.ErrParse, id, err)
		}
		return EntryID{Raw: id, Kind: IDKindDaily, At: t}, nil

	case timestampIDLen:
		base, ms := id[:len(timestampLayout)], id[len(timestampLayout):]
		t, err := time.Parse(timestampLayout, base)
		if err != nil {
			return EntryID{}, fmt.Errorf("%w: entry id %q: %v", common.ErrParse, id, err)
		}
		if ms[0] != '-' {
			return EntryID{}, fmt.Errorf("%w: entry id %q: missing millisecond part", common.ErrParse, id)
		}
		n := 0
		for _, c := range ms[1:] {
			if c < '0' || c > '9' {
				return EntryID{}, fmt.Errorf("%w: entry id %q: bad milliseconds", common.ErrParse, id)
			}
			n = n*10 + int(c-'0')
		}
		return EntryID{Raw: id, Kind: IDKindTimestamped, At: t.Add(time.Duration(n) * time.Millisecond)}, nil

	default:
		return EntryID{}, fmt.Errorf("%w: entry id %q: unexpected length", common.ErrParse, id)
	}
}

// ValidEntryID reports whether id parses.
func ValidEntryID(id string) bool {
	_, err := ParseEntryID(id)
	return err == nil
}

// DateFilter narrows a listing to a year, month or day. Zero fields match anything.
type DateFilter struct {
	Year  int
	Month int
	Day   int
}

// Validate rejects a month without a year, a day without a month, and out of
// range values.
func (f DateFilter) Validate() error {
	switch {
	case f.Month != 0 && f.Year == 0:
		return fmt.Errorf("%w: month filter requires a year", common.ErrParse)
	case f.Day != 0 && f.Month == 0:
		return fmt.Errorf("%w: day filter requires a month", common.ErrParse)
	case f.Year < 0 || f.Year > 9999:
		return fmt.Errorf("%w: year %d out of range", common.ErrParse, f.Year)
	case f.Month < 0 || f.Month > 12:
		return fmt.Errorf("%w: month %d out of range", common.ErrParse, f.Month)
	case f.Day < 0 || f.Day > 31:
		return fmt.Errorf("%w: day %d out of range", common.ErrParse, f.Day)
	}
	return nil
}

// Prefix is the id prefix the filter selects, e.g. "2025-06-".
func (f DateFilter) Prefix() string {
	switch {
	case f.Year == 0:
		return ""
	case f.Month == 0:
		return fmt.Sprintf("%04d-", f.Year)
	case f.Day == 0:
		return fmt.Sprintf("%04d-%02d-", f.Year, f.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)
	}
}

// LocalEntry is an entry file as found on disk.
type LocalEntry struct {
	ID      string
	Blob    string
	ModTime time.Time
}

// RemoteEntry is a per-user remote document.
type RemoteEntry struct {
	ID             string
	Content        string
	RemoteImageURL string
	LastModified   int64
}

// RemoteEntryInfo is what a remote listing returns per document.
type RemoteEntryInfo struct {
	ID             string
	LastModified   int64
	RemoteImageURL string
}

// JournalEntry is the logical entry shown to the user.
type JournalEntry struct {
	ID             string
	Text           string
	ImagePath      string
	LastModified   time.Time
	RemoteImageURL string
}

func FromLocal(e *LocalEntry) JournalEntry {
	text, img := codec.Decode(e.Blob)
	return JournalEntry{ID: e.ID, Text: text, ImagePath: img, LastModified: e.ModTime}
}

func FromRemote(e *RemoteEntry) JournalEntry {
	text, img := codec.Decode(e.Content)
	return JournalEntry{
		ID:             e.ID,
		Text:           text,
		ImagePath:      img,
		LastModified:   timex.FromMillis(e.LastModified),
		RemoteImageURL: e.RemoteImageURL,
	}
}
