// Package models holds the server-side shapes stored in PostgreSQL.
package models

// Document is one journal entry as stored for a user. LastModified is epoch
// milliseconds as supplied by the writing device.
type Document struct {
	UserID         string
	EntryID        string
	Content        string
	RemoteImageURL string
	LastModified   int64
}

// DocumentInfo is the listing projection of a Document.
type DocumentInfo struct {
	EntryID        string
	LastModified   int64
	RemoteImageURL string
}
