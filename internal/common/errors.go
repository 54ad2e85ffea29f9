// Package common defines shared constants and sentinel errors used across
// client and server layers of journalkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Sync errors. Per-entry kinds (upload, download, corrupt image, parse)
	// never abort a sync run; ErrConnectivity and ErrSyncInProgress do.
	ErrUpload         = errors.New("image upload failed")
	ErrDownload       = errors.New("image download failed")
	ErrConnectivity   = errors.New("remote store unreachable")
	ErrCorruptImage   = errors.New("corrupt local image")
	ErrParse          = errors.New("parse error")
	ErrSyncInProgress = errors.New("sync already in progress")
)
