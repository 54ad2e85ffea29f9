// Package syncruns keeps a history of sync runs in the client DB so the CLI
// can show when the journal was last synchronized and how it went.
package syncruns

import (
	"context"
	"time"
)

// Run is one recorded sync invocation.
type Run struct {
	ID            int64
	UserID        string
	StartedAt     time.Time
	FinishedAt    time.Time
	Processed     int
	Succeeded     int
	Uploaded      int
	Downloaded    int
	ImageFailures int
	Error         string
}

type Repository interface {
	Insert(ctx context.Context, run *Run) (int64, error)
	Last(ctx context.Context, userID string) (*Run, error)
	Recent(ctx context.Context, userID string, limit int) ([]*Run, error)
}
