package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/logging"
)

const (
	DefaultTolerance        = 2000 * time.Millisecond
	DefaultOperationTimeout = 30 * time.Second
)

// LocalStore is the subset of the local entry store the engine uses.
type LocalStore interface {
	List(filter models.DateFilter) ([]string, error)
	Read(id string) (*models.LocalEntry, error)
	ModTime(id string) (time.Time, error)
	Write(id, blob string, ts time.Time) error
	Touch(id string, ts time.Time) error
	ReadImage(rel string) ([]byte, error)
	WriteImage(rel string, data []byte) error
	ValidImage(rel string) bool
}

// RemoteStore is the subset of the remote entry store the engine uses.
type RemoteStore interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, userID string) ([]models.RemoteEntryInfo, error)
	Get(ctx context.Context, userID, entryID string) (*models.RemoteEntry, error)
	Put(ctx context.Context, userID string, entry *models.RemoteEntry) error
	UploadImage(ctx context.Context, userID, entryID, filename string, data []byte) (string, error)
	DownloadImage(ctx context.Context, userID, url string) ([]byte, error)
}

// Engine runs sync cycles. It is safe for concurrent use; runs for the same
// user are mutually exclusive.
type Engine struct {
	local     LocalStore
	remote    RemoteStore
	log       logging.Logger
	opTimeout time.Duration
	tolerance time.Duration
	now       func() time.Time

	mu      sync.Mutex
	running map[string]struct{}
}

type Option func(*Engine)

// WithOperationTimeout bounds every single remote call.
func WithOperationTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.opTimeout = d
		}
	}
}

// WithTolerance sets how far apart local and remote timestamps may be for the
// verify phase to still consider an entry in sync.
func WithTolerance(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.tolerance = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(local LocalStore, remote RemoteStore, log logging.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	e := &Engine{
		local:     local,
		remote:    remote,
		log:       log.With("module", "sync"),
		opTimeout: DefaultOperationTimeout,
		tolerance: DefaultTolerance,
		now:       time.Now,
		running:   make(map[string]struct{}),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) acquire(userID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.running[userID]; busy {
		return false
	}
	e.running[userID] = struct{}{}
	return true
}

func (e *Engine) release(userID string) {
	e.mu.Lock()
	delete(e.running, userID)
	e.mu.Unlock()
}

// Running reports whether a sync for userID is in flight.
func (e *Engine) Running(userID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, busy := e.running[userID]
	return busy
}

// Synchronize runs one full sync cycle for userID.
//
// It returns common.ErrSyncInProgress if a run for the same user is already in
// flight and an error wrapping common.ErrConnectivity, with an empty report,
// when the remote store cannot be reached. When ctx is cancelled the entry
// being processed is finished, and the partial report is returned together
// with ctx.Err(). Per-entry failures are reported in Report.Failures only.
func (e *Engine) Synchronize(ctx context.Context, userID string, obs Observer) (Report, error) {
	if userID == "" {
		return Report{}, fmt.Errorf("sync: %w: no current user", common.ErrorUnauthorized)
	}
	if !e.acquire(userID) {
		return Report{}, common.ErrSyncInProgress
	}
	defer e.release(userID)

	log := e.log.With("user_id", userID)
	start := e.now()

	if err := e.ping(ctx); err != nil {
		log.Warn(ctx, "sync aborted, remote store unreachable", "error", err)
		return Report{}, fmt.Errorf("%w: %w", common.ErrConnectivity, err)
	}

	r := newRun(userID)

	steps := []struct {
		phase Phase
		fn    func(context.Context, *run, Observer) error
	}{
		{PhaseUpload, e.uploadPhase},
		{PhaseDownload, e.downloadPhase},
		{PhaseVerify, e.verifyPhase},
	}
	for _, s := range steps {
		obs.phase(s.phase)
		if err := s.fn(ctx, r, obs); err != nil {
			rep := r.result()
			log.Info(ctx, "sync cancelled", "phase", s.phase, "processed", rep.Processed)
			return rep, err
		}
	}

	rep := r.result()
	log.Info(ctx, "sync finished",
		"processed", rep.Processed,
		"succeeded", rep.Succeeded,
		"uploaded", rep.Uploaded,
		"downloaded", rep.Downloaded,
		"image_failures", rep.ImageFailures,
		"duration", e.now().Sub(start),
	)
	return rep, nil
}

func (e *Engine) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()
	return e.remote.Ping(ctx)
}

// entryContext is used for remote calls made on behalf of a single entry.
// It ignores cancellation of the run so that an entry in progress completes,
// but every call is still bounded by the operation timeout.
func (e *Engine) entryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), e.opTimeout)
}
