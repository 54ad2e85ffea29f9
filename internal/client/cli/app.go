package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/auth"
	"github.com/dmitrijs2005/journalkeeper/internal/client/config"
	"github.com/dmitrijs2005/journalkeeper/internal/client/localstore"
	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/client/reflection"
	"github.com/dmitrijs2005/journalkeeper/internal/client/remote"
	"github.com/dmitrijs2005/journalkeeper/internal/client/repositories/syncruns"
	"github.com/dmitrijs2005/journalkeeper/internal/client/storage"
	"github.com/dmitrijs2005/journalkeeper/internal/client/syncer"
	"github.com/dmitrijs2005/journalkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const (
	onlineCheckInterval = 15 * time.Second
	logFileMaxSizeMB    = 10
)

// entryStore is what the commands need from the local entry store.
type entryStore interface {
	List(filter models.DateFilter) ([]string, error)
	Read(id string) (*models.LocalEntry, error)
	SaveEntry(text, imageSrc string, at time.Time, timestamped bool) (string, error)
	ImagePath(rel string) (string, error)
	ImageExists(rel string) bool
	ValidImage(rel string) bool
}

type synchronizer interface {
	Synchronize(ctx context.Context, userID string, obs syncer.Observer) (syncer.Report, error)
}

type syncHistory interface {
	RecordSync(ctx context.Context, run *syncruns.Run) error
	LastSyncAt(ctx context.Context, userID string) (time.Time, error)
	LastRun(ctx context.Context, userID string) (*syncruns.Run, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config      *config.Config
	store       entryStore
	engine      synchronizer
	remote      pinger
	history     syncHistory
	reflector   reflection.Reflector
	log         logging.Logger
	accessToken string
	userID      string
	reader      *bufio.Reader
	out         io.Writer
	now         func() time.Time
	closers     []io.Closer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp builds the client from c: it opens the log file and the client
// database under the data root, resolves the access token and connects the
// sync engine to the server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := os.MkdirAll(c.DataRoot, 0o700); err != nil {
		return nil, fmt.Errorf("create data root: %w", err)
	}

	a := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}

	logger, logCloser, err := logging.NewRotatingFileLogger(filepath.Join(c.DataRoot, "logs", "client.log"), logFileMaxSizeMB, slog.LevelInfo)
	if err != nil {
		return nil, fmt.Errorf("open client log: %w", err)
	}
	a.closers = append(a.closers, logCloser)
	a.log = logger.With("module", "cli")

	st, err := storage.Open(ctx, filepath.Join(c.DataRoot, storage.DBFileName))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	a.closers = append(a.closers, st)
	a.history = st

	if err := a.resolveToken(); err != nil {
		a.close()
		return nil, err
	}

	rs, err := remote.NewGRPCClient(c.ServerEndpointAddr, a.accessToken)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, rs)
	a.remote = rs

	local := localstore.New(c.DataRoot)
	if err := local.Init(); err != nil {
		a.close()
		return nil, err
	}
	a.store = local
	a.engine = syncer.NewEngine(local, rs, logger, syncer.WithOperationTimeout(c.OperationTimeout))

	reflector, err := reflection.New(c.ReflectProvider, c.ReflectBaseURL, c.ReflectAPIKey, c.ReflectModel)
	if err != nil {
		a.close()
		return nil, err
	}
	a.reflector = reflector

	return a, nil
}

// resolveToken takes the token from config or asks for it, then reads the
// user id from its claims.
func (a *App) resolveToken() error {
	token := a.config.AccessToken
	if token == "" {
		raw, err := getToken(a.out)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		token = string(raw)
	}

	userID, err := auth.PeekUserID(token)
	if err != nil {
		return err
	}
	if auth.IsExpired(token, a.now()) {
		printlnFn(warnStyle.Render("Access token has expired; sync will be rejected until a new one is supplied."))
	}

	a.accessToken = token
	a.userID = userID
	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func (a *App) getMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	s := a.userID
	if m := a.getMode(); m != "" {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the background watchers and the REPL. It blocks until the user
// exits or the input ends, then releases every resource NewApp opened.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn(titleStyle.Render("journalkeeper") + " (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	if a.config.AutoSync {
		go a.startAutoSync(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := a.remote.Ping(pctx)
		cancel()

		if err != nil {
			if !errors.Is(err, context.Canceled) {
				a.setMode(ModeOffline)
			}
			return
		}
		a.setMode(ModeOnline)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
