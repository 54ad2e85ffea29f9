// Package watch triggers a sync after the user saves entries. It watches the
// entries directory with fsnotify and fires once changes have been quiet for
// the debounce period.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Watcher calls its trigger after entry files in dir change.
type Watcher struct {
	dir      string
	debounce time.Duration
	trigger  func(ctx context.Context)
	log      logging.Logger
}

func New(dir string, debounce time.Duration, trigger func(ctx context.Context), log logging.Logger) *Watcher {
	if log == nil {
		log = logging.Nop()
	}
	if debounce <= 0 {
		debounce = time.Second
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		trigger:  trigger,
		log:      log.With("module", "watch"),
	}
}

// relevant reports whether an event should schedule a sync. Temp files from
// atomic writes and pure attribute changes are ignored.
func relevant(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if !strings.HasPrefix(name, "journal_") || !strings.HasSuffix(name, ".txt") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename)
}

// Run watches until ctx is done. The trigger runs on the watcher goroutine,
// so events arriving during a sync are coalesced into the next one.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return fmt.Errorf("create watched dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.log.Debug(ctx, "entry changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "watcher error", "error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.trigger(ctx)
		}
	}
}
