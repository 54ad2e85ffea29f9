package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/localstore"
	"github.com/dmitrijs2005/journalkeeper/internal/client/repositories/syncruns"
	"github.com/dmitrijs2005/journalkeeper/internal/client/syncer"
	"github.com/dmitrijs2005/journalkeeper/internal/client/watch"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
)

// Sync runs one sync cycle and prints its aggregate outcome.
func (a *App) Sync(ctx context.Context) error {
	rep, err := a.runSync(ctx, a.progressObserver())
	printFn("\n")

	switch {
	case errors.Is(err, common.ErrSyncInProgress):
		printlnFn(warnStyle.Render("A sync is already running."))
		return err
	case errors.Is(err, common.ErrConnectivity):
		printlnFn(errorStyle.Render("Server unreachable, nothing was synchronized."))
		return err
	case errors.Is(err, context.Canceled):
		printlnFn(warnStyle.Render("Sync cancelled."))
	case err != nil:
		printError(err)
	}

	printlnFn(formatReport(rep))
	return err
}

// runSync runs the engine for the signed-in user and records the run in the
// client database. It is shared by the sync command and the auto-sync watcher.
func (a *App) runSync(ctx context.Context, obs syncer.Observer) (syncer.Report, error) {
	started := a.now()
	rep, err := a.engine.Synchronize(ctx, a.userID, obs)

	switch {
	case errors.Is(err, common.ErrSyncInProgress):
		return rep, err
	case errors.Is(err, common.ErrConnectivity):
		a.setMode(ModeOffline)
	case err == nil:
		a.setMode(ModeOnline)
	}

	run := &syncruns.Run{
		UserID:        a.userID,
		StartedAt:     started,
		FinishedAt:    a.now(),
		Processed:     rep.Processed,
		Succeeded:     rep.Succeeded,
		Uploaded:      rep.Uploaded,
		Downloaded:    rep.Downloaded,
		ImageFailures: rep.ImageFailures,
	}
	if err != nil {
		run.Error = err.Error()
	}
	if herr := a.history.RecordSync(context.WithoutCancel(ctx), run); herr != nil {
		a.log.Warn(ctx, "failed to record sync run", "error", herr)
	}

	for _, f := range rep.Failures {
		a.log.Warn(ctx, "entry not synchronized", "entry", f.EntryID, "phase", string(f.Phase), "error", f.Err)
	}
	a.log.Info(ctx, "sync finished",
		"processed", rep.Processed, "succeeded", rep.Succeeded,
		"uploaded", rep.Uploaded, "downloaded", rep.Downloaded,
		"image_failures", rep.ImageFailures, "error", err)

	return rep, err
}

func (a *App) progressObserver() syncer.Observer {
	return syncer.Observer{
		OnPhaseChange: func(p syncer.Phase) {
			printFn("\n" + dimStyle.Render(string(p)+"..."))
		},
		OnProgress: func(p syncer.Phase, current, total int) {
			printFn(fmt.Sprintf("\r%s %d/%d", dimStyle.Render(string(p)), current, total))
		},
	}
}

func formatReport(r syncer.Report) string {
	s := fmt.Sprintf("Processed %d, in sync %d, uploaded %d, downloaded %d", r.Processed, r.Succeeded, r.Uploaded, r.Downloaded)
	if r.ImageFailures > 0 {
		s += fmt.Sprintf(", image failures %d", r.ImageFailures)
	}
	if r.Failed() > 0 {
		return warnStyle.Render(s + fmt.Sprintf(", not synchronized %d", r.Failed()))
	}
	return okStyle.Render(s)
}

// Status prints connectivity, the last completed sync and the last run.
func (a *App) Status(ctx context.Context) error {
	mode := a.getMode()
	if mode == "" {
		mode = "unknown"
	}
	printlnFn("Server:    " + a.config.ServerEndpointAddr + " (" + string(mode) + ")")

	last, err := a.history.LastSyncAt(ctx, a.userID)
	if err != nil {
		a.log.Error(ctx, "read last sync failed", "error", err)
		printError(err)
		return err
	}
	if last.IsZero() {
		printlnFn("Last sync: never")
	} else {
		printlnFn("Last sync: " + last.Local().Format("2006-01-02 15:04:05"))
	}

	run, err := a.history.LastRun(ctx, a.userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		a.log.Error(ctx, "read last run failed", "error", err)
		printError(err)
		return err
	}

	took := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
	line := fmt.Sprintf("Last run:  %s (%s) processed %d, in sync %d",
		run.StartedAt.Local().Format("2006-01-02 15:04:05"), took, run.Processed, run.Succeeded)
	if run.Error != "" {
		line += ", error: " + run.Error
	}
	printlnFn(line)
	return nil
}

// startAutoSync syncs after entry files change until ctx is done.
func (a *App) startAutoSync(ctx context.Context) {
	dir := filepath.Join(a.config.DataRoot, localstore.EntriesDir)
	w := watch.New(dir, a.config.AutoSyncDebounce, func(ctx context.Context) {
		if _, err := a.runSync(ctx, syncer.Observer{}); err != nil && !errors.Is(err, common.ErrSyncInProgress) {
			a.log.Warn(ctx, "auto-sync failed", "error", err)
		}
	}, a.log)

	if err := w.Run(ctx); err != nil {
		a.log.Error(ctx, "auto-sync watcher stopped", "error", err)
	}
}
