package syncer

import (
	"context"

	"github.com/dmitrijs2005/journalkeeper/internal/timex"
)

// verifyPhase counts an entry as succeeded only when both sides exist, their
// timestamps agree within the tolerance and no failure was recorded for it
// earlier in the run.
func (e *Engine) verifyPhase(ctx context.Context, r *run, obs Observer) error {
	infos, err := e.listRemote(ctx, r.userID)
	if err != nil {
		e.log.Error(ctx, "verification listing failed", "error", err)
		r.fail("", PhaseVerify, err)
		return nil
	}
	remote := make(map[string]int64, len(infos))
	for _, info := range infos {
		remote[info.ID] = info.LastModified
	}

	tol := e.tolerance.Milliseconds()
	total := len(r.order)
	for i, id := range r.order {
		if err := ctx.Err(); err != nil {
			return err
		}
		obs.progress(PhaseVerify, i+1, total)

		if r.hasFailed(id) {
			continue
		}
		remoteMillis, ok := remote[id]
		if !ok {
			e.log.Debug(ctx, "not confirmed: missing remotely", "entry_id", id)
			continue
		}
		mtime, err := e.local.ModTime(id)
		if err != nil {
			e.log.Debug(ctx, "not confirmed: local unreadable", "entry_id", id, "error", err)
			continue
		}
		diff := timex.Millis(mtime) - remoteMillis
		if diff < 0 {
			diff = -diff
		}
		if diff > tol {
			e.log.Debug(ctx, "not confirmed: timestamps differ", "entry_id", id, "diff_ms", diff)
			continue
		}
		r.report.Succeeded++
	}
	return nil
}
