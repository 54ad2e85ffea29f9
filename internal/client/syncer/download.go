package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/journalkeeper/internal/client/codec"
	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/timex"
)

func (e *Engine) downloadPhase(ctx context.Context, r *run, obs Observer) error {
	infos, err := e.listRemote(ctx, r.userID)
	if err != nil {
		e.log.Error(ctx, "listing remote entries failed", "error", err)
		r.fail("", PhaseDownload, err)
		return nil
	}

	for i, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.touch(info.ID)

		downloaded, err := e.downloadEntry(ctx, r, info)
		if err != nil {
			e.log.Warn(ctx, "download failed", "entry_id", info.ID, "error", err)
			r.fail(info.ID, PhaseDownload, err)
		} else if downloaded {
			r.report.Downloaded++
		}
		obs.progress(PhaseDownload, i+1, len(infos))
	}
	return nil
}

func (e *Engine) listRemote(ctx context.Context, userID string) ([]models.RemoteEntryInfo, error) {
	opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()

	infos, err := e.remote.List(opCtx, userID)
	if err != nil {
		return nil, fmt.Errorf("list remote entries: %w", err)
	}
	return infos, nil
}

// downloadEntry pulls info.ID when the remote copy is authoritative. It
// reports whether the local file was written.
func (e *Engine) downloadEntry(ctx context.Context, r *run, info models.RemoteEntryInfo) (bool, error) {
	if _, err := models.ParseEntryID(info.ID); err != nil {
		return false, err
	}

	mtime, err := e.local.ModTime(info.ID)
	exists := err == nil
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("stat local entry: %w", err)
	}
	if exists && timex.Millis(mtime) >= info.LastModified {
		return false, nil
	}

	doc, err := e.getRemote(ctx, r.userID, info.ID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, fmt.Errorf("remote entry vanished: %w", common.ErrorNotFound)
	}
	if exists && timex.Millis(mtime) >= doc.LastModified {
		return false, nil
	}

	e.downloadImage(ctx, r, doc)

	if err := e.local.Write(info.ID, doc.Content, timex.FromMillis(doc.LastModified)); err != nil {
		return false, fmt.Errorf("write local entry: %w", err)
	}

	e.log.Debug(ctx, "entry downloaded", "entry_id", info.ID, "last_modified", doc.LastModified)
	return true, nil
}

// downloadImage fetches the entry's image unless a decodable copy is already
// present. Failures are recorded on r and the text is still written.
func (e *Engine) downloadImage(ctx context.Context, r *run, doc *models.RemoteEntry) {
	imagePath := codec.ImagePath(doc.Content)
	if doc.RemoteImageURL == "" || imagePath == "" {
		return
	}
	if e.local.ValidImage(imagePath) {
		return
	}

	opCtx, cancel := e.entryContext(ctx)
	data, err := e.remote.DownloadImage(opCtx, r.userID, doc.RemoteImageURL)
	cancel()
	if err == nil {
		err = e.local.WriteImage(imagePath, data)
	}
	if err != nil {
		e.log.Warn(ctx, "image download failed, writing text only", "entry_id", doc.ID, "error", err)
		r.report.ImageFailures++
		if !errors.Is(err, common.ErrDownload) {
			err = fmt.Errorf("%w: %w", common.ErrDownload, err)
		}
		r.fail(doc.ID, PhaseDownload, err)
	}
}
