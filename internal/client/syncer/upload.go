package syncer

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/dmitrijs2005/journalkeeper/internal/client/codec"
	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/timex"
)

func (e *Engine) uploadPhase(ctx context.Context, r *run, obs Observer) error {
	ids, err := e.local.List(models.DateFilter{})
	if err != nil {
		e.log.Error(ctx, "listing local entries failed", "error", err)
		r.fail("", PhaseUpload, fmt.Errorf("list local entries: %w", err))
		return nil
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.touch(id)

		uploaded, err := e.uploadEntry(ctx, r, id)
		if err != nil {
			e.log.Warn(ctx, "upload failed", "entry_id", id, "error", err)
			r.fail(id, PhaseUpload, err)
		} else if uploaded {
			r.report.Uploaded++
		}
		obs.progress(PhaseUpload, i+1, len(ids))
	}
	return nil
}

// uploadEntry pushes id when the local copy is authoritative. It reports
// whether the remote document was written.
func (e *Engine) uploadEntry(ctx context.Context, r *run, id string) (bool, error) {
	if _, err := models.ParseEntryID(id); err != nil {
		return false, err
	}

	local, err := e.local.Read(id)
	if err != nil {
		return false, fmt.Errorf("read local entry: %w", err)
	}

	remote, err := e.getRemote(ctx, r.userID, id)
	if err != nil {
		return false, err
	}

	localMillis := timex.Millis(local.ModTime)
	if remote != nil && localMillis <= remote.LastModified {
		e.log.Debug(ctx, "remote is current, skipping upload", "entry_id", id,
			"local_ms", localMillis, "remote_ms", remote.LastModified)
		if codec.HasImage(remote.Content) && remote.RemoteImageURL == "" {
			e.log.Warn(ctx, "remote entry has no image url, save the entry again to retry the image upload",
				"entry_id", id, "image", codec.ImagePath(remote.Content))
		}
		return false, nil
	}

	url := e.uploadImage(ctx, r, id, local.Blob, remote)

	lastModified := timex.Millis(timex.MaxTime(local.ModTime, e.now()))
	doc := &models.RemoteEntry{
		ID:             id,
		Content:        local.Blob,
		RemoteImageURL: url,
		LastModified:   lastModified,
	}

	opCtx, cancel := e.entryContext(ctx)
	err = e.remote.Put(opCtx, r.userID, doc)
	cancel()
	if err != nil {
		return false, fmt.Errorf("put remote entry: %w", err)
	}

	if err := e.alignLocal(id, localMillis, lastModified); err != nil {
		return true, err
	}

	e.log.Debug(ctx, "entry uploaded", "entry_id", id, "last_modified", lastModified, "has_image_url", url != "")
	return true, nil
}

// alignLocal sets the local mtime of id to the uploaded lastModified so that
// the download phase and the next run see equal timestamps. When the entry
// was saved again after it was read, its mtime is left strictly newer than
// the remote copy and a version conflict is returned so the next run uploads
// the new content.
func (e *Engine) alignLocal(id string, readMillis, lastModified int64) error {
	cur, err := e.local.ModTime(id)
	if err != nil {
		return fmt.Errorf("align local mtime: %w", err)
	}
	curMillis := timex.Millis(cur)

	if curMillis != readMillis {
		if curMillis <= lastModified {
			if err := e.local.Touch(id, timex.FromMillis(lastModified+1)); err != nil {
				return fmt.Errorf("align local mtime: %w", err)
			}
		}
		return fmt.Errorf("%w: local entry %s changed during upload", common.ErrVersionConflict, id)
	}

	if lastModified != readMillis {
		if err := e.local.Touch(id, timex.FromMillis(lastModified)); err != nil {
			return fmt.Errorf("align local mtime: %w", err)
		}
	}
	return nil
}

// uploadImage returns the image URL the uploaded document should carry. The
// previous URL is reused when the remote document already points at the same
// image, and kept when the upload fails. Failures are recorded on r.
func (e *Engine) uploadImage(ctx context.Context, r *run, id, blob string, remote *models.RemoteEntry) string {
	imagePath := codec.ImagePath(blob)
	if imagePath == "" {
		return ""
	}

	prevURL := ""
	if remote != nil {
		prevURL = remote.RemoteImageURL
		if prevURL != "" && codec.ImagePath(remote.Content) == imagePath {
			return prevURL
		}
	}

	data, err := e.local.ReadImage(imagePath)
	if errors.Is(err, common.ErrorNotFound) {
		e.log.Warn(ctx, "local image missing, uploading text only", "entry_id", id, "image", imagePath)
		return prevURL
	}
	if err != nil {
		r.report.ImageFailures++
		r.fail(id, PhaseUpload, fmt.Errorf("%w: %w", common.ErrUpload, err))
		return prevURL
	}

	opCtx, cancel := e.entryContext(ctx)
	url, err := e.remote.UploadImage(opCtx, r.userID, id, path.Base(imagePath), data)
	cancel()
	if err != nil {
		e.log.Warn(ctx, "image upload failed, uploading text only", "entry_id", id, "error", err)
		r.report.ImageFailures++
		if !errors.Is(err, common.ErrUpload) {
			err = fmt.Errorf("%w: %w", common.ErrUpload, err)
		}
		r.fail(id, PhaseUpload, err)
		return prevURL
	}
	return url
}

// getRemote returns nil, nil when the document does not exist.
func (e *Engine) getRemote(ctx context.Context, userID, id string) (*models.RemoteEntry, error) {
	opCtx, cancel := e.entryContext(ctx)
	defer cancel()

	doc, err := e.remote.Get(opCtx, userID, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get remote entry: %w", err)
	}
	return doc, nil
}
