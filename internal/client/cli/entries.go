package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/codec"
	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
)

const previewLen = 60

// Add writes today's daily entry. An existing entry for the day is only
// replaced after confirmation.
func (a *App) Add(ctx context.Context) error {
	now := a.now()
	id := models.NewDailyID(now)

	if _, err := a.store.Read(id); err == nil {
		if !confirm(a.reader, fmt.Sprintf("An entry for %s already exists. Replace it?", id), a.out) {
			printlnFn("Kept the existing entry.")
			return nil
		}
	} else if !errors.Is(err, common.ErrorNotFound) {
		a.log.Error(ctx, "read entry failed", "entry", id, "error", err)
		printError(err)
		return err
	}

	return a.addEntry(ctx, now, false)
}

// AddAt writes a timestamped entry. args, when present, name the moment in
// plain words or as yyyy-mm-dd [hh:mm].
func (a *App) AddAt(ctx context.Context, args []string) error {
	at, err := parseWhen(strings.Join(args, " "), a.now())
	if err != nil {
		printError(err)
		return err
	}
	return a.addEntry(ctx, at, true)
}

func (a *App) addEntry(ctx context.Context, at time.Time, timestamped bool) error {
	text, err := getMultiline(a.reader, "Write your entry (double Enter to finish):", a.out)
	if err != nil {
		a.log.Error(ctx, "read entry text failed", "error", err)
		return err
	}
	if text == "" {
		printlnFn("Nothing to save.")
		return nil
	}

	image, err := getSimpleText(a.reader, "Image file to attach (Enter to skip)", a.out)
	if err != nil {
		image = ""
	}

	id, err := a.store.SaveEntry(text, image, at, timestamped)
	if err != nil {
		a.log.Error(ctx, "save entry failed", "error", err)
		printError(err)
		return err
	}

	a.log.Info(ctx, "entry saved", "entry", id, "image", image != "")
	printlnFn(okStyle.Render("Saved " + id))
	return nil
}

// List prints the entries selected by "[yyyy [mm [dd]]]", grouped by month.
func (a *App) List(ctx context.Context, args []string) error {
	filter, err := parseFilter(args)
	if err != nil {
		printError(err)
		return err
	}

	ids, err := a.store.List(filter)
	if err != nil {
		a.log.Error(ctx, "list entries failed", "error", err)
		printError(err)
		return err
	}
	if len(ids) == 0 {
		printlnFn(dimStyle.Render("No entries."))
		return nil
	}

	month := ""
	for _, id := range ids {
		parsed, err := models.ParseEntryID(id)
		if err != nil {
			a.log.Warn(ctx, "skipping malformed entry file", "entry", id, "error", err)
			continue
		}
		if m := parsed.At.Format("January 2006"); m != month {
			month = m
			printlnFn(titleStyle.Render(month))
		}

		line := "  " + idStyle.Render(id)
		if e, err := a.store.Read(id); err == nil {
			je := models.FromLocal(e)
			line += "  " + preview(je.Text)
			if codec.HasImage(e.Blob) {
				line += " " + dimStyle.Render("[image]")
			}
		}
		printlnFn(line)
	}
	return nil
}

// Show prints one entry; without args it shows today's.
func (a *App) Show(ctx context.Context, args []string) error {
	id := models.NewDailyID(a.now())
	if len(args) > 0 {
		id = args[0]
	}
	if _, err := models.ParseEntryID(id); err != nil {
		printError(err)
		return err
	}

	e, err := a.store.Read(id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn(dimStyle.Render("No entry " + id + "."))
			return err
		}
		a.log.Error(ctx, "read entry failed", "entry", id, "error", err)
		printError(err)
		return err
	}

	je := models.FromLocal(e)
	printlnFn(titleStyle.Render(id) + "  " + dimStyle.Render("edited "+je.LastModified.Format("2006-01-02 15:04")))
	printlnFn(je.Text)

	if je.ImagePath != "" {
		abs, err := a.store.ImagePath(je.ImagePath)
		switch {
		case err != nil:
			printlnFn(warnStyle.Render("image: " + err.Error()))
		case !a.store.ImageExists(je.ImagePath):
			printlnFn(warnStyle.Render("image missing: " + abs))
		case a.store.ValidImage(je.ImagePath):
			printlnFn(dimStyle.Render("image: " + abs))
		default:
			printlnFn(warnStyle.Render("image unreadable: " + abs))
		}
	}
	return nil
}

// preview is the first line of text cut to previewLen runes.
func preview(text string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	r := []rune(first)
	if len(r) > previewLen {
		return string(r[:previewLen-1]) + "…"
	}
	return first
}
