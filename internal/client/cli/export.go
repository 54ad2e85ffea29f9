package cli

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/filex"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const exportsDir = "exports"

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
)

var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { max-width: 720px; margin: 2em auto; font-family: Georgia, serif; line-height: 1.6; color: #222; }
    h2 { border-bottom: 1px solid #ddd; padding-bottom: .2em; }
    img { max-width: 100%; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
{{range .Entries}}  <section id="{{.ID}}">
    <h2>{{.Heading}}</h2>
    {{if .Image}}<img src="{{.Image}}" alt="">{{end}}
    {{.Body}}
  </section>
{{end}}</body>
</html>
`))

type exportEntry struct {
	ID      string
	Heading string
	Image   template.URL
	Body    template.HTML
}

type exportPage struct {
	Title   string
	Entries []exportEntry
}

// Export renders one month of entries to an HTML file. Entry text is read as
// Markdown. args are "yyyy mm [file]"; the default file goes to the exports
// directory under the data root.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		err := fmt.Errorf("%w: usage: export yyyy mm [file]", common.ErrParse)
		printError(err)
		return err
	}
	filter, err := parseFilter(args[:2])
	if err != nil {
		printError(err)
		return err
	}

	target := filepath.Join(a.config.DataRoot, exportsDir, fmt.Sprintf("journal_%04d-%02d.html", filter.Year, filter.Month))
	if len(args) == 3 {
		target = args[2]
	}

	data, n, err := a.renderMonth(filter)
	if err != nil {
		a.log.Error(ctx, "export failed", "error", err)
		printError(err)
		return err
	}
	if n == 0 {
		printlnFn(dimStyle.Render("No entries for that month."))
		return nil
	}

	if err := filex.WriteAtomic(target, data, 0o600, a.now()); err != nil {
		a.log.Error(ctx, "export failed", "file", target, "error", err)
		printError(err)
		return err
	}

	printlnFn(okStyle.Render(fmt.Sprintf("Exported %d entries to %s", n, target)))
	return nil
}

// renderMonth returns the HTML page and the number of entries in it.
func (a *App) renderMonth(filter models.DateFilter) ([]byte, int, error) {
	ids, err := a.store.List(filter)
	if err != nil {
		return nil, 0, err
	}

	page := exportPage{
		Title: time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
	}

	for _, id := range ids {
		parsed, err := models.ParseEntryID(id)
		if err != nil {
			continue
		}
		e, err := a.store.Read(id)
		if err != nil {
			return nil, 0, err
		}
		je := models.FromLocal(e)

		var body bytes.Buffer
		if err := markdown.Convert([]byte(je.Text), &body); err != nil {
			return nil, 0, fmt.Errorf("convert markdown: %w", err)
		}

		heading := parsed.At.Format("Monday, 2 January")
		if parsed.Kind == models.IDKindTimestamped {
			heading = parsed.At.Format("Monday, 2 January 15:04")
		}

		entry := exportEntry{ID: id, Heading: heading, Body: template.HTML(body.String())}
		if je.ImagePath != "" && a.store.ValidImage(je.ImagePath) {
			if abs, err := a.store.ImagePath(je.ImagePath); err == nil {
				entry.Image = template.URL("file://" + filepath.ToSlash(abs))
			}
		}
		page.Entries = append(page.Entries, entry)
	}

	var out bytes.Buffer
	if err := exportTemplate.Execute(&out, page); err != nil {
		return nil, 0, fmt.Errorf("render export: %w", err)
	}
	return out.Bytes(), len(page.Entries), nil
}
