package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
)

// Reflect asks the configured language model about an entry; without args
// it uses today's.
func (a *App) Reflect(ctx context.Context, args []string) error {
	id := models.NewDailyID(a.now())
	if len(args) > 0 {
		id = args[0]
	}

	e, err := a.store.Read(id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn(dimStyle.Render("No entry " + id + "."))
		} else {
			printError(err)
		}
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.OperationTimeout)
	defer cancel()

	printlnFn(dimStyle.Render("Thinking..."))
	text, err := a.reflector.Reflect(ctx, models.FromLocal(e).Text)
	if err != nil {
		a.log.Error(ctx, "reflection failed", "entry", id, "error", err)
		printError(err)
		return err
	}

	printlnFn(reflectStyle.Render(text))
	return nil
}
