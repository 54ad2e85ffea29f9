package cli

import (
	"context"

	"github.com/dmitrijs2005/journalkeeper/internal/auth"
)

// Whoami prints the user the access token belongs to.
func (a *App) Whoami(ctx context.Context) error {
	line := "Signed in as " + idStyle.Render(a.userID)
	if auth.IsExpired(a.accessToken, a.now()) {
		line += " " + warnStyle.Render("(token expired)")
	}
	printlnFn(line)
	return nil
}
