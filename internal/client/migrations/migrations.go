// Package migrations embeds the goose migrations of the client metadata DB.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
