// Package migrations embeds the goose migrations of the client ledger.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
