// Package migrations embeds the SQL schema migrations for the address store.
package migrations

import (
	"embed"
)

//go:embed *.sql
var FS embed.FS
