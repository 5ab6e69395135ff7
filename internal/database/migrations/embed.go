// Package migrations embeds the wallet schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
