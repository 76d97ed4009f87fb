// Package migrations embeds the credential slot schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
