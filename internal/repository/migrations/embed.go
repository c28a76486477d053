// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// Migrations holds the goose SQL migration files.
//
//go:embed *.sql
var Migrations embed.FS
