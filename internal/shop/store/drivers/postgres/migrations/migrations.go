// Package migrations embeds the PostgreSQL schema and stored functions applied by goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
