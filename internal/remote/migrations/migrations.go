// Package migrations embeds the goose migrations for the Postgres
// snapshot backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
