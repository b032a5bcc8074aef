// Package migrations embeds the goose migrations for the remote store
// (postgres) and for the local state database (sqlite).
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
