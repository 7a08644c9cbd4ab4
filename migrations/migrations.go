// Package migrations embeds the database schema applied by the migrate
// command.
package migrations

import _ "embed"

//go:embed schema.sql
var Schema string
