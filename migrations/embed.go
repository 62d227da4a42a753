// Package migrations embeds the SQL that creates the catches table.
// Each supported driver has its own directory of goose migrations.
package migrations

import "embed"

//go:embed sqlite/*.sql mysql/*.sql
var FS embed.FS
