// Package migrations embeds the SQL schema migrations so the binary can
// bootstrap its own database without SQL files on disk.
package migrations

import "embed"

// FS holds the embedded migration scripts, one up/down pair per schema
// version, named YYYYMMDD_HHMMSS_description.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
