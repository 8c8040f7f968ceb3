package ioschema

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// collationSQL makes byte-wise comparison the default for a column.
func collationSQL(table, column string, varchar int) string {
	return fmt.Sprintf(
		`ALTER TABLE %s ALTER COLUMN %s TYPE VARCHAR(%d) COLLATE "C"`,
		pgx.Identifier{table}.Sanitize(),
		pgx.Identifier{column}.Sanitize(),
		varchar,
	)
}
