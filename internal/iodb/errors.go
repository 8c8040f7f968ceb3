package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
)

// ConnectionError is returned when the pool cannot reach PostgreSQL.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Cannot connect to PostgreSQL

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Database <em>%[3]s</em> does not exist

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %[1]s -p %[2]d</em>
  2. Create the database if needed:
     <em>createdb -h %[1]s -U %[4]s %[5]s</em>
  3. Check ~/.config/ifcdb/config.yaml or IFCDB_DATABASE_* variables`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user, database},
		Err: fmt.Errorf(
			"failed to connect to %s:%d/%s: %w", host, port, database, err,
		),
	}
}

// TableCheckError is returned when listing of tables fails.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot check state of the database",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// EmptyDatabaseError is returned when a command needs the schema, but the
// database has no tables.
func EmptyDatabaseError(host, database string) error {
	msg := `Database <em>%[2]s</em> on <em>%[1]s</em> has no IFCdb tables

<em>How to fix:</em>
  Create the schema first:
    <em>ifcdb create</em>`

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{host, database},
		Err:  fmt.Errorf("database %s has no tables", database),
	}
}

// NotConnectedError is returned when the operator is used before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot get the list of tables",
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read the list of tables",
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
