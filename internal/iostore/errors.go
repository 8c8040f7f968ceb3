package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/google/uuid"
)

// TxError is returned when a transaction cannot begin, commit or roll
// back.
func TxError(op string, err error) error {
	return &gn.Error{
		Code: errcode.StoreTxError,
		Msg:  "Database transaction failed on <em>%s</em>",
		Vars: []any{op},
		Err:  fmt.Errorf("transaction %s: %w", op, err),
	}
}

// InsertError is returned when rows cannot be written to a table.
func InsertError(table string, rows int, err error) error {
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  "Cannot write %d rows to <em>%s</em>",
		Vars: []any{rows, table},
		Err:  fmt.Errorf("insert into %s: %w", table, err),
	}
}

// QueryError is returned when a read or update query fails.
func QueryError(query string, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Database query <em>%s</em> failed",
		Vars: []any{query},
		Err:  fmt.Errorf("query %s: %w", query, err),
	}
}

// ProjectNotFoundError is returned for an unknown or already deleted
// project ID.
func ProjectNotFoundError(id uuid.UUID) error {
	return &gn.Error{
		Code: errcode.ProjectNotFoundError,
		Msg:  "Project <em>%s</em> not found",
		Vars: []any{id},
		Err:  fmt.Errorf("project %s not found", id),
	}
}
