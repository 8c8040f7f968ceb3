package iostore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// maxParams is the limit of bind parameters in one PostgreSQL statement.
const maxParams = 65535

const uniqueViolation = "23505"

// querier is satisfied by pgx.Tx and pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(
		ctx context.Context,
		table pgx.Identifier,
		columns []string,
		src pgx.CopyFromSource,
	) (int64, error)
}

// table describes how rows of one table are written.
type table struct {
	name    string
	columns []string

	// conflict is appended to INSERT statements, for example
	// "ON CONFLICT DO NOTHING". Tables without conflict clause and
	// without unique keys are written with COPY.
	conflict string
	copy     bool
}

// write stores rows, splitting them so every statement stays within the
// parameter limit.
func (t table) write(ctx context.Context, q querier, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	if t.copy {
		_, err := q.CopyFrom(
			ctx,
			pgx.Identifier{t.name},
			t.columns,
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return InsertError(t.name, len(rows), err)
		}
		return nil
	}

	chunk := maxParams / len(t.columns)
	for i := 0; i < len(rows); i += chunk {
		end := min(i+chunk, len(rows))
		sql, args := t.statement(rows[i:end])
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return InsertError(t.name, end-i, err)
		}
	}
	return nil
}

// statement builds a parameterized multi-row INSERT.
func (t table) statement(rows [][]any) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(rows)*len(t.columns))

	sb.WriteString("INSERT INTO ")
	sb.WriteString(pgx.Identifier{t.name}.Sanitize())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(t.columns, ", "))
	sb.WriteString(") VALUES ")

	idx := 1
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range t.columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", idx)
			idx++
		}
		sb.WriteByte(')')
		args = append(args, row...)
	}

	if t.conflict != "" {
		sb.WriteByte(' ')
		sb.WriteString(t.conflict)
	}
	return sb.String(), args
}
