// Package iostore implements pkg/store on PostgreSQL with pgx. Writes of
// one import share a single transaction. Tables with unique keys get
// multi-row INSERT statements, other tables are filled with COPY.
package iostore

import (
	"context"
	"errors"

	"github.com/gnames/ifcdb/pkg/db"
	"github.com/gnames/ifcdb/pkg/model"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgStore struct {
	operator db.Operator
}

// New creates a Store on the operator's connection pool.
func New(op db.Operator) store.Store {
	return &pgStore{operator: op}
}

// execer runs single statements on a pool or inside a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *pgStore) Begin(ctx context.Context) (store.Tx, error) {
	pool := s.operator.Pool()
	if pool == nil {
		return nil, TxError("begin", errors.New("not connected"))
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, TxError("begin", err)
	}
	return &pgTx{tx: tx}, nil
}

func (s *pgStore) FindByHash(
	ctx context.Context,
	hash string,
) (uuid.UUID, bool, error) {
	return findByHash(ctx, s.operator.Pool(), hash)
}

func findByHash(
	ctx context.Context,
	q execer,
	hash string,
) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx, `
		SELECT id FROM ifc_projects
		WHERE original_file_hash = $1 AND deleted_at IS NULL`,
		hash,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, QueryError("find by hash", err)
	}
	return id, true, nil
}

const projectInfoQuery = `
SELECT p.id, p.name, p.schema_version, p.original_file_path,
	p.original_file_hash, p.authoring_app, p.imported_at, p.deleted_at,
	(SELECT count(*) FROM building_elements e
		WHERE e.project_id = p.id AND e.category <> 'space'),
	(SELECT count(*) FROM spaces s WHERE s.project_id = p.id)
FROM ifc_projects p`

func scanProjectInfo(row pgx.CollectableRow) (model.ProjectInfo, error) {
	var res model.ProjectInfo
	var elements, spaces int64
	err := row.Scan(
		&res.ID, &res.Name, &res.SchemaVersion, &res.FilePath,
		&res.FileHash, &res.AuthoringApp, &res.ImportedAt, &res.DeletedAt,
		&elements, &spaces,
	)
	res.ElementCount = int(elements)
	res.SpaceCount = int(spaces)
	return res, err
}

func (s *pgStore) List(
	ctx context.Context,
	includeDeleted bool,
) ([]model.ProjectInfo, error) {
	q := projectInfoQuery
	if !includeDeleted {
		q += "\nWHERE p.deleted_at IS NULL"
	}
	q += "\nORDER BY p.imported_at DESC, p.id"

	rows, err := s.operator.Pool().Query(ctx, q)
	if err != nil {
		return nil, QueryError("list projects", err)
	}
	res, err := pgx.CollectRows(rows, scanProjectInfo)
	if err != nil {
		return nil, QueryError("list projects", err)
	}
	return res, nil
}

func (s *pgStore) Get(
	ctx context.Context,
	id uuid.UUID,
) (*model.ProjectInfo, error) {
	rows, err := s.operator.Pool().Query(ctx, projectInfoQuery+"\nWHERE p.id = $1", id)
	if err != nil {
		return nil, QueryError("get project", err)
	}
	res, err := pgx.CollectExactlyOneRow(rows, scanProjectInfo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ProjectNotFoundError(id)
	}
	if err != nil {
		return nil, QueryError("get project", err)
	}
	return &res, nil
}

func (s *pgStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, s.operator.Pool(), id)
}

func softDelete(ctx context.Context, q execer, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `
		UPDATE ifc_projects SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return QueryError("soft delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ProjectNotFoundError(id)
	}
	return nil
}

func (s *pgStore) HardDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.operator.Pool().Exec(ctx,
		"DELETE FROM ifc_projects WHERE id = $1", id)
	if err != nil {
		return QueryError("hard delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ProjectNotFoundError(id)
	}
	return nil
}

func (s *pgStore) Count(ctx context.Context) (int, error) {
	var res int64
	err := s.operator.Pool().QueryRow(ctx,
		"SELECT count(*) FROM ifc_projects WHERE deleted_at IS NULL",
	).Scan(&res)
	if err != nil {
		return 0, QueryError("count projects", err)
	}
	return int(res), nil
}
