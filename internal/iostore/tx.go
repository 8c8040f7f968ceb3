package iostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// hashIndex is the partial unique index on active file hashes.
const hashIndex = "idx_ifc_projects_active_hash"

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) FindByHash(
	ctx context.Context,
	hash string,
) (uuid.UUID, bool, error) {
	return findByHash(ctx, t.tx, hash)
}

func (t *pgTx) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, t.tx, id)
}

func (t *pgTx) InsertProject(ctx context.Context, p schema.Project) error {
	sql, args := projectsTable.statement([][]any{projectRow(p)})
	_, err := t.tx.Exec(ctx, sql, args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == hashIndex {
		return fmt.Errorf("%w: %s", store.ErrDuplicateHash, p.OriginalFileHash)
	}
	if err != nil {
		return InsertError(projectsTable.name, 1, err)
	}
	return nil
}

func (t *pgTx) InsertStoreys(ctx context.Context, rows []schema.Storey) error {
	return storeysTable.write(ctx, t.tx, storeyRows(rows))
}

func (t *pgTx) InsertTypes(ctx context.Context, rows []schema.ElementType) error {
	return typesTable.write(ctx, t.tx, typeRows(rows))
}

func (t *pgTx) InsertMaterials(ctx context.Context, rows []schema.Material) error {
	return materialsTable.write(ctx, t.tx, materialRows(rows))
}

func (t *pgTx) InsertPsetDefinitions(
	ctx context.Context,
	rows []schema.PropertySetDefinition,
) error {
	return psetsTable.write(ctx, t.tx, psetRows(rows))
}

func (t *pgTx) InsertTypeProperties(
	ctx context.Context,
	rows []schema.TypeProperty,
) error {
	return typePropertiesTable.write(ctx, t.tx, typePropertyRows(rows))
}

func (t *pgTx) InsertElements(
	ctx context.Context,
	rows []schema.BuildingElement,
) error {
	return elementsTable.write(ctx, t.tx, elementRows(rows))
}

func (t *pgTx) InsertElementProperties(
	ctx context.Context,
	rows []schema.ElementProperty,
) error {
	return elementPropertiesTable.write(ctx, t.tx, elementPropertyRows(rows))
}

func (t *pgTx) InsertQuantities(
	ctx context.Context,
	rows []schema.ElementQuantity,
) error {
	return quantitiesTable.write(ctx, t.tx, quantityRows(rows))
}

func (t *pgTx) InsertElementMaterials(
	ctx context.Context,
	rows []schema.ElementMaterial,
) error {
	return elementMaterialsTable.write(ctx, t.tx, elementMaterialRows(rows))
}

func (t *pgTx) InsertOpenings(
	ctx context.Context,
	rows []schema.ElementOpening,
) error {
	return openingsTable.write(ctx, t.tx, openingRows(rows))
}

func (t *pgTx) InsertSpaces(ctx context.Context, rows []schema.Space) error {
	return spacesTable.write(ctx, t.tx, spaceRows(rows))
}

func (t *pgTx) InsertBoundaries(
	ctx context.Context,
	rows []schema.SpaceBoundary,
) error {
	return boundariesTable.write(ctx, t.tx, boundaryRows(rows))
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return TxError("commit", err)
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return TxError("rollback", err)
	}
	return nil
}
