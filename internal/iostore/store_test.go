package iostore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/iodb"
	"github.com/gnames/ifcdb/internal/ioschema"
	"github.com/gnames/ifcdb/internal/iostore"
	"github.com/gnames/ifcdb/internal/iotesting"
	"github.com/gnames/ifcdb/pkg/db"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests need Docker or IFCDB_DATABASE_HOST, see iotesting.
// Run `go test -short` to skip them.

func setup(t *testing.T) (db.Operator, store.Store) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, iotesting.Postgres(t)))
	t.Cleanup(func() { op.Close() })

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))
	return op, iostore.New(op)
}

func project(hash string) schema.Project {
	now := time.Now()
	return schema.Project{
		ID:               uuid.New(),
		Name:             "Office",
		SchemaVersion:    "IFC4",
		OriginalFilePath: "/data/office.ifc",
		OriginalFileHash: hash,
		AuthoringApp:     "Modeler 1.0",
		CreatedAt:        now,
		UpdatedAt:        now,
		ImportedAt:       now,
	}
}

func hash(i int) string {
	return fmt.Sprintf("%064x", i)
}

func count(t *testing.T, op db.Operator, table string) int {
	t.Helper()
	var res int
	err := op.Pool().QueryRow(context.Background(),
		"SELECT count(*) FROM "+table).Scan(&res)
	require.NoError(t, err)
	return res
}

func TestProjectLifecycle(t *testing.T) {
	assert := assert.New(t)
	op, st := setup(t)
	ctx := context.Background()

	prj := project(hash(1))
	storey := schema.Storey{
		ID: uuid.New(), ProjectID: prj.ID, GlobalID: "st-1", Name: "Level 1",
	}
	wall := schema.BuildingElement{
		ID: uuid.New(), ProjectID: prj.ID, StoreyID: &storey.ID,
		GlobalID: "wall-1", IfcClass: "IfcWall", Category: "wall",
	}
	backing := schema.BuildingElement{
		ID: uuid.New(), ProjectID: prj.ID, GlobalID: "space-1",
		IfcClass: "IfcSpace", Category: "space",
	}
	space := schema.Space{
		ID: uuid.New(), ProjectID: prj.ID, ElementID: backing.ID,
		GlobalID: "space-1", ExZone: "zone_1", HazardousArea: true,
	}
	mat := schema.Material{ID: uuid.New(), ProjectID: prj.ID, Name: "Concrete"}
	thick := 0.2

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	require.NoError(t, tx.InsertProject(ctx, prj))
	require.NoError(t, tx.InsertStoreys(ctx, []schema.Storey{storey}))
	require.NoError(t, tx.InsertElements(ctx, []schema.BuildingElement{wall, backing}))
	require.NoError(t, tx.InsertMaterials(ctx, []schema.Material{mat}))
	require.NoError(t, tx.InsertElementMaterials(ctx, []schema.ElementMaterial{{
		ID: uuid.New(), ElementID: wall.ID, MaterialID: mat.ID,
		LayerThickness: &thick,
	}}))
	require.NoError(t, tx.InsertSpaces(ctx, []schema.Space{space}))
	require.NoError(t, tx.InsertBoundaries(ctx, []schema.SpaceBoundary{{
		ID: uuid.New(), SpaceID: space.ID, ElementID: wall.ID,
		PhysicalOrVirtual: "PHYSICAL", InternalOrExternal: "INTERNAL",
	}}))
	require.NoError(t, tx.Commit(ctx))

	id, ok, err := st.FindByHash(ctx, hash(1))
	require.NoError(t, err)
	assert.True(ok)
	assert.Equal(prj.ID, id)

	info, err := st.Get(ctx, prj.ID)
	require.NoError(t, err)
	assert.Equal("Office", info.Name)
	assert.Equal(1, info.ElementCount)
	assert.Equal(1, info.SpaceCount)
	assert.Nil(info.DeletedAt)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(1, n)

	require.NoError(t, st.SoftDelete(ctx, prj.ID))
	_, ok, err = st.FindByHash(ctx, hash(1))
	require.NoError(t, err)
	assert.False(ok)

	list, err := st.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(list)
	list, err = st.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(list[0].DeletedAt)

	// second soft delete finds nothing active
	err = st.SoftDelete(ctx, prj.ID)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(errcode.ProjectNotFoundError, gnErr.Code)

	require.NoError(t, st.HardDelete(ctx, prj.ID))
	for _, table := range schema.TableNames() {
		assert.Zero(count(t, op, table), table)
	}

	_, err = st.Get(ctx, prj.ID)
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(errcode.ProjectNotFoundError, gnErr.Code)
}

func TestDuplicateHash(t *testing.T) {
	_, st := setup(t)
	ctx := context.Background()

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertProject(ctx, project(hash(2))))
	require.NoError(t, tx.Commit(ctx))

	tx, err = st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	err = tx.InsertProject(ctx, project(hash(2)))
	assert.ErrorIs(t, err, store.ErrDuplicateHash)
}

func TestRollback(t *testing.T) {
	op, st := setup(t)
	ctx := context.Background()

	prj := project(hash(3))
	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertProject(ctx, prj))
	require.NoError(t, tx.InsertStoreys(ctx, []schema.Storey{
		{ID: uuid.New(), ProjectID: prj.ID, GlobalID: "st"},
	}))
	require.NoError(t, tx.Rollback(ctx))
	// rollback after rollback is fine
	require.NoError(t, tx.Rollback(ctx))

	assert.Zero(t, count(t, op, "ifc_projects"))
	assert.Zero(t, count(t, op, "storeys"))
}

// TestLargeBatch writes more rows than fit in one statement.
func TestLargeBatch(t *testing.T) {
	op, st := setup(t)
	ctx := context.Background()

	prj := project(hash(4))
	els := make([]schema.BuildingElement, 7000)
	props := make([]schema.ElementProperty, 0, len(els))
	pset := schema.PropertySetDefinition{
		ID: uuid.New(), ProjectID: prj.ID, Name: "Pset_WallCommon",
	}
	for i := range els {
		els[i] = schema.BuildingElement{
			ID: uuid.New(), ProjectID: prj.ID,
			GlobalID: fmt.Sprintf("el-%d", i),
			IfcClass: "IfcWall", Category: "wall",
		}
		v := "true"
		props = append(props, schema.ElementProperty{
			ID: uuid.New(), ElementID: els[i].ID, PsetDefinitionID: pset.ID,
			PropertyName: "IsExternal", PropertyValue: &v, DataType: "boolean",
		})
	}
	// duplicate key is ignored
	dup := props[0]
	dup.ID = uuid.New()
	props = append(props, dup)

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	require.NoError(t, tx.InsertProject(ctx, prj))
	require.NoError(t, tx.InsertPsetDefinitions(ctx, []schema.PropertySetDefinition{pset}))
	require.NoError(t, tx.InsertElements(ctx, els))
	require.NoError(t, tx.InsertElementProperties(ctx, props))
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, 7000, count(t, op, "building_elements"))
	assert.Equal(t, 7000, count(t, op, "element_properties"))
}
