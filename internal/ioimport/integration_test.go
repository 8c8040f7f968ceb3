package ioimport_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/iodb"
	"github.com/gnames/ifcdb/internal/ioextract"
	"github.com/gnames/ifcdb/internal/ioimport"
	"github.com/gnames/ifcdb/internal/ioschema"
	"github.com/gnames/ifcdb/internal/iostore"
	"github.com/gnames/ifcdb/internal/iotesting"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/gnames/ifcdb/pkg/db"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/gnames/ifcdb/pkg/lifecycle"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (db.Operator, store.Store, lifecycle.Importer) {
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

	st := iostore.New(op)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptImportBatchSize(2)})
	return op, st, ioimport.New(cfg, ioextract.New(), st)
}

func building(t *testing.T) string {
	b := iotesting.NewIFC("IFC4")
	b.Project("Depot", "MILLI")
	st := b.Storey("st-1", "Level 1", 0)
	w := b.Element("IFCWALL", "w-1", "Wall", 0, 0, 0)
	d := b.Element("IFCDOOR", "d-1", "Door", 1000, 0, 0)
	b.Contain(st, w, d)
	b.Fill(w, d)
	b.Define(b.PropertySet("Pset_WallCommon",
		iotesting.Prop{Name: "IsExternal", Value: "IFCBOOLEAN(.T.)"},
		iotesting.Prop{Name: "LoadBearing", Value: "IFCBOOLEAN(.F.)"},
	), w)
	b.Define(b.QuantitySet("Qto_WallBaseQuantities",
		iotesting.Qty{Kind: "LENGTH", Name: "Length", Value: 4000},
	), w)
	concrete := b.Material("Concrete", "Concrete")
	b.Associate(b.LayerSetUsage(iotesting.Layer{Material: concrete, Thickness: 200}), w)

	sp := b.Space("sp-1", "101", st)
	b.Define(b.PropertySet("Pset_Hazard",
		iotesting.Prop{Name: "ExZone", Value: "IFCLABEL('Zone 2')"},
	), sp)
	b.Boundary(sp, w)
	b.Boundary(sp, b.Add("IFCVIRTUALELEMENT", iotesting.Str("v-1"), "$",
		"$", "$", "$", "$", "$", "$"))
	return b.WriteFile(t)
}

func count(t *testing.T, op db.Operator, q string, args ...any) int {
	t.Helper()
	var res int
	err := op.Pool().QueryRow(context.Background(), q, args...).Scan(&res)
	require.NoError(t, err)
	return res
}

func TestImportPostgres(t *testing.T) {
	assert := assert.New(t)
	op, st, imp := setup(t)
	ctx := context.Background()
	path := building(t)

	res, err := imp.Import(ctx, path, true)
	require.NoError(t, err)
	assert.Equal("Depot", res.ProjectName)
	assert.Equal(1, res.StoreyCount)
	assert.Equal(3, res.ElementCount)
	assert.Equal(1, res.SpaceCount)
	assert.Equal(1, res.MaterialCount)
	assert.Equal(1, res.LayerCount)
	assert.Equal(1, res.OpeningCount)
	assert.Equal(1, res.BoundaryCount)
	assert.Contains(res.Warnings, "1 unresolved boundary element references left empty")

	info, err := st.Get(ctx, res.ProjectID)
	require.NoError(t, err)
	assert.Equal(3, info.ElementCount)
	assert.Equal(1, info.SpaceCount)

	assert.Equal(4, count(t, op,
		"SELECT count(*) FROM building_elements WHERE project_id = $1", res.ProjectID))
	assert.Equal(1, count(t, op,
		"SELECT count(*) FROM spaces WHERE hazardous_area AND ex_zone = 'zone_2'"))
	assert.Equal(1, count(t, op, `
		SELECT count(*) FROM building_elements
		WHERE global_id = 'w-1' AND is_external AND NOT is_load_bearing
			AND abs(length_m - 4) < 1e-9 AND storey_id IS NOT NULL`))
	assert.Equal(1, count(t, op,
		"SELECT count(*) FROM element_materials WHERE abs(layer_thickness - 0.2) < 1e-9"))
	assert.Equal(0, count(t, op, `
		SELECT count(*) FROM element_properties p
		LEFT JOIN property_set_definitions d ON d.id = p.pset_definition_id
		WHERE d.id IS NULL`))

	_, err = imp.Import(ctx, path, true)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(errcode.ImportDuplicateFileError, gnErr.Code)
	id, ok := ioimport.ExistingProject(err)
	assert.True(ok)
	assert.Equal(res.ProjectID, id)

	again, err := imp.Import(ctx, path, false)
	require.NoError(t, err)
	require.NotNil(t, again.ReplacedProject)
	assert.Equal(res.ProjectID, *again.ReplacedProject)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(1, n)
	list, err := st.List(ctx, true)
	require.NoError(t, err)
	assert.Len(list, 2)
}

func TestCancelPostgres(t *testing.T) {
	op, _, imp := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.Import(ctx, building(t), true)
	require.Error(t, err)
	assert.Equal(t, 0, count(t, op, "SELECT count(*) FROM ifc_projects"))
	assert.Equal(t, 0, count(t, op, "SELECT count(*) FROM building_elements"))
}
