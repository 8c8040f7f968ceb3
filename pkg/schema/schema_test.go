package schema_test

import (
	"sync"
	"testing"

	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gschema "gorm.io/gorm/schema"
)

func parse(t *testing.T, model any) *gschema.Schema {
	t.Helper()
	res, err := gschema.Parse(model, &sync.Map{}, gschema.NamingStrategy{})
	require.NoError(t, err)
	return res
}

func TestTableNames(t *testing.T) {
	assert := assert.New(t)
	names := schema.TableNames()
	assert.Len(names, len(schema.AllModels()))
	assert.Equal("element_openings", names[0])
	assert.Equal("ifc_projects", names[len(names)-1])

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(seen[n], n)
		seen[n] = true
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		model   any
		table   string
		columns []string
	}{
		{&schema.Project{}, "ifc_projects", []string{
			"id", "name", "schema_version", "original_file_path",
			"original_file_hash", "authoring_app", "imported_at", "deleted_at",
		}},
		{&schema.Storey{}, "storeys", []string{
			"id", "project_id", "global_id", "long_name", "elevation",
		}},
		{&schema.BuildingElement{}, "building_elements", []string{
			"storey_id", "type_id", "category", "object_type", "tag",
			"length_m", "width_m", "height_m", "area_m2", "volume_m3",
			"position_x", "position_y", "position_z",
			"is_external", "is_load_bearing",
		}},
		{&schema.Space{}, "spaces", []string{
			"element_id", "space_number", "net_floor_area",
			"gross_floor_area", "net_volume", "gross_volume", "net_height",
			"ex_zone", "hazardous_area", "fire_compartment", "finish_ceiling",
		}},
		{&schema.ElementProperty{}, "element_properties", []string{
			"element_id", "pset_definition_id", "property_name",
			"property_value", "data_type", "unit",
		}},
		{&schema.TypeProperty{}, "type_properties", []string{
			"type_id", "pset_definition_id", "property_name",
		}},
		{&schema.ElementQuantity{}, "element_quantities", []string{
			"qto_name", "quantity_name", "quantity_value", "formula",
		}},
		{&schema.ElementMaterial{}, "element_materials", []string{
			"material_id", "layer_order", "layer_thickness", "is_ventilated",
		}},
		{&schema.SpaceBoundary{}, "space_boundaries", []string{
			"space_id", "element_id", "physical_or_virtual",
			"internal_or_external",
		}},
		{&schema.ElementOpening{}, "element_openings", []string{
			"host_element_id", "filling_element_id",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			s := parse(t, tt.model)
			assert.Equal(t, tt.table, s.Table)
			for _, c := range tt.columns {
				assert.Contains(t, s.FieldsByDBName, c)
			}
		})
	}
}

func TestRelations(t *testing.T) {
	s := parse(t, &schema.ElementOpening{})
	assert.Contains(t, s.Relationships.Relations, "HostElement")
	assert.Contains(t, s.Relationships.Relations, "FillingElement")

	s = parse(t, &schema.BuildingElement{})
	rel := s.Relationships.Relations["Storey"]
	require.NotNil(t, rel)
	c := rel.ParseConstraint()
	require.NotNil(t, c)
	assert.Equal(t, "SET NULL", c.OnDelete)
}
