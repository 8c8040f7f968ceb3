package iostore

import (
	"github.com/gnames/ifcdb/pkg/schema"
)

const doNothing = "ON CONFLICT DO NOTHING"

var (
	projectsTable = table{
		name: "ifc_projects",
		columns: []string{
			"id", "name", "description", "schema_version",
			"original_file_path", "original_file_hash", "authoring_app",
			"author", "organization", "created_at", "updated_at", "imported_at",
		},
	}

	storeysTable = table{
		name: "storeys",
		columns: []string{
			"id", "project_id", "global_id", "name", "long_name", "elevation",
		},
	}

	typesTable = table{
		name: "element_types",
		columns: []string{
			"id", "project_id", "global_id", "ifc_class", "name", "description",
		},
	}

	materialsTable = table{
		name:    "materials",
		columns: []string{"id", "project_id", "name", "description", "category"},
	}

	psetsTable = table{
		name:    "property_set_definitions",
		columns: []string{"id", "project_id", "name", "ifc_class"},
	}

	typePropertiesTable = table{
		name: "type_properties",
		columns: []string{
			"id", "type_id", "pset_definition_id", "property_name",
			"property_value", "data_type", "unit",
		},
		conflict: doNothing,
	}

	elementsTable = table{
		name: "building_elements",
		columns: []string{
			"id", "project_id", "storey_id", "type_id", "global_id",
			"ifc_class", "category", "name", "description", "object_type",
			"tag", "length_m", "width_m", "height_m", "area_m2", "volume_m3",
			"position_x", "position_y", "position_z", "is_external",
			"is_load_bearing",
		},
	}

	elementPropertiesTable = table{
		name: "element_properties",
		columns: []string{
			"id", "element_id", "pset_definition_id", "property_name",
			"property_value", "data_type", "unit",
		},
		conflict: doNothing,
	}

	quantitiesTable = table{
		name: "element_quantities",
		columns: []string{
			"id", "element_id", "qto_name", "quantity_name",
			"quantity_value", "unit", "formula",
		},
		conflict: doNothing,
	}

	elementMaterialsTable = table{
		name: "element_materials",
		columns: []string{
			"id", "element_id", "material_id", "layer_order",
			"layer_thickness", "is_ventilated",
		},
		copy: true,
	}

	openingsTable = table{
		name:     "element_openings",
		columns:  []string{"id", "host_element_id", "filling_element_id"},
		conflict: doNothing,
	}

	spacesTable = table{
		name: "spaces",
		columns: []string{
			"id", "project_id", "storey_id", "element_id", "global_id",
			"name", "long_name", "space_number", "net_floor_area",
			"gross_floor_area", "net_volume", "gross_volume", "net_height",
			"occupancy_type", "ex_zone", "hazardous_area",
			"fire_compartment", "finish_floor", "finish_wall",
			"finish_ceiling",
		},
	}

	boundariesTable = table{
		name: "space_boundaries",
		columns: []string{
			"id", "space_id", "element_id", "boundary_type",
			"physical_or_virtual", "internal_or_external",
		},
		copy: true,
	}
)

func projectRow(p schema.Project) []any {
	return []any{
		p.ID, p.Name, p.Description, p.SchemaVersion, p.OriginalFilePath,
		p.OriginalFileHash, p.AuthoringApp, p.Author, p.Organization,
		p.CreatedAt, p.UpdatedAt, p.ImportedAt,
	}
}

func storeyRows(rows []schema.Storey) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{r.ID, r.ProjectID, r.GlobalID, r.Name, r.LongName, r.Elevation}
	}
	return res
}

func typeRows(rows []schema.ElementType) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{r.ID, r.ProjectID, r.GlobalID, r.IfcClass, r.Name, r.Description}
	}
	return res
}

func materialRows(rows []schema.Material) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{r.ID, r.ProjectID, r.Name, r.Description, r.Category}
	}
	return res
}

func psetRows(rows []schema.PropertySetDefinition) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{r.ID, r.ProjectID, r.Name, r.IfcClass}
	}
	return res
}

func typePropertyRows(rows []schema.TypeProperty) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.TypeID, r.PsetDefinitionID, r.PropertyName,
			r.PropertyValue, r.DataType, r.Unit,
		}
	}
	return res
}

func elementRows(rows []schema.BuildingElement) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.ProjectID, r.StoreyID, r.TypeID, r.GlobalID,
			r.IfcClass, r.Category, r.Name, r.Description, r.ObjectType,
			r.Tag, r.LengthM, r.WidthM, r.HeightM, r.AreaM2, r.VolumeM3,
			r.PositionX, r.PositionY, r.PositionZ, r.IsExternal,
			r.IsLoadBearing,
		}
	}
	return res
}

func elementPropertyRows(rows []schema.ElementProperty) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.ElementID, r.PsetDefinitionID, r.PropertyName,
			r.PropertyValue, r.DataType, r.Unit,
		}
	}
	return res
}

func quantityRows(rows []schema.ElementQuantity) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.ElementID, r.QtoName, r.QuantityName,
			r.QuantityValue, r.Unit, r.Formula,
		}
	}
	return res
}

func elementMaterialRows(rows []schema.ElementMaterial) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.ElementID, r.MaterialID, r.LayerOrder,
			r.LayerThickness, r.IsVentilated,
		}
	}
	return res
}

func openingRows(rows []schema.ElementOpening) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{r.ID, r.HostElementID, r.FillingElementID}
	}
	return res
}

func spaceRows(rows []schema.Space) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.ProjectID, r.StoreyID, r.ElementID, r.GlobalID,
			r.Name, r.LongName, r.SpaceNumber, r.NetFloorArea,
			r.GrossFloorArea, r.NetVolume, r.GrossVolume, r.NetHeight,
			r.OccupancyType, r.ExZone, r.HazardousArea,
			r.FireCompartment, r.FinishFloor, r.FinishWall,
			r.FinishCeiling,
		}
	}
	return res
}

func boundaryRows(rows []schema.SpaceBoundary) [][]any {
	res := make([][]any, len(rows))
	for i, r := range rows {
		res[i] = []any{
			r.ID, r.SpaceID, r.ElementID, r.BoundaryType,
			r.PhysicalOrVirtual, r.InternalOrExternal,
		}
	}
	return res
}
