// Package schema provides database schema models for IFCdb.
// The models are used by GORM AutoMigrate only, rows are written with pgx.
package schema

import (
	"time"

	"github.com/google/uuid"
)

// Project is an imported IFC file.
type Project struct {
	// ID is a random UUID assigned on import.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Name is the IfcProject name, or a placeholder if it is missing.
	Name string `gorm:"type:varchar(255);not null"`

	Description string `gorm:"type:text"`

	// SchemaVersion is the normalized schema tag, for example IFC4.
	SchemaVersion string `gorm:"type:varchar(20);not null"`

	OriginalFilePath string `gorm:"type:text;not null"`

	// OriginalFileHash is hex-encoded SHA-256 of the file. At most one
	// active project can have a given hash.
	OriginalFileHash string `gorm:"type:char(64);not null;index:idx_ifc_projects_active_hash,unique,where:deleted_at IS NULL"`

	AuthoringApp string `gorm:"type:varchar(255)"`
	Author       string `gorm:"type:varchar(255)"`
	Organization string `gorm:"type:varchar(255)"`

	CreatedAt  time.Time `gorm:"not null;default:now()"`
	UpdatedAt  time.Time `gorm:"not null;default:now()"`
	ImportedAt time.Time `gorm:"not null;default:now()"`

	// DeletedAt is set by soft delete.
	DeletedAt *time.Time `gorm:"index"`
}

func (Project) TableName() string { return "ifc_projects" }

// Storey is a building level.
type Storey struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_storeys_project_global,priority:1"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	GlobalID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_storeys_project_global,priority:2"`
	Name     string `gorm:"type:varchar(255)"`
	LongName string `gorm:"type:varchar(255)"`

	// Elevation in meters.
	Elevation *float64
}

func (Storey) TableName() string { return "storeys" }

// ElementType is a reusable element archetype.
type ElementType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_element_types_project_global,priority:1"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	GlobalID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_element_types_project_global,priority:2"`
	IfcClass    string `gorm:"type:varchar(100);not null"`
	Name        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
}

func (ElementType) TableName() string { return "element_types" }

// BuildingElement is a physical component. Spaces are stored here too,
// as backing elements of the `space` category.
type BuildingElement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_building_elements_project_global,priority:1"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	StoreyID *uuid.UUID   `gorm:"type:uuid;index"`
	Storey   *Storey      `gorm:"constraint:OnDelete:SET NULL"`
	TypeID   *uuid.UUID   `gorm:"type:uuid;index"`
	Type     *ElementType `gorm:"foreignKey:TypeID;constraint:OnDelete:SET NULL"`

	GlobalID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_building_elements_project_global,priority:2"`
	IfcClass    string `gorm:"type:varchar(100);not null;index"`
	Category    string `gorm:"type:varchar(50);not null;index"`
	Name        string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	ObjectType  string `gorm:"type:varchar(255)"`
	Tag         string `gorm:"type:varchar(255)"`

	LengthM  *float64 `gorm:"column:length_m"`
	WidthM   *float64 `gorm:"column:width_m"`
	HeightM  *float64 `gorm:"column:height_m"`
	AreaM2   *float64 `gorm:"column:area_m2"`
	VolumeM3 *float64 `gorm:"column:volume_m3"`

	PositionX *float64 `gorm:"column:position_x"`
	PositionY *float64 `gorm:"column:position_y"`
	PositionZ *float64 `gorm:"column:position_z"`

	IsExternal    *bool
	IsLoadBearing *bool
}

func (BuildingElement) TableName() string { return "building_elements" }

// Space is a room or zone.
type Space struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_spaces_project_global,priority:1"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	StoreyID *uuid.UUID `gorm:"type:uuid;index"`
	Storey   *Storey    `gorm:"constraint:OnDelete:SET NULL"`

	// ElementID points to the backing element of the space.
	ElementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Element   BuildingElement `gorm:"constraint:OnDelete:CASCADE"`

	GlobalID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_spaces_project_global,priority:2"`
	Name        string `gorm:"type:varchar(255)"`
	LongName    string `gorm:"type:varchar(255)"`
	SpaceNumber string `gorm:"type:varchar(100)"`

	NetFloorArea   *float64
	GrossFloorArea *float64
	NetVolume      *float64
	GrossVolume    *float64
	NetHeight      *float64

	OccupancyType string `gorm:"type:varchar(255)"`

	// ExZone is the explosion hazard classification.
	ExZone          string `gorm:"type:varchar(20);not null;default:'none';index"`
	HazardousArea   bool   `gorm:"not null;default:false"`
	FireCompartment string `gorm:"type:varchar(255)"`

	FinishFloor   string `gorm:"type:varchar(255)"`
	FinishWall    string `gorm:"type:varchar(255)"`
	FinishCeiling string `gorm:"type:varchar(255)"`
}

func (Space) TableName() string { return "spaces" }

// PropertySetDefinition is a named property set of a project.
type PropertySetDefinition struct {
	// ID is UUID v5 of the project ID and the set name.
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pset_definitions_project_name,priority:1"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	Name     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_pset_definitions_project_name,priority:2"`
	IfcClass string `gorm:"type:varchar(100)"`
}

func (PropertySetDefinition) TableName() string { return "property_set_definitions" }

// ElementProperty is one property value of an element.
type ElementProperty struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ElementID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_element_properties_key,priority:1"`
	Element   BuildingElement `gorm:"constraint:OnDelete:CASCADE"`

	PsetDefinitionID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_element_properties_key,priority:2"`
	PsetDefinition   PropertySetDefinition `gorm:"constraint:OnDelete:CASCADE"`

	PropertyName  string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_element_properties_key,priority:3"`
	PropertyValue *string `gorm:"type:text"`
	DataType      string  `gorm:"type:varchar(20);not null"`
	Unit          string  `gorm:"type:varchar(50)"`
}

func (ElementProperty) TableName() string { return "element_properties" }

// TypeProperty is one property value of an element type.
type TypeProperty struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TypeID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_type_properties_key,priority:1"`
	Type   ElementType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE"`

	PsetDefinitionID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_type_properties_key,priority:2"`
	PsetDefinition   PropertySetDefinition `gorm:"constraint:OnDelete:CASCADE"`

	PropertyName  string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_type_properties_key,priority:3"`
	PropertyValue *string `gorm:"type:text"`
	DataType      string  `gorm:"type:varchar(20);not null"`
	Unit          string  `gorm:"type:varchar(50)"`
}

func (TypeProperty) TableName() string { return "type_properties" }

// ElementQuantity is a measured value of an element.
type ElementQuantity struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ElementID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_element_quantities_key,priority:1"`
	Element   BuildingElement `gorm:"constraint:OnDelete:CASCADE"`

	QtoName       string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_element_quantities_key,priority:2"`
	QuantityName  string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_element_quantities_key,priority:3"`
	QuantityValue float64 `gorm:"not null"`
	Unit          string  `gorm:"type:varchar(20)"`
	Formula       string  `gorm:"type:text"`
}

func (ElementQuantity) TableName() string { return "element_quantities" }

// Material is a named substance of a project.
type Material struct {
	// ID is UUID v5 of the project ID and the material name.
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_materials_project_name,priority:1"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_materials_project_name,priority:2"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"type:varchar(255)"`
}

func (Material) TableName() string { return "materials" }

// ElementMaterial is a material layer of an element.
type ElementMaterial struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ElementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Element   BuildingElement `gorm:"constraint:OnDelete:CASCADE"`

	MaterialID uuid.UUID `gorm:"type:uuid;not null;index"`
	Material   Material  `gorm:"constraint:OnDelete:CASCADE"`

	LayerOrder int `gorm:"not null;default:0"`

	// LayerThickness in meters.
	LayerThickness *float64
	IsVentilated   bool `gorm:"not null;default:false"`
}

func (ElementMaterial) TableName() string { return "element_materials" }

// SpaceBoundary links a space to an element that delimits it.
type SpaceBoundary struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	SpaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Space   Space     `gorm:"constraint:OnDelete:CASCADE"`

	ElementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Element   BuildingElement `gorm:"constraint:OnDelete:CASCADE"`

	BoundaryType       string `gorm:"type:varchar(50)"`
	PhysicalOrVirtual  string `gorm:"type:varchar(20)"`
	InternalOrExternal string `gorm:"type:varchar(20)"`
}

func (SpaceBoundary) TableName() string { return "space_boundaries" }

// ElementOpening links a host element to the element filling its opening.
type ElementOpening struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HostElementID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_element_openings_pair,priority:1"`
	HostElement   BuildingElement `gorm:"foreignKey:HostElementID;constraint:OnDelete:CASCADE"`

	FillingElementID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_element_openings_pair,priority:2"`
	FillingElement   BuildingElement `gorm:"foreignKey:FillingElementID;constraint:OnDelete:CASCADE"`
}

func (ElementOpening) TableName() string { return "element_openings" }
