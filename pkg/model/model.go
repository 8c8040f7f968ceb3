// Package model contains the intermediate representation of a parsed IFC
// file. Records here carry source identifiers (IFC GlobalIds) only,
// surrogate keys are assigned during import.
package model

// Project is the root of a parsed IFC file.
type Project struct {
	Name          string
	Description   string
	SchemaVersion string
	FilePath      string

	// FileHash is a hex-encoded SHA-256 of the file content.
	FileHash string

	AuthoringApp string
	Author       string
	Organization string

	Storeys  []Storey
	Types    []TypeDef
	Elements []Element
	Spaces   []Space

	// Materials are distinct by name, in order of first appearance.
	Materials []Material

	// Warnings collected during extraction.
	Warnings []string
}

// Storey is a building level.
type Storey struct {
	GlobalID string
	Name     string
	LongName string

	// Elevation in meters.
	Elevation *float64
}

// TypeDef is a reusable element archetype, for example a door model.
type TypeDef struct {
	GlobalID    string
	IfcClass    string
	Name        string
	Description string
	Properties  []Property
}

// Element is a physical building component.
type Element struct {
	GlobalID    string
	IfcClass    string
	Name        string
	Description string
	ObjectType  string
	Tag         string

	// StoreyGlobalID is the GlobalId of the containing storey, if any.
	StoreyGlobalID string
	// TypeGlobalID is the GlobalId of the element type, if any.
	TypeGlobalID string
	// HostGlobalID is the GlobalId of the element whose opening this
	// element fills (doors and windows).
	HostGlobalID string

	// Geometry in meters, square meters and cubic meters.
	Length *float64
	Width  *float64
	Height *float64
	Area   *float64
	Volume *float64

	// World placement in meters.
	PositionX *float64
	PositionY *float64
	PositionZ *float64

	IsExternal    *bool
	IsLoadBearing *bool

	Properties []Property
	Quantities []Quantity
	Materials  []MaterialLayer
}

// Category returns the coarse category of the element.
func (e Element) Category() Category {
	return CategoryOf(e.IfcClass)
}

// Space is a room or zone. Every space gets a backing Element during import.
type Space struct {
	GlobalID       string
	Name           string
	LongName       string
	StoreyGlobalID string

	SpaceNumber   string
	OccupancyType string

	NetFloorArea   *float64
	GrossFloorArea *float64
	NetVolume      *float64
	GrossVolume    *float64
	NetHeight      *float64

	ExZone          ExZone
	FireCompartment string

	FinishFloor   string
	FinishWall    string
	FinishCeiling string

	Properties []Property
	Quantities []Quantity
	Boundaries []Boundary
}

// Area returns the area used for the backing element: net floor area if
// known, gross floor area otherwise.
func (s Space) Area() *float64 {
	if s.NetFloorArea != nil {
		return s.NetFloorArea
	}
	return s.GrossFloorArea
}

// Volume returns the net volume if known, gross volume otherwise.
func (s Space) Volume() *float64 {
	if s.NetVolume != nil {
		return s.NetVolume
	}
	return s.GrossVolume
}

// Boundary records that a space is delimited by an element.
type Boundary struct {
	ElementGlobalID    string
	PhysicalOrVirtual  string
	InternalOrExternal string
}

// Material is a named substance.
type Material struct {
	Name     string
	Category string
}

// MaterialLayer is one entry of the flattened material assignment of an
// element. Single materials, layer sets, lists and constituent sets all
// become an ordered list of layers.
type MaterialLayer struct {
	Name     string
	Category string
	Order    int

	// Thickness in meters.
	Thickness    *float64
	IsVentilated bool
}

// Quantity is a measured value from a quantity set.
type Quantity struct {
	QtoName string
	Name    string
	Value   float64
	Unit    string
	Formula string
}
