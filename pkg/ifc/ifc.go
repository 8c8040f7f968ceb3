// Package ifc describes what the importer needs from a parsed building
// model. The interface hides the exchange file format and lets the
// extractor be tested against hand-made documents.
package ifc

import "errors"

// ErrUnknownClass is returned by Document.ByType when the requested class
// does not exist in the schema of the document.
var ErrUnknownClass = errors.New("class is not defined by schema")

// Document is an opened and validated building model.
type Document interface {
	// Schema returns the normalized schema tag, for example IFC4.
	Schema() string

	// UnitScale returns the factor that converts lengths of the file
	// to meters.
	UnitScale() float64

	// Project returns the root IfcProject.
	Project() (Entity, error)

	// Authoring returns information about the program and the person
	// that created the file.
	Authoring() Authoring

	// ByType enumerates entities of a class and of its subclasses.
	ByType(class string) ([]Entity, error)

	// PropertySets returns the property sets of an entity. For
	// occurrences the sets of their type are included, and the values of
	// the occurrence override the values of the type.
	PropertySets(e Entity) []PropertySet

	// QuantitySets returns quantity sets of an entity, including the ones
	// inherited from its type.
	QuantitySets(e Entity) []QuantitySet

	// Material returns the material assignment of an entity, or of its
	// type if the entity has none.
	Material(e Entity) (Material, bool)

	// Container returns the spatial structure element containing the
	// entity.
	Container(e Entity) (Entity, bool)

	// Type returns the type object of an occurrence.
	Type(e Entity) (Entity, bool)

	// Placement returns the world coordinates of the entity origin in
	// file units.
	Placement(e Entity) ([3]float64, bool)

	// Boundaries returns space boundaries of a space.
	Boundaries(space Entity) []Boundary

	// FilledHost returns the element that hosts the opening filled by
	// a door or a window.
	FilledHost(e Entity) (Entity, bool)
}

// Entity carries attributes shared by rooted entities.
type Entity struct {
	// ID is the instance number inside the file.
	ID int

	// Class is the entity class, for example IfcWallStandardCase.
	Class string

	GlobalID    string
	Name        string
	Description string
	ObjectType  string

	// Tag is set for elements.
	Tag string

	// LongName is set for spatial structure elements.
	LongName string

	// Elevation is set for building storeys, in file units.
	Elevation *float64
}

// Authoring describes the origin of a file.
type Authoring struct {
	Application  string
	Author       string
	Organization string
}

// Property is one named value of a property set. Value is one of bool,
// int64, float64, string or nil.
type Property struct {
	Name  string
	Value any
	Unit  string
}

// PropertySet is a named group of properties.
type PropertySet struct {
	Name       string
	Properties []Property
}

// QuantityKind tells how a quantity value must be scaled.
type QuantityKind int

const (
	QuantityLength QuantityKind = iota
	QuantityArea
	QuantityVolume
	QuantityCount
	QuantityWeight
	QuantityTime
)

// Quantity is a measured value in file units.
type Quantity struct {
	Name    string
	Kind    QuantityKind
	Value   float64
	Unit    string
	Formula string
}

// QuantitySet is a named group of quantities.
type QuantitySet struct {
	Name       string
	Quantities []Quantity
}

// MaterialKind is the shape of a material assignment.
type MaterialKind int

const (
	MaterialSingle MaterialKind = iota + 1
	MaterialLayerSetUsage
	MaterialLayerSet
	MaterialList
	MaterialConstituentSet
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialSingle:
		return "single"
	case MaterialLayerSetUsage:
		return "layer_set_usage"
	case MaterialLayerSet:
		return "layer_set"
	case MaterialList:
		return "list"
	case MaterialConstituentSet:
		return "constituent_set"
	default:
		return "unknown"
	}
}

// Material is a material assignment. Layers are kept in the order of the
// file. A single material is one layer without thickness.
type Material struct {
	Kind   MaterialKind
	Layers []MaterialLayer
}

// MaterialLayer is one part of a material assignment. Name is empty when
// the layer has no material. Thickness is in file units.
type MaterialLayer struct {
	Name         string
	Category     string
	Thickness    *float64
	IsVentilated bool
}

// Boundary is a relation between a space and an element bounding it.
type Boundary struct {
	Element            Entity
	PhysicalOrVirtual  string
	InternalOrExternal string
}
