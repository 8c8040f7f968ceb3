package model

// Category is a coarse classification of building elements.
type Category string

const (
	CategoryWall                Category = "wall"
	CategoryWallStandardCase    Category = "wall_standard_case"
	CategoryDoor                Category = "door"
	CategoryWindow              Category = "window"
	CategorySlab                Category = "slab"
	CategoryRoofSlab            Category = "roof_slab"
	CategoryColumn              Category = "column"
	CategoryBeam                Category = "beam"
	CategoryStair               Category = "stair"
	CategoryRamp                Category = "ramp"
	CategoryCurtainWall         Category = "curtain_wall"
	CategoryCovering            Category = "covering"
	CategoryRailing             Category = "railing"
	CategoryFurniture           Category = "furniture"
	CategoryEquipment           Category = "equipment"
	CategoryOpening             Category = "opening"
	CategorySpace               Category = "space"
	CategoryDistributionElement Category = "distribution_element"
	CategoryOther               Category = "other"
)

var categories = map[string]Category{
	"IfcWall":                CategoryWall,
	"IfcWallStandardCase":    CategoryWallStandardCase,
	"IfcDoor":                CategoryDoor,
	"IfcWindow":              CategoryWindow,
	"IfcSlab":                CategorySlab,
	"IfcRoof":                CategoryRoofSlab,
	"IfcColumn":              CategoryColumn,
	"IfcBeam":                CategoryBeam,
	"IfcStair":               CategoryStair,
	"IfcStairFlight":         CategoryStair,
	"IfcRamp":                CategoryRamp,
	"IfcRampFlight":          CategoryRamp,
	"IfcCurtainWall":         CategoryCurtainWall,
	"IfcCovering":            CategoryCovering,
	"IfcRailing":             CategoryRailing,
	"IfcFurniture":           CategoryFurniture,
	"IfcFurnishingElement":   CategoryFurniture,
	"IfcOpeningElement":      CategoryOpening,
	"IfcSpace":               CategorySpace,
	"IfcDistributionElement": CategoryDistributionElement,
	"IfcFlowSegment":         CategoryDistributionElement,
	"IfcFlowFitting":         CategoryDistributionElement,
	"IfcFlowTerminal":        CategoryDistributionElement,
}

// CategoryOf maps an IFC class name to its category.
// Unknown classes are CategoryOther.
func CategoryOf(ifcClass string) Category {
	if c, ok := categories[ifcClass]; ok {
		return c
	}
	return CategoryOther
}
