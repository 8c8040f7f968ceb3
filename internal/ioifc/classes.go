package ioifc

import "strings"

// subtypes lists direct subclasses of the classes the importer asks
// for. Only branches needed for enumeration are kept.
var subtypes = map[string][]string{
	"IfcWall":                {"IfcWallStandardCase", "IfcWallElementedCase"},
	"IfcSlab":                {"IfcSlabStandardCase", "IfcSlabElementedCase"},
	"IfcBeam":                {"IfcBeamStandardCase"},
	"IfcColumn":              {"IfcColumnStandardCase"},
	"IfcDoor":                {"IfcDoorStandardCase"},
	"IfcWindow":              {"IfcWindowStandardCase"},
	"IfcFurnishingElement":   {"IfcFurniture", "IfcSystemFurnitureElement"},
	"IfcDistributionElement": {"IfcDistributionFlowElement", "IfcDistributionControlElement"},
	"IfcDistributionFlowElement": {
		"IfcFlowSegment", "IfcFlowFitting", "IfcFlowTerminal",
		"IfcFlowController", "IfcFlowMovingDevice", "IfcFlowStorageDevice",
		"IfcFlowTreatmentDevice", "IfcEnergyConversionDevice",
		"IfcDistributionChamberElement",
	},
	"IfcDistributionControlElement": {
		"IfcSensor", "IfcActuator", "IfcAlarm", "IfcController",
		"IfcFlowInstrument", "IfcProtectiveDeviceTrippingUnit",
		"IfcUnitaryControlElement",
	},
	"IfcFlowSegment": {
		"IfcPipeSegment", "IfcDuctSegment", "IfcCableSegment",
		"IfcCableCarrierSegment",
	},
	"IfcFlowFitting": {
		"IfcPipeFitting", "IfcDuctFitting", "IfcCableFitting",
		"IfcCableCarrierFitting", "IfcJunctionBox",
	},
	"IfcFlowTerminal": {
		"IfcAirTerminal", "IfcSanitaryTerminal", "IfcLightFixture",
		"IfcLamp", "IfcOutlet", "IfcFireSuppressionTerminal",
		"IfcWasteTerminal", "IfcStackTerminal", "IfcSpaceHeater",
		"IfcElectricAppliance", "IfcAudioVisualAppliance",
		"IfcCommunicationsAppliance", "IfcMedicalDevice",
	},
	"IfcFlowController": {
		"IfcValve", "IfcDamper", "IfcSwitchingDevice",
		"IfcProtectiveDevice", "IfcFlowMeter", "IfcElectricDistributionBoard",
	},
	"IfcRelSpaceBoundary":         {"IfcRelSpaceBoundary1stLevel"},
	"IfcRelSpaceBoundary1stLevel": {"IfcRelSpaceBoundary2ndLevel"},
}

// Classes that are not defined by a schema. Schemas not listed here
// define every class of the tables above.
var undefined = map[string][]string{
	"IFC2X3": {
		"IfcDoorType", "IfcWindowType", "IfcStairType", "IfcRampType",
		"IfcFurniture", "IfcSystemFurnitureElement",
		"IfcSlabStandardCase", "IfcSlabElementedCase", "IfcWallElementedCase",
		"IfcBeamStandardCase", "IfcColumnStandardCase",
		"IfcDoorStandardCase", "IfcWindowStandardCase",
		"IfcRelSpaceBoundary1stLevel", "IfcRelSpaceBoundary2ndLevel",
		"IfcAirTerminal", "IfcSanitaryTerminal", "IfcLightFixture",
		"IfcLamp", "IfcOutlet", "IfcPipeSegment", "IfcDuctSegment",
		"IfcCableSegment", "IfcCableCarrierSegment", "IfcPipeFitting",
		"IfcDuctFitting", "IfcCableFitting", "IfcCableCarrierFitting",
		"IfcJunctionBox", "IfcFireSuppressionTerminal", "IfcWasteTerminal",
		"IfcStackTerminal", "IfcSpaceHeater", "IfcElectricAppliance",
		"IfcAudioVisualAppliance", "IfcCommunicationsAppliance",
		"IfcMedicalDevice", "IfcValve", "IfcDamper", "IfcSwitchingDevice",
		"IfcProtectiveDevice", "IfcFlowMeter", "IfcElectricDistributionBoard",
		"IfcSensor", "IfcActuator", "IfcAlarm", "IfcController",
		"IfcFlowInstrument", "IfcProtectiveDeviceTrippingUnit",
		"IfcUnitaryControlElement", "IfcMaterialConstituentSet",
		"IfcMaterialConstituent",
	},
	"IFC4X3": {
		"IfcWallStandardCase", "IfcSlabStandardCase", "IfcBeamStandardCase",
		"IfcColumnStandardCase", "IfcDoorStandardCase",
		"IfcWindowStandardCase", "IfcWallElementedCase",
		"IfcSlabElementedCase",
	},
}

// Other classes the adapter may report as an entity class.
var known = []string{
	"IfcProject", "IfcSite", "IfcBuilding", "IfcBuildingStorey", "IfcSpace",
	"IfcWallType", "IfcDoorType", "IfcWindowType", "IfcSlabType",
	"IfcColumnType", "IfcBeamType", "IfcCoveringType", "IfcCurtainWallType",
	"IfcStairType", "IfcRampType", "IfcRailingType", "IfcFurnitureType",
	"IfcDoorStyle", "IfcWindowStyle",
	"IfcRoof", "IfcStair", "IfcStairFlight", "IfcRamp", "IfcRampFlight",
	"IfcCurtainWall", "IfcCovering", "IfcRailing", "IfcOpeningElement",
	"IfcMember", "IfcPlate", "IfcFooting", "IfcPile", "IfcBuildingElementProxy",
	"IfcMaterialLayerSetUsage", "IfcMaterialLayerSet", "IfcMaterialLayer",
	"IfcMaterialList", "IfcMaterial",
}

// names maps upper-case file names of classes to their spelling in the
// schema documentation.
var names = func() map[string]string {
	res := make(map[string]string)
	add := func(n string) { res[strings.ToUpper(n)] = n }
	for k, v := range subtypes {
		add(k)
		for _, n := range v {
			add(n)
		}
	}
	for _, n := range known {
		add(n)
	}
	return res
}()

// className returns the documented spelling of a class read from a file.
func className(upper string) string {
	if n, ok := names[upper]; ok {
		return n
	}
	if len(upper) > 3 && strings.HasPrefix(upper, "IFC") {
		return "Ifc" + upper[3:4] + strings.ToLower(upper[4:])
	}
	return upper
}

// defined tells if a schema knows a class.
func defined(schema, class string) bool {
	if _, ok := names[strings.ToUpper(class)]; !ok {
		return false
	}
	for _, n := range undefined[schema] {
		if n == class {
			return false
		}
	}
	return true
}

// descendants returns the upper-case names of a class and all its
// subclasses.
func descendants(class string) []string {
	res := []string{strings.ToUpper(class)}
	for _, sub := range subtypes[class] {
		res = append(res, descendants(sub)...)
	}
	return res
}
