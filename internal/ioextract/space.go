package ioextract

import (
	"slices"

	"github.com/gnames/ifcdb/pkg/ifc"
	"github.com/gnames/ifcdb/pkg/model"
)

const spaceCommon = "Pset_SpaceCommon"

var fireCompartmentNames = []string{"FireCompartment", "Brandabschnitt"}

func (x *extraction) space(e ifc.Entity) model.Space {
	res := model.Space{
		GlobalID: e.GlobalID,
		Name:     e.Name,
		LongName: e.LongName,
		ExZone:   model.ZoneNone,
	}
	if c, ok := x.doc.Container(e); ok && c.Class == "IfcBuildingStorey" {
		res.StoreyGlobalID = c.GlobalID
	}

	res.Properties = x.properties(e)
	// Properties come in pset order, then in order inside a pset. When
	// several hazard zone aliases are present, the last one wins.
	for _, p := range res.Properties {
		if p.PsetName == spaceCommon {
			switch p.Name {
			case "Reference":
				res.SpaceNumber = p.String()
			case "OccupancyType":
				res.OccupancyType = p.String()
			case "NetPlannedArea":
				res.NetFloorArea = x.area(p.Float())
			case "GrossPlannedArea":
				res.GrossFloorArea = x.area(p.Float())
			}
		}

		switch {
		case slices.Contains(model.ExZoneAliases, p.Name):
			res.ExZone = model.ParseExZone(p.String())
		case slices.Contains(fireCompartmentNames, p.Name):
			res.FireCompartment = p.String()
		case p.Name == "FinishFloor":
			res.FinishFloor = p.String()
		case p.Name == "FinishWall":
			res.FinishWall = p.String()
		case p.Name == "FinishCeiling":
			res.FinishCeiling = p.String()
		}
	}

	res.Quantities = x.quantities(e)
	for _, q := range res.Quantities {
		v := q.Value
		switch q.Name {
		case "NetFloorArea":
			res.NetFloorArea = &v
		case "GrossFloorArea":
			res.GrossFloorArea = &v
		case "NetVolume":
			res.NetVolume = &v
		case "GrossVolume":
			res.GrossVolume = &v
		case "FinishCeilingHeight":
			res.NetHeight = &v
		}
	}

	for _, b := range x.doc.Boundaries(e) {
		if b.Element.GlobalID == "" {
			continue
		}
		res.Boundaries = append(res.Boundaries, model.Boundary{
			ElementGlobalID:    b.Element.GlobalID,
			PhysicalOrVirtual:  b.PhysicalOrVirtual,
			InternalOrExternal: b.InternalOrExternal,
		})
	}
	return res
}

// area converts a planned area given in project units to square meters.
func (x *extraction) area(v *float64) *float64 {
	if v == nil {
		return nil
	}
	res := *v * x.scale * x.scale
	return &res
}
