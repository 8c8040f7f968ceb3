package ioextract

import (
	"github.com/gnames/ifcdb/pkg/ifc"
	"github.com/gnames/ifcdb/pkg/model"
)

// Quantity names used for denormalized geometry, by priority.
var (
	lengthNames = []string{"Length", "NetLength", "GrossLength"}
	widthNames  = []string{"Width", "NetWidth", "GrossWidth"}
	heightNames = []string{"Height", "NetHeight", "GrossHeight"}
	areaNames   = []string{"NetArea", "NetSideArea", "GrossArea", "GrossSideArea"}
	volumeNames = []string{"NetVolume", "GrossVolume"}
)

// unknownMaterial names layers that have no material.
const unknownMaterial = "Unknown"

func (x *extraction) element(e ifc.Entity) model.Element {
	res := model.Element{
		GlobalID:    e.GlobalID,
		IfcClass:    e.Class,
		Name:        e.Name,
		Description: e.Description,
		ObjectType:  e.ObjectType,
		Tag:         e.Tag,
	}

	if c, ok := x.doc.Container(e); ok && c.Class == "IfcBuildingStorey" {
		res.StoreyGlobalID = c.GlobalID
	}
	if t, ok := x.doc.Type(e); ok {
		res.TypeGlobalID = t.GlobalID
	}
	if h, ok := x.doc.FilledHost(e); ok {
		res.HostGlobalID = h.GlobalID
	}
	if pos, ok := x.doc.Placement(e); ok {
		px, py, pz := pos[0]*x.scale, pos[1]*x.scale, pos[2]*x.scale
		res.PositionX, res.PositionY, res.PositionZ = &px, &py, &pz
	}

	res.Properties = x.properties(e)
	for _, p := range res.Properties {
		switch p.Name {
		case "IsExternal":
			res.IsExternal = p.Bool()
		case "LoadBearing":
			res.IsLoadBearing = p.Bool()
		}
	}

	res.Quantities = x.quantities(e)
	res.Length = pick(res.Quantities, lengthNames)
	res.Width = pick(res.Quantities, widthNames)
	res.Height = pick(res.Quantities, heightNames)
	res.Area = pick(res.Quantities, areaNames)
	res.Volume = pick(res.Quantities, volumeNames)

	res.Materials = x.materials(e)
	return res
}

// pick returns the value of the quantity with the first name of the
// priority list that is present.
func pick(qs []model.Quantity, names []string) *float64 {
	for _, n := range names {
		for _, q := range qs {
			if q.Name == n {
				v := q.Value
				return &v
			}
		}
	}
	return nil
}

// properties flattens property sets into tuples. The internal "id"
// field is skipped.
func (x *extraction) properties(e ifc.Entity) []model.Property {
	var res []model.Property
	for _, ps := range x.doc.PropertySets(e) {
		for _, p := range ps.Properties {
			if p.Name == "id" {
				continue
			}
			res = append(res, model.NewProperty(ps.Name, p.Name, p.Value, p.Unit))
		}
	}
	return res
}

// quantities flattens quantity sets and converts lengths, areas and
// volumes to meters.
func (x *extraction) quantities(e ifc.Entity) []model.Quantity {
	var res []model.Quantity
	for _, qs := range x.doc.QuantitySets(e) {
		qto := qs.Name
		if qto == "" {
			qto = model.UnnamedSet
		}
		for _, q := range qs.Quantities {
			val, unit := x.convert(q)
			res = append(res, model.Quantity{
				QtoName: qto,
				Name:    q.Name,
				Value:   val,
				Unit:    unit,
				Formula: q.Formula,
			})
		}
	}
	return res
}

func (x *extraction) convert(q ifc.Quantity) (float64, string) {
	switch q.Kind {
	case ifc.QuantityLength:
		return q.Value * x.scale, "m"
	case ifc.QuantityArea:
		return q.Value * x.scale * x.scale, "m²"
	case ifc.QuantityVolume:
		return q.Value * x.scale * x.scale * x.scale, "m³"
	case ifc.QuantityWeight:
		return q.Value, "kg"
	case ifc.QuantityTime:
		return q.Value, "s"
	default:
		return q.Value, ""
	}
}

// materials projects any material assignment into ordered layers.
func (x *extraction) materials(e ifc.Entity) []model.MaterialLayer {
	m, ok := x.doc.Material(e)
	if !ok {
		return nil
	}

	res := make([]model.MaterialLayer, 0, len(m.Layers))
	for i, l := range m.Layers {
		name := l.Name
		if name == "" {
			// only layers may lack a material
			if m.Kind == ifc.MaterialList || m.Kind == ifc.MaterialConstituentSet {
				continue
			}
			name = unknownMaterial
		}
		ml := model.MaterialLayer{
			Name:         name,
			Category:     l.Category,
			Order:        i,
			IsVentilated: l.IsVentilated,
		}
		if l.Thickness != nil && *l.Thickness != 0 {
			t := *l.Thickness * x.scale
			ml.Thickness = &t
		}
		res = append(res, ml)
	}
	return res
}
