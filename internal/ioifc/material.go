package ioifc

import (
	"github.com/gnames/ifcdb/internal/iostep"
	"github.com/gnames/ifcdb/pkg/ifc"
)

func (d *document) Material(e ifc.Entity) (ifc.Material, bool) {
	id, ok := d.material[e.ID]
	if !ok {
		if t, isTyped := d.typeOf[e.ID]; isTyped {
			id, ok = d.material[t]
		}
	}
	if !ok {
		return ifc.Material{}, false
	}
	return d.materialSelect(id)
}

func (d *document) materialSelect(id int) (ifc.Material, bool) {
	e, ok := d.file.Entity(id)
	if !ok {
		return ifc.Material{}, false
	}

	switch e.Class {
	case "IFCMATERIAL":
		name, cat := materialInfo(e)
		return ifc.Material{
			Kind:   ifc.MaterialSingle,
			Layers: []ifc.MaterialLayer{{Name: name, Category: cat}},
		}, true
	case "IFCMATERIALLAYERSETUSAGE":
		set, ok := d.deref(e.Arg(0))
		if !ok {
			return ifc.Material{}, false
		}
		return ifc.Material{
			Kind:   ifc.MaterialLayerSetUsage,
			Layers: d.layers(set),
		}, true
	case "IFCMATERIALLAYERSET":
		return ifc.Material{Kind: ifc.MaterialLayerSet, Layers: d.layers(e)}, true
	case "IFCMATERIALLAYER":
		return ifc.Material{
			Kind:   ifc.MaterialLayerSet,
			Layers: []ifc.MaterialLayer{d.layer(e)},
		}, true
	case "IFCMATERIALLIST":
		res := ifc.Material{Kind: ifc.MaterialList}
		for _, mid := range e.Arg(0).Refs() {
			if m, ok := d.file.Entity(mid); ok {
				name, cat := materialInfo(m)
				res.Layers = append(res.Layers, ifc.MaterialLayer{Name: name, Category: cat})
			}
		}
		return res, true
	case "IFCMATERIALCONSTITUENTSET":
		res := ifc.Material{Kind: ifc.MaterialConstituentSet}
		for _, cid := range e.Arg(2).Refs() {
			c, ok := d.file.Entity(cid)
			if !ok {
				continue
			}
			var l ifc.MaterialLayer
			if m, ok := d.deref(c.Arg(2)); ok {
				l.Name, l.Category = materialInfo(m)
			}
			if cat := text(c.Arg(4)); cat != "" {
				l.Category = cat
			}
			res.Layers = append(res.Layers, l)
		}
		return res, true
	}
	return ifc.Material{}, false
}

func (d *document) layers(set *iostep.Entity) []ifc.MaterialLayer {
	ids := set.Arg(0).Refs()
	res := make([]ifc.MaterialLayer, 0, len(ids))
	for _, id := range ids {
		if l, ok := d.file.Entity(id); ok {
			res = append(res, d.layer(l))
		}
	}
	return res
}

// layer reads IfcMaterialLayer. Category is only present since IFC4.
func (d *document) layer(e *iostep.Entity) ifc.MaterialLayer {
	var res ifc.MaterialLayer
	if m, ok := d.deref(e.Arg(0)); ok {
		res.Name, res.Category = materialInfo(m)
	}
	if t, ok := e.Arg(1).Number(); ok {
		res.Thickness = &t
	}
	res.IsVentilated, _ = e.Arg(2).Bool()
	if cat := text(e.Arg(5)); cat != "" {
		res.Category = cat
	}
	return res
}

// materialInfo returns name and category of IfcMaterial.
func materialInfo(m *iostep.Entity) (string, string) {
	if m.Class != "IFCMATERIAL" {
		return "", ""
	}
	return text(m.Arg(0)), text(m.Arg(2))
}
