package ioifc

import (
	"fmt"
	"strings"

	"github.com/gnames/ifcdb/internal/iostep"
	"github.com/gnames/ifcdb/pkg/ifc"
)

// Defined types whose integer values stay integers. Other measures
// become reals even when the file writes them without a decimal point.
var integerTypes = map[string]bool{
	"IFCINTEGER":                 true,
	"IFCCOUNTMEASURE":            true,
	"IFCPOSITIVEINTEGER":         true,
	"IFCTIMESTAMP":               true,
	"IFCINTEGERCOUNTRATEMEASURE": true,
	"IFCDAYINMONTHNUMBER":        true,
	"IFCMONTHINYEARNUMBER":       true,
}

func (d *document) PropertySets(e ifc.Entity) []ifc.PropertySet {
	var res []ifc.PropertySet
	if t, ok := d.typeOf[e.ID]; ok {
		res = d.ownPropertySets(t)
	}
	return mergePropertySets(res, d.ownPropertySets(e.ID))
}

func (d *document) QuantitySets(e ifc.Entity) []ifc.QuantitySet {
	var res []ifc.QuantitySet
	if t, ok := d.typeOf[e.ID]; ok {
		res = d.ownQuantitySets(t)
	}
	return mergeQuantitySets(res, d.ownQuantitySets(e.ID))
}

// definitions returns property definitions attached to an object or
// a type.
func (d *document) definitions(id int) []*iostep.Entity {
	var ids []int
	if e, ok := d.file.Entity(id); ok && isType(e.Class) {
		ids = append(ids, e.Arg(5).Refs()...)
	}
	ids = append(ids, d.definedBy[id]...)

	res := make([]*iostep.Entity, 0, len(ids))
	for _, i := range ids {
		if e, ok := d.file.Entity(i); ok {
			res = append(res, e)
		}
	}
	return res
}

func (d *document) ownPropertySets(id int) []ifc.PropertySet {
	var res []ifc.PropertySet
	for _, def := range d.definitions(id) {
		if def.Class != "IFCPROPERTYSET" {
			continue
		}
		ps := ifc.PropertySet{Name: text(def.Arg(2))}
		for _, pid := range def.Arg(4).Refs() {
			if p, ok := d.property(pid); ok {
				ps.Properties = append(ps.Properties, p)
			}
		}
		res = append(res, ps)
	}
	return res
}

func (d *document) property(id int) (ifc.Property, bool) {
	e, ok := d.file.Entity(id)
	if !ok {
		return ifc.Property{}, false
	}
	res := ifc.Property{Name: text(e.Arg(0))}
	switch e.Class {
	case "IFCPROPERTYSINGLEVALUE":
		res.Value = scalar(e.Arg(2))
		res.Unit = d.unitLabel(e.Arg(3))
	case "IFCPROPERTYENUMERATEDVALUE":
		res.Value = joinValues(e.Arg(2))
	case "IFCPROPERTYLISTVALUE":
		res.Value = joinValues(e.Arg(2))
		res.Unit = d.unitLabel(e.Arg(3))
	default:
		return res, false
	}
	return res, true
}

func (d *document) ownQuantitySets(id int) []ifc.QuantitySet {
	var res []ifc.QuantitySet
	for _, def := range d.definitions(id) {
		if def.Class != "IFCELEMENTQUANTITY" {
			continue
		}
		qs := ifc.QuantitySet{Name: text(def.Arg(2))}
		for _, qid := range def.Arg(5).Refs() {
			if q, ok := d.quantity(qid); ok {
				qs.Quantities = append(qs.Quantities, q)
			}
		}
		res = append(res, qs)
	}
	return res
}

var quantityKinds = map[string]ifc.QuantityKind{
	"IFCQUANTITYLENGTH": ifc.QuantityLength,
	"IFCQUANTITYAREA":   ifc.QuantityArea,
	"IFCQUANTITYVOLUME": ifc.QuantityVolume,
	"IFCQUANTITYCOUNT":  ifc.QuantityCount,
	"IFCQUANTITYWEIGHT": ifc.QuantityWeight,
	"IFCQUANTITYTIME":   ifc.QuantityTime,
}

func (d *document) quantity(id int) (ifc.Quantity, bool) {
	e, ok := d.file.Entity(id)
	if !ok {
		return ifc.Quantity{}, false
	}
	kind, ok := quantityKinds[e.Class]
	if !ok {
		return ifc.Quantity{}, false
	}
	val, ok := e.Arg(3).Number()
	if !ok {
		return ifc.Quantity{}, false
	}
	return ifc.Quantity{
		Name:    text(e.Arg(0)),
		Kind:    kind,
		Value:   val,
		Unit:    d.unitLabel(e.Arg(2)),
		Formula: text(e.Arg(4)),
	}, true
}

// scalar converts a property value into bool, int64, float64 or string.
func scalar(v iostep.Value) any {
	typeName := ""
	if v.Kind == iostep.KindTyped {
		typeName = v.Str
		v = v.Unwrap()
	}

	switch v.Kind {
	case iostep.KindInt:
		if typeName == "" || integerTypes[typeName] {
			return v.Int
		}
		return float64(v.Int)
	case iostep.KindReal:
		return v.Real
	case iostep.KindString:
		return v.Str
	case iostep.KindEnum:
		if b, ok := v.Bool(); ok {
			return b
		}
		if v.Str == "U" {
			return nil
		}
		return v.Str
	default:
		return nil
	}
}

func joinValues(v iostep.Value) any {
	if v.Kind != iostep.KindList {
		return scalar(v)
	}
	parts := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if s := scalar(item); s != nil {
			parts = append(parts, fmt.Sprint(s))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return strings.Join(parts, ", ")
}

func mergePropertySets(base, over []ifc.PropertySet) []ifc.PropertySet {
	if len(base) == 0 {
		return over
	}
	res := make([]ifc.PropertySet, 0, len(base)+len(over))
	pos := make(map[string]int)
	for _, ps := range base {
		pos[ps.Name] = len(res)
		res = append(res, ifc.PropertySet{
			Name:       ps.Name,
			Properties: append([]ifc.Property(nil), ps.Properties...),
		})
	}
	for _, ps := range over {
		i, ok := pos[ps.Name]
		if !ok {
			pos[ps.Name] = len(res)
			res = append(res, ps)
			continue
		}
		res[i].Properties = overrideProps(res[i].Properties, ps.Properties)
	}
	return res
}

func overrideProps(base, over []ifc.Property) []ifc.Property {
	idx := make(map[string]int, len(base))
	for i, p := range base {
		idx[p.Name] = i
	}
	for _, p := range over {
		if i, ok := idx[p.Name]; ok {
			base[i] = p
			continue
		}
		idx[p.Name] = len(base)
		base = append(base, p)
	}
	return base
}

func mergeQuantitySets(base, over []ifc.QuantitySet) []ifc.QuantitySet {
	if len(base) == 0 {
		return over
	}
	res := make([]ifc.QuantitySet, 0, len(base)+len(over))
	pos := make(map[string]int)
	for _, qs := range base {
		pos[qs.Name] = len(res)
		res = append(res, ifc.QuantitySet{
			Name:       qs.Name,
			Quantities: append([]ifc.Quantity(nil), qs.Quantities...),
		})
	}
	for _, qs := range over {
		i, ok := pos[qs.Name]
		if !ok {
			pos[qs.Name] = len(res)
			res = append(res, qs)
			continue
		}
		idx := make(map[string]int)
		for j, q := range res[i].Quantities {
			idx[q.Name] = j
		}
		for _, q := range qs.Quantities {
			if j, ok := idx[q.Name]; ok {
				res[i].Quantities[j] = q
				continue
			}
			idx[q.Name] = len(res[i].Quantities)
			res[i].Quantities = append(res[i].Quantities, q)
		}
	}
	return res
}
