package ioifc

import (
	"github.com/gnames/ifcdb/internal/iostep"
)

var siPrefixes = map[string]float64{
	"EXA":   1e18,
	"PETA":  1e15,
	"TERA":  1e12,
	"GIGA":  1e9,
	"MEGA":  1e6,
	"KILO":  1e3,
	"HECTO": 1e2,
	"DECA":  1e1,
	"DECI":  1e-1,
	"CENTI": 1e-2,
	"MILLI": 1e-3,
	"MICRO": 1e-6,
	"NANO":  1e-9,
	"PICO":  1e-12,
	"FEMTO": 1e-15,
	"ATTO":  1e-18,
}

// maxUnitDepth limits nesting of conversion based units.
const maxUnitDepth = 8

// unitScale finds the length unit of the project and returns its size
// in meters.
func (d *document) unitScale() float64 {
	ids := d.byClass["IFCPROJECT"]
	if len(ids) == 0 {
		return 1
	}
	prj, _ := d.file.Entity(ids[0])
	ua, ok := d.deref(prj.Arg(8))
	if !ok {
		return 1
	}
	for _, id := range ua.Arg(0).Refs() {
		if f, ok := d.lengthUnit(id, 0); ok {
			return f
		}
	}
	return 1
}

// lengthUnit returns the size of a length unit in meters.
func (d *document) lengthUnit(id, depth int) (float64, bool) {
	if depth > maxUnitDepth {
		return 0, false
	}
	e, ok := d.file.Entity(id)
	if !ok {
		return 0, false
	}

	switch e.Class {
	case "IFCSIUNIT":
		if e.Arg(1).Str != "LENGTHUNIT" || e.Arg(3).Str != "METRE" {
			return 0, false
		}
		return prefixFactor(e.Arg(2)), true
	case "IFCCONVERSIONBASEDUNIT":
		if e.Arg(1).Str != "LENGTHUNIT" {
			return 0, false
		}
		m, ok := d.deref(e.Arg(3))
		if !ok {
			return 0, false
		}
		val, ok := m.Arg(0).Number()
		if !ok {
			return 0, false
		}
		base := 1.0
		if u := m.Arg(1); u.Kind == iostep.KindRef {
			if f, ok := d.lengthUnit(u.Ref, depth+1); ok {
				base = f
			}
		}
		return val * base, true
	case "":
		return complexLengthUnit(e)
	}
	return 0, false
}

// complexLengthUnit reads units written as complex instances, such as
// (LENGTH_UNIT()NAMED_UNIT(*,.LENGTHUNIT.)SI_UNIT(.MILLI.,.METRE.)).
func complexLengthUnit(e *iostep.Entity) (float64, bool) {
	var isLength bool
	var si *iostep.Entity
	for i := range e.Parts {
		p := &e.Parts[i]
		switch p.Class {
		case "NAMED_UNIT":
			isLength = p.Arg(1).Str == "LENGTHUNIT"
		case "LENGTH_UNIT":
			isLength = true
		case "SI_UNIT":
			si = p
		}
	}
	if !isLength || si == nil || si.Arg(1).Str != "METRE" {
		return 0, false
	}
	return prefixFactor(si.Arg(0)), true
}

func prefixFactor(v iostep.Value) float64 {
	if v.Kind != iostep.KindEnum {
		return 1
	}
	if f, ok := siPrefixes[v.Str]; ok {
		return f
	}
	return 1
}

// unitLabel returns a readable name of a unit reference.
func (d *document) unitLabel(v iostep.Value) string {
	e, ok := d.deref(v)
	if !ok {
		return ""
	}
	switch e.Class {
	case "IFCSIUNIT":
		prefix := ""
		if p := e.Arg(2); p.Kind == iostep.KindEnum {
			prefix = p.Str
		}
		return prefix + e.Arg(3).Str
	case "IFCCONVERSIONBASEDUNIT":
		return text(e.Arg(2))
	case "IFCCONTEXTDEPENDENTUNIT":
		return text(e.Arg(2))
	case "IFCDERIVEDUNIT":
		return text(e.Arg(2))
	}
	return ""
}
