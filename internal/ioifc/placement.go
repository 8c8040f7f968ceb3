package ioifc

import (
	"math"

	"github.com/gnames/ifcdb/internal/iostep"
	"github.com/gnames/ifcdb/pkg/ifc"
)

// placement is an affine transform: a rotation given by its columns and
// a translation.
type placement struct {
	x, y, z [3]float64
	origin  [3]float64
}

var identity = placement{
	x: [3]float64{1, 0, 0},
	y: [3]float64{0, 1, 0},
	z: [3]float64{0, 0, 1},
}

// maxPlacementDepth guards against cyclic placement chains.
const maxPlacementDepth = 64

func (d *document) Placement(e ifc.Entity) ([3]float64, bool) {
	ent, ok := d.file.Entity(e.ID)
	if !ok {
		return [3]float64{}, false
	}
	v := ent.Arg(5)
	if v.Kind != iostep.KindRef {
		return [3]float64{}, false
	}
	p, ok := d.localPlacement(v.Ref, 0)
	if !ok {
		return [3]float64{}, false
	}
	return p.origin, true
}

func (d *document) localPlacement(id, depth int) (placement, bool) {
	if p, ok := d.placements[id]; ok {
		return p, true
	}
	if depth > maxPlacementDepth {
		return placement{}, false
	}
	e, ok := d.file.Entity(id)
	if !ok || e.Class != "IFCLOCALPLACEMENT" {
		return placement{}, false
	}

	res := d.axisPlacement(e.Arg(1))
	if rel := e.Arg(0); rel.Kind == iostep.KindRef {
		parent, ok := d.localPlacement(rel.Ref, depth+1)
		if !ok {
			return placement{}, false
		}
		res = parent.compose(res)
	}
	d.placements[id] = res
	return res, true
}

// axisPlacement reads IfcAxis2Placement3D or IfcAxis2Placement2D.
func (d *document) axisPlacement(v iostep.Value) placement {
	e, ok := d.deref(v)
	if !ok {
		return identity
	}
	res := identity
	res.origin = d.point(e.Arg(0))

	var axis, ref iostep.Value
	switch e.Class {
	case "IFCAXIS2PLACEMENT3D":
		axis, ref = e.Arg(1), e.Arg(2)
	case "IFCAXIS2PLACEMENT2D":
		ref = e.Arg(1)
	default:
		return res
	}

	z := [3]float64{0, 0, 1}
	if dir, ok := d.direction(axis); ok {
		z = dir
	}
	x := [3]float64{1, 0, 0}
	if dir, ok := d.direction(ref); ok {
		x = dir
	}
	// x is projected to the plane orthogonal to z
	x = sub(x, scale(z, dot(x, z)))
	if n, ok := normalize(x); ok {
		x = n
	} else {
		x = [3]float64{1, 0, 0}
	}
	res.x, res.z = x, z
	res.y = cross(z, x)
	return res
}

func (d *document) point(v iostep.Value) [3]float64 {
	var res [3]float64
	e, ok := d.deref(v)
	if !ok || e.Class != "IFCCARTESIANPOINT" {
		return res
	}
	for i, c := range e.Arg(0).List {
		if i > 2 {
			break
		}
		res[i], _ = c.Number()
	}
	return res
}

func (d *document) direction(v iostep.Value) ([3]float64, bool) {
	var res [3]float64
	e, ok := d.deref(v)
	if !ok || e.Class != "IFCDIRECTION" {
		return res, false
	}
	for i, c := range e.Arg(0).List {
		if i > 2 {
			break
		}
		res[i], _ = c.Number()
	}
	return normalize(res)
}

// compose returns the transform of a child placement relative to p.
func (p placement) compose(c placement) placement {
	return placement{
		x:      p.rotate(c.x),
		y:      p.rotate(c.y),
		z:      p.rotate(c.z),
		origin: add(p.rotate(c.origin), p.origin),
	}
}

func (p placement) rotate(v [3]float64) [3]float64 {
	return add(add(scale(p.x, v[0]), scale(p.y, v[1])), scale(p.z, v[2]))
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale(a [3]float64, f float64) [3]float64 {
	return [3]float64{a[0] * f, a[1] * f, a[2] * f}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(a [3]float64) ([3]float64, bool) {
	n := math.Sqrt(dot(a, a))
	if n < 1e-12 {
		return a, false
	}
	return scale(a, 1/n), true
}
