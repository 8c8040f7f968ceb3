// Package ioifc implements ifc.Document on top of a parsed STEP file.
// Only the classes and attributes needed for the import are interpreted.
package ioifc

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/gnames/ifcdb/internal/iostep"
	"github.com/gnames/ifcdb/pkg/ifc"
)

type document struct {
	path   string
	file   *iostep.File
	schema string
	scale  float64

	byClass map[string][]int

	// inverse relations
	definedBy  map[int][]int
	typeOf     map[int]int
	material   map[int]int
	container  map[int]int
	parent     map[int]int
	boundaries map[int][]int
	openingOf  map[int]int
	hostOf     map[int]int

	placements map[int]placement
}

// Open reads and indexes an IFC file.
func Open(path string) (ifc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, FileNotFoundError(path, err)
		}
		return nil, ParseError(path, err)
	}
	defer f.Close()

	sf, err := iostep.Parse(bufio.NewReader(f))
	if err != nil {
		return nil, ParseError(path, err)
	}
	return New(path, sf), nil
}

// Schema reads only the header of a file and returns its normalized
// schema tag, empty if the header names none.
func Schema(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", FileNotFoundError(path, err)
		}
		return "", ParseError(path, err)
	}
	defer f.Close()

	sf, err := iostep.ReadHeader(f)
	if err != nil {
		return "", ParseError(path, err)
	}
	if len(sf.Schemas) == 0 {
		return "", nil
	}
	return normalizeSchema(sf.Schemas[0]), nil
}

// Parse reads IFC content held in memory. The path is used in error
// messages only.
func Parse(path string, src []byte) (ifc.Document, error) {
	sf, err := iostep.ParseBytes(src)
	if err != nil {
		return nil, ParseError(path, err)
	}
	return New(path, sf), nil
}

// New creates a Document from a parsed STEP file.
func New(path string, sf *iostep.File) ifc.Document {
	d := &document{
		path:       path,
		file:       sf,
		byClass:    make(map[string][]int),
		definedBy:  make(map[int][]int),
		typeOf:     make(map[int]int),
		material:   make(map[int]int),
		container:  make(map[int]int),
		parent:     make(map[int]int),
		boundaries: make(map[int][]int),
		openingOf:  make(map[int]int),
		hostOf:     make(map[int]int),
		placements: make(map[int]placement),
	}
	if len(sf.Schemas) > 0 {
		d.schema = normalizeSchema(sf.Schemas[0])
	}
	d.index()
	d.scale = d.unitScale()
	return d
}

// normalizeSchema drops amendment suffixes: IFC4X3_ADD2 becomes IFC4X3.
func normalizeSchema(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if i := strings.IndexByte(s, '_'); i > 0 {
		s = s[:i]
	}
	return s
}

func (d *document) index() {
	d.file.Each(func(e *iostep.Entity) {
		if e.Class == "" {
			return
		}
		d.byClass[e.Class] = append(d.byClass[e.Class], e.ID)

		switch e.Class {
		case "IFCRELDEFINESBYPROPERTIES":
			def := e.Arg(5).Refs()
			for _, id := range e.Arg(4).Refs() {
				d.definedBy[id] = append(d.definedBy[id], def...)
			}
		case "IFCRELDEFINESBYTYPE":
			if t := e.Arg(5); t.Kind == iostep.KindRef {
				for _, id := range e.Arg(4).Refs() {
					d.typeOf[id] = t.Ref
				}
			}
		case "IFCRELASSOCIATESMATERIAL":
			if m := e.Arg(5); m.Kind == iostep.KindRef {
				for _, id := range e.Arg(4).Refs() {
					d.material[id] = m.Ref
				}
			}
		case "IFCRELCONTAINEDINSPATIALSTRUCTURE":
			if s := e.Arg(5); s.Kind == iostep.KindRef {
				for _, id := range e.Arg(4).Refs() {
					d.container[id] = s.Ref
				}
			}
		case "IFCRELAGGREGATES":
			if p := e.Arg(4); p.Kind == iostep.KindRef {
				for _, id := range e.Arg(5).Refs() {
					d.parent[id] = p.Ref
				}
			}
		case "IFCRELSPACEBOUNDARY", "IFCRELSPACEBOUNDARY1STLEVEL",
			"IFCRELSPACEBOUNDARY2NDLEVEL":
			if s := e.Arg(4); s.Kind == iostep.KindRef {
				d.boundaries[s.Ref] = append(d.boundaries[s.Ref], e.ID)
			}
		case "IFCRELFILLSELEMENT":
			o, f := e.Arg(4), e.Arg(5)
			if o.Kind == iostep.KindRef && f.Kind == iostep.KindRef {
				d.openingOf[f.Ref] = o.Ref
			}
		case "IFCRELVOIDSELEMENT":
			h, o := e.Arg(4), e.Arg(5)
			if h.Kind == iostep.KindRef && o.Kind == iostep.KindRef {
				d.hostOf[o.Ref] = h.Ref
			}
		}
	})
}

func (d *document) Schema() string {
	return d.schema
}

func (d *document) UnitScale() float64 {
	return d.scale
}

func (d *document) Project() (ifc.Entity, error) {
	ids := d.byClass["IFCPROJECT"]
	if len(ids) == 0 {
		return ifc.Entity{}, NoProjectError(d.path)
	}
	return d.entity(ids[0])
}

func (d *document) ByType(class string) ([]ifc.Entity, error) {
	if !defined(d.schema, class) {
		return nil, ifc.ErrUnknownClass
	}
	var ids []int
	for _, c := range descendants(class) {
		ids = append(ids, d.byClass[c]...)
	}
	slices.Sort(ids)

	res := make([]ifc.Entity, 0, len(ids))
	for _, id := range ids {
		e, err := d.entity(id)
		if err != nil {
			continue
		}
		res = append(res, e)
	}
	return res, nil
}

func (d *document) Container(e ifc.Entity) (ifc.Entity, bool) {
	id, ok := d.container[e.ID]
	if !ok {
		id, ok = d.parent[e.ID]
	}
	if !ok {
		return ifc.Entity{}, false
	}
	return d.ref(id)
}

func (d *document) Type(e ifc.Entity) (ifc.Entity, bool) {
	id, ok := d.typeOf[e.ID]
	if !ok {
		return ifc.Entity{}, false
	}
	return d.ref(id)
}

func (d *document) FilledHost(e ifc.Entity) (ifc.Entity, bool) {
	opening, ok := d.openingOf[e.ID]
	if !ok {
		return ifc.Entity{}, false
	}
	host, ok := d.hostOf[opening]
	if !ok {
		return ifc.Entity{}, false
	}
	return d.ref(host)
}

func (d *document) Boundaries(space ifc.Entity) []ifc.Boundary {
	var res []ifc.Boundary
	for _, id := range d.boundaries[space.ID] {
		rel, ok := d.file.Entity(id)
		if !ok {
			continue
		}
		el := rel.Arg(5)
		if el.Kind != iostep.KindRef {
			continue
		}
		ent, ok := d.ref(el.Ref)
		if !ok {
			continue
		}
		res = append(res, ifc.Boundary{
			Element:            ent,
			PhysicalOrVirtual:  rel.Arg(7).Str,
			InternalOrExternal: rel.Arg(8).Str,
		})
	}
	return res
}

func (d *document) Authoring() ifc.Authoring {
	var res ifc.Authoring
	oh, ok := d.ownerHistory()
	if !ok {
		return res
	}

	if po, ok := d.deref(oh.Arg(0)); ok {
		if p, ok := d.deref(po.Arg(0)); ok {
			res.Author = join(text(p.Arg(2)), text(p.Arg(1)))
		}
		if o, ok := d.deref(po.Arg(1)); ok {
			res.Organization = text(o.Arg(1))
		}
	}
	if app, ok := d.deref(oh.Arg(1)); ok {
		res.Application = join(text(app.Arg(2)), text(app.Arg(1)))
	}
	return res
}

func (d *document) ownerHistory() (*iostep.Entity, bool) {
	ids := d.byClass["IFCOWNERHISTORY"]
	if len(ids) == 0 {
		return nil, false
	}
	return d.file.Entity(ids[0])
}

var spatial = map[string]bool{
	"IFCSITE":           true,
	"IFCBUILDING":       true,
	"IFCBUILDINGSTOREY": true,
	"IFCSPACE":          true,
}

// entity converts a rooted instance into ifc.Entity.
func (d *document) entity(id int) (ifc.Entity, error) {
	e, ok := d.file.Entity(id)
	if !ok || e.Class == "" {
		return ifc.Entity{}, ifc.ErrUnknownClass
	}
	res := ifc.Entity{
		ID:          id,
		Class:       className(e.Class),
		GlobalID:    text(e.Arg(0)),
		Name:        text(e.Arg(2)),
		Description: text(e.Arg(3)),
	}
	switch {
	case isType(e.Class):
		return res, nil
	case spatial[e.Class]:
		res.ObjectType = text(e.Arg(4))
		res.LongName = text(e.Arg(7))
		if e.Class == "IFCBUILDINGSTOREY" {
			if v, ok := e.Arg(9).Number(); ok {
				res.Elevation = &v
			}
		}
	case e.Class == "IFCPROJECT":
		res.ObjectType = text(e.Arg(4))
		res.LongName = text(e.Arg(5))
	default:
		res.ObjectType = text(e.Arg(4))
		res.Tag = text(e.Arg(7))
	}
	return res, nil
}

func (d *document) ref(id int) (ifc.Entity, bool) {
	e, err := d.entity(id)
	return e, err == nil
}

func (d *document) deref(v iostep.Value) (*iostep.Entity, bool) {
	if v.Kind != iostep.KindRef {
		return nil, false
	}
	return d.file.Entity(v.Ref)
}

func isType(class string) bool {
	return strings.HasSuffix(class, "TYPE") || strings.HasSuffix(class, "STYLE")
}

func text(v iostep.Value) string {
	s, _ := v.Text()
	return s
}

func join(a, b string) string {
	return strings.TrimSpace(a + " " + b)
}
