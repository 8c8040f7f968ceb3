package iotesting

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// IFC builds small STEP files for tests. Methods return instance numbers
// that can be passed to other methods.
//
// Usage:
//
//	b := iotesting.NewIFC("IFC4")
//	b.Project("Test", "MILLI")
//	st := b.Storey("st-1", "Level 1", 3000)
//	w := b.Element("IFCWALL", "w-1", "Wall", 0, 0, 0)
//	b.Contain(st, w)
//	path := b.WriteFile(t)
type IFC struct {
	schema string
	lines  []string
	next   int
	oh     int
	world  int
	prj    int
}

// NewIFC creates a builder for a schema such as IFC4 or IFC2X3.
func NewIFC(schema string) *IFC {
	b := &IFC{schema: schema, next: 1}
	b.world = b.Add("IFCLOCALPLACEMENT", "$", b.Ref(b.axis(0, 0, 0)))
	return b
}

// Str quotes a string value.
func Str(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Num formats a real value.
func Num(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

// Ref formats an instance reference.
func (b *IFC) Ref(id int) string {
	return "#" + strconv.Itoa(id)
}

// Refs formats a list of references.
func (b *IFC) Refs(ids ...int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = b.Ref(id)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Add appends an instance with raw parameters and returns its number.
func (b *IFC) Add(class string, args ...string) int {
	id := b.next
	b.next++
	b.lines = append(b.lines,
		fmt.Sprintf("#%d=%s(%s);", id, class, strings.Join(args, ",")))
	return id
}

// AddRaw appends an instance with a raw body, for example a complex
// instance written as (A()B()).
func (b *IFC) AddRaw(body string) int {
	id := b.next
	b.next++
	b.lines = append(b.lines, fmt.Sprintf("#%d=%s;", id, body))
	return id
}

func (b *IFC) axis(x, y, z float64) int {
	pt := b.Add("IFCCARTESIANPOINT", "("+Num(x)+","+Num(y)+","+Num(z)+")")
	return b.Add("IFCAXIS2PLACEMENT3D", b.Ref(pt), "$", "$")
}

// Placement creates a local placement relative to parent (0 means the
// world placement).
func (b *IFC) Placement(parent int, x, y, z float64) int {
	if parent == 0 {
		parent = b.world
	}
	return b.Add("IFCLOCALPLACEMENT", b.Ref(parent), b.Ref(b.axis(x, y, z)))
}

// Project creates an owner history, units and the project. The length
// unit is meter with the given SI prefix, an empty prefix means meters.
func (b *IFC) Project(name, prefix string) int {
	person := b.Add("IFCPERSON", "$", Str("Doe"), Str("Jane"), "$", "$", "$", "$", "$")
	org := b.Add("IFCORGANIZATION", "$", Str("ACME"), "$", "$", "$")
	po := b.Add("IFCPERSONANDORGANIZATION", b.Ref(person), b.Ref(org), "$")
	app := b.Add("IFCAPPLICATION", b.Ref(org), Str("1.0"), Str("Modeler"), Str("mod"))
	b.oh = b.Add("IFCOWNERHISTORY", b.Ref(po), b.Ref(app), "$", ".ADDED.", "$", "$", "$", "0")

	p := "$"
	if prefix != "" {
		p = "." + prefix + "."
	}
	length := b.Add("IFCSIUNIT", "*", ".LENGTHUNIT.", p, ".METRE.")
	area := b.Add("IFCSIUNIT", "*", ".AREAUNIT.", "$", ".SQUARE_METRE.")
	ua := b.Add("IFCUNITASSIGNMENT", b.Refs(length, area))
	return b.ProjectWithUnits(name, ua)
}

// ProjectWithUnits creates the project with a prepared unit assignment.
func (b *IFC) ProjectWithUnits(name string, unitAssignment int) int {
	n := "$"
	if name != "" {
		n = Str(name)
	}
	oh := "$"
	if b.oh != 0 {
		oh = b.Ref(b.oh)
	}
	b.prj = b.Add("IFCPROJECT", Str("prj-0001"), oh, n, Str("Test project"),
		"$", "$", "$", "$", b.Ref(unitAssignment))
	return b.prj
}

func (b *IFC) ownerHistory() string {
	if b.oh == 0 {
		return "$"
	}
	return b.Ref(b.oh)
}

// Storey creates a building storey with elevation in file units.
func (b *IFC) Storey(guid, name string, elevation float64) int {
	pl := b.Placement(0, 0, 0, elevation)
	st := b.Add("IFCBUILDINGSTOREY", Str(guid), b.ownerHistory(), Str(name),
		"$", "$", b.Ref(pl), "$", Str(name+" long"), ".ELEMENT.", Num(elevation))
	if b.prj != 0 {
		b.Add("IFCRELAGGREGATES", Str(guid+"-agg"), b.ownerHistory(), "$", "$",
			b.Ref(b.prj), b.Refs(st))
	}
	return st
}

// Element creates a product of the given class placed at x, y, z.
func (b *IFC) Element(class, guid, name string, x, y, z float64) int {
	pl := b.Placement(0, x, y, z)
	return b.Add(class, Str(guid), b.ownerHistory(), Str(name), "$", "$",
		b.Ref(pl), "$", Str(guid+"-tag"), "$")
}

// Space creates a space and aggregates it into a storey when storey is
// not 0.
func (b *IFC) Space(guid, name string, storey int) int {
	pl := b.Placement(0, 0, 0, 0)
	sp := b.Add("IFCSPACE", Str(guid), b.ownerHistory(), Str(name), "$", "$",
		b.Ref(pl), "$", Str(name+" long"), ".ELEMENT.", "$", "$")
	if storey != 0 {
		b.Add("IFCRELAGGREGATES", Str(guid+"-agg"), b.ownerHistory(), "$", "$",
			b.Ref(storey), b.Refs(sp))
	}
	return sp
}

// Type creates a type object.
func (b *IFC) Type(class, guid, name string, psets ...int) int {
	hp := "$"
	if len(psets) > 0 {
		hp = b.Refs(psets...)
	}
	return b.Add(class, Str(guid), b.ownerHistory(), Str(name), "$", "$",
		hp, "$", "$", "$", ".NOTDEFINED.")
}

// Contain puts elements into a spatial structure element.
func (b *IFC) Contain(structure int, elements ...int) {
	b.Add("IFCRELCONTAINEDINSPATIALSTRUCTURE", Str(fmt.Sprintf("cnt-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Refs(elements...), b.Ref(structure))
}

// Typed assigns a type to occurrences.
func (b *IFC) Typed(typ int, objects ...int) {
	b.Add("IFCRELDEFINESBYTYPE", Str(fmt.Sprintf("typ-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Refs(objects...), b.Ref(typ))
}

// Prop is a property of a property set. Value is a raw STEP parameter
// such as IFCBOOLEAN(.T.) or IFCLABEL('x').
type Prop struct {
	Name, Value string
}

// PropertySet creates a property set without assigning it.
func (b *IFC) PropertySet(name string, props ...Prop) int {
	ids := make([]int, len(props))
	for i, p := range props {
		ids[i] = b.Add("IFCPROPERTYSINGLEVALUE", Str(p.Name), "$", p.Value, "$")
	}
	return b.Add("IFCPROPERTYSET", Str(fmt.Sprintf("ps-%d", b.next)),
		b.ownerHistory(), Str(name), "$", b.Refs(ids...))
}

// Define attaches a property or quantity set to objects.
func (b *IFC) Define(set int, objects ...int) {
	b.Add("IFCRELDEFINESBYPROPERTIES", Str(fmt.Sprintf("def-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Refs(objects...), b.Ref(set))
}

// Qty is a quantity. Kind is LENGTH, AREA, VOLUME, COUNT, WEIGHT or TIME.
type Qty struct {
	Kind, Name string
	Value      float64
}

// QuantitySet creates an element quantity without assigning it.
func (b *IFC) QuantitySet(name string, qs ...Qty) int {
	ids := make([]int, len(qs))
	for i, q := range qs {
		ids[i] = b.Add("IFCQUANTITY"+q.Kind, Str(q.Name), "$", "$", Num(q.Value), "$")
	}
	return b.Add("IFCELEMENTQUANTITY", Str(fmt.Sprintf("qs-%d", b.next)),
		b.ownerHistory(), Str(name), "$", "$", b.Refs(ids...))
}

// Material creates IfcMaterial.
func (b *IFC) Material(name, category string) int {
	cat := "$"
	if category != "" {
		cat = Str(category)
	}
	return b.Add("IFCMATERIAL", Str(name), "$", cat)
}

// Layer is a material layer. Material 0 means no material.
type Layer struct {
	Material   int
	Thickness  float64
	Ventilated bool
}

// LayerSetUsage creates a layer set with its usage.
func (b *IFC) LayerSetUsage(layers ...Layer) int {
	ids := make([]int, len(layers))
	for i, l := range layers {
		m := "$"
		if l.Material != 0 {
			m = b.Ref(l.Material)
		}
		v := ".F."
		if l.Ventilated {
			v = ".T."
		}
		ids[i] = b.Add("IFCMATERIALLAYER", m, Num(l.Thickness), v, "$", "$", "$", "$")
	}
	set := b.Add("IFCMATERIALLAYERSET", b.Refs(ids...), Str("Set"), "$")
	return b.Add("IFCMATERIALLAYERSETUSAGE", b.Ref(set), ".AXIS2.", ".POSITIVE.", "0.", "$")
}

// Associate assigns a material select to objects.
func (b *IFC) Associate(material int, objects ...int) {
	b.Add("IFCRELASSOCIATESMATERIAL", Str(fmt.Sprintf("mat-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Refs(objects...), b.Ref(material))
}

// Boundary makes element a boundary of space.
func (b *IFC) Boundary(space, element int) {
	b.Add("IFCRELSPACEBOUNDARY", Str(fmt.Sprintf("bnd-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Ref(space), b.Ref(element), "$",
		".PHYSICAL.", ".INTERNAL.")
}

// Fill places filling (a door or a window) into an opening of host.
func (b *IFC) Fill(host, filling int) {
	op := b.Element("IFCOPENINGELEMENT", fmt.Sprintf("op-%d", b.next), "Opening", 0, 0, 0)
	b.Add("IFCRELVOIDSELEMENT", Str(fmt.Sprintf("void-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Ref(host), b.Ref(op))
	b.Add("IFCRELFILLSELEMENT", Str(fmt.Sprintf("fill-%d", b.next)),
		b.ownerHistory(), "$", "$", b.Ref(op), b.Ref(filling))
}

// Bytes renders the STEP file.
func (b *IFC) Bytes() []byte {
	var sb strings.Builder
	sb.WriteString("ISO-10303-21;\nHEADER;\n")
	sb.WriteString("FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\n")
	sb.WriteString("FILE_NAME('test.ifc','2025-01-01T00:00:00',(''),(''),'','','');\n")
	sb.WriteString("FILE_SCHEMA((" + Str(b.schema) + "));\nENDSEC;\nDATA;\n")
	for _, l := range b.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteString("ENDSEC;\nEND-ISO-10303-21;\n")
	return []byte(sb.String())
}

// WriteFile writes the STEP file into a temporary directory of the test
// and returns its path.
func (b *IFC) WriteFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.ifc")
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write IFC file: %v", err)
	}
	return path
}
