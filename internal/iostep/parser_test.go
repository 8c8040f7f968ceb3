package iostep_test

import (
	"strings"
	"testing"

	"github.com/gnames/ifcdb/internal/iostep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('house.ifc','2024-05-01T10:00:00',('Architect'),('Office'),'lib','app','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
/* a comment */
#1=IFCPROJECT('0YvctVUKr0kugbFTf53O9L',$,'Caf\X2\00E9\X0\ ''Central''',$,$,$,$,(#2),#3);
#2=IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.E-05,#4,$);
#3=IFCUNITASSIGNMENT((#5,#6));
#4=IFCAXIS2PLACEMENT3D(#7,*,$);
#5=IFCSIUNIT(*,.LENGTHUNIT.,.MILLI.,.METRE.);
#6=(NAMED_UNIT(*,.PLANEANGLEUNIT.)SI_UNIT($,.RADIAN.));
#7=IFCCARTESIANPOINT((0.,-1.5,2.5E2));
#8=IFCPROPERTYSINGLEVALUE('IsExternal',$,IFCBOOLEAN(.T.),$);
#9=IFCPIXELTEXTURE($,$,$,$,$,1,1,1,("0FF"));
ENDSEC;
END-ISO-10303-21;
`

func TestParseHeader(t *testing.T) {
	assert := assert.New(t)
	f, err := iostep.Parse(strings.NewReader(sample))
	require.Nil(t, err)

	assert.Equal([]string{"IFC4"}, f.Schemas)
	assert.Equal("house.ifc", f.Name)
	assert.Equal([]string{"ViewDefinition [CoordinationView]"}, f.Description)
	assert.Equal(9, f.Len())
}

func TestReadHeader(t *testing.T) {
	assert := assert.New(t)
	f, err := iostep.ReadHeader(strings.NewReader(sample))
	require.Nil(t, err)
	assert.Equal([]string{"IFC4"}, f.Schemas)
	assert.Equal("house.ifc", f.Name)
	assert.Equal(0, f.Len())

	// instances after the header are not parsed
	broken := strings.Replace(sample, "#9=IFCPIXELTEXTURE(", "#9=IFCPIXEL((", 1)
	_, err = iostep.Parse(strings.NewReader(broken))
	require.NotNil(t, err)
	f, err = iostep.ReadHeader(strings.NewReader(broken))
	require.Nil(t, err)
	assert.Equal([]string{"IFC4"}, f.Schemas)

	// header longer than one read
	long := strings.Replace(sample, "ViewDefinition [CoordinationView]",
		strings.Repeat("x", 200_000), 1)
	f, err = iostep.ReadHeader(strings.NewReader(long))
	require.Nil(t, err)
	assert.Equal([]string{"IFC4"}, f.Schemas)
	assert.Len(f.Description[0], 200_000)

	_, err = iostep.ReadHeader(strings.NewReader("ISO-10303-21;\nHEADER;\nFILE_SCHEMA(("))
	assert.NotNil(err)
}

func TestParseValues(t *testing.T) {
	assert := assert.New(t)
	f, err := iostep.ParseBytes([]byte(sample))
	require.Nil(t, err)

	prj, ok := f.Entity(1)
	require.True(t, ok)
	assert.Equal("IFCPROJECT", prj.Class)
	name, ok := prj.Arg(2).Text()
	assert.True(ok)
	assert.Equal("Café 'Central'", name)
	assert.True(prj.Arg(1).IsNull())
	assert.Equal([]int{2}, prj.Arg(7).Refs())
	assert.Equal([]int{3}, prj.Arg(8).Refs())
	assert.True(prj.Arg(42).IsNull())

	ua, _ := f.Entity(3)
	assert.Equal([]int{5, 6}, ua.Arg(0).Refs())

	pl, _ := f.Entity(4)
	assert.Equal(iostep.KindDerived, pl.Arg(1).Kind)
	assert.True(pl.Arg(1).IsNull())

	unit, _ := f.Entity(5)
	assert.Equal(iostep.KindEnum, unit.Arg(2).Kind)
	assert.Equal("MILLI", unit.Arg(2).Str)

	pt, _ := f.Entity(7)
	coords := pt.Arg(0).List
	require.Len(t, coords, 3)
	x, _ := coords[0].Number()
	y, _ := coords[1].Number()
	z, _ := coords[2].Number()
	assert.Equal(0.0, x)
	assert.Equal(-1.5, y)
	assert.Equal(250.0, z)

	ctx, _ := f.Entity(2)
	dim, ok := ctx.Arg(2).Number()
	assert.True(ok)
	assert.Equal(3.0, dim)
	assert.Equal(iostep.KindInt, ctx.Arg(2).Kind)

	prop, _ := f.Entity(8)
	v := prop.Arg(2)
	assert.Equal(iostep.KindTyped, v.Kind)
	assert.Equal("IFCBOOLEAN", v.Str)
	b, ok := v.Bool()
	assert.True(ok)
	assert.True(b)

	tex, _ := f.Entity(9)
	assert.Equal(iostep.KindBinary, tex.Arg(8).List[0].Kind)
	assert.Equal("0FF", tex.Arg(8).List[0].Str)
}

func TestParseComplex(t *testing.T) {
	assert := assert.New(t)
	f, err := iostep.ParseBytes([]byte(sample))
	require.Nil(t, err)

	e, ok := f.Entity(6)
	require.True(t, ok)
	assert.Empty(e.Class)
	require.Len(t, e.Parts, 2)
	assert.Equal("NAMED_UNIT", e.Parts[0].Class)
	assert.Equal("SI_UNIT", e.Parts[1].Class)
	assert.Equal("RADIAN", e.Parts[1].Arg(1).Str)
}

func TestEachOrder(t *testing.T) {
	f, err := iostep.ParseBytes([]byte(sample))
	require.Nil(t, err)

	var ids []int
	f.Each(func(e *iostep.Entity) {
		ids = append(ids, e.ID)
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids)
}

func TestDecodeStrings(t *testing.T) {
	tests := []struct {
		msg, raw, want string
	}{
		{"plain", `'Wall'`, "Wall"},
		{"backslash", `'a\\b'`, `a\b`},
		{"latin", `'Stra\S\_e'`, "Straße"},
		{"hex byte", `'\X\E4'`, "ä"},
		{"utf16", `'\X2\00C400D6\X0\'`, "ÄÖ"},
		{"utf32", `'\X4\0001F600\X0\'`, "😀"},
		{"code page", `'\PA\x'`, "x"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			src := "ISO-10303-21;HEADER;ENDSEC;DATA;#1=IFCLABEL(" +
				v.raw + ");ENDSEC;END-ISO-10303-21;"
			f, err := iostep.ParseBytes([]byte(src))
			require.Nil(t, err)
			e, _ := f.Entity(1)
			s, ok := e.Arg(0).Text()
			assert.True(t, ok)
			assert.Equal(t, v.want, s)
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		msg, src string
		line     int
	}{
		{"no magic", "HEADER;ENDSEC;", 1},
		{"unterminated string", "ISO-10303-21;\nDATA;\n#1=A('x);", 3},
		{"missing semicolon", "ISO-10303-21;\nDATA;\n#1=A()\n#2=B();", 4},
		{"duplicate id", "ISO-10303-21;\nDATA;\n#1=A();\n#1=B();\nENDSEC;", 4},
		{"bad token", "ISO-10303-21;\nDATA;\n#1=A(@);", 3},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := iostep.ParseBytes([]byte(v.src))
			require.NotNil(t, err)
			var se *iostep.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, v.line, se.Line)
		})
	}
}
