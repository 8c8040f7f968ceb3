package ioextract

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
)

// UnsupportedSchemaError creates an error for files declaring a schema
// the importer does not know.
func UnsupportedSchemaError(path, schema string) error {
	msg := `Unsupported IFC schema

<em>Path:</em> %s
<em>Schema:</em> %s
<em>Supported:</em> %s`

	supported := strings.Join(Schemas, ", ")
	return &gn.Error{
		Code: errcode.IfcUnsupportedSchemaError,
		Msg:  msg,
		Vars: []any{path, schema, supported},
		Err:  fmt.Errorf("unsupported schema %q in %s", schema, path),
	}
}

// ReadFileError creates an error for a file that cannot be hashed.
func ReadFileError(path string, err error) error {
	msg := "Cannot read file <em>%s</em>"

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}
