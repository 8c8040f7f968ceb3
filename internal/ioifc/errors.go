package ioifc

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/internal/iostep"
	"github.com/gnames/ifcdb/pkg/errcode"
)

// FileNotFoundError creates an error for a missing model file.
func FileNotFoundError(path string, err error) error {
	msg := `IFC file not found

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.IfcFileNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open %s: %w", path, err),
	}
}

// ParseError creates an error for a file that cannot be read as a STEP
// exchange structure.
func ParseError(path string, err error) error {
	line := 0
	var se *iostep.SyntaxError
	if errors.As(err, &se) {
		line = se.Line
	}

	msg := `Cannot parse IFC file

<em>Path:</em> %s
<em>Line:</em> %d

<em>Possible causes:</em>
  - the file is truncated or corrupt
  - the file is not an ISO-10303-21 (STEP) file`

	return &gn.Error{
		Code: errcode.IfcParseError,
		Msg:  msg,
		Vars: []any{path, line},
		Err:  fmt.Errorf("parse %s: %w", path, err),
	}
}

// NoProjectError creates an error for a file without IfcProject.
func NoProjectError(path string) error {
	msg := "IFC file <em>%s</em> does not contain IfcProject"

	return &gn.Error{
		Code: errcode.IfcNoProjectError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("no IfcProject in %s", path),
	}
}
