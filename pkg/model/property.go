package model

import (
	"strconv"
	"strings"
)

// DataType is the declared type of a property value.
type DataType string

const (
	TypeBoolean DataType = "boolean"
	TypeInteger DataType = "integer"
	TypeReal    DataType = "real"
	TypeString  DataType = "string"
)

// UnnamedSet replaces an empty property or quantity set name.
const UnnamedSet = "Unknown"

// Property is a single value of a property set.
type Property struct {
	PsetName string
	Name     string

	// Value is nil, bool, int64, float64 or string.
	Value    any
	DataType DataType
	Unit     string
}

// NewProperty creates a Property and derives its DataType from the value.
func NewProperty(pset, name string, val any, unit string) Property {
	return Property{
		PsetName: setName(pset),
		Name:     name,
		Value:    val,
		DataType: DataTypeOf(val),
		Unit:     unit,
	}
}

// Set returns the name of the property set, UnnamedSet if it is empty.
func (p Property) Set() string {
	return setName(p.PsetName)
}

func setName(s string) string {
	if s == "" {
		return UnnamedSet
	}
	return s
}

// DataTypeOf returns the DataType for a property value.
func DataTypeOf(val any) DataType {
	switch val.(type) {
	case bool:
		return TypeBoolean
	case int, int64:
		return TypeInteger
	case float64:
		return TypeReal
	default:
		return TypeString
	}
}

// Text returns the value as stored in the database, nil for empty values.
func (p Property) Text() *string {
	var res string
	switch v := p.Value.(type) {
	case nil:
		return nil
	case string:
		res = v
	case bool:
		res = strconv.FormatBool(v)
	case int:
		res = strconv.Itoa(v)
	case int64:
		res = strconv.FormatInt(v, 10)
	case float64:
		res = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return nil
	}
	return &res
}

// String returns the value as text, or an empty string.
func (p Property) String() string {
	if s := p.Text(); s != nil {
		return *s
	}
	return ""
}

// Bool interprets the value as a flag. Strings "true", "yes", "1" and
// ".t." are true, any other string is false. Values that are neither
// booleans nor strings give nil.
func (p Property) Bool() *bool {
	var res bool
	switch v := p.Value.(type) {
	case bool:
		res = v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", ".t.":
			res = true
		}
	default:
		return nil
	}
	return &res
}

// Float interprets the value as a number.
func (p Property) Float() *float64 {
	var res float64
	switch v := p.Value.(type) {
	case float64:
		res = v
	case int64:
		res = float64(v)
	case int:
		res = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		res = f
	default:
		return nil
	}
	return &res
}
