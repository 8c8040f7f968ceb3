// Package iostep reads ISO-10303-21 (STEP physical file) content into an
// in-memory entity graph. It knows nothing about IFC classes, only about
// the exchange structure syntax.
package iostep

// Kind is the kind of a parameter value.
type Kind int

const (
	// KindNull is an unset value ($).
	KindNull Kind = iota
	// KindDerived is a value derived by a supertype (*).
	KindDerived
	KindInt
	KindReal
	KindString
	// KindEnum is an enumeration or logical value such as .T. or .METRE.
	KindEnum
	// KindRef is a reference to another entity instance (#12).
	KindRef
	KindList
	// KindTyped is a value wrapped into a defined type, e.g. IFCLABEL('x').
	KindTyped
	KindBinary
)

// Value is one parameter of an entity instance.
type Value struct {
	Kind Kind

	Int  int64
	Real float64
	Ref  int

	// Str keeps strings, enumeration names (without dots), binaries and
	// names of defined types.
	Str string

	// List keeps items of lists. Typed values keep their single wrapped
	// parameter here.
	List []Value
}

// IsNull is true for unset and derived values.
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == KindDerived
}

// Unwrap returns the wrapped parameter of a typed value, or the value
// itself.
func (v Value) Unwrap() Value {
	if v.Kind == KindTyped && len(v.List) > 0 {
		return v.List[0]
	}
	return v
}

// Number returns a numeric value as float64.
func (v Value) Number() (float64, bool) {
	v = v.Unwrap()
	switch v.Kind {
	case KindReal:
		return v.Real, true
	case KindInt:
		return float64(v.Int), true
	default:
		return 0, false
	}
}

// Text returns the content of a string value.
func (v Value) Text() (string, bool) {
	v = v.Unwrap()
	if v.Kind == KindString {
		return v.Str, true
	}
	return "", false
}

// Bool returns the content of a .T./.F. enumeration.
// The unknown logical .U. is not a bool.
func (v Value) Bool() (bool, bool) {
	v = v.Unwrap()
	if v.Kind != KindEnum {
		return false, false
	}
	switch v.Str {
	case "T":
		return true, true
	case "F":
		return false, true
	default:
		return false, false
	}
}

// Refs returns the references kept in a list value, or a single reference.
func (v Value) Refs() []int {
	switch v.Kind {
	case KindRef:
		return []int{v.Ref}
	case KindList:
		res := make([]int, 0, len(v.List))
		for _, item := range v.List {
			if item.Kind == KindRef {
				res = append(res, item.Ref)
			}
		}
		return res
	default:
		return nil
	}
}

// Entity is an instance from the DATA section.
type Entity struct {
	ID int

	// Class is the upper-case entity name as written in the file.
	Class string
	Args  []Value

	// Parts keeps the partial entities of a complex instance
	// (#1=(A()B());). Class and Args of such instance are empty.
	Parts []Entity
}

// Arg returns the parameter at index i, or a null value when the entity
// has fewer parameters.
func (e *Entity) Arg(i int) Value {
	if i < 0 || i >= len(e.Args) {
		return Value{Kind: KindNull}
	}
	return e.Args[i]
}

// File is the parsed content of an exchange structure.
type File struct {
	// Schemas are the names listed in FILE_SCHEMA of the header.
	Schemas []string

	// Name and Description come from FILE_NAME and FILE_DESCRIPTION.
	Name        string
	Description []string

	entities map[int]*Entity
	order    []int
}

// Entity returns an instance by its id.
func (f *File) Entity(id int) (*Entity, bool) {
	e, ok := f.entities[id]
	return e, ok
}

// Len returns the number of instances.
func (f *File) Len() int {
	return len(f.order)
}

// Each iterates over instances in the order they appear in the file.
func (f *File) Each(fn func(*Entity)) {
	for _, id := range f.order {
		fn(f.entities[id])
	}
}
