package ioimport

import (
	"fmt"

	"github.com/google/uuid"
)

// kind is a kind of cross-reference.
type kind int

const (
	kindStorey kind = iota
	kindType
	kindElement
	kindBoundary
	kindMaterial
	kindPset
	kindOpening
)

var kindNames = map[kind]string{
	kindStorey:   "storey",
	kindType:     "type",
	kindElement:  "element",
	kindBoundary: "boundary element",
	kindMaterial: "material",
	kindPset:     "property set",
	kindOpening:  "opening host",
}

// resolver maps source identifiers to keys assigned during one import.
// Misses do not fail, they are counted and reported as warnings.
type resolver struct {
	keys   map[kind]map[string]uuid.UUID
	misses map[kind]int
}

func newResolver() *resolver {
	return &resolver{
		keys:   make(map[kind]map[string]uuid.UUID),
		misses: make(map[kind]int),
	}
}

func (r *resolver) register(k kind, src string, id uuid.UUID) {
	m, ok := r.keys[k]
	if !ok {
		m = make(map[string]uuid.UUID)
		r.keys[k] = m
	}
	m[src] = id
}

func (r *resolver) has(k kind, src string) bool {
	_, ok := r.keys[k][src]
	return ok
}

// table returns the kind whose keys answer lookups of k. Boundaries and
// openings point to elements.
func (k kind) table() kind {
	switch k {
	case kindBoundary, kindOpening:
		return kindElement
	default:
		return k
	}
}

// lookup returns the key of a source identifier. An empty identifier is
// not a reference and is not counted as a miss.
func (r *resolver) lookup(k kind, src string) (uuid.UUID, bool) {
	if src == "" {
		return uuid.Nil, false
	}
	id, ok := r.keys[k.table()][src]
	if !ok {
		r.misses[k]++
	}
	return id, ok
}

// ref is lookup for nullable foreign keys.
func (r *resolver) ref(k kind, src string) *uuid.UUID {
	if id, ok := r.lookup(k, src); ok {
		return &id
	}
	return nil
}

// warnings returns one message per kind of unresolved references.
func (r *resolver) warnings() []string {
	var res []string
	for k := kindStorey; k <= kindOpening; k++ {
		if n := r.misses[k]; n > 0 {
			res = append(res,
				fmt.Sprintf("%d unresolved %s references left empty", n, kindNames[k]))
		}
	}
	return res
}
