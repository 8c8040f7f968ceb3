package ioimport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gnames/ifcdb/pkg/model"
	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

// rows keeps everything written by a transaction.
type rows struct {
	projects   []schema.Project
	storeys    []schema.Storey
	types      []schema.ElementType
	materials  []schema.Material
	psets      []schema.PropertySetDefinition
	typeProps  []schema.TypeProperty
	elements   []schema.BuildingElement
	elemProps  []schema.ElementProperty
	quantities []schema.ElementQuantity
	layers     []schema.ElementMaterial
	openings   []schema.ElementOpening
	spaces     []schema.Space
	boundaries []schema.SpaceBoundary

	deleted map[uuid.UUID]time.Time
}

func (r *rows) merge(o *rows) {
	r.projects = append(r.projects, o.projects...)
	r.storeys = append(r.storeys, o.storeys...)
	r.types = append(r.types, o.types...)
	r.materials = append(r.materials, o.materials...)
	r.psets = append(r.psets, o.psets...)
	r.typeProps = append(r.typeProps, o.typeProps...)
	r.elements = append(r.elements, o.elements...)
	r.elemProps = append(r.elemProps, o.elemProps...)
	r.quantities = append(r.quantities, o.quantities...)
	r.layers = append(r.layers, o.layers...)
	r.openings = append(r.openings, o.openings...)
	r.spaces = append(r.spaces, o.spaces...)
	r.boundaries = append(r.boundaries, o.boundaries...)
	if r.deleted == nil {
		r.deleted = make(map[uuid.UUID]time.Time)
	}
	for k, v := range o.deleted {
		r.deleted[k] = v
	}
}

// fakeStore is an in-memory store.Store.
type fakeStore struct {
	mu        sync.Mutex
	committed rows

	// failOn makes the named insert fail.
	failOn string
	// elementCalls counts InsertElements calls.
	elementCalls int
	// onElements runs before every InsertElements call.
	onElements func()
	// beginErr is returned by Begin.
	beginErr error
	// hashConflict makes InsertProject report a duplicate hash.
	hashConflict bool
	rolledBack   bool
}

func (s *fakeStore) Begin(context.Context) (store.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &fakeTx{s: s}, nil
}

func (s *fakeStore) FindByHash(_ context.Context, hash string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.findByHash(hash)
}

func (r *rows) findByHash(hash string) (uuid.UUID, bool, error) {
	for _, p := range r.projects {
		if _, ok := r.deleted[p.ID]; ok {
			continue
		}
		if p.OriginalFileHash == hash {
			return p.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *fakeStore) List(context.Context, bool) ([]model.ProjectInfo, error) {
	return nil, nil
}

func (s *fakeStore) Get(context.Context, uuid.UUID) (*model.ProjectInfo, error) {
	return nil, nil
}

func (s *fakeStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.merge(&rows{deleted: map[uuid.UUID]time.Time{id: time.Now()}})
	return nil
}

func (s *fakeStore) HardDelete(context.Context, uuid.UUID) error {
	return nil
}

func (s *fakeStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.committed.projects) - len(s.committed.deleted), nil
}

// fakeTx buffers writes until commit.
type fakeTx struct {
	s    *fakeStore
	data rows
	done bool
}

func (t *fakeTx) fail(table string) error {
	if t.s.failOn == table {
		return errBoom
	}
	return nil
}

func (t *fakeTx) FindByHash(ctx context.Context, hash string) (uuid.UUID, bool, error) {
	return t.s.FindByHash(ctx, hash)
}

func (t *fakeTx) SoftDelete(_ context.Context, id uuid.UUID) error {
	if t.data.deleted == nil {
		t.data.deleted = make(map[uuid.UUID]time.Time)
	}
	t.data.deleted[id] = time.Now()
	return nil
}

func (t *fakeTx) InsertProject(_ context.Context, p schema.Project) error {
	if t.s.hashConflict {
		return store.ErrDuplicateHash
	}
	t.data.projects = append(t.data.projects, p)
	return t.fail("ifc_projects")
}

func (t *fakeTx) InsertStoreys(_ context.Context, r []schema.Storey) error {
	t.data.storeys = append(t.data.storeys, r...)
	return t.fail("storeys")
}

func (t *fakeTx) InsertTypes(_ context.Context, r []schema.ElementType) error {
	t.data.types = append(t.data.types, r...)
	return t.fail("element_types")
}

func (t *fakeTx) InsertMaterials(_ context.Context, r []schema.Material) error {
	t.data.materials = append(t.data.materials, r...)
	return t.fail("materials")
}

func (t *fakeTx) InsertPsetDefinitions(
	_ context.Context,
	r []schema.PropertySetDefinition,
) error {
	t.data.psets = append(t.data.psets, r...)
	return t.fail("property_set_definitions")
}

func (t *fakeTx) InsertTypeProperties(_ context.Context, r []schema.TypeProperty) error {
	t.data.typeProps = append(t.data.typeProps, r...)
	return t.fail("type_properties")
}

func (t *fakeTx) InsertElements(_ context.Context, r []schema.BuildingElement) error {
	t.s.elementCalls++
	if t.s.onElements != nil {
		t.s.onElements()
	}
	t.data.elements = append(t.data.elements, r...)
	return t.fail("building_elements")
}

func (t *fakeTx) InsertElementProperties(
	_ context.Context,
	r []schema.ElementProperty,
) error {
	t.data.elemProps = append(t.data.elemProps, r...)
	return t.fail("element_properties")
}

func (t *fakeTx) InsertQuantities(_ context.Context, r []schema.ElementQuantity) error {
	t.data.quantities = append(t.data.quantities, r...)
	return t.fail("element_quantities")
}

func (t *fakeTx) InsertElementMaterials(
	_ context.Context,
	r []schema.ElementMaterial,
) error {
	t.data.layers = append(t.data.layers, r...)
	return t.fail("element_materials")
}

func (t *fakeTx) InsertOpenings(_ context.Context, r []schema.ElementOpening) error {
	t.data.openings = append(t.data.openings, r...)
	return t.fail("element_openings")
}

func (t *fakeTx) InsertSpaces(_ context.Context, r []schema.Space) error {
	t.data.spaces = append(t.data.spaces, r...)
	return t.fail("spaces")
}

func (t *fakeTx) InsertBoundaries(_ context.Context, r []schema.SpaceBoundary) error {
	t.data.boundaries = append(t.data.boundaries, r...)
	return t.fail("space_boundaries")
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return errors.New("transaction is closed")
	}
	t.done = true
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.committed.merge(&t.data)
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.rolledBack = true
	return nil
}

// fakeExtractor returns a prepared project.
type fakeExtractor struct {
	prj *model.Project
	err error
}

func (x fakeExtractor) Extract(_ context.Context, path string) (*model.Project, error) {
	if x.err != nil {
		return nil, x.err
	}
	res := *x.prj
	res.FilePath = path
	return &res, nil
}

func ptr[T any](v T) *T {
	return &v
}

// sample returns a small project with every kind of record.
func sample() *model.Project {
	return &model.Project{
		Name:          "Plant",
		SchemaVersion: "IFC4",
		FileHash:      "aa11",
		Storeys: []model.Storey{
			{GlobalID: "S1", Name: "Ground", Elevation: ptr(0.0)},
			{GlobalID: "S2", Name: "First", Elevation: ptr(3.0)},
		},
		Types: []model.TypeDef{
			{
				GlobalID: "T1",
				IfcClass: "IfcDoorType",
				Name:     "Door 90",
				Properties: []model.Property{
					model.NewProperty("Pset_DoorCommon", "FireRating", "EI30", ""),
				},
			},
		},
		Materials: []model.Material{
			{Name: "Concrete", Category: "Concrete"},
			{Name: "Insulation"},
		},
		Elements: []model.Element{
			{
				GlobalID:       "W1",
				IfcClass:       "IfcWall",
				Name:           "Wall 1",
				StoreyGlobalID: "S1",
				Length:         ptr(5.0),
				IsExternal:     ptr(true),
				Properties: []model.Property{
					model.NewProperty("Pset_WallCommon", "IsExternal", true, ""),
					model.NewProperty("Pset_WallCommon", "IsExternal", false, ""),
				},
				Quantities: []model.Quantity{
					{QtoName: "Qto_WallBaseQuantities", Name: "Length", Value: 5, Unit: "m"},
				},
				Materials: []model.MaterialLayer{
					{Name: "Concrete", Order: 0, Thickness: ptr(0.2)},
					{Name: "Insulation", Order: 1, Thickness: ptr(0.1)},
				},
			},
			{
				GlobalID:       "D1",
				IfcClass:       "IfcDoor",
				Name:           "Door 1",
				StoreyGlobalID: "S1",
				TypeGlobalID:   "T1",
				HostGlobalID:   "W1",
				Properties: []model.Property{
					model.NewProperty("Pset_DoorCommon", "FireRating", "EI30", ""),
				},
			},
			{
				GlobalID:       "C1",
				IfcClass:       "IfcColumn",
				StoreyGlobalID: "S9",
			},
		},
		Spaces: []model.Space{
			{
				GlobalID:       "R1",
				Name:           "101",
				StoreyGlobalID: "S1",
				NetFloorArea:   ptr(20.0),
				GrossFloorArea: ptr(22.0),
				ExZone:         model.Zone1,
				Properties: []model.Property{
					model.NewProperty("Pset_SpaceCommon", "Reference", "101", ""),
				},
				Boundaries: []model.Boundary{
					{ElementGlobalID: "W1", PhysicalOrVirtual: "PHYSICAL"},
					{ElementGlobalID: "GONE"},
				},
			},
		},
	}
}
