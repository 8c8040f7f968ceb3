// Package store defines persistence of imported projects. Rows are the
// models of pkg/schema with their keys already assigned.
package store

import (
	"context"
	"errors"

	"github.com/gnames/ifcdb/pkg/model"
	"github.com/gnames/ifcdb/pkg/schema"
	"github.com/google/uuid"
)

// Store gives access to imported projects.
type Store interface {
	// Begin starts a transaction for one import.
	Begin(ctx context.Context) (Tx, error)

	// FindByHash returns the ID of the active project with the given file
	// hash. The second value is false if there is no such project.
	FindByHash(ctx context.Context, hash string) (uuid.UUID, bool, error)

	// List returns projects newest first, with element and space counts.
	List(ctx context.Context, includeDeleted bool) ([]model.ProjectInfo, error)

	// Get returns a project by its ID.
	Get(ctx context.Context, id uuid.UUID) (*model.ProjectInfo, error)

	// SoftDelete marks an active project as deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// HardDelete removes a project and, by cascade, all its rows.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of active projects.
	Count(ctx context.Context) (int, error)
}

// Tx writes one project. Nothing is visible to other sessions until
// Commit. Rollback after Commit is a no-op.
type Tx interface {
	FindByHash(ctx context.Context, hash string) (uuid.UUID, bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	InsertProject(ctx context.Context, p schema.Project) error
	InsertStoreys(ctx context.Context, rows []schema.Storey) error
	InsertTypes(ctx context.Context, rows []schema.ElementType) error
	InsertMaterials(ctx context.Context, rows []schema.Material) error
	InsertPsetDefinitions(ctx context.Context, rows []schema.PropertySetDefinition) error
	InsertTypeProperties(ctx context.Context, rows []schema.TypeProperty) error
	InsertElements(ctx context.Context, rows []schema.BuildingElement) error
	InsertElementProperties(ctx context.Context, rows []schema.ElementProperty) error
	InsertQuantities(ctx context.Context, rows []schema.ElementQuantity) error
	InsertElementMaterials(ctx context.Context, rows []schema.ElementMaterial) error
	InsertOpenings(ctx context.Context, rows []schema.ElementOpening) error
	InsertSpaces(ctx context.Context, rows []schema.Space) error
	InsertBoundaries(ctx context.Context, rows []schema.SpaceBoundary) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ErrDuplicateHash is returned by Tx.InsertProject when another active
// project already has the same file hash.
var ErrDuplicateHash = errors.New("active project with the same file hash exists")
