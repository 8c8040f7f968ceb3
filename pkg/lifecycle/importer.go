package lifecycle

import (
	"context"

	"github.com/gnames/ifcdb/pkg/model"
	"github.com/google/uuid"
)

// Extractor reads an IFC file into the intermediate model.
type Extractor interface {
	// Extract parses the file, checks its schema and returns the whole
	// project held in memory. Per-class problems become warnings of the
	// project, everything else is an error.
	Extract(ctx context.Context, path string) (*model.Project, error)
}

// Importer loads IFC files into the database.
//
// An import is atomic: it either commits the whole project or leaves the
// database unchanged, including when the context is cancelled.
type Importer interface {
	// Import extracts the file and writes it to the database. When
	// skipIfDuplicate is true, a file with the content hash of an active
	// project is rejected. Otherwise the earlier project is soft-deleted
	// and replaced.
	Import(
		ctx context.Context,
		path string,
		skipIfDuplicate bool,
	) (*model.ImportResult, error)
}

// ProjectManager lists and removes imported projects.
type ProjectManager interface {
	// List returns projects, newest first.
	List(ctx context.Context, includeDeleted bool) ([]model.ProjectInfo, error)

	// Get returns one project, including a soft-deleted one.
	Get(ctx context.Context, id uuid.UUID) (*model.ProjectInfo, error)

	// Delete marks a project as deleted, or removes it with all its rows
	// when hard is true.
	Delete(ctx context.Context, id uuid.UUID, hard bool) error
}
