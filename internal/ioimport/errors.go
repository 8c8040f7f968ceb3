package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ifcdb/pkg/errcode"
	"github.com/google/uuid"
)

// DuplicateFileError is returned when the file content was already
// imported and re-import was not requested.
func DuplicateFileError(path string, existing uuid.UUID) error {
	msg := `File <em>%s</em> is already imported as project <em>%s</em>

Use <em>--reimport</em> to replace the existing project.`

	return &gn.Error{
		Code: errcode.ImportDuplicateFileError,
		Msg:  msg,
		Vars: []any{path, existing},
		Err:  fmt.Errorf("duplicate of project %s: %s", existing, path),
	}
}

// StageError is returned when a write stage fails. The whole import is
// rolled back.
func StageError(path, stage string, err error) error {
	msg := `Import of <em>%s</em> failed at stage <em>%s</em>

Nothing was written to the database.`

	return &gn.Error{
		Code: errcode.ImportStageError,
		Msg:  msg,
		Vars: []any{path, stage},
		Err:  fmt.Errorf("import %s, stage %s: %w", path, stage, err),
	}
}

// CancelledError is returned when the context is cancelled before commit.
func CancelledError(path, stage string, err error) error {
	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  "Import of <em>%s</em> cancelled at stage <em>%s</em>",
		Vars: []any{path, stage},
		Err:  fmt.Errorf("import %s cancelled at %s: %w", path, stage, err),
	}
}

// existingID returns the project ID carried by a DuplicateFileError.
func existingID(err *gn.Error) (uuid.UUID, bool) {
	if err.Code != errcode.ImportDuplicateFileError || len(err.Vars) < 2 {
		return uuid.Nil, false
	}
	id, ok := err.Vars[1].(uuid.UUID)
	return id, ok
}

// ExistingProject returns the ID of the project that made an import a
// duplicate.
func ExistingProject(err error) (uuid.UUID, bool) {
	gnErr, ok := err.(*gn.Error)
	if !ok {
		return uuid.Nil, false
	}
	return existingID(gnErr)
}
