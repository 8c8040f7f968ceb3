// Package ioimport writes extracted IFC projects to the store. All writes
// of one file happen in one transaction, in a fixed order of stages, so
// later stages can resolve references to rows of earlier ones.
package ioimport

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/ifcdb/pkg/config"
	"github.com/gnames/ifcdb/pkg/lifecycle"
	"github.com/gnames/ifcdb/pkg/model"
	"github.com/gnames/ifcdb/pkg/store"
)

type importer struct {
	cfg       *config.Config
	extractor lifecycle.Extractor
	store     store.Store
}

// New creates an Importer.
func New(
	cfg *config.Config,
	ext lifecycle.Extractor,
	st store.Store,
) lifecycle.Importer {
	return &importer{cfg: cfg, extractor: ext, store: st}
}

// stage is one step of the import.
type stage struct {
	name string
	run  func(context.Context) error
}

// Import extracts the file and writes it in a single transaction.
func (imp *importer) Import(
	ctx context.Context,
	path string,
	skipIfDuplicate bool,
) (*model.ImportResult, error) {
	start := time.Now()

	prj, err := imp.extractor.Extract(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, CancelledError(path, "extract", ctx.Err())
		}
		return nil, err
	}

	// files with a duplicate hash are rejected before the transaction
	if skipIfDuplicate {
		id, ok, err := imp.store.FindByHash(ctx, prj.FileHash)
		if err != nil {
			return nil, StageError(path, "duplicate check", err)
		}
		if ok {
			return nil, DuplicateFileError(path, id)
		}
	}

	tx, err := imp.store.Begin(ctx)
	if err != nil {
		return nil, imp.stageError(ctx, prj, "begin", err)
	}
	// a no-op after commit
	defer tx.Rollback(context.WithoutCancel(ctx))

	p := newPlan(imp.cfg, prj, tx, skipIfDuplicate)
	stages := []stage{
		{"duplicate check", p.checkDuplicate},
		{"project", p.project},
		{"storeys", p.storeys},
		{"types", p.types},
		{"materials", p.materials},
		{"property sets", p.propertySets},
		{"elements", p.elements},
		{"openings", p.openings},
		{"spaces", p.spaces},
	}

	for _, s := range stages {
		if err = ctx.Err(); err != nil {
			return nil, CancelledError(path, s.name, err)
		}
		if err = s.run(ctx); err != nil {
			return nil, imp.stageError(ctx, prj, s.name, err)
		}
		slog.Debug("Import stage done", "path", path, "stage", s.name)
	}

	if err = ctx.Err(); err != nil {
		return nil, CancelledError(path, "commit", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, imp.stageError(ctx, prj, "commit", err)
	}

	res := p.result()
	res.Duration = time.Since(start)
	for _, w := range p.rsv.warnings() {
		slog.Warn(w, "path", path)
	}

	slog.Info("Imported IFC file",
		"path", path,
		"project_id", res.ProjectID,
		"elements", res.ElementCount,
		"spaces", res.SpaceCount,
		"warnings", len(res.Warnings),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

// stageError converts a failure of a stage into the error returned to
// the caller.
func (imp *importer) stageError(
	ctx context.Context,
	prj *model.Project,
	stage string,
	err error,
) error {
	if _, ok := ExistingProject(err); ok {
		return err
	}

	if errors.Is(err, store.ErrDuplicateHash) {
		// a concurrent import of the same file committed first
		id, _, ferr := imp.store.FindByHash(context.WithoutCancel(ctx), prj.FileHash)
		if ferr != nil {
			slog.Warn("Cannot find duplicate project", "error", ferr)
		}
		return DuplicateFileError(prj.FilePath, id)
	}

	if ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return CancelledError(prj.FilePath, stage, err)
	}
	return StageError(prj.FilePath, stage, err)
}
