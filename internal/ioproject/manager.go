// Package ioproject implements ProjectManager on top of the store.
package ioproject

import (
	"context"
	"log/slog"

	"github.com/gnames/ifcdb/pkg/lifecycle"
	"github.com/gnames/ifcdb/pkg/model"
	"github.com/gnames/ifcdb/pkg/store"
	"github.com/google/uuid"
)

type manager struct {
	store store.Store
}

// New creates a ProjectManager.
func New(st store.Store) lifecycle.ProjectManager {
	return &manager{store: st}
}

func (m *manager) List(
	ctx context.Context,
	includeDeleted bool,
) ([]model.ProjectInfo, error) {
	res, err := m.store.List(ctx, includeDeleted)
	if err != nil {
		return nil, err
	}
	slog.Debug("Projects listed", "count", len(res), "all", includeDeleted)
	return res, nil
}

func (m *manager) Get(ctx context.Context, id uuid.UUID) (*model.ProjectInfo, error) {
	return m.store.Get(ctx, id)
}

// Delete soft-deletes a project. A hard delete removes the project
// and, by cascade, every row that belongs to it, including already
// soft-deleted projects.
func (m *manager) Delete(ctx context.Context, id uuid.UUID, hard bool) error {
	var err error
	if hard {
		err = m.store.HardDelete(ctx, id)
	} else {
		err = m.store.SoftDelete(ctx, id)
	}
	if err != nil {
		return err
	}

	slog.Info("Project deleted", "project_id", id, "hard", hard)
	return nil
}
