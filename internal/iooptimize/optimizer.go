// Package iooptimize implements the Optimizer interface. It removes
// soft-deleted projects and refreshes planner statistics.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ifcdb/pkg/db"
	"github.com/gnames/ifcdb/pkg/lifecycle"
)

type optimizer struct {
	operator db.Operator
}

// New creates an Optimizer.
func New(op db.Operator) lifecycle.Optimizer {
	return &optimizer{operator: op}
}

// Optimize runs two steps:
//  1. Remove soft-deleted projects, children go by cascade.
//  2. Run VACUUM ANALYZE.
func (o *optimizer) Optimize(ctx context.Context) (int, error) {
	if o.operator.Pool() == nil {
		return 0, NotConnectedError()
	}
	start := time.Now()

	slog.Info("Step 1/2: Removing deleted projects")
	n, err := o.purge(ctx)
	if err != nil {
		return 0, err
	}
	gn.Info("Removed <em>%s</em> deleted projects", humanize.Comma(int64(n)))

	slog.Info("Step 2/2: Running VACUUM ANALYZE")
	if err = o.vacuumAnalyze(ctx); err != nil {
		return n, err
	}

	slog.Info("Database optimization completed",
		"purged", n,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return n, nil
}

func (o *optimizer) purge(ctx context.Context) (int, error) {
	tag, err := o.operator.Pool().Exec(ctx,
		"DELETE FROM ifc_projects WHERE deleted_at IS NOT NULL")
	if err != nil {
		return 0, PurgeError(err)
	}
	return int(tag.RowsAffected()), nil
}
