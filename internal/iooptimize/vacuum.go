package iooptimize

import (
	"context"
	"log/slog"
	"time"
)

// vacuumAnalyze reclaims space of deleted rows and updates statistics of
// the query planner. It cannot run inside a transaction.
func (o *optimizer) vacuumAnalyze(ctx context.Context) error {
	start := time.Now()

	_, err := o.operator.Pool().Exec(ctx, "VACUUM ANALYZE")
	if err != nil {
		slog.Error("Failed to run VACUUM ANALYZE", "error", err)
		return VacuumError(err)
	}

	slog.Info("VACUUM ANALYZE completed", "duration", time.Since(start).String())
	return nil
}
