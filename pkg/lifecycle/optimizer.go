package lifecycle

import (
	"context"
)

// Optimizer keeps the database compact after imports and deletions.
type Optimizer interface {
	// Optimize removes soft-deleted projects with all their rows, then
	// runs VACUUM ANALYZE. It returns the number of removed projects.
	Optimize(ctx context.Context) (int, error)
}
