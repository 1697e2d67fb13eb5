package fallback

import (
	"context"
	"fmt"

	"tenx/internal/models"
)

// SeedStore is the slice of the store the seeder writes through.
type SeedStore interface {
	CountProjects(ctx context.Context) (int, error)
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpsertGlobalMetric(ctx context.Context, m models.GlobalMetric) (models.GlobalMetric, error)
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Projects      int
	GlobalMetrics int
}

// Seed loads the snapshot into an empty store. Global metrics are upserted
// by month so reruns are harmless; projects are only inserted when the
// projects table is empty.
func Seed(ctx context.Context, store SeedStore) (SeedResult, error) {
	var res SeedResult

	metrics := GlobalMetrics()
	for i := len(metrics) - 1; i >= 0; i-- {
		if _, err := store.UpsertGlobalMetric(ctx, metrics[i]); err != nil {
			return res, fmt.Errorf("seed global metric %s: %w", metrics[i].Month, err)
		}
		res.GlobalMetrics++
	}

	n, err := store.CountProjects(ctx)
	if err != nil {
		return res, fmt.Errorf("count projects: %w", err)
	}
	if n > 0 {
		return res, nil
	}
	for _, p := range Projects() {
		if _, err := store.CreateProject(ctx, p); err != nil {
			return res, fmt.Errorf("seed project %q: %w", p.Title, err)
		}
		res.Projects++
	}
	return res, nil
}
