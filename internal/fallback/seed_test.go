package fallback_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tenx/internal/fallback"
	"tenx/internal/stats"
	"tenx/internal/storage/sqlstore"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store, err := sqlstore.Open(ctx, sqlstore.Options{DSN: filepath.Join(t.TempDir(), "seed.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	res, err := fallback.Seed(ctx, store)
	require.NoError(t, err)
	require.Equal(t, len(fallback.Projects()), res.Projects)
	require.Equal(t, len(fallback.GlobalMetrics()), res.GlobalMetrics)

	projects, err := store.ListProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, stats.Compute(fallback.Projects()), stats.Compute(projects))

	latest, err := store.LatestGlobalMetric(ctx)
	require.NoError(t, err)
	require.Equal(t, fallback.LatestGlobalMetric().Month, latest.Month)

	res, err = fallback.Seed(ctx, store)
	require.NoError(t, err)
	require.Zero(t, res.Projects)

	n, err := store.CountProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, len(fallback.Projects()), n)

	metrics, err := store.ListGlobalMetrics(ctx)
	require.NoError(t, err)
	require.Len(t, metrics, len(fallback.GlobalMetrics()))
}
