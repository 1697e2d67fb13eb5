package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tenx/internal/models"
	"tenx/internal/storage"
)

func TestProjectMetrics_OrderAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a, err := store.CreateProject(ctx, sampleProject("A"))
	require.NoError(t, err)
	b, err := store.CreateProject(ctx, sampleProject("B"))
	require.NoError(t, err)

	for _, m := range []models.ProjectMetric{
		{ProjectID: b.ID, Month: "2024-03-01", Progress: 30},
		{ProjectID: a.ID, Month: "2025-01-01", Progress: 90, Notes: "new year"},
		{ProjectID: a.ID, Month: "2024-03-01", Progress: 20, HoursWorked: 10, AIAssistanceHours: 9, ManualHours: 9},
		{ProjectID: a.ID, Month: "2024-11-01", Progress: 60},
	} {
		_, err := store.CreateProjectMetric(ctx, m)
		require.NoError(t, err)
	}

	all, err := store.ListProjectMetrics(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	var months []string
	for _, m := range all {
		months = append(months, m.Month)
	}
	require.Equal(t, []string{"2024-03-01", "2024-03-01", "2024-11-01", "2025-01-01"}, months)
	require.Equal(t, a.ID, all[0].ProjectID)
	require.Equal(t, "new year", all[3].Notes)
	require.False(t, all[3].CreatedAt.IsZero())

	onlyB, err := store.ListProjectMetrics(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
}

func TestProjectMetrics_UnknownProject(t *testing.T) {
	store := newTestStore(t)
	_, err := store.CreateProjectMetric(context.Background(), models.ProjectMetric{ProjectID: 99, Month: "2024-01-01"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProjectMetrics_CascadeOnProjectDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.CreateProject(ctx, sampleProject("doomed"))
	require.NoError(t, err)
	_, err = store.CreateProjectMetric(ctx, models.ProjectMetric{ProjectID: p.ID, Month: "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteProject(ctx, p.ID))

	metrics, err := store.ListProjectMetrics(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, metrics)
}

func TestGlobalMetrics_UpsertIsIdempotentPerMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.UpsertGlobalMetric(ctx, models.GlobalMetric{
		Month: "2024-06-01", TwitterFollowers: 4000, TotalGMV: 50000,
		SkillsGained: []string{"Go"}, Milestones: []string{"4k"},
	})
	require.NoError(t, err)

	second, err := store.UpsertGlobalMetric(ctx, models.GlobalMetric{
		Month: "2024-06-01", TwitterFollowers: 4200, TotalGMV: 51500, ProductivityGain: 9.1,
		SkillsGained: []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	all, err := store.ListGlobalMetrics(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, int64(4200), all[0].TwitterFollowers)
	require.InDelta(t, 51500.0, all[0].TotalGMV, 1e-9)
	require.InDelta(t, 9.1, all[0].ProductivityGain, 1e-9)
	require.Equal(t, []string{"Go", "SQL"}, all[0].SkillsGained)
	require.Equal(t, []string{}, all[0].Milestones)
	require.NotNil(t, all[0].CreatedAt)
}

func TestGlobalMetrics_Latest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LatestGlobalMetric(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	for _, month := range []string{"2024-02-01", "2024-05-01", "2024-03-01"} {
		_, err := store.UpsertGlobalMetric(ctx, models.GlobalMetric{Month: month})
		require.NoError(t, err)
	}

	latest, err := store.LatestGlobalMetric(ctx)
	require.NoError(t, err)
	require.Equal(t, "2024-05-01", latest.Month)

	all, err := store.ListGlobalMetrics(ctx)
	require.NoError(t, err)
	require.Equal(t, "2024-05-01", all[0].Month)
	require.Equal(t, "2024-02-01", all[2].Month)

	_, err = store.GetGlobalMetric(ctx, "1999-01-01")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
