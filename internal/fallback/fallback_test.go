package fallback

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"tenx/internal/models"
)

func TestProjectsAreCopies(t *testing.T) {
	a := Projects()
	a[0].Title = "changed"
	a[0].Tools[0] = "changed"

	b := Projects()
	require.Equal(t, "AI E-commerce Platform", b[0].Title)
	require.Equal(t, "ChatGPT", b[0].Tools[0])
}

func TestProjectsAreValid(t *testing.T) {
	for _, p := range Projects() {
		require.GreaterOrEqual(t, p.Progress, 0)
		require.LessOrEqual(t, p.Progress, 100)
		require.Contains(t, models.ValidProjectStatuses, p.Status)
		require.NotEmpty(t, p.Tools)
	}
}

func TestGlobalMetricsNewestFirstAndUniqueMonths(t *testing.T) {
	metrics := GlobalMetrics()
	months := make([]string, len(metrics))
	seen := map[string]bool{}
	for i, m := range metrics {
		months[i] = m.Month
		require.False(t, seen[m.Month], "duplicate month %s", m.Month)
		seen[m.Month] = true
	}
	require.True(t, sort.SliceIsSorted(months, func(i, j int) bool { return months[i] > months[j] }))
	require.Equal(t, "2024-06-01", LatestGlobalMetric().Month)
}

func TestProjectSummaries(t *testing.T) {
	summaries := ProjectSummaries()
	require.Len(t, summaries, len(Projects()))
	require.Equal(t, models.ProjectSummary{ID: 3, Title: "Data Analytics Dashboard", Domain: "Analytics"}, summaries[2])
}
