// Package stats derives the dashboard numbers shown on the public site and
// the admin overview.
package stats

import "tenx/internal/models"

// Stats is the fixed set of dashboard figures. Averages are not rounded;
// rounding belongs to whoever renders them.
type Stats struct {
	ProjectsLaunched    int     `json:"projectsLaunched"`
	TotalProjects       int     `json:"totalProjects"`
	AvgProductivityGain float64 `json:"avgProductivityGain"`
	AIToolsIntegrated   int     `json:"aiToolsIntegrated"`
	CurrentProductivity float64 `json:"currentProductivity"`
}

// IsLaunched reports whether a status counts as launched (active or
// completed), ignoring case and surrounding whitespace.
func IsLaunched(status string) bool {
	switch models.NormalizeStatus(status) {
	case models.StatusActive, models.StatusCompleted:
		return true
	}
	return false
}

// Compute aggregates projects into Stats. It never fails: an empty input
// yields zero averages.
//
// CurrentProductivity is the mean over launched projects and falls back to
// the overall mean when none are launched. Monthly global metrics are not
// consulted.
func Compute(projects []models.Project) Stats {
	var (
		total, launchedSum float64
		launched           int
		tools              = make(map[string]struct{})
	)
	for _, p := range projects {
		total += p.Productivity
		if IsLaunched(p.Status) {
			launched++
			launchedSum += p.Productivity
		}
		for _, tool := range p.Tools {
			tools[tool] = struct{}{}
		}
	}

	s := Stats{
		ProjectsLaunched:  launched,
		TotalProjects:     len(projects),
		AIToolsIntegrated: len(tools),
	}
	if s.TotalProjects > 0 {
		s.AvgProductivityGain = total / float64(s.TotalProjects)
	}
	s.CurrentProductivity = s.AvgProductivityGain
	if launched > 0 {
		s.CurrentProductivity = launchedSum / float64(launched)
	}
	return s
}
