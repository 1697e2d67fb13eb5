package models

import "strings"

// Project statuses. Transitions between them are unconstrained.
const (
	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ValidProjectStatuses enumerates the statuses accepted on write.
var ValidProjectStatuses = map[string]struct{}{
	StatusPlanning:  {},
	StatusActive:    {},
	StatusCompleted: {},
}

// NormalizeStatus trims and lowercases a status string.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Project is one tracked initiative in its application (camelCase) form.
type Project struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Domain       string   `json:"domain"`
	Description  string   `json:"description"`
	Objectives   string   `json:"objectives,omitempty"`
	Progress     int      `json:"progress"`
	Status       string   `json:"status"`
	MySkills     []string `json:"mySkills"`
	AISkills     []string `json:"aiSkills"`
	Tools        []string `json:"tools"`
	Productivity float64  `json:"productivity"`
	Timeframe    string   `json:"timeframe,omitempty"`
	URL          string   `json:"url"`
}

// ProjectRow is the storage form of a Project. Column names are part of the
// persisted contract and must not change.
type ProjectRow struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Domain       string   `json:"domain"`
	Description  string   `json:"description"`
	Objectives   string   `json:"objectives"`
	Progress     int      `json:"progress"`
	Status       string   `json:"status"`
	MySkills     []string `json:"my_skills"`
	AISkills     []string `json:"ai_skills"`
	Tools        []string `json:"tools"`
	Productivity float64  `json:"productivity"`
	Timeframe    string   `json:"timeframe"`
	URL          string   `json:"url"`
}

// ToRow maps a project to its storage form.
func (p Project) ToRow() ProjectRow {
	return ProjectRow{
		ID:           p.ID,
		Title:        p.Title,
		Domain:       p.Domain,
		Description:  p.Description,
		Objectives:   p.Objectives,
		Progress:     p.Progress,
		Status:       p.Status,
		MySkills:     nonNil(p.MySkills),
		AISkills:     nonNil(p.AISkills),
		Tools:        nonNil(p.Tools),
		Productivity: p.Productivity,
		Timeframe:    p.Timeframe,
		URL:          p.URL,
	}
}

// ProjectFromRow maps a storage row to the application form. Absent lists
// become empty lists.
func ProjectFromRow(r ProjectRow) Project {
	return Project{
		ID:           r.ID,
		Title:        r.Title,
		Domain:       r.Domain,
		Description:  r.Description,
		Objectives:   r.Objectives,
		Progress:     r.Progress,
		Status:       r.Status,
		MySkills:     nonNil(r.MySkills),
		AISkills:     nonNil(r.AISkills),
		Tools:        nonNil(r.Tools),
		Productivity: r.Productivity,
		Timeframe:    r.Timeframe,
		URL:          r.URL,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// ProjectSummary is the reduced form used by selection lists.
type ProjectSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Domain string `json:"domain"`
}

// Summary reduces a project to its summary form.
func (p Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Title: p.Title, Domain: p.Domain}
}

// ProjectInput is the payload accepted by project create and update.
type ProjectInput struct {
	Title        string   `json:"title" binding:"required"`
	Domain       string   `json:"domain" binding:"omitempty,url"`
	Description  string   `json:"description" binding:"required"`
	Objectives   string   `json:"objectives"`
	Progress     int      `json:"progress" binding:"min=0,max=100"`
	Status       string   `json:"status"`
	MySkills     []string `json:"mySkills"`
	AISkills     []string `json:"aiSkills"`
	Tools        []string `json:"tools" binding:"min=1"`
	Productivity float64  `json:"productivity" binding:"min=0"`
	Timeframe    string   `json:"timeframe"`
	URL          string   `json:"url" binding:"omitempty,url"`
}

// Normalize trims text fields and list entries and canonicalizes the status.
func (in *ProjectInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Domain = strings.TrimSpace(in.Domain)
	in.Description = strings.TrimSpace(in.Description)
	in.Objectives = strings.TrimSpace(in.Objectives)
	in.Timeframe = strings.TrimSpace(in.Timeframe)
	in.URL = strings.TrimSpace(in.URL)
	in.Status = NormalizeStatus(in.Status)
	if in.Status == "" {
		in.Status = StatusPlanning
	}
	in.MySkills = cleanList(in.MySkills)
	in.AISkills = cleanList(in.AISkills)
	in.Tools = cleanList(in.Tools)
}

// Validate normalizes the input and checks the boundary rules.
func (in *ProjectInput) Validate() error {
	in.Normalize()
	var extra []string
	if len(in.MySkills)+len(in.AISkills) == 0 {
		extra = append(extra, "skills:min")
	}
	if _, ok := ValidProjectStatuses[in.Status]; !ok {
		extra = append(extra, "Status:oneof")
	}
	return checkStruct(in, extra)
}

// Project builds the project the input describes, carrying the given id.
func (in ProjectInput) Project(id int64) Project {
	return Project{
		ID:           id,
		Title:        in.Title,
		Domain:       in.Domain,
		Description:  in.Description,
		Objectives:   in.Objectives,
		Progress:     in.Progress,
		Status:       in.Status,
		MySkills:     nonNil(in.MySkills),
		AISkills:     nonNil(in.AISkills),
		Tools:        nonNil(in.Tools),
		Productivity: in.Productivity,
		Timeframe:    in.Timeframe,
		URL:          in.URL,
	}
}
