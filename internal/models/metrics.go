package models

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the storage form of a month key: the first day of the month.
const MonthLayout = "2006-01-02"

// NormalizeMonth accepts "YYYY-MM" or "YYYY-MM-DD" and returns the first day
// of that month as "YYYY-MM-01".
func NormalizeMonth(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{MonthLayout, "2006-01"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout), nil
		}
	}
	return "", fmt.Errorf("%w: month %q", ErrInvalid, raw)
}

// GlobalMetric is the aggregate audience and revenue snapshot for one month.
type GlobalMetric struct {
	ID                    int64      `json:"id"`
	Month                 string     `json:"month"`
	TwitterFollowers      int64      `json:"twitter_followers"`
	YoutubeSubscribers    int64      `json:"youtube_subscribers"`
	TiktokFollowers       int64      `json:"tiktok_followers"`
	InstagramFollowers    int64      `json:"instagram_followers"`
	NewsletterSubscribers int64      `json:"newsletter_subscribers"`
	TotalGMV              float64    `json:"total_gmv"`
	ProductivityGain      float64    `json:"productivity_gain"`
	SkillsGained          []string   `json:"skills_gained"`
	Milestones            []string   `json:"milestones"`
	CreatedAt             *time.Time `json:"created_at,omitempty"`
}

// GlobalMetricInput is the upsert payload; Month is the upsert key.
type GlobalMetricInput struct {
	Month                 string   `json:"month" binding:"required"`
	TwitterFollowers      int64    `json:"twitter_followers" binding:"min=0"`
	YoutubeSubscribers    int64    `json:"youtube_subscribers" binding:"min=0"`
	TiktokFollowers       int64    `json:"tiktok_followers" binding:"min=0"`
	InstagramFollowers    int64    `json:"instagram_followers" binding:"min=0"`
	NewsletterSubscribers int64    `json:"newsletter_subscribers" binding:"min=0"`
	TotalGMV              float64  `json:"total_gmv" binding:"min=0"`
	ProductivityGain      float64  `json:"productivity_gain" binding:"min=0"`
	SkillsGained          []string `json:"skills_gained"`
	Milestones            []string `json:"milestones"`
}

// Validate normalizes the month key and list fields, then checks bounds.
func (in *GlobalMetricInput) Validate() error {
	var extra []string
	if month, err := NormalizeMonth(in.Month); err != nil {
		extra = append(extra, "Month:format")
	} else {
		in.Month = month
	}
	in.SkillsGained = cleanList(in.SkillsGained)
	in.Milestones = cleanList(in.Milestones)
	return checkStruct(in, extra)
}

// GlobalMetric builds the record the input describes.
func (in GlobalMetricInput) GlobalMetric() GlobalMetric {
	return GlobalMetric{
		Month:                 in.Month,
		TwitterFollowers:      in.TwitterFollowers,
		YoutubeSubscribers:    in.YoutubeSubscribers,
		TiktokFollowers:       in.TiktokFollowers,
		InstagramFollowers:    in.InstagramFollowers,
		NewsletterSubscribers: in.NewsletterSubscribers,
		TotalGMV:              in.TotalGMV,
		ProductivityGain:      in.ProductivityGain,
		SkillsGained:          nonNil(in.SkillsGained),
		Milestones:            nonNil(in.Milestones),
	}
}

// ProjectMetric is one monthly snapshot for a single project. The hour
// split is informational; AIAssistanceHours+ManualHours need not equal
// HoursWorked.
type ProjectMetric struct {
	ID                int64     `json:"id"`
	ProjectID         int64     `json:"project_id"`
	Month             string    `json:"month"`
	Progress          int       `json:"progress"`
	ProductivityScore float64   `json:"productivity_score"`
	HoursWorked       float64   `json:"hours_worked"`
	AIAssistanceHours float64   `json:"ai_assistance_hours"`
	ManualHours       float64   `json:"manual_hours"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProjectMetricInput is the append payload for project metrics.
type ProjectMetricInput struct {
	ProjectID         int64   `json:"project_id" binding:"required,gt=0"`
	Month             string  `json:"month" binding:"required"`
	Progress          int     `json:"progress" binding:"min=0,max=100"`
	ProductivityScore float64 `json:"productivity_score" binding:"min=0"`
	HoursWorked       float64 `json:"hours_worked" binding:"min=0"`
	AIAssistanceHours float64 `json:"ai_assistance_hours" binding:"min=0"`
	ManualHours       float64 `json:"manual_hours" binding:"min=0"`
	Notes             string  `json:"notes"`
}

// Validate normalizes the month key and checks bounds.
func (in *ProjectMetricInput) Validate() error {
	var extra []string
	if month, err := NormalizeMonth(in.Month); err != nil {
		extra = append(extra, "Month:format")
	} else {
		in.Month = month
	}
	in.Notes = strings.TrimSpace(in.Notes)
	return checkStruct(in, extra)
}

// ProjectMetric builds the record the input describes.
func (in ProjectMetricInput) ProjectMetric() ProjectMetric {
	return ProjectMetric{
		ProjectID:         in.ProjectID,
		Month:             in.Month,
		Progress:          in.Progress,
		ProductivityScore: in.ProductivityScore,
		HoursWorked:       in.HoursWorked,
		AIAssistanceHours: in.AIAssistanceHours,
		ManualHours:       in.ManualHours,
		Notes:             in.Notes,
	}
}
