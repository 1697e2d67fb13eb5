package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tenx/internal/models"
	"tenx/internal/storage"
)

const projectMetricColumns = `id, project_id, month, progress, productivity_score, hours_worked, ai_assistance_hours, manual_hours, notes, created_at`

func scanProjectMetric(sc rowScanner) (models.ProjectMetric, error) {
	var m models.ProjectMetric
	err := sc.Scan(&m.ID, &m.ProjectID, &m.Month, &m.Progress, &m.ProductivityScore,
		&m.HoursWorked, &m.AIAssistanceHours, &m.ManualHours, &m.Notes, &m.CreatedAt)
	return m, err
}

// ListProjectMetrics returns project metrics in chronological order. A
// projectID of zero lists every project.
func (s *Store) ListProjectMetrics(ctx context.Context, projectID int64) ([]models.ProjectMetric, error) {
	query := `SELECT ` + projectMetricColumns + ` FROM project_metrics`
	var args []any
	if projectID > 0 {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY month ASC, project_id ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list project metrics: %w", err)
	}
	defer rows.Close()

	metrics := []models.ProjectMetric{}
	for rows.Next() {
		m, err := scanProjectMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// CreateProjectMetric appends a monthly snapshot for an existing project.
func (s *Store) CreateProjectMetric(ctx context.Context, m models.ProjectMetric) (models.ProjectMetric, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM projects WHERE id = ?`), m.ProjectID).Scan(&exists)
	if err != nil {
		return models.ProjectMetric{}, fmt.Errorf("check project: %w", err)
	}
	if exists == 0 {
		return models.ProjectMetric{}, fmt.Errorf("project %d: %w", m.ProjectID, storage.ErrNotFound)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, s.rebind(`INSERT INTO project_metrics
        (project_id, month, progress, productivity_score, hours_worked, ai_assistance_hours, manual_hours, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		m.ProjectID, m.Month, m.Progress, m.ProductivityScore, m.HoursWorked, m.AIAssistanceHours, m.ManualHours, m.Notes, s.now()).Scan(&id)
	if err != nil {
		return models.ProjectMetric{}, fmt.Errorf("insert project metric: %w", err)
	}

	created, err := scanProjectMetric(s.db.QueryRowContext(ctx, s.rebind(`SELECT `+projectMetricColumns+` FROM project_metrics WHERE id = ?`), id))
	if err != nil {
		return models.ProjectMetric{}, fmt.Errorf("get project metric: %w", err)
	}
	return created, nil
}

const globalMetricColumns = `id, month, twitter_followers, youtube_subscribers, tiktok_followers, instagram_followers,
    newsletter_subscribers, total_gmv, productivity_gain, skills_gained, milestones, created_at`

func scanGlobalMetric(sc rowScanner) (models.GlobalMetric, error) {
	var (
		m                  models.GlobalMetric
		skills, milestones string
		createdAt          sql.NullTime
	)
	if err := sc.Scan(&m.ID, &m.Month, &m.TwitterFollowers, &m.YoutubeSubscribers, &m.TiktokFollowers,
		&m.InstagramFollowers, &m.NewsletterSubscribers, &m.TotalGMV, &m.ProductivityGain,
		&skills, &milestones, &createdAt); err != nil {
		return models.GlobalMetric{}, err
	}
	var err error
	if m.SkillsGained, err = decodeList(skills); err != nil {
		return models.GlobalMetric{}, err
	}
	if m.Milestones, err = decodeList(milestones); err != nil {
		return models.GlobalMetric{}, err
	}
	if createdAt.Valid {
		t := createdAt.Time
		m.CreatedAt = &t
	}
	return m, nil
}

// ListGlobalMetrics returns every monthly snapshot, newest month first.
func (s *Store) ListGlobalMetrics(ctx context.Context) ([]models.GlobalMetric, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+globalMetricColumns+` FROM global_metrics ORDER BY month DESC`)
	if err != nil {
		return nil, fmt.Errorf("list global metrics: %w", err)
	}
	defer rows.Close()

	metrics := []models.GlobalMetric{}
	for rows.Next() {
		m, err := scanGlobalMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan global metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// LatestGlobalMetric returns the newest monthly snapshot, or ErrNotFound when
// there is none.
func (s *Store) LatestGlobalMetric(ctx context.Context) (models.GlobalMetric, error) {
	m, err := scanGlobalMetric(s.db.QueryRowContext(ctx, `SELECT `+globalMetricColumns+` FROM global_metrics ORDER BY month DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return models.GlobalMetric{}, fmt.Errorf("latest global metric: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.GlobalMetric{}, fmt.Errorf("latest global metric: %w", err)
	}
	return m, nil
}

// GetGlobalMetric returns the snapshot for month.
func (s *Store) GetGlobalMetric(ctx context.Context, month string) (models.GlobalMetric, error) {
	m, err := scanGlobalMetric(s.db.QueryRowContext(ctx, s.rebind(`SELECT `+globalMetricColumns+` FROM global_metrics WHERE month = ?`), month))
	if errors.Is(err, sql.ErrNoRows) {
		return models.GlobalMetric{}, fmt.Errorf("global metric %s: %w", month, storage.ErrNotFound)
	}
	if err != nil {
		return models.GlobalMetric{}, fmt.Errorf("get global metric: %w", err)
	}
	return m, nil
}

// UpsertGlobalMetric inserts the snapshot for m.Month or overwrites the
// existing one. The last write wins.
func (s *Store) UpsertGlobalMetric(ctx context.Context, m models.GlobalMetric) (models.GlobalMetric, error) {
	skills, err := encodeList(m.SkillsGained)
	if err != nil {
		return models.GlobalMetric{}, err
	}
	milestones, err := encodeList(m.Milestones)
	if err != nil {
		return models.GlobalMetric{}, err
	}
	now := s.now()

	_, err = s.db.ExecContext(ctx, s.rebind(`INSERT INTO global_metrics
        (month, twitter_followers, youtube_subscribers, tiktok_followers, instagram_followers,
         newsletter_subscribers, total_gmv, productivity_gain, skills_gained, milestones, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(month) DO UPDATE SET
            twitter_followers = excluded.twitter_followers,
            youtube_subscribers = excluded.youtube_subscribers,
            tiktok_followers = excluded.tiktok_followers,
            instagram_followers = excluded.instagram_followers,
            newsletter_subscribers = excluded.newsletter_subscribers,
            total_gmv = excluded.total_gmv,
            productivity_gain = excluded.productivity_gain,
            skills_gained = excluded.skills_gained,
            milestones = excluded.milestones,
            updated_at = excluded.updated_at`),
		m.Month, m.TwitterFollowers, m.YoutubeSubscribers, m.TiktokFollowers, m.InstagramFollowers,
		m.NewsletterSubscribers, m.TotalGMV, m.ProductivityGain, skills, milestones, now, now)
	if err != nil {
		return models.GlobalMetric{}, fmt.Errorf("upsert global metric: %w", err)
	}
	return s.GetGlobalMetric(ctx, m.Month)
}
