package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tenx/internal/models"
	"tenx/internal/storage"
)

const projectColumns = `id, title, domain, description, objectives, progress, status, my_skills, ai_skills, tools, productivity, timeframe, url`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(sc rowScanner) (models.Project, error) {
	var (
		row                     models.ProjectRow
		mySkills, aiSkills, tls string
	)
	if err := sc.Scan(&row.ID, &row.Title, &row.Domain, &row.Description, &row.Objectives, &row.Progress,
		&row.Status, &mySkills, &aiSkills, &tls, &row.Productivity, &row.Timeframe, &row.URL); err != nil {
		return models.Project{}, err
	}
	var err error
	if row.MySkills, err = decodeList(mySkills); err != nil {
		return models.Project{}, err
	}
	if row.AISkills, err = decodeList(aiSkills); err != nil {
		return models.Project{}, err
	}
	if row.Tools, err = decodeList(tls); err != nil {
		return models.Project{}, err
	}
	return models.ProjectFromRow(row), nil
}

// projectArgs encodes the writable columns of a row in the order used by the
// insert and update statements.
func projectArgs(row models.ProjectRow) ([]any, error) {
	mySkills, err := encodeList(row.MySkills)
	if err != nil {
		return nil, err
	}
	aiSkills, err := encodeList(row.AISkills)
	if err != nil {
		return nil, err
	}
	tools, err := encodeList(row.Tools)
	if err != nil {
		return nil, err
	}
	return []any{row.Title, row.Domain, row.Description, row.Objectives, row.Progress, row.Status,
		mySkills, aiSkills, tools, row.Productivity, row.Timeframe, row.URL}, nil
}

// ListProjects retrieves all projects ordered by id.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListProjectSummaries returns id, title and domain of every project ordered
// by title.
func (s *Store) ListProjectSummaries(ctx context.Context) ([]models.ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, domain FROM projects ORDER BY title ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list project summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.ProjectSummary{}
	for rows.Next() {
		var p models.ProjectSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Domain); err != nil {
			return nil, fmt.Errorf("scan project summary: %w", err)
		}
		summaries = append(summaries, p)
	}
	return summaries, rows.Err()
}

// CountProjects returns the number of stored projects.
func (s *Store) CountProjects(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, s.rebind(`SELECT `+projectColumns+` FROM projects WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// CreateProject persists a new project; the id of p is ignored.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	args, err := projectArgs(p.ToRow())
	if err != nil {
		return models.Project{}, err
	}
	now := s.now()
	args = append(args, now, now)

	var id int64
	err = s.db.QueryRowContext(ctx, s.rebind(`INSERT INTO projects
        (title, domain, description, objectives, progress, status, my_skills, ai_skills, tools, productivity, timeframe, url, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`), args...).Scan(&id)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(ctx, id)
}

// UpdateProject replaces every writable field of project id.
func (s *Store) UpdateProject(ctx context.Context, id int64, p models.Project) (models.Project, error) {
	args, err := projectArgs(p.ToRow())
	if err != nil {
		return models.Project{}, err
	}
	args = append(args, s.now(), id)

	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE projects SET
        title = ?, domain = ?, description = ?, objectives = ?, progress = ?, status = ?,
        my_skills = ?, ai_skills = ?, tools = ?, productivity = ?, timeframe = ?, url = ?, updated_at = ?
        WHERE id = ?`), args...)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Project{}, err
	}
	if affected == 0 {
		return models.Project{}, fmt.Errorf("project %d: %w", id, storage.ErrNotFound)
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes a project along with its monthly metrics.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("project %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
