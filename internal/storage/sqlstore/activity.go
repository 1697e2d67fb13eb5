package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tenx/internal/models"
)

// LogActivity appends an audit row. Rows are never updated or deleted.
func (s *Store) LogActivity(ctx context.Context, a models.UserActivity) (models.UserActivity, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO admin_activity
        (id, user_id, action, resource_type, resource_id, details, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`),
		a.ID, nullString(a.UserID), a.Action, nullString(a.ResourceType), nullInt(a.ResourceID), nullString(a.Details), a.CreatedAt)
	if err != nil {
		return models.UserActivity{}, fmt.Errorf("insert activity: %w", err)
	}
	return a, nil
}

// ListActivity returns the most recent audit rows, newest first.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT id, user_id, action, resource_type, resource_id, details, created_at
        FROM admin_activity ORDER BY created_at DESC, id ASC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	activity := []models.UserActivity{}
	for rows.Next() {
		var (
			a                             models.UserActivity
			userID, resourceType, details sql.NullString
			resourceID                    sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &userID, &a.Action, &resourceType, &resourceID, &details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.UserID = userID.String
		a.ResourceType = resourceType.String
		a.Details = details.String
		if resourceID.Valid {
			id := resourceID.Int64
			a.ResourceID = &id
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
