// Package data implements the read side used by public pages: every read
// tries the primary store first and, when allowed, answers from the fixed
// fallback snapshot instead of failing.
package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tenx/internal/fallback"
	"tenx/internal/models"
	"tenx/internal/stats"
	"tenx/internal/storage"
)

// Store is the slice of the primary store the reader needs.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectSummaries(ctx context.Context) ([]models.ProjectSummary, error)
	ListGlobalMetrics(ctx context.Context) ([]models.GlobalMetric, error)
	LatestGlobalMetric(ctx context.Context) (models.GlobalMetric, error)
}

// Result wraps a read together with where it came from.
type Result[T any] struct {
	Data         T
	FromFallback bool
}

// Overview is the dashboard payload: derived stats plus the newest monthly
// snapshot, read together.
type Overview struct {
	Stats        stats.Stats          `json:"stats"`
	LatestMetric *models.GlobalMetric `json:"latestMetric"`
	Fallback     bool                 `json:"fallback"`
}

// Reader applies the fallback policy on top of a Store.
type Reader struct {
	store         Store
	logger        *slog.Logger
	allowFallback bool
}

// NewReader builds a Reader. With allowFallback false every read is strict.
func NewReader(store Store, logger *slog.Logger, allowFallback bool) *Reader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{store: store, logger: logger, allowFallback: allowFallback}
}

// substitute decides between propagating err and serving the snapshot.
func substitute[T any](r *Reader, source string, err error, snapshot func() T) (Result[T], error) {
	if !r.allowFallback {
		return Result[T]{}, fmt.Errorf("read %s: %w", source, err)
	}
	r.logger.Warn("primary read failed, serving fallback snapshot",
		slog.String("source", source),
		slog.String("snapshot", fallback.Version),
		slog.String("error", err.Error()))
	return Result[T]{Data: snapshot(), FromFallback: true}, nil
}

// Projects lists projects ordered by id.
func (r *Reader) Projects(ctx context.Context) (Result[[]models.Project], error) {
	projects, err := r.store.ListProjects(ctx)
	if err != nil {
		return substitute(r, "projects", err, fallback.Projects)
	}
	return Result[[]models.Project]{Data: projects}, nil
}

// StrictProjects lists projects and never falls back. Admin listings use it
// so an outage is reported rather than masked.
func (r *Reader) StrictProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := r.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}
	return projects, nil
}

// ProjectSummaries lists project summaries ordered by title.
func (r *Reader) ProjectSummaries(ctx context.Context) (Result[[]models.ProjectSummary], error) {
	summaries, err := r.store.ListProjectSummaries(ctx)
	if err != nil {
		return substitute(r, "project summaries", err, fallback.ProjectSummaries)
	}
	return Result[[]models.ProjectSummary]{Data: summaries}, nil
}

// GlobalMetrics lists monthly snapshots, newest first.
func (r *Reader) GlobalMetrics(ctx context.Context) (Result[[]models.GlobalMetric], error) {
	metrics, err := r.store.ListGlobalMetrics(ctx)
	if err != nil {
		return substitute(r, "global metrics", err, fallback.GlobalMetrics)
	}
	return Result[[]models.GlobalMetric]{Data: metrics}, nil
}

// LatestGlobalMetric returns the newest monthly snapshot. An empty table is
// not an error: Data is nil.
func (r *Reader) LatestGlobalMetric(ctx context.Context) (Result[*models.GlobalMetric], error) {
	m, err := r.latest(ctx)
	if err != nil {
		return substitute(r, "latest global metric", err, latestSnapshot)
	}
	return Result[*models.GlobalMetric]{Data: m}, nil
}

func (r *Reader) latest(ctx context.Context) (*models.GlobalMetric, error) {
	m, err := r.store.LatestGlobalMetric(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func latestSnapshot() *models.GlobalMetric {
	m := fallback.LatestGlobalMetric()
	return &m
}

// Stats computes the dashboard stats over the current projects.
func (r *Reader) Stats(ctx context.Context) (Result[stats.Stats], error) {
	projects, err := r.Projects(ctx)
	if err != nil {
		return Result[stats.Stats]{}, err
	}
	return Result[stats.Stats]{Data: stats.Compute(projects.Data), FromFallback: projects.FromFallback}, nil
}

// Overview reads projects and the latest monthly snapshot concurrently. If
// either read fails the whole overview comes from the snapshot so primary
// and fallback data are never mixed.
func (r *Reader) Overview(ctx context.Context) (Overview, error) {
	var (
		projects []models.Project
		latest   *models.GlobalMetric
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = r.store.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		latest, err = r.latest(gctx)
		if err != nil {
			return fmt.Errorf("latest global metric: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		res, err := substitute(r, "overview", err, snapshotOverview)
		return res.Data, err
	}
	return Overview{Stats: stats.Compute(projects), LatestMetric: latest}, nil
}

func snapshotOverview() Overview {
	return Overview{Stats: stats.Compute(fallback.Projects()), LatestMetric: latestSnapshot(), Fallback: true}
}
