// Package refresh is the effectful shell around the pure selection
// engine: it snapshots persistence, runs one Compute per display surface,
// and pushes the results out. The engine itself never does I/O; all
// concurrency lives here.
package refresh

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/completion"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/engine"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/project"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/settings"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/task"
)

// Snapshot is the complete in-memory state one refresh works over. Every
// surface computed from the same snapshot sees the same world.
type Snapshot struct {
	Projects []model.Project
	Tasks    []model.Task
	Logs     []model.CompletionLog
}

// SettingsSource yields the current user settings; *settings.Watcher
// satisfies it.
type SettingsSource interface {
	Current() settings.Settings
}

// Publisher receives a freshly computed summary for one surface.
type Publisher interface {
	Name() string
	DefaultTopN() int
	Publish(ctx context.Context, s engine.Summary) error
}

type Refresher struct {
	tasks    task.Repository
	projects project.Repository
	logs     completion.Repository
	settings SettingsSource
	clock    Clock
	logger   *log.Logger

	publishers []Publisher
}

func NewRefresher(tasks task.Repository, projects project.Repository, logs completion.Repository, src SettingsSource, clock Clock, logger *log.Logger) *Refresher {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Refresher{
		tasks:    tasks,
		projects: projects,
		logs:     logs,
		settings: src,
		clock:    clock,
		logger:   logger,
	}
}

func (r *Refresher) Register(p Publisher) {
	r.publishers = append(r.publishers, p)
}

func (r *Refresher) Snapshot(ctx context.Context) (Snapshot, error) {
	projects, err := r.projects.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	tasks, err := r.tasks.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	logs, err := r.logs.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Projects: projects, Tasks: tasks, Logs: logs}, nil
}

// ComputeFor runs the engine for one named surface against a fresh
// snapshot. Action endpoints ("complete next", "start next") go through
// this so they always act on the current top candidate, never a cached one.
func (r *Refresher) ComputeFor(ctx context.Context, surface string, defaultTopN int) (engine.Summary, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return engine.Summary{}, err
	}
	s := r.settings.Current()
	return r.compute(snap, s, s.TopNFor(surface, defaultTopN)), nil
}

// RefreshAll snapshots once and fans the computed summaries out to every
// registered publisher concurrently. A failing publisher fails the whole
// refresh; the caller decides whether to retry.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return err
	}
	s := r.settings.Current()

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range r.publishers {
		p := p
		summary := r.compute(snap, s, s.TopNFor(p.Name(), p.DefaultTopN()))
		g.Go(func() error {
			return p.Publish(ctx, summary)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.logger.Printf("refresh: published to %d surfaces", len(r.publishers))
	return nil
}

func (r *Refresher) compute(snap Snapshot, s settings.Settings, topN int) engine.Summary {
	loc, err := s.Location()
	if err != nil {
		loc = time.Local
	}
	now := r.clock.Now()
	return engine.Compute(engine.Input{
		DateKey:  engine.DateKeyOf(now, loc),
		Now:      now,
		Location: loc,
		Policy:   s.SelectionPolicy(),
		Privacy:  s.Privacy,
		Projects: snap.Projects,
		Tasks:    snap.Tasks,
		Logs:     snap.Logs,
		TopN:     topN,
	})
}
