package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/completion"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/engine"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/project"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/settings"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/task"
)

type stubSettings struct {
	s settings.Settings
}

func (s stubSettings) Current() settings.Settings { return s.s }

type recordingPublisher struct {
	name string
	topN int

	mu  sync.Mutex
	got []engine.Summary
}

func (p *recordingPublisher) Name() string     { return p.name }
func (p *recordingPublisher) DefaultTopN() int { return p.topN }

func (p *recordingPublisher) Publish(ctx context.Context, s engine.Summary) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, s)
	return nil
}

func (p *recordingPublisher) last(t *testing.T) engine.Summary {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.got)
	return p.got[len(p.got)-1]
}

func seedRepos(t *testing.T, taskCount int) (*task.MemoryRepo, *project.MemoryRepo, *completion.MemoryRepo) {
	t.Helper()
	ctx := context.Background()

	tasks := task.NewMemoryRepo()
	projects := project.NewMemoryRepo()
	logs := completion.NewMemoryRepo()

	proj := model.NewProject("Home")
	proj.ID = "p1"
	_, err := projects.Create(ctx, proj)
	require.NoError(t, err)

	titles := []string{"Dishes", "Laundry", "Vacuum", "Bills", "Plants"}
	for i := 0; i < taskCount; i++ {
		_, err := tasks.Create(ctx, model.NewTask("p1", titles[i%len(titles)]))
		require.NoError(t, err)
	}
	return tasks, projects, logs
}

func newTestRefresher(t *testing.T, taskCount int) *Refresher {
	t.Helper()
	tasks, projects, logs := seedRepos(t, taskCount)

	cfg := settings.Default()
	cfg.TimeZone = "UTC"
	clock := NewFakeClock(time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC))
	return NewRefresher(tasks, projects, logs, stubSettings{cfg}, clock, nil)
}

func TestRefreshAll_FansOutPerSurfaceTopN(t *testing.T) {
	r := newTestRefresher(t, 5)

	widget := &recordingPublisher{name: "widget", topN: 3}
	voice := &recordingPublisher{name: "voice", topN: 1}
	r.Register(widget)
	r.Register(voice)

	require.NoError(t, r.RefreshAll(context.Background()))

	w := widget.last(t)
	v := voice.last(t)
	assert.Len(t, w.DisplayList, 3)
	assert.Len(t, v.DisplayList, 1)
	assert.Equal(t, 5, w.Counters.OutstandingTotal)
	assert.Equal(t, w.Counters, v.Counters, "same snapshot, same counters")
	assert.Equal(t, w.DisplayList[0], v.DisplayList[0], "all surfaces agree on the top candidate")
}

func TestComputeFor_HonorsSettingsOverride(t *testing.T) {
	tasks, projects, logs := seedRepos(t, 5)

	cfg := settings.Default()
	cfg.TimeZone = "UTC"
	cfg.Surfaces = map[string]int{"app": 2}
	clock := NewFakeClock(time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC))
	r := NewRefresher(tasks, projects, logs, stubSettings{cfg}, clock, nil)

	got, err := r.ComputeFor(context.Background(), "app", 10)
	require.NoError(t, err)
	assert.Len(t, got.DisplayList, 2, "settings override beats the surface default")
}

func TestRefreshAll_IsRepeatable(t *testing.T) {
	r := newTestRefresher(t, 4)
	widget := &recordingPublisher{name: "widget", topN: 3}
	r.Register(widget)

	require.NoError(t, r.RefreshAll(context.Background()))
	require.NoError(t, r.RefreshAll(context.Background()))

	widget.mu.Lock()
	defer widget.mu.Unlock()
	require.Len(t, widget.got, 2)
	assert.Equal(t, widget.got[0], widget.got[1], "frozen clock and unchanged data give identical summaries")
}
