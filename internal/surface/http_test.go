package surface

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/completion"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/engine"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/project"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/refresh"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/settings"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/task"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/telemetry"
)

type fixedSettings struct {
	s settings.Settings
}

func (f fixedSettings) Current() settings.Settings { return f.s }

type testEnv struct {
	mux      *http.ServeMux
	tasks    *task.MemoryRepo
	projects *project.MemoryRepo
	logs     *completion.MemoryRepo
	events   *telemetry.MemoryRepository
	clock    *refresh.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tasks := task.NewMemoryRepo()
	projects := project.NewMemoryRepo()
	logs := completion.NewMemoryRepo()
	events := telemetry.NewMemoryRepository()
	clock := refresh.NewFakeClock(time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC))

	cfg := settings.Default()
	cfg.TimeZone = "UTC"

	refresher := refresh.NewRefresher(tasks, projects, logs, fixedSettings{cfg}, clock, nil)
	var stores []*Store
	for _, name := range Names() {
		s := NewStore(name)
		stores = append(stores, s)
		refresher.Register(s)
	}

	service := task.NewService(tasks, logs, time.UTC)
	h := NewHandler(refresher, service, tasks, projects, events, clock, stores, nil)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	return &testEnv{mux: mux, tasks: tasks, projects: projects, logs: logs, events: events, clock: clock}
}

func (e *testEnv) seedProject(t *testing.T, id model.ProjectID) {
	t.Helper()
	p := model.NewProject("Project " + string(id))
	p.ID = id
	_, err := e.projects.Create(context.Background(), p)
	require.NoError(t, err)
}

func (e *testEnv) seedTask(t *testing.T, id model.TaskID, mutate func(*model.Task)) {
	t.Helper()
	tk := model.NewTask("p1", "Task "+string(id))
	tk.ID = id
	if mutate != nil {
		mutate(&tk)
	}
	_, err := e.tasks.Create(context.Background(), tk)
	require.NoError(t, err)
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestSummaryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")
	for _, id := range []model.TaskID{"a", "b", "c", "d"} {
		env.seedTask(t, id, nil)
	}

	rec := env.do(t, http.MethodGet, "/api/summary?surface=widget", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum engine.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Len(t, sum.DisplayList, 3, "widget surface defaults to 3 rows")
	assert.Equal(t, 4, sum.Counters.OutstandingTotal)
}

func TestSummaryEndpoint_UnknownSurface(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/summary?surface=hologram", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteNext_ActsOnFreshHead(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")

	overdue := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
	env.seedTask(t, "urgent", func(tk *model.Task) { tk.DueAt = &overdue })
	env.seedTask(t, "later", nil)

	rec := env.do(t, http.MethodPost, "/api/next/complete", map[string]string{"surface": "voice"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ActedTaskID model.TaskID   `json:"actedTaskId"`
		Summary     engine.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TaskID("urgent"), resp.ActedTaskID, "overdue task is the authoritative head")

	require.Len(t, resp.Summary.DisplayList, 1)
	assert.Equal(t, model.TaskID("later"), resp.Summary.DisplayList[0].ID, "returned summary reflects the completion")

	// The completion is on record.
	_, ok, err := env.logs.Get(context.Background(), "urgent", engine.OnceKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompleteNext_NothingOutstanding(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")

	rec := env.do(t, http.MethodPost, "/api/next/complete", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStartNext_MovesHeadToDoing(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")
	env.seedTask(t, "solo", nil)

	rec := env.do(t, http.MethodPost, "/api/next/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok, err := env.tasks.Get(context.Background(), "solo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StatusDoing, got.Status)
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")

	rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
		"projectId": "p1",
		"title":     "Fix the bike",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Fix the bike", created.Title)

	rec = env.do(t, http.MethodPost, "/api/tasks/"+string(created.ID)+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var logEntry model.CompletionLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logEntry))
	assert.Equal(t, engine.OnceKey, logEntry.OccurrenceKey)

	// Completing again overwrites the same log row.
	rec = env.do(t, http.MethodPost, "/api/tasks/"+string(created.ID)+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all, err := env.logs.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRefreshEndpointPublishesStores(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")
	env.seedTask(t, "a", nil)

	rec := env.do(t, http.MethodPost, "/api/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/surfaces", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []struct {
		Name      string `json:"name"`
		Published bool   `json:"published"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 5)
	for _, info := range infos {
		assert.True(t, info.Published, "surface %s should have a published summary", info.Name)
	}
}

func TestStatsEndpointCountsActions(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject(t, "p1")
	env.seedTask(t, "a", nil)
	env.seedTask(t, "b", nil)

	rec := env.do(t, http.MethodPost, "/api/next/complete", map[string]string{"surface": "voice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats telemetry.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.NextActions)
	assert.Equal(t, 1, stats.ActionsBySurface["voice"])
}
