package surface

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/engine"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/project"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/refresh"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/task"
	"github.com/Gonyak-cell/LivePlan-sub002/internal/telemetry"
)

type Handler struct {
	refresher *refresh.Refresher
	service   *task.Service
	tasks     task.Repository
	projects  project.Repository
	events    telemetry.Repository
	clock     refresh.Clock
	stores    map[string]*Store
	logger    *log.Logger
}

func NewHandler(refresher *refresh.Refresher, service *task.Service, tasks task.Repository, projects project.Repository, events telemetry.Repository, clock refresh.Clock, stores []*Store, logger *log.Logger) *Handler {
	if clock == nil {
		clock = refresh.RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	byName := make(map[string]*Store, len(stores))
	for _, s := range stores {
		byName[s.Name()] = s
	}
	return &Handler{
		refresher: refresher,
		service:   service,
		tasks:     tasks,
		projects:  projects,
		events:    events,
		clock:     clock,
		stores:    byName,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/summary", h.Summary)
	mux.HandleFunc("/api/surfaces", h.Surfaces)
	mux.HandleFunc("/api/next/complete", h.CompleteNext)
	mux.HandleFunc("/api/next/start", h.StartNext)
	mux.HandleFunc("/api/refresh", h.Refresh)
	mux.HandleFunc("/api/tasks", h.Tasks)
	mux.HandleFunc("/api/tasks/", h.TaskByID)
	mux.HandleFunc("/api/projects", h.Projects)
	mux.HandleFunc("/api/stats", h.Stats)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// Summary serves a freshly computed summary for one surface. The widget,
// tile and notification providers poll this; the published stores exist
// for pushes.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	name := r.URL.Query().Get("surface")
	if name == "" {
		name = App
	}
	if _, ok := h.stores[name]; !ok {
		writeErr(w, http.StatusBadRequest, "unknown surface "+name)
		return
	}

	sum, err := h.refresher.ComputeFor(r.Context(), name, DefaultTopN(name))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handler) Surfaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "GET only")
		return
	}

	type surfaceInfo struct {
		Name      string          `json:"name"`
		TopN      int             `json:"topN"`
		Published bool            `json:"published"`
		UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
		Latest    *engine.Summary `json:"latest,omitempty"`
	}

	out := make([]surfaceInfo, 0, len(h.stores))
	for _, name := range Names() {
		s, ok := h.stores[name]
		if !ok {
			continue
		}
		info := surfaceInfo{Name: name, TopN: DefaultTopN(name)}
		if latest, published := s.Latest(); published {
			info.Published = true
			at := s.UpdatedAt()
			info.UpdatedAt = &at
			info.Latest = &latest
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

type nextActionRequest struct {
	Surface string `json:"surface"`
}

type nextActionResponse struct {
	ActedTaskID model.TaskID   `json:"actedTaskId"`
	Summary     engine.Summary `json:"summary"`
}

// CompleteNext completes whatever task is currently at the head of the
// list. It always re-runs the engine first: acting on a cached id could
// complete a task that is no longer the top candidate.
func (h *Handler) CompleteNext(w http.ResponseWriter, r *http.Request) {
	h.actOnNext(w, r, "complete", func(id model.TaskID) error {
		_, err := h.service.Complete(r.Context(), id, h.clock.Now())
		return err
	})
}

// StartNext moves the current head task into DOING.
func (h *Handler) StartNext(w http.ResponseWriter, r *http.Request) {
	h.actOnNext(w, r, "start", func(id model.TaskID) error {
		_, err := h.service.Start(r.Context(), id)
		return err
	})
}

func (h *Handler) actOnNext(w http.ResponseWriter, r *http.Request, action string, act func(model.TaskID) error) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req nextActionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}
	}
	if req.Surface == "" {
		req.Surface = Voice
	}

	sum, err := h.refresher.ComputeFor(r.Context(), req.Surface, 1)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(sum.DisplayList) == 0 {
		writeErr(w, http.StatusConflict, "nothing outstanding")
		return
	}

	id := sum.DisplayList[0].ID
	if err := act(id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = h.events.RecordEvent(telemetry.EventNextActioned, telemetry.EventMetadata{
		"surface": req.Surface,
		"action":  action,
		"task_id": string(id),
	})

	after, err := h.refresher.ComputeFor(r.Context(), req.Surface, 1)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, nextActionResponse{ActedTaskID: id, Summary: after})
}

// Refresh triggers a publish to every registered surface, the same path a
// background worker takes.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	if err := h.refresher.RefreshAll(r.Context()); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = h.events.RecordEvent(telemetry.EventRefreshRun, nil)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type createTaskRequest struct {
	ProjectID model.ProjectID `json:"projectId"`
	Title     string          `json:"title"`
	Patch     task.Patch      `json:"patch"`
}

func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.tasks.List(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req createTaskRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}
		created, err := h.tasks.Create(r.Context(), model.NewTask(req.ProjectID, req.Title))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		if (req.Patch != task.Patch{}) {
			created, err = h.tasks.Update(r.Context(), created.ID, req.Patch)
			if err != nil {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		_ = h.events.RecordEvent(telemetry.EventTaskCreated, telemetry.EventMetadata{"task_id": string(created.ID)})
		writeJSON(w, http.StatusCreated, created)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "GET or POST")
	}
}

// TaskByID handles /api/tasks/{id} and the /complete and /start actions.
func (h *Handler) TaskByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, http.StatusBadRequest, "missing task id")
		return
	}
	taskID := model.TaskID(id)

	switch {
	case action == "" && r.Method == http.MethodGet:
		t, ok, err := h.tasks.Get(r.Context(), taskID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, "task not found")
			return
		}
		writeJSON(w, http.StatusOK, t)
	case action == "" && r.Method == http.MethodDelete:
		if err := h.tasks.Delete(r.Context(), taskID); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case action == "complete" && r.Method == http.MethodPost:
		logEntry, err := h.service.Complete(r.Context(), taskID, h.clock.Now())
		if err != nil {
			if errors.Is(err, task.ErrNotFound) {
				writeErr(w, http.StatusNotFound, err.Error())
				return
			}
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		_ = h.events.RecordEvent(telemetry.EventTaskCompleted, telemetry.EventMetadata{
			"task_id":        string(taskID),
			"occurrence_key": logEntry.OccurrenceKey,
		})
		writeJSON(w, http.StatusOK, logEntry)
	case action == "start" && r.Method == http.MethodPost:
		t, err := h.service.Start(r.Context(), taskID)
		if err != nil {
			if errors.Is(err, task.ErrNotFound) {
				writeErr(w, http.StatusNotFound, err.Error())
				return
			}
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		_ = h.events.RecordEvent(telemetry.EventTaskStarted, telemetry.EventMetadata{"task_id": string(taskID)})
		writeJSON(w, http.StatusOK, t)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "unsupported method or action")
	}
}

type createProjectRequest struct {
	Title string `json:"title"`
}

func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.projects.List(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req createProjectRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}
		created, err := h.projects.Create(r.Context(), model.NewProject(req.Title))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "GET or POST")
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	since := time.Now().AddDate(0, 0, -30)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "since must be YYYY-MM-DD")
			return
		}
		since = parsed
	}

	events, err := h.events.GetEvents(since, nil)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := telemetry.CalculateStats(events, since)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
