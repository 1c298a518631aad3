package completion

import (
	"context"
	"sort"
	"sync"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	logs map[string]model.CompletionLog
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{logs: make(map[string]model.CompletionLog)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, l model.CompletionLog) (model.CompletionLog, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey(l.TaskID, l.OccurrenceKey)
	if existing, ok := r.logs[key]; ok {
		// Keep the original id so repeated saves stay one row.
		l.ID = existing.ID
	}
	r.logs[key] = l
	return l, nil
}

func (r *MemoryRepo) Get(ctx context.Context, taskID model.TaskID, occurrenceKey string) (model.CompletionLog, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.logs[logKey(taskID, occurrenceKey)]
	return l, ok, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]model.CompletionLog, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CompletionLog, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l)
	}
	sortLogs(out)
	return out, nil
}

func (r *MemoryRepo) ListByTask(ctx context.Context, taskID model.TaskID) ([]model.CompletionLog, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.CompletionLog
	for _, l := range r.logs {
		if l.TaskID == taskID {
			out = append(out, l)
		}
	}
	sortLogs(out)
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, taskID model.TaskID, occurrenceKey string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.logs, logKey(taskID, occurrenceKey))
	return nil
}

func sortLogs(logs []model.CompletionLog) {
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].TaskID != logs[j].TaskID {
			return logs[i].TaskID < logs[j].TaskID
		}
		return logs[i].OccurrenceKey < logs[j].OccurrenceKey
	})
}
