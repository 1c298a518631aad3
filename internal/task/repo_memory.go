package task

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[model.TaskID]model.Task
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: make(map[model.TaskID]model.Task)}
}

func (r *MemoryRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	_ = ctx
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id model.TaskID) (model.Task, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	return t, ok, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id model.TaskID, p Patch) (model.Task, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}

	applyPatch(&t, p)
	t.UpdatedAt = time.Now()

	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	r.tasks[id] = t
	return t, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]model.Task, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	// Stable output keeps snapshot consumers deterministic.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id model.TaskID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, id)
	return nil
}
