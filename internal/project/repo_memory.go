package project

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type MemoryRepo struct {
	mu sync.RWMutex
	m  map[model.ProjectID]model.Project
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{m: make(map[model.ProjectID]model.Project)}
}

func (r *MemoryRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	_ = ctx
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.m[p.ID] = p
	return p, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id model.ProjectID) (model.Project, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.m[id]
	return p, ok, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]model.Project, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Project, 0, len(r.m))
	for _, p := range r.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, p model.Project) (model.Project, error) {
	_ = ctx
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m[p.ID]; !ok {
		return model.Project{}, ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.m[p.ID] = p
	return p, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id model.ProjectID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.m, id)
	return nil
}
