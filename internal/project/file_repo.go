package project

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type fileState struct {
	Projects map[model.ProjectID]model.Project `json:"projects"`
}

type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "projects.json"),
		s:    fileState{Projects: map[model.ProjectID]model.Project{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Projects == nil {
		loaded.Projects = map[model.ProjectID]model.Project{}
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) persist() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *FileRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	_ = ctx
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.s.Projects[p.ID] = p
	if err := r.persist(); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (r *FileRepo) Get(ctx context.Context, id model.ProjectID) (model.Project, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.s.Projects[id]
	return p, ok, nil
}

func (r *FileRepo) List(ctx context.Context) ([]model.Project, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Project, 0, len(r.s.Projects))
	for _, p := range r.s.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FileRepo) Update(ctx context.Context, p model.Project) (model.Project, error) {
	_ = ctx
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.s.Projects[p.ID]; !ok {
		return model.Project{}, ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.s.Projects[p.ID] = p
	if err := r.persist(); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (r *FileRepo) Delete(ctx context.Context, id model.ProjectID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.s.Projects, id)
	return r.persist()
}
