package task

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
	Tasks map[model.TaskID]model.Task `json:"tasks"`
}

// FileRepo is a persistent task repository backed by a single JSON
// snapshot file. Every write persists the whole state.
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
		path: filepath.Join(dataDir, "tasks.json"),
		s:    fileState{Tasks: map[model.TaskID]model.Task{}},
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
	if loaded.Tasks == nil {
		loaded.Tasks = map[model.TaskID]model.Task{}
	}
	r.s = loaded
	return nil
}

// persist must be called with r.mu held.
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

func (r *FileRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	_ = ctx
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.s.Tasks[t.ID] = t
	if err := r.persist(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *FileRepo) Get(ctx context.Context, id model.TaskID) (model.Task, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.s.Tasks[id]
	return t, ok, nil
}

func (r *FileRepo) Update(ctx context.Context, id model.TaskID, p Patch) (model.Task, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.s.Tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}

	applyPatch(&t, p)
	t.UpdatedAt = time.Now()

	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	r.s.Tasks[id] = t
	if err := r.persist(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *FileRepo) List(ctx context.Context) ([]model.Task, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.s.Tasks))
	for _, t := range r.s.Tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FileRepo) Delete(ctx context.Context, id model.TaskID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.s.Tasks, id)
	return r.persist()
}
