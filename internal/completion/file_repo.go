package completion

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type fileState struct {
	Logs map[string]model.CompletionLog `json:"logs"`
}

// FileRepo persists completion logs to a JSON snapshot file. The map is
// keyed by (taskId, occurrenceKey), so the uniqueness contract holds in
// the stored form itself.
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
		path: filepath.Join(dataDir, "completions.json"),
		s:    fileState{Logs: map[string]model.CompletionLog{}},
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
	if loaded.Logs == nil {
		loaded.Logs = map[string]model.CompletionLog{}
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

func (r *FileRepo) Upsert(ctx context.Context, l model.CompletionLog) (model.CompletionLog, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey(l.TaskID, l.OccurrenceKey)
	if existing, ok := r.s.Logs[key]; ok {
		l.ID = existing.ID
	}
	r.s.Logs[key] = l
	if err := r.persist(); err != nil {
		return model.CompletionLog{}, err
	}
	return l, nil
}

func (r *FileRepo) Get(ctx context.Context, taskID model.TaskID, occurrenceKey string) (model.CompletionLog, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.s.Logs[logKey(taskID, occurrenceKey)]
	return l, ok, nil
}

func (r *FileRepo) List(ctx context.Context) ([]model.CompletionLog, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CompletionLog, 0, len(r.s.Logs))
	for _, l := range r.s.Logs {
		out = append(out, l)
	}
	sortLogs(out)
	return out, nil
}

func (r *FileRepo) ListByTask(ctx context.Context, taskID model.TaskID) ([]model.CompletionLog, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.CompletionLog
	for _, l := range r.s.Logs {
		if l.TaskID == taskID {
			out = append(out, l)
		}
	}
	sortLogs(out)
	return out, nil
}

func (r *FileRepo) Delete(ctx context.Context, taskID model.TaskID, occurrenceKey string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.s.Logs, logKey(taskID, occurrenceKey))
	return r.persist()
}
