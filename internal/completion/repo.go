// Package completion stores the log of completed task occurrences.
// Uniqueness of (taskId, occurrenceKey) is this package's contract: the
// selection engine only ever reads these records, so idempotent writes
// are enforced here, at the persistence boundary.
package completion

import (
	"context"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

type Repository interface {
	// Upsert records a completion. Re-saving an existing
	// (taskID, occurrenceKey) pair overwrites in place, never duplicates.
	Upsert(ctx context.Context, l model.CompletionLog) (model.CompletionLog, error)
	Get(ctx context.Context, taskID model.TaskID, occurrenceKey string) (model.CompletionLog, bool, error)
	List(ctx context.Context) ([]model.CompletionLog, error)
	ListByTask(ctx context.Context, taskID model.TaskID) ([]model.CompletionLog, error)
	Delete(ctx context.Context, taskID model.TaskID, occurrenceKey string) error
}

func logKey(taskID model.TaskID, occurrenceKey string) string {
	return string(taskID) + "\x00" + occurrenceKey
}
